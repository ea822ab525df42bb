package memory

// MergePolicy decides which attributes must match for two adjacent
// blocks to coalesce. A disabled Want flag skips its attribute
// entirely, the emitted range then keeps the first block's value.
type MergePolicy struct {
	ListAll       bool
	WantState     bool
	WantRemovable bool
	WantNode      bool
	HaveNodes     bool
}

func (policy MergePolicy) mergeable(current, b Block) bool {
	if policy.ListAll {
		return false
	}
	if current.Index+current.Count != b.Index {
		return false
	}
	if policy.WantState && current.State != b.State {
		return false
	}
	if policy.WantRemovable && current.Removable != b.Removable {
		return false
	}
	if policy.WantNode && policy.HaveNodes && current.Node != b.Node {
		return false
	}
	return true
}

// Merge coalesces an index-ordered block sequence into maximal ranges.
// The last element of the result acts as the open range while the
// sequence streams through, so the pass is single and O(n).
func Merge(blocks []Block, policy MergePolicy) []Block {
	ranges := []Block{}
	for _, block := range blocks {
		if n := len(ranges); n > 0 && policy.mergeable(ranges[n-1], block) {
			ranges[n-1].Count += block.Count
			continue
		}
		ranges = append(ranges, block)
	}
	return ranges
}

// Totals accumulates online and offline byte counts. Going-offline
// and unknown blocks land in the offline bucket.
type Totals struct {
	Online  uint64
	Offline uint64
}

// Add accounts one raw block. Totals are fed from blocks before any
// merging, so a range that coalesced across differing states still
// contributes each constituent block to the right bucket.
func (totals *Totals) Add(state State, blockSize uint64) {
	if state == StateOnline {
		totals.Online += blockSize
	} else {
		totals.Offline += blockSize
	}
}
