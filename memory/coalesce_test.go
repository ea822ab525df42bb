package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func block(index uint64, state State, removable bool, node int) Block {
	return Block{Index: index, Count: 1, State: state, Removable: removable, Node: node}
}

func TestMerge(t *testing.T) {
	allWant := MergePolicy{WantState: true, WantRemovable: true, WantNode: true, HaveNodes: true}

	tests := []struct {
		name   string
		blocks []Block
		policy MergePolicy
		want   []Block
	}{
		{
			name:   "empty input",
			blocks: []Block{},
			policy: allWant,
			want:   []Block{},
		},
		{
			name:   "single block",
			blocks: []Block{block(0, StateOnline, false, 0)},
			policy: allWant,
			want:   []Block{{Index: 0, Count: 1, State: StateOnline, Node: 0}},
		},
		{
			name: "identical contiguous blocks merge",
			blocks: []Block{
				block(0, StateOnline, false, 0),
				block(1, StateOnline, false, 0),
				block(2, StateOnline, false, 0),
				block(3, StateOnline, false, 0),
			},
			policy: allWant,
			want:   []Block{{Index: 0, Count: 4, State: StateOnline, Node: 0}},
		},
		{
			name: "state change splits",
			blocks: []Block{
				block(0, StateOnline, false, 0),
				block(1, StateOffline, false, 0),
			},
			policy: allWant,
			want: []Block{
				{Index: 0, Count: 1, State: StateOnline, Node: 0},
				{Index: 1, Count: 1, State: StateOffline, Node: 0},
			},
		},
		{
			name: "index gap splits even with equal attributes",
			blocks: []Block{
				block(0, StateOnline, false, 0),
				block(2, StateOnline, false, 0),
			},
			policy: allWant,
			want: []Block{
				{Index: 0, Count: 1, State: StateOnline, Node: 0},
				{Index: 2, Count: 1, State: StateOnline, Node: 0},
			},
		},
		{
			name: "differing state merges when state not wanted",
			blocks: []Block{
				block(0, StateOnline, false, 0),
				block(1, StateOffline, false, 0),
			},
			policy: MergePolicy{HaveNodes: true},
			want:   []Block{{Index: 0, Count: 2, State: StateOnline, Node: 0}},
		},
		{
			name: "removable change splits",
			blocks: []Block{
				block(0, StateOnline, true, 0),
				block(1, StateOnline, false, 0),
			},
			policy: allWant,
			want: []Block{
				{Index: 0, Count: 1, State: StateOnline, Removable: true, Node: 0},
				{Index: 1, Count: 1, State: StateOnline, Node: 0},
			},
		},
		{
			name: "node change splits",
			blocks: []Block{
				block(0, StateOnline, false, 0),
				block(1, StateOnline, false, 1),
			},
			policy: allWant,
			want: []Block{
				{Index: 0, Count: 1, State: StateOnline, Node: 0},
				{Index: 1, Count: 1, State: StateOnline, Node: 1},
			},
		},
		{
			name: "node ignored when system has no node information",
			blocks: []Block{
				block(0, StateOnline, false, 0),
				block(1, StateOnline, false, 1),
			},
			policy: MergePolicy{WantState: true, WantNode: true, HaveNodes: false},
			want:   []Block{{Index: 0, Count: 2, State: StateOnline, Node: 0}},
		},
		{
			name: "list all keeps every block separate",
			blocks: []Block{
				block(0, StateOnline, false, 0),
				block(1, StateOnline, false, 0),
				block(2, StateOnline, false, 0),
			},
			policy: MergePolicy{ListAll: true, WantState: true},
			want: []Block{
				{Index: 0, Count: 1, State: StateOnline, Node: 0},
				{Index: 1, Count: 1, State: StateOnline, Node: 0},
				{Index: 2, Count: 1, State: StateOnline, Node: 0},
			},
		},
		{
			name: "going offline and unknown are distinct states",
			blocks: []Block{
				block(4, StateGoingOffline, false, 0),
				block(5, StateUnknown, false, 0),
			},
			policy: allWant,
			want: []Block{
				{Index: 4, Count: 1, State: StateGoingOffline, Node: 0},
				{Index: 5, Count: 1, State: StateUnknown, Node: 0},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.blocks, tt.policy)
			assert.Equal(t, tt.want, got)

			// No block is ever dropped or duplicated.
			rawCount := uint64(0)
			for _, b := range tt.blocks {
				rawCount += b.Count
			}
			mergedCount := uint64(0)
			for _, r := range got {
				mergedCount += r.Count
			}
			assert.Equal(t, rawCount, mergedCount)

			// Maximality: adjacent output ranges never remain mergeable,
			// so a second pass changes nothing.
			assert.Equal(t, got, Merge(got, tt.policy))
		})
	}
}

func TestMergeOutputOrdering(t *testing.T) {
	blocks := []Block{
		block(0, StateOnline, false, 0),
		block(1, StateOffline, false, 0),
		block(2, StateOffline, false, 0),
		block(4, StateOffline, false, 0),
		block(5, StateOnline, false, 0),
	}
	ranges := Merge(blocks, MergePolicy{WantState: true})
	for i := 1; i < len(ranges); i++ {
		prev, next := ranges[i-1], ranges[i]
		assert.Less(t, prev.Index, next.Index)
		assert.LessOrEqual(t, prev.Index+prev.Count, next.Index)
	}
}

func TestTotals(t *testing.T) {
	const blockSize = uint64(0x8000000)

	totals := Totals{}
	totals.Add(StateOnline, blockSize)
	totals.Add(StateOffline, blockSize)
	totals.Add(StateGoingOffline, blockSize)
	totals.Add(StateUnknown, blockSize)

	assert.Equal(t, blockSize, totals.Online)
	assert.Equal(t, 3*blockSize, totals.Offline)
	assert.Equal(t, 4*blockSize, totals.Online+totals.Offline)
}

func TestTotalsAccurateAcrossMixedStateMerge(t *testing.T) {
	const blockSize = uint64(0x8000000)

	// SIZE-only selection: online and offline blocks coalesce into a
	// single range, but totals come from the raw blocks.
	blocks := []Block{
		block(0, StateOnline, false, NodeNone),
		block(1, StateOffline, false, NodeNone),
	}
	totals := Totals{}
	for _, b := range blocks {
		totals.Add(b.State, blockSize)
	}
	ranges := Merge(blocks, MergePolicy{})

	assert.Len(t, ranges, 1)
	assert.Equal(t, uint64(2), ranges[0].Count)
	assert.Equal(t, blockSize, totals.Online)
	assert.Equal(t, blockSize, totals.Offline)
}
