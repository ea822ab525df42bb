package memory

// NodeNone marks a block with no NUMA node information.
const NodeNone = -1

// Block is one kernel memory block, or a contiguous run of blocks
// after coalescing (Count > 1). Block N covers the physical address
// range [N*blockSize, (N+1)*blockSize).
type Block struct {
	Index     uint64
	Count     uint64
	State     State
	Removable bool
	Node      int
}
