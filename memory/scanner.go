package memory

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/michalbiesek/lsmem/util"
)

const sysMemoryPath = "sys/devices/system/memory"

const (
	blockSizeFile = "block_size_bytes"
	removableFile = "removable"
	stateFile     = "state"
)

var ErrNotSupported = errors.New("this system does not support memory blocks")

// Scanner reads the per-block memory device tree into Block values.
type Scanner struct {
	store  AttributeStore
	logger zerolog.Logger
}

func NewScanner(store AttributeStore, logger zerolog.Logger) *Scanner {
	return &Scanner{store: store, logger: logger}
}

// BlockSize reads the global block size, hexadecimal text in
// block_size_bytes. A missing file means the kernel does not expose
// block-granular memory at all.
func (scanner *Scanner) BlockSize() (uint64, error) {
	filename := path.Join(sysMemoryPath, blockSizeFile)
	if !scanner.store.Exists(filename) {
		return 0, ErrNotSupported
	}
	text, err := scanner.store.Read(filename)
	if err != nil {
		return 0, util.NewError(err, "cannot read %s", filename)
	}
	size, err := strconv.ParseUint(strings.TrimSpace(text), 16, 64)
	if err != nil {
		return 0, util.NewError(err, "invalid memory block size %q", strings.TrimSpace(text))
	}
	return size, nil
}

// ListBlocks returns the memory<N> directory names ordered by N
// ascending. The order must be numeric: lexical order would place
// memory10 before memory2 and corrupt adjacency during merging.
func (scanner *Scanner) ListBlocks() ([]string, error) {
	entries, err := scanner.store.List(sysMemoryPath)
	if err != nil {
		return nil, util.NewError(err, "failed to read %s", sysMemoryPath)
	}
	type blockEntry struct {
		name  string
		index uint64
	}
	blocks := []blockEntry{}
	for _, name := range entries {
		index, ok := parseBlockIndex(name)
		if !ok {
			continue
		}
		blocks = append(blocks, blockEntry{name: name, index: index})
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no memory blocks found in %s", sysMemoryPath)
	}
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].index < blocks[j].index
	})
	names := make([]string, len(blocks))
	for i, block := range blocks {
		names[i] = block.name
	}
	return names, nil
}

// BlockNode scans a block directory for a node<M> entry and returns
// M, or NodeNone when the block carries no NUMA affinity.
func (scanner *Scanner) BlockNode(name string) (int, error) {
	entries, err := scanner.store.List(path.Join(sysMemoryPath, name))
	if err != nil {
		return NodeNone, util.NewError(err, "failed to open %s", name)
	}
	node := NodeNone
	for _, entry := range entries {
		if !strings.HasPrefix(entry, "node") {
			continue
		}
		value, err := strconv.ParseUint(entry[len("node"):], 10, 32)
		if err != nil {
			continue
		}
		node = int(value)
	}
	return node, nil
}

// HaveNodes probes whether the system exposes per-block node
// information at all, by checking the first enumerated block once.
func (scanner *Scanner) HaveNodes(firstBlock string) (bool, error) {
	node, err := scanner.BlockNode(firstBlock)
	if err != nil {
		return false, err
	}
	return node != NodeNone, nil
}

// ReadBlock reads one block's attributes. The node lookup is the
// costly part and runs only when withNode is set. A missing state
// file or an unrecognized state string degrades to StateUnknown; any
// other read failure propagates, a partial snapshot must not pass as
// a complete one.
func (scanner *Scanner) ReadBlock(name string, withNode bool) (Block, error) {
	block := Block{Count: 1, Node: NodeNone}

	index, ok := parseBlockIndex(name)
	if !ok {
		return block, fmt.Errorf("invalid memory block name %q", name)
	}
	block.Index = index

	text, err := scanner.store.Read(path.Join(sysMemoryPath, name, removableFile))
	if err != nil {
		return block, util.NewError(err, "cannot read removable flag of %s", name)
	}
	removable, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return block, util.NewError(err, "invalid removable flag of %s", name)
	}
	block.Removable = removable != 0

	block.State = StateUnknown
	stateFilename := path.Join(sysMemoryPath, name, stateFile)
	if scanner.store.Exists(stateFilename) {
		text, err := scanner.store.Read(stateFilename)
		if err != nil {
			return block, util.NewError(err, "cannot read state of %s", name)
		}
		block.State = NewState(strings.TrimSpace(text))
	}

	if withNode {
		node, err := scanner.BlockNode(name)
		if err != nil {
			return block, err
		}
		block.Node = node
	}
	return block, nil
}

// Snapshot is one point-in-time view of the machine's memory layout.
type Snapshot struct {
	BlockSize uint64
	Ranges    []Block
	Totals    Totals
	HaveNodes bool
}

// Snapshot enumerates every block in index order, reads its
// attributes and coalesces the stream into ranges. Totals accumulate
// from the raw blocks before merging.
func (scanner *Scanner) Snapshot(sel ColumnSelection, listAll bool) (*Snapshot, error) {
	blockSize, err := scanner.BlockSize()
	if err != nil {
		return nil, err
	}
	names, err := scanner.ListBlocks()
	if err != nil {
		return nil, err
	}
	haveNodes, err := scanner.HaveNodes(names[0])
	if err != nil {
		return nil, err
	}
	scanner.logger.Debug().
		Int("blocks", len(names)).
		Uint64("block_size", blockSize).
		Bool("have_nodes", haveNodes).
		Msg("scanning memory blocks")

	withNode := sel.WantNode && haveNodes
	totals := Totals{}
	blocks := make([]Block, 0, len(names))
	for _, name := range names {
		block, err := scanner.ReadBlock(name, withNode)
		if err != nil {
			return nil, err
		}
		totals.Add(block.State, blockSize)
		blocks = append(blocks, block)
	}

	policy := MergePolicy{
		ListAll:       listAll,
		WantState:     sel.WantState,
		WantRemovable: sel.WantRemovable,
		WantNode:      sel.WantNode,
		HaveNodes:     haveNodes,
	}
	return &Snapshot{
		BlockSize: blockSize,
		Ranges:    Merge(blocks, policy),
		Totals:    totals,
		HaveNodes: haveNodes,
	}, nil
}

func parseBlockIndex(name string) (uint64, bool) {
	if !strings.HasPrefix(name, "memory") {
		return 0, false
	}
	suffix := name[len("memory"):]
	if suffix == "" {
		return 0, false
	}
	index, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return 0, false
	}
	return index, true
}
