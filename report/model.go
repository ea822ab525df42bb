package report

import (
	"fmt"

	"github.com/michalbiesek/lsmem/memory"
	"github.com/michalbiesek/lsmem/util"
)

// Model maps merged ranges to display rows in the order fixed by the
// column selection. It only reads the ranges, it never changes them.
type Model struct {
	Selection memory.ColumnSelection
	BlockSize uint64
	Ranges    []memory.Block
	Totals    memory.Totals
	Bytes     bool
	HaveNodes bool
}

func (model *Model) Headers() []string {
	headers := make([]string, len(model.Selection.Columns))
	for i, column := range model.Selection.Columns {
		headers[i] = column.String()
	}
	return headers
}

func (model *Model) Rows() [][]string {
	rows := make([][]string, len(model.Ranges))
	for i, blockRange := range model.Ranges {
		cells := make([]string, len(model.Selection.Columns))
		for j, column := range model.Selection.Columns {
			cells[j] = model.cell(column, blockRange)
		}
		rows[i] = cells
	}
	return rows
}

func (model *Model) cell(column memory.Column, blockRange memory.Block) string {
	switch column {
	case memory.ColumnRange:
		start := blockRange.Index * model.BlockSize
		size := blockRange.Count * model.BlockSize
		return fmt.Sprintf("0x%016x-0x%016x", start, start+size-1)
	case memory.ColumnSize:
		if model.Bytes {
			return fmt.Sprintf("%d", blockRange.Count*model.BlockSize)
		}
		return util.HumanSize(blockRange.Count * model.BlockSize)
	case memory.ColumnState:
		return blockRange.State.String()
	case memory.ColumnRemovable:
		// Hardware cannot report removability of offline memory.
		if blockRange.State != memory.StateOnline {
			return ""
		}
		if blockRange.Removable {
			return "yes"
		}
		return "no"
	case memory.ColumnBlock:
		if blockRange.Count == 1 {
			return fmt.Sprintf("%d", blockRange.Index)
		}
		return fmt.Sprintf("%d-%d", blockRange.Index, blockRange.Index+blockRange.Count-1)
	case memory.ColumnNode:
		if !model.HaveNodes {
			return ""
		}
		return fmt.Sprintf("%d", blockRange.Node)
	}
	return ""
}

// Summary returns the fixed three-line footer printed after the table.
func (model *Model) Summary() []string {
	return []string{
		fmt.Sprintf("Memory block size   : %8s", util.HumanSize(model.BlockSize)),
		fmt.Sprintf("Total online memory : %8s", util.HumanSize(model.Totals.Online)),
		fmt.Sprintf("Total offline memory: %8s", util.HumanSize(model.Totals.Offline)),
	}
}
