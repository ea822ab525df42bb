package memory

import (
	"fmt"
	"strings"
)

type Column int

const (
	ColumnRange Column = iota
	ColumnSize
	ColumnState
	ColumnRemovable
	ColumnBlock
	ColumnNode
)

// MaxColumns bounds how many column slots a single request may use,
// enough to name every column twice.
const MaxColumns = 12

var columnNames = []string{
	ColumnRange:     "RANGE",
	ColumnSize:      "SIZE",
	ColumnState:     "STATE",
	ColumnRemovable: "REMOVABLE",
	ColumnBlock:     "BLOCK",
	ColumnNode:      "NODE",
}

func (column Column) String() string {
	return columnNames[column]
}

func NewColumn(input string) (Column, error) {
	for id, name := range columnNames {
		if strings.EqualFold(input, name) {
			return Column(id), nil
		}
	}
	return 0, fmt.Errorf("unknown column: %s", input)
}

func DefaultColumns() []Column {
	return []Column{ColumnRange, ColumnSize, ColumnState, ColumnRemovable, ColumnBlock}
}

// ColumnSelection is the fixed set of output columns for one run. The
// derived Want flags double as the merge sensitivity list: requesting
// a column changes which blocks may coalesce, not just the display.
type ColumnSelection struct {
	Columns       []Column
	WantState     bool
	WantRemovable bool
	WantNode      bool
}

// ResolveColumns builds a ColumnSelection from requested column names.
// An empty request selects the default columns. Duplicates are allowed
// up to MaxColumns slots.
func ResolveColumns(requested []string) (ColumnSelection, error) {
	sel := ColumnSelection{}
	if len(requested) == 0 {
		sel.Columns = DefaultColumns()
	} else {
		if len(requested) > MaxColumns {
			return sel, fmt.Errorf("too many columns specified, the limit is %d columns", MaxColumns)
		}
		for _, name := range requested {
			column, err := NewColumn(name)
			if err != nil {
				return sel, err
			}
			sel.Columns = append(sel.Columns, column)
		}
	}
	sel.WantState = sel.Contains(ColumnState)
	sel.WantRemovable = sel.Contains(ColumnRemovable)
	sel.WantNode = sel.Contains(ColumnNode)
	return sel, nil
}

func (sel ColumnSelection) Contains(column Column) bool {
	for _, selected := range sel.Columns {
		if selected == column {
			return true
		}
	}
	return false
}
