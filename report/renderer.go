package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/michalbiesek/lsmem/memory"
)

type Format int

const (
	FormatTable Format = iota
	FormatJSON
	FormatRaw
	FormatPairs
)

// Renderer prints a Model in one of the four output formats.
type Renderer struct {
	out        io.Writer
	format     Format
	noHeadings bool
}

func NewRenderer(out io.Writer, format Format, noHeadings bool) *Renderer {
	return &Renderer{out: out, format: format, noHeadings: noHeadings}
}

func (renderer *Renderer) Render(model *Model) error {
	switch renderer.format {
	case FormatJSON:
		return renderer.renderJSON(model)
	case FormatRaw:
		return renderer.renderRaw(model)
	case FormatPairs:
		return renderer.renderPairs(model)
	default:
		return renderer.renderTable(model)
	}
}

func alignRight(column memory.Column) bool {
	switch column {
	case memory.ColumnSize, memory.ColumnRemovable, memory.ColumnBlock, memory.ColumnNode:
		return true
	}
	return false
}

func (renderer *Renderer) renderTable(model *Model) error {
	headers := model.Headers()
	rows := model.Rows()

	widths := make([]int, len(headers))
	if !renderer.noHeadings {
		for i, header := range headers {
			widths[i] = len(header)
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeLine := func(cells []string) error {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			if alignRight(model.Selection.Columns[i]) {
				padded[i] = fmt.Sprintf("%*s", widths[i], cell)
			} else {
				padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
			}
		}
		line := strings.TrimRight(strings.Join(padded, " "), " ")
		_, err := fmt.Fprintln(renderer.out, line)
		return err
	}

	if !renderer.noHeadings {
		if err := writeLine(headers); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := writeLine(row); err != nil {
			return err
		}
	}
	return nil
}

// renderJSON writes the libsmartcols-style document, one object per
// range under a single "memory" key, cells keyed by lowercased column
// name in selection order.
func (renderer *Renderer) renderJSON(model *Model) error {
	headers := model.Headers()
	buf := &bytes.Buffer{}
	buf.WriteString("{\n   \"memory\": [\n")
	rows := model.Rows()
	for i, row := range rows {
		buf.WriteString("      {")
		for j, cell := range row {
			if j > 0 {
				buf.WriteString(", ")
			}
			key, err := json.Marshal(strings.ToLower(headers[j]))
			if err != nil {
				return err
			}
			value, err := json.Marshal(cell)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteString(": ")
			buf.Write(value)
		}
		buf.WriteString("}")
		if i < len(rows)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("   ]\n}\n")
	_, err := renderer.out.Write(buf.Bytes())
	return err
}

func (renderer *Renderer) renderRaw(model *Model) error {
	if !renderer.noHeadings {
		if _, err := fmt.Fprintln(renderer.out, strings.Join(model.Headers(), " ")); err != nil {
			return err
		}
	}
	for _, row := range model.Rows() {
		if _, err := fmt.Fprintln(renderer.out, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}

func (renderer *Renderer) renderPairs(model *Model) error {
	headers := model.Headers()
	for _, row := range model.Rows() {
		pairs := make([]string, len(row))
		for i, cell := range row {
			pairs[i] = fmt.Sprintf("%s=%q", headers[i], cell)
		}
		if _, err := fmt.Fprintln(renderer.out, strings.Join(pairs, " ")); err != nil {
			return err
		}
	}
	return nil
}
