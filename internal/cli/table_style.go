package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	pkgstrings "shoulders/pkg/strings"
)

// PlainStyle renders kubectl-style tables: no borders or separators,
// upper-case headers and three spaces between columns. The output is easy
// to pipe into grep, awk or cut.
func PlainStyle() table.Style {
	style := table.StyleDefault
	style.Name = "shoulders-plain"
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "   "
	style.Options = table.Options{}
	style.Format.Header = text.FormatUpper
	style.Format.HeaderAlign = text.AlignLeft
	return style
}

// Table collects rows and renders them with PlainStyle.
type Table struct {
	w         table.Writer
	header    table.Row
	noHeaders bool
	rows      int
}

// NewTable creates a table writing to out.
func NewTable(out io.Writer, noHeaders bool) *Table {
	w := table.NewWriter()
	w.SetOutputMirror(out)
	w.SetStyle(PlainStyle())
	return &Table{w: w, noHeaders: noHeaders}
}

// Header sets the column names.
func (t *Table) Header(columns ...string) {
	t.header = make(table.Row, len(columns))
	for i, c := range columns {
		t.header[i] = c
	}
}

// Row appends a row. Empty strings render as "-", long strings are cut.
func (t *Table) Row(cells ...any) {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case string:
			if v == "" {
				v = "-"
			}
			row[i] = pkgstrings.TruncateCell(v, pkgstrings.DefaultCellMaxLen)
		default:
			row[i] = v
		}
	}
	t.w.AppendRow(row)
	t.rows++
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Render writes the table. Nothing is written when there are no rows and
// headers are suppressed.
func (t *Table) Render() {
	if t.rows == 0 && (t.noHeaders || t.header == nil) {
		return
	}
	if !t.noHeaders && t.header != nil {
		t.w.AppendHeader(t.header)
	}
	t.w.Render()
}
