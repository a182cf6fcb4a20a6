package util

import (
	"fmt"
	"io"
)

var (
	CellPadding = 2
	LeftPadding = 0
)

type Table struct {
	CellPadding int
	LeftPadding int

	headers []string
	rows    [][]string
}

func toString(obj any) string {
	if str, ok := obj.(string); ok {
		return str
	} else {
		return fmt.Sprintf("%v", obj)
	}
}

func NewTable(headers ...any) (table *Table) {
	table = &Table{
		CellPadding: CellPadding,
		LeftPadding: LeftPadding,
	}
	table.rows = [][]string{}
	if len(headers) == 0 {
		return
	}

	table.headers = []string{}
	for _, header := range headers {
		table.headers = append(table.headers, toString(header))
	}
	return
}

func (t *Table) WithLeftPadding(padding int) *Table {
	t.LeftPadding = padding
	return t
}

func (t *Table) WithCellPadding(padding int) *Table {
	t.CellPadding = padding
	return t
}

func (t *Table) AddRow(datas ...any) {
	row := []string{}
	for _, data := range datas {
		row = append(row, toString(data))
	}
	t.rows = append(t.rows, row)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.headers))
	for j, header := range t.headers {
		widths[j] = len(header)
	}
	for _, row := range t.rows {
		for j, data := range row {
			if j < len(widths) {
				widths[j] = max(widths[j], len(data))
			} else {
				widths = append(widths, len(data))
			}
		}
	}
	return widths
}

func (t *Table) printRow(w io.Writer, widths []int, row []string) {
	fmt.Fprintf(w, "%-*s", t.LeftPadding, "")
	for j, data := range row {
		if j == len(row)-1 {
			fmt.Fprintf(w, "%s", data)
		} else {
			fmt.Fprintf(w, "%-*s%-*s", widths[j], data, t.CellPadding, "")
		}
	}
	fmt.Fprintf(w, "\n")
}

func (t *Table) Print(w io.Writer) {
	widths := t.widths()

	if t.headers != nil {
		t.printRow(w, widths, t.headers)
	}
	for _, row := range t.rows {
		t.printRow(w, widths, row)
	}
}
