package compare

import (
	"github.com/inference-sim/funnelsim/table"
)

// Row is one configuration in the comparison table.
type Row struct {
	Configuration string
	cells         map[string]table.Cell
}

// Cell returns the row's value for column. Columns the row has no metric for
// return the missing marker.
func (r Row) Cell(column string) table.Cell {
	if column == ConfigurationColumn {
		return table.Text(r.Configuration)
	}
	if c, ok := r.cells[column]; ok {
		return c
	}
	return table.Missing()
}

// Table is the comparison table: one row per configuration in discovery
// order, columns = ConfigurationColumn followed by every metric name in
// first-appearance order.
type Table struct {
	Columns []string
	Rows    []Row
}

// BuildTable assembles records into a table. Row order is the input order;
// records missing some columns are padded with the missing marker instead of
// being dropped. Zero records give a zero-row table.
func BuildTable(records []Record) *Table {
	t := &Table{
		Columns: []string{ConfigurationColumn},
		Rows:    make([]Row, 0, len(records)),
	}
	seen := map[string]bool{ConfigurationColumn: true}
	for _, rec := range records {
		row := Row{Configuration: rec.Configuration, cells: make(map[string]table.Cell, len(rec.Metrics))}
		for _, m := range rec.Metrics {
			if !seen[m.Name] {
				seen[m.Name] = true
				t.Columns = append(t.Columns, m.Name)
			}
			if _, dup := row.cells[m.Name]; !dup {
				row.cells[m.Name] = table.Number(m.Value)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Project returns the given columns of every row, in table order. Unknown
// columns are filled with the missing marker.
func (t *Table) Project(columns ...string) *table.Table {
	out := table.New(columns...)
	for _, row := range t.Rows {
		out.AddRow(row.project(columns)...)
	}
	return out
}

// Full returns every column of every row.
func (t *Table) Full() *table.Table {
	return t.Project(t.Columns...)
}

// RowTable returns a single-row table holding every column of row.
func (t *Table) RowTable(row Row) *table.Table {
	out := table.New(t.Columns...)
	out.AddRow(row.project(t.Columns)...)
	return out
}

func (r Row) project(columns []string) []table.Cell {
	cells := make([]table.Cell, len(columns))
	for i, c := range columns {
		cells[i] = r.Cell(c)
	}
	return cells
}
