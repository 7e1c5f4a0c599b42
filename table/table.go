// Package table holds the row/column model shared by the onboarding engine,
// the comparison pipeline and the report writers.
//
// A Table has an ordered header and rows of typed cells. Cells are text,
// numbers, or the explicit missing marker used when a row has no value for
// a column. Numbers are formatted with the shortest representation that
// parses back to the same float64, so rendered tables never lose precision.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MissingMarker is the rendered form of a missing cell.
const MissingMarker = "n/a"

// Kind identifies what a Cell holds.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindNumber
)

// Cell is a single table value.
type Cell struct {
	Kind Kind
	Text string
	Num  float64
}

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }

// Number returns a numeric cell. NaN and infinities are kept as-is.
func Number(v float64) Cell { return Cell{Kind: KindNumber, Num: v} }

// Int returns a numeric cell holding an integer count.
func Int(v int) Cell { return Number(float64(v)) }

// Missing returns the missing-cell sentinel.
func Missing() Cell { return Cell{Kind: KindMissing} }

// IsMissing reports whether c is the missing sentinel.
func (c Cell) IsMissing() bool { return c.Kind == KindMissing }

// Float returns the numeric value of c. ok is false for text and missing cells.
func (c Cell) Float() (v float64, ok bool) {
	if c.Kind != KindNumber {
		return 0, false
	}
	return c.Num, true
}

// String renders c the way every writer in this module prints it.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return FormatNumber(c.Num)
	default:
		return MissingMarker
	}
}

// FormatNumber formats v with the fewest digits that round-trip through
// strconv.ParseFloat.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber parses a cell rendered by String in a numeric column.
// The missing marker parses to Missing.
func ParseNumber(s string) (Cell, error) {
	s = strings.TrimSpace(s)
	if s == MissingMarker {
		return Missing(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Cell{}, fmt.Errorf("parsing numeric cell %q: %w", s, err)
	}
	return Number(v), nil
}

// Table is an ordered header plus rows of cells. Every row has exactly
// len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// New creates an empty table with the given header.
func New(columns ...string) *Table {
	return &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]Cell, 0),
	}
}

// AddRow appends a row. It panics if the row width does not match the
// header, which is always a programming error in the caller.
func (t *Table) AddRow(cells ...Cell) {
	if len(cells) != len(t.Columns) {
		panic(fmt.Sprintf("table: row has %d cells, header has %d columns", len(cells), len(t.Columns)))
	}
	t.Rows = append(t.Rows, append([]Cell(nil), cells...))
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of name in the header, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// IsNumeric reports whether column i holds no text cells. A column made only
// of missing cells counts as numeric. A table without rows has no numeric
// columns, since nothing shows what its columns hold.
func (t *Table) IsNumeric(i int) bool {
	if len(t.Rows) == 0 {
		return false
	}
	for _, row := range t.Rows {
		if row[i].Kind == KindText {
			return false
		}
	}
	return true
}
