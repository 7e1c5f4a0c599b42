package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber_RoundTripsThroughParse(t *testing.T) {
	// computed at run time: the constant expression 0.1 + 0.2 folds to exactly 0.3
	a, b := 0.1, 0.2
	values := []float64{0, 1, -1, a + b, 120, 1e21, 1.5e-9, 123456789.123456789, math.MaxFloat64, math.SmallestNonzeroFloat64}
	require.NotEqual(t, 0.3, a+b)
	for _, v := range values {
		s := FormatNumber(v)
		c, err := ParseNumber(s)
		require.NoError(t, err, "value %v rendered as %q", v, s)
		got, ok := c.Float()
		require.True(t, ok)
		assert.Equal(t, v, got, "rendered as %q", s)
	}
}

func TestFormatNumber_NonFiniteValues(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.v))
			c, err := ParseNumber(tt.want)
			require.NoError(t, err)
			got, _ := c.Float()
			if math.IsNaN(tt.v) {
				assert.True(t, math.IsNaN(got))
			} else {
				assert.Equal(t, tt.v, got)
			}
		})
	}
}

func TestFormatNumber_KeepsLossyDigits(t *testing.T) {
	a, b := 0.1, 0.2
	assert.Equal(t, "0.30000000000000004", FormatNumber(a+b))
	assert.Equal(t, "0.3", FormatNumber(0.3))
}

func TestParseNumber_MissingMarker(t *testing.T) {
	c, err := ParseNumber(" n/a ")
	require.NoError(t, err)
	assert.True(t, c.IsMissing())
}

func TestParseNumber_RejectsText(t *testing.T) {
	_, err := ParseNumber("cheap")
	assert.Error(t, err)
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "abc", Text("abc").String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, MissingMarker, Missing().String())
}

func TestTable_AddRow_CopiesCells(t *testing.T) {
	// GIVEN a row slice owned by the caller
	tb := New("a", "b")
	row := []Cell{Int(1), Int(2)}
	tb.AddRow(row...)

	// WHEN the caller mutates it afterwards
	row[0] = Int(99)

	// THEN the table is unaffected
	v, _ := tb.Rows[0][0].Float()
	assert.Equal(t, 1.0, v)
}

func TestTable_AddRow_WidthMismatchPanics(t *testing.T) {
	tb := New("a", "b")
	assert.Panics(t, func() { tb.AddRow(Int(1)) })
}

func TestTable_IsNumeric(t *testing.T) {
	tb := New("name", "value", "gap")
	tb.AddRow(Text("x"), Int(1), Missing())
	tb.AddRow(Text("y"), Missing(), Missing())

	assert.False(t, tb.IsNumeric(0))
	assert.True(t, tb.IsNumeric(1))
	assert.True(t, tb.IsNumeric(2), "all-missing columns count as numeric")
}

func TestTable_IsNumeric_EmptyTableHasNoNumericColumns(t *testing.T) {
	// GIVEN a header without rows
	tb := New("Configuration", "Total Cost")

	// THEN no column claims to be numeric
	assert.False(t, tb.IsNumeric(0))
	assert.False(t, tb.IsNumeric(1))
}

func TestTable_ColumnIndex(t *testing.T) {
	tb := New("a", "b")
	tb.AddRow(Int(1), Int(2))

	assert.Equal(t, 1, tb.ColumnIndex("b"))
	assert.Equal(t, -1, tb.ColumnIndex("c"))
}
