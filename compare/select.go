package compare

import (
	"math"

	"github.com/inference-sim/funnelsim/sim"
)

// Direction says whether the best value is the smallest or the largest.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

// better reports whether v beats best under d. Equal values never win, which
// makes the first row in table order the tie winner.
func (d Direction) better(v, best float64) bool {
	if d == Maximize {
		return v > best
	}
	return v < best
}

// Selection is the row chosen for one metric and direction.
type Selection struct {
	Row       Row
	Index     int // position of Row in the table
	Metric    string
	Direction Direction
	Value     float64
}

// Select returns the first row achieving the extremum of metric. Rows whose
// value is missing or NaN cannot be compared and are skipped.
func Select(t *Table, metric string, dir Direction) (Selection, error) {
	if t == nil || len(t.Rows) == 0 {
		return Selection{}, &EmptyTableError{Metric: metric}
	}
	if metric == ConfigurationColumn || !t.HasColumn(metric) {
		return Selection{}, &MissingColumnError{Column: metric}
	}

	best := -1
	var bestVal float64
	for i, row := range t.Rows {
		v, ok := row.Cell(metric).Float()
		if !ok || math.IsNaN(v) {
			continue
		}
		if best < 0 || dir.better(v, bestVal) {
			best, bestVal = i, v
		}
	}
	if best < 0 {
		return Selection{}, &NoComparableRowsError{Column: metric, Rows: len(t.Rows)}
	}
	return Selection{
		Row:       t.Rows[best],
		Index:     best,
		Metric:    metric,
		Direction: dir,
		Value:     bestVal,
	}, nil
}

// Criterion is one fixed ranking used by the report.
type Criterion struct {
	Title     string
	Metric    string
	Direction Direction
}

// Criteria are the rankings highlighted in every report, in report order.
var Criteria = []Criterion{
	{Title: "Cheapest Funnel", Metric: sim.MetricTotalCost, Direction: Minimize},
	{Title: "Fastest Funnel", Metric: sim.MetricTotalTime, Direction: Minimize},
	{Title: "Highest Success Rate Funnel", Metric: sim.MetricSuccessRate, Direction: Maximize},
}

// Highlight pairs a criterion with the row it selected.
type Highlight struct {
	Criterion Criterion
	Selection Selection
}

// SelectAll runs every entry of Criteria against t and stops at the first
// error.
func SelectAll(t *Table) ([]Highlight, error) {
	out := make([]Highlight, 0, len(Criteria))
	for _, c := range Criteria {
		sel, err := Select(t, c.Metric, c.Direction)
		if err != nil {
			return nil, err
		}
		out = append(out, Highlight{Criterion: c, Selection: sel})
	}
	return out, nil
}
