// Aggregates per-customer outcomes into the funnel summary.

package sim

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Summary metric names. The first five are the ones every run must expose
// for comparison.
const (
	MetricTotalCost          = "Total Cost"
	MetricTotalTime          = "Total Time"
	MetricSuccessRate        = "Success Rate"
	MetricAvgCostPerCustomer = "Average Cost per Customer"
	MetricAvgTimePerCustomer = "Average Time per Customer"

	MetricCustomers          = "Customers"
	MetricOnboarded          = "Onboarded Customers"
	MetricMedianTimePerCust  = "Median Time per Customer"
	MetricP95TimePerCustomer = "P95 Time per Customer"
)

// Metric is one named summary value.
type Metric struct {
	Name  string
	Value float64
}

// Summary is the aggregate view of one run: ordered metrics plus a
// human-readable rendering of them.
type Summary struct {
	Metrics []Metric
	Text    string
}

// Lookup returns the value of the named metric.
func (s Summary) Lookup(name string) (float64, bool) {
	for _, m := range s.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// Distribution captures statistical summary of a metric.
type Distribution struct {
	Mean  float64
	P50   float64
	P95   float64
	Min   float64
	Max   float64
	Count int
}

// NewDistribution computes a Distribution from raw values.
// Returns zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	return Distribution{
		Mean:  sum / float64(len(sorted)),
		P50:   percentile(sorted, 50),
		P95:   percentile(sorted, 95),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
}

// percentile computes the p-th percentile using linear interpolation.
// Input must be sorted.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// moduleStats accumulates one module's counters over a run.
type moduleStats struct {
	name      string
	entered   int
	completed int
	attempts  int
	cost      float64
	time      float64
}

func (m *moduleStats) dropOffRate() float64 {
	if m.entered == 0 {
		return 0
	}
	return float64(m.entered-m.completed) / float64(m.entered)
}

// buildSummary turns run counters into the ordered metric list and text.
func buildSummary(funnel string, customers, onboarded int, costs, times []float64, modules []moduleStats) Summary {
	totalCost, totalTime := 0.0, 0.0
	for i := range costs {
		totalCost += costs[i]
		totalTime += times[i]
	}
	n := float64(customers)
	dist := NewDistribution(times)

	metrics := []Metric{
		{MetricCustomers, n},
		{MetricOnboarded, float64(onboarded)},
		{MetricSuccessRate, float64(onboarded) / n},
		{MetricTotalCost, totalCost},
		{MetricTotalTime, totalTime},
		{MetricAvgCostPerCustomer, totalCost / n},
		{MetricAvgTimePerCustomer, totalTime / n},
		{MetricMedianTimePerCust, dist.P50},
		{MetricP95TimePerCustomer, dist.P95},
	}

	var b strings.Builder
	if funnel != "" {
		fmt.Fprintf(&b, "Funnel: %s\n", funnel)
	}
	fmt.Fprintf(&b, "Customers simulated: %d\n", customers)
	fmt.Fprintf(&b, "Customers onboarded: %d\n", onboarded)
	fmt.Fprintf(&b, "Success rate: %.2f%%\n", 100*float64(onboarded)/n)
	fmt.Fprintf(&b, "Total cost: %.2f\n", totalCost)
	fmt.Fprintf(&b, "Total time: %.2f minutes\n", totalTime)
	fmt.Fprintf(&b, "Average cost per customer: %.2f\n", totalCost/n)
	fmt.Fprintf(&b, "Average time per customer: %.2f minutes\n", totalTime/n)
	fmt.Fprintf(&b, "Time per customer (p50 / p95 / max): %.2f / %.2f / %.2f minutes", dist.P50, dist.P95, dist.Max)
	if worst := worstModule(modules); worst != nil {
		fmt.Fprintf(&b, "\nLargest drop-off: %s (%.2f%% of %d entrants)", worst.name, 100*worst.dropOffRate(), worst.entered)
	}

	return Summary{Metrics: metrics, Text: b.String()}
}

// worstModule returns the module losing the largest share of its entrants,
// first in funnel order on ties. Nil when nobody dropped out.
func worstModule(modules []moduleStats) *moduleStats {
	var worst *moduleStats
	for i := range modules {
		m := &modules[i]
		if m.entered == m.completed {
			continue
		}
		if worst == nil || m.dropOffRate() > worst.dropOffRate() {
			worst = m
		}
	}
	return worst
}
