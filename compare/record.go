// Package compare turns per-configuration run summaries into one comparison
// table and picks the best configuration under each ranking criterion.
package compare

import (
	"github.com/inference-sim/funnelsim/sim"
)

// ConfigurationColumn is the comparison column holding configuration names.
// No metric may use this name.
const ConfigurationColumn = "Configuration"

// RequiredMetrics must be present in every run summary.
var RequiredMetrics = []string{
	sim.MetricTotalCost,
	sim.MetricTotalTime,
	sim.MetricSuccessRate,
	sim.MetricAvgCostPerCustomer,
	sim.MetricAvgTimePerCustomer,
}

// Record is the flattened, comparable summary of one configuration's run.
type Record struct {
	Configuration string
	Metrics       []sim.Metric
}

// Value returns the first metric with the given name.
func (r Record) Value(name string) (float64, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// Extract builds a Record from a run summary. The metric slice is copied so
// later changes to the summary do not leak into the record. Values are not
// checked: negative, NaN and infinite values pass through.
func Extract(configuration string, summary sim.Summary) (Record, error) {
	for _, m := range summary.Metrics {
		if m.Name == ConfigurationColumn {
			return Record{}, &ReservedColumnError{Configuration: configuration}
		}
	}
	for _, name := range RequiredMetrics {
		if _, ok := summary.Lookup(name); !ok {
			return Record{}, &MissingMetricError{Configuration: configuration, Metric: name}
		}
	}
	return Record{
		Configuration: configuration,
		Metrics:       append([]sim.Metric(nil), summary.Metrics...),
	}, nil
}
