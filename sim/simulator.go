// sim/simulator.go
package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/funnelsim/table"
)

// Detail table columns, one row per module.
const (
	ColumnModule         = "Module"
	ColumnEntered        = "Entered"
	ColumnCompleted      = "Completed"
	ColumnAttempts       = "Attempts"
	ColumnDropOffRate    = "Drop-off Rate"
	ColumnTotalCost      = "Total Cost"
	ColumnTotalTime      = "Total Time"
	ColumnAvgAttemptTime = "Average Time per Attempt"
)

var detailColumns = []string{
	ColumnModule, ColumnEntered, ColumnCompleted, ColumnAttempts,
	ColumnDropOffRate, ColumnTotalCost, ColumnTotalTime, ColumnAvgAttemptTime,
}

// RunResult is the output of one funnel simulation. It is never mutated
// after Run returns it.
type RunResult struct {
	Details *table.Table
	Summary Summary
}

// Simulator walks customers through a funnel's modules in order.
type Simulator struct {
	Config    *FunnelConfig
	Customers int

	rng     *PartitionedRNG
	modules []moduleStats
	costs   []float64 // per customer
	times   []float64 // per customer

	onboarded int
}

// NewSimulator validates cfg and prepares a run over customers customers.
func NewSimulator(cfg *FunnelConfig, customers int) (*Simulator, error) {
	if customers <= 0 {
		return nil, fmt.Errorf("customer count must be positive, got %d", customers)
	}
	if cfg == nil {
		return nil, fmt.Errorf("nil funnel config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid funnel config: %w", err)
	}
	modules := make([]moduleStats, len(cfg.Modules))
	for i, m := range cfg.Modules {
		modules[i].name = m.Name
	}
	return &Simulator{
		Config:    cfg,
		Customers: customers,
		rng:       NewPartitionedRNG(NewSimulationKey(cfg.SeedOrDefault())),
		modules:   modules,
		costs:     make([]float64, 0, customers),
		times:     make([]float64, 0, customers),
	}, nil
}

// Run simulates every customer and returns the result. Call it once.
func (s *Simulator) Run() *RunResult {
	for c := 0; c < s.Customers; c++ {
		cost, elapsed, ok := s.simulateCustomer()
		s.costs = append(s.costs, cost)
		s.times = append(s.times, elapsed)
		if ok {
			s.onboarded++
		}
	}
	logrus.Debugf("funnel %q: %d/%d customers onboarded", s.Config.Name, s.onboarded, s.Customers)

	return &RunResult{
		Details: s.detailTable(),
		Summary: buildSummary(s.Config.Name, s.Customers, s.onboarded, s.costs, s.times, s.modules),
	}
}

// simulateCustomer returns what one customer cost and how long they spent,
// and whether they finished every module.
func (s *Simulator) simulateCustomer() (cost, elapsed float64, onboarded bool) {
	for i, m := range s.Config.Modules {
		rng := s.rng.ForSubsystem(SubsystemModule(i))
		st := &s.modules[i]
		st.entered++

		passed := false
		for a := 0; a < m.Attempts(); a++ {
			t := sampleTime(rng, m.Time, m.TimeStdev)
			st.attempts++
			st.cost += m.Cost
			st.time += t
			cost += m.Cost
			elapsed += t
			if rng.Float64() < m.SuccessRate {
				passed = true
				break
			}
		}
		if !passed {
			return cost, elapsed, false
		}
		st.completed++
	}
	return cost, elapsed, true
}

// sampleTime draws an attempt duration from a Gaussian truncated at zero.
func sampleTime(rng *rand.Rand, mean, stdev float64) float64 {
	if stdev == 0 {
		return mean
	}
	t := mean + stdev*rng.NormFloat64()
	if t < 0 {
		return 0
	}
	return t
}

func (s *Simulator) detailTable() *table.Table {
	t := table.New(detailColumns...)
	for i := range s.modules {
		m := &s.modules[i]
		avg := table.Missing()
		if m.attempts > 0 {
			avg = table.Number(m.time / float64(m.attempts))
		}
		t.AddRow(
			table.Text(m.name),
			table.Int(m.entered),
			table.Int(m.completed),
			table.Int(m.attempts),
			table.Number(m.dropOffRate()),
			table.Number(m.cost),
			table.Number(m.time),
			avg,
		)
	}
	return t
}

// Simulate loads the funnel at path and runs it for customers customers.
// Errors carry the path.
func Simulate(customers int, path string) (*RunResult, error) {
	cfg, err := LoadFunnelConfig(path)
	if err != nil {
		return nil, err
	}
	s, err := NewSimulator(cfg, customers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s.Run(), nil
}
