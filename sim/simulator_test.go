package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deterministicFunnel() *FunnelConfig {
	return &FunnelConfig{
		Name: "sure-thing",
		Modules: []ModuleConfig{
			{Name: "Signup", Cost: 2, Time: 5, SuccessRate: 1},
			{Name: "Setup", Cost: 3, Time: 10, SuccessRate: 1},
		},
	}
}

func metric(t *testing.T, s Summary, name string) float64 {
	t.Helper()
	v, ok := s.Lookup(name)
	require.True(t, ok, "metric %q missing", name)
	return v
}

func TestSimulator_Run_DeterministicFunnelHasExactTotals(t *testing.T) {
	// GIVEN a funnel where every attempt succeeds with fixed time
	s, err := NewSimulator(deterministicFunnel(), 10)
	require.NoError(t, err)

	// WHEN run
	res := s.Run()

	// THEN every customer onboards and totals are exact
	assert.Equal(t, 10.0, metric(t, res.Summary, MetricCustomers))
	assert.Equal(t, 10.0, metric(t, res.Summary, MetricOnboarded))
	assert.Equal(t, 1.0, metric(t, res.Summary, MetricSuccessRate))
	assert.Equal(t, 50.0, metric(t, res.Summary, MetricTotalCost))
	assert.Equal(t, 150.0, metric(t, res.Summary, MetricTotalTime))
	assert.Equal(t, 5.0, metric(t, res.Summary, MetricAvgCostPerCustomer))
	assert.Equal(t, 15.0, metric(t, res.Summary, MetricAvgTimePerCustomer))
	assert.Equal(t, 15.0, metric(t, res.Summary, MetricMedianTimePerCust))
	assert.Equal(t, 15.0, metric(t, res.Summary, MetricP95TimePerCustomer))
}

func TestSimulator_Run_ExposesRequiredMetricsInOrder(t *testing.T) {
	s, err := NewSimulator(deterministicFunnel(), 1)
	require.NoError(t, err)
	res := s.Run()

	names := make([]string, 0, len(res.Summary.Metrics))
	for _, m := range res.Summary.Metrics {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{
		MetricCustomers, MetricOnboarded, MetricSuccessRate, MetricTotalCost, MetricTotalTime,
		MetricAvgCostPerCustomer, MetricAvgTimePerCustomer, MetricMedianTimePerCust, MetricP95TimePerCustomer,
	}, names)
}

func TestSimulator_Run_FailingModuleStopsCustomers(t *testing.T) {
	// GIVEN a second module nobody passes, with two attempts
	cfg := &FunnelConfig{Modules: []ModuleConfig{
		{Name: "Signup", Cost: 1, Time: 1, SuccessRate: 1},
		{Name: "KYC", Cost: 4, Time: 2, SuccessRate: 0, MaxAttempts: 2},
		{Name: "Activation", Cost: 100, Time: 100, SuccessRate: 1},
	}}
	s, err := NewSimulator(cfg, 5)
	require.NoError(t, err)

	// WHEN run
	res := s.Run()

	// THEN nobody onboards, attempts are paid for, and the last module is never entered
	assert.Equal(t, 0.0, metric(t, res.Summary, MetricSuccessRate))
	assert.Equal(t, 5*(1.0+2*4.0), metric(t, res.Summary, MetricTotalCost))

	d := res.Details
	require.Equal(t, 3, d.Len())
	entered, _ := d.Rows[2][d.ColumnIndex(ColumnEntered)].Float()
	assert.Equal(t, 0.0, entered)
	assert.True(t, d.Rows[2][d.ColumnIndex(ColumnAvgAttemptTime)].IsMissing(), "no attempts means no average")

	attempts, _ := d.Rows[1][d.ColumnIndex(ColumnAttempts)].Float()
	assert.Equal(t, 10.0, attempts)
	drop, _ := d.Rows[1][d.ColumnIndex(ColumnDropOffRate)].Float()
	assert.Equal(t, 1.0, drop)

	assert.Contains(t, res.Summary.Text, "Largest drop-off: KYC")
}

func TestSimulator_Run_SameSeedSameResult(t *testing.T) {
	cfg := func() *FunnelConfig {
		seed := int64(99)
		return &FunnelConfig{Seed: &seed, Modules: []ModuleConfig{
			{Name: "A", Cost: 1, Time: 3, TimeStdev: 2, SuccessRate: 0.7, MaxAttempts: 2},
			{Name: "B", Cost: 2, Time: 5, TimeStdev: 1, SuccessRate: 0.6},
		}}
	}
	s1, err := NewSimulator(cfg(), 200)
	require.NoError(t, err)
	s2, err := NewSimulator(cfg(), 200)
	require.NoError(t, err)

	r1, r2 := s1.Run(), s2.Run()

	assert.Equal(t, r1.Summary, r2.Summary)
	assert.Equal(t, r1.Details, r2.Details)
}

func TestSimulator_Run_SuccessRateWithinBounds(t *testing.T) {
	seed := int64(3)
	cfg := &FunnelConfig{Seed: &seed, Modules: []ModuleConfig{
		{Name: "A", Cost: 1, Time: 1, TimeStdev: 5, SuccessRate: 0.5},
	}}
	s, err := NewSimulator(cfg, 1000)
	require.NoError(t, err)
	res := s.Run()

	rate := metric(t, res.Summary, MetricSuccessRate)
	assert.Greater(t, rate, 0.4)
	assert.Less(t, rate, 0.6)
	assert.GreaterOrEqual(t, metric(t, res.Summary, MetricTotalTime), 0.0, "truncated times are never negative")
}

func TestNewSimulator_RejectsBadInput(t *testing.T) {
	_, err := NewSimulator(deterministicFunnel(), 0)
	assert.ErrorContains(t, err, "customer count must be positive")

	_, err = NewSimulator(nil, 10)
	assert.Error(t, err)

	_, err = NewSimulator(&FunnelConfig{}, 10)
	assert.ErrorContains(t, err, "invalid funnel config")
}

func TestSimulate_LoadsFileAndRuns(t *testing.T) {
	path := writeFunnel(t, selfServeYAML)

	res, err := Simulate(50, path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Details.Len())
	assert.Contains(t, res.Summary.Text, "Funnel: self-serve")
	assert.Contains(t, res.Summary.Text, "Customers simulated: 50")
}

func TestSimulate_ErrorNamesPath(t *testing.T) {
	path := writeFunnel(t, "modules: []\n")
	_, err := Simulate(10, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
