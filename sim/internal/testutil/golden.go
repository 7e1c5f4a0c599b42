// Package testutil provides shared test infrastructure for the funnel
// simulator: the golden dataset of funnels whose outcome is exact, and
// float assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one deterministic funnel: every success rate is 0 or 1
// and every time_stdev is 0, so the outcome does not depend on the seed.
type GoldenTestCase struct {
	Name      string         `json:"name"`
	Customers int            `json:"customers"`
	Seed      int64          `json:"seed"`
	Modules   []GoldenModule `json:"modules"`
	Metrics   GoldenMetrics  `json:"metrics"`
}

// GoldenModule mirrors the YAML module fields.
type GoldenModule struct {
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Time        float64 `json:"time"`
	SuccessRate float64 `json:"success_rate"`
	MaxAttempts int     `json:"max_attempts"`
}

// GoldenMetrics represents the expected summary of a golden test case.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	Onboarded int `json:"onboarded"`

	TotalCost            float64 `json:"total_cost"`
	TotalTime            float64 `json:"total_time"`
	SuccessRate          float64 `json:"success_rate"`
	AvgCostPerCustomer   float64 `json:"avg_cost_per_customer"`
	AvgTimePerCustomer   float64 `json:"avg_time_per_customer"`
	LargestDropOffModule string  `json:"largest_drop_off_module"` // "" when nobody drops out
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no test cases")
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
