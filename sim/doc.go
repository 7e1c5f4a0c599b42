// Package sim simulates customers moving through an onboarding funnel.
//
// # Reading Guide
//
//   - config.go: the YAML funnel format (modules with cost, time and success rate)
//   - simulator.go: the per-customer walk through modules and the detail table
//   - metrics.go: summary metrics, time distributions and the summary text
//   - rng.go: per-module partitioned RNG so runs are reproducible from a seed
//
// A run is deterministic: the same funnel file and customer count always
// produce an identical RunResult.
package sim
