package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSeed is used when a funnel file does not set seed.
const DefaultSeed int64 = 1

// FunnelConfig is one onboarding funnel: an ordered list of modules every
// customer walks through.
// Loaded from YAML via LoadFunnelConfig(path).
type FunnelConfig struct {
	Name    string         `yaml:"name,omitempty"`
	Seed    *int64         `yaml:"seed,omitempty"`
	Modules []ModuleConfig `yaml:"modules"`
}

// ModuleConfig is one onboarding step.
type ModuleConfig struct {
	Name        string  `yaml:"name"`
	Cost        float64 `yaml:"cost"`         // cost per attempt
	Time        float64 `yaml:"time"`         // mean minutes per attempt
	TimeStdev   float64 `yaml:"time_stdev"`   // 0 = deterministic
	SuccessRate float64 `yaml:"success_rate"` // probability one attempt succeeds
	MaxAttempts int     `yaml:"max_attempts,omitempty"`
}

// Attempts returns the number of tries a customer gets (at least 1).
func (m ModuleConfig) Attempts() int {
	if m.MaxAttempts <= 0 {
		return 1
	}
	return m.MaxAttempts
}

// SeedOrDefault returns the configured seed, or DefaultSeed.
func (c *FunnelConfig) SeedOrDefault() int64 {
	if c.Seed == nil {
		return DefaultSeed
	}
	return *c.Seed
}

// LoadFunnelConfig reads and parses a YAML funnel file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadFunnelConfig(path string) (*FunnelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading funnel config: %w", err)
	}
	cfg, err := ParseFunnelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseFunnelConfig decodes a funnel from YAML bytes. An empty document is
// an error.
func ParseFunnelConfig(data []byte) (*FunnelConfig, error) {
	var cfg FunnelConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing funnel config: empty document")
		}
		return nil, fmt.Errorf("parsing funnel config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that all fields in the funnel are valid.
func (c *FunnelConfig) Validate() error {
	if len(c.Modules) == 0 {
		return fmt.Errorf("at least one module required")
	}
	seen := make(map[string]bool, len(c.Modules))
	for i := range c.Modules {
		m := &c.Modules[i]
		if err := validateModule(m, i); err != nil {
			return err
		}
		if seen[m.Name] {
			return fmt.Errorf("module[%d]: duplicate module name %q", i, m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

func validateModule(m *ModuleConfig, idx int) error {
	prefix := fmt.Sprintf("module[%d]", idx)
	if m.Name == "" {
		return fmt.Errorf("%s: name is required", prefix)
	}
	if err := validateFiniteNonNegative(prefix+".cost", m.Cost); err != nil {
		return err
	}
	if err := validateFiniteNonNegative(prefix+".time", m.Time); err != nil {
		return err
	}
	if err := validateFiniteNonNegative(prefix+".time_stdev", m.TimeStdev); err != nil {
		return err
	}
	if math.IsNaN(m.SuccessRate) || m.SuccessRate < 0 || m.SuccessRate > 1 {
		return fmt.Errorf("%s: success_rate must be in [0, 1], got %f", prefix, m.SuccessRate)
	}
	if m.MaxAttempts < 0 {
		return fmt.Errorf("%s: max_attempts must be non-negative, got %d", prefix, m.MaxAttempts)
	}
	return nil
}

func validateFiniteNonNegative(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val < 0 {
		return fmt.Errorf("%s must be non-negative, got %f", name, val)
	}
	return nil
}
