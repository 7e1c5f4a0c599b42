package pipeline

import "fmt"

// ConfigurationDiscoveryError reports that the configuration set could not
// be determined. An empty match is not an error.
type ConfigurationDiscoveryError struct {
	Pattern string
	Err     error
}

func (e *ConfigurationDiscoveryError) Error() string {
	return fmt.Sprintf("discovering configurations with %q: %v", e.Pattern, e.Err)
}

func (e *ConfigurationDiscoveryError) Unwrap() error { return e.Err }

// DuplicateNameError reports two configurations whose names differ only by
// extension (or not at all), so their rows and exports would clash.
type DuplicateNameError struct {
	Name  string
	Paths [2]string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("configurations %s and %s share the name %q", e.Paths[0], e.Paths[1], e.Name)
}

// SimulationError attributes a simulation failure to its configuration.
type SimulationError struct {
	Configuration string
	Err           error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulating %s: %v", e.Configuration, e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }
