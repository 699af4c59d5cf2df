// internal/scenariofile/scenariofile.go
// YAML run files: a named scenario plus optional overrides for the
// grid and coupling constants. The CLI merges these under its own
// flags, so a run file is a reproducible baseline, not a lock.

package scenariofile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunFile mirrors the YAML schema. Pointer fields distinguish "absent"
// from zero.
type RunFile struct {
	Scenario       string   `yaml:"scenario"`
	Grid           *int     `yaml:"grid,omitempty"`
	Length         *float64 `yaml:"length,omitempty"`
	Duration       *float64 `yaml:"duration,omitempty"`
	Dt             *float64 `yaml:"dt,omitempty"`
	ReportInterval *float64 `yaml:"report_interval,omitempty"`

	Coupling struct {
		Lambda    *float64 `yaml:"lambda,omitempty"`
		Kappa     *float64 `yaml:"kappa,omitempty"`
		TSigma    *float64 `yaml:"t_sigma,omitempty"`
		Stiffness *float64 `yaml:"stiffness,omitempty"`
	} `yaml:"coupling,omitempty"`
}

// Load reads and validates a run file.
func Load(path string) (RunFile, error) {
	var rf RunFile
	raw, err := os.ReadFile(path)
	if err != nil {
		return rf, fmt.Errorf("scenariofile: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a run file from bytes.
func Parse(raw []byte) (RunFile, error) {
	var rf RunFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return rf, fmt.Errorf("scenariofile: parse: %w", err)
	}
	if rf.Scenario == "" {
		return rf, fmt.Errorf("scenariofile: missing scenario name")
	}
	if rf.Grid != nil && *rf.Grid < 4 {
		return rf, fmt.Errorf("scenariofile: grid must be ≥ 4, got %d", *rf.Grid)
	}
	for name, v := range map[string]*float64{
		"length":   rf.Length,
		"duration": rf.Duration,
		"dt":       rf.Dt,
	} {
		if v != nil && *v <= 0 {
			return rf, fmt.Errorf("scenariofile: %s must be > 0, got %g", name, *v)
		}
	}
	return rf, nil
}
