package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/cubeworks/procure-cli/internal/model"
)

// Scenario overrides program parameters and solve tuning for a single run
// without editing the input tables. Nil fields leave the loaded value alone.
type Scenario struct {
	NumSatellites    *int     `yaml:"num_satellites"`
	AssemblyStartDay *int     `yaml:"assembly_start_day"`
	BigM             *float64 `yaml:"big_m"`
}

// LoadScenario reads a scenario override file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read scenario %s", path)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, eris.Wrap(err, "config: parse scenario")
	}

	if s.NumSatellites != nil && *s.NumSatellites <= 0 {
		return nil, eris.Errorf("config: scenario num_satellites must be positive, got %d", *s.NumSatellites)
	}
	if s.AssemblyStartDay != nil && *s.AssemblyStartDay <= 0 {
		return nil, eris.Errorf("config: scenario assembly_start_day must be positive, got %d", *s.AssemblyStartDay)
	}
	if s.BigM != nil && *s.BigM <= 0 {
		return nil, eris.Errorf("config: scenario big_m must be positive, got %v", *s.BigM)
	}

	return &s, nil
}

// Apply overlays the scenario onto the loaded program and solve settings.
func (s *Scenario) Apply(prog *model.Program, solve *SolveConfig) {
	if s == nil {
		return
	}
	if s.NumSatellites != nil {
		prog.NumSatellites = *s.NumSatellites
	}
	if s.AssemblyStartDay != nil {
		prog.AssemblyStartDay = *s.AssemblyStartDay
	}
	if s.BigM != nil {
		solve.BigM = *s.BigM
	}
}
