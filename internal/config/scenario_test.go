package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubeworks/procure-cli/internal/model"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Apply(t *testing.T) {
	t.Parallel()
	path := writeScenario(t, "num_satellites: 12\nassembly_start_day: 20\nbig_m: 50000\n")

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	prog := model.Program{NumSatellites: 3, AssemblyStartDay: 10}
	solve := SolveConfig{BigM: 10000, Tolerance: 1e-6}
	sc.Apply(&prog, &solve)

	assert.Equal(t, 12, prog.NumSatellites)
	assert.Equal(t, 20, prog.AssemblyStartDay)
	assert.InDelta(t, 50000.0, solve.BigM, 1e-9)
	assert.InDelta(t, 1e-6, solve.Tolerance, 1e-12)
}

func TestLoadScenario_PartialOverride(t *testing.T) {
	t.Parallel()
	path := writeScenario(t, "assembly_start_day: 4\n")

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	prog := model.Program{NumSatellites: 3, AssemblyStartDay: 10}
	solve := SolveConfig{BigM: 10000}
	sc.Apply(&prog, &solve)

	assert.Equal(t, 3, prog.NumSatellites)
	assert.Equal(t, 4, prog.AssemblyStartDay)
	assert.InDelta(t, 10000.0, solve.BigM, 1e-9)
}

func TestLoadScenario_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"zero satellites", "num_satellites: 0\n"},
		{"negative day", "assembly_start_day: -2\n"},
		{"zero big_m", "big_m: 0\n"},
		{"malformed yaml", "num_satellites: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadScenario(writeScenario(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestScenario_NilApply(t *testing.T) {
	t.Parallel()
	prog := model.Program{NumSatellites: 3, AssemblyStartDay: 10}
	solve := SolveConfig{BigM: 10000}

	var sc *Scenario
	sc.Apply(&prog, &solve)

	assert.Equal(t, 3, prog.NumSatellites)
}
