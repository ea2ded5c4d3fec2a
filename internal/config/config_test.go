// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssnstat/internal/config"
)

const minimal = `
input:
  observations: sites.csv
  schema:
    id: site
    response: vsci
    covariates: [elev]
models:
  enabled: true
  formula: vsci ~ elev
`

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ssnstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(write(t, minimal))
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "out", cfg.Output.Dir)
	require.Equal(t, "x", cfg.Input.Schema.X)
	require.Equal(t, "vsci", cfg.Input.Schema.Response)
	require.Equal(t, []string{"elev"}, cfg.Input.Schema.Covariates)
	require.Equal(t, []string{"classical", "cressie-hawkins"}, cfg.Variogram.Estimators)
	require.Equal(t, uint64(1), cfg.Randomization.Seed)
	require.Equal(t, "reml", cfg.Models.Estimation)
	require.True(t, cfg.Models.NuggetEnabled())
	require.True(t, cfg.Models.LOOCVEnabled())
	require.Equal(t, 2000, cfg.Models.MaxIterations)
	require.Len(t, cfg.Models.Shapes, 4)
}

func TestApplyDefaults_MatchesLoad(t *testing.T) {
	var cfg config.Config
	cfg.ApplyDefaults()
	require.NotNil(t, cfg.Models.Nugget)
	require.NotNil(t, cfg.Models.LOOCV)
	require.True(t, *cfg.Models.Nugget)
	require.True(t, *cfg.Models.LOOCV)

	loaded, err := config.Load(write(t, minimal))
	require.NoError(t, err)
	require.Equal(t, loaded.Models.Nugget, cfg.Models.Nugget)
	require.Equal(t, loaded.Models.LOOCV, cfg.Models.LOOCV)
	require.Equal(t, loaded.Models.Estimation, cfg.Models.Estimation)
	require.Equal(t, loaded.Variogram.Estimators, cfg.Variogram.Estimators)
}

func TestLoad_ExplicitFalseKept(t *testing.T) {
	cfg, err := config.Load(write(t, minimal+"  nugget: false\n  loocv: false\n"))
	require.NoError(t, err)
	require.False(t, cfg.Models.NuggetEnabled())
	require.False(t, cfg.Models.LOOCVEnabled())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SSNSTAT_OUTPUT_DIR", "/tmp/elsewhere")
	t.Setenv("SSNSTAT_RANDOMIZATION_TRIALS", "25")
	cfg, err := config.Load(write(t, minimal))
	require.NoError(t, err)
	require.Equal(t, "/tmp/elsewhere", cfg.Output.Dir)
	require.Equal(t, 25, cfg.Randomization.Trials)
}

func TestLoad_ValidationNamesKey(t *testing.T) {
	tests := []struct {
		name string
		body string
		key  string
	}{
		{"negative width", minimal + "variogram:\n  width: -5\n", "variogram.width"},
		{"unknown estimation", minimal + "  estimation: bayes\n", "models.estimation"},
		{"unknown shape", minimal + "  candidates:\n    - euclid: spherical\n", "models.candidates[0].euclid"},
		{"missing response", "input:\n  observations: a.csv\n", "input.schema.response"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(write(t, tc.body))
			require.ErrorIs(t, err, config.ErrInvalid)
			require.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv("SSNSTAT_CONFIG", "")
	require.Equal(t, config.DefaultPath, config.Path())
	t.Setenv("SSNSTAT_CONFIG", "/etc/ssnstat.yaml")
	require.Equal(t, "/etc/ssnstat.yaml", config.Path())
}
