// SPDX-License-Identifier: MIT

// Package config loads the ssnstat runner configuration from a YAML file
// with SSNSTAT_-prefixed environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/katalvlaran/ssnstat/observation"
)

// EnvPrefix prefixes environment overrides, e.g. SSNSTAT_OUTPUT_DIR.
const EnvPrefix = "SSNSTAT"

// DefaultPath is used when SSNSTAT_CONFIG is unset.
const DefaultPath = "ssnstat.yaml"

// ErrInvalid indicates a configuration that failed validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the runner configuration.
type Config struct {
	Env           string              `mapstructure:"env" validate:"oneof=local dev prod"`
	Log           LogConfig           `mapstructure:"log"`
	Input         InputConfig         `mapstructure:"input"`
	Output        OutputConfig        `mapstructure:"output"`
	Variogram     VariogramConfig     `mapstructure:"variogram"`
	Randomization RandomizationConfig `mapstructure:"randomization"`
	Models        ModelsConfig        `mapstructure:"models"`
	Subset        SubsetConfig        `mapstructure:"subset"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"` // default: determined by env
}

// InputConfig names the observation table and the optional network file.
type InputConfig struct {
	Observations string             `mapstructure:"observations" validate:"required"`
	Network      string             `mapstructure:"network"` // JSON or YAML topology; empty disables network stages
	Schema       observation.Schema `mapstructure:"schema"`
}

// OutputConfig holds the report directory.
type OutputConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// VariogramConfig holds binning settings; zero means "derive from data".
type VariogramConfig struct {
	Cutoff           float64  `mapstructure:"cutoff" validate:"gte=0"`
	Width            float64  `mapstructure:"width" validate:"gte=0"`
	Bins             int      `mapstructure:"bins" validate:"gte=0"`
	LowPairThreshold int      `mapstructure:"low_pair_threshold" validate:"gte=0"`
	Estimators       []string `mapstructure:"estimators" validate:"min=1,dive,oneof=classical matheron cressie-hawkins cressie robust"`
}

// RandomizationConfig holds permutation settings; Trials 0 skips the test.
type RandomizationConfig struct {
	Trials int    `mapstructure:"trials" validate:"gte=0"`
	Seed   uint64 `mapstructure:"seed"`
}

// CandidateConfig is one covariance structure by shape name.
type CandidateConfig struct {
	TailUp   string `mapstructure:"tailup" validate:"omitempty,oneof=none exponential linear gaussian"`
	TailDown string `mapstructure:"taildown" validate:"omitempty,oneof=none exponential linear gaussian"`
	Euclid   string `mapstructure:"euclid" validate:"omitempty,oneof=none exponential linear gaussian"`
	Nugget   bool   `mapstructure:"nugget"`
}

// ModelsConfig holds model comparison settings. When Candidates is empty,
// every combination of Shapes is enumerated.
type ModelsConfig struct {
	Enabled       bool              `mapstructure:"enabled"`
	Formula       string            `mapstructure:"formula" validate:"required_if=Enabled true"`
	Estimation    string            `mapstructure:"estimation" validate:"oneof=reml ml"`
	Shapes        []string          `mapstructure:"shapes" validate:"dive,oneof=none exponential linear gaussian"`
	Nugget        *bool             `mapstructure:"nugget"` // nil = true
	Candidates    []CandidateConfig `mapstructure:"candidates" validate:"dive"`
	LOOCV         *bool             `mapstructure:"loocv"` // nil = true
	MaxIterations int               `mapstructure:"max_iterations" validate:"gte=0"`
}

// NuggetEnabled reports whether enumerated candidates carry a nugget.
func (m ModelsConfig) NuggetEnabled() bool { return m.Nugget == nil || *m.Nugget }

// LOOCVEnabled reports whether fits run leave-one-out cross-validation.
func (m ModelsConfig) LOOCVEnabled() bool { return m.LOOCV == nil || *m.LOOCV }

// Bool returns a pointer to v, for the optional switches of ModelsConfig.
func Bool(v bool) *bool { return &v }

// SubsetConfig holds best-subset settings.
type SubsetConfig struct {
	Enabled    bool            `mapstructure:"enabled"`
	Covariates []string        `mapstructure:"covariates" validate:"required_if=Enabled true"`
	MaxSize    int             `mapstructure:"max_size" validate:"gte=0"`
	Model      CandidateConfig `mapstructure:"model"`
}

// Path returns SSNSTAT_CONFIG or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads path, applies environment overrides and defaults, and
// validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// setDefaults registers every key so that environment overrides apply even
// when the file omits them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log.level", "")
	v.SetDefault("input.observations", "")
	v.SetDefault("input.network", "")
	v.SetDefault("input.schema.id", "")
	v.SetDefault("input.schema.x", "x")
	v.SetDefault("input.schema.y", "y")
	v.SetDefault("input.schema.response", "")
	v.SetDefault("input.schema.covariates", []string{})
	v.SetDefault("output.dir", "out")
	v.SetDefault("variogram.cutoff", 0)
	v.SetDefault("variogram.width", 0)
	v.SetDefault("variogram.bins", 0)
	v.SetDefault("variogram.low_pair_threshold", 0)
	v.SetDefault("variogram.estimators", []string{"classical", "cressie-hawkins"})
	v.SetDefault("randomization.trials", 0)
	v.SetDefault("randomization.seed", 1)
	v.SetDefault("models.enabled", false)
	v.SetDefault("models.formula", "")
	v.SetDefault("models.estimation", "reml")
	v.SetDefault("models.shapes", []string{})
	v.SetDefault("models.nugget", true)
	v.SetDefault("models.loocv", true)
	v.SetDefault("models.max_iterations", 0)
	v.SetDefault("subset.enabled", false)
	v.SetDefault("subset.max_size", 0)
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = "local"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "out"
	}
	if len(c.Variogram.Estimators) == 0 {
		c.Variogram.Estimators = []string{"classical", "cressie-hawkins"}
	}
	if c.Randomization.Seed == 0 {
		c.Randomization.Seed = 1
	}
	if c.Models.Estimation == "" {
		c.Models.Estimation = "reml"
	}
	if len(c.Models.Shapes) == 0 {
		c.Models.Shapes = []string{"none", "exponential", "linear", "gaussian"}
	}
	if c.Models.MaxIterations <= 0 {
		c.Models.MaxIterations = 2000
	}
	if c.Models.Nugget == nil {
		c.Models.Nugget = Bool(true)
	}
	if c.Models.LOOCV == nil {
		c.Models.LOOCV = Bool(true)
	}
}

var validate = newValidator()

// newValidator reports fields by their configuration keys.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// Validate checks the configuration; errors name the offending key, e.g.
// "variogram.width".
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fields validator.ValidationErrors
		if !errors.As(err, &fields) {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		msgs := make([]string, 0, len(fields))
		for _, fe := range fields {
			_, key, _ := strings.Cut(fe.Namespace(), ".")
			msgs = append(msgs, fmt.Sprintf("%s failed %q", key, fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	if err := c.Input.Schema.Validate(); err != nil {
		return fmt.Errorf("%w: input.schema: %v", ErrInvalid, err)
	}
	return nil
}
