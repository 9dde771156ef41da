package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Solve SolveConfig `yaml:"solve" mapstructure:"solve"`
	Store StoreConfig `yaml:"store" mapstructure:"store"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// PathsConfig resolves input and output directories. Input tables default
// to <data_dir>/{BOM,Suppliers,Program}.csv and the plan is written under
// <results_dir> unless explicit paths are given on the command line.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" mapstructure:"data_dir"`
	ResultsDir string `yaml:"results_dir" mapstructure:"results_dir"`
}

// SolveConfig tunes model construction and solver behavior.
//
// BigM linearizes the MOQ activation disjunction; it must exceed the
// largest order quantity any single offer could legitimately carry,
// otherwise it silently clips the optimum. Tolerance is the minimum
// solved quantity treated as a real allocation; anything at or below it
// is solver noise and dropped from the plan.
type SolveConfig struct {
	BigM          float64 `yaml:"big_m" mapstructure:"big_m"`
	Tolerance     float64 `yaml:"tolerance" mapstructure:"tolerance"`
	TimeLimitSecs int     `yaml:"time_limit_secs" mapstructure:"time_limit_secs"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROCURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("paths.data_dir", "data")
	v.SetDefault("paths.results_dir", "results")
	v.SetDefault("solve.big_m", 10000.0)
	v.SetDefault("solve.tolerance", 1e-6)
	v.SetDefault("solve.time_limit_secs", 0)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "procure.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if cfg.Solve.BigM <= 0 {
		return nil, eris.Errorf("config: solve.big_m must be positive, got %v", cfg.Solve.BigM)
	}
	if cfg.Solve.Tolerance < 0 {
		return nil, eris.Errorf("config: solve.tolerance must be non-negative, got %v", cfg.Solve.Tolerance)
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
