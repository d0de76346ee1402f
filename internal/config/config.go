package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Analysis thresholds
	MinBudget     float64 `mapstructure:"min_budget" yaml:"min_budget"`
	YearMin       int     `mapstructure:"year_min" yaml:"year_min"`
	YearMax       int     `mapstructure:"year_max" yaml:"year_max"`
	TopN          int     `mapstructure:"top_n" yaml:"top_n"`
	MinGenreCount int     `mapstructure:"min_genre_count" yaml:"min_genre_count"`

	// Report, workbook and manifest next to the charts
	Report      bool `mapstructure:"report" yaml:"report"`
	PreviewRows int  `mapstructure:"preview_rows" yaml:"preview_rows"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.movietrends/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "config: mkdir config dir")
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "config: marshal yaml")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return eris.Wrap(err, "config: write config")
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("MOVIETRENDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_path", filepath.Join("data", "movies_metadata.csv"))
	v.SetDefault("output_dir", "visualisations")
	v.SetDefault("min_budget", 1.0)
	v.SetDefault("year_min", 1940)
	v.SetDefault("year_max", 2017)
	v.SetDefault("top_n", 10)
	v.SetDefault("min_genre_count", 50)
	v.SetDefault("report", true)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects thresholds the analyzers cannot work with.
func (c *Global) Validate() error {
	if c.YearMin >= c.YearMax {
		return eris.Errorf("config: year_min (%d) must be below year_max (%d)", c.YearMin, c.YearMax)
	}
	if c.TopN <= 0 {
		return eris.Errorf("config: top_n must be positive, got %d", c.TopN)
	}
	if c.MinGenreCount < 0 {
		return eris.Errorf("config: min_genre_count must not be negative, got %d", c.MinGenreCount)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
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

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", eris.Wrap(err, "config: resolve home dir")
	}
	return filepath.Join(home, ".movietrends"), nil
}
