package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"

	"github.com/Veraticus/tradeflow/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	Logging  LoggingConfig
	Pipeline PipelineConfig
	Database DatabaseConfig
}

// LoggingConfig controls the global slog logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// PipelineConfig tunes the processing run.
type PipelineConfig struct {
	RulesFile string
	Workers   int
}

// SetDefaults registers default values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("pipeline.workers", runtime.NumCPU())
	v.SetDefault("pipeline.rules_file", "")
	v.SetDefault("database.table", "trade_data")
	v.SetDefault("database.if_exists", "append")
}

// LoadDotEnv loads environment variables from the given files. Missing files
// are skipped; variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load resolves the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	db, err := LoadDatabaseConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Pipeline: PipelineConfig{
			Workers:   v.GetInt("pipeline.workers"),
			RulesFile: ExpandPath(v.GetString("pipeline.rules_file")),
		},
		Database: db,
	}

	if cfg.Pipeline.Workers < 1 {
		return nil, fmt.Errorf("%w: pipeline.workers must be at least 1, got %d",
			common.ErrInvalidConfig, cfg.Pipeline.Workers)
	}
	return cfg, nil
}
