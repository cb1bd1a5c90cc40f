package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/datagen"
)

const (
	ConfigFile = "gtmforge.config.json"
	dateLayout = "2006-01-02"
)

type Config struct {
	Seed         int64    `json:"seed" mapstructure:"seed"`
	Accounts     int      `json:"accounts" mapstructure:"accounts"`
	HorizonStart string   `json:"horizon_start" mapstructure:"horizon_start"`
	HorizonEnd   string   `json:"horizon_end" mapstructure:"horizon_end"`
	OutputPath   string   `json:"output_path" mapstructure:"output_path"`
	Database     Database `json:"database" mapstructure:"database"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:         42,
		Accounts:     500,
		HorizonStart: "2024-07-01",
		HorizonEnd:   "2025-12-31",
		OutputPath:   "data/output",
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
		},
	}
}

func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Zero values from an explicit config file fall back to defaults.
	defaults := DefaultConfig()
	if cfg.Accounts == 0 {
		cfg.Accounts = defaults.Accounts
	}
	if cfg.HorizonStart == "" {
		cfg.HorizonStart = defaults.HorizonStart
	}
	if cfg.HorizonEnd == "" {
		cfg.HorizonEnd = defaults.HorizonEnd
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = defaults.OutputPath
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = defaults.Database.Provider
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = defaults.Database.URLEnv
	}

	return cfg, nil
}

// Validate rejects bad configuration before any output is produced. A bad
// horizon or account count is fatal: there are no partial datasets.
func (c *Config) Validate() error {
	supported := map[string]bool{
		"postgresql": true, "postgres": true,
		"mysql": true, "sqlite": true, "sqlite3": true,
	}
	if !supported[c.Database.Provider] {
		return fmt.Errorf("unsupported database provider: %s", c.Database.Provider)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path cannot be empty")
	}
	if _, err := c.Params(); err != nil {
		return err
	}
	return nil
}

// Params converts the config into generation parameters, parsing and
// validating the horizon bounds.
func (c *Config) Params() (datagen.Params, error) {
	start, err := time.Parse(dateLayout, c.HorizonStart)
	if err != nil {
		return datagen.Params{}, fmt.Errorf("invalid horizon_start %q: %w", c.HorizonStart, err)
	}
	end, err := time.Parse(dateLayout, c.HorizonEnd)
	if err != nil {
		return datagen.Params{}, fmt.Errorf("invalid horizon_end %q: %w", c.HorizonEnd, err)
	}

	params := datagen.Params{
		Seed:         c.Seed,
		HorizonStart: start,
		HorizonEnd:   end,
		Accounts:     c.Accounts,
	}
	if err := params.Validate(); err != nil {
		return datagen.Params{}, err
	}
	return params, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}
