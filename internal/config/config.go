package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dungeon-generator/internal/dice"
	"github.com/KirkDiggler/dungeon-generator/internal/logger"
)

// Table sources
const (
	SourceFilesystem = "filesystem"
	SourceRedis      = "redis"
)

// Config holds all configuration for the table tools
type Config struct {
	Tables  TablesConfig  `yaml:"tables"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging logger.Config `yaml:"logging"`
}

// TablesConfig selects where tables come from and how they are rolled
type TablesConfig struct {
	Source string `yaml:"source"`
	Dir    string `yaml:"dir"`
	Dice   string `yaml:"dice"`
	Cache  bool   `yaml:"cache"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `yaml:"url"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Tables: TablesConfig{
			Source: SourceFilesystem,
			Dir:    "data/tables",
			Dice:   "1d100",
		},
		Logging: logger.DefaultConfig(),
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration can be used
func (c *Config) Validate() error {
	switch c.Tables.Source {
	case SourceFilesystem:
		if c.Tables.Dir == "" {
			return fmt.Errorf("tables.dir is required for the %s source", SourceFilesystem)
		}
	case SourceRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the %s source", SourceRedis)
		}
	default:
		return fmt.Errorf("unknown table source %q", c.Tables.Source)
	}

	if _, err := dice.ParseNotation(c.Tables.Dice); err != nil {
		return fmt.Errorf("tables.dice: %w", err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	cfg.Tables.Source = getEnvOrDefault("TABLES_SOURCE", cfg.Tables.Source)
	cfg.Tables.Dir = getEnvOrDefault("TABLES_DIR", cfg.Tables.Dir)
	cfg.Tables.Dice = getEnvOrDefault("TABLES_DICE", cfg.Tables.Dice)
	cfg.Tables.Cache = getEnvAsBoolOrDefault("TABLES_CACHE", cfg.Tables.Cache)
	cfg.Redis.URL = getEnvOrDefault("REDIS_URL", cfg.Redis.URL)
	cfg.Logging.Level = getEnvOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnvOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.File = getEnvOrDefault("LOG_FILE", cfg.Logging.File)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
