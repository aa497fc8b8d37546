// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Scan        ScanConfig        `yaml:"scan"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// PersistenceConfig selects the state backend.
type PersistenceConfig struct {
	Backend  string         `yaml:"backend"` // memory, file, postgres
	File     FileConfig     `yaml:"file"`
	Database DatabaseConfig `yaml:"database"`
}

// FileConfig defines file-backend settings.
type FileConfig struct {
	Path string `yaml:"path"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// ScanConfig defines simulated-scanner behavior.
type ScanConfig struct {
	MinDelay  time.Duration   `yaml:"min_delay"`
	MaxDelay  time.Duration   `yaml:"max_delay"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines scan rate limiting settings.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// ScheduleConfig defines cron intervals for background jobs.
type ScheduleConfig struct {
	SnapshotInterval      time.Duration `yaml:"snapshot_interval"`
	SpecialsSweepInterval time.Duration `yaml:"specials_sweep_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyPersistenceDefaults(&cfg.Persistence)
	applyScanDefaults(&cfg.Scan)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyPersistenceDefaults(p *PersistenceConfig) {
	if p.Backend == "" {
		p.Backend = "memory"
	}
	if p.File.Path == "" {
		p.File.Path = "data/state.json"
	}
	applyDatabaseDefaults(&p.Database)
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyScanDefaults(s *ScanConfig) {
	if s.MinDelay == 0 {
		s.MinDelay = 1 * time.Second
	}
	if s.MaxDelay == 0 {
		s.MaxDelay = 2 * time.Second
	}
	if s.RateLimit.PerSecond == 0 {
		s.RateLimit.PerSecond = 2.0
	}
	if s.RateLimit.Burst == 0 {
		s.RateLimit.Burst = 5
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.SnapshotInterval == 0 {
		s.SnapshotInterval = 5 * time.Minute
	}
	if s.SpecialsSweepInterval == 0 {
		s.SpecialsSweepInterval = 1 * time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Persistence.Backend {
	case "memory":
	case "file":
		if cfg.Persistence.File.Path == "" {
			errs = append(errs, fmt.Errorf("persistence.file.path is required when backend is file"))
		}
	case "postgres":
		if cfg.Persistence.Database.Host == "" {
			errs = append(errs, fmt.Errorf("persistence.database.host is required when backend is postgres"))
		}
		if cfg.Persistence.Database.Name == "" {
			errs = append(errs, fmt.Errorf("persistence.database.name is required when backend is postgres"))
		}
		if cfg.Persistence.Database.User == "" {
			errs = append(errs, fmt.Errorf("persistence.database.user is required when backend is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("persistence.backend must be memory, file, or postgres, got %q", cfg.Persistence.Backend))
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port))
	}

	if cfg.Scan.MinDelay < 0 {
		errs = append(errs, fmt.Errorf("scan.min_delay must not be negative"))
	}
	if cfg.Scan.MaxDelay < cfg.Scan.MinDelay {
		errs = append(errs, fmt.Errorf("scan.max_delay must not be less than scan.min_delay"))
	}
	if cfg.Scan.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("scan.rate_limit.per_second must not be negative"))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
