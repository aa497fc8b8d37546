package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty config gets full defaults",
			yaml: ``,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "memory", cfg.Persistence.Backend)
				assert.Equal(t, "data/state.json", cfg.Persistence.File.Path)
				assert.Equal(t, 5432, cfg.Persistence.Database.Port)
				assert.Equal(t, "disable", cfg.Persistence.Database.SSLMode)
				assert.Equal(t, 10, cfg.Persistence.Database.PoolSize)
				assert.Equal(t, 1*time.Second, cfg.Scan.MinDelay)
				assert.Equal(t, 2*time.Second, cfg.Scan.MaxDelay)
				assert.Equal(t, 2.0, cfg.Scan.RateLimit.PerSecond)
				assert.Equal(t, 5, cfg.Scan.RateLimit.Burst)
				assert.Equal(t, 5*time.Minute, cfg.Schedule.SnapshotInterval)
				assert.Equal(t, 1*time.Hour, cfg.Schedule.SpecialsSweepInterval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "file backend",
			yaml: `
persistence:
  backend: file
  file:
    path: /var/lib/trolley/state.json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "file", cfg.Persistence.Backend)
				assert.Equal(t, "/var/lib/trolley/state.json", cfg.Persistence.File.Path)
			},
		},
		{
			name: "postgres backend",
			yaml: `
persistence:
  backend: postgres
  database:
    host: localhost
    name: trolley
    user: trolley
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "postgres", cfg.Persistence.Backend)
				assert.Equal(t, "localhost", cfg.Persistence.Database.Host)
				assert.Equal(t, 5432, cfg.Persistence.Database.Port)
			},
		},
		{
			name: "env var substitution",
			yaml: `
persistence:
  backend: postgres
  database:
    host: localhost
    name: trolley
    user: trolley
    password: "${TEST_DB_PASSWORD}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Persistence.Database.Password)
			},
		},
		{
			name: "postgres backend missing host",
			yaml: `
persistence:
  backend: postgres
  database:
    name: trolley
    user: trolley
`,
			wantErr: "persistence.database.host is required when backend is postgres",
		},
		{
			name: "postgres backend missing name",
			yaml: `
persistence:
  backend: postgres
  database:
    host: localhost
    user: trolley
`,
			wantErr: "persistence.database.name is required when backend is postgres",
		},
		{
			name: "postgres backend missing user",
			yaml: `
persistence:
  backend: postgres
  database:
    host: localhost
    name: trolley
`,
			wantErr: "persistence.database.user is required when backend is postgres",
		},
		{
			name: "unknown backend",
			yaml: `
persistence:
  backend: redis
`,
			wantErr: `persistence.backend must be memory, file, or postgres, got "redis"`,
		},
		{
			name: "scan delay bounds inverted",
			yaml: `
scan:
  min_delay: 3s
  max_delay: 1s
`,
			wantErr: "scan.max_delay must not be less than scan.min_delay",
		},
		{
			name: "invalid logging level",
			yaml: `
logging:
  level: verbose
`,
			wantErr: `logging.level must be debug, info, warn, or error, got "verbose"`,
		},
		{
			name: "invalid logging format",
			yaml: `
logging:
  format: xml
`,
			wantErr: `logging.format must be text or json, got "xml"`,
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
persistence:
  backend: postgres
  database:
    host: db.example.com
    port: 5433
    name: trolley_prod
    user: admin
    password: pass
    sslmode: require
    pool_size: 20
scan:
  min_delay: 500ms
  max_delay: 1500ms
  rate_limit:
    per_second: 10
    burst: 20
schedule:
  snapshot_interval: 1m
  specials_sweep_interval: 30m
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "db.example.com", cfg.Persistence.Database.Host)
				assert.Equal(t, 5433, cfg.Persistence.Database.Port)
				assert.Equal(t, "require", cfg.Persistence.Database.SSLMode)
				assert.Equal(t, 20, cfg.Persistence.Database.PoolSize)
				assert.Equal(t, 500*time.Millisecond, cfg.Scan.MinDelay)
				assert.Equal(t, 1500*time.Millisecond, cfg.Scan.MaxDelay)
				assert.Equal(t, 10.0, cfg.Scan.RateLimit.PerSecond)
				assert.Equal(t, 20, cfg.Scan.RateLimit.Burst)
				assert.Equal(t, 1*time.Minute, cfg.Schedule.SnapshotInterval)
				assert.Equal(t, 30*time.Minute, cfg.Schedule.SpecialsSweepInterval)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "memory", cfg.Persistence.Backend)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "trolley",
		User:     "app",
		Password: "pw",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 dbname=trolley user=app password=pw sslmode=disable",
		cfg.DSN(),
	)
}
