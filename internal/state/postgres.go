package state

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPoolSize = 10

// stateKey is the single row the snapshot lives under.
const stateKey = "app_state"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresPersister stores the snapshot as a JSONB blob in Postgres, using
// pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresPersister requires live Postgres, tested via integration tests.
type PostgresPersister struct {
	pool *pgxpool.Pool
}

// NewPostgresPersister creates a new PostgresPersister with connection
// pooling. A poolSize of zero or less falls back to the default.
func NewPostgresPersister(ctx context.Context, connString string, poolSize int) (*PostgresPersister, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	cfg.MaxConns = int32(poolSize)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresPersister{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (p *PostgresPersister) Close() {
	p.pool.Close()
}

// Ping verifies the database connection is alive.
func (p *PostgresPersister) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Load reads the snapshot row. No row yields a nil snapshot.
func (p *PostgresPersister) Load(ctx context.Context) (*Snapshot, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		"SELECT data FROM app_state WHERE key = $1", stateKey,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading state row: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing state row: %w", err)
	}
	return &snap, nil
}

// Save upserts the snapshot row.
func (p *PostgresPersister) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO app_state (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, stateKey, data)
	if err != nil {
		return fmt.Errorf("saving state row: %w", err)
	}
	return nil
}

// Migrate applies pending SQL schema migrations.
// Migrations are tracked in a schema_migrations table.
// There are no down migrations; fix forward only.
func (p *PostgresPersister) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Lexicographic order gives us version order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version := entry.Name()

		var exists bool
		err := p.pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking migration %s: %w", version, err)
		}
		if exists {
			continue
		}

		sql, err := migrationsFS.ReadFile("migrations/" + version)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", version, err)
		}

		if _, err := p.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("applying migration %s: %w", version, err)
		}

		if _, err := p.pool.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)",
			version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", version, err)
		}
	}

	return nil
}
