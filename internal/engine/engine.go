// Package engine runs the background jobs: periodic state snapshots and the
// specials validity sweep that keeps the per-store gauges fresh.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/metrics"
	"github.com/trolley-nz/trolley/internal/state"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// Engine orchestrates the scheduled background work.
type Engine struct {
	cat     *catalog.Catalog
	state   *state.Store
	log     *slog.Logger
	nowFunc func() time.Time
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(e *Engine) {
		e.nowFunc = f
	}
}

// New creates an Engine with injected dependencies.
func New(cat *catalog.Catalog, st *state.Store, opts ...Option) *Engine {
	e := &Engine{
		cat:     cat,
		state:   st,
		log:     slog.Default(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunSnapshot flushes the current application state to the persister. The
// state store already saves on every mutation; this job is a safety net for
// backends that might miss a write.
func (e *Engine) RunSnapshot(ctx context.Context) error {
	if err := e.state.Save(ctx); err != nil {
		return fmt.Errorf("snapshot flush: %w", err)
	}
	e.log.Debug("state snapshot flushed")
	return nil
}

// RunSpecialsSweep recounts valid and expired specials per store and
// publishes the counts as gauges. A special with no expiry is always valid.
func (e *Engine) RunSpecialsSweep(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	now := e.nowFunc()
	active := make(map[domain.Store]int, len(domain.Stores))
	expired := make(map[domain.Store]int, len(domain.Stores))

	for _, product := range e.cat.Products() {
		for _, sp := range product.Prices {
			if !sp.OnSpecial {
				continue
			}
			if sp.ValidUntil != nil && sp.ValidUntil.Before(now) {
				expired[sp.Store]++
			} else {
				active[sp.Store]++
			}
		}
	}

	for _, store := range domain.Stores {
		metrics.SpecialsActive.WithLabelValues(string(store)).Set(float64(active[store]))
		metrics.SpecialsExpired.WithLabelValues(string(store)).Set(float64(expired[store]))
	}

	e.log.Info("specials sweep complete",
		"active", total(active),
		"expired", total(expired),
	)
	return nil
}

func total(counts map[domain.Store]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
