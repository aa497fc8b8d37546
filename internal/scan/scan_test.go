package scan_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/scan"
	"github.com/trolley-nz/trolley/pkg/logger"
)

func newScanner(t *testing.T, perSecond float64, burst int, opts ...scan.Option) *scan.Scanner {
	t.Helper()

	cat, err := catalog.New()
	require.NoError(t, err)

	log := logger.NewWithWriter(io.Discard, "error", "text")
	opts = append([]scan.Option{scan.WithDelayBounds(0, 0)}, opts...)
	return scan.New(cat, perSecond, burst, log, opts...)
}

func TestScanner_Barcode(t *testing.T) {
	t.Parallel()

	// Deterministic random source: always pick the first product.
	s := newScanner(t, 100, 100, scan.WithIntn(func(int) int { return 0 }))

	got, err := s.Barcode(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "fv-001", got.Product.ID)
	require.NotEmpty(t, got.Alternatives)
	assert.LessOrEqual(t, len(got.Alternatives), 4)

	// Alternatives share the scanned product's category, exclude the
	// product itself, and come cheapest first.
	for _, alt := range got.Alternatives {
		assert.Equal(t, got.Product.Category, alt.Category)
		assert.NotEqual(t, got.Product.ID, alt.ID)
	}
	for i := 1; i < len(got.Alternatives); i++ {
		assert.LessOrEqual(t,
			got.Alternatives[i-1].CheapestPrice().Price,
			got.Alternatives[i].CheapestPrice().Price,
		)
	}
}

func TestScanner_Fridge(t *testing.T) {
	t.Parallel()

	s := newScanner(t, 100, 100)

	got, err := s.Fridge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"eggs", "milk", "cheese", "butter", "tomatoes", "bread", "avocados"}, got)

	// The returned slice is a copy; callers mutating it must not affect
	// later scans.
	got[0] = "mutated"
	again, err := s.Fridge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "eggs", again[0])
}

func TestScanner_Throttled(t *testing.T) {
	t.Parallel()

	// Burst of one: the second immediate scan must be rejected.
	s := newScanner(t, 0.001, 1)

	_, err := s.Barcode(context.Background())
	require.NoError(t, err)

	_, err = s.Fridge(context.Background())
	assert.ErrorIs(t, err, scan.ErrThrottled)
}

func TestScanner_ContextCanceled(t *testing.T) {
	t.Parallel()

	s := newScanner(t, 100, 100, scan.WithDelayBounds(time.Minute, time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Barcode(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
