// Package scan simulates the mobile app's camera flows: barcode scanning of
// a product and photo-based fridge content detection. There is no real image
// pipeline; a scan waits a configurable delay and resolves from the catalog.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/metrics"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// ErrThrottled is returned when a scan is rejected by the rate limiter.
var ErrThrottled = errors.New("scan rate limit exceeded")

// maxAlternatives caps the cheaper-alternative suggestions per scan.
const maxAlternatives = 4

// fridgeDetections is what the simulated photo recognition always "sees".
var fridgeDetections = []string{
	"eggs", "milk", "cheese", "butter", "tomatoes", "bread", "avocados",
}

// Scanner resolves simulated scans against the catalog. Scans are rate
// limited with a token bucket so a client cannot hammer the endpoint.
type Scanner struct {
	cat      *catalog.Catalog
	limiter  *rate.Limiter
	minDelay time.Duration
	maxDelay time.Duration
	intn     func(n int) int
	log      *slog.Logger
}

// Option configures the Scanner.
type Option func(*Scanner)

// WithIntn overrides the random source for testing.
func WithIntn(f func(n int) int) Option {
	return func(s *Scanner) {
		s.intn = f
	}
}

// WithDelayBounds overrides the simulated processing delay range.
func WithDelayBounds(minDelay, maxDelay time.Duration) Option {
	return func(s *Scanner) {
		s.minDelay = minDelay
		s.maxDelay = maxDelay
	}
}

// New creates a Scanner with the given per-second rate and burst size.
func New(cat *catalog.Catalog, perSecond float64, burst int, log *slog.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		cat:      cat,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		minDelay: 1 * time.Second,
		maxDelay: 2 * time.Second,
		intn:     rand.Intn,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Barcode simulates scanning a product barcode: after the processing delay
// it picks a random catalog product and suggests up to four alternatives
// from the same category, cheapest first.
func (s *Scanner) Barcode(ctx context.Context) (*domain.ScannedProduct, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	products := s.cat.Products()
	if len(products) == 0 {
		return nil, errors.New("catalog is empty")
	}

	product := products[s.intn(len(products))]

	alts := make([]domain.ProductWithPrices, 0, maxAlternatives)
	for _, p := range s.cat.ProductsByCategory(product.Category) {
		if p.ID != product.ID {
			alts = append(alts, p)
		}
	}
	sort.SliceStable(alts, func(i, j int) bool {
		return alts[i].CheapestPrice().Price < alts[j].CheapestPrice().Price
	})
	if len(alts) > maxAlternatives {
		alts = alts[:maxAlternatives]
	}

	metrics.ScansTotal.WithLabelValues("barcode").Inc()
	s.log.Debug("barcode scan resolved", "product_id", product.ID, "alternatives", len(alts))

	return &domain.ScannedProduct{Product: product, Alternatives: alts}, nil
}

// Fridge simulates photographing fridge contents, returning the detected
// ingredient names.
func (s *Scanner) Fridge(ctx context.Context) ([]string, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	detected := make([]string, len(fridgeDetections))
	copy(detected, fridgeDetections)

	metrics.ScansTotal.WithLabelValues("fridge").Inc()
	s.log.Debug("fridge scan resolved", "detected", len(detected))

	return detected, nil
}

// admit applies the rate limit, then sleeps the simulated processing delay.
func (s *Scanner) admit(ctx context.Context) error {
	if !s.limiter.Allow() {
		metrics.ScanThrottledTotal.Inc()
		return ErrThrottled
	}
	if err := s.sleep(ctx); err != nil {
		return fmt.Errorf("scan canceled: %w", err)
	}
	return nil
}

// sleep waits a random duration in [minDelay, maxDelay], abandoning the
// scan if the context is canceled first.
func (s *Scanner) sleep(ctx context.Context) error {
	delay := s.minDelay
	if spread := s.maxDelay - s.minDelay; spread > 0 {
		delay += time.Duration(s.intn(int(spread)))
	}
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
