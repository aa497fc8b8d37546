// Package state owns the mutable, persisted application state: the shopping
// list and the fridge ingredient set. All mutations go through Store methods
// and are saved synchronously through the injected Persister.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/metrics"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// Snapshot is the persisted form of the application state.
type Snapshot struct {
	ShoppingList []domain.ShoppingListItem `json:"shopping_list"`
	FridgeItems  []string                  `json:"fridge_items"`
}

// Store holds the shopping list and fridge items. Reads and writes are
// guarded by a mutex so the HTTP layer can call in from concurrent requests.
type Store struct {
	mu        sync.RWMutex
	list      []domain.ShoppingListItem
	fridge    []string
	persister Persister
	log       *slog.Logger
}

// NewStore loads the persisted snapshot through p and reconciles it against
// the catalog: shopping-list entries whose product id is no longer in the
// catalog are dropped, surviving entries get their product re-resolved so
// persisted prices cannot go stale, and fridge names are normalized to
// lowercase with duplicates removed.
func NewStore(
	ctx context.Context,
	p Persister,
	cat *catalog.Catalog,
	log *slog.Logger,
) (*Store, error) {
	snap, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	if snap == nil {
		snap = &Snapshot{}
	}

	s := &Store{persister: p, log: log}

	dropped := 0
	for _, item := range snap.ShoppingList {
		product, ok := cat.ProductByID(item.Product.ID)
		if !ok {
			dropped++
			continue
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		s.list = append(s.list, domain.ShoppingListItem{
			ID:       product.ID,
			Product:  *product,
			Quantity: qty,
			Checked:  item.Checked,
		})
	}
	if dropped > 0 {
		log.Warn("dropped shopping-list entries not in catalog", "count", dropped)
	}

	for _, name := range snap.FridgeItems {
		s.addFridgeLocked(name)
	}

	return s, nil
}

// ShoppingList returns a copy of the current shopping list.
func (s *Store) ShoppingList() []domain.ShoppingListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.list)
}

// FridgeItems returns a copy of the current fridge ingredient names.
func (s *Store) FridgeItems() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.fridge)
}

// Snapshot returns a copy of the full persisted state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		ShoppingList: slices.Clone(s.list),
		FridgeItems:  slices.Clone(s.fridge),
	}
}

// AddToList adds qty units of a product to the shopping list. If an item
// for that product already exists its quantity is incremented; otherwise a
// new unchecked item is appended. Quantities below one are treated as one.
func (s *Store) AddToList(ctx context.Context, product domain.ProductWithPrices, qty int) error {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.list[i].Quantity += qty
	} else {
		s.list = append(s.list, domain.ShoppingListItem{
			ID:       product.ID,
			Product:  product,
			Quantity: qty,
		})
	}
	return s.saveLocked(ctx)
}

// RemoveFromList deletes the item with the given id. No-op if absent.
func (s *Store) RemoveFromList(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.list = slices.Delete(s.list, i, i+1)
	return s.saveLocked(ctx)
}

// UpdateQuantity sets an item's quantity. A quantity of zero or less removes
// the item. No-op if the id is absent.
func (s *Store) UpdateQuantity(ctx context.Context, id string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	if qty <= 0 {
		s.list = slices.Delete(s.list, i, i+1)
	} else {
		s.list[i].Quantity = qty
	}
	return s.saveLocked(ctx)
}

// ToggleChecked flips an item's checked flag. No-op if the id is absent.
func (s *Store) ToggleChecked(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.list[i].Checked = !s.list[i].Checked
	return s.saveLocked(ctx)
}

// ClearList removes every item from the shopping list.
func (s *Store) ClearList(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = nil
	return s.saveLocked(ctx)
}

// AddFridgeItem inserts an ingredient name with set semantics. Names are
// trimmed and lowercased at insertion so "Tomato" and "tomato" are one item.
// Blank names are ignored.
func (s *Store) AddFridgeItem(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.addFridgeLocked(name) {
		return nil
	}
	return s.saveLocked(ctx)
}

// addFridgeLocked normalizes and inserts a fridge name, reporting whether
// the set changed.
func (s *Store) addFridgeLocked(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || slices.Contains(s.fridge, name) {
		return false
	}
	s.fridge = append(s.fridge, name)
	return true
}

// RemoveFridgeItem deletes an ingredient name. No-op if absent.
func (s *Store) RemoveFridgeItem(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.ToLower(strings.TrimSpace(name))
	i := slices.Index(s.fridge, name)
	if i < 0 {
		return nil
	}
	s.fridge = slices.Delete(s.fridge, i, i+1)
	return s.saveLocked(ctx)
}

// SetFridgeItems replaces the fridge contents wholesale, normalizing and
// de-duplicating the given names.
func (s *Store) SetFridgeItems(ctx context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fridge = nil
	for _, name := range names {
		s.addFridgeLocked(name)
	}
	return s.saveLocked(ctx)
}

// ClearFridge removes every fridge item.
func (s *Store) ClearFridge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fridge = nil
	return s.saveLocked(ctx)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.list, func(item domain.ShoppingListItem) bool {
		return item.ID == id
	})
}

// saveLocked persists the current state. Callers hold the write lock.
func (s *Store) saveLocked(ctx context.Context) error {
	snap := s.snapshotLocked()
	if err := s.persister.Save(ctx, &snap); err != nil {
		metrics.StateSaveErrorsTotal.Inc()
		return fmt.Errorf("saving state: %w", err)
	}
	metrics.StateSavesTotal.Inc()
	return nil
}

// Save persists the current state outside a mutation, used by the scheduled
// snapshot job.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshotLocked()
	if err := s.persister.Save(ctx, &snap); err != nil {
		metrics.StateSaveErrorsTotal.Inc()
		return fmt.Errorf("saving state: %w", err)
	}
	metrics.StateSavesTotal.Inc()
	return nil
}
