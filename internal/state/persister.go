package state

import (
	"context"
	"sync"
)

// Persister loads and saves state snapshots. Load returns a nil snapshot
// when the backend holds no state yet.
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// MemoryPersister keeps the snapshot in process memory. Used in tests and
// when persistence is disabled.
type MemoryPersister struct {
	mu   sync.Mutex
	snap *Snapshot
}

// NewMemoryPersister returns an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// Load returns the last saved snapshot, or nil if none was saved.
func (p *MemoryPersister) Load(_ context.Context) (*Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap == nil {
		return nil, nil
	}
	cp := *p.snap
	return &cp, nil
}

// Save stores a copy of the snapshot.
func (p *MemoryPersister) Save(_ context.Context, snap *Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := *snap
	p.snap = &cp
	return nil
}
