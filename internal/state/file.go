package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilePersister stores the snapshot as a JSON file on disk. Writes go
// through a temp file and rename so a crash mid-write cannot corrupt the
// previous snapshot.
type FilePersister struct {
	path string
}

// NewFilePersister returns a persister writing to the given path, creating
// parent directories as needed on the first save.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Load reads the snapshot file. A missing file yields a nil snapshot.
func (p *FilePersister) Load(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", p.path, err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically.
func (p *FilePersister) Save(_ context.Context, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
