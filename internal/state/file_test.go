package state_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trolley-nz/trolley/internal/state"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

func TestFilePersister_LoadMissingFile(t *testing.T) {
	t.Parallel()

	p := state.NewFilePersister(filepath.Join(t.TempDir(), "state.json"))

	snap, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFilePersister_SaveLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	p := state.NewFilePersister(path)

	in := &state.Snapshot{
		ShoppingList: []domain.ShoppingListItem{
			{ID: "fv-001", Product: domain.ProductWithPrices{Product: domain.Product{ID: "fv-001", Name: "Bananas"}}, Quantity: 3, Checked: true},
		},
		FridgeItems: []string{"tomato", "cheese"},
	}
	require.NoError(t, p.Save(ctx, in))

	out, err := p.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, out)

	// No stray temp file is left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFilePersister_LoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	p := state.NewFilePersister(path)
	_, err := p.Load(context.Background())
	assert.Error(t, err)
}

func TestFilePersister_Overwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	p := state.NewFilePersister(filepath.Join(t.TempDir(), "state.json"))

	require.NoError(t, p.Save(ctx, &state.Snapshot{FridgeItems: []string{"milk"}}))
	require.NoError(t, p.Save(ctx, &state.Snapshot{FridgeItems: []string{"eggs"}}))

	out, err := p.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, []string{"eggs"}, out.FridgeItems)
}
