package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warp/settlement-engine/generic"
	"github.com/warp/settlement-engine/generic/store"
	"github.com/warp/settlement-engine/store/sqlite"
)

func TestOpen_SeedsEmptyDatabaseOnce(t *testing.T) {
	// GIVEN: A fresh database file and a source with data
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settlement.db")

	// WHEN: Opening it the first time
	db, err := sqlite.Open(ctx, path, store.NewMemoryWith(sampleTables()), zap.NewNop())
	require.NoError(t, err)
	got, err := db.LoadTables(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// THEN: It is seeded from the source
	assert.Equal(t, 2, got.RIPTE.Len())

	// WHEN: Reopening with a different source
	db, err = sqlite.Open(ctx, path, store.NewMemory(), nil)
	require.NoError(t, err)
	defer db.Close()
	got, err = db.LoadTables(ctx)
	require.NoError(t, err)

	// THEN: The stored data is kept
	assert.Equal(t, 2, got.RIPTE.Len())
	assert.Equal(t, 2, got.JUS.Len())
}

func TestStore_Import_ReplacesData(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, db.SaveTables(ctx, sampleTables()))

	tables, err := db.Import(ctx, store.NewMemory())
	require.NoError(t, err)
	assert.Equal(t, 0, tables.RIPTE.Len())

	got, err := db.LoadTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, got.JUS.Len())
}

type brokenSource struct{}

func (brokenSource) LoadTables(context.Context) (*generic.Tables, error) {
	return nil, errors.New("file missing")
}

func TestStore_Import_SourceFailureKeepsData(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, db.SaveTables(ctx, sampleTables()))

	_, err := db.Import(ctx, brokenSource{})

	assert.ErrorContains(t, err, "file missing")
	got, err := db.LoadTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.RIPTE.Len())
}
