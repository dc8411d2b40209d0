package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// IMPORT - Copy reference tables from another source
// =============================================================================

// Import loads every table from src and replaces the stored bundle with it.
func (s *Store) Import(ctx context.Context, src generic.TableStore) (*generic.Tables, error) {
	tables, err := src.LoadTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read import source: %w", err)
	}
	if err := s.SaveTables(ctx, tables); err != nil {
		return nil, fmt.Errorf("failed to import tables: %w", err)
	}
	return tables.Normalize(), nil
}

// Open opens the database at dbPath and, when nothing was ever imported
// into it, seeds it from src. A nil src skips seeding.
func Open(ctx context.Context, dbPath string, src generic.TableStore, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := New(dbPath)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return store, nil
	}

	imports, err := store.Imports(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	if len(imports) > 0 {
		logger.Debug("using stored reference tables", zap.String("db", dbPath), zap.Int("tables", len(imports)))
		return store, nil
	}

	tables, err := store.Import(ctx, src)
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.Info("seeded database from reference files",
		zap.String("db", dbPath),
		zap.Int("ripte", tables.RIPTE.Len()),
		zap.Int("jus", tables.JUS.Len()),
	)
	return store, nil
}
