/*
store.go - Persistence interface for reference tables

PURPOSE:
  Defines the interface between the calculators and wherever the reference
  tables live. Tables are read far more often than written: they are loaded
  once at startup and replaced wholesale when new official data is published.

KEY INTERFACES:
  TableStore:  Loads the full bundle of reference tables
  TableWriter: Replaces the stored bundle atomically

REPLACE-ALL CONTRACT:
  Reference data has no row-level history of its own. SaveTables() swaps
  the previous bundle for the new one in a single step; readers never see
  a half-written bundle.

IMPLEMENTATIONS:
  - dataset/loader.go: Reads the published CSV files (read-only)
  - store/sqlite/sqlite.go: SQLite persistence
  - generic/store/memory.go: In-memory, for tests and as the API cache

EXAMPLE:
  tables, err := store.LoadTables(ctx)
  coef := tables.RIPTE.Ratio(pmi, final)

SEE ALSO:
  - tables.go: The Tables bundle
*/
package generic

import "context"

// =============================================================================
// STORE - Interfaces for reference-table persistence
// =============================================================================

// TableStore loads the reference tables.
type TableStore interface {
	// LoadTables returns the full bundle. Missing tables are returned empty.
	LoadTables(ctx context.Context) (*Tables, error)
}

// TableWriter replaces the stored reference tables.
type TableWriter interface {
	TableStore

	// SaveTables replaces every stored table atomically.
	SaveTables(ctx context.Context, tables *Tables) error
}
