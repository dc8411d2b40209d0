// Package store provides TableStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	tables *generic.Tables
}

func NewMemory() *Memory {
	return &Memory{tables: generic.EmptyTables()}
}

// NewMemoryWith starts the store with the given tables.
func NewMemoryWith(tables *generic.Tables) *Memory {
	return &Memory{tables: tables.Normalize()}
}

// LoadTables returns the current bundle. Tables are never mutated after
// being stored, so the pointer is shared.
func (m *Memory) LoadTables(_ context.Context) (*generic.Tables, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables, nil
}

// SaveTables replaces the bundle.
func (m *Memory) SaveTables(_ context.Context, tables *generic.Tables) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = tables.Normalize()
	return nil
}

var _ generic.TableWriter = (*Memory)(nil)
