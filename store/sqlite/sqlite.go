/*
Package sqlite provides a SQLite-backed implementation of the table store.

PURPOSE:
  Persists the reference tables so the server can start without the CSV
  files and so an imported data set can be audited later. The CSV files stay
  the source of truth; this store holds the last imported copy.

INTERFACES IMPLEMENTED:
  generic.TableStore:  LoadTables
  generic.TableWriter: SaveTables

REPLACE-ALL SEMANTICS:
  SaveTables deletes every stored row and inserts the new bundle inside one
  SQL transaction. A failed import leaves the previous data untouched.

KEY TABLES:
  series_points:  Monthly index and percent-change series (ripte, ipc, ...)
  rate_intervals: Tasa Activa validity windows
  thresholds:     JUS values and LRT minimums, open-ended rows have NULL end
  table_imports:  Row count and time of the last import per table

STORAGE FORMAT:
  Dates are stored as YYYY-MM-DD text, decimals as their exact string form.
  Nothing is stored as REAL, so values round-trip without float error.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The pool is limited to a single
  connection so ":memory:" databases are shared by every query.

USAGE:
  store, err := sqlite.New("./data/settlement.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  err = store.SaveTables(ctx, tables)

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/settlement-engine/generic"
)

const dateLayout = "2006-01-02"

// Store implements the table store interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Monthly series (RIPTE index, RIPTE amount, IPC)
	CREATE TABLE IF NOT EXISTS series_points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		table_name TEXT NOT NULL,
		at TEXT NOT NULL,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_series_points_table_at
		ON series_points(table_name, at);

	-- Interval rates (Tasa Activa BNA)
	CREATE TABLE IF NOT EXISTS rate_intervals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		table_name TEXT NOT NULL,
		valid_from TEXT NOT NULL,
		valid_to TEXT NOT NULL,
		rate TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rate_intervals_table_from
		ON rate_intervals(table_name, valid_from);

	-- Thresholds (JUS value, LRT minimums); NULL valid_to means still in force
	CREATE TABLE IF NOT EXISTS thresholds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		table_name TEXT NOT NULL,
		valid_from TEXT NOT NULL,
		valid_to TEXT,
		value TEXT NOT NULL,
		citation TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_thresholds_table_from
		ON thresholds(table_name, valid_from);

	-- Import bookkeeping
	CREATE TABLE IF NOT EXISTS table_imports (
		table_name TEXT PRIMARY KEY,
		row_count INTEGER NOT NULL,
		imported_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TABLE STORE (generic.TableStore interface)
// =============================================================================

// LoadTables reads the stored bundle. Tables never imported come back empty.
func (s *Store) LoadTables(ctx context.Context) (*generic.Tables, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ripte, err := s.loadSeries(ctx, generic.TableRIPTE)
	if err != nil {
		return nil, err
	}
	ripteAmount, err := s.loadSeries(ctx, generic.TableRIPTEAmount)
	if err != nil {
		return nil, err
	}
	ipc, err := s.loadSeries(ctx, generic.TableIPC)
	if err != nil {
		return nil, err
	}
	rates, err := s.loadRates(ctx, generic.TableActiveRate)
	if err != nil {
		return nil, err
	}
	jus, err := s.loadThresholds(ctx, generic.TableJUS)
	if err != nil {
		return nil, err
	}
	floors, err := s.loadThresholds(ctx, generic.TableFloors)
	if err != nil {
		return nil, err
	}

	return &generic.Tables{
		RIPTE:       ripte,
		RIPTEAmount: ripteAmount,
		IPC:         ipc,
		ActiveRate:  rates,
		JUS:         jus,
		Floors:      floors,
	}, nil
}

func (s *Store) loadSeries(ctx context.Context, name string) (*generic.Series, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, value FROM series_points WHERE table_name = ? ORDER BY at ASC, id ASC`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	var points []generic.Point
	for rows.Next() {
		var at, value string
		if err := rows.Scan(&at, &value); err != nil {
			return nil, err
		}
		d, err := parseDate(at)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		v, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		points = append(points, generic.Point{At: d, Value: v})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return generic.NewSeries(name, points), nil
}

func (s *Store) loadRates(ctx context.Context, name string) (*generic.RateTable, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT valid_from, valid_to, rate FROM rate_intervals WHERE table_name = ? ORDER BY valid_from ASC, id ASC`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	var intervals []generic.RateInterval
	for rows.Next() {
		var from, to, rate string
		if err := rows.Scan(&from, &to, &rate); err != nil {
			return nil, err
		}
		iv, err := scanInterval(from, to, rate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return generic.NewRateTable(name, intervals), nil
}

func (s *Store) loadThresholds(ctx context.Context, name string) (*generic.ThresholdTable, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT valid_from, valid_to, value, citation, link FROM thresholds WHERE table_name = ? ORDER BY valid_from ASC, id ASC`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	var out []generic.Threshold
	for rows.Next() {
		var (
			from, value, citation, link string
			to                          sql.NullString
		)
		if err := rows.Scan(&from, &to, &value, &citation, &link); err != nil {
			return nil, err
		}
		th, err := scanThreshold(from, to, value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		th.Citation, th.Link = citation, link
		out = append(out, th)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return generic.NewThresholdTable(name, out), nil
}

// =============================================================================
// TABLE WRITER (generic.TableWriter interface)
// =============================================================================

// SaveTables replaces every stored table atomically.
func (s *Store) SaveTables(ctx context.Context, tables *generic.Tables) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables = tables.Normalize()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	for _, table := range []string{"series_points", "rate_intervals", "thresholds", "table_imports"} {
		if _, err := sqlTx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, series := range []*generic.Series{tables.RIPTE, tables.RIPTEAmount, tables.IPC} {
		for _, p := range series.Points {
			if _, err := sqlTx.ExecContext(ctx,
				`INSERT INTO series_points (table_name, at, value) VALUES (?, ?, ?)`,
				series.Name, p.At.String(), p.Value.String(),
			); err != nil {
				return fmt.Errorf("failed to insert %s point: %w", series.Name, err)
			}
		}
		if err := recordImport(ctx, sqlTx, series.Name, series.Len(), now); err != nil {
			return err
		}
	}

	for _, iv := range tables.ActiveRate.Intervals {
		if _, err := sqlTx.ExecContext(ctx,
			`INSERT INTO rate_intervals (table_name, valid_from, valid_to, rate) VALUES (?, ?, ?, ?)`,
			tables.ActiveRate.Name, iv.From.String(), iv.To.String(), iv.Rate.String(),
		); err != nil {
			return fmt.Errorf("failed to insert rate interval: %w", err)
		}
	}
	if err := recordImport(ctx, sqlTx, tables.ActiveRate.Name, tables.ActiveRate.Len(), now); err != nil {
		return err
	}

	for _, table := range []*generic.ThresholdTable{tables.JUS, tables.Floors} {
		for _, r := range table.Rows {
			var to sql.NullString
			if r.To != nil {
				to = nullString(r.To.String())
			}
			if _, err := sqlTx.ExecContext(ctx,
				`INSERT INTO thresholds (table_name, valid_from, valid_to, value, citation, link) VALUES (?, ?, ?, ?, ?, ?)`,
				table.Name, r.From.String(), to, r.Value.String(), r.Citation, r.Link,
			); err != nil {
				return fmt.Errorf("failed to insert %s row: %w", table.Name, err)
			}
		}
		if err := recordImport(ctx, sqlTx, table.Name, table.Len(), now); err != nil {
			return err
		}
	}

	return sqlTx.Commit()
}

func recordImport(ctx context.Context, tx *sql.Tx, name string, count int, at string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO table_imports (table_name, row_count, imported_at) VALUES (?, ?, ?)`,
		name, count, at)
	if err != nil {
		return fmt.Errorf("failed to record import of %s: %w", name, err)
	}
	return nil
}

// =============================================================================
// IMPORT BOOKKEEPING
// =============================================================================

// ImportRecord describes the last import of one table.
type ImportRecord struct {
	Table      string
	Rows       int
	ImportedAt time.Time
}

// Imports lists the last import of every table, by table name.
func (s *Store) Imports(ctx context.Context) ([]ImportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT table_name, row_count, imported_at FROM table_imports ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	var out []ImportRecord
	for rows.Next() {
		var rec ImportRecord
		var at string
		if err := rows.Scan(&rec.Table, &rec.Rows, &at); err != nil {
			return nil, err
		}
		rec.ImportedAt, _ = time.Parse(time.RFC3339, at)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"series_points", "rate_intervals", "thresholds", "table_imports"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseDate(s string) (generic.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return generic.Date{}, fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	return generic.DateOf(t), nil
}

func scanInterval(from, to, rate string) (generic.RateInterval, error) {
	f, err := parseDate(from)
	if err != nil {
		return generic.RateInterval{}, err
	}
	t, err := parseDate(to)
	if err != nil {
		return generic.RateInterval{}, err
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return generic.RateInterval{}, err
	}
	return generic.RateInterval{From: f, To: t, Rate: r}, nil
}

func scanThreshold(from string, to sql.NullString, value string) (generic.Threshold, error) {
	f, err := parseDate(from)
	if err != nil {
		return generic.Threshold{}, err
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return generic.Threshold{}, err
	}
	th := generic.Threshold{From: f, Value: v}
	if to.Valid {
		t, err := parseDate(to.String)
		if err != nil {
			return generic.Threshold{}, err
		}
		th.To = &t
	}
	return th, nil
}

var _ generic.TableWriter = (*Store)(nil)
