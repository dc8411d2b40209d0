/*
Package dataset converts the published reference files into generic.Tables.

PURPOSE:
  The official data (RIPTE, IPC, Tasa Activa BNA, JUS, LRT minimums) is
  distributed as small CSV files maintained by hand. This package reads them
  into the engine's table types so calculators never see a raw row.

FILES AND SCHEMAS:
  dataset_ripte.csv   año, mes, indice_ripte, monto_en_pesos
  dataset_ipc.csv     periodo, variacion_mensual
  dataset_tasa.csv    Desde, Hasta, Valor            (dd/mm/yyyy, "3,982")
  Dataset_JUS.csv     FECHA ENTRADA EN VIGENCIA, FECHA DE FINALIZACION,
                      VALOR IUS ("$ 12.345,67"), ACUERDO
  dataset_pisos.csv   fecha_inicio, fecha_fin, norma, monto_minimo, enlace

KEY FEATURES:
  - Header names are matched case-insensitively, trimmed, BOM stripped
  - Delimiter is sniffed from the header line (comma, semicolon or tab)
  - Rows that cannot be parsed are dropped and logged at Warn
  - A missing file yields an empty table, not an error
  - File order does not matter: tables sort on construction

USAGE:
  loader := dataset.NewLoader("data", dataset.DefaultFiles(), logger)
  tables, err := loader.LoadTables(ctx)

SEE ALSO:
  - parse.go: Per-table row conversion
  - generic/tables.go: The Tables bundle
*/
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// FILES
// =============================================================================

// Files names each reference file relative to the data directory.
type Files struct {
	RIPTE      string `mapstructure:"ripte"`
	IPC        string `mapstructure:"ipc"`
	ActiveRate string `mapstructure:"tasa"`
	JUS        string `mapstructure:"jus"`
	Floors     string `mapstructure:"pisos"`
}

// DefaultFiles returns the file names the data is published under.
func DefaultFiles() Files {
	return Files{
		RIPTE:      "dataset_ripte.csv",
		IPC:        "dataset_ipc.csv",
		ActiveRate: "dataset_tasa.csv",
		JUS:        "Dataset_JUS.csv",
		Floors:     "dataset_pisos.csv",
	}
}

// withDefaults fills blank names.
func (f Files) withDefaults() Files {
	d := DefaultFiles()
	if f.RIPTE == "" {
		f.RIPTE = d.RIPTE
	}
	if f.IPC == "" {
		f.IPC = d.IPC
	}
	if f.ActiveRate == "" {
		f.ActiveRate = d.ActiveRate
	}
	if f.JUS == "" {
		f.JUS = d.JUS
	}
	if f.Floors == "" {
		f.Floors = d.Floors
	}
	return f
}

// =============================================================================
// LOADER - generic.TableStore over a directory of CSV files
// =============================================================================

// Loader reads the reference files on every LoadTables call.
type Loader struct {
	dir    string
	files  Files
	logger *zap.Logger
}

// NewLoader creates a loader rooted at dir. A nil logger discards output.
func NewLoader(dir string, files Files, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{dir: dir, files: files.withDefaults(), logger: logger}
}

// LoadTables reads every reference file into a fresh bundle.
func (l *Loader) LoadTables(ctx context.Context) (*generic.Tables, error) {
	tables := generic.EmptyTables()

	steps := []struct {
		table string
		file  string
		parse func(r io.Reader) error
	}{
		{generic.TableRIPTE, l.files.RIPTE, func(r io.Reader) error {
			index, amount, err := ParseRIPTE(r, l.logger)
			if err == nil {
				tables.RIPTE, tables.RIPTEAmount = index, amount
			}
			return err
		}},
		{generic.TableIPC, l.files.IPC, func(r io.Reader) error {
			s, err := ParseIPC(r, l.logger)
			if err == nil {
				tables.IPC = s
			}
			return err
		}},
		{generic.TableActiveRate, l.files.ActiveRate, func(r io.Reader) error {
			t, err := ParseActiveRate(r, l.logger)
			if err == nil {
				tables.ActiveRate = t
			}
			return err
		}},
		{generic.TableJUS, l.files.JUS, func(r io.Reader) error {
			t, err := ParseJUS(r, l.logger)
			if err == nil {
				tables.JUS = t
			}
			return err
		}},
		{generic.TableFloors, l.files.Floors, func(r io.Reader) error {
			t, err := ParseFloors(r, l.logger)
			if err == nil {
				tables.Floors = t
			}
			return err
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(l.dir, step.file)
		if err := l.loadFile(path, step.parse); err != nil {
			return nil, fmt.Errorf("load %s from %s: %w", step.table, path, err)
		}
	}

	l.logger.Info("reference tables loaded",
		zap.String("dir", l.dir),
		zap.Int("ripte", tables.RIPTE.Len()),
		zap.Int("ipc", tables.IPC.Len()),
		zap.Int("tasa", tables.ActiveRate.Len()),
		zap.Int("jus", tables.JUS.Len()),
		zap.Int("pisos", tables.Floors.Len()),
	)
	return tables, nil
}

func (l *Loader) loadFile(path string, parse func(io.Reader) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("reference file not found, table left empty", zap.String("path", path))
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return parse(f)
}

var _ generic.TableStore = (*Loader)(nil)
