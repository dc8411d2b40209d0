/*
handlers.go - HTTP API handlers for the settlement calculators

PURPOSE:
  Exposes the calculators and the reference tables via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to the
  calculator packages.

ENDPOINTS:
  Service:
    GET    /api/health                       Liveness and table load time

  Reference tables:
    GET    /api/datasets                     Latest value of every table
    GET    /api/datasets/{name}              Rows of ripte|ipc|tasa|jus|pisos

  Admin:
    POST   /api/admin/reload                 Reload tables from the store

  Calculators (see calculators.go):
    POST   /api/calculators/injury
    POST   /api/calculators/severance
    POST   /api/calculators/indexation
    POST   /api/calculators/wage-base
    POST   /api/calculators/fees/jus
    POST   /api/calculators/fees/regulation

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Where reference tables are loaded from
  - Logger: Calculation failures and reloads
  - Cached tables, swapped atomically on reload

REQUEST FLOW:
  1. Decode JSON body
  2. Validate tags (validator), then convert to calculator input
  3. Run the calculator against the cached tables
  4. Serialize response (JSON, or text with ?format=text)
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown table, or a table the calculation needs is empty
  - 500: Store failures

SECURITY NOTE:
  No authentication. The reload endpoint only re-reads configured sources.

SEE ALSO:
  - dto.go: Request/response data structures
  - calculators.go: Calculator endpoints
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warp/settlement-engine/generic"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  generic.TableStore
	Logger *zap.Logger

	// Cached reference tables, replaced as a whole on reload
	mu       sync.RWMutex
	tables   *generic.Tables
	loadedAt time.Time
}

// NewHandler creates a new handler with the given store. Tables start
// empty until Reload is called.
func NewHandler(store generic.TableStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:  store,
		Logger: logger,
		tables: generic.EmptyTables(),
	}
}

// Reload loads the tables from the store into the cache. On failure the
// previous tables stay in place.
func (h *Handler) Reload(ctx context.Context) error {
	tables, err := h.Store.LoadTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reference tables: %w", err)
	}
	tables = tables.Normalize()

	h.mu.Lock()
	h.tables = tables
	h.loadedAt = time.Now().UTC()
	h.mu.Unlock()

	h.Logger.Info("reference tables loaded",
		zap.Int("ripte", tables.RIPTE.Len()),
		zap.Int("ipc", tables.IPC.Len()),
		zap.Int("tasa", tables.ActiveRate.Len()),
		zap.Int("jus", tables.JUS.Len()),
		zap.Int("pisos", tables.Floors.Len()),
	)
	return nil
}

// Tables returns the cached tables and when they were loaded. Callers must
// not mutate the result.
func (h *Handler) Tables() (*generic.Tables, time.Time) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tables, h.loadedAt
}

// =============================================================================
// SERVICE HANDLERS
// =============================================================================

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	_, loadedAt := h.Tables()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"loaded_at": timestamp(loadedAt),
	})
}

// ReloadTables re-reads the reference tables.
// POST /api/admin/reload
func (h *Handler) ReloadTables(w http.ResponseWriter, r *http.Request) {
	if err := h.Reload(r.Context()); err != nil {
		h.Logger.Error("reload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to reload reference tables", err)
		return
	}
	h.ListDatasets(w, r)
}

// =============================================================================
// DATASET HANDLERS
// =============================================================================

// ListDatasets returns the latest value of every non-empty table.
// GET /api/datasets
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	tables, loadedAt := h.Tables()

	latest := make([]LatestValueDTO, 0, 5)
	for _, v := range tables.Summary() {
		latest = append(latest, LatestValueDTO{
			Table:    v.Table,
			At:       v.At.String(),
			Until:    datePtr(v.Until),
			Value:    v.Value,
			Citation: v.Citation,
		})
	}

	writeJSON(w, http.StatusOK, DatasetsResponse{
		LoadedAt: timestamp(loadedAt),
		Latest:   latest,
	})
}

// GetDataset returns every row of one table, oldest first.
// GET /api/datasets/{name}
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tables, _ := h.Tables()

	rows, err := datasetRows(tables, name)
	if err != nil {
		h.writeCalcError(w, "dataset", err)
		return
	}

	writeJSON(w, http.StatusOK, DatasetResponse{Table: name, Rows: rows})
}

func datasetRows(t *generic.Tables, name string) ([]DatasetRowDTO, error) {
	rows := []DatasetRowDTO{}
	switch name {
	case generic.TableRIPTE:
		for _, p := range t.RIPTE.Points {
			row := DatasetRowDTO{At: p.At.String(), Value: p.Value}
			if a, ok := t.RIPTEAmount.ExactMonth(p.At); ok {
				amount := a.Value
				row.Amount = &amount
			}
			rows = append(rows, row)
		}
	case generic.TableIPC:
		for _, p := range t.IPC.Points {
			rows = append(rows, DatasetRowDTO{At: p.At.String(), Value: p.Value})
		}
	case generic.TableActiveRate:
		for _, iv := range t.ActiveRate.Intervals {
			until := iv.To.String()
			rows = append(rows, DatasetRowDTO{At: iv.From.String(), Until: &until, Value: iv.Rate})
		}
	case generic.TableJUS:
		rows = appendThresholds(rows, t.JUS)
	case generic.TableFloors:
		rows = appendThresholds(rows, t.Floors)
	default:
		return nil, fmt.Errorf("%w: %q", generic.ErrTableNotFound, name)
	}
	return rows, nil
}

func appendThresholds(rows []DatasetRowDTO, t *generic.ThresholdTable) []DatasetRowDTO {
	for _, th := range t.Rows {
		rows = append(rows, DatasetRowDTO{
			At:       th.From.String(),
			Until:    datePtr(th.To),
			Value:    th.Value,
			Citation: th.Citation,
			Link:     th.Link,
		})
	}
	return rows
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
		var verr *generic.ValidationError
		if errors.As(err, &verr) {
			resp.Field = verr.Field
		}
	}
	writeJSON(w, status, resp)
}

// wantsText reports whether the client asked for the plain-text breakdown.
func wantsText(r *http.Request) bool {
	return r.URL.Query().Get("format") == "text"
}

// decode reads and validates a request body. It writes the 400 response
// itself and returns false on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			field := fe.Namespace()
			if i := strings.Index(field, "."); i >= 0 {
				field = field[i+1:]
			}
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid request",
				Field:   field,
				Details: fmt.Sprintf("failed %q validation", fe.Tag()),
			})
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return false
	}
	return true
}

// writeCalcError maps calculator errors to HTTP status codes.
func (h *Handler) writeCalcError(w http.ResponseWriter, op string, err error) {
	switch {
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Reference data not available", err)
	default:
		h.Logger.Error("calculation failed", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Calculation failed", err)
	}
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
