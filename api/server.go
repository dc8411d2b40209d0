/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the calculator frontend

ROUTE GROUPS:
  /api/health              Liveness
  /api/datasets/*          Reference tables
  /api/admin/*             Reload
  /api/calculators/*       Calculators
  /                        Endpoint index

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. An empty
// allowedOrigins list disables CORS.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/datasets", func(r chi.Router) {
			r.Get("/", h.ListDatasets)
			r.Get("/{name}", h.GetDataset)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/reload", h.ReloadTables)
		})

		r.Route("/calculators", func(r chi.Router) {
			r.Post("/injury", h.CalculateInjury)
			r.Post("/severance", h.CalculateSeverance)
			r.Post("/indexation", h.CalculateIndexation)
			r.Post("/wage-base", h.CalculateWageBase)
			r.Route("/fees", func(r chi.Router) {
				r.Post("/jus", h.ConvertJUS)
				r.Post("/regulation", h.RegulateFees)
			})
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(indexPage))
	})

	return r
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Settlement Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Settlement Engine API</h1>
<h2>Reference tables</h2>
<ul>
<li><a href="/api/datasets">/api/datasets</a> - Latest values</li>
<li><a href="/api/datasets/ripte">/api/datasets/ripte</a> - RIPTE index</li>
<li><a href="/api/datasets/ipc">/api/datasets/ipc</a> - IPC monthly change</li>
<li><a href="/api/datasets/tasa">/api/datasets/tasa</a> - Tasa Activa BNA</li>
<li><a href="/api/datasets/jus">/api/datasets/jus</a> - JUS values</li>
<li><a href="/api/datasets/pisos">/api/datasets/pisos</a> - Minimum indemnities</li>
</ul>
<h2>Calculators (POST, JSON; add ?format=text for the breakdown)</h2>
<ul>
<li>/api/calculators/injury</li>
<li>/api/calculators/severance</li>
<li>/api/calculators/indexation</li>
<li>/api/calculators/wage-base</li>
<li>/api/calculators/fees/jus</li>
<li>/api/calculators/fees/regulation</li>
</ul>
</body>
</html>`
