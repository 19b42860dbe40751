/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. requestLog: Structured request logging via zerolog
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/statements/*  Statement generation
  /api/records/*     Raw record browsing
  /api/customers     Customer directory
  /api/scenarios/*   Demo datasets (dev only)
  /api/health        Liveness

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bizbooks/statement-engine/records"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Statement routes
		r.Route("/statements", func(r chi.Router) {
			r.Get("/profit-loss", h.GetProfitLoss)
			r.Get("/cash-flow", h.GetCashFlow)
			r.Get("/balance-sheet", h.GetBalanceSheet)
		})

		// Record browsing routes
		r.Route("/records", func(r chi.Router) {
			r.Get("/invoices", h.ListRecords(records.SourceInvoices))
			r.Get("/bills", h.ListRecords(records.SourceBills))
			r.Get("/projects", h.ListRecords(records.SourceProjects))
			r.Get("/expenses", h.ListRecords(records.SourceExpenses))
			r.Get("/time-entries", h.ListRecords(records.SourceTimeEntries))
		})

		r.Get("/customers", h.ListCustomers)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetStore)
		})
	})

	return r
}

// requestLog emits one structured line per request.
func (h *Handler) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.Log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
