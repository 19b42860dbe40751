/*
handlers.go - HTTP API handlers for the statement engine

PURPOSE:
  Exposes the statement engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the statement packages.

ENDPOINTS:
  Statements:
    GET /api/statements/profit-loss    ?start&end&currency
    GET /api/statements/cash-flow      ?start&end&currency&beginning_cash
    GET /api/statements/balance-sheet  ?as_of&currency&opening_cash&opening_equity

  Records (read-only browsing):
    GET /api/records/{source}          ?start&end
    GET /api/customers

  Scenarios:
    GET  /api/scenarios                List demo datasets
    POST /api/scenarios/load           Seed the store from a dataset
    POST /api/scenarios/reset          Clear the store

ERROR HANDLING:
  - 400: invalid period, missing currency, malformed query values
  - 502: record source unavailable (retryable)
  - 500: everything else
  A statement that fails its accounting identity is NOT an error: it is a
  200 whose body carries validation.passed=false and the discrepancy.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo dataset loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bizbooks/statement-engine/balancesheet"
	"github.com/bizbooks/statement-engine/cashflow"
	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/profitloss"
	"github.com/bizbooks/statement-engine/records"
	"github.com/bizbooks/statement-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Log   zerolog.Logger

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, log zerolog.Logger) *Handler {
	return &Handler{Store: store, Log: log}
}

// =============================================================================
// STATEMENT HANDLERS
// =============================================================================

// GetProfitLoss builds a profit & loss statement for the requested period.
func (h *Handler) GetProfitLoss(w http.ResponseWriter, r *http.Request) {
	period, currency, ok := h.periodRequest(w, r)
	if !ok {
		return
	}

	stmt, err := profitloss.Generate(r.Context(), h.Store, period, currency)
	if err != nil {
		h.statementError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatementDTO(stmt))
}

// GetCashFlow builds a cash flow statement. beginning_cash defaults to
// zero when the caller has no prior period to chain from.
func (h *Handler) GetCashFlow(w http.ResponseWriter, r *http.Request) {
	period, currency, ok := h.periodRequest(w, r)
	if !ok {
		return
	}

	beginning, err := moneyParam(r, "beginning_cash")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid beginning_cash", err)
		return
	}

	stmt, err := cashflow.Generate(r.Context(), h.Store, period, currency, beginning)
	if err != nil {
		h.statementError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatementDTO(stmt))
}

// GetBalanceSheet builds a balance sheet as of a single date.
func (h *Handler) GetBalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOfStr := r.URL.Query().Get("as_of")
	if asOfStr == "" {
		writeError(w, http.StatusBadRequest, "Missing as_of date", engine.ErrInvalidPeriod)
		return
	}
	asOf, err := engine.ParseDate(asOfStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
		return
	}
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		writeError(w, http.StatusBadRequest, "Missing currency", engine.ErrInvalidCurrency)
		return
	}

	openingCash, err := moneyParam(r, "opening_cash")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid opening_cash", err)
		return
	}
	openingEquity, err := moneyParam(r, "opening_equity")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid opening_equity", err)
		return
	}

	stmt, err := balancesheet.Generate(r.Context(), h.Store, asOf, currency, balancesheet.Opening{
		Cash:             openingCash,
		RetainedEarnings: openingEquity,
	})
	if err != nil {
		h.statementError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatementDTO(stmt))
}

// periodRequest parses the start/end/currency query parameters shared by
// the period statements. Responds with 400 itself when they are invalid.
func (h *Handler) periodRequest(w http.ResponseWriter, r *http.Request) (engine.Period, string, bool) {
	q := r.URL.Query()

	start, err := engine.ParseDate(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return engine.Period{}, "", false
	}
	end, err := engine.ParseDate(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return engine.Period{}, "", false
	}

	period, err := engine.NewPeriod(start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return engine.Period{}, "", false
	}

	currency := q.Get("currency")
	if currency == "" {
		writeError(w, http.StatusBadRequest, "Missing currency", engine.ErrInvalidCurrency)
		return engine.Period{}, "", false
	}

	return period, currency, true
}

// statementError maps engine errors onto HTTP statuses.
func (h *Handler) statementError(w http.ResponseWriter, err error) {
	switch {
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, engine.ErrSourceUnavailable):
		h.Log.Error().Err(err).Msg("record source unavailable")
		writeError(w, http.StatusBadGateway, "Record source unavailable", err)
	default:
		h.Log.Error().Err(err).Msg("statement generation failed")
		writeError(w, http.StatusInternalServerError, "Failed to generate statement", err)
	}
}

func moneyParam(r *http.Request, name string) (engine.Money, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return engine.Money(v), nil
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns the raw records of one source type, optionally
// filtered by start/end. Defaults to the full record history.
func (h *Handler) ListRecords(st records.SourceType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		period := engine.Period{Start: engine.StartOfYear(1), End: engine.EndOfYear(9999)}
		var err error
		if s := q.Get("start"); s != "" {
			if period.Start, err = engine.ParseDate(s); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid start date", err)
				return
			}
		}
		if e := q.Get("end"); e != "" {
			if period.End, err = engine.ParseDate(e); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid end date", err)
				return
			}
		}
		if err := period.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid period", err)
			return
		}

		recs, err := h.Store.Fetch(r.Context(), st, period)
		if err != nil {
			h.statementError(w, err)
			return
		}

		dtos := make([]any, 0, len(recs))
		for _, rec := range recs {
			dtos = append(dtos, toRecordDTO(records.Normalize(rec)))
		}
		writeJSON(w, http.StatusOK, dtos)
	}
}

// ListCustomers returns the customer directory.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Store.Customers(r.Context())
	if err != nil {
		h.statementError(w, err)
		return
	}

	dtos := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		dtos = append(dtos, CustomerDTO{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := ErrorDTO{Error: msg}
	if err != nil {
		body.Detail = err.Error()
	}
	writeJSON(w, status, body)
}
