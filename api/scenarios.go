/*
scenarios.go - Demo dataset loaders for testing and demonstrations

PURPOSE:
  Provides pre-built datasets that populate the store with realistic
  business records. Each scenario is a JSON dataset parsed by the factory
  and seeded into SQLite, so what the demo exercises is exactly the
  production read path.

AVAILABLE SCENARIOS:
  consulting-quarter:  A services firm's quarter: fixed and hourly client
                       projects, invoices, supplier bills, tracked time
  capital-expansion:   A loan-funded buildout: capital project, equipment
                       purchases, owner funding
  slow-quarter:        Mostly unpaid invoices and pending expenses

HOW SCENARIOS WORK:
 1. Reset store (clear all tables)
 2. Parse the dataset JSON via factory.ParseDataset
 3. Insert customers and records

NOTE:
  Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared handler context
  - factory/dataset.go: Dataset JSON schema
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bizbooks/statement-engine/factory"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "consulting-quarter",
		Name:        "Consulting Quarter",
		Description: "Client projects, invoices, bills, and tracked time over Q1",
		Currency:    "VND",
	},
	{
		ID:          "capital-expansion",
		Name:        "Capital Expansion",
		Description: "Loan-funded buildout with a capital project and equipment",
		Currency:    "VND",
	},
	{
		ID:          "slow-quarter",
		Name:        "Slow Quarter",
		Description: "Unpaid invoices and pending expenses, little cash movement",
		Currency:    "VND",
	},
}

var scenarioData = map[string]string{
	"consulting-quarter": consultingQuarterJSON,
	"capital-expansion":  capitalExpansionJSON,
	"slow-quarter":       slowQuarterJSON,
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: h.currentScenario, Name: h.currentScenario})
}

// LoadScenario seeds the store from a predefined dataset.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	raw, ok := scenarioData[req.ScenarioID]
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario", fmt.Errorf("scenario %q", req.ScenarioID))
		return
	}

	ds, err := factory.ParseDataset([]byte(raw))
	if err != nil {
		h.Log.Error().Err(err).Str("scenario", req.ScenarioID).Msg("dataset parse failed")
		writeError(w, http.StatusInternalServerError, "Failed to parse dataset", err)
		return
	}

	if err := h.seed(r.Context(), ds); err != nil {
		h.Log.Error().Err(err).Str("scenario", req.ScenarioID).Msg("dataset seed failed")
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	h.Log.Info().Str("scenario", req.ScenarioID).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// ResetStore clears every record.
func (h *Handler) ResetStore(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// seed replaces the store contents with the dataset.
func (h *Handler) seed(ctx context.Context, ds *factory.Dataset) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	for _, c := range ds.Customers {
		if err := h.Store.InsertCustomer(ctx, c); err != nil {
			return err
		}
	}
	for _, rec := range ds.Invoices {
		if err := h.Store.InsertInvoice(ctx, rec); err != nil {
			return err
		}
	}
	for _, rec := range ds.Bills {
		if err := h.Store.InsertBill(ctx, rec); err != nil {
			return err
		}
	}
	for _, rec := range ds.Projects {
		if err := h.Store.InsertProject(ctx, rec); err != nil {
			return err
		}
	}
	for _, rec := range ds.Expenses {
		if err := h.Store.InsertExpense(ctx, rec); err != nil {
			return err
		}
	}
	for _, rec := range ds.TimeEntries {
		if err := h.Store.InsertTimeEntry(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// DATASETS
// =============================================================================

const consultingQuarterJSON = `{
  "name": "consulting-quarter",
  "company": "Mekong Consulting",
  "currency": "VND",
  "customers": [
    {"id": "cust-viet-logistics", "name": "Viet Logistics"},
    {"id": "cust-saigon-retail", "name": "Saigon Retail Group"}
  ],
  "invoices": [
    {"id": "inv-001", "customer_id": "cust-viet-logistics", "number": "INV-2025-001",
     "amount": 50000000, "paid_amount": 50000000, "status": "paid", "issue_date": "2025-01-15"},
    {"id": "inv-002", "customer_id": "cust-saigon-retail", "number": "INV-2025-002",
     "amount": 30000000, "paid_amount": 0, "status": "sent",
     "issue_date": "2025-02-10", "due_date": "2025-03-10"},
    {"id": "inv-003", "customer_id": "cust-viet-logistics", "number": "INV-2025-003",
     "amount": 20000000, "paid_amount": 20000000, "status": "paid", "issue_date": "2025-03-05"}
  ],
  "bills": [
    {"id": "bill-001", "vendor": "CloudHost VN", "amount": 6000000, "paid_amount": 6000000,
     "status": "paid", "issue_date": "2025-01-20"},
    {"id": "bill-002", "vendor": "Office Supply Co", "amount": 2500000, "paid_amount": 0,
     "status": "pending", "issue_date": "2025-03-12"}
  ],
  "projects": [
    {"id": "proj-erp", "name": "ERP Rollout", "customer_id": "cust-viet-logistics",
     "kind": "client", "billing": "fixed", "budget": 40000000, "actual_cost": 46000000,
     "status": "active", "start_date": "2025-01-10"},
    {"id": "proj-web", "name": "Storefront Revamp", "customer_id": "cust-saigon-retail",
     "kind": "client", "billing": "hourly", "hourly_rate": 500000, "budget": 15000000,
     "actual_cost": 9000000, "status": "completed",
     "start_date": "2025-02-01", "end_date": "2025-03-20"}
  ],
  "expenses": [
    {"id": "exp-001", "description": "Office rent Q1", "category": "rent",
     "amount": 12000000, "status": "approved", "date": "2025-01-05"},
    {"id": "exp-002", "description": "Team travel", "category": "travel",
     "amount": 3500000, "status": "approved", "date": "2025-02-18"},
    {"id": "exp-003", "description": "Conference tickets", "category": "travel",
     "amount": 4000000, "status": "pending", "date": "2025-03-22"}
  ],
  "time_entries": [
    {"id": "te-001", "project_id": "proj-web", "person": "Linh", "hours": "32.5",
     "bill_rate": 500000, "cost_rate": 300000, "billable": true, "date": "2025-02-14"},
    {"id": "te-002", "project_id": "proj-web", "person": "Minh", "hours": "18",
     "bill_rate": 500000, "cost_rate": 280000, "billable": true, "date": "2025-03-01"},
    {"id": "te-003", "project_id": "proj-erp", "person": "Linh", "hours": "10",
     "bill_rate": 0, "cost_rate": 300000, "billable": false, "date": "2025-03-08"}
  ]
}`

const capitalExpansionJSON = `{
  "name": "capital-expansion",
  "company": "Mekong Consulting",
  "currency": "VND",
  "customers": [
    {"id": "cust-viet-logistics", "name": "Viet Logistics"}
  ],
  "invoices": [
    {"id": "inv-101", "customer_id": "cust-viet-logistics", "number": "INV-2025-101",
     "amount": 80000000, "paid_amount": 80000000, "status": "paid", "issue_date": "2025-04-10"}
  ],
  "bills": [
    {"id": "bill-101", "vendor": "BuildRight Contractors", "amount": 15000000,
     "paid_amount": 15000000, "status": "paid", "issue_date": "2025-05-02"}
  ],
  "projects": [
    {"id": "proj-office", "name": "New Office Fit-Out", "kind": "capital",
     "billing": "fixed", "budget": 60000000, "actual_cost": 45000000,
     "status": "active", "start_date": "2025-04-15"}
  ],
  "expenses": [
    {"id": "exp-101", "description": "Bank loan drawdown", "category": "loan_proceeds",
     "amount": 100000000, "status": "approved", "date": "2025-04-01"},
    {"id": "exp-102", "description": "Workstations and servers", "category": "equipment",
     "amount": 25000000, "status": "approved", "date": "2025-05-10"},
    {"id": "exp-103", "description": "Loan repayment", "category": "loan_principal",
     "amount": 10000000, "status": "approved", "date": "2025-06-28"},
    {"id": "exp-104", "description": "Owner capital injection", "category": "owner_funding",
     "amount": 20000000, "status": "approved", "date": "2025-04-05"}
  ],
  "time_entries": []
}`

const slowQuarterJSON = `{
  "name": "slow-quarter",
  "company": "Mekong Consulting",
  "currency": "VND",
  "customers": [
    {"id": "cust-saigon-retail", "name": "Saigon Retail Group"}
  ],
  "invoices": [
    {"id": "inv-201", "customer_id": "cust-saigon-retail", "number": "INV-2025-201",
     "amount": 25000000, "paid_amount": 0, "status": "overdue",
     "issue_date": "2025-07-03", "due_date": "2025-08-02"},
    {"id": "inv-202", "customer_id": "cust-saigon-retail", "number": "INV-2025-202",
     "amount": 10000000, "paid_amount": 0, "status": "sent", "issue_date": "2025-08-15"}
  ],
  "bills": [
    {"id": "bill-201", "vendor": "CloudHost VN", "amount": 6000000, "paid_amount": 0,
     "status": "pending", "issue_date": "2025-07-20"}
  ],
  "projects": [],
  "expenses": [
    {"id": "exp-201", "description": "Marketing retainer", "category": "other",
     "amount": 5000000, "status": "pending", "date": "2025-08-01"}
  ],
  "time_entries": []
}`
