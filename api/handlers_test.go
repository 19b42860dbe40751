package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizbooks/statement-engine/api"
	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
	"github.com/bizbooks/statement-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)

	h := api.NewHandler(store, zerolog.Nop())
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(func() {
		srv.Close()
		store.Close()
	})
	return srv, store
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func seedInvoice(t *testing.T, store *sqlite.Store) {
	t.Helper()
	require.NoError(t, store.InsertCustomer(context.Background(),
		records.Customer{ID: "c1", Name: "Acme"}))
	require.NoError(t, store.InsertInvoice(context.Background(), records.Invoice{
		ID: "inv-1", CustomerID: "c1", Number: "INV-1",
		Amount: 1000000, PaidAmount: 1000000, Status: records.InvoicePaid,
		IssueDate: engine.NewTimePoint(2025, time.January, 15),
	}))
}

func totalAmount(t *testing.T, stmt api.StatementDTO, key string) int64 {
	t.Helper()
	for _, total := range stmt.Totals {
		if total.Key == key {
			return total.Amount
		}
	}
	t.Fatalf("total %q not found", key)
	return 0
}

// =============================================================================
// STATEMENT ENDPOINT TESTS
// =============================================================================

func TestGetProfitLoss_OK(t *testing.T) {
	// GIVEN: A store with one paid invoice
	// WHEN: Requesting the quarter's profit & loss
	// THEN: 200 with the invoice booked as revenue

	srv, store := newServer(t)
	seedInvoice(t, store)

	var stmt api.StatementDTO
	status := getJSON(t, srv.URL+"/api/statements/profit-loss?start=2025-01-01&end=2025-03-31&currency=VND", &stmt)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "profit_loss", stmt.Kind)
	assert.Equal(t, "VND", stmt.Currency)
	assert.Equal(t, int64(1000000), totalAmount(t, stmt, engine.TotalRevenue))
	assert.True(t, stmt.Validation.Passed)
}

func TestGetProfitLoss_BadPeriodIs400(t *testing.T) {
	srv, _ := newServer(t)

	var body api.ErrorDTO
	status := getJSON(t, srv.URL+"/api/statements/profit-loss?start=2025-03-31&end=2025-01-01&currency=VND", &body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body.Error)
}

func TestGetProfitLoss_MissingCurrencyIs400(t *testing.T) {
	srv, _ := newServer(t)

	var body api.ErrorDTO
	status := getJSON(t, srv.URL+"/api/statements/profit-loss?start=2025-01-01&end=2025-03-31", &body)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetCashFlow_BeginningCashChains(t *testing.T) {
	srv, store := newServer(t)
	seedInvoice(t, store)

	var stmt api.StatementDTO
	status := getJSON(t, srv.URL+"/api/statements/cash-flow?start=2025-01-01&end=2025-03-31&currency=VND&beginning_cash=500000", &stmt)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(500000), totalAmount(t, stmt, engine.TotalBeginningCash))
	assert.Equal(t, int64(1500000), totalAmount(t, stmt, engine.TotalEndingCash))
	assert.True(t, stmt.Validation.Passed)
}

func TestGetCashFlow_MalformedBeginningCashIs400(t *testing.T) {
	srv, _ := newServer(t)

	var body api.ErrorDTO
	status := getJSON(t, srv.URL+"/api/statements/cash-flow?start=2025-01-01&end=2025-03-31&currency=VND&beginning_cash=lots", &body)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetBalanceSheet_FailedValidationIsStill200(t *testing.T) {
	// GIVEN: An unpaid invoice with no offsetting equity
	// WHEN: Requesting the balance sheet
	// THEN: 200 whose body reports the failure and the signed discrepancy,
	//       never an HTTP error

	srv, store := newServer(t)
	require.NoError(t, store.InsertInvoice(context.Background(), records.Invoice{
		ID: "inv-1", Number: "INV-1", Amount: 250,
		Status: records.InvoiceSent, IssueDate: engine.NewTimePoint(2025, time.February, 20),
	}))

	var stmt api.StatementDTO
	status := getJSON(t, srv.URL+"/api/statements/balance-sheet?as_of=2025-03-31&currency=VND", &stmt)

	assert.Equal(t, http.StatusOK, status)
	assert.False(t, stmt.Validation.Passed)
	require.NotNil(t, stmt.Validation.Discrepancy)
	assert.Equal(t, int64(250), *stmt.Validation.Discrepancy)
}

func TestGetBalanceSheet_OpeningBalances(t *testing.T) {
	srv, _ := newServer(t)

	var stmt api.StatementDTO
	status := getJSON(t, srv.URL+"/api/statements/balance-sheet?as_of=2025-03-31&currency=VND&opening_cash=800&opening_equity=800", &stmt)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(800), totalAmount(t, stmt, engine.TotalAssets))
	assert.Equal(t, int64(800), totalAmount(t, stmt, engine.TotalLiabilitiesAndEquity))
	assert.True(t, stmt.Validation.Passed)
	assert.Equal(t, "2025-03-31", stmt.Period.AsOfDate)
}

func TestGetBalanceSheet_MissingAsOfIs400(t *testing.T) {
	srv, _ := newServer(t)

	var body api.ErrorDTO
	status := getJSON(t, srv.URL+"/api/statements/balance-sheet?currency=VND", &body)
	assert.Equal(t, http.StatusBadRequest, status)
}

// =============================================================================
// RECORD AND CUSTOMER ENDPOINT TESTS
// =============================================================================

func TestListRecords_ReturnsSeededInvoices(t *testing.T) {
	srv, store := newServer(t)
	seedInvoice(t, store)

	var invoices []api.InvoiceDTO
	status := getJSON(t, srv.URL+"/api/records/invoices", &invoices)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, invoices, 1)
	assert.Equal(t, "inv-1", invoices[0].ID)
	assert.Equal(t, int64(1000000), invoices[0].Amount)
}

func TestListRecords_EmptyIsEmptyArray(t *testing.T) {
	srv, _ := newServer(t)

	var bills []api.BillDTO
	status := getJSON(t, srv.URL+"/api/records/bills", &bills)
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, bills)
	assert.Empty(t, bills)
}

func TestListCustomers(t *testing.T) {
	srv, store := newServer(t)
	seedInvoice(t, store)

	var customers []api.CustomerDTO
	status := getJSON(t, srv.URL+"/api/customers", &customers)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, customers, 1)
	assert.Equal(t, "Acme", customers[0].Name)
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)

	var body map[string]string
	status := getJSON(t, srv.URL+"/api/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

// =============================================================================
// SCENARIO ENDPOINT TESTS
// =============================================================================

func TestScenarios_LoadAndGenerate(t *testing.T) {
	// GIVEN: A fresh server
	// WHEN: Loading the consulting-quarter scenario
	// THEN: The store holds its records and a statement can be generated
	//       from them

	srv, _ := newServer(t)

	var loaded map[string]string
	status := postJSON(t, srv.URL+"/api/scenarios/load", `{"scenario_id": "consulting-quarter"}`, &loaded)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "consulting-quarter", loaded["loaded"])

	var current api.ScenarioDTO
	status = getJSON(t, srv.URL+"/api/scenarios/current", &current)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "consulting-quarter", current.ID)

	var stmt api.StatementDTO
	status = getJSON(t, srv.URL+"/api/statements/profit-loss?start=2025-01-01&end=2025-03-31&currency=VND", &stmt)
	assert.Equal(t, http.StatusOK, status)
	assert.Greater(t, totalAmount(t, stmt, engine.TotalRevenue), int64(0))
}

func TestScenarios_UnknownIs404(t *testing.T) {
	srv, _ := newServer(t)

	var body api.ErrorDTO
	status := postJSON(t, srv.URL+"/api/scenarios/load", `{"scenario_id": "nope"}`, &body)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestScenarios_ResetClearsStore(t *testing.T) {
	srv, store := newServer(t)
	seedInvoice(t, store)

	var body map[string]string
	status := postJSON(t, srv.URL+"/api/scenarios/reset", `{}`, &body)
	require.Equal(t, http.StatusOK, status)

	var invoices []api.InvoiceDTO
	status = getJSON(t, srv.URL+"/api/records/invoices", &invoices)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, invoices)
}

func TestScenarios_List(t *testing.T) {
	srv, _ := newServer(t)

	var list []api.ScenarioDTO
	status := getJSON(t, srv.URL+"/api/scenarios/", &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 3)
}
