package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
	"github.com/bizbooks/statement-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func q1() engine.Period {
	return engine.Period{
		Start: engine.NewTimePoint(2025, time.January, 1),
		End:   engine.NewTimePoint(2025, time.March, 31),
	}
}

// =============================================================================
// ROUNDTRIP TESTS
// =============================================================================

func TestStore_InvoiceRoundtrip(t *testing.T) {
	// GIVEN: An invoice written to the store
	// WHEN: Fetching its period
	// THEN: Every field survives the trip, money staying integer

	store := newStore(t)
	ctx := context.Background()

	inv := records.Invoice{
		ID: "inv-1", CustomerID: "c1", Number: "INV-2025-001",
		Amount: 50000000, PaidAmount: 50000000, Status: records.InvoicePaid,
		IssueDate: engine.NewTimePoint(2025, time.January, 15),
		DueDate:   engine.NewTimePoint(2025, time.February, 14),
	}
	require.NoError(t, store.InsertInvoice(ctx, inv))

	recs, err := store.Fetch(ctx, records.SourceInvoices, q1())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, inv, recs[0])
}

func TestStore_TimeEntryHoursAsDecimal(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	te := records.TimeEntry{
		ID: "te-1", ProjectID: "proj-1", Person: "Linh",
		Hours: decimal.RequireFromString("32.5"), BillRate: 500000, CostRate: 300000,
		Billable: true, Date: engine.NewTimePoint(2025, time.February, 14),
	}
	require.NoError(t, store.InsertTimeEntry(ctx, te))

	recs, err := store.Fetch(ctx, records.SourceTimeEntries, q1())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0].(records.TimeEntry)
	assert.True(t, got.Hours.Equal(te.Hours), "got %s", got.Hours)
	assert.True(t, got.Billable)
}

func TestStore_ProjectRoundtrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	proj := records.Project{
		ID: "proj-1", Name: "ERP Rollout", CustomerID: "c1",
		Kind: records.ProjectClient, Billing: records.BillingHourly,
		Budget: 40000000, ActualCost: 46000000, HourlyRate: 500000,
		Status:    records.ProjectActive,
		StartDate: engine.NewTimePoint(2025, time.January, 10),
	}
	require.NoError(t, store.InsertProject(ctx, proj))

	recs, err := store.Fetch(ctx, records.SourceProjects, q1())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, proj, recs[0])
}

// =============================================================================
// QUERY BEHAVIOR TESTS
// =============================================================================

func TestStore_RangeFilterAndOrder(t *testing.T) {
	// GIVEN: Three expenses, one outside the period
	// WHEN: Fetching Q1
	// THEN: Only in-period rows return, ordered by date then id

	store := newStore(t)
	ctx := context.Background()

	for _, e := range []records.Expense{
		{ID: "exp-b", Category: records.CategoryRent, Amount: 100,
			Status: records.ExpenseApproved, Date: engine.NewTimePoint(2025, time.March, 1)},
		{ID: "exp-a", Category: records.CategoryRent, Amount: 200,
			Status: records.ExpenseApproved, Date: engine.NewTimePoint(2025, time.March, 1)},
		{ID: "exp-old", Category: records.CategoryRent, Amount: 300,
			Status: records.ExpenseApproved, Date: engine.NewTimePoint(2024, time.December, 1)},
	} {
		require.NoError(t, store.InsertExpense(ctx, e))
	}

	recs, err := store.Fetch(ctx, records.SourceExpenses, q1())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "exp-a", recs[0].RecordID())
	assert.Equal(t, "exp-b", recs[1].RecordID())
}

func TestStore_EmptyResultIsNotNil(t *testing.T) {
	store := newStore(t)
	recs, err := store.Fetch(context.Background(), records.SourceBills, q1())
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestStore_UnknownSourceType(t *testing.T) {
	store := newStore(t)
	_, err := store.Fetch(context.Background(), records.SourceType("ledgers"), q1())
	assert.ErrorIs(t, err, engine.ErrUnknownSourceType)
}

func TestStore_CustomersOrderedByID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertCustomer(ctx, records.Customer{ID: "c2", Name: "Beta"}))
	require.NoError(t, store.InsertCustomer(ctx, records.Customer{ID: "c1", Name: "Alpha"}))

	customers, err := store.Customers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "c1", customers[0].ID)
	assert.Equal(t, "c2", customers[1].ID)
}

// =============================================================================
// SNAPSHOT AND RESET TESTS
// =============================================================================

func TestStore_FeedsSnapshotFetch(t *testing.T) {
	// The store satisfies the same contract the builders consume.

	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertCustomer(ctx, records.Customer{ID: "c1", Name: "Acme"}))
	require.NoError(t, store.InsertInvoice(ctx, records.Invoice{
		ID: "inv-1", CustomerID: "c1", Number: "INV-1",
		Amount: 1000, PaidAmount: 1000, Status: records.InvoicePaid,
		IssueDate: engine.NewTimePoint(2025, time.January, 15),
	}))
	require.NoError(t, store.InsertBill(ctx, records.Bill{
		ID: "bill-1", Vendor: "Host Co", Amount: 400, PaidAmount: 400,
		Status: records.BillPaid, IssueDate: engine.NewTimePoint(2025, time.February, 1),
	}))

	snap, err := records.FetchSnapshot(ctx, store, q1())
	require.NoError(t, err)
	assert.Len(t, snap.Invoices, 1)
	assert.Len(t, snap.Bills, 1)
	assert.Equal(t, "Acme", snap.CustomerName("c1"))
}

func TestStore_Reset(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertExpense(ctx, records.Expense{
		ID: "exp-1", Category: records.CategoryRent, Amount: 100,
		Status: records.ExpenseApproved, Date: engine.NewTimePoint(2025, time.January, 5),
	}))
	require.NoError(t, store.Reset(ctx))

	recs, err := store.Fetch(ctx, records.SourceExpenses, q1())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStore_InsertReplacesExisting(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	bill := records.Bill{
		ID: "bill-1", Vendor: "Host Co", Amount: 400,
		Status: records.BillPending, IssueDate: engine.NewTimePoint(2025, time.February, 1),
	}
	require.NoError(t, store.InsertBill(ctx, bill))

	bill.PaidAmount = 400
	bill.Status = records.BillPaid
	require.NoError(t, store.InsertBill(ctx, bill))

	recs, err := store.Fetch(ctx, records.SourceBills, q1())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, records.BillPaid, recs[0].(records.Bill).Status)
}
