package records_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func q1() engine.Period {
	return engine.Period{
		Start: engine.NewTimePoint(2025, time.January, 1),
		End:   engine.NewTimePoint(2025, time.March, 31),
	}
}

func seededSource() *records.MemorySource {
	src := records.NewMemorySource()
	src.AddCustomer(records.Customer{ID: "c1", Name: "Acme"})
	src.AddInvoice(records.Invoice{
		ID: "inv-1", CustomerID: "c1", Number: "INV-1",
		Amount: 1000, PaidAmount: 1000, Status: records.InvoicePaid,
		IssueDate: engine.NewTimePoint(2025, time.January, 15),
	})
	src.AddBill(records.Bill{
		ID: "bill-1", Vendor: "Host Co", Amount: 400, PaidAmount: 400,
		Status: records.BillPaid, IssueDate: engine.NewTimePoint(2025, time.February, 1),
	})
	src.AddProject(records.Project{
		ID: "proj-1", Name: "Rollout", Kind: records.ProjectClient,
		Billing: records.BillingFixed, Budget: 500, ActualCost: 300,
		Status: records.ProjectActive, StartDate: engine.NewTimePoint(2025, time.January, 10),
	})
	src.AddExpense(records.Expense{
		ID: "exp-1", Description: "Rent", Category: records.CategoryRent,
		Amount: 100, Status: records.ExpenseApproved,
		Date: engine.NewTimePoint(2025, time.March, 1),
	})
	src.AddTimeEntry(records.TimeEntry{
		ID: "te-1", ProjectID: "proj-1", Person: "Linh",
		Hours: decimal.RequireFromString("8"), BillRate: 50, CostRate: 30,
		Billable: true, Date: engine.NewTimePoint(2025, time.February, 20),
	})
	return src
}

// =============================================================================
// NORMALIZATION TESTS
// =============================================================================

func TestNormalize_DefaultsMissingFields(t *testing.T) {
	// GIVEN: An invoice with a negative paid amount and no status
	// WHEN: Normalizing
	// THEN: Paid amount clamps to zero and status defaults, locally,
	//       without any error

	raw := records.Invoice{ID: "inv-x", Amount: 500, PaidAmount: -10}
	norm := records.Normalize(raw).(records.Invoice)

	assert.Equal(t, engine.Money(0), norm.PaidAmount)
	assert.Equal(t, records.InvoiceDraft, norm.Status)
	assert.Equal(t, engine.Money(500), norm.Amount)
}

func TestNormalize_ProjectDefaults(t *testing.T) {
	norm := records.Normalize(records.Project{ID: "p", Budget: -5}).(records.Project)

	assert.Equal(t, engine.Money(0), norm.Budget)
	assert.Equal(t, records.ProjectClient, norm.Kind)
	assert.Equal(t, records.BillingFixed, norm.Billing)
	assert.Equal(t, records.ProjectPlanned, norm.Status)
}

func TestNormalize_TimeEntryNegativeHours(t *testing.T) {
	norm := records.Normalize(records.TimeEntry{
		ID: "te", Hours: decimal.RequireFromString("-2"),
	}).(records.TimeEntry)

	assert.True(t, norm.Hours.IsZero())
}

func TestNormalize_ZeroAmountSurvives(t *testing.T) {
	// Zero is a valid amount, not a missing one; the record must not be
	// dropped or altered.
	norm := records.Normalize(records.Expense{ID: "e", Amount: 0, Status: records.ExpenseApproved}).(records.Expense)
	assert.Equal(t, engine.Money(0), norm.Amount)
	assert.Equal(t, records.ExpenseApproved, norm.Status)
}

// =============================================================================
// MEMORY SOURCE TESTS
// =============================================================================

func TestMemorySource_RangeFilter(t *testing.T) {
	src := seededSource()
	src.AddInvoice(records.Invoice{
		ID: "inv-outside", Amount: 999, Status: records.InvoicePaid,
		IssueDate: engine.NewTimePoint(2024, time.December, 31),
	})

	recs, err := src.Fetch(context.Background(), records.SourceInvoices, q1())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "inv-1", recs[0].RecordID())
}

func TestMemorySource_EmptyResultIsNotNil(t *testing.T) {
	src := records.NewMemorySource()
	recs, err := src.Fetch(context.Background(), records.SourceBills, q1())
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestMemorySource_UnknownSourceType(t *testing.T) {
	src := records.NewMemorySource()
	_, err := src.Fetch(context.Background(), records.SourceType("ledgers"), q1())
	assert.ErrorIs(t, err, engine.ErrUnknownSourceType)
}

// =============================================================================
// SNAPSHOT FETCH TESTS
// =============================================================================

func TestFetchSnapshot_AllSourceTypes(t *testing.T) {
	// GIVEN: A source with one record of every type
	// WHEN: Fetching a snapshot (five concurrent reads)
	// THEN: Every type arrives, normalized, with the customer directory

	snap, err := records.FetchSnapshot(context.Background(), seededSource(), q1())
	require.NoError(t, err)

	assert.Len(t, snap.Invoices, 1)
	assert.Len(t, snap.Bills, 1)
	assert.Len(t, snap.Projects, 1)
	assert.Len(t, snap.Expenses, 1)
	assert.Len(t, snap.TimeEntries, 1)
	assert.Equal(t, "Acme", snap.CustomerName("c1"))
	assert.Equal(t, "unknown", snap.CustomerName("unknown"))

	// Fixed iteration order: invoices, bills, projects, expenses, time.
	all := snap.All()
	require.Len(t, all, 5)
	assert.Equal(t, records.SourceInvoices, all[0].Source())
	assert.Equal(t, records.SourceTimeEntries, all[4].Source())
}

func TestFetchSnapshot_SourceUnavailable(t *testing.T) {
	src := seededSource()
	src.SetFailing(true)

	_, err := records.FetchSnapshot(context.Background(), src, q1())
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrSourceUnavailable)

	var srcErr *engine.SourceError
	assert.ErrorAs(t, err, &srcErr)
}

func TestFetchSnapshot_Deterministic(t *testing.T) {
	// Two snapshots of the same source must agree despite the concurrent
	// fetch: each source type lands in its own slice in fetch order.
	src := seededSource()

	a, err := records.FetchSnapshot(context.Background(), src, q1())
	require.NoError(t, err)
	b, err := records.FetchSnapshot(context.Background(), src, q1())
	require.NoError(t, err)

	assert.Equal(t, a.Invoices, b.Invoices)
	assert.Equal(t, a.Bills, b.Bills)
	assert.Equal(t, a.Projects, b.Projects)
	assert.Equal(t, a.Expenses, b.Expenses)
	assert.Equal(t, a.TimeEntries, b.TimeEntries)
}
