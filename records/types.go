/*
Package records defines the transactional source records the statement
engine consumes, and the collaborator interface that fetches them.

PURPOSE:
  The engine does not originate transactions. It reads already-persisted
  rows (invoices, bills, projects, expenses, time entries) over a date
  range, normalizes them once, and hands them to classification. This
  package is the boundary between the record store and the pure engine.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: A closed tagged union over the five source types. Amounts are
    always non-negative here; sign is assigned during classification.
  - SourceType: Which table/collection a record came from
  - Customer: Name lookup for line labels (never classified itself)

DESIGN PRINCIPLES:
  1. Closed set: Classification dispatches over the concrete types with an
     exhaustive type switch. Adding a source type is a compile-time change.
  2. Non-negative at the source: No record carries a sign. Revenue vs cost
     vs debit vs credit is a classification decision.
  3. Normalize once: Missing optional numerics default to zero in a single
     auditable step (normalize.go), not at each use site.

SEE ALSO:
  - normalize.go: Record normalization
  - source.go: Source interface and concurrent snapshot fetch
  - memory.go: In-memory source for tests and demo datasets
*/
package records

import (
	"github.com/shopspring/decimal"

	"github.com/bizbooks/statement-engine/engine"
)

// =============================================================================
// SOURCE TYPES
// =============================================================================

type SourceType string

const (
	SourceInvoices    SourceType = "invoices"
	SourceBills       SourceType = "bills"
	SourceProjects    SourceType = "projects"
	SourceExpenses    SourceType = "expenses"
	SourceTimeEntries SourceType = "time_entries"
)

// AllSourceTypes lists every fetchable source type. Snapshot fetches issue
// one read per entry; the reads are independent and run concurrently.
var AllSourceTypes = []SourceType{
	SourceInvoices,
	SourceBills,
	SourceProjects,
	SourceExpenses,
	SourceTimeEntries,
}

// =============================================================================
// RECORD - Closed tagged union over the five source types
// =============================================================================

// Record is implemented by exactly the five concrete types below.
// Classification functions type-switch over them exhaustively.
type Record interface {
	RecordID() string
	RecordDate() engine.TimePoint
	Source() SourceType
}

// Ref builds the traceability reference for a record.
func Ref(r Record) engine.RecordRef {
	return engine.RecordRef{SourceType: string(r.Source()), RecordID: r.RecordID()}
}

// =============================================================================
// INVOICE
// =============================================================================

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

type Invoice struct {
	ID         string
	CustomerID string
	Number     string
	Amount     engine.Money
	PaidAmount engine.Money
	Status     InvoiceStatus
	IssueDate  engine.TimePoint
	DueDate    engine.TimePoint
}

func (i Invoice) RecordID() string              { return i.ID }
func (i Invoice) RecordDate() engine.TimePoint  { return i.IssueDate }
func (i Invoice) Source() SourceType            { return SourceInvoices }

// Outstanding is the unpaid remainder, never negative.
func (i Invoice) Outstanding() engine.Money {
	out := i.Amount.Sub(i.PaidAmount)
	if out.IsNegative() {
		return 0
	}
	return out
}

// =============================================================================
// BILL
// =============================================================================

type BillStatus string

const (
	BillPending BillStatus = "pending"
	BillPaid    BillStatus = "paid"
)

type Bill struct {
	ID         string
	Vendor     string
	Amount     engine.Money
	PaidAmount engine.Money
	Status     BillStatus
	IssueDate  engine.TimePoint
}

func (b Bill) RecordID() string             { return b.ID }
func (b Bill) RecordDate() engine.TimePoint { return b.IssueDate }
func (b Bill) Source() SourceType           { return SourceBills }

func (b Bill) Outstanding() engine.Money {
	out := b.Amount.Sub(b.PaidAmount)
	if out.IsNegative() {
		return 0
	}
	return out
}

// =============================================================================
// PROJECT
// =============================================================================

type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "planned"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCanceled  ProjectStatus = "canceled"
)

// ProjectKind separates client work from capital projects. Capital project
// cost is an investing outflow and a fixed asset, not cost of goods sold.
type ProjectKind string

const (
	ProjectClient  ProjectKind = "client"
	ProjectCapital ProjectKind = "capital"
)

type ProjectBilling string

const (
	BillingFixed  ProjectBilling = "fixed"
	BillingHourly ProjectBilling = "hourly"
)

type Project struct {
	ID         string
	Name       string
	CustomerID string
	Kind       ProjectKind
	Billing    ProjectBilling
	Budget     engine.Money
	ActualCost engine.Money
	HourlyRate engine.Money
	Status     ProjectStatus
	StartDate  engine.TimePoint
	EndDate    engine.TimePoint
}

func (p Project) RecordID() string             { return p.ID }
func (p Project) RecordDate() engine.TimePoint { return p.StartDate }
func (p Project) Source() SourceType           { return SourceProjects }

// Overrun is the positive cost overrun (actual above budget), zero when on
// or under budget.
func (p Project) Overrun() engine.Money {
	over := p.ActualCost.Sub(p.Budget)
	if over.IsNegative() {
		return 0
	}
	return over
}

// =============================================================================
// EXPENSE
// =============================================================================

type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// ExpenseCategory routes an expense into the right cash-flow activity and
// balance-sheet bucket. Ordinary categories are operating; the equipment
// category is investing; the loan/owner categories are financing.
type ExpenseCategory string

const (
	CategorySupplies      ExpenseCategory = "supplies"
	CategoryRent          ExpenseCategory = "rent"
	CategoryPayroll       ExpenseCategory = "payroll"
	CategoryUtilities     ExpenseCategory = "utilities"
	CategoryTravel        ExpenseCategory = "travel"
	CategoryEquipment     ExpenseCategory = "equipment"
	CategoryLoanPrincipal ExpenseCategory = "loan_principal"
	CategoryLoanProceeds  ExpenseCategory = "loan_proceeds"
	CategoryOwnerDraw     ExpenseCategory = "owner_draw"
	CategoryOwnerFunding  ExpenseCategory = "owner_funding"
	CategoryOther         ExpenseCategory = "other"
)

// IsFinancing reports whether the category is a loan or equity movement.
func (c ExpenseCategory) IsFinancing() bool {
	switch c {
	case CategoryLoanPrincipal, CategoryLoanProceeds, CategoryOwnerDraw, CategoryOwnerFunding:
		return true
	}
	return false
}

// IsInvesting reports whether the category is a capital purchase.
func (c ExpenseCategory) IsInvesting() bool { return c == CategoryEquipment }

// IsInflow reports whether the category brings cash in rather than out.
func (c ExpenseCategory) IsInflow() bool {
	return c == CategoryLoanProceeds || c == CategoryOwnerFunding
}

type Expense struct {
	ID          string
	Description string
	Category    ExpenseCategory
	Amount      engine.Money
	Status      ExpenseStatus
	Date        engine.TimePoint
}

func (e Expense) RecordID() string             { return e.ID }
func (e Expense) RecordDate() engine.TimePoint { return e.Date }
func (e Expense) Source() SourceType           { return SourceExpenses }

// =============================================================================
// TIME ENTRY
// =============================================================================

type TimeEntry struct {
	ID        string
	ProjectID string
	Person    string
	Hours     decimal.Decimal
	BillRate  engine.Money // minor units per hour billed to the customer
	CostRate  engine.Money // minor units per hour of internal labor cost
	Billable  bool
	Date      engine.TimePoint
}

func (t TimeEntry) RecordID() string             { return t.ID }
func (t TimeEntry) RecordDate() engine.TimePoint { return t.Date }
func (t TimeEntry) Source() SourceType           { return SourceTimeEntries }

// BilledAmount is hours x bill rate, rounded to the minor unit.
func (t TimeEntry) BilledAmount() engine.Money { return engine.MulHours(t.Hours, t.BillRate) }

// LaborCost is hours x cost rate, rounded to the minor unit.
func (t TimeEntry) LaborCost() engine.Money { return engine.MulHours(t.Hours, t.CostRate) }

// =============================================================================
// CUSTOMER - Label enrichment only, never classified
// =============================================================================

type Customer struct {
	ID    string
	Name  string
	Email string
}
