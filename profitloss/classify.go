/*
Package profitloss builds the profit & loss statement.

PURPOSE:
  Classifies a period's records into revenue, cost of goods sold, operating
  expenses, and other income/expense, then derives the income figures
  (gross profit, operating income, net income) from section subtotals so
  the document is internally consistent by construction.

CLASSIFICATION RULES:
  revenue:             invoice paid amounts, client project budgets
                       (active/completed), billable time (hours x bill rate)
  cost_of_goods_sold:  bill paid amounts, client project actual cost,
                       labor cost (hours x cost rate)
  operating_expenses:  approved expenses in ordinary categories
  other_expense:       project cost overrun (actual above budget)

  Capital projects and equipment/financing expense categories never reach
  this statement: their effects belong to the balance sheet and the cash
  flow statement.

SEE ALSO:
  - builder.go: Statement assembly and derived totals
  - cashflow/, balancesheet/: Sibling statement families
*/
package profitloss

import (
	"fmt"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

// Classify produces the profit & loss lines for every record in the
// snapshot. Deterministic: snapshot iteration order is fixed, and each
// record's lines depend on that record alone (plus the customer directory
// for labels).
func Classify(snap *records.Snapshot) []engine.ClassifiedLine {
	var lines []engine.ClassifiedLine
	for _, r := range snap.All() {
		lines = append(lines, ClassifyRecord(snap, r)...)
	}
	return lines
}

// ClassifyRecord maps one record to its profit & loss lines. Total and
// pure: no I/O, no errors for valid input. Zero-amount qualifying records
// still yield a zero line so line counts track record counts.
func ClassifyRecord(snap *records.Snapshot, r records.Record) []engine.ClassifiedLine {
	switch rec := r.(type) {
	case records.Invoice:
		return classifyInvoice(snap, rec)
	case records.Bill:
		return classifyBill(rec)
	case records.Project:
		return classifyProject(rec)
	case records.Expense:
		return classifyExpense(rec)
	case records.TimeEntry:
		return classifyTimeEntry(rec)
	default:
		return nil
	}
}

// classifyInvoice books the paid portion as revenue. Unpaid invoices carry
// a zero paid amount and so yield a zero line, not no line.
func classifyInvoice(snap *records.Snapshot, inv records.Invoice) []engine.ClassifiedLine {
	label := fmt.Sprintf("Invoice %s (%s)", inv.Number, snap.CustomerName(inv.CustomerID))
	return []engine.ClassifiedLine{{
		Bucket: engine.BucketRevenue,
		Amount: inv.PaidAmount,
		Ref:    records.Ref(inv),
		Label:  label,
	}}
}

func classifyBill(b records.Bill) []engine.ClassifiedLine {
	return []engine.ClassifiedLine{{
		Bucket: engine.BucketCostOfGoodsSold,
		Amount: b.PaidAmount,
		Ref:    records.Ref(b),
		Label:  fmt.Sprintf("Bill from %s", b.Vendor),
	}}
}

// classifyProject books an active/completed client project's full budget
// as revenue and its actual cost as cost of goods sold. When actual cost
// exceeds budget, the positive overrun is ADDITIONALLY booked to other
// expenses; this is the one deliberate multi-bucket split, and it is
// deterministic (same project, same lines).
//
// Note: project budgets are booked as revenue alongside paid invoices even
// when an invoice is tied to the same project. Revenue de-duplication is a
// stakeholder policy decision, not an engine default; see DESIGN.md.
func classifyProject(p records.Project) []engine.ClassifiedLine {
	if p.Kind == records.ProjectCapital {
		return nil // capital projects are assets, not trading activity
	}
	if p.Status != records.ProjectActive && p.Status != records.ProjectCompleted {
		return nil
	}

	ref := records.Ref(p)
	lines := []engine.ClassifiedLine{
		{
			Bucket: engine.BucketRevenue,
			Amount: p.Budget,
			Ref:    ref,
			Label:  fmt.Sprintf("Project %s (budget)", p.Name),
		},
		{
			Bucket: engine.BucketCostOfGoodsSold,
			Amount: p.ActualCost,
			Ref:    ref,
			Label:  fmt.Sprintf("Project %s (cost)", p.Name),
		},
	}

	if over := p.Overrun(); over.IsPositive() {
		lines = append(lines, engine.ClassifiedLine{
			Bucket: engine.BucketOtherExpense,
			Amount: over,
			Ref:    ref,
			Label:  fmt.Sprintf("Project %s (cost overrun)", p.Name),
		})
	}
	return lines
}

func classifyExpense(e records.Expense) []engine.ClassifiedLine {
	if e.Status != records.ExpenseApproved {
		return nil
	}
	// Capital purchases and loan/equity movements are not operating
	// expenses; they surface on the other two statements.
	if e.Category.IsFinancing() || e.Category.IsInvesting() {
		return nil
	}
	return []engine.ClassifiedLine{{
		Bucket: engine.BucketOperatingExpenses,
		Amount: e.Amount,
		Ref:    records.Ref(e),
		Label:  e.Description,
	}}
}

func classifyTimeEntry(t records.TimeEntry) []engine.ClassifiedLine {
	ref := records.Ref(t)
	lines := []engine.ClassifiedLine{{
		Bucket: engine.BucketCostOfGoodsSold,
		Amount: t.LaborCost(),
		Ref:    ref,
		Label:  fmt.Sprintf("Labor %s (%sh)", t.Person, t.Hours.String()),
	}}
	if t.Billable {
		lines = append(lines, engine.ClassifiedLine{
			Bucket: engine.BucketRevenue,
			Amount: t.BilledAmount(),
			Ref:    ref,
			Label:  fmt.Sprintf("Billable time %s (%sh)", t.Person, t.Hours.String()),
		})
	}
	return lines
}
