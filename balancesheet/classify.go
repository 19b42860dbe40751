/*
Package balancesheet builds the balance sheet.

PURPOSE:
  Snapshots every record dated on or before a single as-of date and
  classifies it onto one side of the accounting identity:

    asset:      cash, accounts receivable, fixed assets
    liability:  accounts payable, long-term debt
    equity:     retained earnings

  Opening balances (cash and retained earnings brought forward from before
  the record history) are caller inputs classified like any other line; the
  builder never derives net income. The validator checks
  assets == liabilities + equity with exact integer equality and reports
  the signed discrepancy on failure.

CLASSIFICATION RULES:
  paid invoice            -> cash (+)
  unpaid invoice          -> receivables (outstanding)
  paid bill               -> cash (-)
  unpaid bill             -> payables (outstanding)
  capital project         -> fixed assets (actual cost)
  equipment expense       -> cash (-) and fixed assets (+)
  loan proceeds/principal -> cash and long-term debt, same sign
  owner funding/draw      -> cash and retained earnings, same sign
  ordinary expense        -> cash (-)
  time entry              -> payables (accrued wages)

  Loan, owner, and equipment expenses legitimately span two buckets (the
  cash leg and the counterpart leg), so they are the records that split
  into two lines here. The split is deterministic.
*/
package balancesheet

import (
	"fmt"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

// Classify produces the balance sheet lines for every record in the
// snapshot.
func Classify(snap *records.Snapshot) []engine.ClassifiedLine {
	var lines []engine.ClassifiedLine
	for _, r := range snap.All() {
		lines = append(lines, ClassifyRecord(snap, r)...)
	}
	return lines
}

// ClassifyRecord maps one record to its balance sheet lines.
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
		return []engine.ClassifiedLine{{
			Bucket: engine.BucketPayables,
			Amount: rec.LaborCost(),
			Ref:    records.Ref(rec),
			Label:  fmt.Sprintf("Accrued wages %s", rec.Person),
		}}
	default:
		return nil
	}
}

func classifyInvoice(snap *records.Snapshot, inv records.Invoice) []engine.ClassifiedLine {
	name := snap.CustomerName(inv.CustomerID)
	if inv.Status == records.InvoicePaid {
		return []engine.ClassifiedLine{{
			Bucket: engine.BucketCash,
			Amount: inv.PaidAmount,
			Ref:    records.Ref(inv),
			Label:  fmt.Sprintf("Collected invoice %s (%s)", inv.Number, name),
		}}
	}
	return []engine.ClassifiedLine{{
		Bucket: engine.BucketReceivables,
		Amount: inv.Outstanding(),
		Ref:    records.Ref(inv),
		Label:  fmt.Sprintf("Invoice %s (%s)", inv.Number, name),
	}}
}

func classifyBill(b records.Bill) []engine.ClassifiedLine {
	if b.Status == records.BillPaid {
		return []engine.ClassifiedLine{{
			Bucket: engine.BucketCash,
			Amount: b.PaidAmount.Neg(),
			Ref:    records.Ref(b),
			Label:  fmt.Sprintf("Paid bill from %s", b.Vendor),
		}}
	}
	return []engine.ClassifiedLine{{
		Bucket: engine.BucketPayables,
		Amount: b.Outstanding(),
		Ref:    records.Ref(b),
		Label:  fmt.Sprintf("Bill from %s", b.Vendor),
	}}
}

// classifyProject books capital project cost as a fixed asset. Client
// projects have no balance sheet presence of their own: their effects
// arrive through invoices, bills, and labor entries.
func classifyProject(p records.Project) []engine.ClassifiedLine {
	if p.Kind != records.ProjectCapital {
		return nil
	}
	return []engine.ClassifiedLine{{
		Bucket: engine.BucketFixedAssets,
		Amount: p.ActualCost,
		Ref:    records.Ref(p),
		Label:  fmt.Sprintf("Capital project %s", p.Name),
	}}
}

func classifyExpense(e records.Expense) []engine.ClassifiedLine {
	if e.Status != records.ExpenseApproved {
		return nil
	}

	ref := records.Ref(e)
	sign := engine.Money(-1)
	if e.Category.IsInflow() {
		sign = 1
	}
	cashLeg := engine.ClassifiedLine{
		Bucket: engine.BucketCash,
		Amount: e.Amount * sign,
		Ref:    ref,
		Label:  e.Description,
	}

	switch {
	case e.Category == records.CategoryLoanProceeds:
		return []engine.ClassifiedLine{cashLeg, {
			Bucket: engine.BucketLongTermDebt,
			Amount: e.Amount,
			Ref:    ref,
			Label:  e.Description,
		}}
	case e.Category == records.CategoryLoanPrincipal:
		return []engine.ClassifiedLine{cashLeg, {
			Bucket: engine.BucketLongTermDebt,
			Amount: e.Amount.Neg(),
			Ref:    ref,
			Label:  e.Description,
		}}
	case e.Category == records.CategoryOwnerFunding:
		return []engine.ClassifiedLine{cashLeg, {
			Bucket: engine.BucketRetainedEarnings,
			Amount: e.Amount,
			Ref:    ref,
			Label:  e.Description,
		}}
	case e.Category == records.CategoryOwnerDraw:
		return []engine.ClassifiedLine{cashLeg, {
			Bucket: engine.BucketRetainedEarnings,
			Amount: e.Amount.Neg(),
			Ref:    ref,
			Label:  e.Description,
		}}
	case e.Category.IsInvesting():
		return []engine.ClassifiedLine{cashLeg, {
			Bucket: engine.BucketFixedAssets,
			Amount: e.Amount,
			Ref:    ref,
			Label:  e.Description,
		}}
	default:
		return []engine.ClassifiedLine{cashLeg}
	}
}
