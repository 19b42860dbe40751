/*
Package cashflow builds the cash flow statement.

PURPOSE:
  Classifies a period's records under the debit/credit model used by
  Vietnamese bookkeeping: every record resolves to a debit amount and a
  credit amount (one of which is zero for simple records), and its net
  movement is credit - debit. Each record lands in exactly one activity:

    operating:  invoices, bills, ordinary expenses, labor
    investing:  capital project cost, equipment purchases
    financing:  loan and owner equity movements

  Beginning cash is supplied by the caller (the prior period's ending
  balance); the builder derives ending cash and the validator checks that
  the chain ties exactly.

SEE ALSO:
  - builder.go: Statement assembly, beginning/ending cash
*/
package cashflow

import (
	"fmt"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

// movement is one record's debit/credit resolution.
type movement struct {
	bucket engine.BucketKind
	debit  engine.Money
	credit engine.Money
	label  string
}

// net is credit - debit: inflows positive, outflows negative.
func (m movement) net() engine.Money { return m.credit.Sub(m.debit) }

// Classify produces one cash flow line per record in the snapshot.
func Classify(snap *records.Snapshot) []engine.ClassifiedLine {
	var lines []engine.ClassifiedLine
	for _, r := range snap.All() {
		lines = append(lines, ClassifyRecord(snap, r)...)
	}
	return lines
}

// ClassifyRecord maps one record to exactly one activity line. Records
// with no cash movement in the period (unpaid invoices, pending expenses)
// still yield a zero line so totals and counts stay consistent with the
// source record count.
func ClassifyRecord(snap *records.Snapshot, r records.Record) []engine.ClassifiedLine {
	m := resolve(snap, r)
	return []engine.ClassifiedLine{{
		Bucket: m.bucket,
		Amount: m.net(),
		Ref:    records.Ref(r),
		Label:  m.label,
	}}
}

func resolve(snap *records.Snapshot, r records.Record) movement {
	switch rec := r.(type) {
	case records.Invoice:
		return movement{
			bucket: engine.BucketOperating,
			credit: rec.PaidAmount,
			label:  fmt.Sprintf("Receipt, invoice %s (%s)", rec.Number, snap.CustomerName(rec.CustomerID)),
		}

	case records.Bill:
		return movement{
			bucket: engine.BucketOperating,
			debit:  rec.PaidAmount,
			label:  fmt.Sprintf("Payment to %s", rec.Vendor),
		}

	case records.Project:
		if rec.Kind == records.ProjectCapital {
			return movement{
				bucket: engine.BucketInvesting,
				debit:  rec.ActualCost,
				label:  fmt.Sprintf("Capital project %s", rec.Name),
			}
		}
		// Client project cash moves through its bills and labor entries;
		// the project row itself carries no movement.
		return movement{
			bucket: engine.BucketOperating,
			label:  fmt.Sprintf("Project %s", rec.Name),
		}

	case records.Expense:
		return resolveExpense(rec)

	case records.TimeEntry:
		return movement{
			bucket: engine.BucketOperating,
			debit:  rec.LaborCost(),
			label:  fmt.Sprintf("Wages %s", rec.Person),
		}

	default:
		return movement{bucket: engine.BucketOperating, label: "unclassified"}
	}
}

func resolveExpense(e records.Expense) movement {
	m := movement{bucket: engine.BucketOperating, label: e.Description}

	switch {
	case e.Category.IsInvesting():
		m.bucket = engine.BucketInvesting
	case e.Category.IsFinancing():
		m.bucket = engine.BucketFinancing
	}

	// Only approved expenses move cash; others keep a zero line in their
	// activity.
	if e.Status != records.ExpenseApproved {
		return m
	}

	if e.Category.IsInflow() {
		m.credit = e.Amount
	} else {
		m.debit = e.Amount
	}
	return m
}
