/*
normalize.go - Record normalization

PURPOSE:
  Produces fully-populated records from whatever the store returns.
  Missing optional numerics default to zero here, once, instead of "|| 0"
  scattered across every use site. Classification and aggregation can then
  assume every field is present and non-negative.

POLICY:
  - Negative amounts are clamped to zero: source records never carry sign.
  - A paid-amount larger than the amount is left alone; Outstanding()
    clamps at read time. The substitution is local and never escalates to
    an error: a malformed individual record must not fail a statement.
  - Zero-amount records survive normalization. They classify into
    zero-amount lines so line counts stay consistent with record counts.
*/
package records

import (
	"github.com/shopspring/decimal"

	"github.com/bizbooks/statement-engine/engine"
)

// Normalize returns a copy of the record with defaulting applied.
// It is executed once per fetched record, before classification.
func Normalize(r Record) Record {
	switch rec := r.(type) {
	case Invoice:
		rec.Amount = clamp(rec.Amount)
		rec.PaidAmount = clamp(rec.PaidAmount)
		if rec.Status == "" {
			rec.Status = InvoiceDraft
		}
		return rec

	case Bill:
		rec.Amount = clamp(rec.Amount)
		rec.PaidAmount = clamp(rec.PaidAmount)
		if rec.Status == "" {
			rec.Status = BillPending
		}
		return rec

	case Project:
		rec.Budget = clamp(rec.Budget)
		rec.ActualCost = clamp(rec.ActualCost)
		rec.HourlyRate = clamp(rec.HourlyRate)
		if rec.Kind == "" {
			rec.Kind = ProjectClient
		}
		if rec.Billing == "" {
			rec.Billing = BillingFixed
		}
		if rec.Status == "" {
			rec.Status = ProjectPlanned
		}
		return rec

	case Expense:
		rec.Amount = clamp(rec.Amount)
		if rec.Category == "" {
			rec.Category = CategoryOther
		}
		if rec.Status == "" {
			rec.Status = ExpensePending
		}
		return rec

	case TimeEntry:
		rec.BillRate = clamp(rec.BillRate)
		rec.CostRate = clamp(rec.CostRate)
		if rec.Hours.IsNegative() {
			rec.Hours = decimal.Zero
		}
		return rec

	default:
		return r
	}
}

// NormalizeAll normalizes a fetched batch in place order.
func NormalizeAll(rs []Record) []Record {
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = Normalize(r)
	}
	return out
}

func clamp(m engine.Money) engine.Money {
	if m < 0 {
		return 0
	}
	return m
}
