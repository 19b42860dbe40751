/*
validate.go - Per-statement accounting invariants

PURPOSE:
  Checks the accounting identity each statement must satisfy and attaches
  the outcome to the document. A failed check is a normal result, never an
  exception: the caller renders the signed discrepancy, the engine never
  corrects it.

INVARIANTS:
  profit & loss:  none beyond section-sum consistency (true by construction;
                  the validator exists so all three statements share a shape)
  cash flow:      ending_cash == beginning_cash + net_cash_flow, exact
  balance sheet:  total_assets == total_liabilities + total_equity, exact

All comparisons are exact int64 equality. Approximate comparison would hide
cent-level drift, which is precisely what this engine exists to rule out.
*/
package engine

import "fmt"

// Totals keys shared between builders and validators.
const (
	TotalRevenue           = "revenue"
	TotalCostOfGoodsSold   = "cogs"
	TotalGrossProfit       = "gross_profit"
	TotalOperatingExpenses = "operating_expenses"
	TotalOperatingIncome   = "operating_income"
	TotalOtherIncome       = "other_income"
	TotalOtherExpense      = "other_expense"
	TotalNetIncome         = "net_income"

	TotalNetCashFlow   = "net_cash_flow"
	TotalBeginningCash = "beginning_cash"
	TotalEndingCash    = "ending_cash"

	TotalAssets               = "total_assets"
	TotalLiabilities          = "total_liabilities"
	TotalEquity               = "total_equity"
	TotalLiabilitiesAndEquity = "total_liabilities_and_equity"
)

// Validate checks the statement-specific accounting identity.
func Validate(s *Statement) ValidationResult {
	switch s.Kind {
	case KindCashFlow:
		return validateCashFlow(s)
	case KindBalanceSheet:
		return validateBalanceSheet(s)
	default:
		return validateProfitLoss(s)
	}
}

// validateProfitLoss has no global identity to check: derived totals are
// computed from section subtotals, so they are consistent by construction.
// Kept so every statement carries a validation outcome.
func validateProfitLoss(s *Statement) ValidationResult {
	return ValidationResult{Passed: true, Detail: "sections consistent"}
}

func validateCashFlow(s *Statement) ValidationResult {
	beginning := s.Total(TotalBeginningCash)
	net := s.Total(TotalNetCashFlow)
	ending := s.Total(TotalEndingCash)

	diff := ending.Sub(beginning.Add(net))
	if diff != 0 {
		return ValidationResult{
			Passed:      false,
			Detail:      fmt.Sprintf("cash does not tie: ending %d != beginning %d + net %d (off by %d)", ending, beginning, net, diff),
			Discrepancy: diff,
		}
	}
	return ValidationResult{Passed: true, Detail: "cash ties"}
}

func validateBalanceSheet(s *Statement) ValidationResult {
	assets := s.Total(TotalAssets)
	liabilities := s.Total(TotalLiabilities)
	equity := s.Total(TotalEquity)

	diff := assets.Sub(liabilities.Add(equity))
	if diff != 0 {
		return ValidationResult{
			Passed:      false,
			Detail:      fmt.Sprintf("statement does not balance: assets %d != liabilities %d + equity %d (off by %d)", assets, liabilities, equity, diff),
			Discrepancy: diff,
		}
	}
	return ValidationResult{Passed: true, Detail: "assets = liabilities + equity"}
}

// CheckSections verifies the section-sum invariant: every section subtotal
// equals the sum of its items. Used by tests and by builders as a final
// assertion before the document is returned.
func CheckSections(s *Statement) error {
	for _, sec := range s.Sections {
		var sum Money
		for _, it := range sec.Items {
			sum = sum.Add(it.Amount)
		}
		if sum != sec.Subtotal {
			return fmt.Errorf("section %s: subtotal %d != item sum %d", sec.Name, sec.Subtotal, sum)
		}
	}
	return nil
}
