/*
builder.go - Profit & loss statement assembly

DERIVED TOTALS:
  gross_profit     = revenue - cogs
  operating_income = gross_profit - operating_expenses
  net_income       = operating_income + other_income - other_expense

  Totals are always derived from already-aggregated section subtotals,
  never independently re-summed from raw records, so the document cannot
  disagree with itself.
*/
package profitloss

import (
	"context"
	"time"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

// sectionOrder is the canonical presentation order.
var sectionOrder = []engine.BucketKind{
	engine.BucketRevenue,
	engine.BucketCostOfGoodsSold,
	engine.BucketOperatingExpenses,
	engine.BucketOtherIncome,
	engine.BucketOtherExpense,
}

// Builder assembles profit & loss statements. The zero value uses the
// wall clock; tests inject a fixed clock for byte-identical output.
type Builder struct {
	Clock func() time.Time
}

func (b Builder) now() time.Time {
	if b.Clock != nil {
		return b.Clock()
	}
	return time.Now().UTC()
}

// Build computes the statement from an already-fetched snapshot.
// Pure: identical snapshot, currency, and clock yield identical output.
func (b Builder) Build(snap *records.Snapshot, currency string) *engine.Statement {
	sections := engine.Canonical(engine.Aggregate(Classify(snap)), sectionOrder)

	revenue := engine.SubtotalOf(sections, engine.BucketRevenue)
	cogs := engine.SubtotalOf(sections, engine.BucketCostOfGoodsSold)
	opex := engine.SubtotalOf(sections, engine.BucketOperatingExpenses)
	otherIncome := engine.SubtotalOf(sections, engine.BucketOtherIncome)
	otherExpense := engine.SubtotalOf(sections, engine.BucketOtherExpense)

	grossProfit := revenue.Sub(cogs)
	operatingIncome := grossProfit.Sub(opex)
	netIncome := operatingIncome.Add(otherIncome).Sub(otherExpense)

	stmt := &engine.Statement{
		Kind:        engine.KindProfitLoss,
		Period:      snap.Period,
		Currency:    currency,
		GeneratedAt: b.now(),
		Sections:    sections,
		Totals: []engine.TotalLine{
			{Key: engine.TotalRevenue, Label: "Revenue", Amount: revenue},
			{Key: engine.TotalCostOfGoodsSold, Label: "Cost of Goods Sold", Amount: cogs},
			{Key: engine.TotalGrossProfit, Label: "Gross Profit", Amount: grossProfit},
			{Key: engine.TotalOperatingExpenses, Label: "Operating Expenses", Amount: opex},
			{Key: engine.TotalOperatingIncome, Label: "Operating Income", Amount: operatingIncome},
			{Key: engine.TotalOtherIncome, Label: "Other Income", Amount: otherIncome},
			{Key: engine.TotalOtherExpense, Label: "Other Expenses", Amount: otherExpense},
			{Key: engine.TotalNetIncome, Label: "Net Income", Amount: netIncome},
		},
	}
	stmt.Validation = engine.Validate(stmt)
	return stmt
}

// Generate validates the request, fetches a snapshot, and builds the
// statement. Malformed periods fail fast before any fetch is attempted.
func Generate(ctx context.Context, src records.Source, period engine.Period, currency string) (*engine.Statement, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if currency == "" {
		return nil, engine.ErrInvalidCurrency
	}

	snap, err := records.FetchSnapshot(ctx, src, period)
	if err != nil {
		return nil, err
	}
	return Builder{}.Build(snap, currency), nil
}
