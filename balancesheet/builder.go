/*
builder.go - Balance sheet assembly

DERIVED TOTALS:
  total_assets                 = cash + receivables + fixed assets
  total_liabilities            = payables + long-term debt
  total_equity                 = retained earnings
  total_liabilities_and_equity = total_liabilities + total_equity

  Each section also carries its share of its side's total as a percentage.
  Net income is never computed here: equity is an already-classified
  bucket, and an imbalance is reported, not repaired.
*/
package balancesheet

import (
	"context"
	"time"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

var sectionOrder = []engine.BucketKind{
	engine.BucketCash,
	engine.BucketReceivables,
	engine.BucketFixedAssets,
	engine.BucketPayables,
	engine.BucketLongTermDebt,
	engine.BucketRetainedEarnings,
}

// Opening carries the balances brought forward from before the record
// history. They classify like any other line and are the caller's input,
// same as beginning cash on the cash flow statement.
type Opening struct {
	Cash             engine.Money
	RetainedEarnings engine.Money
}

// openingLines renders the opening balances as classified lines with a
// synthetic source reference.
func openingLines(o Opening) []engine.ClassifiedLine {
	var lines []engine.ClassifiedLine
	if !o.Cash.IsZero() {
		lines = append(lines, engine.ClassifiedLine{
			Bucket: engine.BucketCash,
			Amount: o.Cash,
			Ref:    engine.RecordRef{SourceType: "opening", RecordID: "cash"},
			Label:  "Opening cash balance",
		})
	}
	if !o.RetainedEarnings.IsZero() {
		lines = append(lines, engine.ClassifiedLine{
			Bucket: engine.BucketRetainedEarnings,
			Amount: o.RetainedEarnings,
			Ref:    engine.RecordRef{SourceType: "opening", RecordID: "retained_earnings"},
			Label:  "Retained earnings brought forward",
		})
	}
	return lines
}

// Builder assembles balance sheets.
type Builder struct {
	Clock func() time.Time
}

func (b Builder) now() time.Time {
	if b.Clock != nil {
		return b.Clock()
	}
	return time.Now().UTC()
}

// Build computes the balance sheet from an already-fetched snapshot of
// records dated on or before asOf.
func (b Builder) Build(snap *records.Snapshot, currency string, asOf engine.TimePoint, opening Opening) *engine.Statement {
	lines := append(openingLines(opening), Classify(snap)...)
	sections := engine.Canonical(engine.Aggregate(lines), sectionOrder)

	assets := engine.SubtotalOf(sections, engine.BucketCash).
		Add(engine.SubtotalOf(sections, engine.BucketReceivables)).
		Add(engine.SubtotalOf(sections, engine.BucketFixedAssets))
	liabilities := engine.SubtotalOf(sections, engine.BucketPayables).
		Add(engine.SubtotalOf(sections, engine.BucketLongTermDebt))
	equity := engine.SubtotalOf(sections, engine.BucketRetainedEarnings)

	// Each side's sections carry their share of that side's total.
	for i := range sections {
		switch sections[i].Bucket.Side() {
		case engine.SideAsset:
			sections[i].Percent = engine.Percentage(sections[i].Subtotal, assets)
		case engine.SideLiability, engine.SideEquity:
			sections[i].Percent = engine.Percentage(sections[i].Subtotal, liabilities.Add(equity))
		}
	}

	stmt := &engine.Statement{
		Kind:        engine.KindBalanceSheet,
		Period:      engine.AsOfPeriod(asOf),
		AsOf:        asOf,
		Currency:    currency,
		GeneratedAt: b.now(),
		Sections:    sections,
		Totals: []engine.TotalLine{
			{Key: engine.TotalAssets, Label: "Total Assets", Amount: assets},
			{Key: engine.TotalLiabilities, Label: "Total Liabilities", Amount: liabilities},
			{Key: engine.TotalEquity, Label: "Total Equity", Amount: equity},
			{Key: engine.TotalLiabilitiesAndEquity, Label: "Total Liabilities and Equity", Amount: liabilities.Add(equity)},
		},
	}
	stmt.Validation = engine.Validate(stmt)
	return stmt
}

// Generate validates the as-of date, fetches every record dated on or
// before it, and builds the balance sheet.
func Generate(ctx context.Context, src records.Source, asOf engine.TimePoint, currency string, opening Opening) (*engine.Statement, error) {
	if asOf.IsZero() {
		return nil, engine.ErrInvalidPeriod
	}
	if currency == "" {
		return nil, engine.ErrInvalidCurrency
	}

	// A balance sheet is cumulative: the fetch window reaches from the
	// beginning of the record history up to the as-of date.
	fetch := engine.Period{Start: engine.NewTimePoint(1, time.January, 1), End: asOf}
	snap, err := records.FetchSnapshot(ctx, src, fetch)
	if err != nil {
		return nil, err
	}
	return Builder{}.Build(snap, currency, asOf, opening), nil
}
