/*
builder.go - Cash flow statement assembly

DERIVED TOTALS:
  net_cash_flow = operating + investing + financing section subtotals
  ending_cash   = beginning_cash + net_cash_flow

  beginning_cash is an input, not derived: chaining statements across
  adjacent periods is the caller's responsibility, and the validator
  checks the tie with exact integer equality.
*/
package cashflow

import (
	"context"
	"time"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

// Per-activity total keys, on top of the shared engine keys.
const (
	TotalOperatingCashFlow = "operating_cash_flow"
	TotalInvestingCashFlow = "investing_cash_flow"
	TotalFinancingCashFlow = "financing_cash_flow"
)

var sectionOrder = []engine.BucketKind{
	engine.BucketOperating,
	engine.BucketInvesting,
	engine.BucketFinancing,
}

// Builder assembles cash flow statements.
type Builder struct {
	Clock func() time.Time
}

func (b Builder) now() time.Time {
	if b.Clock != nil {
		return b.Clock()
	}
	return time.Now().UTC()
}

// Build computes the statement from an already-fetched snapshot plus the
// prior period's ending cash.
func (b Builder) Build(snap *records.Snapshot, currency string, beginningCash engine.Money) *engine.Statement {
	sections := engine.Canonical(engine.Aggregate(Classify(snap)), sectionOrder)

	operating := engine.SubtotalOf(sections, engine.BucketOperating)
	investing := engine.SubtotalOf(sections, engine.BucketInvesting)
	financing := engine.SubtotalOf(sections, engine.BucketFinancing)

	net := operating.Add(investing).Add(financing)
	ending := beginningCash.Add(net)

	stmt := &engine.Statement{
		Kind:        engine.KindCashFlow,
		Period:      snap.Period,
		Currency:    currency,
		GeneratedAt: b.now(),
		Sections:    sections,
		Totals: []engine.TotalLine{
			{Key: TotalOperatingCashFlow, Label: "Net Cash from Operating Activities", Amount: operating},
			{Key: TotalInvestingCashFlow, Label: "Net Cash from Investing Activities", Amount: investing},
			{Key: TotalFinancingCashFlow, Label: "Net Cash from Financing Activities", Amount: financing},
			{Key: engine.TotalNetCashFlow, Label: "Net Cash Flow", Amount: net},
			{Key: engine.TotalBeginningCash, Label: "Beginning Cash", Amount: beginningCash},
			{Key: engine.TotalEndingCash, Label: "Ending Cash", Amount: ending},
		},
	}
	stmt.Validation = engine.Validate(stmt)
	return stmt
}

// Generate validates the request, fetches a snapshot, and builds the
// statement.
func Generate(ctx context.Context, src records.Source, period engine.Period, currency string, beginningCash engine.Money) (*engine.Statement, error) {
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
	return Builder{}.Build(snap, currency, beginningCash), nil
}
