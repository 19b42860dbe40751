package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/statement-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func q1() engine.Period {
	return engine.Period{
		Start: engine.NewTimePoint(2025, time.January, 1),
		End:   engine.NewTimePoint(2025, time.March, 31),
	}
}

func line(b engine.BucketKind, amount int64, id string) engine.ClassifiedLine {
	return engine.ClassifiedLine{
		Bucket: b,
		Amount: engine.Money(amount),
		Ref:    engine.RecordRef{SourceType: "test", RecordID: id},
		Label:  id,
	}
}

// =============================================================================
// MONEY TESTS
// =============================================================================

func TestMoney_IntegerArithmetic(t *testing.T) {
	a := engine.Money(1000000)
	b := engine.Money(400000)

	if got := a.Sub(b); got != 600000 {
		t.Errorf("expected 600000, got %d", got)
	}
	if got := a.Add(b.Neg()); got != 600000 {
		t.Errorf("expected 600000, got %d", got)
	}
	if got := engine.Money(-50).Abs(); got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
}

func TestMulHours_RoundsHalfUpToMinorUnit(t *testing.T) {
	// GIVEN: 7.5 hours at a rate of 333 minor units/hour
	// WHEN: Computing the line amount
	// THEN: 2497.5 rounds to 2498, not truncates to 2497

	hours := decimal.RequireFromString("7.5")
	got := engine.MulHours(hours, engine.Money(333))
	if got != 2498 {
		t.Errorf("expected 2498, got %d", got)
	}
}

func TestMulHours_ZeroHours(t *testing.T) {
	got := engine.MulHours(decimal.Zero, engine.Money(500000))
	if got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestPercentage_ZeroWholeIsZero(t *testing.T) {
	if got := engine.Percentage(500, 0); !got.IsZero() {
		t.Errorf("expected zero percentage, got %s", got)
	}
}

func TestPercentage_Share(t *testing.T) {
	got := engine.Percentage(500, 800)
	want := decimal.RequireFromString("62.5")
	if !got.Equal(want) {
		t.Errorf("expected 62.5, got %s", got)
	}
}

// =============================================================================
// PERIOD TESTS
// =============================================================================

func TestPeriod_Validate_EndBeforeStart(t *testing.T) {
	p := engine.Period{
		Start: engine.NewTimePoint(2025, time.March, 31),
		End:   engine.NewTimePoint(2025, time.January, 1),
	}
	if err := p.Validate(); err != engine.ErrInvalidPeriod {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestPeriod_Validate_ZeroDates(t *testing.T) {
	if err := (engine.Period{}).Validate(); err != engine.ErrInvalidPeriod {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestPeriod_NextIsAdjacent(t *testing.T) {
	// GIVEN: Q1 2025
	// WHEN: Asking for the next period
	// THEN: It starts the day after Q1 ends, with no gap

	next := q1().Next()
	if !next.Start.Equal(engine.NewTimePoint(2025, time.April, 1)) {
		t.Errorf("expected next period to start 2025-04-01, got %s", next.Start)
	}
	if got := q1().Previous().Next(); !got.Start.Equal(q1().Start) {
		t.Errorf("previous then next should round-trip the start, got %s", got.Start)
	}
}

func TestPeriod_Contains_InclusiveBounds(t *testing.T) {
	p := q1()
	for _, tp := range []engine.TimePoint{p.Start, p.End} {
		if !p.Contains(tp) {
			t.Errorf("period should contain its bound %s", tp)
		}
	}
	if p.Contains(p.End.AddDays(1)) {
		t.Error("period should not contain the day after its end")
	}
}

// =============================================================================
// AGGREGATION TESTS
// =============================================================================

func TestAggregate_FirstOccurrenceOrder(t *testing.T) {
	// GIVEN: Lines arriving cost-first
	// WHEN: Aggregating
	// THEN: Sections appear in first-occurrence order, not a fixed order

	lines := []engine.ClassifiedLine{
		line(engine.BucketCostOfGoodsSold, 400, "b1"),
		line(engine.BucketRevenue, 1000, "i1"),
		line(engine.BucketCostOfGoodsSold, 100, "b2"),
	}
	sections := engine.Aggregate(lines)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Bucket != engine.BucketCostOfGoodsSold {
		t.Errorf("expected cost section first, got %s", sections[0].Bucket)
	}
	if sections[0].Subtotal != 500 {
		t.Errorf("expected subtotal 500, got %d", sections[0].Subtotal)
	}
	if sections[1].Subtotal != 1000 {
		t.Errorf("expected subtotal 1000, got %d", sections[1].Subtotal)
	}
}

func TestAggregate_KeepsZeroAmountLines(t *testing.T) {
	// Zero-amount records still classify into zero lines so counts stay
	// consistent with the source record count.

	sections := engine.Aggregate([]engine.ClassifiedLine{
		line(engine.BucketRevenue, 0, "draft-invoice"),
		line(engine.BucketRevenue, 700, "paid-invoice"),
	})

	if len(sections) != 1 || len(sections[0].Items) != 2 {
		t.Fatalf("expected 1 section with 2 items, got %+v", sections)
	}
	if sections[0].Subtotal != 700 {
		t.Errorf("expected subtotal 700, got %d", sections[0].Subtotal)
	}
}

func TestCanonical_InsertsEmptySections(t *testing.T) {
	order := []engine.BucketKind{engine.BucketRevenue, engine.BucketCostOfGoodsSold}
	sections := engine.Canonical(nil, order)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	for _, s := range sections {
		if s.Subtotal != 0 || len(s.Items) != 0 {
			t.Errorf("expected empty zero section, got %+v", s)
		}
		if s.Items == nil {
			t.Error("empty section items should be an empty slice, not nil")
		}
	}
}

// =============================================================================
// VALIDATOR TESTS
// =============================================================================

func TestValidate_CashFlowTies(t *testing.T) {
	stmt := &engine.Statement{
		Kind: engine.KindCashFlow,
		Totals: []engine.TotalLine{
			{Key: engine.TotalBeginningCash, Amount: 100},
			{Key: engine.TotalNetCashFlow, Amount: 40},
			{Key: engine.TotalEndingCash, Amount: 140},
		},
	}
	res := engine.Validate(stmt)
	if !res.Passed {
		t.Errorf("expected pass, got %+v", res)
	}
}

func TestValidate_BalanceSheetDiscrepancySigned(t *testing.T) {
	// GIVEN: Assets 750 against liabilities 200 + equity 600
	// WHEN: Validating
	// THEN: Fails with discrepancy -50 (assets short), correctly signed

	stmt := &engine.Statement{
		Kind: engine.KindBalanceSheet,
		Totals: []engine.TotalLine{
			{Key: engine.TotalAssets, Amount: 750},
			{Key: engine.TotalLiabilities, Amount: 200},
			{Key: engine.TotalEquity, Amount: 600},
		},
	}
	res := engine.Validate(stmt)
	if res.Passed {
		t.Fatal("expected validation failure")
	}
	if res.Discrepancy != -50 {
		t.Errorf("expected discrepancy -50, got %d", res.Discrepancy)
	}
}

func TestCheckSections_DetectsDrift(t *testing.T) {
	stmt := &engine.Statement{
		Sections: []engine.Section{{
			Name:     "Revenue",
			Items:    []engine.ClassifiedLine{line(engine.BucketRevenue, 100, "x")},
			Subtotal: 101,
		}},
	}
	if err := engine.CheckSections(stmt); err == nil {
		t.Error("expected section-sum violation to be reported")
	}
}
