/*
Package engine provides the core financial statement aggregation engine.

PURPOSE:
  This package contains statement-agnostic types and algorithms shared by
  the three statement builders (profit & loss, cash flow, balance sheet).
  Classified lines flow in, ordered sections with exact integer subtotals
  flow out, and each statement kind gets its accounting identity checked.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A monetary amount in integer minor units (no floating point)
  - BucketKind: A closed classification target within one statement family
  - ClassifiedLine: One record's contribution to one bucket, with traceability
  - Section: A named group of lines with an exact subtotal
  - Statement: The final immutable document returned to callers

DESIGN PRINCIPLES:
  1. Exactness: All summation is int64 minor-unit arithmetic. Decimals are
     used only for rate multiplication and percentage display.
  2. Immutability: A Statement is built once and never mutated afterwards.
  3. Purity: Building a statement is a pure function of (records, period,
     inputs, clock). Identical inputs produce identical output.
  4. Traceability: Every line keeps a reference to its source record.

USAGE:
  lines := profitloss.Classify(record)
  sections := engine.Aggregate(lines)
  // builders assemble sections into a Statement and validate it

SEE ALSO:
  - time.go: TimePoint and Period
  - aggregate.go: Section aggregation
  - validate.go: Per-statement accounting invariants
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Integer minor-unit amounts
// =============================================================================

// Money is a monetary amount in minor units (cents, đồng). Summation stays
// on int64 so that section subtotals and the balance identity hold exactly.
type Money int64

func (m Money) Add(o Money) Money { return m + o }
func (m Money) Sub(o Money) Money { return m - o }
func (m Money) Neg() Money        { return -m }
func (m Money) Abs() Money        { if m < 0 { return -m }; return m }
func (m Money) IsZero() bool      { return m == 0 }
func (m Money) IsNegative() bool  { return m < 0 }
func (m Money) IsPositive() bool  { return m > 0 }

// Decimal returns the amount as a decimal for rate/percentage math.
// Aggregation never goes through this.
func (m Money) Decimal() decimal.Decimal { return decimal.NewFromInt(int64(m)) }

// MulHours computes hours x rate rounded half-up to the minor unit.
// Hours are fractional (7.5h), rates are minor units per hour.
func MulHours(hours decimal.Decimal, rate Money) Money {
	v := hours.Mul(rate.Decimal()).Round(0)
	return Money(v.IntPart())
}

// Percentage returns part/whole as a percentage with two decimal places.
// A zero whole yields zero rather than a division error.
func Percentage(part, whole Money) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return part.Decimal().Div(whole.Decimal()).Mul(decimal.NewFromInt(100)).Round(2)
}

// =============================================================================
// STATEMENT KINDS
// =============================================================================

type StatementKind string

const (
	KindProfitLoss   StatementKind = "profit_loss"
	KindCashFlow     StatementKind = "cash_flow"
	KindBalanceSheet StatementKind = "balance_sheet"
)

// =============================================================================
// BUCKETS - Closed classification targets
// =============================================================================

// BucketKind identifies where a classified line lands within a statement.
// The set is closed: classification dispatches exhaustively over record
// variants, so a new source type is a compile-time addition, not a
// string-keyed branch.
type BucketKind string

const (
	// Profit & loss
	BucketRevenue           BucketKind = "revenue"
	BucketCostOfGoodsSold   BucketKind = "cost_of_goods_sold"
	BucketOperatingExpenses BucketKind = "operating_expenses"
	BucketOtherIncome       BucketKind = "other_income"
	BucketOtherExpense      BucketKind = "other_expense"

	// Cash flow
	BucketOperating BucketKind = "operating"
	BucketInvesting BucketKind = "investing"
	BucketFinancing BucketKind = "financing"

	// Balance sheet
	BucketCash             BucketKind = "cash"
	BucketReceivables      BucketKind = "receivables"
	BucketFixedAssets      BucketKind = "fixed_assets"
	BucketPayables         BucketKind = "payables"
	BucketLongTermDebt     BucketKind = "long_term_debt"
	BucketRetainedEarnings BucketKind = "retained_earnings"
)

// Side classifies a balance-sheet bucket onto one side of the accounting
// identity. Non-balance-sheet buckets have SideNone.
type Side string

const (
	SideNone      Side = ""
	SideAsset     Side = "asset"
	SideLiability Side = "liability"
	SideEquity    Side = "equity"
)

var bucketNames = map[BucketKind]string{
	BucketRevenue:           "Revenue",
	BucketCostOfGoodsSold:   "Cost of Goods Sold",
	BucketOperatingExpenses: "Operating Expenses",
	BucketOtherIncome:       "Other Income",
	BucketOtherExpense:      "Other Expenses",
	BucketOperating:         "Operating Activities",
	BucketInvesting:         "Investing Activities",
	BucketFinancing:         "Financing Activities",
	BucketCash:              "Cash",
	BucketReceivables:       "Accounts Receivable",
	BucketFixedAssets:       "Fixed Assets",
	BucketPayables:          "Accounts Payable",
	BucketLongTermDebt:      "Long-Term Debt",
	BucketRetainedEarnings:  "Retained Earnings",
}

var bucketSides = map[BucketKind]Side{
	BucketCash:             SideAsset,
	BucketReceivables:      SideAsset,
	BucketFixedAssets:      SideAsset,
	BucketPayables:         SideLiability,
	BucketLongTermDebt:     SideLiability,
	BucketRetainedEarnings: SideEquity,
}

// Name returns the display name for a bucket.
func (b BucketKind) Name() string {
	if n, ok := bucketNames[b]; ok {
		return n
	}
	return string(b)
}

// Side returns the balance-sheet side for a bucket, SideNone otherwise.
func (b BucketKind) Side() Side { return bucketSides[b] }

// =============================================================================
// CLASSIFIED LINE - One record's contribution to one bucket
// =============================================================================

// RecordRef identifies the source record behind a classified line.
type RecordRef struct {
	SourceType string
	RecordID   string
}

// ClassifiedLine is produced by classification: a signed amount assigned to
// exactly one bucket. Source records always carry non-negative amounts; the
// sign is assigned here and nowhere else.
type ClassifiedLine struct {
	Bucket BucketKind
	Amount Money
	Ref    RecordRef
	Label  string
}

// =============================================================================
// SECTION - Bucket group with exact subtotal
// =============================================================================

// Section groups the classified lines of one bucket.
// Invariant: Subtotal == sum of Items amounts, exactly.
type Section struct {
	Bucket   BucketKind
	Name     string
	Items    []ClassifiedLine
	Subtotal Money

	// Percent is the section's share of its side total. Balance sheet only;
	// zero elsewhere.
	Percent decimal.Decimal
}

// =============================================================================
// STATEMENT - The output document
// =============================================================================

// TotalLine is one derived figure on a statement (gross profit, ending cash,
// total assets, ...). Totals are ordered so serialization is deterministic.
type TotalLine struct {
	Key    string
	Label  string
	Amount Money
}

// ValidationResult is the outcome of the statement's accounting identity
// check. A failed validation is a normal, representable outcome: the
// discrepancy is reported, never corrected.
type ValidationResult struct {
	Passed      bool
	Detail      string
	Discrepancy Money
}

// Statement is one of the three output documents. Created fresh on every
// request, immutable once returned; there is no persisted statement state.
type Statement struct {
	Kind        StatementKind
	Period      Period
	AsOf        TimePoint // balance sheet only; zero otherwise
	Currency    string
	GeneratedAt time.Time
	Sections    []Section
	Totals      []TotalLine
	Validation  ValidationResult
}

// Total looks up a derived figure by key. Zero when absent.
func (s *Statement) Total(key string) Money {
	for _, t := range s.Totals {
		if t.Key == key {
			return t.Amount
		}
	}
	return 0
}

// Section looks up a section by bucket. Nil when absent.
func (s *Statement) Section(b BucketKind) *Section {
	for i := range s.Sections {
		if s.Sections[i].Bucket == b {
			return &s.Sections[i]
		}
	}
	return nil
}
