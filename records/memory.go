/*
memory.go - In-memory record source

PURPOSE:
  A Source backed by plain slices, for tests and demo datasets. Mirrors the
  sqlite store's contract: range-filtered fetches, date-then-id ordering,
  empty (not nil) results, and a switchable failure mode for exercising the
  SourceUnavailable path.

NOT FOR PRODUCTION:
  No persistence. The sqlite store is the real implementation.
*/
package records

import (
	"context"
	"sort"
	"sync"

	"github.com/bizbooks/statement-engine/engine"
)

// MemorySource implements Source over in-memory slices.
type MemorySource struct {
	mu          sync.RWMutex
	invoices    []Invoice
	bills       []Bill
	projects    []Project
	expenses    []Expense
	timeEntries []TimeEntry
	customers   []Customer

	// failing simulates an unreachable backing store.
	failing bool
}

func NewMemorySource() *MemorySource { return &MemorySource{} }

// SetFailing toggles the simulated outage.
func (m *MemorySource) SetFailing(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = v
}

func (m *MemorySource) AddInvoice(r Invoice)     { m.mu.Lock(); m.invoices = append(m.invoices, r); m.mu.Unlock() }
func (m *MemorySource) AddBill(r Bill)           { m.mu.Lock(); m.bills = append(m.bills, r); m.mu.Unlock() }
func (m *MemorySource) AddProject(r Project)     { m.mu.Lock(); m.projects = append(m.projects, r); m.mu.Unlock() }
func (m *MemorySource) AddExpense(r Expense)     { m.mu.Lock(); m.expenses = append(m.expenses, r); m.mu.Unlock() }
func (m *MemorySource) AddTimeEntry(r TimeEntry) { m.mu.Lock(); m.timeEntries = append(m.timeEntries, r); m.mu.Unlock() }
func (m *MemorySource) AddCustomer(c Customer)   { m.mu.Lock(); m.customers = append(m.customers, c); m.mu.Unlock() }

// Fetch returns records of one source type dated within the period,
// ordered by date then id.
func (m *MemorySource) Fetch(ctx context.Context, st SourceType, period engine.Period) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failing {
		return nil, engine.ErrSourceUnavailable
	}

	out := make([]Record, 0)
	switch st {
	case SourceInvoices:
		for _, r := range m.invoices {
			if period.Contains(r.RecordDate()) {
				out = append(out, r)
			}
		}
	case SourceBills:
		for _, r := range m.bills {
			if period.Contains(r.RecordDate()) {
				out = append(out, r)
			}
		}
	case SourceProjects:
		for _, r := range m.projects {
			if period.Contains(r.RecordDate()) {
				out = append(out, r)
			}
		}
	case SourceExpenses:
		for _, r := range m.expenses {
			if period.Contains(r.RecordDate()) {
				out = append(out, r)
			}
		}
	case SourceTimeEntries:
		for _, r := range m.timeEntries {
			if period.Contains(r.RecordDate()) {
				out = append(out, r)
			}
		}
	default:
		return nil, engine.ErrUnknownSourceType
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].RecordDate().Equal(out[j].RecordDate()) {
			return out[i].RecordDate().Before(out[j].RecordDate())
		}
		return out[i].RecordID() < out[j].RecordID()
	})
	return out, nil
}

// Customers returns the customer directory.
func (m *MemorySource) Customers(ctx context.Context) ([]Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failing {
		return nil, engine.ErrSourceUnavailable
	}

	out := make([]Customer, len(m.customers))
	copy(out, m.customers)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
