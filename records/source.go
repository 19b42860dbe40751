/*
source.go - Record source collaborator and concurrent snapshot fetch

PURPOSE:
  The engine consumes a Source that reads raw rows per source type over a
  date range. Fetching is the only I/O in a statement request; computing
  happens on an already-fetched Snapshot so that fetch latency and compute
  stay decoupled.

CONTRACT:
  - Fetch returns an empty slice, never nil, when nothing matches.
  - Fetch fails with an error wrapping engine.ErrSourceUnavailable when the
    backing store cannot be reached. The engine surfaces it unchanged; all
    retry/backoff responsibility belongs to the source implementation.
  - Records returned by Fetch are raw; FetchSnapshot normalizes them.

CONCURRENCY:
  The five source reads have no ordering dependency, so FetchSnapshot
  issues them concurrently and fails with the first error.
*/
package records

import (
	"context"
	"sync"

	"github.com/bizbooks/statement-engine/engine"
)

// Source is the record-store collaborator.
type Source interface {
	// Fetch reads all records of one source type dated within the period.
	Fetch(ctx context.Context, st SourceType, period engine.Period) ([]Record, error)

	// Customers reads the customer directory, used for line labels.
	Customers(ctx context.Context) ([]Customer, error)
}

// Snapshot is everything one statement request computes from. All records
// are normalized; statement builders are pure functions of a snapshot.
type Snapshot struct {
	Period      engine.Period
	Invoices    []Invoice
	Bills       []Bill
	Projects    []Project
	Expenses    []Expense
	TimeEntries []TimeEntry
	Customers   map[string]Customer
}

// All returns every record of the snapshot in a fixed source-type order:
// invoices, bills, projects, expenses, time entries. Classification
// iterates this, so section item order is deterministic.
func (s *Snapshot) All() []Record {
	out := make([]Record, 0,
		len(s.Invoices)+len(s.Bills)+len(s.Projects)+len(s.Expenses)+len(s.TimeEntries))
	for _, r := range s.Invoices {
		out = append(out, r)
	}
	for _, r := range s.Bills {
		out = append(out, r)
	}
	for _, r := range s.Projects {
		out = append(out, r)
	}
	for _, r := range s.Expenses {
		out = append(out, r)
	}
	for _, r := range s.TimeEntries {
		out = append(out, r)
	}
	return out
}

// CustomerName resolves a customer id to a display name, falling back to
// the id itself when the directory has no entry.
func (s *Snapshot) CustomerName(id string) string {
	if c, ok := s.Customers[id]; ok && c.Name != "" {
		return c.Name
	}
	return id
}

// FetchSnapshot reads all five source types concurrently plus the customer
// directory, normalizes every record, and assembles a Snapshot. The period
// must already be validated; FetchSnapshot does not re-check it.
func FetchSnapshot(ctx context.Context, src Source, period engine.Period) (*Snapshot, error) {
	snap := &Snapshot{Period: period, Customers: make(map[string]Customer)}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, st := range AllSourceTypes {
		st := st
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := src.Fetch(ctx, st, period)
			if err != nil {
				fail(&engine.SourceError{SourceType: string(st), Err: err})
				return
			}
			mu.Lock()
			snap.add(NormalizeAll(recs))
			mu.Unlock()
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		customers, err := src.Customers(ctx)
		if err != nil {
			fail(&engine.SourceError{SourceType: "customers", Err: err})
			return
		}
		mu.Lock()
		for _, c := range customers {
			snap.Customers[c.ID] = c
		}
		mu.Unlock()
	}()

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return snap, nil
}

// add routes normalized records into their typed slices.
func (s *Snapshot) add(recs []Record) {
	for _, r := range recs {
		switch rec := r.(type) {
		case Invoice:
			s.Invoices = append(s.Invoices, rec)
		case Bill:
			s.Bills = append(s.Bills, rec)
		case Project:
			s.Projects = append(s.Projects, rec)
		case Expense:
			s.Expenses = append(s.Expenses, rec)
		case TimeEntry:
			s.TimeEntries = append(s.TimeEntries, rec)
		}
	}
}
