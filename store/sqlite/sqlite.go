/*
Package sqlite provides a SQLite-backed record source.

PURPOSE:
  Implements records.Source over SQLite: one table per source type, fetches
  filtered by date range. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  customers:     Customer directory (line labels, listing API)
  invoices:      Sales documents with paid amounts
  bills:         Purchases with paid amounts
  projects:      Client and capital projects with budget/actual cost
  expenses:      Categorized expenses with approval status
  time_entries:  Hours worked with bill and cost rates

STORAGE CONVENTIONS:
  - Money columns are INTEGER minor units. Never REAL: the engine's
    balance identities need exact arithmetic end to end.
  - Dates are TEXT in 2006-01-02 form; range filters compare lexically.
  - Hours are TEXT decimals parsed with shopspring/decimal.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, plus WAL mode so readers do not
  block each other. Statement requests only read; writes happen when
  datasets are seeded.

USAGE:
  store, err := sqlite.New("./data/books.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  snap, err := records.FetchSnapshot(ctx, store, period)

SEE ALSO:
  - records/source.go: Interface definition and snapshot fetch
  - records/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

// Store implements records.Source using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ records.Source = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT
	);

	CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		customer_id TEXT,
		number TEXT,
		amount INTEGER NOT NULL DEFAULT 0,
		paid_amount INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		issue_date TEXT NOT NULL,
		due_date TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_invoices_issue_date ON invoices(issue_date);

	CREATE TABLE IF NOT EXISTS bills (
		id TEXT PRIMARY KEY,
		vendor TEXT,
		amount INTEGER NOT NULL DEFAULT 0,
		paid_amount INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		issue_date TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_bills_issue_date ON bills(issue_date);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		customer_id TEXT,
		kind TEXT NOT NULL,
		billing TEXT NOT NULL,
		budget INTEGER NOT NULL DEFAULT 0,
		actual_cost INTEGER NOT NULL DEFAULT 0,
		hourly_rate INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_projects_start_date ON projects(start_date);

	CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		description TEXT,
		category TEXT NOT NULL,
		amount INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		date TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);

	CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		project_id TEXT,
		person TEXT,
		hours TEXT NOT NULL DEFAULT '0',
		bill_rate INTEGER NOT NULL DEFAULT 0,
		cost_rate INTEGER NOT NULL DEFAULT 0,
		billable INTEGER NOT NULL DEFAULT 0,
		date TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_time_entries_date ON time_entries(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SOURCE IMPLEMENTATION
// =============================================================================

// Fetch reads all records of one source type dated within the period,
// ordered by date then id. Returns an empty slice when nothing matches.
func (s *Store) Fetch(ctx context.Context, st records.SourceType, period engine.Period) ([]records.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch st {
	case records.SourceInvoices:
		return s.fetchInvoices(ctx, period)
	case records.SourceBills:
		return s.fetchBills(ctx, period)
	case records.SourceProjects:
		return s.fetchProjects(ctx, period)
	case records.SourceExpenses:
		return s.fetchExpenses(ctx, period)
	case records.SourceTimeEntries:
		return s.fetchTimeEntries(ctx, period)
	default:
		return nil, engine.ErrUnknownSourceType
	}
}

func sourceErr(err error) error {
	return fmt.Errorf("%w: %v", engine.ErrSourceUnavailable, err)
}

func (s *Store) fetchInvoices(ctx context.Context, p engine.Period) ([]records.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(customer_id,''), COALESCE(number,''), amount, paid_amount, status, issue_date, COALESCE(due_date,'')
		FROM invoices WHERE issue_date >= ? AND issue_date <= ?
		ORDER BY issue_date, id`,
		p.Start.String(), p.End.String())
	if err != nil {
		return nil, sourceErr(err)
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		var (
			r                  records.Invoice
			amount, paid       int64
			status             string
			issueDate, dueDate string
		)
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.Number, &amount, &paid, &status, &issueDate, &dueDate); err != nil {
			return nil, sourceErr(err)
		}
		r.Amount = engine.Money(amount)
		r.PaidAmount = engine.Money(paid)
		r.Status = records.InvoiceStatus(status)
		if r.IssueDate, err = engine.ParseDate(issueDate); err != nil {
			return nil, sourceErr(err)
		}
		if dueDate != "" {
			if r.DueDate, err = engine.ParseDate(dueDate); err != nil {
				return nil, sourceErr(err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) fetchBills(ctx context.Context, p engine.Period) ([]records.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(vendor,''), amount, paid_amount, status, issue_date
		FROM bills WHERE issue_date >= ? AND issue_date <= ?
		ORDER BY issue_date, id`,
		p.Start.String(), p.End.String())
	if err != nil {
		return nil, sourceErr(err)
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		var (
			r            records.Bill
			amount, paid int64
			status       string
			issueDate    string
		)
		if err := rows.Scan(&r.ID, &r.Vendor, &amount, &paid, &status, &issueDate); err != nil {
			return nil, sourceErr(err)
		}
		r.Amount = engine.Money(amount)
		r.PaidAmount = engine.Money(paid)
		r.Status = records.BillStatus(status)
		if r.IssueDate, err = engine.ParseDate(issueDate); err != nil {
			return nil, sourceErr(err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) fetchProjects(ctx context.Context, p engine.Period) ([]records.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(customer_id,''), kind, billing, budget, actual_cost, hourly_rate, status, start_date, COALESCE(end_date,'')
		FROM projects WHERE start_date >= ? AND start_date <= ?
		ORDER BY start_date, id`,
		p.Start.String(), p.End.String())
	if err != nil {
		return nil, sourceErr(err)
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		var (
			r                     records.Project
			budget, actual, rate  int64
			kind, billing, status string
			startDate, endDate    string
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.CustomerID, &kind, &billing, &budget, &actual, &rate, &status, &startDate, &endDate); err != nil {
			return nil, sourceErr(err)
		}
		r.Kind = records.ProjectKind(kind)
		r.Billing = records.ProjectBilling(billing)
		r.Budget = engine.Money(budget)
		r.ActualCost = engine.Money(actual)
		r.HourlyRate = engine.Money(rate)
		r.Status = records.ProjectStatus(status)
		if r.StartDate, err = engine.ParseDate(startDate); err != nil {
			return nil, sourceErr(err)
		}
		if endDate != "" {
			if r.EndDate, err = engine.ParseDate(endDate); err != nil {
				return nil, sourceErr(err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) fetchExpenses(ctx context.Context, p engine.Period) ([]records.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(description,''), category, amount, status, date
		FROM expenses WHERE date >= ? AND date <= ?
		ORDER BY date, id`,
		p.Start.String(), p.End.String())
	if err != nil {
		return nil, sourceErr(err)
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		var (
			r                records.Expense
			amount           int64
			category, status string
			date             string
		)
		if err := rows.Scan(&r.ID, &r.Description, &category, &amount, &status, &date); err != nil {
			return nil, sourceErr(err)
		}
		r.Category = records.ExpenseCategory(category)
		r.Amount = engine.Money(amount)
		r.Status = records.ExpenseStatus(status)
		if r.Date, err = engine.ParseDate(date); err != nil {
			return nil, sourceErr(err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) fetchTimeEntries(ctx context.Context, p engine.Period) ([]records.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(project_id,''), COALESCE(person,''), hours, bill_rate, cost_rate, billable, date
		FROM time_entries WHERE date >= ? AND date <= ?
		ORDER BY date, id`,
		p.Start.String(), p.End.String())
	if err != nil {
		return nil, sourceErr(err)
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		var (
			r                  records.TimeEntry
			hours              string
			billRate, costRate int64
			billable           int
			date               string
		)
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.Person, &hours, &billRate, &costRate, &billable, &date); err != nil {
			return nil, sourceErr(err)
		}
		h, herr := decimal.NewFromString(hours)
		if herr != nil {
			h = decimal.Zero // malformed hours default to zero, not an error
		}
		r.Hours = h
		r.BillRate = engine.Money(billRate)
		r.CostRate = engine.Money(costRate)
		r.Billable = billable != 0
		if r.Date, err = engine.ParseDate(date); err != nil {
			return nil, sourceErr(err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Customers returns the customer directory ordered by id.
func (s *Store) Customers(ctx context.Context) ([]records.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(email,'') FROM customers ORDER BY id`)
	if err != nil {
		return nil, sourceErr(err)
	}
	defer rows.Close()

	out := make([]records.Customer, 0)
	for rows.Next() {
		var c records.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, sourceErr(err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// =============================================================================
// WRITES - Dataset seeding
// =============================================================================

func (s *Store) InsertCustomer(ctx context.Context, c records.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO customers (id, name, email) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Email)
	return err
}

func (s *Store) InsertInvoice(ctx context.Context, r records.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	due := ""
	if !r.DueDate.IsZero() {
		due = r.DueDate.String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO invoices (id, customer_id, number, amount, paid_amount, status, issue_date, due_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CustomerID, r.Number, int64(r.Amount), int64(r.PaidAmount), string(r.Status), r.IssueDate.String(), due)
	return err
}

func (s *Store) InsertBill(ctx context.Context, r records.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO bills (id, vendor, amount, paid_amount, status, issue_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Vendor, int64(r.Amount), int64(r.PaidAmount), string(r.Status), r.IssueDate.String())
	return err
}

func (s *Store) InsertProject(ctx context.Context, r records.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	end := ""
	if !r.EndDate.IsZero() {
		end = r.EndDate.String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO projects (id, name, customer_id, kind, billing, budget, actual_cost, hourly_rate, status, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.CustomerID, string(r.Kind), string(r.Billing),
		int64(r.Budget), int64(r.ActualCost), int64(r.HourlyRate), string(r.Status),
		r.StartDate.String(), end)
	return err
}

func (s *Store) InsertExpense(ctx context.Context, r records.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO expenses (id, description, category, amount, status, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Description, string(r.Category), int64(r.Amount), string(r.Status), r.Date.String())
	return err
}

func (s *Store) InsertTimeEntry(ctx context.Context, r records.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	billable := 0
	if r.Billable {
		billable = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO time_entries (id, project_id, person, hours, bill_rate, cost_rate, billable, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProjectID, r.Person, r.Hours.String(), int64(r.BillRate), int64(r.CostRate), billable, r.Date.String())
	return err
}

// Reset clears every table. Used when loading a demo dataset.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM customers;
		DELETE FROM invoices;
		DELETE FROM bills;
		DELETE FROM projects;
		DELETE FROM expenses;
		DELETE FROM time_entries;
	`)
	return err
}
