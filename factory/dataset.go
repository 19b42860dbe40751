/*
Package factory provides JSON to Go record-set conversion.

PURPOSE:
  Converts JSON dataset definitions into typed source records. This enables
  demo and fixture data without code changes - a dataset is a JSON document
  naming a company, a currency, and its record lists, and the factory
  produces the normalized records a store can be seeded with.

JSON SCHEMA:
  {
    "name": "consulting-shop",
    "company": "Mekong Consulting",
    "currency": "VND",
    "customers":    [{"id": "c1", "name": "Acme"}],
    "invoices":     [{"customer_id": "c1", "number": "INV-1",
                      "amount": 1000000, "paid_amount": 1000000,
                      "status": "paid", "issue_date": "2025-01-15"}],
    "bills":        [...],
    "projects":     [...],
    "expenses":     [...],
    "time_entries": [...]
  }

KEY FEATURES:
  - Validates dates and required fields
  - Assigns uuids to records missing ids
  - Applies the same normalization fetched records get

USAGE:
  ds, err := factory.ParseDataset(jsonBytes)
  // seed a store or a records.MemorySource from ds

SEE ALSO:
  - api/scenarios.go: Built-in datasets served over the API
  - records/normalize.go: Normalization applied here too
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

type DatasetJSON struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Currency string `json:"currency"`

	Customers   []CustomerJSON  `json:"customers,omitempty"`
	Invoices    []InvoiceJSON   `json:"invoices,omitempty"`
	Bills       []BillJSON      `json:"bills,omitempty"`
	Projects    []ProjectJSON   `json:"projects,omitempty"`
	Expenses    []ExpenseJSON   `json:"expenses,omitempty"`
	TimeEntries []TimeEntryJSON `json:"time_entries,omitempty"`
}

type CustomerJSON struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type InvoiceJSON struct {
	ID         string `json:"id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	Number     string `json:"number,omitempty"`
	Amount     int64  `json:"amount"`
	PaidAmount int64  `json:"paid_amount,omitempty"`
	Status     string `json:"status"`
	IssueDate  string `json:"issue_date"`
	DueDate    string `json:"due_date,omitempty"`
}

type BillJSON struct {
	ID         string `json:"id,omitempty"`
	Vendor     string `json:"vendor,omitempty"`
	Amount     int64  `json:"amount"`
	PaidAmount int64  `json:"paid_amount,omitempty"`
	Status     string `json:"status"`
	IssueDate  string `json:"issue_date"`
}

type ProjectJSON struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	CustomerID string `json:"customer_id,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Billing    string `json:"billing,omitempty"`
	Budget     int64  `json:"budget,omitempty"`
	ActualCost int64  `json:"actual_cost,omitempty"`
	HourlyRate int64  `json:"hourly_rate,omitempty"`
	Status     string `json:"status"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date,omitempty"`
}

type ExpenseJSON struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

type TimeEntryJSON struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Person    string `json:"person,omitempty"`
	Hours     string `json:"hours"`
	BillRate  int64  `json:"bill_rate,omitempty"`
	CostRate  int64  `json:"cost_rate,omitempty"`
	Billable  bool   `json:"billable,omitempty"`
	Date      string `json:"date"`
}

// =============================================================================
// DATASET - Parsed, normalized records ready for seeding
// =============================================================================

type Dataset struct {
	Name     string
	Company  string
	Currency string

	Customers   []records.Customer
	Invoices    []records.Invoice
	Bills       []records.Bill
	Projects    []records.Project
	Expenses    []records.Expense
	TimeEntries []records.TimeEntry
}

// ParseDataset converts a JSON dataset definition into typed, normalized
// records. Records without ids get generated uuids.
func ParseDataset(data []byte) (*Dataset, error) {
	var def DatasetJSON
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("invalid dataset JSON: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("dataset missing name")
	}
	if def.Currency == "" {
		return nil, fmt.Errorf("dataset %s: missing currency", def.Name)
	}

	ds := &Dataset{Name: def.Name, Company: def.Company, Currency: def.Currency}

	for _, c := range def.Customers {
		ds.Customers = append(ds.Customers, records.Customer{
			ID:    orUUID(c.ID),
			Name:  c.Name,
			Email: c.Email,
		})
	}

	for i, j := range def.Invoices {
		issue, err := engine.ParseDate(j.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("invoice %d: %w", i, err)
		}
		inv := records.Invoice{
			ID:         orUUID(j.ID),
			CustomerID: j.CustomerID,
			Number:     j.Number,
			Amount:     engine.Money(j.Amount),
			PaidAmount: engine.Money(j.PaidAmount),
			Status:     records.InvoiceStatus(j.Status),
			IssueDate:  issue,
		}
		if j.DueDate != "" {
			if inv.DueDate, err = engine.ParseDate(j.DueDate); err != nil {
				return nil, fmt.Errorf("invoice %d: %w", i, err)
			}
		}
		ds.Invoices = append(ds.Invoices, records.Normalize(inv).(records.Invoice))
	}

	for i, j := range def.Bills {
		issue, err := engine.ParseDate(j.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("bill %d: %w", i, err)
		}
		b := records.Bill{
			ID:         orUUID(j.ID),
			Vendor:     j.Vendor,
			Amount:     engine.Money(j.Amount),
			PaidAmount: engine.Money(j.PaidAmount),
			Status:     records.BillStatus(j.Status),
			IssueDate:  issue,
		}
		ds.Bills = append(ds.Bills, records.Normalize(b).(records.Bill))
	}

	for i, j := range def.Projects {
		start, err := engine.ParseDate(j.StartDate)
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", i, err)
		}
		p := records.Project{
			ID:         orUUID(j.ID),
			Name:       j.Name,
			CustomerID: j.CustomerID,
			Kind:       records.ProjectKind(j.Kind),
			Billing:    records.ProjectBilling(j.Billing),
			Budget:     engine.Money(j.Budget),
			ActualCost: engine.Money(j.ActualCost),
			HourlyRate: engine.Money(j.HourlyRate),
			Status:     records.ProjectStatus(j.Status),
			StartDate:  start,
		}
		if j.EndDate != "" {
			if p.EndDate, err = engine.ParseDate(j.EndDate); err != nil {
				return nil, fmt.Errorf("project %d: %w", i, err)
			}
		}
		ds.Projects = append(ds.Projects, records.Normalize(p).(records.Project))
	}

	for i, j := range def.Expenses {
		date, err := engine.ParseDate(j.Date)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}
		e := records.Expense{
			ID:          orUUID(j.ID),
			Description: j.Description,
			Category:    records.ExpenseCategory(j.Category),
			Amount:      engine.Money(j.Amount),
			Status:      records.ExpenseStatus(j.Status),
			Date:        date,
		}
		ds.Expenses = append(ds.Expenses, records.Normalize(e).(records.Expense))
	}

	for i, j := range def.TimeEntries {
		date, err := engine.ParseDate(j.Date)
		if err != nil {
			return nil, fmt.Errorf("time entry %d: %w", i, err)
		}
		hours, err := decimal.NewFromString(j.Hours)
		if err != nil {
			return nil, fmt.Errorf("time entry %d: invalid hours %q", i, j.Hours)
		}
		t := records.TimeEntry{
			ID:        orUUID(j.ID),
			ProjectID: j.ProjectID,
			Person:    j.Person,
			Hours:     hours,
			BillRate:  engine.Money(j.BillRate),
			CostRate:  engine.Money(j.CostRate),
			Billable:  j.Billable,
			Date:      date,
		}
		ds.TimeEntries = append(ds.TimeEntries, records.Normalize(t).(records.TimeEntry))
	}

	return ds, nil
}

// Populate loads the dataset into an in-memory source.
func (ds *Dataset) Populate(src *records.MemorySource) {
	for _, c := range ds.Customers {
		src.AddCustomer(c)
	}
	for _, r := range ds.Invoices {
		src.AddInvoice(r)
	}
	for _, r := range ds.Bills {
		src.AddBill(r)
	}
	for _, r := range ds.Projects {
		src.AddProject(r)
	}
	for _, r := range ds.Expenses {
		src.AddExpense(r)
	}
	for _, r := range ds.TimeEntries {
		src.AddTimeEntry(r)
	}
}

func orUUID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
