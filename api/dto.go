/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's internal model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific formatting (dates as 2006-01-02 strings)
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The internal statement model
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/statement-engine/engine"
	"github.com/bizbooks/statement-engine/records"
)

// =============================================================================
// STATEMENT DTOS
// =============================================================================

// PeriodDTO renders either a date range or a single as-of date.
type PeriodDTO struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	AsOfDate  string `json:"as_of_date,omitempty"`
}

type LineDTO struct {
	Bucket     string `json:"bucket"`
	Amount     int64  `json:"amount"`
	SourceType string `json:"source_type"`
	RecordID   string `json:"record_id"`
	Label      string `json:"label"`
}

type SectionDTO struct {
	Bucket   string           `json:"bucket"`
	Name     string           `json:"name"`
	Side     string           `json:"side,omitempty"`
	Items    []LineDTO        `json:"items"`
	Subtotal int64            `json:"subtotal"`
	Percent  *decimal.Decimal `json:"percent,omitempty"`
}

type TotalDTO struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type ValidationDTO struct {
	Passed      bool   `json:"passed"`
	Detail      string `json:"detail,omitempty"`
	Discrepancy *int64 `json:"discrepancy,omitempty"`
}

type StatementDTO struct {
	Kind        string        `json:"kind"`
	Period      PeriodDTO     `json:"period"`
	Currency    string        `json:"currency"`
	GeneratedAt string        `json:"generated_at"`
	Sections    []SectionDTO  `json:"sections"`
	Totals      []TotalDTO    `json:"totals"`
	Validation  ValidationDTO `json:"validation"`
}

// toStatementDTO converts an engine statement into its API shape.
func toStatementDTO(s *engine.Statement) StatementDTO {
	dto := StatementDTO{
		Kind:        string(s.Kind),
		Currency:    s.Currency,
		GeneratedAt: s.GeneratedAt.Format(time.RFC3339),
	}

	if s.Kind == engine.KindBalanceSheet {
		dto.Period = PeriodDTO{AsOfDate: s.AsOf.String()}
	} else {
		dto.Period = PeriodDTO{StartDate: s.Period.Start.String(), EndDate: s.Period.End.String()}
	}

	for _, sec := range s.Sections {
		sd := SectionDTO{
			Bucket:   string(sec.Bucket),
			Name:     sec.Name,
			Side:     string(sec.Bucket.Side()),
			Items:    make([]LineDTO, 0, len(sec.Items)),
			Subtotal: int64(sec.Subtotal),
		}
		if sec.Bucket.Side() != engine.SideNone {
			p := sec.Percent
			sd.Percent = &p
		}
		for _, it := range sec.Items {
			sd.Items = append(sd.Items, LineDTO{
				Bucket:     string(it.Bucket),
				Amount:     int64(it.Amount),
				SourceType: it.Ref.SourceType,
				RecordID:   it.Ref.RecordID,
				Label:      it.Label,
			})
		}
		dto.Sections = append(dto.Sections, sd)
	}

	for _, t := range s.Totals {
		dto.Totals = append(dto.Totals, TotalDTO{Key: t.Key, Label: t.Label, Amount: int64(t.Amount)})
	}

	dto.Validation = ValidationDTO{Passed: s.Validation.Passed, Detail: s.Validation.Detail}
	if !s.Validation.Passed {
		d := int64(s.Validation.Discrepancy)
		dto.Validation.Discrepancy = &d
	}
	return dto
}

// =============================================================================
// RECORD DTOS
// =============================================================================

type CustomerDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type InvoiceDTO struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id,omitempty"`
	Number     string `json:"number,omitempty"`
	Amount     int64  `json:"amount"`
	PaidAmount int64  `json:"paid_amount"`
	Status     string `json:"status"`
	IssueDate  string `json:"issue_date"`
	DueDate    string `json:"due_date,omitempty"`
}

type BillDTO struct {
	ID         string `json:"id"`
	Vendor     string `json:"vendor,omitempty"`
	Amount     int64  `json:"amount"`
	PaidAmount int64  `json:"paid_amount"`
	Status     string `json:"status"`
	IssueDate  string `json:"issue_date"`
}

type ProjectDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CustomerID string `json:"customer_id,omitempty"`
	Kind       string `json:"kind"`
	Billing    string `json:"billing"`
	Budget     int64  `json:"budget"`
	ActualCost int64  `json:"actual_cost"`
	HourlyRate int64  `json:"hourly_rate,omitempty"`
	Status     string `json:"status"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date,omitempty"`
}

type ExpenseDTO struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

type TimeEntryDTO struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id,omitempty"`
	Person    string `json:"person,omitempty"`
	Hours     string `json:"hours"`
	BillRate  int64  `json:"bill_rate"`
	CostRate  int64  `json:"cost_rate"`
	Billable  bool   `json:"billable"`
	Date      string `json:"date"`
}

func toRecordDTO(r records.Record) any {
	switch rec := r.(type) {
	case records.Invoice:
		dto := InvoiceDTO{
			ID:         rec.ID,
			CustomerID: rec.CustomerID,
			Number:     rec.Number,
			Amount:     int64(rec.Amount),
			PaidAmount: int64(rec.PaidAmount),
			Status:     string(rec.Status),
			IssueDate:  rec.IssueDate.String(),
		}
		if !rec.DueDate.IsZero() {
			dto.DueDate = rec.DueDate.String()
		}
		return dto
	case records.Bill:
		return BillDTO{
			ID:         rec.ID,
			Vendor:     rec.Vendor,
			Amount:     int64(rec.Amount),
			PaidAmount: int64(rec.PaidAmount),
			Status:     string(rec.Status),
			IssueDate:  rec.IssueDate.String(),
		}
	case records.Project:
		dto := ProjectDTO{
			ID:         rec.ID,
			Name:       rec.Name,
			CustomerID: rec.CustomerID,
			Kind:       string(rec.Kind),
			Billing:    string(rec.Billing),
			Budget:     int64(rec.Budget),
			ActualCost: int64(rec.ActualCost),
			HourlyRate: int64(rec.HourlyRate),
			Status:     string(rec.Status),
			StartDate:  rec.StartDate.String(),
		}
		if !rec.EndDate.IsZero() {
			dto.EndDate = rec.EndDate.String()
		}
		return dto
	case records.Expense:
		return ExpenseDTO{
			ID:          rec.ID,
			Description: rec.Description,
			Category:    string(rec.Category),
			Amount:      int64(rec.Amount),
			Status:      string(rec.Status),
			Date:        rec.Date.String(),
		}
	case records.TimeEntry:
		return TimeEntryDTO{
			ID:        rec.ID,
			ProjectID: rec.ProjectID,
			Person:    rec.Person,
			Hours:     rec.Hours.String(),
			BillRate:  int64(rec.BillRate),
			CostRate:  int64(rec.CostRate),
			Billable:  rec.Billable,
			Date:      rec.Date.String(),
		}
	default:
		return nil
	}
}

// =============================================================================
// SCENARIOS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency,omitempty"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorDTO is the uniform error body.
type ErrorDTO struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
