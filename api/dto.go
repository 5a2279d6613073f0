/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model from
  the wire contract. DTOs are pure data carriers; validation happens in
  handlers.

SEE ALSO:
  - handlers.go: Uses these types
  - batches.go: In-memory batch these are derived from
*/
package api

import (
	"time"

	"github.com/star-security/payroll-finisher/payroll"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// StatsDTO mirrors payroll.Stats for JSON clients.
type StatsDTO struct {
	EmployeesProcessed int     `json:"employees_processed"`
	InputShifts        int     `json:"input_shifts"`
	OutputLines        int     `json:"output_lines"`
	TotalRegularHours  float64 `json:"total_regular_hours"`
	TotalOTHours       float64 `json:"total_ot_hours"`
	TotalHolidayHours  float64 `json:"total_php_hours"`
}

// SummaryLineDTO is one consolidated payroll line in API responses.
type SummaryLineDTO struct {
	Name            string  `json:"name"`
	TransactionDate string  `json:"transaction_date"`
	Customer        string  `json:"customer"`
	PayrollItem     string  `json:"payroll_item"`
	Duration        float64 `json:"duration"`
}

// RowErrorDTO reports one rejected row or employee.
type RowErrorDTO struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Row        int    `json:"row,omitempty"`
	Message    string `json:"message"`
}

// BatchDTO is the full view of a processed batch.
type BatchDTO struct {
	BatchID   string           `json:"batch_id"`
	CreatedAt string           `json:"created_at"`
	Stats     StatsDTO         `json:"stats"`
	Lines     []SummaryLineDTO `json:"lines"`
	Errors    []RowErrorDTO    `json:"errors,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toStatsDTO(s payroll.Stats) StatsDTO {
	regular, _ := s.RegularHours.Float64()
	overtime, _ := s.OvertimeHours.Float64()
	holiday, _ := s.HolidayHours.Float64()
	return StatsDTO{
		EmployeesProcessed: s.Employees,
		InputShifts:        s.InputShifts,
		OutputLines:        s.OutputLines,
		TotalRegularHours:  regular,
		TotalOTHours:       overtime,
		TotalHolidayHours:  holiday,
	}
}

func toSummaryLineDTOs(lines []payroll.SummaryLine) []SummaryLineDTO {
	dtos := make([]SummaryLineDTO, len(lines))
	for i, l := range lines {
		duration, _ := l.Hours.Float64()
		dtos[i] = SummaryLineDTO{
			Name:            l.EmployeeID,
			TransactionDate: l.TransactionDate.Format("2006-01-02"),
			Customer:        l.Customer,
			PayrollItem:     l.RateCode,
			Duration:        duration,
		}
	}
	return dtos
}

func toBatchDTO(b *Batch) BatchDTO {
	return BatchDTO{
		BatchID:   b.ID,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		Stats:     toStatsDTO(b.Stats),
		Lines:     toSummaryLineDTOs(b.Lines),
		Errors:    b.Errors,
	}
}
