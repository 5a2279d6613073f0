/*
Package payroll implements the biweekly overtime allocator.

PURPOSE:
  Given the raw shift rows of a biweekly payroll export, determine which
  hours fall past the overtime threshold, split the shift that straddles
  it, tag the overtime portion with a distinct rate code, and consolidate
  everything into one summary line per (employee, effective rate code).

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftRecord: One raw shift row (input unit)
  - SummaryLine: One consolidated payroll-import line (output unit)
  - Config: The rule set (threshold, holiday label, suffix, customer)

DESIGN PRINCIPLES:
  1. Purity: the allocator takes in-memory records and returns in-memory
     lines. No I/O, no shared state, nothing survives a run.
  2. Precision: uses decimal.Decimal for all hour arithmetic to avoid
     floating-point drift at the split point.
  3. Conservation: splitting relabels hours, it never changes quantity.

SEE ALSO:
  - allocate.go: The allocation algorithm
  - errors.go: Record-level and employee-level error types
  - sheet/: Spreadsheet adapters that produce/consume these types
*/
package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT RECORD - One raw row of the biweekly export
// =============================================================================

// ShiftRecord is an immutable input row. RateCode and PayrollItem carry the
// same column of the raw export: the export uses "Payroll Item" both as the
// pay-rate label and as the holiday marker.
type ShiftRecord struct {
	EmployeeID  string
	Date        time.Time
	Hours       decimal.Decimal
	RateCode    string
	PayrollItem string

	// Row is the 1-based source spreadsheet row, kept for error
	// attribution. Zero when the record was built in memory.
	Row int
}

// =============================================================================
// SUMMARY LINE - One consolidated output line
// =============================================================================

// SummaryLine is one line of the downstream import file. RateCode is the
// effective rate code: the original code, the original code plus the
// overtime suffix, or the holiday item label.
type SummaryLine struct {
	EmployeeID      string
	RateCode        string
	Hours           decimal.Decimal
	TransactionDate time.Time
	Customer        string
}

// =============================================================================
// CONFIG - The rule set, injectable for tests
// =============================================================================

// Config carries the allocation constants. DefaultConfig matches the Star
// Security biweekly rules; tests inject alternate thresholds.
type Config struct {
	// OvertimeThreshold is the cumulative worked-hours threshold for the
	// biweekly period. Strictly more than this is overtime.
	OvertimeThreshold decimal.Decimal

	// HolidayItemLabel marks ESA holiday entitlement rows. Holiday hours
	// never count toward the threshold and are never split.
	HolidayItemLabel string

	// OvertimeSuffix is appended to a rate code for its overtime portion.
	OvertimeSuffix string

	// CustomerValue fills the constant customer field on every line.
	CustomerValue string
}

func DefaultConfig() Config {
	return Config{
		OvertimeThreshold: decimal.NewFromInt(88),
		HolidayItemLabel:  "PHP (Holiday)",
		OvertimeSuffix:    " OT/ STAT",
		CustomerValue:     "STAR TOTAL",
	}
}

// IsHolidayItem reports whether a payroll item marks holiday entitlement.
// Some exports drop the space before the parenthesis ("PHP(Holiday)"), so
// the comparison ignores spaces.
func (c Config) IsHolidayItem(item string) bool {
	item = strings.TrimSpace(item)
	if item == c.HolidayItemLabel {
		return true
	}
	return strings.ReplaceAll(item, " ", "") == strings.ReplaceAll(c.HolidayItemLabel, " ", "")
}

// =============================================================================
// HOURS HELPERS
// =============================================================================

func HoursFromFloat(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// MustHours parses an hour quantity, returning zero on malformed input.
// Intended for constants and tests; adapters must use ParseHours.
func MustHours(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseHours parses an hour quantity from a spreadsheet cell.
func ParseHours(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
