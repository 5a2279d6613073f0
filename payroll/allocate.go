/*
allocate.go - The overtime-split-and-consolidate algorithm

PURPOSE:
  Walks each employee's shifts chronologically, tracking cumulative worked
  hours against the biweekly threshold. The shift that straddles the
  threshold is split exactly once; everything past it is tagged with the
  overtime suffix. Holiday entitlement hours are carved out first and never
  touch the running total. The result is folded into one line per
  (employee, effective rate code).

ALGORITHM (per employee, independently):
  1. Partition records into holiday and worked.
  2. Stable-sort worked by date (ties keep input order).
  3. For each worked record: regular portion = min(hours, remaining
     capacity under the threshold), remainder is overtime. The running
     total advances by the FULL shift, so a shift splits at most once, at
     the exact point the total first exceeds the threshold.
  4. Emit regular lines, then overtime lines, then the holiday line, rate
     codes in first-seen order. Every line gets the employee's earliest
     shift date and the constant customer field.

GUARANTEES:
  - Hours are conserved: sum(output) == sum(input) per employee.
  - Exactly-at-threshold totals are entirely regular (comparison is
    strictly greater-than).
  - Zero-hour rows contribute nothing and raise nothing.
  - One employee's malformed record never blocks another employee.

SEE ALSO:
  - types.go: ShiftRecord, SummaryLine, Config
  - errors.go: RecordError, EmployeeError
*/
package payroll

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ALLOCATOR
// =============================================================================

// Allocator runs the overtime allocation for one batch. It holds only the
// rule set; nothing persists between calls.
type Allocator struct {
	cfg Config
}

func NewAllocator(cfg Config) *Allocator {
	return &Allocator{cfg: cfg}
}

func (a *Allocator) Config() Config { return a.cfg }

// Stats summarizes one allocation pass.
type Stats struct {
	Employees     int
	InputShifts   int
	OutputLines   int
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	HolidayHours  decimal.Decimal
}

// Result is the outcome of one allocation pass. Lines and Errors are both
// populated in partial-success mode: callers that need all-or-nothing
// semantics check Err() and discard Lines.
type Result struct {
	Lines  []SummaryLine
	Errors []EmployeeError
	Stats  Stats
}

// Err joins all per-employee errors, or returns nil when the whole batch
// allocated cleanly.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// =============================================================================
// ALLOCATION
// =============================================================================

// Allocate consolidates a batch of shift records into payroll-import lines.
// Records are grouped by employee in first-seen order; each employee is
// processed independently and a malformed record surfaces as an
// EmployeeError without aborting the rest.
func (a *Allocator) Allocate(shifts []ShiftRecord) *Result {
	res := &Result{
		Stats: Stats{
			InputShifts:   len(shifts),
			RegularHours:  decimal.Zero,
			OvertimeHours: decimal.Zero,
			HolidayHours:  decimal.Zero,
		},
	}

	var order []string
	groups := make(map[string][]ShiftRecord)
	for _, s := range shifts {
		if _, seen := groups[s.EmployeeID]; !seen {
			order = append(order, s.EmployeeID)
		}
		groups[s.EmployeeID] = append(groups[s.EmployeeID], s)
	}

	for _, id := range order {
		lines, err := a.allocateEmployee(id, groups[id], &res.Stats)
		if err != nil {
			res.Errors = append(res.Errors, EmployeeError{EmployeeID: id, Err: err})
			continue
		}
		res.Lines = append(res.Lines, lines...)
	}

	res.Stats.Employees = len(order)
	res.Stats.OutputLines = len(res.Lines)
	return res
}

// rateBucket accumulates one rate code's regular and overtime hours,
// keeping first-seen insertion order.
type rateBucket struct {
	code     string
	regular  decimal.Decimal
	overtime decimal.Decimal
}

func (a *Allocator) allocateEmployee(id string, records []ShiftRecord, stats *Stats) ([]SummaryLine, error) {
	for i := range records {
		r := &records[i]
		if id == "" {
			return nil, &RecordError{Row: r.Row, Field: "employee_id", Cause: ErrMissingEmployeeID}
		}
		if r.Hours.IsNegative() {
			return nil, &RecordError{
				Row:        r.Row,
				EmployeeID: id,
				Field:      "hours",
				Value:      r.Hours.String(),
				Cause:      ErrNegativeHours,
			}
		}
	}

	var worked, holiday []ShiftRecord
	for _, r := range records {
		if a.cfg.IsHolidayItem(r.PayrollItem) {
			holiday = append(holiday, r)
		} else {
			worked = append(worked, r)
		}
	}

	// Chronological order; ties keep the original file order so output
	// stays reproducible.
	sort.SliceStable(worked, func(i, j int) bool {
		return worked[i].Date.Before(worked[j].Date)
	})

	var buckets []*rateBucket
	index := make(map[string]*rateBucket)
	bucketFor := func(code string) *rateBucket {
		if b, ok := index[code]; ok {
			return b
		}
		b := &rateBucket{code: code, regular: decimal.Zero, overtime: decimal.Zero}
		index[code] = b
		buckets = append(buckets, b)
		return b
	}

	soFar := decimal.Zero
	for _, r := range worked {
		if r.Hours.IsZero() {
			continue
		}

		capacity := a.cfg.OvertimeThreshold.Sub(soFar)
		if capacity.IsNegative() {
			capacity = decimal.Zero
		}
		regular := decimal.Min(r.Hours, capacity)
		overtime := r.Hours.Sub(regular)

		b := bucketFor(r.RateCode)
		b.regular = b.regular.Add(regular)
		if overtime.IsPositive() {
			b.overtime = b.overtime.Add(overtime)
		}

		// Capacity tracks cumulative input hours, not regular hours, so
		// the split happens exactly once.
		soFar = soFar.Add(r.Hours)
	}

	holidayTotal := decimal.Zero
	for _, r := range holiday {
		holidayTotal = holidayTotal.Add(r.Hours)
	}

	// Transaction date: earliest date across ALL of the employee's
	// records, worked and holiday alike.
	first := records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(first) {
			first = r.Date
		}
	}

	var lines []SummaryLine
	emit := func(code string, hours decimal.Decimal) {
		lines = append(lines, SummaryLine{
			EmployeeID:      id,
			RateCode:        code,
			Hours:           hours.Round(2),
			TransactionDate: first,
			Customer:        a.cfg.CustomerValue,
		})
	}

	for _, b := range buckets {
		if b.regular.IsPositive() {
			emit(b.code, b.regular)
			stats.RegularHours = stats.RegularHours.Add(b.regular)
		}
	}
	for _, b := range buckets {
		if b.overtime.IsPositive() {
			emit(b.code+a.cfg.OvertimeSuffix, b.overtime)
			stats.OvertimeHours = stats.OvertimeHours.Add(b.overtime)
		}
	}
	if holidayTotal.IsPositive() {
		emit(a.cfg.HolidayItemLabel, holidayTotal)
		stats.HolidayHours = stats.HolidayHours.Add(holidayTotal)
	}

	return lines, nil
}
