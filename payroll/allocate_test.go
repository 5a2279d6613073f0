package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/star-security/payroll-finisher/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func shift(employee string, d time.Time, hours float64, item string) payroll.ShiftRecord {
	return payroll.ShiftRecord{
		EmployeeID:  employee,
		Date:        d,
		Hours:       payroll.HoursFromFloat(hours),
		RateCode:    item,
		PayrollItem: item,
	}
}

func newAllocator() *payroll.Allocator {
	return payroll.NewAllocator(payroll.DefaultConfig())
}

func lineHours(t *testing.T, lines []payroll.SummaryLine, employee, code string) decimal.Decimal {
	t.Helper()
	for _, l := range lines {
		if l.EmployeeID == employee && l.RateCode == code {
			return l.Hours
		}
	}
	t.Fatalf("no line for employee %q rate %q", employee, code)
	return decimal.Zero
}

func totalHours(lines []payroll.SummaryLine, employee string) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.EmployeeID == employee {
			total = total.Add(l.Hours)
		}
	}
	return total
}

// =============================================================================
// THRESHOLD TESTS
// =============================================================================

func TestAllocate_UnderThreshold_NoOvertime(t *testing.T) {
	// GIVEN: 80 worked hours at a single rate
	// WHEN: Allocating
	// THEN: One regular line of 80 hours, no overtime line

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Alice", date(2025, time.March, 3), 40, "18 Rate"),
		shift("Alice", date(2025, time.March, 10), 40, "18 Rate"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "18 Rate", res.Lines[0].RateCode)
	assert.True(t, res.Lines[0].Hours.Equal(decimal.NewFromInt(80)))
}

func TestAllocate_ExactlyAtThreshold_AllRegular(t *testing.T) {
	// GIVEN: Exactly 88.00 cumulative worked hours
	// WHEN: Allocating
	// THEN: Entirely regular (threshold comparison is strictly greater-than)

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Alice", date(2025, time.March, 3), 44, "18 Rate"),
		shift("Alice", date(2025, time.March, 10), 44, "18 Rate"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].Hours.Equal(decimal.NewFromInt(88)))
}

func TestAllocate_OverThreshold_SplitsShift(t *testing.T) {
	// GIVEN: 90 worked hours at a single rate
	// WHEN: Allocating
	// THEN: 88 regular + 2 overtime with the suffixed rate code

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Alice", date(2025, time.March, 3), 48, "18 Rate"),
		shift("Alice", date(2025, time.March, 10), 42, "18 Rate"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 2)
	assert.True(t, lineHours(t, res.Lines, "Alice", "18 Rate").Equal(decimal.NewFromInt(88)))
	assert.True(t, lineHours(t, res.Lines, "Alice", "18 Rate OT/ STAT").Equal(decimal.NewFromInt(2)))
}

func TestAllocate_ShiftStartingAtThreshold_EntirelyOvertime(t *testing.T) {
	// GIVEN: 88 hours already worked, then another shift
	// WHEN: Allocating
	// THEN: The later shift is entirely overtime

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Alice", date(2025, time.March, 3), 88, "18 Rate"),
		shift("Alice", date(2025, time.March, 12), 8, "23.50 Rate"),
	})

	require.NoError(t, res.Err())
	assert.True(t, lineHours(t, res.Lines, "Alice", "18 Rate").Equal(decimal.NewFromInt(88)))
	assert.True(t, lineHours(t, res.Lines, "Alice", "23.50 Rate OT/ STAT").Equal(decimal.NewFromInt(8)))
}

// =============================================================================
// DOMAIN SCENARIOS
// =============================================================================

func TestAllocate_MixedRates_SplitsAtExactCrossing(t *testing.T) {
	// GIVEN: 107.5 worked hours - 75.5h at "23.50 Rate" then 32h at "18 Rate"
	// WHEN: Allocating
	// THEN: 23.50 Rate stays whole (cumulative 75.5 <= 88); the 18 Rate
	//       shift splits 12.5 regular / 19.5 overtime at the crossing

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Bob", date(2025, time.March, 3), 75.5, "23.50 Rate"),
		shift("Bob", date(2025, time.March, 11), 32, "18 Rate"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 3)
	assert.True(t, lineHours(t, res.Lines, "Bob", "23.50 Rate").Equal(payroll.MustHours("75.5")))
	assert.True(t, lineHours(t, res.Lines, "Bob", "18 Rate").Equal(payroll.MustHours("12.5")))
	assert.True(t, lineHours(t, res.Lines, "Bob", "18 Rate OT/ STAT").Equal(payroll.MustHours("19.5")))
}

func TestAllocate_HolidayExcludedFromThreshold(t *testing.T) {
	// GIVEN: 90 worked hours plus 8 PHP (Holiday) hours
	// WHEN: Allocating
	// THEN: 88 regular, 2 overtime, 8 holiday - the holiday hours neither
	//       advance the running total nor generate an overtime line

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Carol", date(2025, time.March, 3), 45, "18 Rate"),
		shift("Carol", date(2025, time.March, 5), 8, "PHP (Holiday)"),
		shift("Carol", date(2025, time.March, 10), 45, "18 Rate"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 3)
	assert.True(t, lineHours(t, res.Lines, "Carol", "18 Rate").Equal(decimal.NewFromInt(88)))
	assert.True(t, lineHours(t, res.Lines, "Carol", "18 Rate OT/ STAT").Equal(decimal.NewFromInt(2)))
	assert.True(t, lineHours(t, res.Lines, "Carol", "PHP (Holiday)").Equal(decimal.NewFromInt(8)))
}

func TestAllocate_HolidayOnly_SingleLineUnchanged(t *testing.T) {
	// GIVEN: Only an 8-hour holiday entitlement row
	// WHEN: Allocating
	// THEN: Exactly one line, label unchanged, no overtime line

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Dave", date(2025, time.March, 17), 8, "PHP (Holiday)"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "PHP (Holiday)", res.Lines[0].RateCode)
	assert.True(t, res.Lines[0].Hours.Equal(decimal.NewFromInt(8)))
}

func TestAllocate_HolidaySpellingWithoutSpace(t *testing.T) {
	// GIVEN: A holiday row spelled "PHP(Holiday)" as some exports emit it
	// WHEN: Allocating
	// THEN: Treated as holiday; output uses the canonical label

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Dave", date(2025, time.March, 17), 8, "PHP(Holiday)"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "PHP (Holiday)", res.Lines[0].RateCode)
}

// =============================================================================
// ORDERING AND METADATA
// =============================================================================

func TestAllocate_OutputOrdering(t *testing.T) {
	// GIVEN: Two rate codes crossing the threshold, plus a holiday row
	// WHEN: Allocating
	// THEN: Regular lines first in rate first-seen order, then overtime
	//       lines in the same order, then the holiday line

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Eve", date(2025, time.March, 3), 60, "23.50 Rate"),
		shift("Eve", date(2025, time.March, 8), 8, "PHP (Holiday)"),
		shift("Eve", date(2025, time.March, 10), 20, "18 Rate"),
		shift("Eve", date(2025, time.March, 12), 20, "23.50 Rate"),
	})

	require.NoError(t, res.Err())
	codes := make([]string, len(res.Lines))
	for i, l := range res.Lines {
		codes[i] = l.RateCode
	}
	// Cumulative: 60 (23.50) + 20 (18) -> 80; the final 20h 23.50 shift
	// splits 8 regular / 12 overtime.
	assert.Equal(t, []string{
		"23.50 Rate",
		"18 Rate",
		"23.50 Rate OT/ STAT",
		"PHP (Holiday)",
	}, codes)
}

func TestAllocate_EmployeesKeepFirstSeenOrder(t *testing.T) {
	// GIVEN: Interleaved records for two employees
	// WHEN: Allocating
	// THEN: Output groups employees in first-seen input order

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Zoe", date(2025, time.March, 3), 10, "18 Rate"),
		shift("Adam", date(2025, time.March, 3), 10, "18 Rate"),
		shift("Zoe", date(2025, time.March, 4), 10, "18 Rate"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "Zoe", res.Lines[0].EmployeeID)
	assert.Equal(t, "Adam", res.Lines[1].EmployeeID)
}

func TestAllocate_TransactionDateIsEarliestAcrossAllRecords(t *testing.T) {
	// GIVEN: A holiday row dated before every worked row
	// WHEN: Allocating
	// THEN: Every line carries the holiday row's date

	first := date(2025, time.March, 1)
	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Frank", date(2025, time.March, 10), 40, "18 Rate"),
		shift("Frank", first, 8, "PHP (Holiday)"),
	})

	require.NoError(t, res.Err())
	for _, l := range res.Lines {
		assert.True(t, l.TransactionDate.Equal(first), "line %q", l.RateCode)
	}
}

func TestAllocate_CustomerFieldConstant(t *testing.T) {
	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Gina", date(2025, time.March, 3), 40, "18 Rate"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "STAR TOTAL", res.Lines[0].Customer)
}

func TestAllocate_StableSortOnDateTies(t *testing.T) {
	// GIVEN: Two same-day shifts where only the second crosses the threshold
	// WHEN: Allocating
	// THEN: Input order decides which rate absorbs the overtime

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Hank", date(2025, time.March, 3), 80, "18 Rate"),
		shift("Hank", date(2025, time.March, 14), 6, "23.50 Rate"),
		shift("Hank", date(2025, time.March, 14), 6, "18 Rate"),
	})

	require.NoError(t, res.Err())
	assert.True(t, lineHours(t, res.Lines, "Hank", "23.50 Rate").Equal(decimal.NewFromInt(6)))
	assert.True(t, lineHours(t, res.Lines, "Hank", "18 Rate").Equal(decimal.NewFromInt(82)))
	assert.True(t, lineHours(t, res.Lines, "Hank", "18 Rate OT/ STAT").Equal(decimal.NewFromInt(4)))
}

// =============================================================================
// CONSERVATION AND PURITY
// =============================================================================

func TestAllocate_HoursConserved(t *testing.T) {
	// GIVEN: A messy multi-rate batch with fractional hours
	// WHEN: Allocating
	// THEN: Total output hours equal total input hours per employee

	in := []payroll.ShiftRecord{
		shift("Ivy", date(2025, time.March, 3), 11.25, "18 Rate"),
		shift("Ivy", date(2025, time.March, 4), 12.75, "23.50 Rate"),
		shift("Ivy", date(2025, time.March, 5), 44.5, "18 Rate"),
		shift("Ivy", date(2025, time.March, 8), 8, "PHP (Holiday)"),
		shift("Ivy", date(2025, time.March, 10), 33.5, "23.50 Rate"),
	}
	inputTotal := decimal.Zero
	for _, s := range in {
		inputTotal = inputTotal.Add(s.Hours)
	}

	res := newAllocator().Allocate(in)

	require.NoError(t, res.Err())
	assert.True(t, totalHours(res.Lines, "Ivy").Equal(inputTotal),
		"input %v != output %v", inputTotal, totalHours(res.Lines, "Ivy"))
}

func TestAllocate_Idempotent(t *testing.T) {
	// GIVEN: The same input allocated twice
	// WHEN: Comparing results
	// THEN: Identical output (pure function, no hidden state)

	in := []payroll.ShiftRecord{
		shift("Jack", date(2025, time.March, 3), 50, "18 Rate"),
		shift("Jack", date(2025, time.March, 10), 45, "23.50 Rate"),
	}

	alloc := newAllocator()
	first := alloc.Allocate(in)
	second := alloc.Allocate(in)

	require.Equal(t, len(first.Lines), len(second.Lines))
	for i := range first.Lines {
		assert.Equal(t, first.Lines[i].RateCode, second.Lines[i].RateCode)
		assert.True(t, first.Lines[i].Hours.Equal(second.Lines[i].Hours))
	}
}

func TestAllocate_ZeroHourRows_DroppedSilently(t *testing.T) {
	// GIVEN: A zero-hour row among normal rows
	// WHEN: Allocating
	// THEN: No line for it, no error

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Kim", date(2025, time.March, 3), 0, "18 Rate"),
		shift("Kim", date(2025, time.March, 4), 8, "23.50 Rate"),
	})

	require.NoError(t, res.Err())
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "23.50 Rate", res.Lines[0].RateCode)
}

// =============================================================================
// ERROR POLICY
// =============================================================================

func TestAllocate_NegativeHours_PartialSuccess(t *testing.T) {
	// GIVEN: One employee with negative hours, another clean
	// WHEN: Allocating
	// THEN: The clean employee's lines are produced; the bad one surfaces
	//       as an EmployeeError identifying the offending record

	bad := shift("Liam", date(2025, time.March, 3), 8, "18 Rate")
	bad.Hours = payroll.HoursFromFloat(-8)
	bad.Row = 4

	res := newAllocator().Allocate([]payroll.ShiftRecord{
		bad,
		shift("Mia", date(2025, time.March, 3), 8, "18 Rate"),
	})

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "Mia", res.Lines[0].EmployeeID)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Liam", res.Errors[0].EmployeeID)
	assert.ErrorIs(t, res.Err(), payroll.ErrNegativeHours)

	var recErr *payroll.RecordError
	require.ErrorAs(t, res.Err(), &recErr)
	assert.Equal(t, 4, recErr.Row)
}

func TestAllocate_MissingEmployeeID_Error(t *testing.T) {
	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("", date(2025, time.March, 3), 8, "18 Rate"),
	})

	assert.Empty(t, res.Lines)
	assert.ErrorIs(t, res.Err(), payroll.ErrMissingEmployeeID)
}

// =============================================================================
// CONFIG INJECTION AND STATS
// =============================================================================

func TestAllocate_AlternateThreshold(t *testing.T) {
	// GIVEN: A 40-hour weekly threshold injected via Config
	// WHEN: Allocating 45 worked hours
	// THEN: 40 regular + 5 overtime

	cfg := payroll.DefaultConfig()
	cfg.OvertimeThreshold = decimal.NewFromInt(40)

	res := payroll.NewAllocator(cfg).Allocate([]payroll.ShiftRecord{
		shift("Nina", date(2025, time.March, 3), 45, "18 Rate"),
	})

	require.NoError(t, res.Err())
	assert.True(t, lineHours(t, res.Lines, "Nina", "18 Rate").Equal(decimal.NewFromInt(40)))
	assert.True(t, lineHours(t, res.Lines, "Nina", "18 Rate OT/ STAT").Equal(decimal.NewFromInt(5)))
}

func TestAllocate_Stats(t *testing.T) {
	res := newAllocator().Allocate([]payroll.ShiftRecord{
		shift("Omar", date(2025, time.March, 3), 48, "18 Rate"),
		shift("Omar", date(2025, time.March, 10), 42, "18 Rate"),
		shift("Omar", date(2025, time.March, 17), 8, "PHP (Holiday)"),
		shift("Pia", date(2025, time.March, 3), 40, "23.50 Rate"),
	})

	require.NoError(t, res.Err())
	assert.Equal(t, 2, res.Stats.Employees)
	assert.Equal(t, 4, res.Stats.InputShifts)
	assert.Equal(t, 4, res.Stats.OutputLines)
	assert.True(t, res.Stats.RegularHours.Equal(decimal.NewFromInt(128)))
	assert.True(t, res.Stats.OvertimeHours.Equal(decimal.NewFromInt(2)))
	assert.True(t, res.Stats.HolidayHours.Equal(decimal.NewFromInt(8)))
}
