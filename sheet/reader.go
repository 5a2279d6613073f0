/*
Package sheet adapts the allocator to the spreadsheet world.

PURPOSE:
  The allocator only ever sees typed ShiftRecords and SummaryLines. This
  package owns the untyped cells: it parses the raw biweekly export into
  records (reader.go) and renders consolidated lines into the import
  workbook the downstream accounting system expects (writer.go).

INPUT FORMAT (reader.go):
  First worksheet of an .xlsx file. The header row must contain the
  columns Name, Transaction Date, Payroll Item and Duration; header
  matching is case-insensitive and unrelated extra columns are ignored.
  Rows with a blank duration are skipped, matching the raw export which
  pads partially filled rows.

ERROR HANDLING:
  Workbook-level problems (unreadable file, missing columns) fail the
  read. Cell-level problems (non-numeric duration, unparseable date) are
  collected as payroll.RecordError values alongside the rows that did
  parse, so the caller can choose partial or all-or-nothing handling.

SEE ALSO:
  - writer.go: Output workbook rendering
  - payroll/types.go: The typed record this produces
*/
package sheet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/star-security/payroll-finisher/payroll"
)

// Required columns of the raw export, matched after normalization.
const (
	colName  = "name"
	colDate  = "transaction date"
	colItem  = "payroll item"
	colHours = "duration"
)

// Date layouts seen in real exports. excelize renders date cells with the
// workbook's number format, so both ISO and US spellings show up.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1-2-06",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"2006/01/02",
}

// ReadResult carries the rows that parsed plus the ones that did not.
type ReadResult struct {
	Records   []payroll.ShiftRecord
	RowErrors []*payroll.RecordError
}

// Read parses the first worksheet of a raw biweekly export.
func Read(r io.Reader) (*ReadResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	idx := make(map[string]int)
	for i, h := range rows[0] {
		idx[normalizeHeader(h)] = i
	}
	for _, required := range []string{colName, colDate, colItem, colHours} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	result := &ReadResult{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1

		name := cellValue(row, idx[colName])
		item := cellValue(row, idx[colItem])
		hoursRaw := cellValue(row, idx[colHours])
		dateRaw := cellValue(row, idx[colDate])

		if name == "" && item == "" && hoursRaw == "" {
			continue
		}
		// The raw export pads rows with an empty duration; skip them like
		// the payroll office does.
		if hoursRaw == "" {
			continue
		}

		hours, err := payroll.ParseHours(hoursRaw)
		if err != nil {
			result.RowErrors = append(result.RowErrors, &payroll.RecordError{
				Row:        rowNum,
				EmployeeID: name,
				Field:      "duration",
				Value:      hoursRaw,
				Cause:      payroll.ErrMalformedHours,
			})
			continue
		}

		date, err := parseDate(dateRaw)
		if err != nil {
			result.RowErrors = append(result.RowErrors, &payroll.RecordError{
				Row:        rowNum,
				EmployeeID: name,
				Field:      "transaction date",
				Value:      dateRaw,
				Cause:      payroll.ErrMalformedDate,
			})
			continue
		}

		result.Records = append(result.Records, payroll.ShiftRecord{
			EmployeeID:  name,
			Date:        date,
			Hours:       hours,
			RateCode:    item,
			PayrollItem: item,
			Row:         rowNum,
		})
	}

	return result, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q matches no known layout", s)
}
