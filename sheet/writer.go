package sheet

import (
	"github.com/xuri/excelize/v2"

	"github.com/star-security/payroll-finisher/payroll"
)

// Output workbook layout, fixed by the downstream QuickBooks import.
const (
	outputSheet = "Payroll"
	serviceItem = "Labor"
	billable    = "N"
	dateFormat  = "2006-01-02"
)

var outputColumns = []string{
	"Name",
	"Transaction Date",
	"Customer",
	"Service Item",
	"Payroll Item",
	"Duration",
	"Class",
	"Billable",
	"Notes",
}

// Write renders consolidated summary lines into the import workbook and
// returns the serialized .xlsx bytes.
func Write(lines []payroll.SummaryLine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", outputSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, name := range outputColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(outputSheet, cell, name)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(outputColumns), 1)
	f.SetCellStyle(outputSheet, "A1", lastHeader, headerStyle)

	for i, line := range lines {
		rowNum := i + 2
		set := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			f.SetCellValue(outputSheet, cell, v)
		}

		hours, _ := line.Hours.Float64()

		set(1, line.EmployeeID)
		set(2, line.TransactionDate.Format(dateFormat))
		set(3, line.Customer)
		set(4, serviceItem)
		set(5, line.RateCode)
		set(6, hours)
		set(7, "")
		set(8, billable)
		set(9, "")
	}

	f.SetPanes(outputSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(outputSheet, "A", "I", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
