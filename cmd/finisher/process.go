package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/star-security/payroll-finisher/payroll"
	"github.com/star-security/payroll-finisher/sheet"
)

var (
	inputPath  string
	outputPath string
	partial    bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a biweekly export into a payroll-import workbook",
	Long: `Reads the raw biweekly export, runs the overtime allocation, and
writes the consolidated import workbook.

By default any rejected row or employee fails the run (the batch should be
fixed and reprocessed whole). With --partial, clean employees are written
out and rejects are reported on stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Raw biweekly export (.xlsx)")
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination import workbook (.xlsx)")
	processCmd.Flags().BoolVar(&partial, "partial", false, "Write clean employees even when some rows are rejected")
	processCmd.MarkFlagRequired("input")
	processCmd.MarkFlagRequired("output")
}

func runProcess() error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	parsed, err := sheet.Read(in)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	allocator := payroll.NewAllocator(payroll.DefaultConfig())
	result := allocator.Allocate(parsed.Records)

	rejected := len(parsed.RowErrors) + len(result.Errors)
	for _, re := range parsed.RowErrors {
		fmt.Fprintf(os.Stderr, "rejected: %v\n", re)
	}
	for i := range result.Errors {
		fmt.Fprintf(os.Stderr, "rejected: %v\n", &result.Errors[i])
	}
	if rejected > 0 && !partial {
		return fmt.Errorf("%d row(s)/employee(s) rejected; fix the export or rerun with --partial", rejected)
	}

	data, err := sheet.Write(result.Lines)
	if err != nil {
		return fmt.Errorf("render workbook: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	regular, _ := result.Stats.RegularHours.Float64()
	overtime, _ := result.Stats.OvertimeHours.Float64()
	holiday, _ := result.Stats.HolidayHours.Float64()

	fmt.Printf("Processed %d shifts for %d employees -> %d lines\n",
		result.Stats.InputShifts, result.Stats.Employees, result.Stats.OutputLines)
	fmt.Printf("Regular: %.2fh  Overtime: %.2fh  PHP (Holiday): %.2fh\n", regular, overtime, holiday)
	fmt.Printf("Wrote %s\n", outputPath)
	return nil
}
