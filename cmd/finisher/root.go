package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "finisher",
	Short: "Star Security payroll finisher - biweekly overtime processor",
	Long: `Processes a raw biweekly payroll export into a consolidated
payroll-import workbook: splits shifts at the 88-hour overtime threshold,
tags the overtime portion with " OT/ STAT", keeps PHP (Holiday) hours out
of the threshold, and folds everything into one line per employee and
effective rate code.

Example:
  finisher process -i export.xlsx -o processed.xlsx`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
