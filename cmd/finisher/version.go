package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the finisher version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("payroll finisher v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
