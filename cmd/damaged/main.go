// Package main is the entry point for the damage pipeline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "damaged",
	Short: "Damage pipeline tooling",
	Long:  `damaged validates damage configuration documents and runs the damage pipeline against in-memory collaborators.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(simulateCmd)
}
