// Package main is the jobscout CLI: scrape job boards from the command
// line or run the HTTP tool server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Aggregate job postings from multiple boards",
	Long:  "jobscout fans a single search out to several job boards, normalizes what comes back into one flat record shape, and writes the result as JSON, CSV or SQLite.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
