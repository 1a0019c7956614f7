package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "eras",
	Short: "A history reading feed that learns what you like",
	Long: `eras serves short passages of history, one at a time, weighted toward
the periods you actually finish reading.

Start with:
  eras fetch     fill the catalog from Wikipedia
  eras serve     start the HTTP and MCP servers`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the eras version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("eras version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
