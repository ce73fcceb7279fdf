package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bash-bonanza/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed campaigns",
	Long:  `Shows the built-in campaigns and those loaded from the campaign directory.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	campaigns := registry.List()

	if len(campaigns) == 0 {
		fmt.Fprintln(out, "No campaigns available.")
		return
	}

	fmt.Fprintln(out, "Available campaigns:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range campaigns {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %-6s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Points", "Title")
	fmt.Fprintf(out, "  %-*s  %-6s  %-6s  %s\n", maxIDLen, "--", "------", "------", "-----")

	for _, c := range campaigns {
		fmt.Fprintf(out, "  %-*s  %-6d  %-6d  %s\n", maxIDLen, c.ID, c.Levels, c.TotalPoints, c.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'bonanza play <id>' to play a campaign.")
}
