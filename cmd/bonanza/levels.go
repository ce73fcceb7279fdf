package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bash-bonanza/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels <campaign>",
	Short: "Show the missions of a campaign",
	Long: `Print every level of a campaign with its mission, points and hints.
Solutions are not shown.

Examples:
  bonanza levels browser-bash`,
	Args: cobra.ExactArgs(1),
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	c, err := registry.Get(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 'bonanza list' to see available campaigns)", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", c.Title(), c.ID())
	fmt.Fprintf(out, "%d levels, %d points\n\n", c.LevelCount(), c.TotalPoints())

	for _, l := range c.Levels() {
		fmt.Fprintf(out, "  %d. %s  [%d pts]\n", l.Index, l.Description, l.Points)
		if len(l.Hints) > 0 {
			fmt.Fprintf(out, "     hints: %s\n", strings.Join(l.Hints, ", "))
		}
	}
	return nil
}
