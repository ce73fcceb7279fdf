package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bash-bonanza/internal/adventure/levels"
)

var errInvalidFiles = errors.New("some campaign files are invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check campaign files",
	Long: `Parse campaign files and report problems such as missing levels,
gaps in level numbers or invalid patterns.

Examples:
  bonanza validate ./heist.yaml
  bonanza validate ~/.bonanza/campaigns/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		c, err := levels.LoadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s\n      %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok    %s  %s, %d levels, %d points\n", path, c.ID(), c.LevelCount(), c.TotalPoints())
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidFiles, failed, len(args))
	}
	return nil
}
