package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bash-bonanza/internal/registry"
	"github.com/vovakirdan/bash-bonanza/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <campaign>",
	Short: "Show the best runs of a campaign",
	Long: `Display the top runs recorded for the specified campaign.

Examples:
  bonanza scores browser-bash
  bonanza scores browser-bash --limit 3
  bonanza scores browser-bash --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs of the campaign")
}

func runScores(cmd *cobra.Command, args []string) error {
	c, err := registry.Get(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 'bonanza list' to see available campaigns)", err)
	}

	store, err := storage.Open(app.cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearRuns(c.ID()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared runs of %s.\n", c.Title())
		return nil
	}

	runs, err := store.TopRuns(c.ID(), flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", c.Title())

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'bonanza play %s' to set the first high score!\n", c.ID())
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-6s  %-8s  %s\n", "Rank", "Player", "Score", "Levels", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-6s  %-8s  %s\n", "----", "------", "-----", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "anonymous"
		}
		levels := fmt.Sprintf("%d/%d", r.LevelsCompleted, c.LevelCount())
		if r.Finished {
			levels += " *"
		}
		fmt.Fprintf(out, "  %-4d  %-16s  %-6d  %-8s  %s\n",
			i+1, player, r.Score, levels, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetCampaignStats(c.ID())
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d of %d  |  Runs: %d  |  Finished: %d\n",
			stats.HighScore, c.TotalPoints(), stats.RunsCount, stats.FinishedCount)
	}
	return nil
}
