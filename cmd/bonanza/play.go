package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bash-bonanza/internal/adventure/levels"
	"github.com/vovakirdan/bash-bonanza/internal/platform/repl"
	"github.com/vovakirdan/bash-bonanza/internal/platform/tui"
	"github.com/vovakirdan/bash-bonanza/internal/registry"
)

var (
	flagPlain     bool
	flagPlayer    string
	flagSkipIntro bool
)

var playCmd = &cobra.Command{
	Use:   "play [campaign]",
	Short: "Play a campaign",
	Long: `Start playing the given campaign, or the built-in one.

Type 'help' in game to see the commands of the current level.

Controls:
  Enter      - Run command
  Ctrl+R     - Reset the game
  PgUp/PgDn  - Scroll history
  Esc        - Back to campaign picker
  Ctrl+C     - Quit

When input is not a terminal, or with --plain, the game runs in line mode:
one command per line, ':reset' restarts and ':quit' leaves.

Examples:
  bonanza play
  bonanza play heist --player neo
  echo "inspect" | bonanza play`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPlain, "plain", false, "Use line mode instead of the full-screen UI")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name recorded with the run")
	playCmd.Flags().BoolVar(&flagSkipIntro, "skip-intro", false, "Start without the intro screen")
}

func runPlay(cmd *cobra.Command, args []string) error {
	campaignID := levels.DefaultCampaignID
	if len(args) > 0 {
		campaignID = args[0]
	}

	c, err := registry.Get(campaignID)
	if err != nil {
		return fmt.Errorf("%w (run 'bonanza list' to see available campaigns)", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if flagPlain || !isInteractive() {
		err := repl.Run(cmd.Context(), c, repl.Config{
			In:            cmd.InOrStdin(),
			Out:           cmd.OutOrStdout(),
			Store:         store,
			Logger:        app.logger,
			Player:        playerName(flagPlayer),
			Echo:          !term.IsTerminal(int(os.Stdin.Fd())),
			EngineOptions: engineOptions(),
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	width, height := terminalSize()
	return tui.Run(tui.SessionConfig{
		Context:       cmd.Context(),
		Store:         store,
		Logger:        app.logger,
		Player:        playerName(flagPlayer),
		CampaignID:    c.ID(),
		SkipIntro:     flagSkipIntro,
		EngineOptions: engineOptions(),
		Width:         width,
		Height:        height,
	})
}

// isInteractive reports whether both stdin and stdout are terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalSize returns the size of stdout, or 80x24 when unknown.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
