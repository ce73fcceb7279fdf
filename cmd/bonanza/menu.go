package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bash-bonanza/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a campaign interactively",
	Long: `Open the campaign picker. From the picker, Tab shows the scoreboard
and Esc in a game returns to the picker.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	if !isInteractive() {
		return errors.New("menu needs a terminal; use 'bonanza play --plain' instead")
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	return tui.Run(tui.SessionConfig{
		Context:       cmd.Context(),
		Store:         store,
		Logger:        app.logger,
		Player:        playerName(""),
		EngineOptions: engineOptions(),
		Width:         width,
		Height:        height,
	})
}
