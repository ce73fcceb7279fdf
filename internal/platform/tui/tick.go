// Package tui provides the Bubble Tea front end for adventure campaigns.
// It handles the intro screen, campaign picker, terminal and scoreboard,
// locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	typeInterval  = 20 * time.Millisecond // intro typewriter speed
	toastDuration = 3 * time.Second
)

// TypeMsg advances the intro typewriter by one character.
type TypeMsg time.Time

// typeCmd returns a command that sends a TypeMsg after interval.
func typeCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TypeMsg(t)
	})
}

// toastExpiredMsg hides the toast with the given id if it is still shown.
type toastExpiredMsg struct {
	id int
}

func toastCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
