package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const startCommand = "$ ./start_game.sh"

// IntroModel types out the game introduction and waits for the player to start.
type IntroModel struct {
	title    string
	text     []rune
	shown    int
	width    int
	height   int
	started  bool
	quitting bool
}

// NewIntroModel creates the intro screen for a game titled title.
func NewIntroModel(title string, width, height int) IntroModel {
	text := fmt.Sprintf("Welcome to %s, a terminal adventure game. "+
		"Your mission: solve puzzles, hack systems, and find the hidden flag in each level "+
		"using your command-line skills. Are you ready to test your terminal prowess?", title)

	return IntroModel{
		title:  title,
		text:   []rune(text),
		width:  width,
		height: height,
	}
}

// Init starts the typewriter.
func (m IntroModel) Init() tea.Cmd {
	return typeCmd(typeInterval)
}

// Update handles messages for the intro.
func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TypeMsg:
		if m.shown < len(m.text) {
			m.shown++
			if m.shown < len(m.text) {
				return m, typeCmd(typeInterval)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter", " ":
			if !m.Done() {
				// First press skips the animation
				m.shown = len(m.text)
				return m, nil
			}
			m.started = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the intro.
func (m IntroModel) View() string {
	if m.quitting {
		return ""
	}

	boxWidth := 64
	if m.width > 0 && m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	if boxWidth < 20 {
		boxWidth = 20
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(boxWidth).Align(lipgloss.Center).Render(titleStyle.Render(m.title)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(boxWidth).Foreground(colorGreen).Render(string(m.text[:m.shown]) + "_"))
	b.WriteString("\n\n")

	if m.Done() {
		button := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("28")).
			Render(startCommand)
		b.WriteString(lipgloss.NewStyle().Width(boxWidth).Align(lipgloss.Center).Render(button))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(boxWidth).Align(lipgloss.Center).Render(footerStyle.Render("press enter")))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2).
		Render(b.String())

	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Done reports whether the whole introduction has been typed.
func (m IntroModel) Done() bool {
	return m.shown >= len(m.text)
}

// Started returns true once the player chose to start.
func (m IntroModel) Started() bool {
	return m.started
}

// IsQuitting returns true if user requested to quit.
func (m IntroModel) IsQuitting() bool {
	return m.quitting
}
