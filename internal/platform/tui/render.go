package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
)

// Palette used across the terminal screens.
var (
	colorCyan   = lipgloss.Color("6")
	colorGreen  = lipgloss.Color("2")
	colorRed    = lipgloss.Color("1")
	colorYellow = lipgloss.Color("3")
	colorBright = lipgloss.Color("10")
	colorDim    = lipgloss.Color("241")
	colorBorder = lipgloss.Color("22")
)

// entryStyles maps entry kinds to lipgloss styles.
var entryStyles = map[adventure.EntryKind]lipgloss.Style{
	adventure.KindCommand:  lipgloss.NewStyle().Foreground(colorCyan),
	adventure.KindResponse: lipgloss.NewStyle().Foreground(colorGreen),
	adventure.KindError:    lipgloss.NewStyle().Foreground(colorRed),
	adventure.KindSuccess:  lipgloss.NewStyle().Foreground(colorYellow),
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(colorBright)
	outputStyle = lipgloss.NewStyle().PaddingLeft(2)

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBorder).
			Foreground(colorGreen)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBright)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorDim)
	badgeStyle    = lipgloss.NewStyle().Padding(0, 1)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorYellow).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpKeyword = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

// RenderEntry renders one history entry. Commands get a "$" prompt;
// other entries are indented and keep their line breaks.
// A positive width wraps long lines.
func RenderEntry(e adventure.Entry, width int) string {
	style, ok := entryStyles[e.Kind]
	if !ok {
		style = lipgloss.NewStyle()
	}

	if e.Kind == adventure.KindCommand {
		line := promptStyle.Render("$") + " " + style.Render(e.Text)
		if width > 0 {
			return lipgloss.NewStyle().Width(width).Render(line)
		}
		return line
	}

	body := outputStyle
	if width > 2 {
		body = body.Width(width)
	}
	lines := strings.Split(e.Text, "\n")
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return body.Render(strings.Join(lines, "\n"))
}

// RenderHistory renders the whole history with a blank line between entries.
func RenderHistory(entries []adventure.Entry, width int) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = RenderEntry(e, width)
	}
	return strings.Join(parts, "\n\n")
}

// renderHeader renders the title bar with level progress and score.
func renderHeader(title string, level, levels, score, width int) string {
	left := titleStyle.Render(title) + "  " + subtitleStyle.Render("TERMINAL ADVENTURE")
	right := badgeStyle.Render(fmt.Sprintf("Level: %d/%d", level, levels)) +
		badgeStyle.Render(fmt.Sprintf("Score: %d", score))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return headerStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// renderToast renders a notification box.
func renderToast(n adventure.Notification) string {
	return toastStyle.Render(titleStyle.Render(n.Title) + "\n" + n.Description)
}

// renderFooter renders the reminder shown under the command line.
func renderFooter() string {
	return footerStyle.Render("Type ") + helpKeyword.Render("help") + footerStyle.Render(" to see available commands")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
