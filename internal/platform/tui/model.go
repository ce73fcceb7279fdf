package tui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
	"github.com/vovakirdan/bash-bonanza/internal/storage"
)

// Terminal layout: header (2 lines), footer and help (2), input (1), spacing (2).
const chromeHeight = 7

// TerminalModel is the Bubble Tea model for playing a campaign.
type TerminalModel struct {
	ctx    context.Context
	engine *adventure.Engine
	bridge *bridge
	store  *storage.Store
	logger *log.Logger
	player string

	state    adventure.State
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     TerminalKeyMap

	toast   *adventure.Notification
	toastID int

	width      int
	height     int
	runSaved   bool // whether the current run has been stored
	quitting   bool
	backToMenu bool
}

// TerminalConfig holds the collaborators of a terminal session.
type TerminalConfig struct {
	Context       context.Context
	Store         *storage.Store // optional; runs are not recorded when nil
	Logger        *log.Logger
	Player        string
	EngineOptions []adventure.Option
	Width         int
	Height        int
}

// NewTerminalModel starts a new session of c.
func NewTerminalModel(c *adventure.Campaign, cfg TerminalConfig) TerminalModel {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	b := newBridge()
	opts := append([]adventure.Option{}, cfg.EngineOptions...)
	opts = append(opts, adventure.WithSink(b), adventure.WithNotifier(b))
	engine := adventure.New(c, opts...)

	ti := textinput.New()
	ti.Prompt = promptStyle.Render("$") + " "
	ti.Placeholder = "Type your command..."
	ti.TextStyle = entryStyles[adventure.KindCommand]
	ti.Focus()

	h := help.New()
	h.ShowAll = false

	m := TerminalModel{
		ctx:      cfg.Context,
		engine:   engine,
		bridge:   b,
		store:    cfg.Store,
		logger:   cfg.Logger,
		player:   cfg.Player,
		input:    ti,
		viewport: viewport.New(0, 0),
		help:     h,
		keys:     DefaultTerminalKeyMap(),
	}
	m.resize(cfg.Width, cfg.Height)
	m.refresh()
	return m
}

// Init starts the cursor blink and the engine event listener.
func (m TerminalModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.bridge.listen())
}

// Update handles messages and updates the model state.
func (m TerminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case historyChangedMsg:
		m.refresh()
		return m, m.bridge.listen()

	case notificationMsg:
		n := adventure.Notification(msg)
		m.toast = &n
		m.toastID++
		return m, tea.Batch(m.bridge.listen(), toastCmd(m.toastID, toastDuration))

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m TerminalModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveRun()
		m.close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.saveRun()
		m.close()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.saveRun()
		m.engine.Reset(m.ctx)
		m.runSaved = false
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the command line to the engine. Blank lines are ignored.
func (m TerminalModel) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.input.Reset()

	out := m.engine.ProcessCommand(m.ctx, line)
	m.refresh()

	if out.Finished {
		m.saveRun()
	}
	return m, nil
}

// refresh re-reads the engine state and scrolls the history to the bottom.
func (m *TerminalModel) refresh() {
	m.state = m.engine.Snapshot()
	m.viewport.SetContent(RenderHistory(m.state.History, m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m *TerminalModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	vh := height - chromeHeight
	if vh < 1 {
		vh = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vh
	if width > 4 {
		m.input.Width = width - 4
	}
}

// saveRun records the current run once. Runs without progress are not stored.
func (m *TerminalModel) saveRun() {
	if m.store == nil || m.runSaved {
		return
	}
	s := m.engine.Snapshot()
	if s.Score == 0 {
		return
	}

	c := m.engine.Campaign()
	run := storage.Run{
		CampaignID:      c.ID(),
		Player:          m.player,
		Score:           s.Score,
		LevelsCompleted: len(s.CompletedLevels()),
		Finished:        s.Finished(c),
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "campaign", c.ID(), "error", err)
		return
	}
	m.runSaved = true
}

// close stops listening for engine events.
func (m TerminalModel) close() {
	m.bridge.close()
}

// View renders the terminal.
func (m TerminalModel) View() string {
	if m.quitting {
		return ""
	}

	c := m.engine.Campaign()
	var b strings.Builder

	b.WriteString(renderHeader(c.Title(), m.state.Level, c.LevelCount(), m.state.Score, m.width))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.toast != nil {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, renderToast(*m.toast)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(renderFooter())
	b.WriteString("  ")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// State returns the last state read from the engine.
func (m TerminalModel) State() adventure.State {
	return m.state
}

// Engine returns the session engine.
func (m TerminalModel) Engine() *adventure.Engine {
	return m.engine
}

// Toast returns the notification currently shown, or nil.
func (m TerminalModel) Toast() *adventure.Notification {
	return m.toast
}

// IsQuitting returns true if user requested to quit entirely.
func (m TerminalModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the campaign picker.
func (m TerminalModel) BackToMenu() bool {
	return m.backToMenu
}
