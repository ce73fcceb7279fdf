package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
	"github.com/vovakirdan/bash-bonanza/internal/registry"
	"github.com/vovakirdan/bash-bonanza/internal/storage"
)

// stage identifies the screen a session is showing.
type stage int

const (
	stageIntro stage = iota
	stageMenu
	stageTerminal
	stageScoreboard
)

// SessionConfig configures a full play session.
type SessionConfig struct {
	Context context.Context
	Store   *storage.Store
	Logger  *log.Logger
	Player  string

	// CampaignID starts this campaign after the intro instead of showing the picker.
	CampaignID string
	SkipIntro  bool

	EngineOptions []adventure.Option
	Width         int
	Height        int
}

// SessionModel manages the session flow: intro -> picker -> terminal -> picker.
// It is the top-level model for local and SSH play.
type SessionModel struct {
	cfg        SessionConfig
	stage      stage
	intro      IntroModel
	menu       MenuModel
	terminal   TerminalModel
	scoreboard ScoreboardModel
	err        error
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SessionConfig) SessionModel {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	m := SessionModel{cfg: cfg}

	title := "Bash Bonanza"
	if cfg.CampaignID != "" {
		if c, err := registry.Get(cfg.CampaignID); err == nil {
			title = c.Title()
		}
	}
	m.intro = NewIntroModel(title, cfg.Width, cfg.Height)

	if cfg.SkipIntro {
		m.afterIntro()
	}
	return m
}

// Init initializes the current screen.
func (m SessionModel) Init() tea.Cmd {
	switch m.stage {
	case stageTerminal:
		return m.terminal.Init()
	case stageMenu:
		return m.menu.Init()
	}
	return m.intro.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Width = wsm.Width
		m.cfg.Height = wsm.Height
	}

	switch m.stage {
	case stageIntro:
		return m.updateIntro(msg)
	case stageMenu:
		return m.updateMenu(msg)
	case stageScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateTerminal(msg)
	}
}

func (m SessionModel) updateIntro(msg tea.Msg) (tea.Model, tea.Cmd) {
	newIntro, cmd := m.intro.Update(msg)
	if intro, ok := newIntro.(IntroModel); ok {
		m.intro = intro
	}

	if m.intro.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.intro.Started() {
		return m, m.afterIntro()
	}
	return m, cmd
}

// afterIntro opens the configured campaign or the picker.
func (m *SessionModel) afterIntro() tea.Cmd {
	if m.cfg.CampaignID != "" {
		return m.startCampaign(m.cfg.CampaignID)
	}
	return m.openMenu()
}

func (m *SessionModel) openMenu() tea.Cmd {
	m.menu = NewMenuModel(m.cfg.Width, m.cfg.Height)
	m.stage = stageMenu
	return m.menu.Init()
}

func (m *SessionModel) startCampaign(id string) tea.Cmd {
	c, err := registry.Get(id)
	if err != nil {
		m.err = err
		m.cfg.Logger.Error("cannot start campaign", "campaign", id, "error", err)
		return m.openMenu()
	}

	m.terminal = NewTerminalModel(c, TerminalConfig{
		Context:       m.cfg.Context,
		Store:         m.cfg.Store,
		Logger:        m.cfg.Logger,
		Player:        m.cfg.Player,
		EngineOptions: m.cfg.EngineOptions,
		Width:         m.cfg.Width,
		Height:        m.cfg.Height,
	})
	m.stage = stageTerminal
	m.cfg.Logger.Debug("campaign started", "campaign", id, "player", m.cfg.Player)
	return m.terminal.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.cfg.Store, m.cfg.Width, m.cfg.Height)
		m.stage = stageScoreboard
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		return m, m.startCampaign(selected.ID)
	}

	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m, m.openMenu()
	}
	return m, cmd
}

func (m SessionModel) updateTerminal(msg tea.Msg) (tea.Model, tea.Cmd) {
	newTerm, cmd := m.terminal.Update(msg)
	if term, ok := newTerm.(TerminalModel); ok {
		m.terminal = term
	}

	if m.terminal.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.terminal.BackToMenu() {
		return m, m.openMenu()
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.stage {
	case stageMenu:
		return m.menu.View()
	case stageScoreboard:
		return m.scoreboard.View()
	case stageTerminal:
		return m.terminal.View()
	}
	return m.intro.View()
}

// Err returns the last error met while switching screens.
func (m SessionModel) Err() error {
	return m.err
}

// Run starts a local Bubble Tea program for the session.
func Run(cfg SessionConfig) error {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	p := tea.NewProgram(
		NewSessionModel(cfg),
		tea.WithAltScreen(),
		tea.WithContext(cfg.Context),
	)

	_, err := p.Run()
	return err
}
