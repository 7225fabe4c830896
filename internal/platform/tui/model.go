package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// GameModel is the Bubble Tea model that drives one game at a fixed tick
// rate. It is used both by the local terminal and by SSH sessions.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	source     string
	logger     *log.Logger
	keys       GameKeyMap
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	recorded   bool // Whether the current game over has been stored
}

// NewGameModel creates a model for the given game. Source tags stored runs
// (storage.SourceLocal or storage.SourceSSH); store may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, source string, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		source:     source,
		logger:     logger,
		keys:       DefaultGameKeyMap(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The world is resolution independent, so a resize only changes
		// the viewport.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused || !m.gameState.Started {
			m.backToMenu = true
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !m.recorded:
		m.recordRun()
		m.recorded = true
	case !m.gameState.GameOver:
		m.recorded = false
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the finished run. Storage failures are logged and the
// game continues.
func (m GameModel) recordRun() {
	if m.store == nil {
		return
	}
	id := m.game.ID()
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(id, m.gameState.Score); err != nil {
			m.logger.Warn("could not save score", "game", id, "err", err)
		}
	}

	reporter, ok := m.game.(registry.RunReporter)
	if !ok {
		return
	}
	run, ok := reporter.LastRun()
	if !ok {
		return
	}
	_, err := m.store.SaveRun(storage.RunRecord{
		GameID:    id,
		Score:     run.Score,
		Best:      run.Best,
		Medal:     run.Medal,
		Seed:      run.Seed,
		Obstacles: run.Obstacles,
		Duration:  run.Duration,
		Source:    m.source,
	})
	if err != nil {
		m.logger.Warn("could not save run", "game", id, "err", err)
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame runs a game in the local terminal until the user quits or goes
// back. It reports whether the user asked for the menu.
func RunGame(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, storage.SourceLocal, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
