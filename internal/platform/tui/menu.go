package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// MenuItem is one entry of the start menu.
type MenuItem struct {
	Label      string
	Difficulty config.DifficultyPreset // Empty for non-game entries
	scores     bool
	quit       bool
}

func defaultMenuItems() []MenuItem {
	return []MenuItem{
		{Label: "Easy", Difficulty: config.DifficultyEasy},
		{Label: "Normal", Difficulty: config.DifficultyNormal},
		{Label: "Hard", Difficulty: config.DifficultyHard},
		{Label: "High Scores", scores: true},
		{Label: "Quit", quit: true},
	}
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	gameID         string
	items          []MenuItem
	cursor         int
	best           int
	hasBest        bool
	config         core.RuntimeConfig
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates the start menu. The stored best score, if any, is
// shown under the title.
func NewMenuModel(store *storage.Store, gameID string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		gameID: gameID,
		items:  defaultMenuItems(),
		cursor: 1,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	if store != nil {
		if best, ok, err := store.BestScore(gameID); err == nil {
			m.best, m.hasBest = best, ok
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		switch {
		case item.quit:
			m.quitting = true
		case item.scores:
			m.openScoreboard = true
		default:
			m.selected = &item
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	width := m.config.ScreenW

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("F L A P P Y"), width))
	b.WriteString("\n\n")

	subtitle := "No best score yet"
	if m.hasBest {
		subtitle = fmt.Sprintf("Best: %d", m.best)
	}
	b.WriteString(centerText(menuDimStyle.Render(subtitle), width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + menuItemStyle.Render(item.Label)
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Label)
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected item, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if the user opened the high scores.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result converts the final menu state.
func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.Difficulty = m.Selected().Difficulty
	default:
		res.Quit = true
	}
	return res
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, gameID string, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, gameID, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
