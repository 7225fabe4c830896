package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the stats sidebar
	sidebarWidth       = 22  // Width of the stats sidebar
	maxScores          = 100 // Max scores to load
	maxRuns            = 50  // Max runs to load
)

// ScoreboardTab selects the table shown by the scoreboard.
type ScoreboardTab int

const (
	TabTopScores ScoreboardTab = iota
	TabRecentRuns
)

func (t ScoreboardTab) String() string {
	if t == TabRecentRuns {
		return "Recent runs"
	}
	return "Top scores"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	gameID      string
	title       string
	store       *storage.Store
	tab         ScoreboardTab
	scores      []storage.ScoreEntry
	runs        []storage.RunRecord
	stats       *storage.GameStats
	best        int
	hasBest     bool
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard for one game.
func NewScoreboardModel(store *storage.Store, gameID, title string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		gameID:      gameID,
		title:       title,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads scores, runs and stats. Read errors leave the lists empty.
func (m *ScoreboardModel) load() {
	if m.store == nil {
		return
	}
	if scores, err := m.store.TopScores(m.gameID, maxScores); err == nil {
		m.scores = scores
	}
	if runs, err := m.store.RecentRuns(m.gameID, maxRuns); err == nil {
		m.runs = runs
	}
	if stats, err := m.store.GetGameStats(m.gameID); err == nil {
		m.stats = stats
	}
	if best, ok, err := m.store.BestScore(m.gameID); err == nil {
		m.best, m.hasBest = best, ok
	}
}

// columns returns the columns for the active tab.
func (m *ScoreboardModel) columns() []table.Column {
	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}

	if m.tab == TabRecentRuns {
		return []table.Column{
			{Title: "Score", Width: 7},
			{Title: "Medal", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Pipes", Width: 6},
			{Title: "From", Width: 6},
			{Title: "Date", Width: clampWidth(tableWidth-45, 12, 14)},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: clampWidth(tableWidth-22, 12, 20)},
	}
}

// clampWidth clamps a column width.
func clampWidth(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// createTable creates a new table for the active tab.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("28")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table for the active tab.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.tab == TabRecentRuns {
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			medal := r.Medal
			if medal == "" {
				medal = "-"
			}
			rows[i] = table.Row{
				fmt.Sprintf("%d", r.Score),
				medal,
				fmt.Sprintf("%.1fs", r.Duration),
				fmt.Sprintf("%d", r.Obstacles),
				r.Source,
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchTab changes the table view and rebuilds its columns.
func (m *ScoreboardModel) switchTab(t ScoreboardTab) {
	m.tab = t
	m.table = m.createTable()
	m.updateTableRows()
}

// Tab returns the active table view.
func (m ScoreboardModel) Tab() ScoreboardTab {
	return m.tab
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
			m.switchTab(1 - m.tab)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("HIGH SCORES - %s", m.title)
	if m.hasBest {
		title = fmt.Sprintf("%s (best %d)", title, m.best)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the view selector.
func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("28")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, t := range []ScoreboardTab{TabTopScores, TabRecentRuns} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	return strings.Join(tabs, " ")
}

// renderSidebar renders aggregated stats.
func (m ScoreboardModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Stats\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	if m.stats == nil || m.stats.GamesCount == 0 {
		sb.WriteString("No games yet")
		return sidebarStyle.Render(sb.String())
	}
	fmt.Fprintf(&sb, "Games:   %d\n", m.stats.GamesCount)
	fmt.Fprintf(&sb, "High:    %d\n", m.stats.HighScore)
	fmt.Fprintf(&sb, "Average: %.1f\n", m.stats.AvgScore)
	fmt.Fprintf(&sb, "Total:   %d\n", m.stats.TotalScore)
	if !m.stats.LastPlayed.IsZero() {
		fmt.Fprintf(&sb, "Last:    %s", m.stats.LastPlayed.Format("Jan 02"))
	}
	return sidebarStyle.Render(sb.String())
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := len(m.scores) == 0
	if m.tab == TabRecentRuns {
		empty = len(m.runs) == 0
	}
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("Nothing recorded yet.\nPlay a run to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, gameID, title string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, gameID, title, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
