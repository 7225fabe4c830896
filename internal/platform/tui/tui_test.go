package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// stubGame ends with a fixed score after a number of steps.
type stubGame struct {
	resets  int
	steps   int
	endAt   int
	score   int
	over    bool
	started bool
	inputs  []core.InputFrame
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++; g.steps = 0; g.over = false }
func (g *stubGame) Render(dst *core.Screen)  { dst.Clear(); dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.over, Started: g.started}
}
func (g *stubGame) LastRun() (registry.RunSummary, bool) {
	if !g.over {
		return registry.RunSummary{}, false
	}
	return registry.RunSummary{Score: g.score, Best: g.score, Medal: "silver", Seed: 7, Obstacles: 3, Duration: 1.5}, true
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	// The model clears its frame after each step; keep a copy.
	seen := core.NewInputFrame()
	for a, on := range in.Actions {
		seen.Actions[a] = on
	}
	g.inputs = append(g.inputs, seen)
	if in.Has(core.ActionJump) {
		g.started = true
	}
	if in.Has(core.ActionRestart) && g.over {
		g.over = false
		g.steps = 0
	}
	g.steps++
	if g.endAt > 0 && g.steps >= g.endAt {
		g.over = true
	}
	return core.StepResult{State: g.State()}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
}

func newTestModel(g registry.Game, store *storage.Store) GameModel {
	return NewGameModel(g, store, testRuntime(), storage.SourceLocal, log.New(io.Discard))
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return gm
}

func TestGameKeyMap(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", runes("w"), core.ActionJump},
		{"p", runes("p"), core.ActionPause},
		{"r", runes("r"), core.ActionRestart},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"q", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"x", runes("x"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if got := MapMouse(press); got != core.ActionJump {
		t.Errorf("left press = %v, want jump", got)
	}
	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if got := MapMouse(release); got != core.ActionNone {
		t.Errorf("left release = %v, want none", got)
	}
	right := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	if got := MapMouse(right); got != core.ActionNone {
		t.Errorf("right press = %v, want none", got)
	}
}

func TestMenuKeyMap(t *testing.T) {
	keys := DefaultMenuKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := keys.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	scr := core.NewScreen(5, 2)
	scr.DrawTextColored(0, 0, "ab", core.ColorRed)
	scr.DrawText(2, 0, "c")

	out := RenderScreen(scr)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "c") {
		t.Errorf("rendered output lost text: %q", out)
	}
}

func TestGameModelForwardsInputOnTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))

	if len(g.inputs) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.inputs))
	}
	if !g.inputs[0].Has(core.ActionJump) {
		t.Error("first tick should carry the jump")
	}
	if g.inputs[1].Has(core.ActionJump) {
		t.Error("input should be cleared after a tick")
	}
	if !m.State().Started {
		t.Error("model should track the game state")
	}
}

func TestGameModelMouseFlaps(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)

	m = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, TickMsg(time.Now()))

	if !g.inputs[0].Has(core.ActionJump) {
		t.Error("left click should flap")
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Errorf("resets = %d, want 1 (resize must not restart)", g.resets)
	}
}

func TestGameModelRecordsRunOnce(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{endAt: 2, score: 5}
	m := newTestModel(g, store)
	m.Init()

	for range 5 {
		m = update(t, m, TickMsg(time.Now()))
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 5 {
		t.Errorf("scores = %+v, want one entry of 5", scores)
	}
	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	if runs[0].Source != storage.SourceLocal || runs[0].Medal != "silver" || runs[0].Obstacles != 3 {
		t.Errorf("run = %+v", runs[0])
	}

	// A restart arms recording for the next game over.
	m = update(t, m, runes("r"))
	for range 5 {
		m = update(t, m, TickMsg(time.Now()))
	}
	runs, _ = store.RecentRuns("stub", 10)
	if len(runs) != 2 {
		t.Errorf("runs after restart = %d, want 2", len(runs))
	}
}

func TestGameModelZeroScoreSkipsLeaderboard(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{endAt: 1}
	m := newTestModel(g, store)

	update(t, m, TickMsg(time.Now()))

	scores, _ := store.TopScores("stub", 10)
	if len(scores) != 0 {
		t.Errorf("zero score should not reach the leaderboard: %+v", scores)
	}
	runs, _ := store.RecentRuns("stub", 10)
	if len(runs) != 1 {
		t.Errorf("runs = %d, want 1", len(runs))
	}
}

func TestGameModelBackOnlyWhenIdle(t *testing.T) {
	g := &stubGame{endAt: 3}
	m := newTestModel(g, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc during a run should not leave the game")
	}

	for range 3 {
		m = update(t, m, TickMsg(time.Now()))
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc after game over should go back to the menu")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestModel(&stubGame{}, nil)
	next, cmd := m.Update(runes("q"))
	if !next.(GameModel).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if next.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestMenuSelectsDifficulty(t *testing.T) {
	m := NewMenuModel(nil, "stub", testRuntime())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := next.(MenuModel).result()

	if res.Quit || res.WantsScoreboard {
		t.Fatalf("result = %+v, want a game", res)
	}
	if res.Difficulty != config.DifficultyHard {
		t.Errorf("difficulty = %q, want hard", res.Difficulty)
	}
}

func TestMenuScoresAndQuit(t *testing.T) {
	m := NewMenuModel(nil, "stub", testRuntime())
	for range 2 {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(MenuModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !next.(MenuModel).result().WantsScoreboard {
		t.Error("High Scores entry should open the scoreboard")
	}

	next, _ = NewMenuModel(nil, "stub", testRuntime()).Update(runes("q"))
	if !next.(MenuModel).result().Quit {
		t.Error("q should quit the menu")
	}
}

func TestMenuShowsBest(t *testing.T) {
	store := openTestStore(t)
	if err := store.SetBestScore("stub", 12); err != nil {
		t.Fatalf("SetBestScore() error: %v", err)
	}

	view := NewMenuModel(store, "stub", testRuntime()).View()
	if !strings.Contains(view, "Best: 12") {
		t.Errorf("menu should show the stored best:\n%s", view)
	}
}

func TestScoreboardTabs(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("stub", 9); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(storage.RunRecord{GameID: "stub", Score: 9, Medal: "gold", Duration: 4}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, "stub", "Stub", 100, 30)
	if m.Tab() != TabTopScores {
		t.Fatalf("initial tab = %v", m.Tab())
	}
	if !strings.Contains(m.View(), "Top scores") {
		t.Error("view should name the active tab")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Tab() != TabRecentRuns {
		t.Fatalf("tab after switch = %v, want recent runs", m.Tab())
	}
	if !strings.Contains(m.View(), "gold") {
		t.Errorf("recent runs should list the medal:\n%s", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionModelMenuToGameAndBack(t *testing.T) {
	var created []config.DifficultyPreset
	g := &stubGame{endAt: 1}
	server := SSHServerConfig{
		GameID: "stub",
		Title:  "Stub",
		NewGame: func(d config.DifficultyPreset, _ *storage.Store) registry.Game {
			created = append(created, d)
			return g
		},
	}
	var m tea.Model = NewSessionModel(nil, testRuntime(), server, log.New(io.Discard))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(created) != 1 || created[0] != config.DifficultyNormal {
		t.Fatalf("created = %v, want one normal game", created)
	}
	if m.(SessionModel).screen != screenGame {
		t.Fatal("session should show the game")
	}

	m, _ = m.Update(TickMsg(time.Now()))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Error("esc after game over should return to the menu")
	}
	if m.(SessionModel).quitting {
		t.Error("session should still be running")
	}
}
