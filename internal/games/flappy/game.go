// Package flappy implements a Flappy Bird-style game.
// The player keeps the actor airborne through the gaps of an endless stream
// of obstacles; the run ends on the first collision.
package flappy

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// GameID is the registry and score storage identifier.
const GameID = "flappy"

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	sounds           Sounds     = NopSounds{}
	bestScores       BestScores // nil means per-game memory
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the configured level.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetSounds sets the audio sink used by games created afterwards.
func SetSounds(s Sounds) {
	if s == nil {
		s = NopSounds{}
	}
	sounds = s
}

// SetBestScores sets the best-score store used by games created afterwards.
func SetBestScores(b BestScores) {
	bestScores = b
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// runResult is the outcome shown on the result board.
type runResult struct {
	score    int
	best     int
	medal    Medal
	newBest  bool
	duration float64
}

// Options configures a single game instance. Zero fields fall back to the
// package-level settings.
type Options struct {
	ConfigPath string
	Difficulty config.DifficultyPreset
	Sounds     Sounds
	BestScores BestScores
	Logger     *log.Logger
}

// Game adapts a Session to the platform's fixed-tick game interface. It is
// the session's display and visuals collaborator.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.FlappyConfig
	session *Session

	configPath string
	difficulty config.DifficultyPreset
	sounds     Sounds
	bestScores BestScores
	logger     *log.Logger

	paused      bool
	tickCount   int
	flashTicks  int
	wingsStill  bool
	bestAtStart int
	startedAt   float64
	result      *runResult
}

// New creates a new flappy game using the package-level settings.
func New() *Game {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a new flappy game with per-instance settings.
func NewWithOptions(opts Options) *Game {
	g := &Game{
		configPath: opts.ConfigPath,
		difficulty: opts.Difficulty,
		sounds:     opts.Sounds,
		bestScores: opts.BestScores,
		logger:     opts.Logger,
	}
	if g.configPath == "" {
		g.configPath = configPath
	}
	if g.difficulty == "" {
		g.difficulty = difficultyPreset
	}
	if g.sounds == nil {
		g.sounds = sounds
	}
	if g.bestScores == nil {
		g.bestScores = bestScores
	}
	if g.bestScores == nil {
		g.bestScores = &MemoryBestScores{}
	}
	if g.logger == nil {
		g.logger = logger
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset loads the configuration and starts a fresh session in Ready.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadFlappy(g.configPath)
	if err != nil {
		g.logger.Warn("using default config", "path", g.configPath, "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	config.ApplyFlappyPreset(&cfg, g.difficulty)
	g.cfg = config.NewDifficultyManager(cfg.Difficulty).Apply(cfg)
	if err := g.cfg.Validate(); err != nil {
		g.logger.Warn("tuned config invalid, using defaults", "err", err)
		cfg = config.DefaultFlappyConfig()
		config.ApplyFlappyPreset(&cfg, g.difficulty)
		g.cfg = config.NewDifficultyManager(cfg.Difficulty).Apply(cfg)
	}

	g.session = NewSession(g.cfg, runtime.Seed, Deps{
		Sounds:     g.sounds,
		Visuals:    g,
		Display:    g,
		BestScores: g.bestScores,
		Logger:     g.logger,
	})
	g.paused = false
	g.tickCount = 0
	g.flashTicks = 0
	g.wingsStill = false
	g.result = nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(core.DefaultConfig())
	}

	if in.Has(core.ActionPause) && g.session.RunState() == RunPlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.session.RunState() == RunEnded {
		g.session.Restart()
		g.wingsStill = false
		g.result = nil
	}
	if in.Has(core.ActionJump) {
		g.session.Activate()
	}

	g.session.Tick(g.runtime.TickSeconds())
	g.tickCount++
	if g.flashTicks > 0 {
		g.flashTicks--
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:     g.session.Score(),
		BestScore: g.session.Best(),
		Started:   g.session.RunState() != RunReady,
		GameOver:  g.session.RunState() == RunEnded,
		Paused:    g.paused,
	}
}

// LastRun implements registry.RunReporter.
func (g *Game) LastRun() (registry.RunSummary, bool) {
	if g.result == nil || g.session == nil {
		return registry.RunSummary{}, false
	}
	medal := ""
	if g.result.medal != MedalNone {
		medal = g.result.medal.String()
	}
	return registry.RunSummary{
		Score:     g.result.score,
		Best:      g.result.best,
		Medal:     medal,
		Seed:      g.runtime.Seed + int64(g.session.Run()),
		Obstacles: g.session.Stream().Spawned(),
		Duration:  g.result.duration,
	}, true
}

// Session returns the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

// OnScoreChanged implements Display.
func (g *Game) OnScoreChanged(int) {}

// OnRunEnded implements Display.
func (g *Game) OnRunEnded(finalScore, bestScore int) {
	g.result = &runResult{
		score:    finalScore,
		best:     bestScore,
		medal:    MedalFor(finalScore, g.cfg.Medals.Silver, g.cfg.Medals.Gold),
		newBest:  finalScore > g.bestAtStart,
		duration: g.session.Elapsed() - g.startedAt,
	}
}

// OnBeginRequested implements Display. The game has no separate start menu,
// so the request starts the run directly.
func (g *Game) OnBeginRequested() {
	g.bestAtStart = g.session.Best()
	g.startedAt = g.session.Elapsed()
	g.session.StartRun()
}

// Tilt implements Visuals. The actor keeps its own tilt for rendering.
func (g *Game) Tilt(float64, float64) {}

// StopFlapping implements Visuals.
func (g *Game) StopFlapping() {
	g.wingsStill = true
}

// Flash implements Visuals.
func (g *Game) Flash() {
	g.flashTicks = core.Max(1, g.runtime.TickRate/6)
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
