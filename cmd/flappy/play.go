package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagMute    bool
	flagVolume  float64
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Without --difficulty a start menu lets you pick one and browse the high
scores; with it the game starts right away.

Controls:
  Space/Up/W/Click - Flap (the first flap starts the run)
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back to menu (when paused, ready or over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slowest obstacles, widest gaps
  normal - Moderate speed and gaps
  hard   - Fast obstacles, narrow gaps
  fixed  - Uses the config's own difficulty level

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --config ./my-flappy.toml --mute
  flappy play --log ./flappy.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound effect volume (0..1)")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write game logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	preset := parseDifficulty()

	logger := log.New(io.Discard)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			defer f.Close()
			logger = log.NewWithOptions(f, log.Options{
				ReportTimestamp: true,
				Prefix:          "flappy",
				Level:           log.DebugLevel,
			})
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	player := audio.NewPlayer(flagVolume)
	player.SetMuted(flagMute)
	if !flagMute {
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	newGame := func(d config.DifficultyPreset) *flappy.Game {
		return flappy.NewWithOptions(flappy.Options{
			ConfigPath: flagConfig,
			Difficulty: d,
			Sounds:     player,
			BestScores: bestScoresFor(store),
			Logger:     logger,
		})
	}

	if preset != "" {
		if _, err := tui.RunGame(newGame(preset), store, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for {
		menuResult, err := tui.RunMenu(store, flappy.GameID, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return

		case menuResult.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, flappy.GameID, "Flappy Bird", cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return
			}

		default:
			back, runErr := tui.RunGame(newGame(menuResult.Difficulty), store, cfg, logger)
			if runErr != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
				os.Exit(1)
			}
			if !back {
				return
			}
		}
	}
}
