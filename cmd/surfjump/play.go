package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/surfjump/internal/audio"
	"github.com/vovakirdan/surfjump/internal/config"
	"github.com/vovakirdan/surfjump/internal/games/surfjump"
	"github.com/vovakirdan/surfjump/internal/platform/tui"
	"github.com/vovakirdan/surfjump/internal/registry"
	"github.com/vovakirdan/surfjump/internal/spectate"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagVolume     float64
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing. Without an argument the forgiving variant is used.

Controls:
  Left/Right, A/D  - Steer (hold)
  Space/Up/W       - Jump, stronger at speed
  Mouse drag       - Steer like a touch, swipe up to jump
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Wider landing tolerance, slower drift
  normal - Default tuning
  hard   - Starts two steps harder, narrow landing tolerance
  fixed  - Platform spacing never gets harder

Examples:
  surfjump play
  surfjump play surfjump_strict
  surfjump play --difficulty hard --mute
  surfjump play --config ./my-waves.yaml
  surfjump play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", audio.DefaultConfig().Volume, "Sound volume in [0, 1]")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Stream the game to websocket spectators on this address")

	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	menuCmd.Flags().Float64Var(&flagVolume, "volume", audio.DefaultConfig().Volume, "Sound volume in [0, 1]")
}

// applyGameFlags validates and applies --config and --difficulty.
func applyGameFlags() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	surfjump.SetConfigPath(flagConfig)
	surfjump.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := surfjump.IDForgiving
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q; run 'surfjump list' to see available variants", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	board := startAudio(logger)
	defer board.Close()

	listeners := surfjump.Listeners{board}
	opts := []tui.Option{tui.WithLogger(logger)}

	if flagSpectate != "" {
		hub := spectate.NewHub(spectate.DefaultConfig(), logger)
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			if err := spectate.ListenAndServe(ctx, flagSpectate, hub); err != nil {
				logger.Error("spectator server stopped", "error", err)
			}
		}()

		listeners = append(listeners, hub)
		opts = append(opts, tui.WithFrameHook(func(g registry.Game) {
			if sg, ok := g.(*surfjump.Game); ok {
				hub.Frame(sg.Snapshot())
			}
		}))
	}

	if sg, ok := game.(*surfjump.Game); ok {
		sg.SetListener(listeners)
	}

	logger.Info("starting", "game", gameID, "difficulty", flagDifficulty, "spectate", flagSpectate)
	if err := tui.Run(game, store, runtimeConfig(), opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// startAudio opens the sound board. A missing audio device leaves it silent.
func startAudio(logger *log.Logger) *audio.Board {
	cfg := audio.DefaultConfig()
	cfg.Muted = flagMute
	cfg.Volume = flagVolume

	board := audio.NewBoard(cfg, logger)
	if err := board.Start(); err != nil {
		logger.Warn("sound disabled", "error", err)
	}
	return board
}
