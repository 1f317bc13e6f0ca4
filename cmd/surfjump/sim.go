package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/surfjump/internal/core"
	"github.com/vovakirdan/surfjump/internal/games/surfjump"
	"github.com/vovakirdan/surfjump/internal/registry"
	"github.com/vovakirdan/surfjump/internal/storage"
)

var (
	flagSimTicks   int
	flagSimScript  string
	flagSimJSON    bool
	flagSimSave    bool
	flagSimRender  bool
	flagSimVariant string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the game without a terminal UI. The same seed and script always
produce the same run, which makes sim useful for replays and config tuning.

Scripts are comma separated steps with optional repeat counts. Actions are
idle, left, right, jump, pause and swipe (a three tick upward drag).

Examples:
  surfjump sim --seed 42 --ticks 600
  surfjump sim --seed 7 --script "right*30,jump,right*60,swipe" --json
  surfjump sim --variant surfjump_strict --difficulty hard --render`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 600, "Ticks to simulate (stops early at game over)")
	simCmd.Flags().StringVar(&flagSimScript, "script", "", "Input script")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the final snapshot as JSON")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the database")
	simCmd.Flags().BoolVar(&flagSimRender, "render", false, "Print the final frame")
	simCmd.Flags().StringVar(&flagSimVariant, "variant", surfjump.IDForgiving, "Variant to simulate")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	in, err := parseScript(flagSimScript, cfg.ScreenW)
	if err != nil {
		return err
	}

	game, err := registry.Create(flagSimVariant)
	if err != nil {
		return err
	}
	sg, ok := game.(*surfjump.Game)
	if !ok {
		return fmt.Errorf("variant %q cannot be simulated", flagSimVariant)
	}
	sg.SetListener(surfjump.ListenerFunc(func(ev core.Event) {
		logger.Debug("event", "tick", sg.Ticks(), "kind", ev.Kind, "level", ev.Level)
	}))

	sg.Reset(cfg)
	logger.Info("simulating", "variant", flagSimVariant, "seed", cfg.Seed, "ticks", flagSimTicks, "script", in.Len())

	for tick := 0; tick < flagSimTicks; tick++ {
		if res := sg.Step(in.Frame(tick)); res.State.GameOver {
			break
		}
	}

	if flagSimSave {
		saveSimRun(sg, cfg.Seed, logger)
	}

	switch {
	case flagSimJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sg.Snapshot())
	case flagSimRender:
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		sg.Render(screen)
		fmt.Println(screen.String())
	}

	fmt.Printf("variant=%s seed=%d ticks=%d status=%s score=%d level=%d max_level=%d difficulty=%d\n",
		sg.ID(), cfg.Seed, sg.Ticks(), sg.Status(), sg.Score(), sg.Level(), sg.MaxLevel(), sg.Difficulty())
	return nil
}

func saveSimRun(g *surfjump.Game, seed int64, logger *log.Logger) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("run not saved", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		GameID:     g.ID(),
		Score:      g.Score(),
		MaxLevel:   g.MaxLevel(),
		Difficulty: g.Difficulty(),
		Seed:       seed,
		Ticks:      g.Ticks(),
	})
	if err != nil {
		logger.Warn("run not saved", "error", err)
		return
	}
	logger.Info("run saved", "id", id)
}
