// Package surfjump implements the surfjump arcade game: a player surfs a
// rolling water surface and jumps between floating platforms. Five landings
// in a row raise the level and flip gravity; a miss flips it back and costs a level.
package surfjump

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/surfjump/internal/config"
	"github.com/vovakirdan/surfjump/internal/core"
	"github.com/vovakirdan/surfjump/internal/registry"
)

// Registered variants.
const (
	IDForgiving = "surfjump"
	IDStrict    = "surfjump_strict"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusStarted  Status = "started"
	StatusFinished Status = "finished"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config file's values.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game is the surfjump controller. It owns the surface, the platforms and
// the player, runs them in a fixed order each tick and turns landings and
// misses into score and level changes.
type Game struct {
	id     string
	title  string
	strict bool

	fixedCfg *config.SurfjumpConfig
	preset   config.DifficultyPreset
	cfg      config.SurfjumpConfig
	runtime  core.RuntimeConfig
	dt       float64
	rng      *rand.Rand

	surface    *HeightField
	platforms  *PlatformGenerator
	player     *Player
	difficulty *config.DifficultyManager
	hud        *HUD

	level    int
	maxLevel int
	streak   int
	score    int
	subscore int
	inverted bool
	status   Status
	paused   bool
	tick     uint64
	cameraX  float64

	listener Listener
	events   []core.Event
}

// New creates the forgiving variant. Configuration is loaded on Reset from
// the path and preset set with SetConfigPath and SetDifficultyPreset.
func New() *Game {
	return &Game{id: IDForgiving, title: "Surf Jump", listener: nopListener{}}
}

// NewStrict creates the variant without landing tolerance.
func NewStrict() *Game {
	g := New()
	g.id = IDStrict
	g.title = "Surf Jump (strict)"
	g.strict = true
	return g
}

// NewWithListener creates the forgiving variant that reports events to l.
func NewWithListener(l Listener) *Game {
	g := New()
	g.SetListener(l)
	return g
}

// NewWithConfig creates a game that always uses cfg instead of loading one.
func NewWithConfig(cfg config.SurfjumpConfig, l Listener) *Game {
	g := NewWithListener(l)
	g.fixedCfg = &cfg
	return g
}

// SetListener replaces the event listener. nil disables notifications.
func (g *Game) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	g.listener = l
}

// SetPreset overrides the package-wide difficulty preset for this game.
// It takes effect on the next Reset.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return g.id }

// Title returns the display name for this game.
func (g *Game) Title() string { return g.title }

func (g *Game) loadConfig() config.SurfjumpConfig {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}
	cfg, err := config.LoadSurfjump(configPath)
	if err != nil {
		cfg = config.DefaultSurfjumpConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplySurfjumpPreset(&cfg, preset)
	}
	if g.strict {
		cfg.Platforms.CollisionTolerance = 0
	}
	return cfg
}

// Reset discards every stateful component and starts a new run.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	g.dt = rt.TickSeconds()
	g.cfg = g.loadConfig()
	g.rng = rand.New(rand.NewSource(rt.Seed))

	vw := g.cfg.World.ViewportWidth
	g.surface = NewHeightField(g.cfg.Surface, vw, g.rng)
	g.platforms = NewPlatformGenerator(g.cfg.Platforms, vw, g.rng)
	g.player = NewPlayer(g.cfg.Player, float64(rt.ScreenW))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.hud = newHUD(rt.TickRate)

	g.level = 0
	g.maxLevel = 0
	g.streak = 0
	g.score = 0
	g.subscore = 0
	g.inverted = false
	g.status = StatusStarted
	g.paused = false
	g.tick = 0
	g.cameraX = 0
	g.events = g.events[:0]

	start := g.platforms.Platform(0)
	start.SetCollided(true, g.level)
	g.player.Place(start.CenterX(), start)
	g.player.SetMaxVelBonus(g.difficulty.Value())

	// Settle poses so the first frame renders before any tick.
	g.platforms.Tick(0, g.surface)
	g.surface.SetSpans(g.platforms.Spans())
	g.player.Tick(0, g.surface, g.platforms)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]
	if g.status == StatusFinished {
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.tick++
	g.applyInput(in)

	// Camera follows the player; everything else is placed relative to it.
	g.cameraX = g.player.X()

	g.surface.ShiftWindow(g.cameraX)
	g.surface.Tick(g.dt)

	g.platforms.MaybeAddPlatforms(g.cameraX, g.difficulty.Value())
	g.platforms.Tick(g.dt, g.surface)
	g.platforms.Retire(g.cameraX)
	g.surface.SetSpans(g.platforms.Spans())

	rep := g.player.Tick(g.dt, g.surface, g.platforms)
	if rep.Jumped {
		g.emit(core.EventJump, 1)
	}
	if rep.Landed {
		g.emit(core.EventLand, 1)
	}
	g.resolve(rep.Outcome)

	if g.player.OutOfBounds(g.cfg.World.ViewportHeight / 2) {
		g.gameOver()
	}

	g.hud.Update()
	return g.result()
}

func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State()}
	if len(g.events) > 0 {
		res.Events = append([]core.Event(nil), g.events...)
	}
	return res
}

// applyInput feeds touches and keyboard actions to the player.
func (g *Game) applyInput(in core.InputFrame) {
	if len(in.Touches) > 0 {
		g.player.Touch(in.Touches)
	}
	for _, id := range in.Released {
		g.player.Release(id)
	}

	switch {
	case in.Has(core.ActionLeft) && !in.Has(core.ActionRight):
		g.player.Hold(DirLeft)
	case in.Has(core.ActionRight) && !in.Has(core.ActionLeft):
		g.player.Hold(DirRight)
	}
	if in.Has(core.ActionJump) && g.player.Jump(1) {
		g.emit(core.EventJump, 1)
	}
}

// resolve applies a support transition to the platforms and the score.
func (g *Game) resolve(out Outcome) {
	switch out.Kind {
	case OutcomeLanded:
		if out.Left != nil {
			out.Left.SetCollided(false, g.level)
		}
		out.Platform.SetCollided(true, g.level)
		g.OnPlatformLanded()
	case OutcomeMissed:
		out.Left.SetCollided(false, g.level)
		g.OnPlatformMissed()
	}
}

// OnPlatformLanded counts a successful landing. Every StreakLength landings
// flip gravity and raise the level.
func (g *Game) OnPlatformLanded() {
	if g.status != StatusStarted {
		return
	}
	g.streak++
	g.subscore += g.cfg.Scoring.LandingPoints * (g.level + 1)
	g.emit(core.EventLanded, 0.8+0.2*float64(g.streak))

	if g.streak >= g.cfg.Scoring.StreakLength {
		g.setInverted(!g.inverted, true)
		g.streak = 0
		g.setLevel(g.level + 1)
	}
	g.hud.SetProgress(g.Progress())
}

// OnPlatformMissed resets the streak, flips gravity and drops a level.
// Missing at level 0 starts the game-over sequence.
func (g *Game) OnPlatformMissed() {
	if g.status != StatusStarted || g.player.IsExploded() {
		return
	}
	g.streak = 0
	g.hud.SetProgress(0)
	g.setInverted(!g.inverted, false)
	g.emit(core.EventMissed, 1)

	if g.level > 0 {
		g.setLevel(g.level - 1)
		return
	}
	g.player.Explode()
}

func (g *Game) setInverted(inverted, isLevelUp bool) {
	g.inverted = inverted
	g.player.SetInverted(inverted, isLevelUp)
}

// setLevel changes the level. Going up ratchets the difficulty; any change
// banks the subscore.
func (g *Game) setLevel(level int) {
	level = max(level, 0)
	g.maxLevel = max(g.maxLevel, level)
	if level == g.level {
		return
	}

	prev := g.level
	g.level = level
	g.score += g.subscore
	g.subscore = 0

	if level > prev {
		g.difficulty.Raise(level - prev)
		g.player.SetMaxVelBonus(g.difficulty.Value())
		g.emit(core.EventLevelUp, math.Pow(2, float64(prev)/9))
		return
	}
	g.emit(core.EventLevelDown, 1)
}

func (g *Game) gameOver() {
	if g.status != StatusStarted {
		return
	}
	g.status = StatusFinished
	g.score += g.subscore
	g.subscore = 0
	g.emit(core.EventGameOver, 1)
}

// State returns the current game state. Level is the highest level reached.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.maxLevel,
		GameOver: g.status == StatusFinished,
		Paused:   g.paused,
	}
}

func (g *Game) Level() int       { return g.level }
func (g *Game) MaxLevel() int    { return g.maxLevel }
func (g *Game) Streak() int      { return g.streak }
func (g *Game) Score() int       { return g.score }
func (g *Game) Subscore() int    { return g.subscore }
func (g *Game) Inverted() bool   { return g.inverted }
func (g *Game) Status() Status   { return g.status }
func (g *Game) Difficulty() int  { return g.difficulty.Value() }
func (g *Game) CameraX() float64 { return g.cameraX }
func (g *Game) Ticks() uint64    { return g.tick }

func (g *Game) Surface() *HeightField         { return g.surface }
func (g *Game) Platforms() *PlatformGenerator { return g.platforms }
func (g *Game) Player() *Player               { return g.player }
func (g *Game) HUD() *HUD                     { return g.hud }
func (g *Game) Config() config.SurfjumpConfig { return g.cfg }

// Progress is the streak as a fraction of the landings needed for the next level.
func (g *Game) Progress() float64 {
	need := g.cfg.Scoring.StreakLength - 1
	if need <= 0 {
		return 0
	}
	return core.Clamp01(float64(g.streak) / float64(need))
}

// LevelColor returns the palette color for a level.
func (g *Game) LevelColor(level int) core.Color {
	return core.LevelColor(level)
}

// CurrentLevelColor returns the palette color of the current level.
func (g *Game) CurrentLevelColor() core.Color {
	return core.LevelColor(g.level)
}

// Register the variants with the registry
func init() {
	registry.Register(registry.GameInfo{
		ID:          IDForgiving,
		Title:       "Surf Jump",
		Description: "Land five platforms in a row to power up. Forgiving landings.",
	}, func() registry.Game {
		return New()
	})
	registry.Register(registry.GameInfo{
		ID:          IDStrict,
		Title:       "Surf Jump (strict)",
		Description: "Same waves, no landing tolerance.",
	}, func() registry.Game {
		return NewStrict()
	})
}
