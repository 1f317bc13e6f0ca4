package surfjump

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/surfjump/internal/config"
	"github.com/vovakirdan/surfjump/internal/core"
	"github.com/vovakirdan/surfjump/internal/registry"
)

type eventRecorder struct {
	events []core.Event
}

func (r *eventRecorder) OnEvent(ev core.Event) { r.events = append(r.events, ev) }

func (r *eventRecorder) count(kind core.EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestGame(t *testing.T) (*Game, *eventRecorder) {
	t.Helper()
	cfg := config.DefaultSurfjumpConfig()
	cfg.Surface.PerturbChance = 0
	rec := &eventRecorder{}
	g := NewWithConfig(cfg, rec)
	g.Reset(testRuntime(42))
	return g, rec
}

func land(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.OnPlatformLanded()
	}
}

func TestGameReset(t *testing.T) {
	g, _ := newTestGame(t)

	if g.Status() != StatusStarted {
		t.Errorf("Status() = %q, expected started", g.Status())
	}
	if g.Level() != 0 || g.Streak() != 0 || g.Score() != 0 || g.Inverted() {
		t.Error("new run should start at level 0 with no streak or score")
	}
	start := g.Platforms().Platform(0)
	if !start.IsCollided() {
		t.Error("start platform should already be collided")
	}
	if g.Player().Support() != start {
		t.Error("player should stand on the start platform")
	}
	if math.Abs(g.Player().Y()-(start.SurfaceAt(0)+g.Config().Player.StickOffset)) > 1e-12 {
		t.Error("player should rest on the start platform before the first tick")
	}
}

func TestStreakRaisesLevel(t *testing.T) {
	g, rec := newTestGame(t)

	land(g, 4)
	if g.Streak() != 4 || g.Level() != 0 {
		t.Fatalf("after 4 landings: streak=%d level=%d", g.Streak(), g.Level())
	}
	if g.Subscore() != 40 {
		t.Errorf("Subscore() = %d, expected 40", g.Subscore())
	}
	if math.Abs(g.Progress()-1) > 1e-12 {
		t.Errorf("Progress() = %g, expected 1", g.Progress())
	}

	land(g, 1)
	if g.Level() != 1 || g.Streak() != 0 {
		t.Errorf("after 5 landings: level=%d streak=%d, expected 1 and 0", g.Level(), g.Streak())
	}
	if !g.Inverted() || !g.Player().IsInverted() {
		t.Error("level up should flip gravity")
	}
	if g.Player().IsJumping() {
		t.Error("level up should not launch the player")
	}
	if g.Score() != 50 || g.Subscore() != 0 {
		t.Errorf("score=%d subscore=%d, expected level up to bank 50", g.Score(), g.Subscore())
	}
	if n := rec.count(core.EventLevelUp); n != 1 {
		t.Errorf("got %d levelUp events, expected 1", n)
	}
	if n := rec.count(core.EventLanded); n != 5 {
		t.Errorf("got %d landed events, expected 5", n)
	}
	if g.Difficulty() != 1 {
		t.Errorf("Difficulty() = %d, expected 1", g.Difficulty())
	}

	// Landings are worth more at higher levels.
	land(g, 1)
	if g.Subscore() != 20 {
		t.Errorf("Subscore() = %d at level 1, expected 20", g.Subscore())
	}
}

func TestEventRates(t *testing.T) {
	g, rec := newTestGame(t)
	land(g, 10)

	var landed, levelUp []float64
	for _, ev := range rec.events {
		switch ev.Kind {
		case core.EventLanded:
			landed = append(landed, ev.Rate)
		case core.EventLevelUp:
			levelUp = append(levelUp, ev.Rate)
		}
	}
	for i, r := range landed[:5] {
		expected := 0.8 + 0.2*float64(i+1)
		if math.Abs(r-expected) > 1e-12 {
			t.Errorf("landed rate %d = %g, expected %g", i, r, expected)
		}
	}
	if len(levelUp) != 2 {
		t.Fatalf("got %d levelUp events, expected 2", len(levelUp))
	}
	if levelUp[0] != 1 || math.Abs(levelUp[1]-math.Pow(2, 1.0/9)) > 1e-12 {
		t.Errorf("levelUp rates = %v", levelUp)
	}
}

func TestMissDropsLevel(t *testing.T) {
	g, rec := newTestGame(t)
	land(g, 5)
	land(g, 4)

	g.OnPlatformMissed()
	if g.Level() != 0 || g.Streak() != 0 {
		t.Errorf("after miss: level=%d streak=%d, expected 0 and 0", g.Level(), g.Streak())
	}
	if g.Inverted() {
		t.Error("miss should flip gravity back")
	}
	if !g.Player().IsJumping() || g.Player().YVel() != g.Config().Player.BurstVel {
		t.Error("miss should launch the player with the burst velocity")
	}
	if g.Player().IsExploded() {
		t.Error("miss above level 0 should not explode")
	}
	if g.Score() != 50+80 {
		t.Errorf("Score() = %d, expected 130", g.Score())
	}
	if n := rec.count(core.EventLevelUp); n != 1 {
		t.Errorf("got %d levelUp events, expected 1", n)
	}
	if n := rec.count(core.EventLevelDown); n != 1 {
		t.Errorf("got %d levelDown events, expected 1", n)
	}
	if g.HUD().Fill() != 0 {
		t.Error("miss should empty the streak bar")
	}
}

func TestDifficultyNeverDrops(t *testing.T) {
	g, _ := newTestGame(t)
	land(g, 15)
	if g.Level() != 3 || g.Difficulty() != 3 {
		t.Fatalf("level=%d difficulty=%d, expected 3 and 3", g.Level(), g.Difficulty())
	}
	for i := 0; i < 3; i++ {
		g.OnPlatformMissed()
	}
	if g.Level() != 0 {
		t.Fatalf("Level() = %d, expected 0", g.Level())
	}
	if g.Difficulty() != 3 {
		t.Errorf("Difficulty() = %d after losing levels, expected 3", g.Difficulty())
	}
	if g.MaxLevel() != 3 || g.State().Level != 3 {
		t.Errorf("MaxLevel() = %d, expected 3", g.MaxLevel())
	}
	if math.Abs(g.Player().MaxVelBonus()-3*g.Config().Player.MaxVelBonusPerLevel) > 1e-12 {
		t.Errorf("MaxVelBonus() = %g", g.Player().MaxVelBonus())
	}
}

func TestMissAtLevelZeroEndsGame(t *testing.T) {
	g, rec := newTestGame(t)
	land(g, 4)
	g.OnPlatformMissed()

	if !g.Player().IsExploded() {
		t.Fatal("miss at level 0 should explode the player")
	}
	if g.Status() != StatusStarted {
		t.Fatal("game should run until the player leaves the view")
	}

	// A second miss while exploding changes nothing.
	g.OnPlatformMissed()
	if n := rec.count(core.EventMissed); n != 1 {
		t.Errorf("got %d missed events, expected 1", n)
	}

	in := core.NewInputFrame()
	for i := 0; i < 600 && g.Status() != StatusFinished; i++ {
		g.Step(in)
	}
	if g.Status() != StatusFinished || !g.State().GameOver {
		t.Fatal("game never finished")
	}
	if g.Score() != 40 {
		t.Errorf("Score() = %d, expected the subscore to be banked", g.Score())
	}
	if n := rec.count(core.EventGameOver); n != 1 {
		t.Errorf("got %d gameOver events, expected 1", n)
	}

	tick := g.Snapshot().Tick
	res := g.Step(in)
	if len(res.Events) != 0 || g.Snapshot().Tick != tick {
		t.Error("finished game should not advance")
	}
}

func TestWalkingOntoPlatformScores(t *testing.T) {
	g, rec := newTestGame(t)
	g.Step(core.NewInputFrame())
	if g.Platforms().Len() < 2 {
		t.Fatal("expected platforms ahead of the player")
	}
	start := g.Platforms().Platform(0)
	next := g.Platforms().Platform(1)

	g.player.x = next.CenterX()
	res := g.Step(core.NewInputFrame())

	if g.Streak() != 1 {
		t.Errorf("Streak() = %d, expected 1", g.Streak())
	}
	if !next.IsCollided() || !start.IsDead() {
		t.Error("landing should collide the new platform and kill the old one")
	}
	found := false
	for _, ev := range res.Events {
		if ev.Kind == core.EventLanded {
			found = true
		}
	}
	if !found {
		t.Errorf("step events = %v, expected landed", res.Events)
	}

	// Into the gap past the platform.
	g.player.x = next.Right() + g.Platforms().Tolerance() + 0.01
	if _, p := g.Platforms().PlatformAt(g.player.x); p != nil {
		t.Fatalf("x=%g should be open water", g.player.x)
	}
	g.Step(core.NewInputFrame())
	if !next.IsDead() {
		t.Error("leaving a platform should kill it")
	}
	if !g.Player().IsExploded() {
		t.Error("miss at level 0 should explode the player")
	}
	if rec.count(core.EventMissed) != 1 {
		t.Error("expected one missed event")
	}
}

func TestJumpEvents(t *testing.T) {
	g, _ := newTestGame(t)
	in := core.NewInputFrame()
	in.Set(core.ActionJump)

	res := g.Step(in)
	if len(res.Events) == 0 || res.Events[0].Kind != core.EventJump {
		t.Fatalf("events = %v, expected jump", res.Events)
	}

	landed := false
	for i := 0; i < 120 && !landed; i++ {
		for _, ev := range g.Step(core.NewInputFrame()).Events {
			if ev.Kind == core.EventLand {
				landed = true
			}
		}
	}
	if !landed {
		t.Error("expected a land event")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g, _ := newTestGame(t)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		res := g.Step(core.NewInputFrame())
		if !res.State.Paused {
			t.Fatal("State().Paused should be true")
		}
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("paused game changed state")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func scriptedInput(tick int) core.InputFrame {
	in := core.NewInputFrame()
	if tick%90 < 60 {
		in.Set(core.ActionRight)
	}
	if tick%45 == 0 {
		in.Set(core.ActionJump)
	}
	if tick%120 == 30 {
		in.Touch(1, 60, 100)
		in.Touch(1, 60, 20)
	}
	if tick%120 == 31 {
		in.Release(1)
	}
	return in
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		cfg := config.DefaultSurfjumpConfig()
		g := NewWithConfig(cfg, nil)
		g.Reset(testRuntime(1234))
		for i := 0; i < 600; i++ {
			g.Step(scriptedInput(i))
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and input produced different states:\n%+v\n%+v", a, b)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	g, _ := newTestGame(t)
	initial := g.Snapshot()

	for i := 0; i < 200; i++ {
		g.Step(scriptedInput(i))
	}
	land(g, 7)

	g.Reset(testRuntime(42))
	if !reflect.DeepEqual(initial, g.Snapshot()) {
		t.Error("Reset with the same seed should restore the initial state")
	}
}

func TestListenerMatchesStepEvents(t *testing.T) {
	g, rec := newTestGame(t)
	var fromSteps []core.Event
	for i := 0; i < 300; i++ {
		fromSteps = append(fromSteps, g.Step(scriptedInput(i)).Events...)
	}
	if len(fromSteps) == 0 {
		t.Fatal("expected events from scripted play")
	}
	if !reflect.DeepEqual(fromSteps, rec.events) {
		t.Errorf("listener saw %d events, steps returned %d", len(rec.events), len(fromSteps))
	}
}

func TestStrictVariant(t *testing.T) {
	g := NewStrict()
	g.Reset(testRuntime(1))
	if g.Platforms().Tolerance() != 0 {
		t.Errorf("Tolerance() = %g, expected 0", g.Platforms().Tolerance())
	}
	if g.ID() != IDStrict {
		t.Errorf("ID() = %q", g.ID())
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{IDForgiving, IDStrict} {
		g, err := registry.Create(id)
		if err != nil {
			t.Errorf("Create(%q): %v", id, err)
			continue
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestHUDSpring(t *testing.T) {
	g, _ := newTestGame(t)
	land(g, 2)
	if math.Abs(g.HUD().Target()-0.5) > 1e-12 {
		t.Errorf("Target() = %g, expected 0.5", g.HUD().Target())
	}
	for i := 0; i < 300; i++ {
		g.HUD().Update()
	}
	if math.Abs(g.HUD().Fill()-0.5) > 1e-3 {
		t.Errorf("Fill() = %g, expected to settle at 0.5", g.HUD().Fill())
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Step(core.NewInputFrame())
	g.Render(screen)

	out := screen.String()
	if !strings.ContainsRune(out, PlayerChar) {
		t.Error("player not drawn")
	}
	if !strings.ContainsRune(out, SurfaceChar) {
		t.Error("surface not drawn")
	}
	top := strings.Split(out, "\n")[0]
	if !strings.Contains(top, "SCORE 0") || !strings.Contains(top, "PWR 0") {
		t.Errorf("HUD row = %q", top)
	}

	land(g, 4)
	g.OnPlatformMissed()
	for i := 0; i < 600 && g.Status() != StatusFinished; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	out = screen.String()
	for _, want := range []string{"GAME OVER", "MAX PWR 0", "SCORE 40"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestSnapshotTracksPlatforms(t *testing.T) {
	g, _ := newTestGame(t)
	g.Step(core.NewInputFrame())
	s := g.Snapshot()
	if len(s.Platforms) != g.Platforms().Len() {
		t.Errorf("snapshot has %d platforms, expected %d", len(s.Platforms), g.Platforms().Len())
	}
	if len(s.Surface) != g.Surface().Len() {
		t.Errorf("snapshot has %d samples, expected %d", len(s.Surface), g.Surface().Len())
	}
	if s.Tick != 1 {
		t.Errorf("Tick = %d, expected 1", s.Tick)
	}
}

func TestSetPresetOverridesPackagePreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surfjump.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetDifficultyPreset("easy")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})

	g := New()
	g.Reset(testRuntime(1))
	if g.Difficulty() != 0 {
		t.Errorf("easy difficulty = %d, expected 0", g.Difficulty())
	}

	g.SetPreset(config.DifficultyHard)
	g.Reset(testRuntime(1))
	if g.Difficulty() != 2 {
		t.Errorf("hard difficulty = %d, expected 2", g.Difficulty())
	}
	if tol := g.Config().Platforms.CollisionTolerance; tol != 0.0075 {
		t.Errorf("hard tolerance = %v, expected 0.0075", tol)
	}

	strict := NewStrict()
	strict.SetPreset(config.DifficultyEasy)
	strict.Reset(testRuntime(1))
	if tol := strict.Config().Platforms.CollisionTolerance; tol != 0 {
		t.Errorf("strict tolerance = %v, expected 0", tol)
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// jumpReach measures how far a full-speed jump to the right carries the
// player over flat water.
func jumpReach(t *testing.T, g *Game) float64 {
	t.Helper()
	p := NewPlayer(g.Config().Player, 80)
	surf := &flatSurface{}
	p.xVel = p.MaxVel()
	p.Tick(g.dt, surf, openWater{})

	x0 := p.X()
	p.Jump(1)
	for i := 0; p.IsJumping(); i++ {
		if i > 200 {
			t.Fatal("reference jump never landed")
		}
		p.Hold(DirRight)
		p.Tick(g.dt, surf, openWater{})
	}
	return p.X() - x0
}

// takeOff runs a full-speed jump to the right from x until the player is
// back down.
func takeOff(t *testing.T, g *Game, x float64) {
	t.Helper()
	g.player.x = x
	g.player.xVel = g.player.MaxVel()

	g.Step(frame(core.ActionRight, core.ActionJump))
	if !g.Player().IsJumping() {
		t.Fatal("player should be airborne")
	}
	for i := 0; g.Player().IsJumping(); i++ {
		if i > 200 {
			t.Fatal("player never came down")
		}
		g.Step(frame(core.ActionRight))
	}
}

func TestJumpOntoNextPlatform(t *testing.T) {
	g, rec := newTestGame(t)
	g.Step(core.NewInputFrame())
	start := g.Platforms().Platform(0)
	next := g.Platforms().Platform(1)

	x := next.CenterX() - jumpReach(t, g)
	if _, p := g.Platforms().PlatformAt(x); p != start {
		t.Fatalf("take-off x=%g is not on the start platform", x)
	}
	takeOff(t, g, x)

	if g.Player().Support() != next {
		t.Fatalf("player landed at x=%g, expected the next platform [%g, %g]", g.Player().X(), next.Left(), next.Right())
	}
	if g.Streak() != 1 || g.Subscore() != 10 {
		t.Errorf("streak=%d subscore=%d, expected 1 and 10", g.Streak(), g.Subscore())
	}
	if !next.IsCollided() || !start.IsDead() {
		t.Error("landing should collide the new platform and kill the old one")
	}
	if n := rec.count(core.EventLanded); n != 1 {
		t.Errorf("got %d landed events, expected 1", n)
	}
	if n := rec.count(core.EventLand); n != 1 {
		t.Errorf("got %d land events, expected 1", n)
	}
	if rec.count(core.EventMissed) != 0 {
		t.Error("clean landing reported a miss")
	}
}

func TestJumpIntoGap(t *testing.T) {
	g, rec := newTestGame(t)
	g.Step(core.NewInputFrame())
	start := g.Platforms().Platform(0)

	// Push everything past the start platform out of reach.
	for _, p := range g.platforms.platforms[1:] {
		p.centerX += 3
	}
	g.platforms.frontier += 3
	land(g, 2)

	takeOff(t, g, start.Right()-0.05)

	if g.Player().Support() != nil {
		t.Fatalf("player should be in the water, x=%g", g.Player().X())
	}
	if g.Streak() != 0 {
		t.Errorf("Streak() = %d, expected the miss to reset it", g.Streak())
	}
	if !start.IsDead() {
		t.Error("leaving the start platform should kill it")
	}
	if n := rec.count(core.EventMissed); n != 1 {
		t.Errorf("got %d missed events, expected 1", n)
	}
	if !g.Inverted() {
		t.Error("miss should flip gravity")
	}
	if !g.Player().IsExploded() {
		t.Error("miss at level 0 should explode the player")
	}
}

func TestPlayerSticksToTiltedPlatform(t *testing.T) {
	g, _ := newTestGame(t)
	stick := g.Config().Player.StickOffset

	// A steady slope rising to the right.
	h := g.surface
	for i := range h.Len() {
		h.depths[h.slot(i)] = 0.01 * float64(i-h.Len()/2)
		h.velocities[h.slot(i)] = 0
	}
	start := g.Platforms().Platform(0)

	var ys []float64
	for _, x := range []float64{-0.25, 0.25} {
		g.player.x = x
		g.Step(core.NewInputFrame())

		if g.Player().Support() != start || g.Player().IsJumping() {
			t.Fatalf("player at x=%g should stand on the start platform", x)
		}
		if math.Abs(start.Rotation()) < 1e-3 {
			t.Fatalf("Rotation() = %g, expected a tilted platform", start.Rotation())
		}
		dx := x - start.CenterX()
		expected := start.Y() + math.Sin(start.Rotation())*dx + stick
		if math.Abs(g.Player().Y()-expected) > 1e-12 {
			t.Errorf("x=%g: Y() = %g, expected %g", x, g.Player().Y(), expected)
		}
		ys = append(ys, g.Player().Y()-start.Y())
	}
	if ys[1] <= ys[0] {
		t.Errorf("player should sit higher on the raised side: %v", ys)
	}
}

func TestGameOverWhenPlayerLeavesView(t *testing.T) {
	g, _ := newTestGame(t)
	half := g.Config().World.ViewportHeight / 2
	g.OnPlatformMissed()

	lastY := g.Player().Y()
	for i := 0; g.Status() != StatusFinished; i++ {
		if i > 600 {
			t.Fatal("game never finished")
		}
		lastY = g.Player().Y()
		g.Step(core.NewInputFrame())
	}
	if math.Abs(lastY) > half {
		t.Errorf("player was already off screen at y=%g before game over", lastY)
	}
	if math.Abs(g.Player().Y()) <= half {
		t.Errorf("game over at y=%g, inside the view", g.Player().Y())
	}
}
