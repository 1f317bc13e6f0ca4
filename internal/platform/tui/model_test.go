package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/surfjump/internal/core"
	"github.com/vovakirdan/surfjump/internal/registry"
	"github.com/vovakirdan/surfjump/internal/storage"
)

// stubGame records the input it receives and ends after a fixed number of ticks.
type stubGame struct {
	inputs  []core.InputFrame
	resets  int
	endAt   int
	score   int
	ticks   uint64
	paused  bool
	lastCfg core.RuntimeConfig
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.lastCfg = cfg
	g.inputs = nil
	g.ticks = 0
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	g.inputs = append(g.inputs, in.Clone())
	g.ticks++
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    2,
		GameOver: g.endAt > 0 && int(g.ticks) >= g.endAt,
		Paused:   g.paused,
	}
}

func (g *stubGame) Difficulty() int { return 3 }
func (g *stubGame) Ticks() uint64   { return g.ticks }

var _ registry.Game = (*stubGame)(nil)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 9}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelHeldKeyLastsSeveralTicks(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())

	m = step(t, m, keyMsg("left"))
	for range holdTicks + 2 {
		m = step(t, m, TickMsg{})
	}

	held := 0
	for _, in := range g.inputs {
		if in.Has(core.ActionLeft) {
			held++
		}
	}
	if held != holdTicks {
		t.Errorf("left held for %d ticks, expected %d", held, holdTicks)
	}
}

func TestModelOppositeKeyReleases(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())

	m = step(t, m, keyMsg("a"))
	m = step(t, m, keyMsg("d"))
	m = step(t, m, TickMsg{})

	in := g.inputs[0]
	if in.Has(core.ActionLeft) || !in.Has(core.ActionRight) {
		t.Errorf("actions = %v, expected only right", in.Actions)
	}
}

func TestModelJumpIsOneShot(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())

	m = step(t, m, keyMsg(" "))
	m = step(t, m, TickMsg{})
	m = step(t, m, TickMsg{})

	if !g.inputs[0].Has(core.ActionJump) || g.inputs[1].Has(core.ActionJump) {
		t.Error("jump should reach exactly one tick")
	}
}

func TestModelMouseBecomesTouch(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())

	m = step(t, m, tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = step(t, m, tea.MouseMsg{X: 3, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	m = step(t, m, tea.MouseMsg{X: 3, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	m = step(t, m, TickMsg{})

	in := g.inputs[0]
	if len(in.Touches) != 2 || in.Touches[1].Y != rowUnits {
		t.Errorf("touches = %+v", in.Touches)
	}
	if len(in.Released) != 1 || in.Released[0] != mouseTouchID {
		t.Errorf("released = %v", in.Released)
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	g := &stubGame{endAt: 3, score: 70}
	m := NewModel(g, store, testConfig())
	for range 6 {
		m = step(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("game should be over")
	}

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.Score != 70 || r.MaxLevel != 2 || r.Difficulty != 3 || r.Seed != 9 {
		t.Errorf("run = %+v", r)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &stubGame{endAt: 1}
	m := NewModel(g, nil, testConfig())
	m = step(t, m, TickMsg{})

	m = step(t, m, keyMsg("r"))
	m = step(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("resets = %d, expected 2", g.resets)
	}
	if g.lastCfg.Seed == 9 {
		t.Error("restart should pick a new seed")
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &stubGame{endAt: 1}
	m := NewModel(g, nil, testConfig(), WithBackToMenu())

	m = step(t, m, keyMsg("esc"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}
	m = step(t, m, TickMsg{})
	m = step(t, m, keyMsg("esc"))
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("back at game over should return to the menu")
	}
}

func TestModelFrameHook(t *testing.T) {
	g := &stubGame{}
	calls := 0
	m := NewModel(g, nil, testConfig(), WithFrameHook(func(registry.Game) { calls++ }))
	for range 3 {
		m = step(t, m, TickMsg{})
	}
	if calls != 3 {
		t.Errorf("hook called %d times, expected 3", calls)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig())
	if !strings.Contains(m.View(), "stub") {
		t.Errorf("view = %q", m.View())
	}
}

func TestRenderScreenLevelColors(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetColored(0, 0, 'a', core.LevelColor(0))
	s.SetColored(1, 0, 'b', core.LevelColor(0))
	s.SetColored(2, 0, 'c', core.ColorGray)

	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "c") {
		t.Errorf("RenderScreen = %q", out)
	}
	if _, ok := colorStyles[core.LevelColor(len(core.LevelPalette)-1)]; !ok {
		t.Error("level palette missing from styles")
	}
}
