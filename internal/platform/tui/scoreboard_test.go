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

func init() {
	registry.Register(registry.GameInfo{
		ID:          "stub_alt",
		Title:       "Stub Alt",
		Description: "second test game",
	}, func() registry.Game { return &stubGame{} })
}

func boardStep(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb
}

func boardStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.Run{
		{GameID: "stub", Score: 30, MaxLevel: 0, Ticks: 600},
		{GameID: "stub", Score: 90, MaxLevel: 3, Difficulty: 2, Ticks: 3900},
		{GameID: "stub_alt", Score: 500, MaxLevel: 6},
		{GameID: "stub", Score: 60, MaxLevel: 1, Ticks: 60},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}
	return store
}

func boardConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
}

func scores(runs []storage.Run) []int {
	out := make([]int, len(runs))
	for i, r := range runs {
		out[i] = r.Score
	}
	return out
}

func TestScoreboardBestAndRecent(t *testing.T) {
	m := NewScoreboardModel(boardStore(t), boardConfig())
	if m.Variant() != "stub" {
		t.Fatalf("Variant() = %q, expected stub", m.Variant())
	}
	if got := scores(m.Runs()); len(got) != 3 || got[0] != 90 || got[2] != 30 {
		t.Errorf("best runs = %v, expected [90 60 30]", got)
	}

	view := m.View()
	for _, want := range []string{"BEST RUNS", "Stub Alt", "1:05", "Best power"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = boardStep(t, m, keyMsg("r"))
	if got := scores(m.Runs()); len(got) != 3 || got[0] != 60 || got[2] != 30 {
		t.Errorf("recent runs = %v, expected [60 90 30]", got)
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("recent mode should change the heading")
	}
}

func TestScoreboardSwitchesVariant(t *testing.T) {
	m := NewScoreboardModel(boardStore(t), boardConfig())

	m = boardStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Variant() != "stub_alt" {
		t.Fatalf("Variant() = %q after tab, expected stub_alt", m.Variant())
	}
	if got := scores(m.Runs()); len(got) != 1 || got[0] != 500 {
		t.Errorf("runs = %v, expected [500]", got)
	}

	m = boardStep(t, m, keyMsg("left"))
	if m.Variant() != "stub" {
		t.Errorf("Variant() = %q after left, expected stub", m.Variant())
	}
}

func TestScoreboardEmptyAndBack(t *testing.T) {
	m := NewScoreboardModel(nil, boardConfig())
	if len(m.Runs()) != 0 || !strings.Contains(m.View(), "No runs yet") {
		t.Errorf("empty scoreboard view:\n%s", m.View())
	}

	m = boardStep(t, m, keyMsg("esc"))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back without quitting")
	}

	m = NewScoreboardModel(nil, boardConfig())
	m = boardStep(t, m, keyMsg("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestPlayTime(t *testing.T) {
	tests := []struct {
		ticks uint64
		rate  int
		want  string
	}{
		{0, 60, "-"},
		{60, 60, "0:01"},
		{3900, 60, "1:05"},
		{300, 0, "0:05"},
		{240, 30, "0:08"},
	}
	for _, tt := range tests {
		if got := playTime(tt.ticks, tt.rate); got != tt.want {
			t.Errorf("playTime(%d, %d) = %q, expected %q", tt.ticks, tt.rate, got, tt.want)
		}
	}
}
