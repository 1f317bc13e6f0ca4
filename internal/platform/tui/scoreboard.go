package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/surfjump/internal/core"
	"github.com/vovakirdan/surfjump/internal/registry"
	"github.com/vovakirdan/surfjump/internal/storage"
)

const (
	boardRuns     = 50 // runs loaded per view
	statsMinWidth = 84 // narrower terminals stack the stats under the runs
)

// boardMode selects which runs the scoreboard lists.
type boardMode int

const (
	boardBest boardMode = iota
	boardRecent
)

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.LevelPalette[4]))
	boardTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("24")).Padding(0, 1)
	boardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll      key.Binding // help only; the table handles scrolling
	NextVariant key.Binding
	PrevVariant key.Binding
	Mode        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.NextVariant, k.Mode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Scroll, k.NextVariant, k.PrevVariant},
		{k.Mode, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll:      key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		NextVariant: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("→/tab", "variant")),
		PrevVariant: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev variant")),
		Mode:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "best/recent")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the recorded runs of one variant at a time, either
// the best ones or the latest, next to the variant's totals.
type ScoreboardModel struct {
	store    *storage.Store
	variants []registry.GameInfo
	variant  int
	mode     boardMode
	tickRate int

	runs  []storage.Run
	stats *storage.GameStats
	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard sized to cfg. store may be nil.
func NewScoreboardModel(store *storage.Store, cfg core.RuntimeConfig) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		tickRate: cfg.TickRate,
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
	}
	m.reload()
	return m
}

// Variant returns the ID of the variant on display.
func (m ScoreboardModel) Variant() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.variant].ID
}

// Runs returns the runs on display.
func (m ScoreboardModel) Runs() []storage.Run { return m.runs }

// reload fetches runs and stats for the current variant and mode.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	if id := m.Variant(); m.store != nil && id != "" {
		var (
			runs []storage.Run
			err  error
		)
		if m.mode == boardRecent {
			runs, err = m.store.RecentRuns(boardRuns)
			runs = slices.DeleteFunc(runs, func(r storage.Run) bool { return r.GameID != id })
		} else {
			runs, err = m.store.TopRuns(id, boardRuns)
		}
		if err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}
	m.table = m.newTable()
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 9},
		{Title: "Pwr", Width: 4},
		{Title: "Diff", Width: 4},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 12},
	}
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.MaxLevel),
			strconv.Itoa(r.Difficulty),
			playTime(r.Ticks, m.tickRate),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("24"))
	t.SetStyles(s)
	return t
}

// playTime formats a tick count as minutes and seconds of play.
func playTime(ticks uint64, tickRate int) string {
	if ticks == 0 {
		return "-"
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	secs := int((time.Duration(ticks) * time.Second / time.Duration(tickRate)).Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextVariant):
			m.cycleVariant(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevVariant):
			m.cycleVariant(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mode):
			if m.mode == boardBest {
				m.mode = boardRecent
			} else {
				m.mode = boardBest
			}
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycleVariant(delta int) {
	if n := len(m.variants); n > 0 {
		m.variant = ((m.variant+delta)%n + n) % n
		m.reload()
	}
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "BEST RUNS"
	if m.mode == boardRecent {
		heading = "RECENT RUNS"
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(heading, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.variantTabs(), m.width))
	b.WriteString("\n\n")

	body := boardFrameStyle.Render(m.runsView())
	if stats := m.statsView(); stats != "" {
		if m.width >= statsMinWidth {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", stats)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, body, stats)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) variantTabs() string {
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.variant {
			tabs[i] = boardActiveStyle.Render(v.Title)
		} else {
			tabs[i] = boardTabStyle.Render(v.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) runsView() string {
	if len(m.runs) == 0 {
		return boardDimStyle.Italic(true).Padding(1, 2).
			Render("No runs yet.\nLand a few platforms and come back.")
	}
	return m.table.View()
}

// statsView renders the variant totals, with the best power level drawn
// as a strip of level colors.
func (m ScoreboardModel) statsView() string {
	s := m.stats
	if s == nil {
		return ""
	}

	var strip strings.Builder
	for l := range min(s.BestLevel+1, len(core.LevelPalette)) {
		strip.WriteString(styleFor(core.LevelColor(l)).Render("■"))
	}

	lines := []string{
		fmt.Sprintf("%-11s %d", "Runs", s.GamesCount),
		fmt.Sprintf("%-11s %d", "Best", s.HighScore),
		fmt.Sprintf("%-11s %d %s", "Best power", s.BestLevel, strip.String()),
		fmt.Sprintf("%-11s %.0f", "Average", s.AvgScore),
		fmt.Sprintf("%-11s %s", "Last run", s.LastPlayed.Format("Jan 02 15:04")),
	}
	return boardFrameStyle.Render(strings.Join(lines, "\n"))
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
func RunScoreboard(store *storage.Store, cfg core.RuntimeConfig) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, cfg), tea.WithAltScreen())
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
