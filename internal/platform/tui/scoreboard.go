package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-kong/internal/registry"
	"github.com/vovakirdan/tui-kong/internal/storage"
)

const (
	maxEntries     = 100 // rows loaded per mode
	minWideColumns = 60  // table width that still fits the date column
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	modeTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = modeTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	summaryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the leaderboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Mine     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Mine, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Mine, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Mine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "my best"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardSummary aggregates the loaded rows of one mode.
type boardSummary struct {
	runs      int
	best      int
	cleared   int
	bestLevel int
}

func summarize(entries []storage.Entry) boardSummary {
	var s boardSummary
	s.runs = len(entries)
	for _, e := range entries {
		s.best = max(s.best, e.Score)
		s.bestLevel = max(s.bestLevel, e.Level)
		if e.Completed {
			s.cleared++
		}
	}
	return s
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
// Each game mode has its own board.
type ScoreboardModel struct {
	modes   []registry.GameInfo
	mode    int
	store   *storage.Store
	player  string
	entries []storage.Entry
	summary boardSummary

	table table.Model
	keys  ScoreboardKeyMap
	help  help.Model

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a leaderboard showing the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

// WithPlayer names the player whose best run the board jumps to.
func (m ScoreboardModel) WithPlayer(name string) ScoreboardModel {
	m.player = storage.NormalizeName(name)
	m.jumpToPlayer()
	return m
}

// newTable builds the table for the current width.
func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: storage.MaxNameLength},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
	}
	if m.width-6 >= minWideColumns {
		columns = append(columns, table.Column{Title: "Date", Width: 12})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the current mode's board from the store.
func (m *ScoreboardModel) load() {
	m.entries = nil
	if m.store != nil && len(m.modes) > 0 {
		if entries, err := m.store.TopEntries(m.modes[m.mode].ID, maxEntries); err == nil {
			m.entries = entries
		}
	}
	m.summary = summarize(m.entries)
	m.fillRows()
	m.jumpToPlayer()
}

func (m *ScoreboardModel) fillRows() {
	withDate := len(m.table.Columns()) > 4
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		lvl := strconv.Itoa(e.Level)
		if e.Completed {
			lvl += "*"
		}
		row := table.Row{strconv.Itoa(i + 1), e.Name, strconv.Itoa(e.Score), lvl}
		if withDate {
			row = append(row, e.CreatedAt.Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// jumpToPlayer selects the player's best row, which is their first one.
func (m *ScoreboardModel) jumpToPlayer() {
	if m.player == "" {
		return
	}
	for i, e := range m.entries {
		if e.Name == m.player {
			m.table.SetCursor(i)
			return
		}
	}
}

func (m *ScoreboardModel) switchMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + delta + len(m.modes)) % len(m.modes)
	m.load()
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
		case key.Matches(msg, m.keys.NextMode):
			m.switchMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.switchMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mine):
			m.jumpToPlayer()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		m.jumpToPlayer()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("LEADERBOARD"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderSummary(), m.width))
	b.WriteString("\n")

	body := emptyStyle.Render("No runs recorded yet.\nRescue the princess to get on the board!")
	if len(m.entries) > 0 {
		body = m.table.View()
	}
	for _, line := range strings.Split(boardFrameStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = modeTabStyle.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderSummary() string {
	s := m.summary
	if s.runs == 0 {
		return ""
	}
	line := fmt.Sprintf("best %d  |  top level %d  |  %d runs", s.best, s.bestLevel, s.runs)
	if s.cleared > 0 {
		line += fmt.Sprintf("  |  %d cleared (*)", s.cleared)
	}
	return summaryStyle.Render(line)
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the leaderboard as its own program.
// goBack is false when the user quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
