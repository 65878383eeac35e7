package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-kong/internal/core"
	"github.com/vovakirdan/tui-kong/internal/games/kong"
	"github.com/vovakirdan/tui-kong/internal/games/kong/level"
	"github.com/vovakirdan/tui-kong/internal/registry"
	"github.com/vovakirdan/tui-kong/internal/storage"
)

// statusTTL is how long a status message stays on the bottom row.
const statusTTL = 3 * time.Second

// commander is a game that accepts commands from any goroutine.
type commander interface {
	Commands() *core.CommandQueue
}

// resulter is a game that reports the outcome of a finished run.
type resulter interface {
	FinalResult() (kong.Result, bool)
}

// levelReloader is a game whose level set can be swapped while running.
type levelReloader interface {
	ReplaceLevels(set *level.Set)
}

// LevelsChangedMsg reports that a watched level file changed.
type LevelsChangedMsg struct {
	Path string
}

type levelWatchErrMsg struct {
	err error
}

var promptStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	nameInput  textinput.Model
	playerName string
	entering   bool
	handled    bool // game over already processed
	pending    kong.Result

	watcher *level.Watcher
	loader  *level.Loader

	status      string
	statusUntil time.Time

	embedded bool // run inside a session; exiting returns to its menu
	exited   bool
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = storage.MaxNameLength
	ti.Width = storage.MaxNameLength + 1
	ti.Prompt = "Name: "

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		nameInput:  ti,
		playerName: os.Getenv("USER"),
	}
}

// WithPlayerName sets the name suggested on the leaderboard prompt.
func (m Model) WithPlayerName(name string) Model {
	m.playerName = name
	return m
}

// WithLevelWatch reloads levels through loader whenever w reports a change.
func (m Model) WithLevelWatch(w *level.Watcher, loader *level.Loader) Model {
	m.watcher = w
	m.loader = loader
	return m
}

func (m Model) asEmbedded() Model {
	m.embedded = true
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), m.waitForLevels())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case LevelsChangedMsg:
		return m.handleLevelsChanged(msg)

	case levelWatchErrMsg:
		m.setStatus("level watch: " + msg.err.Error())
		return m, m.waitForLevels()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.entering {
		return m.handleNameKey(msg)
	}

	action, _ := m.keyMapper.MapKey(msg)
	if action == core.ActionNone {
		return m, nil
	}
	if c, ok := m.game.(commander); ok {
		c.Commands().Push(action)
	} else {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleNameKey feeds the leaderboard prompt.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.entering = false
		m.nameInput.Blur()
		m.saveEntry(m.nameInput.Value())
		return m, nil
	case tea.KeyEsc:
		m.entering = false
		m.nameInput.Blur()
		m.setStatus("score not saved")
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame = core.NewInputFrame()
	m.gameState = result.State

	if m.gameState.Exit {
		m.exited = true
		if !m.embedded {
			m.quitting = true
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch {
	case m.gameState.GameOver && !m.handled:
		m.handled = true
		cmd = m.promptForName()
	case !m.gameState.GameOver:
		m.handled = false
		m.entering = false
	}

	return m, tea.Batch(tickCmd(m.config.TickRate), cmd)
}

// promptForName opens the name prompt when the finished run can be saved.
func (m *Model) promptForName() tea.Cmd {
	if m.store == nil {
		return nil
	}
	res, ok := m.finalResult()
	if !ok || res.Score <= 0 {
		return nil
	}
	m.pending = res
	m.entering = true
	m.nameInput.SetValue(m.playerName)
	m.nameInput.CursorEnd()
	return tea.Batch(m.nameInput.Focus(), textinput.Blink)
}

func (m Model) finalResult() (kong.Result, bool) {
	if r, ok := m.game.(resulter); ok {
		return r.FinalResult()
	}
	if !m.gameState.GameOver {
		return kong.Result{}, false
	}
	return kong.Result{Score: m.gameState.Score, Level: m.gameState.Level}, true
}

// saveEntry records the pending result under name.
func (m *Model) saveEntry(name string) {
	if m.store == nil {
		return
	}
	e, err := m.store.SaveEntry(storage.Entry{
		GameID:    m.game.ID(),
		Name:      name,
		Score:     m.pending.Score,
		Level:     m.pending.Level,
		Completed: m.pending.Completed,
		Ticks:     m.pending.Ticks,
	})
	if err != nil {
		m.setStatus("could not save score: " + err.Error())
		return
	}
	m.playerName = e.Name

	rank, err := m.store.Rank(e.GameID, e.RunID)
	if err != nil {
		m.setStatus(fmt.Sprintf("saved %s: %d", e.Name, e.Score))
		return
	}
	m.setStatus(fmt.Sprintf("saved %s: %d (#%d)", e.Name, e.Score, rank))
}

// waitForLevels blocks on the level watcher and reports the next change.
func (m Model) waitForLevels() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return LevelsChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return levelWatchErrMsg{err: err}
		}
	}
}

// handleLevelsChanged reloads the level directory and hands it to the game.
func (m Model) handleLevelsChanged(msg LevelsChangedMsg) (tea.Model, tea.Cmd) {
	if m.loader == nil {
		return m, m.waitForLevels()
	}
	set, err := m.loader.LoadSet()
	if err != nil {
		m.setStatus(fmt.Sprintf("%s: %v", filepath.Base(msg.Path), err))
		return m, m.waitForLevels()
	}
	if r, ok := m.game.(levelReloader); ok {
		r.ReplaceLevels(set)
		m.setStatus(fmt.Sprintf("levels reloaded (%d)", set.Len()))
	}
	return m, m.waitForLevels()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(statusTTL)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".kong", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
	m.setStatus("screenshot saved to " + path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.exited {
		return ""
	}

	m.game.Render(m.screen)
	last := m.screen.Height() - 1
	if m.status != "" && time.Now().Before(m.statusUntil) && !m.entering {
		m.screen.DrawTextColored(1, last, m.status, core.ColorGray)
	}

	lines := renderLines(m.screen)
	if m.entering && last >= 0 {
		lines[last] = promptStyle.Render(" Game over! " + m.nameInput.View() + "  enter: save  esc: skip ")
	}
	return strings.Join(lines, "\n")
}

// Exited reports whether the game asked to leave.
func (m Model) Exited() bool {
	return m.exited
}

// IsQuitting returns true if the user asked to quit the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given model.
func Run(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
