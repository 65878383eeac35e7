package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-kong/internal/core"
	"github.com/vovakirdan/tui-kong/internal/games/kong"
	"github.com/vovakirdan/tui-kong/internal/games/kong/level"
	"github.com/vovakirdan/tui-kong/internal/storage"
)

var testConfig = core.RuntimeConfig{
	ScreenW:  40,
	ScreenH:  12,
	TickRate: 60,
	Seed:     1,
}

// scriptedGame reports whatever state the test sets and records input.
type scriptedGame struct {
	state  core.GameState
	result kong.Result
	frames []core.InputFrame
	resets int
	levels *level.Set
}

func (g *scriptedGame) ID() string { return "kong" }
func (g *scriptedGame) Title() string { return "Kong" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *scriptedGame) State() core.GameState { return g.state }
func (g *scriptedGame) ReplaceLevels(s *level.Set) { g.levels = s }
func (g *scriptedGame) FinalResult() (kong.Result, bool) {
	return g.result, g.state.GameOver
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	return core.StepResult{State: g.state}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

func TestModelKeysReachGame(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, nil, testConfig)
	m.Init()

	if game.resets != 1 {
		t.Errorf("Init() resets = %d, expected 1", game.resets)
	}

	m = update(t, m, runeKey("d"))
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))

	if len(game.frames) != 2 {
		t.Fatalf("Step() calls = %d, expected 2", len(game.frames))
	}
	if !game.frames[0].Has(core.ActionRight) {
		t.Error("first frame should carry ActionRight")
	}
	if game.frames[1].Has(core.ActionRight) {
		t.Error("frame should be cleared after a tick")
	}
}

func TestModelKeysReachCommandQueue(t *testing.T) {
	game := kong.New()
	m := NewModel(game, nil, testConfig)
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if game.Commands().Len() != 1 {
		t.Fatalf("queue length = %d, expected 1", game.Commands().Len())
	}

	update(t, m, TickMsg(time.Now()))
	if game.Commands().Len() != 0 {
		t.Error("queue should be drained by the tick")
	}
	if game.State().InMenu {
		t.Error("confirm should have started the game")
	}
}

func TestModelSavesScoreAfterPrompt(t *testing.T) {
	store := openTestStore(t)
	game := &scriptedGame{}
	m := NewModel(game, store, testConfig).WithPlayerName("mario")
	m.Init()

	game.state = core.GameState{Score: 1200, Level: 2, GameOver: true}
	game.result = kong.Result{Score: 1200, Level: 2, Ticks: 600}

	m = update(t, m, TickMsg(time.Now()))
	if !m.entering {
		t.Fatal("game over with a score should open the name prompt")
	}
	if !strings.Contains(m.View(), "mario") {
		t.Error("prompt should suggest the player name")
	}

	// Keys go to the prompt, not the game.
	m = update(t, m, runeKey("x"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.entering {
		t.Error("enter should close the prompt")
	}

	entries, err := store.TopEntries("kong", 10)
	if err != nil {
		t.Fatalf("TopEntries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, expected 1", len(entries))
	}
	e := entries[0]
	if e.Name != "mario" || e.Score != 1200 || e.Level != 2 || e.Ticks != 600 {
		t.Errorf("saved entry = %+v", e)
	}
	if !strings.Contains(m.status, "#1") {
		t.Errorf("status = %q, expected the rank", m.status)
	}

	// A second tick in the same game over does not prompt again.
	m = update(t, m, TickMsg(time.Now()))
	if m.entering {
		t.Error("prompt should open once per game over")
	}
}

func TestModelSkipsPromptWithoutScore(t *testing.T) {
	store := openTestStore(t)
	game := &scriptedGame{state: core.GameState{GameOver: true}}
	m := NewModel(game, store, testConfig)
	m.Init()

	m = update(t, m, TickMsg(time.Now()))
	if m.entering {
		t.Error("zero score should not prompt")
	}
}

func TestModelEscSkipsSave(t *testing.T) {
	store := openTestStore(t)
	game := &scriptedGame{}
	m := NewModel(game, store, testConfig)
	m.Init()

	game.state = core.GameState{Score: 50, GameOver: true}
	game.result = kong.Result{Score: 50, Level: 1}

	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.entering {
		t.Error("esc should close the prompt")
	}
	entries, err := store.TopEntries("kong", 10)
	if err != nil {
		t.Fatalf("TopEntries() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, expected 0", len(entries))
	}
}

func TestModelExit(t *testing.T) {
	game := &scriptedGame{state: core.GameState{Exit: true}}

	standalone := update(t, NewModel(game, nil, testConfig), TickMsg(time.Now()))
	if !standalone.Exited() || !standalone.IsQuitting() {
		t.Error("standalone model should quit when the game exits")
	}

	embedded := update(t, NewModel(game, nil, testConfig).asEmbedded(), TickMsg(time.Now()))
	if !embedded.Exited() {
		t.Error("embedded model should report the exit")
	}
	if embedded.IsQuitting() {
		t.Error("embedded model should leave quitting to its session")
	}
}

func TestModelCtrlCQuits(t *testing.T) {
	m := update(t, NewModel(&scriptedGame{}, nil, testConfig), tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelReloadsLevels(t *testing.T) {
	dir := t.TempDir()
	data := "id: solo\nname: Solo\nrows:\n  - \"@P  \"\n  - \"====\"\n"
	if err := os.WriteFile(filepath.Join(dir, "solo.yaml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	game := &scriptedGame{}
	m := NewModel(game, nil, testConfig).WithLevelWatch(nil, level.NewLoader(dir))
	m = update(t, m, LevelsChangedMsg{Path: filepath.Join(dir, "solo.yaml")})

	if game.levels == nil || game.levels.Len() != 1 {
		t.Fatal("changed levels should be handed to the game")
	}
	if !strings.Contains(m.status, "reloaded") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelKeepsLevelsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: bad\nrows: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	game := &scriptedGame{}
	m := NewModel(game, nil, testConfig).WithLevelWatch(nil, level.NewLoader(dir))
	m = update(t, m, LevelsChangedMsg{Path: filepath.Join(dir, "bad.yaml")})

	if game.levels != nil {
		t.Error("invalid level files should not replace the levels")
	}
	if !strings.Contains(m.status, "bad.yaml") {
		t.Errorf("status = %q, expected the file name", m.status)
	}
}

func TestModelResize(t *testing.T) {
	m := update(t, NewModel(&scriptedGame{}, nil, testConfig), tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}
