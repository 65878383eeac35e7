// Package kong wires the platformer simulation into the arcade platform.
// The Game type drains player commands, advances the simulation one fixed
// tick at a time, and reacts to level completion and game over.
package kong

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-kong/internal/config"
	"github.com/vovakirdan/tui-kong/internal/core"
	"github.com/vovakirdan/tui-kong/internal/games/kong/level"
	"github.com/vovakirdan/tui-kong/internal/games/kong/phase"
	"github.com/vovakirdan/tui-kong/internal/games/kong/sim"
	"github.com/vovakirdan/tui-kong/internal/registry"
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through the level set once
	ModeEndless                  // Cycle through the levels until game over
)

// endlessSpeedStep is the barrel speed increase per completed endless cycle.
const endlessSpeedStep = 0.1

var (
	// configPath stores the custom config path set via CLI
	configPath string
	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset
	// levelSet overrides the built-in levels when set via CLI
	levelSet *level.Set
	// logger receives debug output from games created by New/NewEndless
	logger = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevels replaces the built-in level set for games reset afterwards.
// A nil set restores the built-in levels.
func SetLevels(set *level.Set) {
	levelSet = set
}

// SetLogger sets the logger used by new games. Nil discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Options configures a game directly, bypassing the package-level settings.
// Zero fields fall back to those settings.
type Options struct {
	Mode   GameMode
	Config *config.KongConfig
	Levels *level.Set
	Logger *log.Logger
}

// Result is the outcome of a finished game, handed to the leaderboard.
type Result struct {
	Score     int
	Level     int // highest level reached, counting endless cycles
	Completed bool
	Ticks     int
}

// Game implements the platformer on top of the simulation packages.
type Game struct {
	mode GameMode
	opts Options
	log  *log.Logger

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.KongConfig
	params     sim.Params
	difficulty *config.DifficultyManager

	// Simulation
	manager *sim.Manager
	machine phase.Machine
	queue   *core.CommandQueue

	// Level progression
	levels  *level.Set
	pending *level.Set
	current level.Level
	cycle   int

	// Session state carried between levels
	score sim.Score
	lives int

	tickCount    int
	clockRunning bool
	completed    bool
	exit         bool
	final        *Result
	lastTick     sim.Tick

	tempoSpeed    float64
	tempoInterval float64
}

// New creates a new game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithOptions creates a game configured by opts.
func NewWithOptions(opts Options) *Game {
	return &Game{mode: opts.Mode, opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "kong_endless"
	}
	return "kong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Kong (Endless)"
	}
	return "Kong"
}

// Reset loads configuration and levels and returns to the title menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	g.log = g.opts.Logger
	if g.log == nil {
		g.log = logger
	}

	if g.opts.Config != nil {
		g.cfg = *g.opts.Config
	} else {
		cfg, err := config.LoadKong(configPath)
		if err != nil {
			g.log.Warn("using default config", "err", err)
			cfg = config.DefaultKongConfig()
		}
		if difficultyPreset != "" {
			config.ApplyKongPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	g.params = sim.ParamsFrom(g.cfg)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.levels = g.opts.Levels
	if g.levels == nil {
		g.levels = levelSet
	}
	if g.levels == nil {
		set, err := level.Builtin()
		if err != nil {
			panic(fmt.Sprintf("kong: builtin levels: %v", err))
		}
		g.levels = set
	}
	g.pending = nil

	g.manager = sim.NewManager(g.params, runtime.Seed)
	g.queue = core.NewCommandQueue()
	g.machine.Reset()
	g.resetSession()
}

// resetSession clears everything a finished game leaves behind.
func (g *Game) resetSession() {
	g.score = sim.Score{}
	g.lives = g.params.Lives
	g.current = level.Level{}
	g.cycle = 0
	g.tickCount = 0
	g.clockRunning = false
	g.completed = false
	g.final = nil
	g.lastTick = sim.Tick{}
	g.tempoSpeed, g.tempoInterval = 0, 0
	g.manager.LoadEntities(nil, false)
}

// ReplaceLevels swaps the level set. The new set takes effect at the next
// level change so the level in play is never pulled out from under the player.
func (g *Game) ReplaceLevels(set *level.Set) {
	if set == nil {
		return
	}
	g.pending = set
	g.log.Info("levels reloaded", "count", set.Len())
}

// Commands returns the queue input producers push commands onto.
func (g *Game) Commands() *core.CommandQueue {
	return g.queue
}

// Step queues the frame's actions and runs one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range in.List() {
		g.queue.Push(a)
	}
	g.Advance()
	return core.StepResult{State: g.State()}
}

// Advance runs one tick: commands first, then the simulation if the clock runs.
func (g *Game) Advance() {
	for _, a := range g.queue.Drain() {
		g.command(a)
	}

	if !g.clockRunning || g.machine.Current() != phase.InGame {
		return
	}

	g.tickCount++
	g.applyTempo()
	g.lastTick = g.manager.Advance(g.runtime.TickSeconds())
	for _, e := range g.lastTick.Events {
		g.log.Debug("event", "kind", e.Kind, "points", e.Points)
	}

	ch, ok := g.manager.MainCharacter()
	if ok && ch.Lives <= 0 {
		g.fire(phase.EventLivesExhausted)
		return
	}

	if g.current.Complete(g.manager.Entities()) {
		g.advanceLevel()
	}
}

// command routes one action to the phase machine or the character.
func (g *Game) command(a core.Action) {
	switch a {
	case core.ActionStart:
		g.fire(phase.EventStart)
	case core.ActionConfirm:
		g.fire(phase.EventConfirm)
	case core.ActionPause:
		g.fire(phase.EventPause)
	case core.ActionResume:
		g.fire(phase.EventResume)
	case core.ActionQuit:
		g.fire(phase.EventQuit)
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionJump:
		if g.machine.Current() != phase.InGame {
			return
		}
		if ch, ok := g.manager.MainCharacter(); ok {
			ch.Command(a)
		}
	}
}

// fire feeds an event to the phase machine and applies its effects.
func (g *Game) fire(e phase.Event) {
	from := g.machine.Current()
	effects := g.machine.Fire(e)
	if to := g.machine.Current(); to != from {
		g.log.Debug("phase", "from", from, "to", to, "event", e)
	}
	for _, eff := range effects {
		g.apply(eff)
	}
}

func (g *Game) apply(eff phase.Effect) {
	switch eff {
	case phase.LoadFirstLevel:
		g.resetSession()
		if g.pending != nil {
			g.levels, g.pending = g.pending, nil
		}
		g.loadLevel(g.levels.First())
	case phase.StartClock:
		g.clockRunning = true
	case phase.StopClock:
		g.clockRunning = false
	case phase.LeaderboardEntry:
		g.carry()
		g.final = &Result{
			Score:     g.score.Value(),
			Level:     g.levelNumber(),
			Completed: g.completed,
			Ticks:     g.tickCount,
		}
		g.log.Info("game over", "score", g.final.Score, "level", g.final.Level, "completed", g.completed)
	case phase.ResetSession:
		g.resetSession()
	case phase.Exit:
		g.exit = true
	}
}

// loadLevel replaces the world with lvl and hands the session's lives and
// score to the new character.
func (g *Game) loadLevel(lvl level.Level) {
	g.current = lvl
	g.manager.LoadEntities(lvl.Rows, lvl.CanThrow)
	if ch, ok := g.manager.MainCharacter(); ok {
		ch.Lives = g.lives
		ch.Score = g.score
	}
	g.tempoSpeed, g.tempoInterval = 0, 0
	g.log.Debug("level loaded", "id", lvl.ID, "index", lvl.Index, "goal", lvl.Goal, "cycle", g.cycle)
}

// carry copies the character's lives and score into the session.
func (g *Game) carry() {
	if ch, ok := g.manager.MainCharacter(); ok {
		g.lives = ch.Lives
		g.score = ch.Score
	}
}

// advanceLevel awards the clear bonus and moves to the next level.
func (g *Game) advanceLevel() {
	if ch, ok := g.manager.MainCharacter(); ok {
		ch.Score.Increase(g.cfg.Scoring.LevelClearPoints)
	}
	g.carry()
	g.log.Debug("level complete", "id", g.current.ID, "score", g.score.Value())

	index := g.current.Index
	if g.pending != nil {
		g.levels, g.pending = g.pending, nil
	}

	next, ok := g.levels.Next(index)
	if !ok {
		if g.mode != ModeEndless {
			g.completed = true
			g.fire(phase.EventGameCompleted)
			return
		}
		g.cycle++
		next = g.levels.First()
	}
	g.loadLevel(next)
}

// applyTempo scales enemy speed and throw rate with difficulty.
func (g *Game) applyTempo() {
	score := g.currentScore()
	speed := g.difficulty.Speed(g.cfg.Enemies.BarrelSpeed, score, g.tickCount)
	speed *= 1 + endlessSpeedStep*float64(g.cycle)
	interval := g.difficulty.Interval(g.cfg.Enemies.ThrowInterval, score, g.tickCount)

	if speed == g.tempoSpeed && interval == g.tempoInterval {
		return
	}
	g.tempoSpeed, g.tempoInterval = speed, interval
	g.manager.SetTempo(speed, interval)
}

func (g *Game) currentScore() int {
	if ch, ok := g.manager.MainCharacter(); ok {
		return ch.Score.Value()
	}
	return g.score.Value()
}

func (g *Game) currentLives() int {
	if ch, ok := g.manager.MainCharacter(); ok {
		return ch.Lives
	}
	return g.lives
}

// levelNumber counts levels played across endless cycles.
func (g *Game) levelNumber() int {
	if g.current.Index == 0 {
		return 0
	}
	return g.cycle*g.levels.Len() + g.current.Index
}

// Phase returns the current phase.
func (g *Game) Phase() phase.Phase {
	return g.machine.Current()
}

// Level returns the level in play.
func (g *Game) Level() level.Level {
	return g.current
}

// LastTick returns the outcome of the most recent simulation tick.
func (g *Game) LastTick() sim.Tick {
	return g.lastTick
}

// FinalResult returns the result of the finished game, if there is one.
func (g *Game) FinalResult() (Result, bool) {
	if g.final == nil {
		return Result{}, false
	}
	return *g.final, true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	p := g.machine.Current()
	return core.GameState{
		Score:    g.currentScore(),
		Lives:    g.currentLives(),
		Level:    g.levelNumber(),
		GameOver: p == phase.GameOver,
		Paused:   p == phase.Paused,
		InMenu:   p == phase.Menu,
		Exit:     g.exit,
	}
}

// Register the games with the registry
func init() {
	registry.Register("kong", func() registry.Game {
		return New()
	})
	registry.Register("kong_endless", func() registry.Game {
		return NewEndless()
	})
}
