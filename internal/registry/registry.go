// Package registry maps game mode IDs to factories. Game packages register
// themselves in init(), so the CLI and the SSH server can create a game by
// name without importing its internals.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-kong/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered mode.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what the terminal platform drives. Implementations hold no
// terminal state: the platform maps keys to actions, owns the clock, and
// turns the screen buffer into output.
type Game interface {
	// ID returns the mode identifier, used on the command line and as the
	// leaderboard key (e.g. "kong", "kong_endless").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset loads configuration and returns the game to its title menu.
	Reset(cfg core.RuntimeConfig)

	// Step applies the frame's actions and advances one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the status the platform reacts to.
	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info GameInfo
	make Factory
}

var (
	mu    sync.RWMutex
	modes = map[string]entry{}
)

// Register adds a factory under id. The title is read from one instance.
// Registering an empty or taken id is a programming error and panics.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: empty id or nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, taken := modes[id]; taken {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	modes[id] = entry{info: GameInfo{ID: id, Title: f().Title()}, make: f}
}

// List returns the registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(modes))
	for _, e := range modes {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create instantiates the mode registered under id. Unknown ids wrap
// ErrUnknownGame.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.make(), nil
}
