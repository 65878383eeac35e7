package sim

import (
	"testing"

	"github.com/vovakirdan/tui-kong/internal/core"
)

const dt = 1.0 / 60.0

func newTestManager(t *testing.T, rows []string, canThrow bool, tweak func(*Params)) *Manager {
	t.Helper()
	p := DefaultParams()
	if tweak != nil {
		tweak(&p)
	}
	m := NewManager(p, 42)
	m.LoadEntities(rows, canThrow)
	return m
}

// advance runs n ticks, issuing cmds to the character before each one.
func advance(m *Manager, n int, cmds ...core.Action) []Tick {
	ticks := make([]Tick, 0, n)
	for i := 0; i < n; i++ {
		if ch, ok := m.MainCharacter(); ok {
			for _, a := range cmds {
				ch.Command(a)
			}
		}
		ticks = append(ticks, m.Advance(dt))
	}
	return ticks
}

func countKind(m *Manager, k Kind) int {
	n := 0
	for _, e := range m.Entities() {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

func countEvents(ticks []Tick, k EventKind) int {
	n := 0
	for _, t := range ticks {
		for _, e := range t.Events {
			if e.Kind == k {
				n++
			}
		}
	}
	return n
}

func mustCharacter(t *testing.T, m *Manager) *Character {
	t.Helper()
	ch, ok := m.MainCharacter()
	if !ok {
		t.Fatal("MainCharacter() = absent, expected a character")
	}
	return ch
}
