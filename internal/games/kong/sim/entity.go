// Package sim implements the platformer simulation: entities, the entity
// manager, physics, collision resolution and enemy behavior.
//
// The package is pure and deterministic. Given the same map rows, seed and
// command sequence it produces the same entity states tick after tick.
package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-kong/internal/core"
)

// Kind identifies the concrete variant of an entity.
type Kind int

const (
	KindCharacter Kind = iota
	KindPlatform
	KindLadder
	KindBarrel
	KindFire
	KindAntagonist
	KindPrincess
	KindCollectible
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindPlatform:
		return "platform"
	case KindLadder:
		return "ladder"
	case KindBarrel:
		return "barrel"
	case KindFire:
		return "fire"
	case KindAntagonist:
		return "antagonist"
	case KindPrincess:
		return "princess"
	case KindCollectible:
		return "collectible"
	default:
		return "unknown"
	}
}

// Entity is the closed set of things that live in a level.
// Only types in this package can implement it.
type Entity interface {
	Kind() Kind
	Bounds() core.Box
	Destroyed() bool

	// Update advances the entity's own motion by dt seconds.
	Update(dt float64)
	// OnCollision responds to an overlap with other during collision resolution.
	OnCollision(other Entity, t *Tick)
	// Movable reports whether physics moves the entity.
	Movable() bool

	entity()
}

// base supplies the default capability set: a fixed box, never destroyed,
// no motion and no collision response.
type base struct {
	box core.Box
}

func (b *base) Bounds() core.Box { return b.box }

func (b *base) Destroyed() bool { return false }

func (b *base) Update(float64) {}

func (b *base) OnCollision(Entity, *Tick) {}

func (b *base) Movable() bool { return false }

func (b *base) entity() {}

// Score is a non-negative point accumulator.
type Score struct {
	value int
}

// Increase adds n points. A negative n is a programming error: it panics
// and leaves the score unchanged.
func (s *Score) Increase(n int) {
	if n < 0 {
		panic(fmt.Sprintf("kong: negative score increment %d", n))
	}
	s.value += n
}

// Value returns the current score.
func (s *Score) Value() int {
	return s.value
}
