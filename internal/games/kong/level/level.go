// Package level provides level definitions, advance predicates and level
// loading for the kong game. It depends on sim but sim does not depend on it.
package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-kong/internal/games/kong/sim"
)

// Predicate decides from the current entity list whether a level is complete.
type Predicate func(entities []sim.Entity) bool

// Goal names a level's advance predicate.
type Goal string

const (
	GoalRescue   Goal = "rescue"
	GoalBreakAll Goal = "break_all"
)

// RescuePredicate is true iff some princess in the list has been rescued.
func RescuePredicate(entities []sim.Entity) bool {
	for _, e := range entities {
		if p, ok := e.(*sim.Princess); ok && p.Rescued() {
			return true
		}
	}
	return false
}

// BreakAllPredicate is true iff no breakable platform in the list is intact.
// It is vacuously true when there are no breakable platforms.
func BreakAllPredicate(entities []sim.Entity) bool {
	for _, e := range entities {
		if p, ok := e.(*sim.Platform); ok && p.Breakable() && !p.Broken() {
			return false
		}
	}
	return true
}

// Predicate returns the advance predicate for the goal.
func (g Goal) Predicate() (Predicate, error) {
	switch g {
	case GoalRescue:
		return RescuePredicate, nil
	case GoalBreakAll:
		return BreakAllPredicate, nil
	default:
		return nil, fmt.Errorf("level: unknown goal %q", string(g))
	}
}

// DefaultGoal is the goal of the level at the given 1-based index when its
// file does not name one: the first level is won by a rescue, later ones by
// breaking every breakable platform.
func DefaultGoal(index int) Goal {
	if index <= 1 {
		return GoalRescue
	}
	return GoalBreakAll
}

// Level is one map and the rule that completes it.
type Level struct {
	ID       string
	Name     string
	Index    int // 1-based position in its set
	Rows     []string
	CanThrow bool
	Goal     Goal
	FilePath string

	advance Predicate
}

// Complete evaluates the level's advance predicate.
func (l Level) Complete(entities []sim.Entity) bool {
	if l.advance == nil {
		p, err := l.goal().Predicate()
		if err != nil {
			return false
		}
		return p(entities)
	}
	return l.advance(entities)
}

func (l Level) goal() Goal {
	if l.Goal == "" {
		return DefaultGoal(l.Index)
	}
	return l.Goal
}

// ErrEmptySet is returned when a level set has no levels.
var ErrEmptySet = errors.New("level: no levels")

// Set is an ordered, immutable sequence of levels.
type Set struct {
	levels []Level
}

// NewSet numbers the levels in order and binds their predicates.
func NewSet(levels []Level) (*Set, error) {
	if len(levels) == 0 {
		return nil, ErrEmptySet
	}
	out := make([]Level, len(levels))
	for i, l := range levels {
		l.Index = i + 1
		l.Goal = l.goal()
		if err := Validate(l); err != nil {
			return nil, fmt.Errorf("level %s: %w", l.ID, err)
		}
		l.advance, _ = l.Goal.Predicate()
		out[i] = l
	}
	return &Set{levels: out}, nil
}

// Len returns the number of levels.
func (s *Set) Len() int {
	return len(s.levels)
}

// First returns the first level.
func (s *Set) First() Level {
	return s.levels[0]
}

// Next returns the level after the one with the given index, or false when
// the set is exhausted.
func (s *Set) Next(index int) (Level, bool) {
	if index < 0 || index >= len(s.levels) {
		return Level{}, false
	}
	return s.levels[index], true
}

// Levels returns a copy of the levels in order.
func (s *Set) Levels() []Level {
	out := make([]Level, len(s.levels))
	copy(out, s.levels)
	return out
}
