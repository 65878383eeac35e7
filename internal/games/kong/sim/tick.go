package sim

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventCollected EventKind = iota
	EventRescued
	EventSmashed
	EventPlatformBroken
	EventLifeLost
	EventBarrelThrown
	EventBarrelSpent
)

func (k EventKind) String() string {
	switch k {
	case EventCollected:
		return "collected"
	case EventRescued:
		return "rescued"
	case EventSmashed:
		return "smashed"
	case EventPlatformBroken:
		return "platform_broken"
	case EventLifeLost:
		return "life_lost"
	case EventBarrelThrown:
		return "barrel_thrown"
	case EventBarrelSpent:
		return "barrel_spent"
	default:
		return "unknown"
	}
}

// Event records one outcome of a tick.
type Event struct {
	Kind   EventKind
	Entity Entity
	Points int
}

// Tick is the context shared by the phases of one simulation step.
// Collision handlers mutate entities through it; additions and removals
// are staged on the manager and committed by TransformEntities.
type Tick struct {
	Events   []Event
	LifeLost bool

	m *Manager
}

func (t *Tick) emit(e Event) {
	t.Events = append(t.Events, e)
}

// Has reports whether an event of the given kind happened this tick.
func (t Tick) Has(kind EventKind) bool {
	for _, e := range t.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Points returns the points awarded this tick.
func (t Tick) Points() int {
	total := 0
	for _, e := range t.Events {
		total += e.Points
	}
	return total
}
