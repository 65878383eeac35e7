// Package phase holds the game phase state machine. Transitions are pure:
// side effects are returned as values for the coordinator to perform.
package phase

// Phase is the coarse game mode. Exactly one is active at a time.
type Phase int

const (
	Menu Phase = iota
	InGame
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Menu:
		return "menu"
	case InGame:
		return "in-game"
	case Paused:
		return "paused"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Event drives a transition. Command events come from player input;
// LivesExhausted and GameCompleted come from the simulation.
type Event int

const (
	EventStart Event = iota
	EventPause
	EventResume
	EventQuit
	EventConfirm
	EventLivesExhausted
	EventGameCompleted
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventQuit:
		return "quit"
	case EventConfirm:
		return "confirm"
	case EventLivesExhausted:
		return "lives-exhausted"
	case EventGameCompleted:
		return "game-completed"
	default:
		return "unknown"
	}
}

// Effect is a side effect requested by a transition.
type Effect int

const (
	LoadFirstLevel Effect = iota
	StartClock
	StopClock
	LeaderboardEntry
	ResetSession
	Exit
)

func (e Effect) String() string {
	switch e {
	case LoadFirstLevel:
		return "load-first-level"
	case StartClock:
		return "start-clock"
	case StopClock:
		return "stop-clock"
	case LeaderboardEntry:
		return "leaderboard-entry"
	case ResetSession:
		return "reset-session"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Transition returns the phase that follows p on event e and the effects to
// perform, in order. Pairs without a rule leave the phase unchanged and
// request nothing.
func Transition(p Phase, e Event) (Phase, []Effect) {
	switch p {
	case Menu:
		switch e {
		case EventStart, EventConfirm:
			return InGame, []Effect{LoadFirstLevel, StartClock}
		case EventQuit:
			return Menu, []Effect{Exit}
		}

	case InGame:
		switch e {
		case EventPause:
			return Paused, []Effect{StopClock}
		case EventQuit, EventLivesExhausted, EventGameCompleted:
			return GameOver, []Effect{StopClock, LeaderboardEntry}
		}

	case Paused:
		switch e {
		case EventResume, EventPause:
			return InGame, []Effect{StartClock}
		case EventQuit:
			return GameOver, []Effect{StopClock, LeaderboardEntry}
		}

	case GameOver:
		switch e {
		case EventConfirm, EventQuit:
			return Menu, []Effect{ResetSession}
		}
	}
	return p, nil
}

// Machine holds the current phase. It is owned by a single coordinator.
type Machine struct {
	current Phase
}

// Current returns the active phase.
func (m *Machine) Current() Phase {
	return m.current
}

// Fire applies e and returns the requested effects.
func (m *Machine) Fire(e Event) []Effect {
	next, effects := Transition(m.current, e)
	m.current = next
	return effects
}

// Reset returns the machine to the menu.
func (m *Machine) Reset() {
	m.current = Menu
}
