package core

import "sync"

// Action represents a semantic game command, abstracted from physical key presses.
// The simulation consumes actions; it never produces them.
type Action int

const (
	ActionNone    Action = iota
	ActionStart          // Enter/S on the title screen - begin a game
	ActionPause          // P - pause (toggles while in game)
	ActionResume         // P while paused - resume
	ActionQuit           // Esc - leave the current game
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionUp             // W, Up arrow - climb up
	ActionDown           // S, Down arrow - climb down
	ActionJump           // Space
	ActionConfirm        // Enter - confirm / dismiss
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionResume:
		return "Resume"
	case ActionQuit:
		return "Quit"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}

// InputFrame represents the actions triggered during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// List returns the triggered actions in ascending Action order,
// so converting a frame into commands is deterministic.
func (f InputFrame) List() []Action {
	var out []Action
	for a := ActionStart; a <= ActionConfirm; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// CommandQueue hands commands from input producers to the simulation.
// Thread-Safety:
//   - Push: safe for any number of concurrent producers
//   - Drain: single consumer (the tick loop), FIFO order
type CommandQueue struct {
	mu      sync.Mutex
	pending []Action
}

// NewCommandQueue creates an empty queue.
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{pending: make([]Action, 0, 16)}
}

// Push enqueues a command. ActionNone is ignored.
func (q *CommandQueue) Push(a Action) {
	if a == ActionNone {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, a)
	q.mu.Unlock()
}

// Drain returns all queued commands in arrival order and empties the queue.
func (q *CommandQueue) Drain() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = make([]Action, 0, cap(out))
	return out
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
