package kong

import (
	"math"

	"github.com/vovakirdan/tui-kong/internal/games/kong/sim"
)

// snapshotScale converts world units to fixed-point integers for hashing.
const snapshotScale = 1000

// Snapshot contains the game state relevant for determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick       uint64
	Phase      int
	Mode       int // 0=Campaign, 1=Endless
	LevelIndex int
	Cycle      int
	Score      int
	Lives      int

	// Each entity is 6 ints: Kind, X, Y, VX, Destroyed, State
	EntityCount int
	EntityData  []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	entities := g.manager.Entities()
	data := make([]int, 0, len(entities)*6)
	for _, e := range entities {
		b := e.Bounds()
		state := 0
		motion := 0
		switch x := e.(type) {
		case *sim.Character:
			motion = fixed(x.Vel.X)
			if x.HasHammer() {
				state |= 1
			}
			if x.Climbing {
				state |= 2
			}
			if x.Invulnerable() {
				state |= 4
			}
		case *sim.Barrel:
			motion = fixed(x.Vel.X)
		case *sim.Fire:
			motion = fixed(x.Vel.X)
		case *sim.Platform:
			if x.Broken() {
				state = 1
			}
		case *sim.Collectible:
			if x.Collected() {
				state = 1
			}
		case *sim.Princess:
			if x.Rescued() {
				state = 1
			}
		}
		destroyed := 0
		if e.Destroyed() {
			destroyed = 1
		}
		data = append(data, int(e.Kind()), fixed(b.Left()), fixed(b.Top()), motion, destroyed, state)
	}

	return Snapshot{
		Tick:        uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Phase:       int(g.machine.Current()),
		Mode:        int(g.mode),
		LevelIndex:  g.current.Index,
		Cycle:       g.cycle,
		Score:       g.currentScore(),
		Lives:       g.currentLives(),
		EntityCount: len(entities),
		EntityData:  data,
	}
}

func fixed(v float64) int {
	return int(math.Round(v * snapshotScale))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cycle)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EntityCount) //#nosec G115 -- hash computation

	for _, v := range snap.EntityData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
