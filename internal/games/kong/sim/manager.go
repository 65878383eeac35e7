package sim

import (
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-kong/internal/core"
)

// Map symbols understood by LoadEntities. Any other rune produces no entity.
const (
	SymCharacter  = '@'
	SymPlatform   = '='
	SymSlopeLeft  = '<'
	SymSlopeRight = '>'
	SymBreakable  = '#'
	SymLadder     = 'H'
	SymCoin       = '$'
	SymHammer     = 'T'
	SymAntagonist = 'K'
	SymPrincess   = 'P'
	SymBarrel     = 'O'
)

// Manager owns the entity collection of the current level.
//
// Additions and removals requested while a tick is running are staged and
// applied together by TransformEntities, so no phase ever iterates a
// collection that is being mutated.
type Manager struct {
	p   *Params
	rng *rand.Rand

	entities  []Entity
	platforms []*Platform
	ladders   []*Ladder
	character *Character
	world     core.Box

	pending   []Entity
	discarded map[Entity]struct{}
}

// NewManager creates an empty manager. All randomness is drawn from a
// generator seeded with seed.
func NewManager(p Params, seed int64) *Manager {
	return &Manager{
		p:         &p,
		rng:       rand.New(rand.NewSource(seed)),
		discarded: make(map[Entity]struct{}),
	}
}

// Params returns the parameters entities are built with.
func (m *Manager) Params() Params {
	return *m.p
}

// LoadEntities replaces the collection with the entities described by rows.
// Symbols are read row by row, left to right; unknown symbols are skipped.
// Only the first character symbol creates a character.
func (m *Manager) LoadEntities(rows []string, canAntagonistThrow bool) {
	m.clear()

	cols := 0
	for _, row := range rows {
		cols = max(cols, len([]rune(row)))
	}
	m.world = core.NewBox(0, 0, float64(cols)*m.p.TileW, float64(len(rows))*m.p.TileH)

	for r, row := range rows {
		for c, sym := range []rune(row) {
			if e := m.parse(sym, r, c, canAntagonistThrow); e != nil {
				m.add(e)
			}
		}
	}
	m.linkLadders()
}

// parse turns one map symbol into zero or one entity.
func (m *Manager) parse(sym rune, r, c int, canThrow bool) Entity {
	tw, th := m.p.TileW, m.p.TileH
	tile := core.NewBox(float64(c)*tw, float64(r)*th, tw, th)

	switch sym {
	case SymCharacter:
		if m.character != nil {
			return nil
		}
		return NewCharacter(m.p, tile.Pos)
	case SymPlatform:
		return NewPlatform(tile, SlopeFlat)
	case SymSlopeLeft:
		return NewPlatform(tile, SlopeLeft)
	case SymSlopeRight:
		return NewPlatform(tile, SlopeRight)
	case SymBreakable:
		return NewBreakablePlatform(tile)
	case SymLadder:
		// Ladders reach one tile up so a column passes through the platform above it.
		return NewLadder(core.NewBox(tile.Left(), tile.Top()-th, tw, 2*th), m.p.ClimbSpeed)
	case SymCoin:
		return NewCoin(tile, m.p.CoinPoints)
	case SymHammer:
		return NewHammer(tile, m.p.HammerPoints, m.p.HammerDuration)
	case SymAntagonist:
		return NewAntagonist(m.p, m.rng, tile, m.inward(tile), canThrow)
	case SymPrincess:
		return NewPrincess(tile)
	case SymBarrel:
		return NewBarrel(m.p, tile.Pos, m.inward(tile), m.p.BarrelSpeed, false)
	default:
		return nil
	}
}

// inward returns the direction from box toward the middle of the world.
func (m *Manager) inward(box core.Box) float64 {
	if box.CenterX() < m.world.CenterX() {
		return 1
	}
	return -1
}

// AddEntity appends e to the live collection. It always succeeds.
// Use Spawn instead while a tick is in progress.
func (m *Manager) AddEntity(e Entity) bool {
	if e == nil {
		panic("kong: nil entity")
	}
	m.add(e)
	if _, ok := e.(*Ladder); ok {
		m.linkLadders()
	}
	return true
}

// Entities returns the live collection in insertion order. The slice is
// owned by the manager and is only valid until the next TransformEntities.
func (m *Manager) Entities() []Entity {
	return m.entities
}

// MainCharacter returns the player character, if one is loaded.
func (m *Manager) MainCharacter() (*Character, bool) {
	if m.character == nil {
		return nil, false
	}
	return m.character, true
}

// World returns the bounds of the loaded map.
func (m *Manager) World() core.Box {
	return m.world
}

// Spawn stages an addition for the next TransformEntities.
func (m *Manager) Spawn(e Entity) {
	if e == nil {
		panic("kong: nil entity")
	}
	m.pending = append(m.pending, e)
}

// Discard stages the removal of e. Discarded barrels never turn into fire.
func (m *Manager) Discard(e Entity) {
	m.discarded[e] = struct{}{}
}

// SetTempo sets the barrel speed and throw interval of every antagonist.
func (m *Manager) SetTempo(speed, interval float64) {
	for _, e := range m.entities {
		if a, ok := e.(*Antagonist); ok {
			a.SetTempo(speed, interval)
		}
	}
}

// TransformEntities commits the staged changes of a tick. Discarded entities
// are dropped. Destroyed entities are dropped too, except barrels that can
// transform, which are replaced in place by fire. Spawned entities are
// appended last, in the order they were spawned.
func (m *Manager) TransformEntities() {
	kept := m.entities[:0]
	for _, e := range m.entities {
		if _, gone := m.discarded[e]; gone {
			continue
		}
		if e.Destroyed() {
			if b, ok := e.(*Barrel); ok && b.CanTransformToFire() {
				kept = append(kept, fireFrom(b))
			}
			continue
		}
		kept = append(kept, e)
	}
	clear(m.entities[len(kept):])
	m.entities = kept

	reindex := len(m.discarded) > 0
	for _, e := range m.pending {
		if _, gone := m.discarded[e]; gone {
			continue
		}
		m.entities = append(m.entities, e)
		if !reindex {
			m.index(e)
		}
	}
	m.pending = m.pending[:0]
	clear(m.discarded)

	if reindex {
		m.platforms, m.ladders, m.character = nil, nil, nil
		for _, e := range m.entities {
			m.index(e)
		}
	}
	m.linkLadders()
}

// Advance runs one tick: physics, collision, enemy behavior and the commit
// of staged changes. Commands must already have been applied to the character.
func (m *Manager) Advance(dt float64) Tick {
	t := Tick{m: m}

	m.stepPhysics(dt)
	m.resolveCollisions(&t)
	m.stepEnemies(dt, &t)
	if ch, ok := m.MainCharacter(); ok {
		ch.expireIntents(dt)
	}
	m.TransformEntities()

	return t
}

func (m *Manager) clear() {
	clear(m.entities)
	m.entities = m.entities[:0]
	m.platforms, m.ladders, m.character = nil, nil, nil
	m.pending = m.pending[:0]
	clear(m.discarded)
	m.world = core.Box{}
}

func (m *Manager) add(e Entity) {
	m.entities = append(m.entities, e)
	m.index(e)
}

func (m *Manager) index(e Entity) {
	switch v := e.(type) {
	case *Character:
		if m.character == nil {
			m.character = v
		}
	case *Platform:
		m.platforms = append(m.platforms, v)
	case *Ladder:
		m.ladders = append(m.ladders, v)
	}
}

// linkLadders computes the span of every ladder column: ladders at the same
// x whose boxes touch or overlap vertically form one column.
func (m *Manager) linkLadders() {
	if len(m.ladders) == 0 {
		return
	}
	sorted := make([]*Ladder, len(m.ladders))
	copy(sorted, m.ladders)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].box, sorted[j].box
		if a.Left() != b.Left() {
			return a.Left() < b.Left()
		}
		return a.Top() < b.Top()
	})

	start := 0
	top, bottom := sorted[0].box.Top(), sorted[0].box.Bottom()
	flush := func(end int) {
		for _, l := range sorted[start:end] {
			l.spanTop, l.spanBottom = top, bottom
		}
	}
	for i := 1; i < len(sorted); i++ {
		b := sorted[i].box
		sameColumn := b.Left()-sorted[start].box.Left() <= core.Epsilon
		if sameColumn && b.Top() <= bottom+core.Epsilon {
			bottom = max(bottom, b.Bottom())
			continue
		}
		flush(i)
		start = i
		top, bottom = b.Top(), b.Bottom()
	}
	flush(len(sorted))
}
