package sim

import (
	"math"

	"github.com/vovakirdan/tui-kong/internal/core"
)

// ladderProbe is how far below the character, in tiles, a ladder is
// looked for when climbing down from a platform.
const ladderProbe = 0.1

// resolveCollisions runs the collision phase of a tick. Platform support is
// resolved for every mover first, so a landing is never skipped by an enemy
// hit in the same tick. Contacts with the character follow in insertion order.
func (m *Manager) resolveCollisions(t *Tick) {
	m.resolveSupport()

	ch, ok := m.MainCharacter()
	if !ok {
		return
	}
	m.resolveLadders(ch)
	m.resolveBreakables(ch, t)

	for _, e := range m.entities {
		if e == Entity(ch) || e.Destroyed() {
			continue
		}
		if ch.Bounds().Overlaps(e.Bounds()) {
			e.OnCollision(ch, t)
		}
		// The character has respawned; later contacts belong to its old position.
		if t.LifeLost {
			break
		}
	}

	if m.world.Size.H > 0 && ch.Bounds().Top() >= m.world.Bottom() {
		t.loseLife(ch)
	}
}

// resolveSupport lands movers on platforms. A mover lands when it is moving
// down or resting, overlaps the platform horizontally and either crossed the
// platform top during this step or rests on it.
func (m *Manager) resolveSupport() {
	for _, e := range m.entities {
		mv, ok := e.(mover)
		if !ok || e.Destroyed() {
			continue
		}
		box, b := mv.kinematics()
		b.onPlatform = false
		b.ground = nil
		if mv.climbing() || b.Vel.Y < 0 {
			continue
		}

		for _, p := range m.platforms {
			if !p.solid() {
				continue
			}
			pb := p.Bounds()
			if !box.OverlapsX(pb) {
				continue
			}
			top := pb.Top()
			swept := b.prevBottom <= top+core.Epsilon && box.Bottom() >= top
			resting := math.Abs(box.Bottom()-top) <= core.Epsilon
			if !swept && !resting {
				continue
			}
			box.Pos.Y = top - box.Size.H
			b.Vel.Y = 0
			b.onPlatform = true
			b.ground = p
			break
		}
	}
}

// resolveLadders updates the character's ladder state. An up command grabs
// an overlapped ladder with room above; a down command grabs a ladder just
// below the character's feet with room below. The character's center must
// be within the ladder column.
func (m *Manager) resolveLadders(ch *Character) {
	box := ch.Bounds()
	probe := box.Translate(core.Vec{Y: ladderProbe * m.p.TileH})
	h := box.Size.H

	ch.OnLadder = ch.Climbing
	for _, l := range m.ladders {
		if !l.Climbable {
			continue
		}
		lb := l.Bounds()
		over := box.Overlaps(lb)
		if over {
			ch.OnLadder = true
		}
		if ch.Climbing {
			continue
		}
		below := probe.Overlaps(lb)
		if !over && !below {
			continue
		}
		if cx := box.CenterX(); cx <= lb.Left() || cx >= lb.Right() {
			continue
		}

		switch {
		case ch.wantsUp() && over && box.Top() > l.spanTop-h+core.Epsilon:
			ch.grab(l)
		case ch.wantsDown() && below && box.Top() < l.spanBottom-h-core.Epsilon:
			ch.grab(l)
		}
	}
}

// resolveBreakables destroys a barrel on the breakable platform the character
// stands on while the hammer is armed, and breaks that platform.
func (m *Manager) resolveBreakables(ch *Character, t *Tick) {
	g := ch.ground
	if !ch.HasHammer() || !ch.onPlatform || g == nil || !g.Breakable() || g.Broken() {
		return
	}

	for _, e := range m.entities {
		b, ok := e.(*Barrel)
		if !ok || b.Destroyed() {
			continue
		}
		if b.ground != g && !b.Bounds().Overlaps(g.Bounds()) {
			continue
		}
		b.Destroy()
		g.Destroy()
		ch.Score.Increase(m.p.SmashPoints)
		t.emit(Event{Kind: EventPlatformBroken, Entity: g, Points: m.p.SmashPoints})
		return
	}
}

// enemyContact resolves the character touching a live enemy. An armed hammer
// smashes the enemy; otherwise the character loses a life unless it is in
// its grace period.
func (t *Tick) enemyContact(ch *Character, e enemy) {
	if e.Destroyed() {
		return
	}
	if ch.HasHammer() {
		e.Destroy()
		ch.Score.Increase(t.m.p.SmashPoints)
		t.emit(Event{Kind: EventSmashed, Entity: e, Points: t.m.p.SmashPoints})
		return
	}
	if ch.Invulnerable() {
		return
	}
	t.loseLife(ch)
}

// loseLife takes one life from the character, at most once per tick.
// A surviving character respawns and all enemies are cleared.
func (t *Tick) loseLife(ch *Character) {
	if t.LifeLost || ch.Lives <= 0 {
		return
	}
	t.LifeLost = true
	ch.Lives--
	t.emit(Event{Kind: EventLifeLost, Entity: ch})

	if ch.Lives > 0 {
		ch.respawn()
		t.m.discardEnemies()
	}
}
