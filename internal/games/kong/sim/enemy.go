package sim

import "github.com/vovakirdan/tui-kong/internal/core"

// stepEnemies runs autonomous behavior after collision: barrels follow
// slopes and are spent at the side of the world, fire bounces between the
// sides, antagonists throw. Anything that falls out of the world is discarded.
func (m *Manager) stepEnemies(dt float64, t *Tick) {
	for _, e := range m.entities {
		if e.Destroyed() {
			continue
		}
		switch v := e.(type) {
		case *Barrel:
			m.steerBarrel(v, t)
		case *Fire:
			m.steerFire(v)
		case *Antagonist:
			if b, ok := v.TryThrowBarrel(dt); ok {
				m.Spawn(b)
				t.emit(Event{Kind: EventBarrelThrown, Entity: b})
			}
		}

		if e.Kind() != KindCharacter && e.Movable() && m.world.Size.H > 0 && e.Bounds().Top() >= m.world.Bottom() {
			m.Discard(e)
		}
	}
}

// steerBarrel derives the rolling direction from the supporting platform's
// slope. A barrel reaching the side of the world it rolls toward is spent.
func (m *Manager) steerBarrel(b *Barrel, t *Tick) {
	if b.onPlatform && b.ground != nil {
		b.Dir = b.ground.Slope.Roll(b.Dir)
	}
	if m.world.Size.W <= 0 {
		return
	}

	box := b.Bounds()
	if (b.Dir < 0 && box.Left() <= m.world.Left()+core.Epsilon) ||
		(b.Dir > 0 && box.Right() >= m.world.Right()-core.Epsilon) {
		b.Destroy()
		t.emit(Event{Kind: EventBarrelSpent, Entity: b})
	}
}

// steerFire reverses fire at the sides of the world.
func (m *Manager) steerFire(f *Fire) {
	if m.world.Size.W <= 0 {
		return
	}
	switch {
	case f.Dir < 0 && f.box.Left() <= m.world.Left()+core.Epsilon:
		f.Dir = 1
		f.box.Pos.X = m.world.Left()
	case f.Dir > 0 && f.box.Right() >= m.world.Right()-core.Epsilon:
		f.Dir = -1
		f.box.Pos.X = m.world.Right() - f.box.Size.W
	}
	f.Vel.X = f.Dir * f.Speed
}

// discardEnemies stages the removal of every barrel and fire, including
// ones not yet committed.
func (m *Manager) discardEnemies() {
	for _, list := range [][]Entity{m.entities, m.pending} {
		for _, e := range list {
			if k := e.Kind(); k == KindBarrel || k == KindFire {
				m.Discard(e)
			}
		}
	}
}
