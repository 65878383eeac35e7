package sim

import (
	"math"

	"github.com/vovakirdan/tui-kong/internal/core"
)

// fall applies gravity to an unsupported body, clamped to the terminal speed.
func fall(b *body, p *Params, dt float64) {
	b.Vel.Y = math.Min(b.Vel.Y+p.Gravity*dt, p.MaxFallSpeed)
}

// integrate moves a box by vel for one step. There is no sub-stepping;
// the support pass bounds tunneling with a swept test instead.
func integrate(box *core.Box, vel core.Vec, dt float64) {
	*box = box.Translate(vel.Scale(dt))
}

// roll is the motion shared by barrels and fire: constant horizontal speed
// in the rolling direction, gravity while unsupported.
func roll(box *core.Box, b *body, p *Params, dir, speed, dt float64) {
	b.prevBottom = box.Bottom()
	b.Vel.X = dir * speed
	if !b.onPlatform {
		fall(b, p, dt)
	}
	integrate(box, b.Vel, dt)
}

// stepPhysics updates every live movable entity in insertion order and
// keeps the character inside the world horizontally.
func (m *Manager) stepPhysics(dt float64) {
	for _, e := range m.entities {
		if !e.Movable() || e.Destroyed() {
			continue
		}
		e.Update(dt)
	}

	ch := m.character
	if ch == nil || m.world.Size.W <= 0 {
		return
	}
	ch.box.Pos.X = core.ClampF(ch.box.Pos.X, m.world.Left(), m.world.Right()-ch.box.Size.W)
}
