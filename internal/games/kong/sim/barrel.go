package sim

import "github.com/vovakirdan/tui-kong/internal/core"

// Barrel rolls along platforms in the direction given by their slope.
type Barrel struct {
	base
	body

	Dir   float64
	Speed float64

	p            *Params
	canTransform bool
	destroyed    bool
}

// NewBarrel creates a barrel at pos rolling in dir. Whether it may turn into
// fire is fixed here for its whole lifetime.
func NewBarrel(p *Params, pos core.Vec, dir, speed float64, canTransform bool) *Barrel {
	b := &Barrel{
		base:         base{box: core.Box{Pos: pos, Size: core.Size{W: p.TileW, H: p.TileH}}},
		Dir:          dir,
		Speed:        speed,
		p:            p,
		canTransform: canTransform,
	}
	b.Vel.X = dir * speed
	b.prevBottom = b.box.Bottom()
	return b
}

func (b *Barrel) Kind() Kind { return KindBarrel }

func (b *Barrel) Movable() bool { return true }

func (b *Barrel) Destroyed() bool { return b.destroyed }

// Destroy marks the barrel destroyed. Repeated calls are no-ops.
func (b *Barrel) Destroy() { b.destroyed = true }

// CanTransformToFire reports whether the barrel becomes fire once destroyed.
func (b *Barrel) CanTransformToFire() bool { return b.canTransform }

func (b *Barrel) kinematics() (*core.Box, *body) { return &b.box, &b.body }

func (b *Barrel) climbing() bool { return false }

func (b *Barrel) Update(dt float64) {
	roll(&b.box, &b.body, b.p, b.Dir, b.Speed, dt)
}

func (b *Barrel) OnCollision(other Entity, t *Tick) {
	if ch, ok := other.(*Character); ok {
		t.enemyContact(ch, b)
	}
}

// Fire is what a transforming barrel turns into. It is never spawned directly.
type Fire struct {
	base
	body

	Dir   float64
	Speed float64

	p         *Params
	destroyed bool
}

// fireFrom converts a destroyed barrel into fire at the same position.
// The velocity keeps its direction and is scaled by Params.FireSpeedScale.
func fireFrom(b *Barrel) *Fire {
	scale := b.p.FireSpeedScale
	dir := core.Sign(b.Vel.X)
	if dir == 0 {
		dir = b.Dir
	}
	f := &Fire{
		base:  base{box: b.box},
		body:  b.body,
		Dir:   dir,
		Speed: b.Speed * scale,
		p:     b.p,
	}
	f.Vel = b.Vel.Scale(scale)
	return f
}

func (f *Fire) Kind() Kind { return KindFire }

func (f *Fire) Movable() bool { return true }

func (f *Fire) Destroyed() bool { return f.destroyed }

// Destroy marks the fire destroyed. Repeated calls are no-ops.
func (f *Fire) Destroy() { f.destroyed = true }

func (f *Fire) kinematics() (*core.Box, *body) { return &f.box, &f.body }

func (f *Fire) climbing() bool { return false }

func (f *Fire) Update(dt float64) {
	roll(&f.box, &f.body, f.p, f.Dir, f.Speed, dt)
}

func (f *Fire) OnCollision(other Entity, t *Tick) {
	if ch, ok := other.(*Character); ok {
		t.enemyContact(ch, f)
	}
}

// enemy is a destroyable entity that hurts the character on contact.
type enemy interface {
	Entity
	Destroy()
}
