package sim

import (
	"math"

	"github.com/vovakirdan/tui-kong/internal/core"
)

// body is the kinematic state shared by movable entities.
type body struct {
	Vel core.Vec

	onPlatform bool
	ground     *Platform
	prevBottom float64
}

// OnPlatform reports whether the entity rested on a platform after the last
// collision pass.
func (b *body) OnPlatform() bool { return b.onPlatform }

// Ground returns the platform supporting the entity, or nil.
func (b *body) Ground() *Platform { return b.ground }

// mover is implemented by entities the support pass lands on platforms.
type mover interface {
	Entity
	kinematics() (*core.Box, *body)
	climbing() bool
}

// Character is the player.
type Character struct {
	base
	body

	Facing   float64
	Lives    int
	Score    Score
	OnLadder bool
	Climbing bool

	p      *Params
	spawn  core.Vec
	ladder *Ladder

	holdLeft, holdRight float64
	holdUp, holdDown    float64
	jump                bool

	hammer float64
	grace  float64
}

// NewCharacter creates the player at pos with the configured number of lives.
func NewCharacter(p *Params, pos core.Vec) *Character {
	c := &Character{
		base:   base{box: core.Box{Pos: pos, Size: core.Size{W: p.TileW, H: p.TileH}}},
		Facing: 1,
		Lives:  p.Lives,
		p:      p,
		spawn:  pos,
	}
	c.prevBottom = c.box.Bottom()
	return c
}

func (c *Character) Kind() Kind { return KindCharacter }

func (c *Character) Movable() bool { return true }

func (c *Character) kinematics() (*core.Box, *body) { return &c.box, &c.body }

func (c *Character) climbing() bool { return c.Climbing }

// Spawn returns the position the character respawns at.
func (c *Character) Spawn() core.Vec { return c.spawn }

// HasHammer reports whether the hammer is armed.
func (c *Character) HasHammer() bool { return c.hammer > 0 }

// Invulnerable reports whether the character is in its respawn grace period.
func (c *Character) Invulnerable() bool { return c.grace > 0 }

// ArmHammer arms the hammer for d seconds.
func (c *Character) ArmHammer(d float64) {
	c.hammer = math.Max(c.hammer, d)
}

// Command records a movement command. Directions stay active for
// Params.InputHold seconds; a jump applies on the next update.
func (c *Character) Command(a core.Action) {
	hold := math.Max(c.p.InputHold, core.Epsilon)
	switch a {
	case core.ActionLeft:
		c.holdLeft, c.holdRight = hold, 0
	case core.ActionRight:
		c.holdRight, c.holdLeft = hold, 0
	case core.ActionUp:
		c.holdUp, c.holdDown = hold, 0
	case core.ActionDown:
		c.holdDown, c.holdUp = hold, 0
	case core.ActionJump:
		c.jump = true
	}
}

func (c *Character) wantsUp() bool   { return c.holdUp > 0 }
func (c *Character) wantsDown() bool { return c.holdDown > 0 }

// moveDir returns the commanded horizontal direction.
func (c *Character) moveDir() float64 {
	switch {
	case c.holdLeft > 0:
		return -1
	case c.holdRight > 0:
		return 1
	default:
		return 0
	}
}

// Update advances timers and moves the character by one step.
func (c *Character) Update(dt float64) {
	c.grace = math.Max(0, c.grace-dt)
	c.hammer = math.Max(0, c.hammer-dt)
	c.prevBottom = c.box.Bottom()

	if c.Climbing {
		c.climb(dt)
		return
	}

	dir := c.moveDir()
	c.Vel.X = dir * c.p.WalkSpeed
	if dir != 0 {
		c.Facing = dir
	}
	if c.jump && c.onPlatform {
		c.Vel.Y = -c.p.JumpImpulse
		c.onPlatform = false
	}
	if !c.onPlatform {
		fall(&c.body, c.p, dt)
	}
	integrate(&c.box, c.Vel, dt)
}

// climb moves along the current ladder column. Reaching either end of the
// column leaves climbing mode.
func (c *Character) climb(dt float64) {
	l := c.ladder
	if l == nil {
		c.Climbing = false
		return
	}

	c.Vel = core.Vec{}
	switch {
	case c.wantsUp():
		c.Vel.Y = -l.ClimbSpeed
	case c.wantsDown():
		c.Vel.Y = l.ClimbSpeed
	}

	top := l.spanTop - c.box.Size.H
	bottom := l.spanBottom - c.box.Size.H
	y := c.box.Pos.Y + c.Vel.Y*dt
	switch {
	case c.Vel.Y < 0 && y <= top:
		y = top
		c.leaveLadder()
	case c.Vel.Y > 0 && y >= bottom:
		y = bottom
		c.leaveLadder()
	}
	c.box.Pos.Y = y
}

// grab snaps the character onto a ladder and enters climbing mode.
func (c *Character) grab(l *Ladder) {
	c.Climbing = true
	c.ladder = l
	c.box.Pos.X = l.box.Left()
	c.Vel = core.Vec{}
	c.onPlatform = false
	c.ground = nil
}

func (c *Character) leaveLadder() {
	c.Climbing = false
	c.ladder = nil
	c.Vel.Y = 0
}

// expireIntents ages held commands at the end of a tick.
func (c *Character) expireIntents(dt float64) {
	c.holdLeft = math.Max(0, c.holdLeft-dt)
	c.holdRight = math.Max(0, c.holdRight-dt)
	c.holdUp = math.Max(0, c.holdUp-dt)
	c.holdDown = math.Max(0, c.holdDown-dt)
	c.jump = false
}

// respawn puts the character back at its spawn point with a grace period.
func (c *Character) respawn() {
	c.box.Pos = c.spawn
	c.body = body{prevBottom: c.box.Bottom()}
	c.Climbing = false
	c.OnLadder = false
	c.ladder = nil
	c.hammer = 0
	c.grace = c.p.RespawnGrace
	c.holdLeft, c.holdRight, c.holdUp, c.holdDown = 0, 0, 0, 0
	c.jump = false
}
