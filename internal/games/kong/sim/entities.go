package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-kong/internal/core"
)

// Slope classifies a platform's inclination. It decides which way a barrel
// resting on the platform rolls.
type Slope int

const (
	SlopeFlat Slope = iota
	SlopeLeft
	SlopeRight
)

// Roll returns the rolling direction on this slope given the prior one.
// Flat platforms keep the prior direction.
func (s Slope) Roll(prior float64) float64 {
	switch s {
	case SlopeLeft:
		return -1
	case SlopeRight:
		return 1
	default:
		return prior
	}
}

func (s Slope) String() string {
	switch s {
	case SlopeLeft:
		return "left"
	case SlopeRight:
		return "right"
	default:
		return "flat"
	}
}

// Platform is a one-way surface that supports movable entities from above.
type Platform struct {
	base
	Slope     Slope
	breakable bool
	broken    bool
}

// NewPlatform creates a normal platform.
func NewPlatform(box core.Box, slope Slope) *Platform {
	return &Platform{base: base{box: box}, Slope: slope}
}

// NewBreakablePlatform creates a flat platform that can be broken once.
func NewBreakablePlatform(box core.Box) *Platform {
	return &Platform{base: base{box: box}, Slope: SlopeFlat, breakable: true}
}

func (p *Platform) Kind() Kind { return KindPlatform }

// Breakable reports whether the platform can be broken.
func (p *Platform) Breakable() bool { return p.breakable }

// Broken reports whether a breakable platform has been broken.
func (p *Platform) Broken() bool { return p.broken }

// Destroy breaks a breakable platform. It is idempotent and a no-op on
// normal platforms.
func (p *Platform) Destroy() {
	if p.breakable {
		p.broken = true
	}
}

// solid reports whether the platform currently supports anything.
func (p *Platform) solid() bool {
	return !p.broken
}

// Ladder lets the character move vertically while climbing.
// The span covers the contiguous column of ladders this one belongs to.
type Ladder struct {
	base
	Climbable  bool
	ClimbSpeed float64

	spanTop, spanBottom float64
}

// NewLadder creates a climbable ladder.
func NewLadder(box core.Box, climbSpeed float64) *Ladder {
	return &Ladder{
		base:       base{box: box},
		Climbable:  true,
		ClimbSpeed: climbSpeed,
		spanTop:    box.Top(),
		spanBottom: box.Bottom(),
	}
}

func (l *Ladder) Kind() Kind { return KindLadder }

// Span returns the top and bottom of the ladder column.
func (l *Ladder) Span() (top, bottom float64) {
	return l.spanTop, l.spanBottom
}

// CollectibleType distinguishes coins from the hammer item.
type CollectibleType int

const (
	Coin CollectibleType = iota
	Hammer
)

// Collectible is a coin or item worth a fixed number of points.
type Collectible struct {
	base
	Type      CollectibleType
	Value     int
	duration  float64
	collected bool
}

// NewCoin creates a coin worth value points.
func NewCoin(box core.Box, value int) *Collectible {
	return &Collectible{base: base{box: box}, Type: Coin, Value: value}
}

// NewHammer creates a hammer item that arms the collector for duration seconds.
func NewHammer(box core.Box, value int, duration float64) *Collectible {
	return &Collectible{base: base{box: box}, Type: Hammer, Value: value, duration: duration}
}

func (c *Collectible) Kind() Kind { return KindCollectible }

// Collected reports whether the item has been picked up.
func (c *Collectible) Collected() bool { return c.collected }

// Collect awards the item to ch. Only the first call has any effect;
// it returns whether this call collected the item.
func (c *Collectible) Collect(ch *Character) bool {
	if c.collected {
		return false
	}
	c.collected = true
	ch.Score.Increase(c.Value)
	if c.Type == Hammer {
		ch.ArmHammer(c.duration)
	}
	return true
}

func (c *Collectible) OnCollision(other Entity, t *Tick) {
	ch, ok := other.(*Character)
	if !ok {
		return
	}
	if c.Collect(ch) {
		t.emit(Event{Kind: EventCollected, Entity: c, Points: c.Value})
	}
}

// Princess is rescued when the character reaches her.
type Princess struct {
	base
	rescued bool
}

// NewPrincess creates an unrescued princess.
func NewPrincess(box core.Box) *Princess {
	return &Princess{base: base{box: box}}
}

func (p *Princess) Kind() Kind { return KindPrincess }

// Rescued reports whether the princess has been rescued.
func (p *Princess) Rescued() bool { return p.rescued }

// Rescue marks the princess rescued and reports whether this call did it.
func (p *Princess) Rescue() bool {
	if p.rescued {
		return false
	}
	p.rescued = true
	return true
}

func (p *Princess) OnCollision(other Entity, t *Tick) {
	if _, ok := other.(*Character); !ok {
		return
	}
	if p.Rescue() {
		t.emit(Event{Kind: EventRescued, Entity: p})
	}
}

// Antagonist stays in place and throws barrels on a fixed cadence.
type Antagonist struct {
	base
	CanThrow bool

	p        *Params
	rng      *rand.Rand
	dir      float64
	speed    float64
	interval float64
	cooldown float64
}

// NewAntagonist creates a thrower. Thrown barrels start rolling in dir and may
// become fire with probability Params.FireChance, drawn from rng.
func NewAntagonist(p *Params, rng *rand.Rand, box core.Box, dir float64, canThrow bool) *Antagonist {
	return &Antagonist{
		base:     base{box: box},
		CanThrow: canThrow,
		p:        p,
		rng:      rng,
		dir:      dir,
		speed:    p.BarrelSpeed,
		interval: p.ThrowInterval,
		cooldown: p.ThrowInterval,
	}
}

func (a *Antagonist) Kind() Kind { return KindAntagonist }

// SetTempo changes the speed of future barrels and the throw interval.
// A pending cooldown is shortened if it exceeds the new interval.
func (a *Antagonist) SetTempo(speed, interval float64) {
	a.speed = speed
	a.interval = interval
	if a.cooldown > interval {
		a.cooldown = interval
	}
}

// TryThrowBarrel advances the cooldown by dt and returns a new barrel when
// it has elapsed. It returns false while throwing is disabled or cooling down.
func (a *Antagonist) TryThrowBarrel(dt float64) (*Barrel, bool) {
	if !a.CanThrow {
		return nil, false
	}
	a.cooldown -= dt
	if a.cooldown > core.Epsilon {
		return nil, false
	}
	a.cooldown = a.interval

	canTransform := false
	if a.rng != nil {
		canTransform = a.rng.Float64() < a.p.FireChance
	}
	return NewBarrel(a.p, a.box.Pos, a.dir, a.speed, canTransform), true
}
