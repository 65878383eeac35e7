package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-kong/internal/core"
)

func TestLastLifeLostToBarrel(t *testing.T) {
	m := newTestManager(t, []string{"@  ", "==="}, false, func(p *Params) { p.Lives = 1 })
	ch := mustCharacter(t, m)
	m.AddEntity(NewBarrel(m.p, ch.Bounds().Pos, 1, m.p.BarrelSpeed, false))

	tick := m.Advance(dt)

	assert.True(t, tick.LifeLost)
	assert.True(t, tick.Has(EventLifeLost))
	assert.Equal(t, 0, ch.Lives)
}

func TestLifeLostRespawnsAndClearsEnemies(t *testing.T) {
	m := newTestManager(t, []string{"@    ", "====="}, false, nil)
	ch := mustCharacter(t, m)
	advance(m, 1)

	ch.box.Pos.X = 3
	m.AddEntity(NewBarrel(m.p, core.Vec{X: 3}, -1, m.p.BarrelSpeed, true))
	m.Spawn(NewBarrel(m.p, core.Vec{X: 4}, -1, m.p.BarrelSpeed, false))

	tick := m.Advance(dt)
	require.True(t, tick.LifeLost)

	assert.Equal(t, m.p.Lives-1, ch.Lives)
	assert.Equal(t, ch.Spawn(), ch.Bounds().Pos)
	assert.True(t, ch.Invulnerable())
	assert.Equal(t, 0, countKind(m, KindBarrel), "enemies are cleared")
	assert.Equal(t, 0, countKind(m, KindFire), "cleared barrels never transform")
}

func TestRespawnSkipsRemainingContacts(t *testing.T) {
	m := newTestManager(t, []string{"@    ", "====="}, false, nil)
	ch := mustCharacter(t, m)
	advance(m, 1)

	ch.box.Pos.X = 3
	m.AddEntity(NewBarrel(m.p, core.Vec{X: 3}, -1, m.p.BarrelSpeed, false))
	coin := NewCoin(core.Box{Pos: ch.Spawn(), Size: ch.Bounds().Size}, 100)
	m.AddEntity(coin)

	tick := m.Advance(dt)
	require.True(t, tick.LifeLost)

	assert.False(t, coin.Collected(), "coin at the spawn is not taken on the dying tick")
	assert.False(t, tick.Has(EventCollected))
	assert.Equal(t, 0, ch.Score.Value())
}

func TestOneLifePerTick(t *testing.T) {
	m := newTestManager(t, []string{"@  ", "==="}, false, nil)
	ch := mustCharacter(t, m)
	for i := 0; i < 3; i++ {
		m.AddEntity(NewBarrel(m.p, ch.Bounds().Pos, 1, m.p.BarrelSpeed, false))
	}

	m.Advance(dt)
	assert.Equal(t, m.p.Lives-1, ch.Lives)
}

func TestGracePeriodProtects(t *testing.T) {
	m := newTestManager(t, []string{"@  ", "==="}, false, nil)
	ch := mustCharacter(t, m)
	m.AddEntity(NewBarrel(m.p, ch.Bounds().Pos, 1, m.p.BarrelSpeed, false))
	m.Advance(dt)
	require.Equal(t, m.p.Lives-1, ch.Lives)

	m.AddEntity(NewBarrel(m.p, ch.Bounds().Pos, 1, m.p.BarrelSpeed, false))
	tick := m.Advance(dt)

	assert.False(t, tick.LifeLost)
	assert.Equal(t, m.p.Lives-1, ch.Lives)
}

func TestHammerSmashesEnemies(t *testing.T) {
	m := newTestManager(t, []string{"@  ", "==="}, false, nil)
	ch := mustCharacter(t, m)
	advance(m, 1)
	ch.ArmHammer(5)

	m.AddEntity(NewBarrel(m.p, ch.Bounds().Pos, 1, m.p.BarrelSpeed, false))
	tick := m.Advance(dt)

	assert.False(t, tick.LifeLost)
	assert.True(t, tick.Has(EventSmashed))
	assert.Equal(t, m.p.Lives, ch.Lives)
	assert.Equal(t, m.p.SmashPoints, ch.Score.Value())
	assert.Equal(t, 0, countKind(m, KindBarrel))
}

func TestLandingResolvedBeforeEnemyContact(t *testing.T) {
	m := newTestManager(t, []string{"@  ", "   ", "==="}, false, nil)
	ch := mustCharacter(t, m)
	ch.ArmHammer(5)

	// Fall until the next step crosses the platform top.
	for ch.Bounds().Bottom()+ch.Vel.Y*dt+m.p.Gravity*dt*dt < 2 {
		m.Advance(dt)
	}
	m.AddEntity(NewBarrel(m.p, core.Vec{X: 0, Y: 1}, 1, 0, false))

	tick := m.Advance(dt)
	assert.True(t, ch.OnPlatform(), "landing happens in the same tick as the hit")
	assert.InDelta(t, 1.0, ch.Bounds().Top(), 1e-9)
	assert.True(t, tick.Has(EventSmashed))
}

func TestCoinCollectedOnce(t *testing.T) {
	m := newTestManager(t, []string{"@$ ", "==="}, false, nil)
	ch := mustCharacter(t, m)
	advance(m, 1)

	ticks := advance(m, 40, core.ActionRight)

	assert.Equal(t, 1, countEvents(ticks, EventCollected))
	assert.Equal(t, m.p.CoinPoints, ch.Score.Value())
	for _, e := range m.Entities() {
		if c, ok := e.(*Collectible); ok {
			assert.True(t, c.Collected())
		}
	}
}

func TestHammerPickup(t *testing.T) {
	m := newTestManager(t, []string{"@T ", "==="}, false, nil)
	ch := mustCharacter(t, m)
	advance(m, 1)

	advance(m, 10, core.ActionRight)
	assert.True(t, ch.HasHammer())
	assert.Equal(t, m.p.HammerPoints, ch.Score.Value())
}

func TestPrincessRescuedOnContact(t *testing.T) {
	m := newTestManager(t, []string{"@ P", "==="}, false, nil)
	advance(m, 1)

	ticks := advance(m, 60, core.ActionRight)
	assert.Equal(t, 1, countEvents(ticks, EventRescued))

	for _, e := range m.Entities() {
		if p, ok := e.(*Princess); ok {
			assert.True(t, p.Rescued())
		}
	}
}

func TestHammerBreaksPlatformUnderBarrel(t *testing.T) {
	m := newTestManager(t, []string{"@  ", "###"}, false, nil)
	ch := mustCharacter(t, m)
	advance(m, 1)
	require.True(t, ch.OnPlatform())
	ch.ArmHammer(5)

	m.AddEntity(NewBarrel(m.p, core.Vec{X: 0.5}, 1, m.p.BarrelSpeed, true))
	tick := m.Advance(dt)

	require.True(t, tick.Has(EventPlatformBroken))
	g := tick.Events[0].Entity.(*Platform)
	assert.True(t, g.Broken())
	assert.Equal(t, 0.0, g.Bounds().Left())
	assert.Equal(t, 0, countKind(m, KindBarrel))
	assert.Equal(t, m.p.SmashPoints, ch.Score.Value())

	broken := 0
	for _, e := range m.Entities() {
		if p, ok := e.(*Platform); ok && p.Broken() {
			broken++
		}
	}
	assert.Equal(t, 1, broken, "only the platform under the character breaks")
}

func TestBrokenPlatformGivesNoSupport(t *testing.T) {
	m := newTestManager(t, []string{"@", "#", " ", "="}, false, nil)
	ch := mustCharacter(t, m)
	advance(m, 1)
	require.True(t, ch.OnPlatform())

	m.Entities()[1].(*Platform).Destroy()
	advance(m, 60)
	assert.InDelta(t, 2.0, ch.Bounds().Top(), 1e-9)
}

func TestFallingOutOfWorldLosesLife(t *testing.T) {
	m := newTestManager(t, []string{"  ", "@ ", "  "}, false, nil)
	ch := mustCharacter(t, m)

	var lost bool
	for i := 0; i < 120 && !lost; i++ {
		lost = m.Advance(dt).LifeLost
	}
	require.True(t, lost)
	assert.Equal(t, m.p.Lives-1, ch.Lives)
	assert.Equal(t, ch.Spawn(), ch.Bounds().Pos)
}

func TestNoCharacterIsNotAnError(t *testing.T) {
	m := newTestManager(t, []string{"O  ", "==="}, false, nil)
	assert.NotPanics(t, func() { advance(m, 10) })
}
