package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-kong/internal/core"
)

func TestScoreIncrease(t *testing.T) {
	var s Score
	prior := 0
	for _, n := range []int{0, 1, 5, 100, 0, 9999} {
		s.Increase(n)
		assert.Equal(t, prior+n, s.Value())
		prior = s.Value()
	}
}

func TestScoreRejectsNegative(t *testing.T) {
	var s Score
	s.Increase(40)

	assert.Panics(t, func() { s.Increase(-1) })
	assert.Equal(t, 40, s.Value(), "a rejected increment must leave the score unchanged")
}

func TestBreakablePlatformDestroyIsIdempotent(t *testing.T) {
	p := NewBreakablePlatform(core.NewBox(0, 0, 1, 1))
	assert.False(t, p.Broken(), "new breakable platform must not be broken")

	for i := 0; i < 3; i++ {
		p.Destroy()
		assert.True(t, p.Broken())
	}

	normal := NewPlatform(core.NewBox(0, 0, 1, 1), SlopeFlat)
	normal.Destroy()
	assert.False(t, normal.Broken(), "normal platforms cannot break")
}

func TestCollectAwardsOnce(t *testing.T) {
	p := DefaultParams()
	ch := NewCharacter(&p, core.Vec{})
	coin := NewCoin(core.NewBox(1, 0, 1, 1), 250)

	assert.True(t, coin.Collect(ch))
	assert.False(t, coin.Collect(ch))
	assert.True(t, coin.Collected())
	assert.Equal(t, 250, ch.Score.Value())
}

func TestHammerArmsCharacter(t *testing.T) {
	p := DefaultParams()
	ch := NewCharacter(&p, core.Vec{})
	hammer := NewHammer(core.NewBox(1, 0, 1, 1), p.HammerPoints, 2)

	require.False(t, ch.HasHammer())
	hammer.Collect(ch)
	assert.True(t, ch.HasHammer())
	assert.Equal(t, p.HammerPoints, ch.Score.Value())

	// Timers run down in Update.
	for i := 0; i < 121; i++ {
		ch.Update(dt)
	}
	assert.False(t, ch.HasHammer())
}

func TestPrincessRescueIsIdempotent(t *testing.T) {
	pr := NewPrincess(core.NewBox(0, 0, 1, 1))
	assert.False(t, pr.Rescued())
	assert.True(t, pr.Rescue())
	assert.False(t, pr.Rescue())
	assert.True(t, pr.Rescued())
}

func TestSlopeRoll(t *testing.T) {
	tests := []struct {
		slope    Slope
		prior    float64
		expected float64
	}{
		{SlopeLeft, 1, -1},
		{SlopeLeft, -1, -1},
		{SlopeRight, -1, 1},
		{SlopeFlat, -1, -1},
		{SlopeFlat, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.slope.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.slope.Roll(tc.prior))
		})
	}
}

func TestTryThrowBarrel(t *testing.T) {
	p := DefaultParams()
	p.ThrowInterval = 0.5
	p.FireChance = 1

	t.Run("disabled", func(t *testing.T) {
		a := NewAntagonist(&p, rand.New(rand.NewSource(1)), core.NewBox(2, 0, 1, 1), 1, false)
		for i := 0; i < 600; i++ {
			_, ok := a.TryThrowBarrel(dt)
			require.False(t, ok)
		}
	})

	t.Run("cooldown", func(t *testing.T) {
		a := NewAntagonist(&p, rand.New(rand.NewSource(1)), core.NewBox(2, 0, 1, 1), -1, true)

		_, ok := a.TryThrowBarrel(0.3)
		assert.False(t, ok, "throw before the interval elapsed")

		b, ok := a.TryThrowBarrel(0.2)
		require.True(t, ok)
		assert.Equal(t, core.Vec{X: 2, Y: 0}, b.Bounds().Pos)
		assert.Equal(t, -1.0, b.Dir)
		assert.True(t, b.CanTransformToFire())

		_, ok = a.TryThrowBarrel(0.1)
		assert.False(t, ok, "cooldown restarts after a throw")
	})

	t.Run("never transforms without fire chance", func(t *testing.T) {
		q := p
		q.FireChance = 0
		a := NewAntagonist(&q, rand.New(rand.NewSource(1)), core.NewBox(2, 0, 1, 1), 1, true)
		for i := 0; i < 20; i++ {
			b, ok := a.TryThrowBarrel(q.ThrowInterval)
			require.True(t, ok)
			assert.False(t, b.CanTransformToFire())
		}
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "barrel", KindBarrel.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
