// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// KongConfig contains all tunable parameters of the simulation.
type KongConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines how map symbols map to world units.
type WorldConfig struct {
	TileW float64 `yaml:"tile_w"`
	TileH float64 `yaml:"tile_h"`
}

// PhysicsConfig defines movement parameters, in tiles and seconds.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // tiles/s^2
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // tiles/s
	WalkSpeed    float64 `yaml:"walk_speed"`     // tiles/s
	ClimbSpeed   float64 `yaml:"climb_speed"`    // tiles/s
	JumpImpulse  float64 `yaml:"jump_impulse"`   // tiles/s, upward
}

// PlayerConfig defines player parameters.
type PlayerConfig struct {
	Lives          int     `yaml:"lives"`
	InputHold      float64 `yaml:"input_hold"`      // seconds a move command stays active
	RespawnGrace   float64 `yaml:"respawn_grace"`   // invulnerable seconds after a life loss
	HammerDuration float64 `yaml:"hammer_duration"` // seconds the hammer stays armed
}

// EnemyConfig defines barrel, fire and antagonist parameters.
type EnemyConfig struct {
	BarrelSpeed    float64 `yaml:"barrel_speed"`     // tiles/s
	ThrowInterval  float64 `yaml:"throw_interval"`   // seconds between throws
	FireChance     float64 `yaml:"fire_chance"`      // probability a thrown barrel can become fire
	FireSpeedScale float64 `yaml:"fire_speed_scale"` // fire speed relative to the barrel
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	CoinPoints       int `yaml:"coin_points"`
	HammerPoints     int `yaml:"hammer_points"`
	SmashPoints      int `yaml:"smash_points"`
	LevelClearPoints int `yaml:"level_clear_points"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to barrel speed at max difficulty
	ThrowMultiplier float64 `yaml:"throw_multiplier"` // added to throw rate at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown names yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ErrInvalidConfig is returned by Validate for out-of-range parameters.
var ErrInvalidConfig = errors.New("config: invalid value")

// Validate checks that the parameters describe a playable game.
func (c KongConfig) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"world.tile_w", c.World.TileW > 0},
		{"world.tile_h", c.World.TileH > 0},
		{"physics.gravity", c.Physics.Gravity > 0},
		{"physics.max_fall_speed", c.Physics.MaxFallSpeed > 0},
		{"physics.walk_speed", c.Physics.WalkSpeed > 0},
		{"physics.climb_speed", c.Physics.ClimbSpeed > 0},
		{"physics.jump_impulse", c.Physics.JumpImpulse >= 0},
		{"player.lives", c.Player.Lives > 0},
		{"player.input_hold", c.Player.InputHold >= 0},
		{"enemies.barrel_speed", c.Enemies.BarrelSpeed > 0},
		{"enemies.throw_interval", c.Enemies.ThrowInterval > 0},
		{"enemies.fire_chance", c.Enemies.FireChance >= 0 && c.Enemies.FireChance <= 1},
		{"enemies.fire_speed_scale", c.Enemies.FireSpeedScale > 0},
		{"scoring.coin_points", c.Scoring.CoinPoints >= 0},
		{"scoring.hammer_points", c.Scoring.HammerPoints >= 0},
		{"scoring.smash_points", c.Scoring.SmashPoints >= 0},
		{"scoring.level_clear_points", c.Scoring.LevelClearPoints >= 0},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.name)
		}
	}
	return nil
}
