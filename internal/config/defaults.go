package config

import (
	_ "embed"
)

//go:embed defaults/kong.yaml
var defaultKongYAML []byte

// DefaultKongConfig returns the built-in configuration.
// It mirrors defaults/kong.yaml and is used if the embedded file fails to parse.
func DefaultKongConfig() KongConfig {
	return KongConfig{
		World: WorldConfig{
			TileW: 1.0,
			TileH: 1.0,
		},
		Physics: PhysicsConfig{
			Gravity:      60.0,
			MaxFallSpeed: 18.0,
			WalkSpeed:    7.0,
			ClimbSpeed:   5.0,
			JumpImpulse:  11.0,
		},
		Player: PlayerConfig{
			Lives:          3,
			InputHold:      0.18,
			RespawnGrace:   2.0,
			HammerDuration: 8.0,
		},
		Enemies: EnemyConfig{
			BarrelSpeed:    6.0,
			ThrowInterval:  3.0,
			FireChance:     0.25,
			FireSpeedScale: 0.5,
		},
		Scoring: ScoringConfig{
			CoinPoints:       100,
			HammerPoints:     300,
			SmashPoints:      500,
			LevelClearPoints: 1000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				ThrowMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultKongYAML
}
