package sim

import "github.com/vovakirdan/tui-kong/internal/config"

// Params holds the tunables read by the simulation every tick.
// Distances are in world units, times in seconds.
type Params struct {
	TileW, TileH float64

	Gravity      float64
	MaxFallSpeed float64
	WalkSpeed    float64
	ClimbSpeed   float64
	JumpImpulse  float64

	Lives          int
	InputHold      float64
	RespawnGrace   float64
	HammerDuration float64

	BarrelSpeed    float64
	ThrowInterval  float64
	FireChance     float64
	FireSpeedScale float64

	CoinPoints   int
	HammerPoints int
	SmashPoints  int
}

// ParamsFrom extracts simulation parameters from a loaded configuration.
func ParamsFrom(cfg config.KongConfig) Params {
	return Params{
		TileW:          cfg.World.TileW,
		TileH:          cfg.World.TileH,
		Gravity:        cfg.Physics.Gravity,
		MaxFallSpeed:   cfg.Physics.MaxFallSpeed,
		WalkSpeed:      cfg.Physics.WalkSpeed,
		ClimbSpeed:     cfg.Physics.ClimbSpeed,
		JumpImpulse:    cfg.Physics.JumpImpulse,
		Lives:          cfg.Player.Lives,
		InputHold:      cfg.Player.InputHold,
		RespawnGrace:   cfg.Player.RespawnGrace,
		HammerDuration: cfg.Player.HammerDuration,
		BarrelSpeed:    cfg.Enemies.BarrelSpeed,
		ThrowInterval:  cfg.Enemies.ThrowInterval,
		FireChance:     cfg.Enemies.FireChance,
		FireSpeedScale: cfg.Enemies.FireSpeedScale,
		CoinPoints:     cfg.Scoring.CoinPoints,
		HammerPoints:   cfg.Scoring.HammerPoints,
		SmashPoints:    cfg.Scoring.SmashPoints,
	}
}

// DefaultParams returns the parameters of the built-in configuration.
func DefaultParams() Params {
	return ParamsFrom(config.DefaultKongConfig())
}
