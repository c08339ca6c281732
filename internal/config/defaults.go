package config

import (
	_ "embed"
)

//go:embed defaults/breakaloop.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hard-coded configuration, used when the embedded file
// cannot be parsed.
func Default() BreakALoopConfig {
	return BreakALoopConfig{
		World: WorldConfig{Width: 80, Height: 40},
		Physics: PhysicsConfig{
			Gravity:      100,
			JumpVelocity: -30,
			HalfLife:     0.1,
		},
		Player: PlayerConfig{
			Width:         6,
			Height:        4,
			SmallWidth:    4.5,
			SmallHeight:   3,
			SpeedPerWidth: 10,
			Jumps:         2,
			BoostedJumps:  4,
		},
		Enemy: EnemyConfig{
			Width:      6,
			Height:     4,
			Speed:      12,
			MirrorFrom: 7,
		},
		Token: TokenConfig{
			FlightSpeed: 100,
		},
		Timing: TimingConfig{
			TickRate:    60,
			LagTickRate: 10,
			Transition:  0.5,
			CursorBlink: 1,
		},
		Input: InputConfig{
			HoldSeconds: 0.35,
		},
	}
}
