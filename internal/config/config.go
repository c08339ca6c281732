// Package config loads the game's tuning values from YAML.
//
// Units are world cells: one cell is one terminal character, and the world is
// Width x Height cells. Speeds are cells per second.
package config

// BreakALoopConfig contains all tuning for the game.
type BreakALoopConfig struct {
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Enemy   EnemyConfig   `yaml:"enemy"`
	Token   TokenConfig   `yaml:"token"`
	Timing  TimingConfig  `yaml:"timing"`
	Input   InputConfig   `yaml:"input"`
}

// WorldConfig is the playfield size.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig drives the player's motion.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // cells/s²
	JumpVelocity float64 `yaml:"jump_velocity"` // negative is up
	HalfLife     float64 `yaml:"half_life"`     // seconds to close half the gap to the target speed
}

// PlayerConfig defines the player's sizes and abilities.
type PlayerConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	SmallWidth    float64 `yaml:"small_width"`
	SmallHeight   float64 `yaml:"small_height"`
	SpeedPerWidth float64 `yaml:"speed_per_width"` // target speed is width times this
	Jumps         int     `yaml:"jumps"`
	BoostedJumps  int     `yaml:"boosted_jumps"`
}

// EnemyConfig defines enemy behaviour.
type EnemyConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	// MirrorFrom is the first level index where enemies copy the player's
	// velocity instead of patrolling.
	MirrorFrom int `yaml:"mirror_from"`
}

// TokenConfig defines collected token flight.
type TokenConfig struct {
	FlightSpeed float64 `yaml:"flight_speed"`
}

// TimingConfig holds frame rates and screen timings.
type TimingConfig struct {
	TickRate    int     `yaml:"tick_rate"`
	LagTickRate int     `yaml:"lag_tick_rate"`
	Transition  float64 `yaml:"transition"`   // seconds
	CursorBlink float64 `yaml:"cursor_blink"` // seconds per blink period
}

// InputConfig tunes keyboard handling. Terminals report key presses and
// repeats but never releases, so a direction counts as held for HoldSeconds
// after its last press.
type InputConfig struct {
	HoldSeconds float64 `yaml:"hold_seconds"`
}
