package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "breakaloop.yaml"

// Load reads the game configuration.
// Search order: customPath -> ~/.breakaloop/configs/breakaloop.yaml ->
// ./configs/breakaloop.yaml -> embedded default -> hard-coded default.
// Files only need to set the values they change.
func Load(customPath string) (BreakALoopConfig, error) {
	base := embedded()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data, base)
		if err != nil {
			return base, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{UserPath(), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data, base); err == nil {
			return cfg, nil
		}
	}
	return base, nil
}

// UserPath returns ~/.breakaloop/configs/breakaloop.yaml, or "" when the
// home directory is unknown.
func UserPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breakaloop", "configs", FileName)
}

func embedded() BreakALoopConfig {
	cfg, err := parse(defaultYAML, Default())
	if err != nil {
		return Default()
	}
	return cfg
}

// parse overlays data on base and validates the result.
func parse(data []byte, base BreakALoopConfig) (BreakALoopConfig, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c BreakALoopConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size %dx%d must be positive", c.World.Width, c.World.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.SmallWidth <= 0 || c.Player.SmallHeight <= 0 {
		errs = append(errs, errors.New("player sizes must be positive"))
	}
	if c.Player.Jumps < 0 || c.Player.BoostedJumps < c.Player.Jumps {
		errs = append(errs, fmt.Errorf("jumps %d / boosted %d are inconsistent", c.Player.Jumps, c.Player.BoostedJumps))
	}
	if c.Physics.HalfLife <= 0 {
		errs = append(errs, errors.New("physics.half_life must be positive"))
	}
	if c.Timing.TickRate <= 0 || c.Timing.LagTickRate <= 0 {
		errs = append(errs, errors.New("tick rates must be positive"))
	}
	if c.Token.FlightSpeed <= 0 {
		errs = append(errs, errors.New("token.flight_speed must be positive"))
	}
	return errors.Join(errs...)
}
