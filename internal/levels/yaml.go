package levels

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/breakaloop/internal/core"
)

type yamlLevel struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Spawn     yamlPoint   `yaml:"spawn"`
	Code      string      `yaml:"code"`
	Platforms []yamlRect  `yaml:"platforms,omitempty"`
	Tokens    []yamlToken `yaml:"tokens,omitempty"`
	Enemies   []yamlPoint `yaml:"enemies,omitempty"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlToken struct {
	Text string  `yaml:"text"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// ParseYAML parses one level document.
func ParseYAML(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.Code == "" {
		return Level{}, errors.New("level has no code")
	}

	level := Level{
		ID:    yl.ID,
		Name:  yl.Name,
		Code:  yl.Code,
		Spawn: core.Vec{X: yl.Spawn.X, Y: yl.Spawn.Y},
	}
	for i, r := range yl.Platforms {
		if r.W <= 0 || r.H <= 0 {
			return Level{}, fmt.Errorf("platform %d has non-positive size", i)
		}
		level.Platforms = append(level.Platforms, core.RectF{X: r.X, Y: r.Y, W: r.W, H: r.H})
	}
	for i, t := range yl.Tokens {
		if t.Text == "" {
			return Level{}, fmt.Errorf("token %d has no text", i)
		}
		level.Tokens = append(level.Tokens, TokenSpec{Text: t.Text, Pos: core.Vec{X: t.X, Y: t.Y}})
	}
	for _, e := range yl.Enemies {
		level.Enemies = append(level.Enemies, core.Vec{X: e.X, Y: e.Y})
	}
	return level, nil
}
