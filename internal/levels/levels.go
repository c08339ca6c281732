// Package levels loads level definitions: the program shown in the code
// panel, the world geometry, the tokens and the enemies.
//
// The ten shipped levels are embedded; a directory of YAML files can be
// loaded in their place.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/breakaloop/internal/core"
)

//go:embed data/*.yaml
var embedded embed.FS

// ErrNotFound is returned when a level index or ID does not exist.
var ErrNotFound = errors.New("levels: level not found")

// Level is one playable level. Positions are in world cells.
type Level struct {
	Index     int // position in the loaded set, zero-based
	ID        string
	Name      string
	Code      string // source with '$' placeholders
	Spawn     core.Vec
	Platforms []core.RectF
	Tokens    []TokenSpec
	Enemies   []core.Vec
	FilePath  string
}

// TokenSpec places a code token. X is the horizontal centre of its text and
// Y the bottom edge.
type TokenSpec struct {
	Text string
	Pos  core.Vec
}

// Insertion is the text a token splices into the code. A bare "if" brings
// its own condition and body placeholders.
func Insertion(text string) string {
	if text == "if" {
		return "if ($) $"
	}
	return text
}

// Solved returns the code with every token spliced into the first free
// placeholder, in the order the tokens are listed.
func (l Level) Solved() string {
	code := l.Code
	for _, t := range l.Tokens {
		code = strings.Replace(code, "$", Insertion(t.Text), 1)
	}
	return code
}

// Placeholders counts the '$' cursors in the level's code.
func (l Level) Placeholders() int {
	return strings.Count(l.Code, "$")
}

// Set is an ordered collection of levels.
type Set struct {
	levels []Level
}

// NewSet builds a set from levels in order, assigning their indexes.
func NewSet(levels ...Level) Set {
	ls := append([]Level(nil), levels...)
	for i := range ls {
		ls[i].Index = i
	}
	return Set{levels: ls}
}

// Len returns the number of levels.
func (s Set) Len() int {
	return len(s.levels)
}

// At returns the level at index i.
func (s Set) At(i int) (Level, error) {
	if i < 0 || i >= len(s.levels) {
		return Level{}, fmt.Errorf("%w: index %d", ErrNotFound, i)
	}
	return s.levels[i], nil
}

// ByID returns the level with the given ID.
func (s Set) ByID(id string) (Level, error) {
	for _, l := range s.levels {
		if l.ID == id {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// All returns a copy of every level in order.
func (s Set) All() []Level {
	return append([]Level(nil), s.levels...)
}

// Loader reads level files from a file system.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader loads levels from a directory on disk.
func NewLoader(dir string) *Loader {
	return &Loader{FS: os.DirFS(dir), Root: "."}
}

// Embedded returns a loader for the levels shipped with the game.
func Embedded() *Loader {
	return &Loader{FS: embedded, Root: "data"}
}

// Load returns the embedded set, or the set in dir when dir is not empty.
func Load(dir string) (Set, error) {
	if dir == "" {
		return Embedded().LoadAll()
	}
	return NewLoader(dir).LoadAll()
}

// LoadAll scans Root recursively and loads every level file, ordered by ID.
// A file that fails to parse fails the whole load.
func (l *Loader) LoadAll() (Set, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}
		level, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return Set{}, fmt.Errorf("levels: scanning %s: %w", l.Root, err)
	}
	if len(levels) == 0 {
		return Set{}, fmt.Errorf("levels: no level files under %s", l.Root)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	for i := 1; i < len(levels); i++ {
		if levels[i].ID == levels[i-1].ID {
			return Set{}, fmt.Errorf("levels: duplicate id %q in %s and %s",
				levels[i].ID, levels[i-1].FilePath, levels[i].FilePath)
		}
	}
	for i := range levels {
		levels[i].Index = i
	}
	return Set{levels: levels}, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading %s: %w", p, err)
	}
	level, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing %s: %w", p, err)
	}
	if level.ID == "" {
		level.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	level.FilePath = p
	return level, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
