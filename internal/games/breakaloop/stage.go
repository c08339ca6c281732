package breakaloop

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakaloop/internal/config"
	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/levels"
	"github.com/vovakirdan/breakaloop/internal/script"
)

// codeOrigin is the screen cell of the first character of the code panel.
var codeOrigin = core.Vec{X: 1, Y: 1}

const tabWidth = 4

// Status lines shown below the code.
const (
	StatusCompiled    = "Compiled successfully!"
	StatusFailed      = "Compilation failed!"
	StatusGotoFailure = "goto is not implemented!"
	statusUnattempted = ""
)

// stage is one loaded level in play. It is also the host state that the
// program's calls act on.
type stage struct {
	def    levels.Level
	cfg    config.BreakALoopConfig
	logger *log.Logger

	width, height float64
	code          string
	program       *script.Program
	status        string
	lagged        bool
	blink         float64

	platforms []core.RectF
	tokens    []*Token
	enemies   []*Enemy
	player    *Player
}

func newStage(def levels.Level, cfg config.BreakALoopConfig, logger *log.Logger) *stage {
	s := &stage{
		def:       def,
		cfg:       cfg,
		logger:    logger,
		width:     float64(cfg.World.Width),
		height:    float64(cfg.World.Height),
		code:      def.Code,
		program:   script.NewProgram(script.WithLogger(logger)),
		platforms: append([]core.RectF(nil), def.Platforms...),
		player:    newPlayer(def.Spawn, cfg.Player),
	}
	for _, t := range def.Tokens {
		s.tokens = append(s.tokens, newToken(t.Text, t.Pos))
	}
	for _, e := range def.Enemies {
		s.enemies = append(s.enemies, newEnemy(e, cfg.Enemy))
	}
	s.recompile()
	return s
}

func (s *stage) index() int {
	return s.def.Index
}

func (s *stage) blocked(r core.RectF) bool {
	for _, p := range s.platforms {
		if p.Intersects(r) {
			return true
		}
	}
	return false
}

// recompile loads the current code into the program, discarding its progress.
func (s *stage) recompile() {
	out, _ := s.program.Load(s.code)
	switch out.Status {
	case script.StatusUnimplemented:
		s.status = StatusGotoFailure
	case script.StatusRejected:
		s.status = StatusFailed
	case script.StatusCompiled:
		s.status = StatusCompiled
	default:
		s.status = statusUnattempted
	}
	s.logger.Debug("code recompiled", "level", s.def.ID, "status", out.Status, "loops", len(out.Blocks))
}

// lines returns the code as displayed: tabs expanded, no trailing newline.
func (s *stage) lines() []string {
	code := strings.TrimRight(s.code, "\n")
	code = strings.ReplaceAll(code, "\t", strings.Repeat(" ", tabWidth))
	return strings.Split(code, "\n")
}

// cursor returns the top-left cell of the first placeholder.
func (s *stage) cursor() (core.Vec, bool) {
	for i, line := range s.lines() {
		left, _, ok := strings.Cut(line, string(script.Placeholder))
		if ok {
			col := float64(len([]rune(left)))
			return codeOrigin.Add(core.Vec{X: col, Y: float64(i)}), true
		}
	}
	return core.Vec{}, false
}

// collect sends t to the cursor. Without a placeholder there is nowhere to
// go and the token stays put.
func (s *stage) collect(t *Token) {
	if c, ok := s.cursor(); ok {
		t.collect(c)
	}
}

// splice inserts t into the code and recompiles.
func (s *stage) splice(t *Token) {
	s.code = script.Splice(s.code, t.Insertion())
	s.recompile()
	s.player.Restore(s.cfg.Player)
	s.lagged = false
	s.logger.Info("token placed", "level", s.def.ID, "token", t.Text)
}

// update advances everything but the player and runs one program pass.
// It reports whether the program has finished.
func (s *stage) update(dt float64, calls *script.Calls[*stage]) bool {
	if period := s.cfg.Timing.CursorBlink; period > 0 {
		s.blink += dt
		for s.blink >= period {
			s.blink -= period
		}
	}

	mirror := s.index() >= s.cfg.Enemy.MirrorFrom
	for _, e := range s.enemies {
		e.update(dt, s.player, mirror, s, s.cfg.Enemy.Speed)
	}

	for i := len(s.tokens) - 1; i >= 0; i-- {
		t := s.tokens[i]
		t.update(dt, s.cfg.Token.FlightSpeed)
		if t.finished {
			s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
			s.splice(t)
		}
	}

	return s.program.Tick(calls.Bind(s))
}

// cursorVisible reports whether the blinking cursor is in its lit half.
func (s *stage) cursorVisible() bool {
	return s.blink < s.cfg.Timing.CursorBlink/2
}
