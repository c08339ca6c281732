package breakaloop

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakaloop/internal/config"
	"github.com/vovakirdan/breakaloop/internal/script"
)

// Names a level's code can call.
const (
	CallShrinkPlayer    = "shrink_player"
	CallIncreaseJumps   = "increase_jumps"
	CallLag             = "lagB"
	CallPlayerIsJumping = "player_is_jumping"
	CallUpdateGame      = "update_game"
	CallFreeTexture     = "free_texture"
)

// newCalls builds the capability table a level program runs against.
func newCalls(cfg config.BreakALoopConfig, logger *log.Logger) *script.Calls[*stage] {
	return script.NewCalls[*stage](script.WithLogger(logger)).
		Effect(CallShrinkPlayer, func(s *stage) { s.player.Shrink(cfg.Player) }).
		Effect(CallIncreaseJumps, func(s *stage) { s.player.MaxJumps = cfg.Player.BoostedJumps }).
		Effect(CallLag, func(s *stage) { s.lagged = true }).
		Query(CallPlayerIsJumping, func(s *stage) bool { return s.player.Jumping() }).
		Noop(CallUpdateGame, CallFreeTexture)
}

// CallNames lists every call a level program can make.
func CallNames() []string {
	return newCalls(config.Default(), log.Default()).Names()
}
