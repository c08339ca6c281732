package breakaloop

import (
	"strings"
	"testing"

	"github.com/vovakirdan/breakaloop/internal/config"
	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/levels"
	"github.com/vovakirdan/breakaloop/internal/registry"
)

func TestRegistered(t *testing.T) {
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("%s is not registered: %v", GameID, err)
	}
	if g.ID() != GameID {
		t.Errorf("ID() = %q, want %q", g.ID(), GameID)
	}
}

func TestBreakTokenClearsLevel(t *testing.T) {
	g := newTestGame(t, []Option{SkipTitle()}, testLevel(openLoop, token("break;", 4, 40)))

	var events []core.Event
	for i := 0; i < 300 && g.Phase() != PhaseFinished; i++ {
		events = append(events, run(g, 1)...)
	}

	if g.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want finished; snapshot %+v", g.Phase(), g.Snapshot())
	}
	if len(events) != 2 {
		t.Fatalf("events = %+v, want level cleared then run finished", events)
	}
	if events[0].Kind != core.EventLevelCleared || events[0].Level != 0 || events[0].Elapsed <= 0 {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Kind != core.EventRunFinished || events[1].Elapsed < events[0].Elapsed {
		t.Errorf("second event = %+v", events[1])
	}
	if st := g.State(); !st.GameOver || st.Score != 1 {
		t.Errorf("State() = %+v", st)
	}
}

func TestLevelsAdvanceInOrder(t *testing.T) {
	first := testLevel(openLoop, token("break;", 4, 40))
	second := testLevel(closedLoop)
	second.ID = "u"
	g := newTestGame(t, []Option{SkipTitle()}, first, second)

	for i := 0; i < 300 && g.State().Level == 0; i++ {
		run(g, 1)
	}
	run(g, 60)

	snap := g.Snapshot()
	if snap.Level != 1 || snap.Phase != PhasePlaying || snap.Cleared != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Code != closedLoop {
		t.Errorf("code = %q", snap.Code)
	}
}

func TestClosedLoopNeverFinishes(t *testing.T) {
	g := newTestGame(t, []Option{SkipTitle()}, testLevel(closedLoop))
	if events := run(g, 120); len(events) != 0 {
		t.Errorf("events = %+v", events)
	}
	snap := g.Snapshot()
	if snap.Phase != PhasePlaying || snap.Remaining != 1 || snap.Status != StatusCompiled {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestCompilationStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"compiled", closedLoop, StatusCompiled},
		{"empty condition", "int main() { while (1) { if ($) $ } }", StatusFailed},
		{"goto", "int main() { while (1) { goto done; } done: return 0; }", StatusGotoFailure},
		{"labeled goto", "int main() { while (1) { l: goto l; } }", StatusGotoFailure},
		{"goto in if block", "int main() { while (1) { if (x()) { goto done; } } done: return 0; }", StatusGotoFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, []Option{SkipTitle()}, testLevel(tt.code))
			run(g, 30)
			snap := g.Snapshot()
			if snap.Status != tt.want {
				t.Errorf("Status = %q, want %q", snap.Status, tt.want)
			}
			if snap.Phase != PhasePlaying {
				t.Errorf("Phase = %v, want playing", snap.Phase)
			}
		})
	}
}

func TestLagLowersTickRate(t *testing.T) {
	g := newTestGame(t, []Option{SkipTitle()}, testLevel("int main() { while (1) { lagB(); } }"))
	res := g.Step(core.NewInputFrame())
	if res.TickRate != config.Default().Timing.LagTickRate {
		t.Errorf("TickRate = %d, want %d", res.TickRate, config.Default().Timing.LagTickRate)
	}

	plain := newTestGame(t, []Option{SkipTitle()}, testLevel(closedLoop))
	if res := plain.Step(core.NewInputFrame()); res.TickRate != 60 {
		t.Errorf("TickRate = %d, want 60", res.TickRate)
	}
}

func TestTitleWaitsForConfirm(t *testing.T) {
	g := newTestGame(t, nil, testLevel(closedLoop))
	run(g, 10)
	if g.Phase() != PhaseTitle || g.Snapshot().Tick != 0 {
		t.Fatalf("phase = %v tick = %d, want title and no ticks", g.Phase(), g.Snapshot().Tick)
	}
	run(g, 1, core.ActionConfirm)
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", g.Phase())
	}
}

func TestPauseFreezesTime(t *testing.T) {
	g := newTestGame(t, []Option{SkipTitle()}, testLevel(closedLoop))
	run(g, 5)
	run(g, 1, core.ActionPause)
	before := g.Snapshot()
	run(g, 20)
	if after := g.Snapshot(); after != before || !g.State().Paused {
		t.Errorf("paused game advanced: %+v -> %+v", before, after)
	}
	run(g, 1, core.ActionPause)
	if g.State().Paused || g.Snapshot().Tick != before.Tick+1 {
		t.Errorf("unpause did not resume: %+v", g.Snapshot())
	}
}

func TestRestartReloadsLevel(t *testing.T) {
	g := newTestGame(t, []Option{SkipTitle()}, testLevel(openLoop, token("break;", 70, 40)))
	run(g, 30, core.ActionRight)
	if x := g.Snapshot().PlayerX; x < 5 {
		t.Fatalf("player did not move: x = %v", x)
	}

	run(g, 1, core.ActionRestart)
	if g.Phase() != PhaseTransition {
		t.Fatalf("phase = %v, want transition", g.Phase())
	}
	run(g, 40)

	snap := g.Snapshot()
	if snap.Phase != PhasePlaying || snap.PlayerX < 0.99 || snap.PlayerX > 1.01 {
		t.Errorf("snapshot after restart = %+v", snap)
	}
	if snap.Code != openLoop || snap.Tokens != 1 {
		t.Errorf("level not reloaded: %+v", snap)
	}
}

func TestFinishedScreenRestartsRun(t *testing.T) {
	g := newTestGame(t, []Option{SkipTitle()}, testLevel(openLoop, token("break;", 4, 40)))
	for i := 0; i < 300 && g.Phase() != PhaseFinished; i++ {
		run(g, 1)
	}
	if g.Phase() != PhaseFinished {
		t.Fatal("run did not finish")
	}
	run(g, 1, core.ActionRestart)
	if snap := g.Snapshot(); snap.Phase != PhasePlaying || snap.Cleared != 0 || snap.Code != openLoop {
		t.Errorf("snapshot = %+v", snap)
	}
	if g.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want 0", g.Elapsed())
	}
}

func TestGameDeterminism(t *testing.T) {
	set, err := levels.Load("")
	if err != nil {
		t.Fatal(err)
	}

	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame(core.ActionRight)
		if i%25 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	play := func() Snapshot {
		g := New(WithConfig(config.Default()), WithLevels(set), WithLogger(quiet()), SkipTitle())
		g.Reset(core.DefaultConfig())
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	if s1, s2 := play(), play(); s1 != s2 {
		t.Errorf("Determinism failed:\n%+v\n%+v", s1, s2)
	}
}

func TestEmbeddedLevelsLoadOnReset(t *testing.T) {
	g := New(WithConfig(config.Default()), WithLogger(quiet()), WithStartLevel(99))
	g.Reset(core.DefaultConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if lvl := g.State().Level; lvl != 9 {
		t.Errorf("start level clamped to %d, want 9", lvl)
	}
}

func TestRenderCodePanel(t *testing.T) {
	code := "int main() {\n  while (1) { $ }\n}\n"
	g := newTestGame(t, []Option{SkipTitle()}, testLevel(code))
	screen := core.NewScreen(80, 40)
	g.Render(screen)

	if row := screen.Row(1); !strings.HasPrefix(row, " int main() {") {
		t.Errorf("row 1 = %q", row)
	}
	if row := screen.Row(2); !strings.HasPrefix(row, "   while (1) { "+string(CursorChar)+" }") {
		t.Errorf("row 2 = %q", row)
	}
	if row := screen.Row(4); !strings.Contains(row, StatusCompiled) {
		t.Errorf("status row = %q", row)
	}
	if c := screen.GetCell(1, 4); c.Color != core.ColorGreen {
		t.Errorf("status colour = %v, want green", c.Color)
	}
	if row := screen.Row(0); !strings.Contains(row, "00:00:00.00") || !strings.Contains(row, "Level 1/1") {
		t.Errorf("header row = %q", row)
	}
}

func TestRenderScreens(t *testing.T) {
	g := newTestGame(t, nil, testLevel(closedLoop))
	screen := core.NewScreen(80, 40)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Press Enter to play") {
		t.Error("title screen missing prompt")
	}

	run(g, 1, core.ActionConfirm)
	run(g, 1, core.ActionPause)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		secs float64
		want string
	}{
		{0, "00:00:00.00"},
		{83.456, "00:01:23.46"},
		{3725.5, "01:02:05.50"},
	}
	for _, tt := range tests {
		if got := formatTime(tt.secs); got != tt.want {
			t.Errorf("formatTime(%v) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
