package script

import (
	"reflect"
	"testing"
)

type player struct {
	small    bool
	jumps    int
	maxJumps int
}

func newTable() *Calls[*player] {
	return NewCalls[*player](quietLogger()).
		Effect("shrink_player", func(p *player) { p.small = true }).
		Effect("increase_jumps", func(p *player) { p.maxJumps = 4 }).
		Query("player_is_jumping", func(p *player) bool { return p.jumps < p.maxJumps }).
		Noop("update_game", "free_texture")
}

func TestCallsInvoke(t *testing.T) {
	table := newTable()
	p := &player{jumps: 2, maxJumps: 2}
	c := table.Bind(p)

	if c.Call("shrink_player") {
		t.Error("effects must answer false")
	}
	if !p.small {
		t.Error("shrink_player had no effect")
	}
	if c.Call("player_is_jumping") {
		t.Error("player on the ground reported jumping")
	}
	p.jumps = 1
	if !c.Call("player_is_jumping") {
		t.Error("query did not read live state")
	}
	if c.Call("update_game") {
		t.Error("noop answered true")
	}
	if c.Call("load_next_asset") || c.Call("load_next_asset") {
		t.Error("unknown call answered true")
	}
}

func TestCallsNames(t *testing.T) {
	want := []string{"free_texture", "increase_jumps", "player_is_jumping", "shrink_player", "update_game"}
	if got := newTable().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestCallsSuggest(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"shrink", "shrink_player"},
		{"shrink_playr", "shrink_player"},
		{"Increase_Jumps", "increase_jumps"},
		{"launch_rockets", ""},
	}
	table := newTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Suggest(tt.name); got != tt.want {
				t.Errorf("Suggest(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestCallsDriveProgram(t *testing.T) {
	src := `int main() {
  while (1) {
    update_game();
    if (player_is_jumping()) break;
    shrink_player();
  }
}`
	out := mustCompile(t, src)
	p := &player{jumps: 2, maxJumps: 2}
	seq := NewSequencer(out.Blocks)
	c := newTable().Bind(p)

	if seq.Advance(c) {
		t.Fatal("finished while grounded")
	}
	if !p.small {
		t.Error("pass did not reach shrink_player")
	}
	p.jumps = 1
	if !seq.Advance(c) {
		t.Error("jumping should break the only loop")
	}
}
