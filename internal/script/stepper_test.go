package script

import (
	"reflect"
	"testing"
)

func TestStep(t *testing.T) {
	tests := []struct {
		name    string
		block   Block
		answers map[string]bool
		want    Signal
		calls   []string
	}{
		{
			name:  "empty block",
			block: NewBlock(),
			want:  0,
		},
		{
			name:  "full pass without unwinding",
			block: NewBlock(Effectful{Name: "a"}, Unsupported{Construct: "for"}, Effectful{Name: "b"}),
			want:  0,
			calls: []string{"a", "b"},
		},
		{
			name:  "break stops the pass",
			block: NewBlock(Effectful{Name: "a"}, Break{}, Effectful{Name: "b"}),
			want:  1,
			calls: []string{"a"},
		},
		{
			name:  "return unwinds everything",
			block: NewBlock(Return{}, Effectful{Name: "a"}),
			want:  UnwindAll,
		},
		{
			name:  "false conditional continues",
			block: NewBlock(Conditional{Cond: Call{Name: "x"}, Then: Break{}}, Effectful{Name: "a"}),
			want:  0,
			calls: []string{"x", "a"},
		},
		{
			name:    "true conditional returns its branch signal",
			block:   NewBlock(Conditional{Cond: Call{Name: "x"}, Then: Break{}}, Effectful{Name: "a"}),
			answers: map[string]bool{"x": true},
			want:    1,
			calls:   []string{"x"},
		},
		{
			name:    "true conditional ends the pass with zero",
			block:   NewBlock(Conditional{Cond: Call{Name: "x"}, Then: Effectful{Name: "b"}}, Effectful{Name: "a"}),
			answers: map[string]bool{"x": true},
			want:    0,
			calls:   []string{"x", "b"},
		},
		{
			name: "nested conditional",
			block: NewBlock(Conditional{
				Cond: Call{Name: "x"},
				Then: Conditional{Cond: Call{Name: "y"}, Then: Return{}},
			}),
			answers: map[string]bool{"x": true, "y": true},
			want:    UnwindAll,
			calls:   []string{"x", "y"},
		},
		{
			name:  "unsupported condition is false",
			block: NewBlock(Conditional{Cond: UnsupportedExpr{Construct: "literal"}, Then: Break{}}),
			want:  0,
		},
		{
			name: "short-circuit skips the right side",
			block: NewBlock(
				Conditional{Cond: LogicalAnd{L: Call{Name: "x"}, R: Call{Name: "y"}}, Then: Break{}},
				Effectful{Name: "a"},
			),
			want:  0,
			calls: []string{"x", "a"},
		},
		{
			name:    "left side evaluated once",
			block:   NewBlock(Conditional{Cond: LogicalAnd{L: Call{Name: "x"}, R: Call{Name: "y"}}, Then: Break{}}),
			answers: map[string]bool{"x": true, "y": true},
			want:    1,
			calls:   []string{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder(tt.answers)
			if got := Step(tt.block, r); got != tt.want {
				t.Errorf("Step() = %d, want %d", got, tt.want)
			}
			if !reflect.DeepEqual(r.calls, tt.calls) {
				t.Errorf("calls = %v, want %v", r.calls, tt.calls)
			}
		})
	}
}

func TestStepIsOnePassPerCall(t *testing.T) {
	b := NewBlock(Effectful{Name: "a"}, Effectful{Name: "b"})
	r := newRecorder(nil)
	for i := 0; i < 3; i++ {
		Step(b, r)
	}
	if r.count("a") != 3 || r.count("b") != 3 {
		t.Errorf("calls = %v, want three full passes", r.calls)
	}
}
