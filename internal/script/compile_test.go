package script

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/breakaloop/internal/cgrammar"
)

func TestPrefilter(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"include dropped", "#include <game.h>\nint x;", "\nint x;"},
		{"indented hash kept", "  #define X\nint x;", "  #define X\nint x;"},
		{"line comment dropped", "a();\n   // note $\nb();", "a();\n\nb();"},
		{"trailing comment kept", "a(); // note", "a(); // note"},
		{"placeholders stripped", "a();\n$\nif ($) $", "a();\n\nif () "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prefilter(tt.src); got != tt.want {
				t.Errorf("Prefilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileBlocks(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  [][]Statement
		codes []Code
	}{
		{
			name:  "empty source",
			src:   "",
			want:  [][]Statement{},
			codes: []Code{CodeNoEntryPoint},
		},
		{
			name:  "other function only",
			src:   "void tick() { while (1) { a(); } }",
			want:  [][]Statement{},
			codes: []Code{CodeNoEntryPoint},
		},
		{
			name: "main without loops",
			src:  "int main() { a(); return 0; }",
			want: [][]Statement{},
		},
		{
			name: "single loop",
			src:  "int main() { while (1) { a(); break; b(); } }",
			want: [][]Statement{{Effectful{Name: "a"}, Break{}, Effectful{Name: "b"}}},
		},
		{
			name: "loops in source order",
			src:  "int main() { while (x()) { a(); } setup(); while (1) { return 0; } }",
			want: [][]Statement{
				{Effectful{Name: "a"}},
				{Return{}},
			},
		},
		{
			name: "for and do-while are skipped",
			src:  "int main() { int i; for (i = 0; i < 3; i++) { a(); } do { b(); } while (1); while (1) { c(); } }",
			want: [][]Statement{{Effectful{Name: "c"}}},
		},
		{
			name:  "loop body must be a block",
			src:   "int main() { while (1) a(); }",
			want:  [][]Statement{},
			codes: []Code{CodeLoopBodyNotBlock},
		},
		{
			name:  "declarations in body dropped",
			src:   "int main() { while (1) { int n = 3; a(); } }",
			want:  [][]Statement{{Effectful{Name: "a"}}},
			codes: []Code{CodeDeclarationDropped},
		},
		{
			name: "conditional with short-circuit",
			src:  "int main() { while (1) { if (x() && (y())) break; } }",
			want: [][]Statement{{
				Conditional{Cond: LogicalAnd{L: Call{Name: "x"}, R: Call{Name: "y"}}, Then: Break{}},
			}},
		},
		{
			name: "nested conditional",
			src:  "int main() { while (1) { if (x()) if (y()) return; } }",
			want: [][]Statement{{
				Conditional{Cond: Call{Name: "x"}, Then: Conditional{Cond: Call{Name: "y"}, Then: Return{}}},
			}},
		},
		{
			name:  "else branch dropped",
			src:   "int main() { while (1) { if (x()) a(); else b(); } }",
			want:  [][]Statement{{Conditional{Cond: Call{Name: "x"}, Then: Effectful{Name: "a"}}}},
			codes: []Code{CodeElseDropped},
		},
		{
			name:  "block as if body",
			src:   "int main() { while (1) { if (x()) { a(); } } }",
			want:  [][]Statement{{Conditional{Cond: Call{Name: "x"}, Then: Unsupported{Construct: "block"}}}},
			codes: []Code{CodeUnsupportedStatement},
		},
		{
			name:  "non-and operator",
			src:   "int main() { while (1) { if (x() || y()) break; } }",
			want:  [][]Statement{{Conditional{Cond: UnsupportedExpr{Construct: "operator ||"}, Then: Break{}}}},
			codes: []Code{CodeUnsupportedOperator},
		},
		{
			name:  "complex callee",
			src:   "int main() { while (1) { (*hooks[0])(); } }",
			want:  [][]Statement{{Unsupported{Construct: "call"}}},
			codes: []Code{CodeComplexCallee},
		},
		{
			name:  "assignment and continue",
			src:   "int main() { int n; while (1) { n = 1; continue; } }",
			want:  [][]Statement{{Unsupported{Construct: "assignment"}, Unsupported{Construct: "continue"}}},
			codes: []Code{CodeUnsupportedStatement, CodeUnsupportedStatement},
		},
		{
			name:  "empty statement",
			src:   "int main() { while (1) { ; } }",
			want:  [][]Statement{{Unsupported{Construct: "empty statement"}}},
			codes: []Code{CodeEmptyStatement},
		},
		{
			name: "preprocessor, comments and placeholder",
			src: `#include <game.h>

int main() {
  start_game();
  // FIXME: game_is_running never returns false
  while (game_is_running()) {
    update_game();
    $
  }
  return 0;
}`,
			want: [][]Statement{{Effectful{Name: "update_game"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustCompile(t, tt.src)
			if len(out.Blocks) != len(tt.want) {
				t.Fatalf("got %d blocks, want %d", len(out.Blocks), len(tt.want))
			}
			for i, b := range out.Blocks {
				if got := b.Statements(); !reflect.DeepEqual(got, tt.want[i]) {
					t.Errorf("block %d = %#v, want %#v", i, got, tt.want[i])
				}
			}
			var codes []Code
			for _, d := range out.Diagnostics {
				codes = append(codes, d.Code)
			}
			if !reflect.DeepEqual(codes, tt.codes) {
				t.Errorf("diagnostic codes = %v, want %v", codes, tt.codes)
			}
		})
	}
}

func TestCompileRejectsSyntaxErrors(t *testing.T) {
	sources := []string{
		"int main() { while (1) { a() } }",
		"int main() { while (1) { if () break; } }",
		"int main() { while (1) { a(); }",
		"int main() { @ }",
	}

	for _, src := range sources {
		out, err := Compile(src, quietLogger())
		if err != nil {
			t.Errorf("Compile(%q) error = %v, want nil", src, err)
		}
		if out.Status != StatusRejected {
			t.Errorf("Compile(%q) status = %v, want rejected", src, out.Status)
		}
		if !errors.Is(out.Err, cgrammar.ErrSyntax) {
			t.Errorf("Compile(%q) outcome error = %v, want syntax error", src, out.Err)
		}
		if len(out.Blocks) != 0 {
			t.Errorf("Compile(%q) produced %d blocks", src, len(out.Blocks))
		}
	}
}

func TestCompileGotoIsFatal(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		construct string
	}{
		{"direct", "int main() { while (1) { goto done; } done: return 0; }", "goto done"},
		{"if body", "int main() { while (1) { if (x()) goto done; } done: return 0; }", "goto done"},
		{"labeled", "int main() { while (1) { l: goto l; } }", "goto l"},
		{"block as if body", "int main() { while (1) { if (x()) { a(); goto done; } } done: return 0; }", "goto done"},
		{"else branch", "int main() { while (1) { if (x()) a(); else goto done; } done: return 0; }", "goto done"},
		{"nested loop", "int main() { while (1) { for (;;) { goto done; } } done: return 0; }", "goto done"},
		{"first of several", "int main() { while (1) { a(); } while (1) { l: if (y()) goto m; goto n; } m: n: ; }", "goto m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Compile(tt.src, quietLogger())
			if !errors.Is(err, ErrUnimplemented) {
				t.Fatalf("Compile() error = %v, want ErrUnimplemented", err)
			}
			if errors.Is(err, cgrammar.ErrSyntax) {
				t.Errorf("goto must not be reported as a syntax error")
			}
			var uerr *UnimplementedError
			if !errors.As(err, &uerr) || uerr.Construct != tt.construct {
				t.Errorf("error = %#v, want %q", err, tt.construct)
			}
			if out.Status != StatusUnimplemented {
				t.Errorf("status = %v, want unimplemented", out.Status)
			}
			if !errors.Is(out.Err, ErrUnimplemented) {
				t.Errorf("outcome error = %v", out.Err)
			}
			if len(out.Blocks) != 0 {
				t.Errorf("produced %d blocks", len(out.Blocks))
			}
		})
	}
}

func TestCompileGotoOutsideLoopIsIgnored(t *testing.T) {
	out := mustCompile(t, "int main() { goto start; start: while (1) { a(); } }")
	if len(out.Blocks) != 0 {
		t.Errorf("labeled loop should not be extracted, got %d blocks", len(out.Blocks))
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusUnattempted, "unattempted"},
		{StatusCompiled, "compiled"},
		{StatusRejected, "rejected"},
		{StatusUnimplemented, "unimplemented"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestBlockString(t *testing.T) {
	b := NewBlock(
		Effectful{Name: "update_game"},
		Conditional{Cond: LogicalAnd{L: Call{Name: "a"}, R: Call{Name: "b"}}, Then: Break{}},
		Unsupported{Construct: "for"},
	)
	want := "{\n    update_game();\n    if (a() && b()) break;\n    /* unsupported: for */\n}"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSplice(t *testing.T) {
	tests := []struct {
		src, text, want string
	}{
		{"while (1) { $ $ }", "break;", "while (1) { break; $ }"},
		{"if ($) $", "player_is_jumping()", "if (player_is_jumping()) $"},
		{"no cursor", "break;", "no cursor"},
	}
	for _, tt := range tests {
		if got := Splice(tt.src, tt.text); got != tt.want {
			t.Errorf("Splice(%q, %q) = %q, want %q", tt.src, tt.text, got, tt.want)
		}
	}
}
