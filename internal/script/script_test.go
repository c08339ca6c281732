package script

import (
	"io"

	"github.com/charmbracelet/log"
)

// recorder is a Caller that remembers every call and answers from a fixed table.
type recorder struct {
	calls   []string
	answers map[string]bool
}

func newRecorder(answers map[string]bool) *recorder {
	return &recorder{answers: answers}
}

func (r *recorder) Call(name string) bool {
	r.calls = append(r.calls, name)
	return r.answers[name]
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

func quietLogger() Option {
	return WithLogger(log.New(io.Discard))
}

func mustCompile(t interface {
	Helper()
	Fatalf(string, ...any)
}, src string) Outcome {
	t.Helper()
	out, err := Compile(src, quietLogger())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if out.Status != StatusCompiled {
		t.Fatalf("Compile() status = %v, err = %v", out.Status, out.Err)
	}
	return out
}
