package script

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Caller is the only way a running program reaches the outside world.
// Every Effectful statement and every evaluated Call invokes it once.
type Caller interface {
	Call(name string) bool
}

// CallerFunc adapts a function to Caller.
type CallerFunc func(name string) bool

func (f CallerFunc) Call(name string) bool { return f(name) }

type capability[S any] struct {
	effect func(S)
	query  func(S) bool
}

// Calls is a closed table of named capabilities over host state S.
// Names outside the table are logged once and answer false.
type Calls[S any] struct {
	entries map[string]capability[S]
	logger  *log.Logger

	mu     sync.Mutex
	warned map[string]bool
}

// NewCalls returns an empty table. Only WithLogger applies.
func NewCalls[S any](opts ...Option) *Calls[S] {
	o := buildOptions(opts)
	return &Calls[S]{
		entries: make(map[string]capability[S]),
		logger:  o.logger,
		warned:  make(map[string]bool),
	}
}

// Effect registers a mutating call. Effects always answer false.
func (t *Calls[S]) Effect(name string, fn func(S)) *Calls[S] {
	t.entries[name] = capability[S]{effect: fn}
	return t
}

// Query registers a call that answers from live state without mutating it.
func (t *Calls[S]) Query(name string, fn func(S) bool) *Calls[S] {
	t.entries[name] = capability[S]{query: fn}
	return t
}

// Noop registers calls that are recognized but do nothing.
func (t *Calls[S]) Noop(names ...string) *Calls[S] {
	for _, name := range names {
		t.entries[name] = capability[S]{}
	}
	return t
}

// Has reports whether name is in the table.
func (t *Calls[S]) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Names lists the recognized calls in sorted order.
func (t *Calls[S]) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs name against state.
func (t *Calls[S]) Invoke(state S, name string) bool {
	c, ok := t.entries[name]
	switch {
	case !ok:
		t.unknown(name)
		return false
	case c.query != nil:
		return c.query(state)
	case c.effect != nil:
		c.effect(state)
	}
	return false
}

// Bind returns a Caller that invokes the table against state.
func (t *Calls[S]) Bind(state S) Caller {
	return CallerFunc(func(name string) bool {
		return t.Invoke(state, name)
	})
}

// Suggest returns the closest recognized name, or "" when nothing is close.
func (t *Calls[S]) Suggest(name string) string {
	names := t.Names()
	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", len(name)/3+1
	for _, candidate := range names {
		d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

func (t *Calls[S]) unknown(name string) {
	t.mu.Lock()
	seen := t.warned[name]
	t.warned[name] = true
	t.mu.Unlock()
	if seen {
		return
	}
	if s := t.Suggest(name); s != "" {
		t.logger.Warn("unimplemented function", "name", name, "suggestion", s)
		return
	}
	t.logger.Warn("unimplemented function", "name", name)
}
