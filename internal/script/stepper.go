package script

import "math"

// Signal is the number of Blocks to retire after one Step.
type Signal uint32

// UnwindAll retires every remaining Block.
const UnwindAll Signal = math.MaxUint32

// Step runs one full pass over b, one iteration of the source loop body.
//
// Execution stops at the first Break, Return or Conditional whose condition
// holds; a true Conditional ends the pass with its branch's signal even when
// that signal is zero.
func Step(b Block, c Caller) Signal {
	for _, s := range b.stmts {
		if sig, stop := execute(s, c); stop {
			return sig
		}
	}
	return 0
}

// execute runs one statement and reports whether the pass must stop.
func execute(s Statement, c Caller) (Signal, bool) {
	switch s := s.(type) {
	case Effectful:
		c.Call(s.Name)
		return 0, false
	case Break:
		return 1, true
	case Return:
		return UnwindAll, true
	case Conditional:
		if !Evaluate(s.Cond, c) {
			return 0, false
		}
		sig, _ := execute(s.Then, c)
		return sig, true
	default:
		return 0, false
	}
}

// Evaluate computes a condition. The right side of && is evaluated only when
// the left side is true, and the left side is evaluated exactly once.
func Evaluate(e Expression, c Caller) bool {
	switch e := e.(type) {
	case Call:
		return c.Call(e.Name)
	case LogicalAnd:
		return Evaluate(e.L, c) && Evaluate(e.R, c)
	default:
		return false
	}
}
