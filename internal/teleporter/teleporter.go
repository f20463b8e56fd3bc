// Package teleporter solves the modified three-argument Ackermann
// function used by the teleporter's confirmation routine: find the
// unique register-7 seed that makes A(4, 1, p) == 6.
package teleporter

import "runtime/debug"

// cacheSize is 5 * 32768: m ranges 0..4, n ranges 0..32767, and the cache
// is indexed as n*5 + m.
const cacheSize = 5 * 32768

// unknown is the memoization sentinel. Every legitimate result fits in
// [0, 32767], a signed 16-bit value, so -1 is unambiguous.
const unknown = -1

// Solver runs the modified Ackermann recursion with a per-trial memo
// table. It is safe to reuse across calls to Solve; the table is cleared
// between candidates.
type Solver struct {
	cache [cacheSize]int16
}

// NewSolver returns a ready-to-use Solver.
func NewSolver() *Solver {
	return &Solver{}
}

func (s *Solver) reset() {
	for i := range s.cache {
		s.cache[i] = unknown
	}
}

// ackermann computes the modified, modulo-32768 three-argument Ackermann
// function. Closed forms handle m in {0, 1, 2} directly, both to match
// the reference implementation's optimization and to keep recursion
// depth (and cache pressure) down for the m in {3, 4} cases that must
// fall back to the recursive definition.
func (s *Solver) ackermann(m, n, p uint16) uint16 {
	switch m {
	case 0:
		return (n + 1) % 32768
	case 1:
		return (n + p + 1) % 32768
	case 2:
		return uint16((uint32(n+2)*uint32(p) + uint32(n+1)) % 32768)
	}

	idx := uint32(n)*5 + uint32(m)
	if cached := s.cache[idx]; cached != unknown {
		return uint16(cached)
	}

	var res uint16
	if n == 0 {
		res = s.ackermann(m-1, p, p)
	} else {
		res = s.ackermann(m-1, s.ackermann(m, n-1, p), p)
	}

	s.cache[idx] = int16(res)
	return res
}

// Ackermann computes A(m, n, p) for a single, already-known p, clearing
// the memo table first. Exposed for the closed-form consistency tests.
func (s *Solver) Ackermann(m, n, p uint16) uint16 {
	s.reset()
	return s.ackermann(m, n, p)
}

// Solve searches p in [0, 32768) for the value making A(4, 1, p) equal
// target, returning the first match and true, or 0 and false if the
// whole range is exhausted without a solution.
func (s *Solver) Solve(target uint16) (uint16, bool) {
	for p := 0; p < 32768; p++ {
		s.reset()
		if s.ackermann(4, 1, uint16(p)) == target {
			return uint16(p), true
		}
	}
	return 0, false
}

// solveResult carries Solve's outcome across the goroutine boundary in
// SolveIsolated.
type solveResult struct {
	p     uint16
	found bool
}

// SolveIsolated runs Solve on a dedicated goroutine after setting the
// process's maximum stack size to an explicit 64 MiB, the Go analogue of
// the reference implementation's "/STACK:8388608" linker flag: the m in
// {3, 4} recursion is deep, and this pins the ceiling it runs under to a
// fixed value well above that 8 MiB (it is below Go's own default
// ceiling, so this does not raise the limit).
func (s *Solver) SolveIsolated(target uint16) (uint16, bool) {
	debug.SetMaxStack(64 << 20)

	done := make(chan solveResult, 1)
	go func() {
		p, found := s.Solve(target)
		done <- solveResult{p: p, found: found}
	}()

	r := <-done
	return r.p, r.found
}
