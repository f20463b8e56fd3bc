package teleporter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// rawAckermann is the textbook recursive definition, with no closed-form
// shortcuts, used to check the Solver's closed forms against first
// principles for small inputs.
func rawAckermann(m, n, p uint16) uint16 {
	if m == 0 {
		return (n + 1) % 32768
	}
	if n == 0 {
		return rawAckermann(m-1, p, p)
	}
	return rawAckermann(m-1, rawAckermann(m, n-1, p), p)
}

func TestClosedFormsMatchRecursiveExpansion(t *testing.T) {
	s := NewSolver()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		n := uint16(rng.Intn(64))
		p := uint16(rng.Intn(32768))
		for m := uint16(0); m <= 2; m++ {
			want := rawAckermann(m, n, p)
			got := s.Ackermann(m, n, p)
			assert.Equalf(t, want, got, "m=%d n=%d p=%d", m, n, p)
		}
	}
}

func TestAckermannClosedFormBase(t *testing.T) {
	s := NewSolver()
	assert.Equal(t, uint16(5), s.Ackermann(0, 4, 99))
	assert.Equal(t, uint16(0), s.Ackermann(0, 32767, 99))
}

func TestSolveFindsReferenceInstance(t *testing.T) {
	s := NewSolver()
	p, found := s.Solve(6)
	assert.True(t, found)
	assert.EqualValues(t, 25734, p)
}
