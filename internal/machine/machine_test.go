package machine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atom0s/Synacor-Challenge-2012/internal/image"
)

var errFakeTerminalClosed = errors.New("fake terminal: no more scripted lines")

// fakeTerminal feeds pre-scripted lines to the VM and records everything
// written to it, so tests never touch a real tty.
type fakeTerminal struct {
	lines  []string
	pos    int
	output strings.Builder
}

func (t *fakeTerminal) ReadLine() (string, error) {
	if t.pos >= len(t.lines) {
		return "", errFakeTerminalClosed
	}
	l := t.lines[t.pos]
	t.pos++
	return l, nil
}

func (t *fakeTerminal) Write(p []byte) (int, error) {
	return t.output.Write(p)
}

func (t *fakeTerminal) Close() error { return nil }

func newTestMachine(t *testing.T, program []uint16, lines []string) (*Machine, *fakeTerminal) {
	t.Helper()
	term := &fakeTerminal{lines: lines}
	m := New(image.Image(program), term)
	return m, term
}

func TestCanonicalSpecProgram(t *testing.T) {
	// 9, 32768, 32769, 4, 19, 32768 with reg[1] = 'A' - 4; expect output 'A'.
	program := []uint16{9, 32768, 32769, 4, 19, 32768, 0}
	m, term := newTestMachine(t, program, nil)
	m.Reg[1] = uint16('A') - 4

	res := m.Run()
	require.Equal(t, StatusHalted, res.Status)
	assert.Equal(t, "A", term.output.String())
	assert.EqualValues(t, 65, m.Reg[0])
}

func TestStackRoundTrip(t *testing.T) {
	// push 123; push 456; pop reg0; pop reg1; halt
	program := []uint16{
		2, 123,
		2, 456,
		3, 32768,
		3, 32769,
		0,
	}
	m, _ := newTestMachine(t, program, nil)

	res := m.Run()
	require.Equal(t, StatusHalted, res.Status)
	assert.EqualValues(t, 456, m.Reg[0])
	assert.EqualValues(t, 123, m.Reg[1])
}

func TestModularArithmetic(t *testing.T) {
	// set reg0 32758; add reg0 reg0 15; halt
	program := []uint16{
		1, 32768, 32758,
		9, 32768, 32768, 15,
		0,
	}
	m, _ := newTestMachine(t, program, nil)

	res := m.Run()
	require.Equal(t, StatusHalted, res.Status)
	assert.EqualValues(t, 5, m.Reg[0])
}

func TestArithmeticBoundaries(t *testing.T) {
	// add reg0 32767 1; halt
	add := []uint16{9, 32768, 32767, 1, 0}
	m, _ := newTestMachine(t, add, nil)
	require.Equal(t, StatusHalted, m.Run().Status)
	assert.EqualValues(t, 0, m.Reg[0])

	// mult reg0 32767 32767; halt
	mult := []uint16{10, 32768, 32767, 32767, 0}
	m2, _ := newTestMachine(t, mult, nil)
	require.Equal(t, StatusHalted, m2.Run().Status)
	assert.EqualValues(t, 1, m2.Reg[0])

	// not reg0 0; halt
	not0 := []uint16{14, 32768, 0, 0}
	m3, _ := newTestMachine(t, not0, nil)
	require.Equal(t, StatusHalted, m3.Run().Status)
	assert.EqualValues(t, 32767, m3.Reg[0])

	// not reg0 32767; halt
	not1 := []uint16{14, 32768, 32767, 0}
	m4, _ := newTestMachine(t, not1, nil)
	require.Equal(t, StatusHalted, m4.Run().Status)
	assert.EqualValues(t, 0, m4.Reg[0])
}

func TestRetOnEmptyStackHalts(t *testing.T) {
	program := []uint16{18}
	m, _ := newTestMachine(t, program, nil)
	res := m.Run()
	assert.Equal(t, StatusHalted, res.Status)
}

func TestPopOnEmptyStackFails(t *testing.T) {
	program := []uint16{3, 32768}
	m, _ := newTestMachine(t, program, nil)
	res := m.Run()
	require.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, StackUnderflow, res.Kind)
}

func TestUnknownOpcodeFails(t *testing.T) {
	program := []uint16{22}
	m, _ := newTestMachine(t, program, nil)
	res := m.Run()
	require.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, UnknownOpcode, res.Kind)
}

func TestInvalidOperandFails(t *testing.T) {
	// set 32776 0 : destination operand is out of range.
	program := []uint16{1, 32776, 0}
	m, _ := newTestMachine(t, program, nil)
	res := m.Run()
	require.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, InvalidOperand, res.Kind)
}

func TestEqGtWriteOnlyZeroOrOne(t *testing.T) {
	// eq reg0 5 5; gt reg1 5 3; halt
	program := []uint16{
		4, 32768, 5, 5,
		5, 32769, 5, 3,
		0,
	}
	m, _ := newTestMachine(t, program, nil)
	require.Equal(t, StatusHalted, m.Run().Status)
	assert.EqualValues(t, 1, m.Reg[0])
	assert.EqualValues(t, 1, m.Reg[1])
}

func TestInServesBufferedLineIncludingNewline(t *testing.T) {
	// in reg0; in reg1; halt
	program := []uint16{20, 32768, 20, 32769, 0}
	m, term := newTestMachine(t, program, []string{"A"})
	_ = term
	res := m.Run()
	require.Equal(t, StatusHalted, res.Status)
	assert.EqualValues(t, 'A', m.Reg[0])
	assert.EqualValues(t, '\n', m.Reg[1])
}

func TestControlCommandDoesNotConsumeProgramInput(t *testing.T) {
	// in reg0; halt
	program := []uint16{20, 32768, 0}
	m, term := newTestMachine(t, program, []string{"!pos", "Z"})
	res := m.Run()
	require.Equal(t, StatusHalted, res.Status)
	assert.EqualValues(t, 'Z', m.Reg[0])
	assert.Contains(t, term.output.String(), "Current execution position")
}

func TestControlHaltStopsCleanly(t *testing.T) {
	program := []uint16{20, 32768, 0}
	m, _ := newTestMachine(t, program, []string{"!halt"})
	res := m.Run()
	assert.Equal(t, StatusHalted, res.Status)
}

func TestSetRegControlCommand(t *testing.T) {
	program := []uint16{20, 32768, 0}
	m, _ := newTestMachine(t, program, []string{"!setreg 3 2a", "X"})
	res := m.Run()
	require.Equal(t, StatusHalted, res.Status)
	assert.EqualValues(t, 0x2a, m.Reg[3])
}

func TestHistoryReportsLocationWithoutRewritingIt(t *testing.T) {
	program := []uint16{20, 32768, 0}
	m, term := newTestMachine(t, program, []string{"!history", "X"})
	m.HistoryPath = t.TempDir() + "/does-not-exist.txt"

	res := m.Run()
	require.Equal(t, StatusHalted, res.Status)
	assert.Contains(t, term.output.String(), "No history recorded yet")
}

func TestPeekAndPokeControlCommands(t *testing.T) {
	program := []uint16{20, 32768, 0}
	m, term := newTestMachine(t, program, []string{"!poke 0 15 0", "!peek 0 2", "X"})
	res := m.Run()
	require.Equal(t, StatusHalted, res.Status)
	assert.EqualValues(t, 0x15, m.Mem[0])
	assert.EqualValues(t, 0x00, m.Mem[1])
	assert.Contains(t, term.output.String(), "0015")
}
