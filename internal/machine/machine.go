// Package machine implements the Synacor virtual machine: memory,
// registers, stack, the fetch-decode-execute loop, character I/O, and the
// operator's control channel.
package machine

import (
	"fmt"

	"github.com/atom0s/Synacor-Challenge-2012/internal/image"
	"github.com/atom0s/Synacor-Challenge-2012/internal/isa"
)

// Status is the outcome of a single Step, or of a full Run.
type Status int

const (
	// StatusContinue means the machine is still running.
	StatusContinue Status = iota
	// StatusHalted means the machine stopped cleanly (halt, or ret on an
	// empty stack).
	StatusHalted
	// StatusFailed means the machine hit a fatal error.
	StatusFailed
)

// FailureKind classifies a fatal error.
type FailureKind int

const (
	InvalidOperand FailureKind = iota
	StackUnderflow
	UnknownOpcode
	IOFailure
	ControlCommandError
)

func (k FailureKind) String() string {
	switch k {
	case InvalidOperand:
		return "invalid operand"
	case StackUnderflow:
		return "stack underflow"
	case UnknownOpcode:
		return "unknown opcode"
	case IOFailure:
		return "io failure"
	case ControlCommandError:
		return "control command error"
	default:
		return "unknown failure"
	}
}

// Result reports the outcome of executing one instruction.
type Result struct {
	Status Status
	Kind   FailureKind
	PC     uint16
	Err    error
}

func (r Result) Error() string {
	if r.Err != nil {
		return fmt.Sprintf("%s at %04X: %v", r.Kind, r.PC, r.Err)
	}
	return fmt.Sprintf("%s at %04X", r.Kind, r.PC)
}

func continueResult() Result { return Result{Status: StatusContinue} }
func haltedResult() Result   { return Result{Status: StatusHalted} }
func failedResult(kind FailureKind, pc uint16, err error) Result {
	return Result{Status: StatusFailed, Kind: kind, PC: pc, Err: err}
}

// Machine holds all mutable VM state for one run.
type Machine struct {
	Mem [image.MaxCells]uint16
	Reg [image.RegisterCount]uint16
	Stk []uint16
	PC  uint16

	// DumpPath names the file `!dump` writes to; HistoryPath names the
	// history file `!history` reports on.
	DumpPath    string
	HistoryPath string

	io  *ioState
	ctl *controlChannel
}

// New builds a Machine from a loaded program image, zero-padded to the
// full 32768-cell address space.
func New(img image.Image, term Terminal) *Machine {
	m := &Machine{
		DumpPath:    "dump.bin",
		HistoryPath: "history.txt",
	}
	copy(m.Mem[:], img)
	m.io = newIOState(term)
	m.ctl = newControlChannel(m)
	return m
}

// resolve reads the numeric value a cell denotes: the literal itself, or
// the named register's contents.
func (m *Machine) resolve(cell uint16) (uint16, Result) {
	op := image.Classify(cell)
	switch op.Kind {
	case image.KindLiteral:
		return op.Value, Result{}
	case image.KindRegister:
		return m.Reg[op.Value], Result{}
	default:
		return 0, failedResult(InvalidOperand, m.PC, fmt.Errorf("operand %d is invalid", cell))
	}
}

// destReg validates that cell names a register and returns its index.
func (m *Machine) destReg(cell uint16) (uint16, Result) {
	op := image.Classify(cell)
	if op.Kind != image.KindRegister {
		return 0, failedResult(InvalidOperand, m.PC, fmt.Errorf("operand %d is not a register", cell))
	}
	return op.Value, Result{}
}

func (m *Machine) push(v uint16) {
	m.Stk = append(m.Stk, v)
}

func (m *Machine) pop() (uint16, bool) {
	n := len(m.Stk)
	if n == 0 {
		return 0, false
	}
	v := m.Stk[n-1]
	m.Stk = m.Stk[:n-1]
	return v, true
}

// arg returns the raw cell at PC+1+i, the i-th argument of the
// instruction at PC.
func (m *Machine) arg(i int) uint16 {
	return m.Mem[m.PC+1+uint16(i)]
}

// Step executes exactly one instruction and advances the PC (unless the
// instruction branched).
func (m *Machine) Step() Result {
	op := m.Mem[m.PC]
	if !isa.Valid(op) {
		return failedResult(UnknownOpcode, m.PC, fmt.Errorf("opcode %d", op))
	}

	handler := handlers[op]
	return handler(m)
}

// Run steps the machine while the PC lies inside memory, until it halts
// or fails. A PC that leaves the address space ends the run as halted.
func (m *Machine) Run() Result {
	for int(m.PC) < len(m.Mem) {
		r := m.Step()
		if r.Status != StatusContinue {
			return r
		}
	}
	return haltedResult()
}
