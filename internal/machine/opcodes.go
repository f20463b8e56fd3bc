package machine

import (
	"github.com/atom0s/Synacor-Challenge-2012/internal/isa"
)

// handlerFunc executes one instruction's effect, including advancing (or
// branching) the PC, and returns the step's outcome.
type handlerFunc func(m *Machine) Result

// handlers is the static, opcode-indexed dispatch table. It replaces the
// dynamic per-method opcode registration of the Python original with a
// fixed array of first-class handler values, built once and never
// mutated thereafter.
var handlers = [isa.NumOpcodes]handlerFunc{
	isa.Halt: opHalt,
	isa.Set:  opSet,
	isa.Push: opPush,
	isa.Pop:  opPop,
	isa.Eq:   opEq,
	isa.Gt:   opGt,
	isa.Jmp:  opJmp,
	isa.Jt:   opJt,
	isa.Jf:   opJf,
	isa.Add:  opAdd,
	isa.Mult: opMult,
	isa.Mod:  opMod,
	isa.And:  opAnd,
	isa.Or:   opOr,
	isa.Not:  opNot,
	isa.Rmem: opRmem,
	isa.Wmem: opWmem,
	isa.Call: opCall,
	isa.Ret:  opRet,
	isa.Out:  opOut,
	isa.In:   opIn,
	isa.Noop: opNoop,
}

const modulus = 32768

func opHalt(m *Machine) Result {
	return haltedResult()
}

func opSet(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	m.Reg[a] = b
	m.PC += 3
	return continueResult()
}

func opPush(m *Machine) Result {
	a, res := m.resolve(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	m.push(a)
	m.PC += 2
	return continueResult()
}

func opPop(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	v, ok := m.pop()
	if !ok {
		return failedResult(StackUnderflow, m.PC, errEmptyStack)
	}
	m.Reg[a] = v
	m.PC += 2
	return continueResult()
}

func opEq(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	c, res := m.resolve(m.arg(2))
	if res.Status == StatusFailed {
		return res
	}
	if b == c {
		m.Reg[a] = 1
	} else {
		m.Reg[a] = 0
	}
	m.PC += 4
	return continueResult()
}

func opGt(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	c, res := m.resolve(m.arg(2))
	if res.Status == StatusFailed {
		return res
	}
	if b > c {
		m.Reg[a] = 1
	} else {
		m.Reg[a] = 0
	}
	m.PC += 4
	return continueResult()
}

func opJmp(m *Machine) Result {
	a, res := m.resolve(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	m.PC = a
	return continueResult()
}

func opJt(m *Machine) Result {
	a, res := m.resolve(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	if a != 0 {
		m.PC = b
	} else {
		m.PC += 3
	}
	return continueResult()
}

func opJf(m *Machine) Result {
	a, res := m.resolve(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	if a == 0 {
		m.PC = b
	} else {
		m.PC += 3
	}
	return continueResult()
}

func opAdd(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	c, res := m.resolve(m.arg(2))
	if res.Status == StatusFailed {
		return res
	}
	m.Reg[a] = (b + c) % modulus
	m.PC += 4
	return continueResult()
}

func opMult(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	c, res := m.resolve(m.arg(2))
	if res.Status == StatusFailed {
		return res
	}
	m.Reg[a] = uint16((uint32(b) * uint32(c)) % modulus)
	m.PC += 4
	return continueResult()
}

func opMod(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	c, res := m.resolve(m.arg(2))
	if res.Status == StatusFailed {
		return res
	}
	if c == 0 {
		return failedResult(InvalidOperand, m.PC, errDivideByZero)
	}
	m.Reg[a] = b % c
	m.PC += 4
	return continueResult()
}

func opAnd(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	c, res := m.resolve(m.arg(2))
	if res.Status == StatusFailed {
		return res
	}
	m.Reg[a] = (b & c) % modulus
	m.PC += 4
	return continueResult()
}

func opOr(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	c, res := m.resolve(m.arg(2))
	if res.Status == StatusFailed {
		return res
	}
	m.Reg[a] = (b | c) % modulus
	m.PC += 4
	return continueResult()
}

func opNot(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	m.Reg[a] = (^b) & 0x7FFF
	m.PC += 3
	return continueResult()
}

func opRmem(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	m.Reg[a] = m.Mem[b]
	m.PC += 3
	return continueResult()
}

func opWmem(m *Machine) Result {
	a, res := m.resolve(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.resolve(m.arg(1))
	if res.Status == StatusFailed {
		return res
	}
	m.Mem[a] = b
	m.PC += 3
	return continueResult()
}

func opCall(m *Machine) Result {
	a, res := m.resolve(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	m.push(m.PC + 2)
	m.PC = a
	return continueResult()
}

func opRet(m *Machine) Result {
	v, ok := m.pop()
	if !ok {
		return haltedResult()
	}
	m.PC = v
	return continueResult()
}

func opOut(m *Machine) Result {
	a, res := m.resolve(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	if err := m.io.writeByte(byte(a)); err != nil {
		return failedResult(IOFailure, m.PC, err)
	}
	m.PC += 2
	return continueResult()
}

func opIn(m *Machine) Result {
	a, res := m.destReg(m.arg(0))
	if res.Status == StatusFailed {
		return res
	}
	b, res := m.io.nextByte(m)
	if res.Status != StatusContinue {
		return res
	}
	m.Reg[a] = uint16(b)
	m.PC += 2
	return continueResult()
}

func opNoop(m *Machine) Result {
	m.PC++
	return continueResult()
}
