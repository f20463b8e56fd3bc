// Package isa holds the static, opcode-indexed metadata shared by the VM
// core and the disassembler: the 22-opcode table and each opcode's fixed
// argument count. Neither component shares any other state with the
// other; this table is pure data, not behavior.
package isa

// Opcode identifies one of the 22 instructions.
type Opcode uint16

const (
	Halt Opcode = iota
	Set
	Push
	Pop
	Eq
	Gt
	Jmp
	Jt
	Jf
	Add
	Mult
	Mod
	And
	Or
	Not
	Rmem
	Wmem
	Call
	Ret
	Out
	In
	Noop

	// NumOpcodes is one past the highest valid opcode value.
	NumOpcodes = Noop + 1
)

// Info describes one opcode: its mnemonic and argument count.
type Info struct {
	Name string
	Args int
}

// Table maps every valid opcode to its Info. Index with a cell value
// directly; cells >= NumOpcodes are not valid opcodes.
var Table = [NumOpcodes]Info{
	Halt: {"halt", 0},
	Set:  {"set", 2},
	Push: {"push", 1},
	Pop:  {"pop", 1},
	Eq:   {"eq", 3},
	Gt:   {"gt", 3},
	Jmp:  {"jmp", 1},
	Jt:   {"jt", 2},
	Jf:   {"jf", 2},
	Add:  {"add", 3},
	Mult: {"mult", 3},
	Mod:  {"mod", 3},
	And:  {"and", 3},
	Or:   {"or", 3},
	Not:  {"not", 2},
	Rmem: {"rmem", 2},
	Wmem: {"wmem", 2},
	Call: {"call", 1},
	Ret:  {"ret", 0},
	Out:  {"out", 1},
	In:   {"in", 1},
	Noop: {"noop", 0},
}

// Valid reports whether cell names a real opcode.
func Valid(cell uint16) bool {
	return cell < uint16(NumOpcodes)
}
