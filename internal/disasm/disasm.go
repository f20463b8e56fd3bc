// Package disasm implements the linear Synacor disassembler: a single
// pass over a program image producing one annotated record per decoded
// instruction, with pseudo-comments describing each opcode's effect.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/atom0s/Synacor-Challenge-2012/internal/image"
	"github.com/atom0s/Synacor-Challenge-2012/internal/isa"
)

// Record is one decoded line of the listing.
type Record struct {
	Addr    uint16
	Bytes   []uint16 // the raw cells of the instruction (or the single cell of a data record)
	Mnemonic string
	Comment string
	IsData  bool
}

// Disassemble performs a linear scan over img, decoding every cell from
// address 0 onward. It never follows jumps, and it never fails: cells
// that don't decode as a known opcode become single-cell `data` records.
func Disassemble(img image.Image) []Record {
	var out []Record
	pos := uint16(0)
	for int(pos) < len(img) {
		op := img[pos]
		if !isa.Valid(op) {
			out = append(out, Record{
				Addr:    pos,
				Bytes:   []uint16{op},
				Mnemonic: "data",
				Comment: fmt.Sprintf("%04X (d: %d)", op, op),
				IsData:  true,
			})
			pos++
			continue
		}

		info := isa.Table[op]
		args := readArgs(img, pos, info.Args)

		rec := Record{
			Addr:     pos,
			Bytes:    append([]uint16{op}, args...),
			Mnemonic: info.Name,
			Comment:  comment(isa.Opcode(op), args),
		}
		out = append(out, rec)
		pos += uint16(1 + info.Args)

		if isBlockEnd(isa.Opcode(op)) {
			out = append(out, Record{IsData: false, Mnemonic: "", Addr: pos, Bytes: nil, Comment: ""})
		}
	}
	return out
}

func readArgs(img image.Image, pos uint16, n int) []uint16 {
	args := make([]uint16, 0, n)
	for i := 1; i <= n; i++ {
		idx := int(pos) + i
		if idx < len(img) {
			args = append(args, img[idx])
		} else {
			args = append(args, 0)
		}
	}
	return args
}

func isBlockEnd(op isa.Opcode) bool {
	return op == isa.Halt || op == isa.Jmp || op == isa.Ret
}

// operandString renders a cell the way the pseudo-comments do: reg[k]
// for register operands, hex for literals.
func operandString(cell uint16) string {
	return image.Classify(cell).String()
}

// comment synthesizes the near-source-level description of an opcode's
// effect, mirroring the reference disassembler's pseudo-comments.
func comment(op isa.Opcode, a []uint16) string {
	reg := func(i int) string { return operandString(a[i]) }

	switch op {
	case isa.Halt:
		return "halt"
	case isa.Set:
		return fmt.Sprintf("%s = %s", reg(0), reg(1))
	case isa.Push:
		return fmt.Sprintf("push %s", reg(0))
	case isa.Pop:
		return fmt.Sprintf("%s = stack.pop()", reg(0))
	case isa.Eq:
		return fmt.Sprintf("%s = %s == %s", reg(0), reg(1), reg(2))
	case isa.Gt:
		return fmt.Sprintf("%s = %s > %s", reg(0), reg(1), reg(2))
	case isa.Jmp:
		return fmt.Sprintf("jmp %s", reg(0))
	case isa.Jt:
		return fmt.Sprintf("jnz %s : (%s != 0)", reg(1), reg(0))
	case isa.Jf:
		return fmt.Sprintf("jz %s : (%s == 0)", reg(1), reg(0))
	case isa.Add:
		return fmt.Sprintf("%s = (%s + %s) %% 32768", reg(0), reg(1), reg(2))
	case isa.Mult:
		return fmt.Sprintf("%s = (%s * %s) %% 32768", reg(0), reg(1), reg(2))
	case isa.Mod:
		return fmt.Sprintf("%s = %s %% %s", reg(0), reg(1), reg(2))
	case isa.And:
		return fmt.Sprintf("%s = (%s & %s) %% 32768", reg(0), reg(1), reg(2))
	case isa.Or:
		return fmt.Sprintf("%s = (%s | %s) %% 32768", reg(0), reg(1), reg(2))
	case isa.Not:
		return fmt.Sprintf("%s = (~%s) %% 32768", reg(0), reg(1))
	case isa.Rmem:
		return fmt.Sprintf("%s = mem[%s]", reg(0), reg(1))
	case isa.Wmem:
		return fmt.Sprintf("mem[%s] = %s", reg(0), reg(1))
	case isa.Call:
		return fmt.Sprintf("call %s", reg(0))
	case isa.Ret:
		return "ret"
	case isa.Out:
		return outComment(a[0])
	case isa.In:
		return fmt.Sprintf("%s = (user input)", reg(0))
	case isa.Noop:
		return "noop"
	default:
		return ""
	}
}

func outComment(cell uint16) string {
	op := image.Classify(cell)
	if op.Kind != image.KindLiteral {
		return fmt.Sprintf("out %s", operandString(cell))
	}
	switch op.Value {
	case 0:
		return `\x00`
	case 10:
		return `\n`
	default:
		if op.Value >= 0x100 {
			return "<unk char>"
		}
		return string(rune(op.Value))
	}
}

// bytesHex renders an instruction's cells as the raw bytes a little-endian
// uint16 stream produces, two hex pairs per cell, e.g. "09 00 00 80 01 80"
// for the cells {9, 32768, 32769}.
func bytesHex(cells []uint16) string {
	parts := make([]string, 0, len(cells)*2)
	for _, c := range cells {
		parts = append(parts, fmt.Sprintf("%02X", byte(c)), fmt.Sprintf("%02X", byte(c>>8)))
	}
	return strings.Join(parts, " ")
}

// Write renders records in the listing format:
//
//	<hex addr> | <hex bytes of instruction> | <mnemonic> | <pseudo-comment>
func Write(w io.Writer, records []Record) error {
	for _, r := range records {
		if r.Mnemonic == "" && !r.IsData {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%04X | %-24s | %-5s | %s\n", r.Addr, bytesHex(r.Bytes), r.Mnemonic, r.Comment); err != nil {
			return err
		}
	}
	return nil
}
