package machine

import "github.com/atom0s/Synacor-Challenge-2012/internal/isa"

// NoopCell is the little-endian encoding of the `noop` opcode (21 = 0x15)
// as it reads back from a 16-bit cell: 0x0015, not 0x1500. A patch that
// means to overwrite code with no-ops must write this value, matching the
// architecture's little-endian cell layout.
const NoopCell = uint16(isa.Noop)

// Patch is a contiguous run of cells to write starting at Address, the
// same shape as the control channel's `!poke` command. It exists so that
// well-known patch recipes (like bypassing an expensive confirmation
// routine once the correct register value is known) can be named and
// reused instead of hand-typing hex pokes.
type Patch struct {
	Address uint16
	Cells   []uint16
}

// NoopPatch builds a Patch that overwrites count cells starting at
// address with `noop`, the idiom used to disable a comparison-and-branch
// sequence once it has served its purpose.
func NoopPatch(address uint16, count int) Patch {
	cells := make([]uint16, count)
	for i := range cells {
		cells[i] = NoopCell
	}
	return Patch{Address: address, Cells: cells}
}

// Apply writes a patch's cells into memory starting at its address. The
// address is the operator's responsibility to locate (typically via the
// disassembler); out-of-range writes are silently truncated at the end of
// the address space, mirroring the control channel's `!poke` behavior.
func Apply(m *Machine, p Patch) {
	for i, c := range p.Cells {
		addr := uint32(p.Address) + uint32(i)
		if addr >= uint32(len(m.Mem)) {
			break
		}
		m.Mem[addr] = c
	}
}
