package machine

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atom0s/Synacor-Challenge-2012/internal/image"
)

// controlChannel implements the operator's `!`-prefixed debug/patch
// interface, multiplexed onto the program's input stream. It never
// consumes a program-side `in`: a control command is handled entirely
// between reads, leaving the in-flight input line buffer untouched.
type controlChannel struct {
	m *Machine
}

func newControlChannel(m *Machine) *controlChannel {
	return &controlChannel{m: m}
}

// handle dispatches one control-channel line. It returns true if the
// operator requested the VM stop.
func (c *controlChannel) handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "!help":
		c.help()
	case "!history":
		c.history()
	case "!halt", "!kill":
		c.printf("[!] Virtual machine has been halted by force.\n")
		return true
	case "!dump":
		c.dump()
	case "!pos":
		c.printf("[!] Current execution position: %04X (%d)\n", c.m.PC, c.m.PC)
	case "!getreg":
		c.getreg()
	case "!getstack":
		c.getstack()
	case "!setreg":
		c.setreg(fields[1:])
	case "!poke":
		c.poke(fields[1:])
	case "!peek":
		c.peek(fields[1:])
	default:
		c.printf("[!] Unknown command: %s\n", fields[0])
	}
	return false
}

func (c *controlChannel) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.m.io.term, format, args...)
}

func (c *controlChannel) help() {
	c.printf("[!] Available commands:\n")
	c.printf("[!] !help                   - lists the available commands.\n")
	c.printf("[!] !history                - reports the input history file's location.\n")
	c.printf("[!] !halt / !kill           - stops the virtual machine.\n")
	c.printf("[!] !dump                   - dumps memory to %s.\n", c.m.DumpPath)
	c.printf("[!] !pos                    - prints the current PC.\n")
	c.printf("[!] !getreg                 - prints register contents.\n")
	c.printf("[!] !getstack               - prints stack contents.\n")
	c.printf("[!] !setreg <i> <v>         - overwrites reg[i] with v (hex).\n")
	c.printf("[!] !poke <i> <v1> <v2> ... - overwrites mem[i], mem[i+1] ... (hex).\n")
	c.printf("[!] !peek <i> [n]           - prints n cells starting at i (hex, default n=1).\n")
}

// history reports on the input history file. The readline terminal is
// configured with this same path as its HistoryFile, so every line read
// from the operator — program input and control commands alike — is
// already persisted there as it's entered; there's nothing left to flush.
func (c *controlChannel) history() {
	if _, err := os.Stat(c.m.HistoryPath); err != nil {
		c.printf("[!] No history recorded yet at: %s\n", c.m.HistoryPath)
		return
	}
	c.printf("[!] Command history is kept up to date at: %s\n", c.m.HistoryPath)
}

func (c *controlChannel) dump() {
	if err := image.Dump(c.m.Mem[:], c.m.DumpPath); err != nil {
		c.printf("[!] Failed to dump memory: %v\n", err)
		return
	}
	c.printf("[!] Memory dump saved to: %s\n", c.m.DumpPath)
}

func (c *controlChannel) getreg() {
	for i, v := range c.m.Reg {
		c.printf("[!] Register %d: %04X (%d)\n", i, v, v)
	}
}

func (c *controlChannel) getstack() {
	for i, v := range c.m.Stk {
		c.printf("[!] Stack %d: %04X (%d)\n", i, v, v)
	}
}

func parseHexArgs(args []string) ([]uint64, error) {
	vals := make([]uint64, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid hex number", a)
		}
		vals[i] = v
	}
	return vals, nil
}

func (c *controlChannel) setreg(args []string) {
	vals, err := parseHexArgs(args)
	if err != nil || len(vals) != 2 || vals[0] > 7 || vals[1] > 32767 {
		c.printf("[!] Invalid arguments; !setreg <index> <value>\n")
		return
	}
	c.m.Reg[vals[0]] = uint16(vals[1])
	c.printf("[!] Register %d set to: %04X\n", vals[0], vals[1])
}

func (c *controlChannel) poke(args []string) {
	vals, err := parseHexArgs(args)
	if err != nil || len(vals) < 2 {
		c.printf("[!] Invalid arguments; !poke <index> <value..>\n")
		return
	}
	addr := vals[0]
	if addr >= image.MaxCells {
		c.printf("[!] Invalid memory index, cannot poke.\n")
		return
	}
	for i, v := range vals[1:] {
		if addr+uint64(i) >= image.MaxCells {
			break
		}
		c.m.Mem[addr+uint64(i)] = uint16(v)
	}
	c.printf("[!] Memory written to %04X: ", addr)
	for _, v := range vals[1:] {
		c.printf("%04X ", v)
	}
	c.printf("\n")
}

func (c *controlChannel) peek(args []string) {
	vals, err := parseHexArgs(args)
	if err != nil || len(vals) < 1 {
		c.printf("[!] Invalid arguments; !peek <index> <count=1>\n")
		return
	}
	addr := vals[0]
	if addr >= image.MaxCells {
		c.printf("[!] Invalid memory index, cannot peek.\n")
		return
	}
	count := uint64(1)
	if len(vals) >= 2 {
		count = vals[1]
	}
	c.printf("[!] Memory read from %04X: ", addr)
	for i := uint64(0); i < count && addr+i < image.MaxCells; i++ {
		c.printf("%04X ", c.m.Mem[addr+i])
	}
	c.printf("\n")
}
