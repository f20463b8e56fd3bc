// Package image loads a Synacor program image and classifies its cells.
package image

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Image is a fixed-size program loaded into cell addresses 0..len(Image)-1.
type Image []uint16

// MaxCells is the largest address space the architecture allows.
const MaxCells = 32768

// Load reads a little-endian uint16 stream from path into an Image.
// The file length must be a multiple of two; no further validation of
// cell values is performed here.
func Load(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("image: stat %s: %w", path, err)
	}
	if info.Size()%2 != 0 {
		return nil, fmt.Errorf("image: %s has odd byte length %d", path, info.Size())
	}

	cells := make(Image, 0, info.Size()/2)
	for {
		var v uint16
		if err := binary.Read(f, binary.LittleEndian, &v); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("image: read %s: %w", path, err)
		}
		cells = append(cells, v)
	}
	return cells, nil
}

// Dump writes the image verbatim, little-endian, to path.
func Dump(img Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("image: create %s: %w", path, err)
	}
	defer f.Close()

	for _, v := range img {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("image: write %s: %w", path, err)
		}
	}
	return nil
}

// Kind classifies a cell's role when used as an instruction operand.
type Kind int

const (
	// KindLiteral marks a cell in 0..32767, a literal value.
	KindLiteral Kind = iota
	// KindRegister marks a cell in 32768..32775, a register index.
	KindRegister
	// KindInvalid marks a cell >= 32776.
	KindInvalid
)

// RegisterBase is the first cell value that denotes a register.
const RegisterBase = 32768

// RegisterCount is the number of registers the architecture defines.
const RegisterCount = 8

// Operand is the classification of a single cell used as an operand.
type Operand struct {
	Kind  Kind
	Value uint16 // literal value, or register index (already subtracted) when Kind == KindRegister
}

// Classify maps a raw cell to its operand interpretation.
func Classify(cell uint16) Operand {
	switch {
	case cell <= 32767:
		return Operand{Kind: KindLiteral, Value: cell}
	case cell <= RegisterBase+RegisterCount-1:
		return Operand{Kind: KindRegister, Value: cell - RegisterBase}
	default:
		return Operand{Kind: KindInvalid, Value: cell}
	}
}

func (o Operand) String() string {
	switch o.Kind {
	case KindRegister:
		return fmt.Sprintf("reg[%d]", o.Value)
	case KindInvalid:
		return fmt.Sprintf("invalid(%d)", o.Value)
	default:
		return fmt.Sprintf("%04X", o.Value)
	}
}
