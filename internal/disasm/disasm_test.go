package disasm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atom0s/Synacor-Challenge-2012/internal/image"
)

func TestDisassembleCanonicalProgram(t *testing.T) {
	img := image.Image{9, 32768, 32769, 4, 19, 32768, 0}
	records := Disassemble(img)

	require.NotEmpty(t, records)
	assert.Equal(t, "add", records[0].Mnemonic)
	assert.Equal(t, uint16(0), records[0].Addr)
	assert.Equal(t, "reg[0] = (reg[1] + 0004) % 32768", records[0].Comment)
}

func TestBlockSeparationAfterJmp(t *testing.T) {
	img := image.Image{6, 10, 0, 0, 0, 0, 0, 0, 0, 0, 21}
	records := Disassemble(img)

	require.GreaterOrEqual(t, len(records), 2)
	assert.Equal(t, "jmp", records[0].Mnemonic)
	assert.Equal(t, uint16(0), records[0].Addr)

	// A blank separator record follows the jmp, before the next real record.
	assert.Equal(t, "", records[1].Mnemonic)
	assert.False(t, records[1].IsData)
	assert.Equal(t, uint16(2), records[1].Addr)
}

func TestUndecodableCellBecomesDataRecord(t *testing.T) {
	img := image.Image{9999, 0}
	records := Disassemble(img)

	require.NotEmpty(t, records)
	assert.Equal(t, "data", records[0].Mnemonic)
	assert.True(t, records[0].IsData)
}

func TestWriteFormat(t *testing.T) {
	img := image.Image{21}
	records := Disassemble(img)

	var sb strings.Builder
	require.NoError(t, Write(&sb, records))
	assert.Contains(t, sb.String(), "0000 |")
	assert.Contains(t, sb.String(), "noop")
}

func TestBytesHexRendersLittleEndianBytePairs(t *testing.T) {
	img := image.Image{9, 32768, 32769, 4, 19, 32768, 0}
	records := Disassemble(img)

	require.NotEmpty(t, records)
	assert.Equal(t, "09 00 00 80 01 80 04 00", bytesHex(records[0].Bytes))
}
