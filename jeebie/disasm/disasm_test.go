package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/dmg-core/jeebie/memory"
)

func TestDisassembleAt(t *testing.T) {
	mem := memory.NewFlat(0x21, 0x00, 0xC0)

	line := DisassembleAt(mem, 0)

	assert.Equal(t, uint16(0), line.Address)
	assert.Equal(t, []byte{0x21, 0x00, 0xC0}, line.Bytes)
	assert.Equal(t, 3, line.Length())
	assert.Equal(t, "LD HL,$C000", line.Instruction)
}

func TestDisassembleRange(t *testing.T) {
	mem := memory.NewFlat(
		// LD B,$10
		0x06, 0x10,
		// SWAP A
		0xCB, 0x37,
		// illegal
		0xD3,
		// HALT
		0x76,
	)

	lines := DisassembleRange(mem, 0, 4)

	var got []string
	for _, l := range lines {
		got = append(got, l.Instruction)
	}
	assert.Equal(t, []string{"LD B,$10", "SWAP A", "DB $D3", "HALT"}, got)
	assert.Equal(t, uint16(0x0005), lines[3].Address)
}

func TestDisassembleRange_wraps(t *testing.T) {
	mem := memory.NewFlat()
	mem.Load(0xFFFF, 0x3E) // LD A,d8 with the operand at 0x0000
	mem.Write(0x0000, 0x99)

	lines := DisassembleRange(mem, 0xFFFF, 2)

	assert.Equal(t, "LD A,$99", lines[0].Instruction)
	assert.Equal(t, uint16(0x0001), lines[1].Address)
}

func TestDisassembleRange_nonPositiveCount(t *testing.T) {
	mem := memory.NewFlat(0x00)

	assert.Empty(t, DisassembleRange(mem, 0, 0))
	assert.Empty(t, DisassembleRange(mem, 0, -1))
}

func TestFormatLine(t *testing.T) {
	line := Line{Address: 0x0150, Bytes: []byte{0xC3, 0x00, 0x02}, Instruction: "JP $0200"}

	assert.Equal(t, ">0x0150: C3 00 02 JP $0200", FormatLine(line, true))
	assert.Equal(t, " 0x0150: C3 00 02 JP $0200", FormatLine(line, false))

	short := Line{Address: 0x0000, Bytes: []byte{0x00}, Instruction: "NOP"}
	assert.Equal(t, " 0x0000: 00       NOP", FormatLine(short, false))
}
