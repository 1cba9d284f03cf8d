package disasm

import (
	"fmt"
	"strings"

	"github.com/valerio/dmg-core/jeebie/cpu"
	"github.com/valerio/dmg-core/jeebie/memory"
)

// Line is a single disassembled instruction.
type Line struct {
	Address     uint16
	Bytes       []byte
	Instruction string
}

// Length returns the encoded size of the instruction.
func (l Line) Length() int {
	return len(l.Bytes)
}

// DisassembleAt decodes the instruction at pc without executing it.
func DisassembleAt(mem memory.Memory, pc uint16) Line {
	length := cpu.Length(mem.Read(pc))

	raw := make([]byte, length)
	for i := range raw {
		raw[i] = mem.Read(pc + uint16(i))
	}

	return Line{
		Address:     pc,
		Bytes:       raw,
		Instruction: cpu.Mnemonic(mem, pc),
	}
}

// DisassembleRange decodes count consecutive instructions starting at pc.
// Addresses wrap at the end of the address space. A count of zero or less
// yields no lines.
func DisassembleRange(mem memory.Memory, pc uint16, count int) []Line {
	if count <= 0 {
		return []Line{}
	}

	lines := make([]Line, 0, count)

	for i := 0; i < count; i++ {
		line := DisassembleAt(mem, pc)
		lines = append(lines, line)
		pc += uint16(line.Length())
	}

	return lines
}

// FormatLine renders a line as address, raw bytes and mnemonic, marking the
// current instruction with an arrow.
func FormatLine(line Line, isCurrentPC bool) string {
	prefix := " "
	if isCurrentPC {
		prefix = ">"
	}

	hex := make([]string, len(line.Bytes))
	for i, b := range line.Bytes {
		hex[i] = fmt.Sprintf("%02X", b)
	}

	return fmt.Sprintf("%s0x%04X: %-8s %s", prefix, line.Address, strings.Join(hex, " "), line.Instruction)
}
