package cpu

import (
	"fmt"
	"strings"

	"github.com/valerio/dmg-core/jeebie/bit"
	"github.com/valerio/dmg-core/jeebie/memory"
)

// Operand placeholders used in the mnemonic tables.
const (
	tokenD16 = "d16" // 16-bit immediate
	tokenA16 = "a16" // 16-bit address
	tokenD8  = "d8"  // 8-bit immediate
	tokenA8  = "a8"  // 8-bit offset from 0xFF00
	tokenR8  = "r8"  // signed 8-bit offset
)

// Length returns the encoded size in bytes of the instruction starting with
// opcode, including the 0xCB prefix. Unknown opcodes count as one byte.
func Length(opcode uint8) int {
	if opcode == prefixCB {
		return 2
	}
	name := opcodeNames[opcode]
	switch {
	case strings.Contains(name, tokenD16), strings.Contains(name, tokenA16):
		return 3
	case strings.Contains(name, tokenD8), strings.Contains(name, tokenA8), strings.Contains(name, tokenR8):
		return 2
	}
	return 1
}

// Mnemonic decodes the instruction at pc without executing it, substituting
// immediate operands. Unknown opcodes are rendered as a data byte.
func Mnemonic(mem memory.Memory, pc uint16) string {
	opcode := mem.Read(pc)

	// 0xCB is only ever used as a prefix for the next byte.
	if opcode == prefixCB {
		if name := opcodeNamesCB[mem.Read(pc+1)]; name != "" {
			return name
		}
		return fmt.Sprintf("DB $CB,$%02X", mem.Read(pc+1))
	}

	name := opcodeNames[opcode]
	if name == "" {
		return fmt.Sprintf("DB $%02X", opcode)
	}

	n := mem.Read(pc + 1)
	nn := bit.Combine(mem.Read(pc+2), n)

	replacer := strings.NewReplacer(
		tokenD16, fmt.Sprintf("$%04X", nn),
		tokenA16, fmt.Sprintf("$%04X", nn),
		tokenD8, fmt.Sprintf("$%02X", n),
		tokenA8, fmt.Sprintf("$FF%02X", n),
		// SP+r8 already spells the sign
		"+"+tokenR8, fmt.Sprintf("%+d", int8(n)),
		tokenR8, fmt.Sprintf("%+d", int8(n)),
	)
	return replacer.Replace(name)
}

// Defined reports whether opcode has an entry in the primary table.
// The 0xCB prefix counts as defined.
func Defined(opcode uint8) bool {
	return opcode == prefixCB || opcodes[opcode] != nil
}
