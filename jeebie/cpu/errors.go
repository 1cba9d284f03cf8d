package cpu

import (
	"errors"
	"fmt"
)

// ErrUnknownOpcode matches any UnknownOpcodeError through errors.Is.
var ErrUnknownOpcode = errors.New("unknown opcode")

// UnknownOpcodeError is returned by Step when the fetched opcode has no
// entry in the dispatch tables.
type UnknownOpcodeError struct {
	// Opcode is the fetched byte, or 0xCBxx for a prefixed opcode.
	Opcode uint16
	// PC is the address the opcode was fetched from.
	PC uint16
}

func (e *UnknownOpcodeError) Error() string {
	if e.Prefixed() {
		return fmt.Sprintf("unknown opcode 0x%04X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("unknown opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}

// Prefixed reports whether the opcode came from the 0xCB table.
func (e *UnknownOpcodeError) Prefixed() bool {
	return e.Opcode > 0xFF
}
