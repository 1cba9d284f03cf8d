package cpu

import (
	"github.com/valerio/dmg-core/jeebie/bit"
	"github.com/valerio/dmg-core/jeebie/memory"
)

const prefixCB uint8 = 0xCB

// CPU is the main struct holding LR35902 state.
//
// The CPU does not own memory: the address space is handed to every Step,
// so the same core runs against the segmented bus or a flat test store.
type CPU struct {
	Registers

	// latches read by a scheduler; interrupt delivery lives outside the core
	ime     bool
	halted  bool
	stopped bool

	currentOpcode uint16
	instructions  uint64
}

// New returns a CPU with every register zeroed.
func New() *CPU {
	return &CPU{}
}

// ResetPostBoot loads the register state the DMG boot ROM leaves behind,
// so execution can start at the cartridge entry point without a boot ROM.
func (c *CPU) ResetPostBoot() {
	c.SetAF(0x01B0)
	c.SetBC(0x0013)
	c.SetDE(0x00D8)
	c.SetHL(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.ime = false
	c.halted = false
	c.stopped = false
}

// Step fetches, decodes and executes one instruction from mem.
//
// An opcode with no table entry yields an *UnknownOpcodeError. In that case PC
// has already moved past the fetched opcode and nothing else has changed.
func (c *CPU) Step(mem memory.Memory) error {
	pc := c.PC
	opcode := c.readImmediate(mem)
	c.currentOpcode = uint16(opcode)

	instruction := opcodes[opcode]
	if opcode == prefixCB {
		cb := c.readImmediate(mem)
		c.currentOpcode = bit.Combine(prefixCB, cb)
		instruction = opcodesCB[cb]
	}

	if instruction == nil {
		return &UnknownOpcodeError{Opcode: c.currentOpcode, PC: pc}
	}

	instruction(c, mem)
	c.instructions++

	return nil
}

// readImmediate returns the byte pointed by PC and advances PC.
// This value is known as immediate ('n' in mnemonics).
func (c *CPU) readImmediate(mem memory.Memory) uint8 {
	n := mem.Read(c.PC)
	c.PC++
	return n
}

// readImmediateWord reads a little-endian word at PC, advancing PC twice.
// This value is known as immediate ('nn' in mnemonics).
func (c *CPU) readImmediateWord(mem memory.Memory) uint16 {
	low := c.readImmediate(mem)
	high := c.readImmediate(mem)
	return bit.Combine(high, low)
}

// readSignedImmediate reads the byte at PC as a two's complement offset ('e' in mnemonics).
func (c *CPU) readSignedImmediate(mem memory.Memory) int8 {
	return int8(c.readImmediate(mem))
}

func (c *CPU) pushStack(mem memory.Memory, value uint16) {
	c.SP--
	mem.Write(c.SP, bit.High(value))
	c.SP--
	mem.Write(c.SP, bit.Low(value))
}

func (c *CPU) popStack(mem memory.Memory) uint16 {
	low := mem.Read(c.SP)
	c.SP++
	high := mem.Read(c.SP)
	c.SP++
	return bit.Combine(high, low)
}

// operand reads the 8-bit operand selected by a 3-bit field, going through
// memory for (HL).
func (c *CPU) operand(mem memory.Memory, index uint8) uint8 {
	if r := c.reg8(index); r != nil {
		return *r
	}
	return mem.Read(c.HL())
}

func (c *CPU) setOperand(mem memory.Memory, index uint8, value uint8) {
	if r := c.reg8(index); r != nil {
		*r = value
		return
	}
	mem.Write(c.HL(), value)
}

// flagToBit will return 1 if the passed flag is set, 0 otherwise
func (c *CPU) flagToBit(flag Flag) uint8 {
	if c.F.Get(flag) {
		return 1
	}
	return 0
}

// condition evaluates a 2-bit condition field: NZ, Z, NC, C.
func (c *CPU) condition(cc uint8) bool {
	switch cc & 3 {
	case 0:
		return !c.F.Get(Zero)
	case 1:
		return c.F.Get(Zero)
	case 2:
		return !c.F.Get(Carry)
	default:
		return c.F.Get(Carry)
	}
}

// IME reports the interrupt master enable latch, set by EI/RETI and cleared by DI.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether HALT has been executed since the last Resume.
func (c *CPU) Halted() bool { return c.halted }

// Stopped reports whether STOP has been executed since the last Resume.
func (c *CPU) Stopped() bool { return c.stopped }

// Resume clears the HALT and STOP latches. Called by whoever delivers the wake-up event.
func (c *CPU) Resume() {
	c.halted = false
	c.stopped = false
}

// CurrentOpcode is the last fetched opcode, 0xCBxx for prefixed ones.
func (c *CPU) CurrentOpcode() uint16 { return c.currentOpcode }

// Instructions is the number of instructions executed successfully.
func (c *CPU) Instructions() uint64 { return c.instructions }
