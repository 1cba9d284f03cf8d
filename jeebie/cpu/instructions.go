package cpu

import (
	"github.com/valerio/dmg-core/jeebie/bit"
	"github.com/valerio/dmg-core/jeebie/memory"
)

// inc increments an 8-bit value. Carry is not affected.
func (c *CPU) inc(value uint8) uint8 {
	result := value + 1

	c.F.Set(Zero, result == 0)
	c.F.Set(Subtract, false)
	c.F.Set(HalfCarry, result&0xF == 0)

	return result
}

// dec decrements an 8-bit value. Carry is not affected.
func (c *CPU) dec(value uint8) uint8 {
	result := value - 1

	c.F.Set(Zero, result == 0)
	c.F.Set(Subtract, true)
	c.F.Set(HalfCarry, result&0xF == 0xF)

	return result
}

// add sets A to A + value (+ carry for ADC), setting all flags.
func (c *CPU) add(value uint8, withCarry bool) {
	carry := uint8(0)
	if withCarry {
		carry = c.flagToBit(Carry)
	}

	a := c.A
	sum := uint16(a) + uint16(value) + uint16(carry)
	result := uint8(sum)

	c.F.Set(Zero, result == 0)
	c.F.Set(Subtract, false)
	c.F.Set(HalfCarry, bit.HalfCarryAdd(a, value, carry))
	c.F.Set(Carry, sum > 0xFF)

	c.A = result
}

// sub computes A - value (- carry for SBC), setting all flags.
// The result is returned so that CP can discard it.
func (c *CPU) sub(value uint8, withCarry bool) uint8 {
	carry := uint8(0)
	if withCarry {
		carry = c.flagToBit(Carry)
	}

	a := c.A
	result := a - value - carry

	c.F.Set(Zero, result == 0)
	c.F.Set(Subtract, true)
	c.F.Set(HalfCarry, bit.HalfCarrySub(a, value, carry))
	c.F.Set(Carry, uint16(a) < uint16(value)+uint16(carry))

	return result
}

func (c *CPU) and(value uint8) {
	c.A &= value
	c.F = 0
	c.F.Set(Zero, c.A == 0)
	c.F.Set(HalfCarry, true)
}

func (c *CPU) xor(value uint8) {
	c.A ^= value
	c.F = 0
	c.F.Set(Zero, c.A == 0)
}

func (c *CPU) or(value uint8) {
	c.A |= value
	c.F = 0
	c.F.Set(Zero, c.A == 0)
}

// alu runs one of the eight accumulator operations selected by bits 3-5 of
// the opcode: ADD, ADC, SUB, SBC, AND, XOR, OR, CP.
func (c *CPU) alu(op uint8, value uint8) {
	switch op & 7 {
	case 0:
		c.add(value, false)
	case 1:
		c.add(value, true)
	case 2:
		c.A = c.sub(value, false)
	case 3:
		c.A = c.sub(value, true)
	case 4:
		c.and(value)
	case 5:
		c.xor(value)
	case 6:
		c.or(value)
	case 7:
		c.sub(value, false)
	}
}

// addToHL sets HL to HL + value. Zero is not affected.
func (c *CPU) addToHL(value uint16) {
	hl := c.HL()
	sum := uint32(hl) + uint32(value)

	c.F.Set(Subtract, false)
	c.F.Set(HalfCarry, bit.HalfCarryAdd16(hl, value))
	c.F.Set(Carry, sum > 0xFFFF)

	c.SetHL(uint16(sum))
}

// offsetSP returns SP + e. Carry and half carry come from the unsigned
// addition of the low byte of SP and e; Zero and Subtract are cleared.
func (c *CPU) offsetSP(e int8) uint16 {
	sp := c.SP
	offset := uint8(e)

	c.F = 0
	c.F.Set(HalfCarry, bit.HalfCarryAdd(bit.Low(sp), offset, 0))
	c.F.Set(Carry, uint16(bit.Low(sp))+uint16(offset) > 0xFF)

	return sp + uint16(int16(e))
}

// daa adjusts A into packed BCD after an addition or subtraction.
func (c *CPU) daa() {
	a := c.A
	carry := c.F.Get(Carry)
	adjust := uint8(0)

	if c.F.Get(HalfCarry) || (!c.F.Get(Subtract) && a&0xF > 0x9) {
		adjust |= 0x06
	}
	if carry || (!c.F.Get(Subtract) && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if c.F.Get(Subtract) {
		a -= adjust
	} else {
		a += adjust
	}

	c.A = a
	c.F.Set(Zero, a == 0)
	c.F.Set(HalfCarry, false)
	c.F.Set(Carry, carry)
}

// shiftResult stores the flags shared by every rotate and shift.
func (c *CPU) shiftResult(result uint8, carry bool) uint8 {
	c.F = 0
	c.F.Set(Zero, result == 0)
	c.F.Set(Carry, carry)
	return result
}

func (c *CPU) rlc(value uint8) uint8 {
	return c.shiftResult(value<<1|bit.Value(7, value), bit.IsSet(7, value))
}

func (c *CPU) rrc(value uint8) uint8 {
	return c.shiftResult(value>>1|bit.Value(0, value)<<7, bit.IsSet(0, value))
}

func (c *CPU) rl(value uint8) uint8 {
	return c.shiftResult(value<<1|c.flagToBit(Carry), bit.IsSet(7, value))
}

func (c *CPU) rr(value uint8) uint8 {
	return c.shiftResult(value>>1|c.flagToBit(Carry)<<7, bit.IsSet(0, value))
}

func (c *CPU) sla(value uint8) uint8 {
	return c.shiftResult(value<<1, value > 0x7F)
}

func (c *CPU) sra(value uint8) uint8 {
	return c.shiftResult(value>>1|value&0x80, value&1 == 1)
}

func (c *CPU) srl(value uint8) uint8 {
	return c.shiftResult(value>>1, value&1 == 1)
}

func (c *CPU) swap(value uint8) uint8 {
	return c.shiftResult(bit.Swap(value), false)
}

// rotateA runs a rotate on A for the unprefixed RLCA/RRCA/RLA/RRA, which
// always clear Zero.
func (c *CPU) rotateA(rotate func(*CPU, uint8) uint8) {
	c.A = rotate(c, c.A)
	c.F.Set(Zero, false)
}

// bitTest sets Zero if the bit at index is clear. Carry is not affected.
func (c *CPU) bitTest(index, value uint8) {
	c.F.Set(Zero, !bit.IsSet(index, value))
	c.F.Set(Subtract, false)
	c.F.Set(HalfCarry, true)
}

// jr adds a signed offset to PC, wrapping around the address space.
func (c *CPU) jr(e int8) {
	c.PC += uint16(int16(e))
}

func (c *CPU) call(mem memory.Memory, address uint16) {
	c.pushStack(mem, c.PC)
	c.PC = address
}
