package cpu

import "github.com/valerio/dmg-core/jeebie/bit"

// Registers is the LR35902 register file.
//
// BC, DE, HL and AF have no storage of their own: they are composed from the
// 8-bit halves on every access, high byte first.
type Registers struct {
	A  uint8
	F  Flags
	B  uint8
	C  uint8
	D  uint8
	E  uint8
	H  uint8
	L  uint8
	SP uint16
	PC uint16
}

func (r Registers) BC() uint16 {
	return bit.Combine(r.B, r.C)
}

func (r *Registers) SetBC(value uint16) {
	r.B = bit.High(value)
	r.C = bit.Low(value)
}

func (r Registers) DE() uint16 {
	return bit.Combine(r.D, r.E)
}

func (r *Registers) SetDE(value uint16) {
	r.D = bit.High(value)
	r.E = bit.Low(value)
}

func (r Registers) HL() uint16 {
	return bit.Combine(r.H, r.L)
}

func (r *Registers) SetHL(value uint16) {
	r.H = bit.High(value)
	r.L = bit.Low(value)
}

func (r Registers) AF() uint16 {
	return bit.Combine(r.A, uint8(r.F))
}

// SetAF loads A and F. The low nibble of F does not exist in hardware and is dropped.
func (r *Registers) SetAF(value uint16) {
	r.A = bit.High(value)
	r.F = Flags(bit.Low(value)) & flagMask
}

// reg8 returns the register selected by a 3-bit operand field
// (B, C, D, E, H, L, -, A). Index 6 addresses (HL) and yields nil.
func (r *Registers) reg8(index uint8) *uint8 {
	switch index {
	case 0:
		return &r.B
	case 1:
		return &r.C
	case 2:
		return &r.D
	case 3:
		return &r.E
	case 4:
		return &r.H
	case 5:
		return &r.L
	case 7:
		return &r.A
	}
	return nil
}

// pair returns the 16-bit pair selected by a 2-bit operand field,
// where the last slot is SP (loads and arithmetic) or AF (push/pop).
func (r *Registers) pair(index uint8, withAF bool) uint16 {
	switch index {
	case 0:
		return r.BC()
	case 1:
		return r.DE()
	case 2:
		return r.HL()
	}
	if withAF {
		return r.AF()
	}
	return r.SP
}

func (r *Registers) setPair(index uint8, withAF bool, value uint16) {
	switch index {
	case 0:
		r.SetBC(value)
	case 1:
		r.SetDE(value)
	case 2:
		r.SetHL(value)
	default:
		if withAF {
			r.SetAF(value)
		} else {
			r.SP = value
		}
	}
}
