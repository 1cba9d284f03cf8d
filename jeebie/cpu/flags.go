package cpu

// Flag is one of the 4 possible flags used in the flag register (high part of AF)
type Flag uint8

const (
	Zero      Flag = 0x80
	Subtract  Flag = 0x40
	HalfCarry Flag = 0x20
	Carry     Flag = 0x10
)

// flagMask covers the four flag bits, the low nibble always reads 0.
const flagMask Flags = 0xF0

// Flags is the packed F register. It stays a single byte so that PUSH AF and
// POP AF move it as-is.
type Flags uint8

// Get reports whether flag is set.
func (f Flags) Get(flag Flag) bool {
	return f&Flags(flag)&flagMask != 0
}

// Set sets or clears flag, leaving every other bit untouched.
func (f *Flags) Set(flag Flag, value bool) {
	mask := Flags(flag) & flagMask
	if value {
		*f |= mask
		return
	}
	*f &^= mask
}

// FlagView is a decoded copy of the flags, for display and assertions.
type FlagView struct {
	Z, N, H, C bool
}

// View decodes the packed byte. Changing the returned value does not affect f.
func (f Flags) View() FlagView {
	return FlagView{
		Z: f.Get(Zero),
		N: f.Get(Subtract),
		H: f.Get(HalfCarry),
		C: f.Get(Carry),
	}
}

// String renders the flags as ZNHC, with '-' for each cleared flag.
func (f Flags) String() string {
	out := []byte("----")
	for i, flag := range [...]Flag{Zero, Subtract, HalfCarry, Carry} {
		if f.Get(flag) {
			out[i] = "ZNHC"[i]
		}
	}
	return string(out)
}
