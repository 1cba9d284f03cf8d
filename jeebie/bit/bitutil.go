package bit

// Combine combines two 8 bit values into a single 16 bit value.
// The high byte will be the most significant one.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// Low returns the low (LSB) part of a 16 bit number.
func Low(value uint16) uint8 {
	return uint8(value)
}

// High returns the high (MSB) part of a 16 bit number.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// IsSet will check if the bit at the specified index is set to 1 or not.
func IsSet(index, value uint8) bool {
	return ((value >> index) & 1) == 1
}

// Set will return the passed byte with the bit at the specified index set to 1.
func Set(index, value uint8) uint8 {
	return value | (1 << index)
}

// Reset will return the passed byte with the bit at the specified index set to 0.
func Reset(index, value uint8) uint8 {
	return value &^ (1 << index)
}

// Value returns 1 if the bit at index is set, 0 otherwise.
func Value(index, value uint8) uint8 {
	return (value >> index) & 1
}

// Swap exchanges the two nibbles of a byte.
func Swap(value uint8) uint8 {
	return value<<4 | value>>4
}

// HalfCarryAdd reports a carry out of bit 3 when adding a, b and carry.
func HalfCarryAdd(a, b, carry uint8) bool {
	return (a&0xF)+(b&0xF)+carry > 0xF
}

// HalfCarrySub reports a borrow from bit 4 when subtracting b and carry from a.
func HalfCarrySub(a, b, carry uint8) bool {
	return int(a&0xF)-int(b&0xF)-int(carry) < 0
}

// HalfCarryAdd16 reports a carry out of bit 11 when adding two words.
func HalfCarryAdd16(a, b uint16) bool {
	return (a&0xFFF)+(b&0xFFF) > 0xFFF
}
