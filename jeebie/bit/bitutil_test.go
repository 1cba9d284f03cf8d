package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		high, low uint8
		expected  uint16
	}{
		{0xAB, 0xCD, 0xABCD},
		{0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFFFF},
		{0x12, 0x34, 0x1234},
	}

	for _, tt := range tests {
		result := Combine(tt.high, tt.low)
		if result != tt.expected {
			t.Errorf("Combine(%X, %X) = %X; want %X", tt.high, tt.low, result, tt.expected)
		}
	}
}

func TestHighLow(t *testing.T) {
	assert.Equal(t, uint8(0xCA), High(0xCAFE))
	assert.Equal(t, uint8(0xFE), Low(0xCAFE))
	assert.Equal(t, uint16(0xCAFE), Combine(High(0xCAFE), Low(0xCAFE)))
}

func TestIsSet(t *testing.T) {
	tests := []struct {
		value    uint8
		index    uint8
		expected bool
	}{
		{0b10101010, 0, false},
		{0b10101010, 1, true},
		{0b10101010, 2, false},
		{0b10101010, 7, true},
		{0b10101010, 8, false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.expected, IsSet(tt.index, tt.value), "IsSet(%d, %08b)", tt.index, tt.value)
	}
}

func TestSetReset(t *testing.T) {
	assert.Equal(t, uint8(0b00000001), Set(0, 0))
	assert.Equal(t, uint8(0b10000000), Set(7, 0))
	assert.Equal(t, uint8(0xFF), Set(3, 0xFF))
	assert.Equal(t, uint8(0b11111110), Reset(0, 0xFF))
	assert.Equal(t, uint8(0b01111111), Reset(7, 0xFF))
	assert.Equal(t, uint8(0), Reset(4, 0))
}

func TestValue(t *testing.T) {
	assert.Equal(t, uint8(1), Value(4, 0x10))
	assert.Equal(t, uint8(0), Value(3, 0x10))
}

func TestSwap(t *testing.T) {
	assert.Equal(t, uint8(0xBA), Swap(0xAB))
	assert.Equal(t, uint8(0x00), Swap(0x00))
	assert.Equal(t, uint8(0x0F), Swap(0xF0))
}

func TestHalfCarry(t *testing.T) {
	tests := []struct {
		name     string
		got      bool
		expected bool
	}{
		{"add no carry", HalfCarryAdd(0x07, 0x08, 0), false},
		{"add carry", HalfCarryAdd(0x0F, 0x01, 0), true},
		{"add carry-in", HalfCarryAdd(0x0F, 0x00, 1), true},
		{"sub no borrow", HalfCarrySub(0x10, 0x00, 0), false},
		{"sub borrow", HalfCarrySub(0x10, 0x01, 0), true},
		{"sub carry-in borrow", HalfCarrySub(0x01, 0x01, 1), true},
		{"add16 no carry", HalfCarryAdd16(0x0700, 0x0800), false},
		{"add16 carry", HalfCarryAdd16(0x0FFF, 0x0001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}
