package memory

import "github.com/cespare/xxhash"

// Memory is a byte addressable 16-bit address space.
// Both operations are total: every address in 0x0000-0xFFFF must be handled.
type Memory interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// Flat is a single 64KiB array with no region semantics, every address is
// readable and writable. Useful for exercising instructions in isolation.
type Flat struct {
	data [0x10000]byte
}

var _ Memory = (*Flat)(nil)

// NewFlat returns a flat memory with program copied at address 0.
func NewFlat(program ...byte) *Flat {
	f := &Flat{}
	f.Load(0, program...)
	return f
}

// Load copies bytes starting at address, wrapping past 0xFFFF.
func (f *Flat) Load(address uint16, bytes ...byte) {
	for i, b := range bytes {
		f.data[address+uint16(i)] = b
	}
}

func (f *Flat) Read(address uint16) byte {
	return f.data[address]
}

func (f *Flat) Write(address uint16, value byte) {
	f.data[address] = value
}

// Dump reads the full address space through m, in address order.
func Dump(m Memory) []byte {
	out := make([]byte, 0x10000)
	for i := range out {
		out[i] = m.Read(uint16(i))
	}
	return out
}

// Fingerprint hashes the full readable contents of m.
func Fingerprint(m Memory) uint64 {
	return xxhash.Sum64(Dump(m))
}
