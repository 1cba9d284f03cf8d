package memory

import (
	"errors"
	"fmt"

	"github.com/valerio/dmg-core/jeebie/addr"
)

// ErrROMTooLarge is returned by LoadROM when the image does not fit the two fixed ROM banks.
var ErrROMTooLarge = errors.New("rom image exceeds 32KiB")

type memRegion uint8

const (
	regionROM0 memRegion = iota
	regionROMN
	regionVRAM
	regionExtRAM
	regionWRAM0
	regionWRAMN
	regionEcho0
	regionEchoN
	regionHigh // 0xFE00-0xFFFF, resolved per address
)

// regionMap dispatches on the high byte of an address.
var regionMap = func() (m [256]memRegion) {
	fill := func(start, end uint16, r memRegion) {
		for i := start >> 8; i <= end>>8; i++ {
			m[i] = r
		}
	}
	fill(addr.ROM0Start, addr.ROM0End, regionROM0)
	fill(addr.ROMNStart, addr.ROMNEnd, regionROMN)
	fill(addr.VRAMStart, addr.VRAMEnd, regionVRAM)
	fill(addr.ExtRAMStart, addr.ExtRAMEnd, regionExtRAM)
	fill(addr.WRAM0Start, addr.WRAM0End, regionWRAM0)
	fill(addr.WRAMNStart, addr.WRAMNEnd, regionWRAMN)
	fill(addr.Echo0Start, addr.Echo0End, regionEcho0)
	fill(addr.EchoNStart, addr.EchoNEnd, regionEchoN)
	fill(addr.OAMStart, addr.IE, regionHigh)
	return m
}()

// Bus is the segmented DMG memory map. Every region is a fixed size array owned
// by the bus; echo ranges resolve to the cells of the work RAM they mirror.
//
// Bus is a plain value: copying it copies every region. Snapshot makes that explicit.
type Bus struct {
	rom0   [addr.ROMBankSize]byte
	romN   [addr.ROMBankSize]byte
	vram   [addr.VRAMSize]byte
	extRAM [addr.ExtRAMSize]byte
	wram0  [addr.WRAMBankSize]byte
	wramN  [addr.WRAMBankSize]byte
	oam    [addr.OAMSize]byte
	io     [addr.IOSize]byte
	hram   [addr.HRAMSize]byte
	ie     byte
}

var _ Memory = (*Bus)(nil)

// NewBus creates a zeroed bus, equivalent to a Gameboy with an empty cartridge slot.
func NewBus() *Bus {
	return &Bus{}
}

// LoadROM copies a ROM image into bank 0 and bank N. Images shorter than
// 32KiB leave the remaining ROM cells zeroed.
func (b *Bus) LoadROM(data []byte) error {
	if len(data) > 2*addr.ROMBankSize {
		return fmt.Errorf("%w: got %d bytes", ErrROMTooLarge, len(data))
	}

	b.rom0 = [addr.ROMBankSize]byte{}
	b.romN = [addr.ROMBankSize]byte{}
	n := copy(b.rom0[:], data)
	copy(b.romN[:], data[n:])

	return nil
}

// Snapshot returns an independent copy of every region.
func (b *Bus) Snapshot() *Bus {
	clone := *b
	return &clone
}

// Restore overwrites the bus with the contents of a snapshot.
func (b *Bus) Restore(snapshot *Bus) {
	*b = *snapshot
}

// cell resolves an address to its backing byte. A nil cell means open bus.
// ROM cells are reported as read-only.
func (b *Bus) cell(address uint16) (cell *byte, writable bool) {
	switch regionMap[address>>8] {
	case regionROM0:
		return &b.rom0[address-addr.ROM0Start], false
	case regionROMN:
		return &b.romN[address-addr.ROMNStart], false
	case regionVRAM:
		return &b.vram[address-addr.VRAMStart], true
	case regionExtRAM:
		return &b.extRAM[address-addr.ExtRAMStart], true
	case regionWRAM0:
		return &b.wram0[address-addr.WRAM0Start], true
	case regionWRAMN:
		return &b.wramN[address-addr.WRAMNStart], true
	case regionEcho0:
		return &b.wram0[address-addr.Echo0Start], true
	case regionEchoN:
		return &b.wramN[address-addr.EchoNStart], true
	}

	switch {
	case address <= addr.OAMEnd:
		return &b.oam[address-addr.OAMStart], true
	case address <= addr.UnusableEnd:
		return nil, false
	case address <= addr.IOEnd:
		return &b.io[address-addr.IOStart], true
	case address <= addr.HRAMEnd:
		return &b.hram[address-addr.HRAMStart], true
	default:
		return &b.ie, true
	}
}

// Read returns the byte at address, or addr.OpenBus for the unusable range.
func (b *Bus) Read(address uint16) byte {
	cell, _ := b.cell(address)
	if cell == nil {
		return addr.OpenBus
	}
	return *cell
}

// Write stores value at address. Writes to ROM and to the unusable range are discarded.
func (b *Bus) Write(address uint16, value byte) {
	cell, writable := b.cell(address)
	if cell == nil || !writable {
		return
	}
	*cell = value
}
