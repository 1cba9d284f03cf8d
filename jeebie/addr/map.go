package addr

// Memory map boundaries of the DMG address space.
// Reference: https://gbdev.io/pandocs/Memory_Map.html
const (
	// ROM0 is the fixed 16KiB ROM bank 0.
	ROM0Start uint16 = 0x0000
	ROM0End   uint16 = 0x3FFF
	// ROMN is the 16KiB switchable ROM bank.
	ROMNStart uint16 = 0x4000
	ROMNEnd   uint16 = 0x7FFF

	// VRAM is the 8KiB video RAM.
	VRAMStart uint16 = 0x8000
	VRAMEnd   uint16 = 0x9FFF

	// ExtRAM is the 8KiB cartridge RAM.
	ExtRAMStart uint16 = 0xA000
	ExtRAMEnd   uint16 = 0xBFFF

	// WRAM0 and WRAMN are the two 4KiB work RAM banks.
	WRAM0Start uint16 = 0xC000
	WRAM0End   uint16 = 0xCFFF
	WRAMNStart uint16 = 0xD000
	WRAMNEnd   uint16 = 0xDFFF

	// Echo0 mirrors WRAM0, EchoN mirrors WRAMN up to 0xDDFF.
	Echo0Start uint16 = 0xE000
	Echo0End   uint16 = 0xEFFF
	EchoNStart uint16 = 0xF000
	EchoNEnd   uint16 = 0xFDFF

	// OAM holds 40 sprites, 4 bytes each.
	OAMStart uint16 = 0xFE00
	OAMEnd   uint16 = 0xFE9F

	// Unusable is the hole between OAM and the I/O registers.
	UnusableStart uint16 = 0xFEA0
	UnusableEnd   uint16 = 0xFEFF

	// IO is the memory mapped I/O register block.
	IOStart uint16 = 0xFF00
	IOEnd   uint16 = 0xFF7F

	// HRAM is the 127 bytes of high RAM.
	HRAMStart uint16 = 0xFF80
	HRAMEnd   uint16 = 0xFFFE

	// IE is the address for the Interrupt Enable register.
	IE uint16 = 0xFFFF
)

// Region sizes, in bytes.
const (
	ROMBankSize  = 16 * 1024
	VRAMSize     = 8 * 1024
	ExtRAMSize   = 8 * 1024
	WRAMBankSize = 4 * 1024
	OAMSize      = 160
	IOSize       = 128
	HRAMSize     = 127
)

// OpenBus is the value read from addresses that no region backs.
const OpenBus uint8 = 0xFF
