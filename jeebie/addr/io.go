package addr

// I/O registers the core itself never interprets; on the bus they are plain
// storage in the I/O page. Harnesses that stand in for the missing
// peripherals watch them.
const (
	// SB holds the byte being sent over the link port.
	SB uint16 = 0xFF01
	// SC is the serial control register. Writing 0x81 starts a transfer on
	// the internal clock, which is how test ROMs print a character.
	SC uint16 = 0xFF02

	// IF holds the pending interrupt requests, one bit per source.
	IF uint16 = 0xFF0F
	// SerialInterruptBit is the IF bit requested when a transfer completes.
	SerialInterruptBit uint8 = 3

	// LY is the scanline currently being drawn (0-153, read only).
	LY uint16 = 0xFF44
	// VBlankLine is the first LY value of the vertical blanking period.
	VBlankLine uint8 = 0x90
)
