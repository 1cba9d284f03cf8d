package rom

import (
	"errors"
	"strings"
	"unicode"

	"github.com/valerio/dmg-core/jeebie/bit"
)

const (
	titleAddress           = 0x134
	cgbFlagAddress         = 0x143
	sgbFlagAddress         = 0x146
	cartridgeTypeAddress   = 0x147
	romSizeAddress         = 0x148
	ramSizeAddress         = 0x149
	destinationCodeAddress = 0x14A
	oldLicenseCodeAddress  = 0x14B
	versionNumberAddress   = 0x14C
	headerChecksumAddress  = 0x14D
	globalChecksumAddress  = 0x14E

	// HeaderEnd is the first byte past the cartridge header.
	HeaderEnd = 0x150
)

var ErrNoHeader = errors.New("image too short to contain a cartridge header")

// CartridgeType is the hardware byte at 0x147.
type CartridgeType uint8

const (
	ROMOnly    CartridgeType = 0x00
	MBC1       CartridgeType = 0x01
	MBC1RAM    CartridgeType = 0x02
	MBC1RAMBAT CartridgeType = 0x03
)

func (t CartridgeType) String() string {
	switch t {
	case ROMOnly:
		return "ROM ONLY"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case MBC1RAMBAT:
		return "MBC1+RAM+BATTERY"
	}
	return "UNKNOWN"
}

// Header holds the metadata stored at 0x100-0x14F of every cartridge.
type Header struct {
	Title          string
	CGB            bool
	SGB            bool
	Type           CartridgeType
	ROMSize        int // bytes, 0 if the size code is unknown
	RAMSize        int // bytes, 0 if the size code is unknown
	Japanese       bool
	OldLicensee    uint8
	Version        uint8
	HeaderChecksum uint8
	GlobalChecksum uint16

	computedChecksum uint8
}

// maxROMSizeCode is the largest size code, 8MiB in 512 banks.
const maxROMSizeCode = 0x08

func romSize(code uint8) int {
	if code > maxROMSizeCode {
		return 0
	}
	return (32 * 1024) << code
}

var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// ParseHeader reads the cartridge header from a ROM image.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderEnd {
		return nil, ErrNoHeader
	}

	h := &Header{
		CGB:            data[cgbFlagAddress]&0x80 != 0,
		SGB:            data[sgbFlagAddress] == 0x03,
		Type:           CartridgeType(data[cartridgeTypeAddress]),
		ROMSize:        romSize(data[romSizeAddress]),
		RAMSize:        ramSizes[data[ramSizeAddress]],
		Japanese:       data[destinationCodeAddress] == 0x00,
		OldLicensee:    data[oldLicenseCodeAddress],
		Version:        data[versionNumberAddress],
		HeaderChecksum: data[headerChecksumAddress],
		GlobalChecksum: bit.Combine(data[globalChecksumAddress], data[globalChecksumAddress+1]),
	}

	// CGB titles are 15 bytes, the 16th is the CGB flag.
	titleEnd := cgbFlagAddress + 1
	if h.CGB {
		titleEnd = cgbFlagAddress
	}
	h.Title = cleanTitle(data[titleAddress:titleEnd])

	for _, b := range data[titleAddress:headerChecksumAddress] {
		h.computedChecksum = h.computedChecksum - b - 1
	}

	return h, nil
}

// ChecksumValid reports whether the header checksum at 0x14D matches the
// header bytes. The boot ROM locks up on a mismatch.
func (h *Header) ChecksumValid() bool {
	return h.computedChecksum == h.HeaderChecksum
}

// cleanTitle turns the padded title bytes into printable text.
func cleanTitle(titleBytes []byte) string {
	runes := make([]rune, 0, len(titleBytes))

	for _, b := range titleBytes {
		r := rune(b)
		if r == 0 {
			r = ' '
		} else if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			r = '?'
		}
		runes = append(runes, r)
	}

	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(Untitled)"
	}
	return title
}
