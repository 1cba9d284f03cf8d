package serial

import (
	"log/slog"
	"strings"

	"github.com/valerio/dmg-core/jeebie/addr"
	"github.com/valerio/dmg-core/jeebie/bit"
	"github.com/valerio/dmg-core/jeebie/memory"
)

// disconnected is what SB holds after a transfer with no peer on the cable.
const disconnected = 0xFF

// Port emulates the link port with nothing plugged in. It sits in front of
// another Memory, and every access goes through to it, so the registers live
// in the underlying I/O page.
//
// Transfers complete as soon as they start, and the outgoing bytes are kept
// as text. Test ROMs print their results this way.
type Port struct {
	memory.Memory

	logger *slog.Logger
	out    strings.Builder
	line   []byte
}

var _ memory.Memory = (*Port)(nil)

// NewPort wraps mem with a link port.
func NewPort(mem memory.Memory) *Port {
	return &Port{
		Memory: mem,
		logger: slog.Default(),
	}
}

func (p *Port) Write(address uint16, value byte) {
	p.Memory.Write(address, value)

	// a transfer starts when bit 7 (start) and bit 0 (internal clock) of SC are set
	if address != addr.SC || !bit.IsSet(7, value) || !bit.IsSet(0, value) {
		return
	}

	p.send(p.Memory.Read(addr.SB))

	p.Memory.Write(addr.SB, disconnected)
	p.Memory.Write(addr.SC, bit.Reset(7, value))
	p.Memory.Write(addr.IF, bit.Set(addr.SerialInterruptBit, p.Memory.Read(addr.IF)))
}

func (p *Port) send(b byte) {
	p.out.WriteByte(b)

	// buffer until newline for readable logs
	if b == 0 || b == '\n' || b == '\r' {
		if len(p.line) > 0 {
			p.logger.Info("serial", "line", string(p.line))
			p.line = p.line[:0]
		}
		return
	}
	p.line = append(p.line, b)
}

// Output returns every byte sent so far.
func (p *Port) Output() string {
	return p.out.String()
}
