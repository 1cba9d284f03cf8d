package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/dmg-core/jeebie/addr"
	"github.com/valerio/dmg-core/jeebie/memory"
)

func send(p *Port, text string) {
	for i := 0; i < len(text); i++ {
		p.Write(addr.SB, text[i])
		p.Write(addr.SC, 0x81)
	}
}

func TestPort_transfer(t *testing.T) {
	bus := memory.NewBus()
	p := NewPort(bus)

	send(p, "Passed\n")

	assert.Equal(t, "Passed\n", p.Output())
	assert.Equal(t, uint8(0xFF), bus.Read(addr.SB), "nobody on the other end")
	assert.Equal(t, uint8(0x01), bus.Read(addr.SC), "start bit cleared on completion")
	assert.Equal(t, uint8(0x08), bus.Read(addr.IF), "serial interrupt requested")
}

func TestPort_externalClockDoesNotTransfer(t *testing.T) {
	bus := memory.NewBus()
	p := NewPort(bus)

	p.Write(addr.SB, 'x')
	p.Write(addr.SC, 0x80)

	assert.Empty(t, p.Output())
	assert.Equal(t, uint8('x'), bus.Read(addr.SB))
	assert.Equal(t, uint8(0x80), bus.Read(addr.SC))
}

func TestPort_passesThrough(t *testing.T) {
	bus := memory.NewBus()
	p := NewPort(bus)

	p.Write(0xC000, 0x42)

	assert.Equal(t, uint8(0x42), p.Read(0xC000))
	assert.Equal(t, uint8(0x42), bus.Read(0xC000))
	assert.Empty(t, p.Output())
}

func TestPort_keepsOtherInterrupts(t *testing.T) {
	bus := memory.NewBus()
	bus.Write(addr.IF, 0x01)
	p := NewPort(bus)

	send(p, "a")

	assert.Equal(t, uint8(0x09), bus.Read(addr.IF))
}
