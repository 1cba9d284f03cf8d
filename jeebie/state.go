package jeebie

import (
	"github.com/cespare/xxhash"
	"github.com/valerio/dmg-core/jeebie/cpu"
	"github.com/valerio/dmg-core/jeebie/memory"
)

// State is a checkpoint of a session. It shares nothing with the session it
// was taken from.
type State struct {
	cpu cpu.CPU
	bus *memory.Bus
}

// Registers returns the register file at the time of the checkpoint.
func (s *State) Registers() cpu.Registers {
	return s.cpu.Registers
}

// Snapshot captures the complete CPU and memory state.
func (d *DMG) Snapshot() *State {
	return &State{
		cpu: *d.cpu,
		bus: d.bus.Snapshot(),
	}
}

// Restore rewinds the session to a checkpoint. The checkpoint stays valid
// and can be restored again.
func (d *DMG) Restore(s *State) {
	*d.cpu = s.cpu
	d.bus.Restore(s.bus)
}

// Fingerprint hashes the register file, the CPU latches and every readable
// byte of memory. Two sessions that ran the same program from the same
// state have the same fingerprint.
func (d *DMG) Fingerprint() uint64 {
	r := d.cpu.Registers
	h := xxhash.New()

	h.Write([]byte{
		r.A, uint8(r.F), r.B, r.C, r.D, r.E, r.H, r.L,
		uint8(r.SP >> 8), uint8(r.SP), uint8(r.PC >> 8), uint8(r.PC),
		boolByte(d.cpu.IME()), boolByte(d.cpu.Halted()), boolByte(d.cpu.Stopped()),
	})
	h.Write(memory.Dump(d.bus))

	return h.Sum64()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
