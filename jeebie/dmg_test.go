package jeebie

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/dmg-core/jeebie/cpu"
	"github.com/valerio/dmg-core/jeebie/memory"
)

// countdown stores 16, 15 ... 1 into WRAM starting at 0xC000, then halts.
var countdown = []byte{
	// LD B,0x10
	0x06, 0x10,
	// LD HL,0xC000
	0x21, 0x00, 0xC0,
	// LD A,B
	0x78,
	// LD (HL+),A
	0x22,
	// DEC B
	0x05,
	// JR NZ,-5
	0x20, 0xFB,
	// HALT
	0x76,
}

// image places program at the cartridge entry point of a 32KiB ROM.
func image(program ...byte) []byte {
	data := make([]byte, 0x8000)
	copy(data[0x100:], program)
	copy(data[0x134:], "TESTROM")
	return data
}

func TestNew(t *testing.T) {
	dmg := New()

	assert.Equal(t, cpu.Registers{}, dmg.CPU().Registers)
	assert.Equal(t, uint8(0x00), dmg.Bus().Read(0x0000))
	assert.Nil(t, dmg.Header())
}

func TestNewWithROM(t *testing.T) {
	dmg, err := NewWithROM(image(0x00), Config{PostBoot: true})

	require.NoError(t, err)
	assert.Equal(t, uint16(0x0100), dmg.CPU().PC)
	assert.Equal(t, uint16(0x01B0), dmg.CPU().AF())
	require.NotNil(t, dmg.Header())
	assert.Equal(t, "TESTROM", dmg.Header().Title)
}

func TestNewWithROM_withoutPostBoot(t *testing.T) {
	dmg, err := NewWithROM([]byte{0x3E, 0x42}, Config{})

	require.NoError(t, err)
	assert.Equal(t, uint16(0x0000), dmg.CPU().PC)
	assert.Nil(t, dmg.Header(), "two bytes carry no header")

	require.NoError(t, dmg.Step())
	assert.Equal(t, uint8(0x42), dmg.CPU().A)
}

func TestNewWithROM_tooLarge(t *testing.T) {
	_, err := NewWithROM(make([]byte, 0x8001), Config{})

	assert.ErrorIs(t, err, memory.ErrROMTooLarge)
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countdown.gb")
	require.NoError(t, os.WriteFile(path, image(countdown...), 0o644))

	dmg, err := NewWithFile(path, Config{PostBoot: true})
	require.NoError(t, err)

	steps, err := dmg.Run(0)
	require.NoError(t, err)
	assert.Equal(t, 2+16*4+1, steps)
	assert.True(t, dmg.CPU().Halted())
}

func TestNewWithFile_missing(t *testing.T) {
	_, err := NewWithFile(filepath.Join(t.TempDir(), "nope.gb"), Config{})

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDMG_Run(t *testing.T) {
	dmg, err := NewWithROM(image(countdown...), Config{PostBoot: true})
	require.NoError(t, err)

	steps, err := dmg.Run(0)

	require.NoError(t, err)
	assert.Equal(t, 67, steps)
	for i := uint16(0); i < 16; i++ {
		assert.Equal(t, uint8(16-i), dmg.Bus().Read(0xC000+i))
	}
	assert.Equal(t, uint16(0xC010), dmg.CPU().HL())
	assert.Equal(t, uint8(0x01), dmg.Bus().Read(0xE00F), "echo mirrors WRAM")

	assert.ErrorIs(t, dmg.Step(), ErrHalted)
	steps, err = dmg.Run(10)
	require.NoError(t, err)
	assert.Zero(t, steps)
}

func TestDMG_Run_budget(t *testing.T) {
	dmg, err := NewWithROM(image(countdown...), Config{PostBoot: true, MaxSteps: 5})
	require.NoError(t, err)

	steps, err := dmg.Run(0)
	require.NoError(t, err)
	assert.Equal(t, 5, steps)

	steps, err = dmg.Run(3)
	require.NoError(t, err)
	assert.Equal(t, 3, steps)
	assert.Equal(t, uint64(8), dmg.CPU().Instructions())
}

func TestDMG_Run_stopsOnUnknownOpcode(t *testing.T) {
	dmg, err := NewWithROM(image(0x00, 0x00, 0xED, 0x00), Config{PostBoot: true})
	require.NoError(t, err)

	steps, err := dmg.Run(100)

	assert.Equal(t, 2, steps)
	require.ErrorIs(t, err, cpu.ErrUnknownOpcode)
	var unknown *cpu.UnknownOpcodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint16(0x0102), unknown.PC)
	assert.Equal(t, uint16(0x0103), dmg.CPU().PC)
}

func TestDMG_Run_skipUnknown(t *testing.T) {
	dmg, err := NewWithROM(image(0xED, 0xFC, 0x3E, 0x99, 0x76), Config{PostBoot: true, SkipUnknown: true})
	require.NoError(t, err)

	steps, err := dmg.Run(100)

	require.NoError(t, err)
	assert.Equal(t, 4, steps)
	assert.Equal(t, uint8(0x99), dmg.CPU().A)
	assert.Equal(t, uint64(2), dmg.CPU().Instructions())
}

func TestDMG_SnapshotRestore(t *testing.T) {
	dmg, err := NewWithROM(image(countdown...), Config{PostBoot: true})
	require.NoError(t, err)

	_, err = dmg.Run(10)
	require.NoError(t, err)

	state := dmg.Snapshot()
	fingerprint := dmg.Fingerprint()
	registers := dmg.CPU().Registers
	assert.Equal(t, registers, state.Registers())

	_, err = dmg.Run(0)
	require.NoError(t, err)
	assert.NotEqual(t, fingerprint, dmg.Fingerprint())

	dmg.Restore(state)
	assert.Equal(t, fingerprint, dmg.Fingerprint())
	assert.Equal(t, registers, dmg.CPU().Registers)
	assert.False(t, dmg.CPU().Halted())

	// the checkpoint is not aliased by the running session
	_, err = dmg.Run(0)
	require.NoError(t, err)
	dmg.Restore(state)
	assert.Equal(t, fingerprint, dmg.Fingerprint())
}

func TestDMG_Fingerprint_deterministic(t *testing.T) {
	run := func() uint64 {
		dmg, err := NewWithROM(image(countdown...), Config{PostBoot: true})
		require.NoError(t, err)
		_, err = dmg.Run(0)
		require.NoError(t, err)
		return dmg.Fingerprint()
	}

	assert.Equal(t, run(), run())
}

func TestDMG_Fingerprint_coversRegisters(t *testing.T) {
	a, b := New(), New()
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.CPU().SP = 0x0001
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	b.CPU().SP = 0
	b.Bus().Write(0xFF80, 0x01)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestDMG_Run_trace(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	dmg, err := NewWithROM(image(countdown...), Config{PostBoot: true, Trace: true})
	require.NoError(t, err)

	_, err = dmg.Run(2)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "pc=0x0100")
	assert.Contains(t, out, "LD B,$10")
	assert.Contains(t, out, "LD HL,$C000")
	assert.NotContains(t, out, "LD A,B")
}

func TestDMG_serialOutput(t *testing.T) {
	program := []byte{
		// LD A,'H'
		0x3E, 'H',
		// LDH (SB),A
		0xE0, 0x01,
		// LD A,0x81
		0x3E, 0x81,
		// LDH (SC),A
		0xE0, 0x02,
		// HALT
		0x76,
	}

	dmg, err := NewWithROM(image(program...), Config{PostBoot: true, Serial: true})
	require.NoError(t, err)
	_, err = dmg.Run(0)
	require.NoError(t, err)

	assert.Equal(t, "H", dmg.SerialOutput())
	assert.Equal(t, uint8(0x01), dmg.Bus().Read(0xFF02))

	plain, err := NewWithROM(image(program...), Config{PostBoot: true})
	require.NoError(t, err)
	_, err = plain.Run(0)
	require.NoError(t, err)

	assert.Empty(t, plain.SerialOutput())
	assert.Equal(t, uint8(0x81), plain.Bus().Read(0xFF02), "without a port SC is plain storage")
}
