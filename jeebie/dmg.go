package jeebie

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/dmg-core/jeebie/cpu"
	"github.com/valerio/dmg-core/jeebie/disasm"
	"github.com/valerio/dmg-core/jeebie/memory"
	"github.com/valerio/dmg-core/jeebie/rom"
	"github.com/valerio/dmg-core/jeebie/serial"
)

// ErrHalted is returned by Step when the CPU is halted or stopped and no
// scheduler is around to wake it.
var ErrHalted = errors.New("cpu is halted")

// Config controls how a DMG session starts and runs.
type Config struct {
	// PostBoot starts execution at the cartridge entry point with the
	// registers the boot ROM leaves behind. Otherwise every register is zero.
	PostBoot bool
	// MaxSteps is the default instruction budget for Run. Zero means no limit.
	MaxSteps int
	// SkipUnknown makes Run log unknown opcodes and carry on with the next
	// byte instead of stopping.
	SkipUnknown bool
	// Trace logs every instruction at debug level before Run executes it.
	Trace bool
	// Serial puts a link port in front of the bus that captures what the
	// program prints over it.
	Serial bool
}

// DMG is a single execution session: one CPU stepping over one memory bus.
// A DMG is not safe for concurrent use.
type DMG struct {
	cpu    *cpu.CPU
	bus    *memory.Bus
	mem    memory.Memory // what the CPU steps over: the bus, or a port in front of it
	serial *serial.Port
	config Config
	header *rom.Header
}

// New creates a session over an empty bus with zeroed registers.
func New() *DMG {
	bus := memory.NewBus()
	return &DMG{
		cpu: cpu.New(),
		bus: bus,
		mem: bus,
	}
}

// NewWithROM creates a session with data mapped into the ROM banks.
func NewWithROM(data []byte, config Config) (*DMG, error) {
	dmg := New()
	dmg.config = config

	if err := dmg.bus.LoadROM(data); err != nil {
		return nil, err
	}

	if header, err := rom.ParseHeader(data); err == nil {
		dmg.header = header
	}

	if config.PostBoot {
		dmg.cpu.ResetPostBoot()
	}

	if config.Serial {
		dmg.serial = serial.NewPort(dmg.bus)
		dmg.mem = dmg.serial
	}

	return dmg, nil
}

// NewWithFile creates a session and loads the ROM image at path into it.
// Compressed images are unpacked by the rom package.
func NewWithFile(path string, config Config) (*DMG, error) {
	data, err := rom.Load(path)
	if err != nil {
		return nil, err
	}

	dmg, err := NewWithROM(data, config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	if dmg.header != nil {
		slog.Info("Loaded ROM", "path", path, "bytes", len(data),
			"title", dmg.header.Title, "type", dmg.header.Type.String(),
			"checksum_ok", dmg.header.ChecksumValid())
	} else {
		slog.Info("Loaded ROM", "path", path, "bytes", len(data))
	}

	return dmg, nil
}

// CPU exposes the processor, e.g. for inspecting registers.
func (d *DMG) CPU() *cpu.CPU {
	return d.cpu
}

// Bus exposes the address space the CPU steps over.
func (d *DMG) Bus() *memory.Bus {
	return d.bus
}

// Header returns the parsed cartridge header, or nil when no ROM with a
// header was loaded.
func (d *DMG) Header() *rom.Header {
	return d.header
}

// SerialOutput returns the text sent over the link port, or an empty string
// when the session runs without one.
func (d *DMG) SerialOutput() string {
	if d.serial == nil {
		return ""
	}
	return d.serial.Output()
}

// Step executes a single instruction.
func (d *DMG) Step() error {
	if d.cpu.Halted() || d.cpu.Stopped() {
		return ErrHalted
	}
	return d.cpu.Step(d.mem)
}

// Run executes instructions until max have run, the CPU halts or an
// instruction faults. When max is not positive the configured MaxSteps is
// used, and when that is zero as well Run only stops on halt or fault.
// It returns the number of instructions executed, skipped opcodes included.
func (d *DMG) Run(max int) (int, error) {
	if max <= 0 {
		max = d.config.MaxSteps
	}

	steps := 0
	for max <= 0 || steps < max {
		if d.config.Trace {
			d.trace()
		}
		err := d.Step()

		var unknown *cpu.UnknownOpcodeError
		switch {
		case err == nil:
			steps++
		case errors.Is(err, ErrHalted):
			return steps, nil
		case d.config.SkipUnknown && errors.As(err, &unknown):
			slog.Warn("Skipping unknown opcode", "pc", fmt.Sprintf("0x%04X", unknown.PC),
				"opcode", fmt.Sprintf("0x%02X", unknown.Opcode))
			steps++
		default:
			return steps, err
		}
	}

	return steps, nil
}

func (d *DMG) trace() {
	if d.cpu.Halted() || d.cpu.Stopped() {
		return
	}
	line := disasm.DisassembleAt(d.mem, d.cpu.PC)
	slog.Debug("Step", "pc", fmt.Sprintf("0x%04X", line.Address),
		"bytes", fmt.Sprintf("% X", line.Bytes), "instruction", line.Instruction,
		"flags", d.cpu.F.String())
}
