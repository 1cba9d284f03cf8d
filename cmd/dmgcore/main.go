package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/urfave/cli"
	"github.com/valerio/dmg-core/jeebie"
	"github.com/valerio/dmg-core/jeebie/disasm"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		slog.Error("Error running core", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Description = "A headless Game Boy CPU core"
	app.Usage = "dmgcore [options] [ROM file]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file (.gb, .gbc, or a .zip/.7z/.gz/.xz/.zst archive)",
		},
		cli.IntFlag{
			Name:  "steps",
			Usage: "Maximum number of instructions to execute (0 = until halt or fault)",
			Value: 1000000,
		},
		cli.BoolFlag{
			Name:  "post-boot",
			Usage: "Start at 0x0100 with the register state left by the boot ROM",
		},
		cli.BoolFlag{
			Name:  "skip-unknown",
			Usage: "Log unknown opcodes and continue instead of stopping",
		},
		cli.BoolFlag{
			Name:  "serial",
			Usage: "Attach a link port and print what the program sends over it",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging, including a trace of every instruction",
		},
	}
	app.Before = setupLogging
	app.Action = runCore
	app.Commands = []cli.Command{
		{
			Name:      "disasm",
			Usage:     "Disassemble instructions from a ROM without executing them",
			ArgsUsage: "[ROM file]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "rom",
					Usage: "Path to the ROM file",
				},
				cli.StringFlag{
					Name:  "from",
					Usage: "Start address",
					Value: "0x0100",
				},
				cli.IntFlag{
					Name:  "count",
					Usage: "Number of instructions to decode",
					Value: 16,
				},
			},
			Action: runDisasm,
		},
	}

	return app
}

func setupLogging(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}

func romPath(c *cli.Context) string {
	if path := c.String("rom"); path != "" {
		return path
	}
	return c.Args().First()
}

func runCore(c *cli.Context) error {
	config := jeebie.Config{
		PostBoot:    c.Bool("post-boot"),
		MaxSteps:    c.Int("steps"),
		SkipUnknown: c.Bool("skip-unknown"),
		Trace:       c.Bool("debug"),
		Serial:      c.Bool("serial"),
	}

	var (
		dmg *jeebie.DMG
		err error
	)
	if path := romPath(c); path != "" {
		dmg, err = jeebie.NewWithFile(path, config)
	} else {
		slog.Info("No ROM provided, running from an empty bus")
		dmg, err = jeebie.NewWithROM(nil, config)
	}
	if err != nil {
		return err
	}

	steps, runErr := dmg.Run(0)
	if config.Serial {
		fmt.Printf("serial: %q\n", dmg.SerialOutput())
	}
	printState(os.Stdout, dmg, steps)

	if runErr != nil {
		return fmt.Errorf("stopped after %d instructions: %w", steps, runErr)
	}
	return nil
}

func printState(w io.Writer, dmg *jeebie.DMG, steps int) {
	cpu := dmg.CPU()

	fmt.Fprintf(w, "AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X flags=%s\n",
		cpu.AF(), cpu.BC(), cpu.DE(), cpu.HL(), cpu.SP, cpu.PC, cpu.F)
	fmt.Fprintf(w, "ime=%t halted=%t stopped=%t steps=%d instructions=%d\n",
		cpu.IME(), cpu.Halted(), cpu.Stopped(), steps, cpu.Instructions())
	fmt.Fprintf(w, "fingerprint=%016x\n", dmg.Fingerprint())
}

func runDisasm(c *cli.Context) error {
	path := romPath(c)
	if path == "" {
		cli.ShowCommandHelp(c, "disasm")
		return errors.New("no ROM path provided")
	}

	from, err := strconv.ParseUint(c.String("from"), 0, 16)
	if err != nil {
		return fmt.Errorf("invalid start address %q: %w", c.String("from"), err)
	}

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid instruction count %d: must be positive", count)
	}

	dmg, err := jeebie.NewWithFile(path, jeebie.Config{})
	if err != nil {
		return err
	}

	for _, line := range disasm.DisassembleRange(dmg.Bus(), uint16(from), count) {
		fmt.Println(disasm.FormatLine(line, false))
	}
	return nil
}
