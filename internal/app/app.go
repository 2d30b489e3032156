// Package app provides the main application helpers for the interpreter.
package app

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	archsys "github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// PrintInfo prints the information about the input file and the loaded program.
func PrintInfo(logger *log.Logger, opts options.Program, image []byte, system archsys.System) {
	if opts.Quiet {
		return
	}

	logger.Info("Loaded CHIP-8 program",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", len(image)),
		log.Int("free", chip8.MaxProgramSize-len(image)),
	)

	if opts.List {
		return
	}

	logger.Info("Running program",
		log.String("frontend", opts.Frontend),
		log.Int("cycleRate", opts.CycleRate),
	)
	if len(image)%2 != 0 {
		logger.Warn("Program size is odd, the last instruction is incomplete")
	}
}

// PrintSummary prints the statistics of a finished run.
func PrintSummary(logger *log.Logger, opts options.Program, machine *chip8.Machine) {
	if opts.Quiet {
		return
	}

	logger.Info("Program stopped",
		log.Int("cycles", int(machine.Cycles())),
		log.Hex("pc", machine.PC()),
	)
	if unknown := machine.UnknownOpcodes(); unknown > 0 {
		logger.Warn("Program executed unknown instructions", log.Int("count", int(unknown)))
	}
}
