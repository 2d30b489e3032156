// Package fileprocessor handles program loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete program workflow: the program file is
// loaded and either its disassembly listing is written to out or it is run
// with the selected frontend.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) error {
	system, err := detector.New(logger).Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	machine := chip8.New(logger, chip8.NewRandom(opts.Seed))
	image, err := loader.New().Load(opts.Input, machine)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	app.PrintInfo(logger, opts, image, system)

	if opts.List {
		return writeListing(ctx, logger, image, out)
	}

	frontend, closeFrontend, err := createFrontend(logger, opts)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}
	defer closeFrontend()

	runner := host.New(logger, machine, frontend, host.Config{
		CycleRate: opts.CycleRate,
		MaxCycles: opts.Cycles,
	})
	err = runner.Run(ctx)
	app.PrintSummary(logger, opts, machine)
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func writeListing(ctx context.Context, logger *log.Logger, image []byte, out io.Writer) error {
	dis := disasm.New(logger, image)
	if err := dis.Process(ctx); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	if err := dis.Write(out); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// windowTitle returns the window title for the program file.
func windowTitle(input string) string {
	return "retrochip8 - " + filepath.Base(input)
}
