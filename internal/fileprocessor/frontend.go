package fileprocessor

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrochip8/internal/window"
	"github.com/retroenv/retrogolib/log"
)

// stdin and stdout are used by the terminal frontend.
var (
	stdin  *os.File  = os.Stdin
	stdout io.Writer = os.Stdout
)

// createFrontend creates the frontend selected by the options and returns a
// function that releases its resources.
func createFrontend(logger *log.Logger, opts options.Program) (host.Frontend, func(), error) {
	switch opts.Frontend {
	case options.FrontendSDL:
		w, err := window.New(logger, window.Config{
			Title: windowTitle(opts.Input),
			Scale: opts.Scale,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening window: %w", err)
		}
		return w, w.Close, nil

	case options.FrontendTerminal:
		t, err := terminal.New(logger, stdin, stdout)
		if err != nil {
			return nil, nil, fmt.Errorf("opening terminal: %w", err)
		}
		closeTerminal := func() {
			if err := t.Close(); err != nil {
				logger.Error("Restoring terminal failed", log.Err(err))
			}
		}
		return t, closeTerminal, nil

	case options.FrontendHeadless:
		return host.Headless{}, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}
