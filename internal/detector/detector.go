// Package detector handles system architecture detection.
package detector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned when a program targets a system that can not be run.
var ErrUnsupportedSystem = errors.New("unsupported system")

// Detector handles system architecture detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture from options or file auto-detection.
// It first checks if a system is explicitly specified in options, otherwise
// attempts to detect the system from the input filename extension.
// Only CHIP-8 programs are accepted.
func (d *Detector) Detect(opts options.Program) (arch.System, error) {
	if opts.System != "" {
		system, _ := arch.SystemFromString(opts.System)
		if system != arch.CHIP8System {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedSystem, opts.System)
		}
		return system, nil
	}

	system := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected system",
		log.Stringer("system", system),
		log.String("file", opts.Input))
	return system, nil
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return arch.CHIP8System
	default:
		// raw program images have no header, assume CHIP-8 for unknown extensions
		d.logger.Warn("Unknown file extension, assuming CHIP-8 program",
			log.String("file", filename))
		return arch.CHIP8System
	}
}
