// Package loader handles program file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Loader handles loading program images from disk into a machine.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program file and copies it into the machine memory at the
// program start address. The machine is reset before the program is copied.
// The program image is returned for further inspection.
func (l *Loader) Load(path string, m *chip8.Machine) ([]byte, error) {
	image, err := l.Read(path)
	if err != nil {
		return nil, err
	}

	if err := m.LoadProgram(image); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return image, nil
}

// Read reads the program file without loading it into a machine.
func (l *Loader) Read(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	image, err := l.ReadImage(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return image, nil
}

// ReadImage reads a program image from the reader. Images that do not fit
// into the machine memory return chip8.ErrProgramTooLarge.
func (l *Loader) ReadImage(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images without
	// reading arbitrary large files completely
	image, err := io.ReadAll(io.LimitReader(reader, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	if len(image) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("program exceeds %d bytes: %w", chip8.MaxProgramSize, chip8.ErrProgramTooLarge)
	}
	return image, nil
}
