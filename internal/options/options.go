// Package options contains the program options.
package options

// Frontend names that can be selected on the command line.
const (
	FrontendSDL      = "sdl"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontends.
var Frontends = []string{FrontendSDL, FrontendTerminal, FrontendHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"program file to run"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"frontend" usage:"frontend: sdl, terminal, headless" default:"sdl"`
	System   string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	List     bool   `flag:"list" usage:"print the disassembly listing instead of running"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// Emulation contains options that control the interpreter and its host.
type Emulation struct {
	CycleRate int    `flag:"rate" usage:"CPU cycles per second" default:"700"`
	Scale     int    `flag:"scale" usage:"window magnification" default:"10"`
	Cycles    uint64 `flag:"cycles" usage:"stop after the given amount of cycles, 0 for unlimited"`
	Seed      uint64 `flag:"seed" usage:"seed of the random source, 0 for a random seed"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Emulation
}
