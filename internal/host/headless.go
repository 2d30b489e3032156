package host

import "github.com/retroenv/retrochip8/internal/chip8"

// Headless is a frontend without any output or input, the program runs until
// the context is canceled or the cycle limit is reached.
type Headless struct{}

// Draw discards the framebuffer.
func (Headless) Draw(*chip8.Framebuffer) error { return nil }

// Poll reports no pressed keys.
func (Headless) Poll() ([16]bool, bool, error) { return [16]bool{}, false, nil }

// Start does nothing.
func (Headless) Start() {}

// Stop does nothing.
func (Headless) Stop() {}
