// Package host drives a CHIP-8 machine at a fixed cycle rate and connects it
// to the display, keyboard and speaker of a frontend.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrogolib/log"
)

// Display presents the framebuffer of the machine.
type Display interface {
	Draw(fb *chip8.Framebuffer) error
}

// Keyboard reports the state of the 16 keys of the hex keypad and whether the
// user requested to quit.
type Keyboard interface {
	Poll() (keys [16]bool, quit bool, err error)
}

// Speaker plays a tone while the sound timer is active.
type Speaker interface {
	Start()
	Stop()
}

// Frontend combines all host interfaces.
type Frontend interface {
	Display
	Keyboard
	Speaker
}

// Config contains the runner settings.
type Config struct {
	CycleRate int    // instructions per second, config.DefaultCycleRate if not set
	MaxCycles uint64 // stop after the given amount of cycles, 0 for unlimited
}

// Runner executes a machine until the user quits, the context is canceled or
// the machine faults.
type Runner struct {
	logger   *log.Logger
	machine  *chip8.Machine
	display  Display
	keyboard Keyboard
	speaker  Speaker
	config   Config

	now      func() time.Time
	cycles   uint64
	sounding bool
}

// New returns a new runner for the machine using the given frontend.
func New(logger *log.Logger, machine *chip8.Machine, frontend Frontend, cfg Config) *Runner {
	if cfg.CycleRate <= 0 {
		cfg.CycleRate = config.DefaultCycleRate
	}

	return &Runner{
		logger:   logger,
		machine:  machine,
		display:  frontend,
		keyboard: frontend,
		speaker:  frontend,
		config:   cfg,
		now:      time.Now,
	}
}

// Run executes one machine cycle per tick of the configured cycle rate.
// It returns nil if the user quit, the context got canceled or the cycle
// limit was reached.
func (r *Runner) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(r.config.CycleRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer r.stopSound()

	r.logger.Debug("Starting run loop",
		log.Int("cycleRate", r.config.CycleRate),
		log.String("interval", interval.String()))

	for {
		quit, err := r.cycle()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		select {
		case <-ctx.Done():
			r.logger.Debug("Run loop canceled", log.Err(ctx.Err()))
			return nil
		case <-ticker.C:
		}
	}
}

// cycle executes a single machine cycle and returns whether the loop should end.
func (r *Runner) cycle() (bool, error) {
	keys, quit, err := r.keyboard.Poll()
	if err != nil {
		return false, fmt.Errorf("polling keyboard: %w", err)
	}
	if quit {
		r.logger.Debug("Quit requested", log.Int("cycles", int(r.cycles)))
		return true, nil
	}
	r.machine.SetKeys(keys)

	if err := r.machine.Step(); err != nil {
		return false, fmt.Errorf("cycle %d: %w", r.cycles, err)
	}
	r.cycles++

	r.machine.UpdateTimers(r.now())

	fb := r.machine.Framebuffer()
	if fb.Dirty() {
		if err := r.display.Draw(fb); err != nil {
			return false, fmt.Errorf("drawing framebuffer: %w", err)
		}
		fb.ClearDirty()
	}

	r.updateSound()

	if r.config.MaxCycles > 0 && r.cycles >= r.config.MaxCycles {
		r.logger.Debug("Cycle limit reached", log.Int("cycles", int(r.cycles)))
		return true, nil
	}
	return false, nil
}

// updateSound starts or stops the speaker when the sound timer state changes.
func (r *Runner) updateSound() {
	active := r.machine.SoundActive()
	switch {
	case active && !r.sounding:
		r.speaker.Start()
	case !active && r.sounding:
		r.speaker.Stop()
	}
	r.sounding = active
}

func (r *Runner) stopSound() {
	if r.sounding {
		r.speaker.Stop()
		r.sounding = false
	}
}

// Cycles returns the amount of executed cycles.
func (r *Runner) Cycles() uint64 {
	return r.cycles
}
