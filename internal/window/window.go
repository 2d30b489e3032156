// Package window implements an SDL2 frontend for the interpreter. All SDL
// calls are executed on the main thread, the caller has to run the program
// inside of mainthread.Run.
package window

import (
	"fmt"

	"github.com/faiface/mainthread"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// Config contains the window settings.
type Config struct {
	Title string
	Scale int // size of a CHIP-8 pixel in window pixels
}

// withDefaults returns the config with unset fields replaced by defaults.
func (cfg Config) withDefaults() Config {
	if cfg.Scale <= 0 {
		cfg.Scale = config.DefaultScale
	}
	if cfg.Title == "" {
		cfg.Title = "retrochip8"
	}
	return cfg
}

// Window displays the framebuffer, reads the keyboard and plays the tone.
type Window struct {
	logger *log.Logger
	scale  int32

	window   *sdl.Window
	renderer *sdl.Renderer
	rects    []sdl.Rect

	audio sdl.AudioDeviceID
	tone  []byte
}

// New initializes SDL and opens the window.
func New(logger *log.Logger, cfg Config) (*Window, error) {
	cfg = cfg.withDefaults()

	w := &Window{
		logger: logger,
		scale:  int32(cfg.Scale),
		rects:  make([]sdl.Rect, 0, chip8.ScreenWidth*chip8.ScreenHeight),
	}

	err := mainthread.CallErr(func() error {
		return w.initialize(cfg.Title)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Window) initialize(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		chip8.ScreenWidth*w.scale, chip8.ScreenHeight*w.scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("creating renderer: %w", err)
	}

	w.window = window
	w.renderer = renderer

	// the interpreter is usable without sound
	if err := w.openAudio(); err != nil {
		w.logger.Warn("Audio device not available, sound disabled", log.Err(err))
	}
	return nil
}

// Draw renders all lit pixels of the framebuffer as black rectangles on a
// white background.
func (w *Window) Draw(fb *chip8.Framebuffer) error {
	w.rects = w.rects[:0]
	rows := fb.Rows()
	for y := range rows {
		for x, lit := range rows[y] {
			if !lit {
				continue
			}
			w.rects = append(w.rects, sdl.Rect{
				X: int32(x) * w.scale,
				Y: int32(y) * w.scale,
				W: w.scale,
				H: w.scale,
			})
		}
	}

	return mainthread.CallErr(w.render)
}

func (w *Window) render() error {
	if err := w.renderer.SetDrawColor(0xff, 0xff, 0xff, 0xff); err != nil {
		return fmt.Errorf("setting background color: %w", err)
	}
	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}

	if len(w.rects) > 0 {
		if err := w.renderer.SetDrawColor(0x00, 0x00, 0x00, 0xff); err != nil {
			return fmt.Errorf("setting pixel color: %w", err)
		}
		if err := w.renderer.FillRects(w.rects); err != nil {
			return fmt.Errorf("drawing pixels: %w", err)
		}
	}

	w.renderer.Present()
	return nil
}

// Close frees all resources created by SDL.
func (w *Window) Close() {
	mainthread.Call(func() {
		if w.audio != 0 {
			sdl.CloseAudioDevice(w.audio)
		}
		if w.renderer != nil {
			w.renderer.Destroy()
		}
		if w.window != nil {
			w.window.Destroy()
		}
		sdl.Quit()
	})
}
