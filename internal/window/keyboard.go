package window

import (
	"github.com/faiface/mainthread"
	"github.com/veandco/go-sdl2/sdl"
)

// keyMap maps the 16 keys of the hex keypad to the left side of a QWERTY
// keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keyMap = [16]sdl.Scancode{
	0x0: sdl.SCANCODE_X,
	0x1: sdl.SCANCODE_1,
	0x2: sdl.SCANCODE_2,
	0x3: sdl.SCANCODE_3,
	0x4: sdl.SCANCODE_Q,
	0x5: sdl.SCANCODE_W,
	0x6: sdl.SCANCODE_E,
	0x7: sdl.SCANCODE_A,
	0x8: sdl.SCANCODE_S,
	0x9: sdl.SCANCODE_D,
	0xA: sdl.SCANCODE_Z,
	0xB: sdl.SCANCODE_C,
	0xC: sdl.SCANCODE_4,
	0xD: sdl.SCANCODE_R,
	0xE: sdl.SCANCODE_F,
	0xF: sdl.SCANCODE_V,
}

// Poll handles all pending window events and returns the key state. Closing
// the window or pressing Escape requests to quit.
func (w *Window) Poll() ([16]bool, bool, error) {
	var keys [16]bool
	var quit bool

	mainthread.Call(func() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				quit = true
			case *sdl.KeyboardEvent:
				if ev.Type == sdl.KEYDOWN && ev.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					quit = true
				}
			}
		}

		keys = mapKeys(sdl.GetKeyboardState())
	})

	return keys, quit, nil
}

// mapKeys returns the keypad state for the SDL keyboard state indexed by scancode.
func mapKeys(state []uint8) [16]bool {
	var keys [16]bool
	for key, scancode := range keyMap {
		if int(scancode) < len(state) {
			keys[key] = state[scancode] != 0
		}
	}
	return keys
}
