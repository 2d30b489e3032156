// Package terminal implements a frontend that renders the framebuffer with
// block characters and reads the keypad from the raw mode terminal input.
package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

const (
	escape = 0x1b

	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	bell        = "\a"

	// terminals only report key presses, a key counts as held down for this
	// duration after its last press or repeat
	keyHold = 150 * time.Millisecond
)

// keyMap maps the input characters to the 16 keys of the hex keypad, using
// the left side of a QWERTY keyboard.
var keyMap = map[byte]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminal is a frontend for the interpreter that uses the terminal.
type Terminal struct {
	logger  *log.Logger
	in      io.Reader
	out     io.Writer
	restore func() error

	now      func() time.Time
	pressed  [16]time.Time
	readBuf  []byte
	frameBuf bytes.Buffer
}

// New switches the input file to raw mode and prepares the output for drawing.
// Close has to be called to restore the terminal state.
func New(logger *log.Logger, in *os.File, out io.Writer) (*Terminal, error) {
	restore, err := makeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("switching terminal to raw mode: %w", err)
	}

	t := newTerminal(logger, in, out)
	t.restore = restore

	if _, err := io.WriteString(out, clearScreen+hideCursor); err != nil {
		_ = restore()
		return nil, fmt.Errorf("preparing terminal: %w", err)
	}
	return t, nil
}

func newTerminal(logger *log.Logger, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		logger:  logger,
		in:      in,
		out:     out,
		now:     time.Now,
		readBuf: make([]byte, 64),
	}
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	if _, err := io.WriteString(t.out, showCursor); err != nil {
		t.logger.Error("Showing cursor failed", log.Err(err))
	}
	if t.restore == nil {
		return nil
	}
	if err := t.restore(); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Draw renders the framebuffer using half block characters, every output
// line contains two rows of pixels.
func (t *Terminal) Draw(fb *chip8.Framebuffer) error {
	t.frameBuf.Reset()
	t.frameBuf.WriteString(cursorHome)
	renderFrame(&t.frameBuf, fb)

	if _, err := t.out.Write(t.frameBuf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func renderFrame(buf *bytes.Buffer, fb *chip8.Framebuffer) {
	rows := fb.Rows()
	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := range chip8.ScreenWidth {
			top := rows[y][x]
			bottom := y+1 < chip8.ScreenHeight && rows[y+1][x]

			switch {
			case top && bottom:
				buf.WriteString("█")
			case top:
				buf.WriteString("▀")
			case bottom:
				buf.WriteString("▄")
			default:
				buf.WriteByte(' ')
			}
		}
		buf.WriteString("\r\n")
	}
}

// Poll reads all pending input characters and returns the key state.
// Escape requests to quit.
func (t *Terminal) Poll() ([16]bool, bool, error) {
	var keys [16]bool

	n, err := t.in.Read(t.readBuf)
	if err != nil && !errors.Is(err, io.EOF) {
		return keys, false, fmt.Errorf("reading input: %w", err)
	}

	now := t.now()
	quit := t.handleInput(t.readBuf[:n], now)

	for key, pressed := range t.pressed {
		keys[key] = !pressed.IsZero() && now.Sub(pressed) < keyHold
	}
	return keys, quit, nil
}

// handleInput records the key presses of the input and returns whether a
// quit was requested.
func (t *Terminal) handleInput(input []byte, now time.Time) bool {
	for i := 0; i < len(input); i++ {
		b := input[i]
		if b == escape {
			end, ok := escapeSequenceEnd(input, i)
			if !ok {
				return true
			}
			i = end
			continue
		}

		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if key, ok := keyMap[b]; ok {
			t.pressed[key] = now
		}
	}
	return false
}

// escapeSequenceEnd returns the index of the last byte of the escape sequence
// that starts at the given index. Special keys send ESC [ followed by parameter
// bytes and a final byte in the range 0x40-0x7E, or ESC O followed by a single
// byte. A lone ESC is not a sequence.
func escapeSequenceEnd(input []byte, start int) (int, bool) {
	if start+1 >= len(input) {
		return 0, false
	}

	switch input[start+1] {
	case 'O':
		return min(start+2, len(input)-1), true

	case '[':
		for i := start + 2; i < len(input); i++ {
			if input[i] >= 0x40 && input[i] <= 0x7E {
				return i, true
			}
		}
		return len(input) - 1, true

	default:
		return 0, false
	}
}

// Start rings the terminal bell.
func (t *Terminal) Start() {
	if _, err := io.WriteString(t.out, bell); err != nil {
		t.logger.Error("Ringing bell failed", log.Err(err))
	}
}

// Stop does nothing, the bell can not be stopped.
func (t *Terminal) Stop() {}
