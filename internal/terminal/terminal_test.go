package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func newTestTerminal(t *testing.T, input string) (*Terminal, *bytes.Buffer, *time.Time) {
	t.Helper()

	var out bytes.Buffer
	term := newTerminal(log.NewTestLogger(t), strings.NewReader(input), &out)
	now := time.Unix(100, 0)
	term.now = func() time.Time { return now }
	return term, &out, &now
}

func TestTerminal_PollKeys(t *testing.T) {
	term, _, _ := newTestTerminal(t, "1Vx")

	keys, quit, err := term.Poll()
	assert.NoError(t, err)
	assert.False(t, quit)

	var expected [16]bool
	expected[0x1] = true
	expected[0xF] = true
	expected[0x0] = true
	assert.Equal(t, expected, keys)
}

func TestTerminal_KeyHold(t *testing.T) {
	term, _, now := newTestTerminal(t, "w")

	keys, _, err := term.Poll()
	assert.NoError(t, err)
	assert.True(t, keys[0x5])

	*now = now.Add(keyHold / 2)
	keys, _, err = term.Poll()
	assert.NoError(t, err)
	assert.True(t, keys[0x5])

	*now = now.Add(keyHold)
	keys, _, err = term.Poll()
	assert.NoError(t, err)
	assert.False(t, keys[0x5])
}

func TestTerminal_PollQuit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		quit  bool
	}{
		{"escape", "\x1b", true},
		{"escape after key", "a\x1b", true},
		{"arrow key", "\x1b[A", false},
		{"function key", "\x1bOP", false},
		{"no input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _, _ := newTestTerminal(t, tt.input)
			_, quit, err := term.Poll()
			assert.NoError(t, err)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestTerminal_PollKeysAroundEscapeSequences(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pressed []int
		quit    bool
	}{
		{"arrow key between keys", "q\x1b[Aw", []int{0x4, 0x5}, false},
		{"function key between keys", "q\x1bOPw", []int{0x4, 0x5}, false},
		{"sequence with parameters", "\x1b[15~z", []int{0xA}, false},
		{"unterminated sequence", "x\x1b[1", []int{0x0}, false},
		{"escape after sequence", "\x1b[B\x1b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _, _ := newTestTerminal(t, tt.input)
			keys, quit, err := term.Poll()
			assert.NoError(t, err)
			assert.Equal(t, tt.quit, quit)

			var expected [16]bool
			for _, key := range tt.pressed {
				expected[key] = true
			}
			assert.Equal(t, expected, keys)
		})
	}
}

func TestTerminal_PollError(t *testing.T) {
	errInput := errors.New("input closed")
	term := newTerminal(log.NewTestLogger(t), errReader{err: errInput}, &bytes.Buffer{})

	_, _, err := term.Poll()
	assert.True(t, errors.Is(err, errInput))
}

func TestTerminal_Draw(t *testing.T) {
	term, out, _ := newTestTerminal(t, "")

	var fb chip8.Framebuffer
	fb.DrawSprite(0, 0, []byte{0x80, 0x80, 0x00, 0x80}) // (0,0) (0,1) (0,3)
	fb.DrawSprite(1, 0, []byte{0x80})                   // (1,0)

	assert.NoError(t, term.Draw(&fb))

	output := out.String()
	assert.True(t, strings.HasPrefix(output, cursorHome))

	lines := strings.Split(strings.TrimPrefix(output, cursorHome), "\r\n")
	assert.Equal(t, chip8.ScreenHeight/2+1, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "█▀ "))
	assert.True(t, strings.HasPrefix(lines[1], "▄ "))
	assert.Equal(t, strings.Repeat(" ", chip8.ScreenWidth), lines[2])
	assert.Equal(t, "", lines[len(lines)-1])
}

func TestTerminal_Bell(t *testing.T) {
	term, out, _ := newTestTerminal(t, "")

	term.Start()
	term.Stop()
	assert.Equal(t, bell, out.String())
}

func TestTerminal_CloseWithoutRawMode(t *testing.T) {
	term, out, _ := newTestTerminal(t, "")

	assert.NoError(t, term.Close())
	assert.Equal(t, showCursor, out.String())
}
