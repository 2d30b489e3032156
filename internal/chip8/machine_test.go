package chip8

import (
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fixedRandom uint8

func (r fixedRandom) Byte() uint8 {
	return uint8(r)
}

func newTestMachine(t *testing.T, program ...uint16) *Machine {
	t.Helper()

	m := New(log.NewTestLogger(t), fixedRandom(0xA5))
	image := make([]byte, 0, 2*len(program))
	for _, word := range program {
		image = append(image, byte(word>>8), byte(word))
	}
	assert.NoError(t, m.LoadProgram(image))
	return m
}

func steps(t *testing.T, m *Machine, count int) {
	t.Helper()

	for range count {
		assert.NoError(t, m.Step())
	}
}

func TestMachine_New(t *testing.T) {
	m := New(log.NewTestLogger(t), nil)

	assert.NotNil(t, m.random)
	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, Font[0], m.Memory().Read(FontAddress))
	assert.False(t, m.Framebuffer().Dirty())
	assert.False(t, m.Halted())
}

func TestMachine_LoadProgramTooLarge(t *testing.T) {
	m := New(log.NewTestLogger(t), nil)

	err := m.LoadProgram(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
	assert.NoError(t, m.LoadProgram(make([]byte, MaxProgramSize)))
}

func TestMachine_AddByteWraps(t *testing.T) {
	values := []uint8{0x00, 0x01, 0x7F, 0x80, 0xF0, 0xFF}

	for _, nn := range values {
		for _, mm := range values {
			m := newTestMachine(t,
				0x6F07,
				0x6300|uint16(nn),
				0x7300|uint16(mm),
			)
			steps(t, m, 3)

			assert.Equal(t, nn+mm, m.Register(3))
			assert.Equal(t, uint8(0x07), m.Register(0xF))
		}
	}
}

func TestMachine_CallReturn(t *testing.T) {
	m := newTestMachine(t,
		0x2206, // 0x200 call 0x206
		0x6101, // 0x202
		0x1204, // 0x204
		0x00EE, // 0x206 ret
	)

	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(0x206), m.PC())
	assert.Equal(t, 1, m.StackDepth())

	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Equal(t, 0, m.StackDepth())
}

func TestMachine_StackUnderflowHalts(t *testing.T) {
	m := newTestMachine(t, 0x00EE)

	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.ErrorContains(t, err, "$200")
	assert.True(t, m.Halted())
	assert.Equal(t, uint16(ProgramStart), m.PC())

	err = m.Step()
	assert.True(t, errors.Is(err, ErrHalted))
}

func TestMachine_StackOverflowHalts(t *testing.T) {
	m := newTestMachine(t, 0x2200)

	steps(t, m, MaxStackDepth)
	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.True(t, m.Halted())
}

func TestMachine_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		vx, vy uint8
		opcode uint16
		result uint8
		flag   uint8
	}{
		{"ld", 0x01, 0x22, 0x8120, 0x22, 0x55},
		{"or", 0x0C, 0x0A, 0x8121, 0x0E, 0x55},
		{"and", 0x0C, 0x0A, 0x8122, 0x08, 0x55},
		{"xor", 0x0C, 0x0A, 0x8123, 0x06, 0x55},
		{"add without carry", 0x10, 0x20, 0x8124, 0x30, 0},
		{"add with carry", 0xF0, 0x20, 0x8124, 0x10, 1},
		{"sub without borrow", 0x05, 0x03, 0x8125, 0x02, 1},
		{"sub with borrow", 0x03, 0x05, 0x8125, 0xFE, 0},
		{"sub equal", 0x05, 0x05, 0x8125, 0x00, 1},
		{"subn without borrow", 0x03, 0x05, 0x8127, 0x02, 1},
		{"subn with borrow", 0x05, 0x03, 0x8127, 0xFE, 0},
		{"shr bit set", 0xFF, 0x05, 0x8126, 0x02, 1},
		{"shr bit clear", 0xFF, 0x04, 0x8126, 0x02, 0},
		{"shl bit set", 0x00, 0x81, 0x812E, 0x02, 1},
		{"shl bit clear", 0x00, 0x41, 0x812E, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t,
				0x6F55,
				0x6100|uint16(tt.vx),
				0x6200|uint16(tt.vy),
				tt.opcode,
			)
			steps(t, m, 4)

			assert.Equal(t, tt.result, m.Register(1))
			assert.Equal(t, tt.flag, m.Register(0xF))
		})
	}
}

func TestMachine_FlagWinsOverResult(t *testing.T) {
	m := newTestMachine(t,
		0x6FFF,
		0x6E01,
		0x8FE4, // VF = VF + VE overflows
	)
	steps(t, m, 3)

	assert.Equal(t, uint8(1), m.Register(0xF))
}

func TestMachine_Skips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		skip   bool
	}{
		{"se byte equal", 0x3112, true},
		{"se byte not equal", 0x3113, false},
		{"sne byte equal", 0x4112, false},
		{"sne byte not equal", 0x4113, true},
		{"se reg equal", 0x5130, true},
		{"se reg not equal", 0x5120, false},
		{"sne reg equal", 0x9130, false},
		{"sne reg not equal", 0x9120, true},
		{"skp pressed", 0xE19E, true},
		{"skp not pressed", 0xE29E, false},
		{"sknp pressed", 0xE1A1, false},
		{"sknp not pressed", 0xE2A1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t,
				0x6112, // V1 = 0x12, key 2
				0x6203, // V2 = 0x03, key 3
				0x6312, // V3 = 0x12
				tt.opcode,
			)
			var keys [16]bool
			keys[0x2] = true
			m.SetKeys(keys)
			steps(t, m, 4)

			expected := uint16(0x208)
			if tt.skip {
				expected = 0x20A
			}
			assert.Equal(t, expected, m.PC())
		})
	}
}

func TestMachine_Jumps(t *testing.T) {
	m := newTestMachine(t, 0x1ABC)
	steps(t, m, 1)
	assert.Equal(t, uint16(0xABC), m.PC())

	m = newTestMachine(t, 0x6005, 0xB300)
	steps(t, m, 2)
	assert.Equal(t, uint16(0x305), m.PC())

	m = newTestMachine(t, 0x60FF, 0xBFFF)
	steps(t, m, 2)
	assert.Equal(t, uint16((0xFFF+0xFF)%0xFFF), m.PC())
}

func TestMachine_ProgramCounterWraps(t *testing.T) {
	m := newTestMachine(t, 0x1FFE)
	m.Memory().Write(0xFFE, 0x60)
	m.Memory().Write(0xFFF, 0x01)

	steps(t, m, 2)
	assert.Equal(t, uint8(0x01), m.Register(0))
	assert.Equal(t, uint16(1), m.PC())
}

func TestMachine_Random(t *testing.T) {
	m := newTestMachine(t, 0xC30F)
	steps(t, m, 1)

	assert.Equal(t, uint8(0x05), m.Register(3))
}

func TestMachine_WaitKey(t *testing.T) {
	m := newTestMachine(t, 0xF50A)

	steps(t, m, 3)
	assert.Equal(t, uint16(ProgramStart), m.PC())

	var keys [16]bool
	keys[0x9] = true
	keys[0xC] = true
	m.SetKeys(keys)
	steps(t, m, 1)

	assert.Equal(t, uint8(0x9), m.Register(5))
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
}

func TestMachine_Index(t *testing.T) {
	m := newTestMachine(t,
		0xA123,
		0x6410,
		0xF41E,
	)
	steps(t, m, 1)
	assert.Equal(t, uint16(0x123), m.Index())
	steps(t, m, 2)
	assert.Equal(t, uint16(0x133), m.Index())

	m = newTestMachine(t, 0x6A0B, 0xFA29)
	steps(t, m, 2)
	assert.Equal(t, uint16(FontAddress+0xB*5), m.Index())
}

func TestMachine_StoreBCD(t *testing.T) {
	m := newTestMachine(t,
		0x63EA, // 234
		0xA300,
		0xF333,
	)
	steps(t, m, 3)

	mem := m.Memory()
	assert.Equal(t, byte(2), mem.Read(0x300))
	assert.Equal(t, byte(3), mem.Read(0x301))
	assert.Equal(t, byte(4), mem.Read(0x302))
}

func TestMachine_StoreLoadRegisters(t *testing.T) {
	m := newTestMachine(t,
		0x6011,
		0x6122,
		0x6233,
		0x6344,
		0xA300,
		0xF255, // store V0-V2
		0x6000,
		0x6100,
		0x6200,
		0xF165, // load V0-V1
	)
	steps(t, m, 6)

	mem := m.Memory()
	assert.Equal(t, byte(0x11), mem.Read(0x300))
	assert.Equal(t, byte(0x22), mem.Read(0x301))
	assert.Equal(t, byte(0x33), mem.Read(0x302))
	assert.Equal(t, byte(0x00), mem.Read(0x303))
	assert.Equal(t, uint16(0x300), m.Index())

	steps(t, m, 4)
	assert.Equal(t, uint8(0x11), m.Register(0))
	assert.Equal(t, uint8(0x22), m.Register(1))
	assert.Equal(t, uint8(0x00), m.Register(2))
	assert.Equal(t, uint16(0x300), m.Index())
}

func TestMachine_Timers(t *testing.T) {
	m := newTestMachine(t,
		0x6A03,
		0xFA15, // DT = 3
		0xFA18, // ST = 3
		0xFB07, // VB = DT
	)
	start := time.Unix(1000, 0)
	m.UpdateTimers(start)
	steps(t, m, 3)
	assert.True(t, m.SoundActive())

	m.UpdateTimers(start.Add(TimerInterval))
	assert.Equal(t, uint8(2), m.DelayTimer())
	assert.Equal(t, uint8(2), m.SoundTimer())

	steps(t, m, 1)
	assert.Equal(t, uint8(2), m.Register(0xB))

	for i := 2; i <= 4; i++ {
		m.UpdateTimers(start.Add(time.Duration(i) * TimerInterval))
	}
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.False(t, m.SoundActive())
}

func TestMachine_UnknownOpcode(t *testing.T) {
	m := newTestMachine(t, 0x0123, 0xFFFF, 0x6101)

	steps(t, m, 3)
	assert.Equal(t, uint64(2), m.UnknownOpcodes())
	assert.Equal(t, uint8(0x01), m.Register(1))
	assert.Equal(t, uint16(0x206), m.PC())
	assert.False(t, m.Halted())
}

func TestMachine_DrawCollision(t *testing.T) {
	m := newTestMachine(t,
		0x6F07,
		0xA000,
		0xD005,
		0xD005,
	)

	steps(t, m, 3)
	assert.Equal(t, uint8(0), m.Register(0xF))
	steps(t, m, 1)
	assert.Equal(t, uint8(1), m.Register(0xF))
	assert.Equal(t, 0, litPixels(m.Framebuffer()))
}

func TestMachine_ClearScreen(t *testing.T) {
	m := newTestMachine(t, 0xA000, 0xD005, 0x00E0)
	steps(t, m, 2)
	m.Framebuffer().ClearDirty()

	steps(t, m, 1)
	assert.True(t, m.Framebuffer().Dirty())
	assert.Equal(t, 0, litPixels(m.Framebuffer()))
}

func TestMachine_DrawDigitScenario(t *testing.T) {
	m := newTestMachine(t,
		0x00E0, // cls
		0x6A02, // VA = 2
		0x6B03, // VB = 3
		0xA000, // I = font glyph '0'
		0xDAB5, // draw 5 rows at (2, 3)
		0x1202, // jump to 0x202
	)
	steps(t, m, 6)

	fb := m.Framebuffer()
	assert.True(t, fb.Dirty())
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Equal(t, uint8(0), m.Register(0xF))

	for row := range 5 {
		glyph := Font[row]
		for bit := range 8 {
			expected := glyph&(0x80>>bit) != 0
			assert.Equal(t, expected, fb.Pixel(2+bit, 3+row))
		}
	}
	assert.Equal(t, 14, litPixels(fb))
}
