package chip8

import "errors"

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// ProgramStart is the address that programs are loaded to and start executing from.
	ProgramStart = 0x200

	// FontAddress is the address of the hexadecimal digit font.
	FontAddress = 0x000

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	addressMask = MaxAddress
)

// ErrProgramTooLarge is returned when data does not fit into memory.
var ErrProgramTooLarge = errors.New("program too large")

// fontGlyphSize is the number of bytes of a single font glyph.
const fontGlyphSize = 5

// Font contains the sprites of the hexadecimal digits 0-F, 5 rows each.
var Font = [16 * fontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat byte addressable memory of the machine.
// All accesses are masked to the 12-bit address space.
type Memory [MemorySize]byte

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) byte {
	return m[address&addressMask]
}

// ReadWord returns the big-endian word at the given address.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) {
	m[address&addressMask] = value
}

// Load copies data into memory starting at the given address.
// It fails without writing anything if the data would exceed the memory bound.
func (m *Memory) Load(address uint16, data []byte) error {
	if int(address)+len(data) > MemorySize {
		return ErrProgramTooLarge
	}
	copy(m[address:], data)
	return nil
}

// clear resets the memory and loads the font.
func (m *Memory) clear() {
	*m = Memory{}
	copy(m[FontAddress:], Font[:])
}

// fontGlyphAddress returns the address of the font glyph for the low nibble of digit.
func fontGlyphAddress(digit uint8) uint16 {
	return FontAddress + uint16(digit&0x0F)*fontGlyphSize
}
