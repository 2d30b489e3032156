package chip8

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// ErrHalted is returned by Step after the machine stopped on a fault.
var ErrHalted = errors.New("machine halted")

const (
	registerCount = 16
	flagRegister  = 0xF
	keyCount      = 16
	opcodeSize    = 2
)

// Random provides uniformly distributed random bytes for the RND instruction.
type Random interface {
	Byte() uint8
}

// Machine is the complete state of a CHIP-8 virtual machine. It is not safe
// for concurrent use, a single host loop owns and steps it.
type Machine struct {
	logger *log.Logger
	random Random

	memory      Memory
	v           [registerCount]uint8
	i           uint16
	pc          uint16
	stack       Stack
	delay       Timer
	sound       Timer
	framebuffer Framebuffer
	keys        [keyCount]bool

	halted         bool
	cycles         uint64
	unknownOpcodes uint64
}

// New returns a reset machine. If random is nil, a randomly seeded source is used.
func New(logger *log.Logger, random Random) *Machine {
	if random == nil {
		random = NewRandom(0)
	}
	m := &Machine{
		logger: logger,
		random: random,
	}
	m.Reset()
	return m
}

// Reset clears all machine state, loads the font and sets PC to ProgramStart.
func (m *Machine) Reset() {
	m.memory.clear()
	m.v = [registerCount]uint8{}
	m.i = 0
	m.pc = ProgramStart
	m.stack.reset()
	m.delay.reset()
	m.sound.reset()
	m.framebuffer.reset()
	m.keys = [keyCount]bool{}
	m.halted = false
	m.cycles = 0
	m.unknownOpcodes = 0
}

// LoadProgram resets the machine and copies the program image to ProgramStart.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("loading %d bytes, maximum is %d: %w", len(program), MaxProgramSize, ErrProgramTooLarge)
	}
	m.Reset()
	if err := m.memory.Load(ProgramStart, program); err != nil {
		return fmt.Errorf("copying program to memory: %w", err)
	}
	return nil
}

// Step executes a single fetch-decode-execute cycle. It returns an error if
// the instruction faulted, the machine is halted afterwards.
func (m *Machine) Step() error {
	if m.halted {
		return ErrHalted
	}

	address := m.pc
	ins := Decode(m.memory.ReadWord(address))

	flow, err := m.execute(ins)
	if err != nil {
		m.halted = true
		return fmt.Errorf("executing '%s' at $%03X: %w", ins, address, err)
	}

	switch flow {
	case flowNext:
		m.pc = wrapPC(address + opcodeSize)
	case flowSkip:
		m.pc = wrapPC(address + 2*opcodeSize)
	case flowJump, flowWait:
	}

	m.cycles++
	return nil
}

// UpdateTimers decrements the delay and sound timers if their 60Hz period
// elapsed at the given wall-clock time.
func (m *Machine) UpdateTimers(now time.Time) {
	m.delay.Update(now)
	m.sound.Update(now)
}

// SetKeys replaces the state of the 16 keys.
func (m *Machine) SetKeys(keys [16]bool) {
	m.keys = keys
}

// SoundActive returns whether the tone should be playing.
func (m *Machine) SoundActive() bool {
	return m.sound.Value() > 0
}

// Framebuffer returns the framebuffer of the machine.
func (m *Machine) Framebuffer() *Framebuffer {
	return &m.framebuffer
}

// Memory returns the memory of the machine.
func (m *Machine) Memory() *Memory {
	return &m.memory
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.i
}

// Register returns the value of register Vx, only the low nibble of x is used.
func (m *Machine) Register(x uint8) uint8 {
	return m.v[x&0x0F]
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delay.Value()
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.sound.Value()
}

// StackDepth returns the number of active subroutine calls.
func (m *Machine) StackDepth() int {
	return m.stack.Depth()
}

// Halted returns whether the machine stopped on a fault.
func (m *Machine) Halted() bool {
	return m.halted
}

// Cycles returns the number of executed instructions since the last reset.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// UnknownOpcodes returns the number of unknown instructions that were skipped.
func (m *Machine) UnknownOpcodes() uint64 {
	return m.unknownOpcodes
}

// wrapPC reduces an address that overflowed the 12-bit address space.
func wrapPC(address uint16) uint16 {
	if address > MaxAddress {
		return address % MaxAddress
	}
	return address
}

type randomSource struct {
	rnd *rand.Rand
}

// NewRandom returns a Random backed by a PCG generator. A zero seed picks a
// random seed, any other seed gives a reproducible sequence.
func NewRandom(seed uint64) Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &randomSource{
		rnd: rand.New(rand.NewPCG(seed, seed)),
	}
}

func (r *randomSource) Byte() uint8 {
	return uint8(r.rnd.Uint32())
}
