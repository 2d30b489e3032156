package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// flow tells Step how to continue after an instruction was executed.
type flow uint8

const (
	flowNext flow = iota // advance to the next instruction
	flowSkip             // skip the next instruction
	flowJump             // PC was set by the instruction
	flowWait             // execute the same instruction again
)

// maxSpriteHeight is the maximum number of sprite rows, limited by the 4-bit n field.
const maxSpriteHeight = 15

func (m *Machine) execute(ins Instruction) (flow, error) {
	switch ins.Op {
	case OpClearScreen:
		m.framebuffer.Clear()

	case OpReturn:
		address, err := m.stack.Pop()
		if err != nil {
			return flowNext, err
		}
		m.pc = address
		return flowJump, nil

	case OpJump:
		m.pc = ins.NNN
		return flowJump, nil

	case OpCall:
		if err := m.stack.Push(wrapPC(m.pc + opcodeSize)); err != nil {
			return flowNext, fmt.Errorf("calling $%03X: %w", ins.NNN, err)
		}
		m.pc = ins.NNN
		return flowJump, nil

	case OpJumpOffset:
		m.pc = wrapPC(ins.NNN + uint16(m.v[0]))
		return flowJump, nil

	case OpSkipEqualByte:
		return skipIf(m.v[ins.X] == ins.NN), nil
	case OpSkipNotEqualByte:
		return skipIf(m.v[ins.X] != ins.NN), nil
	case OpSkipEqualReg:
		return skipIf(m.v[ins.X] == m.v[ins.Y]), nil
	case OpSkipNotEqualReg:
		return skipIf(m.v[ins.X] != m.v[ins.Y]), nil
	case OpSkipKeyPressed:
		return skipIf(m.keys[m.v[ins.X]&0x0F]), nil
	case OpSkipKeyNotPressed:
		return skipIf(!m.keys[m.v[ins.X]&0x0F]), nil

	case OpLoadByte:
		m.v[ins.X] = ins.NN
	case OpAddByte:
		m.v[ins.X] += ins.NN

	case OpLoadReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpShiftRight, OpSubN, OpShiftLeft:
		m.executeArithmetic(ins)

	case OpLoadIndex:
		m.i = ins.NNN
	case OpRandom:
		m.v[ins.X] = m.random.Byte() & ins.NN
	case OpDraw:
		m.draw(ins)

	case OpLoadDelay, OpWaitKey, OpSetDelay, OpSetSound, OpAddIndex, OpLoadFont,
		OpStoreBCD, OpStoreRegisters, OpLoadRegisters:
		return m.executeMisc(ins), nil

	default:
		m.unknownOpcodes++
		m.logger.Warn("Skipping unknown instruction",
			log.Hex("address", m.pc),
			log.Hex("opcode", ins.Raw))
	}

	return flowNext, nil
}

func skipIf(condition bool) flow {
	if condition {
		return flowSkip
	}
	return flowNext
}

// executeArithmetic handles the 8xyN register operations. The flag register
// is written after the result so that it holds the flag when x is 0xF.
func (m *Machine) executeArithmetic(ins Instruction) {
	x, y := m.v[ins.X], m.v[ins.Y]

	switch ins.Op {
	case OpLoadReg:
		m.v[ins.X] = y
	case OpOr:
		m.v[ins.X] = x | y
	case OpAnd:
		m.v[ins.X] = x & y
	case OpXor:
		m.v[ins.X] = x ^ y

	case OpAddReg:
		sum := uint16(x) + uint16(y)
		m.v[ins.X] = uint8(sum)
		m.setFlag(sum > 0xFF)

	case OpSub:
		m.v[ins.X] = x - y
		m.setFlag(x >= y)

	case OpSubN:
		m.v[ins.X] = y - x
		m.setFlag(y >= x)

	case OpShiftRight:
		m.v[ins.X] = y >> 1
		m.setFlag(y&0x01 != 0)

	case OpShiftLeft:
		m.v[ins.X] = y << 1
		m.setFlag(y&0x80 != 0)
	}
}

// executeMisc handles the Fx instructions.
func (m *Machine) executeMisc(ins Instruction) flow {
	switch ins.Op {
	case OpLoadDelay:
		m.v[ins.X] = m.delay.Value()

	case OpWaitKey:
		for key, pressed := range m.keys {
			if pressed {
				m.v[ins.X] = uint8(key)
				return flowNext
			}
		}
		return flowWait

	case OpSetDelay:
		m.delay.Set(m.v[ins.X])
	case OpSetSound:
		m.sound.Set(m.v[ins.X])
	case OpAddIndex:
		m.i += uint16(m.v[ins.X])
	case OpLoadFont:
		m.i = fontGlyphAddress(m.v[ins.X])

	case OpStoreBCD:
		value := m.v[ins.X]
		m.memory.Write(m.i, value/100)
		m.memory.Write(m.i+1, value/10%10)
		m.memory.Write(m.i+2, value%10)

	case OpStoreRegisters:
		for r := uint16(0); r <= uint16(ins.X); r++ {
			m.memory.Write(m.i+r, m.v[r])
		}

	case OpLoadRegisters:
		for r := uint16(0); r <= uint16(ins.X); r++ {
			m.v[r] = m.memory.Read(m.i + r)
		}
	}
	return flowNext
}

// draw executes Dxyn, VF is set to 1 if a lit pixel was turned off.
func (m *Machine) draw(ins Instruction) {
	var sprite [maxSpriteHeight]byte
	height := uint16(ins.N)
	for row := range height {
		sprite[row] = m.memory.Read(m.i + row)
	}

	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[flagRegister] = 0
	collision := m.framebuffer.DrawSprite(x, y, sprite[:height])
	m.setFlag(collision)
}

func (m *Machine) setFlag(set bool) {
	if set {
		m.v[flagRegister] = 1
	} else {
		m.v[flagRegister] = 0
	}
}
