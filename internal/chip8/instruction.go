package chip8

import (
	"fmt"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Operation identifies a decoded CHIP-8 instruction.
type Operation uint8

// All operations that Decode can produce.
const (
	OpUnknown           Operation = iota // unrecognized instruction word
	OpClearScreen                        // 00E0 CLS
	OpReturn                             // 00EE RET
	OpJump                               // 1nnn JP addr
	OpCall                               // 2nnn CALL addr
	OpSkipEqualByte                      // 3xnn SE Vx, byte
	OpSkipNotEqualByte                   // 4xnn SNE Vx, byte
	OpSkipEqualReg                       // 5xy0 SE Vx, Vy
	OpLoadByte                           // 6xnn LD Vx, byte
	OpAddByte                            // 7xnn ADD Vx, byte
	OpLoadReg                            // 8xy0 LD Vx, Vy
	OpOr                                 // 8xy1 OR Vx, Vy
	OpAnd                                // 8xy2 AND Vx, Vy
	OpXor                                // 8xy3 XOR Vx, Vy
	OpAddReg                             // 8xy4 ADD Vx, Vy
	OpSub                                // 8xy5 SUB Vx, Vy
	OpShiftRight                         // 8xy6 SHR Vx, Vy
	OpSubN                               // 8xy7 SUBN Vx, Vy
	OpShiftLeft                          // 8xyE SHL Vx, Vy
	OpSkipNotEqualReg                    // 9xy0 SNE Vx, Vy
	OpLoadIndex                          // Annn LD I, addr
	OpJumpOffset                         // Bnnn JP V0, addr
	OpRandom                             // Cxnn RND Vx, byte
	OpDraw                               // Dxyn DRW Vx, Vy, nibble
	OpSkipKeyPressed                     // Ex9E SKP Vx
	OpSkipKeyNotPressed                  // ExA1 SKNP Vx
	OpLoadDelay                          // Fx07 LD Vx, DT
	OpWaitKey                            // Fx0A LD Vx, K
	OpSetDelay                           // Fx15 LD DT, Vx
	OpSetSound                           // Fx18 LD ST, Vx
	OpAddIndex                           // Fx1E ADD I, Vx
	OpLoadFont                           // Fx29 LD F, Vx
	OpStoreBCD                           // Fx33 LD B, Vx
	OpStoreRegisters                     // Fx55 LD [I], Vx
	OpLoadRegisters                      // Fx65 LD Vx, [I]
)

var operationNames = [...]string{
	OpUnknown:           "unknown",
	OpClearScreen:       cpu.ClsName,
	OpReturn:            cpu.RetName,
	OpJump:              cpu.JpName,
	OpCall:              cpu.CallName,
	OpSkipEqualByte:     cpu.SeName,
	OpSkipNotEqualByte:  cpu.SneName,
	OpSkipEqualReg:      cpu.SeName,
	OpLoadByte:          cpu.LdName,
	OpAddByte:           cpu.AddName,
	OpLoadReg:           cpu.LdName,
	OpOr:                cpu.OrName,
	OpAnd:               cpu.AndName,
	OpXor:               cpu.XorName,
	OpAddReg:            cpu.AddName,
	OpSub:               cpu.SubName,
	OpShiftRight:        cpu.ShrName,
	OpSubN:              cpu.SubnName,
	OpShiftLeft:         cpu.ShlName,
	OpSkipNotEqualReg:   cpu.SneName,
	OpLoadIndex:         cpu.LdName,
	OpJumpOffset:        cpu.JpName,
	OpRandom:            cpu.RndName,
	OpDraw:              cpu.DrwName,
	OpSkipKeyPressed:    cpu.SkpName,
	OpSkipKeyNotPressed: cpu.SknpName,
	OpLoadDelay:         cpu.LdName,
	OpWaitKey:           cpu.LdName,
	OpSetDelay:          cpu.LdName,
	OpSetSound:          cpu.LdName,
	OpAddIndex:          cpu.AddName,
	OpLoadFont:          cpu.LdName,
	OpStoreBCD:          cpu.LdName,
	OpStoreRegisters:    cpu.LdName,
	OpLoadRegisters:     cpu.LdName,
}

// String returns the mnemonic of the operation.
func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return fmt.Sprintf("Operation(%d)", o)
}

// Instruction is a decoded instruction word. Only the fields used by the
// operation are meaningful, Raw always holds the original word.
type Instruction struct {
	Op  Operation
	Raw uint16

	X   uint8  // register index from bits 11-8
	Y   uint8  // register index from bits 7-4
	N   uint8  // 4-bit immediate from bits 3-0
	NN  uint8  // 8-bit immediate from bits 7-0
	NNN uint16 // 12-bit address from bits 11-0
}

// String returns the instruction in assembler notation.
func (ins Instruction) String() string {
	switch ins.Op {
	case OpClearScreen, OpReturn:
		return ins.Op.String()
	case OpJump, OpCall:
		return fmt.Sprintf("%s $%03X", ins.Op, ins.NNN)
	case OpSkipEqualByte, OpSkipNotEqualByte, OpLoadByte, OpAddByte, OpRandom:
		return fmt.Sprintf("%s V%X, $%02X", ins.Op, ins.X, ins.NN)
	case OpSkipEqualReg, OpSkipNotEqualReg, OpLoadReg, OpOr, OpAnd, OpXor,
		OpAddReg, OpSub, OpShiftRight, OpSubN, OpShiftLeft:
		return fmt.Sprintf("%s V%X, V%X", ins.Op, ins.X, ins.Y)
	case OpLoadIndex:
		return fmt.Sprintf("ld I, $%03X", ins.NNN)
	case OpJumpOffset:
		return fmt.Sprintf("jp V0, $%03X", ins.NNN)
	case OpDraw:
		return fmt.Sprintf("drw V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case OpSkipKeyPressed, OpSkipKeyNotPressed:
		return fmt.Sprintf("%s V%X", ins.Op, ins.X)
	case OpLoadDelay:
		return fmt.Sprintf("ld V%X, DT", ins.X)
	case OpWaitKey:
		return fmt.Sprintf("ld V%X, K", ins.X)
	case OpSetDelay:
		return fmt.Sprintf("ld DT, V%X", ins.X)
	case OpSetSound:
		return fmt.Sprintf("ld ST, V%X", ins.X)
	case OpAddIndex:
		return fmt.Sprintf("add I, V%X", ins.X)
	case OpLoadFont:
		return fmt.Sprintf("ld F, V%X", ins.X)
	case OpStoreBCD:
		return fmt.Sprintf("ld B, V%X", ins.X)
	case OpStoreRegisters:
		return fmt.Sprintf("ld [I], V%X", ins.X)
	case OpLoadRegisters:
		return fmt.Sprintf("ld V%X, [I]", ins.X)
	default:
		return fmt.Sprintf(".word $%04X", ins.Raw)
	}
}

// Decode decodes an instruction word. Every word maps to exactly one
// instruction, words that are not part of the instruction set decode to OpUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Raw: word,
		X:   uint8(word>>8) & 0x0F,
		Y:   uint8(word>>4) & 0x0F,
		N:   uint8(word) & 0x0F,
		NN:  uint8(word),
		NNN: word & 0x0FFF,
	}
	ins.Op = decodeOperation(word)
	return ins
}

// operations maps the opcode table entries of the instruction set to the
// operation that the machine executes for them.
var operations = map[cpu.OpcodeInfo]Operation{
	cpu.Opcode00E0: OpClearScreen,
	cpu.Opcode00EE: OpReturn,
	cpu.Opcode1000: OpJump,
	cpu.Opcode2000: OpCall,
	cpu.Opcode3000: OpSkipEqualByte,
	cpu.Opcode4000: OpSkipNotEqualByte,
	cpu.Opcode5000: OpSkipEqualReg,
	cpu.Opcode6000: OpLoadByte,
	cpu.Opcode7000: OpAddByte,
	cpu.Opcode8000: OpLoadReg,
	cpu.Opcode8001: OpOr,
	cpu.Opcode8002: OpAnd,
	cpu.Opcode8003: OpXor,
	cpu.Opcode8004: OpAddReg,
	cpu.Opcode8005: OpSub,
	cpu.Opcode8006: OpShiftRight,
	cpu.Opcode8007: OpSubN,
	cpu.Opcode800E: OpShiftLeft,
	cpu.Opcode9000: OpSkipNotEqualReg,
	cpu.OpcodeA000: OpLoadIndex,
	cpu.OpcodeB000: OpJumpOffset,
	cpu.OpcodeC000: OpRandom,
	cpu.OpcodeD000: OpDraw,
	cpu.OpcodeE09E: OpSkipKeyPressed,
	cpu.OpcodeE0A1: OpSkipKeyNotPressed,
	cpu.OpcodeF007: OpLoadDelay,
	cpu.OpcodeF00A: OpWaitKey,
	cpu.OpcodeF015: OpSetDelay,
	cpu.OpcodeF018: OpSetSound,
	cpu.OpcodeF01E: OpAddIndex,
	cpu.OpcodeF029: OpLoadFont,
	cpu.OpcodeF033: OpStoreBCD,
	cpu.OpcodeF055: OpStoreRegisters,
	cpu.OpcodeF065: OpLoadRegisters,
}

// LookupOpcode returns the opcode table entry that matches the instruction word.
func LookupOpcode(word uint16) (cpu.Opcode, bool) {
	for _, op := range cpu.Opcodes[word>>12] {
		if word&op.Info.Mask == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return cpu.Opcode{}, false
}

func decodeOperation(word uint16) Operation {
	opcode, ok := LookupOpcode(word)
	if !ok {
		return OpUnknown
	}
	return operations[opcode.Info]
}
