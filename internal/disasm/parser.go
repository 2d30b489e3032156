package disasm

import (
	"context"
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

const opcodeSize = 2

// followExecutionFlow parses opcodes and follows the execution flow to parse all code.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.pc = address

		offsetInfo, opcode, inspectCode := dis.initializeOffsetInfo(address)
		if !inspectCode {
			continue
		}

		dis.handleControlFlow(opcode.Instruction, offsetInfo.word)
	}
	return nil
}

// initializeOffsetInfo reads the instruction word at the address and identifies
// the opcode. It returns whether the offset contains code to inspect.
func (dis *Disasm) initializeOffsetInfo(address uint16) (*offset, cpu.Opcode, bool) {
	var opcode cpu.Opcode

	if !dis.inImage(address) || !dis.inImage(address+1) {
		dis.logger.Debug("Execution flow leaves program image",
			log.Hex("address", address))
		return nil, opcode, false
	}

	b1 := dis.readMemory(address)
	b2 := dis.readMemory(address + 1)
	w := uint16(b1)<<8 | uint16(b2)

	opcode, ok := chip8.LookupOpcode(w)
	if !ok {
		// consider an unknown instruction as start of data
		dis.logger.Debug("Unknown instruction, treating as data",
			log.Hex("address", address),
			log.Hex("opcode", w))
		return nil, opcode, false
	}

	offsetInfo := dis.offsetInfo(address)
	offsetInfo.typ = codeOffset
	offsetInfo.word = w
	offsetInfo.name = opcode.Instruction.Name
	return offsetInfo, opcode, true
}

// handleControlFlow queues the addresses that the instruction can continue at.
func (dis *Disasm) handleControlFlow(instruction *cpu.Instruction, word uint16) {
	nextAddr := dis.pc + opcodeSize
	target := word & 0x0FFF

	switch {
	case instruction == cpu.JpInst && word&0xF000 == 0x1000:
		if dis.inImage(target) {
			dis.branchDestinations[target] = struct{}{}
		}
		dis.addAddressToParse(target)

	case word&0xF000 == 0xB000:
		// JP V0, addr has a register dependent destination that can not be followed

	case instruction == cpu.CallInst:
		if dis.inImage(target) {
			dis.callDestinations[target] = struct{}{}
		}
		dis.addAddressToParse(target)
		dis.addAddressToParse(nextAddr)

	case instruction == cpu.RetInst:

	case cpu.SkipInstructions.Contains(instruction.Name):
		dis.addAddressToParse(nextAddr)
		dis.addAddressToParse(nextAddr + opcodeSize)

	case instruction == cpu.LdInst && word&0xF000 == 0xA000:
		if dis.inImage(target) {
			dis.dataReferences[target] = struct{}{}
		}
		dis.addAddressToParse(nextAddr)

	default:
		dis.addAddressToParse(nextAddr)
	}
}

// addAddressToParse queues an address for parsing if it was not queued before.
func (dis *Disasm) addAddressToParse(address uint16) {
	if address < chip8.ProgramStart || address > chip8.MaxAddress {
		return
	}
	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded[address] = struct{}{}
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}
