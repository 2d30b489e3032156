// Package disasm creates an assembly listing of a CHIP-8 program image by
// following its execution flow from the program start address.
package disasm

import (
	"context"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// offsetType describes how an address of the program image is used.
type offsetType uint8

const (
	dataOffset offsetType = iota // default, not reached by the execution flow
	codeOffset
	codeAsData // reached by the execution flow but overlapped by a branch target
)

// offset contains the disassembly result for a single address.
type offset struct {
	typ     offsetType
	word    uint16 // instruction word for code offsets
	name    string // instruction name
	label   string
	comment string
}

// Disasm implements a CHIP-8 disassembler.
type Disasm struct {
	logger *log.Logger
	image  []byte

	pc uint16 // address of the currently processed instruction

	offsets map[uint16]*offset

	branchDestinations set.Set[uint16] // addresses that are jumped to
	callDestinations   set.Set[uint16] // addresses that are called
	dataReferences     set.Set[uint16] // addresses loaded into I

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for the given program image. The image is
// expected to be loaded at chip8.ProgramStart.
func New(logger *log.Logger, image []byte) *Disasm {
	return &Disasm{
		logger:              logger,
		image:               image,
		offsets:             make(map[uint16]*offset),
		branchDestinations:  set.New[uint16](),
		callDestinations:    set.New[uint16](),
		dataReferences:      set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}
}

// Process follows the execution flow of the program and assigns labels.
func (dis *Disasm) Process(ctx context.Context) error {
	if len(dis.image) == 0 {
		return nil
	}

	dis.addAddressToParse(chip8.ProgramStart)
	if err := dis.followExecutionFlow(ctx); err != nil {
		return err
	}
	dis.processLabels()

	dis.logger.Debug("Program disassembled",
		log.Int("size", len(dis.image)),
		log.Int("instructions", dis.codeOffsets()))
	return nil
}

// lastAddress returns the address of the last byte of the program image.
func (dis *Disasm) lastAddress() uint16 {
	return chip8.ProgramStart + uint16(len(dis.image)) - 1
}

// inImage returns whether the address is part of the program image.
func (dis *Disasm) inImage(address uint16) bool {
	return address >= chip8.ProgramStart && address <= dis.lastAddress()
}

func (dis *Disasm) readMemory(address uint16) byte {
	return dis.image[address-chip8.ProgramStart]
}

func (dis *Disasm) offsetInfo(address uint16) *offset {
	info, ok := dis.offsets[address]
	if !ok {
		info = &offset{}
		dis.offsets[address] = info
	}
	return info
}

func (dis *Disasm) codeOffsets() int {
	count := 0
	for _, info := range dis.offsets {
		if info.typ == codeOffset {
			count++
		}
	}
	return count
}

// labelOf returns the label of the given address or an empty string.
func (dis *Disasm) labelOf(address uint16) string {
	info, ok := dis.offsets[address]
	if !ok {
		return ""
	}
	return info.label
}
