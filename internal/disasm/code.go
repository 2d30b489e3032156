package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

const (
	startLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// processLabels names all data, branch and call destinations. Call naming wins
// over jump naming, and both win over data naming.
func (dis *Disasm) processLabels() {
	dis.offsetInfo(chip8.ProgramStart).label = startLabel

	// data references into the second byte of an instruction keep their
	// numeric operand as the label could not be output
	dataReferences := set.New[uint16]()
	for address := range dis.dataReferences {
		if !dis.insideInstruction(address) {
			dataReferences[address] = struct{}{}
		}
	}

	dis.nameDestinations(dataReferences, dataNaming)
	dis.nameDestinations(dis.branchDestinations, labelNaming)
	dis.nameDestinations(dis.callDestinations, funcNaming)

	for _, address := range sortedAddresses(dis.branchDestinations, dis.callDestinations) {
		if dis.insideInstruction(address) {
			dis.handleJumpIntoInstruction(address)
		}
	}
}

func (dis *Disasm) nameDestinations(destinations set.Set[uint16], naming string) {
	for _, address := range sortedAddresses(destinations) {
		offsetInfo := dis.offsetInfo(address)
		if offsetInfo.label == startLabel {
			continue
		}
		offsetInfo.label = fmt.Sprintf(naming, address)
	}
}

// insideInstruction returns whether the address is the second byte of a
// parsed instruction.
func (dis *Disasm) insideInstruction(address uint16) bool {
	if address == 0 {
		return false
	}
	previous, ok := dis.offsets[address-1]
	return ok && previous.typ == codeOffset
}

// handleJumpIntoInstruction converts an instruction that has a branch destination
// inside its second byte into data.
func (dis *Disasm) handleJumpIntoInstruction(address uint16) {
	offsetInfo := dis.offsets[address-1]
	offsetInfo.typ = codeAsData
	offsetInfo.comment = fmt.Sprintf("branch into instruction detected: %s", dis.formatCode(offsetInfo))
}

func sortedAddresses(sets ...set.Set[uint16]) []uint16 {
	var addresses []uint16
	seen := set.New[uint16]()
	for _, s := range sets {
		for address := range s {
			if seen.Contains(address) {
				continue
			}
			seen[address] = struct{}{}
			addresses = append(addresses, address)
		}
	}
	slices.Sort(addresses)
	return addresses
}
