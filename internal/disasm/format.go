package disasm

import (
	"fmt"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// formatCode returns the instruction name with its formatted parameters.
func (dis *Disasm) formatCode(offsetInfo *offset) string {
	params := dis.formatInstruction(offsetInfo)
	if params == "" {
		return offsetInfo.name
	}
	return fmt.Sprintf("%s %s", offsetInfo.name, params)
}

// formatInstruction formats the parameters of a CHIP-8 instruction.
func (dis *Disasm) formatInstruction(offsetInfo *offset) string {
	opcode := offsetInfo.word

	switch offsetInfo.name {
	case cpu.ClsName, cpu.RetName:
		return ""
	case cpu.JpName:
		return dis.formatJumpInstruction(opcode)
	case cpu.CallName:
		return dis.formatAddress(opcode & 0x0FFF)
	case cpu.SeName, cpu.SneName:
		return formatCompareInstruction(opcode)
	case cpu.LdName:
		return dis.formatLoadInstruction(opcode)
	case cpu.AddName:
		return formatAddInstruction(opcode)
	case cpu.OrName, cpu.AndName, cpu.XorName, cpu.SubName, cpu.SubnName,
		cpu.ShrName, cpu.ShlName:
		return fmt.Sprintf("V%X, V%X", extractRegisterX(opcode), extractRegisterY(opcode))
	case cpu.RndName:
		return fmt.Sprintf("V%X, $%02X", extractRegisterX(opcode), opcode&0x00FF)
	case cpu.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", extractRegisterX(opcode), extractRegisterY(opcode), opcode&0x000F)
	case cpu.SkpName, cpu.SknpName:
		return fmt.Sprintf("V%X", extractRegisterX(opcode))
	}
	return ""
}

// formatAddress returns the label of the address if one exists, otherwise the
// address as hex value.
func (dis *Disasm) formatAddress(address uint16) string {
	if label := dis.labelOf(address); label != "" {
		return label
	}
	return fmt.Sprintf("$%03X", address)
}

func (dis *Disasm) formatJumpInstruction(opcode uint16) string {
	if opcode&0xF000 == 0xB000 {
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return dis.formatAddress(opcode & 0x0FFF)
}

func formatCompareInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	default:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	}
}

func (dis *Disasm) formatLoadInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	case 0xA000:
		return "I, " + dis.formatAddress(opcode&0x0FFF)
	}

	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

func formatAddInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	default:
		return fmt.Sprintf("I, V%X", x)
	}
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
