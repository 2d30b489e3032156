package disasm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Write outputs the disassembly listing of the processed program.
func (dis *Disasm) Write(w io.Writer) error {
	if len(dis.image) == 0 {
		return nil
	}

	buf := bufio.NewWriter(w)
	for address := uint32(chip8.ProgramStart); address <= uint32(dis.lastAddress()); {
		size, err := dis.writeOffset(buf, uint16(address))
		if err != nil {
			return err
		}
		address += uint32(size)
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// writeOffset writes the line for the given address and returns the amount of
// bytes that the line covers.
func (dis *Disasm) writeOffset(w io.Writer, address uint16) (int, error) {
	offsetInfo, ok := dis.offsets[address]
	if !ok {
		offsetInfo = &offset{}
	}

	if offsetInfo.label != "" {
		if _, err := fmt.Fprintf(w, "%s:\n", offsetInfo.label); err != nil {
			return 0, fmt.Errorf("writing label: %w", err)
		}
	}

	var line string
	size := 1
	switch offsetInfo.typ {
	case codeOffset:
		line = fmt.Sprintf("$%04X  %04X  %s", address, offsetInfo.word, dis.formatCode(offsetInfo))
		size = opcodeSize

	default:
		b := dis.readMemory(address)
		line = fmt.Sprintf("$%04X  %-4s  .byte $%02X", address, fmt.Sprintf("%02X", b), b)
		if offsetInfo.comment != "" {
			line += " ; " + offsetInfo.comment
		}
	}

	if _, err := fmt.Fprintln(w, line); err != nil {
		return 0, fmt.Errorf("writing line: %w", err)
	}
	return size, nil
}
