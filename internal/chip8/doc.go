// Package chip8 implements the CHIP-8 virtual machine interpreter core.
//
// # Machine Overview
//
// CHIP-8 is an interpreted language from the 1970s. A program runs on a small
// virtual machine that this package emulates:
//   - 4KB of byte addressable memory (0x000-MaxAddress)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - a 16-bit index register (I) and a 16-bit program counter (PC)
//   - a call stack of return addresses
//   - a delay and a sound timer, both decremented at 60Hz
//   - a 64x32 monochrome framebuffer
//   - a 16 key hexadecimal keypad
//
// # Memory Layout
//
//   - 0x000-0x04F: hexadecimal digit font, 5 bytes per glyph
//   - 0x050-0x1FF: reserved interpreter area
//   - ProgramStart-MaxAddress: program image and data
//
// # Execution
//
// The host calls Machine.Step once per cycle. A step fetches the big-endian
// instruction word at PC, decodes it into an Instruction with the pure Decode
// function and executes it. Instructions that do not redirect control flow
// advance PC by 2. Timers are serviced independently of the step rate through
// Machine.UpdateTimers, which is driven by wall-clock time.
//
// # Behaviour Choices
//
// Several CHIP-8 instructions behaved differently between historic
// interpreters. This package implements:
//   - SHR/SHL (8xy6/8xyE) shift Vy and store the result in Vx
//   - LD [I], Vx and LD Vx, [I] (Fx55/Fx65) leave I unchanged
//   - sprites wrap their origin but clip at the right and bottom edges
//   - the call stack holds at most MaxStackDepth return addresses
//
// Stack underflow and overflow halt the machine. Unknown instructions are
// logged and skipped.
package chip8
