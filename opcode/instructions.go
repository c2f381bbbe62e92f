// Package opcode maps 6502 opcode bytes to mnemonics and addressing modes.
package opcode

import (
	"github.com/Urethramancer/nes6502/cpu"
)

// Instruction is a documented 6502 opcode.
type Instruction struct {
	Opcode byte
	Name   string
	Mode   cpu.Mode
}

// Size returns the encoded length in bytes.
func (i Instruction) Size() int {
	return 1 + i.Mode.OperandBytes()
}

// IsBranch reports whether the instruction is a conditional branch.
func (i Instruction) IsBranch() bool {
	return i.Mode == cpu.Relative
}

// IsTerminal reports whether execution never falls through to the next instruction.
func (i Instruction) IsTerminal() bool {
	_, ok := terminal[i.Name]
	return ok
}

var terminal = map[string]struct{}{
	"jmp": {},
	"rts": {},
	"rti": {},
	"brk": {},
}

// Accumulator lists the mnemonics whose implicit form operates on A and is
// written with an explicit "a" operand.
var Accumulator = map[string]struct{}{
	"asl": {},
	"lsr": {},
	"rol": {},
	"ror": {},
}
