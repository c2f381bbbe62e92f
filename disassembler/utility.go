package disassembler

import (
	"fmt"

	"github.com/Urethramancer/nes6502/cpu"
	"github.com/Urethramancer/nes6502/opcode"
)

// formatOperand returns the operand in standard 6502 syntax.
// Branches show their destination rather than the raw displacement.
func formatOperand(c *cpu.CPU, inst opcode.Instruction, pc uint16) string {
	if inst.IsBranch() {
		return fmt.Sprintf("$%04X", c.BranchTarget(pc))
	}

	b := c.ReadByte(pc + 1)
	w := c.ReadWord(pc + 1)

	switch inst.Mode {
	case cpu.Implicit:
		if _, ok := opcode.Accumulator[inst.Name]; ok {
			return "a"
		}
		return ""
	case cpu.Immediate:
		return fmt.Sprintf("#$%02X", b)
	case cpu.ZeroPage:
		return fmt.Sprintf("$%02X", b)
	case cpu.ZeroPageX:
		return fmt.Sprintf("$%02X,x", b)
	case cpu.ZeroPageY:
		return fmt.Sprintf("$%02X,y", b)
	case cpu.Absolute:
		return fmt.Sprintf("$%04X", w)
	case cpu.AbsoluteX:
		return fmt.Sprintf("$%04X,x", w)
	case cpu.AbsoluteY:
		return fmt.Sprintf("$%04X,y", w)
	case cpu.Indirect:
		return fmt.Sprintf("($%04X)", w)
	case cpu.IndexedIndirect:
		return fmt.Sprintf("($%02X,x)", b)
	case cpu.IndirectIndexed:
		return fmt.Sprintf("($%02X),y", b)
	default:
		return ""
	}
}
