package cpu

import (
	"errors"
	"fmt"
)

// ErrNoAddress is wrapped by the panic value of Resolve when the mode
// does not define an effective address.
var ErrNoAddress = errors.New("addressing mode has no effective address")

// ModeError is the panic value raised by Resolve for Implicit or unknown modes.
type ModeError struct {
	Mode Mode
	PC   uint16
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("resolve %s at $%04X: %v", e.Mode, e.PC, ErrNoAddress)
}

func (e *ModeError) Unwrap() error {
	return ErrNoAddress
}

// Resolve returns the effective address of the instruction whose opcode is at pc.
// The operand bytes are read from pc+1 and pc+2. For Immediate the result is
// the address of the operand byte itself.
//
// Resolving Implicit is a bug in the caller's decoder and panics with *ModeError.
func (c *CPU) Resolve(pc uint16, mode Mode) uint16 {
	operand := pc + 1

	switch mode {
	case Absolute:
		return c.ReadWord(operand)
	case AbsoluteX:
		return c.ReadWord(operand) + uint16(c.X)
	case AbsoluteY:
		return c.ReadWord(operand) + uint16(c.Y)

	case ZeroPage:
		return uint16(c.ReadByte(operand))
	case ZeroPageX:
		return uint16(c.ReadByte(operand) + c.X)
	case ZeroPageY:
		return uint16(c.ReadByte(operand) + c.Y)

	case Immediate:
		return operand
	case Relative:
		// Sign-extend the displacement; uint16 addition wraps.
		return operand + uint16(int16(int8(c.ReadByte(operand))))

	case Indirect:
		return c.readPointer(c.ReadWord(operand))
	case IndexedIndirect:
		zp := c.ReadByte(operand) + c.X
		return c.readPointer(uint16(zp))
	case IndirectIndexed:
		zp := c.ReadByte(operand)
		return c.readPointer(uint16(zp)) + uint16(c.Y)

	default:
		panic(&ModeError{Mode: mode, PC: pc})
	}
}

// BranchTarget returns where a taken branch at pc continues: one past the
// Relative effective address, i.e. pc+2 plus the signed displacement.
func (c *CPU) BranchTarget(pc uint16) uint16 {
	return c.Resolve(pc, Relative) + 1
}

// readPointer reads the word an indirect mode dereferences, honouring
// IndirectPageWrap.
func (c *CPU) readPointer(addr uint16) uint16 {
	if c.IndirectPageWrap {
		return c.ReadWordPageWrap(addr)
	}
	return c.ReadWord(addr)
}
