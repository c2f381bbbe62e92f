package assembler

import (
	"fmt"

	"github.com/Urethramancer/nes6502/cpu"
	"github.com/Urethramancer/nes6502/opcode"
)

// selectInstruction picks the encoding for a mnemonic and operand. Plain and
// indexed operands use the zero-page form when the value is known, fits in
// a byte and the instruction has one; otherwise the absolute form.
func (asm *Assembler) selectInstruction(mn string, op Operand) (opcode.Instruction, int64, error) {
	var val int64
	known := true
	if op.Expr != "" {
		var err error
		val, known, err = asm.evaluate(op.Expr)
		if err != nil {
			return opcode.Instruction{}, 0, err
		}
	}
	zeroPage := known && val >= 0 && val <= 0xFF

	var mode cpu.Mode
	switch op.Kind {
	case OperandNone:
		mode = cpu.Implicit
	case OperandAccumulator:
		if _, ok := opcode.Accumulator[mn]; !ok {
			return opcode.Instruction{}, 0, fmt.Errorf("%s has no accumulator form", mn)
		}
		mode = cpu.Implicit
	case OperandImmediate:
		mode = cpu.Immediate
	case OperandIndirect:
		mode = cpu.Indirect
	case OperandIndexedIndirect:
		mode = cpu.IndexedIndirect
	case OperandIndirectIndexed:
		mode = cpu.IndirectIndexed
	case OperandX:
		mode = pick(mn, zeroPage, cpu.ZeroPageX, cpu.AbsoluteX)
	case OperandY:
		mode = pick(mn, zeroPage, cpu.ZeroPageY, cpu.AbsoluteY)
	case OperandPlain:
		if _, ok := opcode.Find(mn, cpu.Relative); ok {
			mode = cpu.Relative
		} else {
			mode = pick(mn, zeroPage, cpu.ZeroPage, cpu.Absolute)
		}
	default:
		return opcode.Instruction{}, 0, fmt.Errorf("unknown operand %q", op.Raw)
	}

	inst, ok := opcode.Find(mn, mode)
	if !ok {
		return opcode.Instruction{}, 0, fmt.Errorf("%s does not support %s addressing", mn, mode)
	}
	return inst, val, nil
}

// pick falls back to the zero-page form when no absolute form exists
// (stx v,y), so forward references still size correctly.
func pick(mn string, zeroPage bool, zp, abs cpu.Mode) cpu.Mode {
	_, hasZP := opcode.Find(mn, zp)
	_, hasAbs := opcode.Find(mn, abs)
	if hasZP && (zeroPage || !hasAbs) {
		return zp
	}
	return abs
}

// encode produces the opcode and operand bytes for inst at pc.
func encode(inst opcode.Instruction, val int64, pc uint16) ([]byte, error) {
	out := []byte{inst.Opcode}

	switch inst.Mode {
	case cpu.Implicit:
		return out, nil

	case cpu.Immediate:
		if val < -128 || val > 0xFF {
			return nil, fmt.Errorf("immediate value %d out of range", val)
		}
		return append(out, byte(val)), nil

	case cpu.ZeroPage, cpu.ZeroPageX, cpu.ZeroPageY, cpu.IndexedIndirect, cpu.IndirectIndexed:
		if val < 0 || val > 0xFF {
			return nil, fmt.Errorf("zero page address $%X out of range", val)
		}
		return append(out, byte(val)), nil

	case cpu.Relative:
		// The hardware displacement is measured from the next instruction.
		offset := val - (int64(pc) + 2)
		if offset < -128 || offset > 127 {
			return nil, fmt.Errorf("branch target $%04X out of range (offset %d)", val, offset)
		}
		return append(out, byte(int8(offset))), nil

	case cpu.Absolute, cpu.AbsoluteX, cpu.AbsoluteY, cpu.Indirect:
		if val < 0 || val > 0xFFFF {
			return nil, fmt.Errorf("address $%X out of range", val)
		}
		return append(out, cpu.WordsToBytes([]uint16{uint16(val)})...), nil
	}

	return nil, fmt.Errorf("cannot encode %s addressing", inst.Mode)
}
