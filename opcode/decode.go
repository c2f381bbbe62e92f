package opcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Urethramancer/nes6502/cpu"
	"github.com/retroenv/retrogolib/nes/addressing"
	nescpu "github.com/retroenv/retrogolib/nes/cpu"
)

// ErrUnknown is returned for opcode bytes that are not documented instructions.
var ErrUnknown = errors.New("unknown or undocumented opcode")

type key struct {
	name string
	mode cpu.Mode
}

var (
	table   [256]*Instruction
	reverse = make(map[key]Instruction)
)

func init() {
	for i := 0; i < 256; i++ {
		op := nescpu.Opcodes[byte(i)]
		if op.Instruction == nil || op.Instruction.Unofficial {
			continue
		}
		mode, ok := fromAddressing(op.Addressing)
		if !ok {
			continue
		}

		inst := Instruction{
			Opcode: byte(i),
			Name:   strings.ToLower(op.Instruction.Name),
			Mode:   mode,
		}
		table[i] = &inst
		reverse[key{inst.Name, inst.Mode}] = inst
	}
}

// fromAddressing converts the retrogolib mode to a cpu.Mode.
// Implied and accumulator forms are both Implicit.
func fromAddressing(m addressing.Mode) (cpu.Mode, bool) {
	switch m {
	case addressing.ImpliedAddressing, addressing.AccumulatorAddressing:
		return cpu.Implicit, true
	case addressing.ImmediateAddressing:
		return cpu.Immediate, true
	case addressing.AbsoluteAddressing:
		return cpu.Absolute, true
	case addressing.AbsoluteXAddressing:
		return cpu.AbsoluteX, true
	case addressing.AbsoluteYAddressing:
		return cpu.AbsoluteY, true
	case addressing.ZeroPageAddressing:
		return cpu.ZeroPage, true
	case addressing.ZeroPageXAddressing:
		return cpu.ZeroPageX, true
	case addressing.ZeroPageYAddressing:
		return cpu.ZeroPageY, true
	case addressing.RelativeAddressing:
		return cpu.Relative, true
	case addressing.IndirectAddressing:
		return cpu.Indirect, true
	case addressing.IndirectXAddressing:
		return cpu.IndexedIndirect, true
	case addressing.IndirectYAddressing:
		return cpu.IndirectIndexed, true
	default:
		return cpu.ModeInvalid, false
	}
}

// Decode returns the documented instruction for an opcode byte.
func Decode(b byte) (Instruction, error) {
	inst := table[b]
	if inst == nil {
		return Instruction{}, fmt.Errorf("opcode %02X: %w", b, ErrUnknown)
	}
	return *inst, nil
}

// Find returns the opcode encoding name with mode, if the 6502 has one.
func Find(name string, mode cpu.Mode) (Instruction, bool) {
	inst, ok := reverse[key{strings.ToLower(name), mode}]
	return inst, ok
}

// Known reports whether name is a documented mnemonic.
func Known(name string) bool {
	name = strings.ToLower(name)
	for k := range reverse {
		if k.name == name {
			return true
		}
	}
	return false
}

// Modes returns every mode name supports.
func Modes(name string) []cpu.Mode {
	name = strings.ToLower(name)
	var modes []cpu.Mode
	for m := cpu.Absolute; m <= cpu.IndirectIndexed; m++ {
		if _, ok := reverse[key{name, m}]; ok {
			modes = append(modes, m)
		}
	}
	return modes
}
