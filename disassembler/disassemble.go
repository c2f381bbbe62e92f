package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/nes6502/cpu"
	"github.com/Urethramancer/nes6502/opcode"
	"github.com/retroenv/retrogolib/log"
)

// Line is one listed instruction or data byte.
type Line struct {
	Address  uint16
	Bytes    []byte
	Mnemonic string
	Operand  string
	Mode     cpu.Mode
	// EA is the resolved effective address, valid when HasEA is set.
	EA    uint16
	HasEA bool
	// Data marks a byte that does not decode to a documented instruction.
	Data bool
	// Terminal marks an instruction that never falls through (jmp, rts, rti, brk).
	Terminal bool
}

// String renders the line in listing format.
func (l Line) String() string {
	hex := make([]string, len(l.Bytes))
	for i, b := range l.Bytes {
		hex[i] = fmt.Sprintf("%02X", b)
	}

	text := l.Mnemonic
	if l.Operand != "" {
		text += " " + l.Operand
	}

	s := fmt.Sprintf("$%04X  %-8s  %-16s", l.Address, strings.Join(hex, " "), text)
	if l.HasEA {
		s += fmt.Sprintf("; ea=$%04X", l.EA)
	}
	return strings.TrimRight(s, " ")
}

// Disassemble performs a linear sweep over c's memory. Registers are read but
// never changed.
func Disassemble(c *cpu.CPU, opts Options) []Line {
	end := opts.End
	if end == 0 || end > cpu.MemSize {
		end = cpu.MemSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	var lines []Line
	for pc := uint32(opts.Start); pc < end; {
		if opts.Count > 0 && len(lines) >= opts.Count {
			break
		}

		line := decodeLine(c, uint16(pc))
		if line.Data {
			logger.Debug("undecodable byte",
				log.String("address", fmt.Sprintf("$%04X", pc)),
				log.String("value", fmt.Sprintf("$%02X", line.Bytes[0])))
		}
		lines = append(lines, line)
		pc += uint32(len(line.Bytes))
	}
	return lines
}

// decodeLine decodes the instruction at pc. Operand bytes past $FFFF wrap,
// matching the way Resolve reads them.
func decodeLine(c *cpu.CPU, pc uint16) Line {
	b := c.ReadByte(pc)
	inst, err := opcode.Decode(b)
	if err != nil {
		return Line{
			Address:  pc,
			Bytes:    []byte{b},
			Mnemonic: ".byte",
			Operand:  fmt.Sprintf("$%02X", b),
			Data:     true,
		}
	}

	line := Line{
		Address:  pc,
		Bytes:    make([]byte, inst.Size()),
		Mnemonic: inst.Name,
		Mode:     inst.Mode,
		Terminal: inst.IsTerminal(),
	}
	for i := range line.Bytes {
		line.Bytes[i] = c.ReadByte(pc + uint16(i))
	}

	line.Operand = formatOperand(c, inst, pc)
	if inst.Mode.HasAddress() {
		line.EA = c.Resolve(pc, inst.Mode)
		line.HasEA = true
	}
	return line
}

// Format renders lines as a listing, one per row. A blank row follows each
// instruction that ends a block of straight-line code.
func Format(lines []Line) string {
	var out strings.Builder
	for i, l := range lines {
		out.WriteString(l.String())
		out.WriteByte('\n')
		if l.Terminal && i < len(lines)-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
