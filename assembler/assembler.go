// Package assembler turns 6502 assembly source into machine code.
package assembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Urethramancer/nes6502/opcode"
)

// maxPasses bounds the sizing loop; label values settle in two or three.
const maxPasses = 16

// ErrUnstable is returned when label addresses never settle.
var ErrUnstable = errors.New("label addresses did not settle")

// Assembler holds the state for the assembly process.
type Assembler struct {
	symbols map[string]int64
	labels  map[string]uint16
	final   bool
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: make(map[string]int64),
		labels:  make(map[string]uint16),
	}
}

// Labels returns the address of every label seen in the last Assemble call.
func (asm *Assembler) Labels() map[string]uint16 {
	out := make(map[string]uint16, len(asm.labels))
	for k, v := range asm.labels {
		out[k] = v
	}
	return out
}

// Assemble takes 6502 assembly source and returns the machine code for the
// range starting at baseAddress.
func (asm *Assembler) Assemble(src string, baseAddress uint16) ([]byte, error) {
	asm.final = false
	asm.symbols = make(map[string]int64)
	asm.labels = make(map[string]uint16)
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	// Pass: resolve label addresses and node sizes until stable.
	stable := false
	for pass := 0; pass < maxPasses && !stable; pass++ {
		stable = true
		pc := uint32(baseAddress)
		for _, n := range nodes {
			switch n.Type {
			case NodeLabel:
				if pc > 0xFFFF {
					return nil, fmt.Errorf("line %d: label %s past $FFFF", n.Line, n.Label)
				}
				if addr, ok := asm.labels[n.Label]; !ok || addr != uint16(pc) {
					asm.labels[n.Label] = uint16(pc)
					stable = false
				}
				continue
			case NodeConstant:
				if err := asm.defineConstant(n); err != nil {
					return nil, err
				}
				continue
			}

			if isOrg(n) {
				addr, err := asm.orgAddress(n, pc)
				if err != nil {
					return nil, err
				}
				pc = addr
				continue
			}

			size, err := asm.nodeSize(n)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			if size != n.Size {
				stable = false
			}
			n.Size = size
			pc += uint32(size)
		}
		if pc > MemLimit {
			return nil, fmt.Errorf("program runs past $FFFF (%d bytes)", pc-uint32(baseAddress))
		}
	}
	if !stable {
		return nil, ErrUnstable
	}

	// Generate machine code.
	asm.final = true
	var code []byte
	pc := uint32(baseAddress)
	for _, n := range nodes {
		var out []byte
		var err error

		switch n.Type {
		case NodeLabel, NodeConstant:
			continue
		case NodeDirective:
			if isOrg(n) {
				addr, err := asm.orgAddress(n, pc)
				if err != nil {
					return nil, err
				}
				code = append(code, make([]byte, addr-pc)...)
				pc = addr
				continue
			}
			out, err = asm.generateDirectiveCode(n)
		case NodeInstruction:
			out, err = asm.generateInstructionCode(n, uint16(pc))
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: error generating code for '%v': %w", n.Line, strings.Join(n.Parts, " "), err)
		}
		code = append(code, out...)
		pc += uint32(n.Size)
	}

	return code, nil
}

// MemLimit is one past the highest address code may occupy.
const MemLimit = 0x10000

// parseLines converts raw source lines into a slice of Node objects.
func (asm *Assembler) parseLines(lines []string) ([]*Node, error) {
	var nodes []*Node
	for i, line := range lines {
		lineNo := i + 1
		line = strings.TrimSpace(stripComment(line))
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		if idx := strings.Index(line, ":"); idx != -1 {
			label := strings.TrimSpace(line[:idx])
			if reSymbol.MatchString(label) {
				nodes = append(nodes, &Node{Type: NodeLabel, Line: lineNo, Label: strings.ToLower(label), Parts: []string{label + ":"}})
				line = strings.TrimSpace(line[idx+1:])
			}
		}

		if line == "" {
			continue
		}

		if name, value, ok := strings.Cut(line, "="); ok && reSymbol.MatchString(strings.TrimSpace(name)) {
			name = strings.TrimSpace(name)
			nodes = append(nodes, &Node{Type: NodeConstant, Line: lineNo, Label: strings.ToLower(name),
				Parts: []string{name, strings.TrimSpace(value)}})
			continue
		}

		var mnemonic, operandStr string
		firstSpace := strings.IndexAny(line, " \t")
		if firstSpace == -1 {
			mnemonic = line
		} else {
			mnemonic = line[:firstSpace]
			operandStr = strings.TrimSpace(line[firstSpace:])
		}

		nodeParts := []string{mnemonic}
		if operandStr != "" {
			nodeParts = append(nodeParts, operandStr)
		}

		if strings.HasPrefix(mnemonic, ".") {
			nodes = append(nodes, &Node{Type: NodeDirective, Line: lineNo, Parts: nodeParts})
			continue
		}

		mn := strings.ToLower(mnemonic)
		if !opcode.Known(mn) {
			return nil, fmt.Errorf("line %d: unknown instruction: %s", lineNo, mnemonic)
		}

		op, err := parseOperand(operandStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		nodes = append(nodes, &Node{Type: NodeInstruction, Line: lineNo, Mnemonic: mn, Operand: op, Parts: nodeParts})
	}
	return nodes, nil
}

// stripComment removes a ; comment. Semicolons inside quotes are kept.
func stripComment(line string) string {
	var quote rune
	for i, c := range line {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			return line[:i]
		}
	}
	return line
}

func (asm *Assembler) defineConstant(n *Node) error {
	val, known, err := asm.evaluate(n.Parts[1])
	if err != nil {
		return fmt.Errorf("line %d: constant %s: %w", n.Line, n.Label, err)
	}
	if known {
		asm.symbols[n.Label] = val
	}
	return nil
}

// nodeSize calculates the byte size of an instruction or directive.
func (asm *Assembler) nodeSize(n *Node) (uint16, error) {
	switch n.Type {
	case NodeDirective:
		return asm.getDirectiveSize(n)
	case NodeInstruction:
		inst, _, err := asm.selectInstruction(n.Mnemonic, n.Operand)
		if err != nil {
			return 0, err
		}
		return uint16(inst.Size()), nil
	}
	return 0, nil
}

// generateInstructionCode encodes one instruction at pc.
func (asm *Assembler) generateInstructionCode(n *Node, pc uint16) ([]byte, error) {
	inst, val, err := asm.selectInstruction(n.Mnemonic, n.Operand)
	if err != nil {
		return nil, err
	}
	if uint16(inst.Size()) != n.Size {
		return nil, fmt.Errorf("%s changed size after layout", n.Mnemonic)
	}
	return encode(inst, val, pc)
}
