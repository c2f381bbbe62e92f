package assembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Urethramancer/nes6502/cpu"
)

func directiveName(n *Node) string {
	return strings.TrimPrefix(strings.ToLower(n.Parts[0]), ".")
}

func isOrg(n *Node) bool {
	return n.Type == NodeDirective && directiveName(n) == "org"
}

// orgAddress returns the new location counter for .org. Moving backwards is
// an error since the output is one contiguous image.
func (asm *Assembler) orgAddress(n *Node, pc uint32) (uint32, error) {
	if len(n.Parts) != 2 {
		return 0, fmt.Errorf("line %d: .org requires an address", n.Line)
	}
	addr, known, err := asm.evaluate(n.Parts[1])
	if err != nil {
		return 0, fmt.Errorf("line %d: .org: %w", n.Line, err)
	}
	if !known {
		return 0, fmt.Errorf("line %d: .org address must not use forward references", n.Line)
	}
	if addr < int64(pc) || addr > 0xFFFF {
		return 0, fmt.Errorf("line %d: .org $%X before current address $%04X", n.Line, addr, pc)
	}
	return uint32(addr), nil
}

// getDirectiveSize calculates the byte size of a directive for the sizing pass.
func (asm *Assembler) getDirectiveSize(n *Node) (uint16, error) {
	switch dir := directiveName(n); dir {
	case "byte", "db", "word", "dw":
		if len(n.Parts) < 2 {
			return 0, fmt.Errorf("%s requires at least one value", n.Parts[0])
		}
		return calculateDataSize(dir, n.Parts[1])

	case "res", "ds":
		if len(n.Parts) != 2 {
			return 0, fmt.Errorf("%s requires a single count argument", n.Parts[0])
		}
		count, known, err := asm.evaluate(n.Parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid count for %s: %w", n.Parts[0], err)
		}
		if !known {
			return 0, fmt.Errorf("count for %s must not use forward references", n.Parts[0])
		}
		if count < 0 || count > 0xFFFF {
			return 0, fmt.Errorf("count %d for %s out of range", count, n.Parts[0])
		}
		return uint16(count), nil

	default:
		return 0, fmt.Errorf("unknown directive: %s", n.Parts[0])
	}
}

// generateDirectiveCode generates the binary data for assembler directives.
func (asm *Assembler) generateDirectiveCode(n *Node) ([]byte, error) {
	switch dir := directiveName(n); dir {
	case "byte", "db", "word", "dw":
		return asm.assembleData(dir, n.Parts[1])
	case "res", "ds":
		return make([]byte, n.Size), nil
	default:
		return nil, fmt.Errorf("unknown directive: %s", n.Parts[0])
	}
}

func elementSize(directive string) uint16 {
	if directive == "word" || directive == "dw" {
		return 2
	}
	return 1
}

// calculateDataSize determines the byte size of a .byte or .word directive's data.
func calculateDataSize(directive, values string) (uint16, error) {
	tokens, err := splitDataValues(values)
	if err != nil {
		return 0, err
	}

	size := elementSize(directive)
	var total uint16
	for _, tok := range tokens {
		if tok.Quoted {
			total += uint16(len(tok.Value))
		} else {
			total += size
		}
	}
	return total, nil
}

// assembleData generates bytes for .byte and .word. Words are little-endian.
func (asm *Assembler) assembleData(directive, values string) ([]byte, error) {
	tokens, err := splitDataValues(values)
	if err != nil {
		return nil, err
	}

	size := elementSize(directive)
	var buf []byte

	for _, tok := range tokens {
		if tok.Quoted {
			buf = append(buf, []byte(tok.Value)...)
			continue
		}

		val, _, err := asm.evaluate(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid constant '%s': %w", tok.Value, err)
		}

		if size == 1 {
			if val < -128 || val > 0xFF {
				return nil, fmt.Errorf("byte value %d out of range", val)
			}
			buf = append(buf, byte(val))
			continue
		}
		if val < -32768 || val > 0xFFFF {
			return nil, fmt.Errorf("word value %d out of range", val)
		}
		buf = append(buf, cpu.WordsToBytes([]uint16{uint16(val)})...)
	}

	return buf, nil
}

type dataToken struct {
	Value  string
	Quoted bool
}

// ErrUnterminated is returned for a string in .byte or .word data that has
// no closing quote.
var ErrUnterminated = errors.New("unterminated string")

// splitDataValues handles mixed quoted strings and numbers.
func splitDataValues(s string) ([]dataToken, error) {
	var tokens []dataToken
	inQuote := false
	var quoteChar rune
	var cur strings.Builder
	for _, c := range s {
		switch c {
		case '\'', '"':
			if inQuote && c == quoteChar {
				tokens = append(tokens, dataToken{Value: cur.String(), Quoted: true})
				cur.Reset()
				inQuote = false
			} else if !inQuote {
				inQuote = true
				quoteChar = c
			} else {
				cur.WriteRune(c)
			}
		case ',':
			if !inQuote {
				if val := strings.TrimSpace(cur.String()); val != "" {
					tokens = append(tokens, dataToken{Value: val})
				}
				cur.Reset()
			} else {
				cur.WriteRune(c)
			}
		default:
			cur.WriteRune(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w: %c%s", ErrUnterminated, quoteChar, cur.String())
	}
	if val := strings.TrimSpace(cur.String()); val != "" {
		tokens = append(tokens, dataToken{Value: val})
	}
	return tokens, nil
}
