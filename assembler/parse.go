package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OperandKind is the syntactic shape of an operand, before a mode is chosen.
type OperandKind int

const (
	// OperandNone has no operand text.
	OperandNone OperandKind = iota
	// OperandAccumulator is "a".
	OperandAccumulator
	// OperandImmediate is "#v".
	OperandImmediate
	// OperandPlain is "v": zero page, absolute or a branch target.
	OperandPlain
	// OperandX is "v,x".
	OperandX
	// OperandY is "v,y".
	OperandY
	// OperandIndirect is "(v)".
	OperandIndirect
	// OperandIndexedIndirect is "(v,x)".
	OperandIndexedIndirect
	// OperandIndirectIndexed is "(v),y".
	OperandIndirectIndexed
)

// Operand represents a parsed instruction operand.
type Operand struct {
	Kind OperandKind
	Expr string
	Raw  string
}

var (
	reImmediate       = regexp.MustCompile(`^#(.+)$`)
	reIndexedIndirect = regexp.MustCompile(`(?i)^\((.+),\s*x\)$`)
	reIndirectIndexed = regexp.MustCompile(`(?i)^\((.+)\)\s*,\s*y$`)
	reIndirect        = regexp.MustCompile(`^\((.+)\)$`)
	reIndexX          = regexp.MustCompile(`(?i)^(.+),\s*x$`)
	reIndexY          = regexp.MustCompile(`(?i)^(.+),\s*y$`)
	reSymbol          = regexp.MustCompile(`(?i)^[a-z_][a-z0-9_]*$`)
)

// parseOperand classifies operand text. Order matters: (v),y must be tried
// before v,y and (v,x) before (v).
func parseOperand(s string) (Operand, error) {
	s = strings.TrimSpace(s)
	op := Operand{Raw: s}

	switch {
	case s == "":
		op.Kind = OperandNone
	case strings.EqualFold(s, "a"):
		op.Kind = OperandAccumulator
	case reImmediate.MatchString(s):
		op.Kind = OperandImmediate
		op.Expr = reImmediate.FindStringSubmatch(s)[1]
	case reIndexedIndirect.MatchString(s):
		op.Kind = OperandIndexedIndirect
		op.Expr = reIndexedIndirect.FindStringSubmatch(s)[1]
	case reIndirectIndexed.MatchString(s):
		op.Kind = OperandIndirectIndexed
		op.Expr = reIndirectIndexed.FindStringSubmatch(s)[1]
	case reIndirect.MatchString(s):
		op.Kind = OperandIndirect
		op.Expr = reIndirect.FindStringSubmatch(s)[1]
	case reIndexX.MatchString(s):
		op.Kind = OperandX
		op.Expr = reIndexX.FindStringSubmatch(s)[1]
	case reIndexY.MatchString(s):
		op.Kind = OperandY
		op.Expr = reIndexY.FindStringSubmatch(s)[1]
	default:
		op.Kind = OperandPlain
		op.Expr = s
	}

	op.Expr = strings.TrimSpace(op.Expr)
	if op.Kind != OperandNone && op.Kind != OperandAccumulator && op.Expr == "" {
		return op, fmt.Errorf("missing value in operand %q", s)
	}
	return op, nil
}

// evaluate computes an expression of constants and symbols joined by + and -.
// A leading < or > selects the low or high byte of the result. The bool
// result is false when the expression names a label that has no address yet.
func (asm *Assembler) evaluate(s string) (int64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, fmt.Errorf("empty expression")
	}

	var selector byte
	if s[0] == '<' || s[0] == '>' {
		selector = s[0]
		s = strings.TrimSpace(s[1:])
	}

	var total int64
	known := true
	sign := int64(1)
	start := 0
	quoted := false
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] == '\'' {
			quoted = !quoted
			continue
		}
		// A sign with nothing before it in the current term is unary.
		if i < len(s) && (quoted || s[i] != '+' && s[i] != '-' || strings.TrimSpace(s[start:i]) == "") {
			continue
		}
		term := strings.TrimSpace(s[start:i])
		val, ok, err := asm.term(term)
		if err != nil {
			return 0, false, err
		}
		known = known && ok
		total += sign * val
		if i < len(s) {
			sign = 1
			if s[i] == '-' {
				sign = -1
			}
		}
		start = i + 1
	}

	switch selector {
	case '<':
		total &= 0xFF
	case '>':
		total = (total >> 8) & 0xFF
	}
	return total, known, nil
}

// term evaluates one constant or symbol.
func (asm *Assembler) term(s string) (int64, bool, error) {
	if s == "" {
		return 0, false, fmt.Errorf("missing term")
	}
	if s[0] == '-' {
		v, ok, err := asm.term(strings.TrimSpace(s[1:]))
		return -v, ok, err
	}
	if reSymbol.MatchString(s) {
		name := strings.ToLower(s)
		if val, ok := asm.symbols[name]; ok {
			return val, true, nil
		}
		if addr, ok := asm.labels[name]; ok {
			return int64(addr), true, nil
		}
		if asm.final {
			return 0, false, fmt.Errorf("undefined symbol: %s", s)
		}
		return 0, false, nil
	}
	val, err := parseConstant(s)
	return val, err == nil, err
}

// parseConstant converts a numeric literal to int64.
func parseConstant(s string) (int64, error) {
	s = strings.TrimSpace(s)

	// Character literal ('A')
	if len(s) == 3 && s[0] == '\'' && s[2] == '\'' {
		return int64(s[1]), nil
	}

	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s = s[1:]
		base = 16
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		s = s[2:]
		base = 16
	case strings.HasPrefix(s, "%"):
		s = s[1:]
		base = 2
	}

	val, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %s", s)
	}
	return val, nil
}
