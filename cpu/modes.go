package cpu

// Mode is a 6502 addressing mode.
type Mode int

// Addressing modes. The zero value is not a valid mode.
const (
	// ModeInvalid is the zero value, indicating no mode was set.
	ModeInvalid Mode = iota

	// Absolute: nnnn
	Absolute
	// AbsoluteX: nnnn,X
	AbsoluteX
	// AbsoluteY: nnnn,Y
	AbsoluteY

	// ZeroPage: nn
	ZeroPage
	// ZeroPageX: nn,X (wraps within page zero)
	ZeroPageX
	// ZeroPageY: nn,Y (wraps within page zero)
	ZeroPageY

	// Immediate: #nn
	Immediate
	// Relative: signed displacement, used by branches
	Relative
	// Implicit: no operand address (implied and accumulator forms)
	Implicit

	// Indirect: (nnnn)
	Indirect
	// IndexedIndirect: (nn,X), X added before the pointer is read
	IndexedIndirect
	// IndirectIndexed: (nn),Y, Y added after the pointer is read
	IndirectIndexed
)

var modeNames = [...]string{
	ModeInvalid:     "invalid",
	Absolute:        "absolute",
	AbsoluteX:       "absolute,x",
	AbsoluteY:       "absolute,y",
	ZeroPage:        "zeropage",
	ZeroPageX:       "zeropage,x",
	ZeroPageY:       "zeropage,y",
	Immediate:       "immediate",
	Relative:        "relative",
	Implicit:        "implicit",
	Indirect:        "indirect",
	IndexedIndirect: "(indirect,x)",
	IndirectIndexed: "(indirect),y",
}

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "invalid"
	}
	return modeNames[m]
}

// Valid reports whether m is one of the twelve addressing modes.
func (m Mode) Valid() bool {
	return m > ModeInvalid && m <= IndirectIndexed
}

// HasAddress reports whether Resolve is defined for m.
func (m Mode) HasAddress() bool {
	return m.Valid() && m != Implicit
}

// OperandBytes returns how many operand bytes follow the opcode.
func (m Mode) OperandBytes() int {
	switch m {
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	case ZeroPage, ZeroPageX, ZeroPageY, Immediate, Relative, IndexedIndirect, IndirectIndexed:
		return 1
	default:
		return 0
	}
}

// ParseMode converts a mode name as returned by String back to a Mode.
// The short forms abs, absx, absy, zp, zpx, zpy, imm, rel, imp, ind, indx
// and indy are accepted as well.
func ParseMode(s string) (Mode, bool) {
	for m, name := range modeNames {
		if Mode(m) != ModeInvalid && name == s {
			return Mode(m), true
		}
	}
	m, ok := shortModeNames[s]
	return m, ok
}

var shortModeNames = map[string]Mode{
	"abs":  Absolute,
	"absx": AbsoluteX,
	"absy": AbsoluteY,
	"zp":   ZeroPage,
	"zpx":  ZeroPageX,
	"zpy":  ZeroPageY,
	"imm":  Immediate,
	"rel":  Relative,
	"imp":  Implicit,
	"ind":  Indirect,
	"indx": IndexedIndirect,
	"indy": IndirectIndexed,
}
