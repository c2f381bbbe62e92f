package cpu

import (
	"fmt"
	"io"
)

// MemSize is the size of the 6502 address space. Every uint16 is a valid index.
const MemSize = 0x10000

// CPU memory and registers.
type CPU struct {
	// PC is the program counter.
	PC uint16
	// SP is the stack pointer (offset into page one).
	SP uint8
	// A is the accumulator.
	A uint8
	// X is the X index register.
	X uint8
	// Y is the Y index register.
	Y uint8
	// P is the processor status register.
	P uint8

	// IndirectPageWrap makes pointer fetches at $xxFF take their high byte
	// from $xx00, as the NMOS 6502 does.
	IndirectPageWrap bool

	mem [MemSize]byte
}

// Status register flags.
const (
	// FlagC is carry
	FlagC = 1 << 0
	// FlagZ is zero
	FlagZ = 1 << 1
	// FlagI is interrupt disable
	FlagI = 1 << 2
	// FlagD is decimal mode
	FlagD = 1 << 3
	// FlagB is break
	FlagB = 1 << 4
	// FlagU is the unused bit, reads as 1 on hardware
	FlagU = 1 << 5
	// FlagV is overflow
	FlagV = 1 << 6
	// FlagN is negative
	FlagN = 1 << 7
)

// New creates a new CPU instance with cleared registers and memory.
func New() *CPU {
	return &CPU{}
}

// LoadCode to specified address. Bytes past $FFFF wrap to $0000.
func (c *CPU) LoadCode(addr uint16, code []byte) {
	for i, b := range code {
		c.WriteByte(addr+uint16(i), b)
	}
	c.PC = addr
}

// Dump writes the register file to w.
func (c *CPU) Dump(w io.Writer) {
	fmt.Fprintf(w, "PC=%04X SP=%02X A=%02X X=%02X Y=%02X P=%02X [%s]\n",
		c.PC, c.SP, c.A, c.X, c.Y, c.P, flagString(c.P))
}

func flagString(p uint8) string {
	const names = "CZIDBUVN"
	out := []byte("........")
	for i := 0; i < 8; i++ {
		if p&(1<<i) != 0 {
			out[7-i] = names[i]
		}
	}
	return string(out)
}
