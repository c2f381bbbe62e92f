// Package disassembler lists 6502 code held in a cpu.CPU, annotating each
// instruction with the effective address it resolves to under the current
// register values.
package disassembler

import (
	"github.com/retroenv/retrogolib/log"
)

// Options controls a disassembly run.
type Options struct {
	// Start is the address of the first instruction.
	Start uint16
	// End is one past the last address to list. Zero means $10000.
	End uint32
	// Count limits the number of lines. Zero or less means no limit.
	Count int
	// Logger receives debug messages about undecodable bytes.
	Logger *log.Logger
}

// DefaultOptions returns options that list from $8000 to the end of memory.
func DefaultOptions() Options {
	return Options{
		Start:  0x8000,
		End:    0x10000,
		Logger: log.NewNop(),
	}
}
