package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestModeProperties(t *testing.T) {
	tests := []struct {
		mode    Mode
		name    string
		bytes   int
		address bool
	}{
		{Absolute, "absolute", 2, true},
		{AbsoluteX, "absolute,x", 2, true},
		{AbsoluteY, "absolute,y", 2, true},
		{ZeroPage, "zeropage", 1, true},
		{ZeroPageX, "zeropage,x", 1, true},
		{ZeroPageY, "zeropage,y", 1, true},
		{Immediate, "immediate", 1, true},
		{Relative, "relative", 1, true},
		{Implicit, "implicit", 0, false},
		{Indirect, "indirect", 2, true},
		{IndexedIndirect, "(indirect,x)", 1, true},
		{IndirectIndexed, "(indirect),y", 1, true},
	}

	for _, tt := range tests {
		assert.True(t, tt.mode.Valid())
		assert.Equal(t, tt.name, tt.mode.String())
		assert.Equal(t, tt.bytes, tt.mode.OperandBytes())
		assert.Equal(t, tt.address, tt.mode.HasAddress())

		m, ok := ParseMode(tt.name)
		assert.True(t, ok)
		assert.Equal(t, tt.mode, m)
	}
}

func TestInvalidMode(t *testing.T) {
	for _, m := range []Mode{ModeInvalid, Mode(13), Mode(-3)} {
		assert.False(t, m.Valid())
		assert.False(t, m.HasAddress())
		assert.Equal(t, 0, m.OperandBytes())
		assert.Equal(t, "invalid", m.String())
	}
}

func TestParseModeShortNames(t *testing.T) {
	m, ok := ParseMode("indy")
	assert.True(t, ok)
	assert.Equal(t, IndirectIndexed, m)

	m, ok = ParseMode("zpx")
	assert.True(t, ok)
	assert.Equal(t, ZeroPageX, m)

	_, ok = ParseMode("invalid")
	assert.False(t, ok)
	_, ok = ParseMode("bogus")
	assert.False(t, ok)
}
