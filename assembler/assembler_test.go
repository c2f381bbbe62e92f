package assembler_test

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/Urethramancer/nes6502/assembler"
	"github.com/Urethramancer/nes6502/cpu"
	"github.com/retroenv/retrogolib/assert"
)

// Assembles source at $8000 and checks against an expected byte sequence (in hex).
func assembleAndMatchHex(t *testing.T, name, src, expectedHex string) {
	t.Helper()

	expectedHex = strings.ToLower(strings.Join(strings.Fields(expectedHex), ""))
	expected, err := hex.DecodeString(expectedHex)
	if err != nil {
		t.Fatalf("[%s] invalid expected hex string: %v", name, err)
	}

	asm := assembler.New()
	code, err := asm.Assemble(src, 0x8000)
	if err != nil {
		t.Fatalf("[%s] failed to assemble:\n%s\nerror: %v", name, src, err)
	}
	if len(code) != len(expected) {
		t.Fatalf("[%s] expected %d bytes, got %d\nexpected: % X\ngot:      % X",
			name, len(expected), len(code), expected, code)
	}
	for i := range code {
		if code[i] != expected[i] {
			t.Errorf("[%s] mismatch at byte %d\nexpected: % X\ngot:      % X",
				name, i, expected, code)
			break
		}
	}
}

// Addressing mode encodings
func TestModeEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"Immediate", "lda #$01", "A9 01"},
		{"ImmediateNegative", "lda #-1", "A9 FF"},
		{"ImmediateChar", "lda #'A'", "A9 41"},
		{"ImmediateBinary", "and #%00001111", "29 0F"},
		{"ZeroPage", "lda $10", "A5 10"},
		{"ZeroPageX", "lda $10,x", "B5 10"},
		{"ZeroPageY", "ldx $10,y", "B6 10"},
		{"Absolute", "lda $1234", "AD 34 12"},
		{"AbsoluteX", "sta $0200,X", "9D 00 02"},
		{"AbsoluteY", "lda $1234,y", "B9 34 12"},
		{"AbsoluteYNoZeroPage", "lda $10,y", "B9 10 00"},
		{"Indirect", "jmp ($1234)", "6C 34 12"},
		{"IndexedIndirect", "lda ($20,x)", "A1 20"},
		{"IndirectIndexed", "lda ($20),y", "B1 20"},
		{"Accumulator", "asl a", "0A"},
		{"AccumulatorBare", "ror", "6A"},
		{"Implied", "inx", "E8"},
		{"UpperCase", "LDA #$FF", "A9 FF"},
		{"Decimal", "ldy #10", "A0 0A"},
		{"HexPrefix", "cmp 0x44", "C5 44"},
		{"CharSemicolon", "lda #';' ; load a semicolon", "A9 3B"},
		{"CharPlus", "lda #'+'", "A9 2B"},
		{"CharMinus", "cmp #'-'", "C9 2D"},
		{"CharPlusOne", "lda #'A'+1", "A9 42"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestLabelsAndBranches(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"BackwardBranch", "loop: dex\n bne loop", "CA D0 FD"},
		{"ForwardBranch", "beq done\n nop\ndone: rts", "F0 01 EA 60"},
		{"ForwardJump", "jmp start\nstart: rts", "4C 03 80 60"},
		{"LabelOwnLine", "start:\n jmp start", "4C 00 80"},
		{"LabelOffset", "jmp table+2\ntable: .byte 1,2,3", "4C 05 80 01 02 03"},
		{"Comments", "; header\n* old style\n nop ; trailing", "EA"},
		{"JSR", "jsr sub\n rts\nsub: rts", "20 04 80 60 60"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestConstants(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"ZeroPagePointer", "ptr = $20\n lda (ptr),y", "B1 20"},
		{"ByteSelectors", "value = $1234\n lda #<value\n ldx #>value", "A9 34 A2 12"},
		{"Expression", "base = $0200\n sta base+$10,x", "9D 10 02"},
		{"DoubleNegative", "n = 5\n lda #n - -3", "A9 08"},
		{"ForwardConstant", "lda #n\nn = 7", "A9 07"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestDirectives(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"Bytes", ".byte 1,2,$FF", "01 02 FF"},
		{"String", `.byte "AB", 0`, "41 42 00"},
		{"Equals", `.db "=", 1`, "3D 01"},
		{"StringWithSemicolon", `.byte "a;b" ; trailing`, "61 3B 62"},
		{"Words", ".word $1234, $ABCD", "34 12 CD AB"},
		{"WordLabel", "start: .dw start", "00 80"},
		{"Reserve", ".res 3\n rts", "00 00 00 60"},
		{"Org", "nop\n.org $8004\n rts", "EA 00 00 00 60"},
		{"OrgLabel", ".org $8002\nhere: jmp here", "00 00 4C 02 80"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestAssemblerErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"UnknownInstruction", "mov a,b", "unknown instruction"},
		{"MissingOperand", "lda", "does not support"},
		{"UnsupportedMode", "ror $10,y", "does not support"},
		{"NoAccumulator", "inx a", "no accumulator form"},
		{"ZeroPageOnly", "stx $1234,y", "out of range"},
		{"ImmediateRange", "lda #$100", "out of range"},
		{"BranchRange", "bne far\n.res 200\nfar: rts", "out of range"},
		{"Undefined", "jmp nowhere", "undefined symbol"},
		{"OrgBackwards", "nop\nnop\n.org $8000", ".org"},
		{"UnknownDirective", ".fill 3", "unknown directive"},
		{"EmptyOperand", "lda ( ),y", "missing value"},
		{"BadNumber", "lda #$GG", "invalid number"},
		{"UnterminatedString", `.byte "abc`, "unterminated string"},
		{"UnterminatedAfterComment", `.byte "a;b`, "unterminated string"},
		{"ReserveForward", ".res n\nn = 2", "count for .res must not use forward references"},
		{"ReserveBadCount", ".res $ZZ", "invalid count for .res"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			asm := assembler.New()
			_, err := asm.Assemble(tc.src, 0x8000)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestUnterminatedStringIsWrapped(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble(`.word "ab`, 0x8000)
	assert.True(t, errors.Is(err, assembler.ErrUnterminated))
}

func TestProgramPastEndOfMemory(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("jmp $1234", 0xFFFE)
	assert.Error(t, err, "program runs past $FFFF (3 bytes)")

	code, err := asm.Assemble("jmp $1234", 0xFFFD)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(code))
}

func TestLabels(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("start: nop\nLoop: jmp start", 0xC000)
	assert.NoError(t, err)

	labels := asm.Labels()
	assert.Equal(t, uint16(0xC000), labels["start"])
	assert.Equal(t, uint16(0xC001), labels["loop"])
}

func TestLabelsSettle(t *testing.T) {
	// A forward zero-page reference starts out as absolute and shrinks once
	// the label value is known.
	src := ".org $8000\n lda var\n rts\nvar = $10"
	asm := assembler.New()
	code, err := asm.Assemble(src, 0x8000)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xA5, 0x10, 0x60}, code)
}

// The assembled operands resolve to the addresses they name.
func TestAssembleThenResolve(t *testing.T) {
	src := `
	lda $1234,x
	lda ($20,x)
	lda ($40),y
	jmp ($3000)
back:	bne back
`
	asm := assembler.New()
	code, err := asm.Assemble(src, 0x8000)
	assert.NoError(t, err)

	c := cpu.New()
	c.LoadCode(0x8000, code)
	c.X = 0x04
	c.Y = 0x10
	c.WriteWord(0x0024, 0x5000)
	c.WriteWord(0x0040, 0x6000)
	c.WriteWord(0x3000, 0x7000)

	assert.Equal(t, uint16(0x1238), c.Resolve(0x8000, cpu.AbsoluteX))
	assert.Equal(t, uint16(0x5000), c.Resolve(0x8003, cpu.IndexedIndirect))
	assert.Equal(t, uint16(0x6010), c.Resolve(0x8005, cpu.IndirectIndexed))
	assert.Equal(t, uint16(0x7000), c.Resolve(0x8007, cpu.Indirect))
	assert.Equal(t, uint16(0x800A), c.BranchTarget(0x800A))
}
