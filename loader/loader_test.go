package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Urethramancer/nes6502/cpu"
	"github.com/retroenv/retrogolib/assert"
)

// inesImage builds an iNES file with the given number of 16KB PRG banks and
// one CHR bank. The reset vector points at reset.
func inesImage(banks int, reset uint16) []byte {
	header := []byte{'N', 'E', 'S', 0x1A, byte(banks), 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, banks*bankSize)
	for i := range prg {
		prg[i] = byte(i / bankSize)
	}
	prg[len(prg)-4] = byte(reset)
	prg[len(prg)-3] = byte(reset >> 8)

	img := append(header, prg...)
	return append(img, make([]byte, 0x2000)...)
}

func TestRaw(t *testing.T) {
	c := cpu.New()
	assert.NoError(t, Raw(c, 0x0600, []byte{0xA9, 0x01}))
	assert.Equal(t, uint16(0x0600), c.PC)
	assert.Equal(t, byte(0xA9), c.ReadByte(0x0600))
	assert.Equal(t, byte(0x01), c.ReadByte(0x0601))

	// Exactly filling the top of memory is allowed.
	assert.NoError(t, Raw(c, 0xFFFE, []byte{1, 2}))

	err := Raw(c, 0xFFFE, []byte{1, 2, 3})
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestINESMirrorsSingleBank(t *testing.T) {
	c := cpu.New()
	cart, err := INES(c, bytes.NewReader(inesImage(1, 0xC010)))
	assert.NoError(t, err)
	assert.Equal(t, bankSize, len(cart.PRG))

	assert.Equal(t, uint16(0xC010), c.PC)
	assert.Equal(t, c.ReadByte(0x8000), c.ReadByte(0xC000))
	assert.Equal(t, uint16(0xC010), c.ReadWord(ResetVector))
}

func TestINESTwoBanks(t *testing.T) {
	c := cpu.New()
	_, err := INES(c, bytes.NewReader(inesImage(2, 0x8000)))
	assert.NoError(t, err)

	assert.Equal(t, uint16(0x8000), c.PC)
	assert.Equal(t, byte(0), c.ReadByte(0x8000))
	assert.Equal(t, byte(1), c.ReadByte(0xC000))
}

func TestINESNeedsMapper(t *testing.T) {
	c := cpu.New()
	_, err := INES(c, bytes.NewReader(inesImage(3, 0x8000)))
	assert.True(t, errors.Is(err, ErrMapper))
}

func TestINESBadHeader(t *testing.T) {
	c := cpu.New()
	_, err := INES(c, bytes.NewReader([]byte("not a rom image at all")))
	assert.Error(t, err, "reading ines image: invalid file header magic")
}

func TestFile(t *testing.T) {
	dir := t.TempDir()

	raw := filepath.Join(dir, "prog.bin")
	assert.NoError(t, os.WriteFile(raw, []byte{0xEA, 0x60}, 0644))
	c := cpu.New()
	assert.NoError(t, File(c, raw, 0x0200))
	assert.Equal(t, uint16(0x0200), c.PC)
	assert.Equal(t, byte(0x60), c.ReadByte(0x0201))

	rom := filepath.Join(dir, "game.NES")
	assert.NoError(t, os.WriteFile(rom, inesImage(1, 0x8123), 0644))
	c = cpu.New()
	assert.NoError(t, File(c, rom, 0x0200))
	assert.Equal(t, uint16(0x8123), c.PC)

	err := File(c, filepath.Join(dir, "missing.bin"), 0)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
