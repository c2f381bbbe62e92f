// Package loader places program images into CPU memory.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Urethramancer/nes6502/cpu"
	"github.com/retroenv/retrogolib/nes/cartridge"
)

const (
	// PRGBase is where cartridge PRG-ROM is mapped.
	PRGBase = 0x8000
	// ResetVector holds the address execution starts from.
	ResetVector = 0xFFFC

	bankSize = 0x4000
	maxPRG   = 0x8000
)

var (
	// ErrTooLarge is returned when an image would run past $FFFF.
	ErrTooLarge = errors.New("image does not fit in memory")
	// ErrMapper is returned for PRG-ROM that needs a bank-switching mapper.
	ErrMapper = errors.New("prg-rom larger than 32KB needs a mapper")
)

// Raw copies data to memory starting at base and points PC at it.
func Raw(c *cpu.CPU, base uint16, data []byte) error {
	if int(base)+len(data) > cpu.MemSize {
		return fmt.Errorf("%d bytes at $%04X: %w", len(data), base, ErrTooLarge)
	}

	c.LoadCode(base, data)
	return nil
}

// INES reads an iNES image and maps its PRG-ROM at $8000. A single 16KB bank
// is mirrored at $C000. PC is set from the reset vector.
func INES(c *cpu.CPU, r io.Reader) (*cartridge.Cartridge, error) {
	cart, err := cartridge.LoadFile(r)
	if err != nil {
		return nil, fmt.Errorf("reading ines image: %w", err)
	}

	prg := cart.PRG
	switch {
	case len(prg) == 0:
		return nil, fmt.Errorf("ines image has no prg-rom")
	case len(prg) > maxPRG:
		return nil, fmt.Errorf("%d bytes: %w", len(prg), ErrMapper)
	case len(prg) <= bankSize:
		c.LoadCode(PRGBase, prg)
		c.LoadCode(PRGBase+bankSize, prg)
	default:
		c.LoadCode(PRGBase, prg)
	}

	c.PC = c.ReadWord(ResetVector)
	return cart, nil
}

// File loads name into c. Files ending in .nes are read as iNES images,
// anything else is copied raw to base.
func File(c *cpu.CPU, name string, base uint16) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("loading '%s': %w", name, err)
	}

	if strings.EqualFold(filepath.Ext(name), ".nes") {
		if _, err := INES(c, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("loading '%s': %w", name, err)
		}
		return nil
	}

	if err := Raw(c, base, data); err != nil {
		return fmt.Errorf("loading '%s': %w", name, err)
	}
	return nil
}
