package cpu

// ReadWord reads a little-endian word: low byte at addr, high byte at addr+1.
// The second fetch wraps from $FFFF to $0000.
func (c *CPU) ReadWord(addr uint16) uint16 {
	lo := uint16(c.ReadByte(addr))
	hi := uint16(c.ReadByte(addr + 1))
	return hi<<8 | lo
}

// WriteWord stores val little-endian at addr and addr+1, wrapping like ReadWord.
func (c *CPU) WriteWord(addr uint16, val uint16) {
	c.WriteByte(addr, byte(val))
	c.WriteByte(addr+1, byte(val>>8))
}

// ReadWordPageWrap reads a word like ReadWord, except the high byte is taken
// from the same page: a pointer at $12FF reads $12FF and $1200.
func (c *CPU) ReadWordPageWrap(addr uint16) uint16 {
	lo := uint16(c.ReadByte(addr))
	hi := uint16(c.ReadByte(addr&0xFF00 | uint16(byte(addr)+1)))
	return hi<<8 | lo
}

// WordsToBytes converts words to a little-endian byte slice.
func WordsToBytes(words []uint16) []byte {
	out := make([]byte, 0, len(words)*2)
	for _, w := range words {
		out = append(out, byte(w), byte(w>>8))
	}
	return out
}
