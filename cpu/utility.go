package cpu

// ReadByte reads the byte at addr. Reads have no side effects.
func (c *CPU) ReadByte(addr uint16) byte {
	return c.mem[addr]
}

// WriteByte stores val at addr.
func (c *CPU) WriteByte(addr uint16, val byte) {
	c.mem[addr] = val
}

// Flag reports whether all bits of mask are set in P.
func (c *CPU) Flag(mask uint8) bool {
	return c.P&mask == mask
}

// SetFlag sets or clears the bits of mask in P.
func (c *CPU) SetFlag(mask uint8, on bool) {
	if on {
		c.P |= mask
		return
	}
	c.P &^= mask
}
