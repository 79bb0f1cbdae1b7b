package cpu

// Arithmetic and logical instruction handlers. Each reads c.dest/c.src
// (already resolved by stepDecodeLoc), computes the result via
// setArithFlags/setLogicFlags, writes back when the instruction isn't
// compare-only, and returns the operand-class cycle charge from
// cycles.go.

func wideMask(wide bool) uint32 {
	if wide {
		return 0xFFFF
	}
	return 0xFF
}

func execADD(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	r := c.setArithFlags(d, s, wide, false)
	c.writeLoc(c.dest, wide, uint16(r))
	return aluCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

func execADC(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	if c.CF() {
		s++
	}
	r := c.setArithFlags(d, s, wide, false)
	c.writeLoc(c.dest, wide, uint16(r))
	return aluCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

func execSUB(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	r := c.setArithFlags(d, s, wide, true)
	c.writeLoc(c.dest, wide, uint16(r))
	return aluCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

func execSBB(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	if c.CF() {
		s++
	}
	r := c.setArithFlags(d, s, wide, true)
	c.writeLoc(c.dest, wide, uint16(r))
	return aluCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

func execCMP(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	c.setArithFlags(d, s, wide, true)
	return cmpCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

func execAND(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	r := d & s & wideMask(wide)
	c.setLogicFlags(uint16(r), wide)
	c.writeLoc(c.dest, wide, uint16(r))
	return aluCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

func execOR(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	r := (d | s) & wideMask(wide)
	c.setLogicFlags(uint16(r), wide)
	c.writeLoc(c.dest, wide, uint16(r))
	return aluCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

func execXOR(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	r := (d ^ s) & wideMask(wide)
	c.setLogicFlags(uint16(r), wide)
	c.writeLoc(c.dest, wide, uint16(r))
	return aluCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

func execTEST(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	r := d & s & wideMask(wide)
	c.setLogicFlags(uint16(r), wide)
	return cmpCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

// execINC and execDEC leave CF untouched, per spec.md §4.4; save and
// restore it around the shared flag computation.
func execINC(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	cf := c.CF()
	r := c.setArithFlags(d, 1, wide, false)
	c.setFlag(FlagCF, cf)
	c.writeLoc(c.dest, wide, uint16(r))
	if c.dest.cat == catMemory {
		return 15
	}
	return 2
}

func execDEC(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	cf := c.CF()
	r := c.setArithFlags(d, 1, wide, true)
	c.setFlag(FlagCF, cf)
	c.writeLoc(c.dest, wide, uint16(r))
	if c.dest.cat == catMemory {
		return 15
	}
	return 2
}
