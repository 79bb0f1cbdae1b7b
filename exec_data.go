package cpu

// Data-movement instruction handlers: MOV, XCHG, LEA, LDS/LES, the
// stack group, and the flags-byte instructions.

func execMOV(c *CPU) int {
	wide := c.entry.wide
	v := c.readLoc(c.src, wide)
	c.writeLoc(c.dest, wide, v)
	return movCycles(c.dest.cat, c.src.cat, c.src.cat == catImmediate)
}

func execXCHG(c *CPU) int {
	wide := c.entry.wide
	d := c.readLoc(c.dest, wide)
	s := c.readLoc(c.src, wide)
	c.writeLoc(c.dest, wide, s)
	c.writeLoc(c.src, wide, d)
	if c.dest.cat == catMemory || c.src.cat == catMemory {
		return 17
	}
	return 3
}

// execLEA loads the 16-bit effective-address offset itself, never
// dereferencing memory, per spec.md §4.4.
func execLEA(c *CPU) int {
	c.writeLoc(c.dest, true, c.rmOffset)
	return 2
}

func execLDS(c *CPU) int {
	off := c.bus.ReadWord(c.rmAddr)
	seg := c.bus.ReadWord((c.rmAddr + 2) & addrMask)
	c.writeLoc(c.dest, true, off)
	c.SetDS(seg)
	return 16
}

func execLES(c *CPU) int {
	off := c.bus.ReadWord(c.rmAddr)
	seg := c.bus.ReadWord((c.rmAddr + 2) & addrMask)
	c.writeLoc(c.dest, true, off)
	c.SetES(seg)
	return 16
}

func execPUSH(c *CPU) int {
	v := c.readLoc(c.src, true)
	c.pushWord(v)
	if c.src.cat == catMemory {
		return 16
	}
	return 11
}

func execPOP(c *CPU) int {
	v := c.popWord()
	c.writeLoc(c.dest, true, v)
	if c.dest.cat == catMemory {
		return 17
	}
	return 8
}

func execPUSHF(c *CPU) int {
	c.pushWord(c.Flags)
	return 10
}

func execPOPF(c *CPU) int {
	c.Flags = c.popWord()
	return 8
}

// execSAHF loads SF/ZF/AF/PF/CF from AH, leaving reserved bits alone.
func execSAHF(c *CPU) int {
	mask := FlagCF | FlagPF | FlagAF | FlagZF | FlagSF
	c.Flags = (c.Flags &^ mask) | (uint16(c.AH()) & mask)
	return 4
}

func execLAHF(c *CPU) int {
	c.SetAH(byte(c.Flags))
	return 4
}
