package cpu

// String instruction handlers. Each performs exactly one element's worth
// of work; REP/REPZ/REPNZ looping (CX decrement, early ZF-based exit for
// CMPS/SCAS) is handled by stepExecuting in exec.go.

func (c *CPU) advanceSI(step uint16) {
	if c.DF() {
		c.regs[RegSI] -= step
	} else {
		c.regs[RegSI] += step
	}
}

func (c *CPU) advanceDI(step uint16) {
	if c.DF() {
		c.regs[RegDI] -= step
	} else {
		c.regs[RegDI] += step
	}
}

func strStep(wide bool) uint16 {
	if wide {
		return 2
	}
	return 1
}

func execMOVS(c *CPU) int {
	wide := c.entry.wide
	v := c.readLoc(c.src, wide)
	c.writeLoc(c.dest, wide, v)
	step := strStep(wide)
	c.advanceSI(step)
	c.advanceDI(step)
	if c.repeat {
		return cyclesMOVSRepeated
	}
	return cyclesMOVSUnrepeated
}

// execCMPS compares the byte/word at DS:SI against ES:DI, per spec.md
// §4.4 ("CMP [SI],[DI]" ordering).
func execCMPS(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	c.setArithFlags(d, s, wide, true)
	step := strStep(wide)
	c.advanceSI(step)
	c.advanceDI(step)
	return cyclesCMPS
}

func execSCAS(c *CPU) int {
	wide := c.entry.wide
	d := uint32(c.readLoc(c.dest, wide))
	s := uint32(c.readLoc(c.src, wide))
	c.setArithFlags(d, s, wide, true)
	c.advanceDI(strStep(wide))
	return cyclesSCAS
}

func execSTOS(c *CPU) int {
	wide := c.entry.wide
	v := c.readLoc(c.src, wide)
	c.writeLoc(c.dest, wide, v)
	c.advanceDI(strStep(wide))
	if c.repeat {
		return cyclesSTOSRepeated
	}
	return cyclesSTOSUnrepeated
}

func execLODS(c *CPU) int {
	wide := c.entry.wide
	v := c.readLoc(c.src, wide)
	c.writeLoc(c.dest, wide, v)
	c.advanceSI(strStep(wide))
	if c.repeat {
		return cyclesLODSRepeated
	}
	return cyclesLODSUnrepeated
}
