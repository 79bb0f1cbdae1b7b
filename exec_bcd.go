package cpu

// BCD adjustment and sign-extension instructions, per spec.md §4.4. These
// follow the documented Intel algorithm exactly rather than the
// simplified 0x9F threshold some 8086 cores use as a shortcut.

func execDAA(c *CPU) int {
	al := c.AL()
	oldAL := al
	oldCF := c.CF()
	c.setFlag(FlagCF, false)

	if al&0x0F > 9 || c.AF() {
		al += 6
		c.setFlag(FlagCF, oldCF || al < oldAL)
		c.setFlag(FlagAF, true)
	} else {
		c.setFlag(FlagAF, false)
	}

	if oldAL > 0x99 || oldCF {
		al += 0x60
		c.setFlag(FlagCF, true)
	}

	c.SetAL(al)
	c.setSZP(uint16(al), false)
	return 4
}

func execDAS(c *CPU) int {
	al := c.AL()
	oldAL := al
	oldCF := c.CF()
	c.setFlag(FlagCF, false)

	if al&0x0F > 9 || c.AF() {
		al -= 6
		c.setFlag(FlagCF, oldCF || al > oldAL)
		c.setFlag(FlagAF, true)
	} else {
		c.setFlag(FlagAF, false)
	}

	if oldAL > 0x99 || oldCF {
		al -= 0x60
		c.setFlag(FlagCF, true)
	}

	c.SetAL(al)
	c.setSZP(uint16(al), false)
	return 4
}

func execAAA(c *CPU) int {
	al, ah := c.AL(), c.AH()
	if al&0x0F > 9 || c.AF() {
		al += 6
		ah++
		c.setFlag(FlagAF, true)
		c.setFlag(FlagCF, true)
	} else {
		c.setFlag(FlagAF, false)
		c.setFlag(FlagCF, false)
	}
	al &= 0x0F
	c.SetAL(al)
	c.SetAH(ah)
	c.setSZP(uint16(al), false)
	return 8
}

func execAAS(c *CPU) int {
	al, ah := c.AL(), c.AH()
	if al&0x0F > 9 || c.AF() {
		al -= 6
		ah--
		c.setFlag(FlagAF, true)
		c.setFlag(FlagCF, true)
	} else {
		c.setFlag(FlagAF, false)
		c.setFlag(FlagCF, false)
	}
	al &= 0x0F
	c.SetAL(al)
	c.SetAH(ah)
	c.setSZP(uint16(al), false)
	return 8
}

func execCBW(c *CPU) int {
	if c.AL()&0x80 != 0 {
		c.SetAH(0xFF)
	} else {
		c.SetAH(0)
	}
	return 2
}

func execCWD(c *CPU) int {
	if c.AX()&0x8000 != 0 {
		c.SetDX(0xFFFF)
	} else {
		c.SetDX(0)
	}
	return 5
}
