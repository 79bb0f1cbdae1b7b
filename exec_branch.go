package cpu

// Conditional jumps and the CALL/RET family. Jcc targets are relative to
// currentIP — the EU's retiring instruction pointer, already advanced
// past every byte dequeued for this instruction — per spec.md §4.4.

func condJO(c *CPU) bool  { return c.OF() }
func condJNO(c *CPU) bool { return !c.OF() }
func condJB(c *CPU) bool  { return c.CF() }
func condJNB(c *CPU) bool { return !c.CF() }
func condJZ(c *CPU) bool  { return c.ZF() }
func condJNZ(c *CPU) bool { return !c.ZF() }
func condJBE(c *CPU) bool { return c.CF() || c.ZF() }
func condJA(c *CPU) bool  { return !c.CF() && !c.ZF() }
func condJS(c *CPU) bool  { return c.SF() }
func condJNS(c *CPU) bool { return !c.SF() }
func condJP(c *CPU) bool  { return c.PF() }
func condJNP(c *CPU) bool { return !c.PF() }
func condJL(c *CPU) bool  { return c.SF() != c.OF() }
func condJGE(c *CPU) bool { return c.SF() == c.OF() }
func condJLE(c *CPU) bool { return c.ZF() || c.SF() != c.OF() }
func condJG(c *CPU) bool  { return !c.ZF() && c.SF() == c.OF() }

// makeJcc builds a handler for a conditional-jump opcode from its
// predicate, sharing the relative-displacement arithmetic and cycle
// charge (spec.md §4.4: 16 cycles taken, 4 not taken).
func makeJcc(pred func(*CPU) bool) func(*CPU) int {
	return func(c *CPU) int {
		if pred(c) {
			target := c.currentIP + uint16(c.immediate)
			c.controlTransfer(c.regs[RegCS], target)
			return cyclesJccTaken
		}
		return cyclesJccNotTaken
	}
}

func execCALLNear(c *CPU) int {
	ret := c.currentIP
	target := c.currentIP + uint16(c.immediate)
	c.pushWord(ret)
	c.controlTransfer(c.regs[RegCS], target)
	return 19
}

// execCALLFar reads a packed segment:offset far pointer from c.immediate
// (high word = segment, low word = offset) per dSegOff's encoding.
func execCALLFar(c *CPU) int {
	oldCS := c.regs[RegCS]
	oldIP := c.currentIP
	seg := uint16(c.immediate >> 16)
	off := uint16(c.immediate)
	c.pushWord(oldCS)
	c.pushWord(oldIP)
	c.controlTransfer(seg, off)
	return 28
}

func execRETNear(c *CPU) int {
	ip := c.popWord()
	c.controlTransfer(c.regs[RegCS], ip)
	return 20
}

func execRETFar(c *CPU) int {
	ip := c.popWord()
	cs := c.popWord()
	c.controlTransfer(cs, ip)
	return 34
}

// execRETNearImm pops IP like execRETNear, then additionally discards
// immediate bytes of arguments off the caller's stack frame by adding
// the instruction's immediate operand to SP.
func execRETNearImm(c *CPU) int {
	ip := c.popWord()
	c.controlTransfer(c.regs[RegCS], ip)
	c.regs[RegSP] += uint16(c.immediate)
	return cyclesRETNearImm
}

func execRETFarImm(c *CPU) int {
	ip := c.popWord()
	cs := c.popWord()
	c.controlTransfer(cs, ip)
	c.regs[RegSP] += uint16(c.immediate)
	return cyclesRETFarImm
}

// execJMPShort and execJMPNear are both intrasegment relative jumps,
// differing only in the width of the displacement FETCH_IMM already
// decoded (rel8 sign-extended vs rel16).
func execJMPShort(c *CPU) int {
	target := c.currentIP + uint16(c.immediate)
	c.controlTransfer(c.regs[RegCS], target)
	return cyclesJMPShort
}

func execJMPNear(c *CPU) int {
	target := c.currentIP + uint16(c.immediate)
	c.controlTransfer(c.regs[RegCS], target)
	return cyclesJMPNear
}

// execJMPFar loads CS:IP directly from the packed segment:offset operand,
// the same dSegOff encoding CALL far uses, with no stack push.
func execJMPFar(c *CPU) int {
	seg := uint16(c.immediate >> 16)
	off := uint16(c.immediate)
	c.controlTransfer(seg, off)
	return cyclesJMPFar
}
