package cpu

// stepExecuting runs the resolved instruction's handler. A REP-prefixed
// string instruction runs its whole repeat loop right here, in this one
// EU step, rather than one element per Clock tick: spec.md §4.3/§5 call
// the repeat loop non-interruptible within a single tick. Cycle charges
// from every element still accumulate into cyclesOwed and drain over
// subsequent ticks the same way any other instruction's EA/bus cost
// does — only the architectural state change (registers, memory, CX)
// is required to land atomically, not the cycle billing.
func (c *CPU) stepExecuting() {
	if c.entry == nil {
		c.finishInstruction()
		return
	}

	if !c.entry.isString || !c.repeat {
		c.cyclesOwed += c.entry.handler(c)
		c.finishInstruction()
		return
	}

	for c.regs[RegCX] != 0 {
		c.cyclesOwed += c.entry.handler(c)
		c.regs[RegCX]--
		if c.regs[RegCX] == 0 {
			break
		}
		if c.entry.zfTerminated {
			wantZF := c.g1Prefix == 0xF3 // REPZ/REPE: continue while ZF=1
			if c.ZF() != wantZF {
				break
			}
		}
		c.dest = c.resolveDescr(c.entry.dst)
		c.src = c.resolveDescr(c.entry.src)
	}
	c.finishInstruction()
}

// finishInstruction returns the decoder to READY, clearing all
// per-instruction scratch state.
func (c *CPU) finishInstruction() {
	c.clearScratch()
}
