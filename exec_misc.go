package cpu

// execNOP is 0x90, encoded as XCHG AX,AX but always a true no-op here
// since AX swapped with itself changes nothing.
func execNOP(c *CPU) int { return 3 }

// execWAIT models the coprocessor-synchronization opcode: it charges the
// base 3 cycles, plus a single extra 5 cycles when TestInputAsserted is
// set at dispatch. It does not re-poll the input on later ticks, so the
// extra charge is made at most once per WAIT however long the input stays
// asserted. This core has no coprocessor, so TestInputAsserted is a stub
// hook a caller can drive for testing; it stays deasserted otherwise.
func execWAIT(c *CPU) int {
	if c.TestInputAsserted {
		return 3 + 5
	}
	return 3
}
