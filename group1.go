package cpu

// group1Ops dispatches opcodes 0x80-0x83 (immediate-to-r/m ALU group) by
// the ModR/M reg field, per the fixed 8086 encoding: 0=ADD 1=OR 2=ADC
// 3=SBB 4=AND 5=SUB 6=XOR 7=CMP.
var group1Ops = [8]func(*CPU) int{
	execADD,
	execOR,
	execADC,
	execSBB,
	execAND,
	execSUB,
	execXOR,
	execCMP,
}

func group1Dispatch(c *CPU) int {
	return group1Ops[c.regField](c)
}
