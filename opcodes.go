package cpu

// Static opcode table construction, per spec.md §9's "decode tables as
// data, not control flow" note. init() builds the full primary table
// once at package load.

type aluFamily struct {
	base    byte
	handler func(*CPU) int
}

var aluFamilies = []aluFamily{
	{0x00, execADD},
	{0x08, execOR},
	{0x10, execADC},
	{0x18, execSBB},
	{0x20, execAND},
	{0x28, execSUB},
	{0x30, execXOR},
	{0x38, execCMP},
}

var jccConds = []func(*CPU) bool{
	condJO, condJNO, condJB, condJNB, condJZ, condJNZ, condJBE, condJA,
	condJS, condJNS, condJP, condJNP, condJL, condJGE, condJLE, condJG,
}

// group4Dispatch implements opcode 0xFE: unary INC/DEC over any r/m8,
// selected by the ModR/M reg field (0=INC, 1=DEC). Every other reg-field
// value on this opcode is undefined on real hardware and halts here.
func group4Dispatch(c *CPU) int {
	switch c.regField {
	case 0:
		return execINC(c)
	case 1:
		return execDEC(c)
	default:
		c.illegalOpcode(byte(c.opcodeByte))
		return 0
	}
}

func init() {
	for _, f := range aluFamilies {
		primaryTable[f.base+0] = &opEntry{dst: dRM, src: dReg, wide: false, handler: f.handler}
		primaryTable[f.base+1] = &opEntry{dst: dRM, src: dReg, wide: true, handler: f.handler}
		primaryTable[f.base+2] = &opEntry{dst: dReg, src: dRM, wide: false, handler: f.handler}
		primaryTable[f.base+3] = &opEntry{dst: dReg, src: dRM, wide: true, handler: f.handler}
		primaryTable[f.base+4] = &opEntry{dst: dAcc, src: dImm, wide: false, handler: f.handler}
		primaryTable[f.base+5] = &opEntry{dst: dAcc, src: dImm, wide: true, handler: f.handler}
	}

	primaryTable[0x27] = &opEntry{handler: execDAA}
	primaryTable[0x2F] = &opEntry{handler: execDAS}
	primaryTable[0x37] = &opEntry{handler: execAAA}
	primaryTable[0x3F] = &opEntry{handler: execAAS}

	// segment PUSH/POP: 06/07 ES, 0E CS(push only), 16/17 SS, 1E/1F DS.
	primaryTable[0x06] = &opEntry{dst: dNone, src: dFixedSeg, fixedReg: 0, wide: true, handler: execPUSH}
	primaryTable[0x07] = &opEntry{dst: dFixedSeg, fixedReg: 0, wide: true, handler: execPOP}
	primaryTable[0x0E] = &opEntry{dst: dNone, src: dFixedSeg, fixedReg: 1, wide: true, handler: execPUSH}
	primaryTable[0x16] = &opEntry{dst: dNone, src: dFixedSeg, fixedReg: 2, wide: true, handler: execPUSH}
	primaryTable[0x17] = &opEntry{dst: dFixedSeg, fixedReg: 2, wide: true, handler: execPOP}
	primaryTable[0x1E] = &opEntry{dst: dNone, src: dFixedSeg, fixedReg: 3, wide: true, handler: execPUSH}
	primaryTable[0x1F] = &opEntry{dst: dFixedSeg, fixedReg: 3, wide: true, handler: execPOP}

	for i := 0; i < 8; i++ {
		primaryTable[0x40+i] = &opEntry{dst: dFixed, fixedReg: i, wide: true, handler: execINC}
		primaryTable[0x48+i] = &opEntry{dst: dFixed, fixedReg: i, wide: true, handler: execDEC}
		primaryTable[0x50+i] = &opEntry{dst: dNone, src: dFixed, fixedReg: i, wide: true, handler: execPUSH}
		primaryTable[0x58+i] = &opEntry{dst: dFixed, fixedReg: i, wide: true, handler: execPOP}
	}

	for i, pred := range jccConds {
		primaryTable[0x70+i] = &opEntry{dst: dNone, src: dImm8, handler: makeJcc(pred)}
	}

	primaryTable[0x80] = &opEntry{dst: dRM, src: dImm8, wide: false, handler: group1Dispatch}
	primaryTable[0x81] = &opEntry{dst: dRM, src: dImm, wide: true, handler: group1Dispatch}
	primaryTable[0x82] = &opEntry{dst: dRM, src: dImm8, wide: false, handler: group1Dispatch}
	primaryTable[0x83] = &opEntry{dst: dRM, src: dImm8, wide: true, handler: group1Dispatch}

	primaryTable[0x84] = &opEntry{dst: dRM, src: dReg, wide: false, handler: execTEST}
	primaryTable[0x85] = &opEntry{dst: dRM, src: dReg, wide: true, handler: execTEST}
	primaryTable[0x86] = &opEntry{dst: dRM, src: dReg, wide: false, handler: execXCHG}
	primaryTable[0x87] = &opEntry{dst: dRM, src: dReg, wide: true, handler: execXCHG}
	primaryTable[0x88] = &opEntry{dst: dRM, src: dReg, wide: false, handler: execMOV}
	primaryTable[0x89] = &opEntry{dst: dRM, src: dReg, wide: true, handler: execMOV}
	primaryTable[0x8A] = &opEntry{dst: dReg, src: dRM, wide: false, handler: execMOV}
	primaryTable[0x8B] = &opEntry{dst: dReg, src: dRM, wide: true, handler: execMOV}
	primaryTable[0x8C] = &opEntry{dst: dRM, src: dSReg, wide: true, handler: execMOV}
	primaryTable[0x8D] = &opEntry{dst: dReg, src: dRM, wide: true, handler: execLEA}
	primaryTable[0x8E] = &opEntry{dst: dSReg, src: dRM, wide: true, handler: execMOV}
	primaryTable[0x8F] = &opEntry{dst: dRM, wide: true, handler: execPOP}

	primaryTable[0xC4] = &opEntry{dst: dReg, src: dRM, wide: true, handler: execLES}
	primaryTable[0xC5] = &opEntry{dst: dReg, src: dRM, wide: true, handler: execLDS}

	primaryTable[0x90] = &opEntry{handler: execNOP}
	for i := 1; i < 8; i++ {
		primaryTable[0x90+i] = &opEntry{dst: dAcc, src: dFixed, fixedReg: i, wide: true, handler: execXCHG}
	}
	primaryTable[0x98] = &opEntry{handler: execCBW}
	primaryTable[0x99] = &opEntry{handler: execCWD}
	primaryTable[0x9A] = &opEntry{dst: dNone, src: dSegOff, handler: execCALLFar}
	primaryTable[0x9B] = &opEntry{handler: execWAIT}
	primaryTable[0x9C] = &opEntry{handler: execPUSHF}
	primaryTable[0x9D] = &opEntry{handler: execPOPF}
	primaryTable[0x9E] = &opEntry{handler: execSAHF}
	primaryTable[0x9F] = &opEntry{handler: execLAHF}

	primaryTable[0xA0] = &opEntry{dst: dAcc, src: dAddr, wide: false, handler: execMOV}
	primaryTable[0xA1] = &opEntry{dst: dAcc, src: dAddr, wide: true, handler: execMOV}
	primaryTable[0xA2] = &opEntry{dst: dAddr, src: dAcc, wide: false, handler: execMOV}
	primaryTable[0xA3] = &opEntry{dst: dAddr, src: dAcc, wide: true, handler: execMOV}
	primaryTable[0xA4] = &opEntry{dst: dStrDst, src: dStrSrc, wide: false, isString: true, handler: execMOVS}
	primaryTable[0xA5] = &opEntry{dst: dStrDst, src: dStrSrc, wide: true, isString: true, handler: execMOVS}
	primaryTable[0xA6] = &opEntry{dst: dStrSrc, src: dStrDst, wide: false, isString: true, zfTerminated: true, handler: execCMPS}
	primaryTable[0xA7] = &opEntry{dst: dStrSrc, src: dStrDst, wide: true, isString: true, zfTerminated: true, handler: execCMPS}
	primaryTable[0xA8] = &opEntry{dst: dAcc, src: dImm, wide: false, handler: execTEST}
	primaryTable[0xA9] = &opEntry{dst: dAcc, src: dImm, wide: true, handler: execTEST}
	primaryTable[0xAA] = &opEntry{dst: dStrDst, src: dAcc, wide: false, isString: true, handler: execSTOS}
	primaryTable[0xAB] = &opEntry{dst: dStrDst, src: dAcc, wide: true, isString: true, handler: execSTOS}
	primaryTable[0xAC] = &opEntry{dst: dAcc, src: dStrSrc, wide: false, isString: true, handler: execLODS}
	primaryTable[0xAD] = &opEntry{dst: dAcc, src: dStrSrc, wide: true, isString: true, handler: execLODS}
	primaryTable[0xAE] = &opEntry{dst: dAcc, src: dStrDst, wide: false, isString: true, zfTerminated: true, handler: execSCAS}
	primaryTable[0xAF] = &opEntry{dst: dAcc, src: dStrDst, wide: true, isString: true, zfTerminated: true, handler: execSCAS}

	for i := 0; i < 8; i++ {
		primaryTable[0xB0+i] = &opEntry{dst: dFixed, fixedReg: i, wide: false, src: dImm, handler: execMOV}
		primaryTable[0xB8+i] = &opEntry{dst: dFixed, fixedReg: i, wide: true, src: dImm, handler: execMOV}
	}

	primaryTable[0xC2] = &opEntry{dst: dNone, src: dImm, wide: true, handler: execRETNearImm}
	primaryTable[0xC3] = &opEntry{handler: execRETNear}
	primaryTable[0xC6] = &opEntry{dst: dRM, src: dImm, wide: false, handler: execMOV}
	primaryTable[0xC7] = &opEntry{dst: dRM, src: dImm, wide: true, handler: execMOV}
	primaryTable[0xCA] = &opEntry{dst: dNone, src: dImm, wide: true, handler: execRETFarImm}
	primaryTable[0xCB] = &opEntry{handler: execRETFar}

	primaryTable[0xE8] = &opEntry{dst: dNone, src: dImm, wide: true, handler: execCALLNear}
	primaryTable[0xE9] = &opEntry{dst: dNone, src: dImm, wide: true, handler: execJMPNear}
	primaryTable[0xEA] = &opEntry{dst: dNone, src: dSegOff, handler: execJMPFar}
	primaryTable[0xEB] = &opEntry{dst: dNone, src: dImm8, handler: execJMPShort}

	primaryTable[0xFE] = &opEntry{dst: dRM, wide: false, handler: group4Dispatch}
}
