package cpu

// descr tags an operand slot in the opcode table with how it should be
// resolved, following spec.md §4.3's DECODE_LOC descriptor vocabulary.
type descr int

const (
	dNone   descr = iota
	dAcc          // accumulator: AL (byte) or AX (word)
	dFixed        // register baked into the opcode byte (fixedReg index)
	dFixedSeg     // segment register baked into the opcode byte
	dRM           // ModR/M r/m operand
	dReg          // ModR/M reg-field operand (general register)
	dSReg         // ModR/M reg-field operand, interpreted as segreg
	dImm          // full-width immediate
	dImm8         // 8-bit immediate, always sign-extended to 16 bits (group1, Jcc, JMP short)
	dAddr         // direct memory address (moffs form)
	dSegOff       // packed 32-bit segment:offset far pointer
	dStrSrc       // DS:SI (or G2-overridden)
	dStrDst       // ES:DI, never overridden
)

// opEntry is one row of the static opcode table: operand shapes, width,
// string flags, and handler, per spec.md §9's "keep the tables as static data"
// note.
type opEntry struct {
	dst, src     descr
	wide         bool
	isString     bool
	zfTerminated bool // CMPS/SCAS: REP loop also stops on a ZF mismatch
	fixedReg     int
	handler  func(*CPU) int // returns the instruction's cycle charge
}

// needsModRM reports whether dst or src references the ModR/M byte.
func (e *opEntry) needsModRM() bool {
	return e.dst == dRM || e.src == dRM || e.dst == dReg || e.src == dReg || e.dst == dSReg || e.src == dSReg
}

func (e *opEntry) needsImm() bool {
	return e.src == dImm || e.src == dImm8
}

func (e *opEntry) needsAddress() bool {
	return e.dst == dAddr || e.src == dAddr || e.src == dSegOff
}

var primaryTable [256]*opEntry

// modrm field accessors. c.modrm holds the raw byte (sentinel -1 before
// it's fetched); callers only call these once it is known to be present.
func modMod(m byte) byte  { return m >> 6 }
func modReg(m byte) byte  { return (m >> 3) & 7 }
func modRM(m byte) byte   { return m & 7 }

// eaBaseAndSeg returns the pre-displacement effective address, its
// default segment register, whether rm=6/mod=00 selects the direct-
// address special case, and the EA computation cycle charge, per the
// fixed table in spec.md §4.3 FETCH_MODRM.
func (c *CPU) eaBaseAndSeg(mod, rm byte) (base uint16, defaultSeg int, isDirect bool, cyc int) {
	switch rm {
	case 0:
		return c.regs[RegBX] + c.regs[RegSI], RegDS, false, eaCycles[0]
	case 1:
		return c.regs[RegBX] + c.regs[RegDI], RegDS, false, eaCycles[1]
	case 2:
		return c.regs[RegBP] + c.regs[RegSI], RegSS, false, eaCycles[2]
	case 3:
		return c.regs[RegBP] + c.regs[RegDI], RegSS, false, eaCycles[3]
	case 4:
		return c.regs[RegSI], RegDS, false, eaCycles[4]
	case 5:
		return c.regs[RegDI], RegDS, false, eaCycles[5]
	case 6:
		if mod == 0 {
			return 0, RegDS, true, eaDirectCycles
		}
		return c.regs[RegBP], RegSS, false, eaCycles[6]
	default: // 7
		return c.regs[RegBX], RegDS, false, eaCycles[7]
	}
}

// dispBytesNeeded reports how many displacement bytes follow the ModR/M
// byte for the given mod/rm, per spec.md §4.3.
func dispBytesNeeded(mod, rm byte) int {
	switch {
	case mod == 0 && rm == 6:
		return 2
	case mod == 1:
		return 1
	case mod == 2:
		return 2
	default:
		return 0
	}
}

// stepEU advances the execution unit by one sub-step. It is called once
// per Clock tick, after the BIU has already run.
func (c *CPU) stepEU() {
	if c.cyclesOwed > 0 {
		c.cyclesOwed--
		return
	}
	if c.biu.empty {
		return
	}

	switch c.st {
	case stageReady:
		c.stepReady()
	case stageFetchModRM:
		c.stepFetchModRM()
	case stageFetchImm:
		c.stepFetchImm()
	case stageFetchAddress:
		c.stepFetchAddress()
	case stageDecodeLoc:
		c.stepDecodeLoc()
	case stageExecuting:
		c.stepExecuting()
	}
}

func (c *CPU) nextStageAfterOpcode() {
	e := c.entry
	switch {
	case e.needsModRM():
		c.st = stageFetchModRM
	case e.needsImm():
		c.st = stageFetchImm
	case e.needsAddress():
		c.st = stageFetchAddress
	default:
		c.st = stageDecodeLoc
	}
	c.subStage = 0
}

// stepReady consumes prefixes and the opcode byte, per spec.md §4.3
// READY.
func (c *CPU) stepReady() {
	b, ok := c.biu.dequeue(c)
	if !ok {
		return
	}
	switch b {
	case 0x26, 0x2E, 0x36, 0x3E:
		switch b {
		case 0x26:
			c.g2Seg = RegES
		case 0x2E:
			c.g2Seg = RegCS
		case 0x36:
			c.g2Seg = RegSS
		case 0x3E:
			c.g2Seg = RegDS
		}
		c.cyclesOwed = 1
		return
	case 0xF0, 0xF2, 0xF3:
		c.g1Prefix = b
		if b == 0xF2 || b == 0xF3 {
			c.repeat = true
		}
		c.cyclesOwed = 1
		return
	}

	c.opcodeByte = int32(b)
	e := primaryTable[b]
	if e == nil {
		c.illegalOpcode(b)
		return
	}
	if c.repeat && !e.isString {
		c.repeat = false
	}
	c.entry = e
	c.modrmIsSegReg = e.dst == dSReg || e.src == dSReg
	c.nextStageAfterOpcode()
}

func (c *CPU) stepFetchModRM() {
	switch c.subStage {
	case 0:
		b, ok := c.biu.dequeue(c)
		if !ok {
			return
		}
		c.modrm = int32(b)
		c.subStage = 1
		fallthrough
	case 1:
		mod, rm := modMod(byte(c.modrm)), modRM(byte(c.modrm))
		need := dispBytesNeeded(mod, rm)
		if need == 0 {
			c.subStage = 3
			c.finishModRM()
			return
		}
		b, ok := c.biu.dequeue(c)
		if !ok {
			return
		}
		c.disp8 = int32(b)
		if need == 1 {
			c.subStage = 3
			c.finishModRM()
			return
		}
		c.subStage = 2
		return
	case 2:
		b, ok := c.biu.dequeue(c)
		if !ok {
			return
		}
		c.disp16 = int32(b)
		c.subStage = 3
		c.finishModRM()
	}
}

// finishModRM resolves the reg-field and r/m-field operands once all
// ModR/M bytes (and any displacement) have been fetched.
func (c *CPU) finishModRM() {
	m := byte(c.modrm)
	mod, reg, rm := modMod(m), modReg(m), modRM(m)

	wide := c.entry.wide
	if c.modrmIsSegReg && (c.entry.dst == dSReg || c.entry.src == dSReg) {
		c.regField = RegES + int(reg&3)
	} else if wide {
		c.regField = int(reg)
	} else {
		c.regField = int(reg) // byte register index decoded later via byteReg
	}

	if mod == 3 {
		c.rmIsReg = true
		c.rmReg = int(rm)
	} else {
		base, defSeg, isDirect, cyc := c.eaBaseAndSeg(mod, rm)
		c.cyclesOwed += cyc
		var off uint16
		if isDirect {
			off = uint16(uint16(c.disp16)<<8 | uint16(byte(c.disp8)))
		} else {
			off = base
			if c.disp16 != scratchSentinel {
				off += uint16(uint16(c.disp16)<<8 | uint16(byte(c.disp8)))
				c.cyclesOwed += eaDispCycles
			} else if c.disp8 != scratchSentinel {
				off += uint16(int16(int8(byte(c.disp8))))
				c.cyclesOwed += eaDispCycles
			}
		}
		seg := defSeg
		if c.g2Seg != -1 {
			seg = c.g2Seg
		}
		c.rmIsReg = false
		c.rmOffset = off
		c.rmAddr = physAddr(c.regs[seg], off)
	}

	e := c.entry
	switch {
	case e.needsImm():
		c.st = stageFetchImm
	case e.needsAddress():
		c.st = stageFetchAddress
	default:
		c.st = stageDecodeLoc
	}
	c.subStage = 0
}

func (c *CPU) stepFetchImm() {
	switch c.subStage {
	case 0:
		b, ok := c.biu.dequeue(c)
		if !ok {
			return
		}
		c.imm8 = int32(b)
		wantsSecond := c.entry.wide && c.entry.src == dImm
		if !wantsSecond {
			if c.entry.src == dImm8 {
				c.immediate = uint32(uint16(int16(int8(byte(c.imm8)))))
			} else {
				c.immediate = uint32(byte(c.imm8))
			}
			c.st = stageDecodeLoc
			c.subStage = 0
			return
		}
		c.subStage = 1
		return
	case 1:
		b, ok := c.biu.dequeue(c)
		if !ok {
			return
		}
		c.imm16 = int32(b)
		c.immediate = uint32(byte(c.imm8)) | uint32(byte(c.imm16))<<8
		c.st = stageDecodeLoc
		c.subStage = 0
	}
}

func (c *CPU) stepFetchAddress() {
	// sub-steps 0,1 fetch the 16-bit offset; for SEGOFF, 2,3 fetch the
	// segment word too.
	switch c.subStage {
	case 0, 1:
		b, ok := c.biu.dequeue(c)
		if !ok {
			return
		}
		if c.subStage == 0 {
			c.imm8 = int32(b)
		} else {
			c.imm16 = int32(b)
		}
		c.subStage++
		if c.subStage == 2 {
			if c.entry.src != dSegOff {
				c.immediate = uint32(byte(c.imm8)) | uint32(byte(c.imm16))<<8
				c.st = stageDecodeLoc
				c.subStage = 0
				return
			}
		}
		return
	case 2, 3:
		b, ok := c.biu.dequeue(c)
		if !ok {
			return
		}
		if c.subStage == 2 {
			c.disp8 = int32(b) // segment low byte
		} else {
			c.disp16 = int32(b) // segment high byte
		}
		c.subStage++
		if c.subStage == 4 {
			off := uint32(byte(c.imm8)) | uint32(byte(c.imm16))<<8
			seg := uint32(byte(c.disp8)) | uint32(byte(c.disp16))<<8
			c.immediate = seg<<16 | off
			c.st = stageDecodeLoc
			c.subStage = 0
		}
	}
}

// stepDecodeLoc resolves dest/src into tagged Locations per spec.md §4.3
// DECODE_LOC, then advances to EXECUTING.
func (c *CPU) stepDecodeLoc() {
	e := c.entry
	c.dest = c.resolveDescr(e.dst)
	c.src = c.resolveDescr(e.src)
	c.st = stageExecuting
}

func (c *CPU) resolveDescr(d descr) loc {
	e := c.entry
	switch d {
	case dNone:
		return nullLoc
	case dAcc:
		return loc{cat: catAccumulator, reg: RegAX}
	case dFixed:
		return loc{cat: catRegister, reg: e.fixedReg}
	case dFixedSeg:
		return loc{cat: catSegReg, reg: RegES + e.fixedReg}
	case dReg:
		return loc{cat: catRegister, reg: c.regField}
	case dSReg:
		return loc{cat: catSegReg, reg: c.regField}
	case dRM:
		if c.rmIsReg {
			return loc{cat: catRegister, reg: c.rmReg}
		}
		return loc{cat: catMemory, addr: c.rmAddr}
	case dImm, dImm8:
		return loc{cat: catImmediate, imm: c.immediate}
	case dAddr:
		return loc{cat: catMemory, addr: physAddr(c.regs[c.effectiveSeg(RegDS)], uint16(c.immediate))}
	case dSegOff:
		return loc{cat: catImmediate, imm: c.immediate}
	case dStrSrc:
		return loc{cat: catString, addr: physAddr(c.regs[c.effectiveSeg(RegDS)], c.regs[RegSI])}
	case dStrDst:
		return loc{cat: catString, addr: physAddr(c.regs[RegES], c.regs[RegDI])}
	}
	return nullLoc
}

func (c *CPU) effectiveSeg(def int) int {
	if c.g2Seg != -1 {
		return c.g2Seg
	}
	return def
}
