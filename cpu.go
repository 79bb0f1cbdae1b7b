// Package cpu implements the execution core of an Intel 8086/8088-class
// processor: a staged fetch-decode-execute pipeline driven by a single
// Clock tick, coupling a prefetch bus unit (BIU) with a decode/execute
// unit (EU) over a 20-bit real-mode address space.
//
// The host entry point, build tooling, and any interactive or graphical
// frontend are explicitly out of scope; Bus is the only collaborator this
// package addresses, and only at its interface.
package cpu

import "log"

// stage names the decoder's six states, advanced one EU sub-step per
// Clock tick per spec.md §4.3.
type stage int

const (
	stageReady stage = iota
	stageFetchModRM
	stageFetchImm
	stageFetchAddress
	stageDecodeLoc
	stageExecuting
)

// Fault records an illegal-opcode condition: the byte that had no handler
// and the EU's CS:currentIP when it was detected, which has already
// advanced past the faulting byte.
type Fault struct {
	Opcode byte
	CS, IP uint16
}

// CPU is the complete architectural and micro-architectural state of the
// 8086 core. Decode scratch fields use -1 (via the sentinel consts below)
// to mark "not yet fetched this instruction", distinct from any real byte
// value, per spec.md §3.
type CPU struct {
	regs  regFile
	IP    uint16
	Flags uint16

	// currentIP is the offset of the next byte the EU will dequeue: it
	// advances on every dequeue and is reset by control transfers, so
	// relative branches, executed after all their bytes are fetched, add
	// their displacement to the address just past the instruction.
	currentIP uint16

	bus Bus
	biu biu

	Halted    bool
	LastFault *Fault

	// TestInputAsserted models the 8086's external TEST pin that WAIT
	// polls. No peripheral drives it in this core; a caller may set it
	// directly to exercise WAIT's stall charge.
	TestInputAsserted bool

	st    stage
	subStage   int // sub-step within FETCH_MODRM/FETCH_IMM/FETCH_ADDRESS
	cyclesOwed int // cycles remaining before the EU decodes the next byte

	opcodeByte int32 // sentinel -1
	modrm      int32
	disp8      int32
	disp16     int32
	imm8       int32
	imm16      int32
	immediate  uint32

	rmIsReg  bool
	rmReg    int    // register index when rmIsReg
	rmAddr   uint32 // physical address when !rmIsReg
	rmOffset uint16 // 16-bit offset within segment when !rmIsReg, for LEA
	regField int     // resolved reg-field register/segreg index

	g1Prefix byte // 0 = none, else 0xF0/0xF2/0xF3
	g2Seg    int  // -1 = none, else RegES/RegCS/RegSS/RegDS
	repeat   bool
	modrmIsSegReg bool

	entry *opEntry

	dest, src loc
}

const scratchSentinel = -1

// New creates a CPU wired to bus and performs a hardware reset. A nil bus
// is programmer error (spec.md §7) and panics immediately rather than
// surfacing as a runtime-observable fault.
func New(bus Bus) *CPU {
	if bus == nil {
		panic("cpu: New called with nil bus")
	}
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset restores power-on state: registers and flags zeroed, CS=0xFFFF
// (the real-mode reset vector segment), IP=0, prefetch queue empty, BIU
// countdown primed for the first fetch.
func (c *CPU) Reset() {
	c.regs = regFile{}
	c.regs[RegCS] = 0xFFFF
	c.IP = 0
	c.currentIP = 0
	c.Flags = 0
	c.Halted = false
	c.LastFault = nil
	c.TestInputAsserted = false
	c.cyclesOwed = 0
	c.biu.reset()
	c.clearScratch()
}

func (c *CPU) clearScratch() {
	c.st = stageReady
	c.subStage = 0
	c.opcodeByte = scratchSentinel
	c.modrm = scratchSentinel
	c.disp8 = scratchSentinel
	c.disp16 = scratchSentinel
	c.imm8 = scratchSentinel
	c.imm16 = scratchSentinel
	c.immediate = 0
	c.rmIsReg = false
	c.rmReg = 0
	c.rmAddr = 0
	c.rmOffset = 0
	c.regField = 0
	c.g1Prefix = 0
	c.g2Seg = -1
	c.repeat = false
	c.modrmIsSegReg = false
	c.entry = nil
	c.dest = nullLoc
	c.src = nullLoc
}

// Clock advances the CPU by one tick: one BIU sub-step, then at most one
// EU sub-step, per spec.md §5. It never blocks and returns promptly.
func (c *CPU) Clock() {
	if c.Halted {
		return
	}
	c.biu.tick(c)
	c.stepEU()
}

// physAddr linearizes a real-mode segment:offset pair to a 20-bit
// physical address, wrapping at 1 MiB.
func physAddr(seg, off uint16) uint32 {
	return ((uint32(seg) << 4) + uint32(off)) & addrMask
}

// pushWord decrements SP by 2 and writes v at SS:SP.
func (c *CPU) pushWord(v uint16) {
	sp := c.regs[RegSP] - 2
	c.regs[RegSP] = sp
	c.bus.WriteWord(physAddr(c.regs[RegSS], sp), v)
}

// popWord reads the word at SS:SP then increments SP by 2.
func (c *CPU) popWord() uint16 {
	sp := c.regs[RegSP]
	v := c.bus.ReadWord(physAddr(c.regs[RegSS], sp))
	c.regs[RegSP] = sp + 2
	return v
}

// controlTransfer sets CS:IP for a jump/call/return and invalidates the
// prefetch queue, per spec.md §3 ("any control-transfer must atomically
// clear the queue... and reset BIU accounting").
func (c *CPU) controlTransfer(cs, ip uint16) {
	c.regs[RegCS] = cs
	c.IP = ip
	c.currentIP = ip
	c.biu.invalidate()
}

func (c *CPU) illegalOpcode(op byte) {
	c.LastFault = &Fault{Opcode: op, CS: c.regs[RegCS], IP: c.currentIP}
	c.Halted = true
	log.Printf("cpu: illegal opcode 0x%02X at %04X:%04X, halting", op, c.regs[RegCS], c.currentIP)
}
