package cpu

// FLAGS bit positions, fixed per spec.md §6.
const (
	FlagCF uint16 = 1 << 0
	FlagPF uint16 = 1 << 2
	FlagAF uint16 = 1 << 4
	FlagZF uint16 = 1 << 6
	FlagSF uint16 = 1 << 7
	FlagTF uint16 = 1 << 8
	FlagIF uint16 = 1 << 9
	FlagDF uint16 = 1 << 10
	FlagOF uint16 = 1 << 11
)

// parityTable is a 256-entry lookup of the 8086's parity flag: true when
// the low byte has an even number of set bits. Precomputed once at
// package init per spec.md §9 ("Global parity table... precompute at
// startup or as a compile-time constant").
var parityTable [256]bool

func init() {
	for v := 0; v < 256; v++ {
		b := byte(v)
		b ^= b >> 4
		b ^= b >> 2
		b ^= b >> 1
		parityTable[v] = (b & 1) == 0
	}
}

func (c *CPU) getFlag(mask uint16) bool {
	return c.Flags&mask != 0
}

func (c *CPU) setFlag(mask uint16, set bool) {
	if set {
		c.Flags |= mask
	} else {
		c.Flags &^= mask
	}
}

func (c *CPU) CF() bool { return c.getFlag(FlagCF) }
func (c *CPU) PF() bool { return c.getFlag(FlagPF) }
func (c *CPU) AF() bool { return c.getFlag(FlagAF) }
func (c *CPU) ZF() bool { return c.getFlag(FlagZF) }
func (c *CPU) SF() bool { return c.getFlag(FlagSF) }
func (c *CPU) TF() bool { return c.getFlag(FlagTF) }
func (c *CPU) IF() bool { return c.getFlag(FlagIF) }
func (c *CPU) DF() bool { return c.getFlag(FlagDF) }
func (c *CPU) OF() bool { return c.getFlag(FlagOF) }

// setSZP sets SF/ZF/PF from a width-masked result, the common tail of
// every arithmetic and logical flag computation.
func (c *CPU) setSZP(result uint16, wide bool) {
	var signBit uint16 = 0x80
	if wide {
		signBit = 0x8000
	}
	c.setFlag(FlagSF, result&signBit != 0)
	c.setFlag(FlagZF, result == 0)
	c.setFlag(FlagPF, parityTable[byte(result)])
}

// setArithFlags computes CF/AF/OF/SF/ZF/PF for dest OP src at the given
// width and returns the width-masked result, per spec.md §4.4. Callers
// fold a carry/borrow-in (ADC/SBB) into src before calling, since
// dest+(src+cf) and dest-(src+cf) already carry the right semantics.
func (c *CPU) setArithFlags(dest, src uint32, wide, sub bool) uint32 {
	mask := uint32(0xFF)
	signBit := uint32(0x80)
	if wide {
		mask = 0xFFFF
		signBit = 0x8000
	}
	var r uint32
	if sub {
		r = (dest - src) & mask
		c.setFlag(FlagCF, dest < src)
		c.setFlag(FlagAF, dest&0xF < src&0xF)
		c.setFlag(FlagOF, (dest^src)&(dest^r)&signBit != 0)
	} else {
		raw := dest + src
		r = raw & mask
		c.setFlag(FlagCF, raw > mask)
		c.setFlag(FlagAF, (dest&0xF)+(src&0xF) > 0xF)
		c.setFlag(FlagOF, (dest^r)&(src^r)&signBit != 0)
	}
	c.setSZP(uint16(r), wide)
	return r
}

// setLogicFlags sets CF=0, OF=0, AF=0 (documented-undefined, implemented
// as zero) and SF/ZF/PF from the result, per spec.md §4.4.
func (c *CPU) setLogicFlags(result uint16, wide bool) {
	c.setFlag(FlagCF, false)
	c.setFlag(FlagOF, false)
	c.setFlag(FlagAF, false)
	c.setSZP(result, wide)
}
