package cpu

import "testing"

func TestRepMovsb(t *testing.T) {
	// F3 A4 : REP MOVSB
	c, mem := newTestCPU([]byte{0xF3, 0xA4})
	mem.LoadAt(0x100, []byte{0xAA, 0xBB, 0xCC})
	c.SetSI(0x100)
	c.SetDI(0x200)
	c.SetCX(3)

	run(c, 150)

	if c.CX() != 0 {
		t.Fatalf("CX = %d, want 0", c.CX())
	}
	if c.SI() != 0x103 || c.DI() != 0x203 {
		t.Fatalf("SI/DI = %#x/%#x, want 0x103/0x203", c.SI(), c.DI())
	}
	want := []byte{0xAA, 0xBB, 0xCC}
	for i, w := range want {
		if got := mem.ReadByte(0x200 + uint32(i)); got != w {
			t.Fatalf("byte %d = %#x, want %#x", i, got, w)
		}
	}
}

func TestRepneScasbStopsOnMatch(t *testing.T) {
	// F2 AE : REPNZ SCASB — scan for AL, stop when ES:[DI] == AL (ZF=1)
	// F1    : illegal opcode, halts before trailing zero bytes
	//         (ADD [BX+SI],AL) can overwrite the flags
	c, mem := newTestCPU([]byte{0xF2, 0xAE, 0xF1})
	mem.LoadAt(0x300, []byte{0x01, 0x02, 0x03, 0x04})
	c.SetAL(0x03)
	c.SetDI(0x300)
	c.SetCX(4)

	run(c, 150)

	if !c.ZF() {
		t.Fatal("expected ZF set on match")
	}
	// Three elements are examined, the third matching: DI advances past the
	// matching byte (0x300 -> 0x303) and CX reflects the one unexamined
	// element remaining.
	if c.DI() != 0x303 {
		t.Fatalf("DI = %#x, want 0x303", c.DI())
	}
	if c.CX() != 1 {
		t.Fatalf("CX = %d, want 1", c.CX())
	}
}

func TestCmpsbSetsFlagsWithoutRepeat(t *testing.T) {
	// A6 : CMPSB (single comparison, no REP)
	c, mem := newTestCPU([]byte{0xA6})
	mem.LoadAt(0x400, []byte{0x10})
	mem.LoadAt(0x500, []byte{0x10})
	c.SetSI(0x400)
	c.SetDI(0x500)

	run(c, 60)

	if !c.ZF() {
		t.Fatal("equal bytes should set ZF")
	}
	if c.SI() != 0x401 || c.DI() != 0x501 {
		t.Fatalf("SI/DI = %#x/%#x, want 0x401/0x501", c.SI(), c.DI())
	}
}
