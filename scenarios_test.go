package cpu

import "testing"

// End-to-end scenarios exercising several pipeline stages together:
// stack discipline, conditional control transfer, and CALL/RET.

func TestScenarioPushPopRoundTrip(t *testing.T) {
	// BC 00 02 : MOV SP, 0x0200
	// B8 AA 55 : MOV AX, 0x55AA
	// 50       : PUSH AX
	// BB 00 00 : MOV BX, 0
	// 5B       : POP BX
	c, _ := newTestCPU([]byte{
		0xBC, 0x00, 0x02,
		0xB8, 0xAA, 0x55,
		0x50,
		0xBB, 0x00, 0x00,
		0x5B,
	})
	run(c, 200)
	if c.BX() != 0x55AA {
		t.Fatalf("BX = %#x, want 0x55AA", c.BX())
	}
	if c.SP() != 0x0200 {
		t.Fatalf("SP = %#x, want 0x0200 (balanced push/pop)", c.SP())
	}
}

func TestScenarioConditionalJumpTaken(t *testing.T) {
	// B8 00 00 : MOV AX, 0
	// 3D 00 00 : CMP AX, 0        ; sets ZF
	// 74 03    : JZ +3            ; skip the next MOV
	// B9 FF FF : MOV CX, 0xFFFF   ; must be skipped
	// BA 01 00 : MOV DX, 1        ; landing point
	c, _ := newTestCPU([]byte{
		0xB8, 0x00, 0x00,
		0x3D, 0x00, 0x00,
		0x74, 0x03,
		0xB9, 0xFF, 0xFF,
		0xBA, 0x01, 0x00,
	})
	run(c, 200)
	if c.DX() != 1 {
		t.Fatalf("DX = %#x, want 1", c.DX())
	}
	if c.CX() == 0xFFFF {
		t.Fatal("JZ should have skipped the MOV CX,0xFFFF")
	}
}

func TestScenarioConditionalJumpNotTaken(t *testing.T) {
	// B8 01 00 : MOV AX, 1
	// 3D 00 00 : CMP AX, 0        ; ZF clear
	// 74 03    : JZ +3            ; not taken
	// B9 02 00 : MOV CX, 2
	c, _ := newTestCPU([]byte{
		0xB8, 0x01, 0x00,
		0x3D, 0x00, 0x00,
		0x74, 0x03,
		0xB9, 0x02, 0x00,
	})
	run(c, 200)
	if c.CX() != 2 {
		t.Fatalf("CX = %d, want 2 (fallthrough executed)", c.CX())
	}
}

func TestScenarioFarJumpPrelude(t *testing.T) {
	// EA 5B E0 00 F0 : JMP FAR 0xF000:0xE05B
	c, _ := newTestCPU([]byte{0xEA, 0x5B, 0xE0, 0x00, 0xF0})
	run(c, 80)
	if c.CS() != 0xF000 {
		t.Fatalf("CS = %#x, want 0xF000", c.CS())
	}
	if c.currentIP < 0xE05B {
		t.Fatalf("currentIP = %#x, want at or past 0xE05B", c.currentIP)
	}
}

func TestScenarioCallRet(t *testing.T) {
	// offset 0: BC 00 02   MOV SP, 0x0200
	// offset 3: E8 04 00   CALL +4 (relative to offset 6, lands at 10)
	// offset 6: F1         illegal opcode  ; the call's return address;
	//                                      ; reached only via RET, halts
	// offset 7: B9 FF FF   MOV CX, 0xFFFF  ; must be skipped by the call
	// offset 10: BA 2A 00  MOV DX, 0x2A    ; callee
	// offset 13: C3        RET
	c, _ := newTestCPU([]byte{
		0xBC, 0x00, 0x02,
		0xE8, 0x04, 0x00,
		0xF1,
		0xB9, 0xFF, 0xFF,
		0xBA, 0x2A, 0x00,
		0xC3,
	})
	run(c, 250)
	if c.DX() != 0x2A {
		t.Fatalf("DX = %#x, want 0x2A", c.DX())
	}
	if c.CX() == 0xFFFF {
		t.Fatal("CALL should have jumped over the MOV CX,0xFFFF")
	}
	if c.SP() != 0x0200 {
		t.Fatalf("SP = %#x, want 0x0200 after matched CALL/RET", c.SP())
	}
}
