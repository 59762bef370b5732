package cpu

import (
	"testing"

	mem "github.com/hcornwell/m6809/emu/memory"
)

func newTestCore(t *testing.T) (*Core, *mem.Memory) {
	t.Helper()
	m := mem.New()
	m.LoadROM(0xFFFE, []byte{0x01, 0x00})
	c := New(m, nil)
	return c, m
}

func TestLDAImmediate(t *testing.T) {
	c, m := newTestCore(t)
	m.LoadRaw(0x0100, []byte{0x86, 0x42})
	c.Step()
	if c.A != 0x42 {
		t.Errorf("A = %#x, want 0x42", c.A)
	}
	if c.PC != 0x0102 {
		t.Errorf("PC = %#x, want 0x0102", c.PC)
	}
	if c.flag(CCZero) || c.flag(CCNegative) {
		t.Errorf("CC = %#x, want Z and N clear", c.CC)
	}
}

func TestLBRASelfLoop(t *testing.T) {
	c, m := newTestCore(t)
	// LBRA * assembles to 16 FF FD: displacement -3 from the
	// instruction after the 3-byte opcode, landing back on itself.
	m.LoadRaw(0x0100, []byte{0x16, 0xFF, 0xFD})
	c.Step()
	if c.PC != 0x0100 {
		t.Errorf("PC = %#x, want 0x0100 (self-loop)", c.PC)
	}
}

func TestLEAXIndexedY(t *testing.T) {
	c, m := newTestCore(t)
	m.LoadRaw(0x0100, []byte{0x30, 0x25}) // LEAX 5,Y
	c.Y = 0x2000
	c.Step()
	if c.X != 0x2005 {
		t.Errorf("X = %#x, want 0x2005", c.X)
	}
}

func TestADDAOverflow(t *testing.T) {
	c, m := newTestCore(t)
	m.LoadRaw(0x0100, []byte{0x8B, 0x01}) // ADDA #1
	c.A = 0x7F
	c.Step()
	if c.A != 0x80 {
		t.Errorf("A = %#x, want 0x80", c.A)
	}
	if !c.flag(CCOverflow) {
		t.Error("V flag not set on signed overflow")
	}
	if !c.flag(CCNegative) {
		t.Error("N flag not set")
	}
	if c.flag(CCZero) {
		t.Error("Z flag incorrectly set")
	}
	if c.flag(CCCarry) {
		t.Error("C flag incorrectly set")
	}
}

func TestMULProducesD(t *testing.T) {
	c, m := newTestCore(t)
	m.LoadRaw(0x0100, []byte{0x3D}) // MUL
	c.A = 0xFF
	c.B = 0x01
	c.Step()
	if c.D() != 0x00FF {
		t.Errorf("D = %#x, want 0x00FF", c.D())
	}
	if !c.flag(CCCarry) {
		t.Error("C flag should reflect bit 7 of the low result byte")
	}
	if c.flag(CCZero) {
		t.Error("Z flag incorrectly set")
	}
}

func TestResetVector(t *testing.T) {
	m := mem.New()
	m.LoadROM(0xFFFE, []byte{0x80, 0x00})
	c := New(m, nil)
	if c.PC != 0x8000 {
		t.Errorf("PC = %#x, want 0x8000 from reset vector", c.PC)
	}
}

func TestDIsAComposedOfAAndB(t *testing.T) {
	c, _ := newTestCore(t)
	c.A = 0x12
	c.B = 0x34
	if c.D() != 0x1234 {
		t.Errorf("D() = %#x, want 0x1234", c.D())
	}
	c.SetD(0xABCD)
	if c.A != 0xAB || c.B != 0xCD {
		t.Errorf("A=%#x B=%#x, want A=0xAB B=0xCD", c.A, c.B)
	}
}

func TestSYNCWaitsForInterrupt(t *testing.T) {
	c, m := newTestCore(t)
	m.LoadROM(0xFFF8, []byte{0x90, 0x00})
	m.LoadRaw(0x0100, []byte{0x13}) // SYNC
	c.Step()
	if c.State() != StateWaiting {
		t.Fatal("core should be waiting after SYNC")
	}
	c.Step()
	if c.State() != StateWaiting {
		t.Fatal("core should still be waiting with nothing posted")
	}
	c.PostIRQ()
	c.Step()
	if c.State() != StateRunning {
		t.Error("core should resume running after PostIRQ")
	}
	if c.PC != 0x9000 {
		t.Errorf("PC = %#x, want IRQ vector target 0x9000", c.PC)
	}
	if !c.flag(CCIRQMask) {
		t.Error("I mask should be set on IRQ entry")
	}
}

func TestCWAIPushesFrameBeforeWaiting(t *testing.T) {
	c, m := newTestCore(t)
	m.LoadROM(0xFFF6, []byte{0xA0, 0x00})
	m.LoadRaw(0x0100, []byte{0x3C, 0xFF}) // CWAI #$FF
	c.S = 0x0200
	c.X = 0x1111
	c.Step()
	if c.State() != StateWaiting {
		t.Fatal("core should be waiting after CWAI")
	}
	if c.S != 0x0200-12 {
		t.Errorf("S = %#x, want stack decremented by 12 bytes for a full frame", c.S)
	}
	c.PostFIRQ()
	c.Step()
	if c.PC != 0xA000 {
		t.Errorf("PC = %#x, want FIRQ vector target 0xA000", c.PC)
	}
	if c.S != 0x0200-12 {
		t.Error("CWAI's frame should not be pushed twice on interrupt entry")
	}
}

func TestPSHSPULSRoundTrip(t *testing.T) {
	c, m := newTestCore(t)
	// PSHS with mask 0x7F (everything but PC), then PULS the same mask.
	m.LoadRaw(0x0100, []byte{0x34, 0x7F, 0x35, 0x7F})
	c.S = 0x0200
	c.PC = 0x0100
	c.A, c.B, c.DP, c.X, c.Y, c.U = 1, 2, 3, 0x1111, 0x2222, 0x3333
	c.Step() // PSHS
	if c.S != 0x0200-10 {
		t.Fatalf("S after PSHS = %#x, want %#x", c.S, 0x0200-10)
	}
	pcAfterPush := c.PC
	c.A, c.B, c.DP, c.X, c.Y, c.U = 0, 0, 0, 0, 0, 0
	c.Step() // PULS
	if c.A != 1 || c.B != 2 || c.DP != 3 || c.X != 0x1111 || c.Y != 0x2222 || c.U != 0x3333 {
		t.Errorf("registers not restored: A=%#x B=%#x DP=%#x X=%#x Y=%#x U=%#x", c.A, c.B, c.DP, c.X, c.Y, c.U)
	}
	if c.S != 0x0200 {
		t.Errorf("S after matching PULS = %#x, want fully unwound 0x0200", c.S)
	}
	if c.PC != pcAfterPush+2 {
		t.Errorf("PC = %#x, want %#x (PULS opcode+mask consumed, PC untouched by the pull itself)", c.PC, pcAfterPush+2)
	}
}

func TestDAABCDCorrection(t *testing.T) {
	c, _ := newTestCore(t)
	c.A = 0x09
	c.setFlag(CCCarry, false)
	c.setFlag(CCHalfCarry, true) // H set by hand: the low-nibble +6 correction applies
	c.daa()
	if c.A != 0x0F {
		t.Errorf("A after DAA = %#x, want 0x0F", c.A)
	}
}

func TestRMWMemoryOperand(t *testing.T) {
	c, m := newTestCore(t)
	m.LoadRaw(0x0100, []byte{0x7A, 0x02, 0x00}) // DEC extended $0200
	m.WriteByte(0x0200, 0x01)
	c.Step()
	if v := m.ReadByte(0x0200); v != 0x00 {
		t.Errorf("mem[0x0200] = %#x, want 0x00", v)
	}
	if !c.flag(CCZero) {
		t.Error("Z flag should be set after DEC reaches zero")
	}
}

func TestIOPageDiversion(t *testing.T) {
	c, m := newTestCore(t)
	var lastWrite uint8
	m.SetPort(fakePort{read: func(offset uint8) uint8 {
		if offset == 0 {
			return 0x03
		}
		return 0x55
	}, write: func(offset, value uint8) { lastWrite = value }})

	m.LoadRaw(0x0100, []byte{
		0x86, 0x99, // LDA #$99
		0xB7, 0xE0, 0x01, // STA $E001
		0xB6, 0xE0, 0x01, // LDA $E001
	})
	c.Step()
	c.Step()
	if lastWrite != 0x99 {
		t.Errorf("UART write = %#x, want 0x99", lastWrite)
	}
	c.Step()
	if c.A != 0x55 {
		t.Errorf("A after reading I/O page = %#x, want 0x55", c.A)
	}
}

type fakePort struct {
	read  func(uint8) uint8
	write func(uint8, uint8)
}

func (f fakePort) ReadPort(offset uint8) uint8       { return f.read(offset) }
func (f fakePort) WritePort(offset uint8, v uint8)   { f.write(offset, v) }
