package memory

/*
 * m6809 - 64KiB address space with I/O page diversion.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import "testing"

// fakePort is a trivial IOPort recording the last access, for tests
// that need to confirm the I/O page actually diverts there.
type fakePort struct {
	reads  []uint8
	writes map[uint8]uint8
}

func newFakePort() *fakePort {
	return &fakePort{writes: make(map[uint8]uint8)}
}

func (p *fakePort) ReadPort(offset uint8) uint8 {
	p.reads = append(p.reads, offset)
	return 0xAA
}

func (p *fakePort) WritePort(offset uint8, value uint8) {
	p.writes[offset] = value
}

func TestReadWriteByte(t *testing.T) {
	m := New()
	for i := range uint32(256) {
		m.WriteByte(uint16(i), uint8(i))
	}
	for i := range uint32(256) {
		r := m.ReadByte(uint16(i))
		if r != uint8(i) {
			t.Errorf("ReadByte(%d) = %#x, want %#x", i, r, uint8(i))
		}
	}
}

func TestWriteWordReadWord(t *testing.T) {
	m := New()
	m.WriteWord(0x1000, 0xBEEF)
	if r := m.ReadWord(0x1000); r != 0xBEEF {
		t.Errorf("ReadWord = %#x, want 0xBEEF", r)
	}
	if r := m.ReadByte(0x1000); r != 0xBE {
		t.Errorf("high byte = %#x, want 0xBE", r)
	}
	if r := m.ReadByte(0x1001); r != 0xEF {
		t.Errorf("low byte = %#x, want 0xEF", r)
	}
}

func TestROMRegionRejectsWrites(t *testing.T) {
	m := New()
	m.LoadROM(0x8000, []byte{0x12, 0x34})
	m.WriteByte(0x8000, 0xFF)
	if r := m.ReadByte(0x8000); r != 0x12 {
		t.Errorf("write to ROM region took effect: got %#x, want 0x12 unchanged", r)
	}
	if r := m.ReadByte(0x8001); r != 0x34 {
		t.Errorf("ReadByte(0x8001) = %#x, want 0x34", r)
	}
}

func TestLoadRawIgnoresWriteProtect(t *testing.T) {
	m := New()
	m.LoadRaw(0x8000, []byte{0x99})
	if r := m.ReadByte(0x8000); r != 0x99 {
		t.Errorf("LoadRaw into ROM region = %#x, want 0x99", r)
	}
}

func TestIOPageDiversion(t *testing.T) {
	m := New()
	port := newFakePort()
	m.SetPort(port)

	r := m.ReadByte(m.IOPage + 0x05)
	if r != 0xAA {
		t.Errorf("ReadByte(IOPage+5) = %#x, want 0xAA", r)
	}
	if len(port.reads) != 1 || port.reads[0] != 0x05 {
		t.Errorf("port saw reads %v, want [5]", port.reads)
	}

	m.WriteByte(m.IOPage+0x10, 0x42)
	if v, ok := port.writes[0x10]; !ok || v != 0x42 {
		t.Errorf("port.writes[0x10] = %#x, ok=%v, want 0x42", v, ok)
	}
}

func TestIOPageWithNoPortReturnsZero(t *testing.T) {
	m := New()
	if r := m.ReadByte(m.IOPage); r != 0 {
		t.Errorf("ReadByte with no port attached = %#x, want 0", r)
	}
}

func TestBytesSnapshot(t *testing.T) {
	m := New()
	for i := uint16(0); i < 16; i++ {
		m.WriteByte(0x0100+i, uint8(i))
	}
	snap := m.Bytes(0x0100, 0x0110)
	if len(snap) != 16 {
		t.Fatalf("len(snap) = %d, want 16", len(snap))
	}
	for i, b := range snap {
		if b != uint8(i) {
			t.Errorf("snap[%d] = %#x, want %#x", i, b, i)
		}
	}
	// Mutating the snapshot must not affect memory.
	snap[0] = 0xFF
	if r := m.ReadByte(0x0100); r != 0 {
		t.Errorf("Bytes() returned an aliased slice; ReadByte(0x0100) = %#x, want 0", r)
	}
}

func TestBytesClampsRange(t *testing.T) {
	m := New()
	if snap := m.Bytes(-10, 5); len(snap) != 5 {
		t.Errorf("len(snap) = %d, want 5 (lo clamped to 0)", len(snap))
	}
	if snap := m.Bytes(0xFFF0, 0x20000); len(snap) != 0x10 {
		t.Errorf("len(snap) = %d, want 16 (hi clamped to 0x10000)", len(snap))
	}
	if snap := m.Bytes(100, 50); snap != nil {
		t.Errorf("Bytes with lo >= hi = %v, want nil", snap)
	}
}
