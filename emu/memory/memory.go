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

// IOPort is the narrow interface memory diverts I/O-page accesses to.
// ReadPort/WritePort see only the low byte of the address within the
// page (0x00-0xFF).
type IOPort interface {
	ReadPort(offset uint8) uint8
	WritePort(offset uint8, value uint8)
}

// DefaultIOPage is the default base address of the 256-byte I/O window.
const DefaultIOPage uint16 = 0xE000

// Memory is a flat 64KiB 6809 address space. Addresses inside
// [IOPage, IOPage+0x100) are never backed by mem; they are diverted to
// Port. Writes to addresses with bit 15 set (the upper 32KiB, treated as
// ROM) are silently ignored, matching the ROM image layout.
type Memory struct {
	mem    [0x10000]uint8
	IOPage uint16
	Port   IOPort
}

// New returns a Memory with the default I/O page and no attached port.
// Attach a port with SetPort before running a program that touches it.
func New() *Memory {
	return &Memory{IOPage: DefaultIOPage}
}

// SetPort attaches (or replaces) the I/O bridge.
func (m *Memory) SetPort(port IOPort) {
	m.Port = port
}

func (m *Memory) inIOPage(addr uint16) bool {
	return addr >= m.IOPage && addr < m.IOPage+0x100
}

// ReadByte returns the byte at addr, diverting to the I/O bridge if addr
// falls in the I/O page.
func (m *Memory) ReadByte(addr uint16) uint8 {
	if m.inIOPage(addr) {
		if m.Port != nil {
			return m.Port.ReadPort(uint8(addr))
		}
		return 0
	}
	return m.mem[addr]
}

// WriteByte stores value at addr. Writes to the I/O page divert to the
// bridge; writes to the upper half of the address space (bit 15 set,
// the ROM region) are silently ignored.
func (m *Memory) WriteByte(addr uint16, value uint8) {
	if m.inIOPage(addr) {
		if m.Port != nil {
			m.Port.WritePort(uint8(addr), value)
		}
		return
	}
	if addr&0x8000 != 0 {
		return
	}
	m.mem[addr] = value
}

// ReadWord reads a big-endian word, wrapping at 0xFFFF without fault.
func (m *Memory) ReadWord(addr uint16) uint16 {
	hi := m.ReadByte(addr)
	lo := m.ReadByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// WriteWord stores a big-endian word, wrapping at 0xFFFF without fault.
func (m *Memory) WriteWord(addr uint16, value uint16) {
	m.WriteByte(addr, uint8(value>>8))
	m.WriteByte(addr+1, uint8(value))
}

// LoadROM copies data into the ROM region starting at base, bypassing
// the write-suppression rule used during normal execution (this is
// initial image loading, not a CPU-visible store).
func (m *Memory) LoadROM(base uint16, data []byte) {
	for i, b := range data {
		addr := int(base) + i
		if addr > 0xFFFF {
			break
		}
		m.mem[addr] = b
	}
}

// LoadRaw copies data starting at base exactly as LoadROM does, used to
// seed RAM/program images (e.g. the assembler's binary output) prior to
// running the CPU.
func (m *Memory) LoadRaw(base uint16, data []byte) {
	for i, b := range data {
		addr := int(base) + i
		if addr > 0xFFFF {
			break
		}
		m.mem[addr] = b
	}
}

// Bytes returns a read-only snapshot slice for the given range, used by
// the operator console's examine command and by tests. hi is exclusive.
func (m *Memory) Bytes(lo, hi int) []byte {
	if lo < 0 {
		lo = 0
	}
	if hi > 0x10000 {
		hi = 0x10000
	}
	if lo >= hi {
		return nil
	}
	out := make([]byte, hi-lo)
	copy(out, m.mem[lo:hi])
	return out
}
