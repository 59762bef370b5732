/*
m6809 I/O bridge interfaces.

	Copyright (c) 2024, Richard Cornwell

	Permission is hereby granted, free of charge, to any person obtaining a
	copy of this software and associated documentation files (the "Software"),
	to deal in the Software without restriction, including without limitation
	the rights to use, copy, modify, merge, publish, distribute, sublicense,
	and/or sell copies of the Software, and to permit persons to whom the
	Software is furnished to do so, subject to the following conditions:

	The above copyright notice and this permission notice shall be included in
	all copies or substantial portions of the Software.

	THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
	IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
	FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
	THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
	IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
	CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/
package device

// Device is implemented by anything mapped into the CPU's I/O page.
// Unlike a channel-attached peripheral, a Device here sees only the
// two offsets the I/O bridge contract defines (status/data), so the
// interface is deliberately narrow.
type Device interface {
	ReadPort(offset uint8) uint8
	WritePort(offset uint8, value uint8)
	Shutdown()
}

// Offsets within the 256-byte I/O page.
const (
	PortStatus uint8 = 0x00 // status byte: bit1 always set, bit0 = byte ready
	PortData   uint8 = 0x01 // read consumes pending byte; write emits a byte
)

// Status bits returned from PortStatus.
const (
	StatusPresent uint8 = 0x02 // always set
	StatusReady   uint8 = 0x01 // a received byte is waiting
)
