package device

/*
 * m6809 - Memory-mapped UART.
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

import (
	"bufio"
	"io"
	"sync"
)

// UART is a single memory-mapped serial port backed by an io.Reader and
// an io.Writer. A background goroutine drains in from the reader into a
// one-byte latch; the CPU goroutine consumes it through ReadPort. This
// split exists because the host side (stdio, a TCP connection) must not
// block the CPU's fetch/execute loop waiting on input.
type UART struct {
	mu      sync.Mutex
	pending uint8
	hasByte bool
	out     io.Writer
	closeCh chan struct{}
}

// NewUART starts a UART reading from in and writing to out. Shutdown on
// the returned UART stops the reader goroutine.
func NewUART(in io.Reader, out io.Writer) *UART {
	u := &UART{out: out, closeCh: make(chan struct{})}
	go u.readLoop(in)
	return u
}

func (u *UART) readLoop(in io.Reader) {
	r := bufio.NewReader(in)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		u.mu.Lock()
		u.pending = b
		u.hasByte = true
		u.mu.Unlock()
		select {
		case <-u.closeCh:
			return
		default:
		}
	}
}

// ReadPort implements device.Device.
func (u *UART) ReadPort(offset uint8) uint8 {
	switch offset {
	case PortStatus:
		u.mu.Lock()
		defer u.mu.Unlock()
		status := StatusPresent
		if u.hasByte {
			status |= StatusReady
		}
		return status
	case PortData:
		u.mu.Lock()
		defer u.mu.Unlock()
		if !u.hasByte {
			return 0
		}
		b := u.pending
		u.hasByte = false
		return b
	default:
		return 0
	}
}

// WritePort implements device.Device.
func (u *UART) WritePort(offset uint8, value uint8) {
	if offset != PortData || u.out == nil {
		return
	}
	_, _ = u.out.Write([]byte{value})
}

// Shutdown stops the reader goroutine; the goroutine notices after its
// next byte is read or when the reader returns an error. It does not
// close the underlying reader/writer, which callers own.
func (u *UART) Shutdown() {
	close(u.closeCh)
}
