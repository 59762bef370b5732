/*
   CPU definitions for the Motorola 6809 interpreter.

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

package cpu

import (
	"log/slog"
	"sync"

	mem "github.com/hcornwell/m6809/emu/memory"
	op "github.com/hcornwell/m6809/emu/opcodemap"
)

// Condition code bits.
const (
	CCCarry     uint8 = 0x01
	CCOverflow  uint8 = 0x02
	CCZero      uint8 = 0x04
	CCNegative  uint8 = 0x08
	CCIRQMask   uint8 = 0x10
	CCHalfCarry uint8 = 0x20
	CCFIRQMask  uint8 = 0x40
	CCEntire    uint8 = 0x80
)

// Interrupt request values for the irq latch.
const (
	IRQNone = 0
	IRQIRQ  = 1
	IRQFIRQ = 2
)

// Run state.
const (
	StateRunning = 0
	StateWaiting = 1
)

// stepInfo is the decode record for the instruction currently being
// executed.
type stepInfo struct {
	opcode uint8
	prefix uint8 // 0 = none, 1 = page2 (0x10), 2 = page3 (0x11)
	eaddr  uint16
	hasEA  bool
}

// Core is the explicit CPU state the interpreter owns: callers
// construct and hold a value rather than reaching into package
// globals.
type Core struct {
	// 16-bit registers.
	X, Y, U, S, PC uint16
	// 8-bit registers. A and B are independent storage; D is computed
	// from them on demand rather than aliased in memory.
	A, B, DP, CC uint8

	Mem *mem.Memory

	// Interrupt latches, written asynchronously by the host/timer and
	// observed only at instruction boundaries.
	mu        sync.Mutex
	irq       int
	attention bool
	escape    bool
	tracing   bool
	traceLo   uint16
	traceHi   uint16

	state       int // StateRunning or StateWaiting
	cwaiPending bool // true when waiting was entered via CWAI (frame already on stack)

	// EscapeHandler is invoked at the next instruction boundary after
	// PostEscape; it may reset PC (e.g. to the reset vector) or leave it
	// alone. TraceHandler is invoked once per traced instruction.
	EscapeHandler func(*Core)
	TraceHandler  func(core *Core, pc uint16)

	table [256]func(*Core, *stepInfo)
	table2 [256]func(*Core, *stepInfo)
	table3 [256]func(*Core, *stepInfo)

	Log *slog.Logger
}

// New constructs a Core wired to mem, with PC loaded from the reset
// vector.
func New(m *mem.Memory, log *slog.Logger) *Core {
	if log == nil {
		log = slog.Default()
	}
	c := &Core{Mem: m, Log: log}
	c.buildTables()
	c.Reset()
	return c
}

// Reset loads PC from the reset vector and clears registers and
// latches.
func (c *Core) Reset() {
	c.X, c.Y, c.U, c.S = 0, 0, 0, 0
	c.A, c.B, c.DP, c.CC = 0, 0, 0, 0
	c.irq = IRQNone
	c.attention = false
	c.escape = false
	c.state = StateRunning
	c.PC = c.Mem.ReadWord(op.VecReset)
}

// D returns the composed 16-bit D register (A high, B low).
func (c *Core) D() uint16 {
	return uint16(c.A)<<8 | uint16(c.B)
}

// SetD stores a 16-bit value through the A/B pair.
func (c *Core) SetD(v uint16) {
	c.A = uint8(v >> 8)
	c.B = uint8(v)
}

// State reports StateRunning or StateWaiting.
func (c *Core) State() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// --- Latch API: the only way anything outside the CPU goroutine may
// touch Core state. ---

// PostIRQ marks an IRQ pending and wakes the core from SYNC/CWAI.
func (c *Core) PostIRQ() {
	c.mu.Lock()
	c.irq = IRQIRQ
	c.attention = true
	c.state = StateRunning
	c.mu.Unlock()
}

// PostFIRQ marks a FIRQ pending (called by the 20ms timer) and wakes the
// core from SYNC/CWAI.
func (c *Core) PostFIRQ() {
	c.mu.Lock()
	c.irq = IRQFIRQ
	c.attention = true
	c.state = StateRunning
	c.mu.Unlock()
}

// PostEscape requests the escape handler run at the next boundary.
func (c *Core) PostEscape() {
	c.mu.Lock()
	c.escape = true
	c.attention = true
	c.mu.Unlock()
}

// SetTracing enables or disables trace-record emission for PC in
// [lo, hi].
func (c *Core) SetTracing(on bool, lo, hi uint16) {
	c.mu.Lock()
	c.tracing = on
	c.traceLo, c.traceHi = lo, hi
	if on {
		c.attention = true
	}
	c.mu.Unlock()
}
