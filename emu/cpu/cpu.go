/*
   Fetch/execute loop and interrupt entry for the Motorola 6809
   interpreter.

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
	"context"

	op "github.com/hcornwell/m6809/emu/opcodemap"
)

// buildTables populates the three dispatch tables once, at
// construction time.
func (c *Core) buildTables() {
	c.installAccumFamilies()
	c.installPage2Accum()
	c.installPage3Accum()
	c.installRMW()
	c.installBranches()
	c.installStack()
	c.installSystem()
}

// checkAttention is the single point where anything posted from
// outside the CPU goroutine (PostIRQ, PostFIRQ, PostEscape, SetTracing)
// is actually observed and acted on. It is cheap to call every
// instruction when nothing is pending, since it short-circuits on the
// attention flag. It returns true if an interrupt was taken, in which
// case the caller should treat this as the instruction boundary and
// not also fetch an opcode this Step.
func (c *Core) checkAttention() bool {
	c.mu.Lock()
	att := c.attention
	c.mu.Unlock()
	if !att {
		return false
	}

	c.mu.Lock()
	esc := c.escape
	c.escape = false
	trace := c.tracing
	lo, hi := c.traceLo, c.traceHi
	c.mu.Unlock()

	if esc && c.EscapeHandler != nil {
		c.EscapeHandler(c)
	}
	if trace && c.PC >= lo && c.PC <= hi && c.TraceHandler != nil {
		c.TraceHandler(c, c.PC)
	}

	taken := c.checkInterrupts()

	c.mu.Lock()
	c.attention = c.tracing || c.escape || c.irq != IRQNone
	c.mu.Unlock()

	return taken
}

// checkInterrupts services a pending IRQ or FIRQ if it is not masked
// by CC, pushing the appropriate stack frame and redirecting PC to the
// handler's vector. It returns whether an interrupt was taken.
func (c *Core) checkInterrupts() bool {
	c.mu.Lock()
	pending := c.irq
	c.mu.Unlock()

	switch pending {
	case IRQFIRQ:
		if !c.flag(CCFIRQMask) {
			c.enterInterrupt(true, op.VecFIRQ)
			return true
		}
	case IRQIRQ:
		if !c.flag(CCIRQMask) {
			c.enterInterrupt(false, op.VecIRQ)
			return true
		}
	}
	return false
}

// enterInterrupt pushes the stack frame (full for IRQ, minimal for
// FIRQ, already-pushed-by-CWAI for either if cwaiPending), sets the
// appropriate CC mask bits, and jumps PC to vector.
func (c *Core) enterInterrupt(isFIRQ bool, vector uint16) {
	c.mu.Lock()
	cwaiPending := c.cwaiPending
	c.mu.Unlock()

	switch {
	case cwaiPending:
		// CWAI already pushed a full frame before waiting.
	case isFIRQ:
		c.setFlag(CCEntire, false)
		c.S -= 2
		c.Mem.WriteWord(c.S, c.PC)
		c.S--
		c.Mem.WriteByte(c.S, c.CC)
	default:
		c.pushFullFrame()
	}

	c.setFlag(CCIRQMask, true)
	if isFIRQ {
		c.setFlag(CCFIRQMask, true)
	}
	c.PC = c.Mem.ReadWord(vector)

	c.mu.Lock()
	c.irq = IRQNone
	c.state = StateRunning
	c.cwaiPending = false
	c.mu.Unlock()
}

// Step executes exactly one instruction, or services a pending
// interrupt, or (if waiting on SYNC/CWAI with nothing pending) does
// nothing. PC, the registers, and memory are only ever touched from
// the goroutine that calls Step.
func (c *Core) Step() {
	if c.checkAttention() {
		return
	}

	if c.State() == StateWaiting {
		return
	}

	opcode := c.fetch8()
	tbl := c.table[:]
	prefix := uint8(0)

	switch opcode {
	case op.OpPage2:
		prefix = 1
		opcode = c.fetch8()
		tbl = c.table2[:]
	case op.OpPage3:
		prefix = 2
		opcode = c.fetch8()
		tbl = c.table3[:]
	}

	h := tbl[opcode]
	if h == nil {
		// Undefined opcode: behave as a no-op rather than faulting, since
		// there is no host debugger contract requiring a trap here.
		return
	}
	h(c, &stepInfo{opcode: opcode, prefix: prefix})
}

// Run steps the core until ctx is cancelled.
func (c *Core) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			c.Step()
		}
	}
}
