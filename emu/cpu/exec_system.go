/*
   System and miscellaneous opcodes: NOP, SYNC, CWAI, DAA, ORCC, ANDCC,
   SEX, MUL, SWI/SWI2/SWI3, RTI.

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
	op "github.com/hcornwell/m6809/emu/opcodemap"
)

// pushFullFrame pushes PC,U,Y,X,DP,B,A,CC onto S, setting CC.E first so
// the saved copy on the stack reflects a full frame.
func (c *Core) pushFullFrame() {
	c.setFlag(CCEntire, true)
	c.S -= 2
	c.Mem.WriteWord(c.S, c.PC)
	c.S -= 2
	c.Mem.WriteWord(c.S, c.U)
	c.S -= 2
	c.Mem.WriteWord(c.S, c.Y)
	c.S -= 2
	c.Mem.WriteWord(c.S, c.X)
	c.S--
	c.Mem.WriteByte(c.S, c.DP)
	c.S--
	c.Mem.WriteByte(c.S, c.B)
	c.S--
	c.Mem.WriteByte(c.S, c.A)
	c.S--
	c.Mem.WriteByte(c.S, c.CC)
}

func (c *Core) installSystem() {
	c.table[op.OpNOP] = func(c *Core, _ *stepInfo) {}

	c.table[op.OpSYNC] = func(c *Core, _ *stepInfo) {
		c.mu.Lock()
		c.state = StateWaiting
		c.cwaiPending = false
		c.mu.Unlock()
	}

	c.table[op.OpCWAI] = func(c *Core, _ *stepInfo) {
		mask := c.fetch8()
		c.CC &= mask
		c.pushFullFrame()
		c.mu.Lock()
		c.state = StateWaiting
		c.cwaiPending = true
		c.mu.Unlock()
	}

	c.table[op.OpDAA] = func(c *Core, _ *stepInfo) { c.daa() }

	c.table[op.OpORCC] = func(c *Core, _ *stepInfo) {
		c.CC |= c.fetch8()
	}
	c.table[op.OpANDCC] = func(c *Core, _ *stepInfo) {
		c.CC &= c.fetch8()
	}

	c.table[op.OpSEX] = func(c *Core, _ *stepInfo) {
		if c.B&0x80 != 0 {
			c.A = 0xFF
		} else {
			c.A = 0
		}
		c.testNZ8(c.B)
	}

	c.table[op.OpMUL] = func(c *Core, _ *stepInfo) {
		prod := uint16(c.A) * uint16(c.B)
		c.SetD(prod)
		c.setFlag(CCZero, prod == 0)
		c.setFlag(CCCarry, prod&0x80 != 0)
	}

	c.table[op.OpSWI] = func(c *Core, _ *stepInfo) {
		c.pushFullFrame()
		c.setFlag(CCIRQMask, true)
		c.setFlag(CCFIRQMask, true)
		c.PC = c.Mem.ReadWord(op.VecSWI)
	}
	c.table2[op.OpSWI2] = func(c *Core, _ *stepInfo) {
		c.pushFullFrame()
		c.PC = c.Mem.ReadWord(op.VecSWI2)
	}
	c.table3[op.OpSWI3] = func(c *Core, _ *stepInfo) {
		c.pushFullFrame()
		c.PC = c.Mem.ReadWord(op.VecSWI3)
	}

	c.table[op.OpRTI] = func(c *Core, _ *stepInfo) {
		c.CC = c.Mem.ReadByte(c.S)
		c.S++
		if c.flag(CCEntire) {
			c.A = c.Mem.ReadByte(c.S)
			c.S++
			c.B = c.Mem.ReadByte(c.S)
			c.S++
			c.DP = c.Mem.ReadByte(c.S)
			c.S++
			c.X = c.Mem.ReadWord(c.S)
			c.S += 2
			c.Y = c.Mem.ReadWord(c.S)
			c.S += 2
			c.U = c.Mem.ReadWord(c.S)
			c.S += 2
		}
		c.PC = c.Mem.ReadWord(c.S)
		c.S += 2
	}
}
