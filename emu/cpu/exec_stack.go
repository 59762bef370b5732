/*
   PSHS/PULS/PSHU/PULU, TFR/EXG, and ABX.

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

// pshHandler pushes registers selected by the postbyte mask onto the
// stack sp points at, in PC,other,Y,X,DP,B,A,CC order, where other is
// U for PSHS and S for PSHU.
func pshHandler(sp func(c *Core) *uint16, other reg16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		mask := c.fetch8()
		s := sp(c)
		if mask&0x80 != 0 {
			*s -= 2
			c.Mem.WriteWord(*s, c.PC)
		}
		if mask&0x40 != 0 {
			*s -= 2
			c.Mem.WriteWord(*s, other.get(c))
		}
		if mask&0x20 != 0 {
			*s -= 2
			c.Mem.WriteWord(*s, c.Y)
		}
		if mask&0x10 != 0 {
			*s -= 2
			c.Mem.WriteWord(*s, c.X)
		}
		if mask&0x08 != 0 {
			*s--
			c.Mem.WriteByte(*s, c.DP)
		}
		if mask&0x04 != 0 {
			*s--
			c.Mem.WriteByte(*s, c.B)
		}
		if mask&0x02 != 0 {
			*s--
			c.Mem.WriteByte(*s, c.A)
		}
		if mask&0x01 != 0 {
			*s--
			c.Mem.WriteByte(*s, c.CC)
		}
	}
}

// pulHandler is the mirror pop, in CC,A,B,DP,X,Y,other,PC order.
func pulHandler(sp func(c *Core) *uint16, other reg16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		mask := c.fetch8()
		s := sp(c)
		if mask&0x01 != 0 {
			c.CC = c.Mem.ReadByte(*s)
			*s++
		}
		if mask&0x02 != 0 {
			c.A = c.Mem.ReadByte(*s)
			*s++
		}
		if mask&0x04 != 0 {
			c.B = c.Mem.ReadByte(*s)
			*s++
		}
		if mask&0x08 != 0 {
			c.DP = c.Mem.ReadByte(*s)
			*s++
		}
		if mask&0x10 != 0 {
			c.X = c.Mem.ReadWord(*s)
			*s += 2
		}
		if mask&0x20 != 0 {
			c.Y = c.Mem.ReadWord(*s)
			*s += 2
		}
		if mask&0x40 != 0 {
			other.set(c, c.Mem.ReadWord(*s))
			*s += 2
		}
		if mask&0x80 != 0 {
			c.PC = c.Mem.ReadWord(*s)
			*s += 2
		}
	}
}

func sPtr(c *Core) *uint16 { return &c.S }
func uPtr(c *Core) *uint16 { return &c.U }

func (c *Core) installStack() {
	c.table[op.OpPSHS] = pshHandler(sPtr, regU)
	c.table[op.OpPULS] = pulHandler(sPtr, regU)
	c.table[op.OpPSHU] = pshHandler(uPtr, regS)
	c.table[op.OpPULU] = pulHandler(uPtr, regS)

	c.table[op.OpABX] = func(c *Core, _ *stepInfo) {
		c.X += uint16(c.B)
	}

	c.table[op.OpTFR] = func(c *Core, _ *stepInfo) {
		pb := c.fetch8()
		regSetWide(c, pb&0xF, regGetWide(c, pb>>4))
	}
	c.table[op.OpEXG] = func(c *Core, _ *stepInfo) {
		pb := c.fetch8()
		r1, r2 := pb>>4, pb&0xF
		v1, v2 := regGetWide(c, r1), regGetWide(c, r2)
		regSetWide(c, r1, v2)
		regSetWide(c, r2, v1)
	}

	c.table[op.OpRTS] = func(c *Core, _ *stepInfo) {
		c.PC = c.Mem.ReadWord(c.S)
		c.S += 2
	}
}

// regGetWide/regSetWide implement TFR/EXG's register-select nibble,
// widening 8-bit registers by replication (matching the behavior real
// 6809 hardware exhibits when an 8-bit register feeds a 16-bit one).
func regGetWide(c *Core, code uint8) uint16 {
	switch code & 0xF {
	case op.RegD:
		return c.D()
	case op.RegX:
		return c.X
	case op.RegY:
		return c.Y
	case op.RegU:
		return c.U
	case op.RegS:
		return c.S
	case op.RegPC:
		return c.PC
	case op.RegA:
		v := uint16(c.A)
		return v<<8 | v
	case op.RegB:
		v := uint16(c.B)
		return v<<8 | v
	case op.RegCC:
		v := uint16(c.CC)
		return v<<8 | v
	case op.RegDP:
		v := uint16(c.DP)
		return v<<8 | v
	default:
		return 0xFFFF
	}
}

func regSetWide(c *Core, code uint8, v uint16) {
	switch code & 0xF {
	case op.RegD:
		c.SetD(v)
	case op.RegX:
		c.X = v
	case op.RegY:
		c.Y = v
	case op.RegU:
		c.U = v
	case op.RegS:
		c.S = v
	case op.RegPC:
		c.PC = v
	case op.RegA:
		c.A = uint8(v)
	case op.RegB:
		c.B = uint8(v)
	case op.RegCC:
		c.CC = uint8(v)
	case op.RegDP:
		c.DP = uint8(v)
	}
}
