/*
   Effective-address resolution for the Motorola 6809 interpreter.

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

// fetch8 returns the byte at PC and advances PC by one.
func (c *Core) fetch8() uint8 {
	b := c.Mem.ReadByte(c.PC)
	c.PC++
	return b
}

// fetch16 returns the big-endian word at PC and advances PC by two.
func (c *Core) fetch16() uint16 {
	w := c.Mem.ReadWord(c.PC)
	c.PC += 2
	return w
}

// indexedRegGet returns one of X/Y/U/S selected by the 2-bit postbyte
// register field.
func (c *Core) indexedRegGet(sel uint8) uint16 {
	switch sel & 0x3 {
	case 0:
		return c.X
	case 1:
		return c.Y
	case 2:
		return c.U
	default:
		return c.S
	}
}

func (c *Core) indexedRegSet(sel uint8, v uint16) {
	switch sel & 0x3 {
	case 0:
		c.X = v
	case 1:
		c.Y = v
	case 2:
		c.U = v
	default:
		c.S = v
	}
}

// resolveDirect forms a direct-page address from DP and the next byte.
func (c *Core) resolveDirect() uint16 {
	return uint16(c.DP)<<8 | uint16(c.fetch8())
}

// resolveExtended reads a 16-bit absolute address.
func (c *Core) resolveExtended() uint16 {
	return c.fetch16()
}

// resolveIndexed decodes an indexed-mode postbyte at PC, advancing PC
// past the postbyte and any extension bytes, and returns the effective
// address. Register auto-increment/decrement happens as a side effect,
// exactly as the postbyte specifies.
func (c *Core) resolveIndexed() uint16 {
	pb := c.fetch8()

	if pb&0x80 == 0 {
		// 5-bit constant offset, sign-extended, no indirection.
		reg := (pb >> 5) & 0x3
		off := int8(pb<<3) >> 3
		return c.indexedRegGet(reg) + uint16(int16(off))
	}

	if op.IllegalPostbytes[pb] {
		return 0
	}

	reg := (pb >> 5) & 0x3
	indirect := pb&0x10 != 0
	mode := pb & 0x0F

	var ea uint16
	switch mode {
	case 0x0: // ,R+
		ea = c.indexedRegGet(reg)
		c.indexedRegSet(reg, ea+1)
	case 0x1: // ,R++
		ea = c.indexedRegGet(reg)
		c.indexedRegSet(reg, ea+2)
	case 0x2: // ,-R
		ea = c.indexedRegGet(reg) - 1
		c.indexedRegSet(reg, ea)
	case 0x3: // ,--R
		ea = c.indexedRegGet(reg) - 2
		c.indexedRegSet(reg, ea)
	case 0x4: // ,R
		ea = c.indexedRegGet(reg)
	case 0x5: // B,R
		ea = c.indexedRegGet(reg) + uint16(int16(int8(c.B)))
	case 0x6: // A,R
		ea = c.indexedRegGet(reg) + uint16(int16(int8(c.A)))
	case 0x8: // ,R + 8-bit offset
		off := int8(c.fetch8())
		ea = c.indexedRegGet(reg) + uint16(int16(off))
	case 0x9: // ,R + 16-bit offset
		off := int16(c.fetch16())
		ea = c.indexedRegGet(reg) + uint16(off)
	case 0xB: // D,R
		ea = c.indexedRegGet(reg) + c.D()
	case 0xC: // ,PC + 8-bit offset
		off := int8(c.fetch8())
		ea = c.PC + uint16(int16(off))
	case 0xD: // ,PC + 16-bit offset
		off := int16(c.fetch16())
		ea = c.PC + uint16(off)
	case 0xF: // [,address]: extended indirect, always dereferenced below
		ea = c.fetch16()
		indirect = true
	default:
		ea = 0
	}

	if indirect {
		ea = c.Mem.ReadWord(ea)
	}
	return ea
}
