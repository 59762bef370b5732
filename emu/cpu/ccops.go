/*
   Condition-code arithmetic for the Motorola 6809 interpreter.

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

func (c *Core) setFlag(bit uint8, v bool) {
	if v {
		c.CC |= bit
	} else {
		c.CC &^= bit
	}
}

func (c *Core) flag(bit uint8) bool {
	return c.CC&bit != 0
}

func (c *Core) testNZ8(v uint8) {
	c.setFlag(CCZero, v == 0)
	c.setFlag(CCNegative, v&0x80 != 0)
}

func (c *Core) testNZ16(v uint16) {
	c.setFlag(CCZero, v == 0)
	c.setFlag(CCNegative, v&0x8000 != 0)
}

// addc8 computes a+b(+carryIn), setting H, N, Z, V, C. Used by
// ADD/ADC, the only 8-bit operations that touch the half-carry flag.
func (c *Core) addc8(a, b uint8, carryIn bool) uint8 {
	var cin uint16
	if carryIn {
		cin = 1
	}
	wide := uint16(a) + uint16(b) + cin
	res := uint8(wide)
	c.setFlag(CCHalfCarry, (a&0xF)+(b&0xF)+uint8(cin) > 0xF)
	c.setFlag(CCCarry, wide > 0xFF)
	c.setFlag(CCOverflow, (a^res)&(b^res)&0x80 != 0)
	c.testNZ8(res)
	return res
}

// sub8 computes a-b(-borrowIn), setting N, Z, V, C. H is left
// unchanged, matching SUB/SBC/CMP on real hardware.
func (c *Core) sub8(a, b uint8, borrowIn bool) uint8 {
	var bin uint16
	if borrowIn {
		bin = 1
	}
	wide := uint16(a) - uint16(b) - bin
	res := uint8(wide)
	c.setFlag(CCCarry, uint16(a) < uint16(b)+bin)
	c.setFlag(CCOverflow, (a^b)&(a^res)&0x80 != 0)
	c.testNZ8(res)
	return res
}

// add16 computes a+b, setting N, Z, V, C (16-bit ADDD/LEAS-style add,
// never touches H).
func (c *Core) add16(a, b uint16) uint16 {
	wide := uint32(a) + uint32(b)
	res := uint16(wide)
	c.setFlag(CCCarry, wide > 0xFFFF)
	c.setFlag(CCOverflow, (a^res)&(b^res)&0x8000 != 0)
	c.testNZ16(res)
	return res
}

// sub16 computes a-b, setting N, Z, V, C.
func (c *Core) sub16(a, b uint16) uint16 {
	wide := uint32(a) - uint32(b)
	res := uint16(wide)
	c.setFlag(CCCarry, uint32(a) < uint32(b))
	c.setFlag(CCOverflow, (a^b)&(a^res)&0x8000 != 0)
	c.testNZ16(res)
	return res
}

// and8/or8/eor8 apply a logical op, clear V, and set N/Z.
func (c *Core) and8(a, b uint8) uint8 {
	res := a & b
	c.setFlag(CCOverflow, false)
	c.testNZ8(res)
	return res
}

func (c *Core) or8(a, b uint8) uint8 {
	res := a | b
	c.setFlag(CCOverflow, false)
	c.testNZ8(res)
	return res
}

func (c *Core) eor8(a, b uint8) uint8 {
	res := a ^ b
	c.setFlag(CCOverflow, false)
	c.testNZ8(res)
	return res
}

// com8 is the one's complement; carry is always set, V always clear.
func (c *Core) com8(v uint8) uint8 {
	res := ^v
	c.setFlag(CCCarry, true)
	c.setFlag(CCOverflow, false)
	c.testNZ8(res)
	return res
}

// neg8 is the two's complement; sets N, Z, V, C per the usual 0-v rule.
func (c *Core) neg8(v uint8) uint8 {
	res := c.sub8(0, v, false)
	return res
}

// inc8/dec8 affect N, Z, V only; C is left unchanged.
func (c *Core) inc8(v uint8) uint8 {
	res := v + 1
	c.setFlag(CCOverflow, v == 0x7F)
	c.testNZ8(res)
	return res
}

func (c *Core) dec8(v uint8) uint8 {
	res := v - 1
	c.setFlag(CCOverflow, v == 0x80)
	c.testNZ8(res)
	return res
}

// asr8 arithmetic-shifts right, preserving bit 7.
func (c *Core) asr8(v uint8) uint8 {
	c.setFlag(CCCarry, v&0x01 != 0)
	res := (v >> 1) | (v & 0x80)
	c.testNZ8(res)
	return res
}

// lsr8 logical-shifts right.
func (c *Core) lsr8(v uint8) uint8 {
	c.setFlag(CCCarry, v&0x01 != 0)
	res := v >> 1
	c.testNZ8(res)
	return res
}

// asl8 (= lsl8) shifts left into carry; V reflects a sign change.
func (c *Core) asl8(v uint8) uint8 {
	c.setFlag(CCCarry, v&0x80 != 0)
	res := v << 1
	c.setFlag(CCOverflow, (v^res)&0x80 != 0)
	c.testNZ8(res)
	return res
}

// rol8 rotates left through carry.
func (c *Core) rol8(v uint8) uint8 {
	oldCarry := c.flag(CCCarry)
	c.setFlag(CCCarry, v&0x80 != 0)
	res := v << 1
	if oldCarry {
		res |= 0x01
	}
	c.setFlag(CCOverflow, (v^res)&0x80 != 0)
	c.testNZ8(res)
	return res
}

// ror8 rotates right through carry.
func (c *Core) ror8(v uint8) uint8 {
	oldCarry := c.flag(CCCarry)
	c.setFlag(CCCarry, v&0x01 != 0)
	res := v >> 1
	if oldCarry {
		res |= 0x80
	}
	c.testNZ8(res)
	return res
}

// daa adjusts A after BCD addition, per the standard half-carry/carry
// nibble-correction table.
func (c *Core) daa() {
	a := c.A
	cf := c.flag(CCCarry)
	hf := c.flag(CCHalfCarry)
	lo := a & 0x0F
	hi := a >> 4

	var corr uint8
	newCarry := cf

	if hf || lo > 9 {
		corr |= 0x06
	}
	if cf || hi > 9 || (hi >= 9 && lo > 9) {
		corr |= 0x60
		newCarry = true
	}

	res := uint16(a) + uint16(corr)
	c.A = uint8(res)
	c.setFlag(CCCarry, newCarry || res > 0xFF)
	c.testNZ8(c.A)
}
