/*
   Branch, subroutine-call, and load-effective-address opcodes.

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

// branchCond evaluates one of the 6809's sixteen branch conditions.
type branchCond func(c *Core) bool

func condAlways(c *Core) bool  { return true }
func condNever(c *Core) bool   { return false }
func condHi(c *Core) bool      { return !c.flag(CCCarry) && !c.flag(CCZero) }
func condLs(c *Core) bool      { return c.flag(CCCarry) || c.flag(CCZero) }
func condCC(c *Core) bool      { return !c.flag(CCCarry) }
func condCS(c *Core) bool      { return c.flag(CCCarry) }
func condNE(c *Core) bool      { return !c.flag(CCZero) }
func condEQ(c *Core) bool      { return c.flag(CCZero) }
func condVC(c *Core) bool      { return !c.flag(CCOverflow) }
func condVS(c *Core) bool      { return c.flag(CCOverflow) }
func condPL(c *Core) bool      { return !c.flag(CCNegative) }
func condMI(c *Core) bool      { return c.flag(CCNegative) }
func condGE(c *Core) bool      { return c.flag(CCNegative) == c.flag(CCOverflow) }
func condLT(c *Core) bool      { return c.flag(CCNegative) != c.flag(CCOverflow) }
func condGT(c *Core) bool      { return !c.flag(CCZero) && c.flag(CCNegative) == c.flag(CCOverflow) }
func condLE(c *Core) bool      { return c.flag(CCZero) || c.flag(CCNegative) != c.flag(CCOverflow) }

// shortBranchHandler reads a signed 8-bit displacement and adds it to
// PC (after the displacement has been consumed) when cond holds.
func shortBranchHandler(cond branchCond) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		disp := int8(c.fetch8())
		if cond(c) {
			c.PC = uint16(int32(c.PC) + int32(disp))
		}
	}
}

// longBranchHandler is the page-2 16-bit-displacement counterpart.
func longBranchHandler(cond branchCond) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		disp := int16(c.fetch16())
		if cond(c) {
			c.PC = uint16(int32(c.PC) + int32(disp))
		}
	}
}

func (c *Core) installBranches() {
	conds := []struct {
		short, long uint8
		cond        branchCond
	}{
		{op.OpBRN, op.OpLBRN, condNever},
		{op.OpBHI, op.OpLBHI, condHi},
		{op.OpBLS, op.OpLBLS, condLs},
		{op.OpBHS, op.OpLBHS, condCC},
		{op.OpBLO, op.OpLBLO, condCS},
		{op.OpBNE, op.OpLBNE, condNE},
		{op.OpBEQ, op.OpLBEQ, condEQ},
		{op.OpBVC, op.OpLBVC, condVC},
		{op.OpBVS, op.OpLBVS, condVS},
		{op.OpBPL, op.OpLBPL, condPL},
		{op.OpBMI, op.OpLBMI, condMI},
		{op.OpBGE, op.OpLBGE, condGE},
		{op.OpBLT, op.OpLBLT, condLT},
		{op.OpBGT, op.OpLBGT, condGT},
		{op.OpBLE, op.OpLBLE, condLE},
	}
	for _, b := range conds {
		c.table[b.short] = shortBranchHandler(b.cond)
		c.table2[b.long] = longBranchHandler(b.cond)
	}
	c.table[op.OpBRA] = shortBranchHandler(condAlways)

	// LBRA and LBSR are unprefixed page-1 opcodes with a 16-bit
	// displacement, unlike every other long branch.
	c.table[op.OpLBRA] = func(c *Core, _ *stepInfo) {
		disp := int16(c.fetch16())
		c.PC = uint16(int32(c.PC) + int32(disp))
	}
	c.table[op.OpLBSR] = func(c *Core, _ *stepInfo) {
		disp := int16(c.fetch16())
		ret := c.PC
		c.PC = uint16(int32(c.PC) + int32(disp))
		c.S -= 2
		c.Mem.WriteWord(c.S, ret)
	}
	c.table[op.OpBSR] = func(c *Core, _ *stepInfo) {
		disp := int8(c.fetch8())
		ret := c.PC
		c.PC = uint16(int32(c.PC) + int32(disp))
		c.S -= 2
		c.Mem.WriteWord(c.S, ret)
	}

	c.table[op.OpJSRdir] = jsrHandler(addrDir)
	c.table[op.OpJSRidx] = jsrHandler(addrIdx)
	c.table[op.OpJSRext] = jsrHandler(addrExt)

	c.table[op.OpLEAX] = leaHandler(regX, true)
	c.table[op.OpLEAY] = leaHandler(regY, true)
	c.table[op.OpLEAS] = leaHandler(regS, false)
	c.table[op.OpLEAU] = leaHandler(regU, false)
}

func jsrHandler(addr func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		target := addr(c)
		c.S -= 2
		c.Mem.WriteWord(c.S, c.PC)
		c.PC = target
	}
}

// leaHandler loads X/Y/S/U from an indexed-mode effective address.
// X and Y additionally set the Z flag (per the 6809's quirk of LEAX/
// LEAY affecting CC while LEAS/LEAU do not).
func leaHandler(r reg16, setsZ bool) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		ea := c.resolveIndexed()
		r.set(c, ea)
		if setsZ {
			c.setFlag(CCZero, ea == 0)
		}
	}
}
