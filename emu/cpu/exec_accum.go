/*
   Accumulator and register-load/store/compare opcode families.

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

func addOp(c *Core, a, b uint8) uint8 { return c.addc8(a, b, false) }
func adcOp(c *Core, a, b uint8) uint8 { return c.addc8(a, b, c.flag(CCCarry)) }
func subOp(c *Core, a, b uint8) uint8 { return c.sub8(a, b, false) }
func sbcOp(c *Core, a, b uint8) uint8 { return c.sub8(a, b, c.flag(CCCarry)) }
func andOp(c *Core, a, b uint8) uint8 { return c.and8(a, b) }
func orOp(c *Core, a, b uint8) uint8  { return c.or8(a, b) }
func eorOp(c *Core, a, b uint8) uint8 { return c.eor8(a, b) }

// installAccumFamily wires one accumulator's SUB/CMP/SBC/AND/BIT/LD/ST/
// EOR/ADC/OR/ADD across immediate/direct/indexed/extended addressing,
// following the opcode table's uniform +0x10-per-mode spacing.
func (c *Core) installAccumFamily(reg func(*Core) *uint8, immBase uint8) {
	modes := []struct {
		delta uint8
		read8 func(*Core) uint8
		addr  func(*Core) uint16
	}{
		{0x00, readImm8, nil},
		{0x10, readDir8, addrDir},
		{0x20, readIdx8, addrIdx},
		{0x30, readExt8, addrExt},
	}
	for _, m := range modes {
		base := immBase + m.delta
		c.table[base+0x00] = aluHandler(reg, subOp, m.read8) // SUBx
		c.table[base+0x01] = cmpHandler(reg, m.read8)        // CMPx
		c.table[base+0x02] = aluHandler(reg, sbcOp, m.read8) // SBCx
		c.table[base+0x04] = aluHandler(reg, andOp, m.read8) // ANDx
		c.table[base+0x05] = bitHandler(reg, m.read8)        // BITx
		c.table[base+0x06] = ldHandler(reg, m.read8)         // LDx
		c.table[base+0x08] = aluHandler(reg, eorOp, m.read8) // EORx
		c.table[base+0x09] = aluHandler(reg, adcOp, m.read8) // ADCx
		c.table[base+0x0A] = aluHandler(reg, orOp, m.read8)  // ORx
		c.table[base+0x0B] = aluHandler(reg, addOp, m.read8) // ADDx
		if m.addr != nil {
			c.table[base+0x07] = stHandler(reg, m.addr) // STx (no immediate form)
		}
	}
}

// installAccumFamilies wires the A and B families, which differ only in
// where SUBD/CMPX/LDX (A's row) vs ADDD/unused/LDU (B's row) sit.
func (c *Core) installAccumFamilies() {
	c.installAccumFamily(regAPtr, op.OpSUBAimm)
	c.installAccumFamily(regBPtr, op.OpSUBBimm)

	// 16-bit co-resident opcodes in the A row: SUBD/CMPX/LDX/STX.
	c.table[op.OpSUBDimm] = sub16Handler(regD, readImm16)
	c.table[op.OpSUBDdir] = sub16Handler(regD, readDir16)
	c.table[op.OpSUBDidx] = sub16Handler(regD, readIdx16)
	c.table[op.OpSUBDext] = sub16Handler(regD, readExt16)

	c.table[op.OpCMPXimm] = cmp16Handler(regX, readImm16)
	c.table[op.OpCMPXdir] = cmp16Handler(regX, readDir16)
	c.table[op.OpCMPXidx] = cmp16Handler(regX, readIdx16)
	c.table[op.OpCMPXext] = cmp16Handler(regX, readExt16)

	c.table[op.OpLDXimm] = ld16Handler(regX, readImm16)
	c.table[op.OpLDXdir] = ld16Handler(regX, readDir16)
	c.table[op.OpLDXidx] = ld16Handler(regX, readIdx16)
	c.table[op.OpLDXext] = ld16Handler(regX, readExt16)

	c.table[op.OpSTXdir] = st16Handler(regX, addrDir)
	c.table[op.OpSTXidx] = st16Handler(regX, addrIdx)
	c.table[op.OpSTXext] = st16Handler(regX, addrExt)

	// 16-bit co-resident opcodes in the B row: ADDD/LDD/STD/LDU/STU.
	c.table[op.OpADDDimm] = add16Handler(regD, readImm16)
	c.table[op.OpADDDdir] = add16Handler(regD, readDir16)
	c.table[op.OpADDDidx] = add16Handler(regD, readIdx16)
	c.table[op.OpADDDext] = add16Handler(regD, readExt16)

	c.table[op.OpLDDimm] = ld16Handler(regD, readImm16)
	c.table[op.OpLDDdir] = ld16Handler(regD, readDir16)
	c.table[op.OpLDDidx] = ld16Handler(regD, readIdx16)
	c.table[op.OpLDDext] = ld16Handler(regD, readExt16)

	c.table[op.OpSTDdir] = st16Handler(regD, addrDir)
	c.table[op.OpSTDidx] = st16Handler(regD, addrIdx)
	c.table[op.OpSTDext] = st16Handler(regD, addrExt)

	c.table[op.OpLDUimm] = ld16Handler(regU, readImm16)
	c.table[op.OpLDUdir] = ld16Handler(regU, readDir16)
	c.table[op.OpLDUidx] = ld16Handler(regU, readIdx16)
	c.table[op.OpLDUext] = ld16Handler(regU, readExt16)

	c.table[op.OpSTUdir] = st16Handler(regU, addrDir)
	c.table[op.OpSTUidx] = st16Handler(regU, addrIdx)
	c.table[op.OpSTUext] = st16Handler(regU, addrExt)
}

// installPage2Accum wires the page-2 (0x10-prefixed) register family:
// CMPD, LDY/STY, LDS/STS, CMPY.
func (c *Core) installPage2Accum() {
	c.table2[op.OpCMPDimm] = cmp16Handler(regD, readImm16)
	c.table2[op.OpCMPDdir] = cmp16Handler(regD, readDir16)
	c.table2[op.OpCMPDidx] = cmp16Handler(regD, readIdx16)
	c.table2[op.OpCMPDext] = cmp16Handler(regD, readExt16)

	c.table2[op.OpCMPYimm] = cmp16Handler(regY, readImm16)
	c.table2[op.OpCMPYdir] = cmp16Handler(regY, readDir16)
	c.table2[op.OpCMPYidx] = cmp16Handler(regY, readIdx16)
	c.table2[op.OpCMPYext] = cmp16Handler(regY, readExt16)

	c.table2[op.OpLDYimm] = ld16Handler(regY, readImm16)
	c.table2[op.OpLDYdir] = ld16Handler(regY, readDir16)
	c.table2[op.OpLDYidx] = ld16Handler(regY, readIdx16)
	c.table2[op.OpLDYext] = ld16Handler(regY, readExt16)

	c.table2[op.OpSTYdir] = st16Handler(regY, addrDir)
	c.table2[op.OpSTYidx] = st16Handler(regY, addrIdx)
	c.table2[op.OpSTYext] = st16Handler(regY, addrExt)

	c.table2[op.OpLDSimm] = ld16Handler(regS, readImm16)
	c.table2[op.OpLDSdir] = ld16Handler(regS, readDir16)
	c.table2[op.OpLDSidx] = ld16Handler(regS, readIdx16)
	c.table2[op.OpLDSext] = ld16Handler(regS, readExt16)

	c.table2[op.OpSTSdir] = st16Handler(regS, addrDir)
	c.table2[op.OpSTSidx] = st16Handler(regS, addrIdx)
	c.table2[op.OpSTSext] = st16Handler(regS, addrExt)
}

// installPage3Accum wires the page-3 (0x11-prefixed) compares: CMPU,
// CMPS.
func (c *Core) installPage3Accum() {
	c.table3[op.OpCMPUimm] = cmp16Handler(regU, readImm16)
	c.table3[op.OpCMPUdir] = cmp16Handler(regU, readDir16)
	c.table3[op.OpCMPUidx] = cmp16Handler(regU, readIdx16)
	c.table3[op.OpCMPUext] = cmp16Handler(regU, readExt16)

	c.table3[op.OpCMPSimm] = cmp16Handler(regS, readImm16)
	c.table3[op.OpCMPSdir] = cmp16Handler(regS, readDir16)
	c.table3[op.OpCMPSidx] = cmp16Handler(regS, readIdx16)
	c.table3[op.OpCMPSext] = cmp16Handler(regS, readExt16)
}
