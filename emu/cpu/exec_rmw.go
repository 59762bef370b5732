/*
   Single-operand read-modify-write opcode family: NEG/COM/LSR/ROR/ASR/
   ASL/ROL/DEC/INC/TST/JMP/CLR, across direct/indexed/extended addressing
   and the A/B inherent forms.

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

func (c *Core) installRMW() {
	type row struct {
		dir, idx, ext uint8
		do            func(c *Core, v uint8) uint8
	}
	rows := []row{
		{op.OpNEGdir, op.OpNEGidx, op.OpNEGext, (*Core).neg8},
		{op.OpCOMdir, op.OpCOMidx, op.OpCOMext, (*Core).com8},
		{op.OpLSRdir, op.OpLSRidx, op.OpLSRext, (*Core).lsr8},
		{op.OpRORdir, op.OpRORidx, op.OpRORext, (*Core).ror8},
		{op.OpASRdir, op.OpASRidx, op.OpASRext, (*Core).asr8},
		{op.OpASLdir, op.OpASLidx, op.OpASLext, (*Core).asl8},
		{op.OpROLdir, op.OpROLidx, op.OpROLext, (*Core).rol8},
		{op.OpDECdir, op.OpDECidx, op.OpDECext, (*Core).dec8},
		{op.OpINCdir, op.OpINCidx, op.OpINCext, (*Core).inc8},
	}
	for _, r := range rows {
		c.table[r.dir] = rmwHandler(addrDir, r.do)
		c.table[r.idx] = rmwHandler(addrIdx, r.do)
		c.table[r.ext] = rmwHandler(addrExt, r.do)
	}

	c.table[op.OpTSTdir] = tstHandler(addrDir)
	c.table[op.OpTSTidx] = tstHandler(addrIdx)
	c.table[op.OpTSText] = tstHandler(addrExt)

	c.table[op.OpJMPdir] = jmpHandler(addrDir)
	c.table[op.OpJMPidx] = jmpHandler(addrIdx)
	c.table[op.OpJMPext] = jmpHandler(addrExt)

	c.table[op.OpCLRdir] = clrHandler(addrDir)
	c.table[op.OpCLRidx] = clrHandler(addrIdx)
	c.table[op.OpCLRext] = clrHandler(addrExt)

	accRows := []struct {
		a, b uint8
		do   func(c *Core, v uint8) uint8
	}{
		{op.OpNEGA, op.OpNEGB, (*Core).neg8},
		{op.OpCOMA, op.OpCOMB, (*Core).com8},
		{op.OpLSRA, op.OpLSRB, (*Core).lsr8},
		{op.OpRORA, op.OpRORB, (*Core).ror8},
		{op.OpASRA, op.OpASRB, (*Core).asr8},
		{op.OpASLA, op.OpASLB, (*Core).asl8},
		{op.OpROLA, op.OpROLB, (*Core).rol8},
		{op.OpDECA, op.OpDECB, (*Core).dec8},
		{op.OpINCA, op.OpINCB, (*Core).inc8},
	}
	for _, r := range accRows {
		c.table[r.a] = rmwAccHandler(regAPtr, r.do)
		c.table[r.b] = rmwAccHandler(regBPtr, r.do)
	}

	c.table[op.OpTSTA] = tstAccHandler(regAPtr)
	c.table[op.OpTSTB] = tstAccHandler(regBPtr)
	c.table[op.OpCLRA] = clrAccHandler(regAPtr)
	c.table[op.OpCLRB] = clrAccHandler(regBPtr)
}
