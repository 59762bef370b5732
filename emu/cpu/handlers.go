/*
   Opcode-handler factories shared by the dispatch-table builders.

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

// reg16 is a get/set pair for a 16-bit register. D needs this (it has
// no backing field of its own, only A/B), so every 16-bit register is
// addressed the same way for the table builders below.
type reg16 struct {
	get func(c *Core) uint16
	set func(c *Core, v uint16)
}

var (
	regX = reg16{func(c *Core) uint16 { return c.X }, func(c *Core, v uint16) { c.X = v }}
	regY = reg16{func(c *Core) uint16 { return c.Y }, func(c *Core, v uint16) { c.Y = v }}
	regU = reg16{func(c *Core) uint16 { return c.U }, func(c *Core, v uint16) { c.U = v }}
	regS = reg16{func(c *Core) uint16 { return c.S }, func(c *Core, v uint16) { c.S = v }}
	regD = reg16{func(c *Core) uint16 { return c.D() }, func(c *Core, v uint16) { c.SetD(v) }}
)

func regAPtr(c *Core) *uint8 { return &c.A }
func regBPtr(c *Core) *uint8 { return &c.B }

// --- 8-bit operand fetchers (consume bytes from PC as needed). ---

func readImm8(c *Core) uint8 { return c.fetch8() }
func readDir8(c *Core) uint8 { return c.Mem.ReadByte(c.resolveDirect()) }
func readIdx8(c *Core) uint8 { return c.Mem.ReadByte(c.resolveIndexed()) }
func readExt8(c *Core) uint8 { return c.Mem.ReadByte(c.resolveExtended()) }

func addrDir(c *Core) uint16 { return c.resolveDirect() }
func addrIdx(c *Core) uint16 { return c.resolveIndexed() }
func addrExt(c *Core) uint16 { return c.resolveExtended() }

// --- 16-bit operand fetchers. ---

func readImm16(c *Core) uint16 { return c.fetch16() }
func readDir16(c *Core) uint16 { return c.Mem.ReadWord(c.resolveDirect()) }
func readIdx16(c *Core) uint16 { return c.Mem.ReadWord(c.resolveIndexed()) }
func readExt16(c *Core) uint16 { return c.Mem.ReadWord(c.resolveExtended()) }

// --- 8-bit accumulator ALU family: SUBA/CMPA/.../ADDA and B variants. ---

type aluOp func(c *Core, a, b uint8) uint8

func aluHandler(reg func(c *Core) *uint8, op aluOp, read func(c *Core) uint8) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		r := reg(c)
		*r = op(c, *r, read(c))
	}
}

// cmpHandler is aluHandler without the store-back, for CMPA/CMPB.
func cmpHandler(reg func(c *Core) *uint8, read func(c *Core) uint8) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		c.sub8(*reg(c), read(c), false)
	}
}

// bitHandler is an AND that discards the result, for BITA/BITB.
func bitHandler(reg func(c *Core) *uint8, read func(c *Core) uint8) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		c.and8(*reg(c), read(c))
	}
}

func ldHandler(reg func(c *Core) *uint8, read func(c *Core) uint8) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		v := read(c)
		c.setFlag(CCOverflow, false)
		c.testNZ8(v)
		*reg(c) = v
	}
}

func stHandler(reg func(c *Core) *uint8, addr func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		v := *reg(c)
		c.Mem.WriteByte(addr(c), v)
		c.setFlag(CCOverflow, false)
		c.testNZ8(v)
	}
}

// --- 16-bit register family: LDX/STX/CMPX/LDD/STD/ADDD/SUBD/... ---

func ld16Handler(r reg16, read func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		v := read(c)
		c.setFlag(CCOverflow, false)
		c.testNZ16(v)
		r.set(c, v)
	}
}

func st16Handler(r reg16, addr func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		v := r.get(c)
		c.Mem.WriteWord(addr(c), v)
		c.setFlag(CCOverflow, false)
		c.testNZ16(v)
	}
}

func cmp16Handler(r reg16, read func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		c.sub16(r.get(c), read(c))
	}
}

func add16Handler(r reg16, read func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		r.set(c, c.add16(r.get(c), read(c)))
	}
}

func sub16Handler(r reg16, read func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		r.set(c, c.sub16(r.get(c), read(c)))
	}
}

// --- Single-operand read-modify-write family: NEG/COM/LSR/.../CLR/TST/JMP. ---

func rmwHandler(addr func(c *Core) uint16, op func(c *Core, v uint8) uint8) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		a := addr(c)
		v := c.Mem.ReadByte(a)
		c.Mem.WriteByte(a, op(c, v))
	}
}

func tstHandler(addr func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		v := c.Mem.ReadByte(addr(c))
		c.setFlag(CCOverflow, false)
		c.testNZ8(v)
	}
}

func clrHandler(addr func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		c.Mem.WriteByte(addr(c), 0)
		c.CC = (c.CC &^ (CCNegative | CCOverflow | CCCarry)) | CCZero
	}
}

func jmpHandler(addr func(c *Core) uint16) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		c.PC = addr(c)
	}
}

// --- Inherent single-accumulator RMW family: NEGA/COMA/.../CLRA/CLRB. ---

func rmwAccHandler(reg func(c *Core) *uint8, op func(c *Core, v uint8) uint8) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		r := reg(c)
		*r = op(c, *r)
	}
}

func tstAccHandler(reg func(c *Core) *uint8) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		v := *reg(c)
		c.setFlag(CCOverflow, false)
		c.testNZ8(v)
	}
}

func clrAccHandler(reg func(c *Core) *uint8) func(*Core, *stepInfo) {
	return func(c *Core, _ *stepInfo) {
		*reg(c) = 0
		c.CC = (c.CC &^ (CCNegative | CCOverflow | CCCarry)) | CCZero
	}
}
