/*
   Motorola 6809 Disassembler Test routines.

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
	RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
	IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
	CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/
package disassembler

import (
	"testing"

	op "github.com/hcornwell/m6809/emu/opcodemap"
)

func TestDisassembleInherent(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpNOP})
	if inst != "NOP" || length != 1 {
		t.Errorf("NOP: got %q/%d, want NOP/1", inst, length)
	}
	inst, length = Disassemble([]byte{op.OpRTS})
	if inst != "RTS" || length != 1 {
		t.Errorf("RTS: got %q/%d, want RTS/1", inst, length)
	}
}

func TestDisassembleImmediate(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpLDAimm, 0x42})
	if inst != "LDA    #$42" || length != 2 {
		t.Errorf("LDA #$42: got %q/%d", inst, length)
	}
	inst, length = Disassemble([]byte{op.OpLDXimm, 0x12, 0x34})
	if inst != "LDX    #$1234" || length != 3 {
		t.Errorf("LDX #$1234: got %q/%d", inst, length)
	}
}

func TestDisassembleDirectExtended(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpLDAdir, 0x50})
	if inst != "LDA    <$50" || length != 2 {
		t.Errorf("LDA direct: got %q/%d", inst, length)
	}
	inst, length = Disassemble([]byte{op.OpLDAext, 0x20, 0x00})
	if inst != "LDA    $2000" || length != 3 {
		t.Errorf("LDA extended: got %q/%d", inst, length)
	}
}

func TestDisassembleIndexed(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpLDAidx, 0x80}) // ,X+
	if inst != "LDA    ,X+" || length != 2 {
		t.Errorf("LDA ,X+: got %q/%d", inst, length)
	}
	inst, length = Disassemble([]byte{op.OpLDAidx, 0xA4}) // ,Y
	if inst != "LDA    ,Y" || length != 2 {
		t.Errorf("LDA ,Y: got %q/%d", inst, length)
	}
	inst, length = Disassemble([]byte{op.OpLDAidx, 0x45}) // 5,U
	if inst != "LDA    5,U" || length != 2 {
		t.Errorf("LDA 5,U: got %q/%d", inst, length)
	}
	inst, length = Disassemble([]byte{0x30, 0x25}) // LEAX 5,Y
	if inst != "LEAX   5,Y" || length != 2 {
		t.Errorf("LEAX 5,Y: got %q/%d", inst, length)
	}
	inst, length = Disassemble([]byte{op.OpLDAidx, 0x9F, 0x20, 0x00}) // [$2000]
	if inst != "LDA    [$2000]" || length != 4 {
		t.Errorf("LDA [$2000]: got %q/%d", inst, length)
	}
}

func TestDisassembleBranch(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpBRA, 0xFE})
	if inst != "BRA    -2" || length != 2 {
		t.Errorf("BRA -2: got %q/%d", inst, length)
	}
	inst, length = Disassemble([]byte{op.OpLBRA, 0x00, 0x10})
	if inst != "LBRA   16" || length != 3 {
		t.Errorf("LBRA: got %q/%d", inst, length)
	}
}

func TestDisassemblePage2Branch(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpPage2, op.OpLBEQ, 0x00, 0x05})
	if inst != "LBEQ   5" || length != 4 {
		t.Errorf("LBEQ: got %q/%d", inst, length)
	}
}

func TestDisassembleStackList(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpPSHS, 0x36}) // D,X,Y
	if inst != "PSHS   Y,X,D" || length != 2 {
		t.Errorf("PSHS: got %q/%d", inst, length)
	}
}

func TestDisassembleRegPair(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpTFR, 0x12}) // X to Y
	if inst != "TFR    X,Y" || length != 2 {
		t.Errorf("TFR: got %q/%d", inst, length)
	}
	inst, length = Disassemble([]byte{op.OpEXG, 0x89}) // A:B
	if inst != "EXG    A,B" || length != 2 {
		t.Errorf("EXG: got %q/%d", inst, length)
	}
}

func TestDisassembleRMWAccum(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpCLRA})
	if inst != "CLRA" || length != 1 {
		t.Errorf("CLRA: got %q/%d", inst, length)
	}
}

func TestDisassemblePage3(t *testing.T) {
	inst, length := Disassemble([]byte{op.OpPage3, op.OpCMPUimm, 0x00, 0x10})
	if inst != "CMPU   #$0010" || length != 4 {
		t.Errorf("CMPU: got %q/%d", inst, length)
	}
}

func TestPrintInst(t *testing.T) {
	inst, length := PrintInst([]byte{op.OpLDAimm, 0x42})
	if inst != "86 42         LDA    #$42" || length != 2 {
		t.Errorf("PrintInst: got %q/%d", inst, length)
	}
}
