/*
   Real-instruction encoding: addressing-mode auto-selection and byte
   emission for both passes.

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

package assembler

import (
	"strings"

	op "github.com/hcornwell/m6809/emu/opcodemap"
)

var indexRegCode = map[string]byte{"X": 0, "Y": 1, "U": 2, "S": 3}

// stackBit holds the PSHS/PULS/PSHU/PULU register-list bits. Bit 0x40
// names "the other" 16-bit pointer: U on the S stack, S on the U
// stack. Both are listed here since the mnemonic alone (not the
// operand text) determines which physical register that bit means.
var stackBit = map[string]uint8{
	"CC": 0x01, "A": 0x02, "B": 0x04, "D": 0x06, "DP": 0x08,
	"X": 0x10, "Y": 0x20, "U": 0x40, "S": 0x40, "PC": 0x80,
}

var regPairCode = map[string]uint8{
	"D": op.RegD, "X": op.RegX, "Y": op.RegY, "U": op.RegU, "S": op.RegS,
	"PC": op.RegPC, "A": op.RegA, "B": op.RegB, "CC": op.RegCC, "DP": op.RegDP,
}

func (a *Assembler) emitPrefixed(e *Entry) {
	switch e.Prefix {
	case 1:
		a.emit(op.OpPage2)
	case 2:
		a.emit(op.OpPage3)
	}
}

// encodeInstruction emits the opcode and operand bytes for one real
// instruction, auto-selecting direct vs. extended (and short vs. long
// indexed offsets) the same way on both passes: pass 1 makes the
// addressing-mode decision and caches it by line index; pass 2 looks
// the decision up instead of recomputing it, so an instruction can
// never change length between passes and spuriously shift every label
// after it.
func (a *Assembler) encodeInstruction(idx int, line SourceLine, f Fields) {
	e := Lookup(f.Mnemonic)
	if e == nil {
		a.addErr(line.Num, ErrIllegalMnemonic, "unrecognized mnemonic %q", f.Mnemonic)
		return
	}

	switch e.Class {
	case ClassInherent:
		a.emitPrefixed(e)
		a.emit(byte(e.Inherent))

	case ClassImm8Only:
		a.emitPrefixed(e)
		a.emit(byte(e.Imm))
		v, err := a.eval(strings.TrimPrefix(f.Operand, "#"))
		if err != nil {
			a.addErr(line.Num, ErrExprSyntax, "%s", err)
		}
		a.emit(byte(v.Num))

	case ClassAccumALU, ClassAccumNoImm, ClassReg16ALU:
		a.encodeALU(idx, line, f, e)

	case ClassRMW, ClassJump:
		a.encodeMemOnly(idx, line, f, e)

	case ClassRMWAccum:
		a.emit(byte(e.Inherent))

	case ClassBranchShort:
		a.emit(byte(e.Inherent))
		v, err := a.eval(f.Operand)
		if err != nil {
			a.addErr(line.Num, ErrExprSyntax, "%s", err)
		}
		disp := int32(v.Num) - int32(a.here) - 1
		if a.pass == 2 && (disp < -128 || disp > 127) {
			a.addErr(line.Num, ErrRange, "branch target out of 8-bit range")
		}
		a.emit(byte(int8(disp)))

	case ClassBranchLong:
		a.emitPrefixed(e)
		a.emit(byte(e.Inherent))
		v, err := a.eval(f.Operand)
		if err != nil {
			a.addErr(line.Num, ErrExprSyntax, "%s", err)
		}
		disp := int32(v.Num) - int32(a.here) - 2
		a.emitWord(uint16(int16(disp)))

	case ClassLEA:
		a.emit(byte(e.Inherent))
		a.encodeIndexedOperand(idx, line, f.Operand)

	case ClassStack:
		a.emit(byte(e.Inherent))
		mask := uint8(0)
		for _, reg := range splitOperandList(f.Operand) {
			bit, ok := stackBit[strings.ToUpper(reg)]
			if !ok {
				a.addErr(line.Num, ErrOperandSyntax, "unknown register %q in register list", reg)
				continue
			}
			mask |= bit
		}
		a.emit(mask)

	case ClassRegPair:
		a.emit(byte(e.Inherent))
		parts := splitOperandList(f.Operand)
		if len(parts) != 2 {
			a.addErr(line.Num, ErrOperandSyntax, "%s requires exactly two registers", f.Mnemonic)
			a.emit(0)
			return
		}
		r1, ok1 := regPairCode[strings.ToUpper(parts[0])]
		r2, ok2 := regPairCode[strings.ToUpper(parts[1])]
		if !ok1 || !ok2 {
			a.addErr(line.Num, ErrOperandSyntax, "unknown register in %s operand", f.Mnemonic)
		}
		a.emit(r1<<4 | r2)
	}
}

// encodeALU handles the opcode families with imm/dir/idx/ext forms.
func (a *Assembler) encodeALU(idx int, line SourceLine, f Fields, e *Entry) {
	operand := strings.TrimSpace(f.Operand)
	a.emitPrefixed(e)

	if strings.HasPrefix(operand, "#") {
		if e.Imm == noOp {
			a.addErr(line.Num, ErrOperandSyntax, "%s has no immediate form", f.Mnemonic)
			return
		}
		a.emit(byte(e.Imm))
		v, err := a.eval(operand[1:])
		if err != nil {
			a.addErr(line.Num, ErrExprSyntax, "%s", err)
		}
		if e.Class == ClassReg16ALU {
			a.emitWord(v.Num)
		} else {
			a.emit(byte(v.Num))
		}
		return
	}

	if isIndexedOperand(operand) {
		a.emit(byte(e.Idx))
		a.encodeIndexedOperand(idx, line, operand)
		return
	}

	a.encodeDirectOrExtended(idx, line, operand, e.Dir, e.Ext)
}

func (a *Assembler) encodeMemOnly(idx int, line SourceLine, f Fields, e *Entry) {
	operand := strings.TrimSpace(f.Operand)
	if isIndexedOperand(operand) {
		a.emit(byte(e.Idx))
		a.encodeIndexedOperand(idx, line, operand)
		return
	}
	a.encodeDirectOrExtended(idx, line, operand, e.Dir, e.Ext)
}

// encodeDirectOrExtended evaluates operand and picks direct (2-byte)
// vs. extended (3-byte) addressing by comparing its high byte against
// the assumed direct page, deciding once on pass 1 and replaying the
// same decision on pass 2 via a.modeCache.
func (a *Assembler) encodeDirectOrExtended(idx int, line SourceLine, operand string, dirOp, extOp int) {
	v, err := a.eval(operand)
	if err != nil {
		a.addErr(line.Num, ErrExprSyntax, "%s", err)
	}

	decision, cached := a.modeCache[idx]
	if !cached {
		if dirOp == noOp {
			decision = 'E'
		} else if extOp == noOp {
			decision = 'D'
		} else if v.Defined && uint8(v.Num>>8) == a.dp {
			decision = 'D'
		} else {
			decision = 'E'
		}
		a.modeCache[idx] = decision
	}

	switch decision {
	case 'D':
		a.emit(byte(dirOp))
		a.emit(byte(v.Num))
	default:
		a.emit(byte(extOp))
		a.emitWord(v.Num)
	}
}

// splitRegisterDecoration peels the post-increment ("+", "++") or
// pre-decrement ("-", "--") marker attached to an index register, e.g.
// "X+" -> ("X", "+"), "--Y" -> ("Y", "--"), "X" -> ("X", "").
func splitRegisterDecoration(right string) (reg, decoration string) {
	switch {
	case strings.HasSuffix(right, "++"):
		return right[:len(right)-2], "++"
	case strings.HasSuffix(right, "+"):
		return right[:len(right)-1], "+"
	case strings.HasPrefix(right, "--"):
		return right[2:], "--"
	case strings.HasPrefix(right, "-"):
		return right[1:], "-"
	default:
		return right, ""
	}
}

func isIndexedOperand(operand string) bool {
	body := operand
	bracketed := strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]")
	if bracketed {
		body = body[1 : len(body)-1]
	}
	if !strings.Contains(body, ",") {
		return bracketed // "[address]": extended indirect
	}
	right := strings.ToUpper(strings.TrimSpace(body[strings.LastIndex(body, ",")+1:]))
	if strings.HasSuffix(right, "PCR") {
		return true
	}
	reg, _ := splitRegisterDecoration(right)
	_, ok := indexRegCode[reg]
	return ok
}

// encodeIndexedOperand parses one of the 6809 indexed syntaxes and
// emits the postbyte plus any offset extension bytes.
func (a *Assembler) encodeIndexedOperand(idx int, line SourceLine, operand string) {
	indirect := false
	body := strings.TrimSpace(operand)
	if strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]") {
		indirect = true
		body = strings.TrimSpace(body[1 : len(body)-1])
	}

	comma := strings.LastIndex(body, ",")
	if comma < 0 {
		if !indirect {
			a.addErr(line.Num, ErrOperandSyntax, "malformed indexed operand %q", operand)
			return
		}
		// [address]: extended indirect, register-less.
		v, err := a.eval(body)
		if err != nil {
			a.addErr(line.Num, ErrExprSyntax, "%s", err)
		}
		a.emit(0x9F)
		a.emitWord(v.Num)
		return
	}
	left := strings.TrimSpace(body[:comma])
	rightRaw := strings.ToUpper(strings.TrimSpace(body[comma+1:]))

	if strings.HasSuffix(rightRaw, "PCR") {
		a.encodePCRelative(idx, line, left, indirect)
		return
	}

	regName, decoration := splitRegisterDecoration(rightRaw)
	reg, ok := indexRegCode[regName]
	if !ok {
		a.addErr(line.Num, ErrOperandSyntax, "unknown index register %q", rightRaw)
		return
	}

	switch decoration {
	case "+":
		if indirect {
			a.addErr(line.Num, ErrOperandSyntax, ",R+ has no indirect form")
		}
		a.emit(0x80 | reg<<5 | 0x00)
		return
	case "++":
		a.emit(0x80 | reg<<5 | 0x01 | indirectBit(indirect))
		return
	case "-":
		if indirect {
			a.addErr(line.Num, ErrOperandSyntax, ",-R has no indirect form")
		}
		a.emit(0x80 | reg<<5 | 0x02)
		return
	case "--":
		a.emit(0x80 | reg<<5 | 0x03 | indirectBit(indirect))
		return
	}

	switch strings.ToUpper(left) {
	case "":
		a.emit(0x80 | reg<<5 | 0x04 | indirectBit(indirect))
		return
	case "A":
		a.emit(0x80 | reg<<5 | 0x06 | indirectBit(indirect))
		return
	case "B":
		a.emit(0x80 | reg<<5 | 0x05 | indirectBit(indirect))
		return
	case "D":
		a.emit(0x80 | reg<<5 | 0x0B | indirectBit(indirect))
		return
	}

	v, err := a.eval(left)
	if err != nil {
		a.addErr(line.Num, ErrExprSyntax, "%s", err)
	}
	off := int32(int16(v.Num))

	decision, cached := a.modeCache[idx]
	if !cached {
		switch {
		case !indirect && v.Defined && off >= -16 && off <= 15:
			decision = '5'
		case v.Defined && off >= -128 && off <= 127:
			decision = '8'
		default:
			decision = '9'
		}
		a.modeCache[idx] = decision
	}

	switch decision {
	case '5':
		a.emit(reg<<5 | uint8(v.Num)&0x1F)
	case '8':
		a.emit(0x80 | reg<<5 | 0x08 | indirectBit(indirect))
		a.emit(byte(v.Num))
	default:
		a.emit(0x80 | reg<<5 | 0x09 | indirectBit(indirect))
		a.emitWord(v.Num)
	}
}

func (a *Assembler) encodePCRelative(idx int, line SourceLine, left string, indirect bool) {
	v, err := a.eval(left)
	if err != nil {
		a.addErr(line.Num, ErrExprSyntax, "%s", err)
	}

	decision, cached := a.modeCache[idx]
	if !cached {
		shortDisp := int32(v.Num) - int32(a.here) - 1
		if v.Defined && shortDisp >= -128 && shortDisp <= 127 {
			decision = '8'
		} else {
			decision = '9'
		}
		a.modeCache[idx] = decision
	}

	switch decision {
	case '8':
		a.emit(0x8C | indirectBit(indirect))
		disp := int32(v.Num) - int32(a.here) - 1
		a.emit(byte(int8(disp)))
	default:
		a.emit(0x8D | indirectBit(indirect))
		disp := int32(v.Num) - int32(a.here) - 2
		a.emitWord(uint16(int16(disp)))
	}
}

func indirectBit(indirect bool) uint8 {
	if indirect {
		return 0x10
	}
	return 0
}
