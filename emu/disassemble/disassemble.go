/*
   Motorola 6809 Disassembler

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
	"fmt"
	"strings"

	op "github.com/hcornwell/m6809/emu/opcodemap"
)

// Addressing-mode tag attached to each opcode table entry, telling
// Disassemble how many trailing bytes to consume and how to render
// them.
const (
	adrNone = iota // inherent, no operand
	adrImm8
	adrImm16
	adrDirect
	adrExtended
	adrIndexed
	adrRelByte
	adrRelWord
	adrStack  // PSHS/PULS/PSHU/PULU register-list mask
	adrRegPair
)

type opcode struct {
	opName string
	opMode int
}

var page1 = map[byte]opcode{}
var page2 = map[byte]opcode{}
var page3 = map[byte]opcode{}

func init() {
	addAccum := func(mnem string, imm, dir, idx, ext int, hasImm bool) {
		if hasImm {
			page1[byte(imm)] = opcode{mnem, adrImm8}
		}
		page1[byte(dir)] = opcode{mnem, adrDirect}
		page1[byte(idx)] = opcode{mnem, adrIndexed}
		page1[byte(ext)] = opcode{mnem, adrExtended}
	}
	addAccum("SUBA", op.OpSUBAimm, op.OpSUBAdir, op.OpSUBAidx, op.OpSUBAext, true)
	addAccum("CMPA", op.OpCMPAimm, op.OpCMPAdir, op.OpCMPAidx, op.OpCMPAext, true)
	addAccum("SBCA", op.OpSBCAimm, op.OpSBCAdir, op.OpSBCAidx, op.OpSBCAext, true)
	addAccum("ANDA", op.OpANDAimm, op.OpANDAdir, op.OpANDAidx, op.OpANDAext, true)
	addAccum("BITA", op.OpBITAimm, op.OpBITAdir, op.OpBITAidx, op.OpBITAext, true)
	addAccum("LDA", op.OpLDAimm, op.OpLDAdir, op.OpLDAidx, op.OpLDAext, true)
	addAccum("STA", 0, op.OpSTAdir, op.OpSTAidx, op.OpSTAext, false)
	addAccum("EORA", op.OpEORAimm, op.OpEORAdir, op.OpEORAidx, op.OpEORAext, true)
	addAccum("ADCA", op.OpADCAimm, op.OpADCAdir, op.OpADCAidx, op.OpADCAext, true)
	addAccum("ORA", op.OpORAimm, op.OpORAdir, op.OpORAidx, op.OpORAext, true)
	addAccum("ADDA", op.OpADDAimm, op.OpADDAdir, op.OpADDAidx, op.OpADDAext, true)

	addAccum("SUBB", op.OpSUBBimm, op.OpSUBBdir, op.OpSUBBidx, op.OpSUBBext, true)
	addAccum("CMPB", op.OpCMPBimm, op.OpCMPBdir, op.OpCMPBidx, op.OpCMPBext, true)
	addAccum("SBCB", op.OpSBCBimm, op.OpSBCBdir, op.OpSBCBidx, op.OpSBCBext, true)
	addAccum("ANDB", op.OpANDBimm, op.OpANDBdir, op.OpANDBidx, op.OpANDBext, true)
	addAccum("BITB", op.OpBITBimm, op.OpBITBdir, op.OpBITBidx, op.OpBITBext, true)
	addAccum("LDB", op.OpLDBimm, op.OpLDBdir, op.OpLDBidx, op.OpLDBext, true)
	addAccum("STB", 0, op.OpSTBdir, op.OpSTBidx, op.OpSTBext, false)
	addAccum("EORB", op.OpEORBimm, op.OpEORBdir, op.OpEORBidx, op.OpEORBext, true)
	addAccum("ADCB", op.OpADCBimm, op.OpADCBdir, op.OpADCBidx, op.OpADCBext, true)
	addAccum("ORB", op.OpORBimm, op.OpORBdir, op.OpORBidx, op.OpORBext, true)
	addAccum("ADDB", op.OpADDBimm, op.OpADDBdir, op.OpADDBidx, op.OpADDBext, true)

	addReg16 := func(table map[byte]opcode, mnem string, imm, dir, idx, ext int) {
		table[byte(imm)] = opcode{mnem, adrImm16}
		table[byte(dir)] = opcode{mnem, adrDirect}
		table[byte(idx)] = opcode{mnem, adrIndexed}
		table[byte(ext)] = opcode{mnem, adrExtended}
	}
	addReg16(page1, "SUBD", op.OpSUBDimm, op.OpSUBDdir, op.OpSUBDidx, op.OpSUBDext)
	addReg16(page1, "ADDD", op.OpADDDimm, op.OpADDDdir, op.OpADDDidx, op.OpADDDext)
	addReg16(page1, "CMPX", op.OpCMPXimm, op.OpCMPXdir, op.OpCMPXidx, op.OpCMPXext)
	addReg16(page1, "LDX", op.OpLDXimm, op.OpLDXdir, op.OpLDXidx, op.OpLDXext)
	page1[op.OpSTXdir] = opcode{"STX", adrDirect}
	page1[op.OpSTXidx] = opcode{"STX", adrIndexed}
	page1[op.OpSTXext] = opcode{"STX", adrExtended}
	addReg16(page1, "LDD", op.OpLDDimm, op.OpLDDdir, op.OpLDDidx, op.OpLDDext)
	page1[op.OpSTDdir] = opcode{"STD", adrDirect}
	page1[op.OpSTDidx] = opcode{"STD", adrIndexed}
	page1[op.OpSTDext] = opcode{"STD", adrExtended}
	addReg16(page1, "LDU", op.OpLDUimm, op.OpLDUdir, op.OpLDUidx, op.OpLDUext)
	page1[op.OpSTUdir] = opcode{"STU", adrDirect}
	page1[op.OpSTUidx] = opcode{"STU", adrIndexed}
	page1[op.OpSTUext] = opcode{"STU", adrExtended}

	addReg16(page2, "CMPD", op.OpCMPDimm, op.OpCMPDdir, op.OpCMPDidx, op.OpCMPDext)
	addReg16(page2, "CMPY", op.OpCMPYimm, op.OpCMPYdir, op.OpCMPYidx, op.OpCMPYext)
	addReg16(page2, "LDY", op.OpLDYimm, op.OpLDYdir, op.OpLDYidx, op.OpLDYext)
	page2[op.OpSTYdir] = opcode{"STY", adrDirect}
	page2[op.OpSTYidx] = opcode{"STY", adrIndexed}
	page2[op.OpSTYext] = opcode{"STY", adrExtended}
	addReg16(page2, "LDS", op.OpLDSimm, op.OpLDSdir, op.OpLDSidx, op.OpLDSext)
	page2[op.OpSTSdir] = opcode{"STS", adrDirect}
	page2[op.OpSTSidx] = opcode{"STS", adrIndexed}
	page2[op.OpSTSext] = opcode{"STS", adrExtended}

	page3[op.OpCMPUimm] = opcode{"CMPU", adrImm16}
	page3[op.OpCMPUdir] = opcode{"CMPU", adrDirect}
	page3[op.OpCMPUidx] = opcode{"CMPU", adrIndexed}
	page3[op.OpCMPUext] = opcode{"CMPU", adrExtended}
	page3[op.OpCMPSimm] = opcode{"CMPS", adrImm16}
	page3[op.OpCMPSdir] = opcode{"CMPS", adrDirect}
	page3[op.OpCMPSidx] = opcode{"CMPS", adrIndexed}
	page3[op.OpCMPSext] = opcode{"CMPS", adrExtended}

	rmwRow := func(mnem string, dir, idx, ext, accA, accB int) {
		page1[byte(dir)] = opcode{mnem, adrDirect}
		page1[byte(idx)] = opcode{mnem, adrIndexed}
		page1[byte(ext)] = opcode{mnem, adrExtended}
		if accA >= 0 {
			page1[byte(accA)] = opcode{mnem + "A", adrNone}
		}
		if accB >= 0 {
			page1[byte(accB)] = opcode{mnem + "B", adrNone}
		}
	}
	rmwRow("NEG", op.OpNEGdir, op.OpNEGidx, op.OpNEGext, op.OpNEGA, op.OpNEGB)
	rmwRow("COM", op.OpCOMdir, op.OpCOMidx, op.OpCOMext, op.OpCOMA, op.OpCOMB)
	rmwRow("LSR", op.OpLSRdir, op.OpLSRidx, op.OpLSRext, op.OpLSRA, op.OpLSRB)
	rmwRow("ROR", op.OpRORdir, op.OpRORidx, op.OpRORext, op.OpRORA, op.OpRORB)
	rmwRow("ASR", op.OpASRdir, op.OpASRidx, op.OpASRext, op.OpASRA, op.OpASRB)
	rmwRow("ASL", op.OpASLdir, op.OpASLidx, op.OpASLext, op.OpASLA, op.OpASLB)
	rmwRow("ROL", op.OpROLdir, op.OpROLidx, op.OpROLext, op.OpROLA, op.OpROLB)
	rmwRow("DEC", op.OpDECdir, op.OpDECidx, op.OpDECext, op.OpDECA, op.OpDECB)
	rmwRow("INC", op.OpINCdir, op.OpINCidx, op.OpINCext, op.OpINCA, op.OpINCB)
	rmwRow("TST", op.OpTSTdir, op.OpTSTidx, op.OpTSText, op.OpTSTA, op.OpTSTB)
	rmwRow("CLR", op.OpCLRdir, op.OpCLRidx, op.OpCLRext, op.OpCLRA, op.OpCLRB)
	page1[op.OpJMPdir] = opcode{"JMP", adrDirect}
	page1[op.OpJMPidx] = opcode{"JMP", adrIndexed}
	page1[op.OpJMPext] = opcode{"JMP", adrExtended}
	page1[op.OpJSRdir] = opcode{"JSR", adrDirect}
	page1[op.OpJSRidx] = opcode{"JSR", adrIndexed}
	page1[op.OpJSRext] = opcode{"JSR", adrExtended}

	page1[op.OpLEAX] = opcode{"LEAX", adrIndexed}
	page1[op.OpLEAY] = opcode{"LEAY", adrIndexed}
	page1[op.OpLEAS] = opcode{"LEAS", adrIndexed}
	page1[op.OpLEAU] = opcode{"LEAU", adrIndexed}

	page1[op.OpPSHS] = opcode{"PSHS", adrStack}
	page1[op.OpPULS] = opcode{"PULS", adrStack}
	page1[op.OpPSHU] = opcode{"PSHU", adrStack}
	page1[op.OpPULU] = opcode{"PULU", adrStack}

	page1[op.OpTFR] = opcode{"TFR", adrRegPair}
	page1[op.OpEXG] = opcode{"EXG", adrRegPair}

	shortBranch := map[string]int{
		"BRA": op.OpBRA, "BRN": op.OpBRN, "BHI": op.OpBHI, "BLS": op.OpBLS,
		"BHS": op.OpBHS, "BLO": op.OpBLO, "BNE": op.OpBNE, "BEQ": op.OpBEQ,
		"BVC": op.OpBVC, "BVS": op.OpBVS, "BPL": op.OpBPL, "BMI": op.OpBMI,
		"BGE": op.OpBGE, "BLT": op.OpBLT, "BGT": op.OpBGT, "BLE": op.OpBLE,
	}
	for mnem, code := range shortBranch {
		page1[byte(code)] = opcode{mnem, adrRelByte}
	}
	page1[op.OpBSR] = opcode{"BSR", adrRelByte}

	longBranch := map[string]int{
		"LBRN": op.OpLBRN, "LBHI": op.OpLBHI, "LBLS": op.OpLBLS,
		"LBHS": op.OpLBHS, "LBLO": op.OpLBLO, "LBNE": op.OpLBNE, "LBEQ": op.OpLBEQ,
		"LBVC": op.OpLBVC, "LBVS": op.OpLBVS, "LBPL": op.OpLBPL, "LBMI": op.OpLBMI,
		"LBGE": op.OpLBGE, "LBLT": op.OpLBLT, "LBGT": op.OpLBGT, "LBLE": op.OpLBLE,
	}
	for mnem, code := range longBranch {
		page2[byte(code)] = opcode{mnem, adrRelWord}
	}
	page1[op.OpLBRA] = opcode{"LBRA", adrRelWord}
	page1[op.OpLBSR] = opcode{"LBSR", adrRelWord}

	inherent := map[int]string{
		op.OpNOP: "NOP", op.OpSYNC: "SYNC", op.OpDAA: "DAA", op.OpSEX: "SEX",
		op.OpABX: "ABX", op.OpRTS: "RTS", op.OpRTI: "RTI", op.OpMUL: "MUL",
		op.OpSWI: "SWI",
	}
	for code, mnem := range inherent {
		page1[byte(code)] = opcode{mnem, adrNone}
	}
	page2[op.OpSWI2] = opcode{"SWI2", adrNone}
	page3[op.OpSWI3] = opcode{"SWI3", adrNone}

	page1[op.OpANDCC] = opcode{"ANDCC", adrImm8}
	page1[op.OpORCC] = opcode{"ORCC", adrImm8}
	page1[op.OpCWAI] = opcode{"CWAI", adrImm8}
}

var indexRegName = [4]string{"X", "Y", "U", "S"}

// Disassemble decodes one instruction starting at data[0] and returns
// its mnemonic text and the number of bytes it occupies. Truncated or
// unrecognized encodings still return a best-effort length so callers
// scanning a memory dump keep making progress.
func Disassemble(data []byte) (string, int) {
	if len(data) == 0 {
		return "???", 0
	}
	opc := data[0]
	switch opc {
	case op.OpPage2:
		if len(data) < 2 {
			return "???", 1
		}
		return decode(page2[data[1]], data[2:], 2)
	case op.OpPage3:
		if len(data) < 2 {
			return "???", 1
		}
		return decode(page3[data[1]], data[2:], 2)
	default:
		return decode(page1[opc], data[1:], 1)
	}
}

func decode(e opcode, rest []byte, prefixLen int) (string, int) {
	if e.opName == "" {
		return "???", prefixLen
	}
	mnem := e.opName + strings.Repeat(" ", 7-len(e.opName))
	switch e.opMode {
	case adrNone:
		return strings.TrimRight(mnem, " "), prefixLen
	case adrImm8:
		if len(rest) < 1 {
			return mnem + "?", prefixLen
		}
		return fmt.Sprintf("%s#$%02X", mnem, rest[0]), prefixLen + 1
	case adrImm16:
		if len(rest) < 2 {
			return mnem + "?", prefixLen
		}
		return fmt.Sprintf("%s#$%04X", mnem, word(rest)), prefixLen + 2
	case adrDirect:
		if len(rest) < 1 {
			return mnem + "?", prefixLen
		}
		return fmt.Sprintf("%s<$%02X", mnem, rest[0]), prefixLen + 1
	case adrExtended:
		if len(rest) < 2 {
			return mnem + "?", prefixLen
		}
		return fmt.Sprintf("%s$%04X", mnem, word(rest)), prefixLen + 2
	case adrIndexed:
		if len(rest) < 1 {
			return mnem + "?", prefixLen
		}
		body, n := formatIndexed(rest)
		return mnem + body, prefixLen + n
	case adrRelByte:
		if len(rest) < 1 {
			return mnem + "?", prefixLen
		}
		disp := int8(rest[0])
		return fmt.Sprintf("%s%d", mnem, disp), prefixLen + 1
	case adrRelWord:
		if len(rest) < 2 {
			return mnem + "?", prefixLen
		}
		disp := int16(word(rest))
		return fmt.Sprintf("%s%d", mnem, disp), prefixLen + 2
	case adrStack:
		if len(rest) < 1 {
			return mnem + "?", prefixLen
		}
		return mnem + formatStackList(e.opName, rest[0]), prefixLen + 1
	case adrRegPair:
		if len(rest) < 1 {
			return mnem + "?", prefixLen
		}
		return fmt.Sprintf("%s%s,%s", mnem, regPairName(rest[0]>>4), regPairName(rest[0]&0xF)), prefixLen + 1
	}
	return mnem, prefixLen
}

func word(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// formatIndexed decodes one indexed-mode postbyte exactly the way
// resolveIndexed interprets it at run time, but only to produce
// assembler-syntax text; it never touches register state.
func formatIndexed(data []byte) (string, int) {
	pb := data[0]
	if pb&0x80 == 0 {
		reg := indexRegName[(pb>>5)&0x3]
		off := int8(pb<<3) >> 3
		return fmt.Sprintf("%d,%s", off, reg), 1
	}
	if op.IllegalPostbytes[pb] {
		return fmt.Sprintf("ILLEGAL($%02X)", pb), 1
	}
	reg := indexRegName[(pb>>5)&0x3]
	indirect := pb&0x10 != 0
	mode := pb & 0x0F

	var body string
	extra := 0
	bracket := indirect
	switch mode {
	case 0x0:
		body = "," + reg + "+"
	case 0x1:
		body = "," + reg + "++"
	case 0x2:
		body = ",-" + reg
	case 0x3:
		body = ",--" + reg
	case 0x4:
		body = "," + reg
	case 0x5:
		body = "B," + reg
	case 0x6:
		body = "A," + reg
	case 0x8:
		if len(data) < 2 {
			return mnemUnknown(), 1
		}
		body = fmt.Sprintf("%d,%s", int8(data[1]), reg)
		extra = 1
	case 0x9:
		if len(data) < 3 {
			return mnemUnknown(), 1
		}
		body = fmt.Sprintf("%d,%s", int16(word(data[1:])), reg)
		extra = 2
	case 0xB:
		body = "D," + reg
	case 0xC:
		if len(data) < 2 {
			return mnemUnknown(), 1
		}
		body = fmt.Sprintf("%d,PCR", int8(data[1]))
		extra = 1
	case 0xD:
		if len(data) < 3 {
			return mnemUnknown(), 1
		}
		body = fmt.Sprintf("%d,PCR", int16(word(data[1:])))
		extra = 2
	case 0xF:
		if len(data) < 3 {
			return mnemUnknown(), 1
		}
		body = fmt.Sprintf("$%04X", word(data[1:]))
		extra = 2
		bracket = true
	default:
		return fmt.Sprintf("ILLEGAL($%02X)", pb), 1
	}
	if bracket {
		body = "[" + body + "]"
	}
	return body, 1 + extra
}

func mnemUnknown() string { return "?" }

// formatStackList renders a PSHS/PULS/PSHU/PULU register-list mask.
// Bit 0x40 names U on the S stack, S on the U stack; which physical
// register that is depends on the mnemonic, not the operand bits.
func formatStackList(mnem string, mask byte) string {
	other := "U"
	if strings.HasSuffix(mnem, "U") {
		other = "S"
	}
	order := []struct {
		bit  byte
		name string
	}{
		{0x80, "PC"}, {0x20, "Y"}, {0x10, "X"}, {0x08, "DP"},
		{0x06, "D"}, {0x04, "B"}, {0x02, "A"}, {0x01, "CC"},
	}
	var names []string
	remaining := mask
	for _, o := range order {
		if remaining&o.bit == o.bit {
			names = append(names, o.name)
			remaining &^= o.bit
		}
	}
	if mask&0x40 != 0 {
		names = append(names, other)
	}
	return strings.Join(names, ",")
}

func regPairName(nibble byte) string {
	switch nibble & 0xF {
	case op.RegD:
		return "D"
	case op.RegX:
		return "X"
	case op.RegY:
		return "Y"
	case op.RegU:
		return "U"
	case op.RegS:
		return "S"
	case op.RegPC:
		return "PC"
	case op.RegA:
		return "A"
	case op.RegB:
		return "B"
	case op.RegCC:
		return "CC"
	case op.RegDP:
		return "DP"
	default:
		return "?"
	}
}

// PrintInst renders a hex byte dump alongside the decoded mnemonic,
// for the operator console's examine/trace output.
func PrintInst(data []byte) (string, int) {
	inst, length := Disassemble(data)
	n := length
	if n > len(data) {
		n = len(data)
	}
	if n == 0 {
		n = 1
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%02X", data[i])
	}
	hexCol := strings.Join(parts, " ")
	pad := 14 - len(hexCol)
	if pad < 1 {
		pad = 1
	}
	return hexCol + strings.Repeat(" ", pad) + inst, length
}
