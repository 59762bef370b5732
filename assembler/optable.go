/*
   Mnemonic-to-opcode table for the assembler's encoder.

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

import op "github.com/hcornwell/m6809/emu/opcodemap"

// OpClass picks which emission template encode.go uses for a
// mnemonic: how many operand bytes follow, how the addressing mode is
// auto-selected, and which opcode field to pull the base value from.
type OpClass uint8

const (
	ClassInherent  OpClass = iota // no operand: NOP, RTS, DAA, MUL, ...
	ClassImm8Only                 // one fixed-size immediate byte: ANDCC, ORCC, CWAI
	ClassAccumALU                 // 8-bit accumulator op: imm/dir/idx/ext, auto-selected
	ClassAccumNoImm                // like ClassAccumALU but has no immediate form: STA, STB
	ClassReg16ALU                 // 16-bit register op: imm(16)/dir/idx/ext
	ClassRMW                      // read-modify-write memory op: dir/idx/ext only
	ClassRMWAccum                 // read-modify-write on A or B directly, inherent
	ClassJump                     // JMP/JSR: dir/idx/ext, no immediate
	ClassBranchShort               // 8-bit PC-relative
	ClassBranchLong                // 16-bit PC-relative, some prefixed page 2
	ClassLEA                       // indexed-only, produces an address not a memory fetch
	ClassStack                     // PSHS/PULS/PSHU/PULU: register-list operand
	ClassRegPair                    // TFR/EXG: two register names
)

// noOp marks an addressing mode as unavailable for a mnemonic.
const noOp = -1

// Entry is one row of the table: the emission class plus one opcode
// value per addressing mode the class actually uses. Unused fields are
// noOp. Prefix is 0 for page 1, 1 for page 2 (0x10), 2 for page 3 (0x11).
type Entry struct {
	Mnemonic string
	Class    OpClass
	Prefix   uint8
	Imm      int
	Dir      int
	Idx      int
	Ext      int
	Inherent int
}

var opTable map[string]*Entry

func init() {
	opTable = make(map[string]*Entry)

	addAccum := func(mnem string, imm, dir, idx, ext int, noImm bool) {
		class := ClassAccumALU
		if noImm {
			class = ClassAccumNoImm
		}
		opTable[mnem] = &Entry{Mnemonic: mnem, Class: class, Imm: imm, Dir: dir, Idx: idx, Ext: ext, Inherent: noOp}
	}
	addAccum("SUBA", op.OpSUBAimm, op.OpSUBAdir, op.OpSUBAidx, op.OpSUBAext, false)
	addAccum("CMPA", op.OpCMPAimm, op.OpCMPAdir, op.OpCMPAidx, op.OpCMPAext, false)
	addAccum("SBCA", op.OpSBCAimm, op.OpSBCAdir, op.OpSBCAidx, op.OpSBCAext, false)
	addAccum("ANDA", op.OpANDAimm, op.OpANDAdir, op.OpANDAidx, op.OpANDAext, false)
	addAccum("BITA", op.OpBITAimm, op.OpBITAdir, op.OpBITAidx, op.OpBITAext, false)
	addAccum("LDA", op.OpLDAimm, op.OpLDAdir, op.OpLDAidx, op.OpLDAext, false)
	addAccum("STA", noOp, op.OpSTAdir, op.OpSTAidx, op.OpSTAext, true)
	addAccum("EORA", op.OpEORAimm, op.OpEORAdir, op.OpEORAidx, op.OpEORAext, false)
	addAccum("ADCA", op.OpADCAimm, op.OpADCAdir, op.OpADCAidx, op.OpADCAext, false)
	addAccum("ORA", op.OpORAimm, op.OpORAdir, op.OpORAidx, op.OpORAext, false)
	addAccum("ADDA", op.OpADDAimm, op.OpADDAdir, op.OpADDAidx, op.OpADDAext, false)

	addAccum("SUBB", op.OpSUBBimm, op.OpSUBBdir, op.OpSUBBidx, op.OpSUBBext, false)
	addAccum("CMPB", op.OpCMPBimm, op.OpCMPBdir, op.OpCMPBidx, op.OpCMPBext, false)
	addAccum("SBCB", op.OpSBCBimm, op.OpSBCBdir, op.OpSBCBidx, op.OpSBCBext, false)
	addAccum("ANDB", op.OpANDBimm, op.OpANDBdir, op.OpANDBidx, op.OpANDBext, false)
	addAccum("BITB", op.OpBITBimm, op.OpBITBdir, op.OpBITBidx, op.OpBITBext, false)
	addAccum("LDB", op.OpLDBimm, op.OpLDBdir, op.OpLDBidx, op.OpLDBext, false)
	addAccum("STB", noOp, op.OpSTBdir, op.OpSTBidx, op.OpSTBext, true)
	addAccum("EORB", op.OpEORBimm, op.OpEORBdir, op.OpEORBidx, op.OpEORBext, false)
	addAccum("ADCB", op.OpADCBimm, op.OpADCBdir, op.OpADCBidx, op.OpADCBext, false)
	addAccum("ORB", op.OpORBimm, op.OpORBdir, op.OpORBidx, op.OpORBext, false)
	addAccum("ADDB", op.OpADDBimm, op.OpADDBdir, op.OpADDBidx, op.OpADDBext, false)

	addReg16 := func(mnem string, prefix uint8, imm, dir, idx, ext int, noImm bool) {
		class := ClassReg16ALU
		if noImm {
			class = ClassAccumNoImm
		}
		opTable[mnem] = &Entry{Mnemonic: mnem, Class: class, Prefix: prefix, Imm: imm, Dir: dir, Idx: idx, Ext: ext, Inherent: noOp}
	}
	addReg16("SUBD", 0, op.OpSUBDimm, op.OpSUBDdir, op.OpSUBDidx, op.OpSUBDext, false)
	addReg16("ADDD", 0, op.OpADDDimm, op.OpADDDdir, op.OpADDDidx, op.OpADDDext, false)
	addReg16("CMPX", 0, op.OpCMPXimm, op.OpCMPXdir, op.OpCMPXidx, op.OpCMPXext, false)
	addReg16("LDX", 0, op.OpLDXimm, op.OpLDXdir, op.OpLDXidx, op.OpLDXext, false)
	addReg16("STX", 0, noOp, op.OpSTXdir, op.OpSTXidx, op.OpSTXext, true)
	addReg16("LDD", 0, op.OpLDDimm, op.OpLDDdir, op.OpLDDidx, op.OpLDDext, false)
	addReg16("STD", 0, noOp, op.OpSTDdir, op.OpSTDidx, op.OpSTDext, true)
	addReg16("LDU", 0, op.OpLDUimm, op.OpLDUdir, op.OpLDUidx, op.OpLDUext, false)
	addReg16("STU", 0, noOp, op.OpSTUdir, op.OpSTUidx, op.OpSTUext, true)

	addReg16("CMPD", 1, op.OpCMPDimm, op.OpCMPDdir, op.OpCMPDidx, op.OpCMPDext, false)
	addReg16("CMPY", 1, op.OpCMPYimm, op.OpCMPYdir, op.OpCMPYidx, op.OpCMPYext, false)
	addReg16("LDY", 1, op.OpLDYimm, op.OpLDYdir, op.OpLDYidx, op.OpLDYext, false)
	addReg16("STY", 1, noOp, op.OpSTYdir, op.OpSTYidx, op.OpSTYext, true)
	addReg16("LDS", 1, op.OpLDSimm, op.OpLDSdir, op.OpLDSidx, op.OpLDSext, false)
	addReg16("STS", 1, noOp, op.OpSTSdir, op.OpSTSidx, op.OpSTSext, true)

	addReg16("CMPU", 2, op.OpCMPUimm, op.OpCMPUdir, op.OpCMPUidx, op.OpCMPUext, false)
	addReg16("CMPS", 2, op.OpCMPSimm, op.OpCMPSdir, op.OpCMPSidx, op.OpCMPSext, false)

	rmwRow := func(mnem string, dir, idx, ext, a, b int) {
		opTable[mnem] = &Entry{Mnemonic: mnem, Class: ClassRMW, Imm: noOp, Dir: dir, Idx: idx, Ext: ext, Inherent: noOp}
		opTable[mnem+"A"] = &Entry{Mnemonic: mnem + "A", Class: ClassRMWAccum, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp, Inherent: a}
		opTable[mnem+"B"] = &Entry{Mnemonic: mnem + "B", Class: ClassRMWAccum, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp, Inherent: b}
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
	opTable["JMP"] = &Entry{Mnemonic: "JMP", Class: ClassJump, Imm: noOp, Dir: op.OpJMPdir, Idx: op.OpJMPidx, Ext: op.OpJMPext, Inherent: noOp}
	opTable["JSR"] = &Entry{Mnemonic: "JSR", Class: ClassJump, Imm: noOp, Dir: op.OpJSRdir, Idx: op.OpJSRidx, Ext: op.OpJSRext, Inherent: noOp}

	opTable["LEAX"] = &Entry{Mnemonic: "LEAX", Class: ClassLEA, Inherent: op.OpLEAX, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["LEAY"] = &Entry{Mnemonic: "LEAY", Class: ClassLEA, Inherent: op.OpLEAY, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["LEAS"] = &Entry{Mnemonic: "LEAS", Class: ClassLEA, Inherent: op.OpLEAS, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["LEAU"] = &Entry{Mnemonic: "LEAU", Class: ClassLEA, Inherent: op.OpLEAU, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}

	opTable["PSHS"] = &Entry{Mnemonic: "PSHS", Class: ClassStack, Inherent: op.OpPSHS, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["PULS"] = &Entry{Mnemonic: "PULS", Class: ClassStack, Inherent: op.OpPULS, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["PSHU"] = &Entry{Mnemonic: "PSHU", Class: ClassStack, Inherent: op.OpPSHU, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["PULU"] = &Entry{Mnemonic: "PULU", Class: ClassStack, Inherent: op.OpPULU, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}

	opTable["TFR"] = &Entry{Mnemonic: "TFR", Class: ClassRegPair, Inherent: op.OpTFR, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["EXG"] = &Entry{Mnemonic: "EXG", Class: ClassRegPair, Inherent: op.OpEXG, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}

	branchPairs := []struct {
		short string
		long  string
		base  int
		lbase int
	}{
		{"BRA", "LBRA", op.OpBRA, op.OpLBRA},
		{"BRN", "LBRN", op.OpBRN, op.OpLBRN},
		{"BHI", "LBHI", op.OpBHI, op.OpLBHI},
		{"BLS", "LBLS", op.OpBLS, op.OpLBLS},
		{"BHS", "LBHS", op.OpBHS, op.OpLBHS},
		{"BCC", "LBCC", op.OpBHS, op.OpLBHS},
		{"BLO", "LBLO", op.OpBLO, op.OpLBLO},
		{"BCS", "LBCS", op.OpBLO, op.OpLBLO},
		{"BNE", "LBNE", op.OpBNE, op.OpLBNE},
		{"BEQ", "LBEQ", op.OpBEQ, op.OpLBEQ},
		{"BVC", "LBVC", op.OpBVC, op.OpLBVC},
		{"BVS", "LBVS", op.OpBVS, op.OpLBVS},
		{"BPL", "LBPL", op.OpBPL, op.OpLBPL},
		{"BMI", "LBMI", op.OpBMI, op.OpLBMI},
		{"BGE", "LBGE", op.OpBGE, op.OpLBGE},
		{"BLT", "LBLT", op.OpBLT, op.OpLBLT},
		{"BGT", "LBGT", op.OpBGT, op.OpLBGT},
		{"BLE", "LBLE", op.OpBLE, op.OpLBLE},
	}
	for _, b := range branchPairs {
		opTable[b.short] = &Entry{Mnemonic: b.short, Class: ClassBranchShort, Inherent: b.base, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
		prefix := uint8(0)
		if b.long != "LBRA" && b.long != "LBSR" {
			prefix = 1
		}
		opTable[b.long] = &Entry{Mnemonic: b.long, Class: ClassBranchLong, Prefix: prefix, Inherent: b.lbase, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	}
	opTable["BSR"] = &Entry{Mnemonic: "BSR", Class: ClassBranchShort, Inherent: op.OpBSR, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["LBSR"] = &Entry{Mnemonic: "LBSR", Class: ClassBranchLong, Inherent: op.OpLBSR, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}

	for mnem, code := range map[string]int{
		"NOP": op.OpNOP, "SYNC": op.OpSYNC, "DAA": op.OpDAA, "SEX": op.OpSEX,
		"ABX": op.OpABX, "RTS": op.OpRTS, "RTI": op.OpRTI, "MUL": op.OpMUL,
		"SWI": op.OpSWI,
	} {
		opTable[mnem] = &Entry{Mnemonic: mnem, Class: ClassInherent, Inherent: code, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	}
	opTable["SWI2"] = &Entry{Mnemonic: "SWI2", Class: ClassInherent, Prefix: 1, Inherent: op.OpSWI2, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["SWI3"] = &Entry{Mnemonic: "SWI3", Class: ClassInherent, Prefix: 2, Inherent: op.OpSWI3, Imm: noOp, Dir: noOp, Idx: noOp, Ext: noOp}

	opTable["ANDCC"] = &Entry{Mnemonic: "ANDCC", Class: ClassImm8Only, Inherent: op.OpANDCC, Imm: op.OpANDCC, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["ORCC"] = &Entry{Mnemonic: "ORCC", Class: ClassImm8Only, Inherent: op.OpORCC, Imm: op.OpORCC, Dir: noOp, Idx: noOp, Ext: noOp}
	opTable["CWAI"] = &Entry{Mnemonic: "CWAI", Class: ClassImm8Only, Inherent: op.OpCWAI, Imm: op.OpCWAI, Dir: noOp, Idx: noOp, Ext: noOp}
}

// Lookup returns the table entry for mnem (case-insensitive callers
// are expected to have already upper-cased it), or nil if unknown.
func Lookup(mnem string) *Entry {
	return opTable[mnem]
}
