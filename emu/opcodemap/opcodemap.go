/*
   Opcode definitions for the Motorola 6809.

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

// Package opcodemap holds the primary and prefixed 6809 opcode values
// shared by the CPU core, the assembler's encoder, and the disassembler.
package opcodemap

// Page-1 (unprefixed) opcodes.
const (
	OpNEGdir = 0x00 // NEG direct
	OpCOMdir = 0x03 // COM direct
	OpLSRdir = 0x04 // LSR direct
	OpRORdir = 0x06 // ROR direct
	OpASRdir = 0x07 // ASR direct
	OpASLdir = 0x08 // ASL/LSL direct
	OpROLdir = 0x09 // ROL direct
	OpDECdir = 0x0A // DEC direct
	OpINCdir = 0x0C // INC direct
	OpTSTdir = 0x0D // TST direct
	OpJMPdir = 0x0E // JMP direct
	OpCLRdir = 0x0F // CLR direct
	OpPage2  = 0x10 // prefix to page 2
	OpPage3  = 0x11 // prefix to page 3
	OpNOP    = 0x12
	OpSYNC   = 0x13
	OpLBRA   = 0x16
	OpLBSR   = 0x17
	OpDAA    = 0x19
	OpORCC   = 0x1A
	OpANDCC  = 0x1C
	OpSEX    = 0x1D
	OpEXG    = 0x1E
	OpTFR    = 0x1F
	OpBRA    = 0x20
	OpBRN    = 0x21
	OpBHI    = 0x22
	OpBLS    = 0x23
	OpBHS    = 0x24 // = BCC
	OpBLO    = 0x25 // = BCS
	OpBNE    = 0x26
	OpBEQ    = 0x27
	OpBVC    = 0x28
	OpBVS    = 0x29
	OpBPL    = 0x2A
	OpBMI    = 0x2B
	OpBGE    = 0x2C
	OpBLT    = 0x2D
	OpBGT    = 0x2E
	OpBLE    = 0x2F
	OpLEAX   = 0x30
	OpLEAY   = 0x31
	OpLEAS   = 0x32
	OpLEAU   = 0x33
	OpPSHS   = 0x34
	OpPULS   = 0x35
	OpPSHU   = 0x36
	OpPULU   = 0x37
	OpRTS    = 0x39
	OpABX    = 0x3A
	OpRTI    = 0x3B
	OpCWAI   = 0x3C
	OpMUL    = 0x3D
	OpSWI    = 0x3F

	OpNEGA = 0x40
	OpCOMA = 0x43
	OpLSRA = 0x44
	OpRORA = 0x46
	OpASRA = 0x47
	OpASLA = 0x48
	OpROLA = 0x49
	OpDECA = 0x4A
	OpINCA = 0x4C
	OpTSTA = 0x4D
	OpCLRA = 0x4F

	OpNEGB = 0x50
	OpCOMB = 0x53
	OpLSRB = 0x54
	OpRORB = 0x56
	OpASRB = 0x57
	OpASLB = 0x58
	OpROLB = 0x59
	OpDECB = 0x5A
	OpINCB = 0x5C
	OpTSTB = 0x5D
	OpCLRB = 0x5F

	OpNEGidx = 0x60
	OpCOMidx = 0x63
	OpLSRidx = 0x64
	OpRORidx = 0x66
	OpASRidx = 0x67
	OpASLidx = 0x68
	OpROLidx = 0x69
	OpDECidx = 0x6A
	OpINCidx = 0x6C
	OpTSTidx = 0x6D
	OpJMPidx = 0x6E
	OpCLRidx = 0x6F

	OpNEGext = 0x70
	OpCOMext = 0x73
	OpLSRext = 0x74
	OpRORext = 0x76
	OpASRext = 0x77
	OpASLext = 0x78
	OpROLext = 0x79
	OpDECext = 0x7A
	OpINCext = 0x7C
	OpTSText = 0x7D
	OpJMPext = 0x7E
	OpCLRext = 0x7F

	OpSUBAimm = 0x80
	OpCMPAimm = 0x81
	OpSBCAimm = 0x82
	OpSUBDimm = 0x83
	OpANDAimm = 0x84
	OpBITAimm = 0x85
	OpLDAimm  = 0x86
	OpEORAimm = 0x88
	OpADCAimm = 0x89
	OpORAimm  = 0x8A
	OpADDAimm = 0x8B
	OpCMPXimm = 0x8C
	OpBSR     = 0x8D
	OpLDXimm  = 0x8E

	OpSUBAdir = 0x90
	OpCMPAdir = 0x91
	OpSBCAdir = 0x92
	OpSUBDdir = 0x93
	OpANDAdir = 0x94
	OpBITAdir = 0x95
	OpLDAdir  = 0x96
	OpSTAdir  = 0x97
	OpEORAdir = 0x98
	OpADCAdir = 0x99
	OpORAdir  = 0x9A
	OpADDAdir = 0x9B
	OpCMPXdir = 0x9C
	OpJSRdir  = 0x9D
	OpLDXdir  = 0x9E
	OpSTXdir  = 0x9F

	OpSUBAidx = 0xA0
	OpCMPAidx = 0xA1
	OpSBCAidx = 0xA2
	OpSUBDidx = 0xA3
	OpANDAidx = 0xA4
	OpBITAidx = 0xA5
	OpLDAidx  = 0xA6
	OpSTAidx  = 0xA7
	OpEORAidx = 0xA8
	OpADCAidx = 0xA9
	OpORAidx  = 0xAA
	OpADDAidx = 0xAB
	OpCMPXidx = 0xAC
	OpJSRidx  = 0xAD
	OpLDXidx  = 0xAE
	OpSTXidx  = 0xAF

	OpSUBAext = 0xB0
	OpCMPAext = 0xB1
	OpSBCAext = 0xB2
	OpSUBDext = 0xB3
	OpANDAext = 0xB4
	OpBITAext = 0xB5
	OpLDAext  = 0xB6
	OpSTAext  = 0xB7
	OpEORAext = 0xB8
	OpADCAext = 0xB9
	OpORAext  = 0xBA
	OpADDAext = 0xBB
	OpCMPXext = 0xBC
	OpJSRext  = 0xBD
	OpLDXext  = 0xBE
	OpSTXext  = 0xBF

	OpSUBBimm = 0xC0
	OpCMPBimm = 0xC1
	OpSBCBimm = 0xC2
	OpADDDimm = 0xC3
	OpANDBimm = 0xC4
	OpBITBimm = 0xC5
	OpLDBimm  = 0xC6
	OpEORBimm = 0xC8
	OpADCBimm = 0xC9
	OpORBimm  = 0xCA
	OpADDBimm = 0xCB
	OpLDDimm  = 0xCC
	OpLDUimm  = 0xCE

	OpSUBBdir = 0xD0
	OpCMPBdir = 0xD1
	OpSBCBdir = 0xD2
	OpADDDdir = 0xD3
	OpANDBdir = 0xD4
	OpBITBdir = 0xD5
	OpLDBdir  = 0xD6
	OpSTBdir  = 0xD7
	OpEORBdir = 0xD8
	OpADCBdir = 0xD9
	OpORBdir  = 0xDA
	OpADDBdir = 0xDB
	OpLDDdir  = 0xDC
	OpSTDdir  = 0xDD
	OpLDUdir  = 0xDE
	OpSTUdir  = 0xDF

	OpSUBBidx = 0xE0
	OpCMPBidx = 0xE1
	OpSBCBidx = 0xE2
	OpADDDidx = 0xE3
	OpANDBidx = 0xE4
	OpBITBidx = 0xE5
	OpLDBidx  = 0xE6
	OpSTBidx  = 0xE7
	OpEORBidx = 0xE8
	OpADCBidx = 0xE9
	OpORBidx  = 0xEA
	OpADDBidx = 0xEB
	OpLDDidx  = 0xEC
	OpSTDidx  = 0xED
	OpLDUidx  = 0xEE
	OpSTUidx  = 0xEF

	OpSUBBext = 0xF0
	OpCMPBext = 0xF1
	OpSBCBext = 0xF2
	OpADDDext = 0xF3
	OpANDBext = 0xF4
	OpBITBext = 0xF5
	OpLDBext  = 0xF6
	OpSTBext  = 0xF7
	OpEORBext = 0xF8
	OpADCBext = 0xF9
	OpORBext  = 0xFA
	OpADDBext = 0xFB
	OpLDDext  = 0xFC
	OpSTDext  = 0xFD
	OpLDUext  = 0xFE
	OpSTUext  = 0xFF
)

// Page-2 opcodes (prefixed with 0x10). The long conditional branches
// reuse the page-1 short-branch low nibble; the assembler's branch
// table adds the 0x1000 prefix marker, not distinct constants here.
const (
	OpLBRN    = 0x21
	OpLBHI    = 0x22
	OpLBLS    = 0x23
	OpLBHS    = 0x24
	OpLBLO    = 0x25
	OpLBNE    = 0x26
	OpLBEQ    = 0x27
	OpLBVC    = 0x28
	OpLBVS    = 0x29
	OpLBPL    = 0x2A
	OpLBMI    = 0x2B
	OpLBGE    = 0x2C
	OpLBLT    = 0x2D
	OpLBGT    = 0x2E
	OpLBLE    = 0x2F
	OpSWI2    = 0x3F
	OpCMPDimm = 0x83
	OpCMPYimm = 0x8C
	OpLDYimm  = 0x8E
	OpCMPDdir = 0x93
	OpCMPYdir = 0x9C
	OpLDYdir  = 0x9E
	OpSTYdir  = 0x9F
	OpCMPDidx = 0xA3
	OpCMPYidx = 0xAC
	OpLDYidx  = 0xAE
	OpSTYidx  = 0xAF
	OpCMPDext = 0xB3
	OpCMPYext = 0xBC
	OpLDYext  = 0xBE
	OpSTYext  = 0xBF
	OpLDSimm  = 0xCE
	OpLDSdir  = 0xDE
	OpSTSdir  = 0xDF
	OpLDSidx  = 0xEE
	OpSTSidx  = 0xEF
	OpLDSext  = 0xFE
	OpSTSext  = 0xFF
)

// Page-3 opcodes (prefixed with 0x11).
const (
	OpSWI3    = 0x3F
	OpCMPUimm = 0x83
	OpCMPSimm = 0x8C
	OpCMPUdir = 0x93
	OpCMPSdir = 0x9C
	OpCMPUidx = 0xA3
	OpCMPSidx = 0xAC
	OpCMPUext = 0xB3
	OpCMPSext = 0xBC
)

// IllegalPostbytes holds the indexed-mode postbyte values defined to
// produce a zero effective address ("illegal" per the 6809 postbyte
// table) instead of faulting.
var IllegalPostbytes = map[byte]bool{
	0x87: true, 0x8A: true, 0x8E: true,
	0x97: true, 0x9A: true, 0x9E: true,
	0xA7: true, 0xAA: true, 0xAE: true,
	0xB7: true, 0xBA: true, 0xBE: true,
	0xC7: true, 0xCA: true, 0xCE: true,
	0xD7: true, 0xDA: true, 0xDE: true,
	0xE7: true, 0xEA: true, 0xEE: true,
	0xF7: true, 0xFA: true, 0xFE: true,
}

// Interrupt/reset vector addresses (big-endian words).
const (
	VecSWI3  uint16 = 0xFFF2
	VecSWI2  uint16 = 0xFFF4
	VecFIRQ  uint16 = 0xFFF6
	VecIRQ   uint16 = 0xFFF8
	VecSWI   uint16 = 0xFFFA
	VecReset uint16 = 0xFFFE
)

// TFR/EXG register-select nibble values.
const (
	RegD  = 0x0
	RegX  = 0x1
	RegY  = 0x2
	RegU  = 0x3
	RegS  = 0x4
	RegPC = 0x5
	RegA  = 0x8
	RegB  = 0x9
	RegCC = 0xA
	RegDP = 0xB
)
