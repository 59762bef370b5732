package assembler

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func assembleSource(t *testing.T, src string) *Assembler {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.asm")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	a := NewAssembler()
	if err := a.LoadFile(path, nil); err != nil {
		t.Fatal(err)
	}
	a.Run()
	return a
}

func firstSegment(t *testing.T, a *Assembler) *Segment {
	t.Helper()
	if len(a.Segments) == 0 {
		t.Fatal("no segments produced")
	}
	return a.Segments[0]
}

func TestImmediateLDA(t *testing.T) {
	a := assembleSource(t, "        ORG $0000\n        LDA #$42\n")
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	if !bytes.Equal(seg.Data, []byte{0x86, 0x42}) {
		t.Errorf("bytes = % X, want 86 42", seg.Data)
	}
}

func TestForwardReferenceResolves(t *testing.T) {
	a := assembleSource(t, "        ORG $0000\n        LDX #TARGET\nTARGET  NOP\n")
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	// LDX #TARGET -> 8E 00 03, then NOP -> 12
	if !bytes.Equal(seg.Data, []byte{0x8E, 0x00, 0x03, 0x12}) {
		t.Errorf("bytes = % X, want 8E 00 03 12", seg.Data)
	}
	sym := a.Sym.Lookup("TARGET")
	if sym == nil || sym.Value != 0x0003 {
		t.Errorf("TARGET = %#x, want 0x0003", sym.Value)
	}
}

func TestDirectPageSelection(t *testing.T) {
	a := assembleSource(t, "        ORG $0000\nFLAG    EQU $50\n        LDA FLAG\n")
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	// DP defaults to 0, FLAG's high byte is 0 so LDA should pick direct mode (2 bytes): 96 50.
	if !bytes.Equal(seg.Data, []byte{0x96, 0x50}) {
		t.Errorf("bytes = % X, want 96 50 (direct mode)", seg.Data)
	}
}

func TestExtendedFallback(t *testing.T) {
	a := assembleSource(t, "        ORG $0000\n        LDA $2000\n")
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	if !bytes.Equal(seg.Data, []byte{0xB6, 0x20, 0x00}) {
		t.Errorf("bytes = % X, want B6 20 00 (extended mode)", seg.Data)
	}
}

func TestShortBranchSelfLoop(t *testing.T) {
	a := assembleSource(t, "        ORG $0100\nLOOP    BRA LOOP\n")
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	if !bytes.Equal(seg.Data, []byte{0x20, 0xFE}) {
		t.Errorf("bytes = % X, want 20 FE (self-loop)", seg.Data)
	}
}

func TestBranchOutOfRangeFlagged(t *testing.T) {
	var body string
	body += "        ORG $0000\n"
	body += "TARGET  NOP\n"
	for i := 0; i < 200; i++ {
		body += "        NOP\n"
	}
	body += "        BRA TARGET\n"
	a := assembleSource(t, body)
	if !a.Errs.HasErrors() {
		t.Fatal("expected a range error for an out-of-range short branch")
	}
	found := false
	for _, e := range a.Errs.Errors {
		if e.Flag&ErrRange != 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("no ErrRange diagnostic among: %v", a.Errs.Error())
	}
}

func TestIndexedModes(t *testing.T) {
	a := assembleSource(t, "        ORG $0000\n        LDA ,X+\n        LDA ,Y\n        LDA 5,U\n        LEAX 5,Y\n")
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	want := []byte{
		0xA6, 0x80, // LDA ,X+
		0xA6, 0xA4, // LDA ,Y  (reg=1 zero offset)
		0xA6, 0x45, // LDA 5,U (reg=2, 5-bit offset)
		0x30, 0x25, // LEAX 5,Y
	}
	if !bytes.Equal(seg.Data, want) {
		t.Errorf("bytes = % X, want % X", seg.Data, want)
	}
}

func TestFCBFDBFCC(t *testing.T) {
	a := assembleSource(t, "        ORG $0000\n        FCB 1,2,3\n        FDB $1234\n        FCC /HI/\n")
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	want := []byte{1, 2, 3, 0x12, 0x34, 'H', 'I'}
	if !bytes.Equal(seg.Data, want) {
		t.Errorf("bytes = % X, want % X", seg.Data, want)
	}
}

func TestPSHSPULSRegisterList(t *testing.T) {
	a := assembleSource(t, "        ORG $0000\n        PSHS D,X,Y\n        PULS D,X,Y\n")
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	want := []byte{0x34, 0x36, 0x35, 0x36} // D=A|B=0x06, X=0x10, Y=0x20 -> 0x36
	if !bytes.Equal(seg.Data, want) {
		t.Errorf("bytes = % X, want % X", seg.Data, want)
	}
}

func TestMultiplyDefinedConstantFlagged(t *testing.T) {
	a := assembleSource(t, "FOO     EQU $01\nFOO     EQU $02\n")
	found := false
	for _, e := range a.Errs.Errors {
		if e.Flag&ErrMultiplyDef != 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ErrMultiplyDef, got: %v", a.Errs.Error())
	}
}

func TestUndefinedSymbolFlagged(t *testing.T) {
	a := assembleSource(t, "        ORG $0000\n        LDA NOWHERE\n")
	found := false
	for _, e := range a.Errs.Errors {
		if e.Flag&ErrUndefinedSym != 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ErrUndefinedSym, got: %v", a.Errs.Error())
	}
}

func TestMacroExpansion(t *testing.T) {
	src := "INCA2   MACRO\n" +
		"        ADDA #\\1\n" +
		"        ENDM\n" +
		"        ORG $0000\n" +
		"        INCA2 2\n"
	a := assembleSource(t, src)
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	if !bytes.Equal(seg.Data, []byte{0x8B, 0x02}) {
		t.Errorf("bytes = % X, want 8B 02", seg.Data)
	}
}

func TestConditionalAssembly(t *testing.T) {
	src := "FLAG    SET 0\n" +
		"        ORG $0000\n" +
		"        IF FLAG\n" +
		"        LDA #$01\n" +
		"        ELSE\n" +
		"        LDA #$02\n" +
		"        ENDIF\n"
	a := assembleSource(t, src)
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errs.Error())
	}
	seg := firstSegment(t, a)
	if !bytes.Equal(seg.Data, []byte{0x86, 0x02}) {
		t.Errorf("bytes = % X, want 86 02 (FLAG false branch taken)", seg.Data)
	}
}

func TestWriteSRecordChecksum(t *testing.T) {
	segs := []*Segment{{Start: 0x0000, Data: []byte{0x86, 0x42}}}
	var buf bytes.Buffer
	if err := WriteSRecord(&buf, segs, 0x0000); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("S1050000864232")) {
		t.Errorf("unexpected S-record output: %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("S9")) {
		t.Errorf("missing S9 terminator: %q", out)
	}
}

func TestWriteBinImageZeroFillsGap(t *testing.T) {
	segs := []*Segment{
		{Start: 0x0000, Data: []byte{0x01, 0x02}},
		{Start: 0x0005, Data: []byte{0x03}},
	}
	var buf bytes.Buffer
	if err := WriteBinImage(&buf, segs); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x01, 0x02, 0, 0, 0, 0x03}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("image = % X, want % X", buf.Bytes(), want)
	}
}

func TestExpressionOperators(t *testing.T) {
	a := assembleSource(t, "VAL     EQU (2+3)*4-1\n")
	sym := a.Sym.Lookup("VAL")
	if sym == nil || sym.Value != 19 {
		t.Errorf("VAL = %v, want 19", sym)
	}
}

func TestExpressionBitwisePrecedence(t *testing.T) {
	// | binds loosest, then ^, then &: "6|1&3" must read as 6|(1&3),
	// not (6|1)&3.
	a := assembleSource(t, "VAL     EQU 6|1&3\n")
	sym := a.Sym.Lookup("VAL")
	if sym == nil || sym.Value != 7 {
		t.Errorf("VAL = %v, want 7", sym)
	}
}

func TestExpressionComparisonOperators(t *testing.T) {
	a := assembleSource(t, "A       EQU 1==1\nB       EQU 1!=1\nC       EQU 1<2\nD       EQU 2<=2\nE       EQU 3>2\nF       EQU !0\n")
	cases := []struct {
		name string
		want uint16
	}{
		{"A", 1}, {"B", 0}, {"C", 1}, {"D", 1}, {"E", 1}, {"F", 1},
	}
	for _, c := range cases {
		sym := a.Sym.Lookup(c.name)
		if sym == nil || sym.Value != c.want {
			t.Errorf("%s = %v, want %d", c.name, sym, c.want)
		}
	}
}
