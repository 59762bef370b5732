/*
   Two-pass driver: source and INCLUDE traversal, label table
   construction, and per-line error accumulation.

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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// SourceLine is one line of input after INCLUDE flattening, carrying
// enough provenance for error messages and the listing.
type SourceLine struct {
	File string
	Num  int
	Text string
}

// Macro is a MACRO/ENDM body captured verbatim; expansion substitutes
// \1..\9 positional parameters textually before the expanded lines are
// spliced back into the line stream.
type Macro struct {
	Name   string
	Params []string
	Body   []SourceLine
}

// Segment is a contiguous run of assembled bytes starting at Start.
// ORG directives that jump the location counter around open a new
// segment rather than zero-filling the gap.
type Segment struct {
	Start uint16
	Data  []byte
}

// Assembler drives both passes over a flattened source list, holding
// everything that must survive from pass 1 into pass 2: the symbol
// table, the per-instruction addressing-mode decisions (so pass 2
// never disagrees with pass 1 about an instruction's length), and the
// accumulated diagnostics.
type Assembler struct {
	Sym      *SymTab
	Errs     *ErrorList
	Segments []*Segment
	here     uint16
	lineStart uint16 // location counter at the start of the current line; the value of '*'
	dp       uint8 // current assumed direct page, set by SETDP
	pass     int
	macros   map[string]*Macro
	modeCache map[int]byte // line index -> 'D'/'E' or indexed offset size '5'/'8'/'9' decided in pass 1
	ifStack  []bool
	skipDepth int
	lines    []SourceLine
	listing  []ListLine

	ended      bool
	hasEntry   bool
	EntryPoint uint16

	curLineFlags ErrFlag
}

// addErr records a diagnostic against the ErrorList and folds its flag
// into the line currently being assembled, so the pass-2 listing can
// show a compact per-line error column.
func (a *Assembler) addErr(line int, flag ErrFlag, format string, args ...any) {
	for _, arg := range args {
		if ee, ok := arg.(*evalError); ok && flag == ErrExprSyntax {
			flag = ee.flag
		}
	}
	a.curLineFlags |= flag
	a.Errs.Add(line, flag, format, args...)
}

// ListLine is one row of the pass-2 assembly listing.
type ListLine struct {
	Addr    uint16
	Bytes   []byte
	Errors  ErrFlag
	Source  SourceLine
}

func NewAssembler() *Assembler {
	return &Assembler{
		Sym:       NewSymTab(),
		Errs:      &ErrorList{},
		macros:    make(map[string]*Macro),
		modeCache: make(map[int]byte),
	}
}

// LoadFile reads path and any files it INCLUDEs, in order, into a flat
// line list. includeDirs is searched (in order, after the including
// file's own directory) for bare INCLUDE filenames.
func (a *Assembler) LoadFile(path string, includeDirs []string) error {
	lines, err := loadRecursive(path, includeDirs, 0)
	if err != nil {
		return err
	}
	a.lines = lines
	return nil
}

func loadRecursive(path string, includeDirs []string, depth int) ([]SourceLine, error) {
	if depth > 16 {
		return nil, fmt.Errorf("INCLUDE nested too deeply at %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []SourceLine
	scan := bufio.NewScanner(f)
	scan.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scan.Scan() {
		lineNo++
		text := scan.Text()
		if field := includeTarget(text); field != "" {
			resolved, rerr := resolveInclude(field, filepath.Dir(path), includeDirs)
			if rerr != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, rerr)
			}
			sub, serr := loadRecursive(resolved, includeDirs, depth+1)
			if serr != nil {
				return nil, serr
			}
			out = append(out, sub...)
			continue
		}
		out = append(out, SourceLine{File: path, Num: lineNo, Text: text})
	}
	if err := scan.Err(); err != nil && err != io.EOF {
		return nil, err
	}
	return out, nil
}

// includeTarget returns the filename operand if text is an INCLUDE
// directive (label field must be empty), else "".
func includeTarget(text string) string {
	fields := strings.Fields(text)
	if len(fields) >= 2 && strings.EqualFold(fields[0], "INCLUDE") && !startsInColumn1Label(text) {
		return strings.Trim(fields[1], `"`)
	}
	return ""
}

// startsInColumn1Label reports whether the line begins with a
// non-space character that isn't the mnemonic itself, i.e. a label is
// present, which INCLUDE (a directive, not an addressable statement)
// never takes.
func startsInColumn1Label(text string) bool {
	return len(text) > 0 && !unicode.IsSpace(rune(text[0])) && !strings.EqualFold(strings.Fields(text)[0], "INCLUDE")
}

func resolveInclude(name, baseDir string, includeDirs []string) (string, error) {
	candidates := append([]string{baseDir}, includeDirs...)
	for _, dir := range candidates {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("INCLUDE file %q not found", name)
}

// Fields is one decoded source line: label, mnemonic, operand string
// (still unparsed), and an optional trailing comment already stripped.
type Fields struct {
	Label   string
	Mnemonic string
	Operand string
}

// splitLine tokenizes a line into label/mnemonic/operand, respecting a
// leading '*' or ';' full-line comment and a trailing comment
// introduced by any ';' outside of a single-quoted character constant.
func splitLine(text string) (Fields, bool) {
	if len(text) == 0 {
		return Fields{}, false
	}
	if text[0] == '*' || text[0] == ';' {
		return Fields{}, false
	}
	text = stripComment(text)
	if strings.TrimSpace(text) == "" {
		return Fields{}, false
	}

	var f Fields
	if !unicode.IsSpace(rune(text[0])) {
		label, rest := splitFirstField(text)
		f.Label = label
		text = rest
	}
	text = strings.TrimLeft(text, " \t")
	mnem, rest := splitFirstField(text)
	f.Mnemonic = strings.ToUpper(mnem)
	f.Operand = strings.TrimSpace(rest)
	return f, true
}

func splitFirstField(s string) (string, string) {
	for i, c := range s {
		if unicode.IsSpace(c) {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// stripComment removes a ';'-introduced comment, honoring single-quoted
// character constants so "LDA #';'" is not mistaken for one.
func stripComment(s string) string {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return s[:i]
			}
		}
	}
	return s
}

// resolver builds a SymResolver bound to the current pass: pass 1
// tolerates undefined symbols (returns Defined=false, value 0) so
// expressions involving forward references still produce a length
// estimate; pass 2 requires every symbol to already be defined.
func (a *Assembler) resolver() SymResolver {
	return func(name string) (Value, bool) {
		if name == "A" || name == "B" || name == "X" || name == "Y" || name == "U" || name == "S" || name == "D" || name == "PC" || name == "CC" || name == "DP" {
			return Value{}, false
		}
		sym := a.Sym.Lookup(name)
		if sym == nil {
			if a.pass == 1 {
				a.Sym.Reference(name)
				return Value{Num: 0, Reloc: RelocAbsolute, Defined: false}, true
			}
			return Value{}, false
		}
		if sym.Category&SymUnresolved != 0 {
			if a.pass == 1 {
				return Value{Num: 0, Reloc: RelocAbsolute, Defined: false}, true
			}
			return Value{}, false
		}
		return Value{Num: sym.Value, Reloc: sym.Reloc, Defined: true}, true
	}
}

func (a *Assembler) eval(expr string) (Value, error) {
	ev := NewEvaluator(expr, a.lineStart, a.resolver())
	v, err := ev.Eval()
	if err != nil && ev.errFlag != 0 {
		err = &evalError{flag: ev.errFlag, msg: err.Error()}
	}
	return v, err
}

// evalError carries the evaluator's own diagnostic category (such as
// ErrUndefinedSym) so addErr files it under that flag.
type evalError struct {
	flag ErrFlag
	msg  string
}

func (e *evalError) Error() string { return e.msg }

// Run executes pass 1 then pass 2 and returns the assembled segments.
// Errors accumulate in a.Errs rather than aborting; callers should
// check a.Errs.HasErrors() after Run returns.
func (a *Assembler) Run() []*Segment {
	a.RunPass1()
	return a.RunPass2()
}

// RunPass1 discovers label addresses and instruction sizes. Callers
// that want to offer a continue-after-pass-1 prompt check
// a.Errs.HasErrors() between RunPass1 and RunPass2.
func (a *Assembler) RunPass1() {
	a.expandMacrosAndConditionals()
	a.pass = 1
	a.runPass()
}

// RunPass2 re-encodes with labels resolved, emits bytes, and builds
// the listing. Must follow RunPass1.
func (a *Assembler) RunPass2() []*Segment {
	a.pass = 2
	a.here = 0
	a.Segments = nil
	a.runPass()
	return a.Segments
}

func (a *Assembler) runPass() {
	a.ifStack = a.ifStack[:0]
	a.skipDepth = 0
	a.ended = false
	if a.pass == 2 {
		a.listing = a.listing[:0]
	}
	for i, line := range a.lines {
		if a.ended {
			break
		}
		startAddr := a.here
		a.lineStart = startAddr
		startLen := a.totalEmitted()
		a.curLineFlags = 0
		a.processLine(i, line)
		if a.pass == 2 {
			emitted := a.totalEmitted() - startLen
			var bytes []byte
			if emitted > 0 {
				bytes = a.bytesSince(startAddr, emitted)
			}
			a.listing = append(a.listing, ListLine{Addr: startAddr, Bytes: bytes, Errors: a.curLineFlags, Source: line})
		}
	}
}

// totalEmitted is the running count of bytes emitted so far across all
// segments, used to detect how many bytes one source line produced.
func (a *Assembler) totalEmitted() int {
	n := 0
	for _, seg := range a.Segments {
		n += len(seg.Data)
	}
	return n
}

// bytesSince returns the n bytes emitted starting at addr, which is
// always the tail of the last segment since emit() only ever appends.
func (a *Assembler) bytesSince(addr uint16, n int) []byte {
	if len(a.Segments) == 0 {
		return nil
	}
	seg := a.Segments[len(a.Segments)-1]
	off := int(addr) - int(seg.Start)
	if off < 0 || off+n > len(seg.Data) {
		return nil
	}
	return seg.Data[off : off+n]
}

func (a *Assembler) emit(b byte) {
	if len(a.Segments) == 0 || a.Segments[len(a.Segments)-1].Start+uint16(len(a.Segments[len(a.Segments)-1].Data)) != a.here {
		a.Segments = append(a.Segments, &Segment{Start: a.here})
	}
	seg := a.Segments[len(a.Segments)-1]
	seg.Data = append(seg.Data, b)
	a.here++
}

// Listing returns pass 2's per-line assembly listing.
func (a *Assembler) Listing() []ListLine { return a.listing }

func (a *Assembler) emitWord(w uint16) {
	a.emit(byte(w >> 8))
	a.emit(byte(w))
}
