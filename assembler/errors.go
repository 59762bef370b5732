/*
   Per-line error accumulation for the two-pass assembler.

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

import "fmt"

// ErrFlag is a bit in the per-line error mask, one bit per diagnostic
// category. A line can set more than one.
type ErrFlag uint8

const (
	ErrExprSyntax    ErrFlag = 1 << iota // 1: expression syntax
	ErrUndefinedSym                      // 2: reference to an undefined symbol
	ErrMultiplyDef                       // 3: symbol defined more than once
	ErrPhaseError                        // 4: label value changed between passes
	ErrRange                             // 5: operand out of range for its addressing mode
	ErrOperandSyntax                     // 6: malformed operand field
	ErrIllegalMnemonic                   // 7: unrecognized mnemonic
	ErrUnbalancedIf                      // improperly nested IF/ENDIF
)

var flagLetters = []struct {
	bit ErrFlag
	ch  byte
}{
	{ErrExprSyntax, '1'},
	{ErrUndefinedSym, '2'},
	{ErrMultiplyDef, '3'},
	{ErrPhaseError, '4'},
	{ErrRange, '5'},
	{ErrOperandSyntax, '6'},
	{ErrIllegalMnemonic, '7'},
	{ErrUnbalancedIf, 'I'},
}

// String renders the set bits as the listing's compact error-flag
// column, e.g. "2" or "26".
func (e ErrFlag) String() string {
	if e == 0 {
		return ""
	}
	out := make([]byte, 0, len(flagLetters))
	for _, f := range flagLetters {
		if e&f.bit != 0 {
			out = append(out, f.ch)
		}
	}
	return string(out)
}

// LineError is one diagnostic attached to a source line.
type LineError struct {
	Line int
	Flag ErrFlag
	Msg  string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%d: [%s] %s", e.Line, e.Flag, e.Msg)
}

// ErrorList collects the diagnostics produced across both passes.
type ErrorList struct {
	Errors []*LineError
}

func (l *ErrorList) Add(line int, flag ErrFlag, format string, args ...any) {
	l.Errors = append(l.Errors, &LineError{Line: line, Flag: flag, Msg: fmt.Sprintf(format, args...)})
}

func (l *ErrorList) HasErrors() bool { return len(l.Errors) > 0 }

func (l *ErrorList) Error() string {
	if len(l.Errors) == 0 {
		return ""
	}
	s := ""
	for i, e := range l.Errors {
		if i > 0 {
			s += "\n"
		}
		s += e.Error()
	}
	return s
}
