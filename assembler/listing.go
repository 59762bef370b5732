/*
   Pass-2 assembly listing: address, emitted bytes, error-flag column,
   and source text per line, plus a trailing sorted symbol table dump.

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
	"fmt"
	"io"
	"strings"
)

// WriteListing renders one line per assembled source statement in the
// classic column layout: address, every byte of object code, the
// compact error-flag letters, and the original source text.
func WriteListing(w io.Writer, lines []ListLine, errs *ErrorList) error {
	for _, l := range lines {
		bytesCol := formatBytes(l.Bytes)
		if _, err := fmt.Fprintf(w, "%04X  %-12s %-2s %s\n", l.Addr, bytesCol, l.Errors.String(), l.Source.Text); err != nil {
			return err
		}
	}
	if errs.HasErrors() {
		if _, err := io.WriteString(w, "\n"+errs.Error()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, "")
}

// WriteSymbolTable renders the sorted symbol table, one name per line
// with its resolved value and category letters.
func WriteSymbolTable(w io.Writer, sym *SymTab) error {
	for _, name := range sym.Names() {
		s := sym.Lookup(name)
		if _, err := fmt.Fprintf(w, "%-16s %04X  %s\n", name, s.Value, categoryLetters(s.Category)); err != nil {
			return err
		}
	}
	return nil
}

func categoryLetters(c SymCategory) string {
	var b strings.Builder
	add := func(bit SymCategory, ch byte) {
		if c&bit != 0 {
			b.WriteByte(ch)
		}
	}
	add(SymConstant, 'C')
	add(SymVariable, 'V')
	add(SymLocal, 'L')
	add(SymExternal, 'X')
	add(SymUnresolved, 'U')
	add(SymPublic, 'P')
	add(SymMacro, 'M')
	return b.String()
}
