/*
   Symbol table for the two-pass assembler.

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

import "sort"

// SymCategory is a bitmask of the roles a symbol can hold
// simultaneously (e.g. public and a constant).
type SymCategory uint8

const (
	SymConstant SymCategory = 1 << iota // defined via EQU
	SymVariable                         // defined/redefined via SET
	SymLocal                            // a numeric local label (digits only)
	SymExternal                         // declared via EXTERN, not yet resolved locally
	SymUnresolved                       // referenced but not yet defined (pass 1 forward reference)
	SymPublic                           // declared via PUBLIC
	SymMacro                            // names a MACRO
	SymEmpty                            // placeholder entry with no value yet
)

// Symbol is one entry in the table: a name, its resolved value (once
// known), a relocation category for the value, and the role bitmask.
type Symbol struct {
	Name     string
	Value    uint16
	Reloc    Reloc
	Category SymCategory
	DefLine  int
}

// SymTab holds every symbol seen across both passes, keyed by name.
// Names() sorts on demand for the listing's symbol table dump, which
// only runs once per assembly.
type SymTab struct {
	syms map[string]*Symbol
}

func NewSymTab() *SymTab {
	return &SymTab{syms: make(map[string]*Symbol)}
}

// Lookup returns the symbol by name, or nil if it has never been seen.
func (t *SymTab) Lookup(name string) *Symbol {
	return t.syms[name]
}

// Define creates or updates a symbol. It flags ErrMultiplyDef via the
// returned bool when a SymConstant is redefined with a different
// value (SET variables may always be redefined).
func (t *SymTab) Define(name string, value uint16, reloc Reloc, cat SymCategory, line int) (sym *Symbol, redefinedConstant bool) {
	if existing, ok := t.syms[name]; ok {
		if existing.Category&SymConstant != 0 && cat&SymVariable == 0 {
			if existing.Value != value || existing.Reloc != reloc {
				redefinedConstant = true
			}
		}
		existing.Value = value
		existing.Reloc = reloc
		existing.Category |= cat
		existing.Category &^= SymUnresolved
		existing.DefLine = line
		return existing, redefinedConstant
	}
	sym = &Symbol{Name: name, Value: value, Reloc: reloc, Category: cat, DefLine: line}
	t.syms[name] = sym
	return sym, false
}

// Reference marks name as seen without a value, for forward references
// during pass 1.
func (t *SymTab) Reference(name string) *Symbol {
	if existing, ok := t.syms[name]; ok {
		return existing
	}
	sym := &Symbol{Name: name, Category: SymUnresolved}
	t.syms[name] = sym
	return sym
}

// Names returns symbol names in sorted order, for the listing's symbol
// table dump.
func (t *SymTab) Names() []string {
	names := make([]string, 0, len(t.syms))
	for n := range t.syms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Unresolved reports every symbol still marked unresolved after pass 1.
func (t *SymTab) Unresolved() []*Symbol {
	var out []*Symbol
	for _, n := range t.Names() {
		s := t.syms[n]
		if s.Category&SymUnresolved != 0 {
			out = append(out, s)
		}
	}
	return out
}
