/*
   Pseudo-op handling: EQU/SET, ORG/RMB, data directives, MACRO/ENDM
   expansion, and IF/ELSE/ENDIF conditional assembly.

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
	"strconv"
	"strings"
)

// expandMacrosAndConditionals performs the purely textual
// MACRO/ENDM-body capture-and-substitution pass. It runs once before
// either pass 1 or pass 2 sees the line stream, since macro expansion
// never depends on a symbol's numeric value. IF/ENDIF, by contrast,
// can depend on a SET variable's value and is therefore evaluated
// fresh inside each of the two real passes (see processLine).
func (a *Assembler) expandMacrosAndConditionals() {
	a.lines = a.expandMacros(a.lines, 0)
}

func (a *Assembler) expandMacros(in []SourceLine, depth int) []SourceLine {
	if depth > 8 {
		a.addErr(0, ErrOperandSyntax, "macro expansion nested too deeply")
		return nil
	}
	var out []SourceLine
	i := 0
	for i < len(in) {
		line := in[i]
		fields, ok := splitLine(line.Text)
		if !ok {
			out = append(out, line)
			i++
			continue
		}
		if fields.Mnemonic == "MACRO" {
			name := fields.Label
			var body []SourceLine
			i++
			for i < len(in) {
				bf, bok := splitLine(in[i].Text)
				if bok && bf.Mnemonic == "ENDM" {
					i++
					break
				}
				body = append(body, in[i])
				i++
			}
			a.macros[strings.ToUpper(name)] = &Macro{Name: name, Body: body}
			continue
		}
		if m, isMacro := a.macros[fields.Mnemonic]; isMacro {
			args := splitOperandList(fields.Operand)
			expanded := make([]SourceLine, 0, len(m.Body))
			for _, bl := range m.Body {
				expanded = append(expanded, SourceLine{
					File: bl.File,
					Num:  bl.Num,
					Text: substituteParams(bl.Text, args),
				})
			}
			out = append(out, a.expandMacros(expanded, depth+1)...)
			i++
			continue
		}
		out = append(out, line)
		i++
	}
	return out
}

// substituteParams replaces \1..\9 with the corresponding invocation
// argument, textually, before the expanded line is re-tokenized.
func substituteParams(text string, args []string) string {
	for idx := len(args); idx >= 1; idx-- {
		placeholder := "\\" + strconv.Itoa(idx)
		if idx <= len(args) {
			text = strings.ReplaceAll(text, placeholder, args[idx-1])
		}
	}
	return text
}

func splitOperandList(operand string) []string {
	if operand == "" {
		return nil
	}
	parts := strings.Split(operand, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// processLine dispatches one already-macro-expanded source line during
// whichever pass is currently running.
func (a *Assembler) processLine(idx int, line SourceLine) {
	fields, ok := splitLine(line.Text)
	if !ok {
		return
	}

	switch fields.Mnemonic {
	case "IF":
		v, _ := a.eval(fields.Operand)
		active := v.Num != 0
		a.ifStack = append(a.ifStack, active)
		if !active {
			a.skipDepth++
		}
		return
	case "ELSE":
		if len(a.ifStack) == 0 {
			a.addErr(line.Num, ErrUnbalancedIf, "ELSE without matching IF")
			return
		}
		top := len(a.ifStack) - 1
		wasActive := a.ifStack[top]
		a.ifStack[top] = !wasActive
		if wasActive {
			a.skipDepth++
		} else {
			a.skipDepth--
		}
		return
	case "ENDIF":
		if len(a.ifStack) == 0 {
			a.addErr(line.Num, ErrUnbalancedIf, "ENDIF without matching IF")
			return
		}
		top := len(a.ifStack) - 1
		if !a.ifStack[top] {
			a.skipDepth--
		}
		a.ifStack = a.ifStack[:top]
		return
	}

	if a.skipDepth > 0 {
		return
	}

	switch fields.Mnemonic {
	case "EQU":
		v, err := a.eval(fields.Operand)
		if err != nil {
			a.addErr(line.Num, ErrExprSyntax, "%s", err)
		}
		if fields.Label != "" {
			_, redef := a.Sym.Define(fields.Label, v.Num, v.Reloc, SymConstant, line.Num)
			if redef {
				a.addErr(line.Num, ErrMultiplyDef, "symbol %s redefined with a different value", fields.Label)
			}
		}
		return
	case "SET":
		v, err := a.eval(fields.Operand)
		if err != nil {
			a.addErr(line.Num, ErrExprSyntax, "%s", err)
		}
		if fields.Label != "" {
			a.Sym.Define(fields.Label, v.Num, v.Reloc, SymVariable, line.Num)
		}
		return
	case "ORG":
		v, err := a.eval(fields.Operand)
		if err != nil {
			a.addErr(line.Num, ErrExprSyntax, "%s", err)
		}
		a.here = v.Num
		a.defineLabelHere(fields.Label, line.Num)
		return
	case "SETDP":
		v, _ := a.eval(fields.Operand)
		a.dp = uint8(v.Num)
		a.defineLabelHere(fields.Label, line.Num)
		return
	case "RMB":
		a.defineLabelHere(fields.Label, line.Num)
		v, err := a.eval(fields.Operand)
		if err != nil {
			a.addErr(line.Num, ErrExprSyntax, "%s", err)
		}
		a.here += v.Num
		return
	case "FCB":
		a.defineLabelHere(fields.Label, line.Num)
		for _, part := range splitOperandList(fields.Operand) {
			v, err := a.eval(part)
			if err != nil {
				a.addErr(line.Num, ErrExprSyntax, "%s", err)
			}
			if v.Num > 0xFF {
				a.addErr(line.Num, ErrRange, "FCB operand %q out of byte range", part)
			}
			a.emit(byte(v.Num))
		}
		return
	case "FDB":
		a.defineLabelHere(fields.Label, line.Num)
		for _, part := range splitOperandList(fields.Operand) {
			v, err := a.eval(part)
			if err != nil {
				a.addErr(line.Num, ErrExprSyntax, "%s", err)
			}
			a.emitWord(v.Num)
		}
		return
	case "FCC":
		a.defineLabelHere(fields.Label, line.Num)
		a.emitFCC(fields.Operand, line.Num)
		return
	case "EXTERN", "XDEF", "EXTDEF":
		for _, name := range splitOperandList(fields.Operand) {
			a.Sym.Define(name, 0, RelocExternal, SymExternal, line.Num)
		}
		return
	case "PUBLIC", "XREF":
		for _, name := range splitOperandList(fields.Operand) {
			sym := a.Sym.Lookup(name)
			if sym == nil {
				sym = a.Sym.Reference(name)
			}
			sym.Category |= SymPublic
		}
		return
	case "END":
		a.ended = true
		if fields.Operand != "" {
			v, _ := a.eval(fields.Operand)
			a.EntryPoint = v.Num
			a.hasEntry = true
		}
		return
	case "MACRO", "ENDM":
		// Should already have been consumed by expandMacrosAndConditionals;
		// seeing one here means it was malformed (e.g. missing ENDM).
		a.addErr(line.Num, ErrOperandSyntax, "stray %s outside macro expansion", fields.Mnemonic)
		return
	}

	a.defineLabelHere(fields.Label, line.Num)
	a.encodeInstruction(idx, line, fields)
}

func (a *Assembler) defineLabelHere(label string, line int) {
	if label == "" {
		return
	}
	category := SymCategoryForLabel(label)
	_, redef := a.Sym.Define(label, a.here, RelocProgram, category, line)
	if redef {
		a.addErr(line, ErrMultiplyDef, "symbol %s redefined at a different address", label)
	}
}

// SymCategoryForLabel classifies a label name: a bare run of digits is
// a local (reusable-per-scope) label in this assembler's dialect.
func SymCategoryForLabel(name string) SymCategory {
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0
		}
	}
	return SymLocal
}

func (a *Assembler) emitFCC(operand string, line int) {
	operand = strings.TrimSpace(operand)
	if len(operand) < 2 {
		a.addErr(line, ErrOperandSyntax, "FCC requires a delimited string")
		return
	}
	delim := operand[0]
	end := strings.IndexByte(operand[1:], delim)
	if end < 0 {
		a.addErr(line, ErrOperandSyntax, "FCC string missing closing delimiter")
		return
	}
	for _, c := range operand[1 : 1+end] {
		a.emit(byte(c))
	}
}
