/*
   m6809 - Command parser.

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
package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/hcornwell/m6809/emu/sim"
)

type cmd struct {
	name     string // Command name.
	min      int    // Minimum match size.
	process  func(*cmdLine, *sim.Machine) (bool, error)
	complete func(*cmdLine) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// ProcessCommand parses and executes one console line. The returned
// bool is true only for the quit command.
func ProcessCommand(commandLine string, machine *sim.Machine) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}
	return match[0].process(&line, machine)
}

// CompleteCmd returns the completions for commandLine, for use by the
// line editor.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	if !line.isEOL() && line.line[line.pos] == ' ' {
		match := matchList(name)
		if len(match) != 1 || match[0].complete == nil {
			return nil
		}
		return match[0].complete(&line)
	}

	match := matchList(name)
	matches := make([]string, len(match))
	for i, m := range match {
		matches[i] = m.name
	}
	return matches
}

// matchCommand reports whether command matches name to at least its
// minimum unambiguous prefix length.
func matchCommand(c cmd, command string) bool {
	if len(command) < c.min || len(command) > len(c.name) {
		return false
	}
	return c.name[:len(command)] == command
}

func matchList(command string) []cmd {
	if command == "" {
		return nil
	}
	var match []cmd
	for _, c := range cmdList {
		if matchCommand(c, command) {
			match = append(match, c)
		}
	}
	return match
}

// skipSpace advances past whitespace.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// isEOL reports end of line or the start of a trailing comment.
func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// getWord returns the next run of non-space characters, lowercased.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

// getHex parses the next word as a hexadecimal address, with or
// without a leading '$'.
func (line *cmdLine) getHex() (uint16, error) {
	word := line.getWord()
	if word == "" {
		return 0, errors.New("expected address")
	}
	word = strings.TrimPrefix(word, "$")
	n, err := strconv.ParseUint(word, 16, 16)
	if err != nil {
		return 0, errors.New("invalid address: " + word)
	}
	return uint16(n), nil
}

// getDecimal parses the next word as a decimal count, or def if the
// line has no more words.
func (line *cmdLine) getDecimal(def int) (int, error) {
	line.skipSpace()
	if line.isEOL() {
		return def, nil
	}
	word := line.getWord()
	n, err := strconv.ParseUint(word, 10, 32)
	if err != nil {
		return 0, errors.New("invalid count: " + word)
	}
	return int(n), nil
}
