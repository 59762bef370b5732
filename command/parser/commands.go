/*
   m6809 - Command executor.

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
	"fmt"
	"strconv"
	"strings"

	disassembler "github.com/hcornwell/m6809/emu/disassemble"
	"github.com/hcornwell/m6809/emu/sim"
	hexfmt "github.com/hcornwell/m6809/util/hex"
)

var cmdList = []cmd{
	{name: "step", min: 3, process: step},
	{name: "stop", min: 3, process: stop},
	{name: "show", min: 2, process: show, complete: showComplete},
	{name: "continue", min: 1, process: cont},
	{name: "break", min: 1, process: breakCmd},
	{name: "examine", min: 1, process: examine},
	{name: "deposit", min: 1, process: deposit},
	{name: "quit", min: 1, process: quit},
}

// parseHexWord parses a single already-tokenized word as a hex value,
// with or without a leading '$'.
func parseHexWord(word string) (uint16, error) {
	word = strings.TrimPrefix(word, "$")
	n, err := strconv.ParseUint(word, 16, 16)
	if err != nil {
		return 0, errors.New("invalid hex value: " + word)
	}
	return uint16(n), nil
}

// parseRange parses "addr" or "addr-addr".
func parseRange(word string) (lo, hi uint16, err error) {
	parts := strings.SplitN(word, "-", 2)
	lo, err = parseHexWord(parts[0])
	if err != nil {
		return 0, 0, err
	}
	if len(parts) == 1 {
		return lo, lo, nil
	}
	hi, err = parseHexWord(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// printState prints the register file and disassembles the
// instruction at PC.
func printState(m *sim.Machine) {
	c := m.Core
	code := m.Mem.Bytes(int(c.PC), int(c.PC)+5)
	inst, _ := disassembler.Disassemble(code)
	fmt.Printf("PC=%04X A=%02X B=%02X X=%04X Y=%04X U=%04X S=%04X DP=%02X CC=%02X  %04X: %s\n",
		c.PC, c.A, c.B, c.X, c.Y, c.U, c.S, c.DP, c.CC, c.PC, inst)
}

// Single-step n instructions, default 1.
func step(line *cmdLine, m *sim.Machine) (bool, error) {
	n, err := line.getDecimal(1)
	if err != nil {
		return false, err
	}
	if n <= 0 {
		return false, errors.New("step count must be positive")
	}
	m.Step(n)
	printState(m)
	return false, nil
}

// Resume free-running execution.
func cont(_ *cmdLine, m *sim.Machine) (bool, error) {
	m.Start()
	return false, nil
}

// Halt free-running execution.
func stop(_ *cmdLine, m *sim.Machine) (bool, error) {
	m.Stop()
	printState(m)
	return false, nil
}

// Arm or disarm a breakpoint.
func breakCmd(line *cmdLine, m *sim.Machine) (bool, error) {
	word := line.getWord()
	if word == "clear" {
		line.skipSpace()
		if line.isEOL() {
			m.ClearBreak(0, true)
			fmt.Println("all breakpoints cleared")
			return false, nil
		}
		addr, err := line.getHex()
		if err != nil {
			return false, err
		}
		m.ClearBreak(addr, false)
		fmt.Printf("breakpoint cleared at $%04X\n", addr)
		return false, nil
	}

	addr, err := parseHexWord(word)
	if err != nil {
		return false, err
	}
	m.SetBreak(addr)
	fmt.Printf("breakpoint set at $%04X\n", addr)
	return false, nil
}

// Dump memory, or the register file for "examine regs".
func examine(line *cmdLine, m *sim.Machine) (bool, error) {
	word := line.getWord()
	if word == "" {
		return false, errors.New("examine requires an address or 'regs'")
	}
	if word == "regs" || word == "registers" {
		printState(m)
		return false, nil
	}

	lo, hi, err := parseRange(word)
	if err != nil {
		return false, err
	}
	data := m.Mem.Bytes(int(lo), int(hi)+1)
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		var b strings.Builder
		hexfmt.FormatBytes(&b, true, data[off:end])
		fmt.Printf("%04X: %s\n", int(lo)+off, strings.TrimRight(b.String(), " "))
	}
	return false, nil
}

// Poke a run of bytes starting at an address.
func deposit(line *cmdLine, m *sim.Machine) (bool, error) {
	addr, err := line.getHex()
	if err != nil {
		return false, err
	}

	count := 0
	for {
		line.skipSpace()
		if line.isEOL() {
			break
		}
		word := line.getWord()
		v, err := parseHexWord(word)
		if err != nil {
			return false, err
		}
		if v > 0xFF {
			return false, fmt.Errorf("deposit value out of byte range: %s", word)
		}
		m.Mem.WriteByte(addr, uint8(v))
		addr++
		count++
	}
	if count == 0 {
		return false, errors.New("deposit requires at least one value")
	}
	fmt.Printf("deposited %d byte(s)\n", count)
	return false, nil
}

// Show registers or the breakpoint list.
func show(line *cmdLine, m *sim.Machine) (bool, error) {
	switch word := line.getWord(); word {
	case "", "registers", "reg", "regs":
		printState(m)
	case "break", "breaks", "breakpoints":
		bps := m.Breakpoints()
		if len(bps) == 0 {
			fmt.Println("no breakpoints set")
			return false, nil
		}
		for _, a := range bps {
			fmt.Printf("$%04X\n", a)
		}
	default:
		return false, fmt.Errorf("unknown show target: %s", word)
	}
	return false, nil
}

func showComplete(_ *cmdLine) []string {
	return []string{"registers", "break"}
}

// Quit the console.
func quit(_ *cmdLine, _ *sim.Machine) (bool, error) {
	return true, nil
}
