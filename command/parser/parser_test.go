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
	"testing"

	"github.com/hcornwell/m6809/emu/cpu"
	"github.com/hcornwell/m6809/emu/memory"
	"github.com/hcornwell/m6809/emu/sim"
)

func newTestMachine(t *testing.T) *sim.Machine {
	t.Helper()
	m := memory.New()
	m.LoadROM(0xFFFE, []byte{0x01, 0x00})
	c := cpu.New(m, nil)
	machine := sim.New(c, m, nil, nil)
	t.Cleanup(machine.Quit)
	return machine
}

func TestProcessCommandStep(t *testing.T) {
	machine := newTestMachine(t)
	machine.Mem.LoadRaw(0x0100, []byte{0x86, 0x42})

	quit, err := ProcessCommand("step", machine)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if quit {
		t.Fatal("step reported quit")
	}
	if machine.Core.A != 0x42 {
		t.Fatalf("A = %#x, want 0x42", machine.Core.A)
	}
}

func TestProcessCommandDepositExamine(t *testing.T) {
	machine := newTestMachine(t)

	if _, err := ProcessCommand("deposit $0300 $11 $22 $33", machine); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if v := machine.Mem.ReadByte(0x0300); v != 0x11 {
		t.Fatalf("mem[0x300] = %#x, want 0x11", v)
	}
	if v := machine.Mem.ReadByte(0x0302); v != 0x33 {
		t.Fatalf("mem[0x302] = %#x, want 0x33", v)
	}

	if _, err := ProcessCommand("examine $0300-$0302", machine); err != nil {
		t.Fatalf("examine: %v", err)
	}
}

func TestProcessCommandBreakAndShow(t *testing.T) {
	machine := newTestMachine(t)

	if _, err := ProcessCommand("break $1234", machine); err != nil {
		t.Fatalf("break: %v", err)
	}
	if bps := machine.Breakpoints(); len(bps) != 1 || bps[0] != 0x1234 {
		t.Fatalf("Breakpoints() = %v, want [0x1234]", bps)
	}

	if _, err := ProcessCommand("show break", machine); err != nil {
		t.Fatalf("show break: %v", err)
	}

	if _, err := ProcessCommand("break clear", machine); err != nil {
		t.Fatalf("break clear: %v", err)
	}
	if bps := machine.Breakpoints(); len(bps) != 0 {
		t.Fatalf("Breakpoints() after clear = %v, want none", bps)
	}
}

func TestProcessCommandQuit(t *testing.T) {
	machine := newTestMachine(t)
	quit, err := ProcessCommand("quit", machine)
	if err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !quit {
		t.Fatal("quit reported false")
	}
}

func TestProcessCommandUnknown(t *testing.T) {
	machine := newTestMachine(t)
	if _, err := ProcessCommand("bogus", machine); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestProcessCommandTooShortPrefix(t *testing.T) {
	machine := newTestMachine(t)
	// "st" is short of both step's and stop's 3-character minimum, so
	// it resolves to no command rather than an ambiguous one.
	if _, err := ProcessCommand("st", machine); err == nil {
		t.Fatal("expected error for \"st\"")
	}
}

func TestMatchCommandMinimumLengths(t *testing.T) {
	cases := []struct {
		word string
		want string
	}{
		{"ste", "step"},
		{"sto", "stop"},
		{"sh", "show"},
		{"c", "continue"},
		{"b", "break"},
		{"e", "examine"},
		{"d", "deposit"},
		{"q", "quit"},
	}
	for _, c := range cases {
		match := matchList(c.word)
		if len(match) != 1 || match[0].name != c.want {
			t.Errorf("matchList(%q) = %v, want exactly [%q]", c.word, match, c.want)
		}
	}
}

func TestCompleteCmd(t *testing.T) {
	got := CompleteCmd("sh")
	if len(got) != 1 || got[0] != "show" {
		t.Fatalf("CompleteCmd(%q) = %v, want [show]", "sh", got)
	}

	got = CompleteCmd("show ")
	want := map[string]bool{"registers": true, "break": true}
	if len(got) != len(want) {
		t.Fatalf("CompleteCmd(%q) = %v, want %v", "show ", got, want)
	}
	for _, g := range got {
		if !want[g] {
			t.Errorf("unexpected completion %q", g)
		}
	}
}
