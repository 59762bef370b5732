/*
   m6809 run-control wrapper around the CPU core.

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
package sim

import (
	"testing"
	"time"

	"github.com/hcornwell/m6809/emu/cpu"
	"github.com/hcornwell/m6809/emu/memory"
)

func newTestMachine(t *testing.T) (*Machine, *cpu.Core, *memory.Memory) {
	t.Helper()
	m := memory.New()
	m.LoadROM(0xFFFE, []byte{0x01, 0x00})
	c := cpu.New(m, nil)
	c.Reset()
	machine := New(c, m, nil, nil)
	t.Cleanup(machine.Quit)
	return machine, c, m
}

func TestStepAdvancesPC(t *testing.T) {
	machine, c, m := newTestMachine(t)
	m.LoadRaw(0x0100, []byte{0x86, 0x42, 0x86, 0x43})

	machine.Step(1)
	if c.PC != 0x0102 || c.A != 0x42 {
		t.Fatalf("after 1 step: PC=%#x A=%#x, want PC=0x102 A=0x42", c.PC, c.A)
	}

	machine.Step(1)
	if c.PC != 0x0104 || c.A != 0x43 {
		t.Fatalf("after 2 steps: PC=%#x A=%#x, want PC=0x104 A=0x43", c.PC, c.A)
	}
}

func TestStartStopRuns(t *testing.T) {
	machine, c, m := newTestMachine(t)
	// LBRA * : tight self-loop so Stop can catch it mid-flight.
	m.LoadRaw(0x0100, []byte{0x16, 0xFF, 0xFD})

	machine.Start()
	if !eventuallyTrue(t, func() bool { return machine.Running() }) {
		t.Fatal("machine never reported running")
	}
	time.Sleep(5 * time.Millisecond)
	machine.Stop()

	if machine.Running() {
		t.Fatal("machine still running after Stop")
	}
	if c.PC != 0x0100 {
		t.Fatalf("PC = %#x, want 0x0100 (self-loop)", c.PC)
	}
}

func TestBreakpointStopsFreeRun(t *testing.T) {
	machine, c, m := newTestMachine(t)
	m.LoadRaw(0x0100, []byte{
		0x86, 0x01, // LDA #1
		0x86, 0x02, // LDA #2
		0x16, 0xFF, 0xFD, // LBRA *
	})
	machine.SetBreak(0x0104)

	machine.Start()
	if !eventuallyTrue(t, func() bool { return !machine.Running() }) {
		t.Fatal("machine never stopped at breakpoint")
	}
	if c.PC != 0x0104 {
		t.Fatalf("PC = %#x, want 0x0104 (breakpoint)", c.PC)
	}
}

func TestSetAndClearBreak(t *testing.T) {
	machine, _, _ := newTestMachine(t)
	machine.SetBreak(0x1000)
	machine.SetBreak(0x2000)

	bps := machine.Breakpoints()
	if len(bps) != 2 || bps[0] != 0x1000 || bps[1] != 0x2000 {
		t.Fatalf("Breakpoints() = %v, want [0x1000 0x2000]", bps)
	}

	machine.ClearBreak(0x1000, false)
	bps = machine.Breakpoints()
	if len(bps) != 1 || bps[0] != 0x2000 {
		t.Fatalf("Breakpoints() after clear = %v, want [0x2000]", bps)
	}

	machine.ClearBreak(0, true)
	if len(machine.Breakpoints()) != 0 {
		t.Fatalf("Breakpoints() after clear-all = %v, want none", machine.Breakpoints())
	}
}

func eventuallyTrue(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
