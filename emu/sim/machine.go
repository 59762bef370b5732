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
	"fmt"
	"sort"
	"sync"

	"github.com/hcornwell/m6809/emu/cpu"
	"github.com/hcornwell/m6809/emu/device"
	"github.com/hcornwell/m6809/emu/memory"
)

type ctrlMsg int

const (
	msgStart ctrlMsg = iota
	msgStop
	msgStep
)

// Machine owns the running goroutine that single-steps or free-runs a
// Core, and the breakpoint set the operator console manages. The run
// loop is the only thing that ever calls Core.Step; every other
// goroutine (the console) only ever posts through the
// narrow API below, mirroring the Core's own latch discipline.
type Machine struct {
	Core *cpu.Core
	Mem  *memory.Memory
	UART *device.UART
	Timer *device.Timer

	mu          sync.Mutex
	running     bool
	breakpoints map[uint16]bool

	ctrl     chan ctrlMsg
	stepDone chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
}

// New starts a Machine's run loop wrapping core/mem. uart and timer may
// be nil in tests that don't exercise I/O.
func New(core *cpu.Core, mem *memory.Memory, uart *device.UART, timer *device.Timer) *Machine {
	m := &Machine{
		Core:        core,
		Mem:         mem,
		UART:        uart,
		Timer:       timer,
		breakpoints: make(map[uint16]bool),
		ctrl:        make(chan ctrlMsg),
		stepDone:    make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	m.wg.Add(1)
	go m.loop()
	return m
}

func (m *Machine) loop() {
	defer m.wg.Done()
	for {
		if m.Running() {
			select {
			case <-m.done:
				return
			case msg := <-m.ctrl:
				m.handle(msg)
			default:
				m.Core.Step()
				if m.atBreakpoint() {
					m.setRunning(false)
					fmt.Printf("break at $%04X\n", m.Core.PC)
				}
			}
		} else {
			select {
			case <-m.done:
				return
			case msg := <-m.ctrl:
				m.handle(msg)
			}
		}
	}
}

func (m *Machine) handle(msg ctrlMsg) {
	switch msg {
	case msgStart:
		m.setRunning(true)
	case msgStop:
		m.setRunning(false)
	case msgStep:
		m.Core.Step()
		m.stepDone <- struct{}{}
	}
}

func (m *Machine) setRunning(v bool) {
	m.mu.Lock()
	m.running = v
	m.mu.Unlock()
}

// Running reports whether the run loop is currently free-running.
func (m *Machine) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Machine) atBreakpoint() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.breakpoints[m.Core.PC]
}

// Start resumes free-running execution.
func (m *Machine) Start() {
	m.ctrl <- msgStart
}

// Stop halts free-running execution; a subsequent Step or Start
// resumes from the current PC.
func (m *Machine) Stop() {
	m.ctrl <- msgStop
}

// Step executes n instructions one at a time, waiting for each to
// complete before issuing the next.
func (m *Machine) Step(n int) {
	for range n {
		m.ctrl <- msgStep
		<-m.stepDone
	}
}

// Quit stops the run loop and waits for it to exit.
func (m *Machine) Quit() {
	close(m.done)
	m.wg.Wait()
}

// SetBreak arms a breakpoint at addr.
func (m *Machine) SetBreak(addr uint16) {
	m.mu.Lock()
	m.breakpoints[addr] = true
	m.mu.Unlock()
}

// ClearBreak disarms the breakpoint at addr, or every breakpoint when
// all is true.
func (m *Machine) ClearBreak(addr uint16, all bool) {
	m.mu.Lock()
	if all {
		m.breakpoints = make(map[uint16]bool)
	} else {
		delete(m.breakpoints, addr)
	}
	m.mu.Unlock()
}

// Breakpoints returns the armed breakpoint addresses in ascending
// order.
func (m *Machine) Breakpoints() []uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uint16, 0, len(m.breakpoints))
	for a := range m.breakpoints {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
