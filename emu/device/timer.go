package device

/*
 * m6809 - Periodic interval timer.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import "time"

// FIRQPoster is the only thing a Timer is allowed to touch on the CPU
// core: a timer signal handler must only poke latches, never memory or
// the register file.
type FIRQPoster interface {
	PostFIRQ()
}

// DefaultPeriod is the interval timer's free-running tick rate.
const DefaultPeriod = 20 * time.Millisecond

// Timer is a free-running interval timer that posts a FIRQ to a core on
// every tick. It is a plain repeating real-time signal rather than a
// cycle-keyed event queue, since the only periodic source here is the
// interval timer.
type Timer struct {
	period time.Duration
	ticker *time.Ticker
	done   chan struct{}
}

// NewTimer starts a Timer with the given period, or DefaultPeriod if
// period is zero, posting to core on every tick.
func NewTimer(period time.Duration, core FIRQPoster) *Timer {
	if period <= 0 {
		period = DefaultPeriod
	}
	t := &Timer{period: period, ticker: time.NewTicker(period), done: make(chan struct{})}
	go t.run(core)
	return t
}

func (t *Timer) run(core FIRQPoster) {
	for {
		select {
		case <-t.ticker.C:
			core.PostFIRQ()
		case <-t.done:
			return
		}
	}
}

// Shutdown stops the timer goroutine.
func (t *Timer) Shutdown() {
	t.ticker.Stop()
	close(t.done)
}
