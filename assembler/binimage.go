/*
   Flat binary image output.

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
)

// WriteBinImage writes a single flat binary image spanning from the
// lowest segment's start address through the end of the highest,
// zero-filling any gap opened by an ORG that skipped forward. Segments
// must be in ascending address order, which Run produces naturally
// since a program is assembled top to bottom.
func WriteBinImage(w io.Writer, segs []*Segment) error {
	if len(segs) == 0 {
		return nil
	}
	base := segs[0].Start
	cursor := base
	for _, seg := range segs {
		if seg.Start < cursor {
			return fmt.Errorf("binary image segments out of order: %#x before %#x", seg.Start, cursor)
		}
		if gap := int(seg.Start) - int(cursor); gap > 0 {
			if _, err := w.Write(make([]byte, gap)); err != nil {
				return err
			}
		}
		if _, err := w.Write(seg.Data); err != nil {
			return err
		}
		cursor = seg.Start + uint16(len(seg.Data))
	}
	return nil
}
