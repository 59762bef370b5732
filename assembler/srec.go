/*
   Motorola S-record (S1/S9) output.

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

const srecMaxDataBytes = 16

// WriteSRecord emits segs as S1 data records (16 data bytes per line)
// followed by a single S9 end-of-file record carrying the entry point.
func WriteSRecord(w io.Writer, segs []*Segment, entry uint16) error {
	for _, seg := range segs {
		for off := 0; off < len(seg.Data); off += srecMaxDataBytes {
			end := off + srecMaxDataBytes
			if end > len(seg.Data) {
				end = len(seg.Data)
			}
			chunk := seg.Data[off:end]
			addr := seg.Start + uint16(off)
			if err := writeSRecordLine(w, 'S', 1, addr, chunk); err != nil {
				return err
			}
		}
	}
	return writeSRecordLine(w, 'S', 9, entry, nil)
}

func writeSRecordLine(w io.Writer, prefix byte, recType int, addr uint16, data []byte) error {
	// byte count covers address (2) + data + checksum (1)
	count := 2 + len(data) + 1
	sum := byte(count) + byte(addr>>8) + byte(addr)
	for _, b := range data {
		sum += b
	}
	checksum := ^sum

	line := fmt.Sprintf("%c%d%02X%04X", prefix, recType, count, addr)
	for _, b := range data {
		line += fmt.Sprintf("%02X", b)
	}
	line += fmt.Sprintf("%02X\n", checksum)
	_, err := io.WriteString(w, line)
	return err
}
