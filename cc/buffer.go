/*
DESCRIPTION
  buffer.go implements the CaptionBuffer (C12): the fixed 15-row scrolling
  text grid that backs both the displayed and non-displayed halves of an
  EIA-608 decoder instance.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package cc implements the EIA-608 closed-caption decoder (C12): a state
// machine that turns raw byte pairs from TBC metadata fields into timed
// caption cues.
package cc

import "strings"

// MaxRows and MaxCols are the EIA-608 caption grid dimensions. Rows may
// grow past MaxCols; the decoder's output target has no column limit, so
// writes beyond column 32 are permitted rather than truncated.
const (
	MaxRows = 15
	MaxCols = 32
)

// CaptionBuffer is a 15-row scrolling text grid with a cursor, used as
// the decoder's "displayed" and "non-displayed" buffers.
type CaptionBuffer struct {
	text [MaxRows]string
	row  int
	col  int
}

// NewCaptionBuffer returns a cleared buffer with the cursor on the last row.
func NewCaptionBuffer() *CaptionBuffer {
	b := &CaptionBuffer{}
	b.Clear()
	return b
}

// Clear empties every row and resets the cursor to (MaxRows-1, 0).
func (b *CaptionBuffer) Clear() {
	for i := range b.text {
		b.text[i] = ""
	}
	b.row = MaxRows - 1
	b.col = 0
}

// WriteChar writes c at the cursor, extending the row if the cursor sits
// past its current end, or overwriting in place otherwise. The cursor
// then advances one column.
func (b *CaptionBuffer) WriteChar(c byte) {
	if b.row >= MaxRows {
		b.row = MaxRows - 1
	}
	line := b.text[b.row]
	if len(line) < b.col {
		line += strings.Repeat(" ", b.col-len(line))
	}
	if b.col >= len(line) {
		line += string(c)
	} else {
		line = line[:b.col] + string(c) + line[b.col+1:]
	}
	b.text[b.row] = line
	b.col++
}

// SetCursor positions the cursor at (row, col), clamping an out-of-range
// row to the last row and an out-of-range column to 0, and pads the
// target row with spaces up to col if it's shorter.
func (b *CaptionBuffer) SetCursor(row, col int) {
	if row < 0 || row >= MaxRows {
		row = MaxRows - 1
	}
	if col < 0 || col >= MaxCols {
		col = 0
	}
	b.row = row
	b.col = col
	if len(b.text[b.row]) < col {
		b.text[b.row] += strings.Repeat(" ", col-len(b.text[b.row]))
	}
}

// NextRow moves the cursor to the start of the following row, for CR in
// Pop-On/Paint-On mode. It never advances past the last row.
func (b *CaptionBuffer) NextRow() {
	if b.row < MaxRows-1 {
		b.row++
	}
	b.col = 0
}

// Render joins every non-empty, trimmed row with a single space.
func (b *CaptionBuffer) Render() string {
	var lines []string
	for _, r := range b.text {
		line := strings.TrimSpace(r)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}

// RollUp shifts every row up by one, clearing the bottom row and
// resetting the cursor there, for Roll-Up mode's CR handling.
func (b *CaptionBuffer) RollUp() {
	for i := 0; i < MaxRows-1; i++ {
		b.text[i] = b.text[i+1]
	}
	b.text[MaxRows-1] = ""
	b.row = MaxRows - 1
	b.col = 0
}

// Row and Col report the cursor position, for tests and diagnostics.
func (b *CaptionBuffer) Row() int { return b.row }
func (b *CaptionBuffer) Col() int { return b.col }
