/*
DESCRIPTION
  decoder.go implements the EIA-608 closed-caption decoder (C12): the
  Pop-On/Roll-Up/Paint-On mode state machine, control-code and PAC
  decoding, and the timed cue lifecycle.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package cc

import "strings"

// ControlCode is a recognized EIA-608 miscellaneous control code.
type ControlCode int

const (
	Unknown ControlCode = iota
	RCL                 // Resume Caption Loading (Pop-On).
	EOC                 // End of Caption: swap buffers, display Pop-On.
	EDM                 // Erase Displayed Memory.
	ENM                 // Erase Non-displayed Memory.
	CR                  // Carriage Return (Roll-Up / Pop-On / Paint-On).
	RU2                 // Roll-Up, 2 rows.
	RU3                 // Roll-Up, 3 rows.
	RU4                 // Roll-Up, 4 rows.
	RDC                 // Resume Direct Captioning (Paint-On).
)

// Mode is the caption display mode the decoder is currently in.
type Mode int

const (
	PopOn Mode = iota
	RollUp
	PaintOn
)

// Cue is a timed caption cue. EndTime of -1 marks an open cue still
// accumulating text.
type Cue struct {
	StartTime float64
	EndTime   float64
	Text      string
}

// eocDedupeWindow is how close together two EOCs must land to be treated
// as the same end-of-caption event (it is typically sent once per field).
const eocDedupeWindow = 0.1

// Decoder is an EIA-608 closed-caption decoder. Feed it byte pairs in
// timestamp order via ProcessBytes; call Finalize to flush any open cue
// and collect the full emitted sequence.
type Decoder struct {
	mode Mode

	displayed    *CaptionBuffer
	nondisplayed *CaptionBuffer

	rollupRows int

	currentTime float64
	lastEOCTime float64

	active []*Cue
	cues   []Cue
}

// NewDecoder returns a decoder initialized in Pop-On mode.
func NewDecoder() *Decoder {
	return &Decoder{
		mode:         PopOn,
		displayed:    NewCaptionBuffer(),
		nondisplayed: NewCaptionBuffer(),
		rollupRows:   2,
		lastEOCTime:  -1,
	}
}

// Cues returns the cues emitted so far, without finalizing any still-open
// cue.
func (d *Decoder) Cues() []Cue { return d.cues }

// ProcessBytes decodes one EIA-608 byte pair (parity bit already
// stripped) observed at timestamp.
func (d *Decoder) ProcessBytes(timestamp float64, byte1, byte2 byte) {
	d.currentTime = timestamp

	if byte1 >= 0x10 && byte1 <= 0x1F {
		if code := decodeControlCode(byte1, byte2); code != Unknown {
			d.handleControlCode(code)
			return
		}
		if row, col, ok := decodePAC(byte1, byte2); ok {
			d.cursorBuffer().SetCursor(row, col)
		}
		return
	}

	if byte1 >= 0x20 && byte1 <= 0x7F {
		d.handlePrintable(byte1)
	}
	if byte2 >= 0x20 && byte2 <= 0x7F {
		d.handlePrintable(byte2)
	}
}

// Finalize closes every open cue at endTime and returns the full emitted
// sequence.
func (d *Decoder) Finalize(endTime float64) []Cue {
	d.currentTime = endTime
	d.closeAllCues()
	return d.cues
}

// cursorBuffer is the buffer a PAC's cursor move applies to: non-displayed
// while preparing a Pop-On page, displayed otherwise.
func (d *Decoder) cursorBuffer() *CaptionBuffer {
	if d.mode == PopOn {
		return d.nondisplayed
	}
	return d.displayed
}

func (d *Decoder) handlePrintable(b byte) {
	switch d.mode {
	case PopOn:
		d.nondisplayed.WriteChar(b)
	case RollUp:
		d.displayed.WriteChar(b)
		d.ensureRollUpCue()
	case PaintOn:
		d.displayed.WriteChar(b)
		d.ensurePaintOnCue(b)
	}
}

func (d *Decoder) handleControlCode(code ControlCode) {
	switch code {
	case RCL:
		if d.mode != PopOn {
			d.nondisplayed.Clear()
		}
		d.mode = PopOn

	case EOC:
		if d.mode != PopOn {
			break
		}
		if d.currentTime-d.lastEOCTime < eocDedupeWindow {
			break
		}
		d.lastEOCTime = d.currentTime

		for _, cue := range d.active {
			cue.EndTime = d.currentTime
			d.emit(*cue)
		}
		d.active = nil

		d.displayed, d.nondisplayed = d.nondisplayed, d.displayed
		d.openPopOnCue()
		d.nondisplayed.Clear()

	case EDM:
		d.closeAllCues()
		d.displayed.Clear()

	case ENM:
		d.nondisplayed.Clear()

	case CR:
		switch d.mode {
		case RollUp:
			d.rollUp()
		case PopOn:
			d.nondisplayed.NextRow()
		case PaintOn:
			d.displayed.NextRow()
		}

	case RU2, RU3, RU4:
		d.closeAllCues()
		d.mode = RollUp
		switch code {
		case RU2:
			d.rollupRows = 2
		case RU3:
			d.rollupRows = 3
		case RU4:
			d.rollupRows = 4
		}

	case RDC:
		d.closeAllCues()
		d.mode = PaintOn
	}
}

func (d *Decoder) openPopOnCue() {
	text := d.displayed.Render()
	if text == "" {
		return
	}
	d.active = append(d.active, &Cue{StartTime: d.currentTime, EndTime: -1, Text: text})
}

func (d *Decoder) ensureRollUpCue() {
	if len(d.active) == 0 {
		d.active = append(d.active, &Cue{StartTime: d.currentTime, EndTime: -1, Text: d.displayed.Render()})
		return
	}
	d.active[0].Text = d.displayed.Render()
}

func (d *Decoder) rollUp() {
	if len(d.active) != 0 {
		cue := d.active[0]
		cue.EndTime = d.currentTime
		d.emit(*cue)
		d.active = nil
	}
	d.displayed.RollUp()
}

func (d *Decoder) ensurePaintOnCue(b byte) {
	if len(d.active) == 0 {
		d.active = append(d.active, &Cue{StartTime: d.currentTime, EndTime: -1})
	}
	d.active[0].Text += string(b)
}

func (d *Decoder) closeAllCues() {
	for _, cue := range d.active {
		cue.EndTime = d.currentTime
		d.emit(*cue)
	}
	d.active = nil
}

func (d *Decoder) emit(cue Cue) {
	if cue.EndTime <= cue.StartTime {
		return
	}
	cue.Text = strings.TrimSpace(cue.Text)
	if cue.Text == "" {
		return
	}
	d.cues = append(d.cues, cue)
}

// decodeControlCode recognizes the two-byte miscellaneous control codes.
func decodeControlCode(byte1, byte2 byte) ControlCode {
	if byte1 != 0x14 && byte1 != 0x1C {
		return Unknown
	}
	if byte2 < 0x20 || byte2 > 0x2F {
		return Unknown
	}
	switch byte2 {
	case 0x20:
		return RCL
	case 0x25:
		return RU2
	case 0x26:
		return RU3
	case 0x27:
		return RU4
	case 0x29:
		return RDC
	case 0x2C:
		return EDM
	case 0x2D:
		return CR
	case 0x2E:
		return ENM
	case 0x2F:
		return EOC
	default:
		return Unknown
	}
}

// pacBaseRow maps a PAC's byte1 to its (odd, even) row pair, keyed by
// byte2's 0x20 bit.
var pacBaseRow = map[byte][2]int{
	0x11: {1, 2},
	0x12: {3, 4},
	0x15: {5, 6},
	0x16: {7, 8},
	0x17: {9, 10},
	0x10: {11, 12},
	0x13: {13, 14},
	0x14: {14, 15},
}

// decodePAC decodes a Preamble Address Code to a 0-based (row, col),
// reporting false if byte1/byte2 don't form a valid PAC.
func decodePAC(byte1, byte2 byte) (row, col int, ok bool) {
	if byte2 < 0x40 || byte2 > 0x7F {
		return 0, 0, false
	}
	pair, known := pacBaseRow[byte1]
	if !known {
		return 0, 0, false
	}
	row1 := pair[0]
	if byte2&0x20 != 0 {
		row1 = pair[1]
	}

	col = 0
	if byte2&0x10 != 0 {
		indent := (byte2 & 0x0E) >> 1
		col = int(indent) * 4
	}
	return row1 - 1, col, true
}
