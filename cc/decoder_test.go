package cc

import "testing"

func TestDecoderPopOnHelloScenario(t *testing.T) {
	d := NewDecoder()
	d.ProcessBytes(0.0, 0x14, 0x20) // RCL
	d.ProcessBytes(0.1, 0x48, 0x65) // "He"
	d.ProcessBytes(0.2, 0x6C, 0x6C) // "ll"
	d.ProcessBytes(0.3, 0x6F, 0x00) // "o"
	eocTime := 1.0
	d.ProcessBytes(eocTime, 0x14, 0x2F) // EOC
	d.ProcessBytes(eocTime+2.0, 0x14, 0x2C) // EDM

	cues := d.Finalize(3.0)
	if len(cues) != 1 {
		t.Fatalf("len(cues) = %d, want 1", len(cues))
	}
	c := cues[0]
	if c.Text != "Hello" {
		t.Fatalf("Text = %q, want %q", c.Text, "Hello")
	}
	if c.StartTime != eocTime {
		t.Fatalf("StartTime = %v, want %v", c.StartTime, eocTime)
	}
	if c.EndTime != eocTime+2.0 {
		t.Fatalf("EndTime = %v, want %v", c.EndTime, eocTime+2.0)
	}
}

func TestDecoderDedupesEOCWithin100ms(t *testing.T) {
	d := NewDecoder()
	d.ProcessBytes(0.0, 0x14, 0x20)
	d.ProcessBytes(0.1, 0x48, 0x69) // "Hi"
	d.ProcessBytes(1.0, 0x14, 0x2F) // EOC field 1
	d.ProcessBytes(1.05, 0x1C, 0x2F) // EOC field 2, within dedupe window

	// Only the first EOC should have swapped buffers; close the open cue
	// via Finalize to confirm exactly one cue resulted.
	cues := d.Finalize(2.0)
	if len(cues) != 1 {
		t.Fatalf("len(cues) = %d, want 1 (duplicate EOC must be ignored)", len(cues))
	}
}

func TestDecoderRollUp(t *testing.T) {
	d := NewDecoder()
	d.ProcessBytes(0.0, 0x14, 0x25) // RU2
	d.ProcessBytes(0.1, 0x48, 0x69) // "Hi"
	d.ProcessBytes(1.0, 0x14, 0x2D) // CR: close + emit, scroll

	cues := d.Cues()
	if len(cues) != 1 {
		t.Fatalf("len(cues) = %d, want 1", len(cues))
	}
	if cues[0].Text != "Hi" {
		t.Fatalf("Text = %q, want %q", cues[0].Text, "Hi")
	}
}

func TestDecoderPaintOn(t *testing.T) {
	d := NewDecoder()
	d.ProcessBytes(0.0, 0x14, 0x29) // RDC
	d.ProcessBytes(0.1, 0x48, 0x69) // "Hi"

	cues := d.Finalize(1.0)
	if len(cues) != 1 {
		t.Fatalf("len(cues) = %d, want 1", len(cues))
	}
	if cues[0].Text != "Hi" {
		t.Fatalf("Text = %q, want %q", cues[0].Text, "Hi")
	}
}

func TestDecodePACRowAndColumn(t *testing.T) {
	cases := []struct {
		byte1, byte2 byte
		wantRow      int
		wantCol      int
	}{
		{0x11, 0x40, 0, 0},  // row 1, no indent.
		{0x11, 0x60, 1, 0},  // row 2 (0x20 bit set), no indent.
		{0x14, 0x70, 14, 0}, // row 15.
	}
	for _, c := range cases {
		row, col, ok := decodePAC(c.byte1, c.byte2)
		if !ok {
			t.Fatalf("decodePAC(%#x, %#x) reported not-ok", c.byte1, c.byte2)
		}
		if row != c.wantRow {
			t.Errorf("decodePAC(%#x, %#x) row = %d, want %d", c.byte1, c.byte2, row, c.wantRow)
		}
		if col != c.wantCol {
			t.Errorf("decodePAC(%#x, %#x) col = %d, want %d", c.byte1, c.byte2, col, c.wantCol)
		}
	}
}

func TestDecodePACRejectsOutOfRangeByte2(t *testing.T) {
	if _, _, ok := decodePAC(0x11, 0x30); ok {
		t.Fatal("decodePAC should reject byte2 outside [0x40, 0x7F]")
	}
}

func TestCaptionBufferWriteAndRender(t *testing.T) {
	b := NewCaptionBuffer()
	b.SetCursor(0, 0)
	for _, c := range []byte("test") {
		b.WriteChar(c)
	}
	if got := b.Render(); got != "test" {
		t.Fatalf("Render() = %q, want %q", got, "test")
	}
}

func TestCaptionBufferRollUpShiftsRows(t *testing.T) {
	b := NewCaptionBuffer()
	b.SetCursor(MaxRows-1, 0)
	for _, c := range []byte("abc") {
		b.WriteChar(c)
	}
	b.RollUp()
	if got := b.Render(); got != "abc" {
		t.Fatalf("Render() after RollUp = %q, want %q", got, "abc")
	}
}
