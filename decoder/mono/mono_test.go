package mono

import (
	"testing"

	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/video"
)

func testParams() video.Parameters {
	return video.Parameters{
		System:               video.NTSC,
		FieldWidth:           20,
		FieldHeight:          6,
		ActiveVideoStart:     2,
		ActiveVideoEnd:       18,
		FirstActiveFrameLine: 1,
		LastActiveFrameLine:  10,
		Black16bIRE:          1000,
		White16bIRE:          50000,
	}
}

func TestMonoDecodeFramesBlackInputIsBlack(t *testing.T) {
	p := testParams()
	m := New()
	if err := m.Configure(p, decoder.Config{}); err != nil {
		t.Fatal(err)
	}

	black := uint16(p.Black16bIRE)
	first := video.SourceField{IsFirstField: true, Data: fill(p.FieldWidth*p.FieldHeight, black)}
	second := video.SourceField{IsFirstField: false, Data: fill(p.FieldWidth*p.FieldHeight, black)}

	out := video.NewComponentFrame(p, false)
	window := []video.SourceField{first, second}
	if err := m.DecodeFrames(window, 0, 2, out); err != nil {
		t.Fatal(err)
	}

	for line := 0; line < out.Height(); line++ {
		for _, v := range out.Y(line)[:out.Width()] {
			if v != float64(p.Black16bIRE) {
				t.Fatalf("line %d: Y = %v, want %v", line, v, p.Black16bIRE)
			}
		}
		for _, v := range out.U(line)[:out.Width()] {
			if v != 0 {
				t.Fatalf("line %d: U = %v, want 0", line, v)
			}
		}
	}
}

func TestMonoDecodeFramesRejectsEmptyInput(t *testing.T) {
	p := testParams()
	m := New()
	if err := m.Configure(p, decoder.Config{}); err != nil {
		t.Fatal(err)
	}

	out := video.NewComponentFrame(p, false)
	window := []video.SourceField{{IsFirstField: true}, {IsFirstField: false}}
	if err := m.DecodeFrames(window, 0, 2, out); err == nil {
		t.Fatal("expected error for empty field data")
	}
}

func fill(n int, v uint16) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = v
	}
	return out
}
