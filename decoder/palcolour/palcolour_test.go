package palcolour

import (
	"testing"

	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/video"
)

func testParams() video.Parameters {
	return video.Parameters{
		System:               video.PAL,
		FieldWidth:           40,
		FieldHeight:          8,
		ActiveVideoStart:     4,
		ActiveVideoEnd:       36,
		FirstActiveFrameLine: 2,
		LastActiveFrameLine:  14,
		Black16bIRE:          1000,
		White16bIRE:          50000,
	}
}

func TestPalColourBlackInputIsBlack(t *testing.T) {
	p := testParams()
	d := New()
	if err := d.Configure(p, decoder.Config{ChromaGain: 1}); err != nil {
		t.Fatal(err)
	}

	black := uint16(p.Black16bIRE)
	n := p.FieldWidth * p.FieldHeight
	first := video.SourceField{IsFirstField: true, FieldPhaseID: 0, Data: fill(n, black)}
	second := video.SourceField{IsFirstField: false, FieldPhaseID: 1, Data: fill(n, black)}

	out := video.NewComponentFrame(p, false)
	if err := d.DecodeFrames([]video.SourceField{first, second}, 0, 2, out); err != nil {
		t.Fatal(err)
	}

	for line := 0; line < out.Height(); line++ {
		for x := p.ActiveVideoStart; x < p.ActiveVideoEnd; x++ {
			if u := out.U(line)[x]; u > 1e-6 || u < -1e-6 {
				t.Fatalf("line %d x %d: U = %v, want ~0", line, x, u)
			}
		}
	}
}

func TestPalColourRejectsSplitInput(t *testing.T) {
	p := testParams()
	d := New()
	if err := d.Configure(p, decoder.Config{}); err != nil {
		t.Fatal(err)
	}

	first := video.SourceField{IsFirstField: true, LumaData: fill(10, 0)}
	second := video.SourceField{IsFirstField: false, LumaData: fill(10, 0)}

	out := video.NewComponentFrame(p, false)
	if err := d.DecodeFrames([]video.SourceField{first, second}, 0, 2, out); err == nil {
		t.Fatal("expected error for split input")
	}
}

func fill(n int, v uint16) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = v
	}
	return out
}
