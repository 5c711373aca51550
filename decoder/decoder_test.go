package decoder

import (
	"math"
	"testing"

	"github.com/ausocean/tbcdecode/dsp"
	"github.com/ausocean/tbcdecode/video"
)

func TestRotateUVZeroPhaseAppliesGainOnly(t *testing.T) {
	u, v := RotateUV(2, 3, 1.5, 0)
	if u != 3 || v != 4.5 {
		t.Fatalf("RotateUV = (%v, %v), want (3, 4.5)", u, v)
	}
}

func TestRotateUV90DegreesSwapsAxes(t *testing.T) {
	u, v := RotateUV(1, 0, 1, 90)
	if math.Abs(u) > 1e-9 || math.Abs(v-1) > 1e-9 {
		t.Fatalf("RotateUV(1,0,1,90) = (%v, %v), want (~0, ~1)", u, v)
	}
}

func TestApplyNRDisabledWhenLevelNonPositive(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	out := make([]float64, len(in))
	ApplyNR(in, out, dsp.FIR{Coeffs: []float64{1}}, 0, 100)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %v, want %v (pass-through)", i, out[i], in[i])
		}
	}
}

func TestApplyNRConstantInputUnaffectedByHighPass(t *testing.T) {
	in := make([]float64, 10)
	for i := range in {
		in[i] = 42
	}
	out := make([]float64, len(in))
	// A DC-normalized high-pass (coefficients summing to zero) sees no
	// noise in constant input away from the edges, so the cored estimate is
	// zero and out==in there. At the two edge samples the FIR reads a zero
	// beyond the row, giving a high-pass of 42-21=21, which is cored to the
	// limit 10 and subtracted: out = 32.
	ApplyNR(in, out, dsp.FIR{Coeffs: []float64{-0.5, 1, -0.5}}, 10, 100)
	for i := range in {
		want := in[i]
		if i == 0 || i == len(in)-1 {
			want = 32
		}
		if math.Abs(out[i]-want) > 1e-9 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func interleaveTestParams() video.Parameters {
	return video.Parameters{
		FieldWidth:  4,
		FieldHeight: 3,
	}
}

func TestInterleaveOrdersFieldsByParity(t *testing.T) {
	p := interleaveTestParams()
	top := video.SourceField{IsFirstField: true, Data: fill16(4*3, 1)}
	bottom := video.SourceField{IsFirstField: false, Data: fill16(4*3, 2)}

	out := Interleave(p, top, bottom)

	height := p.FrameHeight()
	for line := 0; line < height; line++ {
		want := 1.0
		if line%2 == 1 {
			want = 2.0
		}
		for _, v := range Line(out, p.FieldWidth, line) {
			if v != want {
				t.Fatalf("line %d: got %v, want %v", line, v, want)
			}
		}
	}
}

func TestInterleaveHandlesSecondFieldFirst(t *testing.T) {
	p := interleaveTestParams()
	// SourceField arguments passed in (second, first) order still resolve
	// top/bottom correctly from IsFirstField, not argument position.
	first := video.SourceField{IsFirstField: true, Data: fill16(4*3, 9)}
	second := video.SourceField{IsFirstField: false, Data: fill16(4*3, 5)}

	out := Interleave(p, second, first)

	if Line(out, p.FieldWidth, 0)[0] != 9 {
		t.Fatalf("line 0 = %v, want 9 (top field)", Line(out, p.FieldWidth, 0)[0])
	}
	if Line(out, p.FieldWidth, 1)[0] != 5 {
		t.Fatalf("line 1 = %v, want 5 (bottom field)", Line(out, p.FieldWidth, 1)[0])
	}
}

func fill16(n int, v uint16) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = v
	}
	return out
}
