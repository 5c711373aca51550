package dsp

import "testing"

func TestTile2DBlackInputStaysBlack(t *testing.T) {
	tile := NewTile2D(0.5)

	var samples [YTile2D][XTile2D]float64 // all zero.
	spectrum := tile.Forward(samples)
	gated := tile.ApplyGate(spectrum)
	out := tile.Inverse(gated)

	for y := 0; y < YTile2D; y++ {
		for x := 0; x < XTile2D; x++ {
			if v := out[y][x]; v > 1e-6 || v < -1e-6 {
				t.Fatalf("out[%d][%d] = %v, want ~0", y, x, v)
			}
		}
	}
}

func TestTile2DInverseIsReal(t *testing.T) {
	tile := NewTile2D(0.2)

	var samples [YTile2D][XTile2D]float64
	for y := 0; y < YTile2D; y++ {
		for x := 0; x < XTile2D; x++ {
			samples[y][x] = float64((x+1)*(y+1)%23) - 10
		}
	}

	spectrum := tile.Forward(samples)
	gated := tile.ApplyGate(spectrum)

	td := gated // sanity: gate output should be Hermitian-symmetric.
	for y := 0; y < YTile2D; y++ {
		for x := 0; x < XTile2D; x++ {
			my, mx := (YTile2D-y)%YTile2D, (XTile2D-x)%XTile2D
			got := td[y][x]
			want := td[my][mx]
			if diff := real(got) - real(want); diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("Hermitian real mismatch at (%d,%d)", y, x)
			}
			if diff := imag(got) + imag(want); diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("Hermitian imag mismatch at (%d,%d)", y, x)
			}
		}
	}

	// Inverse must not panic and should produce finite output.
	out := tile.Inverse(gated)
	for y := 0; y < YTile2D; y++ {
		for x := 0; x < XTile2D; x++ {
			v := out[y][x]
			if v != v { // NaN check.
				t.Fatalf("out[%d][%d] is NaN", y, x)
			}
		}
	}
}

func TestTile2DThresholdsSize(t *testing.T) {
	tile := NewTile2D(0.5)
	want := YComplex2D * (XTile2D/8 + 1)
	if got := tile.ThresholdsSize(); got != want {
		t.Errorf("ThresholdsSize() = %d, want %d", got, want)
	}
}
