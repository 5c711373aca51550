package dsp

import "testing"

func TestTile3DBlackInputStaysBlack(t *testing.T) {
	tile := NewTile3D(0.5)

	var samples [ZTile3D][YTile3D][XTile3D]float64 // all zero.
	spectrum := tile.Forward(samples)
	gated := tile.ApplyGate(spectrum)
	out := tile.Inverse(gated)

	for z := 0; z < ZTile3D; z++ {
		for y := 0; y < YTile3D; y++ {
			for x := 0; x < XTile3D; x++ {
				if v := out[z][y][x]; v > 1e-6 || v < -1e-6 {
					t.Fatalf("out[%d][%d][%d] = %v, want ~0", z, y, x, v)
				}
			}
		}
	}
}

func TestTile3DGateIsHermitianSymmetric(t *testing.T) {
	tile := NewTile3D(0.2)

	var samples [ZTile3D][YTile3D][XTile3D]float64
	for z := 0; z < ZTile3D; z++ {
		for y := 0; y < YTile3D; y++ {
			for x := 0; x < XTile3D; x++ {
				samples[z][y][x] = float64((x+1)*(y+1)*(z+1)%29) - 14
			}
		}
	}

	spectrum := tile.Forward(samples)
	gated := tile.ApplyGate(spectrum)

	for z := 0; z < ZTile3D; z++ {
		for y := 0; y < YTile3D; y++ {
			for x := 0; x < XTile3D; x++ {
				mz := (ZTile3D - z) % ZTile3D
				my := (YTile3D - y) % YTile3D
				mx := (XTile3D - x) % XTile3D
				got := gated[z][y][x]
				want := gated[mz][my][mx]
				if diff := real(got) - real(want); diff > 1e-9 || diff < -1e-9 {
					t.Fatalf("Hermitian real mismatch at (%d,%d,%d)", z, y, x)
				}
				if diff := imag(got) + imag(want); diff > 1e-9 || diff < -1e-9 {
					t.Fatalf("Hermitian imag mismatch at (%d,%d,%d)", z, y, x)
				}
			}
		}
	}

	out := tile.Inverse(gated)
	for z := 0; z < ZTile3D; z++ {
		for y := 0; y < YTile3D; y++ {
			for x := 0; x < XTile3D; x++ {
				if v := out[z][y][x]; v != v {
					t.Fatalf("out[%d][%d][%d] is NaN", z, y, x)
				}
			}
		}
	}
}

func TestTile3DThresholdsSize(t *testing.T) {
	tile := NewTile3D(0.5)
	want := ZComplex3D * YComplex3D * (XTile3D/8 + 1)
	if got := tile.ThresholdsSize(); got != want {
		t.Errorf("ThresholdsSize() = %d, want %d", got, want)
	}
}
