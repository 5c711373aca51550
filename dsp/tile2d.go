/*
DESCRIPTION
  tile2d.go implements the 2D half of the windowed-FFT core (C2): forward
  and inverse 32x16 real<->complex DFTs with a raised-cosine window and
  bin-symmetry chroma/luma gating, as used by the Transform PAL 2D kernel.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package dsp

import (
	"github.com/mjibson/go-dsp/fft"
)

// 2D tile geometry, per spec §4.2.
const (
	XTile2D     = 32
	YTile2D     = 16
	HalfXTile2D = XTile2D / 2
	HalfYTile2D = YTile2D / 2
	XComplex2D  = XTile2D/2 + 1
	YComplex2D  = YTile2D
)

// Tile2D is the 2D windowed-FFT filter core. It is not safe for concurrent
// use; callers construct one Tile2D per worker/kernel instance.
//
// go-dsp's fft.FFT2/IFFT2 operate on full complex spectra rather than
// FFTW's half-spectrum real<->complex transforms, and its IFFT already
// normalizes by the transform length (IFFT2(FFT2(x)) == x for unmodified
// spectra) -- so unlike the FFTW-based original, no explicit division by
// tile volume is needed here; ApplyGate takes care to keep the spectrum
// Hermitian-symmetric (mirroring every kept/rejected bin pair to its
// conjugate position) so the inverse transform of a real input tile stays
// real.
type Tile2D struct {
	window [YTile2D][XTile2D]float64

	// Threshold is the default bin-acceptance threshold (0-1); Thresholds,
	// if non-nil, gives a per-bin override addressed the same way the
	// original's flattened threshold array is, via thresholdIndex.
	Threshold  float64
	Thresholds []float64
}

// NewTile2D builds the window table for a 2D tile. Callers constructing
// multiple kernels concurrently should hold PlanMu around this call.
func NewTile2D(threshold float64) *Tile2D {
	t := &Tile2D{Threshold: threshold}
	wy := window1D(YTile2D)
	wx := window1D(XTile2D)
	for y := 0; y < YTile2D; y++ {
		for x := 0; x < XTile2D; x++ {
			t.window[y][x] = wy[y] * wx[x]
		}
	}
	return t
}

// ThresholdsSize returns the number of distinct bins ApplyGate examines,
// matching the original's getThresholdsSize(): only X bins in
// [XTile2D/8, XTile2D/4] are considered, for every Y.
func (t *Tile2D) ThresholdsSize() int {
	return YComplex2D * (XTile2D/8 + 1)
}

// thresholdAt returns the squared threshold for bin (y,x) in the scan order
// ApplyGate uses.
func (t *Tile2D) thresholdAt(idx int) float64 {
	if len(t.Thresholds) > idx {
		th := t.Thresholds[idx]
		return th * th
	}
	return t.Threshold * t.Threshold
}

// windowed copies samples (a YTile2D x XTile2D window of the source,
// already extracted by the caller with black fill applied to lines
// outside the active region) into a complex buffer with the raised-cosine window
// applied, ready for FFT2.
func (t *Tile2D) windowed(samples [YTile2D][XTile2D]float64) [][]complex128 {
	out := make([][]complex128, YTile2D)
	for y := 0; y < YTile2D; y++ {
		row := make([]complex128, XTile2D)
		for x := 0; x < XTile2D; x++ {
			row[x] = complex(samples[y][x]*t.window[y][x], 0)
		}
		out[y] = row
	}
	return out
}

// Forward computes the forward FFT of a windowed tile.
func (t *Tile2D) Forward(samples [YTile2D][XTile2D]float64) [][]complex128 {
	return fft.FFT2(t.windowed(samples))
}

// ApplyGate applies the frequency-domain chroma/luma separation filter
// (spec §4.2 step 3-4) to a forward-transformed tile, returning the gated
// spectrum. The input spectrum is not modified.
func (t *Tile2D) ApplyGate(in [][]complex128) [][]complex128 {
	out := make([][]complex128, YTile2D)
	for y := range out {
		out[y] = make([]complex128, XTile2D)
	}

	idx := 0
	for y := 0; y < YTile2D; y++ {
		yRef := ((YTile2D / 2) + YTile2D - y) % YTile2D

		for x := XTile2D / 8; x <= XTile2D/4; x++ {
			xRef := (XTile2D / 2) - x
			thresholdSq := t.thresholdAt(idx)
			idx++

			inVal := in[y][x]
			refVal := in[yRef][xRef]

			if x == xRef && y == yRef {
				setHermitian2D(out, y, x, inVal)
				continue
			}

			mInSq := absSq(inVal)
			mRefSq := absSq(refVal)

			if mInSq < mRefSq*thresholdSq || mRefSq < mInSq*thresholdSq {
				continue
			}

			setHermitian2D(out, y, x, inVal)
			setHermitian2D(out, yRef, xRef, refVal)
		}
	}

	return out
}

// Inverse computes the inverse FFT of a gated spectrum, returning the real
// part (the spectrum is kept Hermitian-symmetric by ApplyGate, so the
// imaginary part is ~0 modulo floating-point error).
func (t *Tile2D) Inverse(spectrum [][]complex128) [YTile2D][XTile2D]float64 {
	var out [YTile2D][XTile2D]float64
	td := fft.IFFT2(spectrum)
	for y := 0; y < YTile2D; y++ {
		for x := 0; x < XTile2D; x++ {
			out[y][x] = real(td[y][x])
		}
	}
	return out
}

func absSq(c complex128) float64 {
	re, im := real(c), imag(c)
	return re*re + im*im
}

// setHermitian2D writes v at (y,x) and its conjugate at the mirrored
// position, so that a complex spectrum built only from the "positive
// frequency" half stays consistent with a real-valued signal.
func setHermitian2D(out [][]complex128, y, x int, v complex128) {
	out[y][x] = v
	my := (YTile2D - y) % YTile2D
	mx := (XTile2D - x) % XTile2D
	out[my][mx] = complex(real(v), -imag(v))
}
