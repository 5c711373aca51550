/*
DESCRIPTION
  fir.go implements the symmetric odd-tap FIR kernel (C1) used by luma
  noise-reduction pre-emphasis/coring and as the building block for the
  PAL 2D spatial chroma filters.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package dsp provides the numeric building blocks shared by the decoder
// kernels: the FIR filter kernel (C1) and the windowed 2D/3D FFT core (C2).
package dsp

import "gonum.org/v1/gonum/floats"

// FIR is a symmetric odd-tap FIR filter. Coeffs must have odd length; the
// filter's delay is Taps()/2 samples.
type FIR struct {
	Coeffs []float64
}

// Taps returns the number of filter coefficients.
func (f FIR) Taps() int { return len(f.Coeffs) }

// Overlap returns the number of samples the filter reads beyond either end
// of its input (the filter's symmetric delay).
func (f FIR) Overlap() int { return len(f.Coeffs) / 2 }

// Apply convolves in (length n) with the filter, writing into out (also
// length n). Samples outside [0, n) are treated as zero. in and out may be
// the same underlying array only if they don't alias overlapping regions;
// callers needing in-place filtering should use ApplyInPlace.
//
// The three loop regions below (left overhang, bulk, right overhang) avoid
// a per-sample bounds check in the common (bulk) case.
func (f FIR) Apply(in, out []float64) {
	n := len(in)
	numTaps := len(f.Coeffs)
	overlap := numTaps / 2

	leftPos := overlap
	if leftPos > n {
		leftPos = n
	}
	for i := 0; i < leftPos; i++ {
		var v float64
		for j, k := 0, i-overlap; j < numTaps; j, k = j+1, k+1 {
			if k >= 0 && k < n {
				v += f.Coeffs[j] * in[k]
			}
		}
		out[i] = v
	}

	rightPos := n - overlap
	if rightPos < leftPos {
		rightPos = leftPos
	}
	for i := leftPos; i < rightPos; i++ {
		k := i - overlap
		out[i] = floats.Dot(f.Coeffs, in[k:k+numTaps])
	}

	for i := rightPos; i < n; i++ {
		var v float64
		for j, k := 0, i-overlap; j < numTaps; j, k = j+1, k+1 {
			if k < n {
				v += f.Coeffs[j] * in[k]
			}
		}
		out[i] = v
	}
}

// ApplyInPlace filters data and writes the result back into data.
func (f FIR) ApplyInPlace(data []float64) {
	tmp := make([]float64, len(data))
	f.Apply(data, tmp)
	copy(data, tmp)
}
