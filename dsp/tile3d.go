/*
DESCRIPTION
  tile3d.go implements the 3D half of the windowed-FFT core (C2): forward
  and inverse 16x32x8 (X,Y,Z) real<->complex DFTs with a raised-cosine
  window and bin-symmetry gating across three axes, as used by the
  Transform PAL 3D kernel's temporal filtering pass.

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

// 3D tile geometry, per spec §4.2.
const (
	XTile3D     = 16
	YTile3D     = 32
	ZTile3D     = 8
	HalfXTile3D = XTile3D / 2
	HalfYTile3D = YTile3D / 2
	HalfZTile3D = ZTile3D / 2
	XComplex3D  = XTile3D/2 + 1
	YComplex3D  = YTile3D
	ZComplex3D  = ZTile3D
)

// Tile3D is the 3D windowed-FFT filter core used by the temporal
// (Transform PAL 3D) kernel. Not safe for concurrent use.
//
// go-dsp has no native 3D transform; Forward/Inverse compose it from
// go-dsp's complex 2D and 1D transforms, which is exact for a DFT since
// the multi-dimensional DFT is separable: a 2D FFT is run over the (Y,X)
// plane of every Z slice, then a 1D FFT is run across Z for every (y,x)
// bin (and the inverse in the opposite order). As with Tile2D, ApplyGate
// keeps the spectrum Hermitian-symmetric across all three axes so the
// inverse transform of a real input stays real.
type Tile3D struct {
	window [ZTile3D][YTile3D][XTile3D]float64

	Threshold  float64
	Thresholds []float64
}

// NewTile3D builds the window table for a 3D tile. Callers constructing
// multiple kernels concurrently should hold PlanMu around this call.
func NewTile3D(threshold float64) *Tile3D {
	t := &Tile3D{Threshold: threshold}
	wz := window1D(ZTile3D)
	wy := window1D(YTile3D)
	wx := window1D(XTile3D)
	for z := 0; z < ZTile3D; z++ {
		for y := 0; y < YTile3D; y++ {
			for x := 0; x < XTile3D; x++ {
				t.window[z][y][x] = wz[z] * wy[y] * wx[x]
			}
		}
	}
	return t
}

// ThresholdsSize returns the number of distinct bins ApplyGate examines:
// X bins in [XTile3D/8, XTile3D/4] for every Y and Z.
func (t *Tile3D) ThresholdsSize() int {
	return ZComplex3D * YComplex3D * (XTile3D/8 + 1)
}

func (t *Tile3D) thresholdAt(idx int) float64 {
	if len(t.Thresholds) > idx {
		th := t.Thresholds[idx]
		return th * th
	}
	return t.Threshold * t.Threshold
}

func (t *Tile3D) windowed(samples [ZTile3D][YTile3D][XTile3D]float64) [][][]complex128 {
	out := make([][][]complex128, ZTile3D)
	for z := 0; z < ZTile3D; z++ {
		plane := make([][]complex128, YTile3D)
		for y := 0; y < YTile3D; y++ {
			row := make([]complex128, XTile3D)
			for x := 0; x < XTile3D; x++ {
				row[x] = complex(samples[z][y][x]*t.window[z][y][x], 0)
			}
			plane[y] = row
		}
		out[z] = plane
	}
	return out
}

// Forward computes the forward 3D FFT of a windowed tile: a 2D FFT per Z
// slice followed by a 1D FFT across Z.
func (t *Tile3D) Forward(samples [ZTile3D][YTile3D][XTile3D]float64) [][][]complex128 {
	planes := t.windowed(samples)
	for z := range planes {
		planes[z] = fft.FFT2(planes[z])
	}
	return fftAcrossZ(planes, false)
}

// Inverse computes the inverse 3D FFT of a gated spectrum: a 1D inverse
// FFT across Z followed by a 2D inverse FFT per Z slice, returning the
// real part of the result.
func (t *Tile3D) Inverse(spectrum [][][]complex128) [ZTile3D][YTile3D][XTile3D]float64 {
	planes := fftAcrossZ(spectrum, true)
	var out [ZTile3D][YTile3D][XTile3D]float64
	for z := 0; z < ZTile3D; z++ {
		td := fft.IFFT2(planes[z])
		for y := 0; y < YTile3D; y++ {
			for x := 0; x < XTile3D; x++ {
				out[z][y][x] = real(td[y][x])
			}
		}
	}
	return out
}

// fftAcrossZ runs a 1D (inverse, if inv) FFT across the Z axis of planes
// for every (y,x) bin.
func fftAcrossZ(planes [][][]complex128, inv bool) [][][]complex128 {
	out := make([][][]complex128, ZTile3D)
	for z := range out {
		out[z] = make([][]complex128, YTile3D)
		for y := range out[z] {
			out[z][y] = make([]complex128, XTile3D)
		}
	}

	col := make([]complex128, ZTile3D)
	for y := 0; y < YTile3D; y++ {
		for x := 0; x < XTile3D; x++ {
			for z := 0; z < ZTile3D; z++ {
				col[z] = planes[z][y][x]
			}
			var transformed []complex128
			if inv {
				transformed = fft.IFFT(col)
			} else {
				transformed = fft.FFT(col)
			}
			for z := 0; z < ZTile3D; z++ {
				out[z][y][x] = transformed[z]
			}
		}
	}
	return out
}

// ApplyGate applies the frequency-domain chroma/luma separation filter
// across all three axes to a forward-transformed tile, returning the
// gated spectrum. The input spectrum is not modified.
//
// The Z-axis reflection index below intentionally mirrors the original's
// behavior, which reflects around ZTile3D/4 rather than the naive
// 3*ZTile3D/4 midpoint-complement one would expect by analogy with the X
// and Y axes; this looks like it may be a latent bug in the original
// (see decoder design notes), but is preserved here rather than "fixed"
// since its effect on the temporal filter's behavior is unverified.
func (t *Tile3D) ApplyGate(in [][][]complex128) [][][]complex128 {
	out := make([][][]complex128, ZTile3D)
	for z := range out {
		out[z] = make([][]complex128, YTile3D)
		for y := range out[z] {
			out[z][y] = make([]complex128, XTile3D)
		}
	}

	idx := 0
	for z := 0; z < ZTile3D; z++ {
		zRef := (ZTile3D/4 + ZTile3D - z) % ZTile3D

		for y := 0; y < YTile3D; y++ {
			// Unlike the 2D tile, the 3D tile reflects Y about YTile3D/4 (72
			// c/aph is 1/8 of the 576-line frame rate), not YTile3D/2.
			yRef := ((YTile3D / 4) + YTile3D - y) % YTile3D

			for x := XTile3D / 8; x <= XTile3D/4; x++ {
				xRef := (XTile3D / 2) - x
				thresholdSq := t.thresholdAt(idx)
				idx++

				inVal := in[z][y][x]
				refVal := in[zRef][yRef][xRef]

				if x == xRef && y == yRef && z == zRef {
					setHermitian3D(out, z, y, x, inVal)
					continue
				}

				mInSq := absSq(inVal)
				mRefSq := absSq(refVal)

				if mInSq < mRefSq*thresholdSq || mRefSq < mInSq*thresholdSq {
					continue
				}

				setHermitian3D(out, z, y, x, inVal)
				setHermitian3D(out, zRef, yRef, xRef, refVal)
			}
		}
	}

	return out
}

func setHermitian3D(out [][][]complex128, z, y, x int, v complex128) {
	out[z][y][x] = v
	mz := (ZTile3D - z) % ZTile3D
	my := (YTile3D - y) % YTile3D
	mx := (XTile3D - x) % XTile3D
	out[mz][my][mx] = complex(real(v), -imag(v))
}
