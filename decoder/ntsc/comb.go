/*
DESCRIPTION
  comb.go implements the NTSC comb chroma separator (C8): 1-D and 2-D
  line/subcarrier-phase comb separation, a 3-D adaptive mode that picks
  the best of three temporal candidates per sample, IQ demodulation and
  split-IQ low-pass filtering.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ntsc implements the NTSC comb filter kernel (C8), in 1-D, 2-D
// and 3-D-adaptive variants.
package ntsc

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/dsp"
	"github.com/ausocean/tbcdecode/errs"
	"github.com/ausocean/tbcdecode/video"
)

// samplesPerCycle is the number of samples per chroma-subcarrier cycle.
// The comb filter's 1-D/2-D formulas assume quadrature (4x subcarrier)
// sampling, matching the fixed "4fsc" TBC sample format the original
// decoder's MAX_WIDTH=910 constant is sized for.
const samplesPerCycle = 4

// Comb is the NTSC comb kernel. Dimensions selects the 1-D, 2-D or
// 3-D-adaptive algorithm; construct with New1D, New2D or New3D.
type Comb struct {
	Dimensions int

	// AdaptiveDisabled, when set on a 3-D Comb, skips the per-sample
	// disagreement test and always picks the 2-D candidate.
	AdaptiveDisabled bool

	p   video.Parameters
	cfg decoder.Config

	splitLP dsp.FIR // split-IQ low-pass filter.
}

// New1D, New2D and New3D construct a Comb configured for the
// corresponding separation algorithm. New3DNoAdapt builds the non-adaptive
// sibling of New3D: it still looks at neighboring frames (same
// LookBehind/LookAhead), but always emits the 2-D candidate.
func New1D() *Comb        { return &Comb{Dimensions: 1} }
func New2D() *Comb        { return &Comb{Dimensions: 2} }
func New3D() *Comb        { return &Comb{Dimensions: 3} }
func New3DNoAdapt() *Comb { return &Comb{Dimensions: 3, AdaptiveDisabled: true} }

func (c *Comb) Configure(p video.Parameters, opts decoder.Config) error {
	if p.System == video.Unknown {
		return errs.New(errs.Config, "NTSC comb kernel requires a known video system")
	}
	c.p = p
	c.cfg = opts
	c.splitLP = dsp.FIR{Coeffs: splitIQLowPassCoeffs()}
	return nil
}

func (c *Comb) LookBehind() int {
	if c.Dimensions >= 3 {
		return 1
	}
	return 0
}

func (c *Comb) LookAhead() int {
	if c.Dimensions >= 3 {
		return 2
	}
	return 0
}

// splitIQLowPassCoeffs builds a short symmetric low-pass FIR (raised-cosine
// shaped, normalized to unit DC gain) used to smooth the demodulated I/Q
// products before they're read out as U/V.
func splitIQLowPassCoeffs() []float64 {
	const n = 7
	coeffs := make([]float64, n)
	var sum float64
	for i := range coeffs {
		// RaisedCosineWindow over a single period gives a taper rather
		// than a lowpass shape directly; reuse it as a Hann-style taper
		// on a box average, which is the simplest faithful low-pass.
		coeffs[i] = dsp.RaisedCosineWindow(i, n)
		sum += coeffs[i]
	}
	for i := range coeffs {
		coeffs[i] /= sum
	}
	return coeffs
}

func (c *Comb) DecodeFrames(window []video.SourceField, startIdx, endIdx int, out *video.ComponentFrame) error {
	if window[startIdx].IsSplit() || window[startIdx+1].IsSplit() {
		return errs.New(errs.Input, "NTSC comb kernel requires composite (non-split) input")
	}

	width := c.p.FieldWidth
	height := c.p.FrameHeight()

	composite := decoder.Interleave(c.p, window[startIdx], window[startIdx+1])
	chroma1D := c.split1D(composite, width, height)

	var chroma []float64
	switch c.Dimensions {
	case 1:
		chroma = chroma1D
	case 2:
		chroma = c.split2D(composite, chroma1D, width, height)
	default:
		chroma2D := c.split2D(composite, chroma1D, width, height)
		if c.AdaptiveDisabled {
			chroma = chroma2D
			break
		}
		prevComposite := decoder.Interleave(c.p, window[startIdx-2], window[startIdx-1])
		nextComposite := decoder.Interleave(c.p, window[endIdx], window[endIdx+1])
		prevChroma := c.split2D(prevComposite, c.split1D(prevComposite, width, height), width, height)
		nextChroma := c.split2D(nextComposite, c.split1D(nextComposite, width, height), width, height)
		chroma = c.split3D(chroma1D, chroma2D, prevChroma, nextChroma, width, height)
	}

	c.separate(composite, chroma, width, height, out)
	return nil
}

// split1D implements the 1-D comb: chroma(x) = composite(x) - average of
// composite at +-half a subcarrier cycle.
func (c *Comb) split1D(composite []float64, width, height int) []float64 {
	out := make([]float64, len(composite))
	half := samplesPerCycle / 2

	for line := 0; line < height; line++ {
		row := composite[line*width : (line+1)*width]
		dst := out[line*width : (line+1)*width]
		for x := 0; x < width; x++ {
			var lo, hi float64
			n := 0
			if x-half >= 0 {
				lo = row[x-half]
				n++
			}
			if x+half < width {
				hi = row[x+half]
				n++
			}
			var avg float64
			if n > 0 {
				avg = (lo + hi) / float64(n)
			}
			dst[x] = row[x] - avg
		}
	}
	return out
}

// split2D implements the 2-D comb: chroma(x, line) = 0.5*(composite(x,
// line) - composite(x, line-2)), falling back to the 1-D result for the
// first two lines of the frame.
func (c *Comb) split2D(composite, fallback []float64, width, height int) []float64 {
	out := make([]float64, len(composite))
	for line := 0; line < height; line++ {
		dst := out[line*width : (line+1)*width]
		if line < 2 {
			copy(dst, fallback[line*width:(line+1)*width])
			continue
		}
		cur := composite[line*width : (line+1)*width]
		prev := composite[(line-2)*width : (line-1)*width]
		for x := 0; x < width; x++ {
			dst[x] = 0.5 * (cur[x] - prev[x])
		}
	}
	return out
}

// split3D picks, per sample, the candidate (current 2D, previous-frame, or
// next-frame) with the smallest disagreement penalty, per spec §4.6. Ties
// favor the current (2D) candidate, since it's scored first and a later
// candidate only replaces it on a strictly smaller penalty.
//
// Every candidate is scored against the same reference neighborhood — the
// 1-D comb's chroma estimate, which is derived from composite alone and so
// is independent of which candidate is being judged. Scoring a candidate
// against itself (as the previous revision of this function did for the
// current candidate) always yields a penalty of exactly zero and makes that
// candidate unbeatable by construction; using a common, candidate-
// independent reference is what lets "best of three" actually discriminate.
//
// The penalty is the second moment (mean-squared deviation) of the
// candidate's neighborhood differences against the reference's, computed
// from gonum/stat's MeanVariance (E[d^2] = Var(d) + Mean(d)^2, with the
// unbiased variance rescaled by (n-1)/n to the population variance) rather
// than a hand-rolled sum of squares.
func (c *Comb) split3D(reference, current, prev, next []float64, width, height int) []float64 {
	out := make([]float64, len(current))
	const window = 2
	diffs := make([]float64, 0, 2*window+1)

	for line := 0; line < height; line++ {
		for x := 0; x < width; x++ {
			idx := line*width + x

			penalty := func(cand []float64) float64 {
				diffs = diffs[:0]
				for dx := -window; dx <= window; dx++ {
					xx := x + dx
					if xx < 0 || xx >= width {
						continue
					}
					refIdx := line*width + xx
					diffs = append(diffs, cand[refIdx]-reference[refIdx])
				}
				mean, variance := stat.MeanVariance(diffs, nil)
				if n := float64(len(diffs)); n > 1 {
					variance *= (n - 1) / n
				}
				p := variance + mean*mean
				if c.cfg.PhaseCompensation {
					p += math.Abs(float64(line % samplesPerCycle))
				}
				return p
			}

			bestVal := current[idx]
			bestPenalty := penalty(current)

			if p := penalty(prev); p < bestPenalty {
				bestPenalty = p
				bestVal = prev[idx]
			}
			if p := penalty(next); p < bestPenalty {
				bestVal = next[idx]
			}

			out[idx] = bestVal
		}
	}
	return out
}

// separate demodulates chroma into U/V, subtracts it from composite to
// recover luma, applies optional NR, and writes Y/U/V into out.
func (c *Comb) separate(composite, chroma []float64, width, height int, out *video.ComponentFrame) {
	omega := 2 * math.Pi / samplesPerCycle

	i := make([]float64, width*height)
	q := make([]float64, width*height)

	for line := 0; line < height; line++ {
		phase0 := float64(line%samplesPerCycle) * omega
		for x := 0; x < width; x++ {
			idx := line*width + x
			angle := phase0 + omega*float64(x)
			s, cc := math.Sincos(angle)
			i[idx] = chroma[idx] * cc
			q[idx] = chroma[idx] * s
		}
	}

	uLP := make([]float64, width*height)
	vLP := make([]float64, width*height)
	for line := 0; line < height; line++ {
		c.splitLP.Apply(i[line*width:(line+1)*width], uLP[line*width:(line+1)*width])
		c.splitLP.Apply(q[line*width:(line+1)*width], vLP[line*width:(line+1)*width])
	}

	// Run luma NR one scanline at a time: dsp.FIR only zero-pads at index 0
	// and n-1 of whatever slice it's given, so a single call over the whole
	// flattened frame would bleed the end of line N into line N+1. Per-line
	// zero-padding at each row's edges is what spec §4.4/§4.6 calls for.
	noisy := subtract(composite, chroma)
	luma := make([]float64, width*height)
	for line := 0; line < height; line++ {
		row := noisy[line*width : (line+1)*width]
		decoder.ApplyNR(row, luma[line*width:(line+1)*width], lumaNRFilter(), c.cfg.LumaNRLevel, c.p.IRERange())
	}

	lineStart, lineEnd, colStart, colEnd := decoder.ActiveRect(c.p)
	for line := lineStart; line < lineEnd && line < height; line++ {
		for x := colStart; x < colEnd; x++ {
			idx := line*width + x
			u, v := decoder.RotateUV(uLP[idx]*2, vLP[idx]*2, c.cfg.ChromaGain, c.cfg.ChromaPhase)
			out.Y(line)[x] = luma[idx]
			out.U(line)[x] = u
			out.V(line)[x] = v
		}
	}
}

func subtract(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// lumaNRFilter returns the band-limited high-pass FIR used to extract the
// luma noise estimate before coring, per spec §4.4/§4.6.
func lumaNRFilter() dsp.FIR {
	return dsp.FIR{Coeffs: []float64{-0.05, -0.1, 0.3, -0.1, -0.05}}
}
