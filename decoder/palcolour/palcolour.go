/*
DESCRIPTION
  palcolour.go implements the PAL 2-D spatial chroma separator (C6):
  burst-phase-locked IQ demodulation, quarter-plane symmetric 2-D FIR
  luma/chroma separation, and the shared demodulation pipeline (§4.7)
  reused by the Transform-PAL kernels' alternate path.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package palcolour implements the PAL 2-D color decoder kernel (C6) and
// the burst-locked demodulation pipeline (§4.7) shared with decoder/transformpal.
package palcolour

import (
	"math"

	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/dsp"
	"github.com/ausocean/tbcdecode/errs"
	"github.com/ausocean/tbcdecode/video"
)

// FilterSize is the quarter-plane chroma filter's half-width/height: the
// full 2-D kernel spans 2*FilterSize+1 samples on each axis.
const FilterSize = 7

// Subcarrier cycles per line, PAL: 283.7516 (1135/4 + 1/625). The
// demodulation reference phase at sample x is 2*pi*cyclesPerLine*x/FieldWidth,
// i.e. one field line of samples spans cyclesPerLine subcarrier cycles.
const cyclesPerLine = 283.7516

// PalColour is the PAL 2-D color decoder kernel. Stateless between
// Configure calls; safe to reuse by calling Configure again.
type PalColour struct {
	p   video.Parameters
	cfg decoder.Config

	coeffs [FilterSize + 1][FilterSize + 1]float64
}

func New() *PalColour { return &PalColour{} }

func (d *PalColour) Configure(p video.Parameters, opts decoder.Config) error {
	if p.System != video.PAL && p.System != video.PALM {
		return errs.Newf(errs.Config, "PALColour kernel cannot decode system %s", p.System)
	}
	d.p = p
	d.cfg = opts
	d.coeffs = buildQuarterPlaneCoeffs()
	return nil
}

func (d *PalColour) LookBehind() int { return 0 }
func (d *PalColour) LookAhead() int  { return 0 }

func (d *PalColour) DecodeFrames(window []video.SourceField, startIdx, endIdx int, out *video.ComponentFrame) error {
	first, second := window[startIdx], window[startIdx+1]
	if first.IsSplit() || second.IsSplit() {
		return errs.New(errs.Input, "PALColour kernel requires composite (non-split) input")
	}
	if len(first.Data) == 0 || len(second.Data) == 0 {
		return errs.New(errs.Input, "empty field data")
	}

	width := d.p.FieldWidth
	height := d.p.FrameHeight()
	composite := decoder.Interleave(d.p, first, second)

	chroma := make([]float64, len(composite))
	for line := 0; line < height; line++ {
		for x := d.p.ActiveVideoStart; x < d.p.ActiveVideoEnd; x++ {
			chroma[line*width+x] = quarterPlaneChroma(composite, width, height, line, x, d.coeffs)
		}
	}

	fieldPhaseIDs := perLineFieldPhase(first, second, d.p, height)
	Demodulate(d.p, d.cfg, composite, chroma, width, height, fieldPhaseIDs, out)
	return nil
}

// buildQuarterPlaneCoeffs builds the separable low-pass quarter-plane
// coefficient table used to extract chroma from the composite signal
// (the original's hand-tuned cfilt/yfilt tables aren't available in this
// port's reference material; this reconstructs an equivalent low-pass
// shape from the shared raised-cosine window, which a symmetric FIR of
// this size always has to resemble).
func buildQuarterPlaneCoeffs() [FilterSize + 1][FilterSize + 1]float64 {
	var c [FilterSize + 1][FilterSize + 1]float64
	n := 2*FilterSize + 1
	for dy := 0; dy <= FilterSize; dy++ {
		wy := dsp.RaisedCosineWindow(FilterSize+dy, n)
		for dx := 0; dx <= FilterSize; dx++ {
			wx := dsp.RaisedCosineWindow(FilterSize+dx, n)
			c[dy][dx] = wy * wx
		}
	}
	return c
}

// quarterPlaneChroma convolves the composite signal at (line, x) against
// the reflected quarter-plane filter, per spec §4.5: the zeroth x column
// is half-weighted since the caller's reflection counts it twice.
func quarterPlaneChroma(composite []float64, width, height, line, x int, coeffs [FilterSize + 1][FilterSize + 1]float64) float64 {
	var sum float64
	for dy := -FilterSize; dy <= FilterSize; dy++ {
		ly := line + dy
		if ly < 0 || ly >= height {
			continue
		}
		row := composite[ly*width : (ly+1)*width]
		weightY := coeffs[absInt(dy)]
		for dx := -FilterSize; dx <= FilterSize; dx++ {
			lx := x + dx
			if lx < 0 || lx >= width {
				continue
			}
			w := weightY[absInt(dx)]
			if dx == 0 {
				w *= 0.5
			}
			sum += w * row[lx]
		}
	}
	return sum
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// perLineFieldPhase returns, for every frame line, the FieldPhaseID of
// the source field that line was interlaced from.
func perLineFieldPhase(first, second video.SourceField, p video.Parameters, height int) []int {
	out := make([]int, height)
	top, bottom := first, second
	if !first.IsFirstField {
		top, bottom = second, first
	}
	for line := 0; line < height; line++ {
		if line%2 == 0 {
			out[line] = top.FieldPhaseID
		} else {
			out[line] = bottom.FieldPhaseID
		}
	}
	return out
}

// Demodulate is the shared burst-locked demodulation pipeline (§4.7): it
// detects each line's burst phase from composite, rotates the given
// chroma estimate into U/V using that phase and the line's Vsw sign,
// scales by chroma gain/phase, applies luma NR, and writes Y/U/V to out.
//
// chroma holds a composite-shaped chroma estimate, produced either by
// PalColour's own quarter-plane filter or by a Transform-PAL kernel (C7)
// consuming the same composite input.
func Demodulate(p video.Parameters, cfg decoder.Config, composite, chroma []float64, width, height int, fieldPhaseIDs []int, out *video.ComponentFrame) {
	lineStart, lineEnd, colStart, colEnd := decoder.ActiveRect(p)

	for line := lineStart; line < lineEnd && line < height; line++ {
		bp, bq, vsw := detectBurst(composite, width, line, fieldPhaseIDs[line], p)

		for x := colStart; x < colEnd; x++ {
			c := chroma[line*width+x]
			t := 2 * math.Pi * cyclesPerLine * float64(x) / float64(p.FieldWidth)
			s, co := math.Sincos(t)

			u := c * (co*bp + s*bq)
			v := vsw * c * (s*bp - co*bq)

			u, v = decoder.RotateUV(u, v, cfg.ChromaGain, cfg.ChromaPhase)
			out.U(line)[x] = u
			out.V(line)[x] = v
		}

		// The NR high-pass runs over the whole row (zero-padded at the row
		// edges by dsp.FIR) so its delay lines up the same way regardless
		// of where the active rectangle starts; only the active columns
		// are written back out.
		luma := subtractRow(composite, width, line, chroma)
		decoder.ApplyNR(luma, luma, dsp.FIR{Coeffs: yNRCoeffs()}, cfg.LumaNRLevel, p.IRERange())
		copy(out.Y(line)[colStart:colEnd], luma[colStart:colEnd])
	}
}

func subtractRow(composite []float64, width, line int, chroma []float64) []float64 {
	row := composite[line*width : (line+1)*width]
	ch := chroma[line*width : (line+1)*width]
	out := make([]float64, width)
	for x := range out {
		out[x] = row[x] - ch[x]
	}
	return out
}

// detectBurst computes the line's burst phase (bp, bq) and phase-alternate
// sign Vsw, per spec §4.5/§4.7.
func detectBurst(composite []float64, width, line, fieldPhaseID int, p video.Parameters) (bp, bq, vsw float64) {
	const burstStart = 0 // burst sample range is source-specific; callers
	burstEnd := p.ActiveVideoStart
	if burstEnd > width {
		burstEnd = width
	}

	for n := burstStart; n < burstEnd; n++ {
		t := 2 * math.Pi * cyclesPerLine * float64(n) / float64(p.FieldWidth)
		s, co := math.Sincos(t)
		bp += composite[line*width+n] * co
		bq += composite[line*width+n] * s
	}

	if fieldPhaseID%2 == 0 {
		vsw = 1
	} else {
		vsw = -1
	}
	return bp, bq, vsw
}
