/*
DESCRIPTION
  mono.go implements the monochrome pass-through decoder kernel (C5): luma
  assembly by field interleave, an optional comb-filter chroma-notch pass,
  and FIR-based luma noise reduction.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package mono implements the monochrome decoder kernel (C5).
package mono

import (
	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/decoder/ntsc"
	"github.com/ausocean/tbcdecode/dsp"
	"github.com/ausocean/tbcdecode/errs"
	"github.com/ausocean/tbcdecode/video"
)

// Mono is the monochrome decoder kernel. It never needs temporal context.
type Mono struct {
	p   video.Parameters
	cfg decoder.Config

	nrFilter dsp.FIR
}

func New() *Mono { return &Mono{} }

func (m *Mono) Configure(p video.Parameters, opts decoder.Config) error {
	m.p = p
	m.cfg = opts
	m.nrFilter = dsp.FIR{Coeffs: lumaNRCoeffs(p.System)}
	return nil
}

func (m *Mono) LookBehind() int { return 0 }
func (m *Mono) LookAhead() int  { return 0 }

func (m *Mono) DecodeFrames(window []video.SourceField, startIdx, endIdx int, out *video.ComponentFrame) error {
	first, second := window[startIdx], window[startIdx+1]
	if len(first.Data) == 0 || len(second.Data) == 0 {
		if first.IsSplit() && len(first.LumaData) > 0 && len(second.LumaData) > 0 {
			return m.decodeSplit(first, second, out)
		}
		return errs.New(errs.Input, "empty field data")
	}

	width := m.p.FieldWidth
	height := m.p.FrameHeight()
	composite := decoder.Interleave(m.p, first, second)

	var luma []float64
	if m.cfg.FilterChroma {
		comb := ntsc.New2D()
		if err := comb.Configure(m.p, m.cfg); err == nil {
			// Borrow the comb's 2-D notch purely to strip chroma energy
			// from the composite signal; the comb kernel's own Y/U/V
			// output is discarded since mono output is Y-only.
			tmp := video.NewComponentFrame(m.p, false)
			_ = comb.DecodeFrames(window, startIdx, endIdx, tmp)
			luma = tmp.YPlane()
		}
	}
	if luma == nil {
		luma = composite
	}

	// Run the NR high-pass one scanline at a time: dsp.FIR only zero-pads
	// at index 0 and n-1 of whatever slice it's given, so filtering the
	// whole flattened frame in one call would bleed the end of line N into
	// the start of line N+1. Per-line zero-padding at each row's edges is
	// what spec §4.4 calls for.
	cored := make([]float64, len(luma))
	for line := 0; line < height; line++ {
		row := luma[line*width : (line+1)*width]
		decoder.ApplyNR(row, cored[line*width:(line+1)*width], m.nrFilter, m.cfg.LumaNRLevel, m.p.IRERange())
	}

	lineStart, lineEnd, colStart, colEnd := decoder.ActiveRect(m.p)
	for line := lineStart; line < lineEnd && line < height; line++ {
		copy(out.Y(line)[colStart:colEnd], cored[line*width+colStart:line*width+colEnd])
	}
	return nil
}

// decodeSplit handles an already Y/C-split field pair: luma is taken
// directly, chroma is discarded, matching the composite path's
// U=V=0 contract.
func (m *Mono) decodeSplit(first, second video.SourceField, out *video.ComponentFrame) error {
	width := m.p.FieldWidth
	height := m.p.FrameHeight()

	top, bottom := first, second
	if !first.IsFirstField {
		top, bottom = second, first
	}

	lineStart, lineEnd, colStart, colEnd := decoder.ActiveRect(m.p)

	assign := func(f video.SourceField, startLine int) {
		fieldLines := len(f.LumaData) / width
		for fl := 0; fl < fieldLines; fl++ {
			ol := startLine + 2*fl
			if ol >= height {
				break
			}
			if ol < lineStart || ol >= lineEnd {
				continue
			}
			row := f.LumaData[fl*width : (fl+1)*width]
			copy(out.Y(ol)[colStart:colEnd], row[colStart:colEnd])
		}
	}
	assign(top, 0)
	assign(bottom, 1)

	return nil
}

// lumaNRCoeffs returns the band-limited high-pass FIR tap set for luma NR,
// which depends on the source system's line rate.
func lumaNRCoeffs(sys video.System) []float64 {
	if sys == video.PAL {
		return []float64{-0.04, -0.08, -0.12, 0.48, -0.12, -0.08, -0.04}
	}
	return []float64{-0.05, -0.1, 0.3, -0.1, -0.05}
}
