/*
DESCRIPTION
  transformpal.go implements the Transform-PAL frequency-domain chroma
  separator (C7): common field-tiling/overlap-add plumbing shared by the
  2-D (transformpal2d.go) and 3-D (transformpal3d.go) kernels, both of
  which consume dsp.Tile2D/Tile3D and hand their chroma estimate to
  palcolour.Demodulate for burst-locked IQ demodulation.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package transformpal implements the PAL 2-D/3-D Transform chroma
// separator kernel (C7).
package transformpal

import (
	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/dsp"
	"github.com/ausocean/tbcdecode/errs"
	"github.com/ausocean/tbcdecode/video"
)

func rejectSplit(first, second video.SourceField) error {
	if first.IsSplit() || second.IsSplit() {
		return errs.New(errs.Input, "Transform-PAL kernels require composite (non-split) input; route split input to a different kernel")
	}
	return nil
}

// fieldActiveRange returns the field-local active line range.
func fieldActiveRange(p video.Parameters, f video.SourceField) (start, end int) {
	return f.FirstActiveLine(p), f.LastActiveLine(p)
}

// computeFieldChroma2D runs the 2-D windowed-FFT gate over field's own
// sample grid, tiled at half-tile strides across the active rectangle
// (padded one half-tile beyond it on each side) with overlap-add
// reconstruction, per spec §4.2.
func computeFieldChroma2D(tile *dsp.Tile2D, p video.Parameters, field video.SourceField) []float64 {
	width := p.FieldWidth
	height := len(field.Data) / width
	chroma := make([]float64, width*height)
	black := float64(p.Black16bIRE)

	lineStart, lineEnd := fieldActiveRange(p, field)

	for ty := lineStart - dsp.HalfYTile2D; ty < lineEnd+dsp.HalfYTile2D; ty += dsp.HalfYTile2D {
		for tx := p.ActiveVideoStart - dsp.HalfXTile2D; tx < p.ActiveVideoEnd+dsp.HalfXTile2D; tx += dsp.HalfXTile2D {
			var samples [dsp.YTile2D][dsp.XTile2D]float64
			for y := 0; y < dsp.YTile2D; y++ {
				ly := ty + y
				for x := 0; x < dsp.XTile2D; x++ {
					lx := tx + x
					if ly < lineStart || ly >= lineEnd || ly < 0 || ly >= height || lx < 0 || lx >= width {
						samples[y][x] = black
						continue
					}
					samples[y][x] = float64(field.Data[ly*width+lx])
				}
			}

			result := tile.Inverse(tile.ApplyGate(tile.Forward(samples)))

			for y := 0; y < dsp.YTile2D; y++ {
				ly := ty + y
				if ly < 0 || ly >= height {
					continue
				}
				for x := 0; x < dsp.XTile2D; x++ {
					lx := tx + x
					if lx < 0 || lx >= width {
						continue
					}
					chroma[ly*width+lx] += result[y][x]
				}
			}
		}
	}
	return chroma
}

// interleaveChroma combines two fields' per-field chroma estimates into a
// frame-shaped chroma plane the same way decoder.Interleave combines raw
// composite samples.
func interleaveChroma(p video.Parameters, first, second video.SourceField, firstChroma, secondChroma []float64) []float64 {
	width := p.FieldWidth
	height := p.FrameHeight()
	out := make([]float64, width*height)

	type fc struct {
		f video.SourceField
		c []float64
	}
	top, bottom := fc{first, firstChroma}, fc{second, secondChroma}
	if !first.IsFirstField {
		top, bottom = bottom, top
	}

	copyField := func(fld fc, startLine int) {
		fieldLines := len(fld.c) / width
		for fl := 0; fl < fieldLines; fl++ {
			ol := startLine + 2*fl
			if ol >= height {
				break
			}
			copy(out[ol*width:(ol+1)*width], fld.c[fl*width:(fl+1)*width])
		}
	}
	copyField(top, 0)
	copyField(bottom, 1)
	return out
}

func perLineFieldPhase(first, second video.SourceField, height int) []int {
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

// tileThreshold returns cfg's default bin-gating threshold, or 0.4 when
// cfg.BinThreshold is not positive.
func tileThreshold(cfg decoder.Config) float64 {
	if cfg.BinThreshold > 0 {
		return cfg.BinThreshold
	}
	return 0.4
}
