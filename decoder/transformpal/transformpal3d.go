package transformpal

import (
	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/decoder/palcolour"
	"github.com/ausocean/tbcdecode/dsp"
	"github.com/ausocean/tbcdecode/video"
)

// ThreeD is the 3-D Transform-PAL kernel: like TwoD, but tiles span 8
// consecutive fields (the Z axis) so the frequency-domain gate can use
// temporal symmetry as well as spatial, at the cost of look-behind/
// look-ahead context the orchestrator must supply.
type ThreeD struct {
	p    video.Parameters
	cfg  decoder.Config
	tile *dsp.Tile3D
}

func NewThreeD() *ThreeD { return &ThreeD{} }

func (k *ThreeD) Configure(p video.Parameters, opts decoder.Config) error {
	k.p = p
	k.cfg = opts

	dsp.PlanMu.Lock()
	k.tile = dsp.NewTile3D(tileThreshold(opts))
	k.tile.Thresholds = opts.BinThresholds
	dsp.PlanMu.Unlock()

	return nil
}

// LookBehind and LookAhead, in frames, per spec §4.9: Transform-PAL-3-D
// needs 2 frames of history and 4 frames of lookahead so the orchestrator
// can supply a consistent Z-position across every decoded frame.
func (k *ThreeD) LookBehind() int { return 2 }
func (k *ThreeD) LookAhead() int  { return 4 }

func (k *ThreeD) DecodeFrames(window []video.SourceField, startIdx, endIdx int, out *video.ComponentFrame) error {
	first, second := window[startIdx], window[startIdx+1]
	if err := rejectSplit(first, second); err != nil {
		return err
	}

	width := k.p.FieldWidth
	height := k.p.FrameHeight()

	firstChroma := computeFieldChroma3D(k.tile, k.p, window, startIdx)
	secondChroma := computeFieldChroma3D(k.tile, k.p, window, startIdx+1)
	chroma := interleaveChroma(k.p, first, second, firstChroma, secondChroma)
	composite := decoder.Interleave(k.p, first, second)

	fieldPhaseIDs := perLineFieldPhase(first, second, height)
	palcolour.Demodulate(k.p, k.cfg, composite, chroma, width, height, fieldPhaseIDs, out)
	return nil
}

// computeFieldChroma3D runs the 3-D windowed-FFT gate for the field at
// window[targetIdx], tiling the (frame-line, sample) plane at half-tile
// strides with the Z axis spanning ZTile3D consecutive fields from
// window, centered on targetIdx so the target always sits at the same
// Z-position (dsp.HalfZTile3D) within every tile regardless of where it
// falls in the overall decode range.
func computeFieldChroma3D(tile *dsp.Tile3D, p video.Parameters, window []video.SourceField, targetIdx int) []float64 {
	target := window[targetIdx]
	width := p.FieldWidth
	fieldHeight := len(target.Data) / width
	chroma := make([]float64, width*fieldHeight)
	black := float64(p.Black16bIRE)

	frameHeight := p.FrameHeight()
	targetOffset := target.Offset()

	lineStart, lineEnd := fieldActiveRange(p, target)
	frameLineStart := targetOffset + 2*lineStart
	frameLineEnd := targetOffset + 2*lineEnd

	zStart := targetIdx - dsp.HalfZTile3D

	for ty := frameLineStart - dsp.HalfYTile3D; ty < frameLineEnd+dsp.HalfYTile3D; ty += dsp.HalfYTile3D {
		for tx := p.ActiveVideoStart - dsp.HalfXTile3D; tx < p.ActiveVideoEnd+dsp.HalfXTile3D; tx += dsp.HalfXTile3D {
			var samples [dsp.ZTile3D][dsp.YTile3D][dsp.XTile3D]float64

			for z := 0; z < dsp.ZTile3D; z++ {
				wIdx := zStart + z
				var f video.SourceField
				if wIdx >= 0 && wIdx < len(window) {
					f = window[wIdx]
				}
				fWidth := width
				fOffset := f.Offset()
				fData := f.Data

				for y := 0; y < dsp.YTile3D; y++ {
					fy := ty + y
					if fy < 0 || fy >= frameHeight || fy%2 != fOffset || len(fData) == 0 {
						for x := 0; x < dsp.XTile3D; x++ {
							samples[z][y][x] = black
						}
						continue
					}
					fieldLine := (fy - fOffset) / 2
					for x := 0; x < dsp.XTile3D; x++ {
						lx := tx + x
						if lx < 0 || lx >= fWidth || fieldLine*fWidth+lx >= len(fData) {
							samples[z][y][x] = black
							continue
						}
						samples[z][y][x] = float64(fData[fieldLine*fWidth+lx])
					}
				}
			}

			result := tile.Inverse(tile.ApplyGate(tile.Forward(samples)))

			for y := 0; y < dsp.YTile3D; y++ {
				fy := ty + y
				if fy < 0 || fy >= frameHeight || fy%2 != targetOffset {
					continue
				}
				fieldLine := (fy - targetOffset) / 2
				if fieldLine < 0 || fieldLine >= fieldHeight {
					continue
				}
				for x := 0; x < dsp.XTile3D; x++ {
					lx := tx + x
					if lx < 0 || lx >= width {
						continue
					}
					// z-position of the target within this tile is always
					// dsp.HalfZTile3D, since zStart = targetIdx - HalfZTile3D.
					chroma[fieldLine*width+lx] += result[dsp.HalfZTile3D][y][x]
				}
			}
		}
	}

	return chroma
}
