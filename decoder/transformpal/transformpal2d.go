package transformpal

import (
	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/decoder/palcolour"
	"github.com/ausocean/tbcdecode/dsp"
	"github.com/ausocean/tbcdecode/video"
)

// TwoD is the 2-D Transform-PAL kernel: a frequency-domain alternative to
// PALColour's spatial quarter-plane filter, with no temporal dependency.
type TwoD struct {
	p    video.Parameters
	cfg  decoder.Config
	tile *dsp.Tile2D
}

func NewTwoD() *TwoD { return &TwoD{} }

func (k *TwoD) Configure(p video.Parameters, opts decoder.Config) error {
	k.p = p
	k.cfg = opts

	dsp.PlanMu.Lock()
	k.tile = dsp.NewTile2D(tileThreshold(opts))
	k.tile.Thresholds = opts.BinThresholds
	dsp.PlanMu.Unlock()

	return nil
}

func (k *TwoD) LookBehind() int { return 0 }
func (k *TwoD) LookAhead() int  { return 0 }

func (k *TwoD) DecodeFrames(window []video.SourceField, startIdx, endIdx int, out *video.ComponentFrame) error {
	first, second := window[startIdx], window[startIdx+1]
	if err := rejectSplit(first, second); err != nil {
		return err
	}

	width := k.p.FieldWidth
	height := k.p.FrameHeight()

	firstChroma := computeFieldChroma2D(k.tile, k.p, first)
	secondChroma := computeFieldChroma2D(k.tile, k.p, second)
	chroma := interleaveChroma(k.p, first, second, firstChroma, secondChroma)
	composite := decoder.Interleave(k.p, first, second)

	fieldPhaseIDs := perLineFieldPhase(first, second, height)
	palcolour.Demodulate(k.p, k.cfg, composite, chroma, width, height, fieldPhaseIDs, out)
	return nil
}
