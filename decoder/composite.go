package decoder

import "github.com/ausocean/tbcdecode/video"

// Interleave assembles a frame-height x width composite plane (row-major,
// float64 IRE units) from a frame's two source fields, per spec §4.4:
// even output lines come from whichever field is Top-parity, odd lines
// from the other.
func Interleave(p video.Parameters, first, second video.SourceField) []float64 {
	width := p.FieldWidth
	height := p.FrameHeight()
	out := make([]float64, width*height)

	top, bottom := first, second
	if !first.IsFirstField {
		top, bottom = second, first
	}

	copyField := func(f video.SourceField, startLine int) {
		fieldLines := len(f.Data) / width
		for fl := 0; fl < fieldLines; fl++ {
			ol := startLine + 2*fl
			if ol >= height {
				break
			}
			src := f.Data[fl*width : (fl+1)*width]
			dst := out[ol*width : (ol+1)*width]
			for x, s := range src {
				dst[x] = float64(s)
			}
		}
	}

	copyField(top, 0)
	copyField(bottom, 1)

	return out
}

// Line returns the composite plane's row for line, given width.
func Line(plane []float64, width, line int) []float64 {
	return plane[line*width : (line+1)*width]
}

// ActiveRect returns p's active rectangle bounds in frame-line and sample
// space, per spec §3/§8.1: every kernel writes pixels only within this
// rectangle, leaving the rest of the (caller-cleared) frame at black/zero.
func ActiveRect(p video.Parameters) (lineStart, lineEnd, colStart, colEnd int) {
	return p.FirstActiveFrameLine, p.LastActiveFrameLine, p.ActiveVideoStart, p.ActiveVideoEnd
}
