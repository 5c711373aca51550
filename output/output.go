/*
DESCRIPTION
  output.go implements the output writer (C10): padding expansion of the
  active rectangle, Y4M stream/frame headers, and IRE-scaled Y'UV to
  limited-range Y'CbCr / full-range R'G'B' 16-bit pixel conversion.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package output implements the component-frame to RGB48/YUV444P16/GRAY16
// conversion and Y4M stream framing (C10), plus the raw-file and audio
// passthrough output backends (C11).
package output

import (
	"math"
	"strconv"

	"github.com/ausocean/tbcdecode/video"
)

// PixelFormat selects the output writer's packed pixel layout.
type PixelFormat int

const (
	RGB48 PixelFormat = iota
	YUV444P16
	GRAY16
)

func (f PixelFormat) String() string {
	switch f {
	case RGB48:
		return "RGB48"
	case YUV444P16:
		return "YUV444P16"
	case GRAY16:
		return "GRAY16"
	default:
		return "unknown"
	}
}

// Limits, zero points and scaling factors for Y'CbCr, per BT.601-7 §2.5.3.
const (
	yMin   = 1.0 * 256.0
	yZero  = 16.0 * 256.0
	yScaleConst = 219.0 * 256.0
	yMax   = 254.75 * 256.0
	cMin   = 1.0 * 256.0
	cZero  = 128.0 * 256.0
	cScale = 112.0 * 256.0
	cMax   = 254.75 * 256.0

	oneMinusKb = 1.0 - 0.114
	oneMinusKr = 1.0 - 0.299

	// kB = sqrt(209556997/96146491)/3, kR = sqrt(221990474/288439473), BT.601-7.
	kB = 0.49211104112248356308804691718185
	kR = 0.87728321993817866838972487283129
)

// Config is the output writer's configuration (spec §4.8).
type Config struct {
	PaddingAmount int // 1 = no padding, else expand to a multiple of this.
	PixelFormat   PixelFormat
	OutputY4M     bool
}

// Writer converts ComponentFrames into one of the three pixel formats,
// expanding the active rectangle for codec-alignment padding in NewWriter.
type Writer struct {
	cfg Config
	p   video.Parameters

	activeWidth, activeHeight int
	outputHeight              int
	topPadLines, bottomPadLines int
}

// NewWriter configures a Writer against p and cfg. If cfg.PaddingAmount > 1,
// NewWriter's copy of p has its active rectangle expanded (growing
// active_video_start/end and implicitly the padded output height); the
// caller's p is not modified. Returns the Writer and the (possibly
// expanded) Parameters, which a caller passes on for downstream consumers,
// including any re-run decoder kernel, to see the same expanded region.
func NewWriter(p video.Parameters, cfg Config) (*Writer, video.Parameters) {
	w := &Writer{cfg: cfg, p: p}
	w.activeWidth = p.ActiveVideoEnd - p.ActiveVideoStart
	w.activeHeight = p.LastActiveFrameLine - p.FirstActiveFrameLine
	w.outputHeight = w.activeHeight

	if cfg.PaddingAmount > 1 {
		for {
			w.activeWidth = p.ActiveVideoEnd - p.ActiveVideoStart
			if w.activeWidth%cfg.PaddingAmount == 0 {
				break
			}
			if w.activeWidth%2 == 0 {
				p.ActiveVideoEnd++
			} else {
				p.ActiveVideoStart--
			}
		}

		for {
			w.outputHeight = w.topPadLines + w.activeHeight + w.bottomPadLines
			if w.outputHeight%cfg.PaddingAmount == 0 {
				break
			}
			if w.outputHeight%2 == 0 {
				w.bottomPadLines++
			} else {
				w.topPadLines++
			}
		}
	}

	w.p = p
	return w, p
}

// ActiveWidth and OutputHeight report the (possibly padded)
// output geometry established by NewWriter.
func (w *Writer) ActiveWidth() int  { return w.activeWidth }
func (w *Writer) OutputHeight() int { return w.outputHeight }

// Y4M pixel-aspect-ratio table, per spec §4.8 (EBU R92 / SMPTE RP 187
// scaled from BT.601 sampling to 4fSC).
const (
	parPAL43   = "259:311"
	parPAL169  = "865:779"
	parNTSC43  = "352:413"
	parNTSC169 = "25:22"
)

// StreamHeader returns the Y4M stream header, or "" if OutputY4M is false
// or the pixel format is RGB48 (Y4M only carries YUV/GRAY).
func (w *Writer) StreamHeader() string {
	if !w.cfg.OutputY4M || w.cfg.PixelFormat == RGB48 {
		return ""
	}

	rate := "F30000:1001"
	if w.p.System == video.PAL || w.p.System == video.PALM {
		rate = "F25:1"
	}

	interlace := "t"
	if (w.p.FirstActiveFrameLine%2)^(w.topPadLines%2) != 0 {
		interlace = "b"
	}

	par := parNTSC43
	switch {
	case w.p.System == video.PAL && w.p.IsWidescreen:
		par = parPAL169
	case w.p.System == video.PAL:
		par = parPAL43
	case w.p.IsWidescreen:
		par = parNTSC169
	}

	pixel := "C444p16 XCOLORRANGE=LIMITED"
	if w.cfg.PixelFormat == GRAY16 {
		pixel = "Cmono16 XCOLORRANGE=LIMITED"
	}

	return "YUV4MPEG2" +
		" W" + strconv.Itoa(w.activeWidth) +
		" H" + strconv.Itoa(w.outputHeight) +
		" " + rate +
		" I" + interlace +
		" A" + par +
		" " + pixel +
		"\n"
}

// FrameHeader returns the per-frame Y4M header, or "" under the same
// conditions as StreamHeader (OutputY4M false, or RGB48).
func (w *Writer) FrameHeader() string {
	if !w.cfg.OutputY4M || w.cfg.PixelFormat == RGB48 {
		return ""
	}
	return "FRAME\n"
}

// Convert renders frame into a packed pixel buffer sized for the current
// pixel format: activeWidth*outputHeight samples for GRAY16, 3x that
// (planar Y, Cb, Cr for YUV444P16; interleaved R,G,B for RGB48) otherwise.
func (w *Writer) Convert(frame *video.ComponentFrame) []uint16 {
	size := w.activeWidth * w.outputHeight
	if w.cfg.PixelFormat != GRAY16 {
		size *= 3
	}
	out := make([]uint16, size)

	w.clearPadLines(0, w.topPadLines, out)
	w.clearPadLines(w.outputHeight-w.bottomPadLines, w.bottomPadLines, out)

	for y := 0; y < w.activeHeight; y++ {
		w.convertLine(y, frame, out)
	}
	return out
}

func (w *Writer) clearPadLines(firstLine, numLines int, out []uint16) {
	if numLines <= 0 {
		return
	}
	switch w.cfg.PixelFormat {
	case RGB48:
		start := w.activeWidth * firstLine * 3
		for i := 0; i < numLines*w.activeWidth*3; i++ {
			out[start+i] = 0
		}
	case YUV444P16:
		plane := w.activeWidth * w.outputHeight
		yStart := w.activeWidth * firstLine
		for i := 0; i < numLines*w.activeWidth; i++ {
			out[yStart+i] = uint16(yZero)
			out[plane+yStart+i] = uint16(cZero)
			out[2*plane+yStart+i] = uint16(cZero)
		}
	case GRAY16:
		start := w.activeWidth * firstLine
		for i := 0; i < numLines*w.activeWidth; i++ {
			out[start+i] = uint16(yZero)
		}
	}
}

func (w *Writer) convertLine(lineNumber int, frame *video.ComponentFrame, out []uint16) {
	inputLine := lineNumber
	xOffset := 0
	if !w.p.ActiveAreaCroppingApplied {
		inputLine = w.p.FirstActiveFrameLine + lineNumber
		xOffset = w.p.ActiveVideoStart
	}

	inY := frame.Y(inputLine)[xOffset:]
	var inU, inV []float64
	if w.cfg.PixelFormat != GRAY16 {
		inU = frame.U(inputLine)[xOffset:]
		inV = frame.V(inputLine)[xOffset:]
	}

	outputLine := w.topPadLines + lineNumber
	yOffset := float64(w.p.Black16bIRE)
	yRange := float64(w.p.White16bIRE - w.p.Black16bIRE)
	uvRange := yRange

	switch w.cfg.PixelFormat {
	case RGB48:
		start := w.activeWidth * outputLine * 3
		yScale := 65535.0 / yRange
		uvScale := 65535.0 / uvRange
		for x := 0; x < w.activeWidth; x++ {
			rY := clamp((inY[x]-yOffset)*yScale, 0, 65535)
			rU := inU[x] * uvScale
			rV := inV[x] * uvScale

			pos := start + x*3
			out[pos] = uint16(clamp(rY+1.139883*rV, 0, 65535))
			out[pos+1] = uint16(clamp(rY+(-0.394642*rU)+(-0.580622*rV), 0, 65535))
			out[pos+2] = uint16(clamp(rY+2.032062*rU, 0, 65535))
		}
	case YUV444P16:
		plane := w.activeWidth * w.outputHeight
		yStart := w.activeWidth * outputLine
		yScale := yScaleConst / yRange
		cbScale := (cScale / (oneMinusKb * kB)) / uvRange
		crScale := (cScale / (oneMinusKr * kR)) / uvRange
		for x := 0; x < w.activeWidth; x++ {
			out[yStart+x] = uint16(clamp((inY[x]-yOffset)*yScale+yZero, yMin, yMax))
			out[plane+yStart+x] = uint16(clamp(inU[x]*cbScale+cZero, cMin, cMax))
			out[2*plane+yStart+x] = uint16(clamp(inV[x]*crScale+cZero, cMin, cMax))
		}
	case GRAY16:
		start := w.activeWidth * outputLine
		yScale := yScaleConst / yRange
		for x := 0; x < w.activeWidth; x++ {
			out[start+x] = uint16(clamp((inY[x]-yOffset)*yScale+yZero, yMin, yMax))
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
