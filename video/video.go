/*
DESCRIPTION
  video.go defines the value types shared by the chroma decode pipeline:
  the video system enum, the VideoParameters calibration block, and the
  VideoFieldRepresentation interface the orchestrator pulls source fields
  through.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package video holds the data model shared across the chroma decode
// pipeline: VideoParameters, SourceField, ComponentFrame, and the
// VideoFieldRepresentation interface that feeds the orchestrator.
package video

import (
	"fmt"

	"github.com/ausocean/tbcdecode/errs"
)

// System identifies the analogue video standard a source was sampled from.
type System int

const (
	Unknown System = iota
	PAL
	NTSC
	PALM
)

func (s System) String() string {
	switch s {
	case PAL:
		return "PAL"
	case NTSC:
		return "NTSC"
	case PALM:
		return "PAL-M"
	default:
		return "Unknown"
	}
}

// FieldID is a 0-based chronological field index.
type FieldID uint64

// FieldDescriptor carries the per-field shape hints an upstream source can
// expose ahead of decoding.
type FieldDescriptor struct {
	IsFirstField bool // true for Top-parity fields.
	Width        int
	Height       int
}

// Parameters is the immutable calibration block for a decode. It must not
// change during a single decode invocation.
type Parameters struct {
	System System

	// FieldWidth is the number of samples per line.
	FieldWidth int
	// FieldHeight is the number of lines per field (262/263 for NTSC,
	// 312/313 for PAL, by parity).
	FieldHeight int

	// ActiveVideoStart/End are sample indices, half-open.
	ActiveVideoStart int
	ActiveVideoEnd   int

	// FirstActiveFrameLine/LastActiveFrameLine are frame-line indices,
	// half-open, 0-based.
	FirstActiveFrameLine int
	LastActiveFrameLine  int

	// Black16bIRE/White16bIRE are the IRE calibration points in 16-bit
	// sample counts.
	Black16bIRE int
	White16bIRE int

	IsSubcarrierLocked        bool // PAL-only.
	IsWidescreen              bool
	ActiveAreaCroppingApplied bool
}

// FrameHeight returns the number of lines in a de-interlaced frame.
func (p Parameters) FrameHeight() int {
	return 2*p.FieldHeight - 1
}

// IRERange returns White16bIRE - Black16bIRE, the unit gain for IRE
// arithmetic.
func (p Parameters) IRERange() float64 {
	return float64(p.White16bIRE - p.Black16bIRE)
}

// Validate checks the §3 invariants, returning an errs.Config-kind error if
// any are violated.
func (p Parameters) Validate() error {
	if !(p.ActiveVideoStart < p.ActiveVideoEnd && p.ActiveVideoEnd <= p.FieldWidth) {
		return errs.Newf(errs.Config, "invalid active video range [%d, %d) for field width %d",
			p.ActiveVideoStart, p.ActiveVideoEnd, p.FieldWidth)
	}
	if !(p.FirstActiveFrameLine < p.LastActiveFrameLine && p.LastActiveFrameLine <= 2*p.FieldHeight-1) {
		return errs.Newf(errs.Config, "invalid active line range [%d, %d) for field height %d",
			p.FirstActiveFrameLine, p.LastActiveFrameLine, p.FieldHeight)
	}
	if p.White16bIRE <= p.Black16bIRE {
		return errs.Newf(errs.Config, "white level %d must exceed black level %d", p.White16bIRE, p.Black16bIRE)
	}
	return nil
}

// FieldRepresentation is the upstream collaborator the orchestrator reads
// source fields and metadata from (spec §6.1). Its implementation (a
// TBC-metadata SQLite reader in the original system) is out of scope here;
// only the interface is specified.
type FieldRepresentation interface {
	VideoParameters() (Parameters, bool)
	FieldCount() uint64
	FieldRange() (FieldID, FieldID)
	HasField(FieldID) bool
	Descriptor(FieldID) (FieldDescriptor, bool)
	Field(FieldID) ([]uint16, error)
	FieldPhaseHint(FieldID) (int, bool)
	ActiveLineHint() (first, last int, ok bool)
	HasAudio() bool
	AudioSamples(FieldID) ([]int16, error)

	// HasCaptionData, CaptionBytes and Timestamp feed the EIA-608 decoder
	// (C12), which runs independently of the chroma decode kernels over
	// metadata fields in chronological order.
	HasCaptionData() bool
	CaptionBytes(FieldID) (byte1, byte2 byte, ok bool)
	Timestamp(FieldID) (float64, bool)
}

// croppedSource wraps a FieldRepresentation to report a center-cropped
// Parameters without altering anything else about the source.
type croppedSource struct {
	FieldRepresentation
	p Parameters
}

func (c *croppedSource) VideoParameters() (Parameters, bool) { return c.p, true }

// CropToActiveArea wraps src so its VideoParameters() active rectangle is
// center-cropped to the standard digitized active area for the source's
// system: 720x480 for NTSC/PAL-M, 720x576 for PAL (spec §6.4's
// active_area_only). It sets Parameters.ActiveAreaCroppingApplied so
// downstream consumers (ComponentFrame sizing, the output writer's line
// indexing) treat the cropped rectangle as the frame origin.
func CropToActiveArea(src FieldRepresentation) (FieldRepresentation, error) {
	p, ok := src.VideoParameters()
	if !ok {
		return nil, errs.New(errs.Input, "source has no video parameters")
	}

	width, height := 720, 480
	if p.System == PAL {
		height = 576
	}

	curWidth := p.ActiveVideoEnd - p.ActiveVideoStart
	curHeight := p.LastActiveFrameLine - p.FirstActiveFrameLine
	if width > curWidth || height > curHeight {
		return nil, errs.Newf(errs.Config, "active area %dx%d exceeds source active rectangle %dx%d", width, height, curWidth, curHeight)
	}

	p.ActiveVideoStart += (curWidth - width) / 2
	p.ActiveVideoEnd = p.ActiveVideoStart + width
	p.FirstActiveFrameLine += (curHeight - height) / 2
	p.LastActiveFrameLine = p.FirstActiveFrameLine + height
	p.ActiveAreaCroppingApplied = true

	return &croppedSource{FieldRepresentation: src, p: p}, nil
}

// FrameFieldIndices returns the chronological field indices (0-based) making
// up frame N (1-based), per the derived invariant in spec §3.
func FrameFieldIndices(frameNumber int) (first, second FieldID) {
	return FieldID(2*frameNumber - 2), FieldID(2*frameNumber - 1)
}

func (p Parameters) String() string {
	return fmt.Sprintf("%s %dx%d active=[%d,%d)x[%d,%d) black=%d white=%d",
		p.System, p.FieldWidth, p.FrameHeight(),
		p.ActiveVideoStart, p.ActiveVideoEnd,
		p.FirstActiveFrameLine, p.LastActiveFrameLine,
		p.Black16bIRE, p.White16bIRE)
}
