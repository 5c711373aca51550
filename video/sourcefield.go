package video

import "github.com/ausocean/tbcdecode/errs"

// SourceField is one field's composite samples plus descriptor (C3).
type SourceField struct {
	SeqNo        int // 1-based.
	IsFirstField bool
	FieldPhaseID int

	// Data holds the composite samples, length FieldWidth*FieldHeight.
	// LumaData/ChromaData are set instead when the source is Y/C split;
	// in that case Data is empty.
	Data       []uint16
	LumaData   []uint16
	ChromaData []uint16
}

// IsSplit reports whether this field carries separate luma/chroma data
// rather than a single composite signal.
func (f SourceField) IsSplit() bool {
	return len(f.LumaData) > 0 || len(f.ChromaData) > 0
}

// Offset returns the vertical offset of this field within the interlaced
// frame: 0 for the top field, 1 for the bottom field.
func (f SourceField) Offset() int {
	if f.IsFirstField {
		return 0
	}
	return 1
}

// FirstActiveLine returns the first active line number within this field's
// own data (not frame-relative), given the video parameters.
func (f SourceField) FirstActiveLine(p Parameters) int {
	return (p.FirstActiveFrameLine + 1 - f.Offset()) / 2
}

// LastActiveLine returns the last active line number (half-open) within
// this field's own data.
func (f SourceField) LastActiveLine(p Parameters) int {
	return (p.LastActiveFrameLine + 1 - f.Offset()) / 2
}

// BlackField returns a field of the given phase/parity filled entirely with
// black composite samples, used by the orchestrator to pad extended field
// windows past the real source's range.
func BlackField(p Parameters, seqNo int, isFirstField bool, fieldPhaseID int) SourceField {
	data := make([]uint16, p.FieldWidth*p.FieldHeight)
	black := uint16(p.Black16bIRE)
	for i := range data {
		data[i] = black
	}
	return SourceField{
		SeqNo:        seqNo,
		IsFirstField: isFirstField,
		FieldPhaseID: fieldPhaseID,
		Data:         data,
	}
}

// AdaptField bridges a raw external field buffer into the decoder's
// expected SourceField layout (C3): it copies the samples, sets SeqNo
// (1-based), derives IsFirstField from parity, propagates the phase hint,
// and — for a PAL subcarrier-locked source's Bottom-parity field — applies
// the 2-sample left shift that subcarrier-locked sampling requires before
// any chroma-phase-sensitive processing runs.
func AdaptField(p Parameters, seqNo int, isFirstField bool, phaseHint int, raw []uint16) (SourceField, error) {
	if len(raw) == 0 {
		return SourceField{}, errs.New(errs.Input, "empty field data")
	}

	data := make([]uint16, len(raw))
	copy(data, raw)

	if p.System == PAL && p.IsSubcarrierLocked && !isFirstField {
		shiftLeft2PerLine(data, p.FieldWidth, uint16(p.Black16bIRE))
	}

	return SourceField{
		SeqNo:        seqNo,
		IsFirstField: isFirstField,
		FieldPhaseID: phaseHint,
		Data:         data,
	}, nil
}

// shiftLeft2PerLine drops the first 2 samples of each line and appends 2
// black-padded samples to that line's end, in place. The shift is
// per-line: it must not pull samples across a line boundary.
func shiftLeft2PerLine(data []uint16, width int, black uint16) {
	if width <= 2 {
		return
	}
	for start := 0; start+width <= len(data); start += width {
		row := data[start : start+width]
		copy(row, row[2:])
		row[width-1] = black
		row[width-2] = black
	}
}
