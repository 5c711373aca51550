/*
DESCRIPTION
  source.go drives the EIA-608 decoder over an upstream field source,
  independently of the chroma decode orchestrator (spec §4.0: "C12 runs
  independently over metadata fields and emits cues to the encoder's
  subtitle channel").

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package cc

import "github.com/ausocean/tbcdecode/video"

// DecodeFromSource walks src's fields in chronological order within
// [start, end) and decodes any caption byte pairs present, returning the
// full emitted cue sequence. Fields lacking caption data are skipped.
func DecodeFromSource(src video.FieldRepresentation, start, end video.FieldID) []Cue {
	if !src.HasCaptionData() {
		return nil
	}

	d := NewDecoder()
	lastTimestamp := 0.0
	for id := start; id < end; id++ {
		if !src.HasField(id) {
			continue
		}
		b1, b2, ok := src.CaptionBytes(id)
		if !ok {
			continue
		}
		ts, ok := src.Timestamp(id)
		if !ok {
			ts = lastTimestamp
		}
		lastTimestamp = ts
		d.ProcessBytes(ts, b1, b2)
	}
	return d.Finalize(lastTimestamp)
}
