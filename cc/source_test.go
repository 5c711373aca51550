package cc

import (
	"testing"

	"github.com/ausocean/tbcdecode/video"
)

type fakeCaptionSource struct {
	pairs map[video.FieldID][2]byte
	ts    map[video.FieldID]float64
	last  video.FieldID
}

func (s *fakeCaptionSource) VideoParameters() (video.Parameters, bool)        { return video.Parameters{}, true }
func (s *fakeCaptionSource) FieldCount() uint64                               { return uint64(s.last) }
func (s *fakeCaptionSource) FieldRange() (video.FieldID, video.FieldID)       { return 0, s.last }
func (s *fakeCaptionSource) HasField(id video.FieldID) bool                  { return id < s.last }
func (s *fakeCaptionSource) Descriptor(video.FieldID) (video.FieldDescriptor, bool) {
	return video.FieldDescriptor{}, false
}
func (s *fakeCaptionSource) Field(video.FieldID) ([]uint16, error) { return nil, nil }
func (s *fakeCaptionSource) FieldPhaseHint(video.FieldID) (int, bool) {
	return 0, false
}
func (s *fakeCaptionSource) ActiveLineHint() (int, int, bool) { return 0, 0, false }
func (s *fakeCaptionSource) HasAudio() bool                   { return false }
func (s *fakeCaptionSource) AudioSamples(video.FieldID) ([]int16, error) {
	return nil, nil
}
func (s *fakeCaptionSource) HasCaptionData() bool { return true }
func (s *fakeCaptionSource) CaptionBytes(id video.FieldID) (byte, byte, bool) {
	p, ok := s.pairs[id]
	return p[0], p[1], ok
}
func (s *fakeCaptionSource) Timestamp(id video.FieldID) (float64, bool) {
	t, ok := s.ts[id]
	return t, ok
}

func TestDecodeFromSourceEmitsPopOnCue(t *testing.T) {
	src := &fakeCaptionSource{
		pairs: map[video.FieldID][2]byte{
			0: {0x14, 0x20}, // RCL
			1: {0x48, 0x69}, // "Hi"
			2: {0x14, 0x2F}, // EOC
			3: {0x14, 0x2C}, // EDM
		},
		ts:   map[video.FieldID]float64{0: 0.0, 1: 0.1, 2: 1.0, 3: 3.0},
		last: 4,
	}

	cues := DecodeFromSource(src, 0, 4)
	if len(cues) != 1 {
		t.Fatalf("len(cues) = %d, want 1", len(cues))
	}
	if cues[0].Text != "Hi" {
		t.Fatalf("Text = %q, want %q", cues[0].Text, "Hi")
	}
}

func TestDecodeFromSourceNoCaptionData(t *testing.T) {
	src := &fakeCaptionSource{last: 0}
	if cues := DecodeFromSource(src, 0, 0); cues != nil {
		t.Fatalf("cues = %v, want nil", cues)
	}
}
