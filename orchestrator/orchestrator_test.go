package orchestrator

import (
	"testing"

	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/decoder/mono"
	"github.com/ausocean/tbcdecode/video"
)

// fakeSource is an in-memory video.FieldRepresentation for testing.
type fakeSource struct {
	p      video.Parameters
	fields map[video.FieldID][]uint16
}

func newFakeSource(p video.Parameters, numFrames int) *fakeSource {
	s := &fakeSource{p: p, fields: make(map[video.FieldID][]uint16)}
	black := uint16(p.Black16bIRE)
	for frame := 1; frame <= numFrames; frame++ {
		f1, f2 := video.FrameFieldIndices(frame)
		data := make([]uint16, p.FieldWidth*p.FieldHeight)
		for i := range data {
			data[i] = black
		}
		s.fields[f1] = data
		s.fields[f2] = append([]uint16(nil), data...)
	}
	return s
}

func (s *fakeSource) VideoParameters() (video.Parameters, bool) { return s.p, true }
func (s *fakeSource) FieldCount() uint64                        { return uint64(len(s.fields)) }
func (s *fakeSource) FieldRange() (video.FieldID, video.FieldID) {
	return 0, video.FieldID(len(s.fields))
}
func (s *fakeSource) HasField(id video.FieldID) bool { _, ok := s.fields[id]; return ok }
func (s *fakeSource) Descriptor(id video.FieldID) (video.FieldDescriptor, bool) {
	return video.FieldDescriptor{Width: s.p.FieldWidth, Height: s.p.FieldHeight}, s.HasField(id)
}
func (s *fakeSource) Field(id video.FieldID) ([]uint16, error) {
	return s.fields[id], nil
}
func (s *fakeSource) FieldPhaseHint(id video.FieldID) (int, bool) { return int(id % 4), true }
func (s *fakeSource) ActiveLineHint() (int, int, bool) {
	return s.p.FirstActiveFrameLine, s.p.LastActiveFrameLine, true
}
func (s *fakeSource) HasAudio() bool                              { return false }
func (s *fakeSource) AudioSamples(video.FieldID) ([]int16, error) { return nil, nil }
func (s *fakeSource) HasCaptionData() bool                        { return false }
func (s *fakeSource) CaptionBytes(video.FieldID) (byte, byte, bool) {
	return 0, 0, false
}
func (s *fakeSource) Timestamp(id video.FieldID) (float64, bool) {
	return float64(id) / 50.0, true
}

func testParams() video.Parameters {
	return video.Parameters{
		System:               video.NTSC,
		FieldWidth:           20,
		FieldHeight:          6,
		ActiveVideoStart:     2,
		ActiveVideoEnd:       18,
		FirstActiveFrameLine: 1,
		LastActiveFrameLine:  10,
		Black16bIRE:          1000,
		White16bIRE:          50000,
	}
}

func TestRunDecodesEveryFrame(t *testing.T) {
	p := testParams()
	src := newFakeSource(p, 5)

	frames, err := Run(Request{
		Source:       src,
		StartFrame:   1,
		EndFrame:     4,
		NewKernel:    func() decoder.Kernel { return mono.New() },
		KernelConfig: decoder.Config{},
		Threads:      2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 3 {
		t.Fatalf("len(frames) = %d, want 3", len(frames))
	}
	for i, f := range frames {
		if f == nil {
			t.Fatalf("frame %d is nil", i)
		}
	}
}

func TestRunRejectsEmptyRange(t *testing.T) {
	p := testParams()
	src := newFakeSource(p, 2)

	_, err := Run(Request{
		Source:     src,
		StartFrame: 2,
		EndFrame:   2,
		NewKernel:  func() decoder.Kernel { return mono.New() },
	})
	if err == nil {
		t.Fatal("expected error for empty frame range")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	p := testParams()
	src := newFakeSource(p, 10)

	cancel := make(chan struct{})
	close(cancel)

	_, err := Run(Request{
		Source:     src,
		StartFrame: 0,
		EndFrame:   5,
		NewKernel:  func() decoder.Kernel { return mono.New() },
		Cancel:     cancel,
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
