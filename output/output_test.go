package output

import (
	"strings"
	"testing"

	"github.com/ausocean/tbcdecode/video"
)

func testParams() video.Parameters {
	return video.Parameters{
		System:               video.PAL,
		FieldWidth:           16,
		FieldHeight:          8,
		ActiveVideoStart:     2,
		ActiveVideoEnd:       14,
		FirstActiveFrameLine: 1,
		LastActiveFrameLine:  13,
		Black16bIRE:          1000,
		White16bIRE:          50000,
	}
}

func TestNewWriterNoPadding(t *testing.T) {
	p := testParams()
	w, outP := NewWriter(p, Config{PaddingAmount: 1, PixelFormat: YUV444P16})
	if w.ActiveWidth() != 12 {
		t.Fatalf("ActiveWidth() = %d, want 12", w.ActiveWidth())
	}
	if w.OutputHeight() != 12 {
		t.Fatalf("OutputHeight() = %d, want 12", w.OutputHeight())
	}
	if outP.ActiveVideoStart != p.ActiveVideoStart || outP.ActiveVideoEnd != p.ActiveVideoEnd {
		t.Fatal("unpadded writer must not mutate the active rectangle")
	}
}

func TestNewWriterPaddingExpandsToMultiple(t *testing.T) {
	p := testParams()
	w, outP := NewWriter(p, Config{PaddingAmount: 8, PixelFormat: YUV444P16})
	if w.ActiveWidth()%8 != 0 {
		t.Fatalf("ActiveWidth() = %d, not a multiple of 8", w.ActiveWidth())
	}
	if w.OutputHeight()%8 != 0 {
		t.Fatalf("OutputHeight() = %d, not a multiple of 8", w.OutputHeight())
	}
	if outP.ActiveVideoEnd-outP.ActiveVideoStart != w.ActiveWidth() {
		t.Fatal("returned Parameters must reflect the expanded active rectangle")
	}
}

func TestStreamHeaderOmittedWhenNotY4M(t *testing.T) {
	p := testParams()
	w, _ := NewWriter(p, Config{PaddingAmount: 1, PixelFormat: RGB48, OutputY4M: false})
	if w.StreamHeader() != "" {
		t.Fatal("StreamHeader() should be empty when OutputY4M is false")
	}
}

func TestStreamHeaderPAL(t *testing.T) {
	p := testParams()
	w, _ := NewWriter(p, Config{PaddingAmount: 1, PixelFormat: YUV444P16, OutputY4M: true})
	h := w.StreamHeader()
	if !strings.HasPrefix(h, "YUV4MPEG2") {
		t.Fatalf("StreamHeader() = %q, want YUV4MPEG2 prefix", h)
	}
	if !strings.Contains(h, "F25:1") {
		t.Fatalf("StreamHeader() = %q, want PAL frame rate F25:1", h)
	}
	if !strings.Contains(h, "C444p16") {
		t.Fatalf("StreamHeader() = %q, want C444p16 colorspace tag", h)
	}
}

func TestConvertBlackFrameHasNeutralChroma(t *testing.T) {
	p := testParams()
	w, outP := NewWriter(p, Config{PaddingAmount: 1, PixelFormat: YUV444P16})

	frame := video.NewComponentFrame(outP, false)
	pixels := w.Convert(frame)

	plane := w.ActiveWidth() * w.OutputHeight()
	if len(pixels) != plane*3 {
		t.Fatalf("len(pixels) = %d, want %d", len(pixels), plane*3)
	}
	for i := 0; i < plane; i++ {
		if pixels[plane+i] != uint16(cZero) || pixels[2*plane+i] != uint16(cZero) {
			t.Fatalf("black input must decode to zero chroma, got Cb=%d Cr=%d", pixels[plane+i], pixels[2*plane+i])
		}
	}
}

func TestConvertGray16OmitsChromaPlanes(t *testing.T) {
	p := testParams()
	w, outP := NewWriter(p, Config{PaddingAmount: 1, PixelFormat: GRAY16})
	frame := video.NewComponentFrame(outP, false)
	pixels := w.Convert(frame)
	if len(pixels) != w.ActiveWidth()*w.OutputHeight() {
		t.Fatalf("len(pixels) = %d, want %d", len(pixels), w.ActiveWidth()*w.OutputHeight())
	}
}
