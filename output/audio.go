package output

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// AudioWriter passes through the source's per-field audio samples (when
// present) to a WAV sink, alongside the video pixel stream. Spec's
// Non-goals exclude audio decoding beyond this passthrough.
type AudioWriter struct {
	enc        *wav.Encoder
	sampleRate int
}

// NewAudioWriter opens a WAV encoder over ws at the given sample rate,
// 16-bit mono PCM.
func NewAudioWriter(ws io.WriteSeeker, sampleRate int) *AudioWriter {
	return &AudioWriter{
		enc:        wav.NewEncoder(ws, sampleRate, 16, 1, 1),
		sampleRate: sampleRate,
	}
}

// WriteSamples appends one field's worth of PCM samples.
func (a *AudioWriter) WriteSamples(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: a.sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	return a.enc.Write(buf)
}

func (a *AudioWriter) Close() error {
	return a.enc.Close()
}
