package output

import (
	"encoding/binary"
	"io"
)

// Backend is the output sink a decode run streams its converted frames
// into (C11). Two concrete variants exist: RawBackend (this package) for
// direct Y4M/raw-pixel file output, and a codec-backed variant whose
// contract is specified here but whose FFmpeg bindings are out of scope.
type Backend interface {
	WriteStreamHeader(header string) error
	WriteFrame(frameHeader string, pixels []uint16) error
	Close() error
}

// RawBackend writes a Y4M or headerless raw pixel stream directly to w,
// 16-bit little-endian per sample (the common convention for >8-bit Y4M
// consumed by ffmpeg's rawvideo/yuv4mpegpipe demuxers).
type RawBackend struct {
	w io.Writer
}

func NewRawBackend(w io.Writer) *RawBackend {
	return &RawBackend{w: w}
}

func (b *RawBackend) WriteStreamHeader(header string) error {
	if header == "" {
		return nil
	}
	_, err := io.WriteString(b.w, header)
	return err
}

func (b *RawBackend) WriteFrame(frameHeader string, pixels []uint16) error {
	if frameHeader != "" {
		if _, err := io.WriteString(b.w, frameHeader); err != nil {
			return err
		}
	}

	buf := make([]byte, 2*len(pixels))
	for i, p := range pixels {
		binary.LittleEndian.PutUint16(buf[2*i:], p)
	}
	_, err := b.w.Write(buf)
	return err
}

func (b *RawBackend) Close() error {
	if c, ok := b.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// CodecBackend is the contract for a codec-encoded output sink (the
// original system's FFmpeg-fed path). Only the interface is specified;
// an FFmpeg-backed implementation is out of scope for this package.
type CodecBackend interface {
	Backend

	// CodecName reports the codec the backend encodes to (e.g. "ffv1",
	// "libx264").
	CodecName() string
}
