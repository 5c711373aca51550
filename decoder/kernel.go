/*
DESCRIPTION
  kernel.go declares the Kernel interface implemented by every decoder
  (mono, PALColour, Transform-PAL 2D/3D, NTSC comb) and the shared
  per-decode configuration they're built from.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package decoder declares the Kernel interface the orchestrator dispatches
// frame windows through, and the Config shared by every concrete decoder
// kernel under decoder/mono, decoder/palcolour, decoder/transformpal and
// decoder/ntsc.
package decoder

import "github.com/ausocean/tbcdecode/video"

// Kernel is the tagged-variant interface every decoder implements. A
// fresh Kernel is created per worker goroutine by the orchestrator (C9);
// Configure is called once before any DecodeFrames call, from the
// goroutine that will use it, so implementations needn't be
// goroutine-safe internally.
type Kernel interface {
	// Configure prepares the kernel for decoding against p and opts. It
	// returns an errs.Config-kind error if the kernel cannot operate
	// against p (e.g. a Transform-PAL kernel fed Y/C-split input).
	Configure(p video.Parameters, opts Config) error

	// LookBehind and LookAhead report, in frames, how much temporal
	// context this kernel needs on either side of the frame it's asked
	// to decode. Kernels with no temporal dependency return (0, 0).
	LookBehind() int
	LookAhead() int

	// DecodeFrames decodes one frame from window, a contiguous field
	// window built by the orchestrator per spec §4.9: window[startIdx]
	// and window[startIdx+1] are the target frame's two fields, with
	// LookBehind() frames of history before startIdx and LookAhead()
	// frames of lookahead after endIdx. The kernel writes its result
	// into out; out is freshly allocated and already cleared to black/zero
	// by the caller, so the kernel need only write pixels within p's
	// active rectangle (decoder.ActiveRect) and leave the rest untouched.
	DecodeFrames(window []video.SourceField, startIdx, endIdx int, out *video.ComponentFrame) error
}

// Config carries the tunables every kernel may consult; a given kernel
// ignores the fields it doesn't use.
type Config struct {
	ChromaGain  float64 // multiplier applied to U/V before writing out.
	ChromaPhase float64 // degrees, rotation about the UV origin.

	LumaNRLevel   float64 // IRE units; 0 disables luma noise reduction.
	ChromaNRLevel float64 // IRE units; not read by any kernel, so no chroma NR is applied.

	FilterChroma bool // mono kernel: run a chroma-notch pre-filter pass.

	SimplePAL           bool // not read by any kernel; has no effect.
	PhaseCompensation   bool // NTSC 3D: add burst-phase term to the penalty.
	BinThreshold        float64
	BinThresholds       []float64 // optional per-bin override, see dsp.Tile2D/3D.
}
