/*
DESCRIPTION
  orchestrator.go implements the decode orchestrator (C9): it derives a
  kernel's look-behind/look-ahead requirement, loads an extended field
  sequence with black padding at the edges, and dispatches per-frame field
  windows to a pool of worker goroutines, each owning its own kernel
  instance, preserving the Z-position invariant 3-D kernels depend on.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package orchestrator implements the multi-threaded decode engine (C9)
// that marshals sliding field windows through decoder kernels.
package orchestrator

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ausocean/tbcdecode/decoder"
	"github.com/ausocean/tbcdecode/dsp"
	"github.com/ausocean/tbcdecode/errs"
	"github.com/ausocean/tbcdecode/video"
)

// KernelFactory constructs a fresh, unconfigured decoder kernel. One is
// invoked per worker goroutine so kernels never need to be safe for
// concurrent use.
type KernelFactory func() decoder.Kernel

// Request is the orchestrator's input (spec §4.9).
type Request struct {
	Source video.FieldRepresentation

	StartFrame, EndFrame int // half-open, 0-based.

	NewKernel    KernelFactory
	KernelConfig decoder.Config

	// Threads is the worker count; 0 selects runtime.GOMAXPROCS(0).
	Threads int

	// Cancel, if non-nil, is checked between frames; a closed channel
	// aborts remaining work.
	Cancel <-chan struct{}

	// Progress, if non-nil, is called after every completed frame with
	// (framesDone, totalFrames). It must be safe to call concurrently.
	Progress func(done, total int)

	// Observe, if non-nil, is called with every completed frame before
	// it's stored, for diagnostic observers (e.g. observe.Vectorscope)
	// that never influence decode output. It must be safe to call
	// concurrently.
	Observe func(p video.Parameters, frame *video.ComponentFrame)
}

// Run executes one decode pass and returns one ComponentFrame per frame
// in [StartFrame, EndFrame), in order. On cancellation or a kernel error,
// it returns a nil slice and the triggering error; partial output is
// discarded, per spec §4.9's failure semantics.
func Run(req Request) ([]*video.ComponentFrame, error) {
	p, ok := req.Source.VideoParameters()
	if !ok {
		return nil, errs.New(errs.Input, "source has no video parameters")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if req.EndFrame <= req.StartFrame {
		return nil, errs.Newf(errs.Input, "empty frame range [%d, %d)", req.StartFrame, req.EndFrame)
	}

	probe := req.NewKernel()
	lookBehind := probe.LookBehind()
	lookAhead := probe.LookAhead()

	extended, extStartField, err := loadExtendedSequence(req.Source, p, req.StartFrame-lookBehind, req.EndFrame+lookAhead)
	if err != nil {
		return nil, err
	}

	numFrames := req.EndFrame - req.StartFrame
	out := make([]*video.ComponentFrame, numFrames)

	threads := req.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > numFrames {
		threads = numFrames
	}

	var next int64 = -1
	var done int64
	var cancelled int32
	var firstErr error
	var errMu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			dsp.PlanMu.Lock()
			kernel := req.NewKernel()
			dsp.PlanMu.Unlock()

			if err := kernel.Configure(p, req.KernelConfig); err != nil {
				recordErr(&errMu, &firstErr, err)
				atomic.StoreInt32(&cancelled, 1)
				return
			}

			for {
				if isCancelled(req.Cancel) || atomic.LoadInt32(&cancelled) != 0 {
					return
				}

				idx := int(atomic.AddInt64(&next, 1))
				if idx >= numFrames {
					return
				}

				window, startIdx, endIdx := buildFieldWindow(extended, extStartField, p, req.StartFrame+idx, lookBehind, lookAhead)

				frame := video.NewComponentFrame(p, false)
				if err := kernel.DecodeFrames(window, startIdx, endIdx, frame); err != nil {
					recordErr(&errMu, &firstErr, err)
					atomic.StoreInt32(&cancelled, 1)
					return
				}

				if req.Observe != nil {
					req.Observe(p, frame)
				}

				if p.ActiveAreaCroppingApplied {
					frame = video.CropFrame(p, frame)
				}

				out[idx] = frame
				if req.Progress != nil {
					req.Progress(int(atomic.AddInt64(&done, 1)), numFrames)
				}
			}
		}()
	}

	wg.Wait()

	if isCancelled(req.Cancel) {
		return nil, errs.New(errs.Cancelled, "decode cancelled")
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func recordErr(mu *sync.Mutex, dst *error, err error) {
	mu.Lock()
	defer mu.Unlock()
	if *dst == nil {
		*dst = err
	}
}

func isCancelled(c <-chan struct{}) bool {
	if c == nil {
		return false
	}
	select {
	case <-c:
		return true
	default:
		return false
	}
}

// loadExtendedSequence loads every field covering frame range
// [startFrame, endFrame) (which may run negative or past the source's
// end), returning the field slice and the absolute frame number the
// slice's index 0 corresponds to. Out-of-range frames are represented as
// black fields carrying frame 1's phase metadata, per spec §4.9 step 2.
func loadExtendedSequence(src video.FieldRepresentation, p video.Parameters, startFrame, endFrame int) ([]video.SourceField, int, error) {
	phase1First, phase1Second := referencePhaseHints(src)

	fields := make([]video.SourceField, 0, 2*(endFrame-startFrame))
	for frame := startFrame; frame < endFrame; frame++ {
		// frame is 0-based; FrameFieldIndices takes a 1-based frame number.
		first, second := video.FrameFieldIndices(frame + 1)
		fields = append(fields,
			loadOrBlackField(src, p, first, true, phase1First),
			loadOrBlackField(src, p, second, false, phase1Second),
		)
	}
	return fields, startFrame, nil
}

func referencePhaseHints(src video.FieldRepresentation) (first, second int) {
	f1, f2 := video.FrameFieldIndices(1)
	if h, ok := src.FieldPhaseHint(f1); ok {
		first = h
	}
	if h, ok := src.FieldPhaseHint(f2); ok {
		second = h
	}
	return first, second
}

func loadOrBlackField(src video.FieldRepresentation, p video.Parameters, id video.FieldID, isFirst bool, fallbackPhase int) video.SourceField {
	if src.HasField(id) {
		raw, err := src.Field(id)
		if err == nil {
			phase := fallbackPhase
			if h, ok := src.FieldPhaseHint(id); ok {
				phase = h
			}
			if f, err := video.AdaptField(p, int(id)+1, isFirst, phase, raw); err == nil {
				return f
			}
		}
	}
	return video.BlackField(p, int(id)+1, isFirst, fallbackPhase)
}

// buildFieldWindow extracts the contiguous field window for frameNumber
// out of extended (whose index 0 is extStartFrame), padding at the front
// with black fields if necessary so the target frame always lands at
// Z-position lookBehind*2 within the returned window.
func buildFieldWindow(extended []video.SourceField, extStartFrame int, p video.Parameters, frameNumber, lookBehind, lookAhead int) (window []video.SourceField, startIdx, endIdx int) {
	wantFrames := lookBehind + 2 + lookAhead
	window = make([]video.SourceField, 2*wantFrames)

	wantStartFrame := frameNumber - lookBehind
	for i := 0; i < wantFrames; i++ {
		srcFrame := wantStartFrame + i
		extIdx := srcFrame - extStartFrame
		if extIdx < 0 || 2*extIdx+1 >= len(extended) {
			phase := 0
			window[2*i] = video.BlackField(p, 0, true, phase)
			window[2*i+1] = video.BlackField(p, 0, false, phase)
			continue
		}
		window[2*i] = extended[2*extIdx]
		window[2*i+1] = extended[2*extIdx+1]
	}

	return window, lookBehind * 2, lookBehind*2 + 2
}
