package dsp

import "sync"

// PlanMu serializes construction of Tile2D/Tile3D instances. The original
// implementation this package is modelled on builds FFTW plans with a
// "measure" strategy, which is not reentrant during construction (though
// plan execution is thread-safe); callers constructing kernels from
// multiple goroutines should hold PlanMu for the duration of
// NewTile2D/NewTile3D even though go-dsp's FFT itself does not require it,
// so the contract survives a future FFT backend swap.
var PlanMu sync.Mutex
