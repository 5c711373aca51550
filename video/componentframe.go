package video

// ComponentFrame holds one de-interlaced frame's Y, U and V planes in IRE
// double-precision (C4). The planes share the same scaling as the original
// composite signal: the chroma signal can be recovered by subtracting Y
// from the composite.
type ComponentFrame struct {
	width  int
	height int

	yData []float64
	uData []float64
	vData []float64
}

// NewComponentFrame allocates a frame sized for p and clears it to black.
// If cropped is true, the planes are sized exactly to the active
// rectangle and line 0 corresponds to p.FirstActiveFrameLine; otherwise
// they're sized for the full frame and pixels outside the active
// rectangle are left at black.
func NewComponentFrame(p Parameters, cropped bool) *ComponentFrame {
	width := p.FieldWidth
	height := p.FrameHeight()
	if cropped {
		width = p.ActiveVideoEnd - p.ActiveVideoStart
		height = p.LastActiveFrameLine - p.FirstActiveFrameLine
	}

	f := &ComponentFrame{
		width:  width,
		height: height,
		yData:  make([]float64, width*height),
		uData:  make([]float64, width*height),
		vData:  make([]float64, width*height),
	}
	f.Clear(p)
	return f
}

// Clear resets every pixel to black (Y = Black16bIRE, U = V = 0).
func (f *ComponentFrame) Clear(p Parameters) {
	black := float64(p.Black16bIRE)
	for i := range f.yData {
		f.yData[i] = black
		f.uData[i] = 0
		f.vData[i] = 0
	}
}

func (f *ComponentFrame) Width() int  { return f.width }
func (f *ComponentFrame) Height() int { return f.height }

// Y returns a slice covering one row of the Y plane. Line numbers are
// 0-based within the frame. Rows are stored contiguously, so a pointer
// returned for line 0 can safely index into subsequent lines too.
func (f *ComponentFrame) Y(line int) []float64 { return f.yData[line*f.width:] }
func (f *ComponentFrame) U(line int) []float64 { return f.uData[line*f.width:] }
func (f *ComponentFrame) V(line int) []float64 { return f.vData[line*f.width:] }

// YPlane, UPlane and VPlane return the full backing planes, row-major.
func (f *ComponentFrame) YPlane() []float64 { return f.yData }
func (f *ComponentFrame) UPlane() []float64 { return f.uData }
func (f *ComponentFrame) VPlane() []float64 { return f.vData }

// CropFrame extracts p's active rectangle out of a full-size frame
// (produced with NewComponentFrame(p, false)) into a new frame whose line
// 0 corresponds to p.FirstActiveFrameLine, per spec §3's "active-area
// cropping" data model. Decoder kernels always write full-size frames, so
// this crop runs as a post-decode step rather than inside each kernel.
func CropFrame(p Parameters, full *ComponentFrame) *ComponentFrame {
	cropped := NewComponentFrame(p, true)
	for line := 0; line < cropped.height; line++ {
		srcLine := p.FirstActiveFrameLine + line
		copy(cropped.Y(line)[:cropped.width], full.Y(srcLine)[p.ActiveVideoStart:p.ActiveVideoEnd])
		copy(cropped.U(line)[:cropped.width], full.U(srcLine)[p.ActiveVideoStart:p.ActiveVideoEnd])
		copy(cropped.V(line)[:cropped.width], full.V(srcLine)[p.ActiveVideoStart:p.ActiveVideoEnd])
	}
	return cropped
}
