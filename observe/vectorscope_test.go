package observe

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ausocean/tbcdecode/video"
)

func testParams() video.Parameters {
	return video.Parameters{
		System:               video.PAL,
		FieldWidth:           16,
		FieldHeight:          8,
		ActiveVideoStart:     2,
		ActiveVideoEnd:       10,
		FirstActiveFrameLine: 1,
		LastActiveFrameLine:  9,
		Black16bIRE:          1000,
		White16bIRE:          50000,
	}
}

func TestVectorscopeObserveAccumulatesPoints(t *testing.T) {
	p := testParams()
	frame := video.NewComponentFrame(p, false)

	vs := NewVectorscope(VectorscopeConfig{})
	vs.Observe(p, frame)

	want := (p.ActiveVideoEnd - p.ActiveVideoStart) * (p.LastActiveFrameLine - p.FirstActiveFrameLine)
	if vs.PointCount() != want {
		t.Fatalf("PointCount() = %d, want %d", vs.PointCount(), want)
	}
}

func TestVectorscopeObserveConcurrentSafe(t *testing.T) {
	p := testParams()
	frame := video.NewComponentFrame(p, false)
	vs := NewVectorscope(VectorscopeConfig{Defocus: true, DefocusStdDev: 5})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vs.Observe(p, frame)
		}()
	}
	wg.Wait()

	perFrame := (p.ActiveVideoEnd - p.ActiveVideoStart) * (p.LastActiveFrameLine - p.FirstActiveFrameLine)
	if vs.PointCount() != 8*perFrame {
		t.Fatalf("PointCount() = %d, want %d", vs.PointCount(), 8*perFrame)
	}
}

func TestVectorscopeRenderWritesFile(t *testing.T) {
	p := testParams()
	frame := video.NewComponentFrame(p, false)
	vs := NewVectorscope(VectorscopeConfig{})
	vs.Observe(p, frame)

	path := filepath.Join(t.TempDir(), "vectorscope.png")
	if err := vs.Render(path); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Render() did not write %q: %v", path, err)
	}
}
