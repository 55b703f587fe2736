package graphics

import (
	"testing"

	"github.com/paulrobello/termcellrender/gpu"
)

func TestCache_GetOrCreateTexture_UploadsOnceThenNoOp(t *testing.T) {
	c := NewCache(gpu.NullDeviceHandle{})
	rgba := make([]byte, 4*4*4)

	tex1, err := c.GetOrCreateTexture(1, rgba, 4, 4)
	if err != nil {
		t.Fatalf("GetOrCreateTexture: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached image, got %d", c.Len())
	}

	tex2, err := c.GetOrCreateTexture(1, rgba, 4, 4)
	if err != nil {
		t.Fatalf("GetOrCreateTexture (repeat): %v", err)
	}
	if tex1 != tex2 {
		t.Fatal("expected same texture instance on repeated id")
	}
	if c.Len() != 1 {
		t.Fatalf("expected cache to stay at 1 entry, got %d", c.Len())
	}
}

func TestCache_Forget_RemovesEntry(t *testing.T) {
	c := NewCache(gpu.NullDeviceHandle{})
	rgba := make([]byte, 4)
	c.GetOrCreateTexture(7, rgba, 1, 1)
	c.Forget(7)
	if c.Len() != 0 {
		t.Fatalf("expected cache empty after Forget, got %d", c.Len())
	}
}

func TestComputeDestRect_BasicPlacement(t *testing.T) {
	p := Placement{ScreenRow: 2, Col: 3, WidthCells: 4, HeightCells: 2, ClipTopRows: 0}
	r := ComputeDestRect(p, 2, 8, 16, 0, 0)
	if r.X0 != 2+3*8 {
		t.Fatalf("unexpected X0: %v", r.X0)
	}
	if r.X1 != r.X0+4*8 {
		t.Fatalf("unexpected X1: %v", r.X1)
	}
	if r.V0 != 0 || r.V1 != 1 {
		t.Fatalf("expected full V range with no clip, got %v..%v", r.V0, r.V1)
	}
}

func TestComputeDestRect_ClipTopRowsShiftsSourceAndDest(t *testing.T) {
	p := Placement{ScreenRow: -1, Col: 0, WidthCells: 2, HeightCells: 4, ClipTopRows: 1}
	r := ComputeDestRect(p, 0, 8, 16, 0, 0)
	if r.V0 != 0.25 {
		t.Fatalf("expected V0 0.25 (1/4 rows clipped), got %v", r.V0)
	}
	// destination top should shift down by clip_top_rows cell-heights
	wantY0 := float64(p.ScreenRow+p.ClipTopRows) * 16
	if r.Y0 != wantY0 {
		t.Fatalf("expected Y0 %v, got %v", wantY0, r.Y0)
	}
}

func TestClipToViewport_PartialOverlap(t *testing.T) {
	r := DestRect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	clipped, ok := ClipToViewport(r, 50, 0, 100, 100)
	if !ok {
		t.Fatal("expected a non-empty intersection")
	}
	if clipped.X0 != 50 || clipped.X1 != 100 {
		t.Fatalf("unexpected clipped rect: %+v", clipped)
	}
}

func TestClipToViewport_NoOverlapReturnsFalse(t *testing.T) {
	r := DestRect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	_, ok := ClipToViewport(r, 100, 100, 50, 50)
	if ok {
		t.Fatal("expected no intersection")
	}
}
