package cellrender

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/paulrobello/termcellrender/font"
	"github.com/paulrobello/termcellrender/fontmanager"
	"github.com/paulrobello/termcellrender/gpu"
	"github.com/paulrobello/termcellrender/shaper"
)

// fakeSurfaceTexture and fakeSurface let render-pass tests exercise
// CellRenderer without a real GPU device, mirroring how
// render/target.go's PixmapTarget stands in for a GPU target in the
// teacher's CPU-fallback tests.
type fakeSurfaceTexture struct {
	presented, discarded bool
}

func (t *fakeSurfaceTexture) View() gpu.TextureView { return fakeTextureView{} }
func (t *fakeSurfaceTexture) Present()              { t.presented = true }
func (t *fakeSurfaceTexture) Discard()              { t.discarded = true }

type fakeTextureView struct{}

func (fakeTextureView) Destroy() {}

type fakeSurface struct {
	acquireErr error
	tex        *fakeSurfaceTexture
}

func (s *fakeSurface) AcquireNextTexture() (gpu.SurfaceTexture, error) {
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	s.tex = &fakeSurfaceTexture{}
	return s.tex, nil
}

func (s *fakeSurface) Reconfigure(cfg gpu.SurfaceConfig) error { return nil }

func newTestFontManager(t *testing.T) *fontmanager.Manager {
	t.Helper()
	lib, err := font.NewLibrary(goregular.TTF, font.WithSearchDirs(t.TempDir()))
	if err != nil {
		t.Fatalf("font.NewLibrary: %v", err)
	}
	return fontmanager.NewManager(lib, fontmanager.Config{})
}

func newTestRenderer(t *testing.T) *CellRenderer {
	t.Helper()
	r, err := NewCellRenderer(gpu.NullDeviceHandle{}, &fakeSurface{}, newTestFontManager(t), shaper.New(), Config{
		Cols: 10, Rows: 5,
		CellWidth: 8, CellHeight: 16,
		Padding:     2,
		ScaleFactor: 1,
		FontAscent:  12, FontDescent: 3, FontLeading: 1,
		DefaultBackgroundColor: RGBA{R: 0, G: 0, B: 0, A: 255},
	})
	if err != nil {
		t.Fatalf("NewCellRenderer: %v", err)
	}
	return r
}

func TestNewCellRenderer_NilDeviceRejected(t *testing.T) {
	_, err := NewCellRenderer(nil, &fakeSurface{}, newTestFontManager(t), shaper.New(), Config{Cols: 1, Rows: 1, CellWidth: 1, CellHeight: 1})
	if err == nil {
		t.Fatal("expected error for nil device handle")
	}
}

func TestNewCellRenderer_InvalidDimensionsRejected(t *testing.T) {
	_, err := NewCellRenderer(gpu.NullDeviceHandle{}, &fakeSurface{}, newTestFontManager(t), shaper.New(), Config{Cols: 0, Rows: 1})
	if err == nil {
		t.Fatal("expected error for zero columns")
	}
}

func TestNewCellRenderer_DefaultsApplied(t *testing.T) {
	r := newTestRenderer(t)
	if r.Cols() != 10 || r.Rows() != 5 {
		t.Fatalf("unexpected grid dims: %dx%d", r.Cols(), r.Rows())
	}
	if r.ScaleFactor() != 1 {
		t.Fatalf("expected scale factor 1, got %v", r.ScaleFactor())
	}
}

func TestResize_ChangesGridDimensions(t *testing.T) {
	r := newTestRenderer(t)
	// Padding (2px) is reserved on each side before dividing by cell size.
	cols, rows := r.Resize(2*2+8*40, 2*2+16*20)
	if cols != 40 || rows != 20 {
		t.Fatalf("unexpected resize result: %dx%d", cols, rows)
	}
	if r.Cols() != 40 || r.Rows() != 20 {
		t.Fatalf("renderer grid not updated: %dx%d", r.Cols(), r.Rows())
	}
}

func TestHandleScaleFactorChange_ScalesCellGeometry(t *testing.T) {
	r := newTestRenderer(t)
	beforeW := r.CellWidth()
	r.HandleScaleFactorChange(2, 8*10*2, 16*5*2)
	if r.CellWidth() != beforeW*2 {
		t.Fatalf("expected cell width to double, got %v (was %v)", r.CellWidth(), beforeW)
	}
	if r.ScaleFactor() != 2 {
		t.Fatalf("expected scale factor 2, got %v", r.ScaleFactor())
	}
}

func TestRender_AcquireFailurePropagates(t *testing.T) {
	r := newTestRenderer(t)
	r.surface = &fakeSurface{acquireErr: gpu.ErrSurfaceOutdated}
	_, err := r.Render(false, nil)
	if err != gpu.ErrSurfaceOutdated {
		t.Fatalf("expected ErrSurfaceOutdated, got %v", err)
	}
}

func TestRender_Succeeds(t *testing.T) {
	r := newTestRenderer(t)
	tex, err := r.Render(true, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if tex == nil {
		t.Fatal("expected a non-nil surface texture")
	}
}

func TestRenderToTexture_NilViewRejected(t *testing.T) {
	r := newTestRenderer(t)
	if err := r.RenderToTexture(nil, false); err == nil {
		t.Fatal("expected error for nil view")
	}
}

func TestRenderPaneToView_RestoresState(t *testing.T) {
	r := newTestRenderer(t)
	originalCols := r.grid.Cols

	cells := make([][]Cell, 3)
	for i := range cells {
		cells[i] = make([]Cell, 4)
	}
	err := r.RenderPaneToView(fakeTextureView{}, PaneViewport{W: 4 * 8, H: 3 * 16}, cells, 4, 3, CursorState{}, 1, false, true, false, nil, nil)
	if err != nil {
		t.Fatalf("RenderPaneToView: %v", err)
	}
	if r.grid.Cols != originalCols {
		t.Fatalf("expected grid dims restored to %d, got %d", originalCols, r.grid.Cols)
	}
}
