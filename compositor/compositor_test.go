package compositor

import (
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/paulrobello/termcellrender/cellrender"
	"github.com/paulrobello/termcellrender/font"
	"github.com/paulrobello/termcellrender/fontmanager"
	"github.com/paulrobello/termcellrender/gpu"
	"github.com/paulrobello/termcellrender/shader"
	"github.com/paulrobello/termcellrender/shaper"
)

const validShaderSource = "void mainImage(out vec4 fragColor, in vec2 fragCoord) { fragColor = vec4(1.0); }"

type fakeSurfaceTexture struct{ presented, discarded bool }

func (t *fakeSurfaceTexture) View() gpu.TextureView { return fakeTextureView{} }
func (t *fakeSurfaceTexture) Present()              { t.presented = true }
func (t *fakeSurfaceTexture) Discard()              { t.discarded = true }

type fakeTextureView struct{}

func (fakeTextureView) Destroy() {}

type fakeSurface struct{ acquireErr error }

func (s *fakeSurface) AcquireNextTexture() (gpu.SurfaceTexture, error) {
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	return &fakeSurfaceTexture{}, nil
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

func newTestCellRenderer(t *testing.T) *cellrender.CellRenderer {
	t.Helper()
	r, err := cellrender.NewCellRenderer(gpu.NullDeviceHandle{}, &fakeSurface{}, newTestFontManager(t), shaper.New(), cellrender.Config{
		Cols: 10, Rows: 5,
		CellWidth: 8, CellHeight: 16,
		Padding:     2,
		ScaleFactor: 1,
		FontAscent:  12, FontDescent: 3, FontLeading: 1,
		DefaultBackgroundColor: cellrender.RGBA{A: 255},
	})
	if err != nil {
		t.Fatalf("NewCellRenderer: %v", err)
	}
	return r
}

func newTestShader(t *testing.T, animated bool) (*shader.CustomShaderRenderer, error) {
	t.Helper()
	return shader.New(gpu.NullDeviceHandle{}, shader.Config{
		Source:           validShaderSource,
		AnimationEnabled: animated,
		AnimationSpeed:   1,
		WindowOpacity:    1,
		TextOpacity:      1,
	}, nil, 64, 64)
}

func newTestCompositor(t *testing.T) *Compositor {
	t.Helper()
	c, err := New(newTestCellRenderer(t), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RejectsNilCellRenderer(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatal("expected error for nil cell renderer")
	}
}

func TestRender_NoWorkWhenNotDirtyAndNoEgui(t *testing.T) {
	c := newTestCompositor(t)
	c.dirty = false
	rendered, err := c.Render(time.Now(), nil, false, true, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rendered {
		t.Fatal("expected no work when not dirty, no egui, no continuous-render source")
	}
}

func TestRender_RendersWhenDirty(t *testing.T) {
	c := newTestCompositor(t)
	rendered, err := c.Render(time.Now(), nil, false, true, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !rendered {
		t.Fatal("expected work on a dirty compositor")
	}
	if c.dirty {
		t.Fatal("expected dirty flag cleared after render")
	}
}

func TestRender_MinimalPathWhenNotDirtyButEguiPresent(t *testing.T) {
	c := newTestCompositor(t)
	c.dirty = false
	egui := &EguiFrame{VertexAlphas: []uint8{10, 20, 30}}
	rendered, err := c.Render(time.Now(), egui, true, true, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !rendered {
		t.Fatal("expected the minimal egui path to report work done")
	}
	for _, a := range egui.VertexAlphas {
		if a != 255 {
			t.Fatalf("expected force_opaque to rewrite all alphas to 255, got %v", egui.VertexAlphas)
		}
	}
}

func TestNeedsContinuousRender_CursorShaderTrailDecay(t *testing.T) {
	c := newTestCompositor(t)
	sh, err := newTestShader(t, false)
	if err != nil {
		t.Fatalf("newTestShader: %v", err)
	}
	c.SetCursorShader(sh)
	c.dirty = false

	now := time.Now()
	if c.needsContinuousRender(now) {
		t.Fatal("expected no continuous render before any cursor movement")
	}
	sh.NotifyCursorMoved(now)
	if !c.needsContinuousRender(now) {
		t.Fatal("expected continuous render right after a cursor move")
	}
	if c.needsContinuousRender(now.Add(time.Second)) {
		t.Fatal("expected continuous render to lapse after the trail duration")
	}
}

func TestChainMode_ClassifiesSlotCombinations(t *testing.T) {
	c := newTestCompositor(t)
	if c.chainMode() != chainNeither {
		t.Fatal("expected chainNeither with no shader slots set")
	}

	custom, err := newTestShader(t, false)
	if err != nil {
		t.Fatalf("newTestShader: %v", err)
	}
	c.SetCustomShader(custom)
	if c.chainMode() != chainCustomOnly {
		t.Fatal("expected chainCustomOnly")
	}

	cursor, err := newTestShader(t, false)
	if err != nil {
		t.Fatalf("newTestShader: %v", err)
	}
	c.SetCursorShader(cursor)
	if c.chainMode() != chainBoth {
		t.Fatal("expected chainBoth with both slots set")
	}

	c.SetCustomShader(nil)
	if c.chainMode() != chainCursorOnly {
		t.Fatal("expected chainCursorOnly")
	}
}

func TestRender_BothShaderSlotsChainsWithoutError(t *testing.T) {
	c := newTestCompositor(t)
	custom, err := newTestShader(t, false)
	if err != nil {
		t.Fatalf("newTestShader: %v", err)
	}
	cursor, err := newTestShader(t, false)
	if err != nil {
		t.Fatalf("newTestShader: %v", err)
	}
	c.SetCustomShader(custom)
	c.SetCursorShader(cursor)

	rendered, err := c.Render(time.Now(), nil, false, true, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !rendered {
		t.Fatal("expected work done")
	}
}
