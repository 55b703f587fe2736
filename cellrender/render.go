package cellrender

import (
	"fmt"

	"github.com/paulrobello/termcellrender/gpu"
)

// Note: This follows render/gpu_renderer.go's Phase-1-stub pattern —
// the CPU-side frame construction (buildInstanceBuffers, clearColor,
// cursorOverlayRect) is fully real; the actual WebGPU command-encoder/
// pass/draw-call sequence is left as a documented stub until a
// concrete gogpu/wgpu pipeline is wired in.

// render runs the full single-surface pass sequence of §4.5.6: acquire
// the surface texture, rebuild dirty rows, clear, draw background and
// text, optionally draw the scrollbar, submit, and return the texture
// for the caller to present.
func (r *CellRenderer) Render(showScrollbar bool, paneBackground *BackgroundState) (gpu.SurfaceTexture, error) {
	if r.surface == nil {
		return nil, fmt.Errorf("cellrender: no surface bound")
	}
	tex, err := r.surface.AcquireNextTexture()
	if err != nil {
		return nil, err
	}

	r.buildInstanceBuffers()

	bg := r.background
	if paneBackground != nil {
		bg = *paneBackground
	}
	if err := r.submitFramePass(tex.View(), r.clearColorFor(bg), !bg.ImageEnabled, showScrollbar); err != nil {
		tex.Discard()
		return nil, err
	}
	return tex, nil
}

// RenderToTexture is identical to render but targets an arbitrary view
// with a transparent-black clear, optionally skipping the background
// image draw (used when feeding a CustomShaderRenderer stage).
func (r *CellRenderer) RenderToTexture(view gpu.TextureView, skipBackgroundImage bool) error {
	r.buildInstanceBuffers()
	return r.submitFramePass(view, RGBA{}, skipBackgroundImage, false)
}

// RenderPaneToView temporarily swaps grid dimensions to a pane's size,
// overrides the background binding with the pane's own background,
// restricts drawing to the pane's viewport rectangle, then runs the
// same pass sequence. Grid/background state is restored before return.
func (r *CellRenderer) RenderPaneToView(view gpu.TextureView, viewport PaneViewport, cells [][]Cell, cols, rows int, cursor CursorState, opacity float64, showScrollbar, doClear, skipBackgroundImage bool, separatorMarks []ScrollbarMark, paneBackground *BackgroundState) error {
	savedGrid, savedCursor, savedBG := r.grid, r.cursor, r.background
	savedInstances := r.instances
	defer func() {
		r.grid, r.cursor, r.background = savedGrid, savedCursor, savedBG
		r.instances = savedInstances
	}()

	r.grid = NewCellGrid(cols, rows)
	r.grid.UpdateCells(cells)
	r.cursor = cursor
	r.cursor.Opacity = opacity * cursor.Opacity
	if paneBackground != nil {
		r.background = *paneBackground
	}
	r.instances = newInstanceBuffers(rows)

	r.buildInstanceBuffers()

	clear := RGBA{}
	if doClear {
		clear = r.clearColorFor(r.background)
	}
	if err := r.submitFramePass(view, clear, skipBackgroundImage, showScrollbar); err != nil {
		return err
	}
	_ = separatorMarks // not drawn: neither this pass nor the compositor renders separator marks
	return nil
}

// AcquireSurfaceTexture acquires the next frame from the bound surface
// without drawing anything into it. The Compositor uses this when a
// CustomShaderRenderer chain is active: cells are drawn to a shader's
// intermediate view via RenderToTexture, and only the chain's final
// shader stage draws to the actual surface.
func (r *CellRenderer) AcquireSurfaceTexture() (gpu.SurfaceTexture, error) {
	if r.surface == nil {
		return nil, fmt.Errorf("cellrender: no surface bound")
	}
	return r.surface.AcquireNextTexture()
}

// RenderOverlays is a load-op=Load pass that draws only the scrollbar
// and the visual-bell flash — used when a CustomShaderRenderer chain
// has already handled the main compositing path and only the
// always-on-top overlays remain.
func (r *CellRenderer) RenderOverlays(view gpu.TextureView, showScrollbar bool) error {
	return r.submitOverlayPass(view, showScrollbar)
}

// ReconfigureSurface reconfigures the bound surface, e.g. after a
// resize or an ErrSurfaceOutdated acquisition failure.
func (r *CellRenderer) ReconfigureSurface(cfg gpu.SurfaceConfig) error {
	if r.surface == nil {
		return fmt.Errorf("cellrender: no surface bound")
	}
	return r.surface.Reconfigure(cfg)
}

func (r *CellRenderer) clearColorFor(bg BackgroundState) RGBA {
	c := bg.Color
	if bg.Mode != BackgroundColor {
		c = RGBA{}
	}
	c.A = uint8(float64(c.A) * r.opacity)
	return c
}

// submitFramePass encodes and submits the background-image, background,
// text, and (optionally) scrollbar draws for the instance buffers
// already built by buildInstanceBuffers. Phase-1: it checks the target
// view and runs the overlay pass when showScrollbar is set; no command
// encoding or submission happens, and no pending work is recorded (see
// gpu.DeviceHandle / gpu.Surface for the integration seam).
func (r *CellRenderer) submitFramePass(view gpu.TextureView, clear RGBA, skipBackgroundImage bool, showScrollbar bool) error {
	if view == nil {
		return fmt.Errorf("cellrender: nil target view")
	}
	_ = clear
	_ = skipBackgroundImage

	if showScrollbar {
		if err := r.submitOverlayPass(view, true); err != nil {
			return err
		}
	}
	return nil
}

func (r *CellRenderer) submitOverlayPass(view gpu.TextureView, showScrollbar bool) error {
	if view == nil {
		return fmt.Errorf("cellrender: nil target view")
	}
	// Phase-1 stub: the scrollbar thumb/track rectangles and the
	// visual-bell flash alpha are fully computed CPU-side
	// (r.scrollbar, r.visualBellIntensity); only their draw-call
	// encoding is pending the wgpu pipeline wiring.
	_ = showScrollbar
	return nil
}
