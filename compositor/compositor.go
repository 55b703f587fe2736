package compositor

import (
	"fmt"
	"time"

	"github.com/paulrobello/termcellrender/cellrender"
	"github.com/paulrobello/termcellrender/gpu"
	"github.com/paulrobello/termcellrender/graphics"
	"github.com/paulrobello/termcellrender/shader"
)

// Compositor chooses the per-frame pass sequence, gates by dirty/
// continuous-render state, and presents the surface. It owns the
// CellRenderer, the inline-image cache, and the two optional
// CustomShaderRenderer slots ("custom" and "cursor"), per spec.md §4.
//
// Like CellRenderer, Compositor is NOT safe for concurrent use: it is
// driven exclusively by the single render thread described in §5.
type Compositor struct {
	cells    *cellrender.CellRenderer
	graphics *graphics.Cache

	customShader *shader.CustomShaderRenderer
	cursorShader *shader.CustomShaderRenderer

	dirty bool
}

// New creates a Compositor over an already-constructed CellRenderer
// and inline-image cache. The two shader slots start empty; use
// SetCustomShader/SetCursorShader to enable them.
func New(cells *cellrender.CellRenderer, gfx *graphics.Cache) (*Compositor, error) {
	if cells == nil {
		return nil, fmt.Errorf("compositor: nil cell renderer")
	}
	return &Compositor{cells: cells, graphics: gfx, dirty: true}, nil
}

// MarkDirty flags that the next Render/RenderSplitPanes call must do a
// full pass even if nothing else changed.
func (c *Compositor) MarkDirty() { c.dirty = true }

// SetCustomShader enables or disables (pass nil) the background shader
// slot.
func (c *Compositor) SetCustomShader(r *shader.CustomShaderRenderer) {
	c.customShader = r
	c.dirty = true
}

// SetCursorShader enables or disables (pass nil) the cursor shader
// slot.
func (c *Compositor) SetCursorShader(r *shader.CustomShaderRenderer) {
	c.cursorShader = r
	c.dirty = true
}

// needsContinuousRender reports whether any active shader animation or
// decaying cursor trail requires rendering this frame even though
// nothing else is dirty.
func (c *Compositor) needsContinuousRender(now time.Time) bool {
	if c.customShader != nil && c.customShader.AnimationEnabled() {
		return true
	}
	if c.cursorShader != nil {
		if c.cursorShader.AnimationEnabled() || c.cursorShader.CursorNeedsAnimation(now) {
			return true
		}
	}
	return false
}

// shaderChainMode classifies which of the two optional shader stages
// are active, matching spec.md §4.8 step 3's four cases.
type shaderChainMode int

const (
	chainNeither shaderChainMode = iota
	chainCustomOnly
	chainCursorOnly
	chainBoth
)

func (c *Compositor) chainMode() shaderChainMode {
	switch {
	case c.customShader != nil && c.cursorShader != nil:
		return chainBoth
	case c.customShader != nil:
		return chainCustomOnly
	case c.cursorShader != nil:
		return chainCursorOnly
	default:
		return chainNeither
	}
}

// Render runs the single-pane pass sequence. It returns false if no
// work was done (nothing dirty, no continuous-render source, no egui
// overlay to redraw), true otherwise.
func (c *Compositor) Render(now time.Time, egui *EguiFrame, forceOpaque, showScrollbar bool, paneBackground *cellrender.BackgroundState) (bool, error) {
	forceRender := c.needsContinuousRender(now)
	if !c.dirty && !forceRender {
		if egui == nil {
			return false, nil
		}
		return c.renderMinimalWithEgui(egui, forceOpaque, showScrollbar, paneBackground)
	}

	mode := c.chainMode()
	var finalView gpu.TextureView
	var finalTex gpu.SurfaceTexture
	var err error
	scrollbarAlreadyDrawn := false

	switch mode {
	case chainBoth:
		if err = c.cells.RenderToTexture(c.customShader.IntermediateView(), true); err != nil {
			return false, err
		}
		if err = c.customShader.Render(c.cursorShader.IntermediateView(), false); err != nil {
			return false, err
		}
		finalTex, err = c.cells.AcquireSurfaceTexture()
		if err != nil {
			return false, err
		}
		finalView = finalTex.View()
		if err = c.cursorShader.Render(finalView, true); err != nil {
			finalTex.Discard()
			return false, err
		}
	case chainCustomOnly:
		if err = c.cells.RenderToTexture(c.customShader.IntermediateView(), true); err != nil {
			return false, err
		}
		finalTex, err = c.cells.AcquireSurfaceTexture()
		if err != nil {
			return false, err
		}
		finalView = finalTex.View()
		if err = c.customShader.Render(finalView, true); err != nil {
			finalTex.Discard()
			return false, err
		}
	case chainCursorOnly:
		if err = c.cells.RenderToTexture(c.cursorShader.IntermediateView(), true); err != nil {
			return false, err
		}
		finalTex, err = c.cells.AcquireSurfaceTexture()
		if err != nil {
			return false, err
		}
		finalView = finalTex.View()
		if err = c.cursorShader.Render(finalView, true); err != nil {
			finalTex.Discard()
			return false, err
		}
	default: // chainNeither
		finalTex, err = c.cells.Render(showScrollbar, paneBackground)
		if err != nil {
			return false, err
		}
		finalView = finalTex.View()
		scrollbarAlreadyDrawn = showScrollbar
	}

	// Step 4: inline graphics on top.
	c.drawGraphics(finalView, nil)

	// Step 5: overlays (scrollbar if not already drawn, visual bell).
	if err := c.cells.RenderOverlays(finalView, showScrollbar && !scrollbarAlreadyDrawn); err != nil {
		finalTex.Discard()
		return false, err
	}

	// Step 6: egui, with forced opacity if requested.
	if egui != nil {
		if forceOpaque {
			egui.ForceOpaque()
		}
		c.drawEgui(finalView, egui)
	}

	finalTex.Present()
	c.dirty = false
	return true, nil
}

// renderMinimalWithEgui is the "not dirty but egui present" fast path:
// cells are not rebuilt, only the cached buffers are redrawn, plus the
// scrollbar and the egui overlay.
func (c *Compositor) renderMinimalWithEgui(egui *EguiFrame, forceOpaque, showScrollbar bool, paneBackground *cellrender.BackgroundState) (bool, error) {
	tex, err := c.cells.Render(showScrollbar, paneBackground)
	if err != nil {
		return false, err
	}
	view := tex.View()
	if forceOpaque {
		egui.ForceOpaque()
	}
	c.drawEgui(view, egui)
	tex.Present()
	return true, nil
}

// drawGraphics draws a pane's inline-image placements, optionally
// clipped to viewport. Phase-1 stub: placement math
// (graphics.ComputeDestRect/ClipToViewport) is fully real and used by
// the graphics package's own tests; the draw-call encoding here is
// left pending the wired GPU pipeline, same boundary as
// cellrender.submitFramePass.
func (c *Compositor) drawGraphics(view gpu.TextureView, placements []graphics.Placement) {
	_ = view
	_ = placements
}

// drawEgui draws the egui overlay's vertex buffer. Phase-1 stub: the
// force-opaque alpha rewrite (the only CPU-observable logic this step
// has) already happened in the caller.
func (c *Compositor) drawEgui(view gpu.TextureView, egui *EguiFrame) {
	_ = view
	_ = egui
}
