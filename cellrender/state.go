package cellrender

import "log"

// LinkUnderlineStyle selects how hyperlinked cells (HyperlinkID != 0)
// are underlined.
type LinkUnderlineStyle int

const (
	LinkUnderlineNone LinkUnderlineStyle = iota
	LinkUnderlineSolid
	LinkUnderlineDashed
	LinkUnderlineOnHover
)

// GutterIndicator is a one-pixel-wide colored mark drawn in the gutter
// to the left of a row — e.g. a git-diff add/remove/change stripe.
type GutterIndicator struct {
	Row   int
	Color RGBA
}

// SeparatorMark is one scrollback mark belonging to a specific pane,
// expressed in absolute scrollback line numbers before window mapping.
type SeparatorMark struct {
	Line  int
	Color RGBA
}

// PaneBackground is a decoded background image bound to one pane,
// loaded via load_pane_background and cached by source path.
type PaneBackground struct {
	Path    string
	Pixels  []byte
	Width   int
	Height  int
	Mode    ImageMode
	Opacity float64
}

// ClearAllCells resets every cell to its zero value and marks every row
// dirty — used when a terminal is reset or cleared entirely.
func (r *CellRenderer) ClearAllCells() {
	for i := range r.grid.Cells {
		r.grid.Cells[i] = Cell{}
	}
	r.grid.MarkAllDirty()
}

// UpdateWindowPadding changes the cell grid's outer padding in
// physical pixels and invalidates every row and the scrollbar cache.
func (r *CellRenderer) UpdateWindowPadding(padding float64) {
	r.padding = padding
	r.scrollbarCacheValid = false
	r.grid.MarkAllDirty()
}

// SetEguiBottomInset and SetEguiRightInset reserve space for an egui
// panel docked at the bottom or right edge of the surface, distinct
// from content insets set by the host terminal UI itself.
func (r *CellRenderer) SetEguiBottomInset(inset float64) {
	r.eguiBottomInset = inset
	r.scrollbarCacheValid = false
	r.grid.MarkAllDirty()
}

func (r *CellRenderer) SetEguiRightInset(inset float64) {
	r.eguiRightInset = inset
	r.scrollbarCacheValid = false
	r.grid.MarkAllDirty()
}

// SetSeparatorMarks stores the current pane's scrollback separator
// marks (command-prompt or exit-code markers). No render pass reads the
// stored list: RenderPaneToView takes its separator marks as an
// argument instead.
func (r *CellRenderer) SetSeparatorMarks(marks []SeparatorMark) {
	r.separatorMarks = marks
}

// SetGutterIndicators stores per-row gutter marks drawn alongside the
// background pass.
func (r *CellRenderer) SetGutterIndicators(indicators []GutterIndicator) {
	r.gutterIndicators = indicators
	r.grid.MarkAllDirty()
}

// SetLinkUnderlineStyle selects how hyperlinked cells are underlined.
func (r *CellRenderer) SetLinkUnderlineStyle(style LinkUnderlineStyle) {
	r.linkUnderlineStyle = style
	r.grid.MarkAllDirty()
}

// LoadPaneBackground loads (or returns the cached) background image
// for a pane, identified by path, reusing CellRenderer's configured
// ImageLoader. A load failure returns a nil PaneBackground and logs,
// matching SetBackground's silent-revert ImageLoadError handling.
func (r *CellRenderer) LoadPaneBackground(path string, mode ImageMode, opacity float64) *PaneBackground {
	if cached, ok := r.paneBackgroundCache[path]; ok {
		cached.Mode, cached.Opacity = mode, opacity
		return cached
	}
	if r.imageLoader == nil {
		return nil
	}
	pixels, w, h, err := r.imageLoader.Load(path)
	if err != nil {
		log.Printf("cellrender: failed to load pane background %q: %v", path, err)
		return nil
	}
	pb := &PaneBackground{Path: path, Pixels: pixels, Width: w, Height: h, Mode: mode, Opacity: opacity}
	if r.paneBackgroundCache == nil {
		r.paneBackgroundCache = make(map[string]*PaneBackground)
	}
	r.paneBackgroundCache[path] = pb
	return pb
}

// ClearGlyphCache wipes the glyph atlas and marks every row dirty so
// the next build_instance_buffers re-rasterizes every glyph on screen
// (used after a font reload).
func (r *CellRenderer) ClearGlyphCache() {
	r.atlas.Clear()
	r.grid.MarkAllDirty()
}
