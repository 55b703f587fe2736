package cellrender

// ScrollbarPosition selects which side of the surface the scrollbar
// track sits on.
type ScrollbarPosition int

const (
	ScrollbarRight ScrollbarPosition = iota
	ScrollbarLeft
)

// ScrollbarMark is a one-pixel horizontal stroke drawn at a position
// proportional to an absolute scrollback line number (e.g. a command
// prompt marker or an exit-code indicator).
type ScrollbarMark struct {
	Line  int
	Color RGBA
}

// PaneViewport is a pixel rectangle a pane renders into, plus whether
// it currently holds keyboard focus. Viewports of panes in one frame
// are pairwise non-overlapping.
type PaneViewport struct {
	X, Y, W, H float64
	Focused    bool
}

// ScrollbarState is the scrollbar's current geometry, derived each
// update from (scroll offset, visible lines, total lines, insets).
type ScrollbarState struct {
	TrackX, TrackY, TrackW, TrackH float64
	ThumbX, ThumbY, ThumbW, ThumbH float64
	ThumbColor, TrackColor         RGBA
	Position                       ScrollbarPosition
	Marks                          []ScrollbarMark

	totalLines, visibleLines int
}

const defaultScrollbarWidth = 10
const defaultMinThumbHeight = 20

// UpdateScrollbarAppearance sets the scrollbar's width, side, and
// colors.
func (r *CellRenderer) UpdateScrollbarAppearance(width float64, position ScrollbarPosition, thumbColor, trackColor RGBA) {
	r.scrollbarWidth = width
	r.scrollbar.Position = position
	r.scrollbar.ThumbColor = thumbColor
	r.scrollbar.TrackColor = trackColor
	r.scrollbarCacheValid = false
}

// UpdateScrollbarPosition moves the scrollbar to the left or right edge.
func (r *CellRenderer) UpdateScrollbarPosition(position ScrollbarPosition) {
	r.scrollbar.Position = position
	r.scrollbarCacheValid = false
}

// UpdateScrollbar recomputes scrollbar geometry against the full
// surface rectangle (minus content insets).
func (r *CellRenderer) UpdateScrollbar(scrollOffset, visibleLines, totalLines int, marks []ScrollbarMark) {
	trackX, trackY, trackW, trackH := r.scrollbarTrackRect(float64(r.surfaceWidth), float64(r.surfaceHeight))
	r.scrollbar = computeScrollbar(r.scrollbar, trackX, trackY, trackW, trackH, scrollOffset, visibleLines, totalLines, marks)
	r.scrollbarCacheValid = true
}

// UpdateScrollbarForPane recomputes scrollbar geometry constrained to a
// single pane's viewport, for multi-pane layouts.
func (r *CellRenderer) UpdateScrollbarForPane(scrollOffset, visibleLines, totalLines int, marks []ScrollbarMark, viewport PaneViewport) {
	trackX, trackY, trackW, trackH := r.scrollbarTrackRect(viewport.W, viewport.H)
	trackX += viewport.X
	trackY += viewport.Y
	r.scrollbar = computeScrollbar(r.scrollbar, trackX, trackY, trackW, trackH, scrollOffset, visibleLines, totalLines, marks)
	r.scrollbarCacheValid = true
}

func (r *CellRenderer) scrollbarTrackRect(w, h float64) (x, y, trackW, trackH float64) {
	trackH = h - r.contentInsetBottom
	trackW = r.scrollbarWidth
	if trackW <= 0 {
		trackW = defaultScrollbarWidth
	}
	y = 0
	if r.scrollbar.Position == ScrollbarLeft {
		x = 0
	} else {
		x = w - trackW - r.contentInsetRight
	}
	return x, y, trackW, trackH
}

// computeScrollbar derives thumb geometry and keeps the caller-owned
// appearance fields (ThumbColor/TrackColor/Position) from prev.
func computeScrollbar(prev ScrollbarState, trackX, trackY, trackW, trackH float64, scrollOffset, visibleLines, totalLines int, marks []ScrollbarMark) ScrollbarState {
	s := prev
	s.TrackX, s.TrackY, s.TrackW, s.TrackH = trackX, trackY, trackW, trackH
	s.Marks = marks
	s.totalLines, s.visibleLines = totalLines, visibleLines

	if totalLines <= 0 || visibleLines <= 0 || totalLines <= visibleLines {
		s.ThumbX, s.ThumbY = trackX, trackY
		s.ThumbW, s.ThumbH = trackW, trackH
		return s
	}

	thumbH := trackH * float64(visibleLines) / float64(totalLines)
	if thumbH < defaultMinThumbHeight {
		thumbH = defaultMinThumbHeight
	}
	if thumbH > trackH {
		thumbH = trackH
	}

	maxScroll := float64(totalLines - visibleLines)
	ratio := 0.0
	if maxScroll > 0 {
		ratio = float64(scrollOffset) / maxScroll
	}
	thumbTop := trackY + (trackH-thumbH)*(1-ratio)

	s.ThumbX, s.ThumbY = trackX, thumbTop
	s.ThumbW, s.ThumbH = trackW, thumbH
	return s
}

// ContainsPoint reports whether (x, y) falls within the scrollbar's
// thumb rectangle.
func (s ScrollbarState) ContainsPoint(x, y float64) bool {
	return x >= s.ThumbX && x <= s.ThumbX+s.ThumbW && y >= s.ThumbY && y <= s.ThumbY+s.ThumbH
}

// ThumbBounds returns the current thumb rectangle.
func (s ScrollbarState) ThumbBounds() (x, y, w, h float64) {
	return s.ThumbX, s.ThumbY, s.ThumbW, s.ThumbH
}

// TrackContainsX reports whether x falls within the scrollbar track's
// horizontal extent — used to decide whether a click should be treated
// as a scrollbar interaction at all.
func (s ScrollbarState) TrackContainsX(x float64) bool {
	return x >= s.TrackX && x <= s.TrackX+s.TrackW
}

// MouseYToScrollOffset inverts the thumb-position formula: given a
// mouse Y coordinate (typically where a drag started, offset to the
// thumb's grabbed point), returns the scroll_offset that would place
// the thumb there.
func (s ScrollbarState) MouseYToScrollOffset(y float64, totalLines, visibleLines int) int {
	if totalLines <= visibleLines || s.TrackH <= s.ThumbH {
		return 0
	}
	ratio := 1 - (y-s.TrackY)/(s.TrackH-s.ThumbH)
	ratio = max(0, min(1, ratio))
	return int(ratio * float64(totalLines-visibleLines))
}
