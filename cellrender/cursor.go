package cellrender

// CursorStyle selects how the cursor overlay is drawn.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorBeam
	CursorUnderline
)

// barThicknessPx is the width of the beam cursor and the height of the
// underline cursor, in physical pixels.
const barThicknessPx = 2

// CursorState holds every piece of cursor configuration CellRenderer
// needs to build the cursor overlay instance and blend a block cursor
// into the background pass.
type CursorState struct {
	Row, Col  int
	Opacity   float64
	Style     CursorStyle
	Color     RGBA
	TextColor RGBA

	HiddenForShader bool
	Focused         bool
	UnfocusedStyle  CursorStyle

	GuideEnabled bool
	GuideColor   RGBA

	ShadowEnabled bool
	ShadowColor   RGBA
	ShadowOffsetX float64
	ShadowOffsetY float64
	ShadowBlur    float64

	BoostIntensity float64
	BoostColor     RGBA
}

// effectiveStyle returns UnfocusedStyle when the terminal is not
// focused, else Style.
func (c CursorState) effectiveStyle() CursorStyle {
	if !c.Focused {
		return c.UnfocusedStyle
	}
	return c.Style
}

// visible reports whether the cursor overlay should be drawn at all.
func (c CursorState) visible() bool {
	return !c.HiddenForShader && c.Opacity > 0
}

// UpdateCursor recomputes cursor overlay geometry for a new position,
// opacity, and style. The row the cursor was previously in, and the row
// it's now in, are both marked dirty — the former needed its cursor
// overlay drawn away, the latter needs it drawn.
func (r *CellRenderer) UpdateCursor(row, col int, opacity float64, style CursorStyle) {
	r.grid.MarkRowDirty(r.cursor.Row)
	r.cursor.Row, r.cursor.Col = row, col
	r.cursor.Opacity = opacity
	r.cursor.Style = style
	r.grid.MarkRowDirty(row)
}

// ClearCursor is equivalent to UpdateCursor at the same position with
// opacity 0 and the same style.
func (r *CellRenderer) ClearCursor() {
	r.UpdateCursor(r.cursor.Row, r.cursor.Col, 0, r.cursor.Style)
}

// UpdateCursorColor sets the cursor's fill color and marks its row dirty.
func (r *CellRenderer) UpdateCursorColor(c RGBA) {
	r.cursor.Color = c
	r.grid.MarkRowDirty(r.cursor.Row)
}

// UpdateCursorTextColor sets the color used for the character under a
// block cursor and marks its row dirty.
func (r *CellRenderer) UpdateCursorTextColor(c RGBA) {
	r.cursor.TextColor = c
	r.grid.MarkRowDirty(r.cursor.Row)
}

// UpdateCursorGuide, UpdateCursorShadow, UpdateCursorBoost, and
// UpdateUnfocusedCursorStyle are optional visual augments. Per §4.5.2
// these simply set state and mark every row dirty — a renderer-local
// invalidation sufficient for correctness.
func (r *CellRenderer) UpdateCursorGuide(enabled bool, rgba RGBA) {
	r.cursor.GuideEnabled, r.cursor.GuideColor = enabled, rgba
	r.grid.MarkAllDirty()
}

func (r *CellRenderer) UpdateCursorShadow(enabled bool, rgba RGBA, offsetX, offsetY, blur float64) {
	r.cursor.ShadowEnabled = enabled
	r.cursor.ShadowColor = rgba
	r.cursor.ShadowOffsetX, r.cursor.ShadowOffsetY, r.cursor.ShadowBlur = offsetX, offsetY, blur
	r.grid.MarkAllDirty()
}

func (r *CellRenderer) UpdateCursorBoost(intensity float64, color RGBA) {
	r.cursor.BoostIntensity, r.cursor.BoostColor = intensity, color
	r.grid.MarkAllDirty()
}

func (r *CellRenderer) UpdateUnfocusedCursorStyle(style CursorStyle) {
	r.cursor.UnfocusedStyle = style
	r.grid.MarkAllDirty()
}

// SetFocused switches between the focused and unfocused cursor style
// and marks the cursor's row dirty.
func (r *CellRenderer) SetFocused(focused bool) {
	r.cursor.Focused = focused
	r.grid.MarkRowDirty(r.cursor.Row)
}

// SetCursorHiddenForShader hides the cursor overlay entirely — used
// when a cursor shader is taking over cursor rendering itself.
func (r *CellRenderer) SetCursorHiddenForShader(hidden bool) {
	r.cursor.HiddenForShader = hidden
	r.grid.MarkRowDirty(r.cursor.Row)
}

// cursorOverlayRect computes the beam/underline overlay rectangle in
// physical pixels for the current cursor cell, or ok=false for a block
// cursor (which has no separate overlay instance — it's blended into
// the background pass instead) or an invisible cursor.
func (r *CellRenderer) cursorOverlayRect() (x0, y0, x1, y1 float64, ok bool) {
	if !r.cursor.visible() {
		return 0, 0, 0, 0, false
	}
	style := r.cursor.effectiveStyle()
	if style == CursorBlock {
		return 0, 0, 0, 0, false
	}

	cellX0 := r.padding + float64(r.cursor.Col)*r.cellWidth
	cellY0 := r.padding + float64(r.cursor.Row)*r.cellHeight
	cellX1 := cellX0 + r.cellWidth
	cellY1 := cellY0 + r.cellHeight

	switch style {
	case CursorBeam:
		return cellX0, cellY0, cellX0 + barThicknessPx, cellY1, true
	case CursorUnderline:
		return cellX0, cellY1 - barThicknessPx, cellX1, cellY1, true
	}
	return 0, 0, 0, 0, false
}
