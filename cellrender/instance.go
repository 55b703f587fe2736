package cellrender

import (
	"errors"
	"math"

	"github.com/paulrobello/termcellrender/atlas"
)

// maxGlyphLookupAttempts bounds the FindGlyphExcluding/rasterize retry
// loop in resolveGlyph. Each empty-outline attempt excludes one face, so
// the loop gives up (resolving to no glyph) after 8 faces, even when the
// fallback chain is longer and a later face could draw the glyph.
const maxGlyphLookupAttempts = 8

// BackgroundInstance is one cell-sized background rectangle, in physical
// pixel space (conversion to NDC happens against the current surface
// size at draw-call time, not here).
type BackgroundInstance struct {
	X0, Y0, X1, Y1 float32
	Color          [4]float32
}

// TextInstance is one glyph quad: physical-pixel-space position/size,
// atlas UV, and the cell foreground color it's tinted with. Like
// BackgroundInstance, geometry is NDC-converted at draw time.
type TextInstance struct {
	X0, Y0, X1, Y1 float32
	U0, V0, U1, V1 float32
	Color          [4]float32
	IsColored      bool
}

// InstanceBuffers holds the CPU-side per-row instance lists consumed by
// the background and text GPU pipelines, in physical pixel space. Index
// i holds row i's instances; row slices are rebuilt only for dirty rows.
type InstanceBuffers struct {
	Background [][]BackgroundInstance
	Text       [][]TextInstance
	CursorSlot BackgroundInstance
}

func newInstanceBuffers(rows int) InstanceBuffers {
	return InstanceBuffers{
		Background: make([][]BackgroundInstance, rows),
		Text:       make([][]TextInstance, rows),
	}
}

// boxCharSnapMargin and boxCharMidSnapMargin are the edge-snap
// thresholds from §4.5.5: glyph edges within boxCharSnapMargin px of a
// cell edge snap to the edge; edges within boxCharMidSnapMargin px of
// the cell midpoint snap to the midpoint.
const (
	boxCharSnapMargin    = 3.0
	boxCharMidSnapMargin = 2.0
)

// buildInstanceBuffers rebuilds background and text instances for every
// dirty row (or every row if full is true), writes them into r.instances,
// and clears the corresponding dirty flags. Ported from §4.5.5's
// per-row algorithm.
func (r *CellRenderer) buildInstanceBuffers() {
	if r.instances.Background == nil || len(r.instances.Background) != r.grid.Rows {
		r.instances = newInstanceBuffers(r.grid.Rows)
		r.grid.MarkAllDirty()
	}

	naturalLineHeight := r.fontAscent + r.fontDescent + r.fontLeading

	for row := 0; row < r.grid.Rows; row++ {
		if !r.grid.DirtyRows[row] {
			continue
		}
		r.buildRowBackground(row)
		r.buildRowText(row, naturalLineHeight)
		r.grid.DirtyRows[row] = false
	}

	r.buildCursorSlot()
}

func (r *CellRenderer) buildRowBackground(row int) {
	bg := make([]BackgroundInstance, r.grid.Cols)
	for c := 0; c < r.grid.Cols; c++ {
		cell := r.grid.At(row, c)
		isDefaultBg := cell.Background == r.background.Color
		isCursorHere := r.cursor.visible() && r.cursor.effectiveStyle() == CursorBlock && r.cursor.Row == row && r.cursor.Col == c

		if isDefaultBg && !isCursorHere {
			bg[c] = BackgroundInstance{}
			continue
		}

		x0 := math.Round(r.padding + float64(c)*r.cellWidth)
		x1 := math.Round(r.padding + float64(c+1)*r.cellWidth)
		y0 := math.Round(r.padding + float64(row)*r.cellHeight)
		y1 := math.Round(r.padding + float64(row+1)*r.cellHeight)

		color := r.cellBackgroundAlpha(cell.Background)
		if isCursorHere {
			color = color.blend(r.cursor.Color, r.cursor.Opacity)
		}

		bg[c] = BackgroundInstance{
			X0: float32(x0), Y0: float32(y0), X1: float32(x1), Y1: float32(y1),
			Color: r.toNDCColor(color),
		}
	}
	r.instances.Background[row] = bg
}

func (r *CellRenderer) buildRowText(row int, naturalLineHeight float64) {
	baseline := r.padding + float64(row)*r.cellHeight + (r.cellHeight-naturalLineHeight)/2 + r.fontAscent
	text := make([]TextInstance, 0, r.grid.Cols)

	for c := 0; c < r.grid.Cols; c++ {
		cell := r.grid.At(row, c)
		if cell.Grapheme == "" || cell.Grapheme == " " || cell.WideCharSpacer {
			continue
		}

		firstRune := []rune(cell.Grapheme)[0]
		info := r.resolveGlyph(firstRune, cell.Flags.Bold, cell.Flags.Italic)
		if info == nil {
			continue
		}

		cellW := r.cellWidth
		if cell.WideChar {
			cellW = 2 * r.cellWidth
		}
		cellX0 := r.padding + float64(c)*r.cellWidth
		cellY0 := r.padding + float64(row)*r.cellHeight
		cellX1 := cellX0 + cellW
		cellY1 := cellY0 + r.cellHeight

		glyphX0 := cellX0 + info.BearingX*r.scaleFactor
		glyphY0 := baseline - info.BaselineBearing*r.scaleFactor
		glyphX1 := glyphX0 + float64(info.Width)*r.scaleFactor
		glyphY1 := glyphY0 + float64(info.Height)*r.scaleFactor

		if atlas.IsForceMonochrome(firstRune) {
			glyphX0, glyphX1 = snapBoxCharEdges(glyphX0, glyphX1, cellX0, cellX1)
			glyphY0, glyphY1 = snapBoxCharEdges(glyphY0, glyphY1, cellY0, cellY1)
		}

		u0 := float32(info.X) / float32(r.atlas.Size())
		v0 := float32(info.Y) / float32(r.atlas.Size())
		u1 := float32(info.X+info.Width) / float32(r.atlas.Size())
		v1 := float32(info.Y+info.Height) / float32(r.atlas.Size())

		text = append(text, TextInstance{
			X0: float32(glyphX0), Y0: float32(glyphY0), X1: float32(glyphX1), Y1: float32(glyphY1),
			U0: u0, V0: v0, U1: u1, V1: v1,
			Color:     r.toNDCColor(cell.Foreground),
			IsColored: info.IsColored,
		})
	}
	r.instances.Text[row] = text
}

// resolveGlyph implements §4.5.5 step 2's "get or create GlyphInfo in
// the atlas": it walks FindGlyphExcluding/atlas.Get/atlas.Rasterize,
// retrying with the offending face excluded whenever a claimed glyph
// rasterizes to an empty outline (atlas.ErrEmptyOutline), per Open
// Question 1's decision. Returns nil if no face in the fallback chain
// produces a usable glyph within maxGlyphLookupAttempts tries.
func (r *CellRenderer) resolveGlyph(ch rune, bold, italic bool) *atlas.GlyphInfo {
	var excluded []int

	for attempt := 0; attempt < maxGlyphLookupAttempts; attempt++ {
		faceIdx, glyphID, found := r.fontManager.FindGlyphExcluding(ch, bold, italic, excluded)
		if !found {
			return nil
		}

		key := atlas.NewGlyphKey(faceIdx, glyphID)
		if info, ok := r.atlas.Get(key); ok {
			return info
		}

		faceBytes, ok := r.fontManager.FaceBytes(faceIdx)
		if !ok {
			excluded = append(excluded, faceIdx)
			continue
		}

		pixelSize := (r.fontAscent + r.fontDescent) * r.scaleFactor
		rg, err := atlas.Rasterize(faceBytes, glyphID, pixelSize, atlas.IsForceMonochrome(ch))
		if err != nil {
			if errors.Is(err, atlas.ErrEmptyOutline) {
				excluded = append(excluded, faceIdx)
				continue
			}
			return nil
		}

		info, cleared, err := r.atlas.Insert(key, rg.Width, rg.Height, rg.Pixels, rg.BearingX, rg.BaselineBearing, rg.IsColored)
		if err != nil {
			return nil
		}
		if cleared {
			r.grid.MarkAllDirty()
		}
		return info
	}

	return nil
}

// snapBoxCharEdges applies §4.5.5's box-drawing seam elimination to one
// axis of a glyph's rendered rectangle.
func snapBoxCharEdges(edge0, edge1, cellEdge0, cellEdge1 float64) (float64, float64) {
	mid := (cellEdge0 + cellEdge1) / 2
	snap := func(e, target, margin float64) float64 {
		if math.Abs(e-target) <= margin {
			return target
		}
		return e
	}
	edge0 = snap(edge0, cellEdge0, boxCharSnapMargin)
	edge0 = snap(edge0, mid, boxCharMidSnapMargin)
	edge1 = snap(edge1, cellEdge1, boxCharSnapMargin)
	edge1 = snap(edge1, mid, boxCharMidSnapMargin)
	return edge0, edge1
}

func (r *CellRenderer) buildCursorSlot() {
	x0, y0, x1, y1, ok := r.cursorOverlayRect()
	if !ok {
		r.instances.CursorSlot = BackgroundInstance{}
		return
	}
	r.instances.CursorSlot = BackgroundInstance{
		X0: float32(x0), Y0: float32(y0), X1: float32(x1), Y1: float32(y1),
		Color: r.toNDCColor(r.cursor.Color),
	}
}

// toNDCColor converts physical-pixel-space RGBA into the [0,1] form
// instance buffers carry; the spec's "convert to NDC" step for color is
// simply the float normalization (geometry NDC conversion happens at
// draw-call time against the current surface size, not here).
func (r *CellRenderer) toNDCColor(c RGBA) [4]float32 {
	return c.floats()
}
