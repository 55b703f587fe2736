package cellrender

import "github.com/mattn/go-runewidth"

// RuneCellWidth reports how many grid columns r occupies: 2 for
// East-Asian-wide and most emoji, 1 otherwise. Callers building a
// CellGrid from raw text use this to decide where to set WideChar and
// place the following WideCharSpacer cell.
func RuneCellWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// RGBA is a cell or UI color in 8-bit-per-channel form.
type RGBA struct {
	R, G, B, A uint8
}

func (c RGBA) equal(o RGBA) bool { return c == o }

// floats returns the color as four [0,1] components, the form GPU
// instance buffers consume.
func (c RGBA) floats() [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// blend alpha-composites over atop c (src-over), scaling over's alpha
// by opacity first. Used for block-cursor blending into a cell's
// background color.
func (c RGBA) blend(over RGBA, opacity float64) RGBA {
	a := (float64(over.A) / 255) * opacity
	mix := func(bg, fg uint8) uint8 {
		return uint8(float64(fg)*a + float64(bg)*(1-a))
	}
	alpha := uint8(min(255, float64(c.A)+a*255))
	return RGBA{R: mix(c.R, over.R), G: mix(c.G, over.G), B: mix(c.B, over.B), A: alpha}
}

// CellFlags packs the boolean style attributes of a Cell.
type CellFlags struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

// Cell is a single grid position. A wide_char cell is always
// immediately followed by a wide_char_spacer cell in the same row; the
// spacer's Grapheme is never rendered.
type Cell struct {
	Grapheme       string
	Foreground     RGBA
	Background     RGBA
	Flags          CellFlags
	HyperlinkID    uint64 // 0 = none
	WideChar       bool
	WideCharSpacer bool
}

// CellGrid is a cols×rows grid of Cells in row-major order, plus a
// parallel per-row dirty flag.
type CellGrid struct {
	Cols, Rows int
	Cells      []Cell
	DirtyRows  []bool
}

// NewCellGrid allocates a grid with every row marked dirty.
func NewCellGrid(cols, rows int) CellGrid {
	g := CellGrid{Cols: cols, Rows: rows}
	g.Cells = make([]Cell, cols*rows)
	g.DirtyRows = make([]bool, rows)
	g.MarkAllDirty()
	return g
}

// At returns the cell at (row, col). Out-of-range access panics, same
// as a raw slice index — callers are expected to stay within
// Cols/Rows, which Resize keeps authoritative.
func (g *CellGrid) At(row, col int) Cell {
	return g.Cells[row*g.Cols+col]
}

// MarkAllDirty marks every row dirty, used after a resize or any
// change broad enough that per-row invalidation isn't worth tracking
// precisely.
func (g *CellGrid) MarkAllDirty() {
	for i := range g.DirtyRows {
		g.DirtyRows[i] = true
	}
}

// MarkRowDirty marks one row dirty if it is in range; out-of-range rows
// are silently ignored (a cursor that moved off-grid during a resize
// race shouldn't panic the renderer).
func (g *CellGrid) MarkRowDirty(row int) {
	if row >= 0 && row < g.Rows {
		g.DirtyRows[row] = true
	}
}

// Resize reallocates Cells/DirtyRows to the new dimensions if they
// differ from the current ones, discarding prior content (the caller
// is expected to immediately follow with UpdateCells). Returns whether
// a reallocation happened.
func (g *CellGrid) Resize(cols, rows int) bool {
	if cols == g.Cols && rows == g.Rows {
		return false
	}
	g.Cols, g.Rows = cols, rows
	g.Cells = make([]Cell, cols*rows)
	g.DirtyRows = make([]bool, rows)
	g.MarkAllDirty()
	return true
}

// UpdateCells applies a row-by-row diff: for each supplied row whose
// length matches g.Cols, if its contents differ from the current grid
// row, the row is copied in and marked dirty. Rows with mismatched
// length are silently ignored, matching Resize's grid-length contract.
func (g *CellGrid) UpdateCells(rows [][]Cell) {
	for r, row := range rows {
		if r >= g.Rows || len(row) != g.Cols {
			continue
		}
		start := r * g.Cols
		current := g.Cells[start : start+g.Cols]
		if cellRowEqual(current, row) {
			continue
		}
		copy(current, row)
		g.DirtyRows[r] = true
	}
}

func cellRowEqual(a, b []Cell) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
