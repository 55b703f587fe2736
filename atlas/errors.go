package atlas

import "fmt"

// ErrGlyphTooLarge is returned when a glyph's padded dimensions exceed
// the atlas size outright — no amount of clearing would ever make it
// fit.
type ErrGlyphTooLarge struct {
	Width, Height, AtlasSize int
}

func (e *ErrGlyphTooLarge) Error() string {
	return fmt.Sprintf("atlas: glyph %dx%d does not fit a %dx%d atlas", e.Width, e.Height, e.AtlasSize, e.AtlasSize)
}

// ErrEmptyOutline is returned by Rasterize when a face claims a
// non-zero glyph id for a code point but the glyph's outline has no
// contours (common for color-emoji fonts queried on unrelated code
// points, or notdef-adjacent placeholder glyphs). CellRenderer treats
// this the same way the original find_glyph_excluding retry path
// does: exclude the offending face and re-walk FontManager's cascade.
var ErrEmptyOutline = fmt.Errorf("atlas: glyph outline is empty")
