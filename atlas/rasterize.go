package atlas

import (
	"image"
	"image/color"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// MonochromeRange is a contiguous code point range that must always be
// rasterized as a monochrome coverage mask, regardless of what the
// resolved face would otherwise produce — this is what lets CellRenderer
// tint box-drawing and Powerline glyphs with the cell foreground color
// instead of baking in whatever color a color-glyph table might supply.
type MonochromeRange struct{ Start, End rune }

func (r MonochromeRange) contains(c rune) bool { return c >= r.Start && c <= r.End }

// ForceMonochromeRanges lists the code point ranges that are always
// rasterized monochrome: box drawing, geometric shapes, and the
// Powerline private-use range terminal themes rely on.
var ForceMonochromeRanges = []MonochromeRange{
	{Start: 0x2500, End: 0x259F}, // Box Drawing + Block Elements
	{Start: 0x25A0, End: 0x25FF}, // Geometric Shapes
	{Start: 0xE0A0, End: 0xE0D4}, // Powerline symbols
}

// IsForceMonochrome reports whether r falls in one of ForceMonochromeRanges.
func IsForceMonochrome(r rune) bool {
	for _, rng := range ForceMonochromeRanges {
		if rng.contains(r) {
			return true
		}
	}
	return false
}

// RasterizedGlyph is the pixel output of Rasterize: an RGBA buffer plus
// the layout metadata Insert needs.
type RasterizedGlyph struct {
	Width, Height   int
	BearingX        float64
	BaselineBearing float64
	Pixels          []byte // RGBA, Width*Height*4 bytes
	IsColored       bool
}

// Rasterize renders one glyph from faceBytes at pixelSize, producing a
// grayscale coverage mask (white RGB with alpha = coverage)
// for normal glyphs, or delegating to rasterizeColor for color glyphs.
// forceMonochrome overrides any color-glyph handling, per
// IsForceMonochrome's contract.
//
// Returns ErrEmptyOutline if the face claims a non-notdef glyph id but
// the outline has zero contours — the caller (CellRenderer) is expected
// to exclude this face and retry FontManager's lookup cascade.
func Rasterize(faceBytes []byte, glyphID uint16, pixelSize float64, forceMonochrome bool) (RasterizedGlyph, error) {
	f, err := sfnt.Parse(faceBytes)
	if err != nil {
		return RasterizedGlyph{}, err
	}

	if !forceMonochrome {
		if colored, ok := rasterizeColor(f, glyphID, pixelSize); ok {
			return colored, nil
		}
	}

	var buf sfnt.Buffer
	ppem := fixed.I(int(pixelSize + 0.5))

	segments, err := f.LoadGlyph(&buf, sfnt.GlyphIndex(glyphID), ppem, nil)
	if err != nil {
		return RasterizedGlyph{}, err
	}
	if len(segments) == 0 {
		return RasterizedGlyph{}, ErrEmptyOutline
	}

	// sfnt.Font exposes only a font-wide bounding box, not a per-glyph
	// one; using it as the raster canvas is conservative (slightly
	// larger than tightest-fit for most glyphs) but always valid, and
	// keeps every glyph from a face on a shared baseline offset.
	bounds, err := f.Bounds(&buf, ppem, 0)
	if err != nil {
		return RasterizedGlyph{}, err
	}

	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if width <= 0 || height <= 0 {
		return RasterizedGlyph{}, ErrEmptyOutline
	}

	offsetX := float32(-bounds.Min.X.Floor())
	offsetY := float32(-bounds.Min.Y.Floor())

	rast := vector.NewRasterizer(width, height)
	toFloat := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X.Round()) + offsetX, float32(p.Y.Round()) + offsetY
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			x, y := toFloat(seg.Args[0])
			rast.MoveTo(x, y)
		case sfnt.SegmentOpLineTo:
			x, y := toFloat(seg.Args[0])
			rast.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			x0, y0 := toFloat(seg.Args[0])
			x1, y1 := toFloat(seg.Args[1])
			rast.QuadTo(x0, y0, x1, y1)
		case sfnt.SegmentOpCubeTo:
			x0, y0 := toFloat(seg.Args[0])
			x1, y1 := toFloat(seg.Args[1])
			x2, y2 := toFloat(seg.Args[2])
			rast.CubeTo(x0, y0, x1, y1, x2, y2)
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	rast.Draw(mask, mask.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})

	pixels := make([]byte, width*height*4)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			a := mask.AlphaAt(col, row).A
			i := (row*width + col) * 4
			pixels[i+0] = 255
			pixels[i+1] = 255
			pixels[i+2] = 255
			pixels[i+3] = a
		}
	}

	return RasterizedGlyph{
		Width:           width,
		Height:          height,
		BearingX:        float64(bounds.Min.X.Round()),
		BaselineBearing: float64(-bounds.Min.Y.Round()),
		Pixels:          pixels,
		IsColored:       false,
	}, nil
}

// rasterizeColor is the color-glyph (COLR/CBDT/emoji) rasterization
// entry point. A full implementation would parse the font's COLR+CPAL
// or CBDT+CBLC tables and composite layered or embedded bitmap glyphs;
// that subsystem is intentionally not vendored here (see DESIGN.md).
// This stub always reports a miss, which makes Rasterize fall through
// to the monochrome path — acceptable for any face that doesn't
// actually carry color glyph tables, and a documented gap for ones
// that do.
func rasterizeColor(f *sfnt.Font, glyphID uint16, pixelSize float64) (RasterizedGlyph, bool) {
	_ = f
	_ = glyphID
	_ = pixelSize
	return RasterizedGlyph{}, false
}
