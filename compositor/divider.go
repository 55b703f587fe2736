package compositor

import "github.com/paulrobello/termcellrender/cellrender"

// Rect is one filled rectangle of a divider's draw, in surface pixels.
type Rect struct {
	X, Y, W, H float64
	Color      cellrender.RGBA
}

// computeDividerRects returns the filled rectangles that draw one
// divider in the given style, per spec.md §4.8's divider-style
// geometry table. x,y,w,h is the divider's full bounding rectangle;
// color is its base (non-hovered or hovered, caller's choice) color.
func computeDividerRects(style DividerStyle, orientation DividerOrientation, x, y, w, h float64, color cellrender.RGBA) []Rect {
	switch style {
	case DividerDouble:
		return doubleDividerRects(orientation, x, y, w, h, color)
	case DividerDashed:
		return dashedDividerRects(orientation, x, y, w, h, color)
	case DividerShadow:
		return shadowDividerRects(orientation, x, y, w, h, color)
	default: // DividerSolid
		return []Rect{{X: x, Y: y, W: w, H: h, Color: color}}
	}
}

func thicknessOf(orientation DividerOrientation, w, h float64) float64 {
	if orientation == DividerVertical {
		return w
	}
	return h
}

func doubleDividerRects(orientation DividerOrientation, x, y, w, h float64, color cellrender.RGBA) []Rect {
	thickness := thicknessOf(orientation, w, h)
	if thickness < 4 {
		// Single centered 1px line, thinner than Solid so it stays
		// visually distinct at small thicknesses.
		if orientation == DividerVertical {
			return []Rect{{X: x + (w-1)/2, Y: y, W: 1, H: h, Color: color}}
		}
		return []Rect{{X: x, Y: y + (h-1)/2, W: w, H: 1, Color: color}}
	}
	if orientation == DividerVertical {
		return []Rect{
			{X: x, Y: y, W: 1, H: h, Color: color},
			{X: x + w - 1, Y: y, W: 1, H: h, Color: color},
		}
	}
	return []Rect{
		{X: x, Y: y, W: w, H: 1, Color: color},
		{X: x, Y: y + h - 1, W: w, H: 1, Color: color},
	}
}

func dashedDividerRects(orientation DividerOrientation, x, y, w, h float64, color cellrender.RGBA) []Rect {
	const drawLen, gapLen = 6.0, 4.0
	length := w
	if orientation == DividerVertical {
		length = h
	}

	var rects []Rect
	for pos := 0.0; pos < length; pos += drawLen + gapLen {
		seg := drawLen
		if pos+seg > length {
			seg = length - pos
		}
		if orientation == DividerVertical {
			rects = append(rects, Rect{X: x, Y: y + pos, W: w, H: seg, Color: color})
		} else {
			rects = append(rects, Rect{X: x + pos, Y: y, W: seg, H: h, Color: color})
		}
	}
	return rects
}

func shadowDividerRects(orientation DividerOrientation, x, y, w, h float64, color cellrender.RGBA) []Rect {
	thickness := thicknessOf(orientation, w, h)
	highlight := lighten(color, 0.3)
	shadow := scaleColor(color, 0.3)

	if thickness < 3 {
		half := thickness / 2
		if orientation == DividerVertical {
			return []Rect{
				{X: x, Y: y, W: half, H: h, Color: highlight},
				{X: x + half, Y: y, W: thickness - half, H: h, Color: shadow},
			}
		}
		return []Rect{
			{X: x, Y: y, W: w, H: half, Color: highlight},
			{X: x, Y: y + half, W: w, H: thickness - half, Color: shadow},
		}
	}

	body := thickness - 2
	if orientation == DividerVertical {
		return []Rect{
			{X: x, Y: y, W: 1, H: h, Color: highlight},
			{X: x + 1, Y: y, W: body, H: h, Color: color},
			{X: x + 1 + body, Y: y, W: 1, H: h, Color: shadow},
		}
	}
	return []Rect{
		{X: x, Y: y, W: w, H: 1, Color: highlight},
		{X: x, Y: y + 1, W: w, H: body, Color: color},
		{X: x, Y: y + 1 + body, W: w, H: 1, Color: shadow},
	}
}

// lighten adds amt (as a fraction of 255) to each RGB channel, clamped.
func lighten(c cellrender.RGBA, amt float64) cellrender.RGBA {
	add := amt * 255
	return cellrender.RGBA{
		R: clampChannel(float64(c.R) + add),
		G: clampChannel(float64(c.G) + add),
		B: clampChannel(float64(c.B) + add),
		A: c.A,
	}
}

// scaleColor multiplies each RGB channel by factor.
func scaleColor(c cellrender.RGBA, factor float64) cellrender.RGBA {
	return cellrender.RGBA{
		R: clampChannel(float64(c.R) * factor),
		G: clampChannel(float64(c.G) * factor),
		B: clampChannel(float64(c.B) * factor),
		A: c.A,
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
