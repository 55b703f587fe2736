package cellrender

import "log"

// BackgroundMode selects how the surface is cleared before cells draw.
type BackgroundMode int

const (
	BackgroundDefault BackgroundMode = iota
	BackgroundColor
	BackgroundImage
)

// ImageMode controls how a background image is fit to the surface.
type ImageMode int

const (
	ImageFill ImageMode = iota
	ImageFit
	ImageStretch
	ImageCenter
	ImageTile
)

// ImageLoader resolves a path to RGBA8 pixels plus dimensions. It is
// the renderer's only dependency on a concrete image codec, mirroring
// §6.2's "Image loader: path → RGBA8 pixel buffer + dimensions."
type ImageLoader interface {
	Load(path string) (pixels []byte, width, height int, err error)
}

// BackgroundState holds the configured background mode and the loaded
// image's cache state.
type BackgroundState struct {
	Mode         BackgroundMode
	Color        RGBA
	ImagePath    string
	ImageMode    ImageMode
	ImageOpacity float64
	ImageEnabled bool

	loadedPath string
	pixels     []byte
	width      int
	height     int
}

// SetBackground configures the background mode. An Image mode whose
// path fails to load reverts the mode to Default and logs the failure
// — per the ImageLoadError taxonomy in §7, image errors are caught and
// logged, never surfaced to the caller, and background state reverts
// rather than leaving a half-applied configuration.
func (r *CellRenderer) SetBackground(mode BackgroundMode, color RGBA, imagePath string, imageMode ImageMode, imageOpacity float64, imageEnabled bool) {
	r.background.Mode = mode
	r.background.Color = color
	r.background.ImageMode = imageMode
	r.background.ImageOpacity = imageOpacity
	r.background.ImageEnabled = imageEnabled

	if mode != BackgroundImage || imagePath == "" {
		r.background.ImagePath = imagePath
		r.grid.MarkAllDirty()
		return
	}

	if imagePath == r.background.loadedPath && r.background.pixels != nil {
		r.background.ImagePath = imagePath
		r.grid.MarkAllDirty()
		return
	}

	if r.imageLoader == nil {
		log.Printf("cellrender: no image loader configured, reverting background to Default")
		r.background.Mode = BackgroundDefault
		r.grid.MarkAllDirty()
		return
	}

	pixels, w, h, err := r.imageLoader.Load(imagePath)
	if err != nil {
		log.Printf("cellrender: failed to load background image %q: %v", imagePath, err)
		r.background.Mode = BackgroundDefault
		r.grid.MarkAllDirty()
		return
	}

	r.background.ImagePath = imagePath
	r.background.loadedPath = imagePath
	r.background.pixels = pixels
	r.background.width, r.background.height = w, h
	r.grid.MarkAllDirty()
}

// UpdateOpacity sets the window opacity applied to the clear color and
// (subject to the transparency-affects-only-default rule) to cells
// whose background matches the default.
func (r *CellRenderer) UpdateOpacity(w float64) {
	r.opacity = w
	r.grid.MarkAllDirty()
}

// UpdateBackgroundImageOpacity sets the background image's own opacity.
func (r *CellRenderer) UpdateBackgroundImageOpacity(o float64) {
	r.background.ImageOpacity = o
	r.grid.MarkAllDirty()
}

// SetBackgroundImageEnabled toggles whether the background image draws
// at all, independent of whether one is configured.
func (r *CellRenderer) SetBackgroundImageEnabled(enabled bool) {
	r.background.ImageEnabled = enabled
	r.grid.MarkAllDirty()
}

// SetTransparencyAffectsOnlyDefaultBackground controls whether window
// opacity applies to every cell or only to cells whose background
// equals the configured default background color.
func (r *CellRenderer) SetTransparencyAffectsOnlyDefaultBackground(only bool) {
	r.transparencyAffectsOnlyDefault = only
	r.grid.MarkAllDirty()
}

// SetKeepTextOpaque makes text ignore window transparency entirely.
func (r *CellRenderer) SetKeepTextOpaque(keep bool) {
	r.keepTextOpaque = keep
	r.grid.MarkAllDirty()
}

// clearColor returns the color used to clear the surface before
// drawing, with window opacity applied.
func (r *CellRenderer) clearColor() RGBA {
	c := r.background.Color
	if r.background.Mode != BackgroundColor {
		c = RGBA{}
	}
	c.A = uint8(float64(c.A) * r.opacity)
	return c
}

// cellBackgroundAlpha applies the transparency rules to one cell's
// background color for the background instance pass.
func (r *CellRenderer) cellBackgroundAlpha(bg RGBA) RGBA {
	isDefault := bg == r.background.Color
	if r.transparencyAffectsOnlyDefault && !isDefault {
		return bg
	}
	bg.A = uint8(float64(bg.A) * r.opacity)
	return bg
}
