package graphics

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/paulrobello/termcellrender/gpu"
)

// FilterMode selects the sampler filter used when a placement's source
// and destination sizes differ.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// AspectMode controls how a placement's source image fits its
// destination rectangle when their aspect ratios differ.
type AspectMode int

const (
	AspectStretch AspectMode = iota
	AspectPreserveFit
	AspectPreserveFill
)

// cachedImage is one entry in the id→texture cache.
type cachedImage struct {
	texture gpu.Texture
	width   int
	height  int
}

// Cache is the GraphicsRenderer's id-keyed inline-image texture cache.
// Uploads happen once per id; a repeated get_or_create_texture call
// with the same id is a no-op, per spec.md §4.6.
//
// Unlike backend/wgpu/internal/gpu's MemoryManager, Cache carries no
// LRU eviction budget: image ids are owned and explicitly freed by the
// terminal emulator (Forget), not reclaimed under memory pressure.
type Cache struct {
	device gpu.DeviceHandle
	images map[uint64]*cachedImage
	Filter FilterMode
	Aspect AspectMode
}

// NewCache creates an empty inline-image cache bound to device for
// texture uploads.
func NewCache(device gpu.DeviceHandle) *Cache {
	return &Cache{device: device, images: make(map[uint64]*cachedImage)}
}

// GetOrCreateTexture uploads rgba (w×h, 4 bytes/pixel) as a new GPU
// texture keyed by id, or returns the already-uploaded texture for a
// previously seen id without re-uploading.
func (c *Cache) GetOrCreateTexture(id uint64, rgba []byte, w, h int) (gpu.Texture, error) {
	if existing, ok := c.images[id]; ok {
		return existing.texture, nil
	}
	tex := newStagedTexture(rgba, w, h)
	c.images[id] = &cachedImage{texture: tex, width: w, height: h}
	return tex, nil
}

// Forget evicts one image from the cache, e.g. when the terminal
// emulator reports the image was deleted from scrollback.
func (c *Cache) Forget(id uint64) {
	if entry, ok := c.images[id]; ok {
		entry.texture.Destroy()
		delete(c.images, id)
	}
}

// Len reports how many images are currently cached.
func (c *Cache) Len() int { return len(c.images) }

// Placement is one inline-image draw request for the current frame.
type Placement struct {
	ID          uint64
	ScreenRow   int // signed: may be negative (scrolled above the viewport)
	Col         int
	WidthCells  int
	HeightCells int
	Opacity     float64
	ClipTopRows int
}

// DestRect is a placement's computed destination rectangle in surface
// pixels, pixel-snapped, plus the source V-range left after clip_top_rows
// shifts the top of the sampled texture.
type DestRect struct {
	X0, Y0, X1, Y1 float64
	V0, V1         float64 // normalized [0,1] source V range
}

// ComputeDestRect computes one placement's destination rectangle from
// cell geometry and content offsets, applying pixel snapping via
// round() exactly as build_instance_buffers does for cell rectangles.
// clip_top_rows shifts the source V range to discard that many
// cell-heights' worth of image content from the top, keeping an image
// that's scrolling off the top of the viewport visually anchored.
func ComputeDestRect(p Placement, padding, cellW, cellH, contentOffsetX, contentOffsetY float64) DestRect {
	x0 := math.Round(padding + contentOffsetX + float64(p.Col)*cellW)
	y0 := math.Round(padding + contentOffsetY + float64(p.ScreenRow)*cellH)
	x1 := math.Round(x0 + float64(p.WidthCells)*cellW)
	y1 := math.Round(y0 + float64(p.HeightCells)*cellH)

	v0 := 0.0
	if p.HeightCells > 0 {
		v0 = float64(p.ClipTopRows) / float64(p.HeightCells)
	}
	if v0 > 1 {
		v0 = 1
	}

	if p.ClipTopRows > 0 {
		y0 = math.Round(padding + contentOffsetY + float64(p.ScreenRow+p.ClipTopRows)*cellH)
	}

	return DestRect{X0: x0, Y0: y0, X1: x1, Y1: y1, V0: v0, V1: 1}
}

// ClipToViewport intersects a destination rectangle with a pane's
// viewport rectangle, for the per-pane placement variant. ok is false
// if the intersection is empty (the placement is entirely outside the
// viewport and should be skipped).
func ClipToViewport(r DestRect, viewportX, viewportY, viewportW, viewportH float64) (DestRect, bool) {
	x0 := math.Max(r.X0, viewportX)
	y0 := math.Max(r.Y0, viewportY)
	x1 := math.Min(r.X1, viewportX+viewportW)
	y1 := math.Min(r.Y1, viewportY+viewportH)
	if x1 <= x0 || y1 <= y0 {
		return DestRect{}, false
	}
	return DestRect{X0: x0, Y0: y0, X1: x1, Y1: y1, V0: r.V0, V1: r.V1}, true
}

// stagedTexture is a Phase-1 in-memory stand-in for a GPU texture
// resource, following render/gpu_renderer.go's software-fallback
// pattern: it records the upload's pixel data and dimensions so
// placement math and cache behavior are fully testable ahead of a
// wired wgpu upload path.
type stagedTexture struct {
	pixels []byte
	width  int
	height int
}

func newStagedTexture(pixels []byte, w, h int) *stagedTexture {
	return &stagedTexture{pixels: pixels, width: w, height: h}
}

func (t *stagedTexture) Width() uint32                  { return uint32(t.width) }
func (t *stagedTexture) Height() uint32                 { return uint32(t.height) }
func (t *stagedTexture) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (t *stagedTexture) CreateView() gpu.TextureView    { return stagedTextureView{} }
func (t *stagedTexture) Destroy()                       {}

type stagedTextureView struct{}

func (stagedTextureView) Destroy() {}

var _ gpu.Texture = (*stagedTexture)(nil)
