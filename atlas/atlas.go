package atlas

// DefaultSize is the atlas texture's fixed width and height, in pixels.
const DefaultSize = 2048

// padding is the gap, in pixels, reserved around every glyph so
// bilinear sampling at a cell's edge never bleeds into its neighbor.
const padding = 2

// GlyphKey uniquely addresses one rasterized glyph: a FaceIndex and a
// GlyphID packed into 64 bits, exactly as spec'd (face_index<<32 |
// glyph_id).
type GlyphKey uint64

// NewGlyphKey packs a face index and glyph id into a GlyphKey.
func NewGlyphKey(faceIndex int, glyphID uint16) GlyphKey {
	return GlyphKey(uint64(uint32(faceIndex))<<32 | uint64(glyphID))
}

// FaceIndex unpacks the face index component of the key.
func (k GlyphKey) FaceIndex() int { return int(uint32(k >> 32)) }

// GlyphID unpacks the glyph id component of the key.
func (k GlyphKey) GlyphID() uint16 { return uint16(k) }

// GlyphInfo is one atlas entry: its rectangle within the atlas
// texture, its rendering bearings, whether it's a color bitmap, and
// its position in the LRU chain.
type GlyphInfo struct {
	X, Y, Width, Height int
	BearingX            float64
	BaselineBearing     float64
	IsColored           bool

	prev, next       GlyphKey
	hasPrev, hasNext bool
}

// Atlas is a single 2048×2048 RGBA texture with shelf-packed glyph
// storage, wholesale-clear-on-overflow eviction, and an LRU chain for
// diagnostics / future refinement to per-shelf eviction (see doc.go).
type Atlas struct {
	size  int
	alloc *shelfAllocator

	pixels []byte // RGBA, size*size*4 bytes
	glyphs map[GlyphKey]*GlyphInfo

	headKey GlyphKey
	hasHead bool
	tailKey GlyphKey
	hasTail bool

	dirty      bool
	clearCount int
}

// New constructs an Atlas of the given square size (use DefaultSize for
// the spec'd 2048).
func New(size int) *Atlas {
	a := &Atlas{size: size}
	a.reset()
	return a
}

func (a *Atlas) reset() {
	a.alloc = newShelfAllocator(a.size, padding)
	a.pixels = make([]byte, a.size*a.size*4)
	a.glyphs = make(map[GlyphKey]*GlyphInfo)
	a.hasHead, a.hasTail = false, false
	a.dirty = true
}

// Size returns the atlas's width/height in pixels.
func (a *Atlas) Size() int { return a.size }

// Pixels returns the atlas's backing RGBA buffer. Callers must treat
// it as read-only except through Insert/Clear.
func (a *Atlas) Pixels() []byte { return a.pixels }

// Get looks up a cached glyph and, on a hit, moves it to the front of
// the LRU chain.
func (a *Atlas) Get(key GlyphKey) (*GlyphInfo, bool) {
	info, ok := a.glyphs[key]
	if !ok {
		return nil, false
	}
	a.touch(key, info)
	return info, true
}

// Insert rasterizes pixels (RGBA, width*height*4 bytes) into the
// atlas at the next free shelf position and records its GlyphInfo.
// cleared reports whether inserting this glyph required a wholesale
// atlas clear first (the caller must mark every row dirty in that
// case, since every previously-issued atlas coordinate is now stale).
func (a *Atlas) Insert(key GlyphKey, width, height int, pixels []byte, bearingX, baselineBearing float64, isColored bool) (info *GlyphInfo, cleared bool, err error) {
	if width+padding > a.size || height+padding > a.size {
		return nil, false, &ErrGlyphTooLarge{Width: width, Height: height, AtlasSize: a.size}
	}

	x, y, ok := a.alloc.allocate(width, height)
	if !ok {
		a.clear()
		cleared = true
		x, y, ok = a.alloc.allocate(width, height)
		if !ok {
			// Unreachable given the size check above, but kept explicit
			// rather than silently wrapping around.
			return nil, cleared, &ErrGlyphTooLarge{Width: width, Height: height, AtlasSize: a.size}
		}
	}

	a.blit(x, y, width, height, pixels)

	info = &GlyphInfo{
		X: x, Y: y, Width: width, Height: height,
		BearingX:        bearingX,
		BaselineBearing: baselineBearing,
		IsColored:       isColored,
	}
	a.glyphs[key] = info
	a.pushFront(key, info)
	a.dirty = true
	return info, cleared, nil
}

func (a *Atlas) blit(x, y, w, h int, pixels []byte) {
	stride := a.size * 4
	for row := 0; row < h; row++ {
		srcOff := row * w * 4
		dstOff := (y+row)*stride + x*4
		copy(a.pixels[dstOff:dstOff+w*4], pixels[srcOff:srcOff+w*4])
	}
}

// clear drops every glyph, resets the allocator, and clears pixel
// storage. This is the atlas's only eviction policy: total, not
// per-glyph.
func (a *Atlas) clear() {
	a.alloc.reset()
	for i := range a.pixels {
		a.pixels[i] = 0
	}
	a.glyphs = make(map[GlyphKey]*GlyphInfo)
	a.hasHead, a.hasTail = false, false
	a.clearCount++
	a.dirty = true
}

// Clear is the public, caller-invoked equivalent of an overflow clear
// (for example, when a font configuration change invalidates every
// cached glyph).
func (a *Atlas) Clear() { a.clear() }

// ClearCount reports how many times the atlas has been wholesale
// cleared, for diagnostics.
func (a *Atlas) ClearCount() int { return a.clearCount }

// Dirty reports whether the atlas texture has changed since the last
// MarkClean call.
func (a *Atlas) Dirty() bool { return a.dirty }

// MarkClean clears the dirty flag after the caller has uploaded the
// atlas texture to the GPU.
func (a *Atlas) MarkClean() { a.dirty = false }

// Len returns the number of cached glyphs.
func (a *Atlas) Len() int { return len(a.glyphs) }

// touch unlinks key from its current LRU position and pushes it to
// the front.
func (a *Atlas) touch(key GlyphKey, info *GlyphInfo) {
	if a.hasHead && a.headKey == key {
		return
	}
	a.unlink(key, info)
	a.pushFront(key, info)
}

func (a *Atlas) unlink(key GlyphKey, info *GlyphInfo) {
	if info.hasPrev {
		prev := a.glyphs[info.prev]
		prev.next, prev.hasNext = info.next, info.hasNext
	} else if a.hasHead && a.headKey == key {
		a.headKey, a.hasHead = info.next, info.hasNext
	}

	if info.hasNext {
		next := a.glyphs[info.next]
		next.prev, next.hasPrev = info.prev, info.hasPrev
	} else if a.hasTail && a.tailKey == key {
		a.tailKey, a.hasTail = info.prev, info.hasPrev
	}

	info.hasPrev, info.hasNext = false, false
}

func (a *Atlas) pushFront(key GlyphKey, info *GlyphInfo) {
	info.hasPrev = false
	if a.hasHead {
		info.next, info.hasNext = a.headKey, true
		head := a.glyphs[a.headKey]
		head.prev, head.hasPrev = key, true
	} else {
		info.hasNext = false
		a.tailKey, a.hasTail = key, true
	}
	a.headKey, a.hasHead = key, true
}
