package shaper

import (
	"bytes"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/go-text/typesetting/di"
	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// DefaultCacheCapacity is the number of shaped runs kept before FIFO
// eviction begins.
const DefaultCacheCapacity = 1000

// Options control OpenType feature selection and text direction for a
// single Shape call. ccmp and locl are always enabled regardless of
// these flags, matching standard HarfBuzz default shaping behavior.
type Options struct {
	Ligatures   bool // enables liga, clig, dlig
	Kerning     bool // enables kern
	Contextual  bool // enables calt
	Script      language.Script
	Language    language.Language
	RightToLeft bool
}

// ShapedGlyph is one positioned glyph from a shaping run, in 64ths-of-a-
// pixel-free float units (already converted out of the shaper's 26.6
// fixed point).
type ShapedGlyph struct {
	GlyphID  uint16
	Cluster  int
	XAdvance float64
	YAdvance float64
	XOffset  float64
	YOffset  float64
}

// ShapedRun is the immutable output of a Shape call. Callers receive it
// by pointer and must not mutate it; the same pointer may be handed out
// to multiple callers from the cache.
type ShapedRun struct {
	Text      string
	Glyphs    []ShapedGlyph
	Advance   float64
	Graphemes []int // byte offsets of grapheme-cluster boundaries, including 0 and len(Text)
}

type cacheKey struct {
	text        string
	faceIndex   int
	ligatures   bool
	kerning     bool
	contextual  bool
	rightToLeft bool
	script      language.Script
	lang        language.Language
}

type faceEntry struct {
	once   sync.Once
	parsed *gotextfont.Font
	err    error
}

// Shaper produces positioned glyph runs with OpenType features applied.
// It is safe for concurrent use: the face cache and the run cache are
// each guarded by their own lock, matching how the teacher's shaping
// layer treats font.Font as concurrent-safe but pools the
// non-concurrent-safe HarfbuzzShaper.
type Shaper struct {
	faceMu    sync.RWMutex
	faceCache map[int]*faceEntry

	hbPool sync.Pool

	cacheMu  sync.Mutex
	cache    map[cacheKey]*ShapedRun
	order    []cacheKey
	capacity int
}

// Option configures a Shaper at construction.
type Option func(*Shaper)

// WithCacheCapacity overrides DefaultCacheCapacity.
func WithCacheCapacity(n int) Option {
	return func(s *Shaper) { s.capacity = n }
}

// New constructs a Shaper.
func New(opts ...Option) *Shaper {
	s := &Shaper{
		faceCache: make(map[int]*faceEntry),
		cache:     make(map[cacheKey]*ShapedRun),
		capacity:  DefaultCacheCapacity,
		hbPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shape converts text into a positioned glyph run using the face
// identified by faceIndex (a cache dimension only — the caller is
// responsible for passing the same faceBytes for a given faceIndex for
// the Shaper's lifetime, the same stability guarantee FontManager gives
// its face slots). A face that fails to parse never errors: Shape
// returns an empty run that still carries correct grapheme boundaries.
func (s *Shaper) Shape(text string, faceBytes []byte, faceIndex int, opts Options) *ShapedRun {
	boundaries := graphemeBoundaries(text)

	key := cacheKey{
		text:        text,
		faceIndex:   faceIndex,
		ligatures:   opts.Ligatures,
		kerning:     opts.Kerning,
		contextual:  opts.Contextual,
		rightToLeft: opts.RightToLeft,
		script:      opts.Script,
		lang:        opts.Language,
	}

	if run, ok := s.getCached(key); ok {
		return run
	}

	font := s.getOrParseFace(faceIndex, faceBytes)
	if font == nil {
		run := &ShapedRun{Text: text, Graphemes: boundaries}
		s.setCached(key, run)
		return run
	}

	runes := []rune(text)
	if len(runes) == 0 {
		run := &ShapedRun{Text: text, Graphemes: boundaries}
		s.setCached(key, run)
		return run
	}

	face := gotextfont.NewFace(font)

	dir := di.DirectionLTR
	if opts.RightToLeft {
		dir = di.DirectionRTL
	}

	script := opts.Script
	if script == 0 {
		script = language.LookupScript(runes[0])
	}
	lang := opts.Language
	if lang == "" {
		lang = language.NewLanguage("en")
	}

	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    dir,
		Face:         face,
		Size:         fixed.I(16),
		Script:       script,
		Language:     lang,
		FontFeatures: buildFeatures(opts),
	}

	hb := s.hbPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.hbPool.Put(hb)

	glyphs := make([]ShapedGlyph, len(output.Glyphs))
	var total float64
	for i, g := range output.Glyphs {
		adv := fixedToFloat(g.Advance)
		glyphs[i] = ShapedGlyph{
			GlyphID:  uint16(g.GlyphID),
			Cluster:  g.TextIndex(),
			XAdvance: adv,
			XOffset:  fixedToFloat(g.XOffset),
			YOffset:  fixedToFloat(g.YOffset),
		}
		if dir.IsVertical() {
			glyphs[i].XAdvance = 0
			glyphs[i].YAdvance = adv
		}
		total += adv
	}

	run := &ShapedRun{
		Text:      text,
		Glyphs:    glyphs,
		Advance:   total,
		Graphemes: boundaries,
	}
	s.setCached(key, run)
	return run
}

// buildFeatures maps Options' booleans onto the standard HarfBuzz
// feature tags named in the shaping contract. ccmp and locl are always
// on; liga/clig/dlig follow Ligatures, kern follows Kerning, calt
// follows Contextual.
func buildFeatures(opts Options) []shaping.FontFeature {
	features := []shaping.FontFeature{
		{Tag: gotextfont.MustNewTag("ccmp"), Value: 1},
		{Tag: gotextfont.MustNewTag("locl"), Value: 1},
	}
	ligVal := uint32(0)
	if opts.Ligatures {
		ligVal = 1
	}
	for _, tag := range []string{"liga", "clig", "dlig"} {
		features = append(features, shaping.FontFeature{Tag: gotextfont.MustNewTag(tag), Value: ligVal})
	}
	kernVal := uint32(0)
	if opts.Kerning {
		kernVal = 1
	}
	features = append(features, shaping.FontFeature{Tag: gotextfont.MustNewTag("kern"), Value: kernVal})

	caltVal := uint32(0)
	if opts.Contextual {
		caltVal = 1
	}
	features = append(features, shaping.FontFeature{Tag: gotextfont.MustNewTag("calt"), Value: caltVal})

	return features
}

// getOrParseFace returns the cached go-text Font for faceIndex, parsing
// faceBytes on first use. A parse failure is cached too (as a nil
// font), so a permanently-broken face doesn't get re-parsed on every
// call.
func (s *Shaper) getOrParseFace(faceIndex int, faceBytes []byte) *gotextfont.Font {
	s.faceMu.RLock()
	entry, ok := s.faceCache[faceIndex]
	s.faceMu.RUnlock()

	if !ok {
		s.faceMu.Lock()
		entry, ok = s.faceCache[faceIndex]
		if !ok {
			entry = &faceEntry{}
			s.faceCache[faceIndex] = entry
		}
		s.faceMu.Unlock()
	}

	entry.once.Do(func() {
		face, err := gotextfont.ParseTTF(bytes.NewReader(faceBytes))
		if err != nil {
			entry.err = err
			return
		}
		entry.parsed = face.Font
	})
	return entry.parsed
}

// InvalidateFace drops any cached parsed font for faceIndex. Callers
// should invoke this if the bytes behind a FaceIndex ever change
// (FontManager's contract says they don't, but a hot-reloaded font
// configuration would need this).
func (s *Shaper) InvalidateFace(faceIndex int) {
	s.faceMu.Lock()
	delete(s.faceCache, faceIndex)
	s.faceMu.Unlock()
}

func (s *Shaper) getCached(key cacheKey) (*ShapedRun, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	run, ok := s.cache[key]
	return run, ok
}

// setCached inserts a run, evicting the oldest-inserted entry (FIFO,
// not LRU) once the cache is at capacity.
func (s *Shaper) setCached(key cacheKey, run *ShapedRun) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if _, exists := s.cache[key]; exists {
		s.cache[key] = run
		return
	}

	if s.capacity > 0 && len(s.cache) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
	}

	s.cache[key] = run
	s.order = append(s.order, key)
}

// ClearCache empties the shaped-run cache.
func (s *Shaper) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache = make(map[cacheKey]*ShapedRun)
	s.order = nil
}

// CacheLen reports how many shaped runs are currently cached.
func (s *Shaper) CacheLen() int {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return len(s.cache)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// graphemeBoundaries returns the byte offsets of grapheme-cluster
// boundaries in text, including 0 and len(text). Used both to report
// cluster counts on a failed shape and, by callers, to validate
// Cell.Grapheme contents.
func graphemeBoundaries(text string) []int {
	if text == "" {
		return []int{0}
	}
	bounds := []int{0}
	gr := uniseg.NewGraphemes(text)
	pos := 0
	for gr.Next() {
		_, to := gr.Positions()
		pos = to
		bounds = append(bounds, pos)
	}
	return bounds
}
