package fontmanager

import (
	"bytes"
	"fmt"
	"log"
	"sync"

	"github.com/go-text/typesetting/di"
	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/paulrobello/termcellrender/font"
)

// RangeFont binds a Unicode code point range to a family name. Manager
// tries range fonts, in the order supplied, before falling back to the
// system fallback chain.
type RangeFont struct {
	Start, End rune
	Family     string
}

func (r RangeFont) contains(c rune) bool { return c >= r.Start && c <= r.End }

// Config describes the faces a Manager should assemble. Every family
// field is optional except that a missing Primary falls back to the
// font library's embedded default, which always resolves.
type Config struct {
	Primary, Bold, Italic, BoldItalic string
	Ranges                            []RangeFont
	// FallbackFamilies overrides the default prioritized fallback chain
	// (Nerd Font > monospace > CJK > emoji/symbol > generic sans). Only
	// families that actually resolve in the library are kept; order is
	// preserved for the ones that do.
	FallbackFamilies []string
	// Verbose logs each face resolution attempt at construction time.
	Verbose bool
}

func defaultFallbackFamilies() []string {
	return []string{
		// Nerd Font variants first: these carry the private-use glyph
		// ranges terminal users expect for prompts and icons.
		"JetBrainsMono Nerd Font",
		"FiraCode Nerd Font",
		"Hack Nerd Font",
		"DejaVuSansM Nerd Font",
		// Common monospace fallbacks.
		"DejaVu Sans Mono",
		"Noto Sans Mono",
		"Liberation Mono",
		// CJK coverage.
		"Noto Sans CJK SC",
		"Noto Sans CJK JP",
		"Noto Sans CJK KR",
		// Emoji / symbol coverage.
		"Noto Color Emoji",
		"Noto Emoji",
		"Symbola",
		// Generic sans, last resort for anything else.
		"DejaVu Sans",
		"Noto Sans",
		"Arial",
	}
}

// slot holds one candidate face's raw bytes plus its lazily-parsed
// go-text font. Parsing is deferred to first use since most slots in a
// fallback chain are never actually queried for most sessions.
type slot struct {
	family string
	data   []byte

	once   sync.Once
	parsed *gotextfont.Font
	err    error
}

func newSlot(family string, data []byte) *slot {
	if data == nil {
		return nil
	}
	return &slot{family: family, data: data}
}

func (s *slot) font() *gotextfont.Font {
	s.once.Do(func() {
		face, err := gotextfont.ParseTTF(bytes.NewReader(s.data))
		if err != nil {
			s.err = err
			return
		}
		s.parsed = face.Font
	})
	return s.parsed
}

// claims reports whether this slot's face has a renderable (non-notdef)
// glyph for r.
func (s *slot) claims(r rune) (uint16, bool) {
	if s == nil {
		return 0, false
	}
	f := s.font()
	if f == nil {
		return 0, false
	}
	face := gotextfont.NewFace(f)
	gid, ok := face.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return uint16(gid), true
}

// candidate pairs a FaceIndex with the slot it names, for the ordered
// walk FindGraphemeGlyph uses (FindGlyphExcluding walks the slots
// directly).
type candidate struct {
	index int
	slot  *slot
}

// Manager resolves characters and grapheme clusters to a (FaceIndex,
// GlyphID) pair across a primary/bold/italic/bold-italic set, a list of
// user-configured Unicode-range faces, and a prioritized system
// fallback chain.
//
// FaceIndex layout: 0=primary, 1=bold, 2=italic, 3=bold-italic,
// 4..4+R=range fonts, 4+R..4+R+F=fallbacks. Manager is read-only after
// construction and safe for concurrent use (each query only reads
// already-resolved slots and lazily parses fonts behind a sync.Once).
type Manager struct {
	primary, bold, italic, boldItalic *slot

	rangeSpecs []RangeFont
	rangeSlots []*slot

	fallbackSlots []*slot
}

// NewManager resolves cfg's families through lib and assembles the
// fixed FaceIndex layout. It never fails: an unresolved optional slot
// is simply absent, and an unresolved Primary falls back to
// lib.EmbeddedDefault(), which is guaranteed to parse.
func NewManager(lib *font.Library, cfg Config) *Manager {
	resolve := func(label, family string, weight font.Weight, style font.Style) *slot {
		if family == "" {
			return nil
		}
		data, ok := lib.Resolve(family, weight, style)
		if cfg.Verbose {
			log.Printf("fontmanager: resolve %s %q: ok=%v", label, family, ok)
		}
		if !ok {
			return nil
		}
		return newSlot(family, data)
	}

	primary := resolve("primary", cfg.Primary, font.WeightRegular, font.StyleNormal)
	if primary == nil {
		primary = newSlot(cfg.Primary, lib.EmbeddedDefault())
		if cfg.Verbose {
			log.Printf("fontmanager: primary family %q unresolved, using embedded default", cfg.Primary)
		}
	}

	m := &Manager{
		primary:    primary,
		bold:       resolve("bold", cfg.Bold, font.WeightBold, font.StyleNormal),
		italic:     resolve("italic", cfg.Italic, font.WeightRegular, font.StyleItalic),
		boldItalic: resolve("bold-italic", cfg.BoldItalic, font.WeightBold, font.StyleItalic),
		rangeSpecs: cfg.Ranges,
	}

	for _, rf := range cfg.Ranges {
		m.rangeSlots = append(m.rangeSlots, resolve("range:"+rf.Family, rf.Family, font.WeightRegular, font.StyleNormal))
	}

	fallbackFamilies := cfg.FallbackFamilies
	if len(fallbackFamilies) == 0 {
		fallbackFamilies = defaultFallbackFamilies()
	}
	for _, family := range fallbackFamilies {
		if s := resolve("fallback", family, font.WeightRegular, font.StyleNormal); s != nil {
			m.fallbackSlots = append(m.fallbackSlots, s)
		}
	}

	return m
}

// styledIndex picks the FaceIndex for a (bold, italic) request, falling
// back to an available adjacent style and finally to primary, mirroring
// find_glyph's styled-face selection.
func (m *Manager) styledIndex(bold, italic bool) (int, *slot) {
	switch {
	case bold && italic && m.boldItalic != nil:
		return 3, m.boldItalic
	case bold && !italic && m.bold != nil:
		return 1, m.bold
	case !bold && italic && m.italic != nil:
		return 2, m.italic
	default:
		return 0, m.primary
	}
}

// candidates returns the full ordered walk: styled slot, then every
// range font slot in order (not filtered by rune, and including
// unresolved nil slots), then fallbacks. FindGraphemeGlyph walks this
// list as-is, with no range check.
func (m *Manager) candidates(bold, italic bool) []candidate {
	idx, styled := m.styledIndex(bold, italic)
	out := make([]candidate, 0, 1+len(m.rangeSlots)+len(m.fallbackSlots))
	out = append(out, candidate{idx, styled})
	for i, s := range m.rangeSlots {
		out = append(out, candidate{4 + i, s})
	}
	base := 4 + len(m.rangeSlots)
	for i, s := range m.fallbackSlots {
		out = append(out, candidate{base + i, s})
	}
	return out
}

// FindGlyph resolves r to the highest-priority face that claims it:
// the requested styled face first, then user range fonts whose range
// contains r, then the system fallback chain in priority order.
func (m *Manager) FindGlyph(r rune, bold, italic bool) (faceIndex int, glyphID uint16, ok bool) {
	return m.FindGlyphExcluding(r, bold, italic, nil)
}

// FindGlyphExcluding behaves like FindGlyph but skips any FaceIndex
// present in excluded. CellRenderer uses this to re-walk the chain when
// a face claimed a glyph whose outline turned out empty.
func (m *Manager) FindGlyphExcluding(r rune, bold, italic bool, excluded []int) (faceIndex int, glyphID uint16, ok bool) {
	isExcluded := func(idx int) bool {
		for _, e := range excluded {
			if e == idx {
				return true
			}
		}
		return false
	}

	idx, styled := m.styledIndex(bold, italic)
	if !isExcluded(idx) {
		if gid, hit := styled.claims(r); hit {
			return idx, gid, true
		}
	}

	for i, s := range m.rangeSlots {
		fi := 4 + i
		if isExcluded(fi) {
			continue
		}
		if i >= len(m.rangeSpecs) || !m.rangeSpecs[i].contains(r) {
			continue
		}
		if gid, hit := s.claims(r); hit {
			return fi, gid, true
		}
	}

	base := 4 + len(m.rangeSlots)
	for i, s := range m.fallbackSlots {
		fi := base + i
		if isExcluded(fi) {
			continue
		}
		if gid, hit := s.claims(r); hit {
			return fi, gid, true
		}
	}

	return 0, 0, false
}

// slotAt resolves an absolute FaceIndex (as returned by FindGlyph /
// FindGlyphExcluding) back to its slot, following the fixed layout
// documented on Manager.
func (m *Manager) slotAt(index int) *slot {
	switch {
	case index == 0:
		return m.primary
	case index == 1:
		return m.bold
	case index == 2:
		return m.italic
	case index == 3:
		return m.boldItalic
	case index >= 4 && index < 4+len(m.rangeSlots):
		return m.rangeSlots[index-4]
	default:
		base := 4 + len(m.rangeSlots)
		if index >= base && index < base+len(m.fallbackSlots) {
			return m.fallbackSlots[index-base]
		}
	}
	return nil
}

// FaceBytes returns the raw font bytes backing faceIndex, for callers
// (CellRenderer) that need to rasterize a glyph the atlas hasn't cached
// yet. ok is false if faceIndex is out of range or the slot is absent.
func (m *Manager) FaceBytes(faceIndex int) ([]byte, bool) {
	s := m.slotAt(faceIndex)
	if s == nil {
		return nil, false
	}
	return s.data, true
}

// FindGraphemeGlyph resolves a full grapheme cluster (as segmented by
// uniseg) to a face. Single-codepoint graphemes delegate to FindGlyph.
// Multi-codepoint graphemes (ZWJ emoji sequences, skin-tone modifier
// sequences, flag sequences) are shaped whole against each candidate
// face in priority order; the first face whose shaped output starts
// with a real glyph wins. If no face shapes the full cluster, the
// lookup degrades to FindGlyph on the cluster's first rune.
func (m *Manager) FindGraphemeGlyph(grapheme string, bold, italic bool) (faceIndex int, glyphID uint16, ok bool) {
	runes := []rune(grapheme)
	if len(runes) == 0 {
		return 0, 0, false
	}
	if len(runes) == 1 {
		return m.FindGlyph(runes[0], bold, italic)
	}

	for _, c := range m.candidates(bold, italic) {
		if gid, hit := shapeFirstGlyph(c.slot, runes); hit {
			return c.index, gid, true
		}
	}

	return m.FindGlyph(runes[0], bold, italic)
}

// shapeFirstGlyph runs the grapheme cluster through a one-off HarfBuzz
// shaping pass against slot's face and reports the first glyph, if any.
// This is the only way to tell whether a face actually has a composed
// glyph (or a COLR ligature) for a multi-rune sequence versus merely
// having glyphs for its individual code points.
func shapeFirstGlyph(s *slot, runes []rune) (uint16, bool) {
	if s == nil {
		return 0, false
	}
	f := s.font()
	if f == nil {
		return 0, false
	}
	face := gotextfont.NewFace(f)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.I(16),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	}

	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(input)
	if len(out.Glyphs) == 0 {
		return 0, false
	}
	gid := out.Glyphs[0].GlyphID
	if gid == 0 {
		return 0, false
	}
	return uint16(gid), true
}

// String summarizes which slots are present, for diagnostics.
func (m *Manager) String() string {
	present := func(s *slot) string {
		if s == nil {
			return "-"
		}
		return s.family
	}
	return fmt.Sprintf("primary=%s bold=%s italic=%s bold-italic=%s ranges=%d fallbacks=%d",
		present(m.primary), present(m.bold), present(m.italic), present(m.boldItalic),
		len(m.rangeSlots), len(m.fallbackSlots))
}
