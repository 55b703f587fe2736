package shaper

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestShape_EmptyText(t *testing.T) {
	s := New()
	run := s.Shape("", goregular.TTF, 0, Options{})
	if run.Text != "" {
		t.Fatalf("expected empty text, got %q", run.Text)
	}
	if len(run.Glyphs) != 0 {
		t.Fatalf("expected no glyphs for empty text, got %d", len(run.Glyphs))
	}
}

func TestShape_ValidFaceProducesGlyphs(t *testing.T) {
	s := New()
	run := s.Shape("hello", goregular.TTF, 0, Options{Ligatures: true, Kerning: true})
	if len(run.Glyphs) == 0 {
		t.Fatal("expected shaped glyphs for valid face and non-empty text")
	}
	if run.Advance <= 0 {
		t.Fatalf("expected positive total advance, got %v", run.Advance)
	}
	if len(run.Graphemes) < 2 {
		t.Fatalf("expected at least start/end grapheme boundaries, got %v", run.Graphemes)
	}
}

func TestShape_InvalidFaceDegradesToEmptyRun(t *testing.T) {
	s := New()
	run := s.Shape("hello", []byte("not a font"), 0, Options{})
	if len(run.Glyphs) != 0 {
		t.Fatalf("expected no glyphs for an unparseable face, got %d", len(run.Glyphs))
	}
	if run.Advance != 0 {
		t.Fatalf("expected zero advance for an unparseable face, got %v", run.Advance)
	}
	// Grapheme boundaries must still be preserved even on shaping failure.
	if len(run.Graphemes) < 2 {
		t.Fatalf("expected grapheme boundaries preserved on failure, got %v", run.Graphemes)
	}
}

func TestShape_CacheHitReturnsSamePointer(t *testing.T) {
	s := New()
	first := s.Shape("cached text", goregular.TTF, 0, Options{})
	second := s.Shape("cached text", goregular.TTF, 0, Options{})
	if first != second {
		t.Fatal("expected identical cache key to return the same ShapedRun pointer")
	}
}

func TestShape_DifferentFaceIndexIsDifferentCacheEntry(t *testing.T) {
	s := New()
	a := s.Shape("same text", goregular.TTF, 0, Options{})
	b := s.Shape("same text", goregular.TTF, 1, Options{})
	if a == b {
		t.Fatal("expected distinct FaceIndex to produce distinct cache entries")
	}
}

func TestCache_FIFOEvictionAtCapacity(t *testing.T) {
	s := New(WithCacheCapacity(2))
	s.Shape("one", goregular.TTF, 0, Options{})
	s.Shape("two", goregular.TTF, 0, Options{})
	if s.CacheLen() != 2 {
		t.Fatalf("expected cache len 2, got %d", s.CacheLen())
	}

	// Touching "one" again must NOT protect it from FIFO eviction (FIFO
	// is insertion-order only, unlike an LRU).
	s.Shape("one", goregular.TTF, 0, Options{})
	s.Shape("three", goregular.TTF, 0, Options{})

	if s.CacheLen() != 2 {
		t.Fatalf("expected cache len capped at 2, got %d", s.CacheLen())
	}
	if _, ok := s.getCached(cacheKey{text: "one", faceIndex: 0}); ok {
		t.Fatal("expected \"one\" to have been evicted FIFO despite the re-access")
	}
	if _, ok := s.getCached(cacheKey{text: "three", faceIndex: 0}); !ok {
		t.Fatal("expected \"three\" (most recently inserted) to remain cached")
	}
}

func TestClearCache(t *testing.T) {
	s := New()
	s.Shape("a", goregular.TTF, 0, Options{})
	s.ClearCache()
	if s.CacheLen() != 0 {
		t.Fatalf("expected empty cache after ClearCache, got %d", s.CacheLen())
	}
}

func TestInvalidateFace_ForcesReparse(t *testing.T) {
	s := New()
	s.Shape("a", goregular.TTF, 0, Options{})
	s.InvalidateFace(0)
	// Re-shaping after invalidation must still succeed (re-parses lazily).
	run := s.Shape("b", goregular.TTF, 0, Options{})
	if len(run.Glyphs) == 0 {
		t.Fatal("expected successful reshape after face invalidation")
	}
}
