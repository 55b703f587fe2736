package atlas

import "testing"

func solidPixels(w, h int) []byte {
	p := make([]byte, w*h*4)
	for i := range p {
		p[i] = 0xFF
	}
	return p
}

func TestGlyphKey_RoundTrips(t *testing.T) {
	key := NewGlyphKey(7, 4242)
	if key.FaceIndex() != 7 {
		t.Fatalf("expected face index 7, got %d", key.FaceIndex())
	}
	if key.GlyphID() != 4242 {
		t.Fatalf("expected glyph id 4242, got %d", key.GlyphID())
	}
}

func TestInsertAndGet(t *testing.T) {
	a := New(64)
	key := NewGlyphKey(0, 1)
	info, cleared, err := a.Insert(key, 8, 8, solidPixels(8, 8), 0, 6, false)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if cleared {
		t.Fatal("did not expect a clear on first insert")
	}
	if info.X != 0 || info.Y != 0 {
		t.Fatalf("expected first glyph at origin, got (%d,%d)", info.X, info.Y)
	}

	got, ok := a.Get(key)
	if !ok {
		t.Fatal("expected a cache hit after Insert")
	}
	if got != info {
		t.Fatal("expected Get to return the same GlyphInfo pointer")
	}
}

func TestInsert_ShelfAdvances(t *testing.T) {
	a := New(20)
	k1 := NewGlyphKey(0, 1)
	k2 := NewGlyphKey(0, 2)

	i1, _, err := a.Insert(k1, 10, 5, solidPixels(10, 5), 0, 0, false)
	if err != nil {
		t.Fatalf("Insert k1: %v", err)
	}
	i2, _, err := a.Insert(k2, 10, 5, solidPixels(10, 5), 0, 0, false)
	if err != nil {
		t.Fatalf("Insert k2: %v", err)
	}
	if i1.X != 0 {
		t.Fatalf("expected first glyph x=0, got %d", i1.X)
	}
	// 12 (next x after the first glyph) + 10 (width) + 2 (padding) > 20,
	// so the second glyph must advance to a new shelf below.
	if i2.Y <= i1.Y {
		t.Fatalf("expected second glyph on a new shelf below the first, got y1=%d y2=%d", i1.Y, i2.Y)
	}
}

func TestInsert_OverflowTriggersWholesaleClear(t *testing.T) {
	a := New(16)
	for i := 0; i < 10; i++ {
		key := NewGlyphKey(0, uint16(i))
		_, cleared, err := a.Insert(key, 8, 8, solidPixels(8, 8), 0, 0, false)
		if err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
		if cleared {
			// Confirm the clear actually dropped prior entries.
			if a.Len() != 1 {
				t.Fatalf("expected exactly 1 glyph immediately after a clear, got %d", a.Len())
			}
			return
		}
	}
	t.Fatal("expected an overflow clear within 10 inserts into a 16x16 atlas")
}

func TestInsert_GlyphTooLarge(t *testing.T) {
	a := New(16)
	_, _, err := a.Insert(NewGlyphKey(0, 1), 32, 32, solidPixels(32, 32), 0, 0, false)
	if err == nil {
		t.Fatal("expected an error for a glyph larger than the atlas")
	}
	var tooLarge *ErrGlyphTooLarge
	if _, ok := err.(*ErrGlyphTooLarge); !ok {
		t.Fatalf("expected *ErrGlyphTooLarge, got %T", err)
	}
	_ = tooLarge
}

func TestClear_ResetsState(t *testing.T) {
	a := New(32)
	a.Insert(NewGlyphKey(0, 1), 4, 4, solidPixels(4, 4), 0, 0, false)
	a.Clear()
	if a.Len() != 0 {
		t.Fatalf("expected empty atlas after Clear, got %d entries", a.Len())
	}
	if a.ClearCount() != 1 {
		t.Fatalf("expected ClearCount 1, got %d", a.ClearCount())
	}
}

func TestGet_Miss(t *testing.T) {
	a := New(32)
	if _, ok := a.Get(NewGlyphKey(0, 99)); ok {
		t.Fatal("expected a miss for an unknown key")
	}
}

func TestIsForceMonochrome(t *testing.T) {
	cases := []struct {
		r    rune
		want bool
	}{
		{0x2500, true}, // box drawing
		{0x25A0, true}, // geometric shapes
		{0xE0A0, true}, // powerline
		{'A', false},
		{0x1F600, false}, // emoji
	}
	for _, c := range cases {
		if got := IsForceMonochrome(c.r); got != c.want {
			t.Errorf("IsForceMonochrome(%U) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestDirty_TracksInsertsAndMarkClean(t *testing.T) {
	a := New(32)
	if !a.Dirty() {
		t.Fatal("expected a freshly constructed atlas to start dirty")
	}
	a.MarkClean()
	if a.Dirty() {
		t.Fatal("expected Dirty to be false after MarkClean")
	}
	a.Insert(NewGlyphKey(0, 1), 4, 4, solidPixels(4, 4), 0, 0, false)
	if !a.Dirty() {
		t.Fatal("expected Insert to mark the atlas dirty again")
	}
}
