package cellrender

import "testing"

func TestComputeScrollbar_FullyVisibleFillsTrack(t *testing.T) {
	s := computeScrollbar(ScrollbarState{}, 0, 0, 10, 100, 0, 50, 50, nil)
	if s.ThumbH != 100 {
		t.Fatalf("expected thumb to fill track when total==visible, got %v", s.ThumbH)
	}
}

func TestComputeScrollbar_ThumbHeightProportional(t *testing.T) {
	s := computeScrollbar(ScrollbarState{}, 0, 0, 10, 200, 0, 50, 100, nil)
	want := 200.0 * 50 / 100
	if s.ThumbH != want {
		t.Fatalf("expected thumb height %v, got %v", want, s.ThumbH)
	}
}

func TestComputeScrollbar_ThumbHeightClampedToMinimum(t *testing.T) {
	s := computeScrollbar(ScrollbarState{}, 0, 0, 10, 200, 0, 1, 10000, nil)
	if s.ThumbH != defaultMinThumbHeight {
		t.Fatalf("expected thumb height clamped to %v, got %v", defaultMinThumbHeight, s.ThumbH)
	}
}

func TestComputeScrollbar_ThumbPositionAtTopAndBottom(t *testing.T) {
	atTop := computeScrollbar(ScrollbarState{}, 0, 0, 10, 200, 50, 50, 100, nil)
	if atTop.ThumbY != atTop.TrackY {
		t.Fatalf("expected max scroll_offset to place thumb at track top, got %v", atTop.ThumbY)
	}

	atBottom := computeScrollbar(ScrollbarState{}, 0, 0, 10, 200, 0, 50, 100, nil)
	wantY := atBottom.TrackY + (atBottom.TrackH - atBottom.ThumbH)
	if atBottom.ThumbY != wantY {
		t.Fatalf("expected scroll_offset 0 to place thumb at bottom %v, got %v", wantY, atBottom.ThumbY)
	}
}

func TestScrollbarState_ContainsPoint(t *testing.T) {
	s := computeScrollbar(ScrollbarState{}, 0, 0, 10, 200, 0, 50, 100, nil)
	x, y, _, _ := s.ThumbBounds()
	if !s.ContainsPoint(x+1, y+1) {
		t.Fatal("expected point inside thumb to be contained")
	}
	if s.ContainsPoint(-10, -10) {
		t.Fatal("expected point outside thumb to not be contained")
	}
}

func TestScrollbarState_TrackContainsX(t *testing.T) {
	s := computeScrollbar(ScrollbarState{}, 5, 0, 10, 200, 0, 50, 100, nil)
	if !s.TrackContainsX(10) {
		t.Fatal("expected x within track bounds to be contained")
	}
	if s.TrackContainsX(100) {
		t.Fatal("expected x beyond track bounds to not be contained")
	}
}

func TestMouseYToScrollOffset_InvertsThumbPosition(t *testing.T) {
	s := computeScrollbar(ScrollbarState{}, 0, 0, 10, 200, 25, 50, 100, nil)
	got := s.MouseYToScrollOffset(s.ThumbY, 100, 50)
	if got < 20 || got > 30 {
		t.Fatalf("expected inverted scroll offset near 25, got %d", got)
	}
}

func TestMouseYToScrollOffset_NoScrollRangeReturnsZero(t *testing.T) {
	s := computeScrollbar(ScrollbarState{}, 0, 0, 10, 200, 0, 50, 50, nil)
	if got := s.MouseYToScrollOffset(100, 50, 50); got != 0 {
		t.Fatalf("expected 0 when total<=visible, got %d", got)
	}
}

func TestUpdateScrollbarForPane_OffsetsTrackByViewport(t *testing.T) {
	r := newTestRenderer(t)
	viewport := PaneViewport{X: 50, Y: 20, W: 100, H: 100}
	r.UpdateScrollbarForPane(0, 10, 20, nil, viewport)
	if r.scrollbar.TrackX < viewport.X {
		t.Fatalf("expected track offset by viewport X, got %v", r.scrollbar.TrackX)
	}
	if !r.scrollbarCacheValid {
		t.Fatal("expected scrollbar cache marked valid after update")
	}
}

func TestUpdateScrollbarAppearance_UpdatesColorsAndInvalidatesCache(t *testing.T) {
	r := newTestRenderer(t)
	r.scrollbarCacheValid = true
	thumb := RGBA{R: 1, G: 2, B: 3, A: 255}
	r.UpdateScrollbarAppearance(14, ScrollbarLeft, thumb, RGBA{})
	if r.scrollbar.ThumbColor != thumb {
		t.Fatalf("expected thumb color updated, got %+v", r.scrollbar.ThumbColor)
	}
	if r.scrollbarCacheValid {
		t.Fatal("expected cache invalidated by appearance change")
	}
}
