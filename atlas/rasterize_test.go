package atlas

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func TestRasterize_ProducesCoverageMask(t *testing.T) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("sfnt.Parse: %v", err)
	}
	var buf sfnt.Buffer
	gid, err := f.GlyphIndex(&buf, 'A')
	if err != nil {
		t.Fatalf("GlyphIndex: %v", err)
	}
	if gid == 0 {
		t.Fatal("expected goregular to have a glyph for 'A'")
	}

	out, err := Rasterize(goregular.TTF, uint16(gid), 32, false)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if out.Width <= 0 || out.Height <= 0 {
		t.Fatalf("expected positive dimensions, got %dx%d", out.Width, out.Height)
	}
	if len(out.Pixels) != out.Width*out.Height*4 {
		t.Fatalf("pixel buffer size mismatch: got %d, want %d", len(out.Pixels), out.Width*out.Height*4)
	}

	var anyCoverage bool
	for i := 3; i < len(out.Pixels); i += 4 {
		if out.Pixels[i] != 0 {
			anyCoverage = true
			break
		}
	}
	if !anyCoverage {
		t.Fatal("expected at least some non-zero alpha coverage for glyph 'A'")
	}
}

func TestRasterize_InvalidFace(t *testing.T) {
	if _, err := Rasterize([]byte("not a font"), 1, 16, false); err == nil {
		t.Fatal("expected an error for an unparseable face")
	}
}
