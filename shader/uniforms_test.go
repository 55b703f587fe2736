package shader

import "testing"

func TestPackCursorFlags_ClampsOpacity(t *testing.T) {
	if v := packCursorFlags(1.5, 0); v >= 1.0 {
		t.Fatalf("expected clamped fractional part < 1.0, got %v", v)
	}
	if v := packCursorFlags(-1, 3); v != 3 {
		t.Fatalf("expected flags-only value 3 for negative opacity, got %v", v)
	}
}

func TestUniforms_Bytes_FixedLength(t *testing.T) {
	var u Uniforms
	b := u.Bytes()
	if len(b) == 0 {
		t.Fatal("expected non-empty byte slice")
	}
	// Bytes must be deterministic in length across calls with the same
	// struct shape, since the packed block is sized for a fixed-size GPU
	// uniform buffer.
	b2 := u.Bytes()
	if len(b) != len(b2) {
		t.Fatalf("expected stable length, got %d then %d", len(b), len(b2))
	}
}
