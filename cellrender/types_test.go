package cellrender

import "testing"

func TestRuneCellWidth_WideAndNarrow(t *testing.T) {
	if RuneCellWidth('A') != 1 {
		t.Fatalf("expected ASCII 'A' to be width 1")
	}
	if RuneCellWidth('漢') != 2 {
		t.Fatalf("expected CJK '漢' to be width 2")
	}
}

func TestRGBA_Blend(t *testing.T) {
	bg := RGBA{R: 0, G: 0, B: 0, A: 255}
	over := RGBA{R: 255, G: 255, B: 255, A: 255}

	blended := bg.blend(over, 1.0)
	if blended.R != 255 || blended.G != 255 || blended.B != 255 {
		t.Fatalf("full-opacity full-alpha blend should equal over, got %+v", blended)
	}

	zero := bg.blend(over, 0)
	if zero != bg {
		t.Fatalf("zero-opacity blend should equal bg, got %+v want %+v", zero, bg)
	}
}

func TestRGBA_Floats(t *testing.T) {
	c := RGBA{R: 255, G: 0, B: 128, A: 255}
	f := c.floats()
	if f[0] != 1 || f[1] != 0 || f[3] != 1 {
		t.Fatalf("unexpected floats: %v", f)
	}
}

func TestCellGrid_MarkAllDirtyOnConstruction(t *testing.T) {
	g := NewCellGrid(4, 3)
	for r := 0; r < 3; r++ {
		if !g.DirtyRows[r] {
			t.Fatalf("row %d should start dirty", r)
		}
	}
}

func TestCellGrid_MarkRowDirty_OutOfRangeIgnored(t *testing.T) {
	g := NewCellGrid(4, 3)
	g.MarkRowDirty(100) // must not panic
}

func TestCellGrid_Resize_ChangesDimsAndMarksDirty(t *testing.T) {
	g := NewCellGrid(4, 3)
	for i := range g.DirtyRows {
		g.DirtyRows[i] = false
	}

	if !g.Resize(10, 5) {
		t.Fatal("expected Resize to report a reallocation")
	}
	if g.Cols != 10 || g.Rows != 5 {
		t.Fatalf("unexpected dims after resize: %dx%d", g.Cols, g.Rows)
	}
	for _, d := range g.DirtyRows {
		if !d {
			t.Fatal("expected all rows dirty after resize")
		}
	}
}

func TestCellGrid_Resize_NoOpWhenUnchanged(t *testing.T) {
	g := NewCellGrid(4, 3)
	if g.Resize(4, 3) {
		t.Fatal("expected no reallocation for unchanged dimensions")
	}
}

func TestCellGrid_UpdateCells_DiffsAndMarksDirty(t *testing.T) {
	g := NewCellGrid(3, 2)
	for i := range g.DirtyRows {
		g.DirtyRows[i] = false
	}

	row0 := []Cell{{Grapheme: "a"}, {Grapheme: "b"}, {Grapheme: "c"}}
	g.UpdateCells([][]Cell{row0})

	if !g.DirtyRows[0] {
		t.Fatal("expected row 0 dirty after content change")
	}
	if g.DirtyRows[1] {
		t.Fatal("expected row 1 untouched")
	}
	if g.At(0, 1).Grapheme != "b" {
		t.Fatalf("unexpected cell content: %+v", g.At(0, 1))
	}

	g.DirtyRows[0] = false
	g.UpdateCells([][]Cell{row0})
	if g.DirtyRows[0] {
		t.Fatal("expected no dirty flag when content is unchanged")
	}
}

func TestCellGrid_UpdateCells_MismatchedRowLengthIgnored(t *testing.T) {
	g := NewCellGrid(3, 2)
	g.UpdateCells([][]Cell{{{Grapheme: "x"}}}) // wrong length
	if g.At(0, 0).Grapheme != "" {
		t.Fatal("expected mismatched-length row to be ignored")
	}
}
