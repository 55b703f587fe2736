package compositor

import (
	"github.com/paulrobello/termcellrender/cellrender"
	"github.com/paulrobello/termcellrender/graphics"
)

// Pane is one split-pane's render input for RenderSplitPanes: its
// viewport rectangle, cell content, cursor, and scrollback metadata
// needed to map its separator marks onto screen rows.
type Pane struct {
	ID       string
	Viewport cellrender.PaneViewport
	Cells    [][]cellrender.Cell
	Cols     int
	Rows     int
	Cursor   cellrender.CursorState
	Opacity  float64

	// Background overrides the compositor-wide background for this
	// pane only; nil means the pane inherits it.
	Background *cellrender.BackgroundState

	SeparatorMarks []cellrender.SeparatorMark
	ScrollbackLen  int
	ScrollOffset   int
	VisibleLines   int

	Title   string
	Focused bool

	Graphics []graphics.Placement
}

// DividerOrientation is the axis a divider runs along.
type DividerOrientation int

const (
	// DividerVertical separates a left pane from a right pane; its
	// long axis is the viewport height, its thickness is its width.
	DividerVertical DividerOrientation = iota
	// DividerHorizontal separates a top pane from a bottom pane; its
	// long axis is the viewport width, its thickness is its height.
	DividerHorizontal
)

// DividerStyle selects a divider's visual treatment.
type DividerStyle int

const (
	DividerSolid DividerStyle = iota
	DividerDouble
	DividerDashed
	DividerShadow
)

// Divider is one pane-separator's geometry and interaction state.
type Divider struct {
	X, Y, W, H  float64
	Orientation DividerOrientation
	Hovered     bool
}

// DividerSettings are the compositor-wide divider appearance knobs.
type DividerSettings struct {
	Style      DividerStyle
	Color      cellrender.RGBA
	HoverColor cellrender.RGBA
}

// EguiFrame is an already-rasterized egui overlay's vertex buffer,
// standing in for the real egui::FullOutput integration this core
// never depends on directly (egui is a host-application concern). Only
// the per-vertex alpha channel matters to the Compositor: ForceOpaque
// rewrites it to 255 so modal-dialog overlays never show the terminal
// through them.
type EguiFrame struct {
	VertexAlphas []uint8
}

// ForceOpaque sets every vertex alpha to fully opaque.
func (f *EguiFrame) ForceOpaque() {
	for i := range f.VertexAlphas {
		f.VertexAlphas[i] = 255
	}
}
