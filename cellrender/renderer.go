package cellrender

import (
	"fmt"

	"github.com/paulrobello/termcellrender/atlas"
	"github.com/paulrobello/termcellrender/fontmanager"
	"github.com/paulrobello/termcellrender/gpu"
	"github.com/paulrobello/termcellrender/shaper"
)

// Config configures a new CellRenderer. CellWidth/CellHeight/Padding
// are in physical pixels at scale factor 1; HandleScaleFactorChange
// rescales them.
type Config struct {
	Cols, Rows             int
	CellWidth, CellHeight  float64
	Padding                float64
	ScaleFactor            float64
	FontAscent             float64
	FontDescent            float64
	FontLeading            float64
	AtlasSize              int
	DefaultBackgroundColor RGBA
}

// CellRenderer is the renderer core: grid/cursor/background/scrollbar
// state plus per-row instance-buffer construction and GPU pass
// orchestration. It is NOT safe for concurrent use — see package doc.
type CellRenderer struct {
	device  gpu.DeviceHandle
	surface gpu.Surface

	fontManager *fontmanager.Manager
	shaper      *shaper.Shaper
	atlas       *atlas.Atlas

	grid       CellGrid
	cursor     CursorState
	background BackgroundState
	scrollbar  ScrollbarState
	instances  InstanceBuffers

	imageLoader ImageLoader

	padding    float64
	cellWidth  float64
	cellHeight float64

	fontAscent  float64
	fontDescent float64
	fontLeading float64

	scaleFactor   float64
	surfaceWidth  int
	surfaceHeight int

	contentOffsetX     float64
	contentOffsetY     float64
	contentInsetBottom float64
	contentInsetRight  float64

	opacity                        float64
	transparencyAffectsOnlyDefault bool
	keepTextOpaque                 bool

	scrollbarWidth      float64
	scrollbarCacheValid bool

	visualBellIntensity float64

	eguiBottomInset float64
	eguiRightInset  float64

	separatorMarks      []SeparatorMark
	gutterIndicators    []GutterIndicator
	linkUnderlineStyle  LinkUnderlineStyle
	paneBackgroundCache map[string]*PaneBackground
}

// NewCellRenderer constructs a CellRenderer bound to device for GPU
// submission, with fontManager/shaper/atlas as its glyph pipeline.
// Mirrors render/gpu_renderer.go's NewGPURenderer nil-handle check.
func NewCellRenderer(device gpu.DeviceHandle, surface gpu.Surface, fm *fontmanager.Manager, sh *shaper.Shaper, cfg Config) (*CellRenderer, error) {
	if device == nil {
		return nil, fmt.Errorf("cellrender: nil device handle")
	}
	if fm == nil {
		return nil, fmt.Errorf("cellrender: nil font manager")
	}
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		return nil, fmt.Errorf("cellrender: invalid grid dimensions %dx%d", cfg.Cols, cfg.Rows)
	}
	atlasSize := cfg.AtlasSize
	if atlasSize <= 0 {
		atlasSize = atlas.DefaultSize
	}
	scale := cfg.ScaleFactor
	if scale <= 0 {
		scale = 1
	}

	r := &CellRenderer{
		device:      device,
		surface:     surface,
		fontManager: fm,
		shaper:      sh,
		atlas:       atlas.New(atlasSize),

		grid:       NewCellGrid(cfg.Cols, cfg.Rows),
		instances:  newInstanceBuffers(cfg.Rows),
		background: BackgroundState{Color: cfg.DefaultBackgroundColor},

		padding:     cfg.Padding,
		cellWidth:   cfg.CellWidth,
		cellHeight:  cfg.CellHeight,
		fontAscent:  cfg.FontAscent,
		fontDescent: cfg.FontDescent,
		fontLeading: cfg.FontLeading,
		scaleFactor: scale,

		opacity:        1,
		scrollbarWidth: defaultScrollbarWidth,
	}
	r.surfaceWidth = int(2*cfg.Padding + float64(cfg.Cols)*cfg.CellWidth)
	r.surfaceHeight = int(2*cfg.Padding + float64(cfg.Rows)*cfg.CellHeight)
	return r, nil
}

// Resize recomputes grid dimensions from a new surface size in
// physical pixels, reallocating grid/instance state if the cell count
// changed. Returns the new (cols, rows).
func (r *CellRenderer) Resize(widthPx, heightPx int) (cols, rows int) {
	r.surfaceWidth, r.surfaceHeight = widthPx, heightPx
	usableW := float64(widthPx) - 2*r.padding - r.contentInsetRight
	usableH := float64(heightPx) - 2*r.padding - r.contentInsetBottom
	cols = max(1, int(usableW/r.cellWidth))
	rows = max(1, int(usableH/r.cellHeight))
	if r.grid.Resize(cols, rows) {
		r.instances = newInstanceBuffers(rows)
	}
	r.scrollbarCacheValid = false
	return cols, rows
}

// HandleScaleFactorChange rescales cell geometry and padding for a new
// backing-scale factor (e.g. moving a window between a HiDPI and a
// standard-DPI display), then resizes to the given physical size.
func (r *CellRenderer) HandleScaleFactorChange(factor float64, widthPx, heightPx int) (cols, rows int) {
	if factor <= 0 {
		factor = 1
	}
	ratio := factor / r.scaleFactor
	r.cellWidth *= ratio
	r.cellHeight *= ratio
	r.padding *= ratio
	r.fontAscent *= ratio
	r.fontDescent *= ratio
	r.fontLeading *= ratio
	r.scaleFactor = factor
	r.grid.MarkAllDirty()
	return r.Resize(widthPx, heightPx)
}

// SetContentOffsetY/X/InsetBottom/InsetRight reserve space at the edges
// of the surface for host UI chrome (e.g. a tab bar or an egui side
// panel) that the grid and scrollbar must not draw under.
func (r *CellRenderer) SetContentOffsetY(y float64) {
	r.contentOffsetY = y
	r.grid.MarkAllDirty()
}

func (r *CellRenderer) SetContentOffsetX(x float64) {
	r.contentOffsetX = x
	r.grid.MarkAllDirty()
}

func (r *CellRenderer) SetContentInsetBottom(inset float64) {
	r.contentInsetBottom = inset
	r.scrollbarCacheValid = false
	r.grid.MarkAllDirty()
}

func (r *CellRenderer) SetContentInsetRight(inset float64) {
	r.contentInsetRight = inset
	r.scrollbarCacheValid = false
	r.grid.MarkAllDirty()
}

// Cols, Rows, CellWidth, CellHeight, Padding, ScaleFactor, and Size are
// read-only accessors for layout consumers (e.g. the compositor
// computing pane splits).
func (r *CellRenderer) Cols() int            { return r.grid.Cols }
func (r *CellRenderer) Rows() int            { return r.grid.Rows }
func (r *CellRenderer) CellWidth() float64   { return r.cellWidth }
func (r *CellRenderer) CellHeight() float64  { return r.cellHeight }
func (r *CellRenderer) Padding() float64     { return r.padding }
func (r *CellRenderer) ScaleFactor() float64 { return r.scaleFactor }
func (r *CellRenderer) Size() (w, h int)     { return r.surfaceWidth, r.surfaceHeight }

// UpdateCells applies a row diff to the grid; see CellGrid.UpdateCells.
func (r *CellRenderer) UpdateCells(rows [][]Cell) {
	r.grid.UpdateCells(rows)
}

// SetVisualBellIntensity sets the flash intensity render_overlays draws.
func (r *CellRenderer) SetVisualBellIntensity(intensity float64) {
	r.visualBellIntensity = intensity
}
