package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/paulrobello/termcellrender/cellrender"
)

// Theme holds the palette and grid dimensions for a demo run, loaded
// from a TOML file the same way the teacher pack's terminal configs
// load a theme.toml.
type Theme struct {
	Grid   GridConfig  `toml:"grid"`
	Colors ThemeColors `toml:"colors"`
}

// GridConfig controls the demo's cell grid size and metrics.
type GridConfig struct {
	Cols       int     `toml:"cols"`
	Rows       int     `toml:"rows"`
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

// ThemeColors are the demo's foreground/background/cursor hex colors.
type ThemeColors struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Cursor     string `toml:"cursor"`
}

// DefaultTheme provides sensible defaults when no config file is
// found or supplied.
func DefaultTheme() Theme {
	return Theme{
		Grid: GridConfig{Cols: 80, Rows: 24, CellWidth: 9, CellHeight: 18},
		Colors: ThemeColors{
			Foreground: "#cccccc",
			Background: "#1e1e1e",
			Cursor:     "#ffffff",
		},
	}
}

// LoadTheme reads path, falling back to DefaultTheme if path is empty,
// missing, or invalid.
func LoadTheme(path string) Theme {
	theme := DefaultTheme()
	if path == "" {
		return theme
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("cellrenderdemo: no config at %s, using defaults", path)
		return theme
	}
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		log.Printf("cellrenderdemo: failed to decode %s: %v, using defaults", filepath.Clean(path), err)
		return DefaultTheme()
	}
	return theme
}

// parseHexColor parses a "#rrggbb" or "#rrggbbaa" string into an RGBA,
// defaulting alpha to opaque when not supplied.
func parseHexColor(s string) (cellrender.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 && len(s) != 8 {
		return cellrender.RGBA{}, fmt.Errorf("cellrenderdemo: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[:6], 16, 32)
	if err != nil {
		return cellrender.RGBA{}, fmt.Errorf("cellrenderdemo: invalid hex color %q: %w", s, err)
	}
	c := cellrender.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[6:8], 16, 8)
		if err != nil {
			return cellrender.RGBA{}, fmt.Errorf("cellrenderdemo: invalid hex alpha %q: %w", s, err)
		}
		c.A = uint8(a)
	}
	return c, nil
}
