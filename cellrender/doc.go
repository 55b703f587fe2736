// Package cellrender is the terminal renderer's center of gravity: grid
// state, dirty-row tracking, cursor and background state, scrollbar
// geometry, and per-row GPU instance-buffer construction.
//
// CellRenderer is NOT safe for concurrent use — like render/renderer.go's
// renderers in the library this package is adapted from, every mutation
// is expected to happen on a single render thread. Its two collaborator
// packages, fontmanager and shaper, ARE safe for concurrent use, since
// they may be warmed from a background goroutine ahead of the render
// thread needing them.
package cellrender
