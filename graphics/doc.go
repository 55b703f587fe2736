// Package graphics renders inline images (e.g. sixel/kitty-protocol
// graphics) anchored to cell positions: an id-keyed texture cache plus
// per-frame placement-rectangle computation with pixel snapping and
// clip-top-rows support for images scrolling off a pane's viewport.
package graphics
