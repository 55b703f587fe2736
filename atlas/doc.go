// Package atlas provides a fixed-size 2048×2048 RGBA glyph atlas: a
// shelf allocator, a doubly-linked LRU chain threaded through each
// glyph's metadata, and monochrome/color glyph rasterization from
// OpenType outlines.
//
// Unlike the multi-atlas, per-atlas-eviction manager this package is
// adapted from, a single Atlas here has exactly one allocation policy:
// wholesale clear on overflow. This keeps the allocator trivial and
// correct — rasterization is fast enough that reclearing on the rare
// full condition is an acceptable cost, and callers are expected to
// mark every row dirty when a clear happens so stale atlas coordinates
// get regenerated.
package atlas
