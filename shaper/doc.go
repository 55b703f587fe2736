// Package shaper wraps go-text/typesetting's HarfBuzz implementation to
// turn a text run plus face bytes into a positioned glyph sequence,
// with OpenType feature flags applied and grapheme-cluster boundaries
// preserved alongside the glyphs.
//
// Shaped runs are cached by (text, face index, feature flags, script,
// language, direction) in a capacity-bounded map; once full, the
// oldest entry by insertion order is evicted (not the oldest by
// access), matching the bounded-cache contract this package
// implements. A face that fails to parse never surfaces as an error:
// Shape degrades to an empty run that still carries correct grapheme
// boundaries, so a caller can keep reasoning about cluster counts.
package shaper
