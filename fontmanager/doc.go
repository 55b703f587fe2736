// Package fontmanager holds a primary face plus bold/italic/bold-italic
// variants, a user-configured list of Unicode-range faces, and a
// prioritized fallback chain, and answers "which face contains a glyph
// for this character/grapheme" with a stable FaceIndex.
//
// FaceIndex layout is fixed: 0 = primary, 1 = bold, 2 = italic,
// 3 = bold-italic, 4..4+R = R user range fonts, 4+R..4+R+F = F system
// fallbacks. Indices of absent optional slots (bold/italic/bold-italic)
// are simply never returned by the resolver; the primary slot is always
// present because construction falls back to the font library's
// embedded default face when no primary family resolves.
package fontmanager
