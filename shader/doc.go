// Package shader implements CustomShaderRenderer: a user-supplied
// full-screen fragment shader run against an intermediate texture,
// exposing a Shadertoy-compatible uniform set plus terminal-specific
// uniforms (cursor, opacity, background color, insets). The Compositor
// holds up to two independent instances — a "background" shader and a
// "cursor" shader — and chains them per spec.md §4.8.
package shader
