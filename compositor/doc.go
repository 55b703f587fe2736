// Package compositor implements the Compositor: the per-frame pass
// sequencer that gates drawing by dirty/continuous-render state,
// chains the CellRenderer through zero, one, or two CustomShaderRenderer
// stages, draws inline graphics, dividers, pane titles, and overlay UI,
// and presents the surface. It is the outermost type in the render
// tree — Compositor owns CellRenderer, GraphicsRenderer, and the two
// CustomShaderRenderer slots, per spec.md §4 ownership rules.
package compositor
