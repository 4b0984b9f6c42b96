// Package render maps simulation-space positions to viewport pixels and turns
// a graph plus its positions into a [Scene]: a backend-neutral list of node
// and edge shapes.
//
// [Draw] is a pure function of (graph, positions, viewport, highlight). It
// never touches layout state, so hosts can call it every frame. Backends
// rasterize a Scene onto a braille [Canvas], SVG, PNG or an ECharts page.
package render
