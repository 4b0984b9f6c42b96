package render

import (
	"math"

	"github.com/san-kum/tradenet/internal/graph"
)

const (
	MinZoom = 0.1
	MaxZoom = 20.0
)

// Transform is the user-controlled part of the projection.
type Transform struct {
	Zoom float64
	PanX float64
	PanY float64
}

func Identity() Transform { return Transform{Zoom: 1} }

// ZoomBy multiplies the zoom, clamped to [MinZoom, MaxZoom].
func (t Transform) ZoomBy(factor float64) Transform {
	t.Zoom = math.Max(MinZoom, math.Min(MaxZoom, t.zoom()*factor))
	return t
}

// PanBy shifts the view by (dx, dy) pixels.
func (t Transform) PanBy(dx, dy float64) Transform {
	t.PanX += dx
	t.PanY += dy
	return t
}

func (t Transform) zoom() float64 {
	if t.Zoom <= 0 || math.IsNaN(t.Zoom) {
		return 1
	}
	return t.Zoom
}

// Viewport projects simulation space onto a Width x Height pixel surface.
// Scale and Center come from fitting the layout; Transform applies on top.
type Viewport struct {
	Width, Height float64
	Scale         float64
	Center        graph.Point
	Transform     Transform
}

// PixelsPerUnit is the effective scale including zoom.
func (v Viewport) PixelsPerUnit() float64 {
	s := v.Scale
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		s = 1
	}
	return s * v.Transform.zoom()
}

// Project maps a simulation-space point to pixels.
func (v Viewport) Project(p graph.Point) Pixel {
	k := v.PixelsPerUnit()
	return Pixel{
		X: v.Width/2 + (p.X-v.Center.X)*k + v.Transform.PanX,
		Y: v.Height/2 + (p.Y-v.Center.Y)*k + v.Transform.PanY,
	}
}

// Unproject is the inverse of Project.
func (v Viewport) Unproject(px Pixel) graph.Point {
	k := v.PixelsPerUnit()
	return graph.Point{
		X: (px.X-v.Width/2-v.Transform.PanX)/k + v.Center.X,
		Y: (px.Y-v.Height/2-v.Transform.PanY)/k + v.Center.Y,
	}
}

// Fit chooses Scale and Center so every position lies inside the surface
// with padding pixels to spare. A degenerate extent maps one unit to a
// quarter of the shorter side.
func Fit(positions []graph.Point, width, height, padding float64, t Transform) Viewport {
	v := Viewport{Width: width, Height: height, Scale: 1, Transform: t}
	if len(positions) == 0 {
		return v
	}

	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, p := range positions[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	v.Center = graph.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}

	availW := math.Max(width-2*padding, 1)
	availH := math.Max(height-2*padding, 1)
	spanX, spanY := maxX-minX, maxY-minY

	const epsilon = 1e-9
	switch {
	case spanX < epsilon && spanY < epsilon:
		v.Scale = math.Max(math.Min(width, height)/4, 1)
	case spanX < epsilon:
		v.Scale = availH / spanY
	case spanY < epsilon:
		v.Scale = availW / spanX
	default:
		v.Scale = math.Min(availW/spanX, availH/spanY)
	}
	return v
}
