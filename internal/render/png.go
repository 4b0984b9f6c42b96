package render

import (
	"image/png"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// WritePNG rasterizes s and encodes it as PNG.
func WritePNG(w io.Writer, s Scene) error {
	return png.Encode(w, rasterPNG(s).Image())
}

// SavePNG rasterizes s into the PNG file at path.
func SavePNG(path string, s Scene) error {
	return rasterPNG(s).SavePNG(path)
}

func rasterPNG(s Scene) *gg.Context {
	dc := gg.NewContext(max(1, int(math.Ceil(s.Width))), max(1, int(math.Ceil(s.Height))))
	dc.SetColor(s.Background)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	if s.Empty() {
		dc.SetColor(s.LabelColor)
		dc.DrawStringAnchored("no trades", s.Width/2, s.Height/2, 0.5, 0.5)
		return dc
	}

	for _, e := range s.Edges {
		dc.SetColor(e.Color)
		dc.SetLineWidth(e.Width)
		if e.Loop {
			dc.DrawCircle(e.Center.X, e.Center.Y, e.Radius)
			dc.Stroke()
			continue
		}
		dc.DrawLine(e.From.X, e.From.Y, e.To.X, e.To.Y)
		dc.Stroke()
		if e.HasHead {
			dc.NewSubPath()
			dc.MoveTo(e.Head[0].X, e.Head[0].Y)
			dc.LineTo(e.Head[1].X, e.Head[1].Y)
			dc.LineTo(e.Head[2].X, e.Head[2].Y)
			dc.ClosePath()
			dc.Fill()
		}
	}

	for _, n := range s.Nodes {
		dc.SetColor(n.Fill)
		dc.DrawCircle(n.Center.X, n.Center.Y, n.Radius)
		dc.Fill()
		dc.SetColor(n.Stroke)
		dc.SetLineWidth(1.2)
		dc.DrawCircle(n.Center.X, n.Center.Y, n.Radius)
		dc.Stroke()
		if s.Labels {
			dc.SetColor(s.LabelColor)
			dc.DrawStringAnchored(n.ID, n.Center.X+n.Radius+3, n.Center.Y-n.Radius, 0, 0.5)
		}
	}
	return dc
}
