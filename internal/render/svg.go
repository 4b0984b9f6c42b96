package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// WriteSVG renders s as a standalone SVG document. Every node and edge carries
// a <title> with its tooltip text.
func WriteSVG(w io.Writer, s Scene) error {
	width, height := int(math.Ceil(s.Width)), int(math.Ceil(s.Height))
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(s.Background)))

	if s.Empty() {
		canvas.Text(width/2, height/2, "no trades",
			fmt.Sprintf("fill:%s;font-size:14px;font-family:monospace;text-anchor:middle", css(s.LabelColor)))
		canvas.End()
		return nil
	}

	canvas.Group(`class="edges"`)
	for _, e := range s.Edges {
		canvas.Group(`class="edge"`)
		canvas.Title(fmt.Sprintf("%s -> %s: %s", e.Source, e.Target, strconv.FormatFloat(e.Weight, 'g', 6, 64)))
		stroke := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f", css(e.Color), e.Width)
		if e.Loop {
			canvas.Circle(round(e.Center.X), round(e.Center.Y), max(1, round(e.Radius)), stroke)
		} else {
			canvas.Line(round(e.From.X), round(e.From.Y), round(e.To.X), round(e.To.Y), stroke)
		}
		if e.HasHead {
			canvas.Polygon(
				[]int{round(e.Head[0].X), round(e.Head[1].X), round(e.Head[2].X)},
				[]int{round(e.Head[0].Y), round(e.Head[1].Y), round(e.Head[2].Y)},
				fmt.Sprintf("fill:%s", css(e.Color)),
			)
		}
		canvas.Gend()
	}
	canvas.Gend()

	canvas.Group(`class="nodes"`)
	for _, n := range s.Nodes {
		canvas.Group(`class="node"`)
		canvas.Title(fmt.Sprintf("%s sold %.2f bought %.2f", n.ID, n.Sold, n.Bought))
		canvas.Circle(round(n.Center.X), round(n.Center.Y), max(1, round(n.Radius)),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.2", css(n.Fill), css(n.Stroke)))
		if s.Labels {
			canvas.Text(round(n.Center.X+n.Radius+3), round(n.Center.Y-n.Radius), n.ID,
				fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(s.LabelColor)))
		}
		canvas.Gend()
	}
	canvas.Gend()

	canvas.End()
	return nil
}
