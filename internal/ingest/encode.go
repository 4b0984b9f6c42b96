package ingest

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/san-kum/tradenet/internal/graph"
)

type outNetwork struct {
	Nodes  []string              `json:"nodes"`
	Edges  [][3]any              `json:"edges"`
	Layout map[string][2]float64 `json:"layout"`
	Fixed  []string              `json:"fixed,omitempty"`
}

// FromGraph captures g with the given positions as a Network whose Layout
// can seed a later run.
func FromGraph(g *graph.Graph, pos []graph.Point) Network {
	n := Network{
		Nodes:  make([]string, g.Len()),
		Edges:  make([]graph.RawEdge, len(g.Edges)),
		Layout: make(map[string]graph.Point, g.Len()),
	}
	for i, node := range g.Nodes {
		n.Nodes[i] = node.ID
		if i < len(pos) {
			n.Layout[node.ID] = pos[i]
		}
		if node.Fixed {
			n.Fixed = append(n.Fixed, node.ID)
		}
	}
	for i, e := range g.Edges {
		n.Edges[i] = graph.RawEdge{From: e.Source, To: e.Target, Weight: e.Weight}
	}
	return n
}

// Encode writes n in the input format. Positions that are not finite are
// left out.
func Encode(w io.Writer, n Network) error {
	out := outNetwork{
		Nodes:  n.Nodes,
		Edges:  make([][3]any, len(n.Edges)),
		Layout: make(map[string][2]float64, len(n.Layout)),
		Fixed:  n.Fixed,
	}
	if out.Nodes == nil {
		out.Nodes = []string{}
	}
	for i, e := range n.Edges {
		out.Edges[i] = [3]any{e.From, e.To, e.Weight}
	}
	for id, p := range n.Layout {
		if p.IsFinite() {
			out.Layout[id] = [2]float64{p.X, p.Y}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
