package graph

import (
	"math"

	"gonum.org/v1/gonum/graph/simple"
)

// Point is a position in simulation space.
type Point struct {
	X, Y float64
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// RawEdge is an unvalidated [from, to, weight] triple.
type RawEdge struct {
	From   string
	To     string
	Weight float64
}

// Node is a community member. Hint seeds the layout; Fixed pins the node at
// Hint for the whole simulation.
type Node struct {
	ID    string
	Hint  *Point
	Fixed bool
}

// Edge is a directed trade from Source to Target. From and To index into
// Graph.Nodes.
type Edge struct {
	Source string
	Target string
	Weight float64
	From   int
	To     int
}

// SelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) SelfLoop() bool { return e.From == e.To }

// Graph is the validated trading network. It is immutable once built.
type Graph struct {
	Nodes []Node
	Edges []Edge

	index    map[string]int
	pairs    map[[2]int]int
	directed *simple.WeightedDirectedGraph
}

// Empty returns a graph with no nodes.
func Empty() *Graph {
	g, _ := Build(nil, nil, nil)
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.Nodes) }

// Index returns the position of id in Nodes.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// EdgeBetween returns the index of the edge from -> to, or -1.
func (g *Graph) EdgeBetween(from, to int) int {
	if i, ok := g.pairs[[2]int{from, to}]; ok {
		return i
	}
	return -1
}

// HasReverse reports whether the opposite-direction edge of Edges[i] exists.
func (g *Graph) HasReverse(i int) bool {
	e := g.Edges[i]
	if e.SelfLoop() {
		return false
	}
	return g.EdgeBetween(e.To, e.From) >= 0
}

// Directed exposes the graph as a gonum weighted digraph keyed by node
// index. Self-loops are not represented.
func (g *Graph) Directed() *simple.WeightedDirectedGraph { return g.directed }

// Sold is the total weight leaving node i, excluding self-loops.
func (g *Graph) Sold(i int) float64 {
	total := 0.0
	to := g.directed.From(int64(i))
	for to.Next() {
		if w, ok := g.directed.Weight(int64(i), to.Node().ID()); ok {
			total += w
		}
	}
	return total
}

// Bought is the total weight arriving at node i, excluding self-loops.
func (g *Graph) Bought(i int) float64 {
	total := 0.0
	from := g.directed.To(int64(i))
	for from.Next() {
		if w, ok := g.directed.Weight(from.Node().ID(), int64(i)); ok {
			total += w
		}
	}
	return total
}

// MaxWeight returns the largest edge weight, or 0 for an edgeless graph.
func (g *Graph) MaxWeight() float64 {
	heaviest := 0.0
	for _, e := range g.Edges {
		if e.Weight > heaviest {
			heaviest = e.Weight
		}
	}
	return heaviest
}
