package interact

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/san-kum/tradenet/internal/graph"
)

// Tooltip is the hover payload. Node tooltips carry the energy the node sold
// and bought; edge tooltips carry the traded weight.
type Tooltip struct {
	Kind   string   `json:"kind"`
	ID     string   `json:"id,omitempty"`
	Sold   *float64 `json:"sold,omitempty"`
	Bought *float64 `json:"bought,omitempty"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

// TooltipFor builds the payload for h, or reports false when nothing is
// hovered.
func TooltipFor(g *graph.Graph, h HoverTarget) (Tooltip, bool) {
	switch h.Kind {
	case HoverNode:
		sold, bought := g.Sold(h.Index), g.Bought(h.Index)
		return Tooltip{Kind: "node", ID: h.ID, Sold: &sold, Bought: &bought}, true
	case HoverEdge:
		w := h.Weight
		return Tooltip{Kind: "edge", Source: h.Source, Target: h.Target, Weight: &w}, true
	}
	return Tooltip{}, false
}

func (t Tooltip) JSON() ([]byte, error) {
	return json.Marshal(t)
}

// Lines formats the tooltip for text surfaces.
func (t Tooltip) Lines() []string {
	switch t.Kind {
	case "node":
		return []string{
			"node " + t.ID,
			"sold   " + formatEnergy(t.Sold),
			"bought " + formatEnergy(t.Bought),
		}
	case "edge":
		return []string{
			fmt.Sprintf("%s -> %s", t.Source, t.Target),
			"weight " + formatEnergy(t.Weight),
		}
	}
	return nil
}

func formatEnergy(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}
