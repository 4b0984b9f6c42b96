package interact

import (
	"strings"
	"testing"

	"github.com/san-kum/tradenet/internal/graph"
)

func TestTooltipPayloads(t *testing.T) {
	g, _ := graph.Build([]string{"A", "B"}, []graph.RawEdge{{From: "A", To: "B", Weight: 0}}, nil)

	tests := []struct {
		name   string
		target HoverTarget
		want   string
	}{
		{"node", HoverTarget{Kind: HoverNode, Index: 1, ID: "B"}, `{"kind":"node","id":"B","sold":0,"bought":0}`},
		{"edge", HoverTarget{Kind: HoverEdge, Index: 0, Source: "A", Target: "B"}, `{"kind":"edge","source":"A","target":"B","weight":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip, ok := TooltipFor(g, tt.target)
			if !ok {
				t.Fatal("expected a tooltip")
			}
			data, err := tip.JSON()
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, data)
			}
		})
	}

	if _, ok := TooltipFor(g, NoTarget()); ok {
		t.Error("expected no tooltip without a target")
	}
}

func TestTooltipLines(t *testing.T) {
	w := 2.5
	lines := Tooltip{Kind: "edge", Source: "A", Target: "B", Weight: &w}.Lines()
	if len(lines) != 2 || lines[0] != "A -> B" || !strings.HasSuffix(lines[1], "2.500") {
		t.Errorf("unexpected lines %q", lines)
	}
}
