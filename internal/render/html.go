package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders s as an interactive ECharts page. Nodes keep the
// positions from the scene; ECharts only adds roaming and tooltips.
func WriteHTML(w io.Writer, s Scene, title string) error {
	if title == "" {
		title = "trading network"
	}

	nodes := make([]opts.GraphNode, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		nodes = append(nodes, opts.GraphNode{
			Name:       n.ID,
			X:          float32(n.Center.X),
			Y:          float32(n.Center.Y),
			Value:      float32(n.Sold - n.Bought),
			SymbolSize: 2 * n.Radius,
			ItemStyle:  &opts.ItemStyle{Color: css(n.Fill)},
		})
	}
	links := make([]opts.GraphLink, 0, len(s.Edges))
	for _, e := range s.Edges {
		links = append(links, opts.GraphLink{
			Source: e.Source,
			Target: e.Target,
			Value:  float32(e.Weight),
		})
	}

	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%dpx", int(s.Width)),
			Height:    fmt.Sprintf("%dpx", int(s.Height)),
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	chart.AddSeries(
		"trades",
		nodes,
		links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:     "none",
			Roam:       opts.Bool(true),
			EdgeSymbol: []string{"none", "arrow"},
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(s.Labels),
			Color:    css(s.LabelColor),
			Position: "right",
		}),
	)

	page := components.NewPage()
	page.AddCharts(chart)
	return page.Render(w)
}
