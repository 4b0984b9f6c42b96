package ingest

import (
	"fmt"

	"github.com/san-kum/tradenet/internal/graph"
)

// Network is one trading network as supplied by the simulation backend.
type Network struct {
	Nodes  []string
	Edges  []graph.RawEdge
	Layout map[string]graph.Point
	// Fixed lists ids whose layout position is pinned rather than seeded.
	Fixed []string
}

type EnergyMetrics struct {
	TotalProduction  float64 `json:"total_production"`
	TotalConsumption float64 `json:"total_consumption"`
	TotalGridImport  float64 `json:"total_grid_import"`
	TotalGridExport  float64 `json:"total_grid_export"`
}

type CostMetrics struct {
	CostWithLEC    float64 `json:"cost_with_lec"`
	CostWithoutLEC float64 `json:"cost_without_lec"`
}

type MarketMetrics struct {
	TradingVolume        float64 `json:"trading_volume"`
	RatioFulfilledDemand float64 `json:"ratio_fulfilled_demand"`
	RatioSoldSupply      float64 `json:"ratio_sold_supply"`
}

// Result is one simulation result. A bare network decodes into a Result
// with only Network set.
type Result struct {
	Name     string
	Network  Network
	Warnings []string
	Errors   []string

	Energy *EnergyMetrics
	Cost   *CostMetrics
	Market *MarketMetrics

	// Issues are problems found while decoding, such as malformed edge
	// triples that had to be dropped.
	Issues []string
}

// Build turns the network into a graph. Fixed ids take their position from
// Layout; pinHints pins every other hinted node as well.
func (n Network) Build(pinHints bool) (*graph.Graph, []graph.Warning) {
	opts := []graph.Option{graph.WithPinnedHints(pinHints)}
	if len(n.Fixed) > 0 {
		fixed := make(map[string]graph.Point, len(n.Fixed))
		for _, id := range n.Fixed {
			if p, ok := n.Layout[id]; ok {
				fixed[id] = p
			}
		}
		opts = append(opts, graph.WithFixed(fixed))
	}
	return graph.Build(n.Nodes, n.Edges, n.Layout, opts...)
}

// Select returns results[i].
func Select(results []Result, i int) (Result, error) {
	if i < 0 || i >= len(results) {
		return Result{}, fmt.Errorf("%w: %d of %d", ErrResultIndex, i, len(results))
	}
	return results[i], nil
}
