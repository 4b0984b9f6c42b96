package ingest

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/san-kum/tradenet/internal/graph"
)

type wireNetwork struct {
	Nodes  []json.RawMessage     `json:"nodes"`
	Edges  []json.RawMessage     `json:"edges"`
	Layout map[string][]*float64 `json:"layout"`
	Fixed  []string              `json:"fixed"`
}

type wireResult struct {
	Name           *string         `json:"name"`
	TradingNetwork *wireNetwork    `json:"trading_network"`
	Warnings       []string        `json:"warnings"`
	Errors         []string        `json:"errors"`
	EnergyMetrics  *EnergyMetrics  `json:"energy_metrics"`
	CostMetrics    *CostMetrics    `json:"cost_metrics"`
	MarketMetrics  *MarketMetrics  `json:"market_metrics"`
	Nodes          json.RawMessage `json:"nodes"`
	Edges          json.RawMessage `json:"edges"`
}

// Load reads and decodes the file at path.
func Load(path string) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	results, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}

// Read decodes everything r yields.
func Read(r io.Reader) ([]Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode accepts a bare network, a simulation result or a JSON array of
// either. NaN and Infinity literals written by Python serializers are read
// as null.
func Decode(data []byte) ([]Result, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	data = sanitizeNonFinite(data)

	switch data[0] {
	case '{':
		r, err := decodeOne(data, 0)
		if err != nil {
			return nil, err
		}
		return []Result{r}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		if len(items) == 0 {
			return nil, ErrEmptyInput
		}
		results := make([]Result, 0, len(items))
		for i, item := range items {
			r, err := decodeOne(item, i)
			if err != nil {
				return nil, &DecodeError{Index: i, Wrapped: err}
			}
			results = append(results, r)
		}
		return results, nil
	}
	return nil, ErrUnknownFormat
}

func decodeOne(data []byte, index int) (Result, error) {
	var wr wireResult
	if err := json.Unmarshal(data, &wr); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}

	r := Result{
		Name:     fmt.Sprintf("result %d", index+1),
		Warnings: wr.Warnings,
		Errors:   wr.Errors,
		Energy:   wr.EnergyMetrics,
		Cost:     wr.CostMetrics,
		Market:   wr.MarketMetrics,
	}
	if wr.Name != nil && *wr.Name != "" {
		r.Name = *wr.Name
	}

	var wn wireNetwork
	switch {
	case wr.TradingNetwork != nil:
		wn = *wr.TradingNetwork
	case wr.Nodes != nil || wr.Edges != nil:
		if err := json.Unmarshal(data, &wn); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
	default:
		return Result{}, ErrUnknownFormat
	}

	r.Network, r.Issues = wn.network()
	return r, nil
}

func (wn wireNetwork) network() (Network, []string) {
	var issues []string
	n := Network{
		Nodes: make([]string, 0, len(wn.Nodes)),
		Edges: make([]graph.RawEdge, 0, len(wn.Edges)),
		Fixed: wn.Fixed,
	}

	for i, raw := range wn.Nodes {
		id, ok := scalarString(raw)
		if !ok {
			issues = append(issues, fmt.Sprintf("node %d is not a string or number; ignored", i))
			continue
		}
		n.Nodes = append(n.Nodes, id)
	}

	for i, raw := range wn.Edges {
		e, err := decodeEdge(raw)
		if err != nil {
			issues = append(issues, fmt.Sprintf("edge %d %v; ignored", i, err))
			continue
		}
		n.Edges = append(n.Edges, e)
	}

	if len(wn.Layout) > 0 {
		n.Layout = make(map[string]graph.Point, len(wn.Layout))
		for id, xy := range wn.Layout {
			if len(xy) != 2 {
				issues = append(issues, fmt.Sprintf("layout for %s has %d coordinates; ignored", id, len(xy)))
				continue
			}
			n.Layout[id] = graph.Point{X: orNaN(xy[0]), Y: orNaN(xy[1])}
		}
	}

	for _, id := range n.Fixed {
		if _, ok := n.Layout[id]; !ok {
			issues = append(issues, fmt.Sprintf("fixed node %s has no layout position", id))
		}
	}
	return n, issues
}

// decodeEdge reads a [from, to, weight] triple. A weight that is not a
// number decodes as NaN so the graph builder clamps and reports it.
func decodeEdge(raw json.RawMessage) (graph.RawEdge, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return graph.RawEdge{}, fmt.Errorf("is not an array")
	}
	if len(parts) != 3 {
		return graph.RawEdge{}, fmt.Errorf("has %d elements, want 3", len(parts))
	}
	from, okFrom := scalarString(parts[0])
	to, okTo := scalarString(parts[1])
	if !okFrom || !okTo {
		return graph.RawEdge{}, fmt.Errorf("has a non-scalar endpoint")
	}
	return graph.RawEdge{From: from, To: to, Weight: number(parts[2])}, nil
}

func scalarString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String(), true
	}
	return "", false
}

func number(raw json.RawMessage) float64 {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return math.NaN()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

func orNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

// sanitizeNonFinite replaces NaN, Infinity and -Infinity outside of strings
// with null.
func sanitizeNonFinite(data []byte) []byte {
	if !bytes.Contains(data, []byte("NaN")) && !bytes.Contains(data, []byte("Infinity")) {
		return data
	}
	out := make([]byte, 0, len(data))
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if tok := nonFiniteToken(data[i:]); tok > 0 {
			out = append(out, "null"...)
			i += tok - 1
			continue
		}
		out = append(out, c)
	}
	return out
}

func nonFiniteToken(b []byte) int {
	for _, tok := range []string{"-Infinity", "Infinity", "NaN"} {
		if bytes.HasPrefix(b, []byte(tok)) {
			return len(tok)
		}
	}
	return 0
}
