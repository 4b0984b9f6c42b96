// Package export runs layouts headlessly and writes the result as SVG, PNG,
// an ECharts page or layout JSON.
package export

import (
	"context"
	"io"
	"log/slog"

	"github.com/san-kum/tradenet/internal/graph"
	"github.com/san-kum/tradenet/internal/ingest"
	"github.com/san-kum/tradenet/internal/layout"
	"github.com/san-kum/tradenet/internal/metrics"
	"github.com/san-kum/tradenet/internal/render"
)

// Options control a headless layout and the drawing surface of its export.
type Options struct {
	Params   layout.Params
	PinHints bool
	Style    render.Style
	Width    float64
	Height   float64
	Logger   *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Params: layout.DefaultParams(),
		Style:  render.DefaultStyle(),
		Width:  800,
		Height: 600,
	}
}

// Snapshot is a converged layout ready to be written.
type Snapshot struct {
	Name      string
	Graph     *graph.Graph
	Positions []graph.Point
	Warnings  []graph.Warning
	Result    ingest.Result
	Ticks     int
	Reason    layout.Reason
	Trace     *metrics.EnergyTrace
	Style     render.Style
	Width     float64
	Height    float64
}

// Prepare builds the graph of r and runs its layout to convergence.
func Prepare(ctx context.Context, r ingest.Result, opts Options) (*Snapshot, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g, warnings := r.Network.Build(opts.PinHints)
	for _, w := range warnings {
		logger.Warn(w.Message, "kind", w.Kind.String(), "result", r.Name)
	}

	trace := metrics.NewEnergyTrace(0)
	engine := layout.New(g, opts.Params, layout.WithLogger(logger), layout.WithObserver(trace))
	ticks, err := engine.Run(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Name:      r.Name,
		Graph:     g,
		Positions: engine.Positions(),
		Warnings:  warnings,
		Result:    r,
		Ticks:     ticks,
		Reason:    engine.Reason(),
		Trace:     trace,
		Style:     opts.Style,
		Width:     opts.Width,
		Height:    opts.Height,
	}, nil
}

// Scene draws the snapshot fitted to its surface.
func (s *Snapshot) Scene() render.Scene {
	vp := render.Fit(s.Positions, s.Width, s.Height, s.Style.Padding, render.Identity())
	return render.Draw(s.Graph, s.Positions, vp, s.Style, render.NoHighlight())
}
