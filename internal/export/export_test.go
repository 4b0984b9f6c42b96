package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/tradenet/internal/graph"
	"github.com/san-kum/tradenet/internal/ingest"
	"github.com/san-kum/tradenet/internal/layout"
)

func sampleResults() []ingest.Result {
	return []ingest.Result{
		{Name: "Summer / PV 40%", Network: ingest.Network{
			Nodes: []string{"A", "B", "C"},
			Edges: []graph.RawEdge{{From: "A", To: "B", Weight: 5}, {From: "B", To: "C", Weight: 2}},
		}},
		{Name: "empty", Network: ingest.Network{}},
	}
}

func TestPrepare(t *testing.T) {
	snap, err := Prepare(context.Background(), sampleResults()[0], DefaultOptions())
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if snap.Reason != layout.ReasonEnergy {
		t.Errorf("expected energy convergence, got %s", snap.Reason)
	}
	if snap.Ticks == 0 || snap.Trace.Ticks() != snap.Ticks {
		t.Errorf("expected trace to follow %d ticks, got %d", snap.Ticks, snap.Trace.Ticks())
	}
	if len(snap.Scene().Nodes) != 3 {
		t.Error("expected a scene with 3 nodes")
	}
}

func TestPrepareCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Prepare(ctx, sampleResults()[0], DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	want := []string{"html", "json", "png", "svg"}
	got := r.Formats()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected formats %v, got %v", want, got)
	}
	if _, err := r.Get(".SVG"); err != nil {
		t.Errorf("expected svg writer, got %v", err)
	}
	if _, err := r.Get("bmp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestWriters(t *testing.T) {
	snap, err := Prepare(context.Background(), sampleResults()[0], DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	markers := map[string]string{
		"svg":  "<svg",
		"png":  "\x89PNG",
		"html": "echarts",
		"json": `"layout"`,
	}
	for format, marker := range markers {
		t.Run(format, func(t *testing.T) {
			w, _ := r.Get(format)
			var buf bytes.Buffer
			if err := w(&buf, snap); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			if !strings.Contains(buf.String(), marker) {
				t.Errorf("expected %q in output", marker)
			}
		})
	}
}

func TestLayoutJSONSeedsNextRun(t *testing.T) {
	snap, _ := Prepare(context.Background(), sampleResults()[0], DefaultOptions())
	path := filepath.Join(t.TempDir(), "out", "layout.json")
	if err := NewRegistry().WriteFile(path, "", snap); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	results, err := ingest.Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	again, err := Prepare(context.Background(), results[0], DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if again.Ticks >= snap.Ticks {
		t.Errorf("expected seeded run to settle faster: %d vs %d ticks", again.Ticks, snap.Ticks)
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	out, err := NewRegistry().Batch(context.Background(), sampleResults(), dir, "svg", DefaultOptions(), 2)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if filepath.Base(out[0].Path) != "01-summer-pv-40.svg" {
		t.Errorf("unexpected file name %s", out[0].Path)
	}
	for _, br := range out {
		if _, err := os.Stat(br.Path); err != nil {
			t.Errorf("expected %s to exist: %v", br.Path, err)
		}
	}
}

func TestBatchUnsupported(t *testing.T) {
	if _, err := NewRegistry().Batch(context.Background(), sampleResults(), t.TempDir(), "gif", DefaultOptions(), 1); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Summer / PV 40%": "summer-pv-40",
		"  ":              "result",
		"result 3":        "result-3",
	}
	for in, want := range tests {
		if got := slug(in); got != want {
			t.Errorf("slug(%q): expected %q, got %q", in, want, got)
		}
	}
}
