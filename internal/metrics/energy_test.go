package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/tradenet/internal/graph"
	"github.com/san-kum/tradenet/internal/layout"
)

func TestEnergyTraceRecordsTicks(t *testing.T) {
	tr := NewEnergyTrace(0)
	tr.OnTick(1, 4)
	tr.OnTick(2, 3)
	tr.OnTick(3, 3)

	if tr.Ticks() != 3 {
		t.Errorf("expected 3 ticks, got %d", tr.Ticks())
	}
	if tr.Value() != 3 {
		t.Errorf("expected last value 3, got %f", tr.Value())
	}
	if tr.Peak() != 4 {
		t.Errorf("expected peak 4, got %f", tr.Peak())
	}
	if !tr.Monotone() {
		t.Error("expected monotone trace")
	}

	tr.OnTick(4, 5)
	if tr.Monotone() {
		t.Error("expected rising sample to break monotonicity")
	}
}

func TestEnergyTraceCapacity(t *testing.T) {
	tr := NewEnergyTrace(2)
	for i := 1; i <= 5; i++ {
		tr.OnTick(i, float64(10-i))
	}
	s := tr.Samples()
	if len(s) != 2 || s[0] != 6 || s[1] != 5 {
		t.Errorf("expected [6 5], got %v", s)
	}
}

func TestEnergyTraceReset(t *testing.T) {
	tr := NewEnergyTrace(0)
	tr.OnTick(1, 2)
	tr.Reset()
	if tr.Value() != 0 || tr.Ticks() != 0 || len(tr.Samples()) != 0 {
		t.Error("expected empty trace after reset")
	}
}

func TestEnergyTraceWithEngine(t *testing.T) {
	g, _ := graph.Build([]string{"A", "B", "C"}, []graph.RawEdge{{"A", "B", 5}, {"B", "C", 2}}, nil)
	tr := NewEnergyTrace(0)
	e := layout.New(g, layout.DefaultParams(), layout.WithObserver(tr))
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if tr.Ticks() != e.Tick() {
		t.Errorf("expected %d ticks traced, got %d", e.Tick(), tr.Ticks())
	}
	if !tr.Monotone() {
		t.Error("engine energy trace should be non-increasing")
	}
}
