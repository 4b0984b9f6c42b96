package metrics

import "math"

// EnergyTrace records the kinetic energy of every layout tick. It satisfies
// layout.Observer.
type EnergyTrace struct {
	name     string
	capacity int
	samples  []float64
	ticks    int
	peak     float64
}

// NewEnergyTrace keeps at most capacity recent samples; capacity <= 0 keeps
// all of them.
func NewEnergyTrace(capacity int) *EnergyTrace {
	return &EnergyTrace{name: "kinetic_energy", capacity: capacity}
}

func (e *EnergyTrace) Name() string { return e.name }

func (e *EnergyTrace) OnTick(tick int, kineticEnergy float64) {
	e.ticks = tick
	e.peak = math.Max(e.peak, kineticEnergy)
	e.samples = append(e.samples, kineticEnergy)
	if e.capacity > 0 && len(e.samples) > e.capacity {
		e.samples = e.samples[len(e.samples)-e.capacity:]
	}
}

// Value is the most recent sample.
func (e *EnergyTrace) Value() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	return e.samples[len(e.samples)-1]
}

func (e *EnergyTrace) Peak() float64 { return e.peak }
func (e *EnergyTrace) Ticks() int    { return e.ticks }

// Samples returns a copy of the retained samples, oldest first.
func (e *EnergyTrace) Samples() []float64 {
	return append([]float64(nil), e.samples...)
}

// Monotone reports whether the retained samples never increase.
func (e *EnergyTrace) Monotone() bool {
	for i := 1; i < len(e.samples); i++ {
		if e.samples[i] > e.samples[i-1] {
			return false
		}
	}
	return true
}

func (e *EnergyTrace) Reset() {
	e.samples = e.samples[:0]
	e.ticks = 0
	e.peak = 0
}
