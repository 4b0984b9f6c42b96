package layout

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidParams = errors.New("layout: invalid parameters")

const (
	DefaultRepulsion       = 1.0
	DefaultAttraction      = 0.5
	DefaultCentering       = 0.05
	DefaultDamping         = 0.85
	DefaultTimestep        = 0.1
	DefaultMinDistance     = 0.05
	DefaultMaxDisplacement = 0.5
	DefaultEnergyThreshold = 1e-5
	DefaultMaxTicks        = 500
	DefaultRadiusScale     = 1.0
)

// Params are the physical constants of the force model.
type Params struct {
	Repulsion       float64
	Attraction      float64
	Centering       float64
	Damping         float64
	Timestep        float64
	MinDistance     float64
	MaxDisplacement float64
	EnergyThreshold float64
	MaxTicks        int
	RadiusScale     float64
}

func DefaultParams() Params {
	return Params{
		Repulsion:       DefaultRepulsion,
		Attraction:      DefaultAttraction,
		Centering:       DefaultCentering,
		Damping:         DefaultDamping,
		Timestep:        DefaultTimestep,
		MinDistance:     DefaultMinDistance,
		MaxDisplacement: DefaultMaxDisplacement,
		EnergyThreshold: DefaultEnergyThreshold,
		MaxTicks:        DefaultMaxTicks,
		RadiusScale:     DefaultRadiusScale,
	}
}

// Validate reports the first non-finite or out-of-range parameter.
func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"repulsion", p.Repulsion},
		{"attraction", p.Attraction},
		{"centering", p.Centering},
		{"damping", p.Damping},
		{"timestep", p.Timestep},
		{"min distance", p.MinDistance},
		{"max displacement", p.MaxDisplacement},
		{"energy threshold", p.EnergyThreshold},
		{"radius scale", p.RadiusScale},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidParams, f.name, f.v)
		}
	}
	switch {
	case p.Repulsion < 0:
		return fmt.Errorf("%w: repulsion must be non-negative, got %g", ErrInvalidParams, p.Repulsion)
	case p.Attraction < 0:
		return fmt.Errorf("%w: attraction must be non-negative, got %g", ErrInvalidParams, p.Attraction)
	case p.Centering < 0:
		return fmt.Errorf("%w: centering must be non-negative, got %g", ErrInvalidParams, p.Centering)
	case p.Damping <= 0 || p.Damping >= 1:
		return fmt.Errorf("%w: damping must be in (0, 1), got %g", ErrInvalidParams, p.Damping)
	case p.Timestep <= 0:
		return fmt.Errorf("%w: timestep must be positive, got %g", ErrInvalidParams, p.Timestep)
	case p.MinDistance <= 0:
		return fmt.Errorf("%w: min distance must be positive, got %g", ErrInvalidParams, p.MinDistance)
	case p.MaxDisplacement <= 0:
		return fmt.Errorf("%w: max displacement must be positive, got %g", ErrInvalidParams, p.MaxDisplacement)
	case p.EnergyThreshold <= 0:
		return fmt.Errorf("%w: energy threshold must be positive, got %g", ErrInvalidParams, p.EnergyThreshold)
	case p.MaxTicks <= 0:
		return fmt.Errorf("%w: max ticks must be positive, got %d", ErrInvalidParams, p.MaxTicks)
	case p.RadiusScale <= 0:
		return fmt.Errorf("%w: radius scale must be positive, got %g", ErrInvalidParams, p.RadiusScale)
	}
	return nil
}

// orDefault replaces an invalid parameter set so the engine never fails.
func (p Params) orDefault() Params {
	if p.Validate() != nil {
		return DefaultParams()
	}
	return p
}
