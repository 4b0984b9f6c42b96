package render

import "math"

// StrokeMapping turns an edge weight into a stroke width:
//
//	min(Max, Base + Scale*log(1+weight))
//
// The mapping is non-decreasing in weight for Scale >= 0.
type StrokeMapping struct {
	Base  float64
	Scale float64
	Max   float64
}

func DefaultStroke() StrokeMapping {
	return StrokeMapping{Base: 1, Scale: 1.5, Max: 8}
}

func (m StrokeMapping) Width(weight float64) float64 {
	if math.IsNaN(weight) || weight < 0 {
		weight = 0
	}
	w := m.Base + math.Max(m.Scale, 0)*math.Log1p(weight)
	if math.IsInf(w, 1) {
		w = m.Max
	}
	return math.Min(m.Max, w)
}
