package geom

import "github.com/samber/lo"

// ThicknessScale maps an edge weight linearly onto a stroke width, pinned to
// [MinWidth, MaxWidth] outside [MinWeight, MaxWeight].
type ThicknessScale struct {
	MinWeight, MaxWeight float64
	MinWidth, MaxWidth   float64
}

// DefaultThicknessScale returns the scale used by the route planner.
func DefaultThicknessScale() ThicknessScale {
	return ThicknessScale{
		MinWeight: 0,
		MaxWeight: 10,
		MinWidth:  1,
		MaxWidth:  6,
	}
}

// Width returns the stroke width for weight.
func (s ThicknessScale) Width(weight float64) float64 {
	minW, maxW := s.MinWidth, s.MaxWidth
	if maxW < minW {
		minW, maxW = maxW, minW
	}
	span := s.MaxWeight - s.MinWeight
	if span <= 0 {
		if weight < s.MinWeight {
			return minW
		}
		return maxW
	}
	f := lo.Clamp((weight-s.MinWeight)/span, 0, 1)
	return lo.Clamp(minW+f*(maxW-minW), minW, maxW)
}

// Gauge is a value within a range, such as a node's progress.
type Gauge struct {
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Fraction returns Value normalised into [0,1]. An empty or inverted range
// reports 0.
func (g Gauge) Fraction() float64 {
	if g.Max <= g.Min {
		return 0
	}
	return lo.Clamp((g.Value-g.Min)/(g.Max-g.Min), 0, 1)
}

// Percent returns Fraction as a whole percentage.
func (g Gauge) Percent() int {
	return int(g.Fraction()*100 + 0.5)
}
