package cabletherm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SpacingSamples is the number of spacings evaluated per scan pass.
const SpacingSamples = 20

// SpacingOptimizer finds the uniform axis-to-axis spacing for a row of
// identical equally-loaded cables that maximises the thermal margin to the
// conductor limit. The search is a deterministic coarse scan followed by one
// refinement pass around the best coarse sample; the margin is monotone
// enough in spacing that gradient methods buy nothing here.
type SpacingOptimizer struct {
	Cable   *Cable
	Count   int
	Current float64 // A per cable

	BurialDepth float64
	Soil        Material
	Ambient     float64 // °C
	MaxTemp     float64 // °C conductor limit
}

// SpacingSample is one evaluated layout in the scan trace.
type SpacingSample struct {
	Spacing  float64 // m
	MaxTemp  float64 // °C
	Feasible bool
}

// SpacingResult reports the optimisation outcome together with the full
// scan trace, so a rating decision can be audited sample by sample.
type SpacingResult struct {
	Spacing float64 // m
	MaxTemp float64 // °C, hottest cable at that spacing
	Margin  float64 // K below the limit
	Samples []SpacingSample
}

// solveAt builds the row at one spacing and returns the hottest conductor.
func (o *SpacingOptimizer) solveAt(spacing float64) (float64, error) {
	group := &CableGroup{
		Cables:      make([]GroupCable, o.Count),
		BurialDepth: o.BurialDepth,
		Soil:        o.Soil,
		Ambient:     o.Ambient,
	}
	for i := range group.Cables {
		group.Cables[i] = GroupCable{
			Cable:    o.Cable,
			Position: Position{X: float64(i) * spacing},
			Current:  o.Current,
		}
	}
	res, err := (&CoupledSolver{Group: group}).Solve()
	var ce *ConvergenceError
	if errors.As(err, &ce) {
		// Runaway at this spacing; infeasible, not an abort.
		return math.Inf(1), nil
	}
	if err != nil {
		return 0, err
	}
	return res.MaxTemp(), nil
}

// scan evaluates SpacingSamples spacings from lo inclusive to hi exclusive
// and returns the feasible spacing with the lowest peak temperature.
func (o *SpacingOptimizer) scan(lo, hi float64, res *SpacingResult) (bestSpacing, bestTemp float64, found bool, err error) {
	step := (hi - lo) / SpacingSamples
	samples := floats.Span(make([]float64, SpacingSamples), lo, hi-step)
	for _, s := range samples {
		if s <= 0 {
			continue
		}
		t, err := o.solveAt(s)
		if err != nil {
			return 0, 0, false, err
		}
		res.Samples = append(res.Samples, SpacingSample{Spacing: s, MaxTemp: t, Feasible: t <= o.MaxTemp})
		if t <= o.MaxTemp && (!found || t < bestTemp) {
			bestSpacing, bestTemp, found = s, t, true
		}
	}
	return bestSpacing, bestTemp, found, nil
}

// Solve searches the spacing range [minSpacing, maxSpacing). When no sampled
// spacing keeps the hottest conductor at or below the limit the search fails
// with NoFeasibleSpacingError rather than returning the least-bad layout.
func (o *SpacingOptimizer) Solve(minSpacing, maxSpacing float64) (*SpacingResult, error) {
	if minSpacing <= 0 || maxSpacing <= minSpacing {
		return nil, &GeometryError{Msg: "spacing range must be positive and increasing"}
	}
	if o.Count < 2 {
		return nil, &GeometryError{Msg: "spacing optimisation needs at least two cables"}
	}

	res := &SpacingResult{}
	coarseStep := (maxSpacing - minSpacing) / SpacingSamples

	spacing, temp, found, err := o.scan(minSpacing, maxSpacing, res)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NoFeasibleSpacingError{MinSpacing: minSpacing, MaxSpacing: maxSpacing, MaxTemp: o.MaxTemp}
	}

	// Refine one step either side of the coarse optimum, staying in range.
	lo := spacing - coarseStep
	if lo < minSpacing {
		lo = minSpacing
	}
	hi := spacing + coarseStep
	if hi > maxSpacing {
		hi = maxSpacing
	}
	if fs, ft, ok, err := o.scan(lo, hi, res); err != nil {
		return nil, err
	} else if ok && ft < temp {
		spacing, temp = fs, ft
	}

	res.Spacing = spacing
	res.MaxTemp = temp
	res.Margin = o.MaxTemp - temp
	return res, nil
}
