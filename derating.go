package cabletherm

import (
	"errors"
	"math"
)

// DeratingResult reports how much a trench layout reduces the usable current
// of each cable relative to the same cable laid alone.
type DeratingResult struct {
	IsolatedAmpacity float64 // A
	GroupAmpacity    float64 // A per cable
	Factor           float64 // group / isolated, in (0, 1]
}

// GroupAmpacity finds the largest per-cable current keeping every conductor
// in the group at or below the limit, with all cables loaded equally. The
// inversion is the same bracket-and-bisect scheme as the single-cable
// ampacity, wrapped around the coupled solve.
func GroupAmpacity(group *CableGroup, maxTemp float64) (float64, error) {
	probes := 0
	tempAt := func(current float64) (float64, error) {
		probes++
		g := *group
		g.Cables = make([]GroupCable, len(group.Cables))
		copy(g.Cables, group.Cables)
		for i := range g.Cables {
			g.Cables[i].Current = current
		}
		res, err := (&CoupledSolver{Group: &g}).Solve()
		var ce *ConvergenceError
		if errors.As(err, &ce) {
			// Past runaway; hotter than any limit.
			return math.Inf(1), nil
		}
		if err != nil {
			return 0, err
		}
		return res.MaxTemp(), nil
	}

	t0, err := tempAt(0)
	if err != nil {
		return 0, err
	}
	if t0 >= maxTemp {
		return 0, nil
	}

	lo, hi := 0.0, 100.0
	for {
		t, err := tempAt(hi)
		if err != nil {
			return 0, err
		}
		if t > maxTemp {
			break
		}
		lo, hi = hi, hi*2
		if probes >= MaxAmpacityProbes {
			return 0, &ConvergenceError{Op: "group ampacity bracket", Iterations: probes, LastDelta: maxTemp - t}
		}
	}

	for hi-lo > AmpacityCurrentTolerance {
		if probes >= MaxAmpacityProbes {
			return 0, &ConvergenceError{Op: "group ampacity bisection", Iterations: probes, LastDelta: hi - lo}
		}
		mid := (lo + hi) / 2
		t, err := tempAt(mid)
		if err != nil {
			return 0, err
		}
		if t > maxTemp {
			hi = mid
		} else {
			lo = mid
			if maxTemp-t < AmpacityTempTolerance {
				break
			}
		}
	}
	return lo, nil
}

// DeratingFactor compares the group ampacity of the hottest cable in a
// layout against the isolated ampacity of the first cable in the group.
// Mutual heating can only remove capacity, so the factor never exceeds 1.
func DeratingFactor(group *CableGroup, maxTemp float64) (*DeratingResult, error) {
	if len(group.Cables) == 0 {
		return nil, &GeometryError{Msg: "empty cable group"}
	}

	iso, err := (&AmpacitySolver{Temp: TempSolver{Ambient: group.Ambient}}).Solve(group.Cables[0].Cable, maxTemp)
	if err != nil {
		return nil, err
	}
	if iso.Current == 0 {
		return &DeratingResult{}, nil
	}

	grp, err := GroupAmpacity(group, maxTemp)
	if err != nil {
		return nil, err
	}

	return &DeratingResult{
		IsolatedAmpacity: iso.Current,
		GroupAmpacity:    grp,
		Factor:           grp / iso.Current,
	}, nil
}
