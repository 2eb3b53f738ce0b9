package cabletherm

import (
	"errors"
	"math"
)

// Bisection parameters for the ampacity inversion.
const (
	AmpacityTempTolerance    = 0.05 // °C
	AmpacityCurrentTolerance = 0.01 // A
	MaxAmpacityProbes        = 100
)

// AmpacityResult reports the current that drives the conductor to its
// temperature limit.
type AmpacityResult struct {
	Current float64 // A
	Temp    float64 // °C at that current
	Probes  int     // temperature solves performed
}

// AmpacitySolver inverts the temperature solve: it finds the largest current
// keeping the conductor at or below a temperature limit by bisection, after
// expanding an upper bracket geometrically from an initial guess.
type AmpacitySolver struct {
	Temp TempSolver

	// InitialGuess seeds the bracket expansion. Zero defaults to 100 A.
	InitialGuess float64

	// UpperBound, when positive, caps the search instead of expanding the
	// bracket. Use it when the feasible current range is known up front.
	UpperBound float64
}

// Solve returns the ampacity against the given conductor temperature limit.
// If the limit is already exceeded at zero current (ambient plus fixed
// losses above the limit) the result is zero amps. A ConvergenceError is
// returned when the probe budget is exhausted before the bracket closes.
func (s *AmpacitySolver) Solve(c *Cable, maxTemp float64) (*AmpacityResult, error) {
	res := &AmpacityResult{}

	// A probe past the thermal-runaway current makes the fixed point
	// diverge. That current is above any finite limit, so a convergence
	// failure counts as "too hot" instead of aborting the inversion.
	tempAt := func(current float64) (float64, error) {
		res.Probes++
		tr, err := s.Temp.Solve(c, current)
		var ce *ConvergenceError
		if errors.As(err, &ce) {
			return math.Inf(1), nil
		}
		if err != nil {
			return 0, err
		}
		return tr.Temp, nil
	}

	t0, err := tempAt(0)
	if err != nil {
		return nil, err
	}
	res.Temp = t0
	if t0 >= maxTemp {
		return res, nil
	}

	lo := 0.0
	hi := s.UpperBound
	if hi <= 0 {
		// Expand the upper bracket until the limit is exceeded.
		hi = s.InitialGuess
		if hi <= 0 {
			hi = 100
		}
		for {
			t, err := tempAt(hi)
			if err != nil {
				return nil, err
			}
			if t > maxTemp {
				break
			}
			lo, hi = hi, hi*2
			res.Current, res.Temp = lo, t
			if res.Probes >= MaxAmpacityProbes {
				return nil, &ConvergenceError{Op: "ampacity bracket", Iterations: res.Probes, LastDelta: maxTemp - t}
			}
		}
	}

	for hi-lo > AmpacityCurrentTolerance {
		if res.Probes >= MaxAmpacityProbes {
			return nil, &ConvergenceError{Op: "ampacity bisection", Iterations: res.Probes, LastDelta: hi - lo}
		}
		mid := (lo + hi) / 2
		t, err := tempAt(mid)
		if err != nil {
			return nil, err
		}
		if t > maxTemp {
			hi = mid
		} else {
			lo = mid
			res.Current, res.Temp = mid, t
			if maxTemp-t < AmpacityTempTolerance {
				break
			}
		}
	}
	return res, nil
}
