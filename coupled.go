package cabletherm

import (
	"fmt"
	"math"
)

// Gauss-Seidel parameters for the coupled multi-cable solve.
const (
	CoupledTolerance = 0.1 // °C, max per-cable change per round
	MaxCoupledRounds = 20
)

// GroupCable pairs a cable with its trench position and load.
type GroupCable struct {
	Cable    *Cable
	Position Position
	Current  float64 // A
}

// CableGroup is a set of loaded cables sharing one trench cross-section.
// Burial depth and soil are taken from the group, overriding the values on
// the member cables' installations for the mutual terms.
type CableGroup struct {
	Cables      []GroupCable
	BurialDepth float64
	Soil        Material
	Ambient     float64 // °C
}

// CableTemp is the converged state of one cable in a group. Rounds is the
// last Gauss-Seidel round in which this cable still moved by more than the
// tolerance; cables that settle early report fewer rounds.
type CableTemp struct {
	Temp   float64 // °C
	Losses float64 // W/m at the final temperature
	Rounds int
}

// GroupResult reports a converged coupled solve, one entry per cable in the
// group's order.
type GroupResult struct {
	Cables []CableTemp
}

// MaxTemp returns the hottest conductor temperature in the group.
func (r *GroupResult) MaxTemp() float64 {
	max := math.Inf(-1)
	for _, c := range r.Cables {
		if c.Temp > max {
			max = c.Temp
		}
	}
	return max
}

// Rounds returns the number of sweeps the slowest cable needed.
func (r *GroupResult) Rounds() int {
	rounds := 0
	for _, c := range r.Cables {
		if c.Rounds > rounds {
			rounds = c.Rounds
		}
	}
	return rounds
}

// CoupledSolver resolves mutual heating in a cable group by Gauss-Seidel
// sweeps: each cable is solved against an effective ambient raised by its
// neighbours' current losses, and updated losses take effect within the
// same round. Symmetric layouts converge to symmetric temperatures because
// the fixed point of the sweep is unique, not because of sweep order.
type CoupledSolver struct {
	Group *CableGroup
}

// Solve iterates the group to a consistent temperature field. Identical
// isolated cables (all mutual terms zero) reproduce the single-cable solve
// exactly. A ConvergenceError is returned if the sweeps do not settle
// within MaxCoupledRounds; no partial field is reported.
func (s *CoupledSolver) Solve() (*GroupResult, error) {
	g := s.Group
	n := len(g.Cables)
	if n == 0 {
		return nil, &GeometryError{Msg: "empty cable group"}
	}
	for i, gc := range g.Cables {
		if gc.Cable == nil {
			return nil, &GeometryError{Msg: fmt.Sprintf("group cable %d: nil cable", i)}
		}
	}

	positions := make([]Position, n)
	for i, gc := range g.Cables {
		positions[i] = gc.Position
	}
	coupling, err := CouplingMatrix(g.Soil, g.BurialDepth, positions)
	if err != nil {
		return nil, err
	}

	res := &GroupResult{Cables: make([]CableTemp, n)}
	for i, gc := range g.Cables {
		tr, err := (&TempSolver{Ambient: g.Ambient}).Solve(gc.Cable, gc.Current)
		if err != nil {
			return nil, err
		}
		res.Cables[i] = CableTemp{Temp: tr.Temp, Losses: gc.Cable.Losses(gc.Current, tr.Temp)}
	}

	var maxDelta float64
	for round := 1; round <= MaxCoupledRounds; round++ {
		maxDelta = 0
		for i, gc := range g.Cables {
			rise := 0.0
			for j := range g.Cables {
				if j != i {
					rise += res.Cables[j].Losses * coupling.At(i, j)
				}
			}
			tr, err := (&TempSolver{Ambient: g.Ambient + rise}).Solve(gc.Cable, gc.Current)
			if err != nil {
				return nil, err
			}
			delta := math.Abs(tr.Temp - res.Cables[i].Temp)
			if delta > maxDelta {
				maxDelta = delta
			}
			if delta >= CoupledTolerance {
				res.Cables[i].Rounds = round
			}
			res.Cables[i].Temp = tr.Temp
			res.Cables[i].Losses = gc.Cable.Losses(gc.Current, tr.Temp)
		}
		if maxDelta < CoupledTolerance {
			return res, nil
		}
	}
	return nil, &ConvergenceError{Op: "coupled group", Iterations: MaxCoupledRounds, LastDelta: maxDelta}
}
