package cabletherm

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Fixed-point iteration parameters for the conductor temperature solve.
const (
	TempTolerance = 0.01 // °C
	MaxTempIters  = 50
)

// TempSolver computes the steady-state conductor temperature of a single
// cable by fixed-point iteration on θ = θ_amb + W(θ)·R_th. The electrothermal
// feedback (resistance rising with temperature) is what makes the problem
// implicit; for physical cables the loop is a contraction and converges in
// a handful of iterations.
type TempSolver struct {
	Ambient float64 // °C

	// Damping in (0, 1] scales each update. 1 is the plain fixed point;
	// smaller values trade iterations for robustness near thermal runaway.
	Damping float64

	// ExtraResistance is added to the cable's own thermal resistance, used
	// by the coupled solver to inject mutual-heating terms.
	ExtraResistance float64

	// Verbose enables per-iteration trace logging.
	Verbose bool
}

// TempResult reports a converged conductor temperature solve.
type TempResult struct {
	Temp              float64 // °C
	Iterations        int
	ThermalResistance float64 // K·m/W, cable path only
	Resistance        float64 // Ω/m at the final temperature, AC corrected
	Losses            float64 // W/m at the final temperature
	Delta             float64 // last update magnitude, °C
}

// Solve returns the steady-state conductor temperature at the given current.
// Zero current with no fixed losses returns ambient without iterating. A
// ConvergenceError is returned when the loop fails to settle within
// MaxTempIters; no partial temperature is reported.
func (s *TempSolver) Solve(c *Cable, current float64) (*TempResult, error) {
	tr, err := c.ThermalResistance()
	if err != nil {
		return nil, err
	}
	rth := tr.Total + s.ExtraResistance

	res := &TempResult{Temp: s.Ambient, ThermalResistance: tr.Total}
	if current == 0 && c.DielectricLoss == 0 && c.SheathLoss == 0 {
		res.Resistance = c.ResistanceAt(s.Ambient) * c.ACResistanceFactor()
		return res, nil
	}

	damping := s.Damping
	if damping <= 0 || damping > 1 {
		damping = 1
	}

	temp := s.Ambient
	for i := 1; i <= MaxTempIters; i++ {
		next := s.Ambient + c.Losses(current, temp)*rth
		delta := next - temp
		temp += damping * delta
		res.Iterations = i
		res.Delta = math.Abs(delta)
		if s.Verbose {
			log.Printf("iter: %d temp: %.4f delta: %.4f", i, temp, delta)
		}
		if res.Delta < TempTolerance {
			res.Temp = temp
			res.Resistance = c.ResistanceAt(temp) * c.ACResistanceFactor()
			res.Losses = c.Losses(current, temp)
			return res, nil
		}
	}
	return nil, &ConvergenceError{Op: "conductor temperature", Iterations: MaxTempIters, LastDelta: res.Delta}
}
