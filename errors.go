package cabletherm

import "fmt"

// GeometryError reports physically invalid geometry: non-increasing layer
// radii, zero conductor area, coincident cable positions.
type GeometryError struct {
	Msg string
}

func (e *GeometryError) Error() string {
	return "cabletherm: invalid geometry: " + e.Msg
}

// MaterialError reports a material property that cannot enter the formulas,
// such as non-positive thermal conductivity or resistivity.
type MaterialError struct {
	Material string
	Msg      string
}

func (e *MaterialError) Error() string {
	if e.Material != "" {
		return fmt.Sprintf("cabletherm: material %q: %s", e.Material, e.Msg)
	}
	return "cabletherm: invalid material: " + e.Msg
}

// ConvergenceError reports that an iterative solve exhausted its iteration
// or probe budget before meeting tolerance. The partial state is discarded;
// callers must not treat the last iterate as a valid result.
type ConvergenceError struct {
	Op         string  // "temperature", "ampacity", "coupled", "derating"
	Iterations int     // iterations, probes or rounds spent
	LastDelta  float64 // residual at the point of giving up
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("cabletherm: %s solve did not converge after %d iterations (residual %g)",
		e.Op, e.Iterations, e.LastDelta)
}

// NoFeasibleSpacingError reports that no sampled spacing in the search range
// kept every cable at or below the temperature limit.
type NoFeasibleSpacingError struct {
	MinSpacing float64
	MaxSpacing float64
	MaxTemp    float64
}

func (e *NoFeasibleSpacingError) Error() string {
	return fmt.Sprintf("cabletherm: no spacing in [%g m, %g m] keeps all cables below %g °C",
		e.MinSpacing, e.MaxSpacing, e.MaxTemp)
}
