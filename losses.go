package cabletherm

import "math"

const (
	refTemp = 20.0 // °C, resistivity reference
	mu0     = 4e-7 * math.Pi
)

// ResistanceAt returns the conductor DC resistance per meter at the given
// temperature, R20·(1 + α·(θ − 20)).
func (c *Cable) ResistanceAt(temp float64) float64 {
	m := c.conductorLayer().Material
	r20 := m.Resistivity / c.EffectiveConductorArea()
	return r20 * (1 + m.TempCoefficient*(temp-refTemp))
}

// SkinFactor returns the AC skin-effect multiplier on DC resistance for a
// solid circular conductor. For DC systems it is 1. The low-ratio branch is
// the series expansion 1 + x⁴/48, the high-ratio branch the thick-conductor
// asymptote x/2·(1 + 1/(4x)), switched at x = 1 where the two agree within
// the model's accuracy.
func (c *Cable) SkinFactor() float64 {
	if c.System != SystemAC {
		return 1
	}
	m := c.conductorLayer().Material
	delta := math.Sqrt(m.Resistivity / (math.Pi * c.Frequency * mu0))
	x := c.conductorLayer().OuterRadius / delta
	if x < 1 {
		return 1 + math.Pow(x, 4)/48
	}
	return x / 2 * (1 + 0.25/x)
}

// ProximityFactor returns the AC proximity-effect multiplier for flat or
// trefoil phase groups. It is 1 for DC, single-conductor runs, or when the
// axial spacing is not set.
func (c *Cable) ProximityFactor() float64 {
	if c.System != SystemAC || c.PhaseCount < 2 || c.PhaseAxial <= 0 {
		return 1
	}
	r := c.conductorLayer().OuterRadius
	s := c.PhaseAxial
	if c.PhaseCount == 2 {
		return 1 + 1/(4*math.Pow(s/(2*r), 2))
	}
	return 1 + 0.312*math.Pow(2*r/s, 2)
}

// ACResistanceFactor is the combined skin and proximity multiplier. It is
// geometry-only and computed once per solve, not per iteration.
func (c *Cable) ACResistanceFactor() float64 {
	return c.SkinFactor() * c.ProximityFactor()
}

// Losses returns the total heat generation per meter at the given current
// and conductor temperature: joule losses with AC corrections plus the fixed
// dielectric and sheath contributions.
func (c *Cable) Losses(current, temp float64) float64 {
	joule := current * current * c.ResistanceAt(temp) * c.ACResistanceFactor()
	return joule + c.DielectricLoss + c.SheathLoss
}
