package cabletherm

// BoundaryTemp is the temperature at one layer boundary of a loaded cable.
type BoundaryTemp struct {
	Radius float64 // m
	Temp   float64 // °C
	Layer  string  // layer inside this boundary
}

// Profile is the radial steady-state temperature profile from the conductor
// surface out to ambient soil.
type Profile struct {
	Conductor  float64 // °C
	Boundaries []BoundaryTemp
}

// TemperatureProfile solves the cable at the given current and walks the
// heat flow outward, dropping W·R_layer across each shell. The final
// boundary sits at the soil equivalent radius at ambient temperature.
func (s *TempSolver) TemperatureProfile(c *Cable, current float64) (*Profile, error) {
	tr, err := s.Solve(c, current)
	if err != nil {
		return nil, err
	}
	stack := c.FullStack()
	res, err := ComputeThermalResistance(stack)
	if err != nil {
		return nil, err
	}

	p := &Profile{Conductor: tr.Temp, Boundaries: make([]BoundaryTemp, 0, len(stack))}
	temp := tr.Temp
	for i, l := range stack {
		temp -= tr.Losses * res.PerLayer[i].Resistance
		p.Boundaries = append(p.Boundaries, BoundaryTemp{Radius: l.OuterRadius, Temp: temp, Layer: l.Name})
	}
	return p, nil
}
