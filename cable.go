package cabletherm

import (
	"fmt"
	"math"
)

// SystemType selects the conduction regime for loss calculation.
type SystemType string

const (
	SystemDC SystemType = "dc"
	SystemAC SystemType = "ac"
)

// Cable is a complete buried-cable description ready to solve. Layers run
// from the conductor (inner radius 0) outward, not including soil; the soil
// closure is derived from the installation.
type Cable struct {
	Name   string
	Layers []Layer

	// Conductor cross-section in m². When zero it is derived from the
	// conductor layer outer radius assuming a solid circular section.
	ConductorArea float64

	// Installation.
	BurialDepth float64 // m, to cable axis
	Soil        Material

	// Electrical system.
	System      SystemType
	Frequency   float64 // Hz, AC only
	PhaseCount  int     // adjacent phase conductors for proximity, AC only
	PhaseAxial  float64 // axial spacing between phases in m, AC only

	// Fixed non-joule losses in W/m added to the loss budget. These are
	// treated as temperature independent.
	DielectricLoss float64
	SheathLoss     float64
}

// conductorLayer returns the innermost layer. Validity of the stack is
// checked by Validate; callers run that first.
func (c *Cable) conductorLayer() Layer {
	return c.Layers[0]
}

// EffectiveConductorArea returns the cross-section used for DC resistance,
// deriving a solid circular section when none was given.
func (c *Cable) EffectiveConductorArea() float64 {
	if c.ConductorArea > 0 {
		return c.ConductorArea
	}
	r := c.conductorLayer().OuterRadius
	return math.Pi * r * r
}

// OuterRadius returns the overall cable radius excluding soil.
func (c *Cable) OuterRadius() float64 {
	return c.Layers[len(c.Layers)-1].OuterRadius
}

// Validate checks the cable geometry and installation. It reports the first
// problem found as a GeometryError or MaterialError.
func (c *Cable) Validate() error {
	if len(c.Layers) == 0 {
		return &GeometryError{Msg: fmt.Sprintf("cable %q: no layers", c.Name)}
	}
	if c.Layers[0].InnerRadius != 0 {
		return &GeometryError{Msg: fmt.Sprintf("cable %q: conductor layer must start at radius 0", c.Name)}
	}
	if !c.Layers[0].Material.Conductive() {
		return &MaterialError{Material: c.Layers[0].Material.Name, Msg: "conductor layer material has no electrical resistivity"}
	}
	if c.ConductorArea < 0 {
		return &GeometryError{Msg: fmt.Sprintf("cable %q: conductor area %g must not be negative", c.Name, c.ConductorArea)}
	}
	if c.BurialDepth <= c.OuterRadius() {
		return &GeometryError{Msg: fmt.Sprintf("cable %q: burial depth %g must exceed cable radius %g",
			c.Name, c.BurialDepth, c.OuterRadius())}
	}
	if c.Soil.ThermalConductivity <= 0 {
		return &MaterialError{Material: c.Soil.Name, Msg: "soil thermal conductivity must be positive"}
	}
	if c.System == SystemAC && c.Frequency <= 0 {
		return &GeometryError{Msg: fmt.Sprintf("cable %q: AC system requires a positive frequency", c.Name)}
	}
	if _, err := ComputeThermalResistance(c.Layers); err != nil {
		return err
	}
	return nil
}

// FullStack returns the cable layers with the soil closure appended.
func (c *Cable) FullStack() []Layer {
	stack := make([]Layer, len(c.Layers), len(c.Layers)+1)
	copy(stack, c.Layers)
	return append(stack, SoilLayer(c.OuterRadius(), c.BurialDepth, c.Soil))
}

// ThermalResistance computes the conductor-to-ambient thermal resistance of
// the cable including the soil path.
func (c *Cable) ThermalResistance() (*ThermalResistanceResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return ComputeThermalResistance(c.FullStack())
}
