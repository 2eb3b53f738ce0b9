package cabletherm

import (
	"fmt"
	"math"
)

// Layer is one concentric shell of the cable stack, conductor outward.
// Radii are in meters. The material is resolved by value at construction
// time so a layer stack is self-contained and immutable during a solve.
type Layer struct {
	Name        string
	InnerRadius float64 // m
	OuterRadius float64 // m
	Material    Material
}

// Thickness returns the radial thickness in meters.
func (l Layer) Thickness() float64 {
	return l.OuterRadius - l.InnerRadius
}

// SoilLayer builds the soil pseudo-layer closing a buried cable's stack.
// Its inner radius is the cable's overall outer radius and its outer radius
// is the equivalent external radius of the surrounding soil, taken equal to
// the burial depth (IEC 60287-2-1 equivalent-radius boundary condition).
func SoilLayer(cableOuterRadius, burialDepth float64, soil Material) Layer {
	return Layer{
		Name:        "soil",
		InnerRadius: cableOuterRadius,
		OuterRadius: burialDepth,
		Material:    soil,
	}
}

// LayerResistance is the thermal resistance of a single layer.
type LayerResistance struct {
	Index      int
	Name       string
	Resistance float64 // K·m/W
}

// ThermalResistanceResult holds per-layer and total thermal resistance for
// one layer stack. It is recomputed from geometry on every call and never
// cached across configurations.
type ThermalResistanceResult struct {
	PerLayer []LayerResistance
	Total    float64 // K·m/W
}

// ComputeThermalResistance evaluates the coaxial-cylinder conduction formula
// R = ln(r_o/r_i) / (2π·λ) per layer and sums the stack. A solid conductor
// layer (inner radius 0) is the heat source itself and contributes zero.
// Zero or negative thickness is a GeometryError, non-positive conductivity
// a MaterialError; there are no side effects.
func ComputeThermalResistance(layers []Layer) (*ThermalResistanceResult, error) {
	if len(layers) == 0 {
		return nil, &GeometryError{Msg: "empty layer stack"}
	}

	res := &ThermalResistanceResult{PerLayer: make([]LayerResistance, 0, len(layers))}
	for i, l := range layers {
		if l.InnerRadius < 0 {
			return nil, &GeometryError{Msg: fmt.Sprintf("layer %d (%s): negative inner radius %g", i, l.Name, l.InnerRadius)}
		}
		if l.OuterRadius <= l.InnerRadius {
			return nil, &GeometryError{Msg: fmt.Sprintf("layer %d (%s): outer radius %g not greater than inner radius %g",
				i, l.Name, l.OuterRadius, l.InnerRadius)}
		}
		if i > 0 && math.Abs(l.InnerRadius-layers[i-1].OuterRadius) > 1e-12 {
			return nil, &GeometryError{Msg: fmt.Sprintf("layer %d (%s): inner radius %g does not continue layer %d outer radius %g",
				i, l.Name, l.InnerRadius, i-1, layers[i-1].OuterRadius)}
		}
		if l.Material.ThermalConductivity <= 0 {
			return nil, &MaterialError{Material: l.Material.Name, Msg: "thermal conductivity must be positive"}
		}

		var r float64
		if l.InnerRadius == 0 {
			r = 0
		} else {
			r = math.Log(l.OuterRadius/l.InnerRadius) / (2 * math.Pi * l.Material.ThermalConductivity)
		}
		res.PerLayer = append(res.PerLayer, LayerResistance{Index: i, Name: l.Name, Resistance: r})
		res.Total += r
	}
	return res, nil
}
