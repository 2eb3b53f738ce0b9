package cabletherm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MutualResistance returns the thermal coupling between two buried cables at
// the given axis-to-axis separation, using the image-source approximation
// (ρ_soil / 2π) · ln(2L / d) with L the burial depth. The log turns negative
// once d exceeds 2L; physically the coupling has simply vanished at that
// distance, so the value is clamped at zero.
func MutualResistance(soil Material, burialDepth, separation float64) (float64, error) {
	if burialDepth <= 0 {
		return 0, &GeometryError{Msg: fmt.Sprintf("burial depth %g must be positive", burialDepth)}
	}
	if separation <= 0 {
		return 0, &GeometryError{Msg: fmt.Sprintf("cable separation %g must be positive", separation)}
	}
	if soil.ThermalConductivity <= 0 {
		return 0, &MaterialError{Material: soil.Name, Msg: "thermal conductivity must be positive"}
	}
	r := math.Log(2*burialDepth/separation) / (2 * math.Pi * soil.ThermalConductivity)
	if r < 0 {
		return 0, nil
	}
	return r, nil
}

// Position is a cable location in the trench cross-section, meters. X runs
// along the trench width; Y is the cable's own burial depth, positive down.
// Y of zero means the cable sits at the layout's common depth.
type Position struct {
	X float64
	Y float64
}

func (p Position) depth(common float64) float64 {
	if p.Y > 0 {
		return p.Y
	}
	return common
}

// CouplingMatrix returns the symmetric matrix of mutual thermal resistances
// for a trench layout. Each unordered pair is evaluated once with its
// Euclidean separation and the pair's mean burial depth. Diagonal entries
// are zero; self-heating is carried by each cable's own layer stack.
func CouplingMatrix(soil Material, burialDepth float64, positions []Position) (*mat.SymDense, error) {
	n := len(positions)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			di := positions[i].depth(burialDepth)
			dj := positions[j].depth(burialDepth)
			d := math.Hypot(positions[i].X-positions[j].X, di-dj)
			r, err := MutualResistance(soil, (di+dj)/2, d)
			if err != nil {
				return nil, err
			}
			m.SetSym(i, j, r)
		}
	}
	return m, nil
}
