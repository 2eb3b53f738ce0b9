package cabletherm

import (
	"math"
	"testing"
)

// mvCable builds a 240 mm² copper MV cable with XLPE insulation, copper
// screen and PE jacket, buried at 1 m in moist soil. Radii in mm converted
// here to meters.
func mvCable(t *testing.T) *Cable {
	t.Helper()
	reg := DefaultRegistry()
	mm := func(v float64) float64 { return v / 1000 }
	layer := func(name, material string, inner, outer float64) Layer {
		m, err := reg.Lookup(material)
		if err != nil {
			t.Fatalf("lookup %s: %v", material, err)
		}
		return Layer{Name: name, InnerRadius: mm(inner), OuterRadius: mm(outer), Material: m}
	}
	soil, err := reg.Lookup("soil-moist")
	if err != nil {
		t.Fatalf("lookup soil: %v", err)
	}
	return &Cable{
		Name: "mv-240-cu",
		Layers: []Layer{
			layer("conductor", "copper", 0, 8.7),
			layer("conductor screen", "xlpe-semicon", 8.7, 9.4),
			layer("insulation", "xlpe", 9.4, 14.9),
			layer("insulation screen", "xlpe-semicon", 14.9, 15.6),
			layer("metallic screen", "copper", 15.6, 17.1),
			layer("jacket", "pe", 17.1, 19.6),
		},
		BurialDepth: 1.0,
		Soil:        soil,
		System:      SystemDC,
	}
}

func near(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %g, want %g ± %g", name, got, want, tol)
	}
}
