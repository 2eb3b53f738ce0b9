package catalog

import "github.com/Utgast/cabletherm/pkg/models"

// Built-in constructions. Geometry follows common single-core Cu/XLPE
// datasheet dimensions; the MV cable is the reference construction used
// throughout the solver tests.
var builtinSpecs = []models.CableSpec{
	{
		Name: "mv-240-cu-xlpe",
		Layers: []models.LayerSpec{
			{Name: "conductor", Material: "copper", InnerRadius: 0, OuterRadius: 8.7},
			{Name: "conductor screen", Material: "xlpe-semicon", InnerRadius: 8.7, OuterRadius: 9.4},
			{Name: "insulation", Material: "xlpe", InnerRadius: 9.4, OuterRadius: 14.9},
			{Name: "insulation screen", Material: "xlpe-semicon", InnerRadius: 14.9, OuterRadius: 15.6},
			{Name: "metallic screen", Material: "copper", InnerRadius: 15.6, OuterRadius: 17.1},
			{Name: "jacket", Material: "pe", InnerRadius: 17.1, OuterRadius: 19.6},
		},
		BurialDepth: 1.0,
		Soil:        "soil-moist",
		System:      "ac",
		Frequency:   50,
	},
	{
		Name: "hv-630-cu-xlpe",
		Layers: []models.LayerSpec{
			{Name: "conductor", Material: "copper", InnerRadius: 0, OuterRadius: 14.2},
			{Name: "conductor screen", Material: "xlpe-semicon", InnerRadius: 14.2, OuterRadius: 15.7},
			{Name: "insulation", Material: "xlpe", InnerRadius: 15.7, OuterRadius: 31.7},
			{Name: "insulation screen", Material: "xlpe-semicon", InnerRadius: 31.7, OuterRadius: 32.9},
			{Name: "metallic screen", Material: "copper", InnerRadius: 32.9, OuterRadius: 35.0},
			{Name: "jacket", Material: "pe", InnerRadius: 35.0, OuterRadius: 39.0},
		},
		ConductorAreaMM: 630,
		BurialDepth:     1.2,
		Soil:            "soil-moist",
		System:          "ac",
		Frequency:       50,
		DielectricLoss:  0.6,
	},
}
