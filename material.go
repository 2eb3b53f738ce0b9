package cabletherm

import "sort"

// Material holds the electrical and thermal properties of one cable or
// backfill material. Values are SI: resistivity in Ω·m at 20 °C, temperature
// coefficient in 1/K, thermal conductivity in W/(m·K). Density and specific
// heat are carried for capacity calculations and reporting; the steady-state
// solvers do not use them. A Material is never mutated after registry load.
type Material struct {
	Name                string
	Resistivity         float64 // Ω·m at 20 °C, 0 for non-conductors
	TempCoefficient     float64 // 1/K, 0 for non-conductors
	ThermalConductivity float64 // W/(m·K)
	Density             float64 // kg/m³
	SpecificHeat        float64 // J/(kg·K)
	MaxTemp             float64 // °C continuous rating, 0 if not applicable
}

// Conductive reports whether the material can carry current.
func (m Material) Conductive() bool {
	return m.Resistivity > 0
}

// Registry is an immutable material catalog. Construct it once with
// NewRegistry (or take DefaultRegistry) and pass it to whatever builds
// cable configurations; there is no mutation after construction.
type Registry struct {
	materials map[string]Material
}

// NewRegistry builds a registry from the given materials. Non-positive
// thermal conductivity is rejected up front so the solvers never see it.
func NewRegistry(materials []Material) (*Registry, error) {
	r := &Registry{materials: make(map[string]Material, len(materials))}
	for _, m := range materials {
		if m.ThermalConductivity <= 0 {
			return nil, &MaterialError{Material: m.Name, Msg: "thermal conductivity must be positive"}
		}
		if m.Resistivity < 0 {
			return nil, &MaterialError{Material: m.Name, Msg: "resistivity must not be negative"}
		}
		r.materials[m.Name] = m
	}
	return r, nil
}

// Lookup returns the material by name.
func (r *Registry) Lookup(name string) (Material, error) {
	m, ok := r.materials[name]
	if !ok {
		return Material{}, &MaterialError{Material: name, Msg: "not in registry"}
	}
	return m, nil
}

// Names returns all registered material names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.materials))
	for name := range r.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IEC 60287 material data. Conductor resistivities and temperature
// coefficients per IEC 60287-1-1 Table 1, insulation conductivities per
// IEC 60287-2-1 Table 2.
var defaultMaterials = []Material{
	{Name: "copper", Resistivity: 1.75e-8, TempCoefficient: 0.00393, ThermalConductivity: 380, Density: 8900, SpecificHeat: 380},
	{Name: "aluminum", Resistivity: 2.83e-8, TempCoefficient: 0.00403, ThermalConductivity: 230, Density: 2700, SpecificHeat: 880},
	{Name: "xlpe", ThermalConductivity: 0.286, Density: 920, SpecificHeat: 2400, MaxTemp: 90},
	{Name: "xlpe-semicon", ThermalConductivity: 0.286, Density: 920, SpecificHeat: 2400, MaxTemp: 90},
	{Name: "epr", ThermalConductivity: 0.4, Density: 1100, SpecificHeat: 2000, MaxTemp: 90},
	{Name: "pvc", ThermalConductivity: 0.16, Density: 1400, SpecificHeat: 1000, MaxTemp: 70},
	{Name: "pe", ThermalConductivity: 0.4, Density: 950, SpecificHeat: 2300},
	{Name: "lead", ThermalConductivity: 35, Density: 11340, SpecificHeat: 130},
	{Name: "steel", ThermalConductivity: 50, Density: 7850, SpecificHeat: 460},
	{Name: "soil-moist", ThermalConductivity: 1.0, Density: 1800, SpecificHeat: 1000},
	{Name: "soil-dry", ThermalConductivity: 0.5, Density: 1600, SpecificHeat: 1000},
	{Name: "sand-moist", ThermalConductivity: 1.5, Density: 1700, SpecificHeat: 1000},
	{Name: "air", ThermalConductivity: 0.026, Density: 1.2, SpecificHeat: 1000},
}

var defaultRegistry *Registry

func init() {
	r, err := NewRegistry(defaultMaterials)
	if err != nil {
		panic(err)
	}
	defaultRegistry = r
}

// DefaultRegistry returns the built-in IEC 60287 material catalog. The
// registry is read-only and shared process-wide.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
