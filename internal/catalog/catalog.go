package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Utgast/cabletherm"
	"github.com/Utgast/cabletherm/pkg/models"
)

// Catalog resolves cable constructions by name and builds solver
// configurations from wire specs. It starts with the built-in constructions
// and can absorb additional ones from YAML files.
type Catalog struct {
	registry *cabletherm.Registry
	specs    map[string]models.CableSpec
}

// New builds a catalog over the given material registry, preloaded with the
// built-in constructions.
func New(registry *cabletherm.Registry) *Catalog {
	c := &Catalog{
		registry: registry,
		specs:    make(map[string]models.CableSpec),
	}
	for _, spec := range builtinSpecs {
		c.specs[spec.Name] = spec
	}
	return c
}

// Names returns all known construction names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.specs))
	for name := range c.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec returns the wire spec of a named construction.
func (c *Catalog) Spec(name string) (models.CableSpec, error) {
	spec, ok := c.specs[name]
	if !ok {
		return models.CableSpec{}, fmt.Errorf("catalog: unknown cable %q", name)
	}
	return spec, nil
}

// LoadFile reads cable constructions from a YAML file and registers them,
// replacing same-named entries. The file holds a list of cable specs.
func (c *Catalog) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var specs []models.CableSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return 0, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	for _, spec := range specs {
		if spec.Name == "" {
			return 0, fmt.Errorf("catalog: %s: cable without a name", path)
		}
		if _, err := c.Build(&spec); err != nil {
			return 0, fmt.Errorf("catalog: %s: cable %q: %w", path, spec.Name, err)
		}
		c.specs[spec.Name] = spec
	}
	return len(specs), nil
}

// Resolve returns the solver cable for a named construction.
func (c *Catalog) Resolve(name string) (*cabletherm.Cable, error) {
	spec, err := c.Spec(name)
	if err != nil {
		return nil, err
	}
	return c.Build(&spec)
}

// Build converts a wire spec into a validated solver cable. Millimeter
// radii and mm² areas become SI here, at the boundary, so the solver core
// only ever sees meters.
func (c *Catalog) Build(spec *models.CableSpec) (*cabletherm.Cable, error) {
	layers := make([]cabletherm.Layer, 0, len(spec.Layers))
	for _, l := range spec.Layers {
		m, err := c.registry.Lookup(l.Material)
		if err != nil {
			return nil, err
		}
		layers = append(layers, cabletherm.Layer{
			Name:        l.Name,
			InnerRadius: l.InnerRadius / 1000,
			OuterRadius: l.OuterRadius / 1000,
			Material:    m,
		})
	}

	soil, err := c.registry.Lookup(spec.Soil)
	if err != nil {
		return nil, err
	}

	system := cabletherm.SystemDC
	if spec.System == string(cabletherm.SystemAC) {
		system = cabletherm.SystemAC
	}

	cable := &cabletherm.Cable{
		Name:           spec.Name,
		Layers:         layers,
		ConductorArea:  spec.ConductorAreaMM * 1e-6,
		BurialDepth:    spec.BurialDepth,
		Soil:           soil,
		System:         system,
		Frequency:      spec.Frequency,
		PhaseCount:     spec.PhaseCount,
		PhaseAxial:     spec.PhaseSpacing,
		DielectricLoss: spec.DielectricLoss,
		SheathLoss:     spec.SheathLoss,
	}
	if err := cable.Validate(); err != nil {
		return nil, err
	}
	return cable, nil
}
