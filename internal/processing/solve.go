package processing

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Utgast/cabletherm"
	"github.com/Utgast/cabletherm/internal/catalog"
	"github.com/Utgast/cabletherm/pkg/config"
	"github.com/Utgast/cabletherm/pkg/models"
)

// Processor executes solve requests against the thermal solvers. It is
// stateless apart from the catalog and safe for concurrent use from the
// worker pool.
type Processor struct {
	catalog *catalog.Catalog
	cfg     *config.Config
}

// New creates a processor over the given catalog and solver defaults.
func New(cat *catalog.Catalog, cfg *config.Config) *Processor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Processor{catalog: cat, cfg: cfg}
}

// Process runs one solve request to completion. Solver errors do not
// escape; they land in the result's Error field so the caller always gets
// something to store and report.
func (p *Processor) Process(requestID string, req models.SolveRequest) models.SolveResult {
	start := time.Now()
	res := models.SolveResult{
		RequestID: requestID,
		Mode:      req.Mode,
		Time:      start.UTC(),
	}

	if err := p.dispatch(req, &res); err != nil {
		res.Error = err.Error()
		log.Printf("solve %s (%s) failed: %v", requestID, req.Mode, err)
	} else {
		res.Success = true
		if !p.cfg.Quiet {
			log.Printf("solve %s (%s) done in %v", requestID, req.Mode, time.Since(start))
		}
	}
	res.ProcessingTime = time.Since(start)
	return res
}

func (p *Processor) dispatch(req models.SolveRequest, res *models.SolveResult) error {
	switch req.Mode {
	case "temperature", "profile", "ampacity":
		cable, err := p.resolveCable(req)
		if err != nil {
			return err
		}
		res.Cable = cable.Name
		return p.solveSingle(req, cable, res)
	case "coupled", "derating":
		return p.solveGroup(req, res)
	case "spacing":
		return p.solveSpacing(req, res)
	default:
		return fmt.Errorf("unknown solve mode %q", req.Mode)
	}
}

// resolveCable picks the request's inline cable spec or a catalog entry.
func (p *Processor) resolveCable(req models.SolveRequest) (*cabletherm.Cable, error) {
	if req.Cable != nil {
		return p.catalog.Build(req.Cable)
	}
	if req.Catalog != "" {
		return p.catalog.Resolve(req.Catalog)
	}
	return nil, fmt.Errorf("request names no cable")
}

func (p *Processor) solveSingle(req models.SolveRequest, cable *cabletherm.Cable, res *models.SolveResult) error {
	solver := cabletherm.TempSolver{Ambient: p.ambient(req), Damping: p.cfg.Damping, Verbose: !p.cfg.Quiet}

	switch req.Mode {
	case "temperature":
		tr, err := solver.Solve(cable, req.Current)
		if err != nil {
			return err
		}
		res.Temperature = tr
	case "profile":
		profile, err := solver.TemperatureProfile(cable, req.Current)
		if err != nil {
			return err
		}
		res.Profile = profile
	case "ampacity":
		amp, err := (&cabletherm.AmpacitySolver{Temp: solver}).Solve(cable, p.maxTemp(req))
		if err != nil {
			return err
		}
		res.Ampacity = amp
	}
	return nil
}

func (p *Processor) solveGroup(req models.SolveRequest, res *models.SolveResult) error {
	group, err := p.buildGroup(req)
	if err != nil {
		return err
	}
	if len(group.Cables) > 0 {
		res.Cable = group.Cables[0].Cable.Name
	}

	switch req.Mode {
	case "coupled":
		out, err := (&cabletherm.CoupledSolver{Group: group}).Solve()
		if err != nil {
			return err
		}
		res.Coupled = out
	case "derating":
		out, err := cabletherm.DeratingFactor(group, p.maxTemp(req))
		if err != nil {
			return err
		}
		res.Derating = out
	}
	return nil
}

// buildGroup materialises the trench layout. Group members default to the
// request cable; burial depth and soil come from that cable's installation.
func (p *Processor) buildGroup(req models.SolveRequest) (*cabletherm.CableGroup, error) {
	if len(req.Group) == 0 {
		return nil, fmt.Errorf("%s mode needs a group layout", req.Mode)
	}

	group := &cabletherm.CableGroup{
		Cables:  make([]cabletherm.GroupCable, 0, len(req.Group)),
		Ambient: p.ambient(req),
	}
	for i, member := range req.Group {
		var cable *cabletherm.Cable
		var err error
		if member.Cable != "" {
			cable, err = p.catalog.Resolve(member.Cable)
		} else {
			cable, err = p.resolveCable(req)
		}
		if err != nil {
			return nil, fmt.Errorf("group member %d: %w", i, err)
		}
		group.Cables = append(group.Cables, cabletherm.GroupCable{
			Cable:    cable,
			Position: cabletherm.Position{X: member.X, Y: member.Y},
			Current:  member.Current,
		})
	}
	group.BurialDepth = group.Cables[0].Cable.BurialDepth
	group.Soil = group.Cables[0].Cable.Soil
	return group, nil
}

func (p *Processor) solveSpacing(req models.SolveRequest, res *models.SolveResult) error {
	cable, err := p.resolveCable(req)
	if err != nil {
		return err
	}
	res.Cable = cable.Name

	count := req.Count
	if count == 0 {
		count = 3
	}
	opt := &cabletherm.SpacingOptimizer{
		Cable:       cable,
		Count:       count,
		Current:     req.Current,
		BurialDepth: cable.BurialDepth,
		Soil:        cable.Soil,
		Ambient:     p.ambient(req),
		MaxTemp:     p.maxTemp(req),
	}
	out, err := opt.Solve(req.MinSpacing, req.MaxSpacing)
	if err != nil {
		return err
	}
	res.Spacing = out
	return nil
}

func (p *Processor) ambient(req models.SolveRequest) float64 {
	if req.Ambient != nil {
		return *req.Ambient
	}
	return p.cfg.Ambient
}

func (p *Processor) maxTemp(req models.SolveRequest) float64 {
	if req.MaxTemp != nil {
		return *req.MaxTemp
	}
	return p.cfg.MaxTemp
}
