package cabletherm

import (
	"errors"
	"math/rand"
	"testing"
)

func TestTempSolver(t *testing.T) {
	t.Run("reference cable at 400 A", func(t *testing.T) {
		c := mvCable(t)
		res, err := (&TempSolver{Ambient: 20}).Solve(c, 400)
		if err != nil {
			t.Fatal(err)
		}
		near(t, "temp", res.Temp, 32.4, 0.2)
		if res.Iterations == 0 || res.Iterations >= MaxTempIters {
			t.Errorf("iterations = %d, want a small positive count", res.Iterations)
		}
	})

	t.Run("zero current returns ambient without iterating", func(t *testing.T) {
		c := mvCable(t)
		res, err := (&TempSolver{Ambient: 35}).Solve(c, 0)
		if err != nil {
			t.Fatal(err)
		}
		if res.Temp != 35 {
			t.Errorf("temp = %g, want ambient 35", res.Temp)
		}
		if res.Iterations != 0 {
			t.Errorf("iterations = %d, want 0", res.Iterations)
		}
	})

	t.Run("reports the hot resistance", func(t *testing.T) {
		c := mvCable(t)
		res, err := (&TempSolver{Ambient: 20}).Solve(c, 400)
		if err != nil {
			t.Fatal(err)
		}
		near(t, "resistance", res.Resistance, c.ResistanceAt(res.Temp), 1e-12)
		if res.Resistance <= c.ResistanceAt(20) {
			t.Errorf("hot resistance %g not above the 20 °C value %g", res.Resistance, c.ResistanceAt(20))
		}
		near(t, "loss consistency", res.Losses, 400*400*res.Resistance, 1e-9)
	})

	t.Run("zero current still reports the ambient resistance", func(t *testing.T) {
		c := mvCable(t)
		res, err := (&TempSolver{Ambient: 35}).Solve(c, 0)
		if err != nil {
			t.Fatal(err)
		}
		near(t, "resistance", res.Resistance, c.ResistanceAt(35), 1e-12)
	})

	t.Run("temperature rises monotonically with current", func(t *testing.T) {
		c := mvCable(t)
		s := &TempSolver{Ambient: 20}
		prev := 20.0
		for _, i := range []float64{100, 200, 300, 400, 500} {
			res, err := s.Solve(c, i)
			if err != nil {
				t.Fatalf("current %g: %v", i, err)
			}
			if res.Temp <= prev {
				t.Errorf("current %g: temp %g not above previous %g", i, res.Temp, prev)
			}
			prev = res.Temp
		}
	})

	t.Run("monotone in current across random constructions", func(t *testing.T) {
		reg := DefaultRegistry()
		rng := rand.New(rand.NewSource(1))
		insulations := []string{"xlpe", "pvc", "pe", "epr"}
		soils := []string{"soil-moist", "soil-dry"}
		copper, err := reg.Lookup("copper")
		if err != nil {
			t.Fatal(err)
		}

		for n := 0; n < 25; n++ {
			r := 0.005 + 0.010*rng.Float64()
			layers := []Layer{{Name: "conductor", OuterRadius: r, Material: copper}}
			for l, cnt := 0, 2+rng.Intn(3); l < cnt; l++ {
				name := insulations[rng.Intn(len(insulations))]
				m, err := reg.Lookup(name)
				if err != nil {
					t.Fatal(err)
				}
				next := r + 0.001 + 0.004*rng.Float64()
				layers = append(layers, Layer{Name: name, InnerRadius: r, OuterRadius: next, Material: m})
				r = next
			}
			soil, err := reg.Lookup(soils[rng.Intn(len(soils))])
			if err != nil {
				t.Fatal(err)
			}
			c := &Cable{
				Name:        "random",
				Layers:      layers,
				BurialDepth: 0.5 + 1.5*rng.Float64(),
				Soil:        soil,
				System:      SystemDC,
			}
			s := &TempSolver{Ambient: 10 + 20*rng.Float64()}

			prev := s.Ambient - TempTolerance
			for _, i := range []float64{0, 50, 100, 200, 300, 400} {
				res, err := s.Solve(c, i)
				if err != nil {
					t.Fatalf("construction %d at %g A: %v", n, i, err)
				}
				if res.Temp < prev-TempTolerance {
					t.Errorf("construction %d at %g A: temp %g below previous %g", n, i, res.Temp, prev)
				}
				prev = res.Temp
			}
		}
	})

	t.Run("ambient shifts the solution additively to first order", func(t *testing.T) {
		c := mvCable(t)
		cold, err := (&TempSolver{Ambient: 10}).Solve(c, 300)
		if err != nil {
			t.Fatal(err)
		}
		warm, err := (&TempSolver{Ambient: 30}).Solve(c, 300)
		if err != nil {
			t.Fatal(err)
		}
		rise := warm.Temp - cold.Temp
		// Slightly above 20 because resistance grows with temperature.
		if rise < 20 || rise > 22 {
			t.Errorf("ambient shift of 20 K moved the solution by %g K", rise)
		}
	})

	t.Run("damping converges to the same fixed point", func(t *testing.T) {
		c := mvCable(t)
		plain, err := (&TempSolver{Ambient: 20}).Solve(c, 400)
		if err != nil {
			t.Fatal(err)
		}
		damped, err := (&TempSolver{Ambient: 20, Damping: 0.5}).Solve(c, 400)
		if err != nil {
			t.Fatal(err)
		}
		near(t, "damped temp", damped.Temp, plain.Temp, 2*TempTolerance)
		if damped.Iterations <= plain.Iterations {
			t.Errorf("damped solve took %d iterations, plain %d", damped.Iterations, plain.Iterations)
		}
	})

	t.Run("fixed losses heat an unloaded cable", func(t *testing.T) {
		c := mvCable(t)
		c.DielectricLoss = 2.0
		res, err := (&TempSolver{Ambient: 20}).Solve(c, 0)
		if err != nil {
			t.Fatal(err)
		}
		if res.Temp <= 20 {
			t.Errorf("temp = %g, want above ambient with dielectric losses", res.Temp)
		}
		near(t, "temp", res.Temp, 20+2.0*res.ThermalResistance, 0.1)
	})

	t.Run("invalid geometry surfaces unchanged", func(t *testing.T) {
		c := mvCable(t)
		c.Layers[2].OuterRadius = c.Layers[2].InnerRadius
		_, err := (&TempSolver{Ambient: 20}).Solve(c, 100)
		var ge *GeometryError
		if !errors.As(err, &ge) {
			t.Fatalf("want GeometryError, got %v", err)
		}
	})
}

func TestTemperatureProfile(t *testing.T) {
	c := mvCable(t)
	s := &TempSolver{Ambient: 20}
	p, err := s.TemperatureProfile(c, 400)
	if err != nil {
		t.Fatal(err)
	}

	prev := p.Conductor
	for _, b := range p.Boundaries {
		if b.Temp > prev+1e-9 {
			t.Errorf("boundary %s at %g m: temp %g above inner %g", b.Layer, b.Radius, b.Temp, prev)
		}
		prev = b.Temp
	}
	last := p.Boundaries[len(p.Boundaries)-1]
	if last.Layer != "soil" {
		t.Errorf("outermost boundary is %q, want soil", last.Layer)
	}
	near(t, "outer boundary", last.Temp, 20, 0.05)
}
