package cabletherm

import (
	"math"
	"testing"
)

// mvGroup lays n reference cables in a row at the given spacing, all loaded
// with the same current.
func mvGroup(t *testing.T, n int, spacing, current float64) *CableGroup {
	t.Helper()
	soil, _ := DefaultRegistry().Lookup("soil-moist")
	g := &CableGroup{
		Cables:      make([]GroupCable, n),
		BurialDepth: 1.0,
		Soil:        soil,
		Ambient:     25,
	}
	for i := range g.Cables {
		g.Cables[i] = GroupCable{
			Cable:    mvCable(t),
			Position: Position{X: float64(i) * spacing},
			Current:  current,
		}
	}
	return g
}

func TestCoupledSolver(t *testing.T) {
	t.Run("three cables at half a meter", func(t *testing.T) {
		iso, err := (&TempSolver{Ambient: 25}).Solve(mvCable(t), 400)
		if err != nil {
			t.Fatal(err)
		}

		res, err := (&CoupledSolver{Group: mvGroup(t, 3, 0.5, 400)}).Solve()
		if err != nil {
			t.Fatal(err)
		}

		center := res.Cables[1].Temp
		outer := res.Cables[0].Temp
		near(t, "center rise", center-iso.Temp, 5.5, 0.5)
		near(t, "outer rise", outer-iso.Temp, 4.2, 0.5)
		if center <= outer {
			t.Errorf("center %g not hotter than outer %g", center, outer)
		}
		if math.Abs(outer-res.Cables[2].Temp) > CoupledTolerance {
			t.Errorf("symmetric layout gave asymmetric outers: %g vs %g", outer, res.Cables[2].Temp)
		}
		if res.Rounds() >= MaxCoupledRounds {
			t.Errorf("rounds = %d, expected quick settle", res.Rounds())
		}
		for i, c := range res.Cables {
			if c.Losses <= 0 {
				t.Errorf("cable %d reports no losses", i)
			}
		}
	})

	t.Run("single cable reduces to the isolated solve", func(t *testing.T) {
		iso, err := (&TempSolver{Ambient: 25}).Solve(mvCable(t), 400)
		if err != nil {
			t.Fatal(err)
		}
		res, err := (&CoupledSolver{Group: mvGroup(t, 1, 1, 400)}).Solve()
		if err != nil {
			t.Fatal(err)
		}
		near(t, "single cable", res.Cables[0].Temp, iso.Temp, 2*TempTolerance)
	})

	t.Run("distant cables decouple", func(t *testing.T) {
		iso, err := (&TempSolver{Ambient: 25}).Solve(mvCable(t), 400)
		if err != nil {
			t.Fatal(err)
		}
		// 3 m apart at 1 m depth: every mutual term clamps to zero.
		res, err := (&CoupledSolver{Group: mvGroup(t, 2, 3.0, 400)}).Solve()
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range res.Cables {
			near(t, "decoupled cable", c.Temp, iso.Temp, 2*TempTolerance)
		}
	})

	t.Run("wider spacing runs cooler", func(t *testing.T) {
		tight, err := (&CoupledSolver{Group: mvGroup(t, 3, 0.3, 400)}).Solve()
		if err != nil {
			t.Fatal(err)
		}
		wide, err := (&CoupledSolver{Group: mvGroup(t, 3, 0.8, 400)}).Solve()
		if err != nil {
			t.Fatal(err)
		}
		if wide.MaxTemp() >= tight.MaxTemp() {
			t.Errorf("wide layout (%g) not cooler than tight (%g)", wide.MaxTemp(), tight.MaxTemp())
		}
	})

	t.Run("unequal loads break symmetry the right way", func(t *testing.T) {
		g := mvGroup(t, 2, 0.5, 400)
		g.Cables[1].Current = 200
		res, err := (&CoupledSolver{Group: g}).Solve()
		if err != nil {
			t.Fatal(err)
		}
		if res.Cables[0].Temp <= res.Cables[1].Temp {
			t.Errorf("heavier cable (%g) not hotter than lighter (%g)", res.Cables[0].Temp, res.Cables[1].Temp)
		}
	})
}

func TestGroupResultMaxTemp(t *testing.T) {
	r := &GroupResult{Cables: []CableTemp{{Temp: 40.1}, {Temp: 55.3}, {Temp: 41.2}}}
	near(t, "max", r.MaxTemp(), 55.3, 0)
}
