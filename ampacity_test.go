package cabletherm

import "testing"

func TestAmpacitySolver(t *testing.T) {
	t.Run("reference cable reaches about 830 A", func(t *testing.T) {
		c := mvCable(t)
		res, err := (&AmpacitySolver{Temp: TempSolver{Ambient: 25}}).Solve(c, 90)
		if err != nil {
			t.Fatal(err)
		}
		near(t, "ampacity", res.Current, 830, 5)
		if res.Temp > 90 {
			t.Errorf("solution temp %g exceeds the limit", res.Temp)
		}
		if res.Temp < 90-1 {
			t.Errorf("solution temp %g leaves the limit unused", res.Temp)
		}
	})

	t.Run("round trips through the temperature solve", func(t *testing.T) {
		c := mvCable(t)
		amp, err := (&AmpacitySolver{Temp: TempSolver{Ambient: 25}}).Solve(c, 90)
		if err != nil {
			t.Fatal(err)
		}
		tr, err := (&TempSolver{Ambient: 25}).Solve(c, amp.Current)
		if err != nil {
			t.Fatal(err)
		}
		if tr.Temp > 90+AmpacityTempTolerance {
			t.Errorf("ampacity current drives the conductor to %g °C", tr.Temp)
		}
	})

	t.Run("hotter ambient means lower ampacity", func(t *testing.T) {
		c := mvCable(t)
		cold, err := (&AmpacitySolver{Temp: TempSolver{Ambient: 15}}).Solve(c, 90)
		if err != nil {
			t.Fatal(err)
		}
		hot, err := (&AmpacitySolver{Temp: TempSolver{Ambient: 35}}).Solve(c, 90)
		if err != nil {
			t.Fatal(err)
		}
		if hot.Current >= cold.Current {
			t.Errorf("ampacity at 35 °C (%g) not below 15 °C (%g)", hot.Current, cold.Current)
		}
	})

	t.Run("ambient at the limit yields zero amps", func(t *testing.T) {
		c := mvCable(t)
		res, err := (&AmpacitySolver{Temp: TempSolver{Ambient: 90}}).Solve(c, 90)
		if err != nil {
			t.Fatal(err)
		}
		if res.Current != 0 {
			t.Errorf("current = %g, want 0", res.Current)
		}
	})

	t.Run("initial guess does not change the answer", func(t *testing.T) {
		c := mvCable(t)
		a, err := (&AmpacitySolver{Temp: TempSolver{Ambient: 25}, InitialGuess: 10}).Solve(c, 90)
		if err != nil {
			t.Fatal(err)
		}
		b, err := (&AmpacitySolver{Temp: TempSolver{Ambient: 25}, InitialGuess: 5000}).Solve(c, 90)
		if err != nil {
			t.Fatal(err)
		}
		near(t, "guess independence", a.Current, b.Current, 2)
	})

	t.Run("caller-supplied upper bound", func(t *testing.T) {
		c := mvCable(t)
		res, err := (&AmpacitySolver{Temp: TempSolver{Ambient: 25}, UpperBound: 2000}).Solve(c, 90)
		if err != nil {
			t.Fatal(err)
		}
		near(t, "bounded ampacity", res.Current, 830, 5)
	})
}
