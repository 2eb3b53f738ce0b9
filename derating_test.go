package cabletherm

import "testing"

func TestGroupAmpacity(t *testing.T) {
	grp, err := GroupAmpacity(mvGroup(t, 3, 0.5, 0), 90)
	if err != nil {
		t.Fatal(err)
	}
	iso, err := (&AmpacitySolver{Temp: TempSolver{Ambient: 25}}).Solve(mvCable(t), 90)
	if err != nil {
		t.Fatal(err)
	}
	if grp >= iso.Current {
		t.Errorf("group ampacity %g not below isolated %g", grp, iso.Current)
	}
	if grp < 0.5*iso.Current {
		t.Errorf("group ampacity %g implausibly low against isolated %g", grp, iso.Current)
	}
}

func TestDeratingFactor(t *testing.T) {
	t.Run("mutual heating removes capacity", func(t *testing.T) {
		res, err := DeratingFactor(mvGroup(t, 3, 0.5, 0), 90)
		if err != nil {
			t.Fatal(err)
		}
		if res.Factor <= 0 || res.Factor >= 1 {
			t.Errorf("factor = %g, want strictly inside (0, 1)", res.Factor)
		}
		near(t, "isolated", res.IsolatedAmpacity, 830, 5)
	})

	t.Run("wider spacing derates less", func(t *testing.T) {
		tight, err := DeratingFactor(mvGroup(t, 3, 0.3, 0), 90)
		if err != nil {
			t.Fatal(err)
		}
		wide, err := DeratingFactor(mvGroup(t, 3, 1.0, 0), 90)
		if err != nil {
			t.Fatal(err)
		}
		if wide.Factor <= tight.Factor {
			t.Errorf("factor at 1.0 m (%g) not above 0.3 m (%g)", wide.Factor, tight.Factor)
		}
	})

	t.Run("isolated cables approach unity", func(t *testing.T) {
		res, err := DeratingFactor(mvGroup(t, 2, 3.0, 0), 90)
		if err != nil {
			t.Fatal(err)
		}
		near(t, "decoupled factor", res.Factor, 1, 0.01)
	})
}
