package cabletherm

import "testing"

func TestResistanceAt(t *testing.T) {
	c := mvCable(t)

	r20 := c.ResistanceAt(20)
	near(t, "R20", r20, 7.36e-5, 1e-7)

	r90 := c.ResistanceAt(90)
	near(t, "R90/R20", r90/r20, 1+0.00393*70, 1e-9)
}

func TestACResistanceFactor(t *testing.T) {
	t.Run("dc is unity", func(t *testing.T) {
		c := mvCable(t)
		if f := c.ACResistanceFactor(); f != 1 {
			t.Errorf("factor = %g, want 1", f)
		}
	})

	t.Run("ac exceeds unity at power frequency", func(t *testing.T) {
		c := mvCable(t)
		c.System = SystemAC
		c.Frequency = 50
		f := c.SkinFactor()
		if f <= 1 {
			t.Errorf("skin factor = %g, want > 1", f)
		}
		if f > 1.1 {
			t.Errorf("skin factor = %g, implausibly large for a 240 mm² conductor", f)
		}
	})

	t.Run("skin factor grows with frequency", func(t *testing.T) {
		c := mvCable(t)
		c.System = SystemAC
		c.Frequency = 50
		f50 := c.SkinFactor()
		c.Frequency = 400
		f400 := c.SkinFactor()
		if f400 <= f50 {
			t.Errorf("skin factor at 400 Hz (%g) not above 50 Hz (%g)", f400, f50)
		}
	})

	t.Run("proximity needs neighbours and spacing", func(t *testing.T) {
		c := mvCable(t)
		c.System = SystemAC
		c.Frequency = 50
		if f := c.ProximityFactor(); f != 1 {
			t.Errorf("lone conductor proximity = %g, want 1", f)
		}
		c.PhaseCount = 3
		c.PhaseAxial = 0.1
		if f := c.ProximityFactor(); f <= 1 {
			t.Errorf("trefoil proximity = %g, want > 1", f)
		}
	})

	t.Run("proximity decays with spacing", func(t *testing.T) {
		c := mvCable(t)
		c.System = SystemAC
		c.Frequency = 50
		c.PhaseCount = 3
		c.PhaseAxial = 0.1
		tight := c.ProximityFactor()
		c.PhaseAxial = 0.5
		far := c.ProximityFactor()
		if far >= tight {
			t.Errorf("proximity at 0.5 m (%g) not below 0.1 m (%g)", far, tight)
		}
	})
}

func TestLossBudget(t *testing.T) {
	c := mvCable(t)
	c.DielectricLoss = 1.5
	c.SheathLoss = 0.8

	joule := 400.0 * 400.0 * c.ResistanceAt(40)
	near(t, "losses", c.Losses(400, 40), joule+1.5+0.8, 1e-9)
	near(t, "unloaded", c.Losses(0, 40), 2.3, 1e-9)
}
