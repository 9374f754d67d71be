package telescope

import (
	"fmt"
	"math"
)

// Derived, report-grade quantities. None of these mutate state.

// KpZR returns kp·z_R. Requires plasma.
func (t *Telescope) KpZR() (float64, error) {
	p, err := t.Plasma()
	if err != nil {
		return 0, err
	}
	return t.laser.RayleighLength() / p.skinDepth, nil
}

// KpZeta returns the matched distance kp·ζ. Requires plasma.
func (t *Telescope) KpZeta() (float64, error) {
	p, err := t.Plasma()
	if err != nil {
		return 0, err
	}
	return t.kpzeta(p), nil
}

// Zeta returns ζ [µm]. Requires plasma.
func (t *Telescope) Zeta() (float64, error) {
	p, err := t.Plasma()
	if err != nil {
		return 0, err
	}
	return t.kpzeta(p) * p.skinDepth, nil
}

// A0KpW0 returns a0·kp·w0. Requires plasma.
func (t *Telescope) A0KpW0() (float64, error) {
	c, err := t.Criticality()
	return c.A0KpW0, err
}

// PowerRatio returns P/Pc. Requires plasma.
func (t *Telescope) PowerRatio() (float64, error) {
	c, err := t.Criticality()
	return c.PowerRatio, err
}

// KpdM returns the normalized offset of maximal convergence
//
//	kp·d_M = kp·z_R · sqrt(P/Pc − 1)
//
// Requires plasma and P ≥ Pc.
func (t *Telescope) KpdM() (float64, error) {
	p, err := t.Plasma()
	if err != nil {
		return 0, err
	}
	return t.kpdM(p)
}

func (t *Telescope) kpdM(p Plasma) (float64, error) {
	c := NewCriticality(t.laser, p)
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("KpdM: %w", err)
	}
	return t.laser.RayleighLength() / p.skinDepth * math.Sqrt(c.PowerRatio-1), nil
}

// DM returns d_M [µm].
func (t *Telescope) DM() (float64, error) {
	p, err := t.Plasma()
	if err != nil {
		return 0, err
	}
	kpdM, err := t.kpdM(p)
	return kpdM * p.skinDepth, err
}

// W1 returns the vacuum waist [µm] at the lens plane, a distance d from focus:
//
//	w1 = w0 · sqrt(1 + (d/z_R)²)
//
// Requires geometry.
func (t *Telescope) W1() (float64, error) {
	g, err := t.Geometry()
	if err != nil {
		return 0, err
	}
	return t.w1(g), nil
}

func (t *Telescope) w1(g Geometry) float64 {
	q := g.d / t.laser.RayleighLength()
	return t.laser.w0 * math.Sqrt(1+q*q)
}

// KpW1 returns kp·w1. Requires geometry.
func (t *Telescope) KpW1() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	g, err := t.geometryState("KpW1")
	if err != nil {
		return 0, err
	}
	return t.w1(g) / t.plasma.skinDepth, nil
}

// A1 returns the amplitude at the lens plane, a0·w0/w1. Requires geometry.
func (t *Telescope) A1() (float64, error) {
	w1, err := t.W1()
	if err != nil {
		return 0, err
	}
	return t.laser.A0() * t.laser.w0 / w1, nil
}

// A1OverKpW1Squared returns a1/(kp·w1)². Requires geometry.
func (t *Telescope) A1OverKpW1Squared() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	g, err := t.geometryState("A1OverKpW1Squared")
	if err != nil {
		return 0, err
	}
	w1 := t.w1(g)
	kpw1 := w1 / t.plasma.skinDepth
	return t.laser.A0() * t.laser.w0 / w1 / (kpw1 * kpw1), nil
}

// KpdEff returns the effective offset: the larger of kp·d and the
// theoretical minimum
//
//	kp·z_R · sqrt((a0/(kp·w0)²)^(2/3) − 1)
//
// When the radicand is negative there is no theoretical candidate and kp·d
// is returned. The result is a max-of-two policy; callers must not assume it
// equals kp·d. Requires geometry.
func (t *Telescope) KpdEff() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	g, err := t.geometryState("KpdEff")
	if err != nil {
		return 0, err
	}
	return t.kpdEff(*t.plasma, g), nil
}

func (t *Telescope) kpdEff(p Plasma, g Geometry) float64 {
	kpw0 := t.laser.w0 / p.skinDepth
	radicand := math.Pow(t.laser.A0()/(kpw0*kpw0), 2.0/3.0) - 1
	if radicand < 0 {
		return g.kpd
	}
	return math.Max(t.laser.RayleighLength()/p.skinDepth*math.Sqrt(radicand), g.kpd)
}

// DEff returns d_eff [µm]. Requires geometry.
func (t *Telescope) DEff() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	g, err := t.geometryState("DEff")
	if err != nil {
		return 0, err
	}
	return t.kpdEff(*t.plasma, g) * t.plasma.skinDepth, nil
}

// KpL returns the normalized plasma-lens length from the empirical scaling
//
//	kp·l = 21 · kp·d / (kp·w0)^2.08
//
// Requires geometry.
func (t *Telescope) KpL() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	g, err := t.geometryState("KpL")
	if err != nil {
		return 0, err
	}
	return t.kpl(*t.plasma, g), nil
}

func (t *Telescope) kpl(p Plasma, g Geometry) float64 {
	return 21 * g.kpd / math.Pow(t.laser.w0/p.skinDepth, 2.08)
}

// L returns the plasma-lens length [µm]. Requires geometry.
func (t *Telescope) L() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	g, err := t.geometryState("L")
	if err != nil {
		return 0, err
	}
	return t.kpl(*t.plasma, g) * t.plasma.skinDepth, nil
}

// ----------------------------------------------------------------------------
// Matched-only metrics
// ----------------------------------------------------------------------------

func (t *Telescope) matchedState(op string) (Plasma, Focus, error) {
	if !t.matched {
		return Plasma{}, Focus{}, fmt.Errorf("%s: %w", op, ErrNotMatched)
	}
	return *t.plasma, *t.focus, nil
}

// KpLDephasing returns kp·L_d = sqrt(a2)·(k/kp)²·4/3. Requires a matched state.
func (t *Telescope) KpLDephasing() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, f, err := t.matchedState("KpLDephasing")
	if err != nil {
		return 0, err
	}
	return kpLDephasing(p, f), nil
}

func kpLDephasing(p Plasma, f Focus) float64 {
	return math.Sqrt(f.a2) * p.ratio * p.ratio * 4 / 3
}

// LDephasing returns the dephasing length [µm]. Requires a matched state.
func (t *Telescope) LDephasing() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, f, err := t.matchedState("LDephasing")
	if err != nil {
		return 0, err
	}
	return kpLDephasing(p, f) * p.skinDepth, nil
}

// TauOpt returns the optimal pulse duration [fs], 2·w2/(3c).
// Requires a matched state.
func (t *Telescope) TauOpt() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, f, err := t.matchedState("TauOpt")
	if err != nil {
		return 0, err
	}
	return t.tauOpt(f), nil
}

func (t *Telescope) tauOpt(f Focus) float64 {
	return f.w2 * 2e9 / 3 / t.light
}

// OmegaPTauOpt returns ωp·τ_opt = 2·kp·w2/3. Requires a matched state.
func (t *Telescope) OmegaPTauOpt() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, f, err := t.matchedState("OmegaPTauOpt")
	if err != nil {
		return 0, err
	}
	return f.w2 / p.skinDepth * 2 / 3, nil
}

// FWHMDuration returns the FWHM pulse duration [fs]. Requires a matched state.
func (t *Telescope) FWHMDuration() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, f, err := t.matchedState("FWHMDuration")
	if err != nil {
		return 0, err
	}
	return t.tauOpt(f) * FWHMFactor, nil
}

// EnergyGain returns the electron energy gain [GeV],
// (2/3)·a2·(k/kp)²·m_e c². Requires a matched state.
func (t *Telescope) EnergyGain() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, f, err := t.matchedState("EnergyGain")
	if err != nil {
		return 0, err
	}
	return f.a2 * 2 / 3 * p.ratio * p.ratio * ElectronRestEnergyGeV, nil
}
