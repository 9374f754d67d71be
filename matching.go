package telescope

import "math"

// Solution is the state produced by one solver call.
type Solution struct {
	Plasma   Plasma
	Focus    Focus
	Geometry Geometry
}

// MatchGivenA2 resolves the plasma from the focusing amplitude a2 under the
// power-balance law
//
//	k/kp = sqrt(P / MatchingPower / a2³)
//
// then derives the matched lens offset. Requires focus.
func (t *Telescope) MatchGivenA2() (Solution, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := t.focusState("MatchGivenA2")
	if err != nil {
		return Solution{}, err
	}
	ratio := math.Sqrt(t.laser.power / MatchingPower / (f.a2 * f.a2 * f.a2))
	p, err := plasmaFromRatio(t.conv, t.laser, ratio)
	if err != nil {
		return Solution{}, err
	}
	g, err := t.matchedGeometry("MatchGivenA2", p, f)
	if err != nil {
		return Solution{}, err
	}

	t.commitPlasma(p)
	t.geometry = &g
	t.matched = true
	t.logger.Debug("matched from a2",
		"a2", f.a2, "k_over_kp", p.ratio, "np_cm3", p.density, "kpd", g.kpd)
	return Solution{Plasma: p, Focus: f, Geometry: g}, nil
}

// MatchGivenDensity resolves a2 from the plasma under the power-balance law
//
//	a2 = (P / MatchingPower / (k/kp)²)^(1/3)
//
// then derives the matched lens offset. Requires plasma.
func (t *Telescope) MatchGivenDensity() (Solution, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.plasmaState("MatchGivenDensity")
	if err != nil {
		return Solution{}, err
	}
	a2 := math.Cbrt(t.laser.power / MatchingPower / (p.ratio * p.ratio))
	f, err := focusFromA2(t.laser, a2)
	if err != nil {
		return Solution{}, err
	}
	g, err := t.matchedGeometry("MatchGivenDensity", p, f)
	if err != nil {
		return Solution{}, err
	}

	t.commitFocus(f)
	t.geometry = &g
	t.matched = true
	t.logger.Debug("matched from density",
		"np_cm3", p.density, "a2", f.a2, "w2_um", f.w2, "kpd", g.kpd)
	return Solution{Plasma: p, Focus: f, Geometry: g}, nil
}

// DeriveMatchedOffset sets kp·d from the current plasma and focus:
//
//	kp·d = sqrt((kp·w2 / kp·w0)² − 1) · kp·ζ
//
// Requires kp·w2 ≥ kp·w0 and kp·ζ ≥ 0; ErrDomain otherwise.
func (t *Telescope) DeriveMatchedOffset() (Geometry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.plasmaState("DeriveMatchedOffset")
	if err != nil {
		return Geometry{}, err
	}
	f, err := t.focusState("DeriveMatchedOffset")
	if err != nil {
		return Geometry{}, err
	}
	g, err := t.matchedGeometry("DeriveMatchedOffset", p, f)
	if err != nil {
		return Geometry{}, err
	}
	t.geometry = &g
	return g, nil
}

// DeriveW2FromOffset is the inverse of DeriveMatchedOffset:
//
//	w2 = w0 · sqrt(1 + (kp·d / kp·ζ)²)
//
// Requires plasma and geometry.
func (t *Telescope) DeriveW2FromOffset() (Focus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.plasmaState("DeriveW2FromOffset")
	if err != nil {
		return Focus{}, err
	}
	g, err := t.geometryState("DeriveW2FromOffset")
	if err != nil {
		return Focus{}, err
	}
	kpzeta := t.kpzeta(p)
	if kpzeta == 0 || !finite(kpzeta) {
		return Focus{}, domainError("DeriveW2FromOffset", "kpzeta", kpzeta)
	}
	q := g.kpd / kpzeta
	f, err := focusFromW2(t.laser, t.laser.w0*math.Sqrt(1+q*q))
	if err != nil {
		return Focus{}, err
	}
	t.commitFocus(f)
	t.logger.Debug("derived w2 from offset", "kpd", g.kpd, "w2_um", f.w2, "a2", f.a2)
	return f, nil
}

func (t *Telescope) matchedGeometry(op string, p Plasma, f Focus) (Geometry, error) {
	kpw0 := t.laser.w0 / p.skinDepth
	kpw2 := f.w2 / p.skinDepth
	q := kpw2 / kpw0
	radicand := q*q - 1
	if radicand < 0 || !finite(radicand) {
		return Geometry{}, domainError(op, "kpw2/kpw0", q)
	}
	kpzeta := t.kpzeta(p)
	if kpzeta < 0 || !finite(kpzeta) {
		return Geometry{}, domainError(op, "kpzeta", kpzeta)
	}
	return geometryFromKpd(p, math.Sqrt(radicand)*kpzeta)
}

// kpzeta is the empirical matched distance
//
//	kp·ζ = 0.95·kp·z_R − 1.2·k/kp − 13
func (t *Telescope) kpzeta(p Plasma) float64 {
	return 0.95*(t.laser.RayleighLength()/p.skinDepth) - 1.2*p.ratio - 13
}
