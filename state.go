package telescope

// Plasma is a consistent triple of density, skin depth and wavenumber ratio.
// Values are only produced by the Converter-backed constructors below, so
// every Plasma satisfies
//
//	SkinDepth = (4π·r_e·Density)^(-1/2) · 1e3
//	Ratio     = SkinDepth / (λ/2π)
type Plasma struct {
	density   float64 // n_p [cm⁻³]
	skinDepth float64 // 1/kp [µm]
	ratio     float64 // k/kp
}

func (p Plasma) Density() float64   { return p.density }
func (p Plasma) SkinDepth() float64 { return p.skinDepth }
func (p Plasma) Ratio() float64     { return p.ratio }

func plasmaFromDensity(c Converter, l Laser, np float64) (Plasma, error) {
	invKp, err := c.DensityToSkinDepth(np)
	if err != nil {
		return Plasma{}, err
	}
	ratio, err := c.SkinDepthToRatio(invKp, l.OneOverK())
	if err != nil {
		return Plasma{}, err
	}
	return Plasma{density: np, skinDepth: invKp, ratio: ratio}, nil
}

func plasmaFromSkinDepth(c Converter, l Laser, invKp float64) (Plasma, error) {
	np, err := c.SkinDepthToDensity(invKp)
	if err != nil {
		return Plasma{}, err
	}
	ratio, err := c.SkinDepthToRatio(invKp, l.OneOverK())
	if err != nil {
		return Plasma{}, err
	}
	return Plasma{density: np, skinDepth: invKp, ratio: ratio}, nil
}

func plasmaFromRatio(c Converter, l Laser, ratio float64) (Plasma, error) {
	invKp, err := c.RatioToSkinDepth(ratio, l.OneOverK())
	if err != nil {
		return Plasma{}, err
	}
	np, err := c.SkinDepthToDensity(invKp)
	if err != nil {
		return Plasma{}, err
	}
	return Plasma{density: np, skinDepth: invKp, ratio: ratio}, nil
}

// Focus pairs the amplitude a2 with the waist w2 at the reference plane:
//
//	w2 = a0 · w0 / a2
type Focus struct {
	a2 float64
	w2 float64 // µm
}

func (f Focus) A2() float64 { return f.a2 }
func (f Focus) W2() float64 { return f.w2 }

func focusFromA2(l Laser, a2 float64) (Focus, error) {
	if !positive(a2) {
		return Focus{}, domainError("SetA2", "a2", a2)
	}
	return Focus{a2: a2, w2: l.A0() * l.W0() / a2}, nil
}

func focusFromW2(l Laser, w2 float64) (Focus, error) {
	if !positive(w2) {
		return Focus{}, domainError("SetW2", "w2_um", w2)
	}
	return Focus{a2: l.A0() * l.W0() / w2, w2: w2}, nil
}

// Geometry pairs the physical lens offset d with kp·d. The physical offset is
// canonical: when the plasma changes, kp·d is rescaled from d.
type Geometry struct {
	d   float64 // µm
	kpd float64
}

func (g Geometry) D() float64   { return g.d }
func (g Geometry) Kpd() float64 { return g.kpd }

func geometryFromD(p Plasma, d float64) (Geometry, error) {
	if !finite(d) || d < 0 {
		return Geometry{}, domainError("SetD", "d_um", d)
	}
	return Geometry{d: d, kpd: d / p.skinDepth}, nil
}

func geometryFromKpd(p Plasma, kpd float64) (Geometry, error) {
	if !finite(kpd) || kpd < 0 {
		return Geometry{}, domainError("SetKpd", "kpd", kpd)
	}
	return Geometry{d: kpd * p.skinDepth, kpd: kpd}, nil
}
