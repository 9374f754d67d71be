package telescope

import (
	"fmt"
	"log/slog"
	"sync"
)

// Telescope is a plasma-lens configuration: a fixed laser plus the plasma,
// focusing and geometry states that are set directly or resolved by the
// matching solver.
//
// Every setter replaces a whole state value under the write lock, so readers
// never observe a half-updated pair. Failed writes leave prior state intact.
type Telescope struct {
	mu sync.RWMutex

	laser  Laser
	conv   Converter
	light  float64 // speed of light [m/s]
	logger *slog.Logger

	plasma   *Plasma
	focus    *Focus
	geometry *Geometry
	matched  bool
}

// Option configures a Telescope.
type Option func(*Telescope)

// WithLogger sets the logger used for solver diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Telescope) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithConstants replaces the default CODATA constants provider.
func WithConstants(c Constants) Option {
	return func(t *Telescope) {
		if c != nil {
			t.conv = NewConverter(c)
			t.light = c.SpeedOfLight()
		}
	}
}

// New builds a Telescope from cfg, pre-populating the optional states in the
// order density, offset, a2, w2.
func New(cfg Config, opts ...Option) (*Telescope, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	laser, err := cfg.Laser()
	if err != nil {
		return nil, err
	}

	t := &Telescope{
		laser:  laser,
		conv:   NewConverter(CODATA),
		light:  CODATA.SpeedOfLight(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}

	if cfg.DUm != nil && cfg.NpCm3 == nil {
		return nil, fmt.Errorf("d_um=%g given without np_cm3: %w", *cfg.DUm, ErrConfiguration)
	}
	if cfg.NpCm3 != nil {
		if _, err := t.SetDensity(*cfg.NpCm3); err != nil {
			return nil, err
		}
	}
	if cfg.DUm != nil {
		if _, err := t.SetD(*cfg.DUm); err != nil {
			return nil, err
		}
	}
	if cfg.A2 != nil {
		if _, err := t.SetA2(*cfg.A2); err != nil {
			return nil, err
		}
	}
	if cfg.W2Um != nil {
		if cfg.A2 != nil {
			t.logger.Warn("both a2 and w2_um configured, w2_um wins", "a2", *cfg.A2, "w2_um", *cfg.W2Um)
		}
		if _, err := t.SetW2(*cfg.W2Um); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Laser returns the immutable laser parameters.
func (t *Telescope) Laser() Laser {
	return t.laser
}

// Converter returns the unit converter bound to this telescope's constants.
func (t *Telescope) Converter() Converter {
	return t.conv
}

// Matched reports whether the current state was produced by a matching
// solver and not modified since.
func (t *Telescope) Matched() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.matched
}

// ----------------------------------------------------------------------------
// Plasma
// ----------------------------------------------------------------------------

// SetDensity sets n_p [cm⁻³] and recomputes 1/kp and k/kp.
func (t *Telescope) SetDensity(np float64) (Plasma, error) {
	return t.writePlasma(func() (Plasma, error) { return plasmaFromDensity(t.conv, t.laser, np) })
}

// SetSkinDepth sets 1/kp [µm] and recomputes n_p and k/kp.
func (t *Telescope) SetSkinDepth(invKp float64) (Plasma, error) {
	return t.writePlasma(func() (Plasma, error) { return plasmaFromSkinDepth(t.conv, t.laser, invKp) })
}

// SetRatio sets k/kp and recomputes 1/kp and n_p.
func (t *Telescope) SetRatio(ratio float64) (Plasma, error) {
	return t.writePlasma(func() (Plasma, error) { return plasmaFromRatio(t.conv, t.laser, ratio) })
}

func (t *Telescope) writePlasma(build func() (Plasma, error)) (Plasma, error) {
	p, err := build()
	if err != nil {
		return Plasma{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commitPlasma(p)
	t.matched = false
	return p, nil
}

// commitPlasma installs p and rescales kp·d from the canonical offset.
// Caller holds the write lock.
func (t *Telescope) commitPlasma(p Plasma) {
	t.plasma = &p
	if t.geometry != nil {
		g := Geometry{d: t.geometry.d, kpd: t.geometry.d / p.skinDepth}
		t.geometry = &g
	}
}

// Plasma returns the current plasma state.
func (t *Telescope) Plasma() (Plasma, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.plasmaState("Plasma")
}

func (t *Telescope) plasmaState(op string) (Plasma, error) {
	if t.plasma == nil {
		return Plasma{}, unsetError(op, "plasma")
	}
	return *t.plasma, nil
}

// Density returns n_p [cm⁻³].
func (t *Telescope) Density() (float64, error) {
	p, err := t.Plasma()
	return p.density, err
}

// SkinDepth returns 1/kp [µm].
func (t *Telescope) SkinDepth() (float64, error) {
	p, err := t.Plasma()
	return p.skinDepth, err
}

// Ratio returns k/kp.
func (t *Telescope) Ratio() (float64, error) {
	p, err := t.Plasma()
	return p.ratio, err
}

// KpW0 returns kp·w0.
func (t *Telescope) KpW0() (float64, error) {
	p, err := t.Plasma()
	if err != nil {
		return 0, err
	}
	return t.laser.w0 / p.skinDepth, nil
}

// ----------------------------------------------------------------------------
// Focus
// ----------------------------------------------------------------------------

// SetA2 sets the amplitude a2 and recomputes w2.
func (t *Telescope) SetA2(a2 float64) (Focus, error) {
	f, err := focusFromA2(t.laser, a2)
	if err != nil {
		return Focus{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commitFocus(f)
	return f, nil
}

// SetW2 sets the waist w2 [µm] and recomputes a2.
func (t *Telescope) SetW2(w2 float64) (Focus, error) {
	f, err := focusFromW2(t.laser, w2)
	if err != nil {
		return Focus{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commitFocus(f)
	return f, nil
}

// SetKpW2 sets the normalized waist kp·w2. Requires plasma.
func (t *Telescope) SetKpW2(kpw2 float64) (Focus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := t.plasmaState("SetKpW2")
	if err != nil {
		return Focus{}, err
	}
	if !positive(kpw2) {
		return Focus{}, domainError("SetKpW2", "kpw2", kpw2)
	}
	f, err := focusFromW2(t.laser, kpw2*p.skinDepth)
	if err != nil {
		return Focus{}, err
	}
	t.commitFocus(f)
	return f, nil
}

// commitFocus installs f. Caller holds the write lock.
func (t *Telescope) commitFocus(f Focus) {
	t.focus = &f
	t.matched = false
}

// Focus returns the current focusing state.
func (t *Telescope) Focus() (Focus, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.focusState("Focus")
}

func (t *Telescope) focusState(op string) (Focus, error) {
	if t.focus == nil {
		return Focus{}, unsetError(op, "focus")
	}
	return *t.focus, nil
}

// A2 returns the amplitude at the reference plane.
func (t *Telescope) A2() (float64, error) {
	f, err := t.Focus()
	return f.a2, err
}

// W2 returns the waist [µm] at the reference plane.
func (t *Telescope) W2() (float64, error) {
	f, err := t.Focus()
	return f.w2, err
}

// KpW2 returns kp·w2. Requires plasma and focus.
func (t *Telescope) KpW2() (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.kpw2("KpW2")
}

func (t *Telescope) kpw2(op string) (float64, error) {
	p, err := t.plasmaState(op)
	if err != nil {
		return 0, err
	}
	f, err := t.focusState(op)
	if err != nil {
		return 0, err
	}
	return f.w2 / p.skinDepth, nil
}

// ----------------------------------------------------------------------------
// Geometry
// ----------------------------------------------------------------------------

// SetD sets the lens offset d [µm] and recomputes kp·d. Requires plasma.
func (t *Telescope) SetD(d float64) (Geometry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := t.plasmaState("SetD")
	if err != nil {
		return Geometry{}, err
	}
	g, err := geometryFromD(p, d)
	if err != nil {
		return Geometry{}, err
	}
	t.geometry = &g
	return g, nil
}

// SetKpd sets kp·d and recomputes d. Requires plasma.
func (t *Telescope) SetKpd(kpd float64) (Geometry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := t.plasmaState("SetKpd")
	if err != nil {
		return Geometry{}, err
	}
	g, err := geometryFromKpd(p, kpd)
	if err != nil {
		return Geometry{}, err
	}
	t.geometry = &g
	return g, nil
}

// Geometry returns the current geometry state.
func (t *Telescope) Geometry() (Geometry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.geometryState("Geometry")
}

func (t *Telescope) geometryState(op string) (Geometry, error) {
	if t.geometry == nil {
		return Geometry{}, unsetError(op, "geometry")
	}
	return *t.geometry, nil
}

// D returns the lens offset [µm].
func (t *Telescope) D() (float64, error) {
	g, err := t.Geometry()
	return g.d, err
}

// Kpd returns kp·d.
func (t *Telescope) Kpd() (float64, error) {
	g, err := t.Geometry()
	return g.kpd, err
}
