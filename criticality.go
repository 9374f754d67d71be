package telescope

import "fmt"

// CriticalPowerDivisor relates (a0·kp·w0)² to the ratio of laser power to the
// critical power for relativistic self-focusing:
//
//	P/Pc = (a0·kp·w0)² / 32
const CriticalPowerDivisor = 32.0

// Regime classifies the beam relative to the self-focusing threshold.
type Regime string

const (
	RegimeSubcritical   Regime = "SUBCRITICAL"   // P < Pc: diffraction dominates
	RegimeCritical      Regime = "CRITICAL"      // P = Pc: convergence offset is zero
	RegimeSupercritical Regime = "SUPERCRITICAL" // P > Pc: self-focusing dominates
)

// Criticality is the self-focusing state of a laser in a given plasma.
type Criticality struct {
	A0KpW0     float64 // a0·kp·w0
	PowerRatio float64 // P/Pc
	Regime     Regime
}

// NewCriticality evaluates P/Pc for a laser in a plasma.
func NewCriticality(l Laser, p Plasma) Criticality {
	a0kpw0 := l.A0() * l.W0() / p.SkinDepth()
	ratio := a0kpw0 * a0kpw0 / CriticalPowerDivisor

	regime := RegimeCritical
	switch {
	case ratio < 1:
		regime = RegimeSubcritical
	case ratio > 1:
		regime = RegimeSupercritical
	}
	return Criticality{A0KpW0: a0kpw0, PowerRatio: ratio, Regime: regime}
}

// Validate returns ErrDomain when the beam is below the self-focusing
// threshold, where the maximal-convergence offset is undefined.
func (c Criticality) Validate() error {
	if c.Regime == RegimeSubcritical {
		return fmt.Errorf("self-focusing: P/Pc=%.4f < 1 (%s): %w", c.PowerRatio, c.Regime, ErrDomain)
	}
	return nil
}

// Criticality returns the self-focusing state. Requires plasma.
func (t *Telescope) Criticality() (Criticality, error) {
	p, err := t.Plasma()
	if err != nil {
		return Criticality{}, err
	}
	return NewCriticality(t.laser, p), nil
}
