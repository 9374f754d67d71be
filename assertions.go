package telescope

import (
	"math"
	"testing"
)

// AssertionConfig contains tolerances for consistency checks.
type AssertionConfig struct {
	// Relative tolerance for paired representations (round trips, pair equations)
	PairTolerance float64

	// Relative tolerance for solver inverse consistency
	SolverTolerance float64
}

// DefaultAssertionConfig returns tolerances suited to closed-form float64 math.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		PairTolerance:   1e-9,
		SolverTolerance: 1e-6,
	}
}

// RelClose reports whether got is within tol of want, relative to |want|.
func RelClose(got, want, tol float64) bool {
	if want == 0 {
		return math.Abs(got) <= tol
	}
	return math.Abs(got-want) <= tol*math.Abs(want)
}

// AssertRelClose fails the test when got is not within tol of want.
func AssertRelClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()

	if !RelClose(got, want, tol) {
		t.Errorf("%s = %.12g, want %.12g (rel tol %.1e)", name, got, want, tol)
	}
}

// AssertPairsConsistent verifies every SET state satisfies its defining
// equation:
//
//	1/kp = (4π·r_e·n_p)^(-1/2)·1e3,  k/kp = (1/kp)/(1/k)
//	w2   = a0·w0/a2
//	kp·d = d/(1/kp)
func AssertPairsConsistent(t *testing.T, tel *Telescope, cfg AssertionConfig) {
	t.Helper()

	s := tel.snapshot()
	l := s.laser

	if s.plasma != nil {
		p := *s.plasma
		invKp, err := s.conv.DensityToSkinDepth(p.density)
		if err != nil {
			t.Fatalf("plasma density invalid: %v", err)
		}
		AssertRelClose(t, "1/kp", p.skinDepth, invKp, cfg.PairTolerance)
		AssertRelClose(t, "k/kp", p.ratio, p.skinDepth/l.OneOverK(), cfg.PairTolerance)
	}

	if s.focus != nil {
		f := *s.focus
		AssertRelClose(t, "w2", f.w2, l.A0()*l.W0()/f.a2, cfg.PairTolerance)
	}

	if s.geometry != nil {
		if s.plasma == nil {
			t.Fatalf("geometry set without plasma")
		}
		g := *s.geometry
		AssertRelClose(t, "kpd", g.kpd, g.d/s.plasma.skinDepth, cfg.PairTolerance)
	}
}

// AssertMatched verifies the telescope is matched and satisfies the
// power-balance law P = MatchingPower·a2³·(k/kp)².
func AssertMatched(t *testing.T, tel *Telescope, cfg AssertionConfig) {
	t.Helper()

	s := tel.snapshot()
	if !s.matched {
		t.Fatalf("telescope is not matched")
	}

	a2, ratio := s.focus.a2, s.plasma.ratio
	AssertRelClose(t, "P", MatchingPower*a2*a2*a2*ratio*ratio, s.laser.Power(), cfg.SolverTolerance)
	AssertPairsConsistent(t, tel, cfg)
}
