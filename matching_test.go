package telescope

import (
	"errors"
	"math"
	"testing"
)

// TestMatchGivenA2_Literal reproduces the reference configuration:
// λ = 0.8 µm, P = 5/27·0.9394 PW, w0 = 5 µm, a2 = 6.2.
func TestMatchGivenA2_Literal(t *testing.T) {
	tel := newTestTelescope(t, func(c *Config) { c.A2 = Float(6.2) })

	AssertRelClose(t, "a0", tel.Laser().A0(), 14.40, 0.01)

	sol, err := tel.MatchGivenA2()
	if err != nil {
		t.Fatalf("MatchGivenA2: %v", err)
	}

	AssertRelClose(t, "k/kp", sol.Plasma.Ratio(), 18.3, 0.02)

	invKp, err := tel.Converter().DensityToSkinDepth(sol.Plasma.Density())
	if err != nil {
		t.Fatal(err)
	}
	AssertRelClose(t, "1/kp from n_p", sol.Plasma.SkinDepth(), invKp, 1e-12)

	if sol.Geometry.Kpd() <= 0 {
		t.Errorf("kpd = %g, want > 0", sol.Geometry.Kpd())
	}
	AssertMatched(t, tel, DefaultAssertionConfig())

	t.Logf("✓ a2=6.2 → k/kp=%.3f, n_p=%.4g cm⁻³, kp·d=%.3f",
		sol.Plasma.Ratio(), sol.Plasma.Density(), sol.Geometry.Kpd())
}

// TestMatching_SolversAreInverse: MatchGivenA2 then MatchGivenDensity on the
// produced density reproduces a2.
func TestMatching_SolversAreInverse(t *testing.T) {
	cfg := DefaultAssertionConfig()

	for _, a2 := range []float64{6.2, 7, 8, 10, 12, 14} {
		forward := newTestTelescope(t, func(c *Config) { c.A2 = Float(a2) })
		sol, err := forward.MatchGivenA2()
		if err != nil {
			t.Fatalf("a2=%g: MatchGivenA2: %v", a2, err)
		}

		np := sol.Plasma.Density()
		inverse := newTestTelescope(t, func(c *Config) { c.NpCm3 = Float(np) })
		back, err := inverse.MatchGivenDensity()
		if err != nil {
			t.Fatalf("a2=%g: MatchGivenDensity: %v", a2, err)
		}

		AssertRelClose(t, "a2", back.Focus.A2(), a2, cfg.SolverTolerance)
		AssertRelClose(t, "kpd", back.Geometry.Kpd(), sol.Geometry.Kpd(), cfg.SolverTolerance)
		AssertMatched(t, inverse, cfg)
	}
}

func TestMatching_SameObjectInverse(t *testing.T) {
	tel := newTestTelescope(t, func(c *Config) { c.A2 = Float(8) })

	if _, err := tel.MatchGivenA2(); err != nil {
		t.Fatal(err)
	}
	sol, err := tel.MatchGivenDensity()
	if err != nil {
		t.Fatal(err)
	}
	AssertRelClose(t, "a2", sol.Focus.A2(), 8, 1e-6)
}

func TestMatching_Preconditions(t *testing.T) {
	tel := newTestTelescope(t, nil)

	if _, err := tel.MatchGivenA2(); !errors.Is(err, ErrUninitialized) {
		t.Errorf("MatchGivenA2 without a2: got %v, want ErrUninitialized", err)
	}
	if _, err := tel.MatchGivenDensity(); !errors.Is(err, ErrUninitialized) {
		t.Errorf("MatchGivenDensity without plasma: got %v, want ErrUninitialized", err)
	}
	if _, err := tel.DeriveMatchedOffset(); !errors.Is(err, ErrUninitialized) {
		t.Errorf("DeriveMatchedOffset without state: got %v, want ErrUninitialized", err)
	}
	if _, err := tel.DeriveW2FromOffset(); !errors.Is(err, ErrUninitialized) {
		t.Errorf("DeriveW2FromOffset without state: got %v, want ErrUninitialized", err)
	}
}

// TestDeriveMatchedOffset_BoundaryFailure: kp·w2 < kp·w0 is ErrDomain, never NaN.
func TestDeriveMatchedOffset_BoundaryFailure(t *testing.T) {
	tel := newTestTelescope(t, func(c *Config) {
		c.NpCm3 = Float(1e18)
		c.W2Um = Float(3) // w2 < w0 = 5
	})

	g, err := tel.DeriveMatchedOffset()
	if !errors.Is(err, ErrDomain) {
		t.Fatalf("got %v, want ErrDomain", err)
	}
	if math.IsNaN(g.Kpd()) || g.Kpd() != 0 {
		t.Errorf("returned kpd = %g, want zero value", g.Kpd())
	}
	if _, err := tel.Kpd(); !errors.Is(err, ErrUninitialized) {
		t.Errorf("geometry should remain unset, got %v", err)
	}
	t.Logf("✓ kp·w2 < kp·w0 rejected with %v", err)
}

func TestDeriveMatchedOffset_AtBoundary(t *testing.T) {
	tel := newTestTelescope(t, func(c *Config) {
		c.NpCm3 = Float(1e17)
		c.W2Um = Float(5) // w2 == w0
	})

	zeta, _ := tel.KpZeta()
	if zeta < 0 {
		t.Skipf("kp·ζ = %g < 0 for this density", zeta)
	}
	g, err := tel.DeriveMatchedOffset()
	if err != nil {
		t.Fatal(err)
	}
	if g.Kpd() != 0 {
		t.Errorf("kpd = %g, want 0 at kp·w2 == kp·w0", g.Kpd())
	}
}

// TestMatchGivenA2_FailureKeepsState: a2 > a0 gives w2 < w0; nothing changes.
func TestMatchGivenA2_FailureKeepsState(t *testing.T) {
	tel := newTestTelescope(t, func(c *Config) { c.A2 = Float(20) })

	if _, err := tel.MatchGivenA2(); !errors.Is(err, ErrDomain) {
		t.Fatalf("got %v, want ErrDomain", err)
	}
	if _, err := tel.Plasma(); !errors.Is(err, ErrUninitialized) {
		t.Errorf("plasma should remain unset, got %v", err)
	}
	if tel.Matched() {
		t.Error("telescope marked matched after failed solve")
	}
}

// TestMatchGivenA2_NegativeZeta: small a2 drives k/kp up until kp·ζ < 0.
func TestMatchGivenA2_NegativeZeta(t *testing.T) {
	tel := newTestTelescope(t, func(c *Config) { c.A2 = Float(3) })

	_, err := tel.MatchGivenA2()
	var qe *QuantityError
	if !errors.As(err, &qe) || qe.Quantity != "kpzeta" {
		t.Fatalf("got %v, want kpzeta QuantityError", err)
	}
	if !errors.Is(err, ErrDomain) {
		t.Errorf("got %v, want ErrDomain", err)
	}
}

// TestDeriveW2FromOffset_InvertsMatchedOffset: w2 → kp·d → w2.
func TestDeriveW2FromOffset_InvertsMatchedOffset(t *testing.T) {
	tel := newTestTelescope(t, func(c *Config) { c.A2 = Float(6.2) })

	sol, err := tel.MatchGivenA2()
	if err != nil {
		t.Fatal(err)
	}
	f, err := tel.DeriveW2FromOffset()
	if err != nil {
		t.Fatal(err)
	}

	AssertRelClose(t, "w2", f.W2(), sol.Focus.W2(), 1e-9)
	if tel.Matched() {
		t.Error("writing focus should clear the matched mark")
	}
}

func TestMatching_DirectWriteClearsMatched(t *testing.T) {
	tel := newTestTelescope(t, func(c *Config) { c.A2 = Float(8) })

	if _, err := tel.MatchGivenA2(); err != nil {
		t.Fatal(err)
	}
	if !tel.Matched() {
		t.Fatal("want matched after MatchGivenA2")
	}

	if _, err := tel.SetD(12); err != nil {
		t.Fatal(err)
	}
	if !tel.Matched() {
		t.Error("geometry write should keep the matched mark")
	}

	if _, err := tel.SetDensity(1e18); err != nil {
		t.Fatal(err)
	}
	if tel.Matched() {
		t.Error("plasma write should clear the matched mark")
	}
}
