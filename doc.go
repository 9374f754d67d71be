// Package telescope models a laser-driven plasma lens ("plasma telescope")
// used in beam-focusing design for plasma accelerators.
//
// # Overview
//
// A Telescope starts from a fixed laser (wavelength, power, waist) and keeps
// three paired states mutually consistent:
//
//   - Plasma:   n_p [cm⁻³] ⇄ 1/kp [µm] ⇄ k/kp
//   - Focus:    a2 ⇄ w2 [µm]           (w2 = a0·w0/a2)
//   - Geometry: d [µm] ⇄ kp·d          (kp·d = d·kp)
//
// Every setter writes a whole pair under one lock; a failed write leaves the
// previous state untouched.
//
// # Quick Start
//
// Resolve a matched configuration from the focusing amplitude:
//
//	cfg := telescope.DefaultConfig()
//	cfg.WavelengthUm = 0.8
//	cfg.PowerPW = 0.17397
//	cfg.W0Um = 5
//	cfg.A2 = telescope.Float(6.2)
//
//	t, err := telescope.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := t.MatchGivenA2(); err != nil {
//	    log.Fatal(err)
//	}
//
//	gain, _ := t.EnergyGain()
//	fmt.Printf("Energy gain: %.3f GeV\n", gain)
//
// # The Matched Condition
//
// Laser power, plasma density and amplitude are tied by
//
//	P = 2.1775e-6 · a2³ · (k/kp)²
//
// MatchGivenA2 solves for k/kp, MatchGivenDensity solves for a2. Both then set
// the lens offset
//
//	kp·d = sqrt((kp·w2/kp·w0)² − 1) · kp·ζ,   kp·ζ = 0.95·kp·z_R − 1.2·k/kp − 13
//
// which is only defined when kp·w2 ≥ kp·w0 (ErrDomain otherwise).
//
// # Errors
//
//   - ErrDomain:        a formula precondition is violated
//   - ErrUninitialized: a quantity is read before its state is set
//   - ErrNotMatched:    a matched-only metric (dephasing, duration, gain) is
//     requested on a state no solver produced
//   - ErrConfiguration: construction inputs are incomplete or contradictory
//
// # Scans
//
// Scan sweeps a2 or n_p over a linear or log grid and solves each point
// concurrently; ParetoFront keeps the points that trade energy gain against
// lens length optimally.
package telescope
