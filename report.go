package telescope

// Quantity is one named value of a report. OK is false when the value's
// governing state is not set or its formula is undefined for this state;
// Err then carries the reason.
type Quantity struct {
	Key   string  `json:"key" yaml:"key"`
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	OK    bool    `json:"ok" yaml:"ok"`
	Err   error   `json:"-" yaml:"-"`
}

// Row pairs a physical quantity with its normalized counterpart.
type Row struct {
	Left  Quantity `json:"left" yaml:"left"`
	Right Quantity `json:"right" yaml:"right"`
}

// Section is a group of rows.
type Section []Row

// Report is a point-in-time view of every named quantity of a telescope.
// It holds values only; formatting belongs to the caller.
type Report struct {
	Matched  bool      `json:"matched" yaml:"matched"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Quantities returns all quantities in section order, left before right.
func (r Report) Quantities() []Quantity {
	var out []Quantity
	for _, s := range r.Sections {
		for _, row := range s {
			out = append(out, row.Left, row.Right)
		}
	}
	return out
}

// Values returns the available quantities keyed by Key.
func (r Report) Values() map[string]float64 {
	out := make(map[string]float64)
	for _, q := range r.Quantities() {
		if q.OK {
			out[q.Key] = q.Value
		}
	}
	return out
}

// Lookup returns the quantity with the given key.
func (r Report) Lookup(key string) (Quantity, bool) {
	for _, q := range r.Quantities() {
		if q.Key == key {
			return q, true
		}
	}
	return Quantity{}, false
}

func quantity(key, label string, v float64, err error) Quantity {
	if err != nil {
		return Quantity{Key: key, Label: label, Err: err}
	}
	return Quantity{Key: key, Label: label, Value: v, OK: true}
}

func known(key, label string, v float64) Quantity {
	return Quantity{Key: key, Label: label, Value: v, OK: true}
}

// snapshot copies the telescope under the read lock so a report sees one
// consistent state even when writers run concurrently.
func (t *Telescope) snapshot() *Telescope {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c := &Telescope{
		laser:   t.laser,
		conv:    t.conv,
		light:   t.light,
		logger:  t.logger,
		matched: t.matched,
	}
	if t.plasma != nil {
		p := *t.plasma
		c.plasma = &p
	}
	if t.focus != nil {
		f := *t.focus
		c.focus = &f
	}
	if t.geometry != nil {
		g := *t.geometry
		c.geometry = &g
	}
	return c
}

// Report collects every named quantity in four sections: laser and plasma,
// lens geometry, beam at the lens and reference planes, and matched-only
// accelerator figures.
func (t *Telescope) Report() Report {
	s := t.snapshot()
	l := s.laser

	np, npErr := s.Density()
	invKp, invKpErr := s.SkinDepth()
	ratio, ratioErr := s.Ratio()
	kpw0, kpw0Err := s.KpW0()

	kpzR, kpzRErr := s.KpZR()
	zeta, zetaErr := s.Zeta()
	kpzeta, kpzetaErr := s.KpZeta()
	d, dErr := s.D()
	kpd, kpdErr := s.Kpd()
	dEff, dEffErr := s.DEff()
	kpdEff, kpdEffErr := s.KpdEff()
	dM, dMErr := s.DM()
	kpdM, kpdMErr := s.KpdM()
	length, lengthErr := s.L()
	kpl, kplErr := s.KpL()

	a1, a1Err := s.A1()
	a2, a2Err := s.A2()
	w1, w1Err := s.W1()
	kpw1, kpw1Err := s.KpW1()
	w2, w2Err := s.W2()
	kpw2, kpw2Err := s.KpW2()
	pRatio, pRatioErr := s.PowerRatio()
	a1kpw1, a1kpw1Err := s.A1OverKpW1Squared()

	lDeph, lDephErr := s.LDephasing()
	kpLDeph, kpLDephErr := s.KpLDephasing()
	tau, tauErr := s.TauOpt()
	wpTau, wpTauErr := s.OmegaPTauOpt()
	fwhm, fwhmErr := s.FWHMDuration()
	gain, gainErr := s.EnergyGain()

	return Report{
		Matched: s.matched,
		Sections: []Section{
			{
				{quantity("np_cm3", "n_p [cm^-3]", np, npErr), known("power_PW", "P [PW]", l.Power())},
				{quantity("inv_kp_um", "1/k_p [um]", invKp, invKpErr), known("a0", "a_0", l.A0())},
				{known("wavelength_um", "lambda [um]", l.Wavelength()), quantity("k_over_kp", "k/k_p", ratio, ratioErr)},
				{known("w0_um", "w_0 [um]", l.W0()), quantity("kpw0", "k_p w_0", kpw0, kpw0Err)},
			},
			{
				{known("zR_um", "z_R [um]", l.RayleighLength()), quantity("kpzR", "k_p z_R", kpzR, kpzRErr)},
				{quantity("zeta_um", "zeta [um]", zeta, zetaErr), quantity("kpzeta", "k_p zeta", kpzeta, kpzetaErr)},
				{quantity("d_um", "d [um]", d, dErr), quantity("kpd", "k_p d", kpd, kpdErr)},
				{quantity("d_eff_um", "d_eff [um]", dEff, dEffErr), quantity("kpd_eff", "k_p d_eff", kpdEff, kpdEffErr)},
				{quantity("dM_um", "d_M [um]", dM, dMErr), quantity("kpdM", "k_p d_M", kpdM, kpdMErr)},
				{quantity("l_um", "l [um]", length, lengthErr), quantity("kpl", "k_p l", kpl, kplErr)},
			},
			{
				{quantity("a1", "a_1", a1, a1Err), quantity("a2", "a_2", a2, a2Err)},
				{quantity("w1_um", "w_1 [um]", w1, w1Err), quantity("kpw1", "k_p w_1", kpw1, kpw1Err)},
				{quantity("w2_um", "w_2 [um]", w2, w2Err), quantity("kpw2", "k_p w_2", kpw2, kpw2Err)},
				{quantity("P_over_Pc", "P/P_c", pRatio, pRatioErr), quantity("a1_over_kpw1_sq", "a_1/(k_p w_1)^2", a1kpw1, a1kpw1Err)},
			},
			{
				{quantity("L_dephasing_um", "L_dephasing [um]", lDeph, lDephErr), quantity("kp_L_dephasing", "k_p L_dephasing", kpLDeph, kpLDephErr)},
				{quantity("tau_opt_fs", "tau_opt [fs]", tau, tauErr), quantity("omega_p_tau_opt", "omega_p * tau_opt", wpTau, wpTauErr)},
				{quantity("fwhm_fs", "FWHM duration [fs]", fwhm, fwhmErr), quantity("energy_gain_GeV", "Energy gain [GeV]", gain, gainErr)},
			},
		},
	}
}
