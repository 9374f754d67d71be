package telescope

import "math"

// Converter translates between plasma density, skin depth and the ratio of
// laser to plasma wavenumber.
//
//	1/kp [µm] = (4π·r_e·n_p)^(-1/2) · 1e3
//	k/kp      = (1/kp) / (1/k)
//
// Results that overflow or underflow out of (0, +Inf) are rejected with
// ErrDomain. It holds no state besides the constants it was built with.
type Converter struct {
	re float64 // classical electron radius [cm]
}

// NewConverter creates a converter backed by the given constants.
func NewConverter(c Constants) Converter {
	if c == nil {
		c = CODATA
	}
	return Converter{re: c.ClassicalElectronRadius()}
}

// DensityToSkinDepth returns 1/kp [µm] for a density n_p [cm⁻³].
func (c Converter) DensityToSkinDepth(np float64) (float64, error) {
	if !positive(np) {
		return 0, domainError("DensityToSkinDepth", "np_cm3", np)
	}
	invKp := math.Pow(4*math.Pi*c.re*np, -0.5) * 1e3
	if !positive(invKp) {
		return 0, domainError("DensityToSkinDepth", "np_cm3", np)
	}
	return invKp, nil
}

// SkinDepthToDensity is the algebraic inverse of DensityToSkinDepth.
func (c Converter) SkinDepthToDensity(invKp float64) (float64, error) {
	if !positive(invKp) {
		return 0, domainError("SkinDepthToDensity", "inv_kp_um", invKp)
	}
	np := 1e6 / (4 * math.Pi * c.re * invKp * invKp)
	if !positive(np) {
		return 0, domainError("SkinDepthToDensity", "inv_kp_um", invKp)
	}
	return np, nil
}

// SkinDepthToRatio returns k/kp.
func (c Converter) SkinDepthToRatio(invKp, oneOverK float64) (float64, error) {
	if !positive(invKp) {
		return 0, domainError("SkinDepthToRatio", "inv_kp_um", invKp)
	}
	if !positive(oneOverK) {
		return 0, domainError("SkinDepthToRatio", "one_over_k_um", oneOverK)
	}
	ratio := invKp / oneOverK
	if !positive(ratio) {
		return 0, domainError("SkinDepthToRatio", "inv_kp_um", invKp)
	}
	return ratio, nil
}

// RatioToSkinDepth returns 1/kp [µm] for a given k/kp.
func (c Converter) RatioToSkinDepth(ratio, oneOverK float64) (float64, error) {
	if !positive(ratio) {
		return 0, domainError("RatioToSkinDepth", "k_over_kp", ratio)
	}
	if !positive(oneOverK) {
		return 0, domainError("RatioToSkinDepth", "one_over_k_um", oneOverK)
	}
	invKp := ratio * oneOverK
	if !positive(invKp) {
		return 0, domainError("RatioToSkinDepth", "k_over_kp", ratio)
	}
	return invKp, nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
