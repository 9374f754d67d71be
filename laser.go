package telescope

import "math"

// Laser is the immutable drive laser: wavelength [µm], power [PW] and
// focal-spot waist radius [µm]. Derived quantities are computed on demand.
type Laser struct {
	wavelength float64
	power      float64
	w0         float64
}

// NewLaser validates and freezes the laser parameters.
func NewLaser(wavelengthUm, powerPW, w0Um float64) (Laser, error) {
	switch {
	case !positive(wavelengthUm):
		return Laser{}, domainError("NewLaser", "wavelength_um", wavelengthUm)
	case !positive(powerPW):
		return Laser{}, domainError("NewLaser", "power_PW", powerPW)
	case !positive(w0Um):
		return Laser{}, domainError("NewLaser", "w0_um", w0Um)
	}
	return Laser{wavelength: wavelengthUm, power: powerPW, w0: w0Um}, nil
}

func (l Laser) Wavelength() float64 { return l.wavelength }
func (l Laser) Power() float64      { return l.power }
func (l Laser) W0() float64         { return l.w0 }

// OneOverK returns λ/2π [µm].
func (l Laser) OneOverK() float64 {
	return l.wavelength / (2 * math.Pi)
}

// A0 returns the normalized vacuum amplitude at focus.
func (l Laser) A0() float64 {
	return math.Sqrt(l.power/P0) * l.wavelength / l.w0
}

// RayleighLength returns z_R = π·w0²/λ [µm].
func (l Laser) RayleighLength() float64 {
	return math.Pi / l.wavelength * l.w0 * l.w0
}
