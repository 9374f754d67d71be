package telescope

// Calibration constants of the plasma telescope scaling laws.
const (
	// P0 converts laser power [PW] into the normalized amplitude a0:
	//
	//	a0 = sqrt(P / P0) · λ / w0
	P0 = 2.1491120853293987e-5

	// MatchingPower is the power-balance coefficient of the matched condition:
	//
	//	P = MatchingPower · a2³ · (k/kp)²
	MatchingPower = 2.1775058026562748e-6

	// FWHMFactor converts the optimal duration into a FWHM duration (sqrt(2 ln 2)).
	FWHMFactor = 1.1774100225154747

	// ElectronRestEnergyGeV is m_e c² in GeV.
	ElectronRestEnergyGeV = 0.0005109989499961642
)

// Constants supplies the physical constants the engine depends on.
// Implementations must be pure lookups.
type Constants interface {
	ClassicalElectronRadius() float64 // cm
	SpeedOfLight() float64            // m/s
}

// codata holds CODATA 2018 values.
type codata struct{}

func (codata) ClassicalElectronRadius() float64 { return 2.8179403262e-13 }
func (codata) SpeedOfLight() float64            { return 299792458.0 }

// CODATA is the default constants provider.
var CODATA Constants = codata{}
