package telescope

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read by ApplyEnv.
const EnvPrefix = "TELESCOPE_"

// Config holds construction inputs for a Telescope.
//
// The laser fields are required. The optional fields pre-populate state in
// the order density, offset, a2, w2; when both a2 and w2 are given the
// later write (w2) wins.
type Config struct {
	WavelengthUm float64 `json:"wavelength_um" yaml:"wavelength_um" env:"WAVELENGTH_UM" validate:"gt=0"`
	PowerPW      float64 `json:"power_PW" yaml:"power_PW" env:"POWER_PW" validate:"gt=0"`
	W0Um         float64 `json:"w0_um" yaml:"w0_um" env:"W0_UM" validate:"gt=0"`

	NpCm3 *float64 `json:"np_cm3,omitempty" yaml:"np_cm3,omitempty" env:"NP_CM3" validate:"omitempty,gt=0"`
	DUm   *float64 `json:"d_um,omitempty" yaml:"d_um,omitempty" env:"D_UM" validate:"omitempty,gt=0"`
	A2    *float64 `json:"a2,omitempty" yaml:"a2,omitempty" env:"A2" validate:"omitempty,gt=0"`
	W2Um  *float64 `json:"w2_um,omitempty" yaml:"w2_um,omitempty" env:"W2_UM" validate:"omitempty,gt=0"`
}

// DefaultConfig returns an 0.8 µm, 1 PW laser focused to a 10 µm waist with
// no plasma, focusing or geometry state.
func DefaultConfig() Config {
	return Config{
		WavelengthUm: 0.8,
		PowerPW:      1.0,
		W0Um:         10.0,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.WavelengthUm != 0 {
		c.WavelengthUm = source.WavelengthUm
	}
	if source.PowerPW != 0 {
		c.PowerPW = source.PowerPW
	}
	if source.W0Um != 0 {
		c.W0Um = source.W0Um
	}
	if source.NpCm3 != nil {
		c.NpCm3 = source.NpCm3
	}
	if source.DUm != nil {
		c.DUm = source.DUm
	}
	if source.A2 != nil {
		c.A2 = source.A2
	}
	if source.W2Um != nil {
		c.W2Um = source.W2Um
	}
}

// ApplyEnv overlays TELESCOPE_* environment variables onto c. a2 and w2_um
// describe the same focus, so one of them set in the environment clears the
// other from c.
func (c *Config) ApplyEnv() error {
	var loaded Config
	if err := env.ParseWithOptions(&loaded, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	switch {
	case loaded.A2 != nil && loaded.W2Um == nil:
		c.W2Um = nil
	case loaded.W2Um != nil && loaded.A2 == nil:
		c.A2 = nil
	}
	c.Merge(&loaded)
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every supplied input is strictly positive.
// Violations are reported as ErrDomain.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s=%v", fe.Field(), fe.Value()))
	}
	return fmt.Errorf("config: non-positive inputs [%s]: %w", strings.Join(fields, ", "), ErrDomain)
}

// Laser builds the laser described by the config.
func (c Config) Laser() (Laser, error) {
	return NewLaser(c.WavelengthUm, c.PowerPW, c.W0Um)
}

// LoadConfig reads a YAML config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// Float returns a pointer to v, for filling the optional Config fields.
func Float(v float64) *float64 {
	return &v
}
