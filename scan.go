package telescope

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ScanParam names the input swept by Scan.
type ScanParam string

const (
	ScanA2      ScanParam = "a2"      // sweep a2, solve with MatchGivenA2
	ScanDensity ScanParam = "density" // sweep n_p, solve with MatchGivenDensity
)

// Scale selects how grid points are spaced between Min and Max.
type Scale string

const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// ScanConfig controls a matched-configuration sweep.
type ScanConfig struct {
	Param   ScanParam `json:"param" yaml:"param" validate:"oneof=a2 density"`
	Min     float64   `json:"min" yaml:"min" validate:"gt=0"`
	Max     float64   `json:"max" yaml:"max" validate:"gtefield=Min"`
	Steps   int       `json:"steps" yaml:"steps" validate:"gte=1"`
	Scale   Scale     `json:"scale" yaml:"scale" validate:"oneof=linear log"`
	Workers int       `json:"workers" yaml:"workers" validate:"gte=0"` // 0 = NumCPU
}

// DefaultScanConfig sweeps a2 from 2 to 10 in 33 linear steps.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Param: ScanA2,
		Min:   2,
		Max:   10,
		Steps: 33,
		Scale: ScaleLinear,
	}
}

// Validate checks the sweep bounds.
func (c ScanConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("scan config: %v: %w", err, ErrConfiguration)
	}
	return nil
}

// Grid returns the sweep inputs.
func (c ScanConfig) Grid() []float64 {
	if c.Steps <= 1 {
		return []float64{c.Min}
	}
	grid := make([]float64, c.Steps)
	n := float64(c.Steps - 1)
	for i := range grid {
		u := float64(i) / n
		switch c.Scale {
		case ScaleLog:
			lnMin, lnMax := math.Log(c.Min), math.Log(c.Max)
			grid[i] = math.Exp(lnMin + u*(lnMax-lnMin))
		default:
			grid[i] = c.Min + u*(c.Max-c.Min)
		}
	}
	grid[len(grid)-1] = c.Max
	return grid
}

// ScanPoint is the outcome of solving one grid input.
type ScanPoint struct {
	Index   int                `json:"index" yaml:"index"`
	Input   float64            `json:"input" yaml:"input"`
	Matched bool               `json:"matched" yaml:"matched"`
	Values  map[string]float64 `json:"values,omitempty" yaml:"values,omitempty"`
	Error   string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the point was solved.
func (p ScanPoint) OK() bool {
	return p.Matched && p.Error == ""
}

// Scan solves the matched configuration for every grid input of sc with the
// laser of base. Each point uses a fresh Telescope; per-point failures (for
// example a negative matched-offset radicand) are recorded on the point and
// do not stop the sweep. The returned error is non-nil only for invalid
// configs or context cancellation.
func Scan(ctx context.Context, base Config, sc ScanConfig, opts ...Option) ([]ScanPoint, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	laserOnly := Config{WavelengthUm: base.WavelengthUm, PowerPW: base.PowerPW, W0Um: base.W0Um}
	if err := laserOnly.Validate(); err != nil {
		return nil, err
	}

	workers := sc.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	grid := sc.Grid()
	points := make([]ScanPoint, len(grid))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, input := range grid {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			points[i] = solvePoint(laserOnly, sc.Param, i, input, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}
	return points, nil
}

func solvePoint(cfg Config, param ScanParam, index int, input float64, opts []Option) ScanPoint {
	point := ScanPoint{Index: index, Input: input}

	switch param {
	case ScanDensity:
		cfg.NpCm3 = Float(input)
	default:
		cfg.A2 = Float(input)
	}

	t, err := New(cfg, opts...)
	if err != nil {
		point.Error = err.Error()
		return point
	}

	if param == ScanDensity {
		_, err = t.MatchGivenDensity()
	} else {
		_, err = t.MatchGivenA2()
	}
	if err != nil {
		point.Error = err.Error()
		return point
	}

	r := t.Report()
	point.Matched = r.Matched
	point.Values = r.Values()
	return point
}

// Summarize counts solved and failed points.
func Summarize(points []ScanPoint) (ok, ng int) {
	for _, p := range points {
		if p.OK() {
			ok++
		} else {
			ng++
		}
	}
	return ok, ng
}
