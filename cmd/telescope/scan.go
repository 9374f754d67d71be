package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexshd/telescope"
	"github.com/alexshd/telescope/internal/report"
	"github.com/spf13/cobra"
)

type scanOptions struct {
	laser   laserFlags
	param   string
	min     float64
	max     float64
	steps   int
	scale   string
	workers int
	format  string
	out     string
	pareto  bool
}

func newScanCmd(root *rootOptions) *cobra.Command {
	opts := &scanOptions{}
	d := telescope.DefaultScanConfig()

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Sweep a2 or density across a grid and solve each point",
		Long: `Sweep one matching input across a grid. Every point builds a fresh
telescope from the laser alone, runs the matching solver for the swept
parameter and records all derived values. Points that cannot be matched
are kept with their failure reason.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, root, opts)
		},
	}

	opts.laser.register(cmd)
	cmd.Flags().StringVar(&opts.param, "param", string(d.Param), "Swept parameter: a2, density")
	cmd.Flags().Float64Var(&opts.min, "min", d.Min, "Grid start")
	cmd.Flags().Float64Var(&opts.max, "max", d.Max, "Grid end (inclusive)")
	cmd.Flags().IntVar(&opts.steps, "steps", d.Steps, "Number of grid points")
	cmd.Flags().StringVar(&opts.scale, "scale", string(d.Scale), "Grid spacing: linear, log")
	cmd.Flags().IntVar(&opts.workers, "workers", d.Workers, "Concurrent solvers (0 = all CPUs)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "tsv", "Output format: tsv, json, xlsx")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "-", "Output file (- for stdout)")
	cmd.Flags().BoolVar(&opts.pareto, "pareto", false, "Keep only the energy-gain versus lens-length Pareto front")
	return cmd
}

func runScan(cmd *cobra.Command, root *rootOptions, opts *scanOptions) error {
	if err := oneOf("format", opts.format, "tsv", "json", "xlsx"); err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), root.logLevel, root.noColor)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, root, &opts.laser)
	if err != nil {
		return err
	}

	sc := telescope.ScanConfig{
		Param:   telescope.ScanParam(opts.param),
		Min:     opts.min,
		Max:     opts.max,
		Steps:   opts.steps,
		Scale:   telescope.Scale(opts.scale),
		Workers: opts.workers,
	}

	logger.Info("scan starting", "param", sc.Param, "min", sc.Min, "max", sc.Max, "steps", sc.Steps, "scale", sc.Scale)
	points, err := telescope.Scan(cmd.Context(), cfg, sc, telescope.WithLogger(logger))
	if err != nil {
		return err
	}

	ok, ng := telescope.Summarize(points)
	logger.Info("scan finished", "ok", ok, "ng", ng)

	if opts.pareto {
		points = telescope.ParetoFront(points)
		logger.Info("pareto front", "points", len(points))
	}

	out, err := openOutput(cmd, opts.out)
	if err != nil {
		return err
	}
	return out.finish(writeScan(out, opts.format, sc.Param, points))
}

func writeScan(w io.Writer, format string, param telescope.ScanParam, points []telescope.ScanPoint) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	case "xlsx":
		return report.WriteScanXLSX(w, param, points)
	case "tsv":
		return report.WriteScanTSV(w, param, points)
	}
	return fmt.Errorf("unknown format %q", format)
}
