package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexshd/telescope"
	"github.com/alexshd/telescope/internal/report"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type reportOptions struct {
	laser   laserFlags
	density float64
	offset  float64
	a2      float64
	w2      float64
	match   string
	format  string
	out     string
}

func newReportCmd(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Solve a telescope configuration and print every derived parameter",
		Long: `Build a telescope from the config file, TELESCOPE_* variables and flags,
optionally run one of the matching solvers, and print the parameter table.

Match modes:
  a2       solve density and offset from the given a2
  density  solve a2 and offset from the given density
  offset   derive w2 from the given density, a2 and offset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, root, opts)
		},
	}

	opts.laser.register(cmd)
	cmd.Flags().Float64Var(&opts.density, "density", 0, "Plasma density n_p [cm^-3]")
	cmd.Flags().Float64Var(&opts.offset, "offset", 0, "Lens-to-focus offset d [µm]")
	cmd.Flags().Float64Var(&opts.a2, "a2", 0, "Normalized amplitude at the second focus")
	cmd.Flags().Float64Var(&opts.w2, "w2", 0, "Waist radius at the second focus [µm]")
	cmd.Flags().StringVar(&opts.match, "match", "", "Matching solver to run: a2, density, offset")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, yaml, xlsx")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "-", "Output file (- for stdout)")
	return cmd
}

func runReport(cmd *cobra.Command, root *rootOptions, opts *reportOptions) error {
	if err := oneOf("format", opts.format, "text", "json", "yaml", "xlsx"); err != nil {
		return err
	}
	if opts.match != "" {
		if err := oneOf("match", opts.match, "a2", "density", "offset"); err != nil {
			return err
		}
	}

	logger, err := newLogger(cmd.ErrOrStderr(), root.logLevel, root.noColor)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, root, &opts.laser)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("density") {
		cfg.NpCm3 = telescope.Float(opts.density)
	}
	if flags.Changed("offset") {
		cfg.DUm = telescope.Float(opts.offset)
	}
	if flags.Changed("a2") {
		cfg.A2 = telescope.Float(opts.a2)
		cfg.W2Um = nil
	}
	if flags.Changed("w2") {
		cfg.W2Um = telescope.Float(opts.w2)
		if !flags.Changed("a2") {
			cfg.A2 = nil
		}
	}

	t, err := telescope.New(cfg, telescope.WithLogger(logger))
	if err != nil {
		return err
	}

	switch opts.match {
	case "a2":
		_, err = t.MatchGivenA2()
	case "density":
		_, err = t.MatchGivenDensity()
	case "offset":
		_, err = t.DeriveW2FromOffset()
	}
	if err != nil {
		return err
	}

	r := t.Report()
	logger.Info("report ready", "matched", r.Matched, "match", opts.match, "format", opts.format)

	out, err := openOutput(cmd, opts.out)
	if err != nil {
		return err
	}
	return out.finish(writeReport(out, opts.format, r))
}

func writeReport(w io.Writer, format string, r telescope.Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "xlsx":
		return report.WriteXLSX(w, r)
	case "text":
		return report.WriteText(w, r)
	}
	return fmt.Errorf("unknown format %q", format)
}
