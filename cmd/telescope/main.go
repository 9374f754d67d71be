// Command telescope computes plasma-telescope configurations.
//
//	telescope report --power 0.17397 --w0 5 --a2 6.2 --match a2
//	telescope scan --param a2 --min 3 --max 14 --steps 23 --format xlsx --out scan.xlsx
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alexshd/telescope"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var version = "dev"

// =============================================================================
// ROOT COMMAND
// =============================================================================

type rootOptions struct {
	configPath string
	logLevel   string
	noColor    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "telescope",
		Short:         "Plasma telescope parameter calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (laser and optional state)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored log output")

	root.AddCommand(newReportCmd(opts), newScanCmd(opts), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "telescope %s\n", version)
		},
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// newLogger builds a tint handler on w. Color is disabled when requested or
// when w is not a terminal.
func newLogger(w io.Writer, level string, noColor bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		noColor = true
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})), nil
}

// loadConfig layers defaults, the config file, TELESCOPE_* variables and
// finally the laser flags that were set explicitly.
func loadConfig(cmd *cobra.Command, opts *rootOptions, laser *laserFlags) (telescope.Config, error) {
	cfg := telescope.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := telescope.LoadConfig(opts.configPath)
		if err != nil {
			return telescope.Config{}, err
		}
		cfg = *loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return telescope.Config{}, err
	}
	laser.apply(cmd, &cfg)
	return cfg, nil
}

type laserFlags struct {
	wavelength float64
	power      float64
	w0         float64
}

func (l *laserFlags) register(cmd *cobra.Command) {
	d := telescope.DefaultConfig()
	cmd.Flags().Float64Var(&l.wavelength, "wavelength", d.WavelengthUm, "Laser wavelength [µm]")
	cmd.Flags().Float64Var(&l.power, "power", d.PowerPW, "Laser power [PW]")
	cmd.Flags().Float64Var(&l.w0, "w0", d.W0Um, "Focal-spot waist radius [µm]")
}

func (l *laserFlags) apply(cmd *cobra.Command, cfg *telescope.Config) {
	if cmd.Flags().Changed("wavelength") {
		cfg.WavelengthUm = l.wavelength
	}
	if cmd.Flags().Changed("power") {
		cfg.PowerPW = l.power
	}
	if cmd.Flags().Changed("w0") {
		cfg.W0Um = l.w0
	}
}

// output is the destination of a command: stdout or a created file.
type output struct {
	io.Writer
	path string
	file *os.File
}

// openOutput returns stdout for "" or "-", otherwise a created file.
func openOutput(cmd *cobra.Command, path string) (*output, error) {
	if path == "" || path == "-" {
		return &output{Writer: cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return &output{Writer: f, path: path, file: f}, nil
}

// finish closes the output. When err is non-nil the partial file is removed
// and every failure is returned together.
func (o *output) finish(err error) error {
	if o.file == nil {
		return err
	}
	closeErr := o.file.Close()
	if err == nil {
		return closeErr
	}
	return errors.Join(err, closeErr, os.Remove(o.path))
}

func oneOf(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid --%s %q (want %s)", name, value, strings.Join(allowed, "|"))
}
