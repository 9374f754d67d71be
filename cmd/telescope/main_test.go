package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/alexshd/telescope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// referencePower gives a0 ≈ 14.4 for a 0.8 µm, 5 µm waist laser.
var referencePower = strconv.FormatFloat(5.0/27*0.9394372786996513, 'g', -1, 64)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if !slices.Contains(args, "--log-level") {
		args = append(args, "--log-level", "error")
	}
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func referenceArgs(cmd string, extra ...string) []string {
	return append([]string{cmd, "--wavelength", "0.8", "--power", referencePower, "--w0", "5"}, extra...)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "telescope dev\n", out)
}

func TestReport_Text(t *testing.T) {
	out, err := run(t, referenceArgs("report", "--a2", "6.2", "--match", "a2")...)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, strings.Repeat("-", 76)))
	assert.Contains(t, out, "a_2")
	assert.NotContains(t, out, "n/a")
}

func TestReport_JSON(t *testing.T) {
	out, err := run(t, referenceArgs("report", "--a2", "6.2", "--match", "a2", "--format", "json")...)
	require.NoError(t, err)

	var r telescope.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.True(t, r.Matched)

	kpd, ok := r.Lookup("kpd")
	require.True(t, ok)
	assert.InDelta(t, 10.57, kpd.Value, 0.05)
}

func TestReport_YAML(t *testing.T) {
	out, err := run(t, referenceArgs("report", "--density", "1e18", "--format", "yaml")...)
	require.NoError(t, err)

	var r telescope.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.False(t, r.Matched)

	np, ok := r.Lookup("np_cm3")
	require.True(t, ok)
	assert.True(t, np.OK)
	assert.Equal(t, 1e18, np.Value)

	a2, ok := r.Lookup("a2")
	require.True(t, ok)
	assert.False(t, a2.OK, "a2 was never set")
}

func TestReport_XLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	_, err := run(t, referenceArgs("report", "--a2", "8", "--match", "a2", "--format", "xlsx", "--out", path)...)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Parameters")
	require.NoError(t, err)
	assert.Greater(t, len(rows), 30)
}

func TestReport_MatchFailure(t *testing.T) {
	_, err := run(t, referenceArgs("report", "--a2", "4", "--match", "a2")...)
	require.Error(t, err)
	assert.ErrorIs(t, err, telescope.ErrDomain)
}

func TestReport_MatchWithoutInput(t *testing.T) {
	_, err := run(t, referenceArgs("report", "--match", "density")...)
	require.Error(t, err)
	assert.ErrorIs(t, err, telescope.ErrUninitialized)
}

func TestReport_InvalidFlags(t *testing.T) {
	_, err := run(t, "report", "--format", "pdf")
	assert.ErrorContains(t, err, "invalid --format")

	_, err = run(t, "report", "--match", "w2")
	assert.ErrorContains(t, err, "invalid --match")

	_, err = run(t, "report", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestReport_ConfigAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telescope.yaml")
	content := "wavelength_um: 0.8\npower_PW: 1.0\nw0_um: 5\nnp_cm3: 1.0e+18\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// Env overrides the file, flags override env.
	t.Setenv("TELESCOPE_W0_UM", "7")
	out, err := run(t, "report", "--config", path, "--power", referencePower, "--format", "json")
	require.NoError(t, err)

	var r telescope.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))

	w0, _ := r.Lookup("w0_um")
	assert.Equal(t, 7.0, w0.Value)
	power, _ := r.Lookup("power_PW")
	assert.InDelta(t, 0.17397, power.Value, 1e-4)
	np, _ := r.Lookup("np_cm3")
	assert.Equal(t, 1e18, np.Value)
}

func TestScan_TSV(t *testing.T) {
	out, err := run(t, referenceArgs("scan", "--min", "3", "--max", "14", "--steps", "12", "--workers", "4")...)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(out))
	r.Comma = '\t'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 13)

	header := records[0]
	errCol := len(header) - 1
	assert.Equal(t, "error", header[errCol])

	// a2 = 3, 4, 5 leave a negative kp*zeta; 7 and up match.
	for _, rec := range records[1:4] {
		assert.NotEmpty(t, rec[errCol], "a2=%s", rec[1])
	}
	for _, rec := range records[5:] {
		assert.Empty(t, rec[errCol], "a2=%s", rec[1])
	}
}

func TestScan_ParetoJSON(t *testing.T) {
	out, err := run(t, referenceArgs("scan", "--min", "7", "--max", "14", "--steps", "8", "--format", "json", "--pareto")...)
	require.NoError(t, err)

	var points []telescope.ScanPoint
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	require.NotEmpty(t, points)
	assert.LessOrEqual(t, len(points), 8)
	for _, p := range points {
		assert.True(t, p.OK())
	}
}

func TestScan_InvalidConfig(t *testing.T) {
	_, err := run(t, referenceArgs("scan", "--param", "w2")...)
	require.Error(t, err)
	assert.ErrorIs(t, err, telescope.ErrConfiguration)

	_, err = run(t, referenceArgs("scan", "--min", "5", "--max", "1")...)
	assert.ErrorIs(t, err, telescope.ErrConfiguration)
}

func TestOutput_FinishRemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.tsv")

	out, err := openOutput(newRootCmd(), path)
	require.NoError(t, err)
	_, err = out.Write([]byte("No\ta2\n1\t"))
	require.NoError(t, err)

	writeErr := errors.New("disk full")
	err = out.finish(writeErr)
	require.ErrorIs(t, err, writeErr)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial output should be removed, stat: %v", statErr)
}

func TestOutput_FinishKeepsCompleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	out, err := openOutput(newRootCmd(), path)
	require.NoError(t, err)
	_, err = out.Write([]byte("ok\n"))
	require.NoError(t, err)
	require.NoError(t, out.finish(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(data))

	// Closing twice surfaces the second Close error.
	assert.Error(t, out.finish(nil))
}

func TestOutput_StdoutPassesErrorThrough(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)

	out, err := openOutput(cmd, "-")
	require.NoError(t, err)
	writeErr := errors.New("broken pipe")
	assert.Equal(t, writeErr, out.finish(writeErr))
	assert.NoError(t, out.finish(nil))
}
