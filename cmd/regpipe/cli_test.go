package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
	"github.com/YuminosukeSato/regpipe/report"
)

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// cobra keeps flag values and Changed state between Execute calls
	for _, c := range []struct {
		name string
		def  string
	}{{"model", "LinearRegressionModel"}, {"data", ""}, {"plot", ""}, {"fit-intercept", "true"}} {
		if fl := trainCmd.Flags().Lookup(c.name); fl != nil {
			_ = fl.Value.Set(c.def)
			fl.Changed = false
		}
	}
	if fl := inspectCmd.Flags().Lookup("data"); fl != nil {
		_ = fl.Value.Set("")
		fl.Changed = false
	}
	for _, name := range []string{"config", "log-level"} {
		if fl := rootCmd.PersistentFlags().Lookup(name); fl != nil {
			_ = fl.Value.Set("")
			fl.Changed = false
		}
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// fixture writes a two-feature CSV and a config that disables the default
// cleaning schema.
func fixture(t *testing.T) (dataPath, cfgPath string) {
	t.Helper()
	dir := t.TempDir()

	var b strings.Builder
	b.WriteString("x1,x2,review_score\n")
	for i := 0; i < 50; i++ {
		x1 := float64(i%7) - 3
		x2 := float64(i%5) * 0.5
		fmt.Fprintf(&b, "%g,%g,%g\n", x1, x2, 2*x1+3*x2+1)
	}
	dataPath = filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(b.String()), 0o644))

	cfgPath = filepath.Join(dir, "regpipe.yaml")
	cfgYAML := "drop_columns: []\nmedian_columns: []\ntext_fill_column: \"\"\nlog_level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))
	return dataPath, cfgPath
}

func TestTrainCommand(t *testing.T) {
	dataPath, cfgPath := fixture(t)
	plotPath := filepath.Join(t.TempDir(), "pred.png")

	out, err := runCmd(t, "train", "--config", cfgPath, "--data", dataPath, "--plot", plotPath)
	require.NoError(t, err)

	var s report.Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &s))
	assert.Equal(t, "LinearRegressionModel", s.Model)
	assert.Equal(t, dataPath, s.DataPath)
	assert.Equal(t, 40, s.TrainSamples)
	assert.Equal(t, 10, s.TestSamples)
	assert.InDelta(t, 1.0, s.Metrics.R2, 1e-9)
	assert.InDelta(t, 0.0, s.Metrics.MSE, 1e-9)
	require.NotNil(t, s.Weights)
	assert.Equal(t, []string{"x1", "x2"}, s.Weights.Features)
	assert.InDeltaSlice(t, []float64{2, 3}, s.Weights.Coefficients, 1e-9)
	assert.InDelta(t, 1.0, s.Weights.Intercept, 1e-9)
	assert.NotEmpty(t, s.RunID)

	assert.Equal(t, plotPath, s.PlotPath)
	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestTrainCommandWithoutIntercept(t *testing.T) {
	dataPath, cfgPath := fixture(t)

	out, err := runCmd(t, "train", "--config", cfgPath, "--data", dataPath, "--fit-intercept=false")
	require.NoError(t, err)

	var s report.Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &s))
	require.NotNil(t, s.Weights)
	assert.Equal(t, 0.0, s.Weights.Intercept)
	assert.Empty(t, s.PlotPath)
}

func TestTrainCommandErrors(t *testing.T) {
	dataPath, cfgPath := fixture(t)

	tests := []struct {
		name   string
		args   []string
		target interface{}
	}{
		{
			name:   "unknown model",
			args:   []string{"train", "--config", cfgPath, "--data", dataPath, "-m", "RandomForest"},
			target: new(*errors.ValidationError),
		},
		{
			name:   "missing data file",
			args:   []string{"train", "--config", cfgPath, "--data", filepath.Join(t.TempDir(), "nope.csv")},
			target: new(*errors.IOError),
		},
		{
			name:   "missing config file",
			args:   []string{"train", "--config", filepath.Join(t.TempDir(), "nope.yaml")},
			target: new(*errors.IOError),
		},
		{
			name:   "bad log level",
			args:   []string{"train", "--config", cfgPath, "--data", dataPath, "--log-level", "verbose"},
			target: new(*errors.ValidationError),
		},
		{
			name:   "default schema on a file without its columns",
			args:   []string{"train", "--data", dataPath, "--log-level", "error"},
			target: new(*errors.DataError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "got %T: %v", err, err)
			assert.Empty(t, out)
		})
	}
}

func TestInspectCommand(t *testing.T) {
	dataPath, cfgPath := fixture(t)

	out, err := runCmd(t, "inspect", "--config", cfgPath, "--data", dataPath)
	require.NoError(t, err)

	assert.Contains(t, out, "50 rows, 3 columns")
	for _, col := range []string{"x1", "x2", "review_score"} {
		assert.Contains(t, out, col)
	}
}
