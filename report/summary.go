package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/regpipe/core/model"
	"github.com/YuminosukeSato/regpipe/metrics"
	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// Summary is what `regpipe train` prints when a run succeeds.
type Summary struct {
	RunID        string         `yaml:"run_id"`
	Model        string         `yaml:"model"`
	DataPath     string         `yaml:"data_path"`
	TrainSamples int            `yaml:"train_samples"`
	TestSamples  int            `yaml:"test_samples"`
	Metrics      metrics.Report `yaml:"metrics"`
	Weights      *model.Weights `yaml:"weights,omitempty"`
	PlotPath     string         `yaml:"plot_path,omitempty"`
}

// WriteSummary encodes s as YAML.
func WriteSummary(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "encode summary")
	}
	return errors.WithStack(enc.Close())
}
