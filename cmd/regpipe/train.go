package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/regpipe/pipeline"
	"github.com/YuminosukeSato/regpipe/pkg/config"
	"github.com/YuminosukeSato/regpipe/pkg/errors"
	"github.com/YuminosukeSato/regpipe/pkg/log"
	"github.com/YuminosukeSato/regpipe/preprocessing"
	"github.com/YuminosukeSato/regpipe/report"
	"github.com/YuminosukeSato/regpipe/training"
)

var (
	trainModel        string
	trainData         string
	trainPlot         string
	trainFitIntercept bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run the training pipeline and print the evaluation summary",
	Long: `Ingest the dataset, clean and split it, fit the selected model and
evaluate it on the held-out rows. A YAML summary with the run ID, metrics and
fitted coefficients is written to stdout. Logs go to stderr.`,
	Example: `  regpipe train
  regpipe train -m LinearRegressionModel --data data/customers_dataset.csv
  regpipe train --plot predictions.png --fit-intercept=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if f.Changed("model") {
			cfg.Model = trainModel
		}
		if f.Changed("data") {
			cfg.DataPath = trainData
		}
		if f.Changed("plot") {
			cfg.PlotPath = trainPlot
		}
		if f.Changed("fit-intercept") {
			if cfg.ModelOptions == nil {
				cfg.ModelOptions = map[string]interface{}{}
			}
			cfg.ModelOptions["fit_intercept"] = trainFitIntercept
		}

		registry := training.DefaultRegistry()
		if !registry.Has(cfg.Model) {
			return errors.NewValidationError("model",
				"unknown model kind, supported: "+strings.Join(registry.Kinds(), ", "), cfg.Model)
		}

		p := newPipeline(cfg, registry)
		res, err := p.Execute(cmd.Context(), cfg.DataPath, cfg.Model)
		if err != nil {
			return err
		}

		summary := res.Summary()
		if cfg.PlotPath != "" {
			title := fmt.Sprintf("%s: predicted vs actual", res.Model)
			if err := report.WritePredictionPlot(cfg.PlotPath, title, res.TestY, res.Predictions); err != nil {
				return err
			}
			summary.PlotPath = cfg.PlotPath
			logger.Info("Prediction plot written", log.PathKey, cfg.PlotPath)
		}
		return report.WriteSummary(cmd.OutOrStdout(), summary)
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().StringVarP(&trainModel, "model", "m", config.DefaultModel, "model kind to train")
	trainCmd.Flags().StringVar(&trainData, "data", "", "path to the CSV dataset (default from config)")
	trainCmd.Flags().StringVar(&trainPlot, "plot", "", "write a predicted-vs-actual PNG to this path")
	trainCmd.Flags().BoolVar(&trainFitIntercept, "fit-intercept", true, "fit an intercept term")
}

// newPipeline maps the configuration onto pipeline options.
func newPipeline(c *config.Config, registry *training.Registry) *pipeline.Pipeline {
	return pipeline.New(
		pipeline.WithLogger(log.NewSlogLogger(logger)),
		pipeline.WithRegistry(registry),
		pipeline.WithSchema(preprocessing.Schema{
			DropColumns:    c.DropColumns,
			MedianColumns:  c.MedianColumns,
			TextFillColumn: c.TextFillColumn,
			TextFillValue:  c.TextFillValue,
		}),
		pipeline.WithSplitConfig(preprocessing.SplitConfig{
			LabelColumn: c.LabelColumn,
			TestSize:    c.TestSize,
			Seed:        c.RandomSeed,
		}),
		pipeline.WithModelOptions(training.Options(c.ModelOptions)),
		pipeline.WithDelimiter(c.DelimiterRune()),
	)
}
