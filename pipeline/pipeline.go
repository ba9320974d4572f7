// Package pipeline runs the training job: Ingest, Clean, Split, Train and
// Evaluate, strictly in that order, on one goroutine.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regpipe/core/model"
	"github.com/YuminosukeSato/regpipe/dataset"
	"github.com/YuminosukeSato/regpipe/metrics"
	"github.com/YuminosukeSato/regpipe/pkg/errors"
	"github.com/YuminosukeSato/regpipe/pkg/log"
	"github.com/YuminosukeSato/regpipe/preprocessing"
	"github.com/YuminosukeSato/regpipe/report"
	"github.com/YuminosukeSato/regpipe/training"
)

// Pipeline holds the configuration of a training run. It keeps no state
// between runs and may be reused.
type Pipeline struct {
	logger       log.Logger
	schema       preprocessing.Schema
	split        preprocessing.SplitConfig
	registry     *training.Registry
	modelOptions training.Options
	observer     Observer
	delimiter    rune
	newRunID     func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default: log.Nop().
func WithLogger(l log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithSchema sets the cleaning schema. Default: preprocessing.DefaultSchema().
func WithSchema(s preprocessing.Schema) Option {
	return func(p *Pipeline) { p.schema = s }
}

// WithSplitConfig sets label column, test size and seed.
func WithSplitConfig(c preprocessing.SplitConfig) Option {
	return func(p *Pipeline) { p.split = c }
}

// WithRegistry sets the model registry. Default: training.DefaultRegistry().
func WithRegistry(r *training.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithModelOptions sets the options forwarded to the model constructor.
func WithModelOptions(o training.Options) Option {
	return func(p *Pipeline) { p.modelOptions = o }
}

// WithObserver registers a hook called around every step.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithDelimiter sets the CSV field delimiter.
func WithDelimiter(r rune) Option {
	return func(p *Pipeline) { p.delimiter = r }
}

// WithRunID replaces the run ID generator (uuid v4 by default).
func WithRunID(gen func() string) Option {
	return func(p *Pipeline) { p.newRunID = gen }
}

// New builds a Pipeline with defaults for everything not set by opts.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:    log.Nop(),
		schema:    preprocessing.DefaultSchema(),
		split:     preprocessing.DefaultSplitConfig(),
		registry:  training.DefaultRegistry(),
		observer:  nopObserver{},
		delimiter: ',',
		newRunID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is everything a run produced. Run returns only Report.
type Result struct {
	RunID    string
	Model    string
	DataPath string

	Report  metrics.Report
	Weights *model.Weights

	Features    []string
	TestY       *mat.VecDense
	Predictions *mat.VecDense

	TrainSamples int
	TestSamples  int
}

// Summary converts the result for printing.
func (r *Result) Summary() report.Summary {
	return report.Summary{
		RunID:        r.RunID,
		Model:        r.Model,
		DataPath:     r.DataPath,
		TrainSamples: r.TrainSamples,
		TestSamples:  r.TestSamples,
		Metrics:      r.Report,
		Weights:      r.Weights,
	}
}

// Run executes the pipeline with default settings.
func Run(ctx context.Context, dataPath, kind string) (metrics.Report, error) {
	return New().Run(ctx, dataPath, kind)
}

// Run executes the pipeline and returns the evaluation report.
func (p *Pipeline) Run(ctx context.Context, dataPath, kind string) (metrics.Report, error) {
	res, err := p.Execute(ctx, dataPath, kind)
	if err != nil {
		return metrics.Report{}, err
	}
	return res.Report, nil
}

// Execute runs every step in order. The first failing step's error is
// returned as is, and no partial result is produced. The context is checked
// between steps.
func (p *Pipeline) Execute(ctx context.Context, dataPath, kind string) (*Result, error) {
	res := &Result{
		RunID:    p.newRunID(),
		Model:    kind,
		DataPath: dataPath,
	}
	logger := p.logger.With(log.RunIDKey, res.RunID, log.ModelNameKey, kind)

	// 未知のモデル種別はデータを読む前に設定エラーとして返す
	if !p.registry.Has(kind) {
		_, err := p.registry.New(kind, p.modelOptions)
		logger.Error("Pipeline configuration rejected", log.ErrAttrKey, err)
		return nil, err
	}

	logger.Info("Pipeline started", log.PathKey, dataPath)
	start := time.Now()

	var (
		raw     *dataset.Dataset
		cleaned *dataset.Dataset
		split   *preprocessing.TrainTestSplit
		fitted  model.Regressor
		ev      *metrics.Evaluation
	)

	steps := []struct {
		name string
		run  func(l log.Logger) error
	}{
		{log.StepIngest, func(l log.Logger) (err error) {
			raw, err = dataset.Ingest(dataPath, dataset.WithDelimiter(p.delimiter))
			if err == nil {
				l.Info("Dataset loaded", log.SamplesKey, raw.Nrow(), log.ColumnsKey, raw.Columns())
			}
			return err
		}},
		{log.StepClean, func(l log.Logger) (err error) {
			var imputations []preprocessing.Imputation
			cleaned, imputations, err = preprocessing.CleanWithReport(raw, p.schema)
			if err != nil {
				return err
			}
			for _, imp := range imputations {
				l.Debug("Missing values imputed",
					log.PhaseKey, log.PhasePreprocessing,
					log.ColumnKey, imp.Column,
					log.MissingKey, imp.Missing,
					log.ImputedValueKey, imp.Median,
				)
			}
			l.Info("Dataset cleaned", log.SamplesKey, cleaned.Nrow(), log.ColumnsKey, cleaned.Columns())
			return nil
		}},
		{log.StepSplit, func(l log.Logger) (err error) {
			split, err = preprocessing.Split(cleaned, p.split)
			if err == nil {
				res.Features = split.Features
				res.TrainSamples = len(split.TrainIndex)
				res.TestSamples = len(split.TestIndex)
				l.Info("Dataset split",
					log.TrainSamplesKey, res.TrainSamples,
					log.TestSamplesKey, res.TestSamples,
					log.FeaturesKey, len(split.Features),
					log.TestSizeKey, p.split.TestSize,
					log.RandomSeedKey, p.split.Seed,
				)
			}
			return err
		}},
		{log.StepTrain, func(l log.Logger) (err error) {
			fitted, err = p.registry.Train(split.TrainX, split.TrainY, kind, p.modelOptions)
			if err != nil {
				return err
			}
			w, err := fitted.Weights()
			if err != nil {
				return errors.NewTrainingError("Train", kind, err)
			}
			if res.Weights, err = w.WithFeatures(split.Features); err != nil {
				return errors.NewTrainingError("Train", kind, err)
			}
			l.Info("Model trained",
				log.PhaseKey, log.PhaseTraining,
				log.OperationKey, log.OperationFit,
				log.HyperParamsKey, fitted.GetParams(),
			)
			return nil
		}},
		{log.StepEvaluate, func(l log.Logger) (err error) {
			ev, err = metrics.EvaluateWithPredictions(fitted, split.TestX, split.TestY)
			if err == nil {
				res.Report = ev.Report
				res.TestY = split.TestY
				res.Predictions = ev.Predictions
				l.Debug("Test predictions computed",
					log.PhaseKey, log.PhaseTesting,
					log.OperationKey, log.OperationPredict,
					log.SamplesKey, ev.Predictions.Len(),
				)
				l.Info("Model evaluated",
					log.PhaseKey, log.PhaseTesting,
					log.OperationKey, log.OperationScore,
					log.MSEKey, ev.Report.MSE,
					log.RMSEKey, ev.Report.RMSE,
					log.R2ScoreKey, ev.Report.R2,
					log.MAEKey, ev.Report.MAE,
				)
			}
			return err
		}},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			logger.Warn("Pipeline cancelled", log.StepKey, s.name, log.ErrAttrKey, err)
			return nil, err
		}
		if err := p.runStep(ctx, logger, s.name, s.run); err != nil {
			return nil, err
		}
	}

	logger.Info("Pipeline finished",
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.MSEKey, res.Report.MSE,
		log.R2ScoreKey, res.Report.R2,
		log.RMSEKey, res.Report.RMSE,
	)
	return res, nil
}

func (p *Pipeline) runStep(ctx context.Context, logger log.Logger, name string, run func(log.Logger) error) error {
	l := logger.With(log.StepKey, name)
	p.observer.OnStepStart(ctx, name)
	l.Debug("Step started")

	start := time.Now()
	err := run(l)
	elapsed := time.Since(start)

	p.observer.OnStepDone(ctx, name, elapsed, err)
	if err != nil {
		l.Error("Step failed", log.ErrAttrKey, err, log.DurationMsKey, elapsed.Milliseconds())
		return err
	}
	l.Debug("Step finished", log.DurationMsKey, elapsed.Milliseconds())
	return nil
}
