// Standard attribute keys for pipeline logging.
//
// Keys follow a hierarchical naming convention ("model.name", "data.samples")
// so JSON log lines can be filtered per step or per run.

package log

// Run and step context.
const (
	// RunIDKey identifies one execution of the training pipeline.
	RunIDKey = "run.id"

	// StepKey names the pipeline step emitting the record.
	// Values: StepIngest, StepClean, StepSplit, StepTrain, StepEvaluate.
	StepKey = "pipeline.step"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "dataset", "preprocessing", "training", "metrics"
	ComponentKey = "ml.component"

	// ModelNameKey identifies the model kind, e.g. "LinearRegressionModel".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of rows processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// ColumnKey names a single column (imputation, drop).
	ColumnKey = "data.column"

	// ColumnsKey lists column names.
	ColumnsKey = "data.columns"

	// PathKey is the dataset path on disk.
	PathKey = "data.path"

	// TrainSamplesKey and TestSamplesKey are partition sizes after the split.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"

	// ImputedValueKey is the value written into missing cells.
	ImputedValueKey = "data.imputed_value"

	// MissingKey is the number of missing cells found in a column.
	MissingKey = "data.missing"
)

// Metrics and timing.
const (
	DurationMsKey = "perf.duration_ms"
	MSEKey        = "metrics.mse"
	RMSEKey       = "metrics.rmse"
	MAEKey        = "metrics.mae"
	R2ScoreKey    = "metrics.r2_score"
)

// Configuration.
const (
	// HyperParamsKey contains the model options forwarded to the estimator.
	HyperParamsKey = "model.hyperparams"

	// RandomSeedKey records the split seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// TestSizeKey records the held-out fraction.
	TestSizeKey = "config.test_size"
)

// Error context.
const (
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	PhaseTraining      = "training"
	PhaseTesting       = "testing"
	PhasePreprocessing = "preprocessing"

	StepIngest   = "ingest"
	StepClean    = "clean"
	StepSplit    = "split"
	StepTrain    = "train"
	StepEvaluate = "evaluate"
)
