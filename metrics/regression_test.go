package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

type metricFunc func(yTrue, yPred mat.Vector) (float64, error)

func TestRegressionMetrics(t *testing.T) {
	tests := []struct {
		name      string
		metric    metricFunc
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
	}{
		{
			name:      "MSE perfect prediction",
			metric:    MSE,
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "MSE simple case",
			metric:    MSE,
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25, // (0.25 * 4) / 4
			tolerance: 1e-10,
		},
		{
			name:      "MSE larger errors",
			metric:    MSE,
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      17.0 / 3.0, // (4 + 4 + 9) / 3
			tolerance: 1e-10,
		},
		{
			name:      "RMSE",
			metric:    RMSE,
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      math.Sqrt(17.0 / 3.0),
			tolerance: 1e-10,
		},
		{
			name:      "MAE",
			metric:    MAE,
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      7.0 / 3.0,
			tolerance: 1e-10,
		},
		{
			name:      "R2 perfect prediction",
			metric:    R2Score,
			yTrue:     mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred:     mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			want:      1.0,
			tolerance: 1e-10,
		},
		{
			name:      "R2 mean prediction",
			metric:    R2Score,
			yTrue:     mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred:     mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "R2 worse than mean is negative",
			metric:    R2Score,
			yTrue:     mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred:     mat.NewVecDense(4, []float64{4, 3, 2, 1}),
			want:      -3.0, // 1 - 20/5
			tolerance: 1e-10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegressionMetricsErrors(t *testing.T) {
	metrics := map[string]metricFunc{"MSE": MSE, "RMSE": RMSE, "MAE": MAE, "R2Score": R2Score}

	for name, metric := range metrics {
		t.Run(name+" dimension mismatch", func(t *testing.T) {
			_, err := metric(mat.NewVecDense(3, []float64{1, 2, 3}), mat.NewVecDense(2, []float64{1, 2}))
			var dimErr *errors.DimensionError
			if !errors.As(err, &dimErr) {
				t.Errorf("expected DimensionError, got %v", err)
			}
		})
		t.Run(name+" empty vectors", func(t *testing.T) {
			_, err := metric(&mat.VecDense{}, &mat.VecDense{})
			var valErr *errors.ValueError
			if !errors.As(err, &valErr) {
				t.Errorf("expected ValueError, got %v", err)
			}
		})
	}
}

func TestR2ScoreZeroVariance(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(error) {})

	got, err := R2Score(
		mat.NewVecDense(3, []float64{5, 5, 5}),
		mat.NewVecDense(3, []float64{4, 5, 6}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("R2 = %v, want 1.0", got)
	}

	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	var undefined *errors.UndefinedMetricWarning
	if !errors.As(warnings[0], &undefined) {
		t.Errorf("expected UndefinedMetricWarning, got %T", warnings[0])
	}
}
