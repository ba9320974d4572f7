package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestStepErrors(t *testing.T) {
	cause := fmt.Errorf("no such file or directory")

	tests := []struct {
		name    string
		err     error
		wantMsg string
		target  interface{}
	}{
		{
			name:    "io error",
			err:     NewIOError("Ingest", "data.csv", cause),
			wantMsg: `regpipe: Ingest: cannot read "data.csv": no such file or directory`,
			target:  new(*IOError),
		},
		{
			name:    "data error with column",
			err:     NewDataError("Clean", "product_weight_g", "required column is absent", ErrMissingColumn),
			wantMsg: "regpipe: Clean: column 'product_weight_g': required column is absent: missing column",
			target:  new(*DataError),
		},
		{
			name:    "data error without column",
			err:     NewDataError("Split", "", "dataset has no rows", nil),
			wantMsg: "regpipe: Split: dataset has no rows",
			target:  new(*DataError),
		},
		{
			name:    "training error",
			err:     NewTrainingError("Train", "LinearRegressionModel", ErrSingularMatrix),
			wantMsg: "regpipe: Train: training LinearRegressionModel failed: singular matrix",
			target:  new(*TrainingError),
		},
		{
			name:    "evaluation error",
			err:     NewEvaluationError("Evaluate", "test labels are empty", ErrEmptyData),
			wantMsg: "regpipe: Evaluate: test labels are empty: empty data",
			target:  new(*EvaluationError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", tt.err.Error(), tt.wantMsg)
			}

			if !As(tt.err, tt.target) {
				t.Errorf("Error should be castable to %T", tt.target)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", tt.err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}
		})
	}
}

func TestStepErrorsUnwrapToSentinel(t *testing.T) {
	err := NewTrainingError("Train", "LinearRegressionModel", ErrSingularMatrix)
	if !Is(err, ErrSingularMatrix) {
		t.Error("Expected Is(err, ErrSingularMatrix) to be true")
	}

	wrapped := Wrap(NewDataError("Clean", "x", "missing", ErrMissingColumn), "prepare step")
	var dataErr *DataError
	if !As(wrapped, &dataErr) {
		t.Fatal("Expected wrapped error to remain a *DataError")
	}
	if dataErr.Column != "x" {
		t.Errorf("Column = %q, want %q", dataErr.Column, "x")
	}
	if !Is(wrapped, ErrMissingColumn) {
		t.Error("Expected Is(wrapped, ErrMissingColumn) to be true")
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 5, 3, 1)

	want := "regpipe: Predict: dimension mismatch on axis 1 (features). Expected 5, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("LinearRegression", "Predict")

	want := "regpipe: LinearRegression: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("model", "unknown model kind", "RandomForest")

	want := "regpipe: validation failed for parameter 'model': unknown model kind (got: RandomForest)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWarnRoutesToZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	SetZerologWarnFunc(func(w error) {
		if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
			logger.Warn().EmbedObject(obj).Msg(w.Error())
			return
		}
		logger.Warn().Msg(w.Error())
	})
	defer SetZerologWarnFunc(nil)

	Warn(NewUndefinedMetricWarning("R2", "zero variance in y_true", 1.0))

	out := buf.String()
	if !strings.Contains(out, `"metric":"R2"`) {
		t.Errorf("Expected structured metric field, got %s", out)
	}
	if !strings.Contains(out, `"type":"UndefinedMetricWarning"`) {
		t.Errorf("Expected warning type field, got %s", out)
	}
}

func TestWarnFallsBackToHandler(t *testing.T) {
	var got []error
	prev := warningHandler
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(prev)

	Warn(NewDataConversionWarning("review_comment_message", "string", "dropped", "non-numeric column"))

	if len(got) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(got))
	}
	want := "column 'review_comment_message' converted from string to dropped. Reason: non-numeric column"
	if got[0].Error() != want {
		t.Errorf("warning = %q, want %q", got[0].Error(), want)
	}
}

func TestCheckMatrix(t *testing.T) {
	m := dense{{1, 2}, {3, nan()}}

	err := CheckMatrix("fit_input", m, 2, 2)
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("Expected *NumericalInstabilityError, got %v", err)
	}
	if numErr.Row != 1 {
		t.Errorf("Row = %d, want 1", numErr.Row)
	}

	if err := CheckMatrix("fit_input", dense{{1, 2}}, 1, 2); err != nil {
		t.Errorf("Expected nil for finite matrix, got %v", err)
	}
}

type dense [][]float64

func (d dense) At(i, j int) float64 { return d[i][j] }

func nan() float64 {
	zero := 0.0
	return zero / zero
}
