package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regpipe/core/model"
	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// Report はテストデータ上の評価指標
type Report struct {
	MSE  float64 `yaml:"mse"`
	R2   float64 `yaml:"r2"`
	RMSE float64 `yaml:"rmse"`

	// 以下は補助的な指標
	MAE     float64 `yaml:"mae"`
	Samples int     `yaml:"samples"`
}

// Evaluation は Report と、その計算に使った予測値
type Evaluation struct {
	Report      Report
	Predictions *mat.VecDense
}

// Evaluate はモデルでテストデータを予測し、MSE・R²・RMSEを計算する。
// 行数の不一致、空のラベル、予測の失敗は EvaluationError になる。
func Evaluate(m model.Predictor, testX mat.Matrix, testY mat.Vector) (Report, error) {
	ev, err := EvaluateWithPredictions(m, testX, testY)
	if err != nil {
		return Report{}, err
	}
	return ev.Report, nil
}

// EvaluateWithPredictions は Evaluate と同じだが予測値も返す
func EvaluateWithPredictions(m model.Predictor, testX mat.Matrix, testY mat.Vector) (*Evaluation, error) {
	const op = "Evaluate"

	n := testY.Len()
	if n == 0 {
		return nil, errors.NewEvaluationError(op, "test labels are empty", errors.ErrEmptyData)
	}
	rows, _ := testX.Dims()
	if rows != n {
		return nil, errors.NewEvaluationError(op, "feature and label row counts differ",
			errors.NewDimensionError(op, n, rows, 0))
	}

	var pred mat.Matrix
	err := errors.SafeExecute("Predict", func() error {
		var perr error
		pred, perr = m.Predict(testX)
		return perr
	})
	if err != nil {
		return nil, errors.NewEvaluationError(op, "prediction failed", err)
	}
	if pr, pc := pred.Dims(); pr != n || pc != 1 {
		return nil, errors.NewEvaluationError(op, "prediction has wrong shape",
			errors.NewDimensionError(op, n, pr, 0))
	}
	yPred := mat.NewVecDense(n, mat.Col(nil, 0, pred))

	if err := errors.CheckMatrix("prediction", yPred, n, 1); err != nil {
		return nil, errors.NewEvaluationError(op, "prediction is not finite", err)
	}

	report := Report{Samples: n}
	if report.MSE, err = MSE(testY, yPred); err != nil {
		return nil, errors.NewEvaluationError(op, "MSE", err)
	}
	if report.RMSE, err = RMSE(testY, yPred); err != nil {
		return nil, errors.NewEvaluationError(op, "RMSE", err)
	}
	if report.R2, err = R2Score(testY, yPred); err != nil {
		return nil, errors.NewEvaluationError(op, "R2", err)
	}
	if report.MAE, err = MAE(testY, yPred); err != nil {
		return nil, errors.NewEvaluationError(op, "MAE", err)
	}

	return &Evaluation{Report: report, Predictions: yPred}, nil
}
