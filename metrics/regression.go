// Package metrics computes regression error metrics and evaluates fitted models.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// residuals は入力を検証し、yTrue - yPred を返す
func residuals(op string, yTrue, yPred mat.Vector) ([]float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	return diff, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
//
//	MSE = (1/n) * Σ(yTrue - yPred)²
func MSE(yTrue, yPred mat.Vector) (float64, error) {
	diff, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred mat.Vector) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred mat.Vector) (float64, error) {
	diff, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Norm(diff, 1) / float64(len(diff)), nil
}

// R2Score は決定係数（R²）を計算する
//
//	R² = 1 - RSS/TSS
//
// yTrue の分散が0の場合は定義できないため 1.0 を返し、
// UndefinedMetricWarning を発生させる。
func R2Score(yTrue, yPred mat.Vector) (float64, error) {
	diff, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	values := mat.Col(nil, 0, yTrue)
	mean := stat.Mean(values, nil)

	var tss float64
	for _, v := range values {
		tss += (v - mean) * (v - mean)
	}
	rss := floats.Dot(diff, diff)

	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("R2", "zero variance in y_true", 1.0))
		return 1.0, nil
	}
	return 1 - rss/tss, nil
}
