// Package linear implements ordinary least squares regression on gonum.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/regpipe/core/model"
	"github.com/YuminosukeSato/regpipe/pkg/errors"
	"github.com/YuminosukeSato/regpipe/preprocessing"
)

// Name は線形回帰モデルのレジストリ上の種別名
const Name = "LinearRegressionModel"

// eps は float64 のマシンイプシロン
var eps = math.Nextafter(1, 2) - 1

// LinearRegression は最小二乗法による線形回帰モデル。
// 特異値分解で解くため、ランク落ちの計画行列でも最小ノルム解を返す。
type LinearRegression struct {
	state *model.StateManager

	fitIntercept bool
	normalize    bool
	copyX        bool
	positive     bool

	coef      []float64 // 重み（係数）。元のスケール
	intercept float64   // 切片
	cond      float64   // 計画行列の条件数
	rank      int       // 解に使った特異値の数
}

var _ model.Regressor = (*LinearRegression)(nil)

// NewLinearRegression は新しい線形回帰モデルを作成する
//
//	lr := linear.NewLinearRegression(linear.WithFitIntercept(true))
//	if err := lr.Fit(X, y); err != nil { ... }
//	pred, err := lr.Predict(XTest)
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager("LinearRegression"),
		fitIntercept: true,
		copyX:        true,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Name returns the registry kind of the model.
func (lr *LinearRegression) Name() string {
	return Name
}

// IsFitted returns whether Fit has succeeded.
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// Fit はモデルを訓練データで学習させる。
// 空のデータ、行数の不一致、NaN/Inf はエラーになる。
// gonum内部のpanicはPanicErrorとして返す。
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	const op = "LinearRegression.Fit"
	defer errors.Recover(&err, op)

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if yRows != rows {
		return errors.NewDimensionError(op, rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError(op, 1, yCols, 1)
	}
	if err := errors.CheckMatrix("fit_input", X, rows, cols); err != nil {
		return err
	}
	if err := errors.CheckMatrix("fit_target", y, rows, 1); err != nil {
		return err
	}

	var XWork mat.Matrix = X
	if lr.copyX {
		XWork = mat.DenseCopyOf(X)
	}

	// 切片ありの場合は X と y を中心化し、切片は平均から復元する。
	// normalize のときはさらに標準偏差で割る
	scaler := preprocessing.NewStandardScaler(lr.fitIntercept, lr.normalize)
	if XWork, err = scaler.FitTransform(XWork); err != nil {
		return err
	}
	yCol := mat.Col(nil, 0, y)
	yMean := 0.0
	if lr.fitIntercept {
		yMean = stat.Mean(yCol, nil)
	}
	for i := range yCol {
		yCol[i] -= yMean
	}

	var svd mat.SVD
	if ok := svd.Factorize(XWork, mat.SVDThin); !ok {
		return errors.NewModelError(op, "singular value decomposition failed", errors.ErrSingularMatrix)
	}

	// 相対しきい値以下の特異値は捨て、最小ノルム解を求める
	rcond := float64(max(rows, cols)) * eps
	rank := svd.Rank(rcond)

	coef := make([]float64, cols)
	if rank > 0 {
		beta := mat.NewDense(cols, 1, nil)
		svd.SolveTo(beta, mat.NewVecDense(rows, yCol), rank)
		coef = mat.Col(coef, 0, beta)
	}

	// 標準化した空間の係数を元のスケールに戻す
	intercept := yMean
	for j := range coef {
		coef[j] /= scaler.Scale[j]
		intercept -= coef[j] * scaler.Mean[j]
	}

	if lr.positive {
		for j := range coef {
			if coef[j] < 0 {
				coef[j] = 0
			}
		}
	}

	if err := errors.CheckNumericalStability("coefficients", coef); err != nil {
		return err
	}
	if err := errors.CheckScalar("intercept", intercept); err != nil {
		return err
	}

	lr.coef = coef
	lr.intercept = intercept
	lr.cond = svd.Cond()
	lr.rank = rank
	lr.state.SetFitted(cols, rows)
	return nil
}

// Predict は入力データに対する予測を行う。戻り値は n×1 の行列
func (lr *LinearRegression) Predict(X mat.Matrix) (pred mat.Matrix, err error) {
	const op = "LinearRegression.Predict"
	defer errors.Recover(&err, op)

	if err := lr.state.RequireFitted("Predict"); err != nil {
		return nil, err
	}
	rows, cols := X.Dims()
	if err := lr.state.RequireFeatures(op, cols); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckMatrix("predict_input", X, rows, cols); err != nil {
		return nil, err
	}

	// y = X * coef + intercept
	var yHat mat.VecDense
	yHat.MulVec(X, mat.NewVecDense(cols, lr.Coefficients()))
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		out.Set(i, 0, yHat.AtVec(i)+lr.intercept)
	}
	return out, nil
}

// Coefficients は学習された重み（係数）のコピーを返す
func (lr *LinearRegression) Coefficients() []float64 {
	return append([]float64(nil), lr.coef...)
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// Cond は学習時の計画行列の条件数を返す。ランク落ちの場合は +Inf になりうる
func (lr *LinearRegression) Cond() float64 {
	return lr.cond
}

// Rank は学習時に使われた計画行列の実効ランクを返す
func (lr *LinearRegression) Rank() int {
	return lr.rank
}

// Weights は学習済みの係数のスナップショットを返す
func (lr *LinearRegression) Weights() (*model.Weights, error) {
	if err := lr.state.RequireFitted("Weights"); err != nil {
		return nil, err
	}
	return &model.Weights{
		ModelType:       Name,
		Coefficients:    lr.Coefficients(),
		Intercept:       lr.intercept,
		Hyperparameters: lr.GetParams(),
	}, nil
}
