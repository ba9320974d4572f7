// Package model は学習器が満たすインターフェースと、学習状態・重みの共通型を定義します。
package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。y は n×1 の列を想定する
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う。戻り値は n×1
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// ParamSetter はハイパーパラメータを名前で受け取るモデル
type ParamSetter interface {
	GetParams() map[string]interface{}
	SetParams(params map[string]interface{}) error
}

// Regressor は学習器が返す回帰モデル。学習後は変更されない
type Regressor interface {
	Fitter
	Predictor
	ParamSetter

	// Name はレジストリに登録された種別名を返す
	Name() string

	// IsFitted はFitが成功したかどうかを返す
	IsFitted() bool

	// Weights は学習済みの係数のスナップショットを返す
	Weights() (*Weights, error)
}
