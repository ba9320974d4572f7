package model

import (
	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// Weights は学習済みモデルの係数のスナップショット（メモリ上のみ、永続化はしない）
type Weights struct {
	// ModelType はモデルの種類（LinearRegressionModel等）
	ModelType string `yaml:"model_type"`

	// Features は係数に対応する特徴量の名前。未設定なら空
	Features []string `yaml:"features,omitempty"`

	// Coefficients は重み係数
	Coefficients []float64 `yaml:"coefficients"`

	// Intercept は切片
	Intercept float64 `yaml:"intercept"`

	// Hyperparameters は学習時のハイパーパラメータ
	Hyperparameters map[string]interface{} `yaml:"hyperparameters,omitempty"`
}

// Validate はWeightsの妥当性を検証
func (w *Weights) Validate() error {
	if w.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", w.ModelType)
	}
	if len(w.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", len(w.Coefficients))
	}
	if len(w.Features) > 0 && len(w.Features) != len(w.Coefficients) {
		return errors.NewDimensionError("Weights.Validate", len(w.Coefficients), len(w.Features), 1)
	}
	return nil
}

// WithFeatures は特徴量名を付けたコピーを返す
func (w *Weights) WithFeatures(features []string) (*Weights, error) {
	if len(features) != len(w.Coefficients) {
		return nil, errors.NewDimensionError("Weights.WithFeatures", len(w.Coefficients), len(features), 1)
	}
	clone := w.Clone()
	clone.Features = append([]string(nil), features...)
	return clone, nil
}

// Coefficient は特徴量名に対応する係数を返す
func (w *Weights) Coefficient(feature string) (float64, bool) {
	for i, f := range w.Features {
		if f == feature {
			return w.Coefficients[i], true
		}
	}
	return 0, false
}

// Clone はWeightsのディープコピーを作成
func (w *Weights) Clone() *Weights {
	clone := &Weights{
		ModelType:       w.ModelType,
		Intercept:       w.Intercept,
		Coefficients:    append([]float64(nil), w.Coefficients...),
		Features:        append([]string(nil), w.Features...),
		Hyperparameters: make(map[string]interface{}, len(w.Hyperparameters)),
	}
	for k, v := range w.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	return clone
}
