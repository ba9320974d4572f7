package training

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regpipe/core/model"
	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// Train builds a model of the given kind from the default registry and fits it.
func Train(trainX mat.Matrix, trainY mat.Vector, kind string, options Options) (model.Regressor, error) {
	return DefaultRegistry().Train(trainX, trainY, kind, options)
}

// Train fits a new model of the given kind on trainX and trainY.
//
// An unknown kind is returned as a ValidationError. Every other failure,
// including bad options, is a TrainingError wrapping the cause.
func (r *Registry) Train(trainX mat.Matrix, trainY mat.Vector, kind string, options Options) (model.Regressor, error) {
	const op = "Train"

	m, err := r.New(kind, options)
	if err != nil {
		if !r.Has(kind) {
			return nil, err
		}
		return nil, errors.NewTrainingError(op, kind, err)
	}

	rows, _ := trainX.Dims()
	if rows == 0 || trainY.Len() == 0 {
		return nil, errors.NewTrainingError(op, kind, errors.ErrEmptyData)
	}
	if trainY.Len() != rows {
		return nil, errors.NewTrainingError(op, kind,
			errors.NewDimensionError(op, rows, trainY.Len(), 0))
	}

	err = errors.SafeExecute(kind+".Fit", func() error {
		return m.Fit(trainX, trainY)
	})
	if err != nil {
		return nil, errors.NewTrainingError(op, kind, err)
	}
	return m, nil
}
