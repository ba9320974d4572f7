package preprocessing

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regpipe/dataset"
	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// SplitConfig controls the train/test partition.
type SplitConfig struct {
	LabelColumn string
	TestSize    float64 // fraction of rows held out, in (0, 1)
	Seed        uint64
}

// DefaultSplitConfig returns label review_score, 20% test rows and seed 42.
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{
		LabelColumn: "review_score",
		TestSize:    0.2,
		Seed:        42,
	}
}

// TrainTestSplit holds the feature matrices and label vectors of both
// partitions. TrainIndex and TestIndex are row positions in the cleaned
// dataset and together cover every row exactly once.
type TrainTestSplit struct {
	TrainX *mat.Dense
	TestX  *mat.Dense
	TrainY *mat.VecDense
	TestY  *mat.VecDense

	// Features are the column names of TrainX and TestX, in order.
	Features []string

	TrainIndex []int
	TestIndex  []int
}

// Split separates the label column from the features and partitions rows at
// random. The test partition has ceil(n*TestSize) rows. The same input and
// seed always give the same partition.
func Split(ds *dataset.Dataset, cfg SplitConfig) (*TrainTestSplit, error) {
	const op = "Split"

	if cfg.TestSize <= 0 || cfg.TestSize >= 1 {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1)", cfg.TestSize)
	}

	n := ds.Nrow()
	if n == 0 {
		return nil, errors.NewDataError(op, "", "dataset has no rows", errors.ErrEmptyData)
	}
	if !ds.Has(cfg.LabelColumn) {
		return nil, errors.NewDataError(op, cfg.LabelColumn, "label column is absent", errors.ErrMissingColumn)
	}

	var features []string
	for _, name := range ds.Columns() {
		if name != cfg.LabelColumn {
			features = append(features, name)
		}
	}
	if len(features) == 0 {
		return nil, errors.NewDataError(op, "", "no feature columns", errors.ErrEmptyData)
	}

	// 浮動小数点誤差で ceil が1つ繰り上がらないよう僅かに引く
	nTest := int(math.Ceil(float64(n)*cfg.TestSize - 1e-9))
	nTrain := n - nTest
	if nTest == 0 || nTrain == 0 {
		return nil, errors.NewDataError(op, "",
			"split would leave an empty partition", errors.ErrEmptyData)
	}

	columns := make([][]float64, len(features))
	for j, name := range features {
		col := ds.Frame().Col(name)
		if !dataset.IsNumeric(col.Type()) {
			return nil, errors.NewDataError(op, name, "feature column is not numeric", nil)
		}
		columns[j] = col.Float()
	}
	labelCol := ds.Frame().Col(cfg.LabelColumn)
	if !dataset.IsNumeric(labelCol.Type()) {
		return nil, errors.NewDataError(op, cfg.LabelColumn, "label column is not numeric", nil)
	}
	labels := labelCol.Float()

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	perm := rng.Perm(n)
	testIdx := perm[:nTest]
	trainIdx := perm[nTest:]

	split := &TrainTestSplit{
		Features:   features,
		TrainIndex: trainIdx,
		TestIndex:  testIdx,
	}
	split.TrainX, split.TrainY = gather(columns, labels, trainIdx)
	split.TestX, split.TestY = gather(columns, labels, testIdx)
	return split, nil
}

// gather copies the given rows into a feature matrix and label vector.
func gather(columns [][]float64, labels []float64, rows []int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(len(rows), len(columns), nil)
	y := mat.NewVecDense(len(rows), nil)
	for i, r := range rows {
		for j, col := range columns {
			X.Set(i, j, col[r])
		}
		y.SetVec(i, labels[r])
	}
	return X, y
}

// Prepare runs Clean and then Split.
func Prepare(ds *dataset.Dataset, schema Schema, cfg SplitConfig) (*TrainTestSplit, error) {
	cleaned, err := Clean(ds, schema)
	if err != nil {
		return nil, err
	}
	return Split(cleaned, cfg)
}
