package preprocessing

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// numericCSV builds n rows of x1,x2,review_score where row i has x1 = i.
func numericCSV(n int) string {
	var b strings.Builder
	b.WriteString("x1,x2,review_score\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d,%d.5,%d\n", i, i*2, i%5+1)
	}
	return b.String()
}

func TestSplitRatioAndPartition(t *testing.T) {
	tests := []struct {
		n         int
		wantTest  int
		wantTrain int
	}{
		{100, 20, 80},
		{10, 2, 8},
		{7, 2, 5},
		{2, 1, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			split, err := Split(readCSV(t, numericCSV(tt.n)), DefaultSplitConfig())
			require.NoError(t, err)

			assert.Len(t, split.TestIndex, tt.wantTest)
			assert.Len(t, split.TrainIndex, tt.wantTrain)

			r, c := split.TrainX.Dims()
			assert.Equal(t, tt.wantTrain, r)
			assert.Equal(t, 2, c)
			assert.Equal(t, tt.wantTrain, split.TrainY.Len())
			r, c = split.TestX.Dims()
			assert.Equal(t, tt.wantTest, r)
			assert.Equal(t, 2, c)
			assert.Equal(t, tt.wantTest, split.TestY.Len())

			all := append(append([]int(nil), split.TrainIndex...), split.TestIndex...)
			sort.Ints(all)
			for i, idx := range all {
				assert.Equal(t, i, idx, "rows must be covered exactly once")
			}

			// 行の対応: x1 は元の行番号
			for i, idx := range split.TrainIndex {
				assert.Equal(t, float64(idx), split.TrainX.At(i, 0))
				assert.Equal(t, float64(idx%5+1), split.TrainY.AtVec(i))
			}
		})
	}
}

func TestSplitDeterministic(t *testing.T) {
	ds := readCSV(t, numericCSV(50))

	a, err := Split(ds, DefaultSplitConfig())
	require.NoError(t, err)
	b, err := Split(ds, DefaultSplitConfig())
	require.NoError(t, err)

	assert.Equal(t, a.TrainIndex, b.TrainIndex)
	assert.Equal(t, a.TestIndex, b.TestIndex)
	assert.Equal(t, a.TrainX.RawMatrix().Data, b.TrainX.RawMatrix().Data)
	assert.Equal(t, []string{"x1", "x2"}, a.Features)

	other := DefaultSplitConfig()
	other.Seed = 7
	c, err := Split(ds, other)
	require.NoError(t, err)
	assert.NotEqual(t, a.TestIndex, c.TestIndex)
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		cfg      func() SplitConfig
		sentinel error
	}{
		{
			name:     "missing label",
			csv:      "x1,x2\n1,2\n3,4\n",
			cfg:      DefaultSplitConfig,
			sentinel: errors.ErrMissingColumn,
		},
		{
			name:     "no features",
			csv:      "review_score\n1\n2\n3\n",
			cfg:      DefaultSplitConfig,
			sentinel: errors.ErrEmptyData,
		},
		{
			name:     "single row leaves train empty",
			csv:      "x1,review_score\n1,2\n",
			cfg:      DefaultSplitConfig,
			sentinel: errors.ErrEmptyData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(readCSV(t, tt.csv), tt.cfg())

			var dataErr *errors.DataError
			require.True(t, errors.As(err, &dataErr), "got %v", err)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestSplitInvalidTestSize(t *testing.T) {
	cfg := DefaultSplitConfig()
	cfg.TestSize = 1.5

	_, err := Split(readCSV(t, numericCSV(10)), cfg)
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestPrepare(t *testing.T) {
	errors.SetWarningHandler(func(error) {})

	split, err := Prepare(readCSV(t, ordersCSV), DefaultSchema(), DefaultSplitConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"price", "freight_value",
		"product_weight_g", "product_length_cm", "product_height_cm", "product_width_cm",
	}, split.Features)
	assert.Len(t, split.TestIndex, 1)
	assert.Len(t, split.TrainIndex, 3)
}
