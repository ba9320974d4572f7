package preprocessing

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/regpipe/dataset"
	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// Schema names the columns each cleaning strategy touches.
type Schema struct {
	// DropColumns are removed before anything else.
	DropColumns []string
	// MedianColumns have their missing cells replaced by the column median.
	MedianColumns []string
	// TextFillColumn has its missing cells replaced by TextFillValue.
	// Empty disables the step.
	TextFillColumn string
	TextFillValue  string
}

// DefaultSchema は注文レビューのデータセット用のスキーマ
func DefaultSchema() Schema {
	return Schema{
		DropColumns: []string{
			"order_approved_at",
			"order_delivered_carrier_date",
			"order_delivered_customer_date",
			"order_estimated_delivery_date",
			"order_purchase_timestamp",
			"customer_zip_code_prefix",
			"order_item_id",
		},
		MedianColumns: []string{
			"product_weight_g",
			"product_length_cm",
			"product_height_cm",
			"product_width_cm",
		},
		TextFillColumn: "review_comment_message",
		TextFillValue:  "No review",
	}
}

func (s Schema) required() []string {
	cols := make([]string, 0, len(s.DropColumns)+len(s.MedianColumns)+1)
	cols = append(cols, s.DropColumns...)
	cols = append(cols, s.MedianColumns...)
	if s.TextFillColumn != "" {
		cols = append(cols, s.TextFillColumn)
	}
	return cols
}

// Imputation records what median imputation did to one column.
type Imputation struct {
	Column  string
	Missing int
	Median  float64
}

// Clean applies, in order: drop columns, median imputation, text fill, and
// keep only Int and Float columns. Every column the schema names must be
// present; this is checked before any change so a failure yields no output.
func Clean(ds *dataset.Dataset, schema Schema) (*dataset.Dataset, error) {
	cleaned, _, err := CleanWithReport(ds, schema)
	return cleaned, err
}

// CleanWithReport is Clean that also returns one Imputation per median
// column, in schema order.
func CleanWithReport(ds *dataset.Dataset, schema Schema) (*dataset.Dataset, []Imputation, error) {
	const op = "Clean"

	for _, col := range schema.required() {
		if !ds.Has(col) {
			return nil, nil, errors.NewDataError(op, col, "required column is absent", errors.ErrMissingColumn)
		}
	}

	df := ds.Frame()
	if len(schema.DropColumns) > 0 {
		df = df.Drop(schema.DropColumns)
	}

	imputations := make([]Imputation, 0, len(schema.MedianColumns))
	for _, col := range schema.MedianColumns {
		s := df.Col(col)
		if !dataset.IsNumeric(s.Type()) {
			return nil, nil, errors.NewDataError(op, col, "cannot impute median of non-numeric column "+string(s.Type()), nil)
		}
		filled, imp, err := imputeMedian(s.Float())
		if err != nil {
			return nil, nil, errors.NewDataError(op, col, "median is undefined", err)
		}
		imp.Column = col
		imputations = append(imputations, imp)
		df = df.Mutate(series.New(filled, series.Float, col))
	}

	if schema.TextFillColumn != "" {
		col := schema.TextFillColumn
		s := df.Col(col)
		df = df.Mutate(series.New(fillText(s, schema.TextFillValue), series.String, col))
		// 埋めた列は文字列なので次の数値列の選択で除外される
		errors.Warn(errors.NewDataConversionWarning(col, string(series.String), "dropped",
			"filled text column is removed by numeric column selection"))
	}

	var numeric []string
	for i, t := range df.Types() {
		if dataset.IsNumeric(t) {
			numeric = append(numeric, df.Names()[i])
		}
	}
	if len(numeric) == 0 {
		return nil, nil, errors.NewDataError(op, "", "no numeric columns remain", errors.ErrEmptyData)
	}
	df = df.Select(numeric)

	cleaned, err := dataset.New(ds.Name(), df)
	if err != nil {
		return nil, nil, err
	}
	return cleaned, imputations, nil
}

// imputeMedian replaces NaN entries with the median of the others.
func imputeMedian(values []float64) ([]float64, Imputation, error) {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return nil, Imputation{}, errors.ErrEmptyData
	}
	m := median(present)

	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = m
		} else {
			out[i] = v
		}
	}
	return out, Imputation{Missing: len(values) - len(present), Median: m}, nil
}

// median sorts x in place. For an even count it returns the mean of the two
// middle values.
func median(x []float64) float64 {
	sort.Float64s(x)
	n := len(x)
	if n%2 == 1 {
		return x[n/2]
	}
	return stat.Mean(x[n/2-1:n/2+1], nil)
}

func fillText(s series.Series, value string) []string {
	records := s.Records()
	missing := s.IsNaN()
	out := make([]string, len(records))
	for i, r := range records {
		if missing[i] {
			out[i] = value
		} else {
			out[i] = r
		}
	}
	return out
}
