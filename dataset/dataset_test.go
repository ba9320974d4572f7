package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

const sampleCSV = `order_id,price,product_weight_g,review_comment_message,review_score
a1,10.5,500,great,5
a2,20,,NA,4
a3,7.25,300,,1
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngest(t *testing.T) {
	path := writeFile(t, "orders.csv", sampleCSV)

	ds, err := Ingest(path)
	require.NoError(t, err)

	assert.Equal(t, path, ds.Name())
	assert.Equal(t, 3, ds.Nrow())
	assert.Equal(t, 5, ds.Ncol())
	assert.Equal(t, []string{"order_id", "price", "product_weight_g", "review_comment_message", "review_score"}, ds.Columns())

	tests := []struct {
		column string
		want   series.Type
	}{
		{"order_id", series.String},
		{"price", series.Float},
		{"product_weight_g", series.Int},
		{"review_comment_message", series.String},
		{"review_score", series.Int},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			col, err := ds.Column(tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.want, col.Type())
		})
	}
}

func TestIngestErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.csv") }},
		{"directory", func(t *testing.T) string { return t.TempDir() }},
		{"empty file", func(t *testing.T) string { return writeFile(t, "empty.csv", "") }},
		{"ragged rows", func(t *testing.T) string { return writeFile(t, "bad.csv", "a,b\n1,2,3\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			ds, err := Ingest(path)
			assert.Nil(t, ds)

			var ioErr *errors.IOError
			require.True(t, errors.As(err, &ioErr), "got %v", err)
			assert.Equal(t, path, ioErr.Path)
			assert.Equal(t, "Ingest", ioErr.Op)
		})
	}
}

func TestReadCSVDelimiter(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("x;y\n1;2\n3;4\n"), "inline", WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ds.Columns())
	assert.Equal(t, 2, ds.Nrow())
}

func TestSummary(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV), "inline")
	require.NoError(t, err)

	summary := ds.Summary()
	require.Len(t, summary, 5)

	byName := map[string]ColumnSummary{}
	for _, c := range summary {
		byName[c.Name] = c
	}
	assert.Equal(t, 1, byName["product_weight_g"].Missing)
	assert.Equal(t, "int", byName["product_weight_g"].Kind)
	assert.Equal(t, 2, byName["review_comment_message"].Missing)
	assert.Equal(t, 0, byName["price"].Missing)

	var buf bytes.Buffer
	require.NoError(t, ds.WriteSummary(&buf))
	assert.Contains(t, buf.String(), "inline: 3 rows, 5 columns")
	assert.Contains(t, buf.String(), "product_weight_g")
}

func TestColumnMissing(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("x\n1\n"), "inline")
	require.NoError(t, err)

	assert.True(t, ds.Has("x"))
	assert.False(t, ds.Has("y"))

	_, err = ds.Column("y")
	assert.True(t, errors.Is(err, errors.ErrMissingColumn))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(series.Int))
	assert.True(t, IsNumeric(series.Float))
	assert.False(t, IsNumeric(series.String))
	assert.False(t, IsNumeric(series.Bool))
}
