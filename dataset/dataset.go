// Package dataset loads tabular training data into an immutable, named table.
//
// A Dataset wraps a gota DataFrame. Columns are typed on load (Int, Float,
// Bool or String); cells that are empty or spelled NA, NaN or <nil> are
// missing.
package dataset

import (
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// missingValues are the cell spellings treated as missing on load.
var missingValues = []string{"", "NA", "NaN", "<nil>"}

// Dataset is a named table. It is never modified in place; transformations
// return a new Dataset.
type Dataset struct {
	name  string
	frame dataframe.DataFrame
}

// New wraps an existing DataFrame. The frame's error, if any, is returned.
func New(name string, frame dataframe.DataFrame) (*Dataset, error) {
	if frame.Err != nil {
		return nil, errors.Wrapf(frame.Err, "dataset %s", name)
	}
	return &Dataset{name: name, frame: frame}, nil
}

// Name returns the source of the dataset, usually the file path.
func (d *Dataset) Name() string { return d.name }

// Frame returns the underlying DataFrame. gota operations return copies, so
// callers cannot modify the Dataset through it.
func (d *Dataset) Frame() dataframe.DataFrame { return d.frame }

// Nrow returns the number of rows.
func (d *Dataset) Nrow() int { return d.frame.Nrow() }

// Ncol returns the number of columns.
func (d *Dataset) Ncol() int { return d.frame.Ncol() }

// Columns returns the column names in file order.
func (d *Dataset) Columns() []string { return d.frame.Names() }

// Has reports whether the dataset has a column with the given name.
func (d *Dataset) Has(column string) bool {
	for _, name := range d.frame.Names() {
		if name == column {
			return true
		}
	}
	return false
}

// Column returns the named column.
func (d *Dataset) Column(column string) (series.Series, error) {
	if !d.Has(column) {
		return series.Series{}, errors.NewDataError("Dataset.Column", column, "column not found", errors.ErrMissingColumn)
	}
	return d.frame.Col(column), nil
}

// IsNumeric reports whether a column type is Int or Float.
func IsNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}

// Option configures CSV parsing.
type Option func(*readConfig)

type readConfig struct {
	delimiter rune
}

// WithDelimiter sets the field delimiter. Default ','.
func WithDelimiter(r rune) Option {
	return func(c *readConfig) {
		c.delimiter = r
	}
}

// Ingest reads the delimited file at path. The first row is the header.
// A missing, unreadable, empty or malformed file is an IOError.
func Ingest(path string, opts ...Option) (*Dataset, error) {
	const op = "Ingest"

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewIOError(op, path, err)
	}
	if info.IsDir() {
		return nil, errors.NewIOError(op, path, errors.New("is a directory"))
	}
	if info.Size() == 0 {
		return nil, errors.NewIOError(op, path, errors.ErrEmptyData)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError(op, path, err)
	}
	defer f.Close()

	return ReadCSV(f, path, opts...)
}

// ReadCSV parses CSV data from r. name identifies the source in errors.
func ReadCSV(r io.Reader, name string, opts ...Option) (*Dataset, error) {
	cfg := readConfig{delimiter: ','}
	for _, opt := range opts {
		opt(&cfg)
	}

	frame := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(missingValues),
		dataframe.WithDelimiter(cfg.delimiter),
	)
	if frame.Err != nil {
		return nil, errors.NewIOError("Ingest", name, frame.Err)
	}
	return &Dataset{name: name, frame: frame}, nil
}
