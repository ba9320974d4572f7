// Package report renders the outcome of a training run: a predicted versus
// actual scatter plot and a YAML summary.
package report

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// PlotSize is the width and height of the saved plot.
const PlotSize = 5 * vg.Inch

// WritePredictionPlot saves a scatter of predicted against actual labels with
// the y = x reference line. The format follows the file extension (.png,
// .svg, .pdf).
func WritePredictionPlot(path, title string, actual, predicted mat.Vector) error {
	p, err := PredictionPlot(title, actual, predicted)
	if err != nil {
		return err
	}
	if err := p.Save(PlotSize, PlotSize, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}

// PredictionPlot builds the plot without saving it.
func PredictionPlot(title string, actual, predicted mat.Vector) (*plot.Plot, error) {
	n := actual.Len()
	if n == 0 {
		return nil, errors.NewValueError("PredictionPlot", "empty vector")
	}
	if predicted.Len() != n {
		return nil, errors.NewDimensionError("PredictionPlot", n, predicted.Len(), 0)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Actual"
	p.Y.Label.Text = "Predicted"

	pts := make(plotter.XYs, n)
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range pts {
		pts[i].X = actual.AtVec(i)
		pts[i].Y = predicted.AtVec(i)
		lo = math.Min(lo, math.Min(pts[i].X, pts[i].Y))
		hi = math.Max(hi, math.Max(pts[i].X, pts[i].Y))
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "scatter")
	}
	s.Color = color.RGBA{B: 255, A: 255, R: 50, G: 50}
	p.Add(s)
	p.Legend.Add("test rows", s)

	l, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, errors.Wrap(err, "reference line")
	}
	l.Color = color.RGBA{R: 255, A: 255}
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l)
	p.Legend.Add("y = x", l)

	return p, nil
}
