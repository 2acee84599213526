// Package viz renders a Result as a horizontal bar chart PNG, the kind of
// small server-side debug export SHAP's reference implementations ship
// alongside the core algorithm (shap.plots.bar). It draws no frames, takes
// no model input, and exists purely to give a library consumer something
// to look at without a notebook.
package viz

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/shapkit/kernelshap/pkg/errors"
)

// BarChart renders a horizontal bar chart of one output class's feature
// attributions to a PNG file at path. phi is the d×k attribution matrix
// (kernelshap.Result.Phi), class selects which of its k columns to plot,
// and featureNames labels the d bars (bar j is labelled "feature[j]" when
// featureNames has no entry at j or that entry is empty).
//
// Bars are sorted by |attribution| descending, matching the convention
// SHAP's own bar plots use so the most influential features sit at the
// top.
func BarChart(phi *mat.Dense, class int, featureNames []string, path string) error {
	d, k := phi.Dims()
	if class < 0 || class >= k {
		return errors.NewDimensionError("viz.BarChart", k, class, 1)
	}

	type bar struct {
		name  string
		value float64
	}
	bars := make([]bar, d)
	for j := 0; j < d; j++ {
		name := featureIndexName(featureNames, j)
		bars[j] = bar{name: name, value: phi.At(j, class)}
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return absf(bars[i].value) > absf(bars[j].value)
	})

	values := make(plotter.Values, d)
	labels := make([]string, d)
	for i, b := range bars {
		// Reverse so the largest bar draws at the top of the chart.
		values[d-1-i] = b.value
		labels[d-1-i] = b.name
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("KernelSHAP attributions (class %d)", class)
	p.X.Label.Text = "φ"

	chart, err := plotter.NewBarChart(values, vg.Points(15))
	if err != nil {
		return errors.Wrap(err, "viz.BarChart: building bar chart")
	}
	chart.Horizontal = true
	chart.Color = plotutil.Color(0)

	p.Add(chart)
	p.NominalY(labels...)

	if err := p.Save(6*vg.Inch, vg.Length(d)*0.3*vg.Inch+1*vg.Inch, path); err != nil {
		return errors.Wrap(err, "viz.BarChart: saving PNG")
	}
	return nil
}

func featureIndexName(names []string, j int) string {
	if j < len(names) && names[j] != "" {
		return names[j]
	}
	return fmt.Sprintf("feature[%d]", j)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
