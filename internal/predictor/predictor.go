// Package predictor wraps the caller-supplied black-box prediction
// function, caching the two quantities every explanation needs up front:
// the base value (mean prediction over the background) and the query
// prediction.
package predictor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/shapkit/kernelshap/pkg/errors"
)

// Func evaluates the model on an m×d batch and returns an m×k matrix of
// outputs. It must be pure with respect to row order: predict(X)[i] may
// depend only on X's row i, never on the rows around it.
type Func func(X mat.Matrix) (mat.Matrix, error)

// Wrapper caches the base value derived from one (predictor, background)
// pair; the query prediction is computed per explanation via PredictQuery
// since the query point isn't known at construction time. Every call into
// the collaborator goes through Predict, so panics and non-finite outputs
// are caught in one place.
type Wrapper struct {
	fn Func

	D, K int

	// BasePred is mean_i f(X_bg[i]), one value per output class.
	BasePred []float64
}

// New wraps fn and evaluates f(X_bg) once to derive D, K, and BasePred.
func New(fn Func, background *mat.Dense) (*Wrapper, error) {
	n, d := background.Dims()
	if n < 1 {
		return nil, errors.NewValidationError("background", "must have at least one row", n)
	}

	w := &Wrapper{fn: fn, D: d}

	bgPred, err := w.Predict(background)
	if err != nil {
		return nil, err
	}
	_, k := bgPred.Dims()
	w.K = k
	w.BasePred = columnMeans(bgPred)

	return w, nil
}

// PredictQuery evaluates f at a single query point x, returning one value
// per output class.
func (w *Wrapper) PredictQuery(x []float64) ([]float64, error) {
	if len(x) != w.D {
		return nil, errors.NewDimensionError("predictor.PredictQuery", w.D, len(x), 1)
	}
	xRow := mat.NewDense(1, w.D, append([]float64(nil), x...))
	pred, err := w.Predict(xRow)
	if err != nil {
		return nil, err
	}
	if fr, fc := pred.Dims(); fr != 1 || fc != w.K {
		return nil, errors.NewDimensionError("predictor.PredictQuery", w.K, fc, 1)
	}
	return mat.Row(nil, 0, pred), nil
}

// Predict invokes the wrapped function, recovering from any panic and
// rejecting non-finite outputs before they reach the rest of the
// pipeline.
func (w *Wrapper) Predict(X mat.Matrix) (out *mat.Dense, err error) {
	defer errors.Recover(&err, "predictor.Predict")

	rows, cols := X.Dims()
	if w.D != 0 && cols != w.D {
		return nil, errors.NewDimensionError("predictor.Predict", w.D, cols, 1)
	}

	result, predErr := w.fn(X)
	if predErr != nil {
		return nil, errors.NewPredictorError("predict", predErr)
	}

	outRows, outCols := result.Dims()
	if outRows != rows {
		return nil, errors.NewDimensionError("predictor.Predict", rows, outRows, 0)
	}
	if err := errors.CheckMatrix("predictor output", result, outRows, outCols, -1); err != nil {
		return nil, err
	}

	dense, ok := result.(*mat.Dense)
	if !ok {
		dense = mat.DenseCopyOf(result)
	}
	return dense, nil
}

// columnMeans returns the mean of each column of m.
func columnMeans(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	means := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += m.At(i, j)
		}
		means[j] = sum / float64(rows)
	}
	return means
}
