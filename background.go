package kernelshap

import (
	"gonum.org/v1/gonum/mat"

	"github.com/shapkit/kernelshap/pkg/errors"
)

// Background wraps the reference dataset X_bg ∈ R^{n×d} whose rows stand
// in for "absent" feature values during masking. It is immutable once
// constructed: New copies nothing further out of it, so callers must not
// mutate the *mat.Dense passed to NewBackground after construction.
type Background struct {
	X    *mat.Dense
	N, D int
}

// NewBackground validates and wraps a background matrix. It rejects an
// empty matrix and any non-finite (NaN/Inf) entry, per the BackgroundData
// invariants (n >= 1, d >= 1, finite).
func NewBackground(X *mat.Dense) (*Background, error) {
	if X == nil {
		return nil, errors.NewValidationError("background", "must not be nil", nil)
	}
	n, d := X.Dims()
	if n < 1 {
		return nil, errors.NewValidationError("background", "must have at least one row", n)
	}
	if d < 1 {
		return nil, errors.NewValidationError("background", "must have at least one feature column", d)
	}
	if err := errors.CheckMatrix("background", X, n, d, -1); err != nil {
		return nil, err
	}
	return &Background{X: X, N: n, D: d}, nil
}
