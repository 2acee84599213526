// Package regression solves the weighted, equality-constrained linear
// least squares that turns sampled coalition predictions into Shapley
// value estimates.
package regression

import (
	"gonum.org/v1/gonum/mat"

	"github.com/shapkit/kernelshap/internal/coalition"
	"github.com/shapkit/kernelshap/pkg/errors"
)

// DefaultRidgeScale is the λ/trace·d ratio applied when the caller does
// not override it: λ = DefaultRidgeScale * trace(AᵀWA) / d.
const DefaultRidgeScale = 1e-8

// Solve computes φ ∈ R^{d×k} from a registry of weighted coalitions and
// their mean predictions, one output class at a time, subject to the
// efficiency constraint Σ_j φ_{j,c} = fx_c − basePred_c for every class c.
//
// It eliminates the last feature's coefficient using the constraint,
// reducing each class's problem to an unconstrained weighted least
// squares in d-1 unknowns, and solves the ridge-regularized normal
// equations with mat.Cholesky.
//
// ridgeScale sets λ = ridgeScale * trace(AᵀWA) / d. A negative value
// selects DefaultRidgeScale; 0 disables ridging entirely, which is useful
// for callers that want a genuinely singular system to surface as
// DegenerateSystemError rather than be silently stabilized.
func Solve(entries []coalition.WeightedMask, yBar *mat.Dense, basePred, fx []float64, ridgeScale float64) (*mat.Dense, error) {
	m := len(entries)
	if m == 0 {
		return nil, errors.New("regression: empty sample registry")
	}
	d := len(entries[0].Mask.Bits)
	k := len(basePred)
	if ridgeScale < 0 {
		ridgeScale = DefaultRidgeScale
	}

	phi := mat.NewDense(d, k, nil)

	if d == 1 {
		for c := 0; c < k; c++ {
			phi.Set(0, c, fx[c]-basePred[c])
		}
		return phi, nil
	}

	sub := d - 1 // number of coefficients solved directly; the last is recovered from the constraint

	// A[t][j] = z_tj - z_t,last, shared across all classes.
	A := mat.NewDense(m, sub, nil)
	w := make([]float64, m)
	z := make([][]bool, m)
	for t, e := range entries {
		z[t] = e.Mask.Bits
		w[t] = e.Weight
		last := 0.0
		if e.Mask.Bits[d-1] {
			last = 1.0
		}
		for j := 0; j < sub; j++ {
			v := 0.0
			if e.Mask.Bits[j] {
				v = 1.0
			}
			A.Set(t, j, v-last)
		}
	}

	// AᵀWA, computed once and reused (with its own ridge term) for every
	// output class since the design matrix doesn't depend on c.
	AtWA := weightedGram(A, w, sub)
	lambda := ridgeScale * trace(AtWA) / float64(d)
	for i := 0; i < sub; i++ {
		AtWA.SetSym(i, i, AtWA.At(i, i)+lambda)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(AtWA); !ok {
		return nil, errors.NewDegenerateSystemError("regression.Solve", sub, lambda)
	}

	for c := 0; c < k; c++ {
		constraintC := fx[c] - basePred[c]
		u := make([]float64, m)
		for t := range entries {
			lastVal := 0.0
			if z[t][d-1] {
				lastVal = 1.0
			}
			u[t] = yBar.At(t, c) - basePred[c] - lastVal*constraintC
		}
		rhs := weightedAtb(A, w, u, sub)

		var solVec mat.VecDense
		rhsVec := mat.NewVecDense(sub, rhs)
		if err := chol.SolveVecTo(&solVec, rhsVec); err != nil {
			return nil, errors.NewDegenerateSystemError("regression.Solve", sub, lambda)
		}

		sum := 0.0
		for j := 0; j < sub; j++ {
			v := solVec.AtVec(j)
			phi.Set(j, c, v)
			sum += v
		}
		phi.Set(sub, c, constraintC-sum)
	}

	return phi, nil
}

// weightedGram returns AᵀWA as a symmetric matrix of size cols×cols.
func weightedGram(A *mat.Dense, w []float64, cols int) *mat.SymDense {
	rows, _ := A.Dims()
	sym := mat.NewSymDense(cols, nil)
	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			sum := 0.0
			for t := 0; t < rows; t++ {
				sum += w[t] * A.At(t, i) * A.At(t, j)
			}
			sym.SetSym(i, j, sum)
		}
	}
	return sym
}

// weightedAtb returns AᵀWb.
func weightedAtb(A *mat.Dense, w, b []float64, cols int) []float64 {
	rows, _ := A.Dims()
	out := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for t := 0; t < rows; t++ {
			sum += w[t] * A.At(t, j) * b[t]
		}
		out[j] = sum
	}
	return out
}

func trace(sym *mat.SymDense) float64 {
	n := sym.SymmetricDim()
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += sym.At(i, i)
	}
	if sum == 0 {
		return 1 // avoid a zero ridge term collapsing to no regularization at all
	}
	return sum
}
