package kernelshap

import "gonum.org/v1/gonum/mat"

// Result is the outcome of one Explain call: per-feature, per-class
// attributions Phi ∈ R^{d×k} and the base value Phi0 ∈ R^k such that, for
// every class c, Phi0[c] + Σ_j Phi.At(j, c) ≈ Fx[c].
//
// Fx and NSamplesUsed are carried alongside Phi/Phi0 so that diagnostics
// (efficiency gap, sampling budget checks) don't need a second call back
// into the Explainer.
type Result struct {
	Phi          *mat.Dense
	Phi0         []float64
	Fx           []float64
	D, K         int
	NSamplesUsed int
}

// PhiColumn returns class c's attribution vector, one value per feature.
func (r *Result) PhiColumn(c int) []float64 {
	col := make([]float64, r.D)
	for j := 0; j < r.D; j++ {
		col[j] = r.Phi.At(j, c)
	}
	return col
}
