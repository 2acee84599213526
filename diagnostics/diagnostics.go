// Package diagnostics provides post-hoc sanity checks on a
// kernelshap.Result, exposed as callables library consumers can assert
// directly rather than re-deriving the math themselves.
package diagnostics

import "gonum.org/v1/gonum/mat"

// EfficiencyGap returns, for each output class c, the absolute difference
// between phi0[c] + Σ_j phi.At(j,c) and fx[c]. A well-formed explanation
// keeps every entry under ~1e-6.
func EfficiencyGap(phi *mat.Dense, phi0, fx []float64) []float64 {
	d, k := phi.Dims()
	gaps := make([]float64, k)
	for c := 0; c < k; c++ {
		sum := phi0[c]
		for j := 0; j < d; j++ {
			sum += phi.At(j, c)
		}
		gap := sum - fx[c]
		if gap < 0 {
			gap = -gap
		}
		gaps[c] = gap
	}
	return gaps
}

// DummyFeatureScore returns |phi[j][c]| for every class c. Small values
// (under ~1e-4) indicate the explainer correctly assigned a feature the
// predictor ignores no credit.
func DummyFeatureScore(phi *mat.Dense, feature int) []float64 {
	_, k := phi.Dims()
	scores := make([]float64, k)
	for c := 0; c < k; c++ {
		v := phi.At(feature, c)
		if v < 0 {
			v = -v
		}
		scores[c] = v
	}
	return scores
}

// SymmetryGap returns |phi[i][c] - phi[j][c]| for every class c, small
// when features i and j are exchangeable under the predictor.
func SymmetryGap(phi *mat.Dense, i, j int) []float64 {
	_, k := phi.Dims()
	gaps := make([]float64, k)
	for c := 0; c < k; c++ {
		diff := phi.At(i, c) - phi.At(j, c)
		if diff < 0 {
			diff = -diff
		}
		gaps[c] = diff
	}
	return gaps
}

// SamplingBudgetUsed reports how the actual number of coalitions sampled
// relates to the requested budget.
type SamplingBudgetUsed struct {
	Requested int
	Used      int
}

// WithinBudget reports whether Used <= Requested.
func (s SamplingBudgetUsed) WithinBudget() bool {
	return s.Used <= s.Requested
}

// Exhausted reports whether the enumerator/sampler used the full budget,
// i.e. it did not stop early from exhaustively covering every coalition
// (which only happens for small d).
func (s SamplingBudgetUsed) Exhausted() bool {
	return s.Used == s.Requested
}

// NewSamplingBudgetUsed builds a SamplingBudgetUsed report from the
// requested and actually-used sample counts.
func NewSamplingBudgetUsed(requested, used int) SamplingBudgetUsed {
	return SamplingBudgetUsed{Requested: requested, Used: used}
}
