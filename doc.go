// Package kernelshap implements a model-agnostic KernelSHAP explainer.
//
// Given a black-box predictor f: R^d -> R^k, a background dataset
// X_bg ∈ R^{n×d}, and a query point x ∈ R^d, Explain returns a matrix of
// per-feature, per-class attributions φ ∈ R^{d×k} and a base value
// φ_0 ∈ R^k such that φ_0 + Σ_j φ_j ≈ f(x). φ approximates Shapley values
// under the conditional-independence assumption implicit in KernelSHAP:
// "absent" features are marginalized over the background distribution
// rather than conditioned on the present ones.
//
// # Quick start
//
//	predict := func(X mat.Matrix) (mat.Matrix, error) {
//	    rows, _ := X.Dims()
//	    out := mat.NewDense(rows, 1, nil)
//	    for i := 0; i < rows; i++ {
//	        out.Set(i, 0, myModel.Predict(mat.Row(nil, i, X)))
//	    }
//	    return out, nil
//	}
//
//	explainer, err := kernelshap.New(predict, background, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := explainer.Explain(query)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Phi, result.Phi0)
//
// # Packages
//
// The pipeline is split leaves-first, mirroring how the algorithm itself
// is staged:
//
//   - internal/kernel: the SHAP kernel weight w(s).
//   - internal/coalition: mask representation, the seeded PRNG, and the
//     extremes-inward enumeration/sampling schedule.
//   - internal/sample: the synthetic M·n×d sample matrix and its
//     per-mask mean prediction.
//   - internal/predictor: wraps the caller's prediction function and
//     caches the base value and query prediction.
//   - internal/regression: the weighted, equality-constrained least
//     squares that recovers φ.
//   - diagnostics: post-hoc sanity checks on a Result (efficiency gap,
//     dummy-feature score, sampling budget used).
//   - viz: optional PNG bar-chart export of a Result.
//
// # Concurrency
//
// One Explainer instance serves one explanation at a time; Explain does
// not spawn goroutines internally. Separate Explainer instances share no
// mutable state and may run concurrently.
package kernelshap
