package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/shapkit/kernelshap/internal/coalition"
	"github.com/shapkit/kernelshap/internal/kernel"
)

// linearFixture builds a registry and yBar for a model that is exactly
// linear in its masked-in features: yBar(z) = base + Σ_j z_j*trueCoef[j].
// This is the case KernelSHAP recovers exactly regardless of sampling,
// so φ must equal trueCoef up to floating-point error.
func linearFixture(d int, trueCoef []float64, base float64) ([]coalition.WeightedMask, *mat.Dense, []float64, []float64) {
	var entries []coalition.WeightedMask
	var rows []float64
	for s := 1; s < d; s++ {
		w := kernel.Weight(d, s)
		for _, idx := range combosForTest(d, s) {
			mask := coalition.FromIndices(d, idx)
			entries = append(entries, coalition.WeightedMask{Mask: mask, Weight: w})
			y := base
			for _, j := range idx {
				y += trueCoef[j]
			}
			rows = append(rows, y)
		}
	}
	yBar := mat.NewDense(len(rows), 1, rows)
	basePred := []float64{base}
	fullSum := base
	for _, c := range trueCoef {
		fullSum += c
	}
	fx := []float64{fullSum}
	return entries, yBar, basePred, fx
}

func combosForTest(d, s int) [][]int {
	c := make([]int, s)
	for i := range c {
		c[i] = i
	}
	var out [][]int
	for {
		cp := make([]int, s)
		copy(cp, c)
		out = append(out, cp)
		i := s - 1
		for i >= 0 && c[i] == d-s+i {
			i--
		}
		if i < 0 {
			return out
		}
		c[i]++
		for j := i + 1; j < s; j++ {
			c[j] = c[i] + (j - i)
		}
	}
}

func TestSolveRecoversExactLinearCoefficients(t *testing.T) {
	d := 4
	trueCoef := []float64{0.1, -0.2, 0.3, 0.4}
	entries, yBar, basePred, fx := linearFixture(d, trueCoef, 1.5)

	phi, err := Solve(entries, yBar, basePred, fx, 0)
	require.NoError(t, err)

	for j := 0; j < d; j++ {
		assert.InDelta(t, trueCoef[j], phi.At(j, 0), 1e-6)
	}
}

func TestSolveSatisfiesEfficiencyConstraint(t *testing.T) {
	d := 5
	trueCoef := []float64{1, 2, 3, 4, 5}
	entries, yBar, basePred, fx := linearFixture(d, trueCoef, 0.2)

	phi, err := Solve(entries, yBar, basePred, fx, 0)
	require.NoError(t, err)

	sum := basePred[0]
	for j := 0; j < d; j++ {
		sum += phi.At(j, 0)
	}
	assert.InDelta(t, fx[0], sum, 1e-6)
}

func TestSolveSingleFeature(t *testing.T) {
	entries := []coalition.WeightedMask{} // d=1 path never consults entries' weights
	_ = entries
	phi, err := Solve([]coalition.WeightedMask{{Mask: coalition.FromIndices(1, nil), Weight: 1}}, mat.NewDense(1, 1, []float64{0}), []float64{0.3}, []float64{0.9}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, phi.At(0, 0), 1e-12)
}

func TestSolveMultiClass(t *testing.T) {
	d := 4
	coef1 := []float64{0.1, 0.2, 0.3, 0.4}
	coef2 := []float64{-0.1, 0.0, 0.2, -0.3}

	var entries []coalition.WeightedMask
	var rows []float64
	base := []float64{1.0, -0.5}
	for s := 1; s < d; s++ {
		w := kernel.Weight(d, s)
		for _, idx := range combosForTest(d, s) {
			entries = append(entries, coalition.WeightedMask{Mask: coalition.FromIndices(d, idx), Weight: w})
			y1, y2 := base[0], base[1]
			for _, j := range idx {
				y1 += coef1[j]
				y2 += coef2[j]
			}
			rows = append(rows, y1, y2)
		}
	}
	yBar := mat.NewDense(len(entries), 2, rows)
	fx := []float64{base[0] + sum(coef1), base[1] + sum(coef2)}

	phi, err := Solve(entries, yBar, base, fx, 0)
	require.NoError(t, err)
	for j := 0; j < d; j++ {
		assert.InDelta(t, coef1[j], phi.At(j, 0), 1e-6)
		assert.InDelta(t, coef2[j], phi.At(j, 1), 1e-6)
	}
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}

func TestSolveDegenerateSystem(t *testing.T) {
	// A single duplicated coalition size-1 mask gives a rank-deficient
	// design matrix for d > 2: not enough distinct directions to pin down
	// d-1 unknowns.
	d := 5
	entries := []coalition.WeightedMask{
		{Mask: coalition.FromIndices(d, []int{0}), Weight: 1},
		{Mask: coalition.FromIndices(d, []int{0}), Weight: 1},
	}
	yBar := mat.NewDense(2, 1, []float64{0.1, 0.1})
	_, err := Solve(entries, yBar, []float64{0}, []float64{1}, 0)
	assert.Error(t, err)
}

func TestSolveNegativeRidgeScaleUsesDefault(t *testing.T) {
	d := 3
	trueCoef := []float64{0.5, -0.5, 1.0}
	entries, yBar, basePred, fx := linearFixture(d, trueCoef, 0)
	phi1, err := Solve(entries, yBar, basePred, fx, -1)
	require.NoError(t, err)
	phi2, err := Solve(entries, yBar, basePred, fx, DefaultRidgeScale)
	require.NoError(t, err)
	for j := 0; j < d; j++ {
		assert.True(t, math.Abs(phi1.At(j, 0)-phi2.At(j, 0)) < 1e-12)
	}
}
