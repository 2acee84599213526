package coalition

import (
	"github.com/shapkit/kernelshap/internal/kernel"
	"github.com/shapkit/kernelshap/pkg/errors"
)

// MinBudget returns the smallest sample budget Build will accept for d
// features: the d complementary pairs at the two outermost sizes (1 and
// d-1), without which the regression has no information at all.
func MinBudget(d int) int {
	return 2 * d
}

// Build schedules M coalitions for a d-feature explanation and returns
// them, each tagged with its regression weight, in the Registry. Sizes are
// walked from the extremes inward (1, d-1, 2, d-2, ...) and enumerated
// exhaustively with the exact kernel weight as long as the remaining
// budget covers the full pair; once it doesn't, every size from there to
// the center is filled by Monte-Carlo sampling, each sampled coalition
// weighted 1/r (r = budget left after enumeration) so the sampled portion
// sums to 1 regardless of the exhaustive portion's scale.
//
// Build assumes d >= 2. The d=1 case has no interior coalition sizes at
// all and is handled by the caller before reaching the coalition package.
func Build(d, budget int, rng *LCG) (*Registry, error) {
	required := MinBudget(d)
	if budget < required {
		return nil, errors.NewBudgetError(d, budget, required)
	}

	reg := NewRegistry(budget)
	enumerated := 0
	level := 1
	remainingSizes := []int(nil)

	for level*2 <= d {
		s1, s2 := level, d-level
		pairCount := pairSize(d, s1, s2)
		remaining := float64(budget - enumerated)
		if pairCount > remaining {
			for s := level; s <= d-level; s++ {
				remainingSizes = append(remainingSizes, s)
			}
			break
		}

		w1 := kernel.Weight(d, s1)
		combos1 := combinationsOfSize(d, s1)
		for _, idx := range combos1 {
			reg.Add(FromIndices(d, idx), w1)
		}
		enumerated += len(combos1)
		if s2 != s1 {
			w2 := kernel.Weight(d, s2)
			combos2 := combinationsOfSize(d, s2)
			for _, idx := range combos2 {
				reg.Add(FromIndices(d, idx), w2)
			}
			enumerated += len(combos2)
		}
		level++
	}

	if remainingSizes == nil {
		// Every size down to the center was enumerated exhaustively.
		return reg, nil
	}

	r := budget - enumerated
	if r <= 0 {
		return reg, nil
	}
	sampleRemainder(reg, d, r, remainingSizes, rng)
	if r%2 != 0 {
		errors.Warn(errors.NewTruncatedPairWarning(d, budget))
	}
	return reg, nil
}

// pairSize returns the total number of coalitions at sizes s1 and s2
// combined (s1 == s2 only at d's midpoint, when d is even).
func pairSize(d, s1, s2 int) float64 {
	c1 := kernel.Binomial(d, s1)
	if s1 == s2 {
		return c1
	}
	return c1 + kernel.Binomial(d, s2)
}

// sampleRemainder draws exactly r coalitions from the un-enumerated sizes,
// each with weight 1/r, so the sampled portion of the registry is
// self-normalized (its weights sum to 1) independent of the scale the
// exhaustive portion used.
func sampleRemainder(reg *Registry, d, r int, sizes []int, rng *LCG) {
	sizeWeights := make([]float64, len(sizes))
	total := 0.0
	for i, s := range sizes {
		sizeWeights[i] = kernel.SizeWeight(d, s)
		total += sizeWeights[i]
	}

	drawSize := func() int {
		target := rng.Float64() * total
		cum := 0.0
		for i, w := range sizeWeights {
			cum += w
			if target <= cum {
				return sizes[i]
			}
		}
		return sizes[len(sizes)-1]
	}

	weight := 1.0 / float64(r)
	added := 0
	for added < r {
		s := drawSize()
		m := FromIndices(d, rng.SamplePositions(d, s))
		reg.Add(m, weight)
		added++
		if added >= r {
			break
		}
		reg.Add(m.Complement(), weight)
		added++
	}
}

// combinationsOfSize returns, in lexicographic order, every size-s subset
// of {0, ..., d-1} as a slice of indices.
func combinationsOfSize(d, s int) [][]int {
	if s == 0 {
		return [][]int{{}}
	}
	if s == d {
		full := make([]int, d)
		for i := range full {
			full[i] = i
		}
		return [][]int{full}
	}

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
