// Package sample constructs the synthetic M·n×d sample matrix a
// registry's masks expand into, invokes the predictor over it, and
// collapses the result to one mean prediction row per mask.
package sample

import (
	"gonum.org/v1/gonum/mat"

	"github.com/shapkit/kernelshap/internal/coalition"
	"github.com/shapkit/kernelshap/internal/predictor"
	"github.com/shapkit/kernelshap/pkg/errors"
)

// DefaultMaxCellBudget bounds how many matrix cells (rows*cols) the
// builder will materialize in one predictor call before chunking.
const DefaultMaxCellBudget = 4_000_000

// Builder owns the background data and query point for one explanation
// and turns a coalition.Registry into yBar ∈ R^{M×k}.
type Builder struct {
	background *mat.Dense
	x          []float64
	n, d       int

	maxCellBudget int
}

// NewBuilder returns a Builder for the given background matrix and query
// point. maxCellBudget <= 0 selects DefaultMaxCellBudget.
func NewBuilder(background *mat.Dense, x []float64, maxCellBudget int) *Builder {
	n, d := background.Dims()
	if maxCellBudget <= 0 {
		maxCellBudget = DefaultMaxCellBudget
	}
	return &Builder{background: background, x: x, n: n, d: d, maxCellBudget: maxCellBudget}
}

// Build expands every mask in reg into n rows, invokes predict over the
// resulting matrix (chunked if M·n·d exceeds the configured cell budget),
// and returns yBar, the per-mask mean prediction, with k read off the
// first chunk's output width.
func (b *Builder) Build(reg *coalition.Registry, predict predictor.Func) (yBar *mat.Dense, k int, err error) {
	m := reg.Len()
	if m == 0 {
		return &mat.Dense{}, 0, nil
	}

	masksPerChunk := b.masksPerChunk()
	entries := reg.All()

	for start := 0; start < m; start += masksPerChunk {
		end := start + masksPerChunk
		if end > m {
			end = m
		}
		block := entries[start:end]

		S := b.buildBlock(block)
		pred, predErr := predict(S)
		if predErr != nil {
			return nil, 0, errors.NewPredictorError("sample.Build", predErr)
		}
		if yBar == nil {
			_, k = pred.Dims()
			yBar = mat.NewDense(m, k, nil)
		}
		b.accumulateMeans(pred, yBar, start, len(block), k)
	}
	return yBar, k, nil
}

// masksPerChunk is the largest count of masks whose rows (masksPerChunk*n
// rows, d columns) stay within maxCellBudget, never less than 1 — a
// single mask's block is always allowed through even if it alone exceeds
// the budget, since the builder cannot subdivide within one mask.
func (b *Builder) masksPerChunk() int {
	perMaskCells := b.n * b.d
	if perMaskCells <= 0 {
		return 1
	}
	n := b.maxCellBudget / perMaskCells
	if n < 1 {
		n = 1
	}
	return n
}

// buildBlock materializes the rows for a contiguous run of masks: n
// repetitions of background per mask, with present-feature columns
// overwritten by the query value.
func (b *Builder) buildBlock(block []coalition.WeightedMask) *mat.Dense {
	rows := len(block) * b.n
	S := mat.NewDense(rows, b.d, nil)
	for t, entry := range block {
		base := t * b.n
		for i := 0; i < b.n; i++ {
			S.SetRow(base+i, b.background.RawRowView(i))
		}
		for j, present := range entry.Mask.Bits {
			if !present {
				continue
			}
			for i := 0; i < b.n; i++ {
				S.Set(base+i, j, b.x[j])
			}
		}
	}
	return S
}

// accumulateMeans averages pred's n-row blocks into yBar rows
// [offset, offset+count).
func (b *Builder) accumulateMeans(pred mat.Matrix, yBar *mat.Dense, offset, count, k int) {
	for t := 0; t < count; t++ {
		base := t * b.n
		for c := 0; c < k; c++ {
			sum := 0.0
			for i := 0; i < b.n; i++ {
				sum += pred.At(base+i, c)
			}
			yBar.Set(offset+t, c, sum/float64(b.n))
		}
	}
}
