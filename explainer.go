package kernelshap

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/shapkit/kernelshap/internal/coalition"
	"github.com/shapkit/kernelshap/internal/predictor"
	"github.com/shapkit/kernelshap/internal/regression"
	"github.com/shapkit/kernelshap/internal/sample"
	"github.com/shapkit/kernelshap/internal/state"
	"github.com/shapkit/kernelshap/pkg/errors"
	"github.com/shapkit/kernelshap/pkg/log"
)

// DefaultNSamplesExtra is the constant term in the default sample budget
// 2d + DefaultNSamplesExtra.
const DefaultNSamplesExtra = 2048

// PredictFunc evaluates the black-box model on an m×d batch and returns
// an m×k matrix of outputs. It must be pure with respect to row order.
type PredictFunc = predictor.Func

// Explainer attributes a predictor's output at one query point to each
// input feature via KernelSHAP, using a fixed background dataset as the
// marginal distribution for "absent" features.
//
// One Explainer may run Explain any number of times. Each call records its
// sample count for LastSamplesUsed, so concurrent calls to Explain on the
// same Explainer race on that field; concurrent explanations run on
// separate Explainer instances, which never share state.
type Explainer struct {
	background *Background
	wrapper    *predictor.Wrapper
	seed       uint64
	cfg        config
	ready      *state.Manager

	lastSamplesUsed int
}

// New constructs an Explainer: it validates background's shape, evaluates
// predict once over it to derive the output width k and the base value
// φ_0 = mean(predict(X_bg), axis=0), and returns an Explainer ready for
// repeated Explain calls with the given seed driving every coalition
// sampler.
func New(predict PredictFunc, background *mat.Dense, seed uint64, opts ...Option) (*Explainer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	start := time.Now()

	bg, err := NewBackground(background)
	if err != nil {
		return nil, err
	}
	if predict == nil {
		return nil, errors.NewValidationError("predict", "must not be nil", nil)
	}

	wrapper, err := predictor.New(predict, bg.X)
	if err != nil {
		logger.Error("kernelshap: New failed wrapping predictor", log.ErrAttr(err))
		return nil, err
	}

	ready := state.NewManager()
	ready.SetReady(bg.D, bg.N, wrapper.K)

	logger.Info("kernelshap: explainer constructed",
		log.OperationKey, log.OperationNew,
		log.DKey, bg.D,
		log.NKey, bg.N,
		log.KKey, wrapper.K,
		log.SeedKey, seed,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Explainer{
		background: bg,
		wrapper:    wrapper,
		seed:       seed,
		cfg:        cfg,
		ready:      ready,
	}, nil
}

// BaseValue returns φ_0, the mean predictor output over the background
// data.
func (e *Explainer) BaseValue() []float64 {
	out := make([]float64, len(e.wrapper.BasePred))
	copy(out, e.wrapper.BasePred)
	return out
}

// LastSamplesUsed returns the number of coalitions registered by the most
// recent Explain call (<= the requested nSamples), giving callers
// budget-tuning feedback.
func (e *Explainer) LastSamplesUsed() int {
	return e.lastSamplesUsed
}

// Explain attributes predict(x) to each of x's d features, returning a
// Result with Phi ∈ R^{d×k} and Phi0 = BaseValue() such that, for each
// class c, Phi0[c] + Σ_j Phi[j][c] ≈ predict(x)[c].
func (e *Explainer) Explain(x []float64, opts ...ExplainOption) (*Result, error) {
	if err := e.ready.RequireReady("Explain"); err != nil {
		return nil, err
	}
	start := time.Now()
	d := e.background.D
	if len(x) != d {
		return nil, errors.NewDimensionError("Explain", d, len(x), 1)
	}

	ec := e.resolveExplainConfig(opts)
	logger := e.cfg.logger.With(
		log.OperationKey, log.OperationExplain,
		log.DKey, d,
		log.NKey, e.background.N,
		log.MKey, ec.nSamples,
		log.SeedKey, e.seed,
	)

	fx, err := e.wrapper.PredictQuery(x)
	if err != nil {
		logger.Error("kernelshap: query prediction failed", log.ErrAttr(err))
		return nil, err
	}
	k := e.wrapper.K
	basePred := e.wrapper.BasePred

	if d == 1 {
		phi := mat.NewDense(1, k, nil)
		for c := 0; c < k; c++ {
			phi.Set(0, c, fx[c]-basePred[c])
		}
		e.lastSamplesUsed = 0
		return &Result{Phi: phi, Phi0: append([]float64(nil), basePred...), Fx: fx, D: d, K: k}, nil
	}

	if ec.nSamples < coalition.MinBudget(d) {
		err := errors.NewBudgetError(d, ec.nSamples, coalition.MinBudget(d))
		logger.Error("kernelshap: sample budget too small", log.ErrAttr(err))
		return nil, err
	}

	rng := coalition.NewLCG(e.seed)
	reg, err := coalition.Build(d, ec.nSamples, rng)
	if err != nil {
		logger.Error("kernelshap: coalition build failed", log.ErrAttr(err))
		return nil, err
	}

	builder := sample.NewBuilder(e.background.X, x, ec.maxCellBudget)
	predict := func(X mat.Matrix) (mat.Matrix, error) { return e.wrapper.Predict(X) }
	yBar, _, err := builder.Build(reg, predict)
	if err != nil {
		logger.Error("kernelshap: sample build failed", log.ErrAttr(err))
		return nil, err
	}

	phi, err := regression.Solve(reg.All(), yBar, basePred, fx, ec.ridge)
	if err != nil {
		logger.Error("kernelshap: regression failed", log.ErrAttr(err))
		return nil, err
	}

	e.lastSamplesUsed = reg.Len()

	logger.Info("kernelshap: explanation complete",
		log.SampleCountKey, reg.Len(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Result{
		Phi:          phi,
		Phi0:         append([]float64(nil), basePred...),
		Fx:           fx,
		D:            d,
		K:            k,
		NSamplesUsed: reg.Len(),
	}, nil
}

// resolveExplainConfig applies ExplainOptions on top of the package
// defaults (nSamples = 2d+2048, ridge = regression.DefaultRidgeScale via
// the -1 sentinel, maxCellBudget = the Explainer's configured default).
func (e *Explainer) resolveExplainConfig(opts []ExplainOption) explainConfig {
	ec := explainConfig{
		nSamples:      2*e.background.D + DefaultNSamplesExtra,
		ridge:         -1,
		maxCellBudget: e.cfg.defaultMaxCellBudget,
	}
	for _, opt := range opts {
		opt(&ec)
	}
	return ec
}
