package kernelshap

import "github.com/shapkit/kernelshap/pkg/log"

// config holds the construction-time defaults an Explainer falls back to
// when an Explain call doesn't override them via ExplainOption.
type config struct {
	defaultMaxCellBudget int
	logger               log.Logger
}

// Option configures an Explainer at construction time.
type Option func(*config)

// WithDefaultMaxCellBudget overrides the sample-matrix chunking threshold
// (cells = nSamples * n * d) used by every Explain call that doesn't set
// its own via WithMaxCellBudget. n <= 0 restores the package default.
func WithDefaultMaxCellBudget(n int) Option {
	return func(c *config) { c.defaultMaxCellBudget = n }
}

// WithLogger overrides the structured logger an Explainer uses for its
// new/explain/base_value operations. The default is
// log.GetLoggerWithName("kernelshap").
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func defaultConfig() config {
	return config{logger: log.GetLoggerWithName("kernelshap")}
}

// explainConfig holds the per-call parameters Explain resolves from its
// ExplainOptions, each defaulting to a sensible value unless the caller
// overrides it.
type explainConfig struct {
	nSamples      int
	ridge         float64
	maxCellBudget int
}

// ExplainOption configures a single Explain call.
type ExplainOption func(*explainConfig)

// WithNSamples overrides the sample budget M (default 2d + DefaultNSamplesExtra).
func WithNSamples(m int) ExplainOption {
	return func(c *explainConfig) { c.nSamples = m }
}

// WithRidge overrides the regression's ridge scale (see
// regression.DefaultRidgeScale). A negative value restores the default; 0
// disables ridging.
func WithRidge(ridge float64) ExplainOption {
	return func(c *explainConfig) { c.ridge = ridge }
}

// WithMaxCellBudget overrides how many sample-matrix cells (nSamples * n *
// d) are materialized per predictor call before the builder chunks.
func WithMaxCellBudget(n int) ExplainOption {
	return func(c *explainConfig) { c.maxCellBudget = n }
}
