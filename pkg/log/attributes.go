// Package log defines standard attribute keys for KernelSHAP explanation
// operations.
//
// This file contains predefined attribute keys that provide consistency
// across all logging emitted by the explainer. Using these standard keys
// enables correlating log lines across the coalition, sampling, and
// regression stages of a single Explain call.
//
// The attributes are organized into categories:
//   - Explanation context
//   - Coalition and sampling
//   - Performance metrics
//   - Error context
//
// These keys follow a hierarchical naming convention (e.g.,
// "explain.operation", "coalition.size") to enable structured log analysis
// and filtering.
package log

// Explanation context
// These attributes identify the explainer instance and the operation
// currently running against it.
const (
	// ExplainerIDKey provides a unique identifier for a specific Explainer
	// instance, useful when many explainers run concurrently.
	ExplainerIDKey = "explain.explainer_id"

	// OperationKey specifies the operation being performed.
	// Standard values: "new", "explain", "base_value".
	OperationKey = "explain.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "coalition", "sample", "regression", "predictor".
	ComponentKey = "explain.component"

	// SeedKey records the PRNG seed in use, essential for reproducing a
	// failure or an unexpected result.
	SeedKey = "explain.seed"
)

// Data shape and coalition characteristics
// These attributes describe the dimensions of one explanation and the
// coalitions built during it.
const (
	// DKey is the feature count d.
	DKey = "explain.d"

	// NKey is the background row count n.
	NKey = "explain.n"

	// KKey is the predictor output width k.
	KKey = "explain.k"

	// MKey is the configured sample budget M.
	MKey = "explain.m"

	// CoalitionSizeKey records the cardinality |z| of a single coalition
	// mask, used when logging enumeration/sampling decisions.
	CoalitionSizeKey = "coalition.size"

	// SampleCountKey records how many coalitions were actually registered
	// by the end of the enumeration/sampling stage (<= M).
	SampleCountKey = "sample.count"
)

// Performance metrics
// These attributes capture timing and resource usage information.
const (
	// DurationMsKey records the execution time of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MemoryUsageKey records memory usage in bytes during the operation,
	// dominated by the M*n*d sample matrix.
	MemoryUsageKey = "perf.memory_bytes"
)

// Error and warning context
// These attributes provide additional context for error and warning
// messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic
	// handling.
	// Examples: "BUDGET_TOO_SMALL", "DIMENSION_MISMATCH", "DEGENERATE_SYSTEM".
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "BudgetError", "DimensionError", "DegenerateSystemError".
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "Increase nSamples", "Check background matrix width".
	SuggestionKey = "error.suggestion"
)

// Standard attribute value constants for common operations.
const (
	OperationNew       = "new"
	OperationExplain   = "explain"
	OperationBaseValue = "base_value"

	ErrorBudgetTooSmall    = "BUDGET_TOO_SMALL"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorNonFinitePrediction = "NON_FINITE_PREDICTION"
	ErrorDegenerateSystem  = "DEGENERATE_SYSTEM"
	ErrorPredictorFailure  = "PREDICTOR_FAILURE"
)
