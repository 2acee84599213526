// Package errors provides the project-wide error handling and warning
// system. It wraps github.com/cockroachdb/errors for stack traces and
// github.com/rs/zerolog for structured warning output, and defines the
// concrete error/warning types the rest of the module constructs.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("kernelshap-warning: %v\n", w)
	}
	// Set lazily by pkg/log to avoid a direct import cycle.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler installs a custom handler for warnings raised via Warn.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // discard the warning entirely
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink (used by
// pkg/log so warnings land in the same structured stream as everything
// else, without pkg/errors importing pkg/log directly).
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn raises a non-fatal warning. If a zerolog sink has been installed it
// takes priority; otherwise the plain warningHandler is used.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ConvergenceWarning reports that an iterative or regularized solve needed
// more help than its caller configured — e.g. the regressor had to inflate
// ridge regularization beyond the requested λ to recover a solution.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s did not converge cleanly after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s did not converge cleanly after %d iterations", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning constructs a ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// TruncatedPairWarning reports that the Monte-Carlo sampling stage could
// not draw a full complementary pair for its last coalition because the
// remaining sample budget was odd.
type TruncatedPairWarning struct {
	D      int
	Budget int
}

func (w *TruncatedPairWarning) Error() string {
	return fmt.Sprintf("kernelshap: odd sample budget %d for d=%d features; final Monte-Carlo pair truncated to one coalition", w.Budget, w.D)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (w *TruncatedPairWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("d", w.D).Int("budget", w.Budget).Str("type", "TruncatedPairWarning")
}

// NewTruncatedPairWarning constructs a TruncatedPairWarning.
func NewTruncatedPairWarning(d, budget int) *TruncatedPairWarning {
	return &TruncatedPairWarning{D: d, Budget: budget}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotReadyError is returned when an operation that requires a configured
// Explainer (dimensions known, predictor wired) is attempted before New
// has finished constructing it.
type NotReadyError struct {
	Component string
	Method    string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("kernelshap: %s: %s is not ready; call New() first", e.Component, e.Method)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (e *NotReadyError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("component", e.Component).
		Str("method", e.Method).
		Str("type", "NotReadyError")
}

// NewNotReadyError constructs a NotReadyError with a stack trace attached.
func NewNotReadyError(component, method string) error {
	err := &NotReadyError{Component: component, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports that an input's shape did not match what an
// operation required.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("kernelshap: %s: dimension mismatch on axis %d (%s): expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError constructs a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError reports that a parameter failed a validity check that
// isn't simply a dimension mismatch (e.g. a negative sample budget).
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("kernelshap: validation failed for parameter %q: %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError constructs a ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is out of range or otherwise
// nonsensical for the operation it was passed to.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("kernelshap: %s: %s", e.Op, e.Message)
}

// NewValueError constructs a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// BudgetError reports that the caller's requested sample budget M cannot
// support a valid explanation for d features — KernelSHAP needs at least
// the d complementary pairs of sizes 1 and d-1 (2d coalitions) before any
// Monte-Carlo sampling can add information.
type BudgetError struct {
	D        int
	Budget   int
	Required int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("kernelshap: sample budget %d is too small for d=%d features; need at least %d", e.Budget, e.D, e.Required)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (e *BudgetError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("d", e.D).Int("budget", e.Budget).Int("required", e.Required).Str("type", "BudgetError")
}

// NewBudgetError constructs a BudgetError with a stack trace attached.
func NewBudgetError(d, budget, required int) error {
	err := &BudgetError{D: d, Budget: budget, Required: required}
	return errors.WithStack(err)
}

// PredictorError wraps a failure (returned error or recovered panic) from
// the caller-supplied predictor function.
type PredictorError struct {
	Op  string
	Err error
}

func (e *PredictorError) Error() string {
	return fmt.Sprintf("kernelshap: predictor failed during %s: %v", e.Op, e.Err)
}

func (e *PredictorError) Unwrap() error {
	return e.Err
}

// NewPredictorError constructs a PredictorError with a stack trace attached.
func NewPredictorError(op string, err error) error {
	wrapped := &PredictorError{Op: op, Err: err}
	return errors.WithStack(wrapped)
}

// DegenerateSystemError reports that the weighted regression's normal
// equations are singular, or remain so even after the configured ridge
// regularization was applied.
type DegenerateSystemError struct {
	Op     string
	Size   int
	Lambda float64
}

func (e *DegenerateSystemError) Error() string {
	return fmt.Sprintf("kernelshap: %s: regression system of size %d is singular even with ridge lambda=%g", e.Op, e.Size, e.Lambda)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (e *DegenerateSystemError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).Int("size", e.Size).Float64("lambda", e.Lambda).Str("type", "DegenerateSystemError")
}

// NewDegenerateSystemError constructs a DegenerateSystemError with a stack
// trace attached.
func NewDegenerateSystemError(op string, size int, lambda float64) error {
	err := &DegenerateSystemError{Op: op, Size: size, Lambda: lambda}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target per errors.Is semantics.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be assigned to target per errors.As semantics.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with message, preserving its stack trace.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message, preserving its stack trace.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New constructs a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf constructs a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err if it doesn't already carry one.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Numerical-instability errors
//
// ===========================================================================

// NumericalInstabilityError reports that a computation produced NaN, Inf,
// or another value outside its expected numerical range.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Context   map[string]interface{}
	Row       int // background/sample row that triggered the error, -1 if not applicable
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	if e.Row >= 0 {
		return fmt.Sprintf("kernelshap: numerical instability in %s at row %d: [%s]", e.Operation, e.Row, valStr)
	}
	return fmt.Sprintf("kernelshap: numerical instability in %s: [%s]", e.Operation, valStr)
}

// NewNumericalInstabilityError constructs a NumericalInstabilityError.
func NewNumericalInstabilityError(operation string, values []float64, row int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Row:       row,
		Context:   make(map[string]interface{}),
	}
	return errors.WithStack(err)
}

// InputShapeError reports a shape mismatch between what an operation
// expected (as a full shape vector, not just a single axis) and what it
// received — used where DimensionError's single-axis report is too coarse.
type InputShapeError struct {
	Phase    string // "background", "query", "predictor_output"
	Expected []int
	Got      []int
	Feature  string
}

func (e *InputShapeError) Error() string {
	expectedStr := fmt.Sprintf("%v", e.Expected)
	gotStr := fmt.Sprintf("%v", e.Got)
	if e.Feature != "" {
		return fmt.Sprintf("kernelshap: input shape mismatch in %s for %q: expected %s, got %s",
			e.Phase, e.Feature, expectedStr, gotStr)
	}
	return fmt.Sprintf("kernelshap: input shape mismatch in %s: expected %s, got %s",
		e.Phase, expectedStr, gotStr)
}

// NewInputShapeError constructs an InputShapeError.
func NewInputShapeError(phase string, expected, got []int) error {
	err := &InputShapeError{Phase: phase, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrNotImplemented marks a feature that is not yet implemented.
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData marks an operation given empty data where at least one
	// row/column was required.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix marks a matrix that cannot be inverted or solved.
	ErrSingularMatrix = New("singular matrix")
)
