// Package errors provides centralized error definitions for the listing
// pipeline. It defines the three error kinds a run can abort with —
// generation failures, stage-contract violations, and persistence failures —
// plus constructors with context wrapping and classification helpers.
//
// Human rejection of a candidate artifact is NOT an error and has no type
// here; it is handled entirely inside the approval gate.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for the three abort kinds.
var (
	// ErrGenerationFailed indicates an underlying text/image/SEO capability failed.
	ErrGenerationFailed = New("generation failed")
	// ErrContractViolation indicates an invalid or missing aspect ratio at a stage boundary.
	ErrContractViolation = New("stage contract violation")
	// ErrPersistenceFailed indicates a write or organize step failed.
	ErrPersistenceFailed = New("persistence failed")
)

// baseError provides common functionality for the pipeline error types.
type baseError struct {
	message   string
	cause     error
	retryable bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// IsRetryable returns whether a retry of the whole run could plausibly succeed.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// GenerationError represents a failure of an external generation capability.
// It aborts the run immediately and is never treated as a human rejection.
//
// Example:
//
//	err := errors.NewGenerationError("image model returned no candidates", cause).
//		WithStage("image").WithCapability("imagen")
type GenerationError struct {
	baseError
	Stage      string
	Capability string
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(message string, cause error) *GenerationError {
	return &GenerationError{
		baseError: baseError{
			message:   message,
			cause:     cause,
			retryable: true,
		},
	}
}

// WithStage adds the pipeline stage to the error context.
func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	return e
}

// WithCapability adds the external capability name to the error context.
func (e *GenerationError) WithCapability(capability string) *GenerationError {
	e.Capability = capability
	return e
}

// Error returns the formatted error message.
func (e *GenerationError) Error() string {
	var parts []string
	if e.Stage != "" {
		parts = append(parts, fmt.Sprintf("stage=%s", e.Stage))
	}
	if e.Capability != "" {
		parts = append(parts, fmt.Sprintf("capability=%s", e.Capability))
	}

	prefix := "generation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("generation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *GenerationError) Is(target error) bool {
	if _, ok := target.(*GenerationError); ok {
		return true
	}
	if errors.Is(target, ErrGenerationFailed) {
		return true
	}
	return e.baseError.is(target)
}

// ContractViolationError represents a missing or invalid aspect ratio at a
// stage boundary. Downstream sizing and template tables have no default, so
// this always aborts the run.
//
// Example:
//
//	err := errors.NewContractViolation("prints", "aspect_ratio", "square")
type ContractViolationError struct {
	baseError
	Stage string
	Field string
	Value any
}

// NewContractViolation creates a new ContractViolationError.
func NewContractViolation(stage, field string, value any) *ContractViolationError {
	return &ContractViolationError{
		baseError: baseError{
			message:   fmt.Sprintf("invalid %s", field),
			retryable: false,
		},
		Stage: stage,
		Field: field,
		Value: value,
	}
}

// WithCause adds a cause to the error.
func (e *ContractViolationError) WithCause(cause error) *ContractViolationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ContractViolationError) Error() string {
	var parts []string
	if e.Stage != "" {
		parts = append(parts, fmt.Sprintf("stage=%s", e.Stage))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	} else {
		parts = append(parts, "value=<missing>")
	}

	prefix := "contract violation"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("contract violation [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ContractViolationError) Is(target error) bool {
	if _, ok := target.(*ContractViolationError); ok {
		return true
	}
	if errors.Is(target, ErrContractViolation) {
		return true
	}
	return e.baseError.is(target)
}

// PersistenceError represents a failed write or organize step. Partially
// written directories from an aborted run are left in place for inspection.
//
// Example:
//
//	err := errors.NewPersistenceError("failed to write manifest", cause).WithPath(path)
type PersistenceError struct {
	baseError
	Stage string
	Path  string
}

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(message string, cause error) *PersistenceError {
	return &PersistenceError{
		baseError: baseError{
			message:   message,
			cause:     cause,
			retryable: false,
		},
	}
}

// WithStage adds the pipeline stage to the error context.
func (e *PersistenceError) WithStage(stage string) *PersistenceError {
	e.Stage = stage
	return e
}

// WithPath adds the filesystem path to the error context.
func (e *PersistenceError) WithPath(path string) *PersistenceError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *PersistenceError) Error() string {
	var parts []string
	if e.Stage != "" {
		parts = append(parts, fmt.Sprintf("stage=%s", e.Stage))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}

	prefix := "persistence error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("persistence error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *PersistenceError) Is(target error) bool {
	if _, ok := target.(*PersistenceError); ok {
		return true
	}
	if errors.Is(target, ErrPersistenceFailed) {
		return true
	}
	return e.baseError.is(target)
}

// -----------------------------------------------------------------------------
// Classification helpers
// -----------------------------------------------------------------------------

// IsGenerationFailure reports whether err is (or wraps) a GenerationError.
func IsGenerationFailure(err error) bool {
	var ge *GenerationError
	return As(err, &ge)
}

// IsContractViolation reports whether err is (or wraps) a ContractViolationError.
func IsContractViolation(err error) bool {
	var cv *ContractViolationError
	return As(err, &cv)
}

// IsPersistenceFailure reports whether err is (or wraps) a PersistenceError.
func IsPersistenceFailure(err error) bool {
	var pe *PersistenceError
	return As(err, &pe)
}

// Stage returns the pipeline stage attached to a pipeline error, or "" when
// the error carries none.
func Stage(err error) string {
	var ge *GenerationError
	if As(err, &ge) {
		return ge.Stage
	}
	var cv *ContractViolationError
	if As(err, &cv) {
		return cv.Stage
	}
	var pe *PersistenceError
	if As(err, &pe) {
		return pe.Stage
	}
	return ""
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
