// Package errors provides structured error types and exit codes for unitrun.
package errors

import (
	"errors"
	"fmt"

	"github.com/AndreyAkinshin/unitrun/pkg/unitrun"
)

// Exit codes returned by the CLI. Test outcomes never change the exit code;
// only problems that stop the orchestrator itself do.
const (
	ExitSuccess          = unitrun.ExitSuccess     // Success
	ExitRuntimeError     = unitrun.ExitFailure     // Runtime error (unexpected failure, etc.)
	ExitConfigError      = unitrun.ExitConfigError // Configuration error (invalid config, etc.)
	ExitEnvironmentError = unitrun.ExitEnvError    // Environment error (no project root, unwritable state, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment
)

// Error is the base error type for unitrun.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Underlying error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment, KindNotFound:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// Environment creates a new environment error.
func Environment(message string) *Error {
	return &Error{Kind: KindEnvironment, Message: message}
}

// Validation creates a configuration error for a config that parsed but
// failed a semantic check.
func Validation(cause error) *Error {
	return &Error{Kind: KindValidation, Message: "invalid configuration", Cause: cause}
}

// Wrap wraps an error with additional context, keeping the kind of a wrapped *Error.
func Wrap(err error, message string) *Error {
	kind := KindRuntime
	var ue *Error
	if errors.As(err, &ue) {
		kind = ue.Kind
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

// NotFound creates a not found error.
func NotFound(what, name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ue *Error
	if errors.As(err, &ue) {
		return ue.ExitCode()
	}
	return ExitRuntimeError
}
