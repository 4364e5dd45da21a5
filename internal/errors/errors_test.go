package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "message only",
			err:      &Error{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with cause",
			err:      &Error{Message: "load config", Cause: errors.New("bad json")},
			expected: "load config: bad json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &Error{Message: "wrapper", Cause: cause}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestError_ExitCode(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{KindRuntime, ExitRuntimeError},
		{KindConfig, ExitConfigError},
		{KindValidation, ExitConfigError},
		{KindEnvironment, ExitEnvironmentError},
		{KindNotFound, ExitEnvironmentError},
	}

	for _, tt := range tests {
		err := &Error{Kind: tt.kind}
		if got := err.ExitCode(); got != tt.want {
			t.Errorf("Kind %d: ExitCode() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestGetExitCode(t *testing.T) {
	if got := GetExitCode(nil); got != ExitSuccess {
		t.Errorf("GetExitCode(nil) = %d, want %d", got, ExitSuccess)
	}
	if got := GetExitCode(errors.New("plain")); got != ExitRuntimeError {
		t.Errorf("GetExitCode(plain) = %d, want %d", got, ExitRuntimeError)
	}
	wrapped := fmt.Errorf("outer: %w", Config("bad"))
	if got := GetExitCode(wrapped); got != ExitConfigError {
		t.Errorf("GetExitCode(wrapped config) = %d, want %d", got, ExitConfigError)
	}
}

func TestWrap_KeepsKind(t *testing.T) {
	err := Wrap(Environment("no root"), "load project")
	if err.Kind != KindEnvironment {
		t.Errorf("Wrap().Kind = %d, want %d", err.Kind, KindEnvironment)
	}
	if got := Wrap(errors.New("x"), "y").Kind; got != KindRuntime {
		t.Errorf("Wrap(plain).Kind = %d, want %d", got, KindRuntime)
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("targets.a: bad name")
	tests := []struct {
		name string
		err  *Error
		kind ErrorKind
		msg  string
	}{
		{"config", Config("bad flag"), KindConfig, "bad flag"},
		{"environment", Environment("no root"), KindEnvironment, "no root"},
		{"not found", NotFound("target", "lib"), KindNotFound, "target not found: lib"},
		{"validation", Validation(cause), KindValidation, "invalid configuration: targets.a: bad name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %d, want %d", tt.err.Kind, tt.kind)
			}
			if got := tt.err.Error(); got != tt.msg {
				t.Errorf("Error() = %q, want %q", got, tt.msg)
			}
		})
	}
}
