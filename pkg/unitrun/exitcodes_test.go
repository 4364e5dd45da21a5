package unitrun_test

import (
	"testing"

	internalerrors "github.com/AndreyAkinshin/unitrun/internal/errors"
	. "github.com/AndreyAkinshin/unitrun/pkg/unitrun"
)

func TestExitCodesMatchInternal(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"success", ExitSuccess, internalerrors.ExitSuccess},
		{"failure", ExitFailure, internalerrors.ExitRuntimeError},
		{"config", ExitConfigError, internalerrors.ExitConfigError},
		{"env", ExitEnvError, internalerrors.ExitEnvironmentError},
	}
	for _, tt := range tests {
		if tt.public != tt.internal {
			t.Errorf("%s: public %d != internal %d", tt.name, tt.public, tt.internal)
		}
	}
}
