package mocks

import (
	"context"
	"sync"

	"github.com/AndreyAkinshin/unitrun/internal/process"
)

// Behavior is what the fake launcher does for one executable path.
type Behavior struct {
	ExitCode int
	Output   string
	Err      error                                  // Returned instead of a result
	Func     func(ctx context.Context) error        // Called before returning, e.g. to block
	Result   func(spec process.Spec) process.Result // Overrides ExitCode and Output
}

// Launcher implements process.Launcher for testing. Paths without a
// configured behavior exit with code 0.
type Launcher struct {
	mu        sync.Mutex
	behaviors map[string]Behavior
	calls     []process.Spec
}

// NewLauncher creates a fake launcher.
func NewLauncher() *Launcher {
	return &Launcher{behaviors: make(map[string]Behavior)}
}

// On configures the behavior for path.
func (l *Launcher) On(path string, b Behavior) *Launcher {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.behaviors[path] = b
	return l
}

// Run implements process.Launcher.
func (l *Launcher) Run(ctx context.Context, spec process.Spec) (process.Result, error) {
	l.mu.Lock()
	l.calls = append(l.calls, spec)
	b := l.behaviors[spec.Path]
	l.mu.Unlock()

	if b.Func != nil {
		if err := b.Func(ctx); err != nil {
			return process.Result{}, err
		}
	}
	if b.Err != nil {
		return process.Result{}, b.Err
	}
	if b.Result != nil {
		return b.Result(spec), nil
	}
	res := process.Result{ExitCode: b.ExitCode}
	if spec.Capture {
		res.Output = []byte(b.Output)
	}
	return res, nil
}

// Calls returns the launched specs in call order.
func (l *Launcher) Calls() []process.Spec {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]process.Spec(nil), l.calls...)
}

// Paths returns the launched executable paths in call order.
func (l *Launcher) Paths() []string {
	calls := l.Calls()
	paths := make([]string, len(calls))
	for i, c := range calls {
		paths[i] = c.Path
	}
	return paths
}
