package utest

import (
	"context"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/unitrun/internal/graph"
	"github.com/AndreyAkinshin/unitrun/internal/libpath"
	"github.com/AndreyAkinshin/unitrun/internal/logging"
	"github.com/AndreyAkinshin/unitrun/internal/process"
)

// TaskName is the task type name.
const TaskName = "utest"

// Config controls how utest tasks run.
type Config struct {
	WorkDir     string // Absolute working directory for every test; required
	SuccessCode int
	AllTests    bool // Run every task regardless of input staleness

	GOOS    string          // Defaults to runtime.GOOS
	Environ func() []string // Defaults to os.Environ
	Logger  *zap.Logger
}

// Task runs one linked test executable.
type Task struct {
	target   *graph.Target
	input    string
	env      []string
	cfg      Config
	launcher process.Launcher
	log      *ResultsLog
	logger   *zap.Logger
}

// MakeTasks creates a task for every target with the test feature. Targets
// that are not programs cannot be executed; they are reported and get no
// task. Targets without link output are skipped.
func MakeTasks(b *graph.Build, launcher process.Launcher, log *ResultsLog, cfg Config) []*Task {
	logger := logging.OrNop(cfg.Logger)
	if cfg.GOOS == "" {
		cfg.GOOS = runtime.GOOS
	}
	if cfg.Environ == nil {
		cfg.Environ = os.Environ
	}

	targets := b.Graph.Targets()
	var env []string
	if libs := libpath.Collect(targets); libs.Len() > 0 {
		env = libpath.Environ(libs, cfg.Environ(), cfg.GOOS)
	}

	var tasks []*Task
	for _, t := range targets {
		if !t.Caps.TestTask {
			continue
		}
		if !t.Caps.Executable {
			logger.Error("test cannot be executed", zap.String("target", t.Name))
			continue
		}
		if t.Link == nil || len(t.Link.Outputs) == 0 || t.Link.Outputs[0] == "" {
			logger.Debug("skipping test without link output", zap.String("target", t.Name))
			continue
		}
		tasks = append(tasks, &Task{
			target:   t,
			input:    t.Link.Outputs[0],
			env:      env,
			cfg:      cfg,
			launcher: launcher,
			log:      log,
			logger:   logger,
		})
	}
	return tasks
}

// Name returns TaskName.
func (t *Task) Name() string { return TaskName }

// Inputs returns the linked test executable.
func (t *Task) Inputs() []string { return []string{t.input} }

// AlwaysRun reports whether the task ignores staleness.
func (t *Task) AlwaysRun() bool { return t.cfg.AllTests }

// Target returns the target the task was created for.
func (t *Task) Target() *graph.Target { return t.target }

// Run executes the test and appends its entry to the shared log. Test
// failures are recorded, never returned.
func (t *Task) Run(ctx context.Context) error {
	t.log.Exclusive(func() (entry Entry) {
		entry = Entry{Path: t.input}
		defer func() {
			if r := recover(); r != nil {
				t.logger.Warn("test execution panicked", zap.String("path", t.input), zap.Any("panic", r))
				entry = Entry{Path: t.input, Failed: true}
			}
		}()
		res, err := t.launcher.Run(ctx, process.Spec{
			Path:    t.input,
			Dir:     t.cfg.WorkDir,
			Env:     t.env,
			Capture: true,
		})
		switch {
		case err != nil:
			t.logger.Warn("test execution failed", zap.String("path", t.input), zap.Error(err))
			entry.Failed = true
		case res.ExitCode != t.cfg.SuccessCode:
			entry.Failed = true
			entry.Output = res.Output
		default:
			entry.Output = res.Output
		}
		return entry
	})
	return nil
}
