package unittest

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"code.cloudfoundry.org/clock"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/unitrun/internal/config"
	"github.com/AndreyAkinshin/unitrun/internal/graph"
	"github.com/AndreyAkinshin/unitrun/internal/libpath"
	"github.com/AndreyAkinshin/unitrun/internal/logging"
	"github.com/AndreyAkinshin/unitrun/internal/output"
	"github.com/AndreyAkinshin/unitrun/internal/process"
)

// Options configures a BatchRunner.
type Options struct {
	SuccessCode int    // Exit code treated as passing
	Trigger     string // Command that must be active for Run and PrintResults to do anything
	ChangeDir   bool   // Run each test from its target's source directory
	ShowStdout  bool   // Inherit the test's stdout instead of discarding it
	ShowStderr  bool   // Inherit the test's stderr instead of discarding it
	Progress    bool   // Print a progress line per test
}

// OptionsFromConfig converts the unit_test config section.
func OptionsFromConfig(c *config.UnitTestConfig) Options {
	if c == nil {
		return Options{Trigger: config.DefaultTriggerCommand}
	}
	return Options{
		SuccessCode: c.SuccessCode,
		Trigger:     c.Trigger,
		ChangeDir:   c.ChangeDir,
		ShowStdout:  c.ShowStdout,
		ShowStderr:  c.ShowStderr,
		Progress:    c.Progress,
	}
}

// InterruptFunc derives the context a single test runs under. Cancelling it
// abandons that test only.
type InterruptFunc func(ctx context.Context) (context.Context, context.CancelFunc)

// NotifyInterrupt cancels the test context on os.Interrupt.
func NotifyInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// BatchRunner discovers unit tests in the build graph and runs them
// sequentially. Each launch blocks until the test process exits.
type BatchRunner struct {
	build     *graph.Build
	launcher  process.Launcher
	opts      Options
	out       *output.Writer
	logger    *zap.Logger
	clock     clock.Clock
	goos      string
	environ   func() []string
	interrupt InterruptFunc

	table *ResultsTable
}

// Option customizes a BatchRunner.
type Option func(*BatchRunner)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *BatchRunner) { r.logger = logging.OrNop(l) }
}

// WithClock sets the clock used to time tests.
func WithClock(c clock.Clock) Option {
	return func(r *BatchRunner) { r.clock = c }
}

// WithPlatform sets the operating system whose loader variables are
// injected and the base environment they are injected into.
func WithPlatform(goos string, environ func() []string) Option {
	return func(r *BatchRunner) {
		r.goos = goos
		r.environ = environ
	}
}

// WithInterrupt replaces NotifyInterrupt.
func WithInterrupt(fn InterruptFunc) Option {
	return func(r *BatchRunner) { r.interrupt = fn }
}

// NewBatchRunner creates a runner for the tests of build.
func NewBatchRunner(build *graph.Build, launcher process.Launcher, out *output.Writer, opts Options, options ...Option) *BatchRunner {
	r := &BatchRunner{
		build:     build,
		launcher:  launcher,
		opts:      opts,
		out:       out,
		logger:    zap.NewNop(),
		clock:     clock.NewClock(),
		goos:      runtime.GOOS,
		environ:   os.Environ,
		interrupt: NotifyInterrupt,
		table:     newResultsTable(),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// Results returns the table filled by the last Run.
func (r *BatchRunner) Results() *ResultsTable {
	return r.table
}

// Run discovers the unit tests and runs them one after another. It does
// nothing unless the trigger command is active. A test that cannot be
// launched is recorded as Erroneous and the batch continues; a test
// interrupted while running is dropped without a record. Run only returns an
// error when ctx itself is cancelled.
func (r *BatchRunner) Run(ctx context.Context) error {
	r.table = newResultsTable()

	if !r.build.Active(r.opts.Trigger) {
		r.logger.Debug("unit tests not triggered",
			zap.String("trigger", r.opts.Trigger),
			zap.String("command", r.build.Command),
			zap.Any("commands", r.build.Commands()))
		return nil
	}

	targets := r.build.Graph.Targets()
	libs := libpath.Collect(targets)
	r.discover(targets)

	var env []string
	if libs.Len() > 0 {
		env = libpath.Environ(libs, r.environ(), r.goos)
		r.logger.Debug("library paths injected", zap.Strings("dirs", libs.Dirs()))
	}

	r.out.Colored(output.Green, "Running the unit tests")
	for i, tt := range r.table.tests {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.opts.Progress {
			r.out.Progress(i+1, r.table.Total, tt.Label)
		}
		r.runOne(ctx, tt, env)
	}
	if r.opts.Progress {
		r.out.EndProgress()
	}
	return nil
}

// discover adds every executable marked as a unit test. Targets whose link
// metadata is incomplete are skipped without a record.
func (r *BatchRunner) discover(targets []*graph.Target) {
	seen := make(map[string]bool)
	for _, t := range targets {
		if !t.Caps.Executable || !t.Caps.UnitTest {
			continue
		}
		if t.Link == nil || len(t.Link.Outputs) == 0 || t.Link.Outputs[0] == "" || t.Output == "" {
			r.logger.Debug("skipping unit test with incomplete link metadata", zap.String("target", t.Name))
			continue
		}
		label := t.Label()
		if seen[label] {
			continue
		}
		seen[label] = true
		r.table.add(TestTarget{
			Label:      label,
			Path:       t.Link.Outputs[0],
			WorkingDir: t.SrcDir,
		})
	}
}

func (r *BatchRunner) runOne(ctx context.Context, tt TestTarget, env []string) {
	spec := process.Spec{Path: tt.Path, Env: env}
	if r.opts.ChangeDir {
		spec.Dir = tt.WorkingDir
	}
	if r.opts.ShowStdout {
		spec.Stdout = r.out.Stdout()
	}
	if r.opts.ShowStderr {
		spec.Stderr = r.out.Stderr()
	}

	testCtx, stop := r.interrupt(ctx)
	start := r.clock.Now()
	res, err := r.launcher.Run(testCtx, spec)
	elapsed := r.clock.Since(start)
	stop()

	outcome, ok := Classify(res, err, r.opts.SuccessCode)
	if !ok {
		r.logger.Debug("unit test interrupted, result dropped", zap.String("label", tt.Label))
		return
	}
	if outcome == Erroneous {
		r.logger.Warn("unit test could not be launched", zap.String("label", tt.Label), zap.Error(err))
	}
	r.table.record(tt.Label, Record{Outcome: outcome, Duration: elapsed})
}

// Status words pad to a common width so that they end in the same column.
var statusPadding = map[Outcome]int{
	Passed:    7,
	Failed:    3,
	Erroneous: 4,
}

var statusColors = map[Outcome]output.Color{
	Passed:    output.Green,
	Failed:    output.Yellow,
	Erroneous: output.Red,
}

// FormatLine renders the result line for label: the label, a run of dots
// and the status word. Every line of a table has width maxLabelWidth+10.
func FormatLine(label string, maxLabelWidth int, o Outcome) string {
	n := maxLabelWidth - len(label) + statusPadding[o]
	return label + " " + strings.Repeat(".", n) + o.String()
}

// PrintResults renders one line per discovered test followed by aggregate
// statistics. It does nothing unless the trigger command is active. Tests
// without a recorded outcome are shown as FAILED.
func (r *BatchRunner) PrintResults() {
	if !r.build.Active(r.opts.Trigger) {
		return
	}

	rt := r.table
	if rt.Total == 0 {
		r.out.Colored(output.Yellow, "No unit tests present")
		return
	}

	for _, tt := range rt.tests {
		o := Failed
		if rec, ok := rt.Lookup(tt.Label); ok {
			o = rec.Outcome
		}
		r.out.Colored(statusColors[o], "%s", FormatLine(tt.Label, rt.MaxLabelWidth, o))
	}

	r.out.Colored(output.Normal, `
Successful tests:      %d (%.1f%%)
Failed tests:          %d (%.1f%%)
Erroneous tests:       %d (%.1f%%)

Total number of tests: %d
`,
		rt.Passed, rt.Percent(rt.Passed),
		rt.Failed, rt.Percent(rt.Failed),
		rt.Erroneous, rt.Percent(rt.Erroneous),
		rt.Total)
	r.out.Colored(output.Green, "Unit tests finished")
}
