// Package scheduler executes build tasks on a bounded worker pool and skips
// tasks whose inputs have not changed since their last run.
package scheduler

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AndreyAkinshin/unitrun/internal/logging"
	"github.com/AndreyAkinshin/unitrun/internal/sigstore"
)

// Task is a schedulable unit of work.
type Task interface {
	// Name is the task type, e.g. "utest".
	Name() string
	// Inputs are the files the task consumes. Their contents form the
	// task's signature.
	Inputs() []string
	// AlwaysRun reports whether the task ignores its stored signature.
	AlwaysRun() bool
	Run(ctx context.Context) error
}

// Status is the answer to "should this task run".
type Status int

const (
	// RunMe means the task must be executed.
	RunMe Status = iota
	// SkipMe means the task is up to date.
	SkipMe
)

func (s Status) String() string {
	if s == SkipMe {
		return "skip"
	}
	return "run"
}

// Stats counts what one Run did.
type Stats struct {
	Ran     int
	Skipped int
}

// Scheduler runs tasks concurrently.
type Scheduler struct {
	store   sigstore.Store
	workers int
	logger  *zap.Logger
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithWorkers bounds the number of concurrently running tasks.
func WithWorkers(n int) Option {
	return func(s *Scheduler) { s.workers = max(minWorkers, n) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = logging.OrNop(l) }
}

// New creates a scheduler backed by store. A nil store disables staleness
// checks and every task runs.
func New(store sigstore.Store, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:   store,
		workers: defaultWorkerCount(),
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run executes tasks on the worker pool and waits for all of them. The
// first task error cancels tasks that have not started yet; tasks already
// running see the cancelled context.
func (s *Scheduler) Run(ctx context.Context, tasks []Task) (Stats, error) {
	var ran, skipped atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, t := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			status, sig, err := s.Status(ctx, t)
			if err != nil {
				return err
			}
			if status == SkipMe {
				skipped.Add(1)
				s.logger.Debug("task up to date", zap.String("task", t.Name()), zap.Strings("inputs", t.Inputs()))
				return nil
			}

			s.logger.Debug("task started", zap.String("task", t.Name()), zap.Strings("inputs", t.Inputs()))
			if err := t.Run(ctx); err != nil {
				return fmt.Errorf("%s %s: %w", t.Name(), strings.Join(t.Inputs(), " "), err)
			}
			ran.Add(1)

			if sig != nil && s.store != nil {
				if err := s.store.Put(ctx, Key(t), sig); err != nil {
					return err
				}
			}
			return nil
		})
	}
	err := g.Wait()
	return Stats{Ran: int(ran.Load()), Skipped: int(skipped.Load())}, err
}

// Status decides whether t must run. It also returns the current input
// signature, or nil when one cannot be computed because an input is missing.
func (s *Scheduler) Status(ctx context.Context, t Task) (Status, []byte, error) {
	sig, err := Signature(t.Inputs())
	if err != nil {
		return RunMe, nil, err
	}
	if t.AlwaysRun() || sig == nil || s.store == nil {
		return RunMe, sig, nil
	}

	prev, ok, err := s.store.Get(ctx, Key(t))
	if err != nil {
		return RunMe, nil, err
	}
	if ok && string(prev) == string(sig) {
		return SkipMe, sig, nil
	}
	return RunMe, sig, nil
}

// Key identifies t in the signature store.
func Key(t Task) string {
	return t.Name() + ":" + strings.Join(t.Inputs(), "\x00")
}

// Signature returns the SHA-256 over the paths and contents of inputs, in
// order. It returns nil without an error if any input does not exist.
func Signature(inputs []string) ([]byte, error) {
	h := sha256.New()
	for _, in := range inputs {
		f, err := os.Open(in)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read task input: %w", err)
		}
		io.WriteString(h, in)
		h.Write([]byte{0})
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s: %w", in, err)
		}
		h.Write([]byte{0})
	}
	return h.Sum(nil), nil
}
