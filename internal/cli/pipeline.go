package cli

import (
	"context"
	stderrors "errors"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/unitrun/internal/config"
	"github.com/AndreyAkinshin/unitrun/internal/errors"
	"github.com/AndreyAkinshin/unitrun/internal/graph"
	"github.com/AndreyAkinshin/unitrun/internal/project"
	"github.com/AndreyAkinshin/unitrun/internal/report"
	"github.com/AndreyAkinshin/unitrun/internal/scheduler"
	"github.com/AndreyAkinshin/unitrun/internal/sigstore"
	"github.com/AndreyAkinshin/unitrun/internal/unittest"
	"github.com/AndreyAkinshin/unitrun/internal/utest"
)

func (a *app) loadProject() (*project.Project, error) {
	root, err := a.findRoot()
	if err != nil {
		if stderrors.Is(err, project.ErrNoProjectRoot) {
			a.out.Hint("hint: run unitrun inside a project, or create %s",
				filepath.Join(project.ConfigDirName, project.ConfigFileName))
			return nil, errors.Environment(err.Error())
		}
		return nil, &errors.Error{Kind: errors.KindEnvironment, Message: "cannot locate project", Cause: err}
	}

	proj, err := project.LoadProjectFrom(root)
	if err != nil {
		return nil, configError(err)
	}
	for _, w := range proj.Warnings {
		a.out.Warning("%s: %s", proj.ConfigPath(), w)
	}
	return proj, nil
}

func (a *app) findRoot() (string, error) {
	if a.dir == "" {
		return project.FindRoot()
	}
	return project.FindRootFrom(a.dir)
}

func configError(err error) error {
	var ue *errors.Error
	if stderrors.As(err, &ue) {
		return err
	}
	var ve *config.ValidationError
	if stderrors.As(err, &ve) {
		return errors.Validation(err)
	}
	return &errors.Error{Kind: errors.KindConfig, Message: "invalid configuration", Cause: err}
}

// runPipeline runs one build invocation with command active: utest tasks
// on the scheduler, then the post-run hooks that print the execution
// summary and run the unit test batch.
func (a *app) runPipeline(ctx context.Context, command string) error {
	proj, err := a.loadProject()
	if err != nil {
		return err
	}
	cfg := proj.Config

	g, err := graph.New(cfg, proj.Root, proj.BuildDir())
	if err != nil {
		return configError(err)
	}
	b := graph.NewBuild(g, command)
	a.logger.Debug("build started",
		zap.String("project", cfg.Project.Name),
		zap.String("command", command),
		zap.Int("targets", g.Len()))

	store, err := sigstore.Open(proj.StatePath())
	if err != nil {
		return &errors.Error{Kind: errors.KindEnvironment, Message: "cannot open task state", Cause: err}
	}
	defer store.Close()
	a.logger.Debug("task state opened", zap.String("path", store.Path()))

	log := utest.NewResultsLog()
	tasks := utest.MakeTasks(b, a.launcher, log, utest.Config{
		WorkDir:     proj.UTestWorkDir(),
		SuccessCode: cfg.UnitTest.SuccessCode,
		AllTests:    a.opts.AllTests || cfg.UTest.AllTests,
		Logger:      a.logger,
	})
	sched := scheduler.New(store,
		scheduler.WithWorkers(scheduler.Workers(a.out)),
		scheduler.WithLogger(a.logger))
	stats, err := sched.Run(ctx, schedulerTasks(tasks))
	if err != nil {
		return errors.Wrap(err, "build failed")
	}
	a.logger.Debug("utest tasks finished", zap.Int("ran", stats.Ran), zap.Int("skipped", stats.Skipped))

	batch := unittest.NewBatchRunner(b, a.launcher, a.out,
		unittest.OptionsFromConfig(cfg.UnitTest),
		unittest.WithLogger(a.logger))

	var batchErr error
	b.AddPostFun(func() { utest.Summary(a.out, log) })
	b.AddPostFun(func() {
		if batchErr = batch.Run(ctx); batchErr != nil {
			return
		}
		batch.PrintResults()
	})
	b.RunPostFuns()
	if batchErr != nil {
		return errors.Wrap(batchErr, "unit tests interrupted")
	}

	if a.opts.Report != "" {
		path := a.opts.Report
		rep := report.New(cfg.Project.Name, command, batch.Results(), log)
		if err := report.Write(path, rep); err != nil {
			return &errors.Error{Kind: errors.KindEnvironment, Message: "cannot write report", Cause: err}
		}
		a.out.Info("report written to %s", path)
	}
	return nil
}

func schedulerTasks(tasks []*utest.Task) []scheduler.Task {
	out := make([]scheduler.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t
	}
	return out
}
