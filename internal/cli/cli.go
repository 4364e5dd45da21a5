// Package cli provides the unitrun command-line interface.
package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/unitrun/internal/errors"
	"github.com/AndreyAkinshin/unitrun/internal/logging"
	"github.com/AndreyAkinshin/unitrun/internal/output"
	"github.com/AndreyAkinshin/unitrun/internal/process"
)

// Version is set at build time.
var Version = "dev"

// GlobalOptions holds the persistent flags.
type GlobalOptions struct {
	AllTests bool
	Verbose  bool
	Quiet    bool
	Report   string
}

// app is the state shared by all commands of one invocation.
type app struct {
	opts     GlobalOptions
	out      *output.Writer
	dir      string // Directory project discovery starts from; empty means the working directory
	launcher process.Launcher
	logger   *zap.Logger
}

func newApp(out *output.Writer, dir string) *app {
	return &app{
		out:      out,
		dir:      dir,
		launcher: process.ExecLauncher{},
		logger:   zap.NewNop(),
	}
}

// Run executes the CLI with the given arguments and returns an exit code.
// SIGTERM cancels the whole invocation. SIGINT is left to the unit test
// runner, which uses it to abandon only the test in flight.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	return execute(ctx, newApp(output.New(), ""), args)
}

func execute(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	return errors.ExitSuccess
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "unitrun",
		Short: "unitrun - run the unit tests of a build",
		Long: `unitrun runs the test executables produced by a build.

Targets marked unit_test are run one after another by "unitrun check" and
reported in a results table. Targets with the test feature get a utest task
that runs whenever its executable changes, and are listed in an execution
summary.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.opts.Quiet && a.opts.Verbose {
				return errors.Config("--quiet and --verbose are mutually exclusive")
			}
			a.out.SetQuiet(a.opts.Quiet)

			logger, err := logging.New(a.opts.Verbose)
			if err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(a.out.Stdout())
	root.SetErr(a.out.Stderr())
	root.SetVersionTemplate("unitrun {{.Version}}\n")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Config(err.Error())
	})

	flags := root.PersistentFlags()
	flags.BoolVar(&a.opts.AllTests, "alltests", false, "Exec all unit tests")
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "Maximum detail")
	flags.BoolVarP(&a.opts.Quiet, "quiet", "q", false, "Minimal output")
	flags.StringVar(&a.opts.Report, "report", "", "Write a YAML results report to `file`")

	root.AddCommand(
		newBuildCmd(a),
		newCheckCmd(a),
		newTargetsCmd(a),
		newVersionCmd(a),
	)
	return root
}
