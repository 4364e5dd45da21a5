package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/unitrun/internal/errors"
	"github.com/AndreyAkinshin/unitrun/internal/graph"
)

func newBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   graph.CommandBuild,
		Short: "Run utest tasks for changed test executables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPipeline(cmd.Context(), graph.CommandBuild)
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   graph.CommandCheck,
		Short: "Run utest tasks and every unit test",
		Long: `Run utest tasks and every unit test.

check activates build as well, so utest tasks run first. The unit test
results table is printed when the configured trigger command is active
(check by default).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPipeline(cmd.Context(), graph.CommandCheck)
		},
	}
}

func newTargetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "targets [name]",
		Short: "List configured targets and what they declare",
		Long: `List configured targets in dependency order.

With a name, show only that target. An unknown name is an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := a.loadProject()
			if err != nil {
				return err
			}
			g, err := graph.New(proj.Config, proj.Root, proj.BuildDir())
			if err != nil {
				return configError(err)
			}

			targets := g.Targets()
			if len(args) == 1 {
				t, ok := g.Get(args[0])
				if !ok {
					return errors.NotFound("target", args[0])
				}
				targets = []*graph.Target{t}
			}

			titleCase := cases.Title(language.English)
			var rows [][]string
			for _, t := range targets {
				caps := capabilityNames(t.Caps)
				for i, c := range caps {
					caps[i] = titleCase.String(c)
				}
				link := "-"
				if out, ok := t.Link.OutputDir(); ok {
					link = out
				}
				rows = append(rows, []string{t.Name, t.Label(), strings.Join(caps, ", "), link})
			}
			if len(rows) == 0 {
				a.out.Info("no targets configured")
				return nil
			}
			a.out.Table([]string{"NAME", "LABEL", "CAPABILITIES", "OUTPUT DIR"}, rows)
			return nil
		},
	}
}

func capabilityNames(c graph.Capabilities) []string {
	var names []string
	if c.Executable {
		names = append(names, "program")
	}
	if c.UnitTest {
		names = append(names, "unit test")
	}
	if c.TestTask {
		names = append(names, "test task")
	}
	if len(names) == 0 {
		names = append(names, "none")
	}
	return names
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.out.Println("unitrun %s", Version)
		},
	}
}
