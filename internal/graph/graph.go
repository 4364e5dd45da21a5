// Package graph models the build graph that unitrun consumes: the targets a
// build produces, what each target is capable of, and the link steps that
// produce their artifacts.
package graph

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"sort"

	"github.com/AndreyAkinshin/unitrun/internal/config"
	"github.com/AndreyAkinshin/unitrun/internal/topsort"
)

// Capabilities is what a target declares about itself, resolved once when
// the graph is built so that runners never probe for attributes.
type Capabilities struct {
	Executable bool // program feature: the link output can be executed
	UnitTest   bool // unit_test marker: picked up by the batch runner
	TestTask   bool // test feature: gets a utest task in the build
}

// LinkStep is the build step that produces a target's linked artifacts.
type LinkStep struct {
	Outputs []string // Absolute artifact paths; the first one is the primary output
}

// OutputDir returns the directory of the primary output.
func (l *LinkStep) OutputDir() (string, bool) {
	if l == nil || len(l.Outputs) == 0 || l.Outputs[0] == "" {
		return "", false
	}
	return filepath.Dir(l.Outputs[0]), true
}

// Target is a named build unit tracked by the graph.
type Target struct {
	Name      string
	Dir       string // Build-relative directory, slash separated
	SrcDir    string // Absolute source directory
	Output    string // Primary output file name
	Features  []string
	Caps      Capabilities
	Link      *LinkStep // nil when the target performs no link step
	DependsOn []string
}

// Label is the build-relative path of the target's primary output,
// e.g. "tests/test0/test0".
func (t *Target) Label() string {
	return path.Join(t.Dir, t.Output)
}

// HasFeature reports whether the target declares feature f.
func (t *Target) HasFeature(f string) bool {
	return slices.Contains(t.Features, f)
}

// Graph holds the targets of one build in dependency order.
type Graph struct {
	targets []*Target
	byName  map[string]*Target
}

// New builds the graph described by cfg. Source directories resolve against
// root; link outputs are placed under <buildDir>/<dir>/<output>.
func New(cfg *config.Config, root, buildDir string) (*Graph, error) {
	names := make([]string, 0, len(cfg.Targets))
	deps := make(topsort.Graph, len(cfg.Targets))
	for name, tc := range cfg.Targets {
		names = append(names, name)
		deps[name] = tc.DependsOn
	}
	sort.Strings(names)

	order, err := topsort.Sort(deps, names)
	if err != nil {
		return nil, fmt.Errorf("order targets: %w", err)
	}

	targets := make([]*Target, 0, len(order))
	for _, name := range order {
		targets = append(targets, newTarget(name, cfg.Targets[name], root, buildDir))
	}
	return FromTargets(targets...), nil
}

func newTarget(name string, tc config.TargetConfig, root, buildDir string) *Target {
	dir := filepath.ToSlash(filepath.Clean(tc.Dir))
	t := &Target{
		Name:      name,
		Dir:       dir,
		SrcDir:    filepath.Join(root, filepath.FromSlash(dir)),
		Output:    tc.Output,
		Features:  slices.Clone(tc.Features),
		DependsOn: slices.Clone(tc.DependsOn),
		Caps: Capabilities{
			Executable: tc.HasFeature(config.FeatureProgram),
			UnitTest:   tc.UnitTest,
			TestTask:   tc.HasFeature(config.FeatureTest),
		},
	}
	for _, f := range config.LinkFeatures {
		if tc.HasFeature(f) {
			t.Link = &LinkStep{
				Outputs: []string{filepath.Join(buildDir, filepath.FromSlash(dir), tc.Output)},
			}
			break
		}
	}
	return t
}

// FromTargets builds a graph from targets that are already in dependency order.
func FromTargets(targets ...*Target) *Graph {
	g := &Graph{
		targets: targets,
		byName:  make(map[string]*Target, len(targets)),
	}
	for _, t := range targets {
		g.byName[t.Name] = t
	}
	return g
}

// Targets returns all targets in dependency order.
func (g *Graph) Targets() []*Target {
	return slices.Clone(g.targets)
}

// Get retrieves a target by name.
func (g *Graph) Get(name string) (*Target, bool) {
	t, ok := g.byName[name]
	return t, ok
}

// Len returns the number of targets.
func (g *Graph) Len() int {
	return len(g.targets)
}
