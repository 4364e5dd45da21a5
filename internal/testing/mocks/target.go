// Package mocks provides shared test doubles for unitrun packages.
package mocks

import (
	"path"
	"path/filepath"
	"slices"

	"github.com/AndreyAkinshin/unitrun/internal/config"
	"github.com/AndreyAkinshin/unitrun/internal/graph"
)

// TargetBuilder assembles graph targets with a fluent API.
type TargetBuilder struct {
	t *graph.Target
}

// NewTarget starts a target named name whose directory is "tests/<name>".
// buildDir is the absolute build directory that link outputs live in.
func NewTarget(name, buildDir string) *TargetBuilder {
	return &TargetBuilder{t: &graph.Target{
		Name:   name,
		Dir:    path.Join("tests", name),
		SrcDir: filepath.Join(filepath.Dir(buildDir), "tests", name),
		Output: name,
	}}
}

// WithFeatures adds features and updates capabilities accordingly.
func (b *TargetBuilder) WithFeatures(features ...string) *TargetBuilder {
	b.t.Features = append(b.t.Features, features...)
	b.t.Caps.Executable = slices.Contains(b.t.Features, config.FeatureProgram)
	b.t.Caps.TestTask = slices.Contains(b.t.Features, config.FeatureTest)
	return b
}

// Program marks the target executable.
func (b *TargetBuilder) Program() *TargetBuilder {
	return b.WithFeatures(config.FeatureProgram)
}

// UnitTest sets the unit_test marker.
func (b *TargetBuilder) UnitTest() *TargetBuilder {
	b.t.Caps.UnitTest = true
	return b
}

// Linked gives the target a link step whose output is outputPath.
func (b *TargetBuilder) Linked(outputPath string) *TargetBuilder {
	b.t.Link = &graph.LinkStep{Outputs: []string{outputPath}}
	b.t.Output = filepath.Base(outputPath)
	return b
}

// Build returns the target.
func (b *TargetBuilder) Build() *graph.Target {
	return b.t
}
