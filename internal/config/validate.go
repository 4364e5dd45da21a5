package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"sort"

	"github.com/AndreyAkinshin/unitrun/internal/topsort"
)

var (
	// Project name: must start with lowercase letter, may contain lowercase, digits, hyphens.
	// Hyphens must not be consecutive or trailing.
	projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

	// Target name: letters, digits, underscores, dots and hyphens.
	targetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

	// Command name: lowercase word.
	commandNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
// It expects defaults to have been applied.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := ValidateProjectName(cfg.Project.Name); err != nil {
		return nil, err
	}

	targetWarnings, err := validateTargets(cfg)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, targetWarnings...)

	unitTestWarnings, err := validateUnitTest(cfg.UnitTest)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, unitTestWarnings...)

	if err := validateUTest(cfg); err != nil {
		return nil, err
	}

	return warnings, nil
}

func validateTargets(cfg *Config) ([]string, error) {
	names := make([]string, 0, len(cfg.Targets))
	for name := range cfg.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []string
	graph := make(topsort.Graph, len(cfg.Targets))
	for _, name := range names {
		target := cfg.Targets[name]
		if !targetNamePattern.MatchString(name) {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("targets.%s", name),
				Message: "target name must match pattern ^[A-Za-z0-9][A-Za-z0-9_.-]*$",
			}
		}
		if filepath.IsAbs(target.Dir) {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("targets.%s.dir", name),
				Message: "must be relative to the project root",
			}
		}
		if target.Output != filepath.Base(target.Output) {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("targets.%s.output", name),
				Message: "must be a file name, not a path",
			}
		}
		if target.UnitTest && !slices.Contains(target.Features, FeatureProgram) {
			warnings = append(warnings, fmt.Sprintf("target %q sets unit_test but is not a %q; it will not be run", name, FeatureProgram))
		}
		graph[name] = target.DependsOn
	}

	if err := topsort.Validate(graph); err != nil {
		return nil, &ValidationError{Field: "targets", Message: err.Error()}
	}
	return warnings, nil
}

func validateUnitTest(ut *UnitTestConfig) ([]string, error) {
	if ut == nil {
		return nil, nil
	}
	if !commandNamePattern.MatchString(ut.Trigger) {
		return nil, &ValidationError{
			Field:   "unit_test.trigger",
			Message: "must be a command name such as \"check\" or \"build\"",
		}
	}
	// Exit statuses are truncated to a byte on Unix.
	if ut.SuccessCode < 0 || ut.SuccessCode > 255 {
		return nil, &ValidationError{
			Field:   "unit_test.success_code",
			Message: "must be between 0 and 255",
		}
	}
	if !slices.Contains(KnownCommands, ut.Trigger) {
		return []string{fmt.Sprintf("unit_test.trigger %q is not one of %v; unit tests will never run", ut.Trigger, KnownCommands)}, nil
	}
	return nil, nil
}

// validateUTest requires an explicit working directory as soon as any target
// asks for per-task test execution.
func validateUTest(cfg *Config) error {
	if cfg.UTest != nil && cfg.UTest.WorkDir != "" {
		return nil
	}
	for name, target := range cfg.Targets {
		if slices.Contains(target.Features, FeatureTest) {
			return &ValidationError{
				Field:   "utest.work_dir",
				Message: fmt.Sprintf("is required because target %q has the %q feature", name, FeatureTest),
			}
		}
	}
	return nil
}

// ValidateProjectName checks if a project name is valid.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project.name", Message: "is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "project.name", Message: "must be 128 characters or less"}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "project.name",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, non-consecutive hyphens)",
		}
	}
	return nil
}

// HasFeature reports whether the target declares feature f.
func (t TargetConfig) HasFeature(f string) bool {
	return slices.Contains(t.Features, f)
}
