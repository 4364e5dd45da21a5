// Package report exports the results of one invocation as YAML.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/unitrun/internal/unittest"
	"github.com/AndreyAkinshin/unitrun/internal/utest"
)

// Report represents a results file.
type Report struct {
	Project string       `yaml:"project"`
	Command string       `yaml:"command"`
	Unit    *UnitReport  `yaml:"unit_tests,omitempty"`
	Tasks   []TaskResult `yaml:"utest,omitempty"`
}

// UnitReport holds the batch results table.
type UnitReport struct {
	Passed    int          `yaml:"passed"`
	Failed    int          `yaml:"failed"`
	Erroneous int          `yaml:"erroneous"`
	Total     int          `yaml:"total"`
	Tests     []TestResult `yaml:"tests,omitempty"`
}

// TestResult is one row of the batch results table. Outcome is empty for
// tests that were interrupted.
type TestResult struct {
	Label    string `yaml:"label"`
	Path     string `yaml:"path"`
	Outcome  string `yaml:"outcome,omitempty"`
	Duration string `yaml:"duration,omitempty"`
}

// TaskResult is one utest log entry.
type TaskResult struct {
	Path   string `yaml:"path"`
	Failed bool   `yaml:"failed"`
	Output string `yaml:"output,omitempty"`
}

// New assembles a report. rt and log may be nil.
func New(project, command string, rt *unittest.ResultsTable, log *utest.ResultsLog) *Report {
	r := &Report{Project: project, Command: command}

	if rt != nil && rt.Total > 0 {
		u := &UnitReport{
			Passed:    rt.Passed,
			Failed:    rt.Failed,
			Erroneous: rt.Erroneous,
			Total:     rt.Total,
		}
		for _, tt := range rt.Tests() {
			row := TestResult{Label: tt.Label, Path: tt.Path}
			if rec, ok := rt.Lookup(tt.Label); ok {
				row.Outcome = rec.Outcome.String()
				row.Duration = rec.Duration.String()
			}
			u.Tests = append(u.Tests, row)
		}
		r.Unit = u
	}

	if log != nil {
		for _, e := range log.Entries() {
			r.Tasks = append(r.Tasks, TaskResult{Path: e.Path, Failed: e.Failed, Output: string(e.Output)})
		}
	}
	return r
}

// Marshal renders r as YAML.
func (r *Report) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	return data, nil
}

// Write writes r to path, creating parent directories.
func Write(path string, r *Report) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Read parses a report written by Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid report format: %w", err)
	}
	return &r, nil
}
