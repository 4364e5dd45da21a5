// Package config provides configuration loading and validation for config.json.
package config

// Config represents the complete config.json configuration.
type Config struct {
	Project  ProjectConfig           `json:"project"`
	Build    *BuildConfig            `json:"build,omitempty"`
	Targets  map[string]TargetConfig `json:"targets,omitempty"`
	UnitTest *UnitTestConfig         `json:"unit_test,omitempty"`
	UTest    *UTestConfig            `json:"utest,omitempty"`
}

// ProjectConfig contains project metadata.
type ProjectConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BuildConfig describes where the build places its artifacts.
type BuildConfig struct {
	Out string `json:"out,omitempty"` // Build output directory, relative to the project root
}

// TargetConfig describes one build target. Targets are produced by the build
// system; unitrun only reads what they declare about themselves.
type TargetConfig struct {
	Dir       string   `json:"dir,omitempty"`    // Source directory, relative to the project root
	Features  []string `json:"features"`         // e.g. ["c", "program", "test"]
	Output    string   `json:"output,omitempty"` // Link output file name inside <out>/<dir>
	UnitTest  bool     `json:"unit_test,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"`
}

// UnitTestConfig configures the batch unit test runner.
type UnitTestConfig struct {
	SuccessCode int    `json:"success_code,omitempty"` // Exit code treated as passing
	Trigger     string `json:"trigger,omitempty"`      // Command that activates the runner
	ChangeDir   bool   `json:"change_dir,omitempty"`   // Run each test from its source directory
	ShowStdout  bool   `json:"show_stdout,omitempty"`
	ShowStderr  bool   `json:"show_stderr,omitempty"`
	Progress    bool   `json:"progress,omitempty"`
}

// UTestConfig configures the per-task test runner.
type UTestConfig struct {
	WorkDir  string `json:"work_dir,omitempty"`  // Working directory for every utest task
	AllTests bool   `json:"all_tests,omitempty"` // Re-run tasks even when their input is unchanged
}

// Target features understood by unitrun. Other feature strings are accepted
// and carried along without meaning.
const (
	FeatureProgram = "program"
	FeatureShlib   = "shlib"
	FeatureStlib   = "stlib"
	FeatureTest    = "test"
)

// LinkFeatures lists the features whose targets perform a link step.
var LinkFeatures = []string{FeatureProgram, FeatureShlib, FeatureStlib}
