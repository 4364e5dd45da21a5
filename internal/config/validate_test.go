package config

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{
		Project: ProjectConfig{Name: "demo"},
		Targets: map[string]TargetConfig{
			"lib":   {Features: []string{"c", FeatureShlib}},
			"test0": {Features: []string{"c", FeatureProgram}, UnitTest: true, DependsOn: []string{"lib"}},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	warnings, err := Validate(validConfig())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "empty project name",
			mutate: func(c *Config) { c.Project.Name = "" },
			field:  "project.name",
		},
		{
			name:   "bad project name",
			mutate: func(c *Config) { c.Project.Name = "Bad--Name" },
			field:  "project.name",
		},
		{
			name: "bad target name",
			mutate: func(c *Config) {
				c.Targets["bad name"] = TargetConfig{Dir: "x", Output: "x"}
			},
			field: "targets.bad name",
		},
		{
			name: "absolute dir",
			mutate: func(c *Config) {
				tc := c.Targets["lib"]
				tc.Dir = "/abs/src"
				c.Targets["lib"] = tc
			},
			field: "targets.lib.dir",
		},
		{
			name: "output with directory",
			mutate: func(c *Config) {
				tc := c.Targets["lib"]
				tc.Output = "sub/libx.so"
				c.Targets["lib"] = tc
			},
			field: "targets.lib.output",
		},
		{
			name: "undefined dependency",
			mutate: func(c *Config) {
				tc := c.Targets["test0"]
				tc.DependsOn = []string{"missing"}
				c.Targets["test0"] = tc
			},
			field: "targets",
		},
		{
			name: "dependency cycle",
			mutate: func(c *Config) {
				tc := c.Targets["lib"]
				tc.DependsOn = []string{"test0"}
				c.Targets["lib"] = tc
			},
			field: "targets",
		},
		{
			name:   "bad trigger",
			mutate: func(c *Config) { c.UnitTest.Trigger = "Check Now" },
			field:  "unit_test.trigger",
		},
		{
			name:   "success code out of range",
			mutate: func(c *Config) { c.UnitTest.SuccessCode = 300 },
			field:  "unit_test.success_code",
		},
		{
			name: "test feature without work dir",
			mutate: func(c *Config) {
				tc := c.Targets["test0"]
				tc.Features = append(tc.Features, FeatureTest)
				c.Targets["test0"] = tc
			},
			field: "utest.work_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			_, err := Validate(cfg)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q (%v)", verr.Field, tt.field, verr)
			}
		})
	}
}

func TestValidate_WorkDirSatisfiesTestFeature(t *testing.T) {
	cfg := validConfig()
	tc := cfg.Targets["test0"]
	tc.Features = append(tc.Features, FeatureTest)
	cfg.Targets["test0"] = tc
	cfg.UTest.WorkDir = "tests"

	if _, err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_UnitTestOnNonProgramWarns(t *testing.T) {
	cfg := validConfig()
	tc := cfg.Targets["lib"]
	tc.UnitTest = true
	cfg.Targets["lib"] = tc

	warnings, err := Validate(cfg)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"lib"`) {
		t.Errorf("warnings = %v, want one warning about lib", warnings)
	}
}

func TestValidate_UnknownTriggerWarns(t *testing.T) {
	tests := []struct {
		trigger string
		warn    bool
	}{
		{"check", false},
		{"build", false},
		{"test", true},
		{"deploy", true},
	}
	for _, tt := range tests {
		t.Run(tt.trigger, func(t *testing.T) {
			cfg := validConfig()
			cfg.UnitTest.Trigger = tt.trigger

			warnings, err := Validate(cfg)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got := len(warnings) == 1 && strings.Contains(warnings[0], "unit_test.trigger"); got != tt.warn {
				t.Errorf("warnings = %v, want trigger warning %v", warnings, tt.warn)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "project.name", Message: "is required"}
	if got := err.Error(); got != "project.name: is required" {
		t.Errorf("Error() = %q", got)
	}
}
