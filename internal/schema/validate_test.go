package schema

import (
	"strings"
	"testing"
)

func TestValidateConfig_Valid(t *testing.T) {
	tests := map[string]string{
		"minimal": `{"project": {"name": "demo"}}`,
		"full": `{
			"project": {"name": "demo"},
			"build": {"out": "out"},
			"targets": {
				"lib": {"features": ["c", "shlib"]},
				"test0": {"dir": "tests/test0", "features": ["c", "program", "test"], "unit_test": true, "depends_on": ["lib"]}
			},
			"unit_test": {"success_code": 0, "trigger": "build", "change_dir": true, "progress": true},
			"utest": {"work_dir": "tests", "all_tests": true}
		}`,
		"unknown fields allowed": `{"project": {"name": "demo"}, "extra": 1}`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if err := ValidateConfig([]byte(data)); err != nil {
				t.Errorf("ValidateConfig() error = %v", err)
			}
		})
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing project":     `{}`,
		"missing name":        `{"project": {}}`,
		"features not array":  `{"project": {"name": "demo"}, "targets": {"a": {"features": "program"}}}`,
		"missing features":    `{"project": {"name": "demo"}, "targets": {"a": {}}}`,
		"success code string": `{"project": {"name": "demo"}, "unit_test": {"success_code": "0"}}`,
		"success code 256":    `{"project": {"name": "demo"}, "unit_test": {"success_code": 256}}`,
		"success code -1":     `{"project": {"name": "demo"}, "unit_test": {"success_code": -1}}`,
		"work dir bool":       `{"project": {"name": "demo"}, "utest": {"work_dir": true}}`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateConfig([]byte(data))
			if err == nil {
				t.Fatal("ValidateConfig() error = nil, want error")
			}
			if !strings.Contains(err.Error(), "config validation failed") {
				t.Errorf("error = %q, want schema failure", err)
			}
		})
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	err := ValidateConfig([]byte(`{"project":`))
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("ValidateConfig() error = %v, want invalid JSON", err)
	}
}
