package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// LoadWithWarnings parses config data and returns any unknown field warnings.
func LoadWithWarnings(data []byte) (*Config, []string, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, detectUnknownFields(data), nil
}

// sections maps object-valued top-level keys to the struct they decode into.
var sections = map[string]reflect.Type{
	"project":   reflect.TypeOf(ProjectConfig{}),
	"build":     reflect.TypeOf(BuildConfig{}),
	"unit_test": reflect.TypeOf(UnitTestConfig{}),
	"utest":     reflect.TypeOf(UTestConfig{}),
}

// detectUnknownFields compares raw JSON with known struct fields.
// Warnings are sorted so that output is stable across runs.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	knownTopLevel := getJSONFields(reflect.TypeOf(Config{}))
	for key, value := range raw {
		if key == "$schema" {
			continue
		}
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
			continue
		}
		if typ, ok := sections[key]; ok {
			warnings = append(warnings, checkObjectUnknownFields(key, value, typ)...)
		}
	}

	if targetsRaw, ok := raw["targets"]; ok {
		warnings = append(warnings, checkTargetsUnknownFields(targetsRaw)...)
	}

	sort.Strings(warnings)
	return warnings
}

func checkObjectUnknownFields(section string, data json.RawMessage, typ reflect.Type) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	known := getJSONFields(typ)
	var warnings []string
	for key := range fields {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q in %q (ignored)", key, section))
		}
	}
	return warnings
}

func checkTargetsUnknownFields(data json.RawMessage) []string {
	var warnings []string

	var targets map[string]json.RawMessage
	if err := json.Unmarshal(data, &targets); err != nil {
		return []string{"internal: failed to re-parse targets for unknown field detection"}
	}

	knownTargetFields := getJSONFields(reflect.TypeOf(TargetConfig{}))
	for targetName, targetRaw := range targets {
		var targetFields map[string]json.RawMessage
		if err := json.Unmarshal(targetRaw, &targetFields); err != nil {
			continue
		}
		for key := range targetFields {
			if !knownTargetFields[key] {
				warnings = append(warnings, fmt.Sprintf("unknown field %q in target %q (ignored)", key, targetName))
			}
		}
	}

	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
