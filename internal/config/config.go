package config

import (
	"fmt"
	"os"

	"github.com/AndreyAkinshin/unitrun/internal/schema"
)

// LoadAndValidate reads a config file, checks it against the JSON schema,
// applies defaults, validates, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse is LoadAndValidate for in-memory data.
func Parse(data []byte) (*Config, []string, error) {
	if err := schema.ValidateConfig(data); err != nil {
		return nil, nil, err
	}

	cfg, unknownWarnings, err := LoadWithWarnings(data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	validationWarnings, err := Validate(cfg)

	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return cfg, allWarnings, nil
}
