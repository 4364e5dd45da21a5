package project

import (
	"fmt"
	"path/filepath"

	"github.com/AndreyAkinshin/unitrun/internal/config"
)

// Project represents a loaded unitrun project.
type Project struct {
	Root     string
	Config   *config.Config
	Warnings []string
}

// LoadProjectFrom loads a project from a specified root directory.
// Target directories are not required to exist: a target whose artifacts are
// missing is reported by the runners, not rejected at load time.
func LoadProjectFrom(root string) (*Project, error) {
	p := &Project{Root: root}
	cfg, warnings, err := config.LoadAndValidate(p.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	p.Config = cfg
	p.Warnings = warnings
	return p, nil
}

// ConfigPath returns the full path to the project configuration file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, ConfigDirName, ConfigFileName)
}

// StatePath returns the path of the task signature database.
func (p *Project) StatePath() string {
	return filepath.Join(p.Root, ConfigDirName, StateFileName)
}

// BuildDir returns the absolute build output directory.
func (p *Project) BuildDir() string {
	return filepath.Join(p.Root, p.Config.Build.Out)
}

// UTestWorkDir returns the absolute working directory for utest tasks,
// or an empty string when none is configured.
func (p *Project) UTestWorkDir() string {
	dir := p.Config.UTest.WorkDir
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.Root, dir)
}
