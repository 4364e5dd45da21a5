package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createProject(t *testing.T, config string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestFindRootFrom_Found(t *testing.T) {
	root := createProject(t, `{"project":{"name":"test"}}`)

	found, err := FindRootFrom(root)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_FoundFromSubdir(t *testing.T) {
	root := createProject(t, `{"project":{"name":"test"}}`)
	subdir := filepath.Join(root, "tests", "test0", "deep")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRootFrom(subdir)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_NotFound(t *testing.T) {
	_, err := FindRootFrom(t.TempDir())
	if !errors.Is(err, ErrNoProjectRoot) {
		t.Errorf("FindRootFrom() error = %v, want ErrNoProjectRoot", err)
	}
}

func TestLoadProjectFrom(t *testing.T) {
	root := createProject(t, `{
		"project": {"name": "demo"},
		"targets": {"test0": {"dir": "tests/test0", "features": ["program", "test"]}},
		"utest": {"work_dir": "tests"},
		"surprise": true
	}`)

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if proj.Config.Project.Name != "demo" {
		t.Errorf("Project.Name = %q", proj.Config.Project.Name)
	}
	if len(proj.Warnings) != 1 || !strings.Contains(proj.Warnings[0], "surprise") {
		t.Errorf("Warnings = %v, want one about surprise", proj.Warnings)
	}
	if got, want := proj.BuildDir(), filepath.Join(root, "build"); got != want {
		t.Errorf("BuildDir() = %q, want %q", got, want)
	}
	if got, want := proj.UTestWorkDir(), filepath.Join(root, "tests"); got != want {
		t.Errorf("UTestWorkDir() = %q, want %q", got, want)
	}
	if got, want := proj.StatePath(), filepath.Join(root, ".unitrun", "state.db"); got != want {
		t.Errorf("StatePath() = %q, want %q", got, want)
	}
	if got, want := proj.ConfigPath(), filepath.Join(root, ".unitrun", "config.json"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadProjectFrom_InvalidConfig(t *testing.T) {
	root := createProject(t, `{"project": {"name": "Bad Name"}}`)

	_, err := LoadProjectFrom(root)
	if err == nil || !strings.Contains(err.Error(), "failed to load configuration") {
		t.Errorf("LoadProjectFrom() error = %v, want configuration error", err)
	}
}
