package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/unitrun/internal/graph"
	"github.com/AndreyAkinshin/unitrun/internal/output"
	"github.com/AndreyAkinshin/unitrun/internal/process"
	"github.com/AndreyAkinshin/unitrun/internal/testing/mocks"
	"github.com/AndreyAkinshin/unitrun/internal/unittest"
	"github.com/AndreyAkinshin/unitrun/internal/utest"
)

func batchResults(t *testing.T) *unittest.ResultsTable {
	t.Helper()
	var targets []*graph.Target
	for _, name := range []string{"a", "b", "c"} {
		targets = append(targets, mocks.NewTarget(name, "/p/build").Program().UnitTest().
			Linked("/p/build/tests/"+name+"/"+name).Build())
	}
	launcher := mocks.NewLauncher().
		On("/p/build/tests/b/b", mocks.Behavior{ExitCode: 1}).
		On("/p/build/tests/c/c", mocks.Behavior{Err: &process.LaunchError{Path: "/p/build/tests/c/c", Err: os.ErrNotExist}})
	r := unittest.NewBatchRunner(graph.NewBuild(graph.FromTargets(targets...), "check"), launcher,
		output.NewWithWriters(&bytes.Buffer{}, &bytes.Buffer{}, false), unittest.Options{Trigger: "check"},
		unittest.WithPlatform("linux", func() []string { return nil }))
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return r.Results()
}

func TestNew(t *testing.T) {
	log := utest.NewResultsLog()
	log.Exclusive(func() utest.Entry {
		return utest.Entry{Path: "/p/build/tests/t/t", Failed: true, Output: []byte("boom")}
	})

	r := New("demo", "check", batchResults(t), log)

	if r.Unit == nil {
		t.Fatal("Unit is nil")
	}
	counts := [4]int{r.Unit.Passed, r.Unit.Failed, r.Unit.Erroneous, r.Unit.Total}
	if counts != [4]int{1, 1, 1, 3} {
		t.Errorf("counts = %v, want [1 1 1 3]", counts)
	}
	var outcomes []string
	for _, row := range r.Unit.Tests {
		outcomes = append(outcomes, row.Outcome)
	}
	if diff := cmp.Diff([]string{"OK", "FAILED", "ERROR"}, outcomes); diff != "" {
		t.Errorf("outcomes mismatch (-want +got):\n%s", diff)
	}
	want := []TaskResult{{Path: "/p/build/tests/t/t", Failed: true, Output: "boom"}}
	if diff := cmp.Diff(want, r.Tasks); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_Empty(t *testing.T) {
	r := New("demo", "build", nil, nil)
	if r.Unit != nil || r.Tasks != nil {
		t.Errorf("New() = %+v, want no sections", r)
	}

	data, err := r.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got := string(data); got != "project: demo\ncommand: build\n" {
		t.Errorf("Marshal() = %q", got)
	}
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.yaml")
	r := New("demo", "check", batchResults(t), nil)

	if err := Write(path, r); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "label: tests/b/b") {
		t.Errorf("report missing label:\n%s", data)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("project: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil || !strings.Contains(err.Error(), "invalid report format") {
		t.Errorf("Read() error = %v, want invalid format", err)
	}
	if _, err := Read(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Read() of missing file should fail")
	}
}
