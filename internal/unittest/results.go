package unittest

import (
	"time"
)

// TestTarget is a discovered unit test.
type TestTarget struct {
	Label      string // Build-relative path of the executable
	Path       string // Absolute path of the executable
	WorkingDir string // Source directory of the target
}

// Record is the recorded outcome of one test.
type Record struct {
	Outcome  Outcome
	Duration time.Duration
}

// ResultsTable holds the tests of one run in discovery order and the
// outcomes recorded for them.
type ResultsTable struct {
	tests   []TestTarget
	records map[string]Record

	Passed        int
	Failed        int
	Erroneous     int
	Total         int
	MaxLabelWidth int
}

func newResultsTable() *ResultsTable {
	return &ResultsTable{records: make(map[string]Record)}
}

func (rt *ResultsTable) add(tt TestTarget) {
	rt.tests = append(rt.tests, tt)
	rt.Total = len(rt.tests)
	rt.MaxLabelWidth = max(rt.MaxLabelWidth, len(tt.Label))
}

// record stores the outcome for label. An Erroneous outcome replaces any
// earlier entry; other outcomes never downgrade an Erroneous one.
func (rt *ResultsTable) record(label string, r Record) {
	if prev, ok := rt.records[label]; ok {
		if prev.Outcome == Erroneous && r.Outcome != Erroneous {
			return
		}
		rt.uncount(prev.Outcome)
	}
	rt.records[label] = r
	switch r.Outcome {
	case Passed:
		rt.Passed++
	case Failed:
		rt.Failed++
	case Erroneous:
		rt.Erroneous++
	}
}

func (rt *ResultsTable) uncount(o Outcome) {
	switch o {
	case Passed:
		rt.Passed--
	case Failed:
		rt.Failed--
	case Erroneous:
		rt.Erroneous--
	}
}

// Tests returns the discovered tests in discovery order.
func (rt *ResultsTable) Tests() []TestTarget {
	return append([]TestTarget(nil), rt.tests...)
}

// Lookup returns the recorded outcome for label. ok is false for tests that
// were interrupted or not run.
func (rt *ResultsTable) Lookup(label string) (Record, bool) {
	r, ok := rt.records[label]
	return r, ok
}

// Percent returns n as a percentage of Total, or 0 for an empty table.
func (rt *ResultsTable) Percent(n int) float64 {
	if rt.Total == 0 {
		return 0
	}
	return float64(n) / float64(rt.Total) * 100.0
}
