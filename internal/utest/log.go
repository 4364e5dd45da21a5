// Package utest implements the utest task type: one task per test target,
// scheduled by the build's task executor, each appending its result to a
// log shared by the whole build.
package utest

import "sync"

// Entry is the result of one utest task.
type Entry struct {
	Path   string // Absolute path of the executed test
	Failed bool
	Output []byte // Combined stdout and stderr; empty if the test could not be launched
}

// ResultsLog is the append-only result list of one build. A single mutex
// guards it, and every task holds that mutex from launch until its entry is
// appended, so test executions never overlap.
type ResultsLog struct {
	mu      sync.Mutex
	entries []Entry
}

// NewResultsLog creates an empty log.
func NewResultsLog() *ResultsLog {
	return &ResultsLog{}
}

// Exclusive calls fn with the log locked and appends the entry it returns.
// The lock is released even if fn panics.
func (l *ResultsLog) Exclusive(fn func() Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fn())
}

// Entries returns a copy of the log in append order.
func (l *ResultsLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of entries.
func (l *ResultsLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
