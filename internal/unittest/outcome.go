// Package unittest runs every executable marked as a unit test, one after
// another, and renders a results table with aggregate statistics.
package unittest

import (
	"errors"

	"github.com/AndreyAkinshin/unitrun/internal/process"
)

// Outcome is the result of one completed test attempt.
type Outcome int

const (
	// Passed means the process exited with the success code.
	Passed Outcome = iota
	// Failed means the process ran and exited with any other code.
	Failed
	// Erroneous means the process could not be launched at all.
	Erroneous
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "OK"
	case Failed:
		return "FAILED"
	case Erroneous:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Classify maps the result of a launch to an outcome. ok is false when the
// attempt was interrupted and must not be recorded.
func Classify(res process.Result, err error, successCode int) (outcome Outcome, ok bool) {
	switch {
	case err == nil:
		if res.ExitCode == successCode {
			return Passed, true
		}
		return Failed, true
	case errors.Is(err, process.ErrInterrupted):
		return 0, false
	default:
		return Erroneous, true
	}
}
