package scheduler

import (
	"os"
	"runtime"
	"strconv"

	"github.com/AndreyAkinshin/unitrun/internal/output"
)

// EnvJobs overrides the number of scheduler workers.
const EnvJobs = "UNITRUN_JOBS"

const (
	// minWorkers keeps the pool usable even when runtime.NumCPU reports 0
	// in restricted containers.
	minWorkers = 1

	// maxWorkers caps UNITRUN_JOBS. Tasks spend their time in subprocesses,
	// so more workers than this only adds scheduling overhead.
	maxWorkers = 256
)

func defaultWorkerCount() int {
	return max(minWorkers, runtime.NumCPU())
}

// Workers returns the number of workers to use. Invalid UNITRUN_JOBS values
// (non-numeric, <1, >256) print a warning to w and fall back to
// runtime.NumCPU().
func Workers(w *output.Writer) int {
	return parseWorkers(os.Getenv(EnvJobs), w)
}

func parseWorkers(env string, w *output.Writer) int {
	if env == "" {
		return defaultWorkerCount()
	}

	n, err := strconv.Atoi(env)
	if err != nil {
		w.Warning("invalid %s value %q (not a number), using default", EnvJobs, env)
		return defaultWorkerCount()
	}

	if n < minWorkers || n > maxWorkers {
		w.Warning("%s=%d out of range [%d-%d], using default", EnvJobs, n, minWorkers, maxWorkers)
		return defaultWorkerCount()
	}

	return n
}
