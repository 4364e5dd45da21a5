package utest

import "github.com/AndreyAkinshin/unitrun/internal/output"

// Summary prints one ok or FAIL line per log entry. An empty log prints
// nothing.
func Summary(w *output.Writer, log *ResultsLog) {
	entries := log.Entries()
	if len(entries) == 0 {
		return
	}
	w.Colored(output.Cyan, "execution summary")
	for _, e := range entries {
		if e.Failed {
			w.Colored(output.Red, "FAIL %s", e.Path)
		} else {
			w.Colored(output.Green, "ok %s", e.Path)
		}
	}
}
