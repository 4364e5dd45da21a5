// Package unitrun provides public constants for external tools
// integrating with unitrun.
package unitrun

// Exit codes returned by the unitrun CLI.
// Failing or erroneous tests do not produce ExitFailure: the CLI reports
// test outcomes in its output and only signals orchestration problems.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure of the orchestrator itself.
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid config, validation failure, etc.).
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (no project root, unwritable state, etc.).
	ExitEnvError = 3
)
