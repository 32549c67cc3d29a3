// Package cli implements the polyskel command-line interface.
//
// This package provides commands for computing polygon skeletons, querying
// skeleton graphs, comparing strategies, serving the HTTP API, and managing
// the local result cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - skeleton: Compute a polygon's skeleton and render it
//   - path: Print the longest path and branches of a skeleton
//   - compare: Run every strategy side by side
//   - serve: Run the HTTP API
//   - history: List recent runs
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The shared
// logger lives on the CLI struct and is threaded into the pipeline runner
// for structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
