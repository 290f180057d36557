// Package cli implements the classgraph command-line interface.
//
// The diagram, views and doc commands load a class model from Java sources
// (or a JSON model written by the model command), apply diagram options and
// write DOT files with the pipeline package. DOT files are rendered to SVG or
// PNG with go-graphviz, or with an external dot executable when --dot or
// dot_executable is set.
//
// # Options
//
// Diagram options are read from the [options] table of classgraph.toml and
// from the arguments after "--", in that order, so command-line options win
// for single-valued options:
//
//	classgraph diagram src -- -attributes -hide 'java\..*'
//
// Flags such as --output-dir override the corresponding option.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Diagnostics
// collected while generating are logged as warnings; the command summary only
// counts them.
//
// # Caching
//
// Rendered images and fetched package lists are cached below
// $XDG_CACHE_HOME/classgraph. The cache command clears or locates them.
package cli

import (
	"io"
	"time"

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

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Generated 3 diagram(s) (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
