// Package logging assembles the slog loggers used by the streamdetails CLI.
//
// Console or JSON records go to stderr at the configured level. When a log
// directory is configured every record is also appended as a JSON line to
// streamdetails.log, and each record carries the run_id of the invocation
// that produced it. A no-op logger is available for tests and library callers
// that do not want output.
package logging
