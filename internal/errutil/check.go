// Package errutil funnels non-fatal errors through a single logging
// path. The janitor must keep running under partial failures, so most
// errors end up here rather than propagating.
package errutil

import (
	"log/slog"
)

// LogMsg logs err at warn level with the given message and key-value
// pairs, doing nothing for a nil error. It is the sink for expected
// per-file trouble: failed deletes, unreadable entries, close errors.
func LogMsg(err error, msg string, args ...any) {
	if err != nil {
		allArgs := append([]any{"error", err}, args...)
		slog.Warn(msg, allArgs...)
	}
}

// ReportError is LogMsg at error level, for failures that should not
// happen in a healthy run, like a rejected configuration.
func ReportError(err error, msg string, args ...any) {
	if err != nil {
		allArgs := append([]any{"error", err}, args...)
		slog.Error(msg, allArgs...)
	}
}
