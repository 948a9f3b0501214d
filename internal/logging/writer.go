package logging

import (
	"log/slog"
	"strings"
)

// Writer is an io.Writer implementation that forwards subprocess output to slog.
// gitctx uses it as the stderr sink for git and gh invocations so tool noise
// lands in the structured log instead of the terminal.
type Writer struct {
	logger *slog.Logger
	msg    string
}

// NewWriter constructs a Writer bound to the provided logger. The msg label
// identifies the source of the forwarded lines (e.g. "git stderr").
func NewWriter(logger *slog.Logger, msg string) *Writer {
	return &Writer{logger: logger, msg: msg}
}

// Write logs each non-empty line of p at debug level.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger != nil {
		for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
			if line != "" {
				w.logger.Debug(w.msg, "line", line)
			}
		}
	}
	return len(p), nil
}
