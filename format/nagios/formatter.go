// Package nagios renders the check outcome as the single plugin line the
// invoking scheduler parses.
//
// Pipeline position:
//
//	evaluate → format/nagios → stdout + exit code
//
// The line layout is a bit-for-bit compatibility contract:
//
//	<category> <LABEL>: <value>|<category>=<value>;<warn>;<crit>
//
// LABEL is empty for OK — the original tool printed no label on a healthy
// check (leaving "<category> : <value>…") and downstream parsers depend on
// that exact shape, so it is reproduced as-is rather than fixed.
package nagios

import (
	"fmt"
	"log/slog"

	"github.com/vpbank/check_wlc/models"
)

// Formatter renders one check outcome. It exists as an interface so that an
// alternative output convention could be added without touching the pipeline.
type Formatter interface {
	Format(category string, sev models.Severity, value, warn, crit int64) (line string, exitCode int)
}

// LineFormatter is the plugin-line Formatter. It is stateless and safe for
// concurrent use.
type LineFormatter struct {
	logger *slog.Logger
}

// New constructs a LineFormatter. If logger is nil a no-op logger is
// substituted.
func New(logger *slog.Logger) *LineFormatter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	return &LineFormatter{logger: logger}
}

// Format renders the plugin line and the matching process exit code. The
// performance-data suffix after the literal '|' is key=value;warn;crit.
func (f *LineFormatter) Format(category string, sev models.Severity, value, warn, crit int64) (string, int) {
	line := fmt.Sprintf("%s %s: %d|%s=%d;%d;%d",
		category, sev.Label(), value, category, value, warn, crit)

	f.logger.Debug("format: rendered check line",
		"category", category,
		"severity", sev.Label(),
		"value", value,
	)
	return line, sev.ExitCode()
}

// noopWriter discards log output when no logger is provided.
type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
