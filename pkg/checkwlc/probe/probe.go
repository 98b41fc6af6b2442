// Package probe wires the check pipeline stages together and runs one
// invocation end to end.
//
// Pipeline:
//
//	catalog.Resolve → fetcher.Fetch{Scalar,Table} → derive.Derive →
//	evaluate.Evaluate → format/nagios
//
// Everything is strictly sequential; the only suspension point is the SNMP
// round trip, which runs under a deadline of the configured timeout plus a
// small margin so the probe can still report UNKNOWN before any outer
// supervisory timeout fires.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/vpbank/check_wlc/format/nagios"
	"github.com/vpbank/check_wlc/models"
	"github.com/vpbank/check_wlc/pkg/checkwlc/catalog"
	"github.com/vpbank/check_wlc/pkg/checkwlc/config"
	"github.com/vpbank/check_wlc/pkg/checkwlc/derive"
	"github.com/vpbank/check_wlc/pkg/checkwlc/evaluate"
	"github.com/vpbank/check_wlc/snmp/fetcher"
)

// graceMargin is added to the SNMP timeout to form the overall run deadline,
// leaving room to render the UNKNOWN line before the scheduler's own alarm.
const graceMargin = 2 * time.Second

// ─────────────────────────────────────────────────────────────────────────────
// Outcome
// ─────────────────────────────────────────────────────────────────────────────

// Outcome is the rendered result of one invocation. Failures are outcomes
// too: Run never returns a Go error, it classifies every failure into the
// UNKNOWN line and exit code the scheduler expects.
type Outcome struct {
	// Line is the single plugin line written to stdout.
	Line string

	// ExitCode is the process exit code (the severity's ordinal).
	ExitCode int

	// Severity is the classified outcome, Unknown on any failure.
	Severity models.Severity

	// VerboseLines are the oid = value pairs observed during the fetch,
	// printed before Line when verbose mode is on. Sorted by OID.
	VerboseLines []string

	// Err carries the classified failure for logging and tests; nil on a
	// normal OK/WARNING/CRITICAL outcome.
	Err error
}

// ─────────────────────────────────────────────────────────────────────────────
// Run
// ─────────────────────────────────────────────────────────────────────────────

// Run executes one check invocation against the given fetcher. If logger is
// nil a no-op logger is substituted.
func Run(ctx context.Context, cfg config.Probe, f fetcher.Fetcher, logger *slog.Logger) Outcome {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	formatter := nagios.New(logger)
	category := cfg.Category.String()

	spec, err := catalog.Resolve(cfg.Category)
	if err != nil {
		return unknownOutcome(category, &ConfigError{Err: err}, logger)
	}

	result, err := fetchWithDeadline(ctx, cfg, f, spec, logger)
	if err != nil {
		return unknownOutcome(category, &TransportError{Err: err}, logger)
	}

	verbose := verboseLines(result)

	value, err := derive.Derive(cfg.Category, result, spec)
	if err != nil {
		out := unknownOutcome(category, classifyDeriveError(err), logger)
		out.VerboseLines = verbose
		return out
	}

	sev := evaluate.Evaluate(value, cfg.Thresholds, cfg.Category)
	line, code := formatter.Format(category, sev, value, cfg.Thresholds.Warn, cfg.Thresholds.Crit)

	logger.Info("probe: check complete",
		"category", category,
		"value", value,
		"severity", sev.ExitCode(),
	)
	return Outcome{
		Line:         line,
		ExitCode:     code,
		Severity:     sev,
		VerboseLines: verbose,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Stages
// ─────────────────────────────────────────────────────────────────────────────

// fetchWithDeadline performs the round trip indicated by the OidSpec under
// the overall run deadline. If the deadline elapses the invocation fails with
// a timeout error; no partial results are salvaged.
func fetchWithDeadline(ctx context.Context, cfg config.Probe, f fetcher.Fetcher, spec catalog.OidSpec, logger *slog.Logger) (models.QueryResult, error) {
	deadline := cfg.Timeout + graceMargin
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	type fetchDone struct {
		result models.QueryResult
		err    error
	}
	done := make(chan fetchDone, 1)

	go func() {
		var (
			result models.QueryResult
			err    error
		)
		switch spec.Shape {
		case catalog.ScalarFetch:
			result, err = f.FetchScalar(ctx, spec.OIDs)
		case catalog.TableFetch:
			result, err = f.FetchTable(ctx, spec.BaseOID)
		default:
			err = fmt.Errorf("unknown fetch shape %v", spec.Shape)
		}
		done <- fetchDone{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch from %s:%d timed out after %s", cfg.Host, cfg.Port, deadline)
	case d := <-done:
		if d.err != nil {
			return nil, d.err
		}
		logger.Debug("probe: fetch complete", "varbinds", len(d.result))
		return d.result, nil
	}
}

// classifyDeriveError separates the one domain condition (zero total memory)
// from derivation failures that indicate a bug or an incomplete result.
func classifyDeriveError(err error) error {
	if errors.Is(err, derive.ErrZeroTotalMemory) {
		return &DomainError{Err: err}
	}
	return &TransportError{Err: err}
}

// unknownOutcome renders a classified failure as the UNKNOWN line.
func unknownOutcome(category string, err error, logger *slog.Logger) Outcome {
	logger.Error("probe: check failed", "category", category, "error", err.Error())
	return Outcome{
		Line:     fmt.Sprintf("%s %s: %s", category, models.Unknown.Label(), err.Error()),
		ExitCode: models.Unknown.ExitCode(),
		Severity: models.Unknown,
		Err:      err,
	}
}

// verboseLines renders the fetched oid = value pairs in stable order.
func verboseLines(result models.QueryResult) []string {
	oids := make([]string, 0, len(result))
	for oid := range result {
		oids = append(oids, oid)
	}
	sort.Strings(oids)

	lines := make([]string, 0, len(oids))
	for _, oid := range oids {
		lines = append(lines, fmt.Sprintf("%s = %d", oid, result[oid]))
	}
	return lines
}

// noopWriter discards log output when no logger is provided.
type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
