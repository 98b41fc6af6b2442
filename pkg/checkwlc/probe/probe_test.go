package probe_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vpbank/check_wlc/models"
	"github.com/vpbank/check_wlc/pkg/checkwlc/catalog"
	"github.com/vpbank/check_wlc/pkg/checkwlc/config"
	"github.com/vpbank/check_wlc/pkg/checkwlc/probe"
)

// ─────────────────────────────────────────────────────────────────────────────
// Mock fetcher
// ─────────────────────────────────────────────────────────────────────────────

// fetchCall records one call made against the mock.
type fetchCall struct {
	Kind string // "scalar" or "table"
	Arg  string // first OID or base OID
}

// mockFetcher lets tests control the fetch result and inspect which query
// shape the pipeline selected.
type mockFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	result  models.QueryResult
	err     error
	blockFn func(ctx context.Context) // optional: simulate a hanging round trip
}

func (m *mockFetcher) FetchScalar(ctx context.Context, oids []string) (models.QueryResult, error) {
	m.record(fetchCall{Kind: "scalar", Arg: oids[0]})
	if m.blockFn != nil {
		m.blockFn(ctx)
	}
	return m.result, m.err
}

func (m *mockFetcher) FetchTable(ctx context.Context, baseOID string) (models.QueryResult, error) {
	m.record(fetchCall{Kind: "table", Arg: baseOID})
	if m.blockFn != nil {
		m.blockFn(ctx)
	}
	return m.result, m.err
}

func (m *mockFetcher) record(c fetchCall) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// testConfig returns a valid Probe for the given category.
func testConfig(t *testing.T, category models.Category) config.Probe {
	t.Helper()
	return config.Probe{
		Host:       "wlc01.example.com",
		Port:       161,
		Community:  "public",
		Timeout:    500 * time.Millisecond,
		Category:   category,
		Thresholds: models.Thresholds{Warn: 80, Crit: 90},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Happy paths
// ─────────────────────────────────────────────────────────────────────────────

func TestRun_ScalarCategoryEndToEnd(t *testing.T) {
	f := &mockFetcher{result: models.QueryResult{catalog.OIDCPUUtilization: 42}}

	out := probe.Run(context.Background(), testConfig(t, models.CPU), f, nil)

	if out.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0 (line: %s)", out.ExitCode, out.Line)
	}
	if out.Line != "cpu : 42|cpu=42;80;90" {
		t.Errorf("Line = %q", out.Line)
	}
	if out.Err != nil {
		t.Errorf("Err = %v, want nil", out.Err)
	}
	if f.callCount() != 1 || f.calls[0].Kind != "scalar" {
		t.Errorf("calls = %+v, want one scalar fetch", f.calls)
	}
}

func TestRun_TableCategoryUsesWalk(t *testing.T) {
	f := &mockFetcher{result: models.QueryResult{
		catalog.OIDApUserTable + ".1.1": 3,
		catalog.OIDApUserTable + ".2.1": 5,
	}}
	cfg := testConfig(t, models.Clients)

	out := probe.Run(context.Background(), cfg, f, nil)

	if out.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0 (line: %s)", out.ExitCode, out.Line)
	}
	if !strings.Contains(out.Line, "clients : 8|") {
		t.Errorf("Line = %q, want derived sum 8", out.Line)
	}
	if f.callCount() != 1 || f.calls[0].Kind != "table" || f.calls[0].Arg != catalog.OIDApUserTable {
		t.Errorf("calls = %+v, want one walk of %s", f.calls, catalog.OIDApUserTable)
	}
}

func TestRun_WarningAndCriticalClassification(t *testing.T) {
	tests := []struct {
		value    int64
		wantCode int
	}{
		{value: 82, wantCode: 1},
		{value: 95, wantCode: 2},
	}
	for _, tt := range tests {
		f := &mockFetcher{result: models.QueryResult{catalog.OIDCPUUtilization: tt.value}}
		out := probe.Run(context.Background(), testConfig(t, models.CPU), f, nil)
		if out.ExitCode != tt.wantCode {
			t.Errorf("value %d: ExitCode = %d, want %d", tt.value, out.ExitCode, tt.wantCode)
		}
	}
}

func TestRun_VerboseLinesSorted(t *testing.T) {
	f := &mockFetcher{result: models.QueryResult{
		catalog.OIDMemTotal: 1000,
		catalog.OIDMemFree:  250,
	}}

	out := probe.Run(context.Background(), testConfig(t, models.Memory), f, nil)

	want := []string{
		catalog.OIDMemTotal + " = 1000",
		catalog.OIDMemFree + " = 250",
	}
	if len(out.VerboseLines) != 2 {
		t.Fatalf("VerboseLines = %v", out.VerboseLines)
	}
	// Sorted by OID: ...2.1.0 (total) precedes ...2.2.0 (free).
	if out.VerboseLines[0] != want[0] || out.VerboseLines[1] != want[1] {
		t.Errorf("VerboseLines = %v, want %v", out.VerboseLines, want)
	}
	if !strings.HasPrefix(out.Line, "memory : 75|") {
		t.Errorf("Line = %q, want memory at 75%%", out.Line)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Failure paths
// ─────────────────────────────────────────────────────────────────────────────

func TestRun_TransportFailureIsUnknown(t *testing.T) {
	// Regardless of category, a failed round trip must yield exit 3 and the
	// failure reason in the line.
	for _, category := range []models.Category{
		models.Temperature, models.CPU, models.Memory, models.Clients, models.AccessPoints,
	} {
		t.Run(category.String(), func(t *testing.T) {
			f := &mockFetcher{err: fmt.Errorf("connection refused")}
			out := probe.Run(context.Background(), testConfig(t, category), f, nil)

			if out.ExitCode != 3 {
				t.Fatalf("ExitCode = %d, want 3", out.ExitCode)
			}
			if out.Severity != models.Unknown {
				t.Errorf("Severity = %v, want Unknown", out.Severity)
			}
			if !strings.Contains(out.Line, "UNKNOWN") || !strings.Contains(out.Line, "connection refused") {
				t.Errorf("Line = %q, want UNKNOWN with failure reason", out.Line)
			}
			var terr *probe.TransportError
			if !errors.As(out.Err, &terr) {
				t.Errorf("Err = %v, want *TransportError", out.Err)
			}
		})
	}
}

func TestRun_ZeroTotalMemoryIsDomainError(t *testing.T) {
	f := &mockFetcher{result: models.QueryResult{
		catalog.OIDMemTotal: 0,
		catalog.OIDMemFree:  0,
	}}

	out := probe.Run(context.Background(), testConfig(t, models.Memory), f, nil)

	if out.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3 (line: %s)", out.ExitCode, out.Line)
	}
	var derr *probe.DomainError
	if !errors.As(out.Err, &derr) {
		t.Fatalf("Err = %v, want *DomainError", out.Err)
	}
	if !strings.Contains(out.Line, "total memory is zero") {
		t.Errorf("Line = %q, want zero-total message", out.Line)
	}
}

func TestRun_DeadlineProducesUnknown(t *testing.T) {
	// A fetch that outlives the timeout plus margin must terminate the run
	// with UNKNOWN rather than hang.
	f := &mockFetcher{
		result: models.QueryResult{catalog.OIDCPUUtilization: 42},
		blockFn: func(ctx context.Context) {
			<-ctx.Done()
		},
	}
	cfg := testConfig(t, models.CPU)
	cfg.Timeout = 10 * time.Millisecond

	start := time.Now()
	out := probe.Run(context.Background(), cfg, f, nil)
	elapsed := time.Since(start)

	if out.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3 (line: %s)", out.ExitCode, out.Line)
	}
	if !strings.Contains(out.Line, "timed out") {
		t.Errorf("Line = %q, want timeout message", out.Line)
	}
	// Deadline is timeout + 2s margin; allow generous scheduling slack.
	if elapsed > 5*time.Second {
		t.Errorf("Run took %v, deadline did not fire", elapsed)
	}
}

func TestRun_NoRetryOnFailure(t *testing.T) {
	f := &mockFetcher{err: fmt.Errorf("timeout")}
	probe.Run(context.Background(), testConfig(t, models.CPU), f, nil)
	if f.callCount() != 1 {
		t.Fatalf("fetch called %d times, want exactly 1 (no retries)", f.callCount())
	}
}
