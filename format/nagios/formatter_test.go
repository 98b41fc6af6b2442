package nagios_test

import (
	"testing"

	"github.com/vpbank/check_wlc/format/nagios"
	"github.com/vpbank/check_wlc/models"
)

func TestNew_NilLoggerDoesNotPanic(t *testing.T) {
	f := nagios.New(nil)
	if f == nil {
		t.Fatal("New returned nil")
	}
	f.Format("cpu", models.OK, 1, 2, 3)
}

// The line layout is a bit-for-bit compatibility contract with the invoking
// scheduler, so these expectations are spelled out literally.
func TestFormat_LineShape(t *testing.T) {
	tests := []struct {
		name     string
		category string
		sev      models.Severity
		value    int64
		warn     int64
		crit     int64
		wantLine string
		wantCode int
	}{
		{
			name:     "ok has empty label",
			category: "cpu",
			sev:      models.OK,
			value:    42, warn: 80, crit: 90,
			wantLine: "cpu : 42|cpu=42;80;90",
			wantCode: 0,
		},
		{
			name:     "warning",
			category: "memory",
			sev:      models.Warning,
			value:    82, warn: 80, crit: 85,
			wantLine: "memory WARNING: 82|memory=82;80;85",
			wantCode: 1,
		},
		{
			name:     "critical",
			category: "temperature",
			sev:      models.Critical,
			value:    71, warn: 50, crit: 65,
			wantLine: "temperature CRITICAL: 71|temperature=71;50;65",
			wantCode: 2,
		},
		{
			name:     "inverted accesspoints ok",
			category: "accesspoints",
			sev:      models.OK,
			value:    5, warn: 3, crit: 1,
			wantLine: "accesspoints : 5|accesspoints=5;3;1",
			wantCode: 0,
		},
	}

	f := nagios.New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, code := f.Format(tt.category, tt.sev, tt.value, tt.warn, tt.crit)
			if line != tt.wantLine {
				t.Errorf("line = %q, want %q", line, tt.wantLine)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}
