// Package fetcher implements the SNMP acquisition layer of the probe. It
// converts the target configuration into a live gosnmp session and executes
// the single Get or BulkWalk round trip that produces the QueryResult
// consumed by the deriver.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
)

// ─────────────────────────────────────────────────────────────────────────────
// Session factory — Target → *gosnmp.GoSNMP
// ─────────────────────────────────────────────────────────────────────────────

// Target describes the device one invocation talks to. The probe speaks SNMP
// v2c with a plain community string only; version negotiation and v3
// credentials are out of scope.
type Target struct {
	// Host is the controller's address (IP or resolvable name).
	Host string

	// Port is the SNMP agent port, 161 unless overridden.
	Port uint16

	// Community is the read community string carried in every request.
	Community string

	// Timeout bounds the protocol round trip. The session performs no
	// retries: a single failed round trip is terminal for the invocation.
	Timeout time.Duration
}

// NewSession creates and connects a v2c gosnmp session for the target. The
// caller is responsible for closing the session when the fetch completes;
// each invocation opens exactly one session and never reuses it.
func NewSession(ctx context.Context, t Target) (*gosnmp.GoSNMP, error) {
	g := &gosnmp.GoSNMP{
		Target:    t.Host,
		Port:      t.Port,
		Community: t.Community,
		Version:   gosnmp.Version2c,
		Timeout:   t.Timeout,
		Retries:   0,
		MaxOids:   gosnmp.MaxOids,
		Context:   ctx,
	}
	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("snmp connect %s:%d: %w", t.Host, t.Port, err)
	}
	return g, nil
}
