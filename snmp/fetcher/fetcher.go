package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gosnmp/gosnmp"

	"github.com/vpbank/check_wlc/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fetcher interface
// ─────────────────────────────────────────────────────────────────────────────

// Fetcher executes one SNMP round trip. It is the narrow seam between the
// check pipeline and the wire: the pipeline never sees gosnmp types, and
// tests substitute a mock implementation.
type Fetcher interface {
	// FetchScalar performs a single Get for the named OIDs. The result
	// contains a value for every requested OID, keyed by the OID string as
	// requested; any missing or unresolvable varbind fails the whole call.
	FetchScalar(ctx context.Context, oids []string) (models.QueryResult, error)

	// FetchTable walks the subtree under baseOID and returns every numeric
	// row found, keyed by the row OID as returned by the agent. An empty
	// table is a valid (empty) result, not an error.
	FetchTable(ctx context.Context, baseOID string) (models.QueryResult, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// SNMPFetcher — production implementation
// ─────────────────────────────────────────────────────────────────────────────

// SNMPFetcher is the production Fetcher. Each fetch opens its own session,
// performs one round trip, and closes the session on every return path.
type SNMPFetcher struct {
	target Target
	logger *slog.Logger
}

// New constructs an SNMPFetcher for the given target. If logger is nil a
// no-op logger is substituted.
func New(target Target, logger *slog.Logger) *SNMPFetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	return &SNMPFetcher{target: target, logger: logger}
}

// FetchScalar implements Fetcher. The requested OIDs are sent in one Get PDU;
// a NoSuchObject / NoSuchInstance sentinel or an absent varbind for any
// requested OID fails the call, so a successful result always carries exactly
// the requested identifiers.
func (f *SNMPFetcher) FetchScalar(ctx context.Context, oids []string) (models.QueryResult, error) {
	conn, err := NewSession(ctx, f.target)
	if err != nil {
		return nil, err
	}
	defer closeSession(conn)

	pkt, err := conn.Get(oids)
	if err != nil {
		return nil, fmt.Errorf("snmp get %s: %w", f.target.Host, err)
	}
	if pkt.Error != gosnmp.NoError {
		return nil, fmt.Errorf("snmp get %s: agent returned %v", f.target.Host, pkt.Error)
	}

	// Index the response by normalised OID so leading-dot differences between
	// request and response forms cannot cause a miss.
	byOID := make(map[string]gosnmp.SnmpPDU, len(pkt.Variables))
	for _, pdu := range pkt.Variables {
		byOID[normaliseOID(pdu.Name)] = pdu
	}

	result := make(models.QueryResult, len(oids))
	for _, oid := range oids {
		pdu, ok := byOID[normaliseOID(oid)]
		if !ok {
			return nil, fmt.Errorf("snmp get %s: no varbind returned for %s", f.target.Host, oid)
		}
		if isErrorType(pdu.Type) {
			return nil, fmt.Errorf("snmp get %s: %s for %s", f.target.Host, pduTypeString(pdu.Type), oid)
		}
		result[oid] = gosnmp.ToBigInt(pdu.Value).Int64()
		f.logger.Debug("fetch: scalar varbind", "oid", oid, "value", result[oid])
	}
	return result, nil
}

// FetchTable implements Fetcher using a v2c BulkWalk rooted at baseOID.
// Error-sentinel rows are skipped; everything else is widened to int64.
func (f *SNMPFetcher) FetchTable(ctx context.Context, baseOID string) (models.QueryResult, error) {
	conn, err := NewSession(ctx, f.target)
	if err != nil {
		return nil, err
	}
	defer closeSession(conn)

	pdus, err := conn.BulkWalkAll(baseOID)
	if err != nil {
		return nil, fmt.Errorf("snmp walk %s %s: %w", f.target.Host, baseOID, err)
	}

	result := make(models.QueryResult, len(pdus))
	for _, pdu := range pdus {
		if isErrorType(pdu.Type) {
			continue
		}
		value := gosnmp.ToBigInt(pdu.Value).Int64()
		result[pdu.Name] = value
		f.logger.Debug("fetch: table row", "oid", pdu.Name, "value", value)
	}
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ─────────────────────────────────────────────────────────────────────────────

func closeSession(conn *gosnmp.GoSNMP) {
	if conn.Conn != nil {
		_ = conn.Conn.Close()
	}
}

// isErrorType reports whether a PDU type is one of the SNMPv2 exception
// sentinels rather than a value.
func isErrorType(t gosnmp.Asn1BER) bool {
	switch t {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
		return true
	}
	return false
}

func pduTypeString(t gosnmp.Asn1BER) string {
	switch t {
	case gosnmp.NoSuchObject:
		return "NoSuchObject"
	case gosnmp.NoSuchInstance:
		return "NoSuchInstance"
	case gosnmp.EndOfMibView:
		return "EndOfMibView"
	default:
		return fmt.Sprintf("Asn1BER(0x%x)", byte(t))
	}
}

// normaliseOID strips a leading dot and surrounding whitespace. Request and
// response OIDs are compared in the no-leading-dot form.
func normaliseOID(oid string) string {
	return strings.TrimPrefix(strings.TrimSpace(oid), ".")
}

// noopWriter discards log output when no logger is provided.
type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
