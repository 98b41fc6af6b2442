// Package catalog maps each check category to the AIRESPACE MIB identifiers
// that must be fetched and to the shape of the SNMP request that retrieves
// them. It is the single place where category dispatch is resolved; the
// deriver and evaluator work from the resolved OidSpec and Category value,
// never from the raw category string.
package catalog

import (
	"fmt"

	"github.com/vpbank/check_wlc/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// AIRESPACE MIB object identifiers (Cisco Wireless LAN Controller)
// ─────────────────────────────────────────────────────────────────────────────

const (
	// OIDSensorTemperature is AIRESPACE-WIRELESS-MIB::bsnSensorTemperature —
	// internal temperature of the controller in °C.
	OIDSensorTemperature = ".1.3.6.1.4.1.14179.2.3.1.13.0"

	// OIDCPUUtilization is AIRESPACE-SWITCHING-MIB::agentCurrentCPUUtilization.
	OIDCPUUtilization = ".1.3.6.1.4.1.14179.1.3.1.3.0"

	// OIDMemTotal and OIDMemFree are AIRESPACE-SWITCHING-MIB::agentTotalMemory
	// and agentFreeMemory (kilobytes). The memory category needs both to
	// derive a used-percentage.
	OIDMemTotal = ".1.3.6.1.4.1.14179.1.3.2.1.0"
	OIDMemFree  = ".1.3.6.1.4.1.14179.1.3.2.2.0"

	// OIDApUserTable is AIRESPACE-WIRELESS-MIB::bsnApIfNoOfUsers — one row per
	// AP radio holding its associated-client count.
	OIDApUserTable = ".1.3.6.1.4.1.14179.2.2.2.1.15"

	// OIDApStatusTable is AIRESPACE-WIRELESS-MIB::bsnAPOperationStatus — one
	// row per access point; ApAssociated below marks a joined AP.
	OIDApStatusTable = ".1.3.6.1.4.1.14179.2.2.1.1.6"
)

// ApAssociated is the bsnAPOperationStatus code for an access point that is
// associated with the controller. Other codes (disassociating, downloading)
// do not count towards the accesspoints total.
const ApAssociated = 1

// ─────────────────────────────────────────────────────────────────────────────
// OidSpec
// ─────────────────────────────────────────────────────────────────────────────

// FetchShape selects the SNMP operation used to retrieve a category's values.
type FetchShape int

const (
	// ScalarFetch retrieves specifically named OIDs with a single Get.
	ScalarFetch FetchShape = iota

	// TableFetch enumerates every row under a base OID with a walk.
	TableFetch
)

// OidSpec describes what one category fetches: either an ordered list of
// scalar OIDs or a single table base OID, tagged with the request shape.
type OidSpec struct {
	Shape FetchShape

	// OIDs are the scalar identifiers, in catalog order. Empty for tables.
	OIDs []string

	// BaseOID is the table root to walk. Empty for scalars.
	BaseOID string
}

// ─────────────────────────────────────────────────────────────────────────────
// Resolve
// ─────────────────────────────────────────────────────────────────────────────

// Resolve returns the OidSpec for a category. It is total over the Category
// enumeration; a value outside it (which can only arise from a programming
// error upstream) returns an error rather than a silent default.
func Resolve(c models.Category) (OidSpec, error) {
	switch c {
	case models.Temperature:
		return OidSpec{Shape: ScalarFetch, OIDs: []string{OIDSensorTemperature}}, nil
	case models.CPU:
		return OidSpec{Shape: ScalarFetch, OIDs: []string{OIDCPUUtilization}}, nil
	case models.Memory:
		return OidSpec{Shape: ScalarFetch, OIDs: []string{OIDMemTotal, OIDMemFree}}, nil
	case models.Clients:
		return OidSpec{Shape: TableFetch, BaseOID: OIDApUserTable}, nil
	case models.AccessPoints:
		return OidSpec{Shape: TableFetch, BaseOID: OIDApStatusTable}, nil
	default:
		return OidSpec{}, fmt.Errorf("no OID mapping for category %v", c)
	}
}
