// Package derive reduces the raw values of one SNMP fetch to the single
// integer the thresholds are compared against. The reduction rule is selected
// by category: scalars pass through, memory becomes a used-percentage, tables
// collapse to a sum or a filtered row count.
package derive

import (
	"fmt"

	"github.com/vpbank/check_wlc/models"
	"github.com/vpbank/check_wlc/pkg/checkwlc/catalog"
)

// ErrZeroTotalMemory is returned when the controller reports zero total
// memory. The original tool would have divided by zero here; the probe
// reports the condition as UNKNOWN instead of guessing a value.
var ErrZeroTotalMemory = fmt.Errorf("total memory is zero, cannot derive used percentage")

// Derive computes the check value for a category from the fetch result. It
// is a pure function: identical inputs always produce identical outputs.
//
// Rules per category:
//
//	temperature, cpu  → the single scalar value
//	memory            → floor((total-free)/total*100); total of 0 is an error
//	clients           → sum of all table rows (clients per AP radio)
//	accesspoints      → count of rows whose status equals ApAssociated
func Derive(c models.Category, result models.QueryResult, spec catalog.OidSpec) (int64, error) {
	switch c {
	case models.Temperature, models.CPU:
		return scalarValue(result, spec)

	case models.Memory:
		total, ok := result[catalog.OIDMemTotal]
		if !ok {
			return 0, fmt.Errorf("result is missing %s (total memory)", catalog.OIDMemTotal)
		}
		free, ok := result[catalog.OIDMemFree]
		if !ok {
			return 0, fmt.Errorf("result is missing %s (free memory)", catalog.OIDMemFree)
		}
		if total == 0 {
			return 0, ErrZeroTotalMemory
		}
		return (total - free) * 100 / total, nil

	case models.Clients:
		var sum int64
		for _, v := range result {
			sum += v
		}
		return sum, nil

	case models.AccessPoints:
		var count int64
		for _, v := range result {
			if v == catalog.ApAssociated {
				count++
			}
		}
		return count, nil

	default:
		return 0, fmt.Errorf("no derivation rule for category %v", c)
	}
}

// scalarValue extracts the one value a single-OID scalar category fetched.
func scalarValue(result models.QueryResult, spec catalog.OidSpec) (int64, error) {
	if len(spec.OIDs) != 1 {
		return 0, fmt.Errorf("scalar category resolved to %d OIDs, want 1", len(spec.OIDs))
	}
	v, ok := result[spec.OIDs[0]]
	if !ok {
		return 0, fmt.Errorf("result is missing %s", spec.OIDs[0])
	}
	return v, nil
}
