// Package evaluate classifies a derived check value against the
// warning/critical thresholds. The comparison direction depends on the
// category: for most metrics a higher value is worse, but for the
// accesspoints count a lower value is worse, so the policy is inverted.
package evaluate

import "github.com/vpbank/check_wlc/models"

// Evaluate maps a derived value and its thresholds to a severity. It is a
// pure classification and never returns Unknown — configuration and
// transport failures are classified by the caller, not here.
//
// Standard policy (temperature, cpu, memory, clients — higher is worse):
//
//	value > crit → Critical
//	value > warn → Warning
//	otherwise    → OK
//
// Inverted policy (accesspoints — fewer associated APs is a degraded state):
//
//	value > warn → OK
//	value > crit → Warning
//	otherwise    → Critical
//
// The inverted policy assumes warn > crit numerically. Callers supplying
// warn <= crit for accesspoints get deterministic but ill-defined results;
// the ordering is a caller contract and is not validated here.
func Evaluate(value int64, t models.Thresholds, c models.Category) models.Severity {
	if c == models.AccessPoints {
		switch {
		case value > t.Warn:
			return models.OK
		case value > t.Crit:
			return models.Warning
		default:
			return models.Critical
		}
	}

	switch {
	case value > t.Crit:
		return models.Critical
	case value > t.Warn:
		return models.Warning
	default:
		return models.OK
	}
}
