// Package models defines the core data structures shared across all layers of
// the WLC check probe. These types represent the canonical in-memory form of
// one check invocation; every other package depends on this package and
// nothing here depends on any other internal package.
package models

import (
	"fmt"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Category
// ─────────────────────────────────────────────────────────────────────────────

// Category identifies which controller health metric a single invocation
// checks. It is resolved once from the command line and never re-matched as a
// string downstream.
type Category int

const (
	// Temperature is the controller's internal sensor temperature in °C.
	Temperature Category = iota

	// CPU is the controller's current CPU utilisation percentage.
	CPU

	// Memory is the controller's used-memory percentage, derived from the
	// total and free memory scalars.
	Memory

	// Clients is the total number of wireless clients associated across all
	// access points joined to the controller.
	Clients

	// AccessPoints is the number of access points currently associated with
	// the controller.
	AccessPoints
)

// categoryNames maps each Category to its command-line spelling.
var categoryNames = map[Category]string{
	Temperature:  "temperature",
	CPU:          "cpu",
	Memory:       "memory",
	Clients:      "clients",
	AccessPoints: "accesspoints",
}

// ParseCategory converts a command-line category name into a Category.
// Matching is case-insensitive. Unknown names return an error; there is no
// default category.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q (expected temperature|cpu|memory|clients|accesspoints)", s)
}

// String returns the command-line spelling of the category. It is also the
// label used in the output line and performance data.
func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ─────────────────────────────────────────────────────────────────────────────
// Severity
// ─────────────────────────────────────────────────────────────────────────────

// Severity is the four-level check outcome consumed by the invoking
// scheduler. The numeric values are the plugin exit codes and must not be
// reordered.
type Severity int

const (
	OK       Severity = 0
	Warning  Severity = 1
	Critical Severity = 2
	Unknown  Severity = 3
)

// Label returns the severity text used in the output line. OK maps to the
// empty string: the original tool printed no label for a healthy check and
// downstream parsers depend on that shape.
func (s Severity) Label() string {
	switch s {
	case OK:
		return ""
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the process exit code for this severity.
func (s Severity) ExitCode() int {
	if s < OK || s > Unknown {
		return int(Unknown)
	}
	return int(s)
}

// ─────────────────────────────────────────────────────────────────────────────
// QueryResult
// ─────────────────────────────────────────────────────────────────────────────

// QueryResult is the outcome of one SNMP fetch: OID → numeric value. For
// scalar fetches it contains exactly the requested OIDs, keyed by the OID
// string as requested; for table fetches it contains zero or more rows keyed
// by the row OID as returned by the walk.
type QueryResult map[string]int64

// ─────────────────────────────────────────────────────────────────────────────
// Thresholds
// ─────────────────────────────────────────────────────────────────────────────

// Thresholds is the warning/critical pair for one invocation. Both values are
// always present together; partial thresholds are rejected during config
// parsing.
type Thresholds struct {
	Warn int64
	Crit int64
}
