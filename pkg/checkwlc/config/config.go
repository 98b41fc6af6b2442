// Package config builds the immutable per-invocation configuration of the
// probe. Values come from command-line flags, optionally backed by a
// site-wide YAML defaults file, and are validated once here; the rest of the
// pipeline receives a fully-resolved Probe value and no ambient state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vpbank/check_wlc/models"
)

// Built-in fallbacks, used when neither a flag nor the defaults file supplies
// a value.
const (
	DefaultPort      = 161
	DefaultCommunity = "public"
	DefaultTimeout   = 5 * time.Second
)

// DefaultsEnvVar names the defaults file when the -defaults flag is absent.
const DefaultsEnvVar = "CHECK_WLC_DEFAULTS"

// ─────────────────────────────────────────────────────────────────────────────
// Probe — resolved invocation configuration
// ─────────────────────────────────────────────────────────────────────────────

// Probe is the fully-resolved configuration for one check invocation. It is
// constructed once by Resolve and never mutated afterwards.
type Probe struct {
	Host       string
	Port       uint16
	Community  string
	Timeout    time.Duration
	Category   models.Category
	Thresholds models.Thresholds
	Verbose    bool
}

// Flags carries the raw command-line values before resolution. Zero values
// mean "not supplied" and fall through to the defaults file, then to the
// built-in fallbacks.
type Flags struct {
	Host      string
	Port      int
	Community string
	TimeoutS  int
	Category  string
	Warn      string
	Crit      string
	Verbose   bool
}

// Resolve merges flags over the defaults file and validates the result.
// Host, category, and both thresholds are mandatory; everything else has a
// fallback.
func Resolve(f Flags, d Defaults) (Probe, error) {
	if f.Host == "" {
		return Probe{}, fmt.Errorf("host is required")
	}

	cat, err := models.ParseCategory(f.Category)
	if err != nil {
		return Probe{}, err
	}

	thresholds, err := ParseThresholds(f.Warn, f.Crit)
	if err != nil {
		return Probe{}, err
	}

	port := f.Port
	if port == 0 {
		port = d.Port
	}
	if port == 0 {
		port = DefaultPort
	}
	if port < 1 || port > 65535 {
		return Probe{}, fmt.Errorf("port %d out of range", port)
	}

	community := f.Community
	if community == "" {
		community = d.Community
	}
	if community == "" {
		community = DefaultCommunity
	}

	timeout := time.Duration(f.TimeoutS) * time.Second
	if timeout == 0 {
		timeout = time.Duration(d.TimeoutSeconds) * time.Second
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return Probe{
		Host:       f.Host,
		Port:       uint16(port),
		Community:  community,
		Timeout:    timeout,
		Category:   cat,
		Thresholds: thresholds,
		Verbose:    f.Verbose,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Thresholds
// ─────────────────────────────────────────────────────────────────────────────

// ParseThresholds parses the warning/critical pair. A trailing '%' on either
// value is cosmetic and stripped before parsing. Supplying only one of the
// two is an error: the evaluator's policies need both.
func ParseThresholds(warn, crit string) (models.Thresholds, error) {
	var zero models.Thresholds
	if warn == "" || crit == "" {
		return zero, fmt.Errorf("both warning and critical thresholds are required")
	}

	w, err := parseThreshold(warn)
	if err != nil {
		return zero, fmt.Errorf("warning threshold: %w", err)
	}
	c, err := parseThreshold(crit)
	if err != nil {
		return zero, fmt.Errorf("critical threshold: %w", err)
	}
	return models.Thresholds{Warn: w, Crit: c}, nil
}

func parseThreshold(s string) (int64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Defaults file
// ─────────────────────────────────────────────────────────────────────────────

// Defaults is the parsed form of the optional site-wide defaults file. Every
// field is optional; zero values are ignored during resolution.
type Defaults struct {
	Community      string `yaml:"community"`
	Port           int    `yaml:"port"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DefaultsPathFromEnv returns the defaults file named by CHECK_WLC_DEFAULTS,
// or "" when the variable is unset.
func DefaultsPathFromEnv() string {
	return os.Getenv(DefaultsEnvVar)
}

// LoadDefaults reads and decodes the defaults file. An empty path returns
// zero Defaults — running without a defaults file is the common case.
func LoadDefaults(path string) (Defaults, error) {
	var d Defaults
	if path == "" {
		return d, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read defaults file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse defaults file %q: %w", path, err)
	}
	return d, nil
}
