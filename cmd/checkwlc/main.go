// Command checkwlc is a monitoring probe for Cisco Wireless LAN Controllers.
//
// Each invocation performs one SNMP v2c round trip against the controller,
// derives a single health value for the selected category, classifies it
// against the warning/critical thresholds, and prints one plugin line:
//
//	checkwlc -H wlc01.example.com -m cpu -w 80 -c 90
//	cpu : 42|cpu=42;80;90
//
// Exit codes: 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN. Configuration and
// transport failures always exit 3.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vpbank/check_wlc/pkg/checkwlc/config"
	"github.com/vpbank/check_wlc/pkg/checkwlc/probe"
	"github.com/vpbank/check_wlc/snmp/fetcher"
)

// Version of release.
const Version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	// ── Flags ────────────────────────────────────────────────────────────
	var (
		host      string
		port      int
		community string
		timeoutS  int
		category  string
		warn      string
		crit      string
		verbose   bool
		defaults  string
		logLevel  string
		logFmt    string
		version   bool
	)

	flag.StringVar(&host, "H", "", "Controller address (required)")
	flag.IntVar(&port, "p", 0, "SNMP port (default 161)")
	flag.StringVar(&community, "C", "", "SNMP v2c community (default \"public\")")
	flag.IntVar(&timeoutS, "t", 0, "SNMP timeout in seconds (default 5)")
	flag.StringVar(&category, "m", "", "Check category: temperature|cpu|memory|clients|accesspoints (required)")
	flag.StringVar(&warn, "w", "", "Warning threshold; a trailing % is ignored (required)")
	flag.StringVar(&crit, "c", "", "Critical threshold; a trailing % is ignored (required)")
	flag.BoolVar(&verbose, "v", false, "Print fetched oid = value pairs before the check line")
	flag.StringVar(&defaults, "defaults", "", "Optional YAML defaults file (default: $"+config.DefaultsEnvVar+")")
	flag.StringVar(&logLevel, "log.level", "warn", "Log level: debug, info, warn, error")
	flag.StringVar(&logFmt, "log.fmt", "text", "Log format: json, text")
	flag.BoolVar(&version, "version", false, "Print the version and exit")

	flag.Parse()

	if version {
		fmt.Printf("checkwlc version %s\n", Version)
		return 3
	}

	// ── Logger ───────────────────────────────────────────────────────────
	// Logs go to stderr; stdout carries only the plugin output.
	logger, err := buildLogger(logLevel, logFmt)
	if err != nil {
		return usageError(err)
	}

	// ── Configuration ────────────────────────────────────────────────────
	defaultsPath := defaults
	if defaultsPath == "" {
		defaultsPath = config.DefaultsPathFromEnv()
	}
	d, err := config.LoadDefaults(defaultsPath)
	if err != nil {
		return usageError(err)
	}

	cfg, err := config.Resolve(config.Flags{
		Host:      host,
		Port:      port,
		Community: community,
		TimeoutS:  timeoutS,
		Category:  category,
		Warn:      warn,
		Crit:      crit,
		Verbose:   verbose,
	}, d)
	if err != nil {
		return usageError(err)
	}

	// ── Run the check ────────────────────────────────────────────────────
	f := fetcher.New(fetcher.Target{
		Host:      cfg.Host,
		Port:      cfg.Port,
		Community: cfg.Community,
		Timeout:   cfg.Timeout,
	}, logger)

	out := probe.Run(context.Background(), cfg, f, logger)

	if cfg.Verbose {
		for _, line := range out.VerboseLines {
			fmt.Println(line)
		}
	}
	fmt.Println(out.Line)
	return out.ExitCode
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// usageError reports a pre-pipeline failure: one UNKNOWN line on stdout for
// the scheduler, the usage text on stderr for the operator, exit code 3.
func usageError(err error) int {
	fmt.Printf("checkwlc UNKNOWN: %v\n", err)
	flag.Usage()
	return 3
}

func buildLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q (expected debug|info|warn|error)", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler

	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (expected json|text)", format)
	}

	return slog.New(handler), nil
}
