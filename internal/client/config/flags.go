package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/fieldadmin/internal/flagx"
)

var (
	valueFlags = []string{"-a", "-s", "-d", "-t", "-l", "-log-level"}
	boolFlags  = []string{"-p", "-log-headers", "-log-body", "-no-cache"}
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string      backend API base URL
//	-p             production mode: no HTTP debug logging, no cache busting
//	-log-headers   log HTTP request headers (outside production)
//	-log-body      log HTTP request and response bodies (outside production)
//	-no-cache      append _nc=<timestamp> to GET requests (outside production)
//	-s string      session storage: sqlite, file or memory
//	-d string      session storage path
//	-t int         request timeout in seconds
//	-l string      log format: text, json, zerolog or zap
//	-log-level     debug, info, warn or error
//
// args are filtered with flagx.FilterArgs first so flags owned by other
// parsers (-c) do not abort the parse.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, valueFlags, boolFlags)

	fs := flag.NewFlagSet("fieldadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend API base URL")
	fs.BoolVar(&cfg.Production, "p", cfg.Production, "production mode")
	fs.BoolVar(&cfg.LogHTTPHeaders, "log-headers", cfg.LogHTTPHeaders, "log HTTP headers")
	fs.BoolVar(&cfg.LogHTTPBody, "log-body", cfg.LogHTTPBody, "log HTTP bodies")
	fs.BoolVar(&cfg.NoCache, "no-cache", cfg.NoCache, "bust caches on GET")
	fs.StringVar(&cfg.StorageKind, "s", cfg.StorageKind, "session storage kind")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "session storage path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Only an explicit -t overrides, so a sub-second JSON value survives.
	var err error
	fs.Visit(func(f *flag.Flag) {
		if f.Name != "t" {
			return
		}
		if *timeout <= 0 {
			err = fmt.Errorf("parse flags: timeout must be positive, got %d", *timeout)
			return
		}
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	})
	return err
}
