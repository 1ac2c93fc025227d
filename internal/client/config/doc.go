// Package config loads runtime configuration for the fieldadmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Every key is optional. request_timeout uses timex.Duration, so it can be
// a string like "15s" or integer nanoseconds:
//
//	{
//	  "api_url": "https://gestion.example.com/api",
//	  "production": true,
//	  "log_http_headers": false,
//	  "log_http_body": false,
//	  "no_cache": false,
//	  "storage_kind": "sqlite",
//	  "storage_path": "/home/ana/.config/fieldadmin/session.db",
//	  "request_timeout": "15s",
//	  "log_format": "json",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
