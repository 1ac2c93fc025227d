package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fieldadmin/internal/flagx"
	"github.com/dmitrijs2005/fieldadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from a zero value, so a file only overrides
// what it names.
type JsonConfig struct {
	APIURL         *string         `json:"api_url"`
	Production     *bool           `json:"production"`
	LogHTTPHeaders *bool           `json:"log_http_headers"`
	LogHTTPBody    *bool           `json:"log_http_body"`
	NoCache        *bool           `json:"no_cache"`
	StorageKind    *string         `json:"storage_kind"`
	StoragePath    *string         `json:"storage_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogFormat      *string         `json:"log_format"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c or
// -config. Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	set(&cfg.APIURL, jc.APIURL)
	set(&cfg.Production, jc.Production)
	set(&cfg.LogHTTPHeaders, jc.LogHTTPHeaders)
	set(&cfg.LogHTTPBody, jc.LogHTTPBody)
	set(&cfg.NoCache, jc.NoCache)
	set(&cfg.StorageKind, jc.StorageKind)
	set(&cfg.StoragePath, jc.StoragePath)
	set(&cfg.LogFormat, jc.LogFormat)
	set(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
