package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the fieldadmin CLI.
//
// Units: RequestTimeout is a time.Duration (e.g., 15*time.Second).
type Config struct {
	APIURL         string
	Production     bool
	LogHTTPHeaders bool
	LogHTTPBody    bool
	NoCache        bool
	StorageKind    string
	StoragePath    string
	RequestTimeout time.Duration
	LogFormat      string
	LogLevel       string
}

const appDir = "fieldadmin"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:3000/api"
	c.Production = false
	c.LogHTTPHeaders = false
	c.LogHTTPBody = false
	c.NoCache = false
	c.StorageKind = "sqlite"
	c.StoragePath = ""
	c.RequestTimeout = 15 * time.Second
	c.LogFormat = "text"
	c.LogLevel = "warn"
}

// SessionPath is StoragePath, or a file under the user's config directory
// named after the storage kind when StoragePath is empty.
func (c *Config) SessionPath() string {
	if c.StoragePath != "" {
		return c.StoragePath
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	name := "session.db"
	if c.StorageKind == "file" {
		name = "session.json"
	}
	return filepath.Join(base, appDir, name)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if -c is given) and command-line flags. Later sources take
// precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
