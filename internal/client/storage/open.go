// Package storage provides the persisted homes of the client session: the
// local SQLite database, a JSON file, or process memory.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
)

// Storage kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindFile   = "file"
	KindMemory = "memory"
)

// Open builds the session storage of the given kind at path. The returned
// close function releases underlying resources and is never nil.
func Open(ctx context.Context, kind, path string) (session.Storage, func() error, error) {
	noop := func() error { return nil }

	switch kind {
	case KindSQLite, "":
		if err := ensureDir(path); err != nil {
			return nil, noop, err
		}
		db, err := InitDatabase(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return NewSQLite(db), db.Close, nil
	case KindFile:
		f, err := NewFile(path)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil
	case KindMemory:
		return NewMemory(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage kind %q", kind)
	}
}

// ensureDir creates the parent directory of a plain database file path.
// URI and in-memory DSNs are left to the driver.
func ensureDir(path string) error {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return nil
}
