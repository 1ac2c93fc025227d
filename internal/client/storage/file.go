package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
)

// File keeps the session record in a JSON file readable only by the owner.
// Save writes a temporary file and renames it over the old one, so a reader
// sees either the previous record or the new one.
type File struct {
	path string
}

var _ session.Storage = (*File)(nil)

type fileRecord struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	AuthUser     string `json:"authUser,omitempty"`
}

// NewFile returns a File storing at path, creating the parent directory.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &File{path: path}, nil
}

func (f *File) Load(ctx context.Context) (session.Record, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.Record{}, nil
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var fr fileRecord
	if err := json.Unmarshal(data, &fr); err != nil {
		return session.Record{}, fmt.Errorf("failed to unmarshal session file: %w", err)
	}
	return session.Record(fr), nil
}

func (f *File) Save(ctx context.Context, rec session.Record) error {
	data, err := json.MarshalIndent(fileRecord(rec), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (f *File) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}
