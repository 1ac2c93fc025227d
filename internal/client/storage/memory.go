package storage

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
)

// Memory keeps the session record in process memory only.
type Memory struct {
	mu  sync.Mutex
	rec session.Record
}

var _ session.Storage = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(context.Context) (session.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, nil
}

func (m *Memory) Save(_ context.Context, rec session.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = rec
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = session.Record{}
	return nil
}
