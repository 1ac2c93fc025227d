package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
)

type call struct {
	method string
	path   string
	query  url.Values
	body   any
}

// fakeBackend answers from canned JSON-able values keyed "METHOD /path" and
// records every call. It is safe for concurrent use.
type fakeBackend struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]any
	errs      map[string]error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{responses: map[string]any{}, errs: map[string]error{}}
}

func (f *fakeBackend) record(c call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

// find returns the first recorded call with the given method and path.
func (f *fakeBackend) find(method, path string) (call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.method == method && c.path == path {
			return c, true
		}
	}
	return call{}, false
}

func (f *fakeBackend) answer(key string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[key]; err != nil {
		return err
	}
	v, ok := f.responses[key]
	if !ok || out == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeBackend) Get(_ context.Context, path string, query url.Values, out any) error {
	f.record(call{method: "GET", path: path, query: query})
	return f.answer("GET "+path, out)
}

func (f *fakeBackend) Post(_ context.Context, path string, body, out any) error {
	f.record(call{method: "POST", path: path, body: body})
	return f.answer("POST "+path, out)
}

func (f *fakeBackend) Patch(_ context.Context, path string, body, out any) error {
	f.record(call{method: "PATCH", path: path, body: body})
	return f.answer("PATCH "+path, out)
}

func (f *fakeBackend) Delete(_ context.Context, path string) error {
	f.record(call{method: "DELETE", path: path})
	return f.answer("DELETE "+path, nil)
}

func (f *fakeBackend) keys() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.method+" "+c.path)
	}
	return out
}

func as(roles ...string) session.Identity {
	return session.Identity{Username: "u", Roles: roles}
}
