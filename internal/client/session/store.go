package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/dmitrijs2005/fieldadmin/internal/logging"
)

// TokenIssuer exchanges a refresh token for a new token pair.
type TokenIssuer interface {
	RefreshTokens(ctx context.Context, refreshToken string) (models.TokenPair, error)
}

// Store holds the current Identity and keeps it in sync with Storage.
type Store struct {
	storage Storage
	issuer  TokenIssuer
	log     logging.Logger

	// writeMu serializes persist-then-swap sequences; mu only guards the
	// in-memory fields so readers are never blocked by storage I/O.
	writeMu sync.Mutex

	mu          sync.RWMutex
	identity    *Identity
	accessToken string
}

// NewStore returns a Store with no Identity. Call RestoreOnStartup to load a
// persisted session. issuer may be nil, in which case Refresh always fails.
func NewStore(storage Storage, issuer TokenIssuer, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{storage: storage, issuer: issuer, log: log.With("component", "session")}
}

// RestoreOnStartup loads the persisted Identity, or derives it from the
// persisted access token when only the token survived. Malformed or missing
// data leaves the Store unauthenticated; nothing is returned because that is
// a normal outcome.
func (s *Store) RestoreOnStartup(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rec, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "session storage unreadable, starting unauthenticated", "error", err)
		return
	}

	if rec.AuthUser != "" {
		if id, ok := parseAuthUser(rec.AuthUser); ok {
			s.swap(&id, rec.AccessToken)
			s.log.Debug(ctx, "session restored", "username", id.Username)
			return
		}
		s.log.Warn(ctx, "discarding malformed persisted identity")
	}

	if rec.AccessToken == "" {
		return
	}

	id, ok := IdentityFromToken(rec.AccessToken)
	if !ok {
		s.log.Debug(ctx, "persisted access token carries no identity")
		return
	}

	rec.AuthUser = encodeAuthUser(id)
	if err := s.storage.Save(ctx, rec); err != nil {
		s.log.Error(ctx, "persisting derived identity failed", "error", err)
	}
	s.swap(&id, rec.AccessToken)
	s.log.Debug(ctx, "session derived from access token", "username", id.Username)
}

// SetSession derives the Identity from accessToken, persists the token pair
// and the Identity, and replaces the held Identity. An empty refreshToken
// keeps the previously persisted one.
//
// It reports whether an Identity was established. An empty access token, or
// one whose payload does not decode to a username, changes nothing.
func (s *Store) SetSession(ctx context.Context, accessToken, refreshToken string) bool {
	if accessToken == "" {
		return false
	}

	id, ok := IdentityFromToken(accessToken)
	if !ok {
		s.log.Warn(ctx, "access token payload has no username, session unchanged")
		return false
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rec := Record{AccessToken: accessToken, RefreshToken: refreshToken, AuthUser: encodeAuthUser(id)}
	if refreshToken == "" {
		if prev, err := s.storage.Load(ctx); err == nil {
			rec.RefreshToken = prev.RefreshToken
		}
	}

	if err := s.storage.Save(ctx, rec); err != nil {
		s.log.Error(ctx, "persisting session failed, it will not survive a restart", "error", err)
	}

	s.swap(&id, accessToken)
	s.log.Info(ctx, "session established", "username", id.Username, "roles", id.Roles)
	return true
}

// Logout drops the held Identity and clears persisted tokens and Identity.
// It is idempotent. The in-memory session is cleared even if storage fails.
func (s *Store) Logout(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.swap(nil, "")
	if err := s.storage.Clear(ctx); err != nil {
		s.log.Error(ctx, "clearing persisted session failed", "error", err)
		return err
	}
	return nil
}

// Refresh exchanges the persisted refresh token for a new pair and applies it
// with SetSession. Any failure returns false and leaves the session as it was.
// The network round trip happens without holding any lock, so concurrent
// readers keep seeing the previous Identity until the new one is swapped in.
func (s *Store) Refresh(ctx context.Context) bool {
	if s.issuer == nil {
		return false
	}

	rec, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "refresh: session storage unreadable", "error", err)
		return false
	}
	if rec.RefreshToken == "" {
		s.log.Debug(ctx, "refresh: no refresh token")
		return false
	}

	pair, err := s.issuer.RefreshTokens(ctx, rec.RefreshToken)
	if err != nil {
		s.log.Warn(ctx, "refresh rejected", "error", err)
		return false
	}
	if pair.AccessToken == "" {
		s.log.Warn(ctx, "refresh response without access token")
		return false
	}

	return s.SetSession(ctx, pair.AccessToken, pair.RefreshToken)
}

// Identity returns a copy of the held Identity.
func (s *Store) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return s.identity.clone(), true
}

// HasRole reports whether the held Identity has role under NormalizeRole.
// It is false when no Identity is held.
func (s *Store) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return false
	}
	return s.identity.HasRole(role)
}

// HasAnyRole reports whether HasRole holds for at least one of roles.
func (s *Store) HasAnyRole(roles ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return false
	}
	return s.identity.HasAnyRole(roles...)
}

// AccessToken returns the access token of the held session, or "".
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Store) swap(id *Identity, accessToken string) {
	s.mu.Lock()
	s.identity = id
	s.accessToken = accessToken
	s.mu.Unlock()
}

func encodeAuthUser(id Identity) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func parseAuthUser(raw string) (Identity, bool) {
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil || id.Username == "" {
		return Identity{}, false
	}
	if id.Roles == nil {
		id.Roles = []string{}
	}
	return id, true
}
