package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeStorage struct {
	mu       sync.Mutex
	rec      Record
	loadErr  error
	saveErr  error
	clearErr error
	saves    int
}

func (f *fakeStorage) Load(context.Context) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rec, f.loadErr
}

func (f *fakeStorage) Save(_ context.Context, r Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rec = r
	f.saves++
	return nil
}

func (f *fakeStorage) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	f.rec = Record{}
	return nil
}

func (f *fakeStorage) record() Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rec
}

type fakeIssuer struct {
	pair    models.TokenPair
	err     error
	calls   int
	lastRT  string
	release chan struct{}
	entered chan struct{}
}

func (f *fakeIssuer) RefreshTokens(ctx context.Context, rt string) (models.TokenPair, error) {
	f.calls++
	f.lastRT = rt
	if f.entered != nil {
		close(f.entered)
	}
	if f.release != nil {
		<-f.release
	}
	return f.pair, f.err
}

func token(t *testing.T, username string, roles ...string) string {
	t.Helper()
	claims := jwt.MapClaims{"username": username}
	if roles != nil {
		claims["roles"] = roles
	}
	return signToken(t, claims)
}

// ---- SetSession ----

func TestSetSession_DerivesIdentityAndPersists(t *testing.T) {
	st := &fakeStorage{}
	s := NewStore(st, nil, nil)
	ctx := context.Background()

	access := token(t, "ana", "Administrador")
	require.True(t, s.SetSession(ctx, access, "rt-1"))

	id, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, Identity{Username: "ana", Roles: []string{"Administrador"}}, id)
	assert.Equal(t, access, s.AccessToken())

	rec := st.record()
	assert.Equal(t, access, rec.AccessToken)
	assert.Equal(t, "rt-1", rec.RefreshToken)
	assert.JSONEq(t, `{"username":"ana","roles":["Administrador"]}`, rec.AuthUser)
}

func TestSetSession_EmptyTokenIsNoop(t *testing.T) {
	st := &fakeStorage{}
	s := NewStore(st, nil, nil)
	ctx := context.Background()

	require.True(t, s.SetSession(ctx, token(t, "ana", "Supervisor"), "rt"))
	before := st.record()

	assert.False(t, s.SetSession(ctx, "", "other-rt"))

	id, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, "ana", id.Username)
	assert.Equal(t, before, st.record())
}

func TestSetSession_UndecodableTokenCreatesNoIdentity(t *testing.T) {
	for _, bad := range []string{"garbage", "a..b", "a.%%%.b", rawToken("[1,2]"), token(t, "")} {
		t.Run(bad, func(t *testing.T) {
			st := &fakeStorage{}
			s := NewStore(st, nil, nil)

			assert.False(t, s.SetSession(context.Background(), bad, "rt"))

			_, ok := s.Identity()
			assert.False(t, ok)
			assert.Equal(t, Record{}, st.record())
			assert.Zero(t, st.saves)
		})
	}
}

func TestSetSession_KeepsPreviousRefreshTokenWhenOmitted(t *testing.T) {
	st := &fakeStorage{}
	s := NewStore(st, nil, nil)
	ctx := context.Background()

	require.True(t, s.SetSession(ctx, token(t, "ana"), "rt-1"))
	require.True(t, s.SetSession(ctx, token(t, "ana", "Cliente"), ""))

	assert.Equal(t, "rt-1", st.record().RefreshToken)
	assert.True(t, s.HasRole("cliente"))
}

func TestSetSession_ReplacesIdentityWholesale(t *testing.T) {
	s := NewStore(&fakeStorage{}, nil, nil)
	ctx := context.Background()

	require.True(t, s.SetSession(ctx, token(t, "ana", "Administrador", "Supervisor"), "rt"))
	require.True(t, s.SetSession(ctx, token(t, "luis", "Tecnico"), "rt2"))

	id, _ := s.Identity()
	assert.Equal(t, Identity{Username: "luis", Roles: []string{"Tecnico"}}, id)
	assert.False(t, s.HasRole("Administrador"))
}

func TestSetSession_StorageFailureStillHoldsIdentity(t *testing.T) {
	s := NewStore(&fakeStorage{saveErr: errors.New("disk full")}, nil, nil)

	require.True(t, s.SetSession(context.Background(), token(t, "ana", "Cliente"), "rt"))
	assert.True(t, s.HasRole("Cliente"))
}

func TestIdentity_ReturnsCopy(t *testing.T) {
	s := NewStore(&fakeStorage{}, nil, nil)
	require.True(t, s.SetSession(context.Background(), token(t, "ana", "Cliente"), ""))

	id, _ := s.Identity()
	id.Roles[0] = "Administrador"

	assert.False(t, s.HasRole("Administrador"))
}

// ---- HasRole ----

func TestHasRole_NormalizedComparison(t *testing.T) {
	s := NewStore(&fakeStorage{}, nil, nil)
	require.True(t, s.SetSession(context.Background(), token(t, "tec", "Técnico"), ""))

	assert.True(t, s.HasRole("tecnico"))
	assert.True(t, s.HasRole("TECNICO"))
	assert.True(t, s.HasRole("Técnico"))
	assert.False(t, s.HasRole("tecnica"))

	assert.True(t, s.HasAnyRole("Administrador", "Tecnico"))
	assert.False(t, s.HasAnyRole("Administrador", "Supervisor"))
	assert.False(t, s.HasAnyRole())
}

func TestHasRole_FalseWithoutIdentity(t *testing.T) {
	s := NewStore(&fakeStorage{}, nil, nil)
	assert.False(t, s.HasRole("Administrador"))
	assert.False(t, s.HasRole(""))
}

// ---- Logout ----

func TestLogout_ClearsEverythingAndIsIdempotent(t *testing.T) {
	st := &fakeStorage{}
	s := NewStore(st, nil, nil)
	ctx := context.Background()

	require.True(t, s.SetSession(ctx, token(t, "ana", "Administrador"), "rt"))

	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))

	_, ok := s.Identity()
	assert.False(t, ok)
	assert.False(t, s.HasRole("Administrador"))
	assert.Empty(t, s.AccessToken())
	assert.Equal(t, Record{}, st.record())
}

func TestLogout_StorageErrorStillDropsIdentity(t *testing.T) {
	st := &fakeStorage{clearErr: errors.New("locked")}
	s := NewStore(st, nil, nil)
	require.True(t, s.SetSession(context.Background(), token(t, "ana", "Cliente"), ""))

	require.Error(t, s.Logout(context.Background()))

	_, ok := s.Identity()
	assert.False(t, ok)
}

// ---- RestoreOnStartup ----

func TestRestoreOnStartup_LoadsPersistedIdentityVerbatim(t *testing.T) {
	st := &fakeStorage{rec: Record{
		AccessToken: "opaque",
		AuthUser:    `{"username":"ana","roles":["Supervisor"]}`,
	}}
	s := NewStore(st, nil, nil)

	s.RestoreOnStartup(context.Background())

	id, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, Identity{Username: "ana", Roles: []string{"Supervisor"}}, id)
	assert.Equal(t, "opaque", s.AccessToken())
	assert.Zero(t, st.saves, "verbatim load must not rewrite storage")
}

func TestRestoreOnStartup_DerivesFromTokenAndPersists(t *testing.T) {
	access := token(t, "luis", "Cliente")
	st := &fakeStorage{rec: Record{AccessToken: access, RefreshToken: "rt"}}
	s := NewStore(st, nil, nil)

	s.RestoreOnStartup(context.Background())

	id, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, Identity{Username: "luis", Roles: []string{"Cliente"}}, id)

	rec := st.record()
	assert.JSONEq(t, `{"username":"luis","roles":["Cliente"]}`, rec.AuthUser)
	assert.Equal(t, access, rec.AccessToken)
	assert.Equal(t, "rt", rec.RefreshToken)
}

func TestRestoreOnStartup_TokenWithoutRolesGetsEmptyRoles(t *testing.T) {
	st := &fakeStorage{rec: Record{AccessToken: token(t, "luis")}}
	s := NewStore(st, nil, nil)

	s.RestoreOnStartup(context.Background())

	id, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, []string{}, id.Roles)
	assert.JSONEq(t, `{"username":"luis","roles":[]}`, st.record().AuthUser)
}

func TestRestoreOnStartup_MalformedIdentityFallsBackToToken(t *testing.T) {
	st := &fakeStorage{rec: Record{AccessToken: token(t, "luis", "Tecnico"), AuthUser: "{not json"}}
	s := NewStore(st, nil, nil)

	s.RestoreOnStartup(context.Background())

	id, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, "luis", id.Username)
}

func TestRestoreOnStartup_NothingUsable(t *testing.T) {
	tests := []struct {
		name string
		st   *fakeStorage
	}{
		{"empty storage", &fakeStorage{}},
		{"undecodable token", &fakeStorage{rec: Record{AccessToken: "x.y"}}},
		{"malformed identity, no token", &fakeStorage{rec: Record{AuthUser: "[]"}}},
		{"identity without username", &fakeStorage{rec: Record{AuthUser: `{"roles":["Administrador"]}`}}},
		{"storage error", &fakeStorage{loadErr: errors.New("corrupt")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(tt.st, nil, nil)
			require.NotPanics(t, func() { s.RestoreOnStartup(context.Background()) })

			_, ok := s.Identity()
			assert.False(t, ok)
			assert.False(t, s.HasRole("Administrador"))
		})
	}
}

func TestRestoreOnStartup_RoundTripAfterSetSession(t *testing.T) {
	st := &fakeStorage{}
	ctx := context.Background()

	first := NewStore(st, nil, nil)
	require.True(t, first.SetSession(ctx, token(t, "ana", "Administrador", "Técnico"), "rt"))
	want, _ := first.Identity()

	reloaded := NewStore(st, nil, nil)
	reloaded.RestoreOnStartup(ctx)

	got, ok := reloaded.Identity()
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, first.AccessToken(), reloaded.AccessToken())
}

// ---- Refresh ----

func TestRefresh_Success(t *testing.T) {
	st := &fakeStorage{}
	newAccess := token(t, "ana", "Supervisor")
	iss := &fakeIssuer{pair: models.TokenPair{AccessToken: newAccess, RefreshToken: "rt-2"}}
	s := NewStore(st, iss, nil)
	ctx := context.Background()

	require.True(t, s.SetSession(ctx, token(t, "ana", "Cliente"), "rt-1"))
	require.True(t, s.Refresh(ctx))

	assert.Equal(t, "rt-1", iss.lastRT)
	assert.True(t, s.HasRole("Supervisor"))
	assert.False(t, s.HasRole("Cliente"))
	assert.Equal(t, newAccess, st.record().AccessToken)
	assert.Equal(t, "rt-2", st.record().RefreshToken)
}

func TestRefresh_Failures(t *testing.T) {
	tests := []struct {
		name     string
		rt       string
		issuer   *fakeIssuer
		nilIss   bool
		loadErr  error
		wantCall bool
	}{
		{name: "no refresh token", rt: "", issuer: &fakeIssuer{}},
		{name: "issuer rejects", rt: "rt", issuer: &fakeIssuer{err: errors.New("401")}, wantCall: true},
		{name: "response without access token", rt: "rt", issuer: &fakeIssuer{pair: models.TokenPair{RefreshToken: "x"}}, wantCall: true},
		{name: "access token without identity", rt: "rt", issuer: &fakeIssuer{pair: models.TokenPair{AccessToken: "bad"}}, wantCall: true},
		{name: "no issuer configured", rt: "rt", nilIss: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &fakeStorage{}
			var iss TokenIssuer
			if !tt.nilIss {
				iss = tt.issuer
			}
			s := NewStore(st, iss, nil)
			ctx := context.Background()

			access := token(t, "ana", "Cliente")
			require.True(t, s.SetSession(ctx, access, tt.rt))
			before := st.record()

			assert.False(t, s.Refresh(ctx))

			if tt.issuer != nil {
				assert.Equal(t, tt.wantCall, tt.issuer.calls > 0)
			}
			// The session is left for the caller to deal with.
			assert.True(t, s.HasRole("Cliente"))
			assert.Equal(t, before, st.record())
		})
	}
}

func TestRefresh_StorageErrorFails(t *testing.T) {
	iss := &fakeIssuer{}
	s := NewStore(&fakeStorage{loadErr: errors.New("io")}, iss, nil)

	assert.False(t, s.Refresh(context.Background()))
	assert.Zero(t, iss.calls)
}

func TestRefresh_ReadersSeePreviousIdentityWhileInFlight(t *testing.T) {
	st := &fakeStorage{}
	iss := &fakeIssuer{
		pair:    models.TokenPair{AccessToken: token(t, "ana", "Administrador")},
		release: make(chan struct{}),
		entered: make(chan struct{}),
	}
	s := NewStore(st, iss, nil)
	ctx := context.Background()
	require.True(t, s.SetSession(ctx, token(t, "ana", "Cliente"), "rt"))

	done := make(chan bool)
	go func() { done <- s.Refresh(ctx) }()

	select {
	case <-iss.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh never reached the issuer")
	}

	assert.True(t, s.HasRole("Cliente"))
	assert.False(t, s.HasRole("Administrador"))

	close(iss.release)
	require.True(t, <-done)

	assert.True(t, s.HasRole("Administrador"))
	assert.False(t, s.HasRole("Cliente"))
}

func TestStore_ConcurrentUse(t *testing.T) {
	s := NewStore(&fakeStorage{}, nil, nil)
	ctx := context.Background()
	tokens := []string{token(t, "a", "Cliente"), token(t, "b", "Tecnico")}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.SetSession(ctx, tokens[i%2], "")
		}(i)
		go func() {
			defer wg.Done()
			if id, ok := s.Identity(); ok {
				// Whichever session won, username and roles belong together.
				if id.Username == "a" {
					assert.Equal(t, []string{"Cliente"}, id.Roles)
				} else {
					assert.Equal(t, []string{"Tecnico"}, id.Roles)
				}
			}
		}()
	}
	wg.Wait()
}
