package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
	"github.com/dmitrijs2005/fieldadmin/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mint(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

type fakeAuthAPI struct {
	loginPair  models.TokenPair
	loginErr   error
	refresh    models.TokenPair
	refreshErr error
	registered []models.CustomerRegistration
	changed    []models.ChangePassword
}

func (f *fakeAuthAPI) Login(_ context.Context, username, password string) (models.TokenPair, error) {
	return f.loginPair, f.loginErr
}

func (f *fakeAuthAPI) RefreshTokens(context.Context, string) (models.TokenPair, error) {
	return f.refresh, f.refreshErr
}

func (f *fakeAuthAPI) RegisterCustomer(_ context.Context, reg models.CustomerRegistration) error {
	f.registered = append(f.registered, reg)
	return nil
}

func (f *fakeAuthAPI) ChangePassword(_ context.Context, cp models.ChangePassword) error {
	f.changed = append(f.changed, cp)
	return nil
}

func newAuth(t *testing.T, api *fakeAuthAPI) (AuthService, *session.Store, *storage.Memory) {
	t.Helper()
	st := storage.NewMemory()
	store := session.NewStore(st, api, nil)
	return NewAuthService(api, store, nil), store, st
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{loginPair: models.TokenPair{
		AccessToken:  mint(t, jwt.MapClaims{"username": "ana", "roles": []string{"Supervisor"}}),
		RefreshToken: "r1",
	}}
	svc, store, st := newAuth(t, api)

	id, err := svc.Login(ctx, " ana ", "secret")
	require.NoError(t, err)
	assert.Equal(t, session.Identity{Username: "ana", Roles: []string{"Supervisor"}}, id)
	assert.True(t, store.HasRole("supervisor"))

	rec, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.RefreshToken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		api  *fakeAuthAPI
	}{
		{"backend rejects", &fakeAuthAPI{loginErr: &client.APIError{Status: 401}}},
		{"no access token", &fakeAuthAPI{}},
		{"token without username", &fakeAuthAPI{loginPair: models.TokenPair{AccessToken: mint(t, jwt.MapClaims{"sub": "1"})}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newAuth(t, tt.api)
			_, err := svc.Login(ctx, "ana", "x")
			require.ErrorIs(t, err, client.ErrUnauthorized)
			_, ok := store.Identity()
			assert.False(t, ok)
		})
	}
}

func TestAuthService_RefreshFailureLogsOut(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{
		loginPair:  models.TokenPair{AccessToken: mint(t, jwt.MapClaims{"username": "ana"}), RefreshToken: "r1"},
		refreshErr: errors.New("boom"),
	}
	svc, store, st := newAuth(t, api)
	_, err := svc.Login(ctx, "ana", "x")
	require.NoError(t, err)

	err = svc.Refresh(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, ok := svc.Whoami()
	assert.False(t, ok)
	assert.Empty(t, store.AccessToken())
	rec, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Record{}, rec)
}

func TestAuthService_RefreshSuccess(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{
		loginPair: models.TokenPair{AccessToken: mint(t, jwt.MapClaims{"username": "ana"}), RefreshToken: "r1"},
		refresh:   models.TokenPair{AccessToken: mint(t, jwt.MapClaims{"username": "ana", "roles": []string{"Administrador"}})},
	}
	svc, store, st := newAuth(t, api)
	_, err := svc.Login(ctx, "ana", "x")
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(ctx))
	assert.True(t, store.HasRole("Administrador"))
	rec, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.RefreshToken, "refresh token kept when not rotated")
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{}
	svc, _, _ := newAuth(t, api)

	tests := []struct {
		name    string
		reg     models.CustomerRegistration
		confirm string
		wantErr bool
	}{
		{"short username", models.CustomerRegistration{Username: " ab ", Password: "secret1"}, "secret1", true},
		{"short password", models.CustomerRegistration{Username: "abc", Password: "12345"}, "12345", true},
		{"mismatch", models.CustomerRegistration{Username: "abc", Password: "secret1"}, "secret2", true},
		{"ok", models.CustomerRegistration{Username: "  Ferre.Sur ", Password: "secret1", Email: " VENTAS@Sur.com ", Name: " Ferretería Sur "}, "secret1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.reg, tt.confirm)
			if tt.wantErr {
				require.ErrorIs(t, err, client.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}

	require.Len(t, api.registered, 1)
	assert.Equal(t, models.CustomerRegistration{Username: "ferre.sur", Password: "secret1", Email: "ventas@sur.com", Name: "Ferretería Sur"}, api.registered[0])
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{loginPair: models.TokenPair{AccessToken: mint(t, jwt.MapClaims{"username": "ana"})}}
	svc, _, _ := newAuth(t, api)

	require.ErrorIs(t, svc.ChangePassword(ctx, "a", "b"), client.ErrUnauthorized)

	_, err := svc.Login(ctx, "ana", "x")
	require.NoError(t, err)
	require.ErrorIs(t, svc.ChangePassword(ctx, "", "b"), client.ErrValidation)
	require.NoError(t, svc.ChangePassword(ctx, "old", "new"))
	assert.Equal(t, []models.ChangePassword{{CurrentPassword: "old", NewPassword: "new"}}, api.changed)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{loginPair: models.TokenPair{AccessToken: mint(t, jwt.MapClaims{"username": "ana", "roles": []string{"Cliente"}})}}
	svc, store, _ := newAuth(t, api)
	_, err := svc.Login(ctx, "ana", "x")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	require.NoError(t, svc.Logout(ctx))
	assert.False(t, store.HasRole("Cliente"))
}
