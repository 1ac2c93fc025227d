package services

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
)

// Backend is the generic REST surface of client.API.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// AuthBackend is the token-issuing part of client.API.
type AuthBackend interface {
	Login(ctx context.Context, username, password string) (models.TokenPair, error)
	RegisterCustomer(ctx context.Context, reg models.CustomerRegistration) error
	ChangePassword(ctx context.Context, cp models.ChangePassword) error
}

// Session is what services need from the session Store.
type Session interface {
	SetSession(ctx context.Context, accessToken, refreshToken string) bool
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) bool
	Identity() (session.Identity, bool)
	HasRole(role string) bool
}
