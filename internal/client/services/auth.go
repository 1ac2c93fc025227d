// Package services contains application services for the fieldadmin
// client. They combine the REST client with the session Store and decide,
// ahead of the backend, which actions the current roles may attempt.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
	"github.com/dmitrijs2005/fieldadmin/internal/logging"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// AuthService covers the session lifecycle as seen by the user.
//
// Contract:
//   - Login: exchange credentials for tokens and establish the session.
//   - Logout: drop the session locally.
//   - Refresh: renew tokens; on failure the session is logged out.
//   - Register: public customer self-registration.
//   - ChangePassword: change the authenticated user's password.
//   - Whoami: the current Identity, if any.
type AuthService interface {
	Login(ctx context.Context, username, password string) (session.Identity, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	Register(ctx context.Context, reg models.CustomerRegistration, confirm string) error
	ChangePassword(ctx context.Context, current, next string) error
	Whoami() (session.Identity, bool)
}

type authService struct {
	api     AuthBackend
	session Session
	log     logging.Logger
}

func NewAuthService(api AuthBackend, s Session, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{api: api, session: s, log: log.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, username, password string) (session.Identity, error) {
	pair, err := a.api.Login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return session.Identity{}, err
	}
	if pair.AccessToken == "" {
		return session.Identity{}, fmt.Errorf("%w: login response without access token", client.ErrUnauthorized)
	}
	if !a.session.SetSession(ctx, pair.AccessToken, pair.RefreshToken) {
		return session.Identity{}, fmt.Errorf("%w: access token carries no identity", client.ErrUnauthorized)
	}

	id, _ := a.session.Identity()
	return id, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// Refresh renews the token pair. When that fails the session is logged out
// and the result wraps client.ErrUnauthorized.
func (a *authService) Refresh(ctx context.Context) error {
	if a.session.Refresh(ctx) {
		return nil
	}
	a.log.Info(ctx, "refresh failed, logging out")
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("%w: session expired, logout failed: %w", client.ErrUnauthorized, err)
	}
	return fmt.Errorf("%w: session expired", client.ErrUnauthorized)
}

// Register validates and normalizes reg before sending it: the username is
// trimmed and lower-cased, the email lower-cased, and the password must be
// at least six characters and equal confirm.
func (a *authService) Register(ctx context.Context, reg models.CustomerRegistration, confirm string) error {
	reg.Username = strings.ToLower(strings.TrimSpace(reg.Username))
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.Name = strings.TrimSpace(reg.Name)

	if len([]rune(reg.Username)) < minUsernameLength {
		return fmt.Errorf("%w: username must have at least %d characters", client.ErrValidation, minUsernameLength)
	}
	if len([]rune(reg.Password)) < minPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", client.ErrValidation, minPasswordLength)
	}
	if reg.Password != confirm {
		return fmt.Errorf("%w: passwords do not match", client.ErrValidation)
	}

	return a.api.RegisterCustomer(ctx, reg)
}

func (a *authService) ChangePassword(ctx context.Context, current, next string) error {
	if _, ok := a.session.Identity(); !ok {
		return client.ErrUnauthorized
	}
	if current == "" || next == "" {
		return fmt.Errorf("%w: current and new password are required", client.ErrValidation)
	}
	return a.api.ChangePassword(ctx, models.ChangePassword{CurrentPassword: current, NewPassword: next})
}

func (a *authService) Whoami() (session.Identity, bool) {
	return a.session.Identity()
}
