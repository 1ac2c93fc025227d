package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
)

// Login exchanges credentials for a token pair.
func (a *API) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	var pair models.TokenPair
	err := a.do(ctx, http.MethodPost, "/auth/login", nil, models.Credentials{Username: username, Password: password}, &pair, false)
	if err != nil {
		return models.TokenPair{}, err
	}
	return pair, nil
}

// RefreshTokens exchanges a refresh token for a new pair. The returned
// refresh token may be empty when the backend does not rotate it.
func (a *API) RefreshTokens(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	var pair models.TokenPair
	body := struct {
		RefreshToken string `json:"refreshToken"`
	}{refreshToken}
	if err := a.do(ctx, http.MethodPost, "/auth/refresh", nil, body, &pair, false); err != nil {
		return models.TokenPair{}, err
	}
	return pair, nil
}

// RegisterCustomer creates a user with the Cliente role and its customer
// record. No session is required.
func (a *API) RegisterCustomer(ctx context.Context, reg models.CustomerRegistration) error {
	return a.do(ctx, http.MethodPost, "/public/register/cliente", nil, reg, nil, false)
}

func (a *API) ChangePassword(ctx context.Context, cp models.ChangePassword) error {
	return a.Post(ctx, "/usuarios/change-password", cp, nil)
}
