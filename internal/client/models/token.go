package models

// TokenPair is what the backend token issuer returns from login and refresh.
// Both values are opaque to the client except for the access token payload.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePassword is the body of POST /usuarios/change-password. The backend
// applies it to the authenticated user.
type ChangePassword struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
