package session

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signToken mints an HS256 token the way the backend would. The key is
// irrelevant to the client, which never verifies signatures.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func rawToken(payload string) string {
	return "eyJhbGciOiJub25lIn0." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestIdentityFromToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  Identity
		ok    bool
	}{
		{
			name:  "signed token with roles",
			token: signToken(t, jwt.MapClaims{"username": "ana", "roles": []string{"Administrador", "Supervisor"}, "sub": 7}),
			want:  Identity{Username: "ana", Roles: []string{"Administrador", "Supervisor"}},
			ok:    true,
		},
		{
			name:  "roles default to empty",
			token: signToken(t, jwt.MapClaims{"username": "ana"}),
			want:  Identity{Username: "ana", Roles: []string{}},
			ok:    true,
		},
		{
			name:  "null roles default to empty",
			token: rawToken(`{"username":"ana","roles":null}`),
			want:  Identity{Username: "ana", Roles: []string{}},
			ok:    true,
		},
		{
			name:  "two segments are enough",
			token: "header." + base64.RawURLEncoding.EncodeToString([]byte(`{"username":"luis"}`)),
			want:  Identity{Username: "luis", Roles: []string{}},
			ok:    true,
		},
		{
			name:  "non-ascii claims survive decoding",
			token: rawToken(`{"username":"josé","roles":["Técnico"]}`),
			want:  Identity{Username: "josé", Roles: []string{"Técnico"}},
			ok:    true,
		},
		{
			name:  "url-safe alphabet mapped to standard",
			token: rawToken(`{"username":"a>>>?","roles":["x"]}`),
			want:  Identity{Username: "a>>>?", Roles: []string{"x"}},
			ok:    true,
		},
		{name: "no username claim", token: signToken(t, jwt.MapClaims{"roles": []string{"Cliente"}})},
		{name: "empty username claim", token: rawToken(`{"username":"","roles":["Cliente"]}`)},
		{name: "single segment", token: "notajwt"},
		{name: "empty payload segment", token: "header..sig"},
		{name: "invalid base64", token: "header.!!!!.sig"},
		{name: "payload length 1 mod 4", token: "header.abcde.sig"},
		{name: "payload is not json", token: rawToken("username=ana")},
		{name: "payload is a json string", token: rawToken(`"ana"`)},
		{name: "payload is json null", token: rawToken(`null`)},
		{name: "username has wrong type", token: rawToken(`{"username":42}`)},
		{name: "empty token", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IdentityFromToken(tt.token)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePayload_PaddingLengths(t *testing.T) {
	// Payload lengths chosen so the raw base64url segment needs 0, 1 and 2
	// padding characters.
	for _, payload := range []string{`{"username":"abc"}`, `{"username":"abcd"}`, `{"username":"abcde"}`} {
		segment := base64.RawURLEncoding.EncodeToString([]byte(payload))
		p, ok := decodePayload("h." + segment)
		require.True(t, ok, "segment %q (len %d)", segment, len(segment))
		assert.NotEmpty(t, p.Username)
	}
}

func TestIdentity_HasRole(t *testing.T) {
	id := Identity{Username: "t", Roles: []string{"Técnico"}}

	for _, q := range []string{"tecnico", "TECNICO", "Técnico", "técnico", "TÉCNICO"} {
		assert.True(t, id.HasRole(q), q)
	}
	for _, q := range []string{"tecnica", "tec", "", "Supervisor"} {
		assert.False(t, id.HasRole(q), q)
	}
}

func TestIdentity_HasAnyRole(t *testing.T) {
	id := Identity{Username: "s", Roles: []string{"SUPERVISOR", "Técnico"}}

	assert.True(t, id.HasAnyRole("Administrador", "tecnico"))
	assert.True(t, id.HasAnyRole("supervisor"))
	assert.False(t, id.HasAnyRole("Administrador", "Cliente"))
	assert.False(t, id.HasAnyRole())
	assert.False(t, Identity{}.HasAnyRole("Cliente"))
}
