package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Identity is the client-trusted projection of the authenticated user.
type Identity struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether any of the identity's roles equals role under
// NormalizeRole.
func (id Identity) HasRole(role string) bool {
	target := NormalizeRole(role)
	for _, r := range id.Roles {
		if NormalizeRole(r) == target {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether HasRole holds for at least one of roles.
func (id Identity) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if id.HasRole(r) {
			return true
		}
	}
	return false
}

func (id Identity) clone() Identity {
	roles := make([]string, len(id.Roles))
	copy(roles, id.Roles)
	return Identity{Username: id.Username, Roles: roles}
}

type tokenPayload struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// IdentityFromToken decodes the payload segment of an access token and builds
// an Identity from its "username" and "roles" claims. It reports false when
// the token cannot be decoded or carries no username. The signature is not
// checked.
func IdentityFromToken(token string) (Identity, bool) {
	p, ok := decodePayload(token)
	if !ok || p.Username == "" {
		return Identity{}, false
	}
	roles := p.Roles
	if roles == nil {
		roles = []string{}
	}
	return Identity{Username: p.Username, Roles: roles}, true
}

// decodePayload takes the second dot-separated segment, maps base64url to
// standard base64, pads it to a multiple of four and parses the JSON inside.
func decodePayload(token string) (tokenPayload, bool) {
	segments := strings.Split(token, ".")
	if len(segments) < 2 || segments[1] == "" {
		return tokenPayload{}, false
	}

	b64 := strings.NewReplacer("-", "+", "_", "/").Replace(segments[1])
	if pad := len(b64) % 4; pad != 0 {
		b64 += strings.Repeat("=", 4-pad)
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return tokenPayload{}, false
	}

	var p tokenPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return tokenPayload{}, false
	}
	return p, true
}
