// Package guard decides whether the current session may enter a screen of
// the client, and where to send it otherwise.
//
// The decision is a UI convenience computed from the unverified, client-side
// Identity. The backend authorizes every API call on its own.
package guard

import (
	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
)

const (
	// LoginPath is where unauthenticated sessions are sent.
	LoginPath = "/login"
	// LandingPath is the default screen of an authenticated session.
	LandingPath = "/app"
)

// IdentitySource is the read side of the session Store.
type IdentitySource interface {
	Identity() (session.Identity, bool)
}

// Decision is the outcome of CanEnter. Redirect is set only when Allowed is
// false.
type Decision struct {
	Allowed  bool
	Redirect string
}

type Guard struct {
	src IdentitySource
}

func New(src IdentitySource) *Guard {
	return &Guard{src: src}
}

// CanEnter admits the session when it holds an Identity and either required
// is empty or the Identity has at least one of the required roles. Roles
// are compared with session.NormalizeRole.
func (g *Guard) CanEnter(required []string) Decision {
	id, ok := g.src.Identity()
	if !ok {
		return Decision{Redirect: LoginPath}
	}
	if len(required) == 0 {
		return Decision{Allowed: true}
	}
	if id.HasAnyRole(required...) {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: LandingPath}
}
