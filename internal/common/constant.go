// Package common contains names shared across fieldadmin components: the
// backend's role names and the HTTP headers the client sets.
package common

// Role names as issued by the backend in the access token's "roles" claim.
// Comparisons against them always go through session role normalization, so
// "Técnico" and "Tecnico" are the same role.
const (
	RoleAdministrador = "Administrador"
	RoleSupervisor    = "Supervisor"
	RoleTecnico       = "Tecnico"
	RoleCliente       = "Cliente"
)

const (
	// AuthorizationHeaderName carries "Bearer <access token>" on API calls.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates a request with its log lines.
	RequestIDHeaderName = "X-Request-Id"
)
