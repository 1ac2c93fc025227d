package models

// User is a "usuario" account.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"nombre,omitempty"`
	Password string `json:"password,omitempty"`
	Active   *bool  `json:"activo,omitempty"`
}

// Role is a "rol" that can be assigned to users.
type Role struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// RoleAssignment is the body of POST /usuarios/assign-role.
type RoleAssignment struct {
	UserID int64 `json:"idUsuario"`
	RoleID int64 `json:"idRol"`
}
