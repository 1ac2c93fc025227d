package models

// Customer is a "cliente". A customer may be linked to a user account with the
// Cliente role, who then manages the record through the /self endpoints.
type Customer struct {
	ID           int64    `json:"id,omitempty"`
	Name         string   `json:"nombre"`
	Phone        string   `json:"telefono,omitempty"`
	Email        string   `json:"email,omitempty"`
	Address      string   `json:"direccion,omitempty"`
	UserID       *int64   `json:"idUsuario,omitempty"`
	UserUsername string   `json:"usuarioUsername,omitempty"`
	TaxID        string   `json:"nit,omitempty"`
	Latitude     *float64 `json:"latitud,omitempty"`
	Longitude    *float64 `json:"longitud,omitempty"`
}

// Employee is an "empleado": a technician, supervisor or other staff member.
type Employee struct {
	ID              int64  `json:"id,omitempty"`
	FirstNames      string `json:"nombres"`
	LastNames       string `json:"apellidos"`
	Phone           string `json:"telefono,omitempty"`
	Address         string `json:"direccion,omitempty"`
	TypeID          int64  `json:"idEmpleadoTipo"`
	UserID          int64  `json:"idUsuario,omitempty"`
	CreatedAt       string `json:"fechaCreacion,omitempty"`
	UpdatedAt       string `json:"fechaModificacion,omitempty"`
	CreatedByUserID int64  `json:"idUsuarioCreador,omitempty"`
}

// FullName joins first and last names the way listings display them.
func (e Employee) FullName() string {
	switch {
	case e.FirstNames == "":
		return e.LastNames
	case e.LastNames == "":
		return e.FirstNames
	}
	return e.FirstNames + " " + e.LastNames
}

type EmployeeType struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"nombre"`
}

// SupervisorTechnician links a supervisor to one of their technicians.
type SupervisorTechnician struct {
	SupervisorID int64 `json:"idSupervisor"`
	TechnicianID int64 `json:"idTecnico"`
}

// CustomerRegistration is the body of the public self-registration endpoint.
type CustomerRegistration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"nombre"`
	Phone    string `json:"telefono,omitempty"`
	Address  string `json:"direccion,omitempty"`
	TaxID    string `json:"nit,omitempty"`
}
