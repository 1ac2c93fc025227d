// Package models holds the client-side view of the field-service API's
// resources. JSON names follow the backend contract.
package models

// Service request statuses as displayed by the client. The first four are
// derived from lifecycle dates (see services.ComputeStatus); "Pendiente" is
// only ever set explicitly by the backend.
const (
	StatusNuevo      = "Nuevo"
	StatusAsignado   = "Asignado"
	StatusEnProceso  = "En Proceso"
	StatusFinalizado = "Finalizado"
	StatusPendiente  = "Pendiente"
)

// Statuses lists every status in display order.
var Statuses = []string{StatusNuevo, StatusAsignado, StatusEnProceso, StatusFinalizado, StatusPendiente}

// ServiceRequest is a "gestion": a unit of field work for a customer,
// optionally assigned to a technician.
type ServiceRequest struct {
	ID              int64  `json:"id,omitempty"`
	Code            string `json:"codigo,omitempty"`
	CustomerID      int64  `json:"idCliente"`
	TechnicianID    int64  `json:"idTecnico,omitempty"`
	TechnicianName  string `json:"tecnicoNombre,omitempty"`
	TypeID          int64  `json:"idTipoGestion"`
	Address         string `json:"direccion"`
	Latitude        string `json:"latitud,omitempty"`
	Longitude       string `json:"longitud,omitempty"`
	ScheduledAt     string `json:"fechaProgramada,omitempty"`
	StartedAt       string `json:"fechaInicio,omitempty"`
	FinishedAt      string `json:"fechaFin,omitempty"`
	Notes           string `json:"observaciones,omitempty"`
	Status          string `json:"estado,omitempty"`
	CreatedAt       string `json:"fechaCreacion,omitempty"`
	UpdatedAt       string `json:"fechaModificacion,omitempty"`
	CreatedByUserID int64  `json:"idUsuarioCreador,omitempty"`
}

// ServiceRequestType is a "tipo de gestion".
type ServiceRequestType struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// Assignment is the body of PATCH /gestion/gestiones/{id}/asignacion.
type Assignment struct {
	TechnicianID int64  `json:"idTecnico,omitempty"`
	StartedAt    string `json:"fechaInicio,omitempty"`
	FinishedAt   string `json:"fechaFin,omitempty"`
}

// ServiceRequestFilter narrows GET /gestion/gestiones/search. Dates are
// YYYY-MM-DD; zero values are left out of the query.
type ServiceRequestFilter struct {
	From   string
	To     string
	TypeID int64
	Status string
}
