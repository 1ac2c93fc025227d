package services

import (
	"fmt"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/dmitrijs2005/fieldadmin/internal/common"
)

// RoleChecker answers normalized role queries for the current session.
type RoleChecker interface {
	HasRole(role string) bool
	HasAnyRole(roles ...string) bool
}

// Action names a capability shown or hidden by the client.
type Action string

const (
	CreateServiceRequest Action = "gestiones.create"
	EditServiceRequest   Action = "gestiones.edit"
	AssignServiceRequest Action = "gestiones.assign"
	DeleteServiceRequest Action = "gestiones.delete"
	ListCustomers        Action = "clientes.list"
	EditCatalog          Action = "catalogo.edit"
	DeleteCatalog        Action = "catalogo.delete"
	ManageUsers          Action = "usuarios.manage"
	ManageRoles          Action = "roles.manage"
	ViewDashboard        Action = "dashboard.view"
	ManageOwnCustomer    Action = "clientes.self"
	ListTechnicians      Action = "tecnicos.list"
)

var (
	admin          = []string{common.RoleAdministrador}
	adminSup       = []string{common.RoleAdministrador, common.RoleSupervisor}
	adminSupTec    = []string{common.RoleAdministrador, common.RoleSupervisor, common.RoleTecnico}
	adminSupClient = []string{common.RoleAdministrador, common.RoleSupervisor, common.RoleCliente}
)

var actionRoles = map[Action][]string{
	CreateServiceRequest: adminSupClient,
	EditServiceRequest:   adminSupTec,
	AssignServiceRequest: adminSupTec,
	DeleteServiceRequest: admin,
	ListCustomers:        adminSup,
	EditCatalog:          adminSup,
	DeleteCatalog:        admin,
	ManageUsers:          admin,
	ManageRoles:          admin,
	ViewDashboard:        adminSup,
	ManageOwnCustomer:    {common.RoleCliente},
	ListTechnicians:      adminSup,
}

// Permissions maps actions to the roles that may perform them. It only
// decides what the client offers; the backend enforces the real policy.
type Permissions struct {
	roles RoleChecker
}

func NewPermissions(roles RoleChecker) Permissions {
	return Permissions{roles: roles}
}

// Can reports whether the session holds one of the roles of a. Unknown
// actions are denied.
func (p Permissions) Can(a Action) bool {
	return p.roles.HasAnyRole(actionRoles[a]...)
}

// Require returns an error wrapping client.ErrForbidden when Can(a) is false.
func (p Permissions) Require(a Action) error {
	if p.Can(a) {
		return nil
	}
	return fmt.Errorf("%w: %s", client.ErrForbidden, a)
}
