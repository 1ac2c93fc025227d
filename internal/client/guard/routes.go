package guard

import "github.com/dmitrijs2005/fieldadmin/internal/common"

// Route is one level of the screen tree. Path is a single segment; "" marks
// the default child of its parent.
type Route struct {
	Path     string
	Title    string
	Auth     bool
	Roles    []string
	Children []Route
}

// Protected reports whether entering the route consults the guard.
func (r Route) Protected() bool {
	return r.Auth || len(r.Roles) > 0
}

// HomePath is where unknown paths end up.
const HomePath = "/"

var adminOrSupervisor = []string{common.RoleAdministrador, common.RoleSupervisor}

// Routes is the screen tree of the client.
var Routes = []Route{
	{Path: "", Title: "Inicio"},
	{Path: "login", Title: "Iniciar sesión"},
	{
		Path:  "app",
		Title: "Panel",
		Auth:  true,
		Children: []Route{
			{Path: "", Title: "Bienvenida"},
			{
				Path:  "gestion",
				Title: "Gestión",
				Auth:  true,
				Children: []Route{
					{Path: "clientes", Title: "Clientes", Roles: adminOrSupervisor},
					{Path: "gestiones", Title: "Gestiones"},
					{Path: "mi-cliente", Title: "Mi cliente", Roles: []string{common.RoleCliente}},
					{Path: "tipos-gestion", Title: "Tipos de gestión"},
					{Path: "empleados", Title: "Empleados"},
					{Path: "tipos-empleado", Title: "Tipos de empleado"},
				},
			},
			{
				Path:  "seguridad",
				Title: "Seguridad",
				Auth:  true,
				Roles: adminOrSupervisor,
				Children: []Route{
					{Path: "usuarios", Title: "Usuarios"},
					{Path: "roles", Title: "Roles"},
				},
			},
		},
	},
}
