package guard

import (
	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
	"github.com/dmitrijs2005/fieldadmin/internal/common"
)

type MenuItem struct {
	Title string
	Path  string
}

type MenuSection struct {
	Title string
	Items []MenuItem
}

// Menu is the sidebar of the authenticated area.
type Menu struct {
	ShowGestion  bool
	ShowAdmin    bool
	ShowUsuarios bool
	ShowRoles    bool
	Sections     []MenuSection
}

// BuildMenu computes the sidebar for the session's current Identity. The
// gestion section lists only screens the guard would admit.
func BuildMenu(src IdentitySource) Menu {
	id, ok := src.Identity()
	if !ok {
		return Menu{}
	}
	g := New(fixed{id})

	m := Menu{
		ShowGestion:  id.HasAnyRole(common.RoleAdministrador, common.RoleSupervisor, common.RoleTecnico, common.RoleCliente),
		ShowAdmin:    id.HasAnyRole(common.RoleAdministrador, common.RoleSupervisor),
		ShowUsuarios: id.HasRole(common.RoleAdministrador),
		ShowRoles:    id.HasAnyRole(common.RoleAdministrador, common.RoleSupervisor),
	}

	if m.ShowGestion {
		sec := MenuSection{Title: "Gestión"}
		for _, rt := range childrenOf("app", "gestion") {
			if g.CanEnter(rt.Roles).Allowed {
				sec.Items = append(sec.Items, MenuItem{Title: rt.Title, Path: "/app/gestion/" + rt.Path})
			}
		}
		m.Sections = append(m.Sections, sec)
	}

	if m.ShowAdmin {
		sec := MenuSection{Title: "Seguridad"}
		if m.ShowUsuarios {
			sec.Items = append(sec.Items, MenuItem{Title: "Usuarios", Path: "/app/seguridad/usuarios"})
		}
		if m.ShowRoles {
			sec.Items = append(sec.Items, MenuItem{Title: "Roles", Path: "/app/seguridad/roles"})
		}
		m.Sections = append(m.Sections, sec)
	}

	return m
}

func childrenOf(path ...string) []Route {
	routes := Routes
	for _, p := range path {
		var next []Route
		for _, rt := range routes {
			if rt.Path == p {
				next = rt.Children
				break
			}
		}
		routes = next
	}
	return routes
}

// fixed pins one Identity snapshot so a menu is computed consistently.
type fixed struct{ id session.Identity }

func (f fixed) Identity() (session.Identity, bool) { return f.id, true }
