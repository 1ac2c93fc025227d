package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Navigate(t *testing.T) {
	tests := []struct {
		name string
		src  stubSource
		path string
		want Result
	}{
		{"public home", stubSource{}, "/", Result{Path: "/", Title: "Inicio"}},
		{"login", stubSource{}, "login", Result{Path: "/login", Title: "Iniciar sesión"}},
		{"anonymous to app", stubSource{}, "/app", Result{Path: "/login", Title: "Iniciar sesión", Redirected: true}},
		{"anonymous to deep screen", stubSource{}, "/app/seguridad/roles", Result{Path: "/login", Title: "Iniciar sesión", Redirected: true}},
		{"landing", as("Cliente"), "/app/", Result{Path: "/app", Title: "Bienvenida"}},
		{"open gestion screen", as("Tecnico"), "/app/gestion/gestiones", Result{Path: "/app/gestion/gestiones", Title: "Gestiones"}},
		{"role screen allowed", as("Supervisor"), "/app/gestion/clientes", Result{Path: "/app/gestion/clientes", Title: "Clientes"}},
		{"role screen denied", as("Cliente"), "/app/gestion/clientes", Result{Path: "/app", Title: "Bienvenida", Redirected: true}},
		{"mi-cliente for cliente", as("cliente"), "/app/gestion/mi-cliente", Result{Path: "/app/gestion/mi-cliente", Title: "Mi cliente"}},
		{"parent roles apply to children", as("Tecnico"), "/app/seguridad/usuarios", Result{Path: "/app", Title: "Bienvenida", Redirected: true}},
		{"admin in seguridad", as("Administrador"), "/app/seguridad/usuarios?x=1", Result{Path: "/app/seguridad/usuarios", Title: "Usuarios"}},
		{"unknown path", as("Administrador"), "/nope", Result{Path: "/", Title: "Inicio", Redirected: true}},
		{"section without default child", as("Administrador"), "/app/gestion", Result{Path: "/", Title: "Inicio", Redirected: true}},
		{"trailing segment on leaf", as("Administrador"), "/login/extra", Result{Path: "/", Title: "Inicio", Redirected: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(New(tt.src), Routes)
			assert.Equal(t, tt.want, r.Navigate(tt.path))
		})
	}
}

func TestRouter_RedirectLoopIsBounded(t *testing.T) {
	// "/login" is itself protected, so an anonymous session bounces forever.
	routes := []Route{
		{Path: "", Title: "home", Auth: true},
		{Path: "login", Title: "login", Auth: true},
		{Path: "app", Title: "app", Roles: []string{"X"}},
	}
	r := NewRouter(New(stubSource{}), routes)
	assert.Equal(t, Result{Path: HomePath, Redirected: true}, r.Navigate("/app"))
}

func TestRouter_Lookup(t *testing.T) {
	r := NewRouter(New(stubSource{}), Routes)

	chain, ok := r.Lookup("/app/seguridad/roles")
	require.True(t, ok)
	require.Len(t, chain, 3)
	assert.Equal(t, []string{"app", "seguridad", "roles"}, []string{chain[0].Path, chain[1].Path, chain[2].Path})
	assert.Equal(t, []string{"Administrador", "Supervisor"}, chain[1].Roles)

	_, ok = r.Lookup("/app/gestion")
	assert.False(t, ok)
}

func TestBuildMenu(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		assert.Equal(t, Menu{}, BuildMenu(stubSource{}))
	})

	t.Run("administrador", func(t *testing.T) {
		m := BuildMenu(as("Administrador"))
		assert.True(t, m.ShowGestion)
		assert.True(t, m.ShowAdmin)
		assert.True(t, m.ShowUsuarios)
		assert.True(t, m.ShowRoles)
		require.Len(t, m.Sections, 2)
		assert.Equal(t, []string{"Clientes", "Gestiones", "Tipos de gestión", "Empleados", "Tipos de empleado"}, titles(m.Sections[0]))
		assert.Equal(t, []string{"Usuarios", "Roles"}, titles(m.Sections[1]))
	})

	t.Run("supervisor", func(t *testing.T) {
		m := BuildMenu(as("Supervisor"))
		assert.False(t, m.ShowUsuarios)
		require.Len(t, m.Sections, 2)
		assert.Equal(t, []string{"Roles"}, titles(m.Sections[1]))
	})

	t.Run("cliente", func(t *testing.T) {
		m := BuildMenu(as("Cliente"))
		assert.False(t, m.ShowAdmin)
		require.Len(t, m.Sections, 1)
		assert.Equal(t, []string{"Gestiones", "Mi cliente", "Tipos de gestión", "Empleados", "Tipos de empleado"}, titles(m.Sections[0]))
		assert.Equal(t, "/app/gestion/mi-cliente", m.Sections[0].Items[1].Path)
	})

	t.Run("accented technician", func(t *testing.T) {
		m := BuildMenu(as("Técnico"))
		assert.True(t, m.ShowGestion)
		assert.False(t, m.ShowAdmin)
	})

	t.Run("unknown role", func(t *testing.T) {
		m := BuildMenu(as("Invitado"))
		assert.False(t, m.ShowGestion)
		assert.Empty(t, m.Sections)
	})
}

func titles(s MenuSection) []string {
	out := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, it.Title)
	}
	return out
}
