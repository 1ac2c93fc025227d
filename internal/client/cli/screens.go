package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fieldadmin/internal/client/guard"
	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/dmitrijs2005/fieldadmin/internal/client/services"
	"github.com/pterm/pterm"
)

// Screen paths opened by the commands.
const (
	pathGestiones     = "/app/gestion/gestiones"
	pathClientes      = "/app/gestion/clientes"
	pathMiCliente     = "/app/gestion/mi-cliente"
	pathEmpleados     = "/app/gestion/empleados"
	pathTiposEmpleado = "/app/gestion/tipos-empleado"
	pathTiposGestion  = "/app/gestion/tipos-gestion"
	pathUsuarios      = "/app/seguridad/usuarios"
	pathRoles         = "/app/seguridad/roles"
)

// errNotAllowed is returned when the guard turned a screen away.
var errNotAllowed = errors.New("screen not available")

// enter navigates to path and fails with errNotAllowed when it was redirected. The
// current location follows any redirect.
func (a *App) enter(path string) error {
	res := a.router.Navigate(path)
	a.location = res.Path
	if res.Redirected {
		pterm.Warning.Printfln("%s is not available, moved to %s", path, res.Path)
		return fmt.Errorf("%w: %s", errNotAllowed, path)
	}
	return nil
}

// Go navigates like the address bar would, printing where it ended up.
func (a *App) Go(ctx context.Context, path string) error {
	res := a.router.Navigate(path)
	a.location = res.Path
	if res.Redirected {
		pterm.Info.Printfln("Redirected to %s", res.Path)
	}
	if res.Title != "" {
		pterm.DefaultSection.Println(res.Title)
	}
	return nil
}

// Menu prints the screens the current Identity may open.
func (a *App) Menu(ctx context.Context) error {
	m := guard.BuildMenu(a.store)
	if len(m.Sections) == 0 {
		printlnFn("Nothing to show, log in first")
		return nil
	}
	return renderTable(menuTable(m))
}

// Gestiones lists service requests. With no arguments it covers the current
// month; otherwise it takes "desde hasta [estado]" with YYYY-MM-DD dates.
func (a *App) Gestiones(ctx context.Context, args []string) error {
	if err := a.enter(pathGestiones); err != nil {
		return err
	}

	f, err := parseGestionFilter(args, a.now)
	if err != nil {
		return err
	}

	rows, err := a.gestionService.Search(ctx, f)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Printfln("Gestiones %s a %s", f.From, f.To)
	return renderTable(gestionesTable(rows))
}

func parseGestionFilter(args []string, now func() time.Time) (models.ServiceRequestFilter, error) {
	var f models.ServiceRequestFilter
	switch {
	case len(args) == 0:
		f.From, f.To = services.CurrentMonth(now())
	case len(args) == 1:
		return f, fmt.Errorf("usage: gestiones [desde hasta [estado]]")
	default:
		f.From, f.To = args[0], args[1]
		f.Status = strings.Join(args[2:], " ")
	}
	return f, nil
}

// Dashboard prints the month-to-date summary on the landing screen.
func (a *App) Dashboard(ctx context.Context) error {
	if err := a.enter(guard.LandingPath); err != nil {
		return err
	}

	s, err := a.dashboardService.Load(ctx, a.now())
	if err != nil {
		return err
	}

	pterm.DefaultSection.Printfln("Resumen %s a %s: %d gestiones", s.From, s.To, s.Total)
	for _, t := range []pterm.TableData{
		countsTable("Estado", s.ByStatus),
		countsTable("Técnico", s.ByTechnician),
		countsTable("Cliente", s.ByCustomer),
		statusByTechnicianTable(s.StatusByTechnician),
	} {
		if err := renderTable(t); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) Clientes(ctx context.Context) error {
	if err := a.enter(pathClientes); err != nil {
		return err
	}
	rows, err := a.catalogService.Customers(ctx)
	if err != nil {
		return err
	}
	return renderTable(customersTable(rows))
}

func (a *App) Usuarios(ctx context.Context) error {
	if err := a.enter(pathUsuarios); err != nil {
		return err
	}
	rows, err := a.securityService.Users(ctx)
	if err != nil {
		return err
	}
	return renderTable(usersTable(rows))
}

func (a *App) Roles(ctx context.Context) error {
	if err := a.enter(pathRoles); err != nil {
		return err
	}
	rows, err := a.securityService.Roles(ctx)
	if err != nil {
		return err
	}
	return renderTable(rolesTable(rows))
}
