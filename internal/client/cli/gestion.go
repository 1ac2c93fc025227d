package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/dmitrijs2005/fieldadmin/internal/common"
	"github.com/pterm/pterm"
)

const gestionUsage = "gestion new | edit <id> | assign <id> | rm <id>"

// Gestion creates, edits, assigns and deletes service requests from the
// gestiones screen.
func (a *App) Gestion(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: " + gestionUsage)
	}
	if err := a.enter(pathGestiones); err != nil {
		return err
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "new":
		g, err := a.gestionForm(models.ServiceRequest{})
		if err != nil {
			return err
		}
		out, err := a.gestionService.Create(ctx, g)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Gestión %d creada", out.ID)

	case "edit":
		id, err := idArg("gestion edit <id>", rest)
		if err != nil {
			return err
		}
		g, err := a.gestionService.Get(ctx, id)
		if err != nil {
			return err
		}
		if g, err = a.gestionForm(g); err != nil {
			return err
		}
		g.ID = id
		if _, err := a.gestionService.Update(ctx, g); err != nil {
			return err
		}
		pterm.Success.Printfln("Gestión %d actualizada", id)

	case "assign":
		id, err := idArg("gestion assign <id>", rest)
		if err != nil {
			return err
		}
		return a.assignGestion(ctx, id)

	case "rm":
		id, err := idArg("gestion rm <id>", rest)
		if err != nil {
			return err
		}
		if ok, err := a.confirm("la gestión " + idCell(id)); err != nil || !ok {
			return err
		}
		if err := a.gestionService.Delete(ctx, id); err != nil {
			return err
		}
		pterm.Success.Printfln("Gestión %d eliminada", id)

	default:
		return errors.New("usage: " + gestionUsage)
	}
	return nil
}

// gestionForm asks for the editable fields of g. Staff choose the customer;
// a customer's own record is filled in by the service.
func (a *App) gestionForm(g models.ServiceRequest) (models.ServiceRequest, error) {
	var err error
	if a.store.HasAnyRole(common.RoleAdministrador, common.RoleSupervisor) {
		if g.CustomerID, err = a.askID("Cliente (id)", g.CustomerID); err != nil {
			return g, err
		}
	}
	if g.TypeID, err = a.askID("Tipo de gestión (id)", g.TypeID); err != nil {
		return g, err
	}
	if g.Address, err = a.ask("Dirección", g.Address); err != nil {
		return g, err
	}
	if g.ScheduledAt, err = a.ask("Fecha programada", g.ScheduledAt); err != nil {
		return g, err
	}
	if g.Notes, err = a.ask("Observaciones", g.Notes); err != nil {
		return g, err
	}
	if g.ID != 0 {
		if g.Status, err = a.ask("Estado", g.Status); err != nil {
			return g, err
		}
	}
	return g, nil
}

// assignGestion shows the technicians the session may pick and records the
// assignment with its optional lifecycle dates.
func (a *App) assignGestion(ctx context.Context, id int64) error {
	techs, err := a.gestionService.Technicians(ctx)
	if err != nil {
		return err
	}
	if err := renderTable(employeesTable(techs)); err != nil {
		return err
	}

	var as models.Assignment
	if as.TechnicianID, err = a.askID("Técnico (id)", 0); err != nil {
		return err
	}
	if as.StartedAt, err = a.ask("Fecha inicio", ""); err != nil {
		return err
	}
	if as.FinishedAt, err = a.ask("Fecha fin", ""); err != nil {
		return err
	}

	if err := a.gestionService.Assign(ctx, id, as); err != nil {
		return err
	}
	pterm.Success.Printfln("Gestión %d asignada", id)
	return nil
}
