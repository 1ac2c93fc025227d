package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/pterm/pterm"
)

const (
	usuarioUsage = "usuario new | edit <id> | rm <id> | roles <id> | role add|rm <id> <rol-id>"
	rolUsage     = "rol new | edit <id> | rm <id>"
)

// Usuario manages user accounts and their roles.
func (a *App) Usuario(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: " + usuarioUsage)
	}
	if err := a.enter(pathUsuarios); err != nil {
		return err
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "new":
		return a.newUser(ctx)

	case "edit":
		id, err := idArg("usuario edit <id>", rest)
		if err != nil {
			return err
		}
		u, err := a.securityService.User(ctx, id)
		if err != nil {
			return err
		}
		if u.Email, err = a.ask("Email", u.Email); err != nil {
			return err
		}
		if u.Name, err = a.ask("Nombre", u.Name); err != nil {
			return err
		}
		active, err := a.askBool("Activo", u.Active == nil || *u.Active)
		if err != nil {
			return err
		}
		u.ID, u.Active = id, &active
		if _, err := a.securityService.SaveUser(ctx, u); err != nil {
			return err
		}
		pterm.Success.Printfln("Usuario %d actualizado", id)

	case "rm":
		id, err := idArg("usuario rm <id>", rest)
		if err != nil {
			return err
		}
		if ok, err := a.confirm("el usuario " + idCell(id)); err != nil || !ok {
			return err
		}
		if err := a.securityService.DeleteUser(ctx, id); err != nil {
			return err
		}
		pterm.Success.Printfln("Usuario %d eliminado", id)

	case "roles":
		id, err := idArg("usuario roles <id>", rest)
		if err != nil {
			return err
		}
		names, err := a.securityService.UserRoles(ctx, id)
		if err != nil {
			return err
		}
		printlnFn("Roles:", strings.Join(names, ", "))

	case "role":
		if len(rest) != 3 || (rest[0] != "add" && rest[0] != "rm") {
			return errors.New("usage: " + usuarioUsage)
		}
		ids, err := parseIDs(rest[1:])
		if err != nil {
			return err
		}
		if rest[0] == "add" {
			err = a.securityService.AssignRole(ctx, ids[0], ids[1])
		} else {
			err = a.securityService.RemoveRole(ctx, ids[0], ids[1])
		}
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Roles del usuario %d actualizados", ids[0])

	default:
		return errors.New("usage: " + usuarioUsage)
	}
	return nil
}

// newUser creates an account. The password is asked twice.
func (a *App) newUser(ctx context.Context) error {
	var u models.User
	var err error

	if u.Username, err = promptRequired(a.reader, "Usuario", a.out); err != nil {
		return err
	}
	if u.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if u.Name, err = getSimpleText(a.reader, "Nombre", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)
	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(confirm)

	if string(password) != string(confirm) {
		return fmt.Errorf("%w: passwords do not match", client.ErrValidation)
	}
	u.Password = string(password)

	out, err := a.securityService.SaveUser(ctx, u)
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Usuario %s creado", firstNonEmpty(out.Username, strings.ToLower(u.Username)))
	return nil
}

func (a *App) Rol(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: " + rolUsage)
	}
	if err := a.enter(pathRoles); err != nil {
		return err
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "new", "edit":
		var r models.Role
		if verb == "edit" {
			id, err := idArg("rol edit <id>", rest)
			if err != nil {
				return err
			}
			if r, err = a.securityService.Role(ctx, id); err != nil {
				return err
			}
			r.ID = id
		}
		var err error
		if r.Name, err = a.ask("Nombre", r.Name); err != nil {
			return err
		}
		if r.Description, err = a.ask("Descripción", r.Description); err != nil {
			return err
		}
		out, err := a.securityService.SaveRole(ctx, r)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Rol %s guardado", firstNonEmpty(out.Name, r.Name))

	case "rm":
		id, err := idArg("rol rm <id>", rest)
		if err != nil {
			return err
		}
		if ok, err := a.confirm("el rol " + idCell(id)); err != nil || !ok {
			return err
		}
		if err := a.securityService.DeleteRole(ctx, id); err != nil {
			return err
		}
		pterm.Success.Printfln("Rol %d eliminado", id)

	default:
		return errors.New("usage: " + rolUsage)
	}
	return nil
}
