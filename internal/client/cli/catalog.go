package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/pterm/pterm"
)

const (
	clienteUsage      = "cliente [ls] | new | edit <id> | rm <id> | self"
	empleadoUsage     = "empleado [ls] | new | edit <id> | rm <id>"
	tipoEmpleadoUsage = "tipo-empleado [ls] | new | edit <id> | rm <id>"
	tipoGestionUsage  = "tipo-gestion [ls] | new | edit <id> | rm <id>"
	supervisorUsage   = "supervisor <id> [set <tecnico-id>...]"
)

// verbOf splits args into a verb, "ls" when absent, and its operands.
func verbOf(args []string) (string, []string) {
	if len(args) == 0 {
		return "ls", nil
	}
	return args[0], args[1:]
}

// Cliente manages customers. "self" edits the customer record linked to a
// Cliente session and opens its own screen.
func (a *App) Cliente(ctx context.Context, args []string) error {
	verb, rest := verbOf(args)
	if verb == "ls" {
		return a.Clientes(ctx)
	}
	if verb == "self" {
		return a.ownCustomer(ctx)
	}
	if err := a.enter(pathClientes); err != nil {
		return err
	}

	switch verb {
	case "new":
		c, err := a.customerForm(models.Customer{})
		if err != nil {
			return err
		}
		out, err := a.catalogService.SaveCustomer(ctx, c)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Cliente %d creado", out.ID)

	case "edit":
		id, err := idArg("cliente edit <id>", rest)
		if err != nil {
			return err
		}
		c, err := a.catalogService.Customer(ctx, id)
		if err != nil {
			return err
		}
		if c, err = a.customerForm(c); err != nil {
			return err
		}
		c.ID = id
		if _, err := a.catalogService.SaveCustomer(ctx, c); err != nil {
			return err
		}
		pterm.Success.Printfln("Cliente %d actualizado", id)

	case "rm":
		id, err := idArg("cliente rm <id>", rest)
		if err != nil {
			return err
		}
		if ok, err := a.confirm("el cliente " + idCell(id)); err != nil || !ok {
			return err
		}
		if err := a.catalogService.DeleteCustomer(ctx, id); err != nil {
			return err
		}
		pterm.Success.Printfln("Cliente %d eliminado", id)

	default:
		return errors.New("usage: " + clienteUsage)
	}
	return nil
}

func (a *App) ownCustomer(ctx context.Context) error {
	if err := a.enter(pathMiCliente); err != nil {
		return err
	}
	c, found, err := a.catalogService.OwnCustomer(ctx)
	if err != nil {
		return err
	}
	if !found {
		pterm.Info.Println("No customer record yet, fill it in")
	}
	if c, err = a.customerForm(c); err != nil {
		return err
	}
	if _, err := a.catalogService.SaveOwnCustomer(ctx, c); err != nil {
		return err
	}
	pterm.Success.Println("Datos de cliente guardados")
	return nil
}

func (a *App) customerForm(c models.Customer) (models.Customer, error) {
	var err error
	if c.Name, err = a.ask("Nombre", c.Name); err != nil {
		return c, err
	}
	if c.TaxID, err = a.ask("NIT", c.TaxID); err != nil {
		return c, err
	}
	if c.Phone, err = a.ask("Teléfono", c.Phone); err != nil {
		return c, err
	}
	if c.Email, err = a.ask("Email", c.Email); err != nil {
		return c, err
	}
	if c.Address, err = a.ask("Dirección", c.Address); err != nil {
		return c, err
	}
	return c, nil
}

func (a *App) Empleado(ctx context.Context, args []string) error {
	if err := a.enter(pathEmpleados); err != nil {
		return err
	}

	verb, rest := verbOf(args)
	switch verb {
	case "ls":
		rows, err := a.catalogService.Employees(ctx)
		if err != nil {
			return err
		}
		return renderTable(employeesTable(rows))

	case "new":
		e, err := a.employeeForm(models.Employee{})
		if err != nil {
			return err
		}
		out, err := a.catalogService.SaveEmployee(ctx, e)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Empleado %d creado", out.ID)

	case "edit":
		id, err := idArg("empleado edit <id>", rest)
		if err != nil {
			return err
		}
		rows, err := a.catalogService.Employees(ctx)
		if err != nil {
			return err
		}
		e, err := findByID(rows, id, func(e models.Employee) int64 { return e.ID })
		if err != nil {
			return err
		}
		if e, err = a.employeeForm(e); err != nil {
			return err
		}
		if _, err := a.catalogService.SaveEmployee(ctx, e); err != nil {
			return err
		}
		pterm.Success.Printfln("Empleado %d actualizado", id)

	case "rm":
		id, err := idArg("empleado rm <id>", rest)
		if err != nil {
			return err
		}
		if ok, err := a.confirm("el empleado " + idCell(id)); err != nil || !ok {
			return err
		}
		if err := a.catalogService.DeleteEmployee(ctx, id); err != nil {
			return err
		}
		pterm.Success.Printfln("Empleado %d eliminado", id)

	default:
		return errors.New("usage: " + empleadoUsage)
	}
	return nil
}

func (a *App) employeeForm(e models.Employee) (models.Employee, error) {
	var err error
	if e.FirstNames, err = a.ask("Nombres", e.FirstNames); err != nil {
		return e, err
	}
	if e.LastNames, err = a.ask("Apellidos", e.LastNames); err != nil {
		return e, err
	}
	if e.Phone, err = a.ask("Teléfono", e.Phone); err != nil {
		return e, err
	}
	if e.Address, err = a.ask("Dirección", e.Address); err != nil {
		return e, err
	}
	if e.TypeID, err = a.askID("Tipo de empleado (id)", e.TypeID); err != nil {
		return e, err
	}
	if e.UserID, err = a.askID("Usuario (id)", e.UserID); err != nil {
		return e, err
	}
	return e, nil
}

func (a *App) TipoEmpleado(ctx context.Context, args []string) error {
	if err := a.enter(pathTiposEmpleado); err != nil {
		return err
	}

	verb, rest := verbOf(args)
	switch verb {
	case "ls":
		rows, err := a.catalogService.EmployeeTypes(ctx)
		if err != nil {
			return err
		}
		return renderTable(employeeTypesTable(rows))

	case "new", "edit":
		var t models.EmployeeType
		if verb == "edit" {
			id, err := idArg("tipo-empleado edit <id>", rest)
			if err != nil {
				return err
			}
			rows, err := a.catalogService.EmployeeTypes(ctx)
			if err != nil {
				return err
			}
			if t, err = findByID(rows, id, func(t models.EmployeeType) int64 { return t.ID }); err != nil {
				return err
			}
		}
		var err error
		if t.Name, err = a.ask("Nombre", t.Name); err != nil {
			return err
		}
		out, err := a.catalogService.SaveEmployeeType(ctx, t)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Tipo de empleado %s guardado", firstNonEmpty(out.Name, t.Name))

	case "rm":
		id, err := idArg("tipo-empleado rm <id>", rest)
		if err != nil {
			return err
		}
		if ok, err := a.confirm("el tipo de empleado " + idCell(id)); err != nil || !ok {
			return err
		}
		if err := a.catalogService.DeleteEmployeeType(ctx, id); err != nil {
			return err
		}
		pterm.Success.Printfln("Tipo de empleado %d eliminado", id)

	default:
		return errors.New("usage: " + tipoEmpleadoUsage)
	}
	return nil
}

func (a *App) TipoGestion(ctx context.Context, args []string) error {
	if err := a.enter(pathTiposGestion); err != nil {
		return err
	}

	verb, rest := verbOf(args)
	switch verb {
	case "ls":
		rows, err := a.catalogService.ServiceRequestTypes(ctx)
		if err != nil {
			return err
		}
		return renderTable(requestTypesTable(rows))

	case "new", "edit":
		var t models.ServiceRequestType
		if verb == "edit" {
			id, err := idArg("tipo-gestion edit <id>", rest)
			if err != nil {
				return err
			}
			rows, err := a.catalogService.ServiceRequestTypes(ctx)
			if err != nil {
				return err
			}
			if t, err = findByID(rows, id, func(t models.ServiceRequestType) int64 { return t.ID }); err != nil {
				return err
			}
		}
		var err error
		if t.Name, err = a.ask("Nombre", t.Name); err != nil {
			return err
		}
		if t.Description, err = a.ask("Descripción", t.Description); err != nil {
			return err
		}
		out, err := a.catalogService.SaveServiceRequestType(ctx, t)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Tipo de gestión %s guardado", firstNonEmpty(out.Name, t.Name))

	case "rm":
		id, err := idArg("tipo-gestion rm <id>", rest)
		if err != nil {
			return err
		}
		if ok, err := a.confirm("el tipo de gestión " + idCell(id)); err != nil || !ok {
			return err
		}
		if err := a.catalogService.DeleteServiceRequestType(ctx, id); err != nil {
			return err
		}
		pterm.Success.Printfln("Tipo de gestión %d eliminado", id)

	default:
		return errors.New("usage: " + tipoGestionUsage)
	}
	return nil
}

// Supervisor shows the technicians linked to a supervisor, or with "set"
// replaces them. "set" with no ids removes every link.
func (a *App) Supervisor(ctx context.Context, args []string) error {
	if len(args) == 0 || (len(args) > 1 && args[1] != "set") {
		return errors.New("usage: " + supervisorUsage)
	}
	if err := a.enter(pathEmpleados); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if len(args) > 1 {
		techs, err := parseIDs(args[2:])
		if err != nil {
			return err
		}
		if err := a.catalogService.SetSupervisorTechnicians(ctx, id, techs); err != nil {
			return err
		}
		pterm.Success.Printfln("Supervisor %d: %d técnicos", id, len(techs))
		return nil
	}

	links, err := a.catalogService.SupervisorTechnicians(ctx, id)
	if err != nil {
		return err
	}
	return renderTable(linksTable(links))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
