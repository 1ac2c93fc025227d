package cli

import (
	"strconv"

	"github.com/dmitrijs2005/fieldadmin/internal/client/guard"
	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/dmitrijs2005/fieldadmin/internal/client/services"
	"github.com/pterm/pterm"
)

// Table builders return pterm.TableData with a header row. They do no I/O
// so they can be checked without a terminal.

func gestionesTable(rows []models.ServiceRequest) pterm.TableData {
	data := pterm.TableData{{"ID", "Código", "Cliente", "Tipo", "Técnico", "Estado", "Programada"}}
	for _, g := range rows {
		data = append(data, []string{
			idCell(g.ID),
			g.Code,
			services.CustomerLabel(g.CustomerID, nil),
			idCell(g.TypeID),
			services.TechnicianLabel(g),
			services.ComputeStatus(g),
			g.ScheduledAt,
		})
	}
	return data
}

func customersTable(rows []models.Customer) pterm.TableData {
	data := pterm.TableData{{"ID", "Nombre", "NIT", "Teléfono", "Email", "Dirección"}}
	for _, c := range rows {
		data = append(data, []string{idCell(c.ID), c.Name, c.TaxID, c.Phone, c.Email, c.Address})
	}
	return data
}

func employeesTable(rows []models.Employee) pterm.TableData {
	data := pterm.TableData{{"ID", "Nombre", "Tipo", "Teléfono", "Usuario"}}
	for _, e := range rows {
		data = append(data, []string{idCell(e.ID), e.FullName(), idCell(e.TypeID), e.Phone, idCell(e.UserID)})
	}
	return data
}

func employeeTypesTable(rows []models.EmployeeType) pterm.TableData {
	data := pterm.TableData{{"ID", "Nombre"}}
	for _, t := range rows {
		data = append(data, []string{idCell(t.ID), t.Name})
	}
	return data
}

func requestTypesTable(rows []models.ServiceRequestType) pterm.TableData {
	data := pterm.TableData{{"ID", "Nombre", "Descripción"}}
	for _, t := range rows {
		data = append(data, []string{idCell(t.ID), t.Name, t.Description})
	}
	return data
}

func linksTable(rows []models.SupervisorTechnician) pterm.TableData {
	data := pterm.TableData{{"Supervisor", "Técnico"}}
	for _, l := range rows {
		data = append(data, []string{idCell(l.SupervisorID), idCell(l.TechnicianID)})
	}
	return data
}

func usersTable(rows []models.User) pterm.TableData {
	data := pterm.TableData{{"ID", "Usuario", "Nombre", "Email", "Activo"}}
	for _, u := range rows {
		active := "sí"
		if u.Active != nil && !*u.Active {
			active = "no"
		}
		data = append(data, []string{idCell(u.ID), u.Username, u.Name, u.Email, active})
	}
	return data
}

func rolesTable(rows []models.Role) pterm.TableData {
	data := pterm.TableData{{"ID", "Nombre", "Descripción"}}
	for _, r := range rows {
		data = append(data, []string{idCell(r.ID), r.Name, r.Description})
	}
	return data
}

func countsTable(label string, counts []services.Count) pterm.TableData {
	data := pterm.TableData{{label, "Total"}}
	for _, c := range counts {
		data = append(data, []string{c.Label, strconv.Itoa(c.Count)})
	}
	return data
}

func statusByTechnicianTable(rows []services.TechnicianStatus) pterm.TableData {
	header := []string{"Técnico"}
	header = append(header, models.Statuses...)
	data := pterm.TableData{header}
	for _, r := range rows {
		line := []string{r.Technician}
		for _, c := range r.Counts {
			line = append(line, strconv.Itoa(c.Count))
		}
		data = append(data, line)
	}
	return data
}

func menuTable(m guard.Menu) pterm.TableData {
	data := pterm.TableData{{"Sección", "Pantalla", "Ruta"}}
	for _, s := range m.Sections {
		for _, it := range s.Items {
			data = append(data, []string{s.Title, it.Title, it.Path})
		}
	}
	return data
}

func idCell(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

// renderTable prints data, or a notice when it holds only the header.
func renderTable(data pterm.TableData) error {
	if len(data) <= 1 {
		pterm.Info.Println("No records")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
