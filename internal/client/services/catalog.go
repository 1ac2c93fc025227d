package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
)

// CatalogService manages customers, employees, their types, service request
// types and supervisor to technician links.
type CatalogService interface {
	Customers(ctx context.Context) ([]models.Customer, error)
	Customer(ctx context.Context, id int64) (models.Customer, error)
	SaveCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	OwnCustomer(ctx context.Context) (models.Customer, bool, error)
	SaveOwnCustomer(ctx context.Context, c models.Customer) (models.Customer, error)

	Employees(ctx context.Context) ([]models.Employee, error)
	SaveEmployee(ctx context.Context, e models.Employee) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error

	EmployeeTypes(ctx context.Context) ([]models.EmployeeType, error)
	SaveEmployeeType(ctx context.Context, t models.EmployeeType) (models.EmployeeType, error)
	DeleteEmployeeType(ctx context.Context, id int64) error

	ServiceRequestTypes(ctx context.Context) ([]models.ServiceRequestType, error)
	SaveServiceRequestType(ctx context.Context, t models.ServiceRequestType) (models.ServiceRequestType, error)
	DeleteServiceRequestType(ctx context.Context, id int64) error

	SupervisorTechnicians(ctx context.Context, supervisorID int64) ([]models.SupervisorTechnician, error)
	SetSupervisorTechnicians(ctx context.Context, supervisorID int64, technicianIDs []int64) error
}

type catalogService struct {
	api          Backend
	perms        Permissions
	customers    resource[models.Customer]
	employees    resource[models.Employee]
	empTypes     resource[models.EmployeeType]
	requestTypes resource[models.ServiceRequestType]
}

func NewCatalogService(api Backend, roles RoleChecker) CatalogService {
	return &catalogService{
		api:          api,
		perms:        NewPermissions(roles),
		customers:    resource[models.Customer]{b: api, path: "/gestion/clientes"},
		employees:    resource[models.Employee]{b: api, path: "/gestion/empleados"},
		empTypes:     resource[models.EmployeeType]{b: api, path: "/gestion/empleado-tipos"},
		requestTypes: resource[models.ServiceRequestType]{b: api, path: "/gestion/tipo-gestiones"},
	}
}

func (s *catalogService) Customers(ctx context.Context) ([]models.Customer, error) {
	if err := s.perms.Require(ListCustomers); err != nil {
		return nil, err
	}
	return s.customers.list(ctx, nil)
}

func (s *catalogService) Customer(ctx context.Context, id int64) (models.Customer, error) {
	return s.customers.get(ctx, id)
}

func (s *catalogService) SaveCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	if err := s.perms.Require(EditCatalog); err != nil {
		return models.Customer{}, err
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Customer{}, fmt.Errorf("%w: name is required", client.ErrValidation)
	}
	id := c.ID
	c.ID = 0
	return s.customers.save(ctx, id, c)
}

func (s *catalogService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.perms.Require(DeleteCatalog); err != nil {
		return err
	}
	return s.customers.delete(ctx, id)
}

// OwnCustomer returns the customer record linked to the session's user. The
// bool is false when the user has not created it yet.
func (s *catalogService) OwnCustomer(ctx context.Context) (models.Customer, bool, error) {
	if err := s.perms.Require(ManageOwnCustomer); err != nil {
		return models.Customer{}, false, err
	}
	var c models.Customer
	if err := s.api.Get(ctx, s.customers.path+"/self", nil, &c); err != nil {
		return models.Customer{}, false, err
	}
	return c, c.ID != 0, nil
}

// SaveOwnCustomer creates the session user's customer record, or updates it
// when it already exists.
func (s *catalogService) SaveOwnCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	existing, found, err := s.OwnCustomer(ctx)
	if err != nil {
		return models.Customer{}, err
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Customer{}, fmt.Errorf("%w: name is required", client.ErrValidation)
	}
	c.ID, c.UserID, c.UserUsername = 0, nil, ""

	var out models.Customer
	if found {
		err = s.api.Patch(ctx, s.customers.path+"/self", c, &out)
	} else {
		err = s.api.Post(ctx, s.customers.path+"/self", c, &out)
	}
	if err != nil {
		return models.Customer{}, err
	}
	if out.ID == 0 {
		out = c
		out.ID = existing.ID
	}
	return out, nil
}

func (s *catalogService) Employees(ctx context.Context) ([]models.Employee, error) {
	return s.employees.list(ctx, nil)
}

func (s *catalogService) SaveEmployee(ctx context.Context, e models.Employee) (models.Employee, error) {
	if err := s.perms.Require(EditCatalog); err != nil {
		return models.Employee{}, err
	}
	e.FirstNames, e.LastNames = strings.TrimSpace(e.FirstNames), strings.TrimSpace(e.LastNames)
	switch {
	case e.FirstNames == "" || e.LastNames == "":
		return models.Employee{}, fmt.Errorf("%w: first and last names are required", client.ErrValidation)
	case e.TypeID <= 0:
		return models.Employee{}, fmt.Errorf("%w: select an employee type", client.ErrValidation)
	}
	body := models.Employee{
		FirstNames: e.FirstNames,
		LastNames:  e.LastNames,
		Phone:      strings.TrimSpace(e.Phone),
		Address:    strings.TrimSpace(e.Address),
		TypeID:     e.TypeID,
		UserID:     e.UserID,
	}
	return s.employees.save(ctx, e.ID, body)
}

func (s *catalogService) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.perms.Require(DeleteCatalog); err != nil {
		return err
	}
	return s.employees.delete(ctx, id)
}

func (s *catalogService) EmployeeTypes(ctx context.Context) ([]models.EmployeeType, error) {
	return s.empTypes.list(ctx, nil)
}

func (s *catalogService) SaveEmployeeType(ctx context.Context, t models.EmployeeType) (models.EmployeeType, error) {
	if err := s.perms.Require(EditCatalog); err != nil {
		return models.EmployeeType{}, err
	}
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return models.EmployeeType{}, fmt.Errorf("%w: name is required", client.ErrValidation)
	}
	return s.empTypes.save(ctx, t.ID, models.EmployeeType{Name: name})
}

func (s *catalogService) DeleteEmployeeType(ctx context.Context, id int64) error {
	if err := s.perms.Require(DeleteCatalog); err != nil {
		return err
	}
	return s.empTypes.delete(ctx, id)
}

func (s *catalogService) ServiceRequestTypes(ctx context.Context) ([]models.ServiceRequestType, error) {
	return s.requestTypes.list(ctx, nil)
}

func (s *catalogService) SaveServiceRequestType(ctx context.Context, t models.ServiceRequestType) (models.ServiceRequestType, error) {
	if err := s.perms.Require(EditCatalog); err != nil {
		return models.ServiceRequestType{}, err
	}
	body := models.ServiceRequestType{Name: strings.TrimSpace(t.Name), Description: strings.TrimSpace(t.Description)}
	if body.Name == "" {
		return models.ServiceRequestType{}, fmt.Errorf("%w: name is required", client.ErrValidation)
	}
	return s.requestTypes.save(ctx, t.ID, body)
}

func (s *catalogService) DeleteServiceRequestType(ctx context.Context, id int64) error {
	if err := s.perms.Require(DeleteCatalog); err != nil {
		return err
	}
	return s.requestTypes.delete(ctx, id)
}

func supervisorPath(id int64) string {
	return fmt.Sprintf("/gestion/supervisores-tecnicos/supervisor/%d", id)
}

func (s *catalogService) SupervisorTechnicians(ctx context.Context, supervisorID int64) ([]models.SupervisorTechnician, error) {
	var out []models.SupervisorTechnician
	if err := s.api.Get(ctx, supervisorPath(supervisorID), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.SupervisorTechnician{}
	}
	return out, nil
}

// SetSupervisorTechnicians replaces the supervisor's links with exactly
// technicianIDs. The backend has no bulk call, so a failure part way leaves
// the links that were already posted.
func (s *catalogService) SetSupervisorTechnicians(ctx context.Context, supervisorID int64, technicianIDs []int64) error {
	if err := s.perms.Require(EditCatalog); err != nil {
		return err
	}
	if supervisorID <= 0 {
		return fmt.Errorf("%w: missing supervisor id", client.ErrValidation)
	}
	if err := s.api.Delete(ctx, supervisorPath(supervisorID)); err != nil {
		return err
	}
	seen := map[int64]bool{}
	for _, tid := range technicianIDs {
		if tid <= 0 || seen[tid] {
			continue
		}
		seen[tid] = true
		link := models.SupervisorTechnician{SupervisorID: supervisorID, TechnicianID: tid}
		if err := s.api.Post(ctx, "/gestion/supervisores-tecnicos", link, nil); err != nil {
			return fmt.Errorf("link technician %d: %w", tid, err)
		}
	}
	return nil
}
