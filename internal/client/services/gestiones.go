package services

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
	"github.com/dmitrijs2005/fieldadmin/internal/common"
)

// DateLayout is the wire format of filter dates.
const DateLayout = "2006-01-02"

// GestionService manages service requests. Every mutating call checks
// Permissions first and fails with client.ErrForbidden without contacting
// the backend.
type GestionService interface {
	Search(ctx context.Context, f models.ServiceRequestFilter) ([]models.ServiceRequest, error)
	Get(ctx context.Context, id int64) (models.ServiceRequest, error)
	Create(ctx context.Context, g models.ServiceRequest) (models.ServiceRequest, error)
	Update(ctx context.Context, g models.ServiceRequest) (models.ServiceRequest, error)
	Delete(ctx context.Context, id int64) error
	Assign(ctx context.Context, id int64, a models.Assignment) error
	Types(ctx context.Context) ([]models.ServiceRequestType, error)
	Technicians(ctx context.Context) ([]models.Employee, error)
}

type gestionService struct {
	api   Backend
	perms Permissions
	items resource[models.ServiceRequest]
}

func NewGestionService(api Backend, roles RoleChecker) GestionService {
	return &gestionService{
		api:   api,
		perms: NewPermissions(roles),
		items: resource[models.ServiceRequest]{b: api, path: "/gestion/gestiones"},
	}
}

func (s *gestionService) Search(ctx context.Context, f models.ServiceRequestFilter) ([]models.ServiceRequest, error) {
	q, err := filterQuery(f)
	if err != nil {
		return nil, err
	}
	var out []models.ServiceRequest
	if err := s.api.Get(ctx, "/gestion/gestiones/search", q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.ServiceRequest{}
	}
	return out, nil
}

func filterQuery(f models.ServiceRequestFilter) (url.Values, error) {
	q := url.Values{}
	var from, to time.Time
	var err error

	if f.From != "" {
		if from, err = time.Parse(DateLayout, f.From); err != nil {
			return nil, fmt.Errorf("%w: invalid from date %q", client.ErrValidation, f.From)
		}
		q.Set("desde", f.From)
	}
	if f.To != "" {
		if to, err = time.Parse(DateLayout, f.To); err != nil {
			return nil, fmt.Errorf("%w: invalid to date %q", client.ErrValidation, f.To)
		}
		q.Set("hasta", f.To)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: from date is after to date", client.ErrValidation)
	}
	if f.TypeID > 0 {
		q.Set("idTipoGestion", strconv.FormatInt(f.TypeID, 10))
	}
	if f.Status != "" {
		if !slices.Contains(models.Statuses, f.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", client.ErrValidation, f.Status)
		}
		q.Set("estado", f.Status)
	}
	return q, nil
}

func (s *gestionService) Get(ctx context.Context, id int64) (models.ServiceRequest, error) {
	if id <= 0 {
		return models.ServiceRequest{}, fmt.Errorf("%w: missing id", client.ErrValidation)
	}
	return s.items.get(ctx, id)
}

func (s *gestionService) Create(ctx context.Context, g models.ServiceRequest) (models.ServiceRequest, error) {
	if err := s.perms.Require(CreateServiceRequest); err != nil {
		return models.ServiceRequest{}, err
	}

	staff := s.perms.roles.HasAnyRole(common.RoleAdministrador, common.RoleSupervisor)
	if g.CustomerID == 0 && !staff {
		// A customer files requests for their own record.
		var self models.Customer
		if err := s.api.Get(ctx, "/gestion/clientes/self", nil, &self); err != nil {
			return models.ServiceRequest{}, fmt.Errorf("load own customer: %w", err)
		}
		g.CustomerID = self.ID
		if strings.TrimSpace(g.Address) == "" {
			g.Address = self.Address
		}
		if g.Latitude == "" && self.Latitude != nil {
			g.Latitude = strconv.FormatFloat(*self.Latitude, 'f', -1, 64)
		}
		if g.Longitude == "" && self.Longitude != nil {
			g.Longitude = strconv.FormatFloat(*self.Longitude, 'f', -1, 64)
		}
	}

	body, err := writable(g)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	return s.items.save(ctx, 0, body)
}

func (s *gestionService) Update(ctx context.Context, g models.ServiceRequest) (models.ServiceRequest, error) {
	if err := s.perms.Require(EditServiceRequest); err != nil {
		return models.ServiceRequest{}, err
	}
	if g.ID <= 0 {
		return models.ServiceRequest{}, fmt.Errorf("%w: missing id", client.ErrValidation)
	}
	body, err := writable(g)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	return s.items.save(ctx, g.ID, body)
}

func (s *gestionService) Delete(ctx context.Context, id int64) error {
	if err := s.perms.Require(DeleteServiceRequest); err != nil {
		return err
	}
	return s.items.delete(ctx, id)
}

func (s *gestionService) Assign(ctx context.Context, id int64, a models.Assignment) error {
	if err := s.perms.Require(AssignServiceRequest); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: missing id", client.ErrValidation)
	}
	return s.api.Patch(ctx, s.items.item(id)+"/asignacion", a, nil)
}

func (s *gestionService) Types(ctx context.Context) ([]models.ServiceRequestType, error) {
	return resource[models.ServiceRequestType]{b: s.api, path: "/gestion/tipo-gestiones"}.list(ctx, nil)
}

// Technicians lists the employees a request can be assigned to. An
// administrator sees every technician, a supervisor only their own.
func (s *gestionService) Technicians(ctx context.Context) ([]models.Employee, error) {
	if err := s.perms.Require(ListTechnicians); err != nil {
		return nil, err
	}

	types, err := resource[models.EmployeeType]{b: s.api, path: "/gestion/empleado-tipos"}.list(ctx, nil)
	if err != nil {
		return nil, err
	}
	technician := map[int64]bool{}
	for _, t := range types {
		if strings.Contains(session.NormalizeRole(t.Name), "tecnico") {
			technician[t.ID] = true
		}
	}

	path := "/gestion/empleados"
	if !s.perms.roles.HasRole(common.RoleAdministrador) {
		path = "/gestion/empleados/mis-tecnicos"
	}
	all, err := resource[models.Employee]{b: s.api, path: path}.list(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]models.Employee, 0, len(all))
	for _, e := range all {
		if technician[e.TypeID] {
			out = append(out, e)
		}
	}
	return out, nil
}

// writable keeps only the fields the backend accepts on create and update,
// trimmed, and checks the required ones.
func writable(g models.ServiceRequest) (models.ServiceRequest, error) {
	w := models.ServiceRequest{
		CustomerID:   g.CustomerID,
		TechnicianID: g.TechnicianID,
		TypeID:       g.TypeID,
		Address:      strings.TrimSpace(g.Address),
		Latitude:     strings.TrimSpace(g.Latitude),
		Longitude:    strings.TrimSpace(g.Longitude),
		ScheduledAt:  g.ScheduledAt,
		Notes:        strings.TrimSpace(g.Notes),
		Status:       strings.TrimSpace(g.Status),
	}
	switch {
	case w.CustomerID <= 0:
		return w, fmt.Errorf("%w: select a customer", client.ErrValidation)
	case w.TypeID <= 0:
		return w, fmt.Errorf("%w: select a request type", client.ErrValidation)
	case w.Address == "":
		return w, fmt.Errorf("%w: address is required", client.ErrValidation)
	}
	return w, nil
}
