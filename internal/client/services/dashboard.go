package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fieldadmin/internal/client/models"
	"github.com/dmitrijs2005/fieldadmin/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	UnassignedLabel    = "Sin asignar"
	UnknownCustomerRef = "—"
)

// ComputeStatus derives the displayed status from the request's lifecycle
// dates. The stored estado field is ignored.
func ComputeStatus(g models.ServiceRequest) string {
	switch {
	case g.FinishedAt != "":
		return models.StatusFinalizado
	case g.StartedAt != "":
		return models.StatusEnProceso
	case g.TechnicianID != 0:
		return models.StatusAsignado
	}
	return models.StatusNuevo
}

func TechnicianLabel(g models.ServiceRequest) string {
	switch {
	case g.TechnicianName != "":
		return g.TechnicianName
	case g.TechnicianID != 0:
		return fmt.Sprintf("ID %d", g.TechnicianID)
	}
	return UnassignedLabel
}

// CustomerLabel names customer id using names, falling back to "ID n".
func CustomerLabel(id int64, names map[int64]string) string {
	if id == 0 {
		return UnknownCustomerRef
	}
	if n := names[id]; n != "" {
		return n
	}
	return fmt.Sprintf("ID %d", id)
}

// CurrentMonth returns the default search range: the first day of now's
// month through now, as YYYY-MM-DD in now's location.
func CurrentMonth(now time.Time) (from, to string) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start.Format(DateLayout), now.Format(DateLayout)
}

type Count struct {
	Label string
	Count int
}

// TechnicianStatus is one technician's row of the status breakdown, in
// models.Statuses order.
type TechnicianStatus struct {
	Technician string
	Counts     []Count
}

// Summary aggregates a set of requests. Status lists follow
// models.Statuses; technicians and customers appear in first-seen order.
type Summary struct {
	From, To           string
	Total              int
	ByStatus           []Count
	ByTechnician       []Count
	ByCustomer         []Count
	StatusByTechnician []TechnicianStatus
}

func Summarize(requests []models.ServiceRequest, customers []models.Customer) Summary {
	names := make(map[int64]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	statusIdx := make(map[string]int, len(models.Statuses))
	s := Summary{Total: len(requests), ByStatus: make([]Count, len(models.Statuses))}
	for i, st := range models.Statuses {
		statusIdx[st] = i
		s.ByStatus[i] = Count{Label: st}
	}

	techIdx := map[string]int{}
	custIdx := map[string]int{}

	for _, g := range requests {
		st := statusIdx[ComputeStatus(g)]
		s.ByStatus[st].Count++

		tech := TechnicianLabel(g)
		ti, ok := techIdx[tech]
		if !ok {
			ti = len(s.ByTechnician)
			techIdx[tech] = ti
			s.ByTechnician = append(s.ByTechnician, Count{Label: tech})
			row := TechnicianStatus{Technician: tech, Counts: make([]Count, len(models.Statuses))}
			for i, name := range models.Statuses {
				row.Counts[i].Label = name
			}
			s.StatusByTechnician = append(s.StatusByTechnician, row)
		}
		s.ByTechnician[ti].Count++
		s.StatusByTechnician[ti].Counts[st].Count++

		cust := CustomerLabel(g.CustomerID, names)
		ci, ok := custIdx[cust]
		if !ok {
			ci = len(s.ByCustomer)
			custIdx[cust] = ci
			s.ByCustomer = append(s.ByCustomer, Count{Label: cust})
		}
		s.ByCustomer[ci].Count++
	}

	return s
}

// DashboardService loads the month-to-date summary shown to staff.
type DashboardService interface {
	Load(ctx context.Context, now time.Time) (Summary, error)
}

type dashboardService struct {
	gestiones GestionService
	catalog   CatalogService
	perms     Permissions
	log       logging.Logger
}

func NewDashboardService(g GestionService, c CatalogService, roles RoleChecker, log logging.Logger) DashboardService {
	if log == nil {
		log = logging.Nop()
	}
	return &dashboardService{gestiones: g, catalog: c, perms: NewPermissions(roles), log: log.With("component", "dashboard")}
}

// Load summarizes the current month. Customers and requests are fetched
// concurrently. Customer names are best effort: when they cannot be listed
// the summary falls back to ids.
func (d *dashboardService) Load(ctx context.Context, now time.Time) (Summary, error) {
	if err := d.perms.Require(ViewDashboard); err != nil {
		return Summary{}, err
	}

	from, to := CurrentMonth(now)

	var (
		customers []models.Customer
		requests  []models.ServiceRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = d.catalog.Customers(gctx)
		if err != nil {
			d.log.Warn(ctx, "customer names unavailable", "error", err)
			customers = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		requests, err = d.gestiones.Search(gctx, models.ServiceRequestFilter{From: from, To: to})
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	s := Summarize(requests, customers)
	s.From, s.To = from, to
	return s, nil
}
