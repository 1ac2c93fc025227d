package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/dmitrijs2005/fieldadmin/internal/client/config"
	"github.com/dmitrijs2005/fieldadmin/internal/client/guard"
	"github.com/dmitrijs2005/fieldadmin/internal/client/services"
	"github.com/dmitrijs2005/fieldadmin/internal/client/session"
	"github.com/dmitrijs2005/fieldadmin/internal/client/storage"
	"github.com/dmitrijs2005/fieldadmin/internal/logging"

	figure "github.com/common-nighthawk/go-figure"
)

const appName = "fieldadmin"

// App is the composition root of the CLI. It owns the session Store and
// every service built on top of it.
type App struct {
	config *config.Config
	log    logging.Logger

	store        *session.Store
	closeStorage func() error

	authService      services.AuthService
	gestionService   services.GestionService
	catalogService   services.CatalogService
	securityService  services.SecurityService
	dashboardService services.DashboardService

	router   *guard.Router
	location string

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp wires configuration, logging, session storage, the API client and
// the services, then restores any persisted session.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	st, closeStorage, err := storage.Open(ctx, c.StorageKind, c.SessionPath())
	if err != nil {
		log.Error(ctx, "error opening session storage", "kind", c.StorageKind, "error", err)
		return nil, err
	}

	api, err := client.New(c.APIURL,
		client.WithLogger(log),
		client.WithTimeout(c.RequestTimeout),
		client.WithTransportOptions(client.TransportOptions{
			Production: c.Production,
			LogHeaders: c.LogHTTPHeaders,
			LogBody:    c.LogHTTPBody,
			NoCache:    c.NoCache,
		}),
	)
	if err != nil {
		_ = closeStorage()
		return nil, err
	}

	store := session.NewStore(st, api, log)
	api.SetAuthenticator(store)

	a := newApp(c, log, store, api)
	a.closeStorage = closeStorage

	store.RestoreOnStartup(ctx)
	if id, ok := store.Identity(); ok {
		a.location = guard.LandingPath
		log.Info(ctx, "session restored", "username", id.Username)
	}

	return a, nil
}

// newApp builds the services around an already constructed Store and
// backend. It performs no I/O.
func newApp(c *config.Config, log logging.Logger, store *session.Store, api *client.API) *App {
	gs := services.NewGestionService(api, store)
	cs := services.NewCatalogService(api, store)

	return &App{
		config:           c,
		log:              log,
		store:            store,
		closeStorage:     func() error { return nil },
		authService:      services.NewAuthService(api, store, log),
		gestionService:   gs,
		catalogService:   cs,
		securityService:  services.NewSecurityService(api, store),
		dashboardService: services.NewDashboardService(gs, cs, store, log),
		router:           guard.NewRouter(guard.New(store), guard.Routes),
		location:         guard.LoginPath,
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
		now:              time.Now,
	}
}

// Run starts the REPL on stdin and blocks until the user leaves or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) {
	printlnFn(figure.NewFigure(appName, "cybermedium", true).String())
	printlnFn("Welcome to fieldadmin (type 'help' for commands)")
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the session storage.
func (a *App) Close() error {
	return a.closeStorage()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.store.Identity()
	return ok
}

func (a *App) getStatus() string {
	s := ""
	if id, ok := a.store.Identity(); ok {
		s = id.Username + " "
	}
	s += a.location
	return fmt.Sprintf("(%s)", s)
}
