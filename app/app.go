package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"villa-client/api"
	"villa-client/config"
	"villa-client/dashboard"
	"villa-client/flow"
	"villa-client/models"
	"villa-client/routes"
	"villa-client/services"
	"villa-client/session"
	"villa-client/utils"
)

// App is the terminal client shell: it owns the session, the API client, and
// the view models, and dispatches navigations through the route guard.
type App struct {
	cfg    *config.Config
	logger *utils.Logger
	out    io.Writer

	store    *session.Store
	client   *api.Client
	images   *services.ImageResolver
	pricer   *services.Pricer
	listings *services.Listings
	flow     *flow.Flow
	admin    *dashboard.Admin
	owner    *dashboard.Owner

	path string
}

// New wires an App from configuration. The session is restored from disk
// before the first navigation.
func New(cfg *config.Config, logger *utils.Logger, out io.Writer) *App {
	store := session.NewStore(cfg.SessionFilePath, logger)
	store.Restore()

	client := api.NewClient(cfg, store, logger)
	images := services.NewImageResolver(cfg.APIBaseURL, cfg.PlaceholderImageURL)
	pricer := services.NewPricer(cfg.TaxRate)

	return &App{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		store:    store,
		client:   client,
		images:   images,
		pricer:   pricer,
		listings: services.NewListings(client, logger),
		flow:     flow.New(client, store, pricer, images, logger),
		admin:    dashboard.NewAdmin(client, logger),
		owner:    dashboard.NewOwner(client, logger, cfg.UploadConcurrency),
		path:     "/",
	}
}

// Path returns the current location.
func (a *App) Path() string {
	return a.path
}

// Session returns the current session, or nil.
func (a *App) Session() *models.Session {
	return a.store.Current()
}

// Navigate resolves a path, applies the route guard, and renders the target
// page (or the redirect target). The guard runs on every navigation.
func (a *App) Navigate(ctx context.Context, path string) error {
	route, params := routes.Match(path)

	decision := routes.Check(route, a.store.Current())
	if decision != routes.Allow {
		a.logger.Warn("[app] Navigation to %s blocked, redirecting to %s", path, decision.Target())
		return a.Navigate(ctx, decision.Target())
	}

	a.path = route.Path
	if strings.Contains(route.Path, ":") {
		// The prompt shows where the user is, not the route pattern.
		if concrete := strings.TrimRight(path, "/"); concrete != "" {
			a.path = concrete
		}
	}
	return a.render(ctx, route, params)
}

func (a *App) render(ctx context.Context, route routes.Route, params map[string]string) error {
	switch route.Path {
	case "/":
		return a.renderHome(ctx, false)
	case "/homepage":
		return a.renderHome(ctx, true)
	case "/our-villa":
		return a.renderOurVilla(ctx)
	case "/villa-detail/:id":
		return a.renderDetail(ctx, params["id"])
	case "/booking/:villaId":
		return a.renderBookingStep(ctx, params["villaId"])
	case "/payment/:bookingId":
		return a.renderPayment(ctx, params["bookingId"])
	case "/confirmation/:bookingId":
		return a.renderConfirmation(params["bookingId"])
	case "/invoice/:bookingId":
		return a.renderInvoice(ctx, params["bookingId"])
	case "/profile":
		return a.renderProfile(ctx)
	case "/admin":
		return a.renderAdmin(ctx)
	case "/owner":
		return a.renderOwner(ctx)
	case "/add-villa":
		return a.renderAddVilla()
	case routes.LoginPath:
		return a.renderStatic("LOGIN", "Sign in with: login <email> <password>")
	case "/register":
		return a.renderStatic("REGISTER", "Create an account with: register <name> <email> <phone> <password> <role>")
	case "/forgot-password":
		return a.renderStatic("FORGOT PASSWORD", "Password reset is handled by the platform support desk.")
	case "/reset-password":
		return a.renderStatic("RESET PASSWORD", "Follow the link from your reset email.")
	case "/password-updated":
		return a.renderStatic("PASSWORD UPDATED", "Your password has been updated. Please log in.")
	case "/faq":
		return a.renderStatic("FAQ", "Frequently asked questions about villa stays.")
	case "/contact":
		return a.renderStatic("CONTACT", "Reach us at support@sewavilla.example")
	case "/about":
		return a.renderStatic("ABOUT", "Happy Holiday, Enjoy Your Staycation.")
	case routes.ForbiddenPath:
		return a.renderStatic("403", "You do not have access to that page.")
	default:
		return a.renderStatic("404", "Page not found.")
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
