// Package cli implements the interactive EcoPoints terminal client: a
// read–eval–print loop over the application services, with prompt helpers
// for form input and a status line fed by the local profile snapshot.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ecopoints/ecopoints/internal/client/client"
	"github.com/ecopoints/ecopoints/internal/client/config"
	"github.com/ecopoints/ecopoints/internal/client/models"
	"github.com/ecopoints/ecopoints/internal/client/services"
	"github.com/ecopoints/ecopoints/internal/client/storage"
	"github.com/ecopoints/ecopoints/internal/common"
	"github.com/ecopoints/ecopoints/internal/events"
	"github.com/ecopoints/ecopoints/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config         *config.Config
	authService    services.AuthService
	accountService services.AccountService
	storeService   services.StoreService
	bus            *events.Bus
	log            logging.Logger

	session *models.Session
	// profile is the snapshot shown in the status line. It is refreshed on
	// the points-changed signal, never computed locally.
	profile *models.User

	reader *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)

	bus := events.NewBus()

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient, db, log),
		accountService: services.NewAccountService(apiClient, db, log),
		storeService:   services.NewStoreService(apiClient, db, bus, log),
		bus:            bus,
		log:            log,
		reader:         bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// refreshProfile refetches the profile after a points-affecting mutation.
// Failures only degrade the status line, so they are logged and swallowed.
func (a *App) refreshProfile(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}
	user, err := a.accountService.Profile(ctx)
	if err != nil {
		a.log.Warn(ctx, "profile refresh failed", "err", err)
		return
	}
	a.profile = user
}

// reportError renders a service error for the terminal user.
func (a *App) reportError(err error) {
	var fieldErrs services.FieldErrors
	if errors.As(err, &fieldErrs) {
		printlnFn("Please fix the following fields:")
		for _, line := range fieldErrs.Lines() {
			printlnFn("  - " + line)
		}
		return
	}

	switch {
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable, try again later.")
	case errors.Is(err, client.ErrCredentialsRejected):
		printlnFn("Email or password incorrect.")
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Session expired, please login again.")
	case errors.Is(err, client.ErrDuplicateRecord):
		printlnFn(fmt.Sprintf("Registration failed: %s.", err))
	case errors.Is(err, common.ErrSessionMissing):
		printlnFn("Not logged in.")
	case errors.Is(err, services.ErrInsufficientPoints):
		printlnFn("You do not have enough points for this product.")
	default:
		printlnFn("Error:", err.Error())
	}
}
