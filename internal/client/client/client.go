// Package client talks to the EcoPoints backend REST API. It owns transport,
// JSON shaping and the mapping of backend failures onto the error taxonomy;
// business rules (point accounting, stock, redemption codes) stay on the
// server.
package client

import (
	"context"

	"github.com/ecopoints/ecopoints/internal/client/models"
)

// Client is the backend API surface the services depend on. Tests substitute
// a fake.
type Client interface {
	Close() error

	// SetToken installs the session token sent on authenticated requests,
	// e.g. when restoring a persisted session. Login installs it implicitly.
	SetToken(token string)

	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (string, error)

	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	Products(ctx context.Context) ([]models.Product, error)

	CreateLog(ctx context.Context, req models.LogRequest) error
	Logs(ctx context.Context, userID string) ([]models.LogEntry, error)
	PendingLogs(ctx context.Context, userID string) ([]models.LogEntry, error)
	RedeemedLogs(ctx context.Context, userID string) ([]models.LogEntry, error)
	MarkLogRedeemed(ctx context.Context, logID string) (*models.LogEntry, error)
}
