package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/ecopoints/ecopoints/internal/client/models"
	"github.com/ecopoints/ecopoints/internal/client/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTestDB opens a fresh in-memory session database with migrations applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := storage.Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// fakeClient is a programmable stand-in for the backend API. Unset hooks
// fail the call so tests only exercise the paths they declare.
type fakeClient struct {
	token string

	registerFn        func(ctx context.Context, reg models.Registration) (*models.User, error)
	loginFn           func(ctx context.Context, creds models.Credentials) (string, error)
	getUserFn         func(ctx context.Context, id string) (*models.User, error)
	updateUserFn      func(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
	deleteUserFn      func(ctx context.Context, id string) error
	productsFn        func(ctx context.Context) ([]models.Product, error)
	createLogFn       func(ctx context.Context, req models.LogRequest) error
	logsFn            func(ctx context.Context, userID string) ([]models.LogEntry, error)
	pendingLogsFn     func(ctx context.Context, userID string) ([]models.LogEntry, error)
	redeemedLogsFn    func(ctx context.Context, userID string) ([]models.LogEntry, error)
	markLogRedeemedFn func(ctx context.Context, logID string) (*models.LogEntry, error)
}

func (f *fakeClient) Close() error          { return nil }
func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	if f.registerFn == nil {
		return nil, fmt.Errorf("unexpected Register call")
	}
	return f.registerFn(ctx, reg)
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	if f.loginFn == nil {
		return "", fmt.Errorf("unexpected Login call")
	}
	return f.loginFn(ctx, creds)
}

func (f *fakeClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	if f.getUserFn == nil {
		return nil, fmt.Errorf("unexpected GetUser call")
	}
	return f.getUserFn(ctx, id)
}

func (f *fakeClient) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	if f.updateUserFn == nil {
		return nil, fmt.Errorf("unexpected UpdateUser call")
	}
	return f.updateUserFn(ctx, id, update)
}

func (f *fakeClient) DeleteUser(ctx context.Context, id string) error {
	if f.deleteUserFn == nil {
		return fmt.Errorf("unexpected DeleteUser call")
	}
	return f.deleteUserFn(ctx, id)
}

func (f *fakeClient) Products(ctx context.Context) ([]models.Product, error) {
	if f.productsFn == nil {
		return nil, fmt.Errorf("unexpected Products call")
	}
	return f.productsFn(ctx)
}

func (f *fakeClient) CreateLog(ctx context.Context, req models.LogRequest) error {
	if f.createLogFn == nil {
		return fmt.Errorf("unexpected CreateLog call")
	}
	return f.createLogFn(ctx, req)
}

func (f *fakeClient) Logs(ctx context.Context, userID string) ([]models.LogEntry, error) {
	if f.logsFn == nil {
		return nil, fmt.Errorf("unexpected Logs call")
	}
	return f.logsFn(ctx, userID)
}

func (f *fakeClient) PendingLogs(ctx context.Context, userID string) ([]models.LogEntry, error) {
	if f.pendingLogsFn == nil {
		return nil, fmt.Errorf("unexpected PendingLogs call")
	}
	return f.pendingLogsFn(ctx, userID)
}

func (f *fakeClient) RedeemedLogs(ctx context.Context, userID string) ([]models.LogEntry, error) {
	if f.redeemedLogsFn == nil {
		return nil, fmt.Errorf("unexpected RedeemedLogs call")
	}
	return f.redeemedLogsFn(ctx, userID)
}

func (f *fakeClient) MarkLogRedeemed(ctx context.Context, logID string) (*models.LogEntry, error) {
	if f.markLogRedeemedFn == nil {
		return nil, fmt.Errorf("unexpected MarkLogRedeemed call")
	}
	return f.markLogRedeemedFn(ctx, logID)
}
