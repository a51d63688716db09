// Package services contains the application services of the EcoPoints
// client. This file defines the authentication service: registration, the
// login/session-establishment flow, session restore and logout.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ecopoints/ecopoints/internal/client/client"
	"github.com/ecopoints/ecopoints/internal/client/models"
	"github.com/ecopoints/ecopoints/internal/client/repositories/session"
	"github.com/ecopoints/ecopoints/internal/common"
	"github.com/ecopoints/ecopoints/internal/dbx"
	"github.com/ecopoints/ecopoints/internal/logging"
	"github.com/ecopoints/ecopoints/internal/tokenx"
	"github.com/ecopoints/ecopoints/internal/validation"
)

// FieldErrors maps form field names to their validation failures. It is
// returned before any network call is made; submission is blocked until all
// fields validate.
type FieldErrors map[string]error

func (f FieldErrors) Error() string {
	return strings.Join(f.Lines(), "; ")
}

// Lines returns one "field: reason" string per failed field, sorted by
// field name for stable output.
func (f FieldErrors) Lines() []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("%s: %s", field, f[field]))
	}
	return lines
}

// AuthService owns the credential and session lifecycle.
//
// Contract:
//   - Register: validate all fields locally, create the account, then log in.
//   - Login: validate, exchange credentials for a token, decode the id
//     claim, persist token/id, fetch and persist the profile.
//   - Restore: resume a previously persisted session without a network call.
//   - Logout: clear every persisted session key together.
//   - Close: release the underlying client.
//
// No method retries automatically; the user resubmits by hand.
type AuthService interface {
	Register(ctx context.Context, reg models.Registration, confirmPassword string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Restore(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// local session database.
func NewAuthService(apiClient client.Client, db *sql.DB, log logging.Logger) AuthService {
	return &authService{client: apiClient, db: db, log: log}
}

func (a *authService) sessionRepo() session.Repository {
	return session.NewSQLiteRepository(a.db)
}

// Register validates every field, creates the account and then runs the
// login flow with the new credentials. Validation failures carry one entry
// per field and never reach the network.
func (a *authService) Register(ctx context.Context, reg models.Registration, confirmPassword string) (*models.Session, error) {
	reg.CPF = validation.StripCPF(reg.CPF)

	fieldErrs := FieldErrors{}
	if err := validation.Email(reg.Email); err != nil {
		fieldErrs["email"] = err
	}
	if err := validation.CPF(reg.CPF); err != nil {
		fieldErrs["cpf"] = err
	}
	if err := validation.Username(reg.Username); err != nil {
		fieldErrs["username"] = err
	}
	if err := validation.Password(reg.Password); err != nil {
		fieldErrs["password"] = err
	}
	if err := validation.ConfirmPassword(confirmPassword, reg.Password); err != nil {
		fieldErrs["confirmPassword"] = err
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if _, err := a.client.Register(ctx, reg); err != nil {
		return nil, err
	}

	a.log.Info(ctx, "account created", "username", reg.Username)
	return a.Login(ctx, reg.Email, reg.Password)
}

// Login implements the session-establishment flow. Steps run strictly in
// order: login request, token decode, session persist, profile fetch,
// profile persist.
func (a *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	fieldErrs := FieldErrors{}
	if err := validation.Email(email); err != nil {
		fieldErrs["email"] = err
	}
	if password == "" {
		fieldErrs["password"] = validation.ErrPasswordRequired
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	token, err := a.client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	userID, err := tokenx.ExtractUserID(token)
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	sess := &models.Session{Token: token, UserID: userID}
	if err := a.saveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	user, err := a.client.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if err := saveProfile(ctx, a.sessionRepo(), user); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}

	a.log.Info(ctx, "session established", "user_id", userID)
	return sess, nil
}

// saveSession persists token and user id in a single transaction so a crash
// cannot leave a token without its id.
func (a *authService) saveSession(ctx context.Context, sess *models.Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := session.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, session.KeyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyUserID, []byte(sess.UserID))
	})
}

// Restore loads the persisted session, installs the token on the API client
// and returns the identity. Returns common.ErrSessionMissing when no
// session was persisted.
func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	sess, err := loadSession(ctx, a.sessionRepo())
	if err != nil {
		return nil, err
	}
	a.client.SetToken(sess.Token)
	return sess, nil
}

// Logout clears token, user id and profile snapshot together.
func (a *authService) Logout(ctx context.Context) error {
	return a.sessionRepo().Clear(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// loadSession reads the persisted identity. Either key missing means there
// is no usable session.
func loadSession(ctx context.Context, repo session.Repository) (*models.Session, error) {
	token, err := repo.Get(ctx, session.KeyToken)
	if err != nil {
		return nil, common.ErrSessionMissing
	}
	userID, err := repo.Get(ctx, session.KeyUserID)
	if err != nil {
		return nil, common.ErrSessionMissing
	}
	return &models.Session{Token: string(token), UserID: string(userID)}, nil
}

// saveProfile stores the denormalized profile snapshot under session.KeyUser.
func saveProfile(ctx context.Context, repo session.Repository, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return repo.Set(ctx, session.KeyUser, data)
}
