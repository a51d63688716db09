package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ecopoints/ecopoints/internal/client/client"
	"github.com/ecopoints/ecopoints/internal/client/models"
	"github.com/ecopoints/ecopoints/internal/client/repositories/session"
	"github.com/ecopoints/ecopoints/internal/common"
	"github.com/ecopoints/ecopoints/internal/logging"
	"github.com/ecopoints/ecopoints/internal/validation"
)

// AccountService reads and mutates the authenticated user's profile. All
// mutations go to the backend; the local snapshot is a denormalized cache
// refreshed after every successful call.
type AccountService interface {
	// Profile fetches the profile from the backend and refreshes the local
	// snapshot.
	Profile(ctx context.Context) (*models.User, error)

	// CachedProfile returns the last persisted snapshot without a network
	// call, or common.ErrSessionMissing when none exists.
	CachedProfile(ctx context.Context) (*models.User, error)

	// Update applies a partial profile update after validating the provided
	// fields.
	Update(ctx context.Context, update models.UserUpdate) (*models.User, error)

	// Delete removes the account on the backend, then wipes the local
	// session. Callers must confirm with the user first.
	Delete(ctx context.Context) error
}

type accountService struct {
	client client.Client
	db     *sql.DB
	log    logging.Logger
}

func NewAccountService(apiClient client.Client, db *sql.DB, log logging.Logger) AccountService {
	return &accountService{client: apiClient, db: db, log: log}
}

func (s *accountService) sessionRepo() session.Repository {
	return session.NewSQLiteRepository(s.db)
}

func (s *accountService) Profile(ctx context.Context) (*models.User, error) {
	sess, err := loadSession(ctx, s.sessionRepo())
	if err != nil {
		return nil, err
	}

	user, err := s.client.GetUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	if err := saveProfile(ctx, s.sessionRepo(), user); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	return user, nil
}

func (s *accountService) CachedProfile(ctx context.Context) (*models.User, error) {
	data, err := s.sessionRepo().Get(ctx, session.KeyUser)
	if err != nil {
		return nil, common.ErrSessionMissing
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode profile snapshot: %w", err)
	}
	return &user, nil
}

func (s *accountService) Update(ctx context.Context, update models.UserUpdate) (*models.User, error) {
	fieldErrs := FieldErrors{}
	if update.Email != nil {
		if err := validation.Email(*update.Email); err != nil {
			fieldErrs["email"] = err
		}
	}
	if update.Username != nil {
		if err := validation.Username(*update.Username); err != nil {
			fieldErrs["username"] = err
		}
	}
	if update.Password != nil {
		if err := validation.Password(*update.Password); err != nil {
			fieldErrs["password"] = err
		}
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	sess, err := loadSession(ctx, s.sessionRepo())
	if err != nil {
		return nil, err
	}

	user, err := s.client.UpdateUser(ctx, sess.UserID, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := saveProfile(ctx, s.sessionRepo(), user); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}

	s.log.Info(ctx, "profile updated", "user_id", sess.UserID)
	return user, nil
}

func (s *accountService) Delete(ctx context.Context) error {
	sess, err := loadSession(ctx, s.sessionRepo())
	if err != nil {
		return err
	}

	if err := s.client.DeleteUser(ctx, sess.UserID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.log.Info(ctx, "account deleted", "user_id", sess.UserID)
	return s.sessionRepo().Clear(ctx)
}
