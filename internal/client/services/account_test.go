package services

import (
	"context"
	"testing"

	"github.com/ecopoints/ecopoints/internal/client/models"
	"github.com/ecopoints/ecopoints/internal/client/repositories/session"
	"github.com/ecopoints/ecopoints/internal/common"
	"github.com/ecopoints/ecopoints/internal/logging"
	"github.com/ecopoints/ecopoints/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSession persists a minimal token/user-id pair so services that require
// an established session can run.
func seedSession(t *testing.T, repo session.Repository, userID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, session.KeyToken, []byte("tok")))
	require.NoError(t, repo.Set(ctx, session.KeyUserID, []byte(userID)))
}

func TestAccountService_ProfileRefreshesSnapshot(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := session.NewSQLiteRepository(db)
	seedSession(t, repo, "u1")

	fresh := &models.User{ID: "u1", Username: "ana_silva", Points: 99}
	fc := &fakeClient{
		getUserFn: func(ctx context.Context, id string) (*models.User, error) {
			assert.Equal(t, "u1", id)
			return fresh, nil
		},
	}
	svc := NewAccountService(fc, db, logging.Nop{})

	user, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99, user.Points)

	cached, err := svc.CachedProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, cached)
}

func TestAccountService_CachedProfileWithoutSession(t *testing.T) {
	svc := NewAccountService(&fakeClient{}, newTestDB(t), logging.Nop{})

	_, err := svc.CachedProfile(context.Background())
	assert.ErrorIs(t, err, common.ErrSessionMissing)
}

func TestAccountService_UpdateValidatesProvidedFieldsOnly(t *testing.T) {
	svc := NewAccountService(&fakeClient{}, newTestDB(t), logging.Nop{})

	bad := "x"
	_, err := svc.Update(context.Background(), models.UserUpdate{Username: &bad})
	require.Error(t, err)

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.ErrorIs(t, fieldErrs["username"], validation.ErrUsernameTooShort)
}

func TestAccountService_Update(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedSession(t, session.NewSQLiteRepository(db), "u1")

	updated := &models.User{ID: "u1", Username: "ana_nova", Points: 10}
	fc := &fakeClient{
		updateUserFn: func(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
			assert.Equal(t, "u1", id)
			require.NotNil(t, update.Username)
			assert.Equal(t, "ana_nova", *update.Username)
			assert.Nil(t, update.Email)
			return updated, nil
		},
	}
	svc := NewAccountService(fc, db, logging.Nop{})

	name := "ana_nova"
	user, err := svc.Update(ctx, models.UserUpdate{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "ana_nova", user.Username)

	cached, err := svc.CachedProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana_nova", cached.Username)
}

func TestAccountService_DeleteWipesSession(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := session.NewSQLiteRepository(db)
	seedSession(t, repo, "u1")

	var deleted string
	fc := &fakeClient{
		deleteUserFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	svc := NewAccountService(fc, db, logging.Nop{})

	require.NoError(t, svc.Delete(ctx))
	assert.Equal(t, "u1", deleted)

	_, err := repo.Get(ctx, session.KeyToken)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
