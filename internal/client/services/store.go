package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ecopoints/ecopoints/internal/client/client"
	"github.com/ecopoints/ecopoints/internal/client/models"
	"github.com/ecopoints/ecopoints/internal/client/repositories/session"
	"github.com/ecopoints/ecopoints/internal/events"
	"github.com/ecopoints/ecopoints/internal/logging"
	"github.com/ecopoints/ecopoints/internal/timex"
)

// ErrInsufficientPoints rejects a redemption locally when the balance can
// not cover the product price. The backend re-checks regardless.
var ErrInsufficientPoints = errors.New("not enough points for this product")

// StatementEntry is one row of the transaction history, enriched for
// display and ordering.
type StatementEntry struct {
	Log         models.LogEntry
	Description string
	When        time.Time
	// DateKnown is false when the activity date could not be parsed; such
	// rows sort after every dated row instead of inheriting a fake date.
	DateKnown bool
}

// StoreService covers the product catalog, redemptions and the transaction
// statement.
type StoreService interface {
	Products(ctx context.Context) ([]models.Product, error)

	// Redeem posts the redemption log (negative points), refreshes the
	// profile snapshot and emits the points-changed signal.
	Redeem(ctx context.Context, product models.Product) (*models.User, error)

	// Statement returns the full history, newest first, with product names
	// resolved and unparseable dates sorted last.
	Statement(ctx context.Context) ([]StatementEntry, error)

	PendingRedemptions(ctx context.Context) ([]models.LogEntry, error)
	CollectedRedemptions(ctx context.Context) ([]models.LogEntry, error)

	// MarkCollected flags a pending redemption as handed over.
	MarkCollected(ctx context.Context, logID string) (*models.LogEntry, error)
}

type storeService struct {
	client client.Client
	db     *sql.DB
	bus    *events.Bus
	log    logging.Logger
}

func NewStoreService(apiClient client.Client, db *sql.DB, bus *events.Bus, log logging.Logger) StoreService {
	return &storeService{client: apiClient, db: db, bus: bus, log: log}
}

func (s *storeService) sessionRepo() session.Repository {
	return session.NewSQLiteRepository(s.db)
}

func (s *storeService) Products(ctx context.Context) ([]models.Product, error) {
	return s.client.Products(ctx)
}

func (s *storeService) Redeem(ctx context.Context, product models.Product) (*models.User, error) {
	sess, err := loadSession(ctx, s.sessionRepo())
	if err != nil {
		return nil, err
	}

	user, err := s.client.GetUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if user.Points < product.Price {
		return nil, ErrInsufficientPoints
	}

	// The backend handles the rest: points debit, stock decrement,
	// redemption code, pending log entry.
	req := models.LogRequest{User: sess.UserID, Product: product.ID, Points: -product.Price}
	if err := s.client.CreateLog(ctx, req); err != nil {
		return nil, fmt.Errorf("redeem product: %w", err)
	}

	updated, err := s.client.GetUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("refresh profile: %w", err)
	}
	if err := saveProfile(ctx, s.sessionRepo(), updated); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}

	s.log.Info(ctx, "product redeemed", "product", product.Name, "points", -product.Price)
	s.bus.Emit(events.TopicPointsChanged)
	return updated, nil
}

func (s *storeService) Statement(ctx context.Context) ([]StatementEntry, error) {
	sess, err := loadSession(ctx, s.sessionRepo())
	if err != nil {
		return nil, err
	}

	// Product names are a display nicety; a failing catalog fetch must not
	// take the statement down with it.
	names := map[string]string{}
	if products, err := s.client.Products(ctx); err == nil {
		for _, p := range products {
			names[p.ID] = p.Name
		}
	} else {
		s.log.Warn(ctx, "product lookup failed, statement will show bare redemptions", "err", err)
	}

	logs, err := s.client.Logs(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch logs: %w", err)
	}

	entries := make([]StatementEntry, 0, len(logs))
	for _, l := range logs {
		when, ok := timex.ParseFlexible(l.ActivityDate)
		if !ok {
			s.log.Warn(ctx, "unparseable activity date", "log_id", l.ID, "raw", l.ActivityDate)
		}
		entries = append(entries, StatementEntry{
			Log:         l,
			Description: l.Description(names),
			When:        when,
			DateKnown:   ok,
		})
	}

	// Newest first; rows without a usable date go last, keeping their
	// server order among themselves.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.DateKnown != b.DateKnown {
			return a.DateKnown
		}
		if !a.DateKnown {
			return false
		}
		return a.When.After(b.When)
	})

	return entries, nil
}

func (s *storeService) PendingRedemptions(ctx context.Context) ([]models.LogEntry, error) {
	sess, err := loadSession(ctx, s.sessionRepo())
	if err != nil {
		return nil, err
	}
	return s.client.PendingLogs(ctx, sess.UserID)
}

func (s *storeService) CollectedRedemptions(ctx context.Context) ([]models.LogEntry, error) {
	sess, err := loadSession(ctx, s.sessionRepo())
	if err != nil {
		return nil, err
	}
	return s.client.RedeemedLogs(ctx, sess.UserID)
}

func (s *storeService) MarkCollected(ctx context.Context, logID string) (*models.LogEntry, error) {
	entry, err := s.client.MarkLogRedeemed(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("mark redemption collected: %w", err)
	}

	s.bus.Emit(events.TopicPointsChanged)
	return entry, nil
}
