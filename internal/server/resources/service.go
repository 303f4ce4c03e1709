// Package resources implements atomic resource creation: a resource, its
// owner permission and its per-user secrets are written in one transaction,
// announced to subscribers inside it, and read back after commit.
package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/repomanager"
)

// DB is satisfied by *sql.DB.
type DB interface {
	dbx.DBTX
	dbx.Beginner
}

type Service struct {
	db          DB
	repoManager repomanager.RepositoryManager
	notifier    *Notifier
	logger      logging.Logger
	now         func() time.Time
}

func NewService(db DB, repoManager repomanager.RepositoryManager, notifier *Notifier, logger logging.Logger) *Service {
	return &Service{
		db:          db,
		repoManager: repoManager,
		notifier:    notifier,
		logger:      logger.With("module", "resources"),
		now:         time.Now,
	}
}

// Add creates a resource for uac from a raw client payload and returns it as
// seen by uac. Errors match ErrValidation (client-correctable, carrying a
// *ValidationError), ErrStorage, ErrNotification or ErrRehydrate.
func (s *Service) Add(ctx context.Context, uac identity.AccessControl, raw map[string]any, apiVersion string) (*models.ResourceView, error) {
	canonical := Canonicalize(raw, apiVersion)
	req := project(canonical)
	if len(req.Permissions) > 0 {
		s.logger.Warn(ctx, "client-supplied permissions overridden by owner grant",
			"user_id", uac.UserID, "count", len(req.Permissions))
	}

	res, err := Build(req, uac, s.now())
	if err != nil {
		s.logger.Info(ctx, "resource rejected", "user_id", uac.UserID, "error", err)
		return nil, err
	}

	if err := s.create(ctx, res, uac, canonical); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "resource created", "resource_id", res.ID, "user_id", uac.UserID)

	return s.rehydrate(ctx, uac.UserID, res.ID)
}

// create persists res and notifies subscribers in a single transaction.
// Nothing is committed unless every step succeeds with no field errors.
// Side effects subscribers registered with Event.OnRollback are undone when
// the transaction does not commit.
func (s *Service) create(ctx context.Context, res *models.Resource, uac identity.AccessControl, data map[string]any) error {
	event := &Event{
		Name:          EventResourceAdded,
		Resource:      res,
		AccessControl: uac,
		Data:          data,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.save(ctx, tx, res); err != nil {
			return err
		}
		if err := Validate(res, uac.UserID).Err(); err != nil {
			return err
		}

		event.Tx = tx
		return s.notifier.Notify(ctx, event)
	})
	if err == nil {
		return nil
	}
	s.compensate(ctx, event)

	switch {
	case errors.Is(err, ErrValidation):
		s.logger.Info(ctx, "resource creation rolled back", "resource_id", res.ID, "error", err)
		return err
	case errors.Is(err, ErrStorage), errors.Is(err, ErrNotification):
	default:
		err = fmt.Errorf("%w: %w", ErrStorage, err)
	}
	s.logger.Error(ctx, "resource creation failed", "resource_id", res.ID, "error", err)
	return err
}

// compensate undoes subscriber side effects. The request context may already
// be cancelled, so hooks get one that is not.
func (s *Service) compensate(ctx context.Context, e *Event) {
	if err := e.Rollback(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error(ctx, "rollback hook failed", "resource_id", e.Resource.ID, "error", err)
	}
}

// save writes the resource row, then its permissions, then its secrets.
// PostgreSQL aborts the transaction on the first violation, so writing stops
// there too.
func (s *Service) save(ctx context.Context, tx dbx.DBTX, res *models.Resource) error {
	if err := s.repoManager.Resources(tx).Create(ctx, res); err != nil {
		return storageError(err, "")
	}

	permissions := s.repoManager.Permissions(tx)
	for i, p := range res.Permissions {
		if err := permissions.Create(ctx, p); err != nil {
			return storageError(err, fmt.Sprintf("permissions[%d]", i))
		}
	}

	secrets := s.repoManager.Secrets(tx)
	for i, sec := range res.Secrets {
		if err := secrets.Create(ctx, sec); err != nil {
			return storageError(err, fmt.Sprintf("secrets[%d]", i))
		}
	}
	return nil
}

func storageError(err error, prefix string) error {
	if verr := constraintError(err, prefix); verr != nil {
		return verr
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func (s *Service) rehydrate(ctx context.Context, userID, resourceID string) (*models.ResourceView, error) {
	view, err := s.repoManager.Views(s.db).FindView(ctx, userID, resourceID)
	if err != nil {
		s.logger.Error(ctx, "created resource not readable", "resource_id", resourceID, "user_id", userID, "error", err)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: resource %s not visible to user %s", ErrRehydrate, resourceID, userID)
		}
		return nil, fmt.Errorf("%w: %w", ErrRehydrate, err)
	}
	return view, nil
}
